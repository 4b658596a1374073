package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/Anthya1104/exam-simulator-cli/internal/bank"
	"github.com/Anthya1104/exam-simulator-cli/internal/session"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

// Server exposes one exam session over HTTP. Requests are serialized on a
// single mutex since the controller is not safe for concurrent use.
type Server struct {
	mu      sync.Mutex
	ctrl    *session.Controller
	dataDir string
	router  *mux.Router
}

func New(ctrl *session.Controller, dataDir string) *Server {
	s := &Server{
		ctrl:    ctrl,
		dataDir: dataDir,
		router:  mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(logRequests)

	r.HandleFunc("/banks", s.handleBanks).Methods(http.MethodGet)

	r.HandleFunc("/exam", s.handleView).Methods(http.MethodGet)
	r.HandleFunc("/exam", s.handleStart).Methods(http.MethodPost)
	r.HandleFunc("/exam/answers/{index:[0-9]+}", s.handleAnswer).Methods(http.MethodPut)
	r.HandleFunc("/exam/answers/{index:[0-9]+}/check", s.handleCheck).Methods(http.MethodPost)
	r.HandleFunc("/exam/answers/{index:[0-9]+}/work", s.handleWork).Methods(http.MethodPut)
	r.HandleFunc("/exam/answers/{index:[0-9]+}/explanation", s.indexAction(session.ActionExplain)).Methods(http.MethodPost)
	r.HandleFunc("/exam/next", s.action(session.ActionNext)).Methods(http.MethodPost)
	r.HandleFunc("/exam/previous", s.action(session.ActionPrevious)).Methods(http.MethodPost)
	r.HandleFunc("/exam/finish", s.action(session.ActionFinish)).Methods(http.MethodPost)

	r.HandleFunc("/calculator/toggle", s.action(session.ActionToggleCalculator)).Methods(http.MethodPost)
	r.HandleFunc("/calculator/keys", s.handleKey).Methods(http.MethodPost)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("Server listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logrus.Infof("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

type startRequest struct {
	Bank string `json:"bank"`
}

type valueRequest struct {
	Value string `json:"value"`
}

type keyRequest struct {
	Key string `json:"key"`
}

func (s *Server) handleBanks(w http.ResponseWriter, r *http.Request) {
	names, err := bank.List(s.dataDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"banks":   names,
	})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeView(w, http.StatusOK)
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid json"))
		return
	}

	exam, err := bank.Load(s.dataDir, req.Bank)
	if err != nil {
		logrus.Warnf("Could not load question bank %q: %v", req.Bank, err)
		writeError(w, statusFor(err), err)
		return
	}

	s.dispatch(w, session.Action{Kind: session.ActionStart, Exam: exam})
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	index, req, ok := decodeIndexed(w, r)
	if !ok {
		return
	}
	s.dispatch(w, session.Action{Kind: session.ActionAnswer, Index: index, Value: req.Value})
}

func (s *Server) handleWork(w http.ResponseWriter, r *http.Request) {
	index, req, ok := decodeIndexed(w, r)
	if !ok {
		return
	}
	s.dispatch(w, session.Action{Kind: session.ActionWork, Index: index, Value: req.Value})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.ctrl.CheckAnswer(index)
	if err != nil && !errors.Is(err, session.ErrInvalidNumber) {
		writeError(w, statusFor(err), err)
		return
	}

	status := http.StatusOK
	if err != nil {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, map[string]any{
		"success": err == nil,
		"check":   res,
	})
}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var req keyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid json"))
		return
	}
	s.dispatch(w, session.Action{Kind: session.ActionKey, Value: req.Key})
}

// action handles routes whose action needs no input.
func (s *Server) action(kind session.ActionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.dispatch(w, session.Action{Kind: kind})
	}
}

// indexAction handles routes whose action only needs the path index.
func (s *Server) indexAction(kind session.ActionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := pathIndex(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		s.dispatch(w, session.Action{Kind: kind, Index: index})
	}
}

// dispatch applies a under the lock and answers with the resulting view.
func (s *Server) dispatch(w http.ResponseWriter, a session.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ctrl.Dispatch(a); err != nil {
		logrus.Debugf("action %s rejected: %v", a.Kind, err)
		writeError(w, statusFor(err), err)
		return
	}
	s.writeView(w, http.StatusOK)
}

func (s *Server) writeView(w http.ResponseWriter, status int) {
	writeJSON(w, status, map[string]any{
		"success": true,
		"exam":    s.ctrl.View(),
	})
}

func decodeIndexed(w http.ResponseWriter, r *http.Request) (int, valueRequest, bool) {
	var req valueRequest
	index, err := pathIndex(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return 0, req, false
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid json"))
		return 0, req, false
	}
	return index, req, true
}

func pathIndex(r *http.Request) (int, error) {
	raw := mux.Vars(r)["index"]
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid question index %q", raw)
	}
	return index, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrIndexOutOfRange),
		errors.Is(err, bank.ErrInvalidBankName),
		errors.Is(err, bank.ErrEmptyBank):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNoExam),
		errors.Is(err, session.ErrNotInProgress),
		errors.Is(err, session.ErrNotAtLastQuestion):
		return http.StatusConflict
	case errors.Is(err, session.ErrInvalidNumber):
		return http.StatusUnprocessableEntity
	case errors.Is(err, os.ErrNotExist):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start),
		}).Debug("http request")
	})
}
