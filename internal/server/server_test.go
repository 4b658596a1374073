package server_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Anthya1104/exam-simulator-cli/internal/server"
	"github.com/Anthya1104/exam-simulator-cli/internal/session"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logrus.SetLevel(logrus.DebugLevel)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

const bankJSON = `[
  {"type": "Numeric", "question": "Loss amount?", "correct": 25000, "explanation": "Add."},
  {"question": "Best control?", "options": {"A": "Segregation of duties", "B": "Trust"}, "correct": "A"}
]`

type response struct {
	Success bool                 `json:"success"`
	Error   string               `json:"error"`
	Banks   []string             `json:"banks"`
	Exam    session.View         `json:"exam"`
	Check   *session.CheckResult `json:"check"`
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cfe.json"), []byte(bankJSON), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`[`), 0o644))

	srv := httptest.NewServer(server.New(session.NewController(), dir).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (int, response) {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestBanks(t *testing.T) {
	srv := newServer(t)

	status, out := do(t, srv, http.MethodGet, "/banks", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"broken.json", "cfe.json"}, out.Banks)
}

func TestExamFlow(t *testing.T) {
	srv := newServer(t)

	status, out := do(t, srv, http.MethodGet, "/exam", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "not_started", out.Exam.Status)

	status, out = do(t, srv, http.MethodPost, "/exam", `{"bank": "cfe.json"}`)
	require.Equal(t, http.StatusOK, status, out.Error)
	assert.Equal(t, "in_progress", out.Exam.Status)
	assert.Equal(t, 2, out.Exam.Total)
	require.NotNil(t, out.Exam.Item)
	assert.Equal(t, "Loss amount?", out.Exam.Item.Text)

	status, out = do(t, srv, http.MethodPut, "/exam/answers/0", `{"value": "not a number"}`)
	assert.Equal(t, http.StatusOK, status)

	status, out = do(t, srv, http.MethodPost, "/exam/answers/0/check", "")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	require.NotNil(t, out.Check)
	assert.Equal(t, "Enter a number", out.Check.Feedback)

	_, _ = do(t, srv, http.MethodPut, "/exam/answers/0", `{"value": "25,005"}`)
	status, out = do(t, srv, http.MethodPost, "/exam/answers/0/check", "")
	assert.Equal(t, http.StatusOK, status)
	require.NotNil(t, out.Check)
	assert.True(t, out.Check.Correct)

	status, out = do(t, srv, http.MethodPut, "/exam/answers/0/work", `{"value": "20000 + 5000"}`)
	assert.Equal(t, http.StatusOK, status)
	status, out = do(t, srv, http.MethodPost, "/exam/answers/0/explanation", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Add.", out.Exam.Explanation)
	assert.Equal(t, "20000 + 5000", out.Exam.Work)

	status, out = do(t, srv, http.MethodPost, "/exam/finish", "")
	assert.Equal(t, http.StatusConflict, status)
	assert.False(t, out.Success)

	status, out = do(t, srv, http.MethodPost, "/exam/next", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, out.Exam.Index)
	assert.True(t, out.Exam.IsLast)

	_, _ = do(t, srv, http.MethodPut, "/exam/answers/1", `{"value": "A"}`)

	status, out = do(t, srv, http.MethodPost, "/exam/finish", "")
	require.Equal(t, http.StatusOK, status, out.Error)
	require.NotNil(t, out.Exam.Score)
	// "25,005" is not the literal "25000"
	assert.Equal(t, session.Score{Correct: 1, Total: 2}, *out.Exam.Score)

	status, _ = do(t, srv, http.MethodPost, "/exam/previous", "")
	assert.Equal(t, http.StatusConflict, status)
}

func TestCalculatorRoutes(t *testing.T) {
	srv := newServer(t)

	status, _ := do(t, srv, http.MethodPost, "/calculator/toggle", "")
	assert.Equal(t, http.StatusConflict, status)

	_, _ = do(t, srv, http.MethodPost, "/exam", `{"bank": "cfe.json"}`)

	status, out := do(t, srv, http.MethodPost, "/calculator/toggle", "")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, out.Exam.CalculatorVisible)
	assert.Equal(t, "0", out.Exam.CalculatorDisplay)

	for _, k := range []string{"9", "/", "0", "="} {
		status, out = do(t, srv, http.MethodPost, "/calculator/keys", `{"key": "`+k+`"}`)
		require.Equal(t, http.StatusOK, status)
	}
	assert.Equal(t, "Error", out.Exam.CalculatorDisplay)

	status, out = do(t, srv, http.MethodPost, "/calculator/keys", `{"key": "x"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, out.Error, "unknown calculator key")
}

func TestStartErrors(t *testing.T) {
	srv := newServer(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"invalid json", `{`, http.StatusBadRequest},
		{"missing bank", `{"bank": "nope.json"}`, http.StatusNotFound},
		{"broken bank", `{"bank": "broken.json"}`, http.StatusBadRequest},
		{"path traversal", `{"bank": "../cfe.json"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, out := do(t, srv, http.MethodPost, "/exam", tt.body)
			assert.Equal(t, tt.status, status)
			assert.False(t, out.Success)
			assert.NotEmpty(t, out.Error)
		})
	}

	// nothing was loaded
	_, out := do(t, srv, http.MethodGet, "/exam", "")
	assert.Equal(t, "not_started", out.Exam.Status)
}

func TestIndexErrors(t *testing.T) {
	srv := newServer(t)
	_, _ = do(t, srv, http.MethodPost, "/exam", `{"bank": "cfe.json"}`)

	status, _ := do(t, srv, http.MethodPut, "/exam/answers/7", `{"value": "1"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, srv, http.MethodPut, "/exam/answers/0", `not json`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, srv, http.MethodPost, "/exam/answers/9/check", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestListenAndServeShutdown(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	s := server.New(session.NewController(), t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, addr) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/banks")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
