package session

import (
	"errors"
	"time"

	"github.com/Anthya1104/exam-simulator-cli/internal/calc"
	"github.com/Anthya1104/exam-simulator-cli/internal/model"
	"github.com/google/uuid"
)

var (
	ErrNoExam            = errors.New("no exam loaded")
	ErrNotInProgress     = errors.New("exam is not in progress")
	ErrIndexOutOfRange   = errors.New("question index out of range")
	ErrNotAtLastQuestion = errors.New("exam can only be finished from the last question")
	ErrInvalidNumber     = errors.New("enter a number")
)

// Status const for the exam lifecycle
type Status int

const (
	StatusNotStarted Status = iota
	StatusInProgress
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in_progress"
	case StatusFinished:
		return "finished"
	default:
		return "not_started"
	}
}

// CheckResult is the outcome of checking one answer.
type CheckResult struct {
	Correct  bool   `json:"correct"`
	Feedback string `json:"feedback"`
}

// Score is the final tally of an exam.
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// State is everything one exam attempt owns. It is only changed through
// Controller transitions.
type State struct {
	AttemptID    uuid.UUID
	Status       Status
	Exam         *model.Exam
	CurrentIndex int
	StartTime    time.Time

	// Answers holds the submitted value per question index.
	Answers  map[int]string
	Work     map[int]string
	Feedback map[int]CheckResult
	Revealed map[int]bool

	CalculatorVisible bool
	Calculator        calc.Calculator

	Score *Score
}

func newState(exam *model.Exam, start time.Time) State {
	return State{
		AttemptID: uuid.New(),
		Status:    StatusInProgress,
		Exam:      exam,
		StartTime: start,
		Answers:   make(map[int]string),
		Work:      make(map[int]string),
		Feedback:  make(map[int]CheckResult),
		Revealed:  make(map[int]bool),
	}
}

func (s *State) validIndex(index int) bool {
	return index >= 0 && index < s.Exam.Len()
}
