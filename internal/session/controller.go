package session

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Anthya1104/exam-simulator-cli/internal/config"
	"github.com/Anthya1104/exam-simulator-cli/internal/model"
	"github.com/sirupsen/logrus"
)

// Controller owns one exam attempt and applies the transitions on it.
// It is not safe for concurrent use; callers serialize access.
type Controller struct {
	state State

	now       func() time.Time
	duration  time.Duration
	tolerance float64
}

type Option func(*Controller)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

func WithDuration(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.duration = d
		}
	}
}

// WithTolerance sets the absolute tolerance for numeric answers.
func WithTolerance(t float64) Option {
	return func(c *Controller) {
		if t >= 0 {
			c.tolerance = t
		}
	}
}

func NewController(opts ...Option) *Controller {
	c := &Controller{
		now:       time.Now,
		duration:  config.DefaultExamDuration,
		tolerance: config.DefaultNumericTolerance,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StartExam replaces whatever session exists with a fresh one on exam.
func (c *Controller) StartExam(exam *model.Exam) error {
	if exam.Len() == 0 {
		return ErrNoExam
	}

	prev := c.state.Status
	c.state = newState(exam, c.now())

	logrus.Infof("Exam %q started (attempt %s, %d questions, previous status %s)",
		exam.Name, c.state.AttemptID, exam.Len(), prev)
	return nil
}

func (c *Controller) requireInProgress() error {
	if c.state.Exam == nil {
		return ErrNoExam
	}
	if c.state.Status != StatusInProgress {
		return fmt.Errorf("%w (status %s)", ErrNotInProgress, c.state.Status)
	}
	return nil
}

func (c *Controller) requireIndex(index int) error {
	if err := c.requireInProgress(); err != nil {
		return err
	}
	if !c.state.validIndex(index) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, c.state.Exam.Len())
	}
	return nil
}

// RecordAnswer stores value for the question at index, overwriting any
// earlier answer. Correctness is not checked here.
func (c *Controller) RecordAnswer(index int, value string) error {
	if err := c.requireIndex(index); err != nil {
		return err
	}
	c.state.Answers[index] = value
	delete(c.state.Feedback, index)
	logrus.Debugf("Q%d answer recorded: %q", index+1, value)
	return nil
}

// CheckAnswer compares the stored answer at index with the correct value.
// Numeric answers pass within the configured absolute tolerance; an answer
// that is not a number yields ErrInvalidNumber together with feedback.
// Multiple-choice answers must equal the correct label; with no option
// picked yet the result is empty and nothing is recorded.
func (c *Controller) CheckAnswer(index int) (CheckResult, error) {
	if err := c.requireIndex(index); err != nil {
		return CheckResult{}, err
	}

	q := c.state.Exam.Questions[index]
	answer, answered := c.state.Answers[index]

	// no verdict until an option is picked
	if !q.IsNumeric() && !answered {
		delete(c.state.Feedback, index)
		return CheckResult{}, nil
	}

	var res CheckResult
	if q.IsNumeric() {
		submitted, ok := parseNumber(answer)
		if !ok {
			res = CheckResult{Feedback: feedbackEnterNumber}
			c.state.Feedback[index] = res
			return res, fmt.Errorf("%w: %q", ErrInvalidNumber, answer)
		}
		correct, ok := q.Correct.Number()
		if !ok {
			return CheckResult{}, fmt.Errorf("question %d has a non-numeric correct value %q", q.ID, q.Correct)
		}
		res.Correct = math.Abs(submitted-correct) <= c.tolerance
		if !res.Correct {
			res.Feedback = "Wrong → Correct: " + groupNumber(q.Correct.Canonical())
		}
	} else {
		label := q.Correct.String()
		res.Correct = answer == label
		if !res.Correct {
			text, _ := q.Options.Text(label)
			res.Feedback = fmt.Sprintf("Wrong → %s. %s", label, text)
		}
	}
	if res.Correct {
		res.Feedback = feedbackCorrect
	}

	c.state.Feedback[index] = res
	logrus.Debugf("Q%d checked: correct=%t", index+1, res.Correct)
	return res, nil
}

// Next moves to the following question. It does nothing on the last one.
func (c *Controller) Next() error {
	if err := c.requireInProgress(); err != nil {
		return err
	}
	if c.state.CurrentIndex < c.state.Exam.Len()-1 {
		c.state.CurrentIndex++
	}
	return nil
}

// Previous moves to the preceding question. It does nothing on the first one.
func (c *Controller) Previous() error {
	if err := c.requireInProgress(); err != nil {
		return err
	}
	if c.state.CurrentIndex > 0 {
		c.state.CurrentIndex--
	}
	return nil
}

// Finish scores the exam and ends the attempt. A question scores when its
// trimmed answer equals the canonical rendering of the correct value.
func (c *Controller) Finish() (Score, error) {
	if err := c.requireInProgress(); err != nil {
		return Score{}, err
	}
	if c.state.CurrentIndex != c.state.Exam.Len()-1 {
		return Score{}, ErrNotAtLastQuestion
	}

	score := Score{Total: c.state.Exam.Len()}
	for i, a := range c.state.Answers {
		want := strings.TrimSpace(c.state.Exam.Questions[i].Correct.Canonical())
		if strings.TrimSpace(a) == want {
			score.Correct++
		}
	}

	c.state.Status = StatusFinished
	c.state.Score = &score

	logrus.Infof("Exam %q finished (attempt %s): %d/%d",
		c.state.Exam.Name, c.state.AttemptID, score.Correct, score.Total)
	return score, nil
}

// RemainingTime is the countdown after elapsed time into the exam.
func (c *Controller) RemainingTime(elapsed time.Duration) Countdown {
	return Remaining(elapsed, c.duration)
}

// TimeLeft is the countdown as of now. Before any exam starts it shows the
// full duration.
func (c *Controller) TimeLeft() Countdown {
	if c.state.StartTime.IsZero() {
		return c.RemainingTime(0)
	}
	return c.RemainingTime(c.now().Sub(c.state.StartTime))
}

func (c *Controller) ToggleCalculator() error {
	if err := c.requireInProgress(); err != nil {
		return err
	}
	c.state.CalculatorVisible = !c.state.CalculatorVisible
	return nil
}

// PressKey sends one keypad key to the calculator, showing it if hidden.
func (c *Controller) PressKey(key string) error {
	if err := c.requireInProgress(); err != nil {
		return err
	}
	c.state.CalculatorVisible = true
	return c.state.Calculator.Press(key)
}

// RecordWork keeps free-form scratch notes for the question at index.
func (c *Controller) RecordWork(index int, text string) error {
	if err := c.requireIndex(index); err != nil {
		return err
	}
	if text == "" {
		delete(c.state.Work, index)
		return nil
	}
	c.state.Work[index] = text
	return nil
}

// ToggleExplanation discloses or hides the explanation for index.
func (c *Controller) ToggleExplanation(index int) error {
	if err := c.requireIndex(index); err != nil {
		return err
	}
	c.state.Revealed[index] = !c.state.Revealed[index]
	return nil
}

func (c *Controller) Status() Status {
	return c.state.Status
}

func (c *Controller) CurrentIndex() int {
	return c.state.CurrentIndex
}

func (c *Controller) Exam() *model.Exam {
	return c.state.Exam
}

func (c *Controller) Answer(index int) (string, bool) {
	a, ok := c.state.Answers[index]
	return a, ok
}

// Answers returns a copy of the recorded answers.
func (c *Controller) Answers() map[int]string {
	out := make(map[int]string, len(c.state.Answers))
	for k, v := range c.state.Answers {
		out[k] = v
	}
	return out
}

func (c *Controller) CalculatorVisible() bool {
	return c.state.CalculatorVisible
}

func (c *Controller) CalculatorBuffer() string {
	return c.state.Calculator.Buffer()
}
