package session

import (
	"github.com/Anthya1104/exam-simulator-cli/internal/model"
)

// QuestionView is the part of a question shown before it is answered.
// It never carries the correct value.
type QuestionView struct {
	ID      int                `json:"id"`
	Section string             `json:"section,omitempty"`
	Type    model.QuestionType `json:"type"`
	Text    string             `json:"text"`
	Options model.Options      `json:"options,omitempty"`
}

// View is a read-only snapshot of the session for rendering.
type View struct {
	AttemptID string `json:"attempt_id,omitempty"`
	Status    string `json:"status"`
	Bank      string `json:"bank,omitempty"`

	Index  int           `json:"index"`
	Total  int           `json:"total"`
	IsLast bool          `json:"is_last"`
	Item   *QuestionView `json:"question,omitempty"`

	Answer      string       `json:"answer,omitempty"`
	Check       *CheckResult `json:"check,omitempty"`
	Work        string       `json:"work,omitempty"`
	Explanation string       `json:"explanation,omitempty"`
	Revealed    bool         `json:"explanation_visible"`

	TimeLeft string `json:"time_left"`
	Expired  bool   `json:"expired"`

	CalculatorVisible bool   `json:"calculator_visible"`
	CalculatorDisplay string `json:"calculator_display,omitempty"`

	Score *Score `json:"score,omitempty"`
}

// View captures the current state for display.
func (c *Controller) View() View {
	left := c.TimeLeft()
	v := View{
		Status:   c.state.Status.String(),
		TimeLeft: left.String(),
		Expired:  left.Expired(),
	}
	if c.state.Exam == nil {
		return v
	}

	s := &c.state
	idx := s.CurrentIndex
	q := s.Exam.Questions[idx]

	v.AttemptID = s.AttemptID.String()
	v.Bank = s.Exam.Name
	v.Index = idx
	v.Total = s.Exam.Len()
	v.IsLast = idx == s.Exam.Len()-1
	v.Item = &QuestionView{
		ID:      q.ID,
		Section: q.Section,
		Type:    q.Type,
		Text:    q.Text,
		Options: q.Options,
	}
	v.Answer = s.Answers[idx]
	if res, ok := s.Feedback[idx]; ok {
		v.Check = &res
	}
	v.Revealed = s.Revealed[idx]
	if v.Revealed {
		v.Explanation = q.Explanation
		v.Work = s.Work[idx]
	}
	v.CalculatorVisible = s.CalculatorVisible
	if s.CalculatorVisible {
		v.CalculatorDisplay = s.Calculator.Display()
	}
	if s.Score != nil {
		score := *s.Score
		v.Score = &score
	}
	return v
}
