package session

import (
	"fmt"

	"github.com/Anthya1104/exam-simulator-cli/internal/model"
)

// ActionKind enumerates the user actions a surface can send.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionStart
	ActionAnswer
	ActionCheck
	ActionNext
	ActionPrevious
	ActionFinish
	ActionToggleCalculator
	ActionKey
	ActionWork
	ActionExplain
)

func (k ActionKind) String() string {
	switch k {
	case ActionStart:
		return "start"
	case ActionAnswer:
		return "answer"
	case ActionCheck:
		return "check"
	case ActionNext:
		return "next"
	case ActionPrevious:
		return "previous"
	case ActionFinish:
		return "finish"
	case ActionToggleCalculator:
		return "calculator"
	case ActionKey:
		return "key"
	case ActionWork:
		return "work"
	case ActionExplain:
		return "explain"
	default:
		return "unknown"
	}
}

// Action is one user interaction. Index and Value are only read by the
// kinds that need them; Exam only by ActionStart.
type Action struct {
	Kind  ActionKind
	Exam  *model.Exam
	Index int
	Value string
}

// Dispatch applies a single action to the session. Every surface calls it
// once per user interaction and then renders View.
func (c *Controller) Dispatch(a Action) error {
	switch a.Kind {
	case ActionStart:
		return c.StartExam(a.Exam)
	case ActionAnswer:
		return c.RecordAnswer(a.Index, a.Value)
	case ActionCheck:
		_, err := c.CheckAnswer(a.Index)
		return err
	case ActionNext:
		return c.Next()
	case ActionPrevious:
		return c.Previous()
	case ActionFinish:
		_, err := c.Finish()
		return err
	case ActionToggleCalculator:
		return c.ToggleCalculator()
	case ActionKey:
		return c.PressKey(a.Value)
	case ActionWork:
		return c.RecordWork(a.Index, a.Value)
	case ActionExplain:
		return c.ToggleExplanation(a.Index)
	default:
		return fmt.Errorf("unsupported action %s", a.Kind)
	}
}
