package calc

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrorDisplay replaces the buffer when an expression cannot be evaluated.
const ErrorDisplay = "Error"

const (
	KeyClear    = "C"
	KeyEvaluate = "="
)

// Keypad lists the calculator keys in display order, four per row.
var Keypad = []string{
	"7", "8", "9", "/",
	"4", "5", "6", "*",
	"1", "2", "3", "-",
	KeyClear, "0", ".", "+",
	KeyEvaluate,
}

// Calculator accumulates key presses into an expression buffer.
type Calculator struct {
	buffer string
}

// Append adds token to the buffer without any syntax check.
func (c *Calculator) Append(token string) {
	c.buffer += token
}

func (c *Calculator) Clear() {
	c.buffer = ""
}

// Evaluate replaces the buffer with the result of the expression, or with
// ErrorDisplay when it cannot be computed. The returned error describes the
// failure; the calculator stays usable either way.
func (c *Calculator) Evaluate() (string, error) {
	v, err := Eval(c.buffer)
	if err != nil {
		logrus.Debugf("calculator: %q: %v", c.buffer, err)
		c.buffer = ErrorDisplay
		return c.buffer, err
	}
	c.buffer = FormatResult(v)
	return c.buffer, nil
}

func (c *Calculator) Buffer() string {
	return c.buffer
}

// Display is what the result field shows: "0" for an empty buffer.
func (c *Calculator) Display() string {
	if c.buffer == "" {
		return "0"
	}
	return c.buffer
}

// Press applies one keypad key.
func (c *Calculator) Press(key string) error {
	switch key {
	case KeyClear:
		c.Clear()
	case KeyEvaluate:
		// failures are shown in the buffer
		_, _ = c.Evaluate()
	default:
		if !IsKey(key) {
			return fmt.Errorf("unknown calculator key %q", key)
		}
		c.Append(key)
	}
	return nil
}

func IsKey(key string) bool {
	for _, k := range Keypad {
		if k == key {
			return true
		}
	}
	return false
}
