package calc

import (
	"errors"
	"fmt"
)

var (
	ErrDivideByZero = errors.New("divide by zero")
	ErrSyntax       = errors.New("malformed expression")
)

// math operator
type Operator byte

const (
	OpAdd Operator = '+'
	OpSub Operator = '-'
	OpMul Operator = '*'
	OpDiv Operator = '/'
)

func (o Operator) String() string {
	return string(o)
}

// precedence of the operator; higher binds tighter.
func (o Operator) precedence() int {
	switch o {
	case OpMul, OpDiv:
		return 2
	case OpAdd, OpSub:
		return 1
	default:
		return 0
	}
}

func (o Operator) Apply(a, b float64) (float64, error) {
	switch o {
	case OpAdd:
		return a + b, nil
	case OpSub:
		return a - b, nil
	case OpMul:
		return a * b, nil
	case OpDiv:
		if b == 0 {
			return 0, ErrDivideByZero
		}
		return a / b, nil
	default:
		return 0, fmt.Errorf("unknown operator: %s", o)
	}
}

func isOperator(c byte) bool {
	switch Operator(c) {
	case OpAdd, OpSub, OpMul, OpDiv:
		return true
	}
	return false
}
