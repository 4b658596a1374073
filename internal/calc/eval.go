package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Eval computes an arithmetic expression made of decimal numbers and the
// four basic operators. * and / bind tighter than + and -, and operators of
// equal precedence associate left. An operand may carry a leading sign so
// that a negative result can be chained.
func Eval(expr string) (float64, error) {
	p := &parser{src: expr}
	v, err := p.expression(1)
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return 0, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, p.src[p.pos], p.pos)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: result out of range", ErrSyntax)
	}
	return v, nil
}

// FormatResult renders v in its shortest decimal form without exponent.
func FormatResult(v float64) string {
	if v == 0 {
		// drop the sign of negative zero
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type parser struct {
	src string
	pos int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) peekOperator() (Operator, bool) {
	p.skipSpace()
	if p.pos >= len(p.src) || !isOperator(p.src[p.pos]) {
		return 0, false
	}
	return Operator(p.src[p.pos]), true
}

// expression parses operands joined by operators of at least minPrec.
func (p *parser) expression(minPrec int) (float64, error) {
	lhs, err := p.operand()
	if err != nil {
		return 0, err
	}

	for {
		op, ok := p.peekOperator()
		if !ok || op.precedence() < minPrec {
			return lhs, nil
		}
		p.pos++

		rhs, err := p.expression(op.precedence() + 1)
		if err != nil {
			return 0, err
		}

		lhs, err = op.Apply(lhs, rhs)
		if err != nil {
			return 0, err
		}
	}
}

func (p *parser) operand() (float64, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0, fmt.Errorf("%w: missing operand", ErrSyntax)
	}

	switch Operator(p.src[p.pos]) {
	case OpSub:
		p.pos++
		v, err := p.operand()
		return -v, err
	case OpAdd:
		p.pos++
		return p.operand()
	}

	return p.number()
}

func (p *parser) number() (float64, error) {
	start := p.pos
	digits, dots := 0, 0
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c >= '0' && c <= '9' {
			digits++
		} else if c == '.' {
			dots++
		} else {
			break
		}
		p.pos++
	}

	if digits == 0 || dots > 1 {
		if start < len(p.src) && p.pos == start {
			return 0, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, p.src[start], start)
		}
		return 0, fmt.Errorf("%w: invalid number %q", ErrSyntax, p.src[start:p.pos])
	}

	lit := p.src[start:p.pos]
	// integers other than zero cannot start with 0, e.g. "007"
	if dots == 0 && len(lit) > 1 && lit[0] == '0' && strings.Trim(lit, "0") != "" {
		return 0, fmt.Errorf("%w: leading zeros in %q", ErrSyntax, lit)
	}

	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return v, nil
}
