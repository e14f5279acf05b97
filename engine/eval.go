package engine

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	apperrors "chat-agent/errors"
)

// Evaluation failure modes the calculation rule distinguishes when picking
// a reply sentence.
var (
	errUnsafeExpression    = apperrors.WrapError(apperrors.ErrEvaluation, "expression contains unsupported characters")
	errMalformedExpression = apperrors.WrapError(apperrors.ErrEvaluation, "malformed expression")
	errDivisionByZero      = apperrors.WrapError(apperrors.ErrEvaluation, "division by zero")
)

// evalExpression evaluates a restricted arithmetic expression over numbers,
// + - * /, and parentheses with conventional precedence. The character
// whitelist is checked up front; anything outside it is rejected before
// parsing, so caller-supplied text is never interpreted as anything but
// arithmetic. Division by zero is an error, never an Inf/NaN result.
func evalExpression(input string) (float64, error) {
	for _, r := range input {
		if unicode.IsSpace(r) {
			continue
		}
		if !strings.ContainsRune("0123456789+-*/().", r) {
			return 0, errUnsafeExpression
		}
	}

	p := &exprParser{input: input}
	value, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return 0, errMalformedExpression
	}
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, errDivisionByZero
	}
	return value, nil
}

// exprParser is a recursive-descent parser over the grammar
//
//	expr   = term { ("+" | "-") term }
//	term   = factor { ("*" | "/") factor }
//	factor = ["+" | "-"] factor | "(" expr ")" | number
type exprParser struct {
	input string
	pos   int
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func (p *exprParser) peek() (byte, bool) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *exprParser) parseExpr() (float64, error) {
	value, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.peek()
		if !ok || (op != '+' && op != '-') {
			return value, nil
		}
		p.pos++
		rhs, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			value += rhs
		} else {
			value -= rhs
		}
	}
}

func (p *exprParser) parseTerm() (float64, error) {
	value, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.peek()
		if !ok || (op != '*' && op != '/') {
			return value, nil
		}
		p.pos++
		rhs, err := p.parseFactor()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			value *= rhs
		} else {
			if rhs == 0 {
				return 0, errDivisionByZero
			}
			value /= rhs
		}
	}
}

func (p *exprParser) parseFactor() (float64, error) {
	c, ok := p.peek()
	if !ok {
		return 0, errMalformedExpression
	}

	switch {
	case c == '+':
		p.pos++
		return p.parseFactor()
	case c == '-':
		p.pos++
		value, err := p.parseFactor()
		return -value, err
	case c == '(':
		p.pos++
		value, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if c, ok := p.peek(); !ok || c != ')' {
			return 0, errMalformedExpression
		}
		p.pos++
		return value, nil
	default:
		return p.parseNumber()
	}
}

func (p *exprParser) parseNumber() (float64, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if (c < '0' || c > '9') && c != '.' {
			break
		}
		p.pos++
	}
	if p.pos == start {
		return 0, errMalformedExpression
	}
	value, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, errMalformedExpression
	}
	return value, nil
}

// formatResult renders an evaluation result the way a calculator would:
// integers without a decimal point, everything else in shortest form.
func formatResult(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}
