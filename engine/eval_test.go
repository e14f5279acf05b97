package engine

import (
	"errors"
	"testing"
)

func TestEvalExpression(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want float64
	}{
		{"precedence", "2 + 2*3", 8},
		{"parentheses", "(2 + 2) * 3", 12},
		{"nested_parentheses", "((1 + 2) * (3 + 4))", 21},
		{"division", "10 / 4", 2.5},
		{"unary_minus", "-5 + 3", -2},
		{"unary_plus", "+7", 7},
		{"decimal", "1.5 * 2", 3},
		{"leading_dot", ".5 + .5", 1},
		{"whitespace", "  25   +   37 ", 62},
		{"single_number", "42", 42},
		{"negative_parenthesized", "2 * (-3)", -6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := evalExpression(tt.expr)
			if err != nil {
				t.Fatalf("evalExpression(%q) returned error: %v", tt.expr, err)
			}
			if got != tt.want {
				t.Errorf("evalExpression(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEvalExpressionErrors(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		wantErr error
	}{
		{"letters", "two plus two", errUnsafeExpression},
		{"trailing_letter", "2+2a", errUnsafeExpression},
		{"shell_metacharacters", "2; rm -rf /", errUnsafeExpression},
		{"division_by_zero", "1/0", errDivisionByZero},
		{"division_by_zero_expr", "5 / (2 - 2)", errDivisionByZero},
		{"empty", "", errMalformedExpression},
		{"only_whitespace", "   ", errMalformedExpression},
		{"unclosed_paren", "(2 + 3", errMalformedExpression},
		{"dangling_operator", "2 +", errMalformedExpression},
		{"stray_close_paren", "2)", errMalformedExpression},
		{"double_dot", "1.2.3", errMalformedExpression},
		{"empty_parens", "()", errMalformedExpression},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := evalExpression(tt.expr)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("evalExpression(%q) error = %v, want %v", tt.expr, err, tt.wantErr)
			}
		})
	}
}

func TestFormatResult(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{8, "8"},
		{2.5, "2.5"},
		{-2, "-2"},
		{0.3333333333333333, "0.3333333333333333"},
	}

	for _, tt := range tests {
		if got := formatResult(tt.value); got != tt.want {
			t.Errorf("formatResult(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
