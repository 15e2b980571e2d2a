package problemgen

import (
	"regexp"
	"strings"
)

var varKeyword = regexp.MustCompile(`\bvar\s+`)

// SyntaxValidator catches obvious syntax problems without running the
// program.
type SyntaxValidator struct{}

func (v *SyntaxValidator) Name() string { return "syntax" }

func (v *SyntaxValidator) Validate(s *CodeSample) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}

	if strings.TrimSpace(s.Code) == "" {
		return fail("Program is empty")
	}
	if strings.Count(s.Code, "{") != strings.Count(s.Code, "}") {
		return fail("Unbalanced curly braces")
	}
	if strings.Count(s.Code, "(") != strings.Count(s.Code, ")") {
		return fail("Unbalanced parentheses")
	}
	if varKeyword.MatchString(s.Code) {
		return fail("'var' keyword not allowed in Source (use 'const')")
	}
	return nil
}
