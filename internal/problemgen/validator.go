package problemgen

import (
	"fmt"

	"github.com/abhisek/sourcequiz/internal/curriculum"
)

// Validator checks a candidate program.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator, e.g. "syntax".
	Name() string

	// Validate returns nil if the sample passes.
	Validate(s *CodeSample) *ValidationError
}

// ValidationError describes why a sample failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// DefaultValidators is ValidatorsFor without operational rules.
func DefaultValidators() []Validator {
	return ValidatorsFor(nil)
}

// ValidatorsFor returns the static checks run before execution followed by
// the runtime check, which passes until an outcome is set.
func ValidatorsFor(rules *curriculum.RuleSet) []Validator {
	return []Validator{
		&SyntaxValidator{},
		&ChapterValidator{Rules: rules},
		&ConceptValidator{},
		&RuntimeValidator{},
	}
}

// ValidateCode runs every validator and returns all failures in order.
func ValidateCode(s *CodeSample, validators []Validator) []*ValidationError {
	var out []*ValidationError
	for _, v := range validators {
		if err := v.Validate(s); err != nil {
			out = append(out, err)
		}
	}
	return out
}

// Messages flattens validation failures for prompts and logs.
func Messages(errs []*ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Message
	}
	return out
}
