package problemgen

import (
	"fmt"

	"github.com/abhisek/sourcequiz/internal/detect"
)

// ConceptValidator checks that the program shows the textual signature of
// every requested concept. Concepts without a detector are not checked.
type ConceptValidator struct{}

func (v *ConceptValidator) Name() string { return "concepts" }

func (v *ConceptValidator) Validate(s *CodeSample) *ValidationError {
	missing := MissingConcepts(s.Code, s.Concepts)
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{
		Validator: v.Name(),
		Message:   fmt.Sprintf("Missing concept patterns: %v", missing),
		Retryable: true,
	}
}

// MissingConcepts returns the concepts whose required pattern is absent.
func MissingConcepts(code string, concepts []string) []string {
	var missing []string
	for _, c := range concepts {
		r, ok := detect.Lookup(c)
		if !ok {
			continue
		}
		if !r.HasRequired(code) {
			missing = append(missing, c)
		}
	}
	return missing
}

// RuntimeValidator fails samples whose execution reported an error. It
// passes samples that have not been executed.
type RuntimeValidator struct{}

func (v *RuntimeValidator) Name() string { return "runtime" }

func (v *RuntimeValidator) Validate(s *CodeSample) *ValidationError {
	if s.Outcome == nil || s.Outcome.Success {
		return nil
	}
	msg := s.Outcome.Error
	if msg == "" {
		msg = "program failed without an error message"
	}
	return &ValidationError{
		Validator: v.Name(),
		Message:   "Runtime error: " + msg,
		Retryable: true,
	}
}
