package distractor

import (
	"strings"

	"github.com/abhisek/sourcequiz/internal/value"
)

// Validation messages reported by Validate.
const (
	MsgNotDistinct       = "Distractors are not distinct"
	MsgInconsistentTypes = "Distractors have inconsistent types"
	MsgMatchesCorrect    = "Distractor matches correct answer"
)

// Validate checks that the options are pairwise distinct, that distractors
// share the correct answer's category (sentinels excepted) and that none
// renders like the correct answer. It returns every problem found; an empty
// result means the set is usable.
func Validate(correct value.Value, values []value.Value) []string {
	var problems []string

	seen := map[string]bool{correct.String(): true}
	distinct := true
	for _, v := range values {
		k := v.String()
		if seen[k] {
			distinct = false
		}
		seen[k] = true
	}
	if !distinct {
		problems = append(problems, MsgNotDistinct)
	}

	for _, v := range values {
		if !value.Compatible(correct, v) && !IsSentinel(v) {
			problems = append(problems, MsgInconsistentTypes)
			break
		}
	}

	for _, v := range values {
		if v.String() == correct.String() {
			problems = append(problems, MsgMatchesCorrect)
			break
		}
	}
	return problems
}

// IsSentinel reports whether v is one of the type-agnostic fallback options.
func IsSentinel(v value.Value) bool {
	s, ok := v.(value.StringValue)
	if !ok {
		return false
	}
	for _, sen := range sentinels {
		if s.S == sen.text {
			return true
		}
	}
	return strings.HasPrefix(s.S, "Error ")
}
