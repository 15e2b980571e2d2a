package quality

import (
	"fmt"
	"strings"

	"github.com/abhisek/sourcequiz/internal/distractor"
	"github.com/abhisek/sourcequiz/internal/value"
)

// QuickValidate runs the cheap structural checks without scoring and
// returns the critical problems found.
func QuickValidate(code string, concepts []string, correct value.Value, values []value.Value) []string {
	var problems []string

	if len(strings.TrimSpace(code)) < 10 {
		problems = append(problems, "No valid code")
	}
	if len(concepts) == 0 {
		problems = append(problems, "No concepts specified")
	}
	if len(values) < distractor.DefaultCount {
		problems = append(problems, fmt.Sprintf("Insufficient distractors: %d", len(values)))
	}

	if len(values) > 0 {
		seen := map[string]bool{render(correct): true}
		for _, v := range values {
			k := render(v)
			if seen[k] {
				problems = append(problems, "Duplicate values in answer options")
				break
			}
			seen[k] = true
		}
		for _, v := range values {
			if render(v) == render(correct) {
				problems = append(problems, "Distractor equals correct answer")
				break
			}
		}
	}
	return problems
}
