// Package quality scores a generated question against a pedagogical rubric.
package quality

import (
	"fmt"
	"strings"

	"github.com/abhisek/sourcequiz/internal/detect"
	"github.com/abhisek/sourcequiz/internal/difficulty"
	"github.com/abhisek/sourcequiz/internal/distractor"
	"github.com/abhisek/sourcequiz/internal/misconception"
	"github.com/abhisek/sourcequiz/internal/value"
)

// DefaultThreshold is the minimum total for an acceptable question.
const DefaultThreshold = 60.0

// Rubric weights. They sum to 1.
const (
	weightConcept    = 0.25
	weightDistractor = 0.25
	weightDifficulty = 0.20
	weightCode       = 0.15
	weightQuestion   = 0.15
)

// Input is everything the rubric looks at.
type Input struct {
	Code        string
	Concepts    []string
	Correct     value.Value
	Distractors []distractor.Distractor
	Target      difficulty.Level
	// Actual is the measured level; empty when not measured.
	Actual       difficulty.Level
	QuestionText string
}

// Score is a rubric result. Sub-scores and Total are in [0, 100].
type Score struct {
	Total                 float64  `json:"total_score"`
	ConceptValidity       float64  `json:"concept_validity"`
	DistractorQuality     float64  `json:"distractor_quality"`
	DifficultyCalibration float64  `json:"difficulty_calibration"`
	CodeClarity           float64  `json:"code_clarity"`
	QuestionClarity       float64  `json:"question_clarity"`
	Issues                []string `json:"issues"`
	Suggestions           []string `json:"suggestions"`
}

// Acceptable reports whether the total meets threshold.
func (s Score) Acceptable(threshold float64) bool {
	return s.Total >= threshold
}

// Evaluate scores in on all five dimensions.
func Evaluate(in Input) Score {
	var issues []string
	collect := func(score float64, found []string) float64 {
		issues = append(issues, found...)
		return score
	}

	concept := collect(conceptValidity(in.Code, in.Concepts))
	distr := collect(distractorQuality(in.Correct, in.Distractors))
	diff := collect(difficultyCalibration(in.Target, in.Actual))
	code := collect(codeClarity(in.Code))
	question := collect(questionClarity(in.QuestionText, in.Code, in.Correct))

	total := (concept*weightConcept +
		distr*weightDistractor +
		diff*weightDifficulty +
		code*weightCode +
		question*weightQuestion) * 100

	return Score{
		Total:                 total,
		ConceptValidity:       concept * 100,
		DistractorQuality:     distr * 100,
		DifficultyCalibration: diff * 100,
		CodeClarity:           code * 100,
		QuestionClarity:       question * 100,
		Issues:                issues,
		Suggestions:           suggestions(issues),
	}
}

func conceptValidity(code string, concepts []string) (float64, []string) {
	if len(concepts) == 0 {
		return 0.5, nil
	}

	var issues []string
	var sum float64
	for _, c := range concepts {
		rule, ok := detect.Lookup(c)
		switch {
		case !ok:
			sum += 0.7
		case !rule.HasRequired(code):
			issues = append(issues, fmt.Sprintf("Concept '%s' pattern not found in code", c))
			sum += 0.3 * rule.Weight
		case rule.HasForbidden(code):
			issues = append(issues, fmt.Sprintf("Concept '%s' has forbidden pattern (e.g., wrong process type)", c))
			sum += 0.5 * rule.Weight
		default:
			sum += rule.Weight
		}
	}
	return sum / float64(len(concepts)), issues
}

func distractorQuality(correct value.Value, ds []distractor.Distractor) (float64, []string) {
	if len(ds) == 0 {
		return 0, []string{"No distractors provided"}
	}

	var issues []string
	if len(ds) < distractor.DefaultCount {
		issues = append(issues, fmt.Sprintf("Only %d distractors (need %d)", len(ds), distractor.DefaultCount))
	}

	mismatches := 0
	for _, d := range ds {
		if correct == nil || d.Value == nil || !value.Compatible(correct, d.Value) {
			mismatches++
		}
	}
	if mismatches > 0 {
		issues = append(issues, fmt.Sprintf("%d distractor(s) have wrong type", mismatches))
	}

	seen := make(map[string]bool, len(ds)+1)
	if correct != nil {
		seen[correct.String()] = true
	}
	distinct := true
	for _, d := range ds {
		k := render(d.Value)
		if seen[k] {
			distinct = false
		}
		seen[k] = true
	}
	if !distinct {
		issues = append(issues, "Distractors are not all distinct")
	}

	var plausible float64
	for _, d := range ds {
		switch {
		case misconception.Known(d.Misconception):
			plausible++
		case !misconception.Generic(d.Misconception):
			plausible += 0.5
		}
	}
	n := float64(len(ds))
	if plausible < n*0.5 {
		issues = append(issues, "Some distractors lack plausible misconceptions")
	}

	typeScore := 1 - float64(mismatches)/n
	distinctScore := 0.5
	if distinct {
		distinctScore = 1
	}
	countScore := min(1, n/float64(distractor.DefaultCount))

	return typeScore*0.3 + distinctScore*0.2 + (plausible/n)*0.3 + countScore*0.2, issues
}

func difficultyCalibration(target, actual difficulty.Level) (float64, []string) {
	if actual == "" {
		return 0.7, []string{"Difficulty not measured"}
	}
	if !target.Valid() || !actual.Valid() {
		return 0.5, []string{fmt.Sprintf("Unknown difficulty level: %s or %s", target, actual)}
	}

	switch difficulty.Distance(target, actual) {
	case 0:
		return 1, nil
	case 1:
		return 0.75, []string{fmt.Sprintf("Difficulty slightly off: target=%s, actual=%s", target, actual)}
	case 2:
		return 0.4, []string{fmt.Sprintf("Difficulty mismatch: target=%s, actual=%s", target, actual)}
	default:
		return 0.1, []string{fmt.Sprintf("Difficulty severely mismatched: target=%s, actual=%s", target, actual)}
	}
}

func render(v value.Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}

// advice maps an issue substring to a suggestion. Entries are checked in
// order and the first match wins.
var advice = []struct {
	match  func(issue string) bool
	advice string
}{
	{contains("pattern not found"), "Regenerate code to include required concept patterns"},
	{contains("wrong type"), "Ensure all distractors match correct answer type"},
	{contains("not distinct", "not all distinct"), "Generate more varied distractors"},
	{func(s string) bool {
		l := strings.ToLower(s)
		return strings.Contains(l, "difficulty") && strings.Contains(l, "mismatch")
	}, "Adjust code complexity to match target difficulty"},
	{contains("misconception"), "Use concept-specific misconceptions from the trap documents"},
	{contains("too short", "trivial"), "Add more meaningful computation steps"},
	{contains("too long"), "Simplify code while preserving concept"},
}

func contains(subs ...string) func(string) bool {
	return func(s string) bool {
		for _, sub := range subs {
			if strings.Contains(s, sub) {
				return true
			}
		}
		return false
	}
}

func suggestions(issues []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, issue := range issues {
		for _, a := range advice {
			if a.match(issue) {
				if !seen[a.advice] {
					seen[a.advice] = true
					out = append(out, a.advice)
				}
				break
			}
		}
	}
	return out
}
