package review

import (
	"slices"
	"time"

	"github.com/abhisek/sourcequiz/internal/store"
)

// ConceptResult is per-concept accuracy over a pass.
type ConceptResult struct {
	Concept   string
	Attempted int
	Correct   int
}

// Summary is what the summary screen shows.
type Summary struct {
	Duration time.Duration
	Reviewed int
	Correct  int
	Accuracy float64

	Accepted int
	Rejected int
	Flagged  int

	Concepts []ConceptResult
}

// BuildSummary tallies the finished reviews in state.
func BuildSummary(state *State) *Summary {
	sum := &Summary{Duration: state.Elapsed, Reviewed: len(state.Reviews)}

	byID := make(map[string][]string, len(state.Questions))
	for _, q := range state.Questions {
		byID[q.ID] = q.Concepts
	}

	results := map[string]*ConceptResult{}
	var order []string
	for _, r := range state.Reviews {
		if r.Correct {
			sum.Correct++
		}
		switch r.Verdict {
		case store.VerdictAccept:
			sum.Accepted++
		case store.VerdictReject:
			sum.Rejected++
		case store.VerdictFlagged:
			sum.Flagged++
		}
		for _, c := range byID[r.QuestionID] {
			cr, ok := results[c]
			if !ok {
				cr = &ConceptResult{Concept: c}
				results[c] = cr
				order = append(order, c)
			}
			cr.Attempted++
			if r.Correct {
				cr.Correct++
			}
		}
	}

	if sum.Reviewed > 0 {
		sum.Accuracy = float64(sum.Correct) / float64(sum.Reviewed)
	}
	for _, c := range order {
		sum.Concepts = append(sum.Concepts, *results[c])
	}
	slices.SortStableFunc(sum.Concepts, func(a, b ConceptResult) int {
		return b.Attempted - a.Attempted
	})
	return sum
}
