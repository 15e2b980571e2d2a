package quiz

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"
)

// WriteBatch writes qs as an indented JSON array. A nil slice is written
// as [].
func WriteBatch(w io.Writer, qs []Question) error {
	if qs == nil {
		qs = []Question{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(qs); err != nil {
		return fmt.Errorf("encode batch: %w", err)
	}
	return nil
}

// ReadBatch reads a JSON array written by WriteBatch.
func ReadBatch(r io.Reader) ([]Question, error) {
	var qs []Question
	if err := json.NewDecoder(r).Decode(&qs); err != nil {
		return nil, fmt.Errorf("decode batch: %w", err)
	}
	return qs, nil
}

// Summary aggregates a batch for reporting.
type Summary struct {
	Count        int            `json:"count"`
	ByDifficulty map[string]int `json:"by_difficulty"`
	ByConcept    map[string]int `json:"by_concept"`
	MeanQuality  float64        `json:"mean_quality"`
	MeanAttempts float64        `json:"mean_attempts"`
}

// Summarize computes a Summary over qs.
func Summarize(qs []Question) Summary {
	s := Summary{
		Count:        len(qs),
		ByDifficulty: make(map[string]int),
		ByConcept:    make(map[string]int),
	}
	if len(qs) == 0 {
		return s
	}

	var quality, attempts float64
	for _, q := range qs {
		s.ByDifficulty[string(q.Difficulty)]++
		for _, c := range q.Concepts {
			s.ByConcept[c]++
		}
		quality += q.Quality.Total
		attempts += float64(q.Attempts)
	}
	s.MeanQuality = quality / float64(len(qs))
	s.MeanAttempts = attempts / float64(len(qs))
	return s
}

// ConceptCount is one row of a concept histogram.
type ConceptCount struct {
	Concept string
	Count   int
}

// TopConcepts returns the concept histogram sorted by descending count,
// then name.
func (s Summary) TopConcepts() []ConceptCount {
	out := make([]ConceptCount, 0, len(s.ByConcept))
	for c, n := range s.ByConcept {
		out = append(out, ConceptCount{c, n})
	}
	slices.SortFunc(out, func(a, b ConceptCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Concept, b.Concept)
	})
	return out
}
