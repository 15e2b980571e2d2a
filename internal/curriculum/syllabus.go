package curriculum

import (
	"errors"
	"fmt"
)

// validateSyllabus checks referential integrity, collecting every problem.
func validateSyllabus(s *Syllabus) error {
	var errs []error
	seen := make(map[string]bool, len(s.Topics))
	for _, t := range s.Topics {
		if seen[t.ID] {
			errs = append(errs, fmt.Errorf("duplicate topic %q", t.ID))
		}
		seen[t.ID] = true
	}
	for _, r := range s.Relationships {
		if !seen[r.Source] {
			errs = append(errs, fmt.Errorf("relationship source %q is not a topic", r.Source))
		}
		if !seen[r.Target] {
			errs = append(errs, fmt.Errorf("relationship target %q is not a topic", r.Target))
		}
	}
	return errors.Join(errs...)
}

// Topic returns the topic with the given ID.
func (s *Syllabus) Topic(id string) (Topic, bool) {
	for _, t := range s.Topics {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}

// Difficulties maps topic IDs to their declared difficulty (1–5).
func (s *Syllabus) Difficulties() map[string]int {
	out := make(map[string]int, len(s.Topics))
	for _, t := range s.Topics {
		out[t.ID] = t.Difficulty
	}
	return out
}

// MaxConcepts returns how many concepts a question at the given level may
// combine, defaulting to 1.
func (s *Syllabus) MaxConcepts(level string) int {
	if n, ok := s.Composition.MaxConcepts[level]; ok && n > 0 {
		return n
	}
	return 1
}

// MaxHops returns how far from the core concept neighbours may be drawn.
func (s *Syllabus) MaxHops(level string) int {
	if n, ok := s.Composition.MaxHops[level]; ok && n >= 0 {
		return n
	}
	return 1
}
