package curriculum

import (
	"math/rand/v2"
	"slices"
)

// GenericTrap is used when no trap targets the selected concepts.
var GenericTrap = Trap{
	ID:      "generic",
	Concept: "generic",
	Strategy: Strategy{
		Instruction:    "Test basic understanding",
		QuestionIntent: "Evaluate code execution",
	},
	Trigger: Trigger{CodePattern: "standard code pattern"},
}

// Matching returns the traps related to any of the concepts.
func (s *TrapSet) Matching(concepts []string) []Trap {
	var out []Trap
	for _, t := range s.Traps {
		for _, c := range concepts {
			if t.Concept == c || slices.Contains(t.RelatedConceptIDs, c) {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

// Select picks one matching trap at random, or GenericTrap.
func (s *TrapSet) Select(rng *rand.Rand, concepts []string) Trap {
	matching := s.Matching(concepts)
	if len(matching) == 0 {
		return GenericTrap
	}
	return matching[rng.IntN(len(matching))]
}

// ForConcept returns the trap keyed by concept.
func (s *TrapSet) ForConcept(concept string) (Trap, bool) {
	for _, t := range s.Traps {
		if t.Concept == concept {
			return t, true
		}
	}
	return Trap{}, false
}
