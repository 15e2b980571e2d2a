package curriculum

// ForConcept returns the operational rule for a concept.
func (s *RuleSet) ForConcept(concept string) (Rule, bool) {
	for _, r := range s.Rules {
		if r.Concept == concept {
			return r, true
		}
	}
	return Rule{}, false
}

// Forbidden returns the rules whose operations are not yet available in the
// given chapter.
func (s *RuleSet) Forbidden(chapter int) []Rule {
	var out []Rule
	for _, r := range s.Rules {
		if r.ForbiddenBefore > chapter {
			out = append(out, r)
		}
	}
	return out
}
