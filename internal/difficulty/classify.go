package difficulty

import "fmt"

// Classify bins m into a level. Each level scores +2 when the trace length
// is in range (-1 when below it), +1 for concept count and nesting within
// bounds and +2 when cognitive load is in range. The highest score wins.
func Classify(m Metrics) Level {
	best := LevelEasy
	bestScore := 0
	for i, l := range AllLevels() {
		s := levelScore(m, thresholds[l])
		if i == 0 || s > bestScore {
			best, bestScore = l, s
		}
	}
	return best
}

func levelScore(m Metrics, t Thresholds) int {
	score := 0
	switch {
	case m.TraceLength >= t.TraceMin && m.TraceLength <= t.TraceMax:
		score += 2
	case m.TraceLength < t.TraceMin:
		score--
	}
	if m.ConceptCount <= t.MaxConcepts {
		score++
	}
	if m.NestingDepth <= t.MaxNesting {
		score++
	}
	if m.CognitiveLoad >= t.LoadMin && m.CognitiveLoad <= t.LoadMax {
		score += 2
	}
	return score
}

// ValidateTarget reports whether actual is within one level of target,
// with a short reason either way.
func ValidateTarget(target, actual Level) (bool, string) {
	if Distance(target, actual) <= 1 {
		return true, fmt.Sprintf("Difficulty matches: %s", actual)
	}
	return false, fmt.Sprintf("Target was %s but code is %s", target, actual)
}

// SuggestAdjustments returns advice for moving m towards target.
func SuggestAdjustments(m Metrics, target Level) []string {
	t, ok := thresholds[target]
	if !ok {
		return nil
	}

	var out []string
	switch {
	case m.TraceLength < t.TraceMin:
		out = append(out, fmt.Sprintf("Increase input size or add complexity (trace: %d < %d)", m.TraceLength, t.TraceMin))
	case m.TraceLength > t.TraceMax:
		out = append(out, fmt.Sprintf("Reduce input size or simplify (trace: %d > %d)", m.TraceLength, t.TraceMax))
	}
	if m.ConceptCount > t.MaxConcepts {
		out = append(out, fmt.Sprintf("Reduce concepts from %d to %d", m.ConceptCount, t.MaxConcepts))
	}
	if m.NestingDepth > t.MaxNesting {
		out = append(out, fmt.Sprintf("Reduce nesting from %d to %d", m.NestingDepth, t.MaxNesting))
	}
	if m.CognitiveLoad > t.LoadMax {
		out = append(out, fmt.Sprintf("Reduce cognitive load from %.1f to %.0f", m.CognitiveLoad, t.LoadMax))
	}
	return out
}
