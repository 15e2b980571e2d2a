package difficulty

import (
	"fmt"
	"strings"
)

// Level is an ordered difficulty bin.
type Level string

const (
	LevelEasy     Level = "easy"
	LevelMedium   Level = "medium"
	LevelHard     Level = "hard"
	LevelVeryHard Level = "very_hard"
)

// AllLevels returns the levels in ascending order. Classification ties are
// broken in favour of the earlier level.
func AllLevels() []Level {
	return []Level{LevelEasy, LevelMedium, LevelHard, LevelVeryHard}
}

// Index returns the position of l in AllLevels, or -1.
func (l Level) Index() int {
	for i, lv := range AllLevels() {
		if lv == l {
			return i
		}
	}
	return -1
}

// Valid reports whether l is one of the four levels.
func (l Level) Valid() bool { return l.Index() >= 0 }

// Distance is the number of bins between a and b.
func Distance(a, b Level) int {
	d := a.Index() - b.Index()
	if d < 0 {
		return -d
	}
	return d
}

// ParseLevel maps user input such as "Very Hard" or "very-hard" to a Level.
func ParseLevel(s string) (Level, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	l := Level(norm)
	if !l.Valid() {
		return "", fmt.Errorf("unknown difficulty %q (want easy, medium, hard or very_hard)", s)
	}
	return l, nil
}

// Thresholds are the calibration targets for one level.
type Thresholds struct {
	TraceMin, TraceMax int
	MaxConcepts        int
	MaxNesting         int
	LoadMin, LoadMax   float64
}

var thresholds = map[Level]Thresholds{
	LevelEasy:     {TraceMin: 3, TraceMax: 5, MaxConcepts: 1, MaxNesting: 2, LoadMin: 0, LoadMax: 3},
	LevelMedium:   {TraceMin: 6, TraceMax: 10, MaxConcepts: 2, MaxNesting: 4, LoadMin: 3, LoadMax: 6},
	LevelHard:     {TraceMin: 11, TraceMax: 20, MaxConcepts: 3, MaxNesting: 6, LoadMin: 6, LoadMax: 8},
	LevelVeryHard: {TraceMin: 21, TraceMax: 50, MaxConcepts: 4, MaxNesting: 10, LoadMin: 8, LoadMax: 10},
}

// ThresholdsFor returns the calibration targets for l.
func ThresholdsFor(l Level) (Thresholds, bool) {
	t, ok := thresholds[l]
	return t, ok
}
