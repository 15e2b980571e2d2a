package pipeline

import (
	"github.com/abhisek/sourcequiz/internal/difficulty"
	"github.com/abhisek/sourcequiz/internal/distractor"
	"github.com/abhisek/sourcequiz/internal/quality"
)

// Config controls the retry loop and acceptance gates.
type Config struct {
	// MaxAttempts bounds the attempts per question.
	MaxAttempts int

	// QualityThreshold is the minimum rubric total.
	QualityThreshold float64

	// Distractors is the number of wrong options per question.
	Distractors int

	// InputSize is the assumed input size for difficulty analysis.
	InputSize int

	// EnforceDifficulty rejects programs measured more than one level away
	// from the requested difficulty.
	EnforceDifficulty bool

	// MaxPriorCode caps the programs remembered for deduplication.
	MaxPriorCode int
}

// DefaultConfig returns the standard settings.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:      3,
		QualityThreshold: quality.DefaultThreshold,
		Distractors:      distractor.DefaultCount,
		InputSize:        difficulty.DefaultInputSize,
		MaxPriorCode:     20,
	}
}
