package pipeline

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/abhisek/sourcequiz/internal/curriculum"
	"github.com/abhisek/sourcequiz/internal/difficulty"
	"github.com/abhisek/sourcequiz/internal/interpreter"
	"github.com/abhisek/sourcequiz/internal/quiz"
)

// FailureKind classifies why an attempt was discarded.
type FailureKind string

const (
	// FailureProcess covers interpreter timeouts, unreadable output and a
	// missing executable.
	FailureProcess FailureKind = "process"

	// FailureValidation covers chapter, concept, syntax, runtime and
	// distractor checks.
	FailureValidation FailureKind = "validation"

	// FailureQuality means the rubric total fell below the threshold.
	FailureQuality FailureKind = "quality"

	// FailureConfig means the request cannot be served with the loaded
	// curriculum. It ends the run without further attempts.
	FailureConfig FailureKind = "config"
)

// Retryable reports whether another attempt may succeed.
func (k FailureKind) Retryable() bool {
	return k != FailureConfig
}

// Stage names the pipeline step an attempt failed in.
type Stage string

const (
	StageConcepts    Stage = "concepts"
	StageCode        Stage = "code"
	StageExecute     Stage = "execute"
	StageDifficulty  Stage = "difficulty"
	StageDistractors Stage = "distractors"
	StageQuestion    Stage = "question"
	StageQuality     Stage = "quality"
)

// Failure records one discarded attempt.
type Failure struct {
	Attempt  int         `json:"attempt"`
	Stage    Stage       `json:"stage"`
	Kind     FailureKind `json:"kind"`
	Messages []string    `json:"messages"`
	Code     string      `json:"code,omitempty"`
}

// Outcome is the result of one generation run. Question is nil when every
// attempt failed; it is never partially built.
type Outcome struct {
	Question *quiz.Question `json:"question,omitempty"`
	Attempts int            `json:"attempts"`
	Failures []Failure      `json:"failures,omitempty"`
}

// OK reports whether a question was produced.
func (o Outcome) OK() bool { return o.Question != nil }

// Request describes the question wanted.
type Request struct {
	Chapter    int
	Difficulty difficulty.Level
	BatchID    string
}

// ConceptSelector picks the concepts a question tests.
// *conceptgraph.Graph implements it.
type ConceptSelector interface {
	Select(rng *rand.Rand, chapter int, level difficulty.Level) ([]string, error)
}

// TrapSelector picks a trap for the concepts. *curriculum.TrapSet
// implements it.
type TrapSelector interface {
	Select(rng *rand.Rand, concepts []string) curriculum.Trap
}

// Archive receives every accepted question. store.QuestionRepo implements
// it.
type Archive interface {
	Save(ctx context.Context, q *quiz.Question) error
}

// ClassifyError maps an execution error to a failure kind.
func ClassifyError(err error) FailureKind {
	var (
		timeout *interpreter.TimeoutError
		output  *interpreter.OutputError
		process *interpreter.ProcessError
	)
	switch {
	case errors.As(err, &timeout), errors.As(err, &output), errors.As(err, &process):
		return FailureProcess
	default:
		return FailureValidation
	}
}
