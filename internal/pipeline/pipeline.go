// Package pipeline chains concept selection, code generation, execution,
// analysis and question writing into a bounded retry loop that produces
// one verified question at a time.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/abhisek/sourcequiz/internal/curriculum"
	"github.com/abhisek/sourcequiz/internal/difficulty"
	"github.com/abhisek/sourcequiz/internal/distractor"
	"github.com/abhisek/sourcequiz/internal/interpreter"
	"github.com/abhisek/sourcequiz/internal/problemgen"
	"github.com/abhisek/sourcequiz/internal/quality"
	"github.com/abhisek/sourcequiz/internal/quiz"
)

// Deps are the collaborators a Pipeline drives.
type Deps struct {
	Concepts    ConceptSelector
	Traps       TrapSelector
	Code        problemgen.CodeSource
	Writer      problemgen.QuestionSource
	Interpreter interpreter.Interpreter
	Analyzer    *difficulty.Analyzer
	Validators  []problemgen.Validator

	// Archive is optional.
	Archive Archive
}

// Pipeline generates questions. Runs are serialized: the random source and
// the deduplication memory are shared between them.
type Pipeline struct {
	deps   Deps
	cfg    Config
	logger *slog.Logger

	mu    sync.Mutex
	rng   *rand.Rand
	prior []string
}

// New creates a Pipeline. A nil Analyzer uses the built-in syllabus
// ratings and nil Validators the default chain.
func New(deps Deps, cfg Config, rng *rand.Rand, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if deps.Analyzer == nil {
		deps.Analyzer = difficulty.NewAnalyzer(curriculum.Default().Syllabus.Difficulties())
	}
	if deps.Validators == nil {
		deps.Validators = problemgen.DefaultValidators()
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Pipeline{deps: deps, cfg: cfg, logger: logger, rng: rng}
}

// Generate runs up to MaxAttempts attempts and returns the first question
// that passes every gate. The error is non-nil only when ctx ends.
func (p *Pipeline) Generate(ctx context.Context, req Request) (Outcome, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out Outcome
	var feedback []string

	for attempt := 1; attempt <= p.cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		out.Attempts = attempt

		q, fail, err := p.attempt(ctx, req, attempt, feedback)
		if err != nil {
			return out, err
		}
		if fail == nil {
			p.remember(q.Code)
			out.Question = q
			p.logger.Info("question accepted",
				"attempt", attempt,
				"concepts", q.Concepts,
				"difficulty", q.ActualDifficulty,
				"quality", q.Quality.Total)
			p.archive(ctx, q)
			return out, nil
		}

		out.Failures = append(out.Failures, *fail)
		p.logger.Info("attempt rejected",
			"attempt", attempt,
			"stage", fail.Stage,
			"kind", fail.Kind,
			"reasons", fail.Messages)
		if !fail.Kind.Retryable() {
			break
		}
		feedback = fail.Messages
	}

	p.logger.Warn("no question produced", "attempts", out.Attempts, "chapter", req.Chapter, "difficulty", req.Difficulty)
	return out, nil
}

func (p *Pipeline) attempt(ctx context.Context, req Request, n int, feedback []string) (*quiz.Question, *Failure, error) {
	reject := func(stage Stage, kind FailureKind, code string, msgs ...string) (*quiz.Question, *Failure, error) {
		return nil, &Failure{Attempt: n, Stage: stage, Kind: kind, Messages: msgs, Code: code}, nil
	}

	concepts, err := p.deps.Concepts.Select(p.rng, req.Chapter, req.Difficulty)
	if err != nil {
		return reject(StageConcepts, FailureConfig, "", err.Error())
	}
	trap := p.deps.Traps.Select(p.rng, concepts)
	p.logger.Debug("selected", "concepts", concepts, "trap", trap.Concept)

	code, err := p.deps.Code.Generate(ctx, problemgen.CodeInput{
		Concepts:  concepts,
		Chapter:   req.Chapter,
		Trap:      &trap,
		PriorCode: p.prior,
		Feedback:  feedback,
	})
	if err != nil {
		return nil, nil, err
	}

	sample := &problemgen.CodeSample{Code: code, Concepts: concepts, Chapter: req.Chapter}
	if errs := problemgen.ValidateCode(sample, p.deps.Validators); len(errs) > 0 {
		return reject(StageCode, FailureValidation, code, problemgen.Messages(errs)...)
	}

	outcome, err := p.deps.Interpreter.Execute(ctx, code, req.Chapter)
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		return reject(StageExecute, ClassifyError(err), code, err.Error())
	}
	sample.Outcome = outcome
	if errs := problemgen.ValidateCode(sample, p.deps.Validators); len(errs) > 0 {
		return reject(StageExecute, FailureValidation, code, problemgen.Messages(errs)...)
	}

	gt := outcome.GroundTruth()
	if gt.Value == nil {
		return reject(StageExecute, FailureValidation, code, "Program produced no value")
	}

	metrics := p.deps.Analyzer.Analyze(code, concepts, p.cfg.InputSize)
	actual := difficulty.Classify(metrics)
	if p.cfg.EnforceDifficulty {
		if ok, msg := difficulty.ValidateTarget(req.Difficulty, actual); !ok {
			msgs := append([]string{msg}, difficulty.SuggestAdjustments(metrics, req.Difficulty)...)
			return reject(StageDifficulty, FailureValidation, code, msgs...)
		}
	}

	ds := distractor.GenerateWithTrap(p.rng, concepts[0], gt.Value, gt, trap.Strategy.DistractorLogic, p.cfg.Distractors)
	values := distractor.Values(ds)
	if problems := distractor.Validate(gt.Value, values); len(problems) > 0 {
		return reject(StageDistractors, FailureValidation, code, problems...)
	}

	text, err := p.deps.Writer.Write(ctx, problemgen.QuestionInput{
		Code:        code,
		Concepts:    concepts,
		Correct:     gt.Value,
		Distractors: ds,
		Trap:        &trap,
	})
	if err != nil {
		return nil, nil, err
	}
	if problems := problemgen.ValidateQuestion(text.Body, code, gt.Value, values); len(problems) > 0 {
		return reject(StageQuestion, FailureValidation, code, problems...)
	}

	score := quality.Evaluate(quality.Input{
		Code:         code,
		Concepts:     concepts,
		Correct:      gt.Value,
		Distractors:  ds,
		Target:       req.Difficulty,
		Actual:       actual,
		QuestionText: text.Body,
	})
	if !score.Acceptable(p.cfg.QualityThreshold) {
		msgs := append([]string{fmt.Sprintf("Quality score %.1f below threshold %.1f", score.Total, p.cfg.QualityThreshold)}, score.Issues...)
		return reject(StageQuality, FailureQuality, code, msgs...)
	}

	return &quiz.Question{
		ID:               quiz.NewID(),
		BatchID:          req.BatchID,
		Chapter:          req.Chapter,
		Difficulty:       req.Difficulty,
		Concepts:         concepts,
		Trap:             trap.Concept,
		Code:             code,
		QuestionText:     text.Body,
		Options:          text.Options,
		CorrectOption:    text.CorrectOption,
		CorrectAnswer:    gt.Value.String(),
		Distractors:      quiz.Records(ds),
		GroundTruth:      gt,
		Metrics:          metrics,
		ActualDifficulty: actual,
		Quality:          score,
		Attempts:         n,
		CreatedAt:        time.Now().UTC(),
	}, nil, nil
}

func (p *Pipeline) remember(code string) {
	p.prior = append(p.prior, code)
	if limit := p.cfg.MaxPriorCode; limit > 0 && len(p.prior) > limit {
		p.prior = p.prior[len(p.prior)-limit:]
	}
}

func (p *Pipeline) archive(ctx context.Context, q *quiz.Question) {
	if p.deps.Archive == nil {
		return
	}
	if err := p.deps.Archive.Save(context.WithoutCancel(ctx), q); err != nil {
		p.logger.Warn("failed to archive question", "id", q.ID, "error", err)
	}
}
