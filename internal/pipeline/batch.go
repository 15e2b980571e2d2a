package pipeline

import (
	"context"

	"github.com/abhisek/sourcequiz/internal/quiz"
)

// BatchResult holds the accepted questions in order and every run's
// outcome, including the failed ones.
type BatchResult struct {
	BatchID   string
	Questions []quiz.Question
	Outcomes  []Outcome
}

// Failed returns the number of runs that produced no question.
func (r *BatchResult) Failed() int {
	return len(r.Outcomes) - len(r.Questions)
}

// Batch runs Generate n times in sequence. A failed run is recorded and the
// batch continues. onOutcome, when set, is called after each run with its
// zero-based index. Cancellation returns the questions produced so far
// alongside the context error.
func (p *Pipeline) Batch(ctx context.Context, req Request, n int, onOutcome func(i int, o Outcome)) (*BatchResult, error) {
	if req.BatchID == "" {
		req.BatchID = quiz.NewID()
	}
	res := &BatchResult{BatchID: req.BatchID, Questions: []quiz.Question{}}

	for i := range n {
		out, err := p.Generate(ctx, req)
		if err != nil {
			return res, err
		}
		res.Outcomes = append(res.Outcomes, out)
		if out.OK() {
			res.Questions = append(res.Questions, *out.Question)
		}
		if onOutcome != nil {
			onOutcome(i, out)
		}
	}

	p.logger.Info("batch complete", "batch", res.BatchID, "accepted", len(res.Questions), "requested", n)
	return res, nil
}
