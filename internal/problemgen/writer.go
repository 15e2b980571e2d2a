package problemgen

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/abhisek/sourcequiz/internal/llm"
	"github.com/abhisek/sourcequiz/internal/quiz"
)

const defaultIntro = "Consider the following Source program:"

// QuestionWriter implements QuestionSource. A nil provider always uses the
// template wording.
type QuestionWriter struct {
	provider llm.Provider
	config   Config
	rng      *rand.Rand
	logger   *slog.Logger
}

// NewQuestionWriter creates a QuestionWriter. rng shuffles the options.
func NewQuestionWriter(provider llm.Provider, cfg Config, rng *rand.Rand, logger *slog.Logger) *QuestionWriter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &QuestionWriter{provider: provider, config: cfg, rng: rng, logger: logger}
}

type wordingOutput struct {
	Intro string `json:"intro"`
	Stem  string `json:"stem"`
}

// Write shuffles the options and renders the question. Only context
// cancellation is reported as an error.
func (w *QuestionWriter) Write(ctx context.Context, in QuestionInput) (*Text, error) {
	opts, answer := quiz.ShuffleOptions(w.rng, in.Correct, in.Distractors)
	stem := StemFor(in.Concepts)

	wording := wordingOutput{Intro: defaultIntro, Stem: "What is " + stem + "?"}
	origin := OriginTemplate

	if w.provider != nil {
		var out wordingOutput
		err := llm.GenerateJSON(llm.WithPurpose(ctx, llm.PurposeQuestion), w.provider,
			buildQuestionPrompt(in, stem), questionSystemPrompt, QuestionSchema,
			w.config.QuestionMaxTokens, w.config.QuestionTemperature, &out)
		switch {
		case err != nil && ctx.Err() != nil:
			return nil, ctx.Err()
		case err != nil:
			w.logger.Warn("llm question wording failed, using template", "error", err)
		case strings.TrimSpace(out.Stem) == "":
			w.logger.Warn("llm returned an empty stem, using template")
		default:
			wording.Stem = strings.TrimSpace(out.Stem)
			if intro := strings.TrimSpace(out.Intro); intro != "" {
				wording.Intro = intro
			}
			origin = OriginLLM
		}
	}

	return &Text{
		Body:          Render(wording.Intro, in.Code, wording.Stem, opts, answer),
		Options:       opts,
		CorrectOption: answer,
		Origin:        origin,
	}, nil
}

// StemFor picks what the question asks for based on the concepts.
func StemFor(concepts []string) string {
	has := func(ids ...string) bool {
		return slices.ContainsFunc(ids, func(id string) bool { return slices.Contains(concepts, id) })
	}
	switch {
	case has("recursion", "lists", "pairs"):
		return "the value of the final expression"
	case has("complexity", "orders_of_growth"):
		return "the time complexity"
	default:
		return "the output"
	}
}

// Render formats a question with a fenced program, lettered options and a
// hidden answer marker.
func Render(intro, code, stem string, opts []quiz.Option, answer string) string {
	var b strings.Builder
	if intro != "" {
		b.WriteString(intro)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "```javascript\n%s\n```\n\n", strings.TrimSpace(code))
	b.WriteString(stem)
	b.WriteString("\n\n")
	for _, o := range opts {
		fmt.Fprintf(&b, "%s) %s\n", o.Label, o.Text)
	}
	fmt.Fprintf(&b, "\n<!-- CORRECT ANSWER: %s -->\n", answer)
	return b.String()
}
