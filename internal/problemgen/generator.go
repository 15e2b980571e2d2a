// Package problemgen turns concept selections into Source programs and
// programs into worded multiple-choice questions. Both steps use the
// configured LLM and fall back to built-in templates when it is missing
// or fails.
package problemgen

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/abhisek/sourcequiz/internal/curriculum"
	"github.com/abhisek/sourcequiz/internal/llm"
)

// CodeSource produces candidate programs.
type CodeSource interface {
	Generate(ctx context.Context, in CodeInput) (string, error)
}

// QuestionSource words a question around a verified program.
type QuestionSource interface {
	Write(ctx context.Context, in QuestionInput) (*Text, error)
}

// CodeGenerator implements CodeSource. A nil provider always uses the
// templates.
type CodeGenerator struct {
	provider llm.Provider
	rules    *curriculum.RuleSet
	config   Config
	logger   *slog.Logger
}

// NewCodeGenerator creates a CodeGenerator.
func NewCodeGenerator(provider llm.Provider, rules *curriculum.RuleSet, cfg Config, logger *slog.Logger) *CodeGenerator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CodeGenerator{provider: provider, rules: rules, config: cfg, logger: logger}
}

type codeOutput struct {
	Code string `json:"code"`
}

// Generate returns a program for in. Only context cancellation is reported
// as an error; every other failure degrades to a template.
func (g *CodeGenerator) Generate(ctx context.Context, in CodeInput) (string, error) {
	if g.provider == nil {
		return fallbackCode(in.Concepts), nil
	}

	var out codeOutput
	err := llm.GenerateJSON(llm.WithPurpose(ctx, llm.PurposeCode), g.provider,
		buildCodePrompt(in, g.rules, g.config), codeSystemPrompt, CodeSchema,
		g.config.CodeMaxTokens, g.config.CodeTemperature, &out)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		g.logFallback("code", err)
		return fallbackCode(in.Concepts), nil
	}

	code := StripFences(out.Code)
	if code == "" {
		g.logger.Warn("llm returned an empty program, using template")
		return fallbackCode(in.Concepts), nil
	}
	return code, nil
}

func (g *CodeGenerator) logFallback(what string, err error) {
	if errors.Is(err, llm.ErrNoCredentials) {
		g.logger.Debug("no llm credentials, using template", "for", what)
		return
	}
	g.logger.Warn("llm generation failed, using template", "for", what, "error", err)
}

// StripFences removes a surrounding markdown code fence, if any.
func StripFences(code string) string {
	code = strings.TrimSpace(code)
	if !strings.HasPrefix(code, "```") {
		return code
	}

	lines := strings.Split(code, "\n")
	lines = lines[1:]
	if n := len(lines); n > 0 && strings.HasPrefix(strings.TrimSpace(lines[n-1]), "```") {
		lines = lines[:n-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

const (
	factorialTemplate  = "const factorial = n => n === 0 ? 1 : n * factorial(n - 1);\nfactorial(5);"
	accumulateTemplate = "const xs = list(1, 2, 3);\naccumulate((x, y) => x + y, 0, xs);"
	arithmeticTemplate = "const x = 5;\nx * 2;"
)

// fallbackCode picks a template program for the concepts.
func fallbackCode(concepts []string) string {
	has := func(ids ...string) bool {
		return slices.ContainsFunc(ids, func(id string) bool { return slices.Contains(concepts, id) })
	}
	switch {
	case has("recursion", "basics"):
		return factorialTemplate
	case has("lists", "pairs"):
		return accumulateTemplate
	default:
		return arithmeticTemplate
	}
}
