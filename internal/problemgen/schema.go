package problemgen

import "github.com/abhisek/sourcequiz/internal/llm"

// CodeSchema is the structured output for program generation.
var CodeSchema = &llm.Schema{
	Name:        "source-program",
	Description: "A short self-contained Source program whose last statement is an expression",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"code": map[string]any{
				"type":        "string",
				"description": "The program text only, with no explanation and no markdown fences",
			},
		},
		"required":             []any{"code"},
		"additionalProperties": false,
	},
}

// QuestionSchema is the structured output for question wording. Options
// are rendered locally so the answer key cannot drift from the text.
var QuestionSchema = &llm.Schema{
	Name:        "question-wording",
	Description: "The wording around a multiple-choice question about a program",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"intro": map[string]any{
				"type":        "string",
				"description": "An optional one-sentence context placed before the program",
			},
			"stem": map[string]any{
				"type":        "string",
				"description": "The question itself, starting with \"What is\" or \"What are\"",
			},
		},
		"required":             []any{"intro", "stem"},
		"additionalProperties": false,
	},
}
