package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Complete sends a single user prompt and returns the text of the reply.
func Complete(ctx context.Context, p Provider, prompt, system string, maxTokens int, temperature float64) (string, error) {
	resp, err := p.Generate(ctx, Request{
		System:      system,
		Messages:    []Message{{Role: RoleUser, Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}
	if resp.StopReason == "max_tokens" {
		return "", &ErrMaxTokensExceeded{Content: resp.Content}
	}

	text := strings.TrimSpace(string(resp.Content))
	if text == "" {
		return "", &ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("empty completion")}
	}
	return text, nil
}

// GenerateJSON sends prompt with schema and decodes the validated reply
// into out.
func GenerateJSON(ctx context.Context, p Provider, prompt, system string, schema *Schema, maxTokens int, temperature float64, out any) error {
	resp, err := p.Generate(ctx, Request{
		System:      system,
		Messages:    []Message{{Role: RoleUser, Content: prompt}},
		Schema:      schema,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Content, out); err != nil {
		return &ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("decode %s: %w", schema.Name, err)}
	}
	return nil
}
