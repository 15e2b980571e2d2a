// Package llm is the language-model boundary used to write Source programs
// and question text. Providers are decorated with logging, retry and
// resilience layers; everything above this package sees only Provider.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is implemented by every model backend and decorator.
type Provider interface {
	// Generate sends one request. With a Schema the provider asks for
	// structured output and Content is validated JSON; without one Content
	// is the raw text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the configured model identifier.
	ModelID() string
}

// Request describes one call to the model.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, asks for JSON conforming to it.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema for structured output.
type Schema struct {
	// Name is kebab-case, e.g. "source-program".
	Name        string
	Description string
	Definition  map[string]any
}

// Response holds the model output.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
