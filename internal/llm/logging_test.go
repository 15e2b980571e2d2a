package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/sourcequiz/internal/store"
)

type recordingEvents struct {
	store.EventRepo
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingEvents) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	events := &recordingEvents{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"code":"1;"}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 4},
	})
	p := WithLogging(mock, ProviderGemini, events, nil)

	ctx := WithPurpose(context.Background(), PurposeCode)
	if _, err := p.Generate(ctx, Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "write"}}, Schema: programSchema()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(events.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events.events))
	}
	e := events.events[0]
	if e.Provider != ProviderGemini || e.Model != "mock" || e.Purpose != PurposeCode || !e.Success {
		t.Fatalf("unexpected event: %+v", e)
	}
	if e.InputTokens != 12 || e.OutputTokens != 4 || e.ResponseBody != `{"code":"1;"}` {
		t.Fatalf("usage or body missing: %+v", e)
	}
	for _, want := range []string{"[system]\nsys", "[user]\nwrite", "[schema: test-source-program]"} {
		if !strings.Contains(e.RequestBody, want) {
			t.Errorf("request body missing %q:\n%s", want, e.RequestBody)
		}
	}
}

func TestLoggingProvider_StoreFailureIsIgnored(t *testing.T) {
	events := &recordingEvents{err: errors.New("disk full")}
	mock := NewMockProvider(down())
	p := WithLogging(mock, ProviderOpenAI, events, nil)

	_, err := p.Generate(context.Background(), Request{})
	var un *ErrProviderUnavailable
	if !errors.As(err, &un) {
		t.Fatalf("expected provider error to surface, got %v", err)
	}
	if len(events.events) != 1 || events.events[0].Success || events.events[0].ErrorMessage == "" {
		t.Fatalf("failure not recorded: %+v", events.events)
	}
	if events.events[0].Purpose != "unknown" {
		t.Fatalf("expected unknown purpose, got %q", events.events[0].Purpose)
	}
}
