package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sourcequiz/internal/review"
)

func testSummary() *review.Summary {
	return &review.Summary{
		Duration: 6 * time.Minute,
		Reviewed: 5,
		Correct:  4,
		Accuracy: 0.8,
		Accepted: 3,
		Rejected: 1,
		Flagged:  1,
		Concepts: []review.ConceptResult{
			{Concept: "recursion", Attempted: 3, Correct: 3},
			{Concept: "lists", Attempted: 2, Correct: 1},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary())
	if s.Title() != "Review Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Review Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary())
	view := s.View(100, 30)
	for _, want := range []string{"Review complete", "Accepted 3", "recursion", "lists"} {
		if !strings.Contains(view, want) {
			t.Errorf("summary view missing %q", want)
		}
	}
}

func TestSummaryScreen_EmptyConcepts(t *testing.T) {
	s := New(&review.Summary{})
	if strings.Contains(s.View(80, 24), "Concepts") {
		t.Error("expected no concept section for an empty review")
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, key := range []tea.KeyPressMsg{{Code: tea.KeyEnter}, {Code: tea.KeyEscape}} {
		s := New(testSummary())
		_, cmd := s.Update(key)
		if cmd == nil {
			t.Errorf("expected quit command on %s", key.String())
		}
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testSummary())
	if got := len(s.KeyHints()); got != 2 {
		t.Errorf("KeyHints length = %d, want 2", got)
	}
}
