package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sourcequiz/internal/quiz"
)

func testQuestion() *quiz.Question {
	return &quiz.Question{
		ID:       "q1",
		Chapter:  1,
		Concepts: []string{"basics"},
		Code:     "1 + 2;",
		Options: []quiz.Option{
			{Label: "A", Text: "3", Correct: true},
			{Label: "B", Text: "12"},
		},
		CorrectOption: "A",
		CorrectAnswer: "3",
	}
}

func TestAppModel_ViewBeforeResize(t *testing.T) {
	m := newAppModel([]*quiz.Question{testQuestion()}, nil)
	if got := m.render(); got != "" {
		t.Errorf("expected empty content before size is known, got %q", got)
	}
}

func TestAppModel_TooSmall(t *testing.T) {
	m := newAppModel([]*quiz.Question{testQuestion()}, nil)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(updated.(AppModel).render(), "Terminal too small") {
		t.Error("expected min-size message")
	}
}

func TestAppModel_FrameShowsStatus(t *testing.T) {
	m := newAppModel([]*quiz.Question{testQuestion()}, nil)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	view := updated.(AppModel).render()
	for _, want := range []string{"SourceQuiz", "Review", "0/1 reviewed", "1 + 2;"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestAppModel_CtrlC(t *testing.T) {
	m := newAppModel([]*quiz.Question{testQuestion()}, nil)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestAppModel_EscReachesRootScreen(t *testing.T) {
	m := newAppModel([]*quiz.Question{testQuestion()}, nil)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	updated, _ = updated.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if !strings.Contains(updated.(AppModel).render(), "End the review now?") {
		t.Error("expected quit confirmation from the review screen")
	}
}
