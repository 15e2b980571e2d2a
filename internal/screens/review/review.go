package review

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sourcequiz/internal/quiz"
	rv "github.com/abhisek/sourcequiz/internal/review"
	"github.com/abhisek/sourcequiz/internal/router"
	"github.com/abhisek/sourcequiz/internal/screen"
	"github.com/abhisek/sourcequiz/internal/screens/summary"
	"github.com/abhisek/sourcequiz/internal/store"
	"github.com/abhisek/sourcequiz/internal/ui/components"
	"github.com/abhisek/sourcequiz/internal/ui/layout"
)

const noteLimit = 280

// ReviewScreen walks a reviewer through a list of questions.
type ReviewScreen struct {
	state   *rv.State
	reviews store.ReviewRepo

	choice components.MultiChoice
	note   components.TextInput

	showingQuitConfirm bool
	saved              int
	saveErr            string
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)
var _ screen.StatusProvider = (*ReviewScreen)(nil)

// New creates a ReviewScreen. A nil repo keeps verdicts in memory only.
func New(qs []*quiz.Question, reviews store.ReviewRepo) *ReviewScreen {
	s := &ReviewScreen{
		state:   rv.NewState(qs),
		reviews: reviews,
		note:    components.NewTextInput("Why? (optional)", noteLimit),
	}
	s.loadChoice()
	return s
}

func (s *ReviewScreen) Init() tea.Cmd {
	if s.state.Phase == rv.PhaseDone {
		return endCmd
	}
	return nil
}

func (s *ReviewScreen) Title() string {
	return "Review"
}

func (s *ReviewScreen) Status() string {
	return fmt.Sprintf("%d/%d reviewed", len(s.state.Reviews), len(s.state.Questions))
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End review"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch s.state.Phase {
	case rv.PhaseRevealed:
		return []layout.KeyHint{
			{Key: "A", Description: "Accept"},
			{Key: "R", Description: "Reject"},
			{Key: "F", Description: "Flag"},
			{Key: "N", Description: "Note"},
			{Key: "Enter", Description: "Skip"},
		}
	case rv.PhaseNoting:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save note"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "A-F", Description: "Answer"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reviewSavedMsg:
		if msg.Err != nil {
			s.saveErr = msg.Err.Error()
		} else {
			s.saved++
		}
		return s, nil

	case reviewEndMsg:
		sum := rv.BuildSummary(s.state)
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: summary.New(sum)}
		}

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.state.Phase == rv.PhaseNoting {
		var cmd tea.Cmd
		s.note, cmd = s.note.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ReviewScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			s.showingQuitConfirm = false
			return s, endCmd
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	switch s.state.Phase {
	case rv.PhaseAnswering:
		if key == "esc" {
			s.showingQuitConfirm = true
			return s, nil
		}
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		if s.choice.Submitted {
			if _, err := s.state.Answer(s.choice.Chosen()); err != nil {
				s.saveErr = err.Error()
			}
		}
		return s, cmd

	case rv.PhaseRevealed:
		switch key {
		case "a", "A":
			return s.judge(store.VerdictAccept)
		case "r", "R":
			return s.judge(store.VerdictReject)
		case "f", "F":
			return s.judge(store.VerdictFlagged)
		case "enter", "space", "s":
			return s.judge(store.VerdictNone)
		case "n", "N":
			s.state.Phase = rv.PhaseNoting
			s.note = components.NewTextInput("Why? (optional)", noteLimit)
			s.note.SetValue(s.state.Note)
			return s, s.note.Init()
		case "esc":
			s.showingQuitConfirm = true
		}
		return s, nil

	case rv.PhaseNoting:
		switch key {
		case "enter":
			s.state.Note = s.note.Value()
			s.state.Phase = rv.PhaseRevealed
			return s, nil
		case "esc":
			s.state.Phase = rv.PhaseRevealed
			return s, nil
		}
		var cmd tea.Cmd
		s.note, cmd = s.note.Update(msg)
		return s, cmd
	}

	return s, nil
}

// judge records the verdict, persists it and moves on.
func (s *ReviewScreen) judge(v store.Verdict) (screen.Screen, tea.Cmd) {
	r, err := s.state.Judge(v)
	if err != nil {
		s.saveErr = err.Error()
		return s, nil
	}
	save := s.saveCmd(r)

	if !s.state.Advance() {
		return s, tea.Sequence(save, endCmd)
	}
	s.loadChoice()
	return s, save
}

func (s *ReviewScreen) saveCmd(r store.Review) tea.Cmd {
	if s.reviews == nil {
		return nil
	}
	repo := s.reviews
	return func() tea.Msg {
		return reviewSavedMsg{Err: repo.Save(context.Background(), r)}
	}
}

// loadChoice resets the option selector for the current question.
func (s *ReviewScreen) loadChoice() {
	q := s.state.Current()
	if q == nil {
		return
	}
	labels := make([]string, len(q.Options))
	texts := make([]string, len(q.Options))
	correct := -1
	for i, o := range q.Options {
		labels[i], texts[i] = o.Label, o.Text
		if o.Correct {
			correct = i
		}
	}
	s.choice = components.NewMultiChoice(labels, texts, correct)
}

func endCmd() tea.Msg { return reviewEndMsg{} }
