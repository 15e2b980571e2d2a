// Package review tracks a reviewer stepping through archived questions:
// answering each one, seeing the key and recording a verdict.
package review

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/abhisek/sourcequiz/internal/quiz"
	"github.com/abhisek/sourcequiz/internal/store"
)

// Phase is where the reviewer is on the current question.
type Phase int

const (
	PhaseAnswering Phase = iota // Choosing an option
	PhaseRevealed               // Key shown, awaiting a verdict
	PhaseNoting                 // Typing a note
	PhaseDone                   // Every question reviewed
)

// DefaultPrompt is shown when a question's text has no recognisable stem.
const DefaultPrompt = "What is the result of evaluating this program?"

// State is the runtime state of one review pass.
type State struct {
	Questions []*quiz.Question
	Index     int
	Phase     Phase

	// Selected is the label chosen for the current question.
	Selected string
	// Note is the reviewer's note for the current question.
	Note string

	// Reviews holds one record per finished question, in order.
	Reviews []store.Review

	StartTime time.Time
	Elapsed   time.Duration
}

// NewState starts a pass over qs.
func NewState(qs []*quiz.Question) *State {
	s := &State{Questions: qs, StartTime: time.Now()}
	if len(qs) == 0 {
		s.Phase = PhaseDone
	}
	return s
}

// Current returns the question under review, or nil when done.
func (s *State) Current() *quiz.Question {
	if s.Phase == PhaseDone || s.Index >= len(s.Questions) {
		return nil
	}
	return s.Questions[s.Index]
}

// Answer records the reviewer's choice and reveals the key.
func (s *State) Answer(label string) (bool, error) {
	q := s.Current()
	if q == nil {
		return false, fmt.Errorf("no question under review")
	}
	if s.Phase != PhaseAnswering {
		return false, fmt.Errorf("question %s already answered", q.ID)
	}
	o, ok := q.Option(label)
	if !ok {
		return false, fmt.Errorf("question %s has no option %s", q.ID, label)
	}
	s.Selected = o.Label
	s.Phase = PhaseRevealed
	return o.Correct, nil
}

// Judge finishes the current question with verdict and returns the record
// to persist.
func (s *State) Judge(verdict store.Verdict) (store.Review, error) {
	q := s.Current()
	if q == nil {
		return store.Review{}, fmt.Errorf("no question under review")
	}
	if s.Phase != PhaseRevealed {
		return store.Review{}, fmt.Errorf("question %s not answered yet", q.ID)
	}
	r := store.Review{
		QuestionID: q.ID,
		Selected:   s.Selected,
		Correct:    q.Check(s.Selected),
		Verdict:    verdict,
		Note:       strings.TrimSpace(s.Note),
		CreatedAt:  time.Now(),
	}
	s.Reviews = append(s.Reviews, r)
	return r, nil
}

// Advance moves to the next question. It returns false once the pass is
// complete.
func (s *State) Advance() bool {
	s.Selected = ""
	s.Note = ""
	s.Elapsed = time.Since(s.StartTime)
	if s.Index+1 >= len(s.Questions) {
		s.Index = len(s.Questions)
		s.Phase = PhaseDone
		return false
	}
	s.Index++
	s.Phase = PhaseAnswering
	return true
}

// Prompt extracts the question stem from a rendered question: the text
// after the code block and before the first option line.
func Prompt(q *quiz.Question) string {
	text := q.QuestionText
	if i := strings.LastIndex(text, "```"); i >= 0 {
		text = text[i+3:]
	}

	var stem []string
	for line := range strings.SplitSeq(text, "\n") {
		line = strings.TrimSpace(line)
		if isOptionLine(line) || strings.HasPrefix(line, "<!--") {
			break
		}
		if line != "" {
			stem = append(stem, line)
		}
	}
	if len(stem) == 0 {
		return DefaultPrompt
	}
	return strings.Join(stem, " ")
}

func isOptionLine(line string) bool {
	label, _, ok := strings.Cut(line, ")")
	return ok && slices.Contains(quiz.Labels, label)
}
