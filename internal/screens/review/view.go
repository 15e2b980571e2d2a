package review

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	rv "github.com/abhisek/sourcequiz/internal/review"
	"github.com/abhisek/sourcequiz/internal/store"
	"github.com/abhisek/sourcequiz/internal/ui/theme"
)

func (s *ReviewScreen) View(width, height int) string {
	if s.showingQuitConfirm {
		return renderQuitConfirm(width, height)
	}
	q := s.state.Current()
	if q == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Nothing left to review.")
	}

	var b strings.Builder

	info := theme.Muted.Render(fmt.Sprintf("  Q %d/%d   Chapter %d   %s   %s",
		s.state.Index+1, len(s.state.Questions), q.Chapter, q.Difficulty, strings.Join(q.Concepts, ", ")))
	b.WriteString(info)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Code.Render(q.Code)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(rv.Prompt(q)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))

	if s.state.Phase != rv.PhaseAnswering {
		b.WriteString("\n")
		b.WriteString(s.renderFeedback(width))
	}
	if s.saveErr != "" {
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render("  " + s.saveErr))
	}
	return b.String()
}

func (s *ReviewScreen) renderFeedback(width int) string {
	q := s.state.Current()
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	if q.Check(s.state.Selected) {
		b.WriteString(center.Inherit(theme.Correct).Render("Correct!"))
	} else {
		b.WriteString(center.Inherit(theme.Incorrect).Render("Not quite"))
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).Render(
			fmt.Sprintf("Answer: %s) %s", q.CorrectOption, q.CorrectAnswer)))
		if o, ok := q.Option(s.state.Selected); ok && o.Misconception != "" {
			b.WriteString("\n")
			b.WriteString(center.Foreground(theme.Accent).Render("Misconception: " + o.Misconception))
		}
	}
	b.WriteString("\n\n")

	switch s.state.Phase {
	case rv.PhaseNoting:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, "Note: "+s.note.View()))
	default:
		if s.state.Note != "" {
			b.WriteString(center.Inherit(theme.Hint).Render("Note: " + s.state.Note))
			b.WriteString("\n")
		}
		b.WriteString(center.Inherit(theme.Hint).Render(verdictPrompt))
	}
	return b.String()
}

var verdictPrompt = fmt.Sprintf("[A] %s   [R] %s   [F] %s   [Enter] skip",
	store.VerdictAccept, store.VerdictReject, store.VerdictFlagged)

func renderQuitConfirm(width, height int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Padding(1, 4).
		Render(theme.Body.Bold(true).Render("End the review now?") + "\n\n" +
			theme.Muted.Render("Verdicts so far are kept.  [Y] yes   [N] no"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
