package interview

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/zayfen/InterviewQuestionBank/internal/api"
	"github.com/zayfen/InterviewQuestionBank/internal/selection"
	"github.com/zayfen/InterviewQuestionBank/internal/ui/components"
	"github.com/zayfen/InterviewQuestionBank/internal/ui/theme"
)

// renderQuestionView renders the current question.
func (s *InterviewScreen) renderQuestionView(width, height int) string {
	q, ok := s.state.CurrentQuestion()
	if !ok {
		return renderEmpty(width)
	}
	cw := components.ContentWidth(width)

	var b strings.Builder

	// Position and timer line.
	mins := int(s.elapsed.Minutes())
	secs := int(s.elapsed.Seconds()) % 60

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Q %d/%d", s.state.CurrentIndex()+1, s.state.TotalQuestions()))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s %d:%02d",
			lipgloss.NewStyle().Foreground(theme.Accent).Render("T"), mins, secs))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString("  " + components.NewProgressBar("", s.state.Progress(), true, max(width-4, 10)).View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n")

	if s.shortfall > 0 {
		b.WriteString(theme.WarningText.Render(fmt.Sprintf(
			"  Only %d of %d requested questions were available.",
			s.state.TotalQuestions(), s.state.TotalQuestions()+s.shortfall)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.QuestionCard(q, cw)))
	b.WriteString("\n\n")

	if s.state.ShowAnalysis() {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.AnalysisCard(q, cw)))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render(theme.Hint.Render("Press a to reveal the analysis")))
	}

	return b.String()
}

// renderConfirm renders the end-of-interview confirmation.
func renderConfirm(c components.Confirm, width int) string {
	return "\n\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, c.View())
}

// renderLoading renders the waiting state.
func renderLoading(width int, spec selection.Spec) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  " + describeSpec(spec) + "...")
}

// renderEmpty is shown when the server returned no questions.
func renderEmpty(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Warning).
		Render("\n\n\n  No questions matched this selection.\n\n  Press Enter to finish.")
}

// renderError renders a failed request with a retry hint.
func renderError(width int, err error) string {
	msg := fmt.Sprintf("\n\n\n  Error: %s", err)

	var unavailable *api.ErrUnavailable
	var invalid *selection.InvalidSpecError
	switch {
	case errors.As(err, &unavailable):
		msg += "\n\n  Is the question bank running?"
	case errors.As(err, &invalid):
		msg += "\n\n  Adjust the selection and try again."
	}
	msg += "\n\n  Press r to retry or Esc to go back."

	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(msg)
}

func describeSpec(spec selection.Spec) string {
	switch s := spec.(type) {
	case selection.PresetSpec:
		if p, ok := selection.LookupPreset(s.Key); ok {
			return fmt.Sprintf("Preparing the %s interview", p.Name)
		}
		return fmt.Sprintf("Preparing the %q interview", s.Key)
	case selection.BucketSpec:
		return fmt.Sprintf("Selecting %d easy, %d medium and %d hard questions", s.Easy, s.Medium, s.Hard)
	case selection.FilterSpec:
		return fmt.Sprintf("Selecting %d questions", s.Count)
	}
	return "Preparing your interview"
}
