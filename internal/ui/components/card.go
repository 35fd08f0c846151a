package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/zayfen/InterviewQuestionBank/internal/question"
	"github.com/zayfen/InterviewQuestionBank/internal/ui/theme"
)

// ContentWidth returns the inner width used for cards on a frame of frameWidth.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 100)
}

// QuestionCard renders a question's title, badges and body at width cw.
func QuestionCard(q question.Question, cw int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(q.Title))
	b.WriteString("\n")
	b.WriteString(theme.DifficultyBadge(q.Difficulty) + "  " + theme.CategoryBadge(q.Category))
	if len(q.Tags) > 0 {
		b.WriteString("  " + theme.Hint.Render(strings.Join(q.Tags, ", ")))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(q.Content))

	return theme.Card.Width(cw).Render(b.String())
}

// AnalysisCard renders a question's reference analysis, or a placeholder
// when it has none.
func AnalysisCard(q question.Question, cw int) string {
	body := q.Analysis
	if !q.HasAnalysis() {
		body = theme.Hint.Render("No analysis for this question yet.")
	}
	heading := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Analysis")
	return theme.AnalysisCard.Width(cw).Render(heading + "\n\n" + theme.Body.Render(body))
}

// Truncate shortens s to at most n display cells, adding an ellipsis.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > n {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
