package browse

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/zayfen/InterviewQuestionBank/internal/ui/components"
	"github.com/zayfen/InterviewQuestionBank/internal/ui/theme"
)

func (b *BrowseScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var s strings.Builder
	s.WriteString("\n")
	s.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, b.renderFilters(cw)))
	s.WriteString("\n")
	s.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw))))
	s.WriteString("\n")

	switch {
	case b.err != nil:
		s.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("\n  Error: %s\n\n  Press r to retry.", b.err)))
		return s.String()
	case b.page == nil:
		s.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n  Loading questions..."))
		return s.String()
	case len(b.page.Items) == 0:
		s.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n  No questions found."))
		return s.String()
	}

	s.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, b.renderRows(cw)))
	s.WriteString("\n")

	status := fmt.Sprintf("Page %d/%d  ·  %d questions", b.page.Page, max(b.page.Pages, 1), b.page.Total)
	if b.loading {
		status += "  ·  loading..."
	}
	s.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(theme.Hint.Render(status)))
	return s.String()
}

func (b *BrowseScreen) renderFilters(cw int) string {
	if b.searching {
		return lipgloss.NewStyle().Width(cw).Render(b.search.View())
	}

	query := "none"
	if b.params.Query != "" {
		query = fmt.Sprintf("%q", b.params.Query)
	}
	category := "Any"
	if b.params.Category != "" {
		category = b.params.Category.Label()
	}
	difficulty := "Any"
	if b.params.Difficulty != "" {
		difficulty = b.params.Difficulty.Label()
	}

	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	value := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	line := label.Render("Search ") + value.Render(query) +
		label.Render("   Category ") + value.Render(category) +
		label.Render("   Difficulty ") + value.Render(difficulty)
	return lipgloss.NewStyle().Width(cw).Render(line)
}

func (b *BrowseScreen) renderRows(cw int) string {
	titleWidth := max(cw-28, 10)

	var s strings.Builder
	for i, q := range b.page.Items {
		id := fmt.Sprintf("#%-4d", q.ID)
		title := fmt.Sprintf("%-*s", titleWidth, components.Truncate(q.Title, titleWidth))
		badge := theme.DifficultyBadge(q.Difficulty)

		if i == b.selected {
			s.WriteString(theme.Selected.Render("▸ " + id + " " + title))
		} else {
			s.WriteString(theme.Unselected.Render("  " + id + " " + title))
		}
		s.WriteString("  " + badge + "\n")
	}
	return lipgloss.NewStyle().Width(cw).Render(s.String())
}
