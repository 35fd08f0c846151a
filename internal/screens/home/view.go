package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/zayfen/InterviewQuestionBank/internal/ui/theme"
)

const titleFull = ` ██╗ ██████╗ ██████╗
 ██║██╔═══██╗██╔══██╗
 ██║██║   ██║██████╔╝
 ██║██║▄▄ ██║██╔══██╗
 ██║╚██████╔╝██████╔╝
 ╚═╝ ╚══▀▀═╝ ╚═════╝`

const titleCompact = "I · Q · B"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 60)
}

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(art) +
			"\n" + theme.Subtitle.Render("Interview Question Bank"))
}

// renderStatusBar shows whether the question bank answered its health check.
func renderStatusBar(h healthState, host string, cw int) string {
	var status string
	switch {
	case h.checking:
		status = theme.Subtitle.Render("○ checking " + host + "...")
	case h.err != nil:
		status = theme.ErrorText.Render("○ offline") + "  " + theme.Subtitle.Render(host)
	default:
		status = lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("● online") +
			"  " + theme.Subtitle.Render(fmt.Sprintf("%s (%s)", host, h.status))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(status)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected int, cw int, compact bool) string {
	if compact {
		return renderMenuCompact(items, selected, cw)
	}

	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Primary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	buttons := make([]string, len(items))
	for i, label := range items {
		if i == selected {
			buttons[i] = selectedBtn.Render("▸ " + label)
		} else {
			buttons[i] = normalBtn.Render(label)
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders menu items as plain lines for short terminals.
func renderMenuCompact(items []string, selected int, cw int) string {
	lines := make([]string, len(items))
	for i, label := range items {
		if i == selected {
			lines[i] = theme.Selected.Render(" ▸ " + label + " ")
		} else {
			lines[i] = theme.Unselected.Render("   " + label)
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderFrame wraps content in a double border, centered in the area.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
