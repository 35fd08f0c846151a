package setup

import (
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zayfen/InterviewQuestionBank/internal/question"
	"github.com/zayfen/InterviewQuestionBank/internal/router"
	"github.com/zayfen/InterviewQuestionBank/internal/screen"
	"github.com/zayfen/InterviewQuestionBank/internal/screens/interview"
	"github.com/zayfen/InterviewQuestionBank/internal/selection"
	"github.com/zayfen/InterviewQuestionBank/internal/ui/components"
	"github.com/zayfen/InterviewQuestionBank/internal/ui/layout"
	"github.com/zayfen/InterviewQuestionBank/internal/ui/theme"
)

// Mode is the kind of selection being configured.
type Mode int

const (
	ModePreset Mode = iota
	ModeBuckets
	ModeRandom
)

var modeLabels = []string{"Presets", "Custom mix", "Random"}

// Bucket and random count limits accepted by the question bank.
const (
	MaxBucket      = 10
	MaxRandomCount = 50
)

// Random-mode focus targets.
const (
	fieldCount = iota
	fieldCategories
	fieldDifficulties
)

// SetupScreen lets the user pick how interview questions are selected.
type SetupScreen struct {
	resolver interview.Resolver
	logger   *slog.Logger
	mode     Mode

	presets components.Menu

	buckets     []components.Counter
	bucketFocus int

	count        components.Counter
	categories   components.MultiSelect
	difficulties components.MultiSelect
	randomFocus  int
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a new SetupScreen.
func New(resolver interview.Resolver, logger *slog.Logger) *SetupScreen {
	s := &SetupScreen{resolver: resolver, logger: logger}

	var items []components.MenuItem
	for _, p := range selection.KnownPresets() {
		spec := p.Spec()
		items = append(items, components.MenuItem{
			Label:       fmt.Sprintf("%-14s %2d questions", p.Name, p.Total()),
			Description: fmt.Sprintf("%d easy · %d medium · %d hard", p.Easy, p.Medium, p.Hard),
			Action:      func() tea.Cmd { return s.start(spec) },
		})
	}
	s.presets = components.NewMenu(items)

	def := selection.DefaultBuckets()
	s.buckets = []components.Counter{
		components.NewCounter("Easy", def.Easy, 0, MaxBucket),
		components.NewCounter("Medium", def.Medium, 0, MaxBucket),
		components.NewCounter("Hard", def.Hard, 0, MaxBucket),
	}

	s.count = components.NewCounter("Count", 5, 1, MaxRandomCount)

	cats := question.AllCategories()
	catLabels := make([]string, len(cats))
	for i, c := range cats {
		catLabels[i] = c.Label()
	}
	s.categories = components.NewMultiSelect(catLabels)

	diffs := question.AllDifficulties()
	diffLabels := make([]string, len(diffs))
	for i, d := range diffs {
		diffLabels[i] = d.Label()
	}
	s.difficulties = components.NewMultiSelect(diffLabels)

	return s
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

func (s *SetupScreen) Title() string {
	return "Interview Setup"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab", Description: "Mode"}}
	switch s.mode {
	case ModePreset:
		hints = append(hints, layout.KeyHint{Key: "↑↓", Description: "Preset"})
	case ModeBuckets:
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Field"},
			layout.KeyHint{Key: "←→", Description: "Adjust"})
	case ModeRandom:
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Move"},
			layout.KeyHint{Key: "←→", Description: "Count"},
			layout.KeyHint{Key: "Space", Description: "Toggle"})
	}
	return append(hints,
		layout.KeyHint{Key: "Enter", Description: "Start"},
		layout.KeyHint{Key: "Esc", Description: "Back"})
}

// Mode returns the active mode.
func (s *SetupScreen) Mode() Mode {
	return s.mode
}

// Spec returns the selection the current mode would start. Preset mode
// returns the highlighted preset.
func (s *SetupScreen) Spec() selection.Spec {
	switch s.mode {
	case ModeBuckets:
		return selection.BucketSpec{
			Easy:   s.buckets[0].Value,
			Medium: s.buckets[1].Value,
			Hard:   s.buckets[2].Value,
		}
	case ModeRandom:
		spec := selection.FilterSpec{Count: s.count.Value}
		cats := question.AllCategories()
		for i, on := range s.categories.Checked {
			if on {
				spec.Categories = append(spec.Categories, cats[i])
			}
		}
		diffs := question.AllDifficulties()
		for i, on := range s.difficulties.Checked {
			if on {
				spec.Difficulties = append(spec.Difficulties, diffs[i])
			}
		}
		return spec
	}
	return selection.KnownPresets()[s.presets.Selected].Spec()
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "tab":
		s.mode = (s.mode + 1) % Mode(len(modeLabels))
		return s, nil
	case "shift+tab":
		s.mode = (s.mode + Mode(len(modeLabels)) - 1) % Mode(len(modeLabels))
		return s, nil
	}

	switch s.mode {
	case ModePreset:
		var cmd tea.Cmd
		s.presets, cmd = s.presets.Update(msg)
		return s, cmd
	case ModeBuckets:
		return s.updateBuckets(kmsg)
	case ModeRandom:
		return s.updateRandom(kmsg)
	}
	return s, nil
}

func (s *SetupScreen) updateBuckets(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if s.bucketFocus > 0 {
			s.bucketFocus--
		}
	case "down", "j":
		if s.bucketFocus < len(s.buckets)-1 {
			s.bucketFocus++
		}
	case "enter":
		return s, s.start(s.Spec())
	default:
		s.buckets[s.bucketFocus] = s.buckets[s.bucketFocus].Update(msg)
	}
	return s, nil
}

func (s *SetupScreen) updateRandom(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	if key == "enter" {
		return s, s.start(s.Spec())
	}

	switch s.randomFocus {
	case fieldCount:
		switch key {
		case "down", "j":
			s.randomFocus = fieldCategories
			s.categories.Selected = 0
		default:
			s.count = s.count.Update(msg)
		}
	case fieldCategories:
		switch {
		case (key == "up" || key == "k") && s.categories.Selected == 0:
			s.randomFocus = fieldCount
		case (key == "down" || key == "j") && s.categories.Selected == len(s.categories.Options)-1:
			s.randomFocus = fieldDifficulties
			s.difficulties.Selected = 0
		default:
			s.categories = s.categories.Update(msg)
		}
	case fieldDifficulties:
		if (key == "up" || key == "k") && s.difficulties.Selected == 0 {
			s.randomFocus = fieldCategories
			s.categories.Selected = len(s.categories.Options) - 1
		} else {
			s.difficulties = s.difficulties.Update(msg)
		}
	}
	return s, nil
}

// start pushes an interview for spec.
func (s *SetupScreen) start(spec selection.Spec) tea.Cmd {
	next := interview.New(s.resolver, spec, s.logger)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *SetupScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderTabs()))
	b.WriteString("\n\n")

	var body string
	switch s.mode {
	case ModePreset:
		body = s.presets.View()
	case ModeBuckets:
		body = s.renderBuckets()
	case ModeRandom:
		body = s.renderRandom()
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Card.Width(min(components.ContentWidth(width), 76)).Render(body)))
	return b.String()
}

func (s *SetupScreen) renderTabs() string {
	parts := make([]string, len(modeLabels))
	for i, label := range modeLabels {
		if Mode(i) == s.mode {
			parts[i] = theme.Selected.Render("[ " + label + " ]")
		} else {
			parts[i] = theme.Unselected.Render("  " + label + "  ")
		}
	}
	return strings.Join(parts, "  ")
}

func (s *SetupScreen) renderBuckets() string {
	var b strings.Builder
	for i, c := range s.buckets {
		b.WriteString(c.View(i == s.bucketFocus))
		b.WriteString("\n")
	}
	spec := s.Spec().(selection.BucketSpec)
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Total: %d questions", spec.Total())))
	if spec.Total() == 0 {
		b.WriteString("\n")
		b.WriteString(theme.WarningText.Render("Nothing selected; the session will be empty."))
	}
	return b.String()
}

func (s *SetupScreen) renderRandom() string {
	cats := strings.Split(strings.TrimRight(s.categories.View(s.randomFocus == fieldCategories), "\n"), "\n")
	half := (len(cats) + 1) / 2
	catCols := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(34).Render(strings.Join(cats[:half], "\n")),
		lipgloss.NewStyle().Width(30).Render(strings.Join(cats[half:], "\n")),
	)

	var b strings.Builder
	b.WriteString(s.count.View(s.randomFocus == fieldCount))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Render("Categories (none = any)"))
	b.WriteString("\n")
	b.WriteString(catCols)
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("Difficulties (none = any)"))
	b.WriteString("\n")
	b.WriteString(s.difficulties.View(s.randomFocus == fieldDifficulties))
	return b.String()
}
