package detail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zayfen/InterviewQuestionBank/internal/question"
	"github.com/zayfen/InterviewQuestionBank/internal/router"
	"github.com/zayfen/InterviewQuestionBank/internal/screen"
	"github.com/zayfen/InterviewQuestionBank/internal/ui/components"
	"github.com/zayfen/InterviewQuestionBank/internal/ui/layout"
	"github.com/zayfen/InterviewQuestionBank/internal/ui/theme"
)

// Store reads and deletes single questions. *api.Client implements it.
type Store interface {
	GetQuestion(ctx context.Context, id int64) (*question.Question, error)
	DeleteQuestion(ctx context.Context, id int64) (*question.Question, error)
}

// DeletedMsg is delivered to the screen below after a question was deleted.
type DeletedMsg struct {
	ID int64
}

type loadedMsg struct {
	Question *question.Question
	Err      error
}

type deleteDoneMsg struct {
	ID  int64
	Err error
}

// DetailScreen shows one question with its analysis.
type DetailScreen struct {
	store  Store
	logger *slog.Logger
	id     int64

	question     *question.Question
	loading      bool
	deleting     bool
	err          error
	showAnalysis bool
	confirm      *components.Confirm
}

var _ screen.Screen = (*DetailScreen)(nil)
var _ screen.KeyHintProvider = (*DetailScreen)(nil)
var _ screen.BackHandler = (*DetailScreen)(nil)

// New creates a DetailScreen that loads question id.
func New(store Store, id int64, logger *slog.Logger) *DetailScreen {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DetailScreen{store: store, id: id, logger: logger}
}

func (d *DetailScreen) Init() tea.Cmd {
	d.loading = true
	store, id := d.store, d.id
	return func() tea.Msg {
		q, err := store.GetQuestion(context.Background(), id)
		return loadedMsg{Question: q, Err: err}
	}
}

func (d *DetailScreen) Title() string {
	return fmt.Sprintf("Question #%d", d.id)
}

// HandlesBack is true while the delete prompt is open.
func (d *DetailScreen) HandlesBack() bool { return d.confirm != nil }

func (d *DetailScreen) KeyHints() []layout.KeyHint {
	if d.confirm != nil {
		return []layout.KeyHint{
			{Key: "y", Description: "Delete"},
			{Key: "n", Description: "Keep"},
		}
	}
	return []layout.KeyHint{
		{Key: "a", Description: "Analysis"},
		{Key: "x", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		d.loading = false
		if msg.Err != nil {
			d.logger.Error("load question", "id", d.id, "error", msg.Err)
			d.err = msg.Err
			return d, nil
		}
		d.question = msg.Question
		return d, nil

	case deleteDoneMsg:
		d.deleting = false
		if msg.Err != nil {
			d.logger.Error("delete question", "id", msg.ID, "error", msg.Err)
			d.err = msg.Err
			return d, nil
		}
		d.logger.Info("question deleted", "id", msg.ID)
		id := msg.ID
		return d, tea.Sequence(
			func() tea.Msg { return router.PopScreenMsg{} },
			func() tea.Msg { return DeletedMsg{ID: id} },
		)

	case tea.KeyMsg:
		return d.handleKey(msg)
	}
	return d, nil
}

func (d *DetailScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if d.confirm != nil {
		c := d.confirm.Update(msg)
		switch c.Result {
		case components.ConfirmYes:
			d.confirm = nil
			return d, d.delete()
		case components.ConfirmNo:
			d.confirm = nil
		default:
			d.confirm = &c
		}
		return d, nil
	}

	if d.question == nil || d.deleting {
		return d, nil
	}

	switch msg.String() {
	case "a", "space", " ":
		d.showAnalysis = !d.showAnalysis
	case "x", "delete":
		c := components.NewConfirm(fmt.Sprintf("Delete %q?", components.Truncate(d.question.Title, 40)))
		d.confirm = &c
	}
	return d, nil
}

func (d *DetailScreen) delete() tea.Cmd {
	d.deleting = true
	d.err = nil
	store, id := d.store, d.id
	return func() tea.Msg {
		_, err := store.DeleteQuestion(context.Background(), id)
		return deleteDoneMsg{ID: id, Err: err}
	}
}

func (d *DetailScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	switch {
	case d.loading:
		return center.Foreground(theme.TextDim).Render("\n\n\n  Loading question...")
	case d.question == nil && d.err != nil:
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press Esc to go back.", d.err))
	case d.question == nil:
		return ""
	}

	cw := components.ContentWidth(width)
	q := *d.question

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.QuestionCard(q, cw)))
	b.WriteString("\n\n")

	if d.showAnalysis {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.AnalysisCard(q, cw)))
		b.WriteString("\n\n")
	}

	meta := fmt.Sprintf("Created %s", q.CreatedAt.Format("2006-01-02 15:04"))
	if q.UpdatedAt != nil {
		meta += fmt.Sprintf("   Updated %s", q.UpdatedAt.Format("2006-01-02 15:04"))
	}
	b.WriteString(center.Render(theme.Hint.Render(meta)))

	if d.err != nil {
		b.WriteString("\n\n")
		b.WriteString(center.Render(theme.ErrorText.Render(fmt.Sprintf("Delete failed: %s", d.err))))
	}
	if d.confirm != nil {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, d.confirm.View()))
	}
	return b.String()
}
