package home

import (
	"context"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/zayfen/InterviewQuestionBank/internal/api"
	"github.com/zayfen/InterviewQuestionBank/internal/router"
	"github.com/zayfen/InterviewQuestionBank/internal/screen"
	"github.com/zayfen/InterviewQuestionBank/internal/screens/browse"
	"github.com/zayfen/InterviewQuestionBank/internal/screens/interview"
	"github.com/zayfen/InterviewQuestionBank/internal/screens/setup"
	"github.com/zayfen/InterviewQuestionBank/internal/selection"
	"github.com/zayfen/InterviewQuestionBank/internal/ui/components"
)

// Backend is everything the home menu hands to the screens below it.
// *api.Client implements it.
type Backend interface {
	browse.Source
	Health(ctx context.Context) (*api.HealthStatus, error)
}

// Deps are the collaborators of the home screen.
type Deps struct {
	Backend  Backend
	Resolver interview.Resolver
	Logger   *slog.Logger
	// Host is shown in the status bar.
	Host string
}

type healthMsg struct {
	Status *api.HealthStatus
	Err    error
}

type healthState struct {
	checking bool
	status   string
	err      error
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	deps       Deps
	menu       components.Menu
	menuLabels []string
	health     healthState
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}

	menuLabels := []string{"BROWSE QUESTIONS", "MOCK INTERVIEW", "QUICK INTERVIEW", "EXIT"}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: browse.New(deps.Backend, deps.Logger)}
			}
		}},
		{Label: menuLabels[1], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: setup.New(deps.Resolver, deps.Logger)}
			}
		}},
		{Label: menuLabels[2], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: interview.New(deps.Resolver, selection.DefaultBuckets(), deps.Logger),
				}
			}
		}},
		{Label: menuLabels[3], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		deps:       deps,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	if h.deps.Backend == nil {
		return nil
	}
	h.health = healthState{checking: true}
	backend := h.deps.Backend
	return func() tea.Msg {
		status, err := backend.Health(context.Background())
		return healthMsg{Status: status, Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(healthMsg); ok {
		h.health = healthState{err: msg.Err}
		if msg.Err != nil {
			h.deps.Logger.Warn("health check failed", "error", msg.Err)
		} else if msg.Status != nil {
			h.health.status = msg.Status.Status
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 34 || width < 100

	cw := contentWidth(width)

	sections := []string{
		renderTitle(cw, compact),
		renderStatusBar(h.health, h.deps.Host, cw),
		renderMenu(h.menuLabels, h.menu.Selected, cw, compact),
	}

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
