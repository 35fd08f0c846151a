package browse

import (
	"context"
	"log/slog"
	"slices"

	tea "charm.land/bubbletea/v2"

	"github.com/zayfen/InterviewQuestionBank/internal/question"
	"github.com/zayfen/InterviewQuestionBank/internal/router"
	"github.com/zayfen/InterviewQuestionBank/internal/screen"
	"github.com/zayfen/InterviewQuestionBank/internal/screens/detail"
	"github.com/zayfen/InterviewQuestionBank/internal/ui/components"
	"github.com/zayfen/InterviewQuestionBank/internal/ui/layout"
)

// Source lists questions and backs the detail screen.
// *api.Client implements it.
type Source interface {
	detail.Store
	ListQuestions(ctx context.Context, params question.SearchParams) (*question.Page, error)
	SearchQuestions(ctx context.Context, params question.SearchParams) (*question.Page, error)
}

// pageLoadedMsg carries one page of results. Seq identifies the request.
type pageLoadedMsg struct {
	Seq  int
	Page *question.Page
	Err  error
}

// BrowseScreen is a paged, filterable question list.
type BrowseScreen struct {
	source Source
	logger *slog.Logger

	params    question.SearchParams
	page      *question.Page
	selected  int
	seq       int
	loading   bool
	err       error
	search    components.TextInput
	searching bool
}

var _ screen.Screen = (*BrowseScreen)(nil)
var _ screen.KeyHintProvider = (*BrowseScreen)(nil)
var _ screen.BackHandler = (*BrowseScreen)(nil)

// New creates a BrowseScreen starting at the first unfiltered page.
func New(source Source, logger *slog.Logger) *BrowseScreen {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	search := components.NewTextInput("Search", "title or content", false, 100)
	search.Blur()
	return &BrowseScreen{
		source: source,
		logger: logger,
		params: question.SearchParams{Page: 1, Size: question.DefaultPageSize},
		search: search,
	}
}

func (b *BrowseScreen) Init() tea.Cmd {
	return b.load()
}

func (b *BrowseScreen) Title() string {
	return "Browse Questions"
}

// HandlesBack is true while searching or filtered: Esc closes the search
// box or clears the filters before it leaves the screen.
func (b *BrowseScreen) HandlesBack() bool {
	return b.searching || b.params.Filtered()
}

func (b *BrowseScreen) KeyHints() []layout.KeyHint {
	if b.searching {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Search"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "←→", Description: "Page"},
		{Key: "/", Description: "Search"},
		{Key: "c", Description: "Category"},
		{Key: "d", Description: "Difficulty"},
		{Key: "Enter", Description: "Open"},
	}
	if b.params.Filtered() {
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Clear"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

// Params returns the current search parameters.
func (b *BrowseScreen) Params() question.SearchParams {
	return b.params
}

func (b *BrowseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case pageLoadedMsg:
		return b.handleLoaded(msg)
	case detail.DeletedMsg:
		return b, b.load()
	case tea.KeyMsg:
		if b.searching {
			return b.handleSearchKey(msg)
		}
		return b.handleKey(msg)
	}

	if b.searching {
		var cmd tea.Cmd
		b.search, cmd = b.search.Update(msg)
		return b, cmd
	}
	return b, nil
}

// load fetches the page described by params. Earlier requests still in
// flight are superseded.
func (b *BrowseScreen) load() tea.Cmd {
	b.seq++
	b.loading = true
	b.err = nil

	seq := b.seq
	source, params := b.source, b.params
	return func() tea.Msg {
		var (
			page *question.Page
			err  error
		)
		if params.Query != "" {
			page, err = source.SearchQuestions(context.Background(), params)
		} else {
			page, err = source.ListQuestions(context.Background(), params)
		}
		return pageLoadedMsg{Seq: seq, Page: page, Err: err}
	}
}

func (b *BrowseScreen) handleLoaded(msg pageLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Seq != b.seq {
		return b, nil
	}
	b.loading = false
	if msg.Err != nil {
		b.logger.Error("list questions", "error", msg.Err)
		b.err = msg.Err
		return b, nil
	}

	// The last page emptied out, e.g. after a delete.
	if msg.Page != nil && len(msg.Page.Items) == 0 && b.params.Page > 1 {
		b.params.Page--
		return b, b.load()
	}

	b.page = msg.Page
	if b.page != nil {
		b.selected = min(b.selected, max(len(b.page.Items)-1, 0))
	}
	return b, nil
}

func (b *BrowseScreen) handleSearchKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		b.searching = false
		b.search.Blur()
		b.params.Query = b.search.Value()
		return b, b.resetAndLoad()
	case "esc":
		b.searching = false
		b.search.Blur()
		b.search.SetValue(b.params.Query)
		return b, nil
	}
	var cmd tea.Cmd
	b.search, cmd = b.search.Update(msg)
	return b, cmd
}

func (b *BrowseScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if b.selected > 0 {
			b.selected--
		}
	case "down", "j":
		if b.page != nil && b.selected < len(b.page.Items)-1 {
			b.selected++
		}
	case "left", "h", "pgup":
		if b.params.Page > 1 {
			b.params.Page--
			b.selected = 0
			return b, b.load()
		}
	case "right", "l", "pgdown":
		if b.page != nil && b.params.Page < b.page.Pages {
			b.params.Page++
			b.selected = 0
			return b, b.load()
		}
	case "/":
		b.searching = true
		b.search.SetValue(b.params.Query)
		return b, b.search.Focus()
	case "c":
		b.params.Category = cycle(question.AllCategories(), b.params.Category)
		return b, b.resetAndLoad()
	case "d":
		b.params.Difficulty = cycle(question.AllDifficulties(), b.params.Difficulty)
		return b, b.resetAndLoad()
	case "r":
		return b, b.load()
	case "esc":
		if b.params.Filtered() {
			b.params.Query = ""
			b.params.Category = ""
			b.params.Difficulty = ""
			b.search.SetValue("")
			return b, b.resetAndLoad()
		}
	case "enter":
		if q := b.current(); q != nil {
			next := detail.New(b.source, q.ID, b.logger)
			return b, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}
	return b, nil
}

func (b *BrowseScreen) resetAndLoad() tea.Cmd {
	b.params.Page = 1
	b.selected = 0
	return b.load()
}

func (b *BrowseScreen) current() *question.Question {
	if b.page == nil || b.selected < 0 || b.selected >= len(b.page.Items) {
		return nil
	}
	return &b.page.Items[b.selected]
}

// cycle steps through all, using the zero value for "any" before the
// first entry and after the last.
func cycle[T comparable](all []T, cur T) T {
	var zero T
	if len(all) == 0 {
		return zero
	}
	if cur == zero {
		return all[0]
	}
	i := slices.Index(all, cur)
	if i < 0 || i == len(all)-1 {
		return zero
	}
	return all[i+1]
}
