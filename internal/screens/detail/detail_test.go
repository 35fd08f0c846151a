package detail

import (
	"net/http"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/zayfen/InterviewQuestionBank/internal/api"
	"github.com/zayfen/InterviewQuestionBank/internal/api/apitest"
	"github.com/zayfen/InterviewQuestionBank/internal/question"
)

var _ Store = (*api.Client)(nil)

func newScreen(t *testing.T) (*DetailScreen, *apitest.Server) {
	t.Helper()
	srv := apitest.NewServer(t,
		question.Question{ID: 7, Title: "Index types", Content: "B-tree vs hash",
			Category: question.CategoryDatabase, Difficulty: question.DifficultyMedium,
			Analysis: "B-tree supports ranges."},
	)
	cfg := api.DefaultConfig()
	cfg.BaseURL = srv.APIURL()
	client, err := api.New(cfg)
	if err != nil {
		t.Fatalf("client: %v", err)
	}

	d := New(client, 7, nil)
	d.Update(d.Init()())
	return d, srv
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestDetailScreen_Loads(t *testing.T) {
	d, _ := newScreen(t)
	if d.Title() != "Question #7" {
		t.Errorf("Title = %q", d.Title())
	}
	view := d.View(100, 40)
	if !strings.Contains(view, "Index types") {
		t.Error("expected title in view")
	}
	if strings.Contains(view, "B-tree supports ranges.") {
		t.Error("analysis should start hidden")
	}
}

func TestDetailScreen_ToggleAnalysis(t *testing.T) {
	d, _ := newScreen(t)
	d.Update(key('a'))
	if !strings.Contains(d.View(100, 40), "B-tree supports ranges.") {
		t.Error("expected analysis after a")
	}
	d.Update(key('a'))
	if strings.Contains(d.View(100, 40), "B-tree supports ranges.") {
		t.Error("expected analysis hidden after second a")
	}
}

func TestDetailScreen_NotFound(t *testing.T) {
	srv := apitest.NewServer(t)
	cfg := api.DefaultConfig()
	cfg.BaseURL = srv.APIURL()
	client, _ := api.New(cfg)

	d := New(client, 99, nil)
	d.Update(d.Init()())
	if !api.IsNotFound(d.err) {
		t.Fatalf("expected not found, got %v", d.err)
	}
	if !strings.Contains(d.View(100, 40), "Error:") {
		t.Error("expected error in view")
	}
}

func TestDetailScreen_DeleteCancelled(t *testing.T) {
	d, srv := newScreen(t)
	d.Update(key('x'))
	if !d.HandlesBack() {
		t.Fatal("expected prompt to capture Esc")
	}
	_, cmd := d.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil || d.confirm != nil {
		t.Fatal("esc should cancel the prompt")
	}
	if srv.Len() != 1 {
		t.Error("question should not be deleted")
	}
}

func TestDetailScreen_DeleteConfirmed(t *testing.T) {
	d, srv := newScreen(t)
	d.Update(key('x'))
	_, cmd := d.Update(key('y'))
	if cmd == nil {
		t.Fatal("expected delete command")
	}
	msg := cmd()
	done, ok := msg.(deleteDoneMsg)
	if !ok || done.Err != nil {
		t.Fatalf("unexpected delete result %#v", msg)
	}
	if srv.Len() != 0 {
		t.Errorf("expected question removed, %d left", srv.Len())
	}
	if last := srv.LastRequest(); last.Method != http.MethodDelete {
		t.Errorf("last method = %s", last.Method)
	}

	_, cmd = d.Update(done)
	if cmd == nil {
		t.Error("expected navigation after delete")
	}
}

func TestDetailScreen_DeleteFailure(t *testing.T) {
	d, srv := newScreen(t)
	srv.FailNext(http.StatusInternalServerError, "database is locked")

	d.Update(key('x'))
	_, cmd := d.Update(key('y'))
	_, next := d.Update(cmd())
	if next != nil {
		t.Error("failed delete should not navigate")
	}
	if !strings.Contains(d.View(100, 40), "database is locked") {
		t.Error("expected failure detail in view")
	}
}
