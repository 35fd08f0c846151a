package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "A", Disabled: true},
		{Label: "B"},
		{Label: "C", Disabled: true},
		{Label: "D"},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("Selected = %d, want 3", m.Selected)
	}
}

func TestMenu_EnterRunsAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{{Label: "Go", Action: func() tea.Cmd { ran = true; return nil }}})
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !ran {
		t.Error("expected action to run")
	}
}

func TestConfirm(t *testing.T) {
	c := NewConfirm("Delete?")
	if c = c.Update(key('y')); c.Result != ConfirmYes {
		t.Errorf("Result = %v, want yes", c.Result)
	}

	c = NewConfirm("Delete?")
	if c = c.Update(tea.KeyPressMsg{Code: tea.KeyEscape}); c.Result != ConfirmNo {
		t.Errorf("Result = %v, want no", c.Result)
	}

	c = NewConfirm("Delete?")
	if c = c.Update(key('z')); c.Result != ConfirmPending {
		t.Errorf("Result = %v, want pending", c.Result)
	}
}

func TestMultiSelect(t *testing.T) {
	m := NewMultiSelect([]string{"a", "b", "c"})
	m = m.Update(key(' '))
	m = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m = m.Update(key('x'))

	got := m.Values()
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("Values = %v, want [a c]", got)
	}
}

func TestCounter_Clamps(t *testing.T) {
	c := NewCounter("Easy", 12, 0, 10)
	if c.Value != 10 {
		t.Fatalf("Value = %d, want 10", c.Value)
	}
	c = c.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if c.Value != 10 {
		t.Errorf("Value = %d, want 10 at max", c.Value)
	}
	for range 12 {
		c = c.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	}
	if c.Value != 0 {
		t.Errorf("Value = %d, want 0 at min", c.Value)
	}
}

func TestTextInput_NumericOnly(t *testing.T) {
	ti := NewTextInput("Page", "1", true, 3)
	ti, _ = ti.Update(key('a'))
	ti, _ = ti.Update(key('4'))
	if ti.Value() != "4" {
		t.Errorf("Value = %q, want %q", ti.Value(), "4")
	}
	n, err := ti.NumericValue()
	if err != nil || n != 4 {
		t.Errorf("NumericValue = %d, %v", n, err)
	}
}

func TestProgressBar_Width(t *testing.T) {
	view := NewProgressBar("", 0.5, true, 40).View()
	if w := lipgloss.Width(view); w != 40 {
		t.Errorf("width = %d, want 40", w)
	}
	if !strings.Contains(view, "50%") {
		t.Errorf("expected 50%% in %q", view)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("hello world", 6); got != "hello…" {
		t.Errorf("Truncate = %q, want %q", got, "hello…")
	}
}
