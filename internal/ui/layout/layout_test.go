package layout

import (
	"strings"
	"testing"
)

func TestRenderFooter_DropsHintsThatDoNotFit(t *testing.T) {
	hints := []KeyHint{
		{Key: "←/p", Description: "Previous"},
		{Key: "→/n", Description: "Next"},
		{Key: "a", Description: "Analysis"},
		{Key: "Esc", Description: "End"},
		{Key: "Ctrl+C", Description: "Quit"},
	}

	wide := RenderFooter(hints, 120)
	for _, h := range hints {
		if !strings.Contains(wide, h.Description) {
			t.Errorf("wide footer missing %q", h.Description)
		}
	}

	narrow := RenderFooter(hints, 40)
	if !strings.Contains(narrow, "Quit") {
		t.Error("narrow footer should keep the last hint")
	}
	if strings.Contains(narrow, "Analysis") {
		t.Error("narrow footer should drop middle hints")
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) {
		t.Error("expected too small below min width")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("expected min size to fit")
	}
}

func TestRenderMinSizeMessage(t *testing.T) {
	got := RenderMinSizeMessage(60, 20)
	if !strings.Contains(got, "60 x 20") {
		t.Errorf("expected current size in message, got %q", got)
	}
}
