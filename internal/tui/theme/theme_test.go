package theme

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestStyleChange_BySign(t *testing.T) {
	lipgloss.SetColorProfile(termenv.TrueColor)
	th := Default()

	up, down, flat := 2.5, -1.25, 0.0
	for name, pct := range map[string]*float64{"up": &up, "down": &down, "flat": &flat, "missing": nil} {
		got := th.StyleChange(pct, "text")
		if !strings.Contains(got, "\x1b[") {
			t.Fatalf("expected styled %s change, got %q", name, got)
		}
	}

	if th.StyleChange(&up, "") != "" {
		t.Fatal("empty text must stay empty")
	}
	if th.StyleChange(&up, "x") == th.StyleChange(&down, "x") {
		t.Fatal("gains and losses should render differently")
	}
}

func TestRenderActiveLine(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI)
	th := Default()
	if got := th.RenderActiveLine(false, "row"); got != "row" {
		t.Fatalf("inactive line must be unchanged, got %q", got)
	}
	if got := th.RenderActiveLine(true, "row"); !strings.Contains(got, "\x1b[") {
		t.Fatalf("expected styled active line, got %q", got)
	}
}
