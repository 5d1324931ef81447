package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

func TestRenderPlainProfile(t *testing.T) {
	r := lipgloss.NewRenderer(&strings.Builder{})
	r.SetColorProfile(termenv.Ascii)
	sr := NewScreenRenderer(r)

	s := core.NewScreen(4, 2)
	s.Clear()
	s.SetColored(0, 0, 'o', core.ColorYellow)
	s.SetColored(1, 0, 'o', core.ColorYellow)
	s.Set(3, 1, '#')

	if got, want := sr.Render(s), "oo  \n   #"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderColorProfileGroupsRuns(t *testing.T) {
	r := lipgloss.NewRenderer(&strings.Builder{})
	r.SetColorProfile(termenv.ANSI256)
	sr := NewScreenRenderer(r)

	s := core.NewScreen(6, 1)
	s.Clear()
	for x := 0; x < 3; x++ {
		s.SetColored(x, 0, '█', core.ColorGreen)
	}

	out := sr.Render(s)
	if !strings.Contains(out, "███") {
		t.Errorf("same-colored cells should render as one run: %q", out)
	}
	if strings.Count(out, "\x1b[") < 1 {
		t.Errorf("colored run should carry an escape sequence: %q", out)
	}
}

func TestRenderUnknownColorFallsBack(t *testing.T) {
	r := lipgloss.NewRenderer(&strings.Builder{})
	r.SetColorProfile(termenv.Ascii)
	sr := NewScreenRenderer(r)

	s := core.NewScreen(1, 1)
	s.SetColored(0, 0, 'x', core.Color(200))
	if got := sr.Render(s); got != "x" {
		t.Errorf("Render() = %q, want %q", got, "x")
	}
}
