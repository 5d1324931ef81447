package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// ScreenRenderer turns Screen buffers into styled strings for one output.
// SSH sessions each get their own so colors match the client terminal.
type ScreenRenderer struct {
	styles map[core.Color]lipgloss.Style
	plain  lipgloss.Style
}

// NewScreenRenderer builds the color styles for r. A nil r uses the
// process's default output.
func NewScreenRenderer(r *lipgloss.Renderer) *ScreenRenderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	sr := &ScreenRenderer{
		styles: make(map[core.Color]lipgloss.Style, int(core.NumColors)),
		plain:  r.NewStyle(),
	}
	for c := core.ColorDefault + 1; c < core.NumColors; c++ {
		sr.styles[c] = r.NewStyle().Foreground(lipgloss.Color(c.ANSI()))
	}
	return sr
}

// Render converts a Screen buffer to a styled string.
// Adjacent cells with the same color share one escape sequence.
func (sr *ScreenRenderer) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}

			style, ok := sr.styles[color]
			if !ok {
				style = sr.plain
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

var defaultRenderer = NewScreenRenderer(nil)

// RenderScreen renders to the process's own terminal.
func RenderScreen(s *core.Screen) string {
	return defaultRenderer.Render(s)
}
