package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// palette caches one lipgloss style per colour for a renderer.
type palette struct {
	r      *lipgloss.Renderer
	styles map[core.Color]lipgloss.Style
}

func newPalette(r *lipgloss.Renderer) *palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &palette{r: r, styles: make(map[core.Color]lipgloss.Style)}
}

func (p *palette) style(c core.Color) lipgloss.Style {
	st, ok := p.styles[c]
	if !ok {
		st = p.r.NewStyle().Foreground(lipgloss.Color(c.Hex()))
		p.styles[c] = st
	}
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
// A nil renderer uses lipgloss' default.
func RenderScreen(r *lipgloss.Renderer, s *core.Screen) string {
	return newPalette(r).render(s)
}

func (p *palette) render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if strings.TrimSpace(run.String()) == "" {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(p.style(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
