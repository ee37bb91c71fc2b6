package tui

import (
	"math"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// cellAspect is the height of a terminal cell relative to its width.
const cellAspect = 2.0

// fullBlock fills a whole cell with the foreground colour.
const fullBlock = '█'

// Rasterize draws the commands into dst. The union of all command rectangles
// is scaled uniformly to fit the grid and centred; cells outside it are left
// blank. Every cell a rectangle overlaps takes its colour, and later commands
// paint over earlier ones.
func Rasterize(dst *core.Screen, cmds []core.DrawCommand, bg core.Color) {
	dst.Fill(core.Cell{Rune: ' ', Color: bg})
	if len(cmds) == 0 || dst.Width() == 0 || dst.Height() == 0 {
		return
	}

	view := union(cmds)
	if view.W <= 0 || view.H <= 0 {
		return
	}

	cw := math.Max(view.W/float64(dst.Width()), view.H/(cellAspect*float64(dst.Height())))
	ch := cw * cellAspect

	cols := min(int(math.Ceil(view.W/cw)), dst.Width())
	rows := min(int(math.Ceil(view.H/ch)), dst.Height())
	offX := (dst.Width() - cols) / 2
	offY := (dst.Height() - rows) / 2

	for _, cmd := range cmds {
		x0, x1 := core.CellSpan(cmd.Rect.X-view.X, cmd.Rect.W, cw)
		y0, y1 := core.CellSpan(cmd.Rect.Y-view.Y, cmd.Rect.H, ch)
		x0, x1 = max(x0, 0), min(x1, cols)
		y0, y1 = max(y0, 0), min(y1, rows)

		cell := core.Cell{Rune: fullBlock, Color: cmd.Color}
		dst.DrawRect(core.NewRect(offX+x0, offY+y0, x1-x0, y1-y0), cell)
	}
}

func union(cmds []core.DrawCommand) core.RectF {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range cmds {
		minX = math.Min(minX, c.Rect.X)
		minY = math.Min(minY, c.Rect.Y)
		maxX = math.Max(maxX, c.Rect.Right())
		maxY = math.Max(maxY, c.Rect.Bottom())
	}
	return core.RectF{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
