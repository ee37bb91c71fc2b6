//go:build ebiten

package window

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/loop"
)

var ebitenKeys = map[string]ebiten.Key{
	"ArrowUp":   ebiten.KeyArrowUp,
	"ArrowDown": ebiten.KeyArrowDown,
	"W":         ebiten.KeyW,
	"S":         ebiten.KeyS,
}

// keyboard reads the ebiten key state.
type keyboard struct{}

func (keyboard) JustPressed(name string) bool  { return inpututil.IsKeyJustPressed(ebitenKeys[name]) }
func (keyboard) JustReleased(name string) bool { return inpututil.IsKeyJustReleased(ebitenKeys[name]) }
func (keyboard) Pressed(name string) bool      { return ebiten.IsKeyPressed(ebitenKeys[name]) }

// game adapts a loop to the ebiten.Game interface.
type game struct {
	loop *loop.Loop
}

// Update applies key transitions and advances the simulation one tick.
func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.loop.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.loop.Restart()
	}

	applyKeys(g.loop, keyboard{})
	g.loop.Tick()
	return nil
}

// Draw clears to the background and fills each entity rectangle.
func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(pong.Background.RGBA())
	for _, cmd := range g.loop.Frame() {
		r := cmd.Rect
		vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), cmd.Color.RGBA(), false)
	}
}

// Layout returns the fixed logical screen size.
func (g *game) Layout(int, int) (int, int) {
	return Width, Height
}

// Run opens the window and blocks until it is closed or Escape is pressed.
func Run(lp *loop.Loop, cfg config.Config) error {
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(Width, Height)
	ebiten.SetTPS(cfg.TickRate)
	ebiten.SetVsyncEnabled(cfg.Window.VSync)

	if err := ebiten.RunGame(&game{loop: lp}); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
