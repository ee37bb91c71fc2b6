// Package window is the desktop front-end. The real implementation needs the
// ebiten build tag; the default build only reports that it is missing.
package window

import (
	"errors"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/loop"
)

// ErrUnsupported is returned by Run in builds without the ebiten tag.
var ErrUnsupported = errors.New("window: built without the 'ebiten' tag, rebuild with -tags ebiten")

// Width and Height are the window size in pixels, one pixel per logical unit.
const (
	Width  = 640
	Height = 480
)

// binding ties a simulation key to the physical keys that hold it.
type binding struct {
	key   core.Key
	names []string
}

var bindings = []binding{
	{core.KeyUp, []string{"ArrowUp", "W"}},
	{core.KeyDown, []string{"ArrowDown", "S"}},
}

// keySource reports the state of physical keys by name for one frame.
type keySource interface {
	JustPressed(name string) bool
	JustReleased(name string) bool
	Pressed(name string) bool
}

// applyKeys turns this frame's physical transitions into loop key events.
// A simulation key is released only when none of its physical keys is down.
func applyKeys(lp *loop.Loop, src keySource) {
	for _, b := range bindings {
		var pressed, released, down bool
		for _, n := range b.names {
			pressed = pressed || src.JustPressed(n)
			released = released || src.JustReleased(n)
			down = down || src.Pressed(n)
		}
		switch {
		case pressed:
			lp.KeyDown(b.key)
		case released && !down:
			lp.KeyUp(b.key)
		}
	}
}
