package window

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/loop"
)

// frame is one frame of fake keyboard state.
type frame struct {
	pressed, released, down map[string]bool
}

func (f frame) JustPressed(n string) bool  { return f.pressed[n] }
func (f frame) JustReleased(n string) bool { return f.released[n] }
func (f frame) Pressed(n string) bool      { return f.down[n] }

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

func TestApplyKeys(t *testing.T) {
	lp := loop.New(pong.New())

	applyKeys(lp, frame{pressed: set("ArrowDown"), down: set("ArrowDown")})
	if !reflect.DeepEqual(lp.Held(), []core.Key{core.KeyDown}) {
		t.Fatalf("held = %v, expected [down]", lp.Held())
	}

	// S joins while the arrow is still down, then the arrow is released
	applyKeys(lp, frame{pressed: set("S"), down: set("ArrowDown", "S")})
	applyKeys(lp, frame{released: set("ArrowDown"), down: set("S")})
	if !reflect.DeepEqual(lp.Held(), []core.Key{core.KeyDown}) {
		t.Errorf("held = %v, expected down to stay held via S", lp.Held())
	}

	applyKeys(lp, frame{released: set("S")})
	if len(lp.Held()) != 0 {
		t.Errorf("held = %v, expected none", lp.Held())
	}
}

func TestApplyKeysBothDirections(t *testing.T) {
	lp := loop.New(pong.New())
	applyKeys(lp, frame{pressed: set("W", "ArrowDown"), down: set("W", "ArrowDown")})

	want := []core.Key{core.KeyDown, core.KeyUp}
	if !reflect.DeepEqual(lp.Held(), want) {
		t.Errorf("held = %v, expected %v", lp.Held(), want)
	}
}
