package replay

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

// record drives a game for ticks steps, pressing and releasing keys per the
// script, and returns the finished recording with the game's final state.
func record(ticks int, script map[int][]storage.InputEvent) (storage.Recording, pong.Snapshot) {
	g := pong.New()
	state := core.NewInputState()
	rec := NewRecorder()

	for i := range ticks {
		for _, ev := range script[i] {
			if ev.Pressed {
				state.Press(ev.Key)
			} else {
				state.Release(ev.Key)
			}
			rec.Record(ev.Key, ev.Pressed)
		}
		g.Step(state.Snapshot())
		rec.Advance()
	}

	snap := g.Snapshot()
	return rec.Finish(snap.Hash(), "test", 60), snap
}

func press(k core.Key) storage.InputEvent   { return storage.InputEvent{Key: k, Pressed: true} }
func release(k core.Key) storage.InputEvent { return storage.InputEvent{Key: k, Pressed: false} }

func TestPlayReproducesSession(t *testing.T) {
	script := map[int][]storage.InputEvent{
		0:   {press(core.KeyDown)},
		120: {release(core.KeyDown), press(core.KeyUp)},
		300: {press(core.KeyDown)}, // Both held
		400: {release(core.KeyUp), release(core.KeyDown)},
		650: {press(core.Key("space"))},
	}
	rec, want := record(1200, script)

	if rec.Ticks != 1200 {
		t.Fatalf("Ticks = %d, expected 1200", rec.Ticks)
	}
	if len(rec.Events) != 7 {
		t.Fatalf("len(Events) = %d, expected 7", len(rec.Events))
	}

	got, err := Play(rec)
	if err != nil {
		t.Fatalf("Play() failed: %v", err)
	}
	if got != want {
		t.Errorf("replayed %+v, expected %+v", got, want)
	}
}

func TestPlayWithoutEvents(t *testing.T) {
	rec, want := record(600, nil)

	got, err := Play(rec)
	if err != nil {
		t.Fatalf("Play() failed: %v", err)
	}
	if got.Hash() != want.Hash() {
		t.Error("idle replay should match the idle run")
	}
}

func TestPlayDetectsDivergence(t *testing.T) {
	rec, _ := record(300, map[int][]storage.InputEvent{10: {press(core.KeyUp)}})
	rec.FinalHash ^= 1

	_, err := Play(rec)
	if !errors.Is(err, ErrDiverged) {
		t.Errorf("Play() error = %v, expected ErrDiverged", err)
	}
}

func TestPlayEmpty(t *testing.T) {
	if _, err := Play(storage.Recording{}); !errors.Is(err, ErrEmpty) {
		t.Errorf("Play() error = %v, expected ErrEmpty", err)
	}
}

func TestPlayRejectsUnorderedEvents(t *testing.T) {
	rec := storage.Recording{
		Ticks: 20,
		Events: []storage.InputEvent{
			{Tick: 5, Key: core.KeyUp, Pressed: true},
			{Tick: 3, Key: core.KeyUp, Pressed: false},
		},
	}
	_, err := Play(rec)
	if err == nil || errors.Is(err, ErrDiverged) {
		t.Errorf("Play() error = %v, expected an ordering error", err)
	}
}

func TestPlayIgnoresTrailingEvents(t *testing.T) {
	rec, want := record(50, nil)
	// A release after the last tick, as left behind when quitting mid-press
	rec.Events = append(rec.Events, storage.InputEvent{Tick: 50, Key: core.KeyDown, Pressed: false})

	got, err := Play(rec)
	if err != nil {
		t.Fatalf("Play() failed: %v", err)
	}
	if got != want {
		t.Error("trailing events should not change the outcome")
	}
}

func TestRecorderRestart(t *testing.T) {
	r := NewRecorder()
	r.Record(core.KeyDown, true)
	r.Advance()
	r.Advance()
	r.Record(core.KeyDown, false)

	r.Restart([]core.Key{core.KeyUp})

	if r.Ticks() != 0 {
		t.Errorf("Ticks() = %d after restart, expected 0", r.Ticks())
	}
	rec := r.Finish(0, "test", 60)
	if len(rec.Events) != 1 || rec.Events[0] != (storage.InputEvent{Tick: 0, Key: core.KeyUp, Pressed: true}) {
		t.Errorf("events after restart = %+v, expected one KeyUp press at tick 0", rec.Events)
	}
}

func TestFinishCopiesEvents(t *testing.T) {
	r := NewRecorder()
	r.Record(core.KeyUp, true)
	rec := r.Finish(7, "play", 30)

	r.Restart(nil)
	r.Record(core.KeyDown, true)

	if rec.Events[0].Key != core.KeyUp {
		t.Error("Finish() result changed after the recorder was reused")
	}
	if rec.FinalHash != 7 || rec.Source != "play" || rec.TickRate != 30 {
		t.Errorf("metadata = %+v", rec)
	}
}
