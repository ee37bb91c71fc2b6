// Package replay records key transitions of a session and re-runs them
// against a fresh game. The simulation is deterministic, so the key events
// and the tick count are enough to reproduce the final state bit for bit.
package replay

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

var (
	// ErrDiverged is returned when a replay ends in a different state than
	// the one recorded.
	ErrDiverged = errors.New("replay: final state diverged")
	// ErrEmpty is returned for a recording without any ticks.
	ErrEmpty = errors.New("replay: recording has no ticks")
)

// Recorder collects key transitions against the tick they precede.
// It is not safe for concurrent use; the loop that owns it serialises access.
type Recorder struct {
	tick   uint64
	events []storage.InputEvent
}

// NewRecorder creates an empty recorder at tick 0.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record notes a key press or release before the current tick.
func (r *Recorder) Record(k core.Key, pressed bool) {
	r.events = append(r.events, storage.InputEvent{Tick: r.tick, Key: k, Pressed: pressed})
}

// Advance moves to the next tick.
func (r *Recorder) Advance() {
	r.tick++
}

// Ticks returns the number of ticks recorded so far.
func (r *Recorder) Ticks() uint64 {
	return r.tick
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	return len(r.events)
}

// Restart drops everything recorded and starts over at tick 0 with the
// given keys already held.
func (r *Recorder) Restart(held []core.Key) {
	r.tick = 0
	r.events = r.events[:0]
	for _, k := range held {
		r.Record(k, true)
	}
}

// Finish packages the recording for storage.
func (r *Recorder) Finish(finalHash uint64, source string, tickRate int) storage.Recording {
	events := make([]storage.InputEvent, len(r.events))
	copy(events, r.events)
	return storage.Recording{
		Source:    source,
		TickRate:  tickRate,
		Ticks:     r.tick,
		FinalHash: finalHash,
		Events:    events,
	}
}

// Play re-runs a recording on a fresh classic game and returns the final
// snapshot. Events stamped at or after rec.Ticks never reach a step and are
// ignored.
func Play(rec storage.Recording) (pong.Snapshot, error) {
	if rec.Ticks == 0 {
		return pong.Snapshot{}, ErrEmpty
	}

	g := pong.New()
	state := core.NewInputState()
	next := 0

	for tick := uint64(0); tick < rec.Ticks; tick++ {
		for next < len(rec.Events) && rec.Events[next].Tick <= tick {
			ev := rec.Events[next]
			if ev.Tick < tick {
				return pong.Snapshot{}, fmt.Errorf("replay: event %d at tick %d is out of order", next, ev.Tick)
			}
			if ev.Pressed {
				state.Press(ev.Key)
			} else {
				state.Release(ev.Key)
			}
			next++
		}
		g.Step(state.Snapshot())
	}

	snap := g.Snapshot()
	if got := snap.Hash(); got != rec.FinalHash {
		return snap, fmt.Errorf("%w: recorded %016x, replayed %016x", ErrDiverged, rec.FinalHash, got)
	}
	return snap, nil
}
