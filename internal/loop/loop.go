// Package loop ties held-key state, the pong game and an optional recorder
// together. Front-ends feed it key transitions and tick it at a fixed rate.
package loop

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/logging"
	"github.com/vovakirdan/tui-pong/internal/replay"
)

// Loop is a single-threaded driver. Callers must not use it from more than
// one goroutine at a time.
type Loop struct {
	game     *pong.Game
	input    *core.InputState
	recorder *replay.Recorder
	logger   *log.Logger
	paused   bool
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger used for per-tick events.
func WithLogger(l *log.Logger) Option {
	return func(lp *Loop) { lp.logger = l }
}

// WithRecorder records every key transition and tick.
func WithRecorder(r *replay.Recorder) Option {
	return func(lp *Loop) { lp.recorder = r }
}

// New creates a loop around game.
func New(game *pong.Game, opts ...Option) *Loop {
	lp := &Loop{
		game:   game,
		input:  core.NewInputState(),
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(lp)
	}
	return lp
}

// Game returns the driven game.
func (lp *Loop) Game() *pong.Game {
	return lp.game
}

// Recorder returns the attached recorder, or nil.
func (lp *Loop) Recorder() *replay.Recorder {
	return lp.recorder
}

// KeyDown marks k as held. Repeated presses of a held key are ignored.
func (lp *Loop) KeyDown(k core.Key) {
	if lp.input.Held(k) {
		return
	}
	lp.input.Press(k)
	if lp.recorder != nil {
		lp.recorder.Record(k, true)
	}
}

// KeyUp releases k. Releasing a key that is not held is a no-op.
func (lp *Loop) KeyUp(k core.Key) {
	if !lp.input.Held(k) {
		return
	}
	lp.input.Release(k)
	if lp.recorder != nil {
		lp.recorder.Record(k, false)
	}
}

// Held returns the held keys in sorted order.
func (lp *Loop) Held() []core.Key {
	return lp.input.Keys()
}

// Tick advances the game by one step with the currently held keys.
// While paused it returns the current tick without events.
func (lp *Loop) Tick() core.StepResult {
	if lp.paused {
		return core.StepResult{Tick: lp.game.Tick()}
	}

	res := lp.game.Step(lp.input.Snapshot())
	if lp.recorder != nil {
		lp.recorder.Advance()
	}

	for _, ev := range res.Events {
		lp.logger.Debug("event", "tick", res.Tick, "kind", ev.Kind, "side", ev.Side)
	}
	return res
}

// Frame returns the draw commands for the current state.
func (lp *Loop) Frame() []core.DrawCommand {
	return lp.game.DrawList()
}

// Paused reports whether ticks are suspended.
func (lp *Loop) Paused() bool {
	return lp.paused
}

// TogglePause suspends or resumes ticking.
func (lp *Loop) TogglePause() {
	lp.paused = !lp.paused
	lp.logger.Debug("pause toggled", "paused", lp.paused, "tick", lp.game.Tick())
}

// Restart resets the game to its starting layout and unpauses. Held keys
// stay held; a recording starts over from them.
func (lp *Loop) Restart() {
	lp.game.Reset()
	lp.paused = false
	if lp.recorder != nil {
		lp.recorder.Restart(lp.input.Keys())
	}
	lp.logger.Info("game restarted")
}

// Snapshot returns the current game state.
func (lp *Loop) Snapshot() pong.Snapshot {
	return lp.game.Snapshot()
}
