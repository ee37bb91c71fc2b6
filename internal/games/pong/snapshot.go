package pong

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Snapshot is an immutable copy of the mutable game state.
// Front-ends that render on another goroutine hand off a Snapshot instead of
// the Game itself; replays and determinism tests compare snapshot hashes.
type Snapshot struct {
	Tick   uint64
	Player core.Entity
	Enemy  core.Entity
	Ball   core.Entity
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:   g.tick,
		Player: g.Player,
		Enemy:  g.Enemy,
		Ball:   g.Ball,
	}
}

// ApplySnapshot restores the movable entities and tick counter.
// Static entities keep their layout values.
func (g *Game) ApplySnapshot(snap Snapshot) {
	g.tick = snap.Tick
	g.Player = snap.Player
	g.Enemy = snap.Enemy
	g.Ball = snap.Ball
}

// Hash returns an FNV-1a hash over the exact bit patterns of the state.
// Two snapshots hash equal only if every coordinate is bit-identical.
func (snap Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], snap.Tick)
	h.Write(buf[:])

	for _, e := range [...]core.Entity{snap.Player, snap.Enemy, snap.Ball} {
		for _, v := range [...]float64{e.X, e.Y, e.DX, e.DY} {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			h.Write(buf[:])
		}
	}
	return h.Sum64()
}

// Speed returns the ball's velocity magnitude.
func (snap Snapshot) Speed() float64 {
	return math.Hypot(snap.Ball.DX, snap.Ball.DY)
}
