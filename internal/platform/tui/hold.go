package tui

import (
	"slices"
	"time"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// repeatDelay covers the pause most terminals leave between the first key
// press and the start of auto-repeat.
const repeatDelay = 500 * time.Millisecond

// holdTracker turns the press-only key stream of a terminal into held keys.
// A key stays held until no repeat has arrived for the hold duration.
type holdTracker struct {
	initial  time.Duration
	hold     time.Duration
	deadline map[core.Key]time.Time
}

func newHoldTracker(hold time.Duration) *holdTracker {
	return &holdTracker{
		initial:  max(hold, repeatDelay),
		hold:     hold,
		deadline: make(map[core.Key]time.Time),
	}
}

// Press records a press or repeat at now. It returns true when k was not
// already held.
func (h *holdTracker) Press(k core.Key, now time.Time) bool {
	if _, held := h.deadline[k]; held {
		h.deadline[k] = now.Add(h.hold)
		return false
	}
	h.deadline[k] = now.Add(h.initial)
	return true
}

// Expire releases every key whose deadline has passed and returns them sorted.
func (h *holdTracker) Expire(now time.Time) []core.Key {
	var released []core.Key
	for k, d := range h.deadline {
		if !now.Before(d) {
			released = append(released, k)
			delete(h.deadline, k)
		}
	}
	slices.Sort(released)
	return released
}

// Held reports whether k is currently held.
func (h *holdTracker) Held(k core.Key) bool {
	_, ok := h.deadline[k]
	return ok
}
