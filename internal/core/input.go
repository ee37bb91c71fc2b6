package core

import "slices"

// Key is a logical key identifier, abstracted from physical key codes.
// Only KeyUp and KeyDown mean anything to the simulation; every other key
// is tracked but never read.
type Key string

const (
	KeyUp   Key = "up"   // Move player paddle up
	KeyDown Key = "down" // Move player paddle down
)

// InputState is the set of currently held keys.
// The event loop owns it: a key press inserts its key, a release removes it.
type InputState struct {
	held map[Key]struct{}
}

// NewInputState creates an empty input state.
func NewInputState() *InputState {
	return &InputState{held: make(map[Key]struct{})}
}

// Press marks a key as held. Pressing a held key is a no-op.
func (s *InputState) Press(k Key) {
	if s.held == nil {
		s.held = make(map[Key]struct{})
	}
	s.held[k] = struct{}{}
}

// Release marks a key as no longer held. Releasing an unheld key is a no-op.
func (s *InputState) Release(k Key) {
	delete(s.held, k)
}

// Held returns true if the key is currently held.
func (s *InputState) Held(k Key) bool {
	_, ok := s.held[k]
	return ok
}

// Len returns the number of held keys.
func (s *InputState) Len() int {
	return len(s.held)
}

// Keys returns the held keys in sorted order.
func (s *InputState) Keys() []Key {
	keys := make([]Key, 0, len(s.held))
	for k := range s.held {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Clear releases every key.
func (s *InputState) Clear() {
	for k := range s.held {
		delete(s.held, k)
	}
}

// Snapshot returns an immutable copy of the held keys for one tick.
// Later presses and releases do not affect a snapshot already taken.
func (s *InputState) Snapshot() InputFrame {
	frame := InputFrame{held: make(map[Key]struct{}, len(s.held))}
	for k := range s.held {
		frame.held[k] = struct{}{}
	}
	return frame
}

// InputFrame is the read-only set of keys held during one simulation tick.
// The zero value holds no keys.
type InputFrame struct {
	held map[Key]struct{}
}

// FrameOf builds a frame holding exactly the given keys.
func FrameOf(keys ...Key) InputFrame {
	frame := InputFrame{held: make(map[Key]struct{}, len(keys))}
	for _, k := range keys {
		frame.held[k] = struct{}{}
	}
	return frame
}

// Has returns true if the key was held for this tick.
func (f InputFrame) Has(k Key) bool {
	_, ok := f.held[k]
	return ok
}

// Len returns the number of held keys in the frame.
func (f InputFrame) Len() int {
	return len(f.held)
}
