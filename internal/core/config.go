package core

// RuntimeConfig contains configuration passed to front-ends at start-up.
type RuntimeConfig struct {
	ScreenW int // Screen width in characters
	ScreenH int // Screen height in characters
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}

// EventKind identifies something that happened during a tick.
type EventKind int

const (
	EventPaddleBounce EventKind = iota // Ball rebounded off a paddle
	EventGoal                          // Ball touched a goal strip and was re-centred
	EventWallBounce                    // Ball rebounded off the top or bottom of the field
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventPaddleBounce:
		return "paddle_bounce"
	case EventGoal:
		return "goal"
	case EventWallBounce:
		return "wall_bounce"
	default:
		return "unknown"
	}
}

// Side tells which half of the field an event belongs to.
type Side int

const (
	SideNone   Side = iota
	SidePlayer      // Left paddle / left goal
	SideEnemy       // Right paddle / right goal
)

// String returns a human-readable name for the side.
func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideEnemy:
		return "enemy"
	default:
		return "none"
	}
}

// Event is a single occurrence reported by a tick. Events are informational
// only and never feed back into the simulation.
type Event struct {
	Kind EventKind
	Side Side
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	Tick   uint64  // Tick number after this step
	Events []Event // Events in the order they fired
}

// Has returns true if an event of the given kind fired.
func (r StepResult) Has(kind EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// DrawCommand is one filled rectangle for the render adapter.
type DrawCommand struct {
	Rect  RectF
	Color Color
}
