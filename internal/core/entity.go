package core

// Entity is an axis-aligned rectangle with a velocity and a colour.
// Paddles, the ball, the field and the goal strips are all entities.
// Only position and velocity change after construction; W and H stay > 0.
type Entity struct {
	X, Y   float64 // Top-left corner
	DX, DY float64 // Velocity in units per tick
	W, H   float64 // Width and height
	Color  Color
}

// NewEntity creates a stationary entity.
func NewEntity(x, y, w, h float64, c Color) Entity {
	return Entity{X: x, Y: y, W: w, H: h, Color: c}
}

// Step moves the entity by its velocity.
func (e *Entity) Step() {
	e.X += e.DX
	e.Y += e.DY
}

// StepBack undoes a Step, restoring the position before the last move.
func (e *Entity) StepBack() {
	e.X -= e.DX
	e.Y -= e.DY
}

// Intersects reports whether two entities overlap.
// Edges that are exactly flush count as an overlap.
func (e Entity) Intersects(other Entity) bool {
	return !(e.X > other.X+other.W ||
		e.X+e.W < other.X ||
		e.Y > other.Y+other.H ||
		e.Y+e.H < other.Y)
}

// Contains reports whether other lies entirely inside e.
// Touching the container's edge is allowed.
func (e Entity) Contains(other Entity) bool {
	return other.X >= e.X &&
		other.X+other.W <= e.X+e.W &&
		other.Y >= e.Y &&
		other.Y+other.H <= e.Y+e.H
}

// CenterY returns the vertical midpoint.
func (e Entity) CenterY() float64 {
	return e.Y + e.H/2
}

// Bounds returns the entity's rectangle without velocity or colour.
func (e Entity) Bounds() RectF {
	return RectF{X: e.X, Y: e.Y, W: e.W, H: e.H}
}
