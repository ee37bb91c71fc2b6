// Package pong implements the pong simulation: a key-driven player paddle on
// the left, a ball-tracking enemy paddle on the right, a ball, the field and a
// goal strip behind each paddle.
package pong

import (
	"github.com/vovakirdan/tui-pong/internal/core"
)

// Window and playfield dimensions in logical units.
const (
	WindowWidth  = 640
	WindowHeight = 480
	FieldWidth   = 450
	FieldHeight  = 200
)

// Paddle and ball tuning.
const (
	PaddleSpeed  = 1.0 // Units per tick while a paddle moves
	BounceFactor = 1.2 // Speed multiplier applied on every paddle hit
	ServeDX      = 1.0 // Ball velocity after a reset
	ServeDY      = 0.7
)

// Entity sizes and starting positions.
const (
	paddleWidth  = 10.0
	paddleHeight = 60.0
	ballSize     = 8.0
	goalWidth    = 5.0
	paddleStartY = 50.0
	playerStartX = 10.0
	enemyStartX  = 400.0
	ballStartX   = 200.0
	ballStartY   = 100.0
)

// Background is the clear colour behind every frame.
var Background = core.ColorBlack

// Layout holds the initial state of the six entities.
type Layout struct {
	Player     core.Entity
	Enemy      core.Entity
	Ball       core.Entity
	Field      core.Entity
	PlayerGoal core.Entity
	EnemyGoal  core.Entity
}

// ClassicLayout returns the fixed starting positions of the game.
func ClassicLayout() Layout {
	ball := core.NewEntity(ballStartX, ballStartY, ballSize, ballSize, core.ColorBlack)
	ball.DX, ball.DY = ServeDX, ServeDY

	return Layout{
		Player:     core.NewEntity(playerStartX, paddleStartY, paddleWidth, paddleHeight, core.ColorRed),
		Enemy:      core.NewEntity(enemyStartX, paddleStartY, paddleWidth, paddleHeight, core.ColorBlue),
		Ball:       ball,
		Field:      core.NewEntity(0, 0, FieldWidth, FieldHeight, core.ColorWhite),
		PlayerGoal: core.NewEntity(0, 0, goalWidth, FieldHeight, core.ColorGray),
		EnemyGoal:  core.NewEntity(FieldWidth-goalWidth, 0, goalWidth, FieldHeight, core.ColorGray),
	}
}

// Game owns the six entities and advances them one tick at a time.
type Game struct {
	layout Layout

	Player     core.Entity
	Enemy      core.Entity
	Ball       core.Entity
	Field      core.Entity
	PlayerGoal core.Entity
	EnemyGoal  core.Entity

	tick uint64
}

// New creates a game in the classic layout.
func New() *Game {
	return NewWithLayout(ClassicLayout())
}

// NewWithLayout creates a game from an explicit layout. Tests use this to
// place entities in situations the classic layout never reaches.
func NewWithLayout(l Layout) *Game {
	g := &Game{layout: l}
	g.Reset()
	return g
}

// Reset puts every entity back at its starting position.
func (g *Game) Reset() {
	g.Player = g.layout.Player
	g.Enemy = g.layout.Enemy
	g.Ball = g.layout.Ball
	g.Field = g.layout.Field
	g.PlayerGoal = g.layout.PlayerGoal
	g.EnemyGoal = g.layout.EnemyGoal
	g.tick = 0
}

// Tick returns the number of steps taken since the last reset.
func (g *Game) Tick() uint64 {
	return g.tick
}

// Step advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	var events []core.Event

	g.movePlayer(in)
	g.moveEnemy()

	g.Ball.Step()

	// Bounce ball from paddles and increase speed
	if side := g.paddleHit(); side != core.SideNone {
		g.Ball.StepBack()
		g.Ball.DX *= -BounceFactor
		g.Ball.DY *= BounceFactor
		events = append(events, core.Event{Kind: core.EventPaddleBounce, Side: side})
	}

	// Goal check runs before the wall check so a goal reset always wins
	if side := g.goalHit(); side != core.SideNone {
		g.serve()
		events = append(events, core.Event{Kind: core.EventGoal, Side: side})
	}

	// Bounce ball from top/bottom of field
	if !g.Field.Contains(g.Ball) {
		g.Ball.StepBack()
		g.Ball.DY *= -1
		events = append(events, core.Event{Kind: core.EventWallBounce})
	}

	g.tick++
	return core.StepResult{Tick: g.tick, Events: events}
}

// movePlayer applies the held keys. Down wins when both are held.
func (g *Game) movePlayer(in core.InputFrame) {
	g.Player.DY = 0
	if in.Has(core.KeyDown) {
		g.Player.DY = PaddleSpeed
	} else if in.Has(core.KeyUp) {
		g.Player.DY = -PaddleSpeed
	}
	g.clampedStep(&g.Player)
}

// moveEnemy tracks the ball's top edge against the paddle centre.
// An exact match leaves the paddle still.
func (g *Game) moveEnemy() {
	g.Enemy.DY = 0
	center := g.Enemy.CenterY()
	if g.Ball.Y < center {
		g.Enemy.DY = -PaddleSpeed
	} else if g.Ball.Y > center {
		g.Enemy.DY = PaddleSpeed
	}
	g.clampedStep(&g.Enemy)
}

// clampedStep moves a paddle and rejects the move if it leaves the field.
func (g *Game) clampedStep(e *core.Entity) {
	e.Step()
	if !g.Field.Contains(*e) {
		e.StepBack()
	}
}

func (g *Game) paddleHit() core.Side {
	switch {
	case g.Ball.Intersects(g.Enemy):
		return core.SideEnemy
	case g.Ball.Intersects(g.Player):
		return core.SidePlayer
	default:
		return core.SideNone
	}
}

func (g *Game) goalHit() core.Side {
	switch {
	case g.Ball.Intersects(g.PlayerGoal):
		return core.SidePlayer
	case g.Ball.Intersects(g.EnemyGoal):
		return core.SideEnemy
	default:
		return core.SideNone
	}
}

// serve re-centres the ball in the field with the starting velocity.
func (g *Game) serve() {
	g.Ball.X = g.Field.W/2 - g.Ball.W/2
	g.Ball.Y = g.Field.H/2 - g.Ball.H/2
	g.Ball.DX = ServeDX
	g.Ball.DY = ServeDY
}

// DrawList returns the entities as filled rectangles in back-to-front order.
func (g *Game) DrawList() []core.DrawCommand {
	entities := [...]core.Entity{g.Field, g.PlayerGoal, g.EnemyGoal, g.Player, g.Enemy, g.Ball}
	cmds := make([]core.DrawCommand, len(entities))
	for i, e := range entities {
		cmds[i] = core.DrawCommand{Rect: e.Bounds(), Color: e.Color}
	}
	return cmds
}
