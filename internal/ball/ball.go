// Package ball implements the merge game's single entity: a circle that
// owns exactly one physics body and one scene node and moves through
// aim, spawn animation, fall and settle.
package ball

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomz197/mergebox/internal/physics"
	"github.com/tomz197/mergebox/internal/scene"
	"github.com/tomz197/mergebox/internal/tuning"
)

// ErrInvalidLevel is returned when a level has no entry in the level table.
var ErrInvalidLevel = errors.New("invalid ball level")

// Levels resolves a level to its radius, score and name.
type Levels interface {
	Level(level int) (tuning.Level, bool)
}

// Ball is a single merge piece. Identity is pointer identity.
type Ball struct {
	Level  int
	Radius float64
	Score  int
	Name   string

	// Falling is set once the ball leaves player control and never cleared.
	Falling bool
	// Merging excludes the ball from matching and game-over checks.
	Merging bool
	// FallComplete is set once the ball came to rest on the ground. Sticky.
	FallComplete bool
	// Animating is set while the spawn animation runs; collisions are masked.
	Animating bool
	// FallStart is the session time at which Falling was set.
	FallStart time.Duration

	world *physics.World
	scene *scene.Scene
	body  *physics.Body
	node  *scene.Node
	anim  animation

	destroyed bool
}

// New creates a ball at (x, y), pinned in place, with its body in world
// and its node in sc. Nothing is created when the level is unknown.
func New(world *physics.World, sc *scene.Scene, levels Levels, x, y float64, level int) (*Ball, error) {
	info, ok := levels.Level(level)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}

	body := world.AddCircle(x, y, info.Radius)
	body.SetStatic(true)
	body.SetGravityScale(0)

	node := scene.NewNode(x, y, info.Radius, level)
	node.Z = scene.LayerBall
	sc.Add(node)

	return &Ball{
		Level:  level,
		Radius: info.Radius,
		Score:  info.Score,
		Name:   info.Name,
		world:  world,
		scene:  sc,
		body:   body,
		node:   node,
	}, nil
}

// Body returns the physics body.
func (b *Ball) Body() *physics.Body { return b.body }

// Node returns the scene node.
func (b *Ball) Node() *scene.Node { return b.node }

// Position returns the body centre.
func (b *Ball) Position() (x, y float64) { return b.body.Position() }

// Aiming reports whether the player still controls the ball.
func (b *Ball) Aiming() bool { return !b.Falling && !b.FallComplete }

// Destroyed reports whether Destroy was called.
func (b *Ball) Destroyed() bool { return b.destroyed }

// BeginAim hands the ball to the player: the body is pinned and follows
// the node every SyncVisual.
func (b *Ball) BeginAim() {
	b.Falling = false
	b.FallComplete = false
	b.body.SetStatic(true)
	b.body.SetGravityScale(0)
	b.node.Z = scene.LayerAim
}

// MoveTo places the node; while aiming the body catches up on SyncVisual.
func (b *Ball) MoveTo(x, y float64) {
	b.node.X = x
	b.node.Y = y
}

// Drop releases the ball into the simulation at (x, y) with no velocity.
func (b *Ball) Drop(x, y float64, now time.Duration) {
	b.body.SetPosition(x, y)
	b.body.SetStatic(false)
	b.body.SetVelocity(0, 0)
	b.body.SetAngularVelocity(0)
	b.body.SetGravityScale(1)
	b.body.Wake()

	b.node.X = x
	b.node.Y = y
	b.node.Z = scene.LayerBall

	b.Falling = true
	b.FallStart = now
}

// SyncVisual copies state between body and node. While aiming the node is
// authoritative; afterwards the body is. Non-finite coordinates skip the
// sync and keep the stale value.
func (b *Ball) SyncVisual() {
	if b.destroyed {
		return
	}
	if b.Aiming() {
		if !physics.Finite(b.node.X, b.node.Y) {
			return
		}
		b.body.SetPosition(b.node.X, b.node.Y)
		b.body.SetVelocity(0, 0)
		b.body.SetAngularVelocity(0)
		return
	}

	x, y := b.body.Position()
	b.applyBodyState(x, y, b.body.Angle())
}

func (b *Ball) applyBodyState(x, y, angle float64) {
	if !physics.Finite(x, y) || !physics.Finite(angle, 0) {
		return
	}
	b.node.X = x
	b.node.Y = y
	b.node.Rotation = angle
}

// Destroy removes the body and the node. Calling it again does nothing.
func (b *Ball) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	b.world.Remove(b.body)
	b.scene.Remove(b.node)
}
