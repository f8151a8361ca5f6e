package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Kind tells balls apart from the structural bodies of the box.
type Kind int

const (
	KindBall Kind = iota
	KindGround
	KindWall
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindBall:
		return "ball"
	case KindGround:
		return "ground"
	case KindWall:
		return "wall"
	default:
		return "unknown"
	}
}

const (
	collisionBall cp.CollisionType = iota + 1
	collisionStructure
)

// Material holds the surface and mass properties applied to new shapes.
type Material struct {
	Friction   float64
	Elasticity float64
	Density    float64 // mass per unit area
}

// WorldConfig configures a World. Step is the fixed timestep in seconds.
type WorldConfig struct {
	Gravity  float64 // +y points down
	Damping  float64 // fraction of velocity kept per second
	Step     float64
	Material Material
}

// Pair is two bodies that touched during a Step, either on first
// contact or while contact persisted.
type Pair struct {
	A, B *Body
}

// World wraps a Chipmunk space. Velocities at this boundary are expressed
// per step rather than per second so thresholds can be tuned in frames.
type World struct {
	cfg    WorldConfig
	space  *cp.Space
	bodies map[*cp.Shape]*Body
	pairs  []Pair
	seen   map[[2]*Body]struct{}
}

// NewWorld creates an empty world.
func NewWorld(cfg WorldConfig) *World {
	w := &World{
		cfg:  cfg,
		seen: make(map[[2]*Body]struct{}),
	}
	w.reset()
	return w
}

func (w *World) reset() {
	w.space = cp.NewSpace()
	w.space.SetGravity(cp.Vector{X: 0, Y: w.cfg.Gravity})
	w.space.SetDamping(w.cfg.Damping)
	w.bodies = make(map[*cp.Shape]*Body)

	handler := w.space.NewWildcardCollisionHandler(collisionBall)
	handler.BeginFunc = w.record
	handler.PreSolveFunc = w.record
}

// record collects a touching pair. Runs inside Step; it must not mutate the space.
func (w *World) record(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
	sa, sb := arb.Shapes()
	a, b := w.bodies[sa], w.bodies[sb]
	if a == nil || b == nil {
		return true
	}
	if _, ok := w.seen[[2]*Body{a, b}]; ok {
		return true
	}
	w.seen[[2]*Body{a, b}] = struct{}{}
	w.seen[[2]*Body{b, a}] = struct{}{}
	w.pairs = append(w.pairs, Pair{A: a, B: b})
	return true
}

// StepSeconds returns the fixed timestep.
func (w *World) StepSeconds() float64 {
	return w.cfg.Step
}

// Step advances the simulation by one timestep and returns the touching
// pairs it observed. The slice is reused by the next call.
func (w *World) Step() []Pair {
	w.pairs = w.pairs[:0]
	clear(w.seen)
	w.space.Step(w.cfg.Step)
	return w.pairs
}

// AddCircle adds a dynamic circle centred at (x, y).
func (w *World) AddCircle(x, y, radius float64) *Body {
	mass := w.cfg.Material.Density * math.Pi * radius * radius
	body := w.space.AddBody(cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{})))
	body.SetPosition(cp.Vector{X: x, Y: y})

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetMass(mass)
	shape.SetFriction(w.cfg.Material.Friction)
	shape.SetElasticity(w.cfg.Material.Elasticity)
	shape.SetCollisionType(collisionBall)
	w.space.AddShape(shape)

	b := &Body{
		world:        w,
		body:         body,
		shape:        shape,
		kind:         KindBall,
		radius:       radius,
		gravityScale: 1,
		collides:     true,
	}
	body.SetVelocityUpdateFunc(func(cb *cp.Body, gravity cp.Vector, damping, dt float64) {
		cp.BodyUpdateVelocity(cb, gravity.Mult(b.gravityScale), damping, dt)
	})
	w.bodies[shape] = b
	return b
}

// AddRect adds an immovable axis-aligned rectangle spanning
// [left, right] x [top, bottom].
func (w *World) AddRect(kind Kind, left, top, right, bottom float64) *Body {
	body := w.space.AddBody(cp.NewStaticBody())
	shape := cp.NewBox2(body, cp.BB{L: left, B: top, R: right, T: bottom}, 0)
	shape.SetFriction(w.cfg.Material.Friction)
	shape.SetElasticity(w.cfg.Material.Elasticity)
	shape.SetCollisionType(collisionStructure)
	w.space.AddShape(shape)

	b := &Body{
		world:    w,
		body:     body,
		shape:    shape,
		kind:     kind,
		static:   true,
		collides: true,
	}
	w.bodies[shape] = b
	return b
}

// Remove takes a body out of the simulation. Removing twice is a no-op.
func (w *World) Remove(b *Body) {
	if b == nil || b.removed || b.world != w {
		return
	}
	b.removed = true
	delete(w.bodies, b.shape)
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
}

// Clear drops every body and starts over with an empty space.
func (w *World) Clear() {
	for _, b := range w.bodies {
		b.removed = true
	}
	w.pairs = w.pairs[:0]
	clear(w.seen)
	w.reset()
}

// Len returns the number of bodies in the world.
func (w *World) Len() int {
	return len(w.bodies)
}

// Body is a single rigid body owned by a World.
type Body struct {
	world        *World
	body         *cp.Body
	shape        *cp.Shape
	kind         Kind
	radius       float64
	gravityScale float64
	static       bool
	collides     bool
	removed      bool
}

// Kind returns the body kind.
func (b *Body) Kind() Kind { return b.kind }

// Radius is zero for rectangles.
func (b *Body) Radius() float64 { return b.radius }

// Removed reports whether the body left its world.
func (b *Body) Removed() bool { return b.removed }

// Position returns the centre of the body.
func (b *Body) Position() (x, y float64) {
	p := b.body.Position()
	return p.X, p.Y
}

// SetPosition teleports the body.
func (b *Body) SetPosition(x, y float64) {
	b.body.SetPosition(cp.Vector{X: x, Y: y})
}

// Velocity returns the displacement per step.
func (b *Body) Velocity() (vx, vy float64) {
	v := b.body.Velocity()
	return v.X * b.world.cfg.Step, v.Y * b.world.cfg.Step
}

// SetVelocity sets the displacement per step.
func (b *Body) SetVelocity(vx, vy float64) {
	b.body.SetVelocity(vx/b.world.cfg.Step, vy/b.world.cfg.Step)
}

// AngularVelocity returns the rotation per step in radians.
func (b *Body) AngularVelocity() float64 {
	return b.body.AngularVelocity() * b.world.cfg.Step
}

// SetAngularVelocity sets the rotation per step in radians.
func (b *Body) SetAngularVelocity(w float64) {
	b.body.SetAngularVelocity(w / b.world.cfg.Step)
}

// Angle returns the body rotation in radians.
func (b *Body) Angle() float64 {
	return b.body.Angle()
}

// SetStatic pins the body in place or hands it back to the simulation.
// A pinned ball is kinematic: it keeps its place, ignores gravity and
// pushes dynamic bodies instead of reacting to them.
func (b *Body) SetStatic(static bool) {
	if b.kind != KindBall || b.static == static {
		return
	}
	b.static = static
	if static {
		b.body.SetVelocity(0, 0)
		b.body.SetAngularVelocity(0)
		b.body.SetType(cp.BODY_KINEMATIC)
		return
	}
	b.body.SetType(cp.BODY_DYNAMIC)
}

// IsStatic reports whether the body is pinned.
func (b *Body) IsStatic() bool { return b.static }

// SetGravityScale scales gravity for this body only.
func (b *Body) SetGravityScale(scale float64) { b.gravityScale = scale }

// GravityScale returns the current gravity multiplier.
func (b *Body) GravityScale() float64 { return b.gravityScale }

// SetCollisions enables or masks out every collision for the body.
func (b *Body) SetCollisions(enabled bool) {
	b.collides = enabled
	mask := cp.ALL_CATEGORIES
	if !enabled {
		mask = 0
	}
	b.shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, mask))
}

// Collides reports whether the collision mask is open.
func (b *Body) Collides() bool { return b.collides }

// Wake clears any sleep state.
func (b *Body) Wake() {
	b.body.Activate()
}
