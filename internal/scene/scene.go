// Package scene is the visual side of the game: positioned, rotated,
// scaled and faded nodes plus short-lived particle effects, drawn onto the
// terminal canvas in z order.
package scene

import (
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/tomz197/mergebox/internal/draw"
)

// Z layers.
const (
	LayerBall      = 10
	LayerAim       = 20
	LayerAscending = 30
)

// Node is one visual. Level is drawn as a label in the middle.
type Node struct {
	X, Y     float64
	Rotation float64
	Scale    float64
	Alpha    float64
	Z        int
	Radius   float64
	Level    int
	Visible  bool

	scene *Scene
}

// NewNode returns a visible node at full scale and opacity.
func NewNode(x, y, radius float64, level int) *Node {
	return &Node{
		X:       x,
		Y:       y,
		Scale:   1,
		Alpha:   1,
		Radius:  radius,
		Level:   level,
		Visible: true,
	}
}

// Attached reports whether the node is part of a scene.
func (n *Node) Attached() bool { return n.scene != nil }

// DrawContext provides drawing resources.
type DrawContext struct {
	Canvas *draw.Canvas      // shapes, 2x vertical resolution
	Writer *draw.ChunkWriter // labels
}

// Scene owns nodes and particles.
type Scene struct {
	nodes     []*Node
	particles []*Particle
	sorted    []*Node // reused draw order
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{}
}

// Add attaches a node. Adding an attached node is a no-op.
func (s *Scene) Add(n *Node) {
	if n == nil || n.scene != nil {
		return
	}
	n.scene = s
	s.nodes = append(s.nodes, n)
}

// Remove detaches a node. Returns false if it was not part of this scene.
func (s *Scene) Remove(n *Node) bool {
	if n == nil || n.scene != s {
		return false
	}
	i := slices.Index(s.nodes, n)
	if i < 0 {
		return false
	}
	s.nodes = slices.Delete(s.nodes, i, i+1)
	n.scene = nil
	return true
}

// Len returns the number of attached nodes.
func (s *Scene) Len() int { return len(s.nodes) }

// Nodes returns the attached nodes sorted by Z; ties keep insertion order.
// The slice is reused by the next call.
func (s *Scene) Nodes() []*Node {
	s.sorted = append(s.sorted[:0], s.nodes...)
	slices.SortStableFunc(s.sorted, func(a, b *Node) int { return a.Z - b.Z })
	return s.sorted
}

// Clear detaches every node and drops every particle.
func (s *Scene) Clear() {
	for _, n := range s.nodes {
		n.scene = nil
	}
	s.nodes = s.nodes[:0]
	for _, p := range s.particles {
		p.Release()
	}
	s.particles = s.particles[:0]
}

// Particles returns the live particles.
func (s *Scene) Particles() []*Particle { return s.particles }

// Spawn adds a particle.
func (s *Scene) Spawn(p *Particle) {
	s.particles = append(s.particles, p)
}

// Update advances particles and releases expired ones.
func (s *Scene) Update(delta time.Duration) {
	kept := s.particles[:0]
	for _, p := range s.particles {
		if p.Update(delta) {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	clear(s.particles[len(kept):])
	s.particles = kept
}

// Draw renders nodes then particles onto the canvas.
func (s *Scene) Draw(ctx DrawContext) {
	for _, n := range s.Nodes() {
		n.draw(ctx.Canvas)
	}
	for _, p := range s.particles {
		p.Draw(ctx.Canvas)
	}
}

// DrawLabels queues node labels on the writer. Call it after the canvas
// was rendered into the same writer so the labels end up on top.
func (s *Scene) DrawLabels(ctx DrawContext) {
	if ctx.Writer == nil {
		return
	}
	for _, n := range s.Nodes() {
		n.drawLabel(ctx)
	}
}

func (n *Node) draw(c *draw.Canvas) {
	if !n.Visible || n.Alpha < 0.25 || !finite(n.X, n.Y) {
		return
	}
	r := n.Radius * n.Scale
	dotted := n.Alpha < 0.75
	c.DrawCircle(n.X, n.Y, r, dotted)

	// Spoke shows rotation.
	inner := r * 0.55
	c.DrawLine(
		draw.Point{X: n.X + math.Cos(n.Rotation)*inner, Y: n.Y + math.Sin(n.Rotation)*inner},
		draw.Point{X: n.X + math.Cos(n.Rotation)*r, Y: n.Y + math.Sin(n.Rotation)*r},
	)
}

func (n *Node) drawLabel(ctx DrawContext) {
	if !n.Visible || n.Alpha < 0.75 || n.Level <= 0 || !finite(n.X, n.Y) {
		return
	}
	col, row := ctx.Canvas.LogicalToTerminal(n.X, n.Y)
	label := Text{X: col, Y: row, Value: strconv.Itoa(n.Level)}
	label.Draw(ctx.Writer)
	// The label hides canvas cells; repaint them next frame.
	ctx.Canvas.Invalidate(col-len(label.Value)/2, row, len(label.Value))
}

func finite(x, y float64) bool {
	return !math.IsNaN(x) && !math.IsNaN(y) && !math.IsInf(x, 0) && !math.IsInf(y, 0)
}
