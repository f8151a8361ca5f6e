package ball

import (
	"math"
	"time"

	"github.com/tomz197/mergebox/internal/scene"
)

type animation struct {
	start     time.Duration
	duration  time.Duration
	scaleFrom float64
}

// EaseOutCubic maps t in [0,1] to 1-(1-t)^3.
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// BeginSpawnAnimation grows the node from scaleFrom and zero opacity to
// full size over d. Collisions stay masked until it completes.
func (b *Ball) BeginSpawnAnimation(now, d time.Duration, scaleFrom float64) {
	b.Animating = true
	b.anim = animation{start: now, duration: d, scaleFrom: scaleFrom}
	b.body.SetCollisions(false)
	b.node.Scale = scaleFrom
	b.node.Alpha = 0
}

// UpdateAnimation advances the spawn animation to now. It returns true on
// the call that completes it.
func (b *Ball) UpdateAnimation(now time.Duration) bool {
	if !b.Animating || b.destroyed {
		return false
	}

	t := 1.0
	if b.anim.duration > 0 {
		t = float64(now-b.anim.start) / float64(b.anim.duration)
	}
	if t < 1 {
		e := EaseOutCubic(math.Max(t, 0))
		b.node.Scale = b.anim.scaleFrom + (1-b.anim.scaleFrom)*e
		b.node.Alpha = e
		return false
	}

	b.Animating = false
	b.body.SetCollisions(true)
	b.node.Scale = 1
	b.node.Alpha = 1
	return true
}

// BeginAscend pins the ball, masks its collisions and lifts it above the
// other nodes. The ball keeps Merging until destroyed.
func (b *Ball) BeginAscend() {
	b.Merging = true
	b.body.SetStatic(true)
	b.body.SetCollisions(false)
	b.node.Z = scene.LayerAscending
}

// Rise moves an ascending ball up by dy.
func (b *Ball) Rise(dy float64) {
	x, y := b.body.Position()
	b.body.SetPosition(x, y-dy)
}
