package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorld() *World {
	return NewWorld(WorldConfig{
		Gravity: 400,
		Damping: 0.5,
		Step:    1.0 / 60,
		Material: Material{
			Friction:   0.7,
			Elasticity: 0.2,
			Density:    0.001,
		},
	})
}

func hasPair(pairs []Pair, a, b *Body) bool {
	for _, p := range pairs {
		if (p.A == a && p.B == b) || (p.A == b && p.B == a) {
			return true
		}
	}
	return false
}

func TestWorldFallsUnderGravity(t *testing.T) {
	w := newTestWorld()
	b := w.AddCircle(100, 100, 10)
	for i := 0; i < 30; i++ {
		w.Step()
	}
	x, y := b.Position()
	assert.InDelta(t, 100, x, 1e-6)
	assert.Greater(t, y, 100.0)
	_, vy := b.Velocity()
	assert.Greater(t, vy, 0.0)
}

func TestWorldGravityScale(t *testing.T) {
	w := newTestWorld()
	b := w.AddCircle(100, 100, 10)
	b.SetGravityScale(0)
	for i := 0; i < 30; i++ {
		w.Step()
	}
	_, y := b.Position()
	assert.InDelta(t, 100, y, 1e-6)
}

func TestWorldStaticHoldsPosition(t *testing.T) {
	w := newTestWorld()
	b := w.AddCircle(200, 100, 10)
	b.SetStatic(true)
	require.True(t, b.IsStatic())
	for i := 0; i < 30; i++ {
		w.Step()
	}
	x, y := b.Position()
	assert.InDelta(t, 200, x, 1e-6)
	assert.InDelta(t, 100, y, 1e-6)

	b.SetStatic(false)
	for i := 0; i < 10; i++ {
		w.Step()
	}
	_, y = b.Position()
	assert.Greater(t, y, 100.0)
}

func TestWorldReportsPairsOnce(t *testing.T) {
	w := newTestWorld()
	a := w.AddCircle(100, 100, 20)
	b := w.AddCircle(130, 100, 20)

	pairs := w.Step()
	require.Len(t, pairs, 1)
	assert.True(t, hasPair(pairs, a, b))
}

func TestWorldReportsRestingPairEveryStep(t *testing.T) {
	w := newTestWorld()
	w.AddRect(KindGround, 0, 950, 1000, 970)
	a := w.AddCircle(500, 910, 40)
	b := w.AddCircle(500.5, 830, 40)

	for i := 0; i < 30; i++ {
		w.Step()
	}
	for i := 0; i < 60; i++ {
		require.True(t, hasPair(w.Step(), a, b), "step %d", i)
	}
}

func TestWorldReportsStructurePairs(t *testing.T) {
	w := newTestWorld()
	ground := w.AddRect(KindGround, 0, 500, 1000, 520)
	b := w.AddCircle(500, 485, 20)

	pairs := w.Step()
	assert.True(t, hasPair(pairs, b, ground))
	assert.Equal(t, KindGround, ground.Kind())
}

func TestWorldMaskedBodyDoesNotCollide(t *testing.T) {
	w := newTestWorld()
	a := w.AddCircle(100, 100, 20)
	b := w.AddCircle(130, 100, 20)
	b.SetCollisions(false)
	assert.False(t, b.Collides())

	assert.False(t, hasPair(w.Step(), a, b))

	b.SetCollisions(true)
	assert.True(t, hasPair(w.Step(), a, b))
}

func TestWorldRemove(t *testing.T) {
	w := newTestWorld()
	a := w.AddCircle(100, 100, 20)
	b := w.AddCircle(130, 100, 20)
	require.Equal(t, 2, w.Len())

	w.Remove(b)
	w.Remove(b)
	assert.True(t, b.Removed())
	assert.Equal(t, 1, w.Len())
	assert.False(t, hasPair(w.Step(), a, b))
}

func TestWorldClear(t *testing.T) {
	w := newTestWorld()
	a := w.AddCircle(100, 100, 20)
	w.AddRect(KindWall, 0, 0, 10, 500)
	w.Clear()
	assert.Equal(t, 0, w.Len())
	assert.True(t, a.Removed())
	assert.Empty(t, w.Step())
}

func TestWorldVelocityIsPerStep(t *testing.T) {
	w := newTestWorld()
	b := w.AddCircle(100, 100, 10)
	b.SetVelocity(2, -3)
	vx, vy := b.Velocity()
	assert.InDelta(t, 2, vx, 1e-9)
	assert.InDelta(t, -3, vy, 1e-9)

	b.SetAngularVelocity(0.5)
	assert.InDelta(t, 0.5, b.AngularVelocity(), 1e-9)
}
