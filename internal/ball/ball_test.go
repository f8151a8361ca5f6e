package ball

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/mergebox/internal/physics"
	"github.com/tomz197/mergebox/internal/scene"
	"github.com/tomz197/mergebox/internal/tuning"
)

type fixture struct {
	tun   tuning.Tuning
	world *physics.World
	scene *scene.Scene
}

func newFixture() fixture {
	tun := tuning.Default()
	return fixture{
		tun: tun,
		world: physics.NewWorld(physics.WorldConfig{
			Gravity: tun.Gravity,
			Damping: tun.Damping(),
			Step:    tun.StepSeconds(),
			Material: physics.Material{
				Friction:   tun.Friction,
				Elasticity: tun.Elasticity,
				Density:    tun.Density,
			},
		}),
		scene: scene.New(),
	}
}

func (f fixture) ball(t *testing.T, x, y float64, level int) *Ball {
	t.Helper()
	b, err := New(f.world, f.scene, f.tun, x, y, level)
	require.NoError(t, err)
	return b
}

func TestNewInvalidLevel(t *testing.T) {
	f := newFixture()
	for _, level := range []int{0, -1, 7} {
		b, err := New(f.world, f.scene, f.tun, 100, 100, level)
		require.ErrorIs(t, err, ErrInvalidLevel)
		assert.Nil(t, b)
	}
	assert.Equal(t, 0, f.world.Len())
	assert.Equal(t, 0, f.scene.Len())
}

func TestNewUsesLevelTable(t *testing.T) {
	f := newFixture()
	b := f.ball(t, 300, 400, 2)
	assert.Equal(t, 6, b.Score)
	assert.InDelta(t, 56, b.Radius, 1e-9)
	assert.Equal(t, "Child", b.Name)
	assert.True(t, b.Body().IsStatic())
	assert.True(t, b.Node().Attached())
	assert.Equal(t, 1, f.world.Len())
}

func TestAimSyncMovesBody(t *testing.T) {
	f := newFixture()
	b := f.ball(t, 300, 150, 1)
	b.BeginAim()
	require.True(t, b.Aiming())

	b.MoveTo(420, 150)
	b.SyncVisual()
	f.world.Step()
	b.SyncVisual()

	x, y := b.Position()
	assert.InDelta(t, 420, x, 1e-6)
	assert.InDelta(t, 150, y, 1e-6)

	b.MoveTo(math.NaN(), 150)
	b.SyncVisual()
	x, _ = b.Position()
	assert.InDelta(t, 420, x, 1e-6, "NaN visual is ignored")
}

func TestDropHandsControlToPhysics(t *testing.T) {
	f := newFixture()
	b := f.ball(t, 300, 150, 1)
	b.BeginAim()

	b.Drop(320, 150, 2*time.Second)
	assert.True(t, b.Falling)
	assert.False(t, b.Aiming())
	assert.Equal(t, 2*time.Second, b.FallStart)
	assert.False(t, b.Body().IsStatic())
	assert.Equal(t, 1.0, b.Body().GravityScale())

	for i := 0; i < 20; i++ {
		f.world.Step()
		b.SyncVisual()
	}
	_, y := b.Position()
	assert.Greater(t, y, 150.0)
	assert.InDelta(t, y, b.Node().Y, 1e-9, "node follows body")
}

func TestSyncSkipsNonFiniteBodyState(t *testing.T) {
	f := newFixture()
	b := f.ball(t, 300, 150, 1)
	b.Drop(300, 150, 0)
	b.applyBodyState(310, 160, 0.5)
	b.applyBodyState(math.NaN(), 170, 0.5)
	b.applyBodyState(320, math.Inf(1), 0.5)
	b.applyBodyState(320, 170, math.NaN())

	assert.Equal(t, 310.0, b.Node().X)
	assert.Equal(t, 160.0, b.Node().Y)
	assert.Equal(t, 0.5, b.Node().Rotation)
}

func TestSpawnAnimation(t *testing.T) {
	f := newFixture()
	b := f.ball(t, 300, 150, 1)
	d := 400 * time.Millisecond

	b.BeginSpawnAnimation(time.Second, d, 0.3)
	assert.True(t, b.Animating)
	assert.False(t, b.Body().Collides())
	assert.Equal(t, 0.3, b.Node().Scale)
	assert.Equal(t, 0.0, b.Node().Alpha)

	assert.False(t, b.UpdateAnimation(time.Second+200*time.Millisecond))
	e := EaseOutCubic(0.5)
	assert.InDelta(t, 0.875, e, 1e-12)
	assert.InDelta(t, 0.3+0.7*e, b.Node().Scale, 1e-9)
	assert.InDelta(t, e, b.Node().Alpha, 1e-9)
	assert.False(t, b.Body().Collides())

	assert.True(t, b.UpdateAnimation(time.Second+d))
	assert.False(t, b.Animating)
	assert.True(t, b.Body().Collides())
	assert.Equal(t, 1.0, b.Node().Scale)
	assert.Equal(t, 1.0, b.Node().Alpha)

	assert.False(t, b.UpdateAnimation(2*time.Second), "no-op once finished")
}

func TestDestroyIsIdempotent(t *testing.T) {
	f := newFixture()
	b := f.ball(t, 300, 150, 1)
	b.Destroy()
	b.Destroy()
	assert.True(t, b.Destroyed())
	assert.Equal(t, 0, f.world.Len())
	assert.Equal(t, 0, f.scene.Len())
}

func TestAscend(t *testing.T) {
	f := newFixture()
	b := f.ball(t, 300, 500, 6)
	b.Drop(300, 500, 0)
	b.BeginAscend()
	assert.True(t, b.Merging)
	assert.False(t, b.Body().Collides())

	b.Rise(5)
	f.world.Step()
	_, y := b.Position()
	assert.InDelta(t, 495, y, 1e-6)
	assert.Equal(t, scene.LayerAscending, b.Node().Z)
}
