package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomz197/mergebox/internal/physics"
	"github.com/tomz197/mergebox/internal/tuning"
)

var openBox = tuning.Box{Left: 0, Right: 1000, Top: 0, Bottom: 1000, Wall: 20}

var defaultSearch = Search{Attempts: 30, Step: 0.3}

func TestResolveSpawnX(t *testing.T) {
	box := tuning.Box{Left: 100, Right: 700, Top: 200, Bottom: 900, Wall: 20}

	assert.Equal(t, 160.0, ResolveSpawnX(-500, 40, box))
	assert.Equal(t, 640.0, ResolveSpawnX(5000, 40, box))
	assert.Equal(t, 400.0, ResolveSpawnX(400, 40, box))
	assert.Equal(t, 150.0, ResolveSpawnY(box, 50))
}

func TestResolveMergePositionMidpoint(t *testing.T) {
	x, y := ResolveMergePosition(
		Circle{X: 480, Y: 800, R: 40},
		Circle{X: 520, Y: 800, R: 40},
		56, openBox, nil, defaultSearch,
	)
	assert.Equal(t, 500.0, x)
	assert.Equal(t, 800.0, y)
}

func TestResolveMergePositionClampsToBox(t *testing.T) {
	x, y := ResolveMergePosition(
		Circle{X: -100, Y: 990, R: 40},
		Circle{X: -80, Y: 990, R: 40},
		56, openBox, nil, defaultSearch,
	)
	assert.Equal(t, 56.0, x)
	assert.Equal(t, 944.0, y)
}

func TestResolveMergePositionStepsUp(t *testing.T) {
	others := []Circle{{X: 500, Y: 800, R: 40}}
	x, y := ResolveMergePosition(
		Circle{X: 480, Y: 800, R: 40},
		Circle{X: 520, Y: 800, R: 40},
		56, openBox, others, defaultSearch,
	)
	assert.Equal(t, 500.0, x)
	// Six steps of 16.8 clear the 96 unit contact distance.
	assert.InDelta(t, 699.2, y, 1e-9)
}

func TestResolveMergePositionStopsNearTop(t *testing.T) {
	others := []Circle{{X: 500, Y: 300, R: 1000}}
	_, y := ResolveMergePosition(
		Circle{X: 480, Y: 300, R: 40},
		Circle{X: 520, Y: 300, R: 40},
		56, openBox, others, defaultSearch,
	)
	assert.InDelta(t, 272, y, 1e-9)
}

func TestResolveMergePositionExhausted(t *testing.T) {
	others := []Circle{{X: 500, Y: 500, R: 1000}}
	_, y := ResolveMergePosition(
		Circle{X: 480, Y: 800, R: 40},
		Circle{X: 520, Y: 800, R: 40},
		56, openBox, others, defaultSearch,
	)
	assert.InDelta(t, 296, y, 1e-6)
}

func TestResolveMergePositionStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	box := tuning.Default().Box
	coord := func() float64 { return rng.Float64()*1400 - 200 }

	for i := 0; i < 500; i++ {
		newR := 20 + rng.Float64()*150
		a := Circle{X: coord(), Y: coord(), R: 40}
		b := Circle{X: coord(), Y: coord(), R: 40}
		others := make([]Circle, rng.IntN(12))
		for j := range others {
			others[j] = Circle{X: coord(), Y: coord(), R: 20 + rng.Float64()*100}
		}

		x, y := ResolveMergePosition(a, b, newR, box, others, defaultSearch)
		midY := physics.Clamp((a.Y+b.Y)/2, box.Top+newR, box.Bottom-newR)

		assert.GreaterOrEqual(t, x, box.Left+newR)
		assert.LessOrEqual(t, x, box.Right-newR)
		assert.GreaterOrEqual(t, y, box.Top+newR)
		assert.LessOrEqual(t, y, box.Bottom-newR)
		assert.LessOrEqual(t, y, midY, "never placed below the midpoint")
	}
}

func TestNeighbourIndexMatchesScan(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 9))
	circles := make([]Circle, 60)
	for i := range circles {
		circles[i] = Circle{X: rng.Float64()*1200 - 100, Y: rng.Float64()*1200 - 100, R: 10 + rng.Float64()*80}
	}
	idx := newNeighbourIndex(circles, 60)

	for i := 0; i < 300; i++ {
		x, y, r := rng.Float64()*1400-200, rng.Float64()*1400-200, 10+rng.Float64()*50
		want := false
		for _, c := range circles {
			if physics.CirclesOverlap(x, y, r, c.X, c.Y, c.R) {
				want = true
				break
			}
		}
		assert.Equal(t, want, idx.overlapsAny(x, y, r), "query %d at (%.1f, %.1f)", i, x, y)
	}
}
