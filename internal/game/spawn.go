package game

import (
	"math"

	"github.com/tomz197/mergebox/internal/physics"
	"github.com/tomz197/mergebox/internal/tuning"
)

// Circle is a ball footprint used by the placement resolvers.
type Circle struct {
	X, Y, R float64
}

// Search bounds the upward scan of ResolveMergePosition.
type Search struct {
	Attempts int
	Step     float64 // fraction of the new radius moved per attempt
}

// ResolveSpawnX clamps an aim position so a ball of radius r fits between
// the inner faces of the walls.
func ResolveSpawnX(aimX, r float64, box tuning.Box) float64 {
	return physics.Clamp(aimX, box.Left+box.Wall+r, box.Right-box.Wall-r)
}

// ResolveSpawnY is the fixed drop height above the box.
func ResolveSpawnY(box tuning.Box, offset float64) float64 {
	return box.Top - offset
}

// ResolveMergePosition picks where the product of merging a and b appears.
// It starts at the clamped midpoint and scans upward until the new circle
// no longer overlaps any of others. The result never lies below the
// midpoint and always respects the box bounds shrunk by newR.
func ResolveMergePosition(a, b Circle, newR float64, box tuning.Box, others []Circle, search Search) (x, y float64) {
	minY := box.Top + newR
	maxY := box.Bottom - newR
	x = physics.Clamp((a.X+b.X)/2, box.Left+newR, box.Right-newR)
	mergeY := physics.Clamp((a.Y+b.Y)/2, minY, maxY)

	idx := newNeighbourIndex(others, newR)
	if !idx.overlapsAny(x, mergeY, newR) {
		return x, mergeY
	}

	stepSize := newR * search.Step
	bestY := mergeY
	for attempt := 0; attempt < search.Attempts; attempt++ {
		if !idx.overlapsAny(x, bestY, newR) {
			return x, physics.Clamp(bestY, minY, maxY)
		}
		bestY -= stepSize
		if bestY < minY {
			bestY = math.Max(minY, mergeY-newR*0.5)
			break
		}
	}
	return x, physics.Clamp(math.Min(bestY, mergeY), minY, maxY)
}

// neighbourIndex answers "does this circle overlap anything" through a
// spatial grid sized to the largest interaction distance.
type neighbourIndex struct {
	grid    *physics.SpatialGrid
	circles []Circle
	maxR    float64
}

func newNeighbourIndex(circles []Circle, queryR float64) *neighbourIndex {
	maxR := queryR
	width, height := 1.0, 1.0
	for _, c := range circles {
		maxR = math.Max(maxR, c.R)
		width = math.Max(width, c.X+c.R)
		height = math.Max(height, c.Y+c.R)
	}
	cell := math.Max(2*maxR, 1)
	grid := physics.NewSpatialGrid(width, height, cell)
	for i, c := range circles {
		grid.Insert(c.X, c.Y, i)
	}
	return &neighbourIndex{grid: grid, circles: circles, maxR: maxR}
}

func (n *neighbourIndex) overlapsAny(x, y, r float64) bool {
	found := false
	n.grid.QueryAround(x, y, r+n.maxR, func(i int) bool {
		o := n.circles[i]
		if physics.CirclesOverlap(x, y, r, o.X, o.Y, o.R) {
			found = true
			return true
		}
		return false
	})
	return found
}
