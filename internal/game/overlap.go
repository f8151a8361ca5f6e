package game

import (
	"math"

	"github.com/tomz197/mergebox/internal/physics"
	"github.com/tomz197/mergebox/internal/tuning"
)

// ResolveOverlaps runs one separation pass for a freshly placed circle.
// Every overlapping neighbour pushes it away with an upward bias, then the
// result is clamped to the box and never below the starting y. adjusted
// is false when nothing needed to move.
func ResolveOverlaps(c Circle, others []Circle, box tuning.Box, margin float64) (x, y float64, adjusted bool) {
	x, y = c.X, c.Y
	for _, o := range others {
		dx := x - o.X
		dy := y - o.Y
		dist := math.Sqrt(dx*dx + dy*dy)
		minDist := c.R + o.R
		if dist >= minDist {
			continue
		}
		adjusted = true
		push := minDist - dist + margin

		switch {
		case dist == 0:
			// Coincident centres have no direction; go straight up.
			y -= push
		case math.Abs(dy) > math.Abs(dx):
			y -= push
			if math.Abs(dx) > 0.1 {
				x += dx / math.Abs(dy) * push * 0.3
			}
		default:
			angle := math.Atan2(dy, dx)
			x += math.Cos(angle) * push
			y -= math.Abs(math.Sin(angle)) * push
		}
	}

	if x-c.R < box.Left || x+c.R > box.Right || y-c.R < box.Top || y+c.R > box.Bottom {
		adjusted = true
	}
	if !adjusted {
		return c.X, c.Y, false
	}

	x = physics.Clamp(x, box.Left+c.R, box.Right-c.R)
	y = math.Max(box.Top+c.R, math.Min(math.Min(box.Bottom-c.R, c.Y), y))
	return x, y, true
}
