package game

import (
	"math"

	"go.uber.org/zap"

	"github.com/tomz197/mergebox/internal/tuning"
)

// settled reports whether a falling ball has come to rest on the ground.
// Velocities are per tick.
func settled(vx, vy, w, y, r float64, t tuning.Tuning) bool {
	speed := math.Abs(vx) + math.Abs(vy)
	grounded := y >= t.Box.Bottom-r-t.GroundTolerance
	return speed < t.SettleThreshold && math.Abs(w) < t.SettleThreshold && grounded
}

// overflowing reports whether a ball centred at (x, y) is above the box
// line and horizontally inside the box.
func overflowing(x, y, r float64, box tuning.Box, trigger tuning.OverflowTrigger) bool {
	if x < box.Left || x > box.Right {
		return false
	}
	if trigger == tuning.OverflowHalfRadius {
		return y < box.Top+r/2
	}
	return y < box.Top
}

func (s *Session) evaluateSettle() {
	for _, b := range s.balls {
		if !b.Falling || b.FallComplete {
			continue
		}
		body := b.Body()
		vx, vy := body.Velocity()
		_, y := b.Position()
		if settled(vx, vy, body.AngularVelocity(), y, b.Radius, s.tun) {
			b.FallComplete = true
		}
	}
}

// evaluateGameOver latches game over on the first unsettled ball above
// the line once its grace period has passed.
func (s *Session) evaluateGameOver() {
	for _, b := range s.balls {
		if !b.Falling || b.FallComplete || b.Merging {
			continue
		}
		if s.now-b.FallStart < s.tun.FallGrace {
			continue
		}
		x, y := b.Position()
		if !overflowing(x, y, b.Radius, s.tun.Box, s.tun.OverflowTrigger) {
			continue
		}

		s.over = true
		if s.score > s.highScore {
			s.highScore = s.score
		}
		s.log.Info("game over",
			zap.Int("score", s.score),
			zap.Int("level", b.Level),
			zap.Float64("x", x),
			zap.Float64("y", y),
		)
		s.hooks.gameOver(s.score)
		return
	}
}
