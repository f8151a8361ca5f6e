package game

import (
	"go.uber.org/zap"

	"github.com/tomz197/mergebox/internal/ball"
)

const (
	ascendParticles = 16
	ascendLifetime  = 1.2
)

// ascension is a pair of top-level balls leaving the box.
type ascension struct {
	balls [2]*ball.Ball
	ticks int
}

// ascend awards the bonus at once; the balls drift up and are removed
// by advanceAscensions.
func (s *Session) ascend(a, b *ball.Ball) {
	a.BeginAscend()
	b.BeginAscend()
	s.ascensions = append(s.ascensions, &ascension{balls: [2]*ball.Ball{a, b}})
	s.addScore(s.tun.AscendScore)

	s.log.Debug("balls ascended", zap.Int("level", a.Level), zap.Int("score", s.score))
	s.hooks.ascended(a.Level, s.tun.AscendScore)
}

func (s *Session) advanceAscensions() {
	kept := s.ascensions[:0]
	for _, asc := range s.ascensions {
		asc.ticks++
		if asc.ticks < s.tun.AscendTicks {
			for _, b := range asc.balls {
				if !b.Destroyed() {
					b.Rise(s.tun.AscendSpeed)
				}
			}
			kept = append(kept, asc)
			continue
		}
		for _, b := range asc.balls {
			if b.Destroyed() {
				continue
			}
			x, y := b.Position()
			s.scene.SpawnRising(x, y, b.Radius, ascendParticles, ascendLifetime)
			s.removeBall(b)
		}
	}
	clear(s.ascensions[len(kept):])
	s.ascensions = kept
}

// Ascending returns the number of ascensions in flight.
func (s *Session) Ascending() int { return len(s.ascensions) }
