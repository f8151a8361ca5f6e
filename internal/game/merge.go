package game

import (
	"go.uber.org/zap"

	"github.com/tomz197/mergebox/internal/ball"
)

const (
	popParticles = 10
	popSpeed     = 120
	popLifetime  = 0.4
)

// merge combines two equal-level balls.
func (s *Session) merge(a, b *ball.Ball) {
	a.Merging = true
	b.Merging = true

	level := a.Level
	if s.tun.AscendLevel > 0 && level == s.tun.AscendLevel {
		s.ascend(a, b)
		return
	}

	produced := level + 1
	info, ok := s.tun.Level(produced)
	if !ok {
		a.Merging = false
		b.Merging = false
		s.log.Debug("merge above max level ignored", zap.Int("level", level))
		return
	}

	ax, ay := a.Position()
	bx, by := b.Position()
	x, y := ResolveMergePosition(
		Circle{X: ax, Y: ay, R: a.Radius},
		Circle{X: bx, Y: by, R: b.Radius},
		info.Radius, s.tun.Box, s.circles(a, b), s.search(),
	)

	s.addScore(info.Score)
	s.removeBall(a)
	s.removeBall(b)

	product, err := ball.New(s.world, s.scene, s.tun, x, y, produced)
	if err != nil {
		s.log.Error("create merged ball", zap.Error(err))
		return
	}
	s.track(product)

	if rx, ry, moved := ResolveOverlaps(Circle{X: x, Y: y, R: info.Radius}, s.circles(product), s.tun.Box, s.tun.OverlapMargin); moved {
		x, y = rx, ry
	}
	product.Drop(x, y, s.now)
	product.Merging = true
	s.scene.SpawnBurst(x, y, popParticles, popSpeed, popLifetime)

	s.sched.after(s.now, s.tun.MergeGrace, s.gen, func() {
		if !product.Destroyed() {
			product.Merging = false
		}
	})

	s.log.Debug("balls merged",
		zap.Int("level", level),
		zap.Int("produced", produced),
		zap.Int("score", s.score),
	)
	s.hooks.ballsMerged(level, produced, info.Score)
}
