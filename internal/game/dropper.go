package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tomz197/mergebox/internal/ball"
	"github.com/tomz197/mergebox/internal/physics"
)

// Aim moves the aim position. The held ball follows, clamped inside the
// walls.
func (s *Session) Aim(x float64) {
	if s.over {
		return
	}
	s.aimX = physics.Clamp(x, s.tun.Box.Left, s.tun.Box.Right)
	if s.current != nil {
		s.current.MoveTo(ResolveSpawnX(s.aimX, s.current.Radius, s.tun.Box), ResolveSpawnY(s.tun.Box, s.tun.SpawnOffset))
	}
}

// MoveAim shifts the aim position by dx.
func (s *Session) MoveAim(dx float64) {
	s.Aim(s.aimX + dx)
}

// CanDrop reports whether Drop would release the held ball now.
func (s *Session) CanDrop() bool {
	if s.over || s.current == nil || s.current.Animating {
		return false
	}
	return !s.dropped || s.now-s.lastDrop >= s.tun.DropCooldown
}

// Drop releases the held ball at the aim position. It returns false while
// the game is over, no ball is held, the spawn animation runs or the
// cooldown has not elapsed. The next ball appears after the cooldown.
func (s *Session) Drop() bool {
	if !s.CanDrop() {
		return false
	}

	b := s.current
	s.current = nil
	x := ResolveSpawnX(s.aimX, b.Radius, s.tun.Box)
	y := ResolveSpawnY(s.tun.Box, s.tun.SpawnOffset)
	b.Drop(x, y, s.now)
	s.balls = append(s.balls, b)

	s.dropped = true
	s.lastDrop = s.now
	s.sched.after(s.now, s.tun.DropCooldown, s.gen, s.spawnNext)

	s.log.Debug("ball dropped", zap.Int("level", b.Level), zap.Float64("x", x))
	return true
}

func (s *Session) spawnNext() {
	if err := s.spawnAimBall(); err != nil {
		s.log.Error("spawn aim ball", zap.Error(err))
	}
}

// spawnAimBall takes the next level from the queue and puts it in the
// player's hand with the spawn animation running.
func (s *Session) spawnAimBall() error {
	level := s.next
	info, ok := s.tun.Level(level)
	if !ok {
		return fmt.Errorf("%w: %d", ball.ErrInvalidLevel, level)
	}
	x := ResolveSpawnX(s.aimX, info.Radius, s.tun.Box)
	y := ResolveSpawnY(s.tun.Box, s.tun.SpawnOffset)

	b, err := ball.New(s.world, s.scene, s.tun, x, y, level)
	if err != nil {
		return err
	}
	b.BeginAim()
	b.BeginSpawnAnimation(s.now, s.tun.SpawnAnimation, s.tun.SpawnScaleFrom)

	s.owners[b.Body()] = b
	s.current = b
	s.next, s.afterNext = s.afterNext, s.randomLevel()
	return nil
}

func (s *Session) randomLevel() int {
	return 1 + s.rng.IntN(s.tun.SpawnMaxLevel)
}
