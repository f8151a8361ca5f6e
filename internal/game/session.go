// Package game runs one merge session: aiming and dropping balls, turning
// equal-level contacts into merges, and deciding when the box overflowed.
package game

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/mergebox/internal/ball"
	"github.com/tomz197/mergebox/internal/physics"
	"github.com/tomz197/mergebox/internal/scene"
	"github.com/tomz197/mergebox/internal/tuning"
)

// Options configures a Session.
type Options struct {
	Tuning    tuning.Tuning
	Logger    *zap.Logger
	Hooks     Hooks
	HighScore int
	// Rand drives the next-ball queue. A time-seeded source is used when nil.
	Rand *rand.Rand
}

// Session owns the world, the scene and every ball of one game. It is
// not safe for concurrent use; one goroutine calls Tick and the input
// methods.
type Session struct {
	tun   tuning.Tuning
	log   *zap.Logger
	hooks Hooks
	rng   *rand.Rand

	world *physics.World
	scene *scene.Scene
	sched scheduler

	balls      []*ball.Ball
	owners     map[*physics.Body]*ball.Ball
	current    *ball.Ball
	ascensions []*ascension
	scratch    []Circle

	aimX      float64
	next      int
	afterNext int

	score     int
	highScore int
	over      bool

	now      time.Duration
	gen      uint64
	dropped  bool
	lastDrop time.Duration
}

// NewSession validates the tuning and starts a game with the first ball
// in hand.
func NewSession(opts Options) (*Session, error) {
	if err := opts.Tuning.Validate(); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}

	t := opts.Tuning
	s := &Session{
		tun:       t,
		log:       logger,
		hooks:     opts.Hooks,
		rng:       rng,
		highScore: opts.HighScore,
		owners:    make(map[*physics.Body]*ball.Ball),
		scene:     scene.New(),
		world: physics.NewWorld(physics.WorldConfig{
			Gravity: t.Gravity,
			Damping: t.Damping(),
			Step:    t.StepSeconds(),
			Material: physics.Material{
				Friction:   t.Friction,
				Elasticity: t.Elasticity,
				Density:    t.Density,
			},
		}),
	}
	if err := s.start(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) start() error {
	s.buildBox()
	s.aimX = (s.tun.Box.Left + s.tun.Box.Right) / 2
	s.next = s.randomLevel()
	s.afterNext = s.randomLevel()
	if err := s.spawnAimBall(); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	return nil
}

// buildBox adds the ground below Bottom and the two walls inside the
// horizontal bounds.
func (s *Session) buildBox() {
	box := s.tun.Box
	s.world.AddRect(physics.KindGround, box.Left, box.Bottom, box.Right, box.Bottom+box.Wall)
	s.world.AddRect(physics.KindWall, box.Left, box.Top, box.Left+box.Wall, box.Bottom)
	s.world.AddRect(physics.KindWall, box.Right-box.Wall, box.Top, box.Right, box.Bottom)
}

// Tick advances the session by one fixed step. Nothing changes once the
// game is over.
func (s *Session) Tick() {
	if s.over {
		return
	}
	s.now += s.tun.TickDuration()
	s.sched.run(s.now, s.gen)

	if s.current != nil {
		s.current.SyncVisual()
	}

	s.resolvePairs(s.world.Step())
	s.advanceAscensions()

	for _, b := range s.balls {
		b.SyncVisual()
		b.UpdateAnimation(s.now)
	}
	if s.current != nil {
		s.current.UpdateAnimation(s.now)
	}
	s.scene.Update(s.tun.TickDuration())

	s.evaluateSettle()
	s.evaluateGameOver()
}

// Restart throws away every ball and pending action and starts over. The
// high score is kept.
func (s *Session) Restart() error {
	s.gen++
	s.sched.reset()

	for _, b := range s.balls {
		b.Destroy()
	}
	if s.current != nil {
		s.current.Destroy()
	}
	clear(s.balls)
	s.balls = s.balls[:0]
	clear(s.owners)
	clear(s.ascensions)
	s.ascensions = s.ascensions[:0]
	s.current = nil

	s.world.Clear()
	s.scene.Clear()

	s.score = 0
	s.over = false
	s.dropped = false
	s.hooks.scoreChanged(0)

	s.log.Info("session restarted", zap.Uint64("generation", s.gen))
	return s.start()
}

func (s *Session) track(b *ball.Ball) {
	s.balls = append(s.balls, b)
	s.owners[b.Body()] = b
}

func (s *Session) removeBall(b *ball.Ball) {
	b.Destroy()
	delete(s.owners, b.Body())
	s.balls = slices.DeleteFunc(s.balls, func(o *ball.Ball) bool { return o == b })
}

func (s *Session) addScore(delta int) {
	s.score += delta
	s.hooks.scoreChanged(s.score)
}

// circles lists the footprints of live, colliding balls except the given
// ones. The slice is reused by the next call.
func (s *Session) circles(except ...*ball.Ball) []Circle {
	s.scratch = s.scratch[:0]
	for _, b := range s.balls {
		if b.Destroyed() || !b.Body().Collides() || slices.Contains(except, b) {
			continue
		}
		x, y := b.Position()
		s.scratch = append(s.scratch, Circle{X: x, Y: y, R: b.Radius})
	}
	return s.scratch
}

func (s *Session) search() Search {
	return Search{Attempts: s.tun.MergeSearchAttempts, Step: s.tun.MergeSearchStep}
}

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// HighScore returns the best score seen, including the current game once
// it is over.
func (s *Session) HighScore() int { return s.highScore }

// Over reports whether game over latched.
func (s *Session) Over() bool { return s.over }

// Now returns the session clock.
func (s *Session) Now() time.Duration { return s.now }

// Balls returns the active balls. The slice must not be modified.
func (s *Session) Balls() []*ball.Ball { return s.balls }

// Current returns the held ball or nil between drops.
func (s *Session) Current() *ball.Ball { return s.current }

// Next returns the levels of the next two balls.
func (s *Session) Next() (next, afterNext int) { return s.next, s.afterNext }

// AimX returns the aim position.
func (s *Session) AimX() float64 { return s.aimX }

// Scene returns the scene the balls are drawn in.
func (s *Session) Scene() *scene.Scene { return s.scene }

// Tuning returns the session tuning.
func (s *Session) Tuning() tuning.Tuning { return s.tun }
