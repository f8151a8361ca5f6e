// Package tuning holds every gameplay constant of a merge session:
// the level table, box geometry, timing windows and physics thresholds.
package tuning

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidTuning is returned by Validate for inconsistent settings.
var ErrInvalidTuning = errors.New("invalid tuning")

// OverflowTrigger selects how the game-over line is crossed.
type OverflowTrigger string

const (
	// OverflowCenter ends the game when a ball's center is above the box top.
	OverflowCenter OverflowTrigger = "center"
	// OverflowHalfRadius ends the game when more than half of a ball's
	// radius sticks out above the box top.
	OverflowHalfRadius OverflowTrigger = "half_radius"
)

// Level describes one rung of the merge ladder.
type Level struct {
	Name   string  `yaml:"name"`
	Score  int     `yaml:"score"`
	Radius float64 `yaml:"radius"` // derived from BaseRadius/SizeMultiplier when zero
}

// Box is the play area. Walls sit inside [Left, Right]; Bottom is the ground line.
type Box struct {
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
	Wall   float64 `yaml:"wall_thickness"`
}

// Width returns Right-Left.
func (b Box) Width() float64 { return b.Right - b.Left }

// Height returns Bottom-Top.
func (b Box) Height() float64 { return b.Bottom - b.Top }

// Tuning is the full set of session parameters.
type Tuning struct {
	BaseRadius     float64 `yaml:"base_radius"`
	SizeMultiplier float64 `yaml:"size_multiplier"`
	Levels         []Level `yaml:"levels"`

	// AscendLevel is the level at which a same-level pair ascends instead of
	// merging. Zero disables ascension.
	AscendLevel int     `yaml:"ascend_level"`
	AscendScore int     `yaml:"ascend_score"`
	AscendSpeed float64 `yaml:"ascend_speed"` // units per tick
	AscendTicks int     `yaml:"ascend_ticks"`

	Box           Box     `yaml:"box"`
	WorldWidth    float64 `yaml:"world_width"`
	WorldHeight   float64 `yaml:"world_height"`
	SpawnOffset   float64 `yaml:"spawn_offset"`
	SpawnMaxLevel int     `yaml:"spawn_max_level"`
	AimStep       float64 `yaml:"aim_step"`

	Gravity     float64 `yaml:"gravity"`      // units/s^2, +y is down
	AirFriction float64 `yaml:"air_friction"` // fraction of velocity lost per tick
	Friction    float64 `yaml:"friction"`
	Elasticity  float64 `yaml:"elasticity"`
	Density     float64 `yaml:"density"`
	TickRate    int     `yaml:"tick_rate"`

	DropCooldown   time.Duration `yaml:"drop_cooldown"`
	MergeGrace     time.Duration `yaml:"merge_grace"`
	FallGrace      time.Duration `yaml:"fall_grace"`
	SpawnAnimation time.Duration `yaml:"spawn_animation"`
	SpawnScaleFrom float64       `yaml:"spawn_scale_from"`

	SettleThreshold float64 `yaml:"settle_threshold"` // per tick
	GroundTolerance float64 `yaml:"ground_tolerance"`

	MergeSearchAttempts int     `yaml:"merge_search_attempts"`
	MergeSearchStep     float64 `yaml:"merge_search_step"` // fraction of the new radius
	OverlapMargin       float64 `yaml:"overlap_margin"`

	OverflowTrigger OverflowTrigger `yaml:"overflow_trigger"`
}

var defaultLevels = []struct {
	name  string
	score int
}{
	{"Baby", 2},
	{"Child", 6},
	{"Youth", 10},
	{"Adult", 14},
	{"Middle", 18},
	{"Elder", 20},
}

// Default returns the reference tuning.
func Default() Tuning {
	t := Tuning{
		BaseRadius:     40,
		SizeMultiplier: 1.4,

		AscendScore: 22,
		AscendSpeed: 5,
		AscendTicks: 60,

		Box: Box{
			Left:   150,
			Right:  850,
			Top:    200,
			Bottom: 950,
			Wall:   20,
		},
		WorldWidth:    1000,
		WorldHeight:   1000,
		SpawnOffset:   50,
		SpawnMaxLevel: 3,
		AimStep:       12,

		Gravity:     400,
		AirFriction: 0.05,
		Friction:    0.7,
		Elasticity:  0.2,
		Density:     0.001,
		TickRate:    60,

		DropCooldown:   time.Second,
		MergeGrace:     100 * time.Millisecond,
		FallGrace:      time.Second,
		SpawnAnimation: 400 * time.Millisecond,
		SpawnScaleFrom: 0.3,

		SettleThreshold: 0.05,
		GroundTolerance: 10,

		MergeSearchAttempts: 30,
		MergeSearchStep:     0.3,
		OverlapMargin:       2,

		OverflowTrigger: OverflowCenter,
	}
	for _, l := range defaultLevels {
		t.Levels = append(t.Levels, Level{Name: l.name, Score: l.score})
	}
	t.fillRadii()
	t.AscendLevel = t.MaxLevel()
	return t
}

// fillRadii derives missing radii: radius(n) = base * multiplier^(n-1).
func (t *Tuning) fillRadii() {
	for i := range t.Levels {
		if t.Levels[i].Radius == 0 {
			t.Levels[i].Radius = t.BaseRadius * math.Pow(t.SizeMultiplier, float64(i))
		}
	}
}

// MaxLevel is the highest configured level.
func (t Tuning) MaxLevel() int { return len(t.Levels) }

// Level returns the table entry for a 1-based level.
func (t Tuning) Level(level int) (Level, bool) {
	if level < 1 || level > len(t.Levels) {
		return Level{}, false
	}
	return t.Levels[level-1], true
}

// TickDuration is the fixed simulation step.
func (t Tuning) TickDuration() time.Duration {
	return time.Second / time.Duration(t.TickRate)
}

// StepSeconds is TickDuration in seconds.
func (t Tuning) StepSeconds() float64 {
	return 1 / float64(t.TickRate)
}

// Damping converts the per-tick air friction into the fraction of
// velocity kept after one second.
func (t Tuning) Damping() float64 {
	return math.Pow(1-t.AirFriction, float64(t.TickRate))
}

// Validate reports the first inconsistency wrapped in ErrInvalidTuning.
func (t Tuning) Validate() error {
	switch {
	case len(t.Levels) == 0:
		return fmt.Errorf("%w: no levels", ErrInvalidTuning)
	case t.Box.Right <= t.Box.Left:
		return fmt.Errorf("%w: box right %.1f <= left %.1f", ErrInvalidTuning, t.Box.Right, t.Box.Left)
	case t.Box.Bottom <= t.Box.Top:
		return fmt.Errorf("%w: box bottom %.1f <= top %.1f", ErrInvalidTuning, t.Box.Bottom, t.Box.Top)
	case t.Box.Wall < 0:
		return fmt.Errorf("%w: negative wall thickness", ErrInvalidTuning)
	case t.TickRate <= 0:
		return fmt.Errorf("%w: tick rate %d", ErrInvalidTuning, t.TickRate)
	case t.AscendLevel < 0 || t.AscendLevel > t.MaxLevel():
		return fmt.Errorf("%w: ascend level %d outside 0..%d", ErrInvalidTuning, t.AscendLevel, t.MaxLevel())
	case t.SpawnMaxLevel < 1 || t.SpawnMaxLevel > t.MaxLevel():
		return fmt.Errorf("%w: spawn max level %d outside 1..%d", ErrInvalidTuning, t.SpawnMaxLevel, t.MaxLevel())
	case t.SettleThreshold <= 0:
		return fmt.Errorf("%w: settle threshold must be positive", ErrInvalidTuning)
	case t.MergeSearchAttempts < 0 || t.MergeSearchStep <= 0:
		return fmt.Errorf("%w: merge search %d x %.2f", ErrInvalidTuning, t.MergeSearchAttempts, t.MergeSearchStep)
	case t.AirFriction < 0 || t.AirFriction >= 1:
		return fmt.Errorf("%w: air friction %.2f outside [0,1)", ErrInvalidTuning, t.AirFriction)
	case t.Density <= 0:
		return fmt.Errorf("%w: density must be positive", ErrInvalidTuning)
	}
	switch t.OverflowTrigger {
	case OverflowCenter, OverflowHalfRadius:
	default:
		return fmt.Errorf("%w: overflow trigger %q", ErrInvalidTuning, t.OverflowTrigger)
	}
	for i, l := range t.Levels {
		if l.Radius <= 0 {
			return fmt.Errorf("%w: level %d radius %.1f", ErrInvalidTuning, i+1, l.Radius)
		}
	}
	return nil
}
