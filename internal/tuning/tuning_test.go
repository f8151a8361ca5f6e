package tuning

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	tun := Default()
	require.NoError(t, tun.Validate())
	require.Equal(t, 6, tun.MaxLevel())
	require.Equal(t, 6, tun.AscendLevel)

	scores := []int{2, 6, 10, 14, 18, 20}
	radius := 40.0
	for i, want := range scores {
		l, ok := tun.Level(i + 1)
		require.True(t, ok)
		assert.Equal(t, want, l.Score)
		assert.InDelta(t, radius, l.Radius, 1e-9)
		radius *= 1.4
	}

	_, ok := tun.Level(0)
	assert.False(t, ok)
	_, ok = tun.Level(7)
	assert.False(t, ok)

	assert.Equal(t, time.Second/60, tun.TickDuration())
	assert.InDelta(t, 0.046, tun.Damping(), 0.001)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Tuning){
		"no levels":        func(t *Tuning) { t.Levels = nil },
		"inverted box":     func(t *Tuning) { t.Box.Right = t.Box.Left },
		"zero tick rate":   func(t *Tuning) { t.TickRate = 0 },
		"ascend too high":  func(t *Tuning) { t.AscendLevel = 9 },
		"spawn level zero": func(t *Tuning) { t.SpawnMaxLevel = 0 },
		"bad trigger":      func(t *Tuning) { t.OverflowTrigger = "top" },
		"zero radius":      func(t *Tuning) { t.Levels[2].Radius = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			tun := Default()
			mutate(&tun)
			require.ErrorIs(t, tun.Validate(), ErrInvalidTuning)
		})
	}
}

func TestLoadYAML(t *testing.T) {
	t.Run("overrides", func(t *testing.T) {
		tun, err := LoadYAML(strings.NewReader(`
fall_grace: 500ms
overflow_trigger: half_radius
base_radius: 20
box:
  left: 100
  right: 700
  top: 100
  bottom: 600
  wall_thickness: 20
`))
		require.NoError(t, err)
		assert.Equal(t, 500*time.Millisecond, tun.FallGrace)
		assert.Equal(t, OverflowHalfRadius, tun.OverflowTrigger)
		assert.Equal(t, 100.0, tun.Box.Left)
		assert.InDelta(t, 20.0, tun.Levels[0].Radius, 1e-9)
		assert.InDelta(t, 28.0, tun.Levels[1].Radius, 1e-9)
		assert.Equal(t, time.Second, tun.DropCooldown)
	})

	t.Run("custom ladder", func(t *testing.T) {
		tun, err := LoadYAML(strings.NewReader(`
levels:
  - {name: a, score: 1}
  - {name: b, score: 3, radius: 55}
  - {name: c, score: 5}
spawn_max_level: 2
`))
		require.NoError(t, err)
		require.Equal(t, 3, tun.MaxLevel())
		assert.Equal(t, 3, tun.AscendLevel)
		assert.InDelta(t, 40.0, tun.Levels[0].Radius, 1e-9)
		assert.InDelta(t, 55.0, tun.Levels[1].Radius, 1e-9)
	})

	t.Run("empty", func(t *testing.T) {
		tun, err := LoadYAML(strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, Default(), tun)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := LoadYAML(strings.NewReader("gravityy: 3\n"))
		require.Error(t, err)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := LoadYAML(strings.NewReader("tick_rate: 0\n"))
		require.ErrorIs(t, err, ErrInvalidTuning)
	})
}

func TestLoadFileEmptyPath(t *testing.T) {
	tun, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, Default(), tun)
}
