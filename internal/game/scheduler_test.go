package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerRunsInOrder(t *testing.T) {
	var s scheduler
	var got []string
	s.after(0, 30*time.Millisecond, 0, func() { got = append(got, "c") })
	s.after(0, 10*time.Millisecond, 0, func() { got = append(got, "a") })
	s.after(0, 10*time.Millisecond, 0, func() { got = append(got, "b") })

	s.run(5*time.Millisecond, 0)
	assert.Empty(t, got)

	s.run(20*time.Millisecond, 0)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 1, s.Len())

	s.run(30*time.Millisecond, 0)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 0, s.Len())
}

func TestSchedulerDropsStaleGeneration(t *testing.T) {
	var s scheduler
	ran := false
	s.after(0, time.Millisecond, 1, func() { ran = true })

	s.run(time.Second, 2)
	assert.False(t, ran)
	assert.Equal(t, 0, s.Len())
}

func TestSchedulerActionSchedulesAnother(t *testing.T) {
	var s scheduler
	count := 0
	s.after(0, time.Millisecond, 0, func() {
		count++
		s.after(time.Millisecond, 0, 0, func() { count++ })
	})

	s.run(time.Millisecond, 0)
	assert.Equal(t, 1, count)
	s.run(time.Millisecond, 0)
	assert.Equal(t, 2, count)
}
