package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testStream(now *time.Time) *Stream {
	s := newStream()
	s.now = func() time.Time { return *now }
	return s
}

func send(s *Stream, keys string) {
	for i := 0; i < len(keys); i++ {
		s.ch <- keys[i]
	}
}

func TestReadInputKeys(t *testing.T) {
	now := time.Unix(100, 0)
	s := testStream(&now)

	send(s, "a r")
	in := ReadInput(s)
	assert.True(t, in.Left)
	assert.True(t, in.Drop)
	assert.True(t, in.Restart)
	assert.False(t, in.Right)
	assert.Equal(t, []byte("a r"), in.Pressed)
}

func TestReadInputArrows(t *testing.T) {
	now := time.Unix(100, 0)
	s := testStream(&now)

	send(s, "\x1b[C\x1b[B")
	in := ReadInput(s)
	assert.True(t, in.Right)
	assert.True(t, in.Drop)
	assert.False(t, in.Left)
}

func TestReadInputHoldExpires(t *testing.T) {
	now := time.Unix(100, 0)
	s := testStream(&now)

	send(s, "d")
	assert.True(t, ReadInput(s).Right)

	now = now.Add(10 * time.Millisecond)
	assert.True(t, ReadInput(s).Right, "still held")

	now = now.Add(keyHoldDuration)
	assert.False(t, ReadInput(s).Right)
}

func TestResetKeyInput(t *testing.T) {
	now := time.Unix(100, 0)
	s := testStream(&now)

	send(s, "\r")
	assert.True(t, ReadInput(s).Enter)
	ResetKeyInput(s)
	assert.False(t, ReadInput(s).Enter)
}

func TestReadInputClosedStreamQuits(t *testing.T) {
	now := time.Unix(100, 0)
	s := testStream(&now)
	close(s.ch)
	assert.True(t, ReadInput(s).Quit)
}
