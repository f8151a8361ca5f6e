package game

import (
	"cmp"
	"slices"
	"time"
)

type delayed struct {
	at  time.Duration
	seq uint64
	gen uint64
	fn  func()
}

// scheduler is a delayed-action queue driven by the session clock.
// Entries belong to the generation they were scheduled in and are dropped
// once the generation moves on.
type scheduler struct {
	queue []delayed
	due   []delayed
	seq   uint64
}

// after runs fn once the clock reaches now+d.
func (s *scheduler) after(now, d time.Duration, gen uint64, fn func()) {
	s.seq++
	s.queue = append(s.queue, delayed{at: now + d, seq: s.seq, gen: gen, fn: fn})
}

// run executes every entry due at now in schedule order. Entries added by
// a running action wait for the next call.
func (s *scheduler) run(now time.Duration, gen uint64) {
	s.due = s.due[:0]
	kept := s.queue[:0]
	for _, d := range s.queue {
		switch {
		case d.gen != gen:
		case d.at <= now:
			s.due = append(s.due, d)
		default:
			kept = append(kept, d)
		}
	}
	clear(s.queue[len(kept):])
	s.queue = kept

	slices.SortFunc(s.due, func(a, b delayed) int {
		if c := cmp.Compare(a.at, b.at); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	for _, d := range s.due {
		d.fn()
	}
	clear(s.due)
}

func (s *scheduler) reset() {
	clear(s.queue)
	s.queue = s.queue[:0]
}

// Len returns the number of pending entries.
func (s *scheduler) Len() int { return len(s.queue) }
