package game

import (
	"github.com/tomz197/mergebox/internal/ball"
	"github.com/tomz197/mergebox/internal/physics"
)

// matchPair decides whether a touching pair should merge. Structure
// bodies, bodies without a live owner, held bodies and balls already in a
// merge are skipped; only equal levels match.
func (s *Session) matchPair(p physics.Pair) (a, b *ball.Ball, ok bool) {
	if p.A.Kind() != physics.KindBall || p.B.Kind() != physics.KindBall {
		return nil, nil, false
	}
	a, b = s.owners[p.A], s.owners[p.B]
	if a == nil || b == nil || a == b || a.Destroyed() || b.Destroyed() {
		return nil, nil, false
	}
	if p.A.IsStatic() || p.B.IsStatic() {
		return nil, nil, false
	}
	if a.Merging || b.Merging || a.Level != b.Level {
		return nil, nil, false
	}
	return a, b, true
}

// resolvePairs merges matching pairs one at a time so flags set by an
// earlier merge are seen by later pairs of the same step.
func (s *Session) resolvePairs(pairs []physics.Pair) {
	for _, p := range pairs {
		a, b, ok := s.matchPair(p)
		if !ok {
			continue
		}
		s.merge(a, b)
	}
}
