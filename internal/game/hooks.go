package game

// Hooks are optional callbacks fired synchronously from the session owner
// goroutine. Nil fields are skipped.
type Hooks struct {
	OnBallsMerged  func(sourceLevel, producedLevel, scoreDelta int)
	OnAscended     func(level, bonus int)
	OnGameOver     func(score int)
	OnScoreChanged func(total int)
}

func (h Hooks) ballsMerged(src, produced, delta int) {
	if h.OnBallsMerged != nil {
		h.OnBallsMerged(src, produced, delta)
	}
}

func (h Hooks) ascended(level, bonus int) {
	if h.OnAscended != nil {
		h.OnAscended(level, bonus)
	}
}

func (h Hooks) gameOver(score int) {
	if h.OnGameOver != nil {
		h.OnGameOver(score)
	}
}

func (h Hooks) scoreChanged(total int) {
	if h.OnScoreChanged != nil {
		h.OnScoreChanged(total)
	}
}
