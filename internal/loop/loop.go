// Package loop runs one player's terminal session: input, fixed-step
// simulation and drawing, plus the start and game-over screens.
package loop

import (
	"bufio"
	"context"
	"io"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/tomz197/mergebox/internal/draw"
	"github.com/tomz197/mergebox/internal/highscore"
	"github.com/tomz197/mergebox/internal/tuning"
)

// Options configures a client.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	// Tuning defaults to tuning.Default when nil.
	Tuning *tuning.Tuning
	// Store defaults to an in-memory store when nil.
	Store  highscore.Store
	Logger *zap.Logger
	// Rand seeds the next-ball queue; time-seeded when nil.
	Rand *rand.Rand
}

// Run plays until the player quits, the input closes or ctx is cancelled
// and the shutdown notice has been shown.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	c, err := NewClient(r, w, opts)
	if err != nil {
		return err
	}
	return c.Run(ctx)
}
