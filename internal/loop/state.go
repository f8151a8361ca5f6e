package loop

import (
	"time"

	"github.com/tomz197/mergebox/internal/input"
)

// GameState represents the current game phase for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateOver                      // Box overflowed, show restart prompt
	GameStateShutdown                  // Server is shutting down
)

// ClientState holds per-connection state.
type ClientState struct {
	Input         input.Input
	GameState     GameState
	prevGameState GameState
	Running       bool
	delta         time.Duration // Frame delta time
	accumulator   time.Duration // Unsimulated time carried between frames
	highScore     int           // Best score known to this client
	newBest       bool          // Last game set the high score
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool
	wasInactive   bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState:     GameStateStart,
		prevGameState: GameStateStart,
		Running:       true,
	}
}
