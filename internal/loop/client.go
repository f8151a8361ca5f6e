package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/mergebox/internal/draw"
	"github.com/tomz197/mergebox/internal/game"
	"github.com/tomz197/mergebox/internal/highscore"
	"github.com/tomz197/mergebox/internal/input"
	"github.com/tomz197/mergebox/internal/loop/config"
	"github.com/tomz197/mergebox/internal/tuning"
)

// Client handles rendering, input and the game session for one connection.
type Client struct {
	session      *game.Session
	tun          tuning.Tuning
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	store        highscore.Store
	log          *zap.Logger
	termSizeFunc draw.TermSizeFunc
}

// NewClient loads the high score and prepares a session without starting
// the simulation; the title screen shows first.
func NewClient(r *bufio.Reader, w io.Writer, opts Options) (*Client, error) {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	tun := tuning.Default()
	if opts.Tuning != nil {
		tun = *opts.Tuning
	}
	store := opts.Store
	if store == nil {
		store = highscore.NewMemoryStore(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		tun:          tun,
		state:        NewClientState(),
		writer:       w,
		lastInput:    time.Now(),
		store:        store,
		log:          logger,
		termSizeFunc: termSizeFunc,
	}
	c.state.highScore = c.loadHighScore()

	session, err := game.NewSession(game.Options{
		Tuning:    tun,
		Logger:    logger,
		HighScore: c.state.highScore,
		Rand:      opts.Rand,
		Hooks: game.Hooks{
			OnGameOver: c.onGameOver,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("new client: %w", err)
	}
	c.session = session

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := c.fitRenderArea(termWidth, termHeight)
	c.canvas = draw.NewScaledCanvas(renderWidth, renderHeight, tun.WorldWidth, tun.WorldHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter = draw.NewChunkWriter(w, offsetCol, offsetRow)

	if r != nil {
		c.inputStream = input.StartStream(r)
	}
	return c, nil
}

// Run starts the client loop. Blocks until the client quits or the
// shutdown notice has been shown after ctx is done.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()

		if ctx.Err() != nil && c.state.GameState != GameStateShutdown {
			c.beginShutdown()
		}

		c.updateScreen()

		switch c.state.GameState {
		case GameStateStart:
			c.updateStartState()
		case GameStatePlaying:
			c.updatePlayingState()
		case GameStateOver:
			c.updateOverState()
		case GameStateShutdown:
			c.updateShutdownState()
		}

		if err := c.drawFrame(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads input and tracks inactivity.
func (c *Client) processInput() {
	if c.inputStream == nil {
		c.state.Input = input.Input{}
		return
	}
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}
}

// updateScreen handles terminal resize. On actual size changes it clears
// the terminal to remove residual pixels outside the new canvas area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := c.fitRenderArea(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

func (c *Client) fitRenderArea(termWidth, termHeight int) (int, int, int, int) {
	return draw.FitRenderArea(termWidth, termHeight, config.HUDRows, c.tun.WorldWidth, c.tun.WorldHeight)
}

// updateStartState handles the title screen.
func (c *Client) updateStartState() {
	if c.state.Input.Drop || c.state.Input.Enter {
		c.startGame()
	}
}

// updatePlayingState applies input and advances the simulation by as many
// fixed steps as real time allows.
func (c *Client) updatePlayingState() {
	in := c.state.Input
	if in.Restart {
		c.restart()
		return
	}
	if in.Left {
		c.session.MoveAim(-c.tun.AimStep)
	}
	if in.Right {
		c.session.MoveAim(c.tun.AimStep)
	}
	if in.Drop {
		c.session.Drop()
	}
	c.advance(c.state.delta)
}

// advance runs whole ticks for d plus any time left over from the last frame.
func (c *Client) advance(d time.Duration) {
	step := c.tun.TickDuration()
	c.state.accumulator += d
	for i := 0; c.state.accumulator >= step; i++ {
		if i == config.MaxTicksPerFrame {
			c.state.accumulator = 0
			break
		}
		c.state.accumulator -= step
		c.session.Tick()
		if c.session.Over() {
			c.state.accumulator = 0
			break
		}
	}
}

// updateOverState handles the game-over screen.
func (c *Client) updateOverState() {
	if c.state.Input.Restart || c.state.Input.Enter {
		c.restart()
	}
}

// startGame leaves the title screen.
func (c *Client) startGame() {
	input.ResetKeyInput(c.inputStream)
	c.state.accumulator = 0
	c.state.GameState = GameStatePlaying
}

func (c *Client) restart() {
	input.ResetKeyInput(c.inputStream)
	if err := c.session.Restart(); err != nil {
		c.log.Error("restart session", zap.Error(err))
		c.state.Running = false
		return
	}
	c.state.newBest = false
	c.state.accumulator = 0
	c.state.GameState = GameStatePlaying
}

// onGameOver runs inside Tick when the box overflows.
func (c *Client) onGameOver(score int) {
	c.state.GameState = GameStateOver
	c.state.newBest = score > c.state.highScore
	c.submitHighScore(score)
}

func (c *Client) loadHighScore() int {
	ctx, cancel := context.WithTimeout(context.Background(), config.StoreTimeout)
	defer cancel()
	best, err := c.store.Load(ctx)
	if err != nil {
		c.log.Warn("load high score", zap.Error(err))
		return 0
	}
	return best
}

// submitHighScore records score; a failing store only costs the record.
func (c *Client) submitHighScore(score int) {
	if score > c.state.highScore {
		c.state.highScore = score
	}
	ctx, cancel := context.WithTimeout(context.Background(), config.StoreTimeout)
	defer cancel()
	best, err := c.store.Submit(ctx, score)
	if err != nil {
		c.log.Warn("submit high score", zap.Int("score", score), zap.Error(err))
		return
	}
	c.state.highScore = max(c.state.highScore, best)
}

// beginShutdown records a running game's score before the notice shows.
func (c *Client) beginShutdown() {
	if c.state.GameState == GameStatePlaying && c.session.Score() > 0 {
		c.submitHighScore(c.session.Score())
	}
	c.state.GameState = GameStateShutdown
	c.state.shutdownTimer = config.ShutdownDisplaySeconds
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
