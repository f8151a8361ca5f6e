package loop

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/mergebox/internal/draw"
	"github.com/tomz197/mergebox/internal/loop/config"
	"github.com/tomz197/mergebox/internal/scene"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()

	ctx := scene.DrawContext{Canvas: c.canvas, Writer: c.chunkWriter}
	showGame := c.state.GameState == GameStatePlaying || c.state.GameState == GameStateOver
	if showGame {
		c.drawBox()
		c.drawAimGuide()
		c.drawPreview()
		c.session.Scene().Draw(ctx)
	}

	c.canvas.Render(c.chunkWriter)

	if showGame {
		c.session.Scene().DrawLabels(ctx)
	}
	c.drawUI()

	return c.chunkWriter.Flush()
}

// drawBox draws the walls, the ground and the dashed overflow line.
func (c *Client) drawBox() {
	box := c.tun.Box
	c.canvas.FillRect(box.Left, box.Top, box.Left+box.Wall, box.Bottom+box.Wall)
	c.canvas.FillRect(box.Right-box.Wall, box.Top, box.Right, box.Bottom+box.Wall)
	c.canvas.FillRect(box.Left, box.Bottom, box.Right, box.Bottom+box.Wall)
	c.canvas.DrawDashedLine(
		draw.Point{X: box.Left + box.Wall, Y: box.Top},
		draw.Point{X: box.Right - box.Wall, Y: box.Top},
		2, 3,
	)
}

// drawAimGuide draws a dotted drop line under the held ball.
func (c *Client) drawAimGuide() {
	cur := c.session.Current()
	if cur == nil || cur.Animating || c.session.Over() {
		return
	}
	n := cur.Node()
	c.canvas.DrawDashedLine(
		draw.Point{X: n.X, Y: n.Y + cur.Radius},
		draw.Point{X: n.X, Y: c.tun.Box.Bottom},
		1, 2,
	)
}

// drawPreview draws the two queued balls to the right of the box.
func (c *Client) drawPreview() {
	next, afterNext := c.session.Next()
	x := c.tun.Box.Right + (c.tun.WorldWidth-c.tun.Box.Right)/2
	y := c.tun.Box.Top
	for i, level := range []int{next, afterNext} {
		info, ok := c.tun.Level(level)
		if !ok {
			continue
		}
		r := info.Radius * config.PreviewScale
		y += r
		c.canvas.DrawCircle(x, y, r, i > 0)
		y += r + config.PreviewGap
	}
}

// drawUI draws the game UI overlay.
func (c *Client) drawUI() {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.GameState {
	case GameStatePlaying:
		c.drawPlayingHUD(termWidth)
	case GameStateStart:
		c.drawStartScreen(centerX, centerY)
	case GameStateOver:
		c.drawPlayingHUD(termWidth)
		c.drawGameOverScreen(centerX, centerY)
	}
}

// hudRow converts an absolute terminal row into a canvas-relative one so
// HUD text lands in the rows reserved above the canvas.
func (c *Client) hudRow(row int) int {
	return row - c.canvas.OffsetRow()
}

// drawPlayingHUD draws score, best and the queue above the box.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(termWidth int) {
	cw := c.chunkWriter
	best := max(c.state.highScore, c.session.HighScore(), c.session.Score())

	scoreText := fmt.Sprintf("Score: %-8d", c.session.Score())
	cw.WriteAt(2, c.hudRow(1), scoreText)

	bestText := fmt.Sprintf("Best: %-8d", best)
	cw.WriteAt(termWidth-len(bestText)-1, c.hudRow(1), bestText)

	next, afterNext := c.session.Next()
	queueText := fmt.Sprintf("Next: %d  Then: %d", next, afterNext)
	cw.WriteAt(termWidth/2-len(queueText)/2, c.hudRow(1), queueText)

	status := "                "
	switch {
	case c.session.Ascending() > 0:
		status = "Elders ascend!  "
	case !c.session.CanDrop():
		status = "...             "
	}
	cw.WriteAt(2, c.hudRow(2), status)
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		`  __  __ ___ ___  ___ ___ ___  _____  __`,
		` |  \/  | __| _ \/ __| __| _ )/ _ \ \/ /`,
		` | |\/| | _||   / (_ | _|| _ \ (_) >  < `,
		` |_|  |_|___|_|_\\___|___|___/\___/_/\_\`,
		`                                        `,
	}

	titleWidth := 0
	for _, line := range titleArt {
		titleWidth = max(titleWidth, len(line))
	}

	cw := c.chunkWriter
	titleStartY := centerY - 7
	for i, line := range titleArt {
		cw.WriteAt(centerX-titleWidth/2, titleStartY+i, line)
	}

	subtitle := "~ Drop, touch, merge. Keep the box from overflowing ~"
	cw.WriteAt(centerX-len(subtitle)/2, titleStartY+len(titleArt)+1, subtitle)

	controlsY := titleStartY + len(titleArt) + 3
	controlHeader := "Controls"
	cw.WriteAt(centerX-len(controlHeader)/2, controlsY, controlHeader)

	controlLines := []string{
		"A D / < >  . . . .  Aim",
		"SPACE / S / v  . . Drop",
		"R  . . . . . . . Restart",
		"Q  . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		cw.WriteAt(centerX-len(line)/2, controlsY+1+i, line)
	}

	best := fmt.Sprintf("Best: %d", c.state.highScore)
	cw.WriteAt(centerX-len(best)/2, controlsY+len(controlLines)+2, best)

	// Blinking start prompt
	if time.Now().UnixMilli()/600%2 == 0 {
		prompt := ">>  Press SPACE to Start  <<"
		cw.WriteAt(centerX-len(prompt)/2, controlsY+len(controlLines)+4, prompt)
	} else {
		blank := strings.Repeat(" ", 28)
		cw.WriteAt(centerX-len(blank)/2, controlsY+len(controlLines)+4, blank)
	}
}

// drawGameOverScreen draws the result over the frozen box.
func (c *Client) drawGameOverScreen(centerX, centerY int) {
	cw := c.chunkWriter
	lines := []string{
		"+------------------------------+",
		"|          GAME  OVER          |",
		"|                              |",
		fmt.Sprintf("|   Score: %-8d            |", c.session.Score()),
		fmt.Sprintf("|   Best:  %-8d            |", c.state.highScore),
		"|                              |",
		"|  R / ENTER to play again     |",
		"|  Q to quit                   |",
		"+------------------------------+",
	}
	if c.state.newBest {
		lines[2] = "|       NEW  HIGH  SCORE       |"
	}
	for i, line := range lines {
		cw.WriteAt(centerX-len(line)/2, centerY-len(lines)/2+i, line)
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	cw := c.chunkWriter
	title := "INACTIVITY WARNING"
	cw.WriteAt(centerX-len(title)/2, centerY-2, title)

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	cw.WriteAt(centerX-len(msg)/2, centerY, msg)

	hint := "Press any key to continue"
	cw.WriteAt(centerX-len(hint)/2, centerY+2, hint)
}

// drawShutdownScreen draws the shutdown notice with countdown.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	cw := c.chunkWriter
	title := "SERVER SHUTTING DOWN"
	cw.WriteAt(centerX-len(title)/2, centerY-2, title)

	msg := fmt.Sprintf("Disconnecting in %d seconds...", int(c.state.shutdownTimer)+1)
	cw.WriteAt(centerX-len(msg)/2, centerY, msg)

	if c.state.highScore > 0 {
		best := fmt.Sprintf("Best score so far: %d", c.state.highScore)
		cw.WriteAt(centerX-len(best)/2, centerY+2, best)
	}
}
