// Package config centralizes the terminal client's tunable parameters.
// Gameplay constants live in the tuning package.
package config

import "time"

// HUD rows kept free above the play area.
const HUDRows = 2

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	// MaxTicksPerFrame caps catch-up after a stall so a slow client never
	// spirals.
	MaxTicksPerFrame = 5
)

// Shutdown
const (
	ShutdownDisplaySeconds = 5.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// High score store calls
const StoreTimeout = 2 * time.Second

// Preview layout: the queued balls are drawn at this scale to the right of the box.
const (
	PreviewScale = 0.5
	PreviewGap   = 40
)
