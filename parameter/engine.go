package parameter

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the host frame interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxFrameDelta caps a single simulation step after stalls (debugger, terminal resize)
	MaxFrameDelta = 100 * time.Millisecond

	// PausedPollInterval is the frame loop sleep while the run is paused
	PausedPollInterval = 50 * time.Millisecond
)

// Event Queue Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 1024

	// EventBufferMask is the bitmask for fast modulo operations (1024 - 1)
	EventBufferMask = 1023
)
