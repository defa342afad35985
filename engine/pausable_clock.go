package engine

import (
	"sync"
	"time"

	"github.com/lixenwraith/dodger/parameter"
)

// PausableClock measures game time: wall time minus every paused interval
// Delta hands the frame loop the game time since its previous call, capped at MaxFrameDelta
type PausableClock struct {
	mu  sync.Mutex
	src TimeSource

	start       time.Time
	paused      bool
	pauseStart  time.Time
	totalPaused time.Duration
	lastDelta   time.Duration // Game elapsed at the previous Delta
}

// NewPausableClock creates a running clock; nil src uses the system clock
func NewPausableClock(src TimeSource) *PausableClock {
	if src == nil {
		src = SystemTime{}
	}
	return &PausableClock{src: src, start: src.Now()}
}

// elapsed is game time since creation; caller holds mu
func (pc *PausableClock) elapsed() time.Duration {
	now := pc.src.Now()
	if pc.paused {
		now = pc.pauseStart
	}
	return now.Sub(pc.start) - pc.totalPaused
}

// Elapsed returns game time since creation, frozen while paused
func (pc *PausableClock) Elapsed() time.Duration {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.elapsed()
}

// Delta returns game time since the previous Delta, capped so a stall never
// becomes one huge simulation step
func (pc *PausableClock) Delta() time.Duration {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	now := pc.elapsed()
	d := now - pc.lastDelta
	pc.lastDelta = now
	if d < 0 {
		return 0
	}
	return min(d, parameter.MaxFrameDelta)
}

// Pause freezes game time; no-op when already paused
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused {
		return
	}
	pc.paused = true
	pc.pauseStart = pc.src.Now()
}

// Resume continues game time, excluding the paused interval
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.paused {
		return
	}
	pc.totalPaused += pc.src.Now().Sub(pc.pauseStart)
	pc.paused = false
	pc.pauseStart = time.Time{}
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.paused
}

// TotalPaused returns cumulative pause time including an ongoing pause
func (pc *PausableClock) TotalPaused() time.Duration {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	total := pc.totalPaused
	if pc.paused {
		total += pc.src.Now().Sub(pc.pauseStart)
	}
	return total
}

// RealNow reads the underlying wall clock
func (pc *PausableClock) RealNow() time.Time {
	return pc.src.Now()
}
