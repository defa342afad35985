package engine

import (
	"testing"
	"time"

	"github.com/lixenwraith/dodger/parameter"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// TestPausableClockExcludesPause verifies paused wall time never reaches game time
func TestPausableClockExcludesPause(t *testing.T) {
	mock := NewMockTimeProvider(epoch)
	clock := NewPausableClock(mock)

	mock.Advance(50 * time.Millisecond)
	clock.Pause()
	mock.Advance(10 * time.Second)

	if got := clock.Elapsed(); got != 50*time.Millisecond {
		t.Errorf("Expected frozen 50ms while paused, got %v", got)
	}
	if got := clock.TotalPaused(); got != 10*time.Second {
		t.Errorf("Expected 10s ongoing pause, got %v", got)
	}

	clock.Resume()
	mock.Advance(30 * time.Millisecond)
	if got := clock.Elapsed(); got != 80*time.Millisecond {
		t.Errorf("Expected 80ms after resume, got %v", got)
	}
}

// TestPausableClockIdempotent verifies repeated pause and resume calls are no-ops
func TestPausableClockIdempotent(t *testing.T) {
	mock := NewMockTimeProvider(epoch)
	clock := NewPausableClock(mock)

	clock.Resume()
	clock.Pause()
	mock.Advance(time.Second)
	clock.Pause()
	mock.Advance(time.Second)
	clock.Resume()
	clock.Resume()

	if got := clock.TotalPaused(); got != 2*time.Second {
		t.Errorf("Expected 2s paused, got %v", got)
	}
	if clock.IsPaused() {
		t.Error("Expected running clock")
	}
}

// TestPausableClockDelta verifies per-frame deltas and the stall cap
func TestPausableClockDelta(t *testing.T) {
	mock := NewMockTimeProvider(epoch)
	clock := NewPausableClock(mock)

	mock.Advance(16 * time.Millisecond)
	if got := clock.Delta(); got != 16*time.Millisecond {
		t.Errorf("Expected 16ms delta, got %v", got)
	}
	if got := clock.Delta(); got != 0 {
		t.Errorf("Expected 0 delta without time passing, got %v", got)
	}

	mock.Advance(5 * time.Second)
	if got := clock.Delta(); got != parameter.MaxFrameDelta {
		t.Errorf("Expected capped delta %v, got %v", parameter.MaxFrameDelta, got)
	}

	clock.Pause()
	mock.Advance(time.Second)
	clock.Resume()
	mock.Advance(10 * time.Millisecond)
	if got := clock.Delta(); got != 10*time.Millisecond {
		t.Errorf("Expected pause excluded from delta, got %v", got)
	}
}

// TestMockTimeProvider verifies manual advancing
func TestMockTimeProvider(t *testing.T) {
	mock := NewMockTimeProvider(epoch)
	mock.Advance(time.Hour)
	mock.Advance(30 * time.Minute)
	if want := epoch.Add(90 * time.Minute); !mock.Now().Equal(want) {
		t.Errorf("Expected %v, got %v", want, mock.Now())
	}
}
