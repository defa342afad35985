package engine

import (
	"testing"
	"time"

	"github.com/lixenwraith/dodger/sim"
	"github.com/lixenwraith/dodger/status"
)

func newTestFrameLoop(t *testing.T, cfg FrameConfig) (*FrameLoop, *MockTimeProvider) {
	t.Helper()
	loop := sim.NewLoop(sim.Options{Mode: sim.Infinite(), Registry: cfg.Registry})
	if err := loop.Start(); err != nil {
		t.Fatalf("Expected start, got %v", err)
	}
	mock := NewMockTimeProvider(epoch)
	return NewFrameLoop(loop, NewPausableClock(mock), cfg), mock
}

// TestFrameLoopAdvancesRun verifies each tick steps the run by clock delta
func TestFrameLoopAdvancesRun(t *testing.T) {
	fl, mock := newTestFrameLoop(t, FrameConfig{})

	for i := 0; i < 10; i++ {
		mock.Advance(16 * time.Millisecond)
		fl.Tick()
	}
	if got := fl.Loop().Elapsed(); got != 160*time.Millisecond {
		t.Errorf("Expected 160ms elapsed, got %v", got)
	}
	if fl.Frames() != 10 {
		t.Errorf("Expected 10 frames, got %d", fl.Frames())
	}
}

// TestFrameLoopPauseFreezes verifies paused frames neither step nor bank time
func TestFrameLoopPauseFreezes(t *testing.T) {
	fl, mock := newTestFrameLoop(t, FrameConfig{})

	mock.Advance(16 * time.Millisecond)
	fl.Tick()

	fl.Send(CmdPause)
	for i := 0; i < 5; i++ {
		mock.Advance(time.Second)
		fl.Tick()
	}
	if fl.Loop().State() != sim.StatePaused {
		t.Fatalf("Expected paused, got %s", fl.Loop().State())
	}
	if got := fl.Loop().Elapsed(); got != 16*time.Millisecond {
		t.Errorf("Expected elapsed frozen at 16ms, got %v", got)
	}

	fl.Send(CmdTogglePause)
	mock.Advance(16 * time.Millisecond)
	fl.Tick()
	if got := fl.Loop().Elapsed(); got != 32*time.Millisecond {
		t.Errorf("Expected 32ms after resume, got %v", got)
	}
}

// TestFrameLoopInputPolled verifies input reaches the run only while running
func TestFrameLoopInputPolled(t *testing.T) {
	polls := 0
	fl, mock := newTestFrameLoop(t, FrameConfig{
		Input: InputFunc(func() sim.Input { polls++; return sim.Input{MoveY: 1} }),
	})

	mock.Advance(16 * time.Millisecond)
	fl.Tick()
	fl.Send(CmdPause)
	fl.Tick()

	if polls != 1 {
		t.Errorf("Expected 1 poll, got %d", polls)
	}
}

// TestFrameLoopRestart verifies restart replaces a finished run
func TestFrameLoopRestart(t *testing.T) {
	built := 0
	fl, _ := newTestFrameLoop(t, FrameConfig{
		NewRun: func() (*sim.Loop, error) {
			built++
			return sim.NewLoop(sim.Options{Mode: sim.Classic()}), nil
		},
	})
	first := fl.Loop()

	fl.Send(CmdEnd)
	fl.Tick()
	if first.State() != sim.StateGameOver {
		t.Fatalf("Expected game over, got %s", first.State())
	}

	fl.Send(CmdRestart)
	fl.Tick()
	if built != 1 {
		t.Errorf("Expected 1 new run, got %d", built)
	}
	if fl.Loop() == first || fl.Loop().State() != sim.StateRunning {
		t.Errorf("Expected a fresh running loop, got %s", fl.Loop().State())
	}
	if fl.Loop().RunID() == first.RunID() {
		t.Error("Expected a new run id")
	}
}

// TestFrameLoopFPS verifies the fps metric after a second of frames
func TestFrameLoopFPS(t *testing.T) {
	reg := status.NewRegistry()
	fl, mock := newTestFrameLoop(t, FrameConfig{Registry: reg})

	for i := 0; i < 70; i++ {
		fl.Tick()
		mock.Advance(16 * time.Millisecond)
	}
	fps := reg.Floats.Get("sim.fps").Get()
	if fps < 55 || fps > 70 {
		t.Errorf("Expected fps near 62, got %f", fps)
	}
	if got := reg.Ints.Get("sim.frames").Load(); got != 70 {
		t.Errorf("Expected 70 frames, got %d", got)
	}
}

// TestFrameLoopStartStop verifies the goroutine runs frames and stops cleanly
func TestFrameLoopStartStop(t *testing.T) {
	frames := make(chan struct{}, 64)
	loop := sim.NewLoop(sim.Options{Mode: sim.Infinite()})
	if err := loop.Start(); err != nil {
		t.Fatal(err)
	}
	fl := NewFrameLoop(loop, nil, FrameConfig{
		Interval: time.Millisecond,
		OnFrame: func(*sim.Loop) {
			select {
			case frames <- struct{}{}:
			default:
			}
		},
	})

	fl.Start()
	for i := 0; i < 3; i++ {
		select {
		case <-frames:
		case <-time.After(2 * time.Second):
			t.Fatal("Timed out waiting for frames")
		}
	}
	fl.Stop()
	fl.Stop()

	n := fl.Frames()
	time.Sleep(10 * time.Millisecond)
	if fl.Frames() != n {
		t.Error("Expected no frames after stop")
	}
}

// TestFrameLoopStartFromIdle verifies an idle run banks no time until started
func TestFrameLoopStartFromIdle(t *testing.T) {
	mock := NewMockTimeProvider(epoch)
	loop := sim.NewLoop(sim.Options{Mode: sim.Infinite()})
	fl := NewFrameLoop(loop, NewPausableClock(mock), FrameConfig{})

	mock.Advance(time.Second)
	fl.Tick()
	if fl.Loop().State() != sim.StateIdle {
		t.Fatalf("Expected idle, got %s", fl.Loop().State())
	}

	fl.Send(CmdStart)
	mock.Advance(16 * time.Millisecond)
	fl.Tick()
	if fl.Loop().State() != sim.StateRunning {
		t.Fatalf("Expected running, got %s", fl.Loop().State())
	}

	mock.Advance(16 * time.Millisecond)
	fl.Tick()
	if got := fl.Loop().Elapsed(); got != 16*time.Millisecond {
		t.Errorf("Expected 16ms elapsed, got %v", got)
	}
}
