package engine

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/dodger/core"
	"github.com/lixenwraith/dodger/parameter"
	"github.com/lixenwraith/dodger/sim"
	"github.com/lixenwraith/dodger/status"
)

// Command is a lifecycle request applied by the frame goroutine
type Command int

const (
	CmdStart Command = iota
	CmdPause
	CmdResume
	CmdTogglePause
	CmdEnd
	CmdRestart
)

// InputSource is polled once per frame for player intent
type InputSource interface {
	Poll() sim.Input
}

// InputFunc adapts a function to InputSource
type InputFunc func() sim.Input

func (f InputFunc) Poll() sim.Input { return f() }

// FrameConfig wires the frame loop to the host
type FrameConfig struct {
	Interval time.Duration // Frame period, zero uses FrameUpdateInterval
	Input    InputSource
	OnFrame  func(l *sim.Loop)         // Called after every frame, typically render
	NewRun   func() (*sim.Loop, error) // Builds a fresh run for CmdRestart
	Registry *status.Registry
}

// FrameLoop drives a sim.Loop from its own goroutine
// Lifecycle changes arrive as commands so only the frame goroutine touches the run
type FrameLoop struct {
	loop     *sim.Loop
	clock    *PausableClock
	cfg      FrameConfig
	commands chan Command

	frames      atomic.Int64
	windowStart time.Time
	windowCount int

	statFPS    *status.AtomicFloat
	statFrames *atomic.Int64

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewFrameLoop creates a stopped frame loop for loop; nil clock uses the system clock
func NewFrameLoop(loop *sim.Loop, clock *PausableClock, cfg FrameConfig) *FrameLoop {
	if clock == nil {
		clock = NewPausableClock(nil)
	}
	if cfg.Interval <= 0 {
		cfg.Interval = parameter.FrameUpdateInterval
	}
	reg := cfg.Registry
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &FrameLoop{
		loop:       loop,
		clock:      clock,
		cfg:        cfg,
		commands:   make(chan Command, 16),
		statFPS:    reg.Floats.Get("sim.fps"),
		statFrames: reg.Ints.Get("sim.frames"),
		stopChan:   make(chan struct{}),
	}
}

// Loop returns the current run; safe from OnFrame or while stopped
func (f *FrameLoop) Loop() *sim.Loop { return f.loop }

// Clock returns the pausable clock
func (f *FrameLoop) Clock() *PausableClock { return f.clock }

// Frames returns the number of completed frames
func (f *FrameLoop) Frames() int64 { return f.frames.Load() }

// Send queues a command for the next frame, dropping it when the queue is full
func (f *FrameLoop) Send(cmd Command) bool {
	select {
	case f.commands <- cmd:
		return true
	default:
		return false
	}
}

// Start launches the frame goroutine
func (f *FrameLoop) Start() {
	if f.running.CompareAndSwap(false, true) {
		f.wg.Add(1)
		core.Go(f.run)
	}
}

// Stop halts the frame goroutine and waits for it
func (f *FrameLoop) Stop() {
	f.stopOnce.Do(func() {
		close(f.stopChan)
		if f.running.CompareAndSwap(true, false) {
			f.wg.Wait()
		}
	})
}

func (f *FrameLoop) run() {
	defer f.wg.Done()

	ticker := time.NewTicker(f.cfg.Interval)
	defer ticker.Stop()
	slow := false

	for {
		select {
		case <-f.stopChan:
			return
		case <-ticker.C:
			f.Tick()

			// Poll slower while paused or over, the run has nothing to advance
			idle := f.loop.State() != sim.StateRunning
			if idle != slow {
				slow = idle
				if slow {
					ticker.Reset(parameter.PausedPollInterval)
				} else {
					ticker.Reset(f.cfg.Interval)
				}
			}
		}
	}
}

// Tick runs one frame: pending commands, one simulation step, telemetry, OnFrame
func (f *FrameLoop) Tick() {
	f.drainCommands()

	dt := f.clock.Delta()
	if f.loop.State() == sim.StateRunning {
		var in sim.Input
		if f.cfg.Input != nil {
			in = f.cfg.Input.Poll()
		}
		f.loop.Step(dt, in)
	}

	f.frames.Add(1)
	f.statFrames.Store(f.frames.Load())
	f.measure()

	if f.cfg.OnFrame != nil {
		f.cfg.OnFrame(f.loop)
	}
}

func (f *FrameLoop) drainCommands() {
	for {
		select {
		case cmd := <-f.commands:
			f.apply(cmd)
		default:
			return
		}
	}
}

func (f *FrameLoop) apply(cmd Command) {
	switch cmd {
	case CmdStart:
		if f.loop.Start() == nil {
			f.clock.Resume()
			f.clock.Delta()
		}
	case CmdPause:
		if f.loop.Pause() == nil {
			f.clock.Pause()
		}
	case CmdResume:
		if f.loop.Resume() == nil {
			f.clock.Resume()
		}
	case CmdTogglePause:
		switch f.loop.State() {
		case sim.StateRunning:
			f.apply(CmdPause)
		case sim.StatePaused:
			f.apply(CmdResume)
		}
	case CmdEnd:
		if err := f.loop.End(); err == nil {
			f.clock.Resume()
		}
	case CmdRestart:
		f.restart()
	}
}

func (f *FrameLoop) restart() {
	if f.cfg.NewRun == nil {
		return
	}
	if s := f.loop.State(); s == sim.StateRunning || s == sim.StatePaused {
		_ = f.loop.End()
	}
	next, err := f.cfg.NewRun()
	if err != nil {
		log.Printf("frame: restart: %v", err)
		return
	}
	if err := next.Start(); err != nil {
		log.Printf("frame: restart: %v", err)
		return
	}
	f.loop = next
	f.clock.Resume()
	f.clock.Delta()
}

// measure updates sim.fps once per wall-clock second
func (f *FrameLoop) measure() {
	now := f.clock.RealNow()
	if f.windowStart.IsZero() {
		f.windowStart = now
	}
	f.windowCount++
	if el := now.Sub(f.windowStart); el >= time.Second {
		f.statFPS.Set(float64(f.windowCount) / el.Seconds())
		f.windowStart = now
		f.windowCount = 0
	}
}
