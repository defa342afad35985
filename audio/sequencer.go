package audio

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/dodger/core"
	"github.com/lixenwraith/dodger/parameter"
)

// Bass rhythm masks over one 16-step cycle
var (
	bassNormal = [parameter.StepsPerCycle]bool{
		true, false, false, true, false, false, false, false,
		true, false, false, true, false, false, true, false,
	}
	bassDense = [parameter.StepsPerCycle]bool{
		true, false, true, false, true, false, true, false,
		true, false, true, false, true, false, true, false,
	}
)

// arpDegrees is the lead arpeggio in semitones above the lead root (minor seventh shape)
var arpDegrees = [...]int{0, 3, 7, 10, 12, 10, 7, 3}

// clockState is the sequencer transport
type clockState int

const (
	clockStopped clockState = iota
	clockPlaying
	clockPaused
)

// BPMFor maps an intensity in [0,1] to tempo
func BPMFor(intensity float64) int {
	return int(math.Round(parameter.BaseBPM + parameter.BPMRange*clamp01(intensity)))
}

// Arrange returns the notes of one step; cycle counts completed 16-step cycles and
// walks the arpeggio across bars
func Arrange(step int, cycle int64, dense bool) []Note {
	step %= parameter.StepsPerCycle
	notes := make([]Note, 0, 4)

	switch step {
	case 0, 8:
		notes = append(notes, Note{Instrument: Kick, Velocity: 1})
	case 4, 12:
		notes = append(notes, Note{Instrument: Snare, Velocity: 0.9})
	}

	if step%2 == 0 {
		if step%8 == parameter.OpenHatStep {
			notes = append(notes, Note{Instrument: HatOpen, Velocity: 0.8})
		} else {
			notes = append(notes, Note{Instrument: HatClosed, Velocity: 0.7})
		}
	}

	mask := &bassNormal
	if dense {
		mask = &bassDense
	}
	if mask[step] {
		notes = append(notes, Note{
			Instrument: Bass,
			Pitch:      parameter.MusicRootNote + parameter.BassOctave,
			Velocity:   0.8,
		})
	}

	if step%parameter.ArpeggioEvery == 0 {
		perCycle := int64(parameter.StepsPerCycle / parameter.ArpeggioEvery)
		idx := (cycle*perCycle + int64(step/parameter.ArpeggioEvery)) % int64(len(arpDegrees))
		notes = append(notes, Note{
			Instrument: Lead,
			Pitch:      parameter.MusicRootNote + parameter.LeadOctave + arpDegrees[idx],
			Velocity:   0.7,
		})
	}
	return notes
}

// Sequencer is the music clock: a ticker goroutine stepping a 16-step cycle
// Only the clock goroutine advances step after Start; tempo and bass pattern are atomics
type Sequencer struct {
	synth     Synth
	newTicker TickerFactory

	bpm       atomic.Int32
	intensity atomic.Uint64 // float64 bits
	dense     atomic.Bool
	step      atomic.Int64
	cycle     atomic.Int64
	triggered atomic.Int64

	mu    sync.Mutex
	state clockState
	stop  chan struct{}
	done  chan struct{}
}

// NewSequencer creates a stopped sequencer at intensity 0; nil factory uses wall-clock tickers
func NewSequencer(synth Synth, factory TickerFactory) *Sequencer {
	if factory == nil {
		factory = NewTimeTicker
	}
	s := &Sequencer{
		synth:     synth,
		newTicker: factory,
	}
	s.bpm.Store(int32(BPMFor(0)))
	return s
}

// BPM returns the current tempo
func (s *Sequencer) BPM() int { return int(s.bpm.Load()) }

// Intensity returns the clamped intensity last set
func (s *Sequencer) Intensity() float64 { return math.Float64frombits(s.intensity.Load()) }

// Dense reports whether the dense bass mask is selected
func (s *Sequencer) Dense() bool { return s.dense.Load() }

// Step returns the index of the last played step
func (s *Sequencer) Step() int { return int(s.step.Load()) }

// Triggered returns the total notes sent to the synth
func (s *Sequencer) Triggered() int64 { return s.triggered.Load() }

// Playing reports whether the clock is running
func (s *Sequencer) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == clockPlaying
}

// Paused reports whether the clock is paused with its step index kept
func (s *Sequencer) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == clockPaused
}

// Start plays step 0 and starts the clock; no-op while playing
func (s *Sequencer) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == clockPlaying {
		return
	}
	if s.state == clockPaused {
		s.halt()
	}
	s.restart()
}

// Stop halts the clock and rewinds to step 0
func (s *Sequencer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.halt()
	s.state = clockStopped
	s.step.Store(0)
	s.cycle.Store(0)
}

// Pause halts tick scheduling keeping the step index
func (s *Sequencer) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != clockPlaying {
		return
	}
	s.halt()
	s.state = clockPaused
}

// Resume restarts tick scheduling; the next tick plays the step after the kept index
// and beats missed while paused are not replayed
func (s *Sequencer) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != clockPaused {
		return
	}
	s.launch()
	s.state = clockPlaying
}

// SetIntensity clamps x, retunes tempo and bass pattern, and restarts the clock at
// step 0 when playing and either changed
func (s *Sequencer) SetIntensity(x float64) {
	if math.IsNaN(x) {
		x = 0
	}
	x = clamp01(x)
	bpm := int32(BPMFor(x))
	dense := x > parameter.DenseBassThreshold

	s.mu.Lock()
	defer s.mu.Unlock()

	s.intensity.Store(math.Float64bits(x))
	changed := s.bpm.Swap(bpm) != bpm
	if s.dense.Swap(dense) != dense {
		changed = true
	}

	if s.state == clockPlaying && changed {
		s.halt()
		s.restart()
	}
}

// restart plays step 0 and launches a clock at the current tempo; caller holds mu
func (s *Sequencer) restart() {
	s.step.Store(0)
	s.cycle.Store(0)
	s.play(0)
	s.launch()
	s.state = clockPlaying
}

// launch starts the clock goroutine; caller holds mu
func (s *Sequencer) launch() {
	ticker := s.newTicker(s.interval())
	stop := make(chan struct{})
	done := make(chan struct{})
	s.stop, s.done = stop, done

	core.Go(func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C():
				s.advance()
			}
		}
	})
}

// halt stops the clock goroutine and waits for it; caller holds mu
func (s *Sequencer) halt() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
	s.stop, s.done = nil, nil
}

// advance moves to the next step, only called from the clock goroutine
func (s *Sequencer) advance() {
	next := (s.step.Load() + 1) % parameter.StepsPerCycle
	if next == 0 {
		s.cycle.Add(1)
	}
	s.step.Store(next)
	s.play(int(next))
}

func (s *Sequencer) play(step int) {
	notes := Arrange(step, s.cycle.Load(), s.dense.Load())
	if s.synth == nil {
		return
	}
	for _, n := range notes {
		s.synth.Trigger(n)
	}
	s.triggered.Add(int64(len(notes)))
}

// interval returns the current step period
func (s *Sequencer) interval() time.Duration {
	return parameter.StepInterval(s.BPM())
}
