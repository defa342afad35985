package audio

import (
	"errors"
	"io"
	"log"
	"os"
	"sync"
	"testing"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/dodger/status"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// fakeOutput records device calls without touching hardware
type fakeOutput struct {
	mu      sync.Mutex
	initErr error
	inits   int
	played  []beep.Streamer
	closed  bool
}

func (f *fakeOutput) Init(beep.SampleRate, int) error {
	f.inits++
	return f.initErr
}

func (f *fakeOutput) Play(s beep.Streamer) { f.played = append(f.played, s) }
func (f *fakeOutput) Lock()                { f.mu.Lock() }
func (f *fakeOutput) Unlock()              { f.mu.Unlock() }
func (f *fakeOutput) Close()               { f.closed = true }

// hapticLog records pulses
type hapticLog struct {
	mu     sync.Mutex
	levels []HapticLevel
}

func (h *hapticLog) Pulse(l HapticLevel) {
	h.mu.Lock()
	h.levels = append(h.levels, l)
	h.mu.Unlock()
}

func newTestEngine(cfg AudioConfig, out *fakeOutput, h Haptics) (*Engine, *tickerBank) {
	bank := &tickerBank{}
	return NewEngine(cfg, out, h, bank.factory, status.NewRegistry()), bank
}

// TestEngineInitFailureIsSilent verifies a device error degrades to silent mode
func TestEngineInitFailureIsSilent(t *testing.T) {
	out := &fakeOutput{initErr: errors.New("no device")}
	e, bank := newTestEngine(DefaultAudioConfig(), out, nil)
	defer e.Close()

	if !e.Silent() {
		t.Fatal("Expected silent engine")
	}
	e.StartMusic()
	e.PlayFail()
	e.PlayCombo(10)
	e.Trigger(Note{Instrument: Kick, Velocity: 1})

	if e.Sequencer().Playing() {
		t.Error("Expected music not started while silent")
	}
	if bank.count() != 0 {
		t.Errorf("Expected no clock, got %d tickers", bank.count())
	}
	if e.Played() != 0 {
		t.Errorf("Expected nothing played, got %d", e.Played())
	}
	if len(out.played) != 0 {
		t.Errorf("Expected output untouched, got %d streamers", len(out.played))
	}
}

// TestEngineDisabledSkipsDevice verifies a disabled config never opens the output
func TestEngineDisabledSkipsDevice(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.Enabled = false
	out := &fakeOutput{}
	e, _ := newTestEngine(cfg, out, nil)
	defer e.Close()

	if !e.Silent() || out.inits != 0 {
		t.Errorf("Expected silent without init, got silent=%v inits=%d", e.Silent(), out.inits)
	}
}

// TestEnginePlaysOnBuses verifies effects and music voices are queued
func TestEnginePlaysOnBuses(t *testing.T) {
	out := &fakeOutput{}
	e, bank := newTestEngine(DefaultAudioConfig(), out, nil)
	defer e.Close()

	if e.Silent() {
		t.Fatal("Expected live engine")
	}
	if len(out.played) != 1 {
		t.Fatalf("Expected master bus played once, got %d", len(out.played))
	}

	e.PlayCollect()
	e.PlayDodge()
	if e.Played() != 2 {
		t.Errorf("Expected 2 effects queued, got %d", e.Played())
	}

	e.StartMusic()
	if bank.count() != 1 {
		t.Errorf("Expected music clock started, got %d tickers", bank.count())
	}
	want := int64(2 + len(Arrange(0, 0, false)))
	if e.Played() != want {
		t.Errorf("Expected %d streamers after step 0, got %d", want, e.Played())
	}
}

// TestEngineHaptics verifies pulses fire per effect, gated by config, even when silent
func TestEngineHaptics(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.Enabled = false
	h := &hapticLog{}
	e, _ := newTestEngine(cfg, &fakeOutput{}, h)
	defer e.Close()

	e.PlayFail()
	e.PlayCollect()
	e.PlayCombo(5)
	e.PlayDodge()

	want := []HapticLevel{HapticHeavy, HapticLight, HapticMedium}
	if len(h.levels) != len(want) {
		t.Fatalf("Expected %d pulses, got %d", len(want), len(h.levels))
	}
	for i, l := range want {
		if h.levels[i] != l {
			t.Errorf("Pulse %d: expected %s, got %s", i, l, h.levels[i])
		}
	}

	cfg.Haptics = false
	off := &hapticLog{}
	e2, _ := newTestEngine(cfg, &fakeOutput{}, off)
	defer e2.Close()
	e2.PlayFail()
	if len(off.levels) != 0 {
		t.Errorf("Expected no pulses with haptics off, got %d", len(off.levels))
	}
}

// TestEngineIntensityTelemetry verifies BPM is published even while silent
func TestEngineIntensityTelemetry(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.Enabled = false
	reg := status.NewRegistry()
	e := NewEngine(cfg, &fakeOutput{}, nil, (&tickerBank{}).factory, reg)
	defer e.Close()

	if got := reg.Ints.Get("audio.bpm").Load(); got != 100 {
		t.Errorf("Expected initial BPM 100, got %d", got)
	}
	e.SetIntensity(0.5)
	if got := reg.Ints.Get("audio.bpm").Load(); got != 130 {
		t.Errorf("Expected BPM 130, got %d", got)
	}
	if got := reg.Floats.Get("audio.intensity").Get(); got != 0.5 {
		t.Errorf("Expected intensity 0.5, got %f", got)
	}
}

// TestEngineCloseIdempotent verifies close stops music and releases output once
func TestEngineCloseIdempotent(t *testing.T) {
	out := &fakeOutput{}
	e, _ := newTestEngine(DefaultAudioConfig(), out, nil)
	e.StartMusic()

	e.Close()
	e.Close()

	if e.Sequencer().Playing() {
		t.Error("Expected sequencer stopped")
	}
	if !out.closed {
		t.Error("Expected output closed")
	}
	e.PlayFail()
	if e.Played() != int64(len(Arrange(0, 0, false))) {
		t.Errorf("Expected no playback after close, got %d", e.Played())
	}
}

// TestHapticFunc verifies the adapter forwards the level
func TestHapticFunc(t *testing.T) {
	var got HapticLevel = -1
	HapticFunc(func(l HapticLevel) { got = l }).Pulse(HapticHeavy)
	if got != HapticHeavy {
		t.Errorf("Expected heavy, got %s", got)
	}
	if HapticHeavy.Duration() <= HapticLight.Duration() {
		t.Error("Expected heavy pulse longer than light")
	}
}
