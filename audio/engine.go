package audio

import (
	"fmt"
	"log"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/dodger/parameter"
	"github.com/lixenwraith/dodger/status"
)

// Output is the audio device; the speaker package implements it through SpeakerOutput
type Output interface {
	Init(rate beep.SampleRate, buffer int) error
	Play(s beep.Streamer)
	// Lock and Unlock guard streamers already handed to Play
	Lock()
	Unlock()
	Close()
}

// SpeakerOutput plays through the system speaker
type SpeakerOutput struct{}

func (SpeakerOutput) Init(rate beep.SampleRate, buffer int) error { return speaker.Init(rate, buffer) }
func (SpeakerOutput) Play(s beep.Streamer)                         { speaker.Play(s) }
func (SpeakerOutput) Lock()                                        { speaker.Lock() }
func (SpeakerOutput) Unlock()                                      { speaker.Unlock() }

func (SpeakerOutput) Close() {
	speaker.Clear()
	speaker.Close()
}

// Engine renders music and effects on two buses mixed into one output
// A silent engine keeps its API but every playback call is a no-op
type Engine struct {
	config AudioConfig
	rate   beep.SampleRate
	out    Output

	music    *beep.Mixer
	sfx      *beep.Mixer
	musicBus *effects.Volume
	sfxBus   *effects.Volume
	master   *effects.Volume

	seq     *Sequencer
	haptics Haptics

	silentMode atomic.Bool
	closed     atomic.Bool
	played     atomic.Int64
	closeOnce  sync.Once

	statBPM       *atomic.Int64
	statIntensity *status.AtomicFloat
	statSilent    *atomic.Bool
}

// NewEngine opens out and wires the buses; an init failure or disabled config yields
// a silent engine rather than an error. nil out uses the speaker, nil ticker factory
// uses wall-clock tickers
func NewEngine(cfg AudioConfig, out Output, haptics Haptics, factory TickerFactory, reg *status.Registry) *Engine {
	cfg = cfg.normalized()
	if out == nil {
		out = SpeakerOutput{}
	}
	if haptics == nil {
		haptics = NopHaptics{}
	}

	e := &Engine{
		config:  cfg,
		rate:    beep.SampleRate(cfg.SampleRate),
		out:     out,
		music:   &beep.Mixer{},
		sfx:     &beep.Mixer{},
		haptics: haptics,
	}
	e.seq = NewSequencer(e, factory)

	if reg != nil {
		e.statBPM = reg.Ints.Get("audio.bpm")
		e.statIntensity = reg.Floats.Get("audio.intensity")
		e.statSilent = reg.Bools.Get("audio.silent")
	} else {
		e.statBPM = new(atomic.Int64)
		e.statIntensity = new(status.AtomicFloat)
		e.statSilent = new(atomic.Bool)
	}
	e.statBPM.Store(int64(e.seq.BPM()))

	// beep mixers stream silence when empty so late Adds are heard
	e.musicBus = newVolume(e.music, cfg.MusicVolume)
	e.sfxBus = newVolume(e.sfx, cfg.EffectVolume)
	e.master = newVolume(beep.Mix(e.musicBus, e.sfxBus), cfg.MasterVolume)

	if !cfg.Enabled {
		e.goSilent(nil)
		return e
	}
	if err := out.Init(e.rate, e.rate.N(parameter.AudioBufferDuration)); err != nil {
		e.goSilent(fmt.Errorf("audio init: %w", err))
		return e
	}
	out.Play(e.master)
	return e
}

// goSilent switches to no-op playback, logging the cause once
func (e *Engine) goSilent(cause error) {
	if e.silentMode.Swap(true) {
		return
	}
	e.statSilent.Store(true)
	if cause != nil {
		log.Printf("audio: %v, running silent", cause)
	}
}

// Silent reports whether playback is disabled
func (e *Engine) Silent() bool { return e.silentMode.Load() }

// Sequencer exposes the music clock
func (e *Engine) Sequencer() *Sequencer { return e.seq }

// Played returns the number of streamers queued on either bus
func (e *Engine) Played() int64 { return e.played.Load() }

// Trigger implements Synth by queuing a voice on the music bus
func (e *Engine) Trigger(n Note) {
	if e.Silent() || e.closed.Load() {
		return
	}
	v := NewVoice(n, e.rate)
	if v == nil {
		return
	}
	e.out.Lock()
	e.music.Add(v)
	e.out.Unlock()
	e.played.Add(1)
}

// StartMusic starts the sequencer from step 0
func (e *Engine) StartMusic() {
	if e.Silent() || e.closed.Load() {
		return
	}
	e.seq.Start()
}

// StopMusic stops the sequencer and drops queued music voices
func (e *Engine) StopMusic() {
	e.seq.Stop()
	if e.Silent() {
		return
	}
	e.out.Lock()
	e.music.Clear()
	e.out.Unlock()
}

// PauseMusic halts the clock, keeping its step
func (e *Engine) PauseMusic() { e.seq.Pause() }

// ResumeMusic continues the clock without replaying missed steps
func (e *Engine) ResumeMusic() {
	if e.Silent() || e.closed.Load() {
		return
	}
	e.seq.Resume()
}

// SetIntensity retunes the sequencer; tracked even while silent so telemetry stays live
func (e *Engine) SetIntensity(x float64) {
	e.seq.SetIntensity(x)
	e.statBPM.Store(int64(e.seq.BPM()))
	e.statIntensity.Set(e.seq.Intensity())
}

// SetVolumes retargets the bus gains, values clamped to [0,1]
func (e *Engine) SetVolumes(master, music, effect float64) {
	e.config.MasterVolume = clamp01(master)
	e.config.MusicVolume = clamp01(music)
	e.config.EffectVolume = clamp01(effect)
	if e.Silent() {
		return
	}
	e.out.Lock()
	setVolume(e.master, e.config.MasterVolume)
	setVolume(e.musicBus, e.config.MusicVolume)
	setVolume(e.sfxBus, e.config.EffectVolume)
	e.out.Unlock()
}

// play queues an effect on the sfx bus and fires its haptic pulse
// Haptics follow their own flag and fire even when audio is silent
func (e *Engine) play(st SoundType, arg float64) {
	if e.closed.Load() {
		return
	}
	if level, ok := hapticFor(st); ok && e.config.Haptics {
		e.haptics.Pulse(level)
	}
	if e.Silent() {
		return
	}
	s := GetSoundEffect(st, e.rate, arg)
	if s == nil {
		return
	}
	e.out.Lock()
	e.sfx.Add(s)
	e.out.Unlock()
	e.played.Add(1)
}

func (e *Engine) PlayFail()     { e.play(SoundFail, 0) }
func (e *Engine) PlayCollect()  { e.play(SoundCollect, 0) }
func (e *Engine) PlayDodge()    { e.play(SoundDodge, e.seq.Intensity()) }
func (e *Engine) PlayGameOver() { e.play(SoundGameOver, 0) }
func (e *Engine) PlaySuccess()  { e.play(SoundSuccess, 0) }
func (e *Engine) PlayClick()    { e.play(SoundClick, 0) }
func (e *Engine) PlayPowerUp()  { e.play(SoundPowerUp, 0) }

// PlayCombo plays the combo jingle, longer and higher for larger combos
func (e *Engine) PlayCombo(combo int) { e.play(SoundCombo, float64(combo)) }

// Play plays an arbitrary effect type
func (e *Engine) Play(st SoundType) { e.play(st, 0) }

// Close stops the clock and releases the output; idempotent
func (e *Engine) Close() {
	e.closeOnce.Do(func() {
		e.closed.Store(true)
		e.seq.Stop()
		if e.Silent() {
			return
		}
		e.out.Lock()
		e.music.Clear()
		e.sfx.Clear()
		e.out.Unlock()
		e.out.Close()
	})
}

// Wait blocks for roughly d of audio, for hosts that want the game-over sting to finish
func (e *Engine) Wait(d time.Duration) {
	if e.Silent() || d <= 0 {
		return
	}
	time.Sleep(time.Duration(math.Min(float64(d), float64(2*time.Second))))
}
