package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/dodger/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave, optionally sweeping linearly from freq to endFreq
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a fixed-frequency oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding from start to end over duration
func NewSweep(start, end float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     start,
		endFreq:  end,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		freq := o.freq
		if o.endFreq != o.freq && o.duration > 0 {
			freq += (o.endFreq - o.freq) * float64(o.position) / float64(o.duration)
		}
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// ADSR is an envelope shape, times in seconds and sustain as a level
type ADSR struct {
	Attack  float64
	Decay   float64
	Sustain float64
	Release float64
}

// envelope applies explicit gain automation to a stream
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	decay    int
	release  int
	total    int
	sustain  float64
}

// NewADSR shapes s over length; the release runs in the final Release seconds
func NewADSR(s beep.Streamer, shape ADSR, length time.Duration, rate beep.SampleRate) beep.Streamer {
	sec := func(v float64) int { return rate.N(time.Duration(v * float64(time.Second))) }
	return &envelope{
		streamer: s,
		attack:   sec(shape.Attack),
		decay:    sec(shape.Decay),
		release:  sec(shape.Release),
		total:    rate.N(length),
		sustain:  shape.Sustain,
	}
}

// NewEnvelope is an attack/release envelope with full sustain
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return NewADSR(s, ADSR{Attack: attack.Seconds(), Sustain: 1, Release: release.Seconds()}, duration, rate)
}

// gain returns the envelope level at sample position p
func (e *envelope) gain(p int) float64 {
	level := e.sustain
	switch {
	case p < e.attack:
		return float64(p) / float64(e.attack)
	case p < e.attack+e.decay:
		t := float64(p-e.attack) / float64(e.decay)
		level = 1 - (1-e.sustain)*t
	}

	releaseStart := e.total - e.release
	if e.release > 0 && p >= releaseStart {
		remaining := float64(e.total-p) / float64(e.release)
		level *= max(0, remaining)
	}
	return level
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.total {
		return 0, false
	}
	if left := e.total - e.position; len(samples) > left {
		samples = samples[:left]
	}
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		vol := e.gain(e.position)
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear gain; math.Log2(0) is -Inf so zero maps to silent
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// setVolume retargets an existing volume effect; callers hold the speaker lock
func setVolume(v *effects.Volume, vol float64) {
	if vol <= 0 {
		v.Silent = true
		return
	}
	v.Silent = false
	v.Volume = math.Log2(vol)
}

// noteSequence plays pitches back to back with the same wave and envelope
func noteSequence(pitches []int, each time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(pitches))
	for _, p := range pitches {
		osc := NewOscillator(NoteFreq(p), each, wave, rate)
		parts = append(parts, NewEnvelope(osc, each, parameter.EffectAttack, parameter.EffectRelease, rate))
	}
	return beep.Seq(parts...)
}

// Sound effect generators, intensity in [0,1] brightens pitch where noted

// CreateFailSound is a descending saw sweep
func CreateFailSound(rate beep.SampleRate) beep.Streamer {
	osc := NewSweep(parameter.FailStartFreq, parameter.FailEndFreq, parameter.FailSoundDuration, WaveSaw, rate)
	return NewEnvelope(osc, parameter.FailSoundDuration, parameter.EffectAttack, parameter.EffectRelease*4, rate)
}

// CreateCollectSound is a two-note square chime
func CreateCollectSound(rate beep.SampleRate) beep.Streamer {
	return newVolume(noteSequence([]int{84, 88}, parameter.CollectNoteDuration, WaveSquare, rate), 0.5)
}

// CreateDodgeSound is a short rising sine, pitched up with intensity
func CreateDodgeSound(rate beep.SampleRate, intensity float64) beep.Streamer {
	lift := 1 + 0.25*clamp01(intensity)
	osc := NewSweep(parameter.DodgeStartFreq*lift, parameter.DodgeEndFreq*lift, parameter.DodgeSoundDuration, WaveSine, rate)
	return NewEnvelope(osc, parameter.DodgeSoundDuration, parameter.EffectAttack, parameter.EffectRelease, rate)
}

// comboDegrees is the major arpeggio the combo jingle climbs
var comboDegrees = []int{0, 4, 7, 12, 16}

// CreateComboSound climbs more of the arpeggio as combo grows, transposed per milestone
func CreateComboSound(rate beep.SampleRate, combo int) beep.Streamer {
	level := max(1, combo/parameter.ComboMilestone)
	count := min(len(comboDegrees), 1+level)
	shift := min(level-1, 12)

	pitches := make([]int, count)
	for i := range pitches {
		pitches[i] = 72 + shift + comboDegrees[i]
	}
	return newVolume(noteSequence(pitches, parameter.ComboNoteDuration, WaveSquare, rate), 0.45)
}

// CreateGameOverSound is a falling minor line
func CreateGameOverSound(rate beep.SampleRate) beep.Streamer {
	return noteSequence([]int{67, 63, 60, 55}, parameter.GameOverNoteDuration, WaveSaw, rate)
}

// CreateSuccessSound is a rising major line
func CreateSuccessSound(rate beep.SampleRate) beep.Streamer {
	return newVolume(noteSequence([]int{72, 76, 79, 84}, parameter.SuccessNoteDuration, WaveSquare, rate), 0.5)
}

// CreateClickSound is a very short sine tick
func CreateClickSound(rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(parameter.ClickFreq, parameter.ClickSoundDuration, WaveSine, rate)
	return NewEnvelope(osc, parameter.ClickSoundDuration, time.Millisecond, 10*time.Millisecond, rate)
}

// CreatePowerUpSound is a rising square sweep
func CreatePowerUpSound(rate beep.SampleRate) beep.Streamer {
	osc := NewSweep(parameter.PowerUpStartFreq, parameter.PowerUpEndFreq, parameter.PowerUpSoundDuration, WaveSquare, rate)
	return newVolume(NewEnvelope(osc, parameter.PowerUpSoundDuration, parameter.EffectAttack, parameter.EffectRelease*2, rate), 0.4)
}

// GetSoundEffect returns the streamer for a sound type; arg is the combo for SoundCombo
// and the music intensity for SoundDodge
func GetSoundEffect(st SoundType, rate beep.SampleRate, arg float64) beep.Streamer {
	switch st {
	case SoundFail:
		return CreateFailSound(rate)
	case SoundCollect:
		return CreateCollectSound(rate)
	case SoundDodge:
		return CreateDodgeSound(rate, arg)
	case SoundCombo:
		return CreateComboSound(rate, int(arg))
	case SoundGameOver:
		return CreateGameOverSound(rate)
	case SoundSuccess:
		return CreateSuccessSound(rate)
	case SoundClick:
		return CreateClickSound(rate)
	case SoundPowerUp:
		return CreatePowerUpSound(rate)
	default:
		return nil
	}
}
