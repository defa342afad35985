package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/dodger/parameter"
)

// kickVoice is a sine with an exponential pitch drop and decay
type kickVoice struct {
	position int
	total    int
	phase    float64
	rate     float64
}

func (k *kickVoice) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if k.position >= k.total {
			return i, i > 0
		}
		t := float64(k.position) / k.rate
		freq := 50 + 100*math.Exp(-t*30)
		amp := math.Exp(-t * 12)
		val := math.Sin(2*math.Pi*k.phase) * amp

		samples[i][0] = val
		samples[i][1] = val

		k.phase += freq / k.rate
		k.phase -= math.Floor(k.phase)
		k.position++
	}
	return len(samples), true
}

func (k *kickVoice) Err() error { return nil }

// noiseVoice mixes white noise with an optional body tone under an exponential decay
type noiseVoice struct {
	position int
	total    int
	decay    float64
	tone     float64 // body frequency, 0 for pure noise
	toneMix  float64
	phase    float64
	rate     float64
	last     float64
	highpass bool
}

func (v *noiseVoice) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if v.position >= v.total {
			return i, i > 0
		}
		t := float64(v.position) / v.rate
		noise := rand.Float64()*2 - 1
		if v.highpass {
			// First difference thins the noise toward cymbal range
			noise, v.last = noise-v.last, noise
			noise *= 0.5
		}
		val := noise * (1 - v.toneMix)
		if v.tone > 0 {
			val += math.Sin(2*math.Pi*v.phase) * v.toneMix
			v.phase += v.tone / v.rate
			v.phase -= math.Floor(v.phase)
		}
		val *= math.Exp(-t * v.decay)

		samples[i][0] = val
		samples[i][1] = val
		v.position++
	}
	return len(samples), true
}

func (v *noiseVoice) Err() error { return nil }

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// NewVoice renders a sequencer note as a finite streamer at unit gain times velocity
func NewVoice(n Note, rate beep.SampleRate) beep.Streamer {
	r := float64(rate)
	vel := clamp01(n.Velocity)

	var s beep.Streamer
	var gain float64
	switch n.Instrument {
	case Kick:
		s = &kickVoice{total: rate.N(seconds(parameter.KickLength)), rate: r}
		gain = parameter.KickGain
	case Snare:
		s = &noiseVoice{total: rate.N(seconds(parameter.SnareLength)), decay: 20, tone: 180, toneMix: 0.35, rate: r}
		gain = parameter.SnareGain
	case HatClosed:
		s = &noiseVoice{total: rate.N(seconds(parameter.HatClosedLength)), decay: 80, rate: r, highpass: true}
		gain = parameter.HatGain
	case HatOpen:
		s = &noiseVoice{total: rate.N(seconds(parameter.HatOpenLength)), decay: 14, rate: r, highpass: true}
		gain = parameter.HatGain
	case Bass:
		length := seconds(parameter.BassLength)
		osc := NewOscillator(NoteFreq(n.Pitch), length, WaveSaw, rate)
		s = NewADSR(osc, ADSR{
			Attack:  parameter.BassAttack,
			Decay:   parameter.BassDecay,
			Sustain: parameter.BassSustain,
			Release: parameter.BassRelease,
		}, length, rate)
		gain = parameter.BassGain
	case Lead:
		length := seconds(parameter.LeadLength)
		osc := NewOscillator(NoteFreq(n.Pitch), length, WaveSquare, rate)
		s = NewADSR(osc, ADSR{
			Attack:  parameter.LeadAttack,
			Decay:   parameter.LeadDecay,
			Sustain: parameter.LeadSustain,
			Release: parameter.LeadRelease,
		}, length, rate)
		gain = parameter.LeadGain
	default:
		return nil
	}
	return newVolume(s, gain*vel)
}
