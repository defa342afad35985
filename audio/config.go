package audio

import (
	"github.com/lixenwraith/dodger/parameter"
)

// AudioConfig holds audio engine settings
type AudioConfig struct {
	Enabled      bool
	Haptics      bool
	MasterVolume float64 // 0.0-1.0
	MusicVolume  float64 // 0.0-1.0, music bus
	EffectVolume float64 // 0.0-1.0, effects bus
	SampleRate   int
}

// DefaultAudioConfig returns default audio settings
func DefaultAudioConfig() AudioConfig {
	return AudioConfig{
		Enabled:      true,
		Haptics:      true,
		MasterVolume: parameter.DefaultMasterVolume,
		MusicVolume:  parameter.DefaultMusicVolume,
		EffectVolume: parameter.DefaultEffectVolume,
		SampleRate:   parameter.AudioSampleRate,
	}
}

// normalized clamps volumes and fills a missing sample rate
func (c AudioConfig) normalized() AudioConfig {
	c.MasterVolume = clamp01(c.MasterVolume)
	c.MusicVolume = clamp01(c.MusicVolume)
	c.EffectVolume = clamp01(c.EffectVolume)
	if c.SampleRate <= 0 {
		c.SampleRate = parameter.AudioSampleRate
	}
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
