package audio

import (
	"time"

	"github.com/lixenwraith/dodger/parameter"
)

// HapticLevel is a discrete feedback strength
type HapticLevel int

const (
	HapticLight HapticLevel = iota
	HapticMedium
	HapticHeavy
)

func (l HapticLevel) String() string {
	switch l {
	case HapticLight:
		return "light"
	case HapticMedium:
		return "medium"
	case HapticHeavy:
		return "heavy"
	default:
		return "unknown"
	}
}

// Duration returns the pulse length for the level
func (l HapticLevel) Duration() time.Duration {
	switch l {
	case HapticMedium:
		return parameter.HapticMedium
	case HapticHeavy:
		return parameter.HapticHeavy
	default:
		return parameter.HapticLight
	}
}

// Haptics is the vibration port, implemented by the host
type Haptics interface {
	Pulse(level HapticLevel)
}

// NopHaptics discards pulses
type NopHaptics struct{}

func (NopHaptics) Pulse(HapticLevel) {}

// HapticFunc adapts a function to Haptics
type HapticFunc func(level HapticLevel)

func (f HapticFunc) Pulse(level HapticLevel) { f(level) }

// hapticFor maps effects to the pulse fired alongside them
func hapticFor(st SoundType) (HapticLevel, bool) {
	switch st {
	case SoundFail, SoundGameOver:
		return HapticHeavy, true
	case SoundCombo, SoundPowerUp, SoundSuccess:
		return HapticMedium, true
	case SoundCollect:
		return HapticLight, true
	default:
		return 0, false
	}
}
