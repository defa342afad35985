package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length, trades latency for underrun safety
	AudioBufferDuration = 100 * time.Millisecond
)

// Mix Bus Defaults
const (
	DefaultMasterVolume = 0.8
	DefaultMusicVolume  = 0.6
	DefaultEffectVolume = 0.9
)

// Haptic pulse lengths per level
const (
	HapticLight  = 15 * time.Millisecond
	HapticMedium = 40 * time.Millisecond
	HapticHeavy  = 90 * time.Millisecond
)

// Fail Sound (descending saw sweep)
const (
	FailSoundDuration = 350 * time.Millisecond
	FailStartFreq     = 400.0
	FailEndFreq       = 80.0
)

// Collect Sound (two square blips)
const (
	CollectNoteDuration = 60 * time.Millisecond
)

// Dodge Sound (short rising sine)
const (
	DodgeSoundDuration = 80 * time.Millisecond
	DodgeStartFreq     = 600.0
	DodgeEndFreq       = 900.0
)

// Combo, Success, Game Over note lengths
const (
	ComboNoteDuration    = 70 * time.Millisecond
	SuccessNoteDuration  = 90 * time.Millisecond
	GameOverNoteDuration = 180 * time.Millisecond
)

// Click Sound
const (
	ClickSoundDuration = 20 * time.Millisecond
	ClickFreq          = 1200.0
)

// Power-Up Sound (rising square sweep)
const (
	PowerUpSoundDuration = 250 * time.Millisecond
	PowerUpStartFreq     = 300.0
	PowerUpEndFreq       = 1200.0
)

// Effect envelope edges
const (
	EffectAttack  = 3 * time.Millisecond
	EffectRelease = 25 * time.Millisecond
)
