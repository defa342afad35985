package audio

import "time"

// SoundType identifies a one-shot effect
type SoundType int

const (
	SoundFail     SoundType = iota // Player hit
	SoundCollect                   // Pickup
	SoundDodge                     // Obstacle cleared
	SoundCombo                     // Combo milestone, pitch rises with level
	SoundGameOver                  // Run ended
	SoundSuccess                   // Elite kill, streak milestone
	SoundClick                     // UI tick
	SoundPowerUp                   // Power-up activated
	soundTypeCount
)

var soundNames = [soundTypeCount]string{"fail", "collect", "dodge", "combo", "game_over", "success", "click", "powerup"}

func (s SoundType) String() string {
	if s < 0 || s >= soundTypeCount {
		return "unknown"
	}
	return soundNames[s]
}

// Instrument is a music voice
type Instrument int

const (
	Kick Instrument = iota
	Snare
	HatClosed
	HatOpen
	Bass
	Lead
	instrumentCount
)

var instrumentNames = [instrumentCount]string{"kick", "snare", "hat_closed", "hat_open", "bass", "lead"}

func (i Instrument) String() string {
	if i < 0 || i >= instrumentCount {
		return "unknown"
	}
	return instrumentNames[i]
}

// IsDrum reports whether the instrument ignores pitch
func (i Instrument) IsDrum() bool {
	return i <= HatOpen
}

// Note is one sequencer trigger
type Note struct {
	Instrument Instrument
	Pitch      int     // MIDI note, ignored by drums
	Velocity   float64 // 0.0-1.0
}

// Synth renders sequencer notes
// Trigger is called from the music clock goroutine
type Synth interface {
	Trigger(n Note)
}

// Ticker is the music clock source, satisfied by *time.Ticker through tickerAdapter
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a ticker firing every d
type TickerFactory func(d time.Duration) Ticker

type tickerAdapter struct {
	t *time.Ticker
}

func (a tickerAdapter) C() <-chan time.Time { return a.t.C }
func (a tickerAdapter) Stop()               { a.t.Stop() }

// NewTimeTicker is the wall-clock TickerFactory
func NewTimeTicker(d time.Duration) Ticker {
	return tickerAdapter{t: time.NewTicker(d)}
}
