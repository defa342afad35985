package system

import (
	"sync"

	"github.com/lixenwraith/dodger/event"
)

// runPhase is the run lifecycle as seen by the music system
type runPhase int

const (
	phaseIdle runPhase = iota
	phasePlaying
	phasePaused
)

// MusicSystem follows the run lifecycle and intensity with the music clock
// SetEnabled comes from the input goroutine and events from the frame goroutine,
// so all state sits behind mu
type MusicSystem struct {
	player MusicPlayer

	mu        sync.Mutex
	enabled   bool
	phase     runPhase
	started   bool // Clock started for this run and not stopped since
	intensity float64
}

// NewMusicSystem creates a music system; player may be nil
func NewMusicSystem(player MusicPlayer) *MusicSystem {
	return &MusicSystem{player: player, enabled: true}
}

// SetEnabled toggles music; disabling stops the clock, enabling mid-run restarts it
func (s *MusicSystem) SetEnabled(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.enabled == on {
		return
	}
	s.enabled = on
	if s.player == nil {
		return
	}
	if !on {
		s.player.StopMusic()
		s.started = false
		return
	}
	if s.phase == phasePlaying {
		s.start()
	}
}

// Enabled reports whether music follows the run
func (s *MusicSystem) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// start launches the clock at the last known intensity; caller holds mu
func (s *MusicSystem) start() {
	s.player.SetIntensity(s.intensity)
	s.player.StartMusic()
	s.started = true
}

// EventTypes returns handled event types
func (s *MusicSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventGameStart,
		event.EventGamePaused,
		event.EventGameResumed,
		event.EventGameOver,
		event.EventIntensityChanged,
	}
}

// HandleEvent processes lifecycle and intensity events
// The phase is tracked while muted so unmuting knows whether a run is live
func (s *MusicSystem) HandleEvent(ev event.GameEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev.Type {
	case event.EventGameStart:
		s.phase = phasePlaying
		s.intensity = 0
	case event.EventGamePaused:
		s.phase = phasePaused
	case event.EventGameResumed:
		s.phase = phasePlaying
	case event.EventGameOver:
		s.phase = phaseIdle
	case event.EventIntensityChanged:
		if p, ok := ev.Payload.(*event.IntensityPayload); ok {
			s.intensity = p.Intensity
		}
	}

	if !s.enabled || s.player == nil {
		return
	}

	switch ev.Type {
	case event.EventGameStart:
		s.start()
	case event.EventGamePaused:
		if s.started {
			s.player.PauseMusic()
		}
	case event.EventGameResumed:
		// Unmuted during the pause: the clock was never started
		if s.started {
			s.player.ResumeMusic()
		} else {
			s.start()
		}
	case event.EventGameOver:
		s.player.StopMusic()
		s.started = false
	case event.EventIntensityChanged:
		s.player.SetIntensity(s.intensity)
	}
}
