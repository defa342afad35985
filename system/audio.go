package system

import (
	"sync/atomic"

	"github.com/lixenwraith/dodger/event"
)

// AudioSystem maps gameplay events to sound effects
// Decouples the simulation from direct audio engine access
type AudioSystem struct {
	player  AudioPlayer
	enabled atomic.Bool
}

// NewAudioSystem creates an audio system; player may be nil when audio is disabled
func NewAudioSystem(player AudioPlayer) *AudioSystem {
	s := &AudioSystem{player: player}
	s.enabled.Store(true)
	return s
}

// SetEnabled toggles effect playback, for the host's mute key
func (s *AudioSystem) SetEnabled(on bool) { s.enabled.Store(on) }

// Enabled reports whether effects play
func (s *AudioSystem) Enabled() bool { return s.enabled.Load() }

// EventTypes returns the event types AudioSystem handles
func (s *AudioSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventDodge,
		event.EventFail,
		event.EventCollect,
		event.EventComboChanged,
		event.EventStreakMilestone,
		event.EventGameOver,
		event.EventPowerUpActivated,
		event.EventShieldAbsorbed,
		event.EventEliteBlocked,
		event.EventEliteKilled,
	}
}

// HandleEvent plays the effect for ev
func (s *AudioSystem) HandleEvent(ev event.GameEvent) {
	if !s.enabled.Load() || s.player == nil {
		return
	}

	switch ev.Type {
	case event.EventDodge:
		s.player.PlayDodge()
	case event.EventFail:
		s.player.PlayFail()
	case event.EventCollect:
		// Capsules are voiced by their activation
		if p, ok := ev.Payload.(*event.CollectPayload); ok && p.PowerUp != "" {
			return
		}
		s.player.PlayCollect()
	case event.EventComboChanged:
		// A reset is voiced by the fail that caused it
		if p, ok := ev.Payload.(*event.ComboPayload); ok && p.Combo > 0 {
			s.player.PlayCombo(p.Combo)
		}
	case event.EventStreakMilestone, event.EventEliteKilled:
		s.player.PlaySuccess()
	case event.EventGameOver:
		s.player.PlayGameOver()
	case event.EventPowerUpActivated:
		s.player.PlayPowerUp()
	case event.EventShieldAbsorbed, event.EventEliteBlocked:
		s.player.PlayClick()
	}
}
