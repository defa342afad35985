package system

import (
	"time"

	"github.com/lixenwraith/dodger/event"
)

// shakeCellsPer is the shake duration worth one cell of amplitude
const shakeCellsPer = 60 * time.Millisecond

// ShakeSystem tracks the screen shake requested by hits and kills
// Overlapping requests keep the longest remaining duration
type ShakeSystem struct {
	remaining time.Duration
	frame     int
}

func NewShakeSystem() *ShakeSystem { return &ShakeSystem{} }

func (s *ShakeSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventShake, event.EventGameStart}
}

func (s *ShakeSystem) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventGameStart:
		s.remaining = 0
	case event.EventShake:
		if p, ok := ev.Payload.(*event.ShakePayload); ok {
			s.remaining = max(s.remaining, p.Duration)
		}
	}
}

// Update decays the shake by dt
func (s *ShakeSystem) Update(dt time.Duration) {
	s.remaining = max(0, s.remaining-dt)
	s.frame++
}

// Remaining returns the shake time left
func (s *ShakeSystem) Remaining() time.Duration { return s.remaining }

// Offset returns the render offset in cells, alternating sides each frame
func (s *ShakeSystem) Offset() (dx, dy int) {
	if s.remaining <= 0 {
		return 0, 0
	}
	amp := 1 + int(s.remaining/shakeCellsPer)
	amp = min(amp, 3)
	if s.frame%2 == 0 {
		return amp, 0
	}
	return -amp, amp / 2
}
