package system

import (
	"strconv"
	"time"

	"github.com/lixenwraith/dodger/event"
)

const popupLifetime = 800 * time.Millisecond

// Popup is a floating score label at a field position
type Popup struct {
	Text string
	X, Y float64
	Age  time.Duration
}

// Progress returns the popup's age as a fraction of its lifetime
func (p Popup) Progress() float64 {
	return min(1, float64(p.Age)/float64(popupLifetime))
}

// PopupSystem collects score awards as floating labels for the renderer
type PopupSystem struct {
	popups []Popup
	limit  int
}

// NewPopupSystem keeps at most limit live popups, oldest dropped first
func NewPopupSystem(limit int) *PopupSystem {
	if limit <= 0 {
		limit = 16
	}
	return &PopupSystem{limit: limit}
}

func (s *PopupSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventScore, event.EventDodge, event.EventGameStart}
}

func (s *PopupSystem) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventGameStart:
		s.popups = s.popups[:0]
	case event.EventScore:
		if p, ok := ev.Payload.(*event.ScorePayload); ok {
			s.add(p.Amount, p.X, p.Y)
		}
	case event.EventDodge:
		if p, ok := ev.Payload.(*event.DodgePayload); ok {
			s.add(p.Points, p.X, p.Y)
		}
	}
}

func (s *PopupSystem) add(amount int64, x, y float64) {
	if amount <= 0 {
		return
	}
	if len(s.popups) >= s.limit {
		s.popups = append(s.popups[:0], s.popups[1:]...)
	}
	s.popups = append(s.popups, Popup{Text: "+" + strconv.FormatInt(amount, 10), X: x, Y: y})
}

// Update ages popups and drops expired ones
func (s *PopupSystem) Update(dt time.Duration) {
	live := s.popups[:0]
	for _, p := range s.popups {
		p.Age += dt
		if p.Age < popupLifetime {
			live = append(live, p)
		}
	}
	s.popups = live
}

// Popups returns the live popups, oldest first
func (s *PopupSystem) Popups() []Popup { return s.popups }
