package powerup

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/dodger/event"
	"github.com/lixenwraith/dodger/parameter"
	"github.com/lixenwraith/dodger/status"
)

// Modifiers are the skin multipliers the manager applies
type Modifiers struct {
	Duration float64 // All durations
	Shield   float64 // Shield duration on top of Duration
	Vision   float64 // Magnet radius
}

// DefaultModifiers leaves every value unscaled
func DefaultModifiers() Modifiers {
	return Modifiers{Duration: 1, Shield: 1, Vision: 1}
}

// Instance is a live power-up
type Instance struct {
	Type      Type
	Remaining time.Duration
	Duration  time.Duration
	Stackable bool
	seq       uint64
}

// Activation reports the outcome of Activate
type Activation struct {
	Instance  Instance
	Refreshed bool
	Evicted   []Instance
}

// Manager tracks active timed modifiers for one run
// Active instances are kept in activation order, oldest first
type Manager struct {
	active []Instance
	seq    uint64
	mods   Modifiers
	pub    event.Publisher

	// Telemetry
	statActive    *atomic.Int64
	statActivated *atomic.Int64
}

// NewManager creates a manager; pub and reg may be nil
func NewManager(mods Modifiers, pub event.Publisher, reg *status.Registry) *Manager {
	if reg == nil {
		reg = status.NewRegistry()
	}
	m := &Manager{
		active:        make([]Instance, 0, parameter.PowerUpCapacity),
		pub:           pub,
		statActive:    reg.Ints.Get("powerup.active"),
		statActivated: reg.Ints.Get("powerup.activated"),
	}
	m.SetModifiers(mods)
	return m
}

// SetModifiers replaces skin multipliers; non-positive values fall back to 1
func (m *Manager) SetModifiers(mods Modifiers) {
	if mods.Duration <= 0 {
		mods.Duration = 1
	}
	if mods.Shield <= 0 {
		mods.Shield = 1
	}
	if mods.Vision <= 0 {
		mods.Vision = 1
	}
	m.mods = mods
}

// Reset clears every instance without publishing end events
func (m *Manager) Reset() {
	m.active = m.active[:0]
	m.seq = 0
	m.statActive.Store(0)
	m.statActivated.Store(0)
}

// DurationOf returns the scaled duration of t
func (m *Manager) DurationOf(t Type) time.Duration {
	def, ok := Lookup(t)
	if !ok {
		return 0
	}
	scale := m.mods.Duration
	if t == Shield {
		scale *= m.mods.Shield
	}
	return time.Duration(float64(def.Duration) * scale)
}

// Activate starts t, refreshing instead of duplicating non-stackable types
// Exceeding capacity evicts the oldest activation
func (m *Manager) Activate(t Type) Activation {
	def, ok := Lookup(t)
	if !ok {
		return Activation{}
	}
	dur := m.DurationOf(t)
	m.statActivated.Add(1)

	if !def.Stackable {
		for i := range m.active {
			if m.active[i].Type == t {
				m.active[i].Remaining = dur
				m.active[i].Duration = dur
				act := Activation{Instance: m.active[i], Refreshed: true}
				m.publishActivated(act)
				return act
			}
		}
	}

	var evicted []Instance
	for len(m.active) >= parameter.PowerUpCapacity {
		old := m.active[0]
		m.active = append(m.active[:0], m.active[1:]...)
		evicted = append(evicted, old)
		event.Emit(m.pub, event.EventPowerUpEnded, &event.PowerUpPayload{
			Type:   old.Type.String(),
			Reason: event.PowerUpEvicted,
		})
	}

	m.seq++
	inst := Instance{Type: t, Remaining: dur, Duration: dur, Stackable: def.Stackable, seq: m.seq}
	m.active = append(m.active, inst)
	m.statActive.Store(int64(len(m.active)))

	act := Activation{Instance: inst, Evicted: evicted}
	m.publishActivated(act)
	return act
}

func (m *Manager) publishActivated(act Activation) {
	event.Emit(m.pub, event.EventPowerUpActivated, &event.PowerUpPayload{
		Type:      act.Instance.Type.String(),
		Remaining: act.Instance.Remaining,
		Refreshed: act.Refreshed,
	})
}

// Deactivate removes every instance of t, returns false if none was active
func (m *Manager) Deactivate(t Type) bool {
	return m.remove(t, event.PowerUpRemoved)
}

// AbsorbHit consumes an active shield; returns true if the hit was absorbed
func (m *Manager) AbsorbHit() bool {
	if !m.remove(Shield, event.PowerUpRemoved) {
		return false
	}
	event.Emit(m.pub, event.EventShieldAbsorbed, nil)
	return true
}

func (m *Manager) remove(t Type, reason event.PowerUpEndReason) bool {
	found := false
	kept := m.active[:0]
	for _, inst := range m.active {
		if inst.Type == t {
			found = true
			continue
		}
		kept = append(kept, inst)
	}
	m.active = kept
	m.statActive.Store(int64(len(m.active)))
	if found {
		event.Emit(m.pub, event.EventPowerUpEnded, &event.PowerUpPayload{Type: t.String(), Reason: reason})
	}
	return found
}

// Update counts down every instance and expires those at or below zero
func (m *Manager) Update(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	kept := m.active[:0]
	for _, inst := range m.active {
		// Clamp out-of-range timers before counting down
		if inst.Remaining > inst.Duration {
			inst.Remaining = inst.Duration
		}
		inst.Remaining -= dt
		if inst.Remaining <= 0 {
			event.Emit(m.pub, event.EventPowerUpEnded, &event.PowerUpPayload{
				Type:   inst.Type.String(),
				Reason: event.PowerUpExpired,
			})
			continue
		}
		kept = append(kept, inst)
	}
	m.active = kept
	m.statActive.Store(int64(len(m.active)))
}

// IsActive reports whether any instance of t is live
func (m *Manager) IsActive(t Type) bool {
	for _, inst := range m.active {
		if inst.Type == t {
			return true
		}
	}
	return false
}

// Remaining returns the longest remaining time of t
func (m *Manager) Remaining(t Type) time.Duration {
	var best time.Duration
	for _, inst := range m.active {
		if inst.Type == t && inst.Remaining > best {
			best = inst.Remaining
		}
	}
	return best
}

// Count returns the number of live instances of t
func (m *Manager) Count(t Type) int {
	n := 0
	for _, inst := range m.active {
		if inst.Type == t {
			n++
		}
	}
	return n
}

// Active returns a copy of live instances, oldest first
func (m *Manager) Active() []Instance {
	out := make([]Instance, len(m.active))
	copy(out, m.active)
	return out
}

// ScoreMultiplier multiplies every score-affecting instance; stackable instances compound
func (m *Manager) ScoreMultiplier() float64 {
	mult := 1.0
	for _, inst := range m.active {
		switch inst.Type {
		case DoubleScore:
			mult *= parameter.PowerUpDoubleScoreFactor
		case Overdrive:
			mult *= parameter.PowerUpOverdriveFactor
		}
	}
	return mult
}

// SpeedModifier scales obstacle speed; negative while reverse is active
func (m *Manager) SpeedModifier() float64 {
	mod := 1.0
	for _, inst := range m.active {
		switch inst.Type {
		case SlowMotion:
			mod *= parameter.PowerUpSlowMotionFactor
		case Reverse:
			mod *= parameter.PowerUpReverseFactor
		}
	}
	return mod
}

// HitboxScale scales the player hitbox
func (m *Manager) HitboxScale() float64 {
	if m.IsActive(Shrink) {
		return parameter.PowerUpShrinkFactor
	}
	return 1
}

// IsInvincible reports whether contact is ignored entirely
// Shield is not invincibility, it is consumed through AbsorbHit
func (m *Manager) IsInvincible() bool {
	return m.IsActive(Ghost) || m.IsActive(Overdrive)
}

// MagnetRadius returns the pull radius, zero when magnet is inactive
func (m *Manager) MagnetRadius() float64 {
	if !m.IsActive(Magnet) {
		return 0
	}
	return parameter.PowerUpMagnetRadius * m.mods.Vision
}
