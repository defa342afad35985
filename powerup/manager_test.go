package powerup

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/lixenwraith/dodger/event"
	"github.com/lixenwraith/dodger/parameter"
)

func newTestManager() (*Manager, *event.EventQueue) {
	q := event.NewEventQueue()
	return NewManager(DefaultModifiers(), q, nil), q
}

func endReasons(q *event.EventQueue) map[string]event.PowerUpEndReason {
	out := make(map[string]event.PowerUpEndReason)
	for _, ev := range q.Consume() {
		if ev.Type != event.EventPowerUpEnded {
			continue
		}
		p := ev.Payload.(*event.PowerUpPayload)
		out[p.Type] = p.Reason
	}
	return out
}

// TestNonStackableRefreshes verifies a second activation refreshes instead of duplicating
func TestNonStackableRefreshes(t *testing.T) {
	m, _ := newTestManager()
	m.Activate(Magnet)
	m.Update(3 * time.Second)

	act := m.Activate(Magnet)
	if !act.Refreshed {
		t.Error("Expected refreshed activation")
	}
	if n := m.Count(Magnet); n != 1 {
		t.Fatalf("Expected 1 magnet instance, got %d", n)
	}
	if got := m.Remaining(Magnet); got != parameter.PowerUpMagnetDuration {
		t.Errorf("Expected full duration %v, got %v", parameter.PowerUpMagnetDuration, got)
	}
}

// TestStackableCompounds verifies double score instances multiply
func TestStackableCompounds(t *testing.T) {
	m, _ := newTestManager()
	m.Activate(DoubleScore)
	m.Activate(DoubleScore)

	if n := m.Count(DoubleScore); n != 2 {
		t.Fatalf("Expected 2 instances, got %d", n)
	}
	if got := m.ScoreMultiplier(); got != 4 {
		t.Errorf("Expected multiplier 4, got %f", got)
	}
}

// TestCapacityEvictsOldest verifies insertion-order eviction past capacity
func TestCapacityEvictsOldest(t *testing.T) {
	m, q := newTestManager()
	m.Activate(Magnet)
	m.Activate(Shrink)
	m.Activate(Ghost)
	q.Consume()

	act := m.Activate(SlowMotion)
	if len(act.Evicted) != 1 || act.Evicted[0].Type != Magnet {
		t.Fatalf("Expected magnet evicted, got %+v", act.Evicted)
	}
	if m.IsActive(Magnet) {
		t.Error("Expected magnet inactive after eviction")
	}
	if got := len(m.Active()); got != parameter.PowerUpCapacity {
		t.Errorf("Expected %d active, got %d", parameter.PowerUpCapacity, got)
	}
	if r, ok := endReasons(q)["magnet"]; !ok || r != event.PowerUpEvicted {
		t.Errorf("Expected evicted end event for magnet, got %v (present=%v)", r, ok)
	}
}

// TestRefreshKeepsOrder verifies a refreshed instance keeps its eviction position
func TestRefreshKeepsOrder(t *testing.T) {
	m, _ := newTestManager()
	m.Activate(Magnet)
	m.Activate(Shrink)
	m.Activate(Ghost)
	m.Activate(Magnet) // Refresh, still oldest

	act := m.Activate(Reverse)
	if len(act.Evicted) != 1 || act.Evicted[0].Type != Magnet {
		t.Fatalf("Expected refreshed magnet to be evicted first, got %+v", act.Evicted)
	}
}

// TestUpdateExpires verifies countdown and expiry events
func TestUpdateExpires(t *testing.T) {
	m, q := newTestManager()
	m.Activate(Ghost)
	m.Update(parameter.PowerUpGhostDuration - time.Millisecond)
	if !m.IsInvincible() {
		t.Fatal("Expected ghost still active")
	}

	m.Update(time.Millisecond)
	if m.IsActive(Ghost) {
		t.Error("Expected ghost expired at zero")
	}
	if r, ok := endReasons(q)["ghost"]; !ok || r != event.PowerUpExpired {
		t.Errorf("Expected expired end event, got %v (present=%v)", r, ok)
	}
}

// TestReverseIsNegative verifies the reverse chaos effect inverts speed
func TestReverseIsNegative(t *testing.T) {
	m, _ := newTestManager()
	m.Activate(Reverse)
	if got := m.SpeedModifier(); got != parameter.PowerUpReverseFactor {
		t.Errorf("Expected %f, got %f", parameter.PowerUpReverseFactor, got)
	}
	m.Activate(SlowMotion)
	want := parameter.PowerUpReverseFactor * parameter.PowerUpSlowMotionFactor
	if got := m.SpeedModifier(); got != want {
		t.Errorf("Expected %f, got %f", want, got)
	}
}

// TestDerivedModifiers verifies hitbox, magnet, and invincibility derivation
func TestDerivedModifiers(t *testing.T) {
	m := NewManager(Modifiers{Duration: 1, Shield: 1, Vision: 1.5}, nil, nil)
	if m.HitboxScale() != 1 || m.MagnetRadius() != 0 || m.IsInvincible() {
		t.Fatal("Expected neutral modifiers with nothing active")
	}

	m.Activate(Shrink)
	m.Activate(Magnet)
	m.Activate(Overdrive)

	if got := m.HitboxScale(); got != parameter.PowerUpShrinkFactor {
		t.Errorf("Expected hitbox %f, got %f", parameter.PowerUpShrinkFactor, got)
	}
	if got := m.MagnetRadius(); got != parameter.PowerUpMagnetRadius*1.5 {
		t.Errorf("Expected radius %f, got %f", parameter.PowerUpMagnetRadius*1.5, got)
	}
	if !m.IsInvincible() {
		t.Error("Expected overdrive invincibility")
	}
	if got := m.ScoreMultiplier(); got != parameter.PowerUpOverdriveFactor {
		t.Errorf("Expected multiplier %f, got %f", parameter.PowerUpOverdriveFactor, got)
	}
}

// TestShieldAbsorb verifies the shield is consumed by one hit
func TestShieldAbsorb(t *testing.T) {
	m, q := newTestManager()
	if m.AbsorbHit() {
		t.Fatal("Expected no absorb without shield")
	}
	m.Activate(Shield)
	q.Consume()

	if !m.AbsorbHit() {
		t.Fatal("Expected shield to absorb")
	}
	if m.IsActive(Shield) {
		t.Error("Expected shield consumed")
	}

	absorbed := false
	for _, ev := range q.Consume() {
		if ev.Type == event.EventShieldAbsorbed {
			absorbed = true
		}
	}
	if !absorbed {
		t.Error("Expected shield absorbed event")
	}
}

// TestDurationModifiers verifies skin scaling, shield compounding
func TestDurationModifiers(t *testing.T) {
	m := NewManager(Modifiers{Duration: 2, Shield: 1.5, Vision: 1}, nil, nil)
	if got := m.DurationOf(Magnet); got != 2*parameter.PowerUpMagnetDuration {
		t.Errorf("Expected %v, got %v", 2*parameter.PowerUpMagnetDuration, got)
	}
	if got := m.DurationOf(Shield); got != 3*parameter.PowerUpShieldDuration {
		t.Errorf("Expected %v, got %v", 3*parameter.PowerUpShieldDuration, got)
	}
}

// TestDeactivate verifies explicit removal
func TestDeactivate(t *testing.T) {
	m, q := newTestManager()
	if m.Deactivate(Ghost) {
		t.Error("Expected false for inactive type")
	}
	m.Activate(Ghost)
	if !m.Deactivate(Ghost) {
		t.Error("Expected true for active type")
	}
	if r, ok := endReasons(q)["ghost"]; !ok || r != event.PowerUpRemoved {
		t.Errorf("Expected removed end event, got %v (present=%v)", r, ok)
	}
}

// TestRandomTypeWeighting verifies common types dominate and every rarity appears
func TestRandomTypeWeighting(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 9))
	counts := make(map[Rarity]int)
	const n = 20000
	for i := 0; i < n; i++ {
		def, _ := Lookup(RandomType(rng))
		counts[def.Rarity]++
	}

	if frac := float64(counts[Common]) / n; frac < 0.55 || frac > 0.65 {
		t.Errorf("Expected common near 0.60, got %f", frac)
	}
	if counts[Legendary] == 0 {
		t.Error("Expected at least one legendary pick")
	}
	if counts[Legendary] > counts[Epic] {
		t.Errorf("Expected legendary rarer than epic, got %d vs %d", counts[Legendary], counts[Epic])
	}
}

// TestParseType verifies catalog name lookup
func TestParseType(t *testing.T) {
	for _, typ := range Types() {
		got, ok := ParseType(typ.String())
		if !ok || got != typ {
			t.Errorf("Expected %s to round trip, got %v/%v", typ, got, ok)
		}
	}
	if _, ok := ParseType("laser"); ok {
		t.Error("Expected unknown name to fail")
	}
}
