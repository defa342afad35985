package difficulty

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/lixenwraith/dodger/parameter"
	"github.com/lixenwraith/dodger/status"
)

func newTestController() *Controller {
	return NewController(DefaultConfig(), rand.New(rand.NewPCG(1, 2)), nil)
}

// TestDodgeRunPlateausAtCeiling verifies monotonic increase to the ceiling over consecutive dodges
func TestDodgeRunPlateausAtCeiling(t *testing.T) {
	c := newTestController()
	prev := c.Level()

	for i := 0; i < 20; i++ {
		c.RecordDodge(300 * time.Millisecond)
		lvl := c.Level()
		if lvl < prev {
			t.Fatalf("Dodge %d: level decreased from %f to %f", i, prev, lvl)
		}
		if lvl > parameter.DifficultyCeiling {
			t.Fatalf("Dodge %d: level %f exceeds ceiling", i, lvl)
		}
		prev = lvl
	}

	if c.Level() != parameter.DifficultyCeiling {
		t.Errorf("Expected plateau at %f, got %f", parameter.DifficultyCeiling, c.Level())
	}
	if rate := c.SuccessRate(); rate != 1.0 {
		t.Errorf("Expected success rate 1.0, got %f", rate)
	}
}

// TestFailRunClampsToFloor verifies the level never drops below the floor
func TestFailRunClampsToFloor(t *testing.T) {
	c := newTestController()
	for i := 0; i < 40; i++ {
		c.RecordFail()
		if c.Level() < parameter.DifficultyFloor {
			t.Fatalf("Fail %d: level %f below floor", i, c.Level())
		}
	}
	if c.Level() != parameter.DifficultyFloor {
		t.Errorf("Expected floor %f, got %f", parameter.DifficultyFloor, c.Level())
	}
}

// TestToleranceBandHoldsLevel verifies no adaptation while the rate sits near target
func TestToleranceBandHoldsLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Window = 10
	c := NewController(cfg, nil, nil)

	// Second cycle rotates identical outcomes through a full window, rate stays 0.6
	pattern := []bool{true, true, false, true, false, true, true, false, true, false}
	for _, ok := range pattern {
		if ok {
			c.RecordDodge(0)
		} else {
			c.RecordFail()
		}
	}
	before := c.Level()
	for _, ok := range pattern {
		if ok {
			c.RecordDodge(0)
		} else {
			c.RecordFail()
		}
	}
	if rate := c.SuccessRate(); math.Abs(rate-0.6) > 1e-9 {
		t.Fatalf("Expected rate 0.6, got %f", rate)
	}
	if c.Level() != before {
		t.Errorf("Expected level unchanged at %f, got %f", before, c.Level())
	}
}

// TestWindowEvictsOldest verifies the rate reflects only the last Window outcomes
func TestWindowEvictsOldest(t *testing.T) {
	c := newTestController()
	for i := 0; i < 20; i++ {
		c.RecordFail()
	}
	for i := 0; i < 20; i++ {
		c.RecordDodge(0)
	}
	if c.Metrics().Len() != 20 {
		t.Errorf("Expected window length 20, got %d", c.Metrics().Len())
	}
	if rate := c.SuccessRate(); rate != 1.0 {
		t.Errorf("Expected rate 1.0 after eviction, got %f", rate)
	}
}

// TestEmptyWindowReportsTarget verifies no adaptation signal before any outcome
func TestEmptyWindowReportsTarget(t *testing.T) {
	c := newTestController()
	if rate := c.SuccessRate(); rate != parameter.DifficultyTargetRate {
		t.Errorf("Expected target rate, got %f", rate)
	}
	if c.Level() != parameter.DifficultyInitial {
		t.Errorf("Expected initial level, got %f", c.Level())
	}
}

// TestMilestoneEveryInterval verifies boss triggers on multiples of the streak interval
func TestMilestoneEveryInterval(t *testing.T) {
	c := newTestController()
	var got []Milestone
	for i := 0; i < 60; i++ {
		if m := c.RecordDodge(0); m.Triggered {
			got = append(got, m)
		}
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 milestones, got %d", len(got))
	}
	if got[0].Streak != 25 || got[0].Tier != 1 {
		t.Errorf("Expected streak 25 tier 1, got %d/%d", got[0].Streak, got[0].Tier)
	}
	if got[1].Streak != 50 || got[1].Tier != 2 {
		t.Errorf("Expected streak 50 tier 2, got %d/%d", got[1].Streak, got[1].Tier)
	}

	c.RecordFail()
	if c.Metrics().Streak() != 0 {
		t.Errorf("Expected streak reset, got %d", c.Metrics().Streak())
	}
	if c.Metrics().LongestStreak() != 60 {
		t.Errorf("Expected longest 60, got %d", c.Metrics().LongestStreak())
	}
}

// TestProgressTimeCreeps verifies the performance-independent increase
func TestProgressTimeCreeps(t *testing.T) {
	c := newTestController()
	c.ProgressTime(10 * time.Second)
	want := parameter.DifficultyInitial + 10*parameter.DifficultyCreepPerSecond
	if math.Abs(c.Level()-want) > 1e-9 {
		t.Errorf("Expected %f, got %f", want, c.Level())
	}

	c.ProgressTime(time.Hour)
	if c.Level() != parameter.DifficultyCeiling {
		t.Errorf("Expected creep to clamp at ceiling, got %f", c.Level())
	}
}

// TestNaNSelfHeals verifies a corrupted level resets to the initial value
func TestNaNSelfHeals(t *testing.T) {
	c := newTestController()
	c.level = math.NaN()
	c.ProgressTime(0)
	if c.Level() != parameter.DifficultyInitial {
		t.Errorf("Expected heal to %f, got %f", parameter.DifficultyInitial, c.Level())
	}
}

// TestDeriveBounds verifies derived ranges at the extremes
func TestDeriveBounds(t *testing.T) {
	cfg := DefaultConfig()

	lo := Derive(cfg.Floor, cfg)
	if lo.Speed != parameter.ObstacleSpeedMin {
		t.Errorf("Expected floor speed %f, got %f", parameter.ObstacleSpeedMin, lo.Speed)
	}
	if lo.SpawnInterval != parameter.SpawnIntervalMax {
		t.Errorf("Expected floor interval %v, got %v", parameter.SpawnIntervalMax, lo.SpawnInterval)
	}
	if lo.Tier != TierEasy || lo.ReactionWindow != 1 {
		t.Errorf("Expected easy tier and full window, got %s/%f", lo.Tier, lo.ReactionWindow)
	}

	hi := Derive(cfg.Ceiling, cfg)
	if hi.Speed != parameter.ObstacleSpeedMax {
		t.Errorf("Expected ceiling speed %f, got %f", parameter.ObstacleSpeedMax, hi.Speed)
	}
	if hi.SpawnInterval != parameter.SpawnIntervalMin {
		t.Errorf("Expected ceiling interval %v, got %v", parameter.SpawnIntervalMin, hi.SpawnInterval)
	}
	if hi.Tier != TierNightmare {
		t.Errorf("Expected nightmare tier, got %s", hi.Tier)
	}
	if hi.Complexity != parameter.ComplexityMax {
		t.Errorf("Expected complexity %f, got %f", parameter.ComplexityMax, hi.Complexity)
	}
}

// TestEaseInOut verifies endpoints, midpoint, and symmetry
func TestEaseInOut(t *testing.T) {
	if EaseInOut(0) != 0 || EaseInOut(1) != 1 {
		t.Error("Expected fixed endpoints")
	}
	if EaseInOut(0.5) != 0.5 {
		t.Errorf("Expected 0.5 at midpoint, got %f", EaseInOut(0.5))
	}
	for _, x := range []float64{0.1, 0.25, 0.4} {
		if d := EaseInOut(x) + EaseInOut(1-x) - 1; math.Abs(d) > 1e-12 {
			t.Errorf("Expected symmetry at %f, off by %g", x, d)
		}
	}
}

// TestObstaclePatternMatchesTier verifies layouts come from the active tier
func TestObstaclePatternMatchesTier(t *testing.T) {
	c := newTestController()
	c.Reset(parameter.DifficultyCeiling)
	for i := 0; i < 50; i++ {
		p := c.ObstaclePattern()
		if p.Tier != TierNightmare {
			t.Fatalf("Expected nightmare pattern, got %s (%s)", p.Name, p.Tier)
		}
		if len(p.Slots) == 0 {
			t.Fatalf("Pattern %s has no slots", p.Name)
		}
	}
}

// TestSeededPatternsRepeat verifies identical seeds yield identical layout sequences
func TestSeededPatternsRepeat(t *testing.T) {
	a := NewController(DefaultConfig(), rand.New(rand.NewPCG(7, 7)), nil)
	b := NewController(DefaultConfig(), rand.New(rand.NewPCG(7, 7)), nil)
	for i := 0; i < 30; i++ {
		if pa, pb := a.ObstaclePattern(), b.ObstaclePattern(); pa.Name != pb.Name {
			t.Fatalf("Step %d: %s != %s", i, pa.Name, pb.Name)
		}
	}
}

// TestTelemetryPublished verifies status metrics track controller state
func TestTelemetryPublished(t *testing.T) {
	reg := status.NewRegistry()
	c := NewController(DefaultConfig(), nil, reg)
	c.RecordDodge(0)

	if got := reg.Floats.Get("difficulty.level").Get(); got != c.Level() {
		t.Errorf("Expected level metric %f, got %f", c.Level(), got)
	}
	if got := reg.Strings.Get("difficulty.tier").Load(); got != c.State().Tier.String() {
		t.Errorf("Expected tier metric %s, got %s", c.State().Tier, got)
	}
}
