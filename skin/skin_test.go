package skin

import (
	"testing"
)

// TestResolveFallback verifies unknown ids resolve to the default skin
func TestResolveFallback(t *testing.T) {
	s := Resolve("does-not-exist")
	if s.ID != DefaultID {
		t.Errorf("Expected %s, got %s", DefaultID, s.ID)
	}
	if s.Mods != Neutral() {
		t.Errorf("Expected neutral modifiers, got %+v", s.Mods)
	}
	if Known("does-not-exist") {
		t.Error("Expected unknown id to be reported unknown")
	}
}

// TestCatalogModifiersPositive verifies every skin carries usable multipliers
func TestCatalogModifiersPositive(t *testing.T) {
	for _, id := range IDs() {
		m := Resolve(id).Mods
		for i, v := range []float64{m.Speed, m.Score, m.Shield, m.Combo, m.Echo, m.Hitbox, m.PowerUpDuration, m.Vision} {
			if v <= 0 {
				t.Errorf("Skin %s: modifier %d is %f", id, i, v)
			}
		}
	}
}

// TestBlendEndpoints verifies blend returns core and glow at the extremes
func TestBlendEndpoints(t *testing.T) {
	s := Resolve("ember")
	if s.Blend(0) != s.Core {
		t.Errorf("Expected core at 0, got %s", s.Blend(0).Hex())
	}
	if s.Blend(1) != s.Glow {
		t.Errorf("Expected glow at 1, got %s", s.Blend(1).Hex())
	}
	if s.Core.Hex() != "#ff6a00" {
		t.Errorf("Expected #ff6a00, got %s", s.Core.Hex())
	}
}
