// Package skin resolves cosmetic identities into gameplay modifiers and a color pair
package skin

import (
	"log"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultID is the skin every unknown id falls back to
const DefaultID = "neon"

// Modifiers are read-only multipliers consumed by the simulation each run
type Modifiers struct {
	Speed           float64 // Player movement
	Score           float64 // All dodge and pickup points
	Shield          float64 // Shield power-up duration
	Combo           float64 // Combo bonus step
	Echo            float64 // Projectile trail length
	Hitbox          float64 // Player hitbox size
	PowerUpDuration float64 // Every power-up duration
	Vision          float64 // Pickup and magnet reach
}

// Neutral returns modifiers that change nothing
func Neutral() Modifiers {
	return Modifiers{1, 1, 1, 1, 1, 1, 1, 1}
}

// Skin is a resolved cosmetic
type Skin struct {
	ID   string
	Name string
	Mods Modifiers
	Core colorful.Color
	Glow colorful.Color
}

// Blend returns the color t of the way from core to glow, in Lab space
func (s Skin) Blend(t float64) colorful.Color {
	if t <= 0 {
		return s.Core
	}
	if t >= 1 {
		return s.Glow
	}
	return s.Core.BlendLab(s.Glow, t).Clamped()
}

type entry struct {
	id, name   string
	mods       Modifiers
	core, glow string
}

var catalog = []entry{
	{DefaultID, "Neon", Neutral(), "#00f0ff", "#ff2bd6"},
	{"ember", "Ember", Modifiers{Speed: 1.05, Score: 1.1, Shield: 1, Combo: 1, Echo: 1.2, Hitbox: 1, PowerUpDuration: 1, Vision: 1}, "#ff6a00", "#ffd000"},
	{"frost", "Frost", Modifiers{Speed: 0.95, Score: 1, Shield: 1.5, Combo: 1, Echo: 1, Hitbox: 1, PowerUpDuration: 1.1, Vision: 1}, "#9be7ff", "#ffffff"},
	{"wraith", "Wraith", Modifiers{Speed: 1, Score: 1, Shield: 1, Combo: 1, Echo: 1.6, Hitbox: 0.9, PowerUpDuration: 1, Vision: 1}, "#8a7dff", "#2b1f5c"},
	{"aurora", "Aurora", Modifiers{Speed: 1, Score: 1, Shield: 1, Combo: 1.25, Echo: 1, Hitbox: 1, PowerUpDuration: 1, Vision: 1.3}, "#3dff8f", "#7a5cff"},
	{"solar", "Solar", Modifiers{Speed: 1, Score: 1.05, Shield: 1, Combo: 1, Echo: 1, Hitbox: 1.05, PowerUpDuration: 1.3, Vision: 1}, "#ffe066", "#ff3d00"},
}

var resolved map[string]Skin

func init() {
	resolved = make(map[string]Skin, len(catalog))
	for _, e := range catalog {
		resolved[e.id] = Skin{
			ID:   e.id,
			Name: e.name,
			Mods: e.mods,
			Core: parseHex(e.core),
			Glow: parseHex(e.glow),
		}
	}
}

// parseHex falls back to white so a bad catalog literal never blocks startup
func parseHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		log.Printf("skin: bad color %q: %v", s, err)
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return c
}

// Resolve returns the skin for id, or the default skin for unknown ids
func Resolve(id string) Skin {
	if s, ok := resolved[id]; ok {
		return s
	}
	return resolved[DefaultID]
}

// Known reports whether id names a catalog skin
func Known(id string) bool {
	_, ok := resolved[id]
	return ok
}

// IDs returns catalog ids in catalog order
func IDs() []string {
	out := make([]string, len(catalog))
	for i, e := range catalog {
		out[i] = e.id
	}
	return out
}
