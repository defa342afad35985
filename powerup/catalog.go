package powerup

import (
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/dodger/parameter"
)

// Type identifies a power-up definition
type Type int

const (
	Shield Type = iota
	Magnet
	DoubleScore
	SlowMotion
	Shrink
	Ghost
	Reverse
	Overdrive
	typeCount
)

// Rarity buckets drive drop weighting
type Rarity int

const (
	Common Rarity = iota
	Uncommon
	Rare
	Epic
	Legendary
	rarityCount
)

var rarityNames = [rarityCount]string{"common", "uncommon", "rare", "epic", "legendary"}

func (r Rarity) String() string {
	if r < 0 || r >= rarityCount {
		return "unknown"
	}
	return rarityNames[r]
}

var rarityWeights = [rarityCount]int{
	Common:    parameter.RarityWeightCommon,
	Uncommon:  parameter.RarityWeightUncommon,
	Rare:      parameter.RarityWeightRare,
	Epic:      parameter.RarityWeightEpic,
	Legendary: parameter.RarityWeightLegendary,
}

// Definition is the static description of a power-up type
type Definition struct {
	Type        Type
	Name        string
	Duration    time.Duration
	Stackable   bool
	Rarity      Rarity
	Glyph       rune
	Color       string // Hex, parsed by render
	Description string
}

var catalog = [typeCount]Definition{
	Shield:      {Shield, "shield", parameter.PowerUpShieldDuration, false, Common, '◉', "#3fd0ff", "absorbs one obstacle hit"},
	Magnet:      {Magnet, "magnet", parameter.PowerUpMagnetDuration, false, Common, '∪', "#ff5f87", "pulls nearby pickups"},
	DoubleScore: {DoubleScore, "double_score", parameter.PowerUpDoubleScoreDuration, true, Common, '×', "#ffd75f", "doubles points, stacks"},
	SlowMotion:  {SlowMotion, "slow_motion", parameter.PowerUpSlowMotionDuration, false, Uncommon, '◷', "#87afff", "halves obstacle speed"},
	Shrink:      {Shrink, "shrink", parameter.PowerUpShrinkDuration, false, Uncommon, '•', "#5fffaf", "halves the hitbox"},
	Ghost:       {Ghost, "ghost", parameter.PowerUpGhostDuration, false, Rare, '◌', "#d0d0ff", "pass through obstacles"},
	Reverse:     {Reverse, "reverse", parameter.PowerUpReverseDuration, false, Epic, '⇄', "#ff875f", "obstacles run backward"},
	Overdrive:   {Overdrive, "overdrive", parameter.PowerUpOverdriveDuration, false, Legendary, '★', "#ff00ff", "invincible, quintuple points"},
}

// String returns the catalog name
func (t Type) String() string {
	if t < 0 || t >= typeCount {
		return "unknown"
	}
	return catalog[t].Name
}

// Lookup returns the definition of t; ok is false for unknown types
func Lookup(t Type) (Definition, bool) {
	if t < 0 || t >= typeCount {
		return Definition{}, false
	}
	return catalog[t], true
}

// Types returns every known type in catalog order
func Types() []Type {
	out := make([]Type, typeCount)
	for i := range out {
		out[i] = Type(i)
	}
	return out
}

// ParseType resolves a catalog name
func ParseType(name string) (Type, bool) {
	for _, d := range catalog {
		if d.Name == name {
			return d.Type, true
		}
	}
	return 0, false
}

// RandomType picks a rarity by weight, then a type uniformly within it
func RandomType(rng *rand.Rand) Type {
	total := 0
	for _, w := range rarityWeights {
		total += w
	}
	roll := rng.IntN(total)

	rarity := Common
	for r, w := range rarityWeights {
		if roll < w {
			rarity = Rarity(r)
			break
		}
		roll -= w
	}

	var pool []Type
	for _, d := range catalog {
		if d.Rarity == rarity {
			pool = append(pool, d.Type)
		}
	}
	if len(pool) == 0 {
		return Shield
	}
	return pool[rng.IntN(len(pool))]
}
