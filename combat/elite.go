package combat

import (
	"math"
	"time"

	"github.com/lixenwraith/dodger/core"
	"github.com/lixenwraith/dodger/parameter"
)

// Kind is the elite variant
type Kind int

const (
	Sentinel Kind = iota
	Phantom
	Titan
	Swarm
	kindCount
)

var kindNames = [kindCount]string{"sentinel", "phantom", "titan", "swarm"}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// Pattern is the vertical movement behavior
type Pattern int

const (
	PatternSine Pattern = iota
	PatternZigzag
	PatternChase
	PatternHover
)

func (p Pattern) String() string {
	switch p {
	case PatternSine:
		return "sine"
	case PatternZigzag:
		return "zigzag"
	case PatternChase:
		return "chase"
	case PatternHover:
		return "hover"
	}
	return "unknown"
}

// Behavior drives vertical motion around Baseline
type Behavior struct {
	Pattern   Pattern
	Amplitude float64
	Frequency float64 // Hz
	Phase     float64 // Cycles, [0,1)
	Baseline  float64 // Center y the pattern oscillates around
}

// Reward is published once at the death transition
type Reward struct {
	Score  int64
	Tokens int
	Energy int
	Shake  time.Duration
}

// variant is the static description of a Kind
type variant struct {
	hp       int
	size     float64
	weight   int
	behavior Behavior
	reward   Reward
}

var variants = [kindCount]variant{
	Sentinel: {
		hp: parameter.SentinelHP, size: parameter.SentinelSize, weight: parameter.EliteWeightSentinel,
		behavior: Behavior{Pattern: PatternSine, Amplitude: parameter.SentinelAmplitude, Frequency: parameter.SentinelFrequency},
		reward:   Reward{parameter.SentinelScore, parameter.SentinelTokens, parameter.SentinelEnergy, parameter.SentinelShake},
	},
	Phantom: {
		hp: parameter.PhantomHP, size: parameter.PhantomSize, weight: parameter.EliteWeightPhantom,
		behavior: Behavior{Pattern: PatternHover, Amplitude: parameter.PhantomAmplitude, Frequency: parameter.PhantomFrequency},
		reward:   Reward{parameter.PhantomScore, parameter.PhantomTokens, parameter.PhantomEnergy, parameter.PhantomShake},
	},
	Titan: {
		hp: parameter.TitanHP, size: parameter.TitanSize, weight: parameter.EliteWeightTitan,
		behavior: Behavior{Pattern: PatternSine, Amplitude: parameter.SentinelAmplitude, Frequency: parameter.SentinelFrequency},
		reward:   Reward{parameter.TitanScore, parameter.TitanTokens, parameter.TitanEnergy, parameter.TitanShake},
	},
	Swarm: {
		hp: parameter.SwarmHP, size: parameter.SwarmSize, weight: parameter.EliteWeightSwarm,
		behavior: Behavior{Pattern: PatternZigzag, Amplitude: parameter.SwarmAmplitude, Frequency: parameter.SwarmFrequency},
		reward:   Reward{parameter.SwarmScore, parameter.SwarmTokens, parameter.SwarmEnergy, parameter.SwarmShake},
	},
}

// Elite is a hit-point enemy defeated by projectiles
type Elite struct {
	ID    uint64
	Kind  Kind
	Pos   core.Vec2 // Top-left
	Size  core.Vec2
	HP    int
	MaxHP int

	Behavior Behavior
	Reward   Reward

	// Sentinel shield rotation, visual only
	ShieldAngle float64
	// Phantom: a hit at or below zero teleports
	TeleportCooldown time.Duration

	Alive  bool
	Linger time.Duration // Counts down from EliteLinger after death
	Age    time.Duration
	Flash  time.Duration

	// Cluster members hold this far behind the hold line
	holdOffset float64
}

func newElite(id uint64, kind Kind, pos core.Vec2) *Elite {
	v := variants[kind]
	e := &Elite{
		ID:       id,
		Kind:     kind,
		Pos:      pos,
		Size:     core.Vec2{X: v.size, Y: v.size},
		HP:       v.hp,
		MaxHP:    v.hp,
		Behavior: v.behavior,
		Reward:   v.reward,
		Alive:    true,
	}
	e.Behavior.Baseline = pos.Y + v.size/2
	if kind == Titan {
		e.Behavior.Pattern = PatternChase
	}
	return e
}

// Rect returns the bounding box
func (e *Elite) Rect() core.Rect {
	return core.Rect{Pos: e.Pos, Size: e.Size}
}

// Center returns the box midpoint
func (e *Elite) Center() core.Vec2 {
	return e.Rect().Center()
}

// Dying reports the post-death linger window
func (e *Elite) Dying() bool {
	return !e.Alive && e.Linger > 0
}

// LingerProgress runs 0→1 across the linger window, drives scale-up and fade
func (e *Elite) LingerProgress() float64 {
	if e.Alive {
		return 0
	}
	return 1 - float64(e.Linger)/float64(parameter.EliteLinger)
}

// ApplyDamage subtracts hit points; a dying elite ignores it and returns false
// Reaching zero flips Alive and starts the linger countdown
func (e *Elite) ApplyDamage(n int) bool {
	if !e.Alive || n <= 0 {
		return false
	}
	e.HP -= n
	e.Flash = parameter.EliteHitFlash
	if e.HP <= 0 {
		e.HP = 0
		e.Alive = false
		e.Linger = parameter.EliteLinger
	}
	return true
}

// shielded reports whether a projectile at x meets the sentinel's frontal shield
func (e *Elite) shielded(x float64) bool {
	return e.Kind == Sentinel && x < e.Pos.X+parameter.SentinelShieldFraction*e.Size.X
}

// steer advances vertical motion; playerY is only read by chase
func (e *Elite) steer(dt time.Duration, playerY float64) float64 {
	b := e.Behavior
	t := e.Age.Seconds()*b.Frequency + b.Phase
	switch b.Pattern {
	case PatternSine, PatternHover:
		return b.Baseline + b.Amplitude*math.Sin(2*math.Pi*t)
	case PatternZigzag:
		// Triangle wave in [-1, 1]
		frac := t - math.Floor(t)
		return b.Baseline + b.Amplitude*(4*math.Abs(frac-0.5)-1)
	case PatternChase:
		cy := e.Center().Y
		return cy + (playerY-cy)*math.Min(1, parameter.EliteChaseRate*dt.Seconds())
	}
	return e.Center().Y
}
