package sim

import (
	"time"

	"github.com/lixenwraith/dodger/core"
	"github.com/lixenwraith/dodger/powerup"
)

// EntityKind tags every entity variant
type EntityKind int

const (
	KindPlayer EntityKind = iota
	KindObstacle
	KindCollectible
	KindProjectile
	KindElite
)

func (k EntityKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindObstacle:
		return "obstacle"
	case KindCollectible:
		return "collectible"
	case KindProjectile:
		return "projectile"
	case KindElite:
		return "elite"
	}
	return "unknown"
}

// Entity is the flattened read-only view handed to render
// Pos is the center for every kind
type Entity struct {
	ID      uint64
	Kind    EntityKind
	Pos     core.Vec2
	Vel     core.Vec2
	Size    core.Vec2
	Alive   bool
	Variant string  // Elite kind, collectible kind, or power-up name
	Fade    float64 // Linger progress for dying elites, 0 otherwise
	Trail   []core.Vec2
}

// Player is the dodging avatar, Pos is the center
type Player struct {
	Pos   core.Vec2
	Size  core.Vec2
	Grace time.Duration
}

// Obstacle is a pattern-spawned block moving toward the player
type Obstacle struct {
	ID      uint64
	Pos     core.Vec2 // Top-left
	Size    core.Vec2
	Vel     core.Vec2
	Age     time.Duration
	Pattern string

	// Touched obstacles made contact and can no longer count as dodged
	Touched bool
	Passed  bool
}

// Rect returns the obstacle box
func (o *Obstacle) Rect() core.Rect {
	return core.Rect{Pos: o.Pos, Size: o.Size}
}

// CollectibleKind is the pickup variant
type CollectibleKind int

const (
	Coin CollectibleKind = iota
	EnergyOrb
	Capsule
)

func (k CollectibleKind) String() string {
	switch k {
	case Coin:
		return "coin"
	case EnergyOrb:
		return "energy"
	case Capsule:
		return "powerup"
	}
	return "unknown"
}

// Collectible is a pickup, Pos is the center
type Collectible struct {
	ID      uint64
	Kind    CollectibleKind
	PowerUp powerup.Type // Capsule only
	Pos     core.Vec2
	Vel     core.Vec2
	Size    float64
}
