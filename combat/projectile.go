package combat

import (
	"time"

	"github.com/lixenwraith/dodger/core"
)

// Projectile is a player shot
type Projectile struct {
	ID       uint64
	Pos      core.Vec2 // Center
	Vel      core.Vec2
	Radius   float64
	Damage   int
	Piercing bool
	Charged  bool
	Lifetime time.Duration

	// Deflected shots fly off and never touch another elite
	Deflected bool
	Alive     bool

	Trail    []core.Vec2 // Oldest first
	trailCap int
	hits     map[uint64]struct{}
}

// HasHit reports whether the elite id was already struck by this projectile
func (p *Projectile) HasHit(id uint64) bool {
	_, ok := p.hits[id]
	return ok
}

func (p *Projectile) markHit(id uint64) {
	if p.hits == nil {
		p.hits = make(map[uint64]struct{}, 2)
	}
	p.hits[id] = struct{}{}
}

// advance moves the projectile and records the previous position in the trail
func (p *Projectile) advance(dt time.Duration) {
	if p.trailCap > 0 {
		if len(p.Trail) >= p.trailCap {
			copy(p.Trail, p.Trail[1:])
			p.Trail = p.Trail[:len(p.Trail)-1]
		}
		p.Trail = append(p.Trail, p.Pos)
	}
	p.Pos = p.Pos.Add(p.Vel.Scale(dt.Seconds()))
	p.Lifetime -= dt
}
