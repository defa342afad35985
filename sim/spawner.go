package sim

import (
	"math"
	"time"

	"github.com/lixenwraith/dodger/core"
	"github.com/lixenwraith/dodger/parameter"
	"github.com/lixenwraith/dodger/powerup"
)

// advanceObstacles moves obstacles and culls those out of bounds on either side
// A negative speed modifier runs them backward
func (l *Loop) advanceObstacles(dt time.Duration) {
	vx := -l.diff.State().Speed * l.powerups.SpeedModifier()
	sec := dt.Seconds()

	kept := l.obstacles[:0]
	for _, o := range l.obstacles {
		o.Vel.X = vx
		o.Pos.X += vx * sec
		// Reaction time only counts while the obstacle is visible
		if o.Pos.X < parameter.FieldWidth {
			o.Age += dt
		}
		if o.Rect().Right() < 0 || o.Pos.X > parameter.FieldWidth+parameter.ObstacleCullMargin {
			continue
		}
		kept = append(kept, o)
	}
	clear(l.obstacles[len(kept):])
	l.obstacles = kept
}

// spawnObstacles lays down one difficulty pattern per spawn interval
func (l *Loop) spawnObstacles(dt time.Duration) {
	st := l.diff.State()
	l.obstacleTimer += dt
	if l.obstacleTimer < st.SpawnInterval {
		return
	}
	l.obstacleTimer = 0

	p := l.diff.ObstaclePattern()
	growth := 1 + (st.Complexity-1)*parameter.ObstacleComplexityGrowth
	for _, slot := range p.Slots {
		size := parameter.ObstacleSize * slot.Scale * growth
		cy := core.Clamp(slot.Lane*parameter.FieldHeight, size/2, parameter.FieldHeight-size/2)
		l.obstacles = append(l.obstacles, &Obstacle{
			ID:      l.ids.Next(),
			Pos:     core.Vec2{X: parameter.FieldWidth + slot.Offset, Y: cy - size/2},
			Size:    core.Vec2{X: size, Y: size},
			Pattern: p.Name,
		})
	}
}

// advanceCollectibles drifts pickups left, the magnet pulls those in range toward the player
func (l *Loop) advanceCollectibles(dt time.Duration) {
	speed := l.diff.State().Speed * parameter.CollectibleSpeedFactor
	radius := l.powerups.MagnetRadius()
	sec := dt.Seconds()

	kept := l.collectibles[:0]
	for _, c := range l.collectibles {
		c.Vel = core.Vec2{X: -speed}
		if radius > 0 {
			if d := l.player.Pos.Sub(c.Pos); d.Len() <= radius {
				c.Vel = d.Normalize().Scale(parameter.PowerUpMagnetPull)
			}
		}
		c.Pos = c.Pos.Add(c.Vel.Scale(sec))
		if c.Pos.X+c.Size < 0 {
			continue
		}
		kept = append(kept, c)
	}
	clear(l.collectibles[len(kept):])
	l.collectibles = kept
}

// spawnCollectibles emits one pickup per interval at a random lane
func (l *Loop) spawnCollectibles(dt time.Duration) {
	l.collectibleTimer += dt
	if l.collectibleTimer < parameter.CollectibleInterval {
		return
	}
	l.collectibleTimer = 0

	c := &Collectible{
		ID:   l.ids.Next(),
		Kind: Coin,
		Size: parameter.CollectibleSize,
	}
	switch roll := l.rng.Float64(); {
	case roll < parameter.CollectiblePowerUpOdds:
		c.Kind = Capsule
		c.PowerUp = powerup.RandomType(l.rng)
	case roll < parameter.CollectiblePowerUpOdds+parameter.CollectibleEnergyOdds:
		c.Kind = EnergyOrb
	}

	margin := c.Size
	y := margin + l.rng.Float64()*math.Max(0, parameter.FieldHeight-2*margin)
	c.Pos = core.Vec2{X: parameter.FieldWidth + c.Size, Y: y}
	l.collectibles = append(l.collectibles, c)
}
