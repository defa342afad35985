package sim

import (
	"time"

	"github.com/lixenwraith/dodger/core"
	"github.com/lixenwraith/dodger/difficulty"
	"github.com/lixenwraith/dodger/powerup"
	"github.com/lixenwraith/dodger/skin"
)

// Snapshot is an immutable copy of the run for render and tests
type Snapshot struct {
	State      State
	Mode       Mode
	RunID      string
	Frame      int64
	Elapsed    time.Duration
	Remaining  time.Duration // Timed modes only
	Score      int64
	Lives      int
	Combo      int
	MaxCombo   int
	Tokens     int
	Energy     int
	Kills      int
	Intensity  float64
	Difficulty difficulty.State
	PowerUps   []powerup.Instance
	Skin       skin.Skin
	Grace      time.Duration // Post-hit invulnerability left

	Player   Entity
	entities []Entity
}

// Entities returns every entity, player first
func (s *Snapshot) Entities() []Entity {
	return s.entities
}

// Snapshot copies the current run state
func (l *Loop) Snapshot() *Snapshot {
	s := &Snapshot{
		State:      l.state,
		Mode:       l.mode,
		RunID:      l.runID,
		Frame:      l.frame,
		Elapsed:    l.elapsed,
		Score:      l.Score(),
		Lives:      l.lives,
		Combo:      l.combo,
		MaxCombo:   l.maxCombo,
		Tokens:     l.tokens,
		Energy:     l.energy,
		Kills:      l.kills,
		Intensity:  max(l.intensity, 0),
		Difficulty: l.diff.State(),
		PowerUps:   l.powerups.Active(),
		Skin:       l.skin,
		Grace:      l.player.Grace,
	}
	if l.mode.timed() {
		s.Remaining = max(0, l.mode.Duration-l.elapsed)
	}

	box := l.playerBox()
	s.Player = Entity{ID: 0, Kind: KindPlayer, Pos: l.player.Pos, Size: box.Size, Alive: true}

	projectiles := l.combat.Projectiles()
	elites := l.combat.Elites()
	s.entities = make([]Entity, 0, 1+len(l.obstacles)+len(l.collectibles)+len(projectiles)+len(elites))
	s.entities = append(s.entities, s.Player)

	for _, o := range l.obstacles {
		s.entities = append(s.entities, Entity{
			ID: o.ID, Kind: KindObstacle, Pos: o.Rect().Center(), Vel: o.Vel, Size: o.Size,
			Alive: true, Variant: o.Pattern,
		})
	}
	for _, c := range l.collectibles {
		variant := c.Kind.String()
		if c.Kind == Capsule {
			variant = c.PowerUp.String()
		}
		s.entities = append(s.entities, Entity{
			ID: c.ID, Kind: KindCollectible, Pos: c.Pos, Vel: c.Vel,
			Size: core.Vec2{X: c.Size, Y: c.Size}, Alive: true, Variant: variant,
		})
	}
	for _, p := range projectiles {
		d := 2 * p.Radius
		trail := make([]core.Vec2, len(p.Trail))
		copy(trail, p.Trail)
		s.entities = append(s.entities, Entity{
			ID: p.ID, Kind: KindProjectile, Pos: p.Pos, Vel: p.Vel,
			Size: core.Vec2{X: d, Y: d}, Alive: p.Alive, Trail: trail,
		})
	}
	for _, e := range elites {
		s.entities = append(s.entities, Entity{
			ID: e.ID, Kind: KindElite, Pos: e.Center(), Size: e.Size,
			Alive: e.Alive, Variant: e.Kind.String(), Fade: e.LingerProgress(),
		})
	}
	return s
}
