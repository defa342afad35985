package combat

import (
	"math"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/dodger/core"
	"github.com/lixenwraith/dodger/event"
	"github.com/lixenwraith/dodger/parameter"
	"github.com/lixenwraith/dodger/status"
)

// Bounds is the play field size
type Bounds struct {
	Width, Height float64
}

// System owns projectiles and elites for one run
type System struct {
	bounds Bounds
	ids    *core.IDGen
	rng    *rand.Rand
	pub    event.Publisher

	// Skin echo multiplier for trail length
	echo float64

	projectiles []*Projectile
	elites      []*Elite

	fireTimer  time.Duration
	spawnTimer time.Duration
	killed     int

	// Telemetry
	statElites      *atomic.Int64
	statProjectiles *atomic.Int64
	statKills       *atomic.Int64
	statBlocked     *atomic.Int64
}

// NewSystem creates a combat system; ids and reg may be nil
func NewSystem(bounds Bounds, ids *core.IDGen, rng *rand.Rand, pub event.Publisher, reg *status.Registry) *System {
	if ids == nil {
		ids = &core.IDGen{}
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	s := &System{
		bounds:          bounds,
		ids:             ids,
		rng:             rng,
		pub:             pub,
		echo:            1,
		statElites:      reg.Ints.Get("combat.elites"),
		statProjectiles: reg.Ints.Get("combat.projectiles"),
		statKills:       reg.Ints.Get("combat.kills"),
		statBlocked:     reg.Ints.Get("combat.blocked"),
	}
	return s
}

// SetEcho sets the skin trail multiplier
func (s *System) SetEcho(echo float64) {
	if echo <= 0 {
		echo = 1
	}
	s.echo = echo
}

// SetRNG swaps the random source, used for seeded runs
func (s *System) SetRNG(rng *rand.Rand) {
	if rng != nil {
		s.rng = rng
	}
}

// Reset clears all combat state for a new run
func (s *System) Reset() {
	s.projectiles = s.projectiles[:0]
	s.elites = s.elites[:0]
	s.fireTimer, s.spawnTimer = 0, 0
	s.killed = 0
	s.statElites.Store(0)
	s.statProjectiles.Store(0)
	s.statKills.Store(0)
	s.statBlocked.Store(0)
}

// Projectiles returns live projectiles
func (s *System) Projectiles() []*Projectile { return s.projectiles }

// Elites returns alive and lingering elites
func (s *System) Elites() []*Elite { return s.elites }

// Killed returns elites killed this run
func (s *System) Killed() int { return s.killed }

// AliveElites counts elites that can still collide
func (s *System) AliveElites() int {
	n := 0
	for _, e := range s.elites {
		if e.Alive {
			n++
		}
	}
	return n
}

// SpawnInterval is the current elite cadence, shrinking with kills down to the floor
func (s *System) SpawnInterval() time.Duration {
	d := parameter.EliteSpawnIntervalBase - time.Duration(s.killed)*parameter.EliteSpawnIntervalStep
	return max(d, parameter.EliteSpawnIntervalMin)
}

// Fire spawns a normal projectile centered at origin
func (s *System) Fire(origin core.Vec2) *Projectile {
	p := s.newProjectile(origin, parameter.ProjectileSpeed, parameter.ProjectileRadius, parameter.ProjectileDamage, false)
	s.projectiles = append(s.projectiles, p)
	return p
}

// ChargePower maps a charge duration to [0,1]
func ChargePower(charge time.Duration) float64 {
	return core.Clamp(float64(charge)/float64(parameter.ChargeMax), 0, 1)
}

// FireCharged spawns a shot scaled by charge power
func (s *System) FireCharged(origin core.Vec2, charge time.Duration) *Projectile {
	power := ChargePower(charge)
	damage := 1 + int(math.Floor(power*3))
	piercing := power > parameter.ChargePiercingThreshold

	p := s.newProjectile(origin,
		parameter.ProjectileSpeed*(1+parameter.ChargeSpeedGain*power),
		parameter.ProjectileRadius*(1+parameter.ChargeRadiusGain*power),
		damage, piercing)
	p.Charged = true
	s.projectiles = append(s.projectiles, p)

	event.Emit(s.pub, event.EventChargedShot, &event.ChargePayload{Power: power, Damage: damage, Piercing: piercing})
	return p
}

func (s *System) newProjectile(origin core.Vec2, speed, radius float64, damage int, piercing bool) *Projectile {
	trailCap := int(math.Round(parameter.ProjectileTrailLength * s.echo))
	return &Projectile{
		ID:       s.ids.Next(),
		Pos:      origin,
		Vel:      core.Vec2{X: speed},
		Radius:   radius,
		Damage:   damage,
		Piercing: piercing,
		Lifetime: parameter.ProjectileLifetime,
		Alive:    true,
		Trail:    make([]core.Vec2, 0, trailCap),
		trailCap: trailCap,
	}
}

// SpawnElite places an elite with its top-left at pos; a swarm returns the whole cluster
func (s *System) SpawnElite(kind Kind, pos core.Vec2) []*Elite {
	if kind < 0 || kind >= kindCount {
		return nil
	}
	count := 1
	if kind == Swarm {
		count = parameter.SwarmMinCluster + s.rng.IntN(parameter.SwarmMaxCluster-parameter.SwarmMinCluster+1)
	}
	return s.spawnCluster(kind, pos, count)
}

func (s *System) spawnCluster(kind Kind, pos core.Vec2, count int) []*Elite {
	out := make([]*Elite, 0, count)
	for i := 0; i < count; i++ {
		e := newElite(s.ids.Next(), kind, core.Vec2{X: pos.X + float64(i)*parameter.SwarmSpacing, Y: pos.Y})
		if kind == Swarm {
			e.Behavior.Phase = float64(i) * parameter.SwarmPhaseStep
			e.holdOffset = float64(i) * parameter.SwarmSpacing
		}
		s.elites = append(s.elites, e)
		out = append(out, e)

		c := e.Center()
		event.Emit(s.pub, event.EventEliteSpawned, &event.ElitePayload{
			ID: e.ID, Kind: kind.String(), X: c.X, Y: c.Y, HP: e.HP,
		})
	}
	s.statElites.Store(int64(len(s.elites)))
	return out
}

// randomKind is the weighted variant pick; swarm false leaves swarms out of the draw
func (s *System) randomKind(swarm bool) Kind {
	total := 0
	for k, v := range variants {
		if swarm || Kind(k) != Swarm {
			total += v.weight
		}
	}
	roll := s.rng.IntN(total)
	for k, v := range variants {
		if !swarm && Kind(k) == Swarm {
			continue
		}
		if roll < v.weight {
			return Kind(k)
		}
		roll -= v.weight
	}
	return Sentinel
}

// Update runs auto-fire, elite spawning, and motion; player is the player center
func (s *System) Update(dt time.Duration, player core.Vec2) {
	if dt <= 0 {
		return
	}

	s.fireTimer += dt
	if s.fireTimer >= parameter.AutoFireInterval {
		s.fireTimer = 0
		s.Fire(player)
	}

	s.spawnTimer += dt
	if s.spawnTimer >= s.SpawnInterval() {
		s.spawnTimer = 0
		s.spawnRandom()
	}

	s.updateProjectiles(dt)
	s.updateElites(dt, player.Y)

	s.statElites.Store(int64(len(s.elites)))
	s.statProjectiles.Store(int64(len(s.projectiles)))
}

func (s *System) spawnRandom() {
	room := parameter.EliteMaxAlive - s.AliveElites()
	if room <= 0 {
		return
	}
	// A swarm never spawns below its minimum cluster
	kind := s.randomKind(room >= parameter.SwarmMinCluster)
	size := variants[kind].size
	margin := s.bounds.Height * parameter.EliteMarginFraction
	span := s.bounds.Height - 2*margin - size
	y := margin
	if span > 0 {
		y += s.rng.Float64() * span
	}
	pos := core.Vec2{X: s.bounds.Width, Y: y}

	count := 1
	if kind == Swarm {
		count = parameter.SwarmMinCluster + s.rng.IntN(parameter.SwarmMaxCluster-parameter.SwarmMinCluster+1)
	}
	s.spawnCluster(kind, pos, min(count, room))
}

func (s *System) updateProjectiles(dt time.Duration) {
	kept := s.projectiles[:0]
	for _, p := range s.projectiles {
		if !p.Alive {
			continue
		}
		p.advance(dt)
		if p.Lifetime <= 0 || s.outOfBounds(p.Pos, p.Radius) {
			continue
		}
		kept = append(kept, p)
	}
	clear(s.projectiles[len(kept):])
	s.projectiles = kept
}

func (s *System) outOfBounds(pos core.Vec2, r float64) bool {
	return pos.X+r < 0 || pos.X-r > s.bounds.Width || pos.Y+r < 0 || pos.Y-r > s.bounds.Height
}

func (s *System) updateElites(dt time.Duration, playerY float64) {
	holdX := s.bounds.Width * parameter.EliteHoldFraction
	margin := s.bounds.Height * parameter.EliteMarginFraction

	kept := s.elites[:0]
	for _, e := range s.elites {
		if !e.Alive {
			e.Linger -= dt
			if e.Linger <= 0 {
				continue
			}
			kept = append(kept, e)
			continue
		}

		e.Age += dt
		e.Flash = max(0, e.Flash-dt)
		if e.TeleportCooldown > 0 {
			e.TeleportCooldown = max(0, e.TeleportCooldown-dt)
		}
		if e.Kind == Sentinel {
			e.ShieldAngle = math.Mod(e.ShieldAngle+parameter.SentinelShieldSpin*dt.Seconds(), 2*math.Pi)
		}

		if hx := holdX + e.holdOffset; e.Pos.X > hx {
			e.Pos.X = math.Max(hx, e.Pos.X-parameter.EliteEntrySpeed*dt.Seconds())
		}

		cy := e.steer(dt, playerY)
		cy = core.Clamp(cy, margin+e.Size.Y/2, s.bounds.Height-margin-e.Size.Y/2)
		e.Pos.Y = cy - e.Size.Y/2

		kept = append(kept, e)
	}
	clear(s.elites[len(kept):])
	s.elites = kept
}

// ResolveProjectileHits applies projectile-elite collisions and returns elites killed
func (s *System) ResolveProjectileHits() []*Elite {
	var kills []*Elite
	for _, p := range s.projectiles {
		if !p.Alive || p.Deflected {
			continue
		}
		for _, e := range s.elites {
			if !e.Alive || p.HasHit(e.ID) {
				continue
			}
			if !core.CirclesOverlap(p.Pos, p.Radius, e.Center(), e.Size.X/2) {
				continue
			}

			if e.shielded(p.Pos.X) {
				s.deflect(p, e)
				break
			}

			if e.Kind == Phantom && e.TeleportCooldown <= 0 {
				s.teleport(e)
			}

			p.markHit(e.ID)
			if s.damage(e, p.Damage) {
				kills = append(kills, e)
			}

			if !p.Piercing {
				p.Alive = false
				break
			}
		}
	}
	return kills
}

// deflect bounces a shot off the sentinel shield without damage
func (s *System) deflect(p *Projectile, e *Elite) {
	p.markHit(e.ID)
	p.Deflected = true
	p.Vel.X = -p.Vel.X
	p.Vel.Y = (s.rng.Float64()*2 - 1) * parameter.ProjectileDeflectSpread
	s.statBlocked.Add(1)

	c := e.Center()
	event.Emit(s.pub, event.EventEliteBlocked, &event.ElitePayload{
		ID: e.ID, Kind: e.Kind.String(), X: c.X, Y: c.Y, HP: e.HP,
	})
}

// teleport moves a phantom into the right portion of the field and restarts its cooldown
func (s *System) teleport(e *Elite) {
	minX := s.bounds.Width * parameter.PhantomFieldFraction
	maxX := s.bounds.Width*0.9 - e.Size.X
	if maxX < minX {
		maxX = minX
	}
	margin := s.bounds.Height * parameter.EliteMarginFraction
	maxY := s.bounds.Height - margin - e.Size.Y

	old := e.Pos
	for range 4 {
		e.Pos = core.Vec2{
			X: minX + s.rng.Float64()*(maxX-minX),
			Y: margin + s.rng.Float64()*math.Max(0, maxY-margin),
		}
		if e.Pos != old {
			break
		}
	}
	e.Behavior.Baseline = e.Center().Y
	e.Age = 0
	e.TeleportCooldown = parameter.PhantomTeleportCooldown

	c := e.Center()
	event.Emit(s.pub, event.EventEliteTeleported, &event.ElitePayload{
		ID: e.ID, Kind: e.Kind.String(), X: c.X, Y: c.Y, HP: e.HP,
	})
}

// damage applies n to e and publishes rewards at the death transition, returns true on kill
func (s *System) damage(e *Elite, n int) bool {
	if !e.ApplyDamage(n) {
		return false
	}
	c := e.Center()
	event.Emit(s.pub, event.EventEliteHit, &event.ElitePayload{
		ID: e.ID, Kind: e.Kind.String(), X: c.X, Y: c.Y, HP: e.HP, Damage: n,
	})
	if e.Alive {
		return false
	}

	s.killed++
	s.statKills.Store(int64(s.killed))

	r := e.Reward
	event.Emit(s.pub, event.EventScore, &event.ScorePayload{Amount: r.Score, X: c.X, Y: c.Y})
	event.Emit(s.pub, event.EventTokens, &event.AmountPayload{Amount: r.Tokens})
	event.Emit(s.pub, event.EventEnergy, &event.AmountPayload{Amount: r.Energy})
	event.Emit(s.pub, event.EventShake, &event.ShakePayload{Duration: r.Shake})
	event.Emit(s.pub, event.EventEliteKilled, &event.ElitePayload{
		ID: e.ID, Kind: e.Kind.String(), X: c.X, Y: c.Y,
	})
	return true
}

// Damage applies damage from outside projectile resolution, same death semantics
func (s *System) Damage(e *Elite, n int) bool {
	return s.damage(e, n)
}

// CheckPlayerCollision returns the first alive elite overlapping box
func (s *System) CheckPlayerCollision(box core.Rect) (*Elite, bool) {
	for _, e := range s.elites {
		if e.Alive && e.Rect().Overlaps(box) {
			return e, true
		}
	}
	return nil, false
}
