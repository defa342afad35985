package sim

import (
	"math"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/dodger/combat"
	"github.com/lixenwraith/dodger/core"
	"github.com/lixenwraith/dodger/difficulty"
	"github.com/lixenwraith/dodger/event"
	"github.com/lixenwraith/dodger/parameter"
	"github.com/lixenwraith/dodger/powerup"
	"github.com/lixenwraith/dodger/skin"
	"github.com/lixenwraith/dodger/status"
)

// Input is the per-tick player intent
type Input struct {
	MoveY     float64 // Axis in [-1, 1]
	TargetY   float64 // Absolute target center y when HasTarget
	HasTarget bool
	Charge    time.Duration // Released charged shot, zero for none
}

// Options configures a Loop
type Options struct {
	Mode       Mode
	Skin       skin.Skin
	Difficulty difficulty.Config
	Router     *event.Router    // Nil discards events after each tick
	Registry   *status.Registry // Nil creates a private registry
}

// Loop owns one run: entities, subsystems, score and the event queue
// All mutation happens inside Step and the lifecycle calls, from a single goroutine
type Loop struct {
	mode   Mode
	skin   skin.Skin
	router *event.Router
	queue  *event.EventQueue
	rng    *rand.Rand
	ids    core.IDGen

	diff     *difficulty.Controller
	powerups *powerup.Manager
	combat   *combat.System

	state State
	runID string
	frame int64

	player       Player
	obstacles    []*Obstacle
	collectibles []*Collectible

	obstacleTimer    time.Duration
	collectibleTimer time.Duration

	// Run tallies
	elapsed  time.Duration
	score    float64
	lives    int
	combo    int
	maxCombo int
	dodges   int
	fails    int
	kills    int
	collects int
	tokens   int
	energy   int

	intensity float64 // Last published quantized value, -1 before the first publish

	outcomes []outcome

	// Telemetry
	statState     *status.AtomicString
	statScore     *atomic.Int64
	statCombo     *atomic.Int64
	statLives     *atomic.Int64
	statIntensity *status.AtomicFloat
	statEntities  *atomic.Int64
}

// outcome is a dodge or fail awaiting the difficulty controller
type outcome struct {
	dodge    bool
	reaction time.Duration
}

// NewLoop creates an idle run
func NewLoop(opts Options) *Loop {
	reg := opts.Registry
	if reg == nil {
		reg = status.NewRegistry()
	}
	if opts.Difficulty == (difficulty.Config{}) {
		opts.Difficulty = difficulty.DefaultConfig()
	}
	if opts.Skin.ID == "" {
		opts.Skin = skin.Resolve(skin.DefaultID)
	}

	l := &Loop{
		mode:          opts.Mode,
		skin:          opts.Skin,
		router:        opts.Router,
		queue:         event.NewEventQueue(),
		intensity:     -1,
		statState:     reg.Strings.Get("sim.state"),
		statScore:     reg.Ints.Get("sim.score"),
		statCombo:     reg.Ints.Get("sim.combo"),
		statLives:     reg.Ints.Get("sim.lives"),
		statIntensity: reg.Floats.Get("sim.intensity"),
		statEntities:  reg.Ints.Get("sim.entities"),
	}
	l.rng = l.newRNG()

	mods := opts.Skin.Mods
	l.diff = difficulty.NewController(opts.Difficulty, l.rng, reg)
	l.powerups = powerup.NewManager(powerup.Modifiers{
		Duration: mods.PowerUpDuration,
		Shield:   mods.Shield,
		Vision:   mods.Vision,
	}, l.queue, reg)
	l.combat = combat.NewSystem(combat.Bounds{Width: parameter.FieldWidth, Height: parameter.FieldHeight}, &l.ids, l.rng, l.queue, reg)
	l.combat.SetEcho(mods.Echo)

	l.setState(StateIdle)
	return l
}

func (l *Loop) newRNG() *rand.Rand {
	if l.mode.Seeded {
		return rand.New(rand.NewPCG(l.mode.Seed, l.mode.Seed^0x9e3779b97f4a7c15))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func (l *Loop) setState(s State) {
	l.state = s
	l.statState.Store(s.String())
}

// State returns the lifecycle state
func (l *Loop) State() State { return l.state }

// RunID returns the run identifier, empty before Start
func (l *Loop) RunID() string { return l.runID }

// Mode returns the run descriptor
func (l *Loop) Mode() Mode { return l.mode }

// Difficulty exposes the controller read-only
func (l *Loop) Difficulty() *difficulty.Controller { return l.diff }

// PowerUps exposes the power-up manager
func (l *Loop) PowerUps() *powerup.Manager { return l.powerups }

// Combat exposes the combat system
func (l *Loop) Combat() *combat.System { return l.combat }

// Start begins the run from Idle
func (l *Loop) Start() error {
	if l.state != StateIdle {
		return transitionError(l.state, StateRunning)
	}

	l.runID = uuid.NewString()
	l.reset()
	l.setState(StateRunning)

	event.Emit(l.queue, event.EventGameStart, &event.GameStartPayload{RunID: l.runID, Mode: l.mode.Name()})
	l.flush()
	return nil
}

func (l *Loop) reset() {
	l.ids.Reset()
	l.rng = l.newRNG()
	l.diff.SetRNG(l.rng)
	l.combat.SetRNG(l.rng)

	base := l.mode.BaseDifficulty
	if base == 0 {
		base = l.diff.Config().Initial
	}
	l.diff.Reset(base)
	l.powerups.Reset()
	l.combat.Reset()

	l.player = Player{
		Pos:  core.Vec2{X: parameter.PlayerX, Y: parameter.FieldHeight / 2},
		Size: core.Vec2{X: parameter.PlayerSize, Y: parameter.PlayerSize},
	}
	l.obstacles = l.obstacles[:0]
	l.collectibles = l.collectibles[:0]
	l.obstacleTimer = l.diff.State().SpawnInterval / 2
	l.collectibleTimer = 0

	l.elapsed, l.score = 0, 0
	l.lives = l.mode.Lives
	l.combo, l.maxCombo = 0, 0
	l.dodges, l.fails, l.kills, l.collects = 0, 0, 0, 0
	l.tokens, l.energy = 0, 0
	l.intensity = -1
	l.outcomes = l.outcomes[:0]
	l.frame = 0
}

// Pause freezes the run; timers and intensity stop advancing
func (l *Loop) Pause() error {
	if l.state != StateRunning {
		return transitionError(l.state, StatePaused)
	}
	l.setState(StatePaused)
	event.Emit(l.queue, event.EventGamePaused, nil)
	l.flush()
	return nil
}

// Resume continues a paused run
func (l *Loop) Resume() error {
	if l.state != StatePaused {
		return transitionError(l.state, StateRunning)
	}
	l.setState(StateRunning)
	event.Emit(l.queue, event.EventGameResumed, nil)
	l.flush()
	return nil
}

// End abandons a running or paused run and publishes its summary
func (l *Loop) End() error {
	if !canTransition(l.state, StateGameOver) {
		return transitionError(l.state, StateGameOver)
	}
	l.gameOver()
	l.flush()
	return nil
}

// Step advances one tick; it only mutates entities while Running
func (l *Loop) Step(dt time.Duration, in Input) {
	if l.state != StateRunning {
		l.flush()
		return
	}
	if dt <= 0 {
		return
	}
	dt = min(dt, parameter.MaxFrameDelta)

	l.frame++
	l.queue.SetFrame(l.frame)
	l.elapsed += dt

	// 1. input
	l.applyInput(dt, in)

	// 2. difficulty timers
	l.diff.ProgressTime(dt)

	// 3. power-up timers
	l.powerups.Update(dt)

	// 4. obstacles and collectibles
	l.advanceObstacles(dt)
	l.spawnObstacles(dt)
	l.advanceCollectibles(dt)
	l.spawnCollectibles(dt)

	// 5. projectiles and elites
	if in.Charge > 0 {
		l.combat.FireCharged(l.player.Pos, in.Charge)
	}
	l.combat.Update(dt, l.player.Pos)

	// 6. collisions, projectile-elite before player-elite
	box := l.playerBox()
	l.resolveObstacles(box)
	l.resolveCollectibles()
	l.resolveProjectiles()
	if e, hit := l.combat.CheckPlayerCollision(box); hit {
		l.hitPlayer(e.Kind.String())
	}

	// 7. score/combo are applied as outcomes resolve, publish tallies
	l.statScore.Store(l.Score())
	l.statCombo.Store(int64(l.combo))
	l.statLives.Store(int64(l.lives))

	// 8. terminal conditions
	if l.terminal() {
		l.gameOver()
	}

	// 9. telemetry
	l.feedDifficulty()
	l.publishIntensity()
	l.statEntities.Store(int64(1 + len(l.obstacles) + len(l.collectibles) +
		len(l.combat.Projectiles()) + len(l.combat.Elites())))

	l.flush()
}

// flush drains the queue through the router once
func (l *Loop) flush() {
	if l.router == nil {
		l.queue.Consume()
		return
	}
	l.router.DispatchAll(l.queue)
}

func (l *Loop) applyInput(dt time.Duration, in Input) {
	maxStep := parameter.PlayerSpeed * l.skin.Mods.Speed * dt.Seconds()
	y := l.player.Pos.Y
	if in.HasTarget {
		y += core.Clamp(in.TargetY-y, -maxStep, maxStep)
	} else {
		y += core.Clamp(in.MoveY, -1, 1) * maxStep
	}
	half := l.player.Size.Y / 2
	l.player.Pos.Y = core.Clamp(y, half, parameter.FieldHeight-half)

	if l.player.Grace > 0 {
		l.player.Grace = max(0, l.player.Grace-dt)
	}
}

// playerBox is the collision box after skin and power-up scaling
func (l *Loop) playerBox() core.Rect {
	scale := l.skin.Mods.Hitbox * l.powerups.HitboxScale()
	return core.RectAround(l.player.Pos, l.player.Size.Scale(scale))
}

func (l *Loop) resolveObstacles(box core.Rect) {
	for _, o := range l.obstacles {
		if o.Passed {
			continue
		}
		if !o.Touched && o.Rect().Overlaps(box) {
			o.Touched = true
			l.hitPlayer("obstacle")
			continue
		}
		// Right edge cleared the player's left edge
		if o.Rect().Right() < box.Left() {
			o.Passed = true
			if !o.Touched {
				l.dodge(o)
			}
		}
	}
}

func (l *Loop) dodge(o *Obstacle) {
	l.combo++
	l.maxCombo = max(l.maxCombo, l.combo)
	l.dodges++

	bonus := 1 + float64(l.combo)*parameter.ComboBonusStep*l.skin.Mods.Combo
	points := parameter.DodgeScore * bonus * l.powerups.ScoreMultiplier() * l.skin.Mods.Score
	l.score += points

	c := o.Rect().Center()
	event.Emit(l.queue, event.EventDodge, &event.DodgePayload{
		Reaction: o.Age,
		Combo:    l.combo,
		Points:   int64(math.Round(points)),
		X:        c.X,
		Y:        c.Y,
	})
	if l.combo%parameter.ComboMilestone == 0 {
		event.Emit(l.queue, event.EventComboChanged, &event.ComboPayload{Combo: l.combo})
	}
	l.outcomes = append(l.outcomes, outcome{dodge: true, reaction: o.Age})
}

// hitPlayer applies contact; invincibility and grace ignore it, a shield absorbs it
func (l *Loop) hitPlayer(source string) {
	if l.powerups.IsInvincible() || l.player.Grace > 0 {
		return
	}
	l.player.Grace = parameter.PlayerGrace
	if l.powerups.AbsorbHit() {
		return
	}

	lost := l.combo
	l.combo = 0
	l.fails++
	livesLeft := -1
	if l.mode.hasLives() {
		l.lives--
		livesLeft = l.lives
	}

	event.Emit(l.queue, event.EventFail, &event.FailPayload{LivesLeft: livesLeft, LostCombo: lost, Source: source})
	event.Emit(l.queue, event.EventShake, &event.ShakePayload{Duration: parameter.FailShake})
	if lost > 0 {
		event.Emit(l.queue, event.EventComboChanged, &event.ComboPayload{Combo: 0})
	}
	l.outcomes = append(l.outcomes, outcome{dodge: false})
}

func (l *Loop) resolveCollectibles() {
	reach := parameter.CollectiblePickupRadius*l.skin.Mods.Vision + l.player.Size.X/2
	kept := l.collectibles[:0]
	for _, c := range l.collectibles {
		if c.Pos.Dist(l.player.Pos) <= reach+c.Size/2 {
			l.collect(c)
			continue
		}
		kept = append(kept, c)
	}
	clear(l.collectibles[len(kept):])
	l.collectibles = kept
}

func (l *Loop) collect(c *Collectible) {
	l.collects++
	payload := &event.CollectPayload{Kind: c.Kind.String(), X: c.Pos.X, Y: c.Pos.Y}

	switch c.Kind {
	case Coin:
		points := parameter.CoinScore * l.powerups.ScoreMultiplier() * l.skin.Mods.Score
		l.score += points
		l.tokens += parameter.CoinTokens
		event.Emit(l.queue, event.EventTokens, &event.AmountPayload{Amount: parameter.CoinTokens})
		event.Emit(l.queue, event.EventScore, &event.ScorePayload{Amount: int64(math.Round(points)), X: c.Pos.X, Y: c.Pos.Y})
	case EnergyOrb:
		l.energy += parameter.EnergyOrbAmount
		event.Emit(l.queue, event.EventEnergy, &event.AmountPayload{Amount: parameter.EnergyOrbAmount})
	case Capsule:
		payload.PowerUp = c.PowerUp.String()
		l.powerups.Activate(c.PowerUp)
	}
	event.Emit(l.queue, event.EventCollect, payload)
}

func (l *Loop) resolveProjectiles() {
	for _, e := range l.combat.ResolveProjectileHits() {
		l.kills++
		l.score += float64(e.Reward.Score)
		l.tokens += e.Reward.Tokens
		l.energy += e.Reward.Energy
	}
}

func (l *Loop) terminal() bool {
	if l.mode.hasLives() && l.lives <= 0 {
		return true
	}
	if l.mode.timed() && l.elapsed >= l.mode.Duration {
		return true
	}
	return false
}

func (l *Loop) gameOver() {
	l.setState(StateGameOver)
	event.Emit(l.queue, event.EventGameOver, l.Summary())
}

// Summary returns the run summary as published at game over
func (l *Loop) Summary() *event.GameOverPayload {
	return &event.GameOverPayload{
		RunID:    l.runID,
		Mode:     l.mode.Name(),
		Score:    l.Score(),
		Fails:    l.fails,
		Dodges:   l.dodges,
		Kills:    l.kills,
		Collects: l.collects,
		Duration: l.elapsed,
		MaxCombo: l.maxCombo,
		Tokens:   l.tokens,
		Energy:   l.energy,
	}
}

// feedDifficulty hands this tick's outcomes to the controller in order
func (l *Loop) feedDifficulty() {
	for _, o := range l.outcomes {
		if !o.dodge {
			l.diff.RecordFail()
			continue
		}
		m := l.diff.RecordDodge(o.reaction)
		// The summary is already published once the run ended this tick
		if !m.Triggered || l.state != StateRunning {
			continue
		}
		bonus := float64(parameter.StreakBonusScore * m.Tier)
		l.score += bonus
		event.Emit(l.queue, event.EventStreakMilestone, &event.StreakPayload{Streak: m.Streak, Tier: m.Tier})
		event.Emit(l.queue, event.EventScore, &event.ScorePayload{Amount: int64(bonus), X: l.player.Pos.X, Y: l.player.Pos.Y})
		l.spawnBoss()
	}
	l.outcomes = l.outcomes[:0]
}

// spawnBoss brings in a titan for a streak milestone when there is room
func (l *Loop) spawnBoss() {
	if l.combat.AliveElites() >= parameter.EliteMaxAlive {
		return
	}
	y := parameter.FieldHeight/2 - parameter.TitanSize/2
	l.combat.SpawnElite(combat.Titan, core.Vec2{X: parameter.FieldWidth, Y: y})
}

// Intensity blends eased difficulty with combo, quantized to IntensityStep
func Intensity(progress float64, combo int) float64 {
	c := math.Min(float64(combo)/parameter.ComboIntensity, 1)
	x := parameter.IntensityWeight*progress + (1-parameter.IntensityWeight)*c
	x = core.Clamp(x, 0, 1)
	const steps = 1 / parameter.IntensityStep
	return math.Round(x*steps) / steps
}

func (l *Loop) publishIntensity() {
	if l.state != StateRunning {
		return
	}
	x := Intensity(l.diff.State().Progress, l.combo)
	if x == l.intensity {
		return
	}
	l.intensity = x
	l.statIntensity.Set(x)
	event.Emit(l.queue, event.EventIntensityChanged, &event.IntensityPayload{Intensity: x})
}

// Score returns the rounded run score
func (l *Loop) Score() int64 {
	return int64(math.Round(l.score))
}

// Lives returns remaining lives, zero for modes without lives
func (l *Loop) Lives() int { return l.lives }

// Combo returns the current combo
func (l *Loop) Combo() int { return l.combo }

// Elapsed returns simulated run time
func (l *Loop) Elapsed() time.Duration { return l.elapsed }
