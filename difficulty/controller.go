package difficulty

import (
	"math"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/dodger/parameter"
	"github.com/lixenwraith/dodger/status"
)

// Config holds controller tuning; zero values are not meaningful, start from DefaultConfig
type Config struct {
	Floor          float64
	Ceiling        float64
	Initial        float64
	Target         float64
	Tolerance      float64
	Gain           float64
	Window         int
	CreepPerSecond float64
	StreakInterval int
}

// DefaultConfig returns the tuning from the parameter package
func DefaultConfig() Config {
	return Config{
		Floor:          parameter.DifficultyFloor,
		Ceiling:        parameter.DifficultyCeiling,
		Initial:        parameter.DifficultyInitial,
		Target:         parameter.DifficultyTargetRate,
		Tolerance:      parameter.DifficultyTolerance,
		Gain:           parameter.DifficultyGain,
		Window:         parameter.DifficultyWindowSize,
		CreepPerSecond: parameter.DifficultyCreepPerSecond,
		StreakInterval: parameter.DifficultyStreakInterval,
	}
}

// State is the derived difficulty snapshot; every field except Level is a pure function of Level
type State struct {
	Level          float64
	Progress       float64 // Eased normalized level in [0,1]
	Speed          float64
	SpawnInterval  time.Duration
	Complexity     float64
	Tier           Tier
	ReactionWindow float64
}

// Milestone reports a boss streak trigger from RecordDodge
type Milestone struct {
	Triggered bool
	Streak    int
	Tier      int // floor(streak / interval), scales the bonus reward
}

// Controller adapts difficulty level to keep the success rate near the target
// Proportional control only: no integral or derivative term
type Controller struct {
	cfg     Config
	level   float64
	state   State
	metrics Metrics
	rng     *rand.Rand

	// Telemetry
	statLevel *status.AtomicFloat
	statRate  *status.AtomicFloat
	statTier  *status.AtomicString
	statBoss  *atomic.Int64
}

// NewController creates a controller; rng drives pattern selection, reg may be nil
func NewController(cfg Config, rng *rand.Rand, reg *status.Registry) *Controller {
	if cfg.Ceiling <= cfg.Floor {
		cfg.Ceiling = cfg.Floor + 1
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if reg == nil {
		reg = status.NewRegistry()
	}

	c := &Controller{
		cfg:       cfg,
		metrics:   newMetrics(cfg.Window),
		rng:       rng,
		statLevel: reg.Floats.Get("difficulty.level"),
		statRate:  reg.Floats.Get("difficulty.success_rate"),
		statTier:  reg.Strings.Get("difficulty.tier"),
		statBoss:  reg.Ints.Get("difficulty.milestones"),
	}
	c.Reset(cfg.Initial)
	return c
}

// Reset starts a new run at the given level (clamped)
func (c *Controller) Reset(level float64) {
	c.metrics.reset()
	c.level = level
	c.statBoss.Store(0)
	c.settle()
}

// SetRNG swaps the pattern RNG, used for seeded runs
func (c *Controller) SetRNG(rng *rand.Rand) {
	if rng != nil {
		c.rng = rng
	}
}

// RecordDodge appends a success and adapts; returns a milestone every StreakInterval dodges
func (c *Controller) RecordDodge(reaction time.Duration) Milestone {
	c.metrics.push(true)
	c.metrics.addReaction(reaction)
	c.adapt()

	var m Milestone
	if n := c.cfg.StreakInterval; n > 0 && c.metrics.streak%n == 0 {
		m = Milestone{Triggered: true, Streak: c.metrics.streak, Tier: c.metrics.streak / n}
		c.statBoss.Add(1)
	}
	return m
}

// RecordFail appends a failure and adapts
func (c *Controller) RecordFail() {
	c.metrics.push(false)
	c.adapt()
}

// ProgressTime applies the monotonic creep so difficulty never stagnates
func (c *Controller) ProgressTime(dt time.Duration) {
	if dt > 0 {
		c.level += c.cfg.CreepPerSecond * dt.Seconds()
	}
	c.settle()
}

// adapt moves level proportionally to the rate error outside the tolerance band
func (c *Controller) adapt() {
	rate, ok := c.metrics.SuccessRate()
	if !ok {
		c.settle()
		return
	}
	diff := rate - c.cfg.Target
	if math.Abs(diff) > c.cfg.Tolerance {
		c.level += c.cfg.Gain * diff
	}
	c.settle()
}

// settle clamps level (healing NaN/Inf) and recomputes derived state
func (c *Controller) settle() {
	if math.IsNaN(c.level) || math.IsInf(c.level, 0) {
		c.level = c.cfg.Initial
	}
	c.level = clamp(c.level, c.cfg.Floor, c.cfg.Ceiling)
	c.state = Derive(c.level, c.cfg)

	c.statLevel.Set(c.level)
	rate, ok := c.metrics.SuccessRate()
	if !ok {
		rate = c.cfg.Target
	}
	c.statRate.Set(rate)
	c.statTier.Store(c.state.Tier.String())
}

// State returns the current derived snapshot
func (c *Controller) State() State {
	return c.state
}

// Level returns the raw level
func (c *Controller) Level() float64 {
	return c.level
}

// SuccessRate returns the window mean, or the target rate for an empty window
func (c *Controller) SuccessRate() float64 {
	if rate, ok := c.metrics.SuccessRate(); ok {
		return rate
	}
	return c.cfg.Target
}

// Metrics exposes the performance window read-only
func (c *Controller) Metrics() *Metrics {
	return &c.metrics
}

// Config returns the active tuning
func (c *Controller) Config() Config {
	return c.cfg
}

// ObstaclePattern picks a layout uniformly from the active tier's set
func (c *Controller) ObstaclePattern() Pattern {
	set := Patterns(c.state.Tier)
	return set[c.rng.IntN(len(set))]
}

// Derive computes every derived field from level
func Derive(level float64, cfg Config) State {
	span := cfg.Ceiling - cfg.Floor
	t := 0.0
	if span > 0 {
		t = clamp((level-cfg.Floor)/span, 0, 1)
	}
	e := EaseInOut(t)

	tier := Tier(t * parameter.PatternTierCount)
	if tier >= tierCount {
		tier = tierCount - 1
	}

	interval := float64(parameter.SpawnIntervalMax) - e*float64(parameter.SpawnIntervalMax-parameter.SpawnIntervalMin)

	return State{
		Level:          level,
		Progress:       e,
		Speed:          parameter.ObstacleSpeedMin + e*(parameter.ObstacleSpeedMax-parameter.ObstacleSpeedMin),
		SpawnInterval:  time.Duration(interval),
		Complexity:     parameter.ComplexityMin + e*(parameter.ComplexityMax-parameter.ComplexityMin),
		Tier:           tier,
		ReactionWindow: 1 - e*(1-parameter.ReactionWindowMin),
	}
}

// EaseInOut is the symmetric quadratic ease: 2t² below 0.5, 1-(-2t+2)²/2 above
func EaseInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
