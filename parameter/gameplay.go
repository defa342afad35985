package parameter

import "time"

// Play Field (logical units, independent of terminal size)
const (
	FieldWidth  = 800.0
	FieldHeight = 450.0
)

// Player
const (
	PlayerX      = 80.0
	PlayerSize   = 24.0
	PlayerSpeed  = 360.0 // units/sec at full axis deflection
	PlayerLives  = 3
	PlayerGrace  = time.Second // Post-hit invulnerability
	ObstacleSize = 36.0
)

// Collectibles
const (
	CollectibleInterval     = 2500 * time.Millisecond
	CollectibleSize         = 16.0
	CollectibleSpeedFactor  = 0.8 // Relative to obstacle speed
	CollectiblePowerUpOdds  = 0.25
	CollectibleEnergyOdds   = 0.25
	CollectiblePickupRadius = 14.0
	CoinTokens              = 1
	CoinScore               = 25
	EnergyOrbAmount         = 5
)

// Scoring
const (
	DodgeScore      = 10
	ComboBonusStep  = 0.1 // Bonus fraction per combo step
	ComboIntensity  = 30  // Combo at which combo contributes full intensity
	IntensityWeight = 0.6 // Difficulty share of intensity, rest comes from combo
	IntensityStep   = 0.1 // Quantization of published intensity
)

// Modes
const (
	TimeTrialDuration = 60 * time.Second
)

// Milestones
const (
	// ComboMilestone is the combo step that publishes a combo event
	ComboMilestone = 5

	// StreakBonusScore is multiplied by the milestone tier
	StreakBonusScore = 250

	// FailShake is the screen shake on a player hit
	FailShake = 150 * time.Millisecond

	// ObstacleComplexityGrowth scales obstacle size per complexity unit above 1
	ObstacleComplexityGrowth = 0.25

	// ObstacleCullMargin is how far beyond the right edge reversed obstacles may travel
	ObstacleCullMargin = 320.0
)
