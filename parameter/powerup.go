package parameter

import "time"

// Power-Up Durations
const (
	PowerUpShieldDuration      = 6 * time.Second
	PowerUpMagnetDuration      = 8 * time.Second
	PowerUpDoubleScoreDuration = 8 * time.Second
	PowerUpSlowMotionDuration  = 5 * time.Second
	PowerUpShrinkDuration      = 7 * time.Second
	PowerUpGhostDuration       = 4 * time.Second
	PowerUpReverseDuration     = 3 * time.Second
	PowerUpOverdriveDuration   = 4 * time.Second
)

// Power-Up Effects
const (
	// PowerUpCapacity is the maximum concurrently active instances
	PowerUpCapacity = 3

	PowerUpDoubleScoreFactor = 2.0
	PowerUpOverdriveFactor   = 5.0
	PowerUpSlowMotionFactor  = 0.5
	PowerUpShrinkFactor      = 0.5

	// PowerUpReverseFactor is negative on purpose: obstacles run backward while active
	PowerUpReverseFactor = -0.8

	// PowerUpMagnetRadius is the pull radius in play-field units
	PowerUpMagnetRadius = 160.0

	// PowerUpMagnetPull is the collectible pull speed (units/sec)
	PowerUpMagnetPull = 420.0
)

// Rarity Weights
const (
	RarityWeightCommon    = 60
	RarityWeightUncommon  = 25
	RarityWeightRare      = 10
	RarityWeightEpic      = 4
	RarityWeightLegendary = 1
)
