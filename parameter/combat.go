package parameter

import "time"

// Projectiles
const (
	// AutoFireInterval is the cadence of unconditional normal shots
	AutoFireInterval = 250 * time.Millisecond

	ProjectileSpeed    = 640.0 // units/sec
	ProjectileRadius   = 4.0
	ProjectileLifetime = 2 * time.Second
	ProjectileDamage   = 1

	// ProjectileTrailLength is the trailing position buffer capacity before echo scaling
	ProjectileTrailLength = 6

	// ChargeMax is the charge time that yields full power
	ChargeMax = 1200 * time.Millisecond

	// ChargePiercingThreshold is the power above which a charged shot pierces
	ChargePiercingThreshold = 0.7

	ChargeRadiusGain = 1.5
	ChargeSpeedGain  = 0.8

	// ProjectileDeflectSpread is the max vertical speed given to a deflected projectile
	ProjectileDeflectSpread = 240.0
)

// Elite Spawning
const (
	EliteSpawnIntervalBase = 15 * time.Second
	EliteSpawnIntervalMin  = 6 * time.Second
	EliteSpawnIntervalStep = 500 * time.Millisecond // Reduction per elite killed
	EliteMaxAlive          = 8

	// EliteLinger is the post-death animation window before removal
	EliteLinger = 500 * time.Millisecond

	// EliteHoldFraction is the x fraction of the field where elites stop advancing
	EliteHoldFraction = 0.7

	// EliteEntrySpeed is the leftward speed while entering (units/sec)
	EliteEntrySpeed = 90.0

	// EliteChaseRate is the titan's vertical tracking gain (1/sec)
	EliteChaseRate = 1.6
)

// Elite Variant Weights
const (
	EliteWeightSentinel = 3
	EliteWeightPhantom  = 2
	EliteWeightTitan    = 1
	EliteWeightSwarm    = 4
)

// Sentinel
const (
	SentinelHP = 3
	// SentinelShieldFraction is the frontal fraction of width covered by the shield
	SentinelShieldFraction = 0.3
	SentinelShieldSpin     = 1.5 // rad/sec, visual only
	SentinelShake          = 100 * time.Millisecond
)

// Phantom
const (
	PhantomHP               = 2
	PhantomTeleportCooldown = 3 * time.Second
	// PhantomFieldFraction is where teleports land: the right portion of the field
	PhantomFieldFraction = 0.55
	PhantomShake         = 120 * time.Millisecond
)

// Titan
const (
	TitanHP    = 5
	TitanShake = 200 * time.Millisecond
)

// Swarm
const (
	SwarmHP         = 1
	SwarmMinCluster = 3
	SwarmMaxCluster = 5
	SwarmSpacing    = 40.0
	SwarmShake      = 60 * time.Millisecond
)

// Elite Geometry
const (
	SentinelSize = 48.0
	PhantomSize  = 40.0
	TitanSize    = 72.0
	SwarmSize    = 24.0

	// EliteMarginFraction keeps spawns and motion off the top and bottom edges
	EliteMarginFraction = 0.08

	// EliteHitFlash is the white flash after a damaging hit
	EliteHitFlash = 80 * time.Millisecond
)

// Elite Behavior
const (
	SentinelAmplitude = 60.0
	SentinelFrequency = 0.35 // Hz
	PhantomAmplitude  = 25.0
	PhantomFrequency  = 0.2
	SwarmAmplitude    = 45.0
	SwarmFrequency    = 0.9
	// SwarmPhaseStep staggers members of a cluster along the zigzag
	SwarmPhaseStep = 0.25
)

// Elite Rewards
const (
	SentinelScore  = 150
	SentinelTokens = 3
	SentinelEnergy = 10

	PhantomScore  = 200
	PhantomTokens = 4
	PhantomEnergy = 12

	TitanScore  = 500
	TitanTokens = 10
	TitanEnergy = 25

	SwarmScore  = 40
	SwarmTokens = 1
	SwarmEnergy = 3
)
