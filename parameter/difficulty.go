package parameter

import "time"

// Difficulty Level Bounds
const (
	// DifficultyFloor is the lowest reachable difficulty level
	DifficultyFloor = 0.1

	// DifficultyCeiling is the highest reachable difficulty level
	DifficultyCeiling = 2.0

	// DifficultyInitial is the level a run starts at unless the mode overrides it
	DifficultyInitial = 1.0
)

// Adaptive Control
const (
	// DifficultyTargetRate is the success rate the controller steers toward
	DifficultyTargetRate = 0.65

	// DifficultyTolerance is the dead band around the target where level is left alone
	DifficultyTolerance = 0.1

	// DifficultyGain scales the rate error into a level delta per recorded outcome
	DifficultyGain = 0.5

	// DifficultyWindowSize is the rolling outcome history capacity
	DifficultyWindowSize = 20

	// DifficultyCreepPerSecond is the performance-independent level increase
	DifficultyCreepPerSecond = 0.004

	// DifficultyStreakInterval is the consecutive dodge count between boss milestones
	DifficultyStreakInterval = 25
)

// Derived State Ranges (eased between min and max)
const (
	// ObstacleSpeedMin is obstacle speed at the floor (units/sec)
	ObstacleSpeedMin = 180.0

	// ObstacleSpeedMax is obstacle speed at the ceiling (units/sec)
	ObstacleSpeedMax = 520.0

	// SpawnIntervalMax is the obstacle pattern interval at the floor
	SpawnIntervalMax = 1400 * time.Millisecond

	// SpawnIntervalMin is the obstacle pattern interval at the ceiling
	SpawnIntervalMin = 350 * time.Millisecond

	// ComplexityMin and ComplexityMax bound the obstacle size/count factor
	ComplexityMin = 1.0
	ComplexityMax = 3.0

	// ReactionWindowMin is the reaction window factor at the ceiling (1.0 at floor)
	ReactionWindowMin = 0.4

	// PatternTierCount is the number of discrete obstacle layout buckets
	PatternTierCount = 5
)
