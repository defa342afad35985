package event

import "time"

// GameStartPayload identifies the run
type GameStartPayload struct {
	RunID string
	Mode  string
}

// GameOverPayload is the end-of-run summary handed to progression
type GameOverPayload struct {
	RunID    string
	Mode     string
	Score    int64
	Fails    int
	Dodges   int
	Kills    int
	Collects int
	Duration time.Duration
	MaxCombo int
	Tokens   int
	Energy   int
}

// DodgePayload describes a successful dodge
type DodgePayload struct {
	Reaction time.Duration
	Combo    int
	Points   int64
	X, Y     float64
}

// FailPayload describes a hit taken by the player
type FailPayload struct {
	LivesLeft int // -1 for modes without lives
	LostCombo int
	Source    string // "obstacle" or the elite kind
}

// CollectPayload describes a collectible pickup
type CollectPayload struct {
	Kind    string
	PowerUp string // Empty unless Kind is "powerup"
	X, Y    float64
}

// ComboPayload carries the current combo count
type ComboPayload struct {
	Combo int
}

// StreakPayload carries a boss streak milestone
type StreakPayload struct {
	Streak int
	Tier   int
}

// IntensityPayload carries quantized intensity in [0,1]
type IntensityPayload struct {
	Intensity float64
}

// ScorePayload is a score award at a field position
type ScorePayload struct {
	Amount int64
	X, Y   float64
}

// AmountPayload is a plain resource award
type AmountPayload struct {
	Amount int
}

// ShakePayload requests a screen shake of the given length
type ShakePayload struct {
	Duration time.Duration
}

// PowerUpEndReason explains why an instance ended
type PowerUpEndReason int

const (
	PowerUpExpired PowerUpEndReason = iota
	PowerUpEvicted
	PowerUpRemoved
)

// PowerUpPayload describes an activation or an end-of-effect
type PowerUpPayload struct {
	Type      string
	Remaining time.Duration
	Refreshed bool
	Reason    PowerUpEndReason
}

// ElitePayload describes an elite at the time of the event
type ElitePayload struct {
	ID     uint64
	Kind   string
	X, Y   float64
	HP     int
	Damage int
}

// ChargePayload describes a released charged shot
type ChargePayload struct {
	Power    float64
	Damage   int
	Piercing bool
}
