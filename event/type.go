package event

// EventType represents the type of game event
type EventType int

const (
	// === Run Lifecycle ===

	// EventGameStart signals a run entered Running from Idle
	// Trigger: sim.Loop.Start | Payload: *GameStartPayload
	EventGameStart EventType = iota

	// EventGamePaused signals Running -> Paused
	// Trigger: sim.Loop.Pause | Payload: nil
	EventGamePaused

	// EventGameResumed signals Paused -> Running
	// Trigger: sim.Loop.Resume | Payload: nil
	EventGameResumed

	// EventGameOver carries the end-of-run summary, emitted once per run
	// Trigger: terminal condition or sim.Loop.End | Payload: *GameOverPayload
	EventGameOver

	// === Telemetry ===

	// EventDodge signals an obstacle passed the player without contact
	// Consumer: progression, audio | Payload: *DodgePayload
	EventDodge

	// EventFail signals an obstacle or elite hit the player
	// Consumer: progression, audio, haptics | Payload: *FailPayload
	EventFail

	// EventCollect signals a collectible was picked up
	// Payload: *CollectPayload
	EventCollect

	// EventComboChanged signals a combo milestone (every 5 dodges)
	// Payload: *ComboPayload
	EventComboChanged

	// EventStreakMilestone signals the difficulty controller's boss streak
	// Payload: *StreakPayload
	EventStreakMilestone

	// EventIntensityChanged signals the quantized music intensity moved
	// Consumer: music bridge | Payload: *IntensityPayload
	EventIntensityChanged

	// === Rewards (fire-and-forget) ===

	// EventScore is a floating score popup at a field position
	// Payload: *ScorePayload
	EventScore

	// EventTokens awards currency
	// Payload: *AmountPayload
	EventTokens

	// EventEnergy awards the secondary resource
	// Payload: *AmountPayload
	EventEnergy

	// EventShake requests a screen shake
	// Payload: *ShakePayload
	EventShake

	// === Power-Ups ===

	// EventPowerUpActivated signals activation or refresh
	// Payload: *PowerUpPayload
	EventPowerUpActivated

	// EventPowerUpEnded signals expiry, eviction or explicit removal
	// Payload: *PowerUpPayload
	EventPowerUpEnded

	// EventShieldAbsorbed signals the shield power-up consumed a hit
	// Payload: nil
	EventShieldAbsorbed

	// === Combat ===

	// EventEliteSpawned signals a new elite (one per swarm member)
	// Payload: *ElitePayload
	EventEliteSpawned

	// EventEliteHit signals damage applied to an elite
	// Payload: *ElitePayload
	EventEliteHit

	// EventEliteBlocked signals a sentinel shield deflected a projectile
	// Payload: *ElitePayload
	EventEliteBlocked

	// EventEliteTeleported signals a phantom blink
	// Payload: *ElitePayload
	EventEliteTeleported

	// EventEliteKilled signals the death transition, emitted exactly once per elite
	// Payload: *ElitePayload
	EventEliteKilled

	// EventChargedShot signals a released charged projectile
	// Payload: *ChargePayload
	EventChargedShot

	eventTypeCount
)

var eventNames = [eventTypeCount]string{
	EventGameStart:        "game_start",
	EventGamePaused:       "game_paused",
	EventGameResumed:      "game_resumed",
	EventGameOver:         "game_over",
	EventDodge:            "dodge",
	EventFail:             "fail",
	EventCollect:          "collect",
	EventComboChanged:     "combo_changed",
	EventStreakMilestone:  "streak_milestone",
	EventIntensityChanged: "intensity_changed",
	EventScore:            "score",
	EventTokens:           "tokens",
	EventEnergy:           "energy",
	EventShake:            "shake",
	EventPowerUpActivated: "powerup_activated",
	EventPowerUpEnded:     "powerup_ended",
	EventShieldAbsorbed:   "shield_absorbed",
	EventEliteSpawned:     "elite_spawned",
	EventEliteHit:         "elite_hit",
	EventEliteBlocked:     "elite_blocked",
	EventEliteTeleported:  "elite_teleported",
	EventEliteKilled:      "elite_killed",
	EventChargedShot:      "charged_shot",
}

// String returns the snake_case event name
func (t EventType) String() string {
	if t < 0 || t >= eventTypeCount {
		return "unknown"
	}
	return eventNames[t]
}

// GameEvent is a queued event stamped with the simulation frame that produced it
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
