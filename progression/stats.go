package progression

import (
	"maps"
	"time"
)

// Stats are lifetime counters persisted across runs
type Stats struct {
	Runs         int              `json:"runs"`
	TotalScore   int64            `json:"total_score"`
	BestScore    int64            `json:"best_score"`
	ModeBest     map[string]int64 `json:"mode_best"` // Best score by mode name
	Dodges       int              `json:"dodges"`
	Fails        int              `json:"fails"`
	Collects     int              `json:"collects"`
	Kills        int              `json:"kills"`
	TitanKills   int              `json:"titan_kills"`
	LongestCombo int              `json:"longest_combo"`
	PlayTime     time.Duration    `json:"play_time"`
	Tokens       int              `json:"tokens"`
	Energy       int              `json:"energy"`
}

// clone copies s including its map
func (s Stats) clone() Stats {
	s.ModeBest = maps.Clone(s.ModeBest)
	if s.ModeBest == nil {
		s.ModeBest = make(map[string]int64)
	}
	return s
}

// Profile is the persisted document: stats plus unlock times by achievement id
type Profile struct {
	Stats    Stats                `json:"stats"`
	Unlocked map[string]time.Time `json:"unlocked"`
}

func newProfile() Profile {
	return Profile{
		Stats:    Stats{ModeBest: make(map[string]int64)},
		Unlocked: make(map[string]time.Time),
	}
}
