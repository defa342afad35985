package progression

import "time"

// Achievement is a one-time unlock evaluated against lifetime stats
type Achievement struct {
	ID          string
	Name        string
	Description string
	Reward      string // Skin id granted on unlock, empty for none
	check       func(s *Stats) bool
}

// Met reports whether stats satisfy the achievement
func (a Achievement) Met(s *Stats) bool {
	return a.check != nil && a.check(s)
}

var catalog = []Achievement{
	{ID: "first_run", Name: "First Flight", Description: "Finish a run",
		check: func(s *Stats) bool { return s.Runs >= 1 }},
	{ID: "veteran", Name: "Veteran", Description: "Finish 50 runs", Reward: "frost",
		check: func(s *Stats) bool { return s.Runs >= 50 }},
	{ID: "combo_10", Name: "In the Flow", Description: "Reach a 10 combo",
		check: func(s *Stats) bool { return s.LongestCombo >= 10 }},
	{ID: "combo_50", Name: "Untouchable", Description: "Reach a 50 combo", Reward: "ember",
		check: func(s *Stats) bool { return s.LongestCombo >= 50 }},
	{ID: "score_1k", Name: "Four Digits", Description: "Score 1,000 in one run",
		check: func(s *Stats) bool { return s.BestScore >= 1_000 }},
	{ID: "score_10k", Name: "High Roller", Description: "Score 10,000 in one run", Reward: "solar",
		check: func(s *Stats) bool { return s.BestScore >= 10_000 }},
	{ID: "elite_hunter", Name: "Elite Hunter", Description: "Destroy 25 elites",
		check: func(s *Stats) bool { return s.Kills >= 25 }},
	{ID: "titan_slayer", Name: "Titan Slayer", Description: "Destroy a titan", Reward: "wraith",
		check: func(s *Stats) bool { return s.TitanKills >= 1 }},
	{ID: "collector", Name: "Collector", Description: "Pick up 100 items",
		check: func(s *Stats) bool { return s.Collects >= 100 }},
	{ID: "persistence", Name: "Persistence", Description: "Take 100 hits",
		check: func(s *Stats) bool { return s.Fails >= 100 }},
	{ID: "marathon", Name: "Marathon", Description: "Play for an hour in total", Reward: "aurora",
		check: func(s *Stats) bool { return s.PlayTime >= time.Hour }},
}

// Catalog returns every achievement in display order
func Catalog() []Achievement {
	out := make([]Achievement, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds an achievement by id
func Lookup(id string) (Achievement, bool) {
	for _, a := range catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
