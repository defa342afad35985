package difficulty

// Tier is a discrete obstacle-layout complexity bucket
type Tier int

const (
	TierEasy Tier = iota
	TierMedium
	TierHard
	TierExpert
	TierNightmare
	tierCount
)

var tierNames = [tierCount]string{"easy", "medium", "hard", "expert", "nightmare"}

func (t Tier) String() string {
	if t < 0 || t >= tierCount {
		return "unknown"
	}
	return tierNames[t]
}

// Slot is one obstacle in a layout
type Slot struct {
	Lane   float64 // Vertical center as a fraction of field height
	Offset float64 // Extra distance behind the spawn edge (units)
	Scale  float64 // Size multiplier before complexity scaling
}

// Pattern is a named obstacle layout template
type Pattern struct {
	Name  string
	Tier  Tier
	Slots []Slot
}

// patternSets holds the layouts owned by each tier
var patternSets = [tierCount][]Pattern{
	TierEasy: {
		{Name: "single_high", Slots: []Slot{{0.25, 0, 1}}},
		{Name: "single_mid", Slots: []Slot{{0.5, 0, 1}}},
		{Name: "single_low", Slots: []Slot{{0.75, 0, 1}}},
	},
	TierMedium: {
		{Name: "pair_split", Slots: []Slot{{0.2, 0, 1}, {0.8, 0, 1}}},
		{Name: "stagger_two", Slots: []Slot{{0.3, 0, 1}, {0.65, 120, 1}}},
		{Name: "wide_mid", Slots: []Slot{{0.5, 0, 1.6}}},
	},
	TierHard: {
		{Name: "wall_gap_top", Slots: []Slot{{0.4, 0, 1}, {0.6, 0, 1}, {0.8, 0, 1}}},
		{Name: "wall_gap_bottom", Slots: []Slot{{0.2, 0, 1}, {0.4, 0, 1}, {0.6, 0, 1}}},
		{Name: "zigzag", Slots: []Slot{{0.2, 0, 1}, {0.5, 100, 1}, {0.8, 200, 1}}},
	},
	TierExpert: {
		{Name: "stairs_down", Slots: []Slot{{0.15, 0, 1}, {0.35, 80, 1}, {0.55, 160, 1}, {0.75, 240, 1}}},
		{Name: "funnel", Slots: []Slot{{0.1, 0, 1.2}, {0.9, 0, 1.2}, {0.25, 140, 1}, {0.75, 140, 1}}},
		{Name: "double_wall", Slots: []Slot{{0.15, 0, 1}, {0.35, 0, 1}, {0.65, 150, 1}, {0.85, 150, 1}}},
	},
	TierNightmare: {
		{Name: "gauntlet", Slots: []Slot{{0.1, 0, 1}, {0.3, 0, 1}, {0.5, 90, 1}, {0.7, 180, 1}, {0.9, 180, 1}}},
		{Name: "checker", Slots: []Slot{{0.15, 0, 1}, {0.55, 0, 1}, {0.35, 110, 1}, {0.75, 110, 1}, {0.95, 0, 1}}},
		{Name: "crusher", Slots: []Slot{{0.1, 0, 1.8}, {0.9, 0, 1.8}, {0.5, 160, 1.4}}},
	},
}

func init() {
	for tier := range patternSets {
		for i := range patternSets[tier] {
			patternSets[tier][i].Tier = Tier(tier)
		}
	}
}

// Patterns returns the layouts of a tier
func Patterns(t Tier) []Pattern {
	if t < 0 || t >= tierCount {
		return nil
	}
	return patternSets[t]
}
