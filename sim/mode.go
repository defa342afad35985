package sim

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/dodger/parameter"
)

// ErrUnknownMode is returned by ParseMode
var ErrUnknownMode = errors.New("unknown mode")

// ModeKind selects the terminal condition and RNG seeding
type ModeKind int

const (
	ModeClassic ModeKind = iota
	ModeTimeTrial
	ModeInfinite
	ModeSeeds
)

var modeNames = map[ModeKind]string{
	ModeClassic:   "classic",
	ModeTimeTrial: "time_trial",
	ModeInfinite:  "infinite",
	ModeSeeds:     "seeds",
}

func (k ModeKind) String() string {
	if n, ok := modeNames[k]; ok {
		return n
	}
	return "unknown"
}

// Mode is the immutable run descriptor
type Mode struct {
	Kind           ModeKind
	Duration       time.Duration // Zero for untimed modes
	Seed           uint64
	Seeded         bool
	BaseDifficulty float64
	Lives          int // Zero for modes that never end from fails
}

// Name returns the mode's canonical name
func (m Mode) Name() string {
	return m.Kind.String()
}

// Classic ends when lives run out
func Classic() Mode {
	return Mode{Kind: ModeClassic, BaseDifficulty: parameter.DifficultyInitial, Lives: parameter.PlayerLives}
}

// TimeTrial ends when the clock runs out
func TimeTrial() Mode {
	return Mode{Kind: ModeTimeTrial, Duration: parameter.TimeTrialDuration, BaseDifficulty: parameter.DifficultyInitial}
}

// Infinite never ends on its own
func Infinite() Mode {
	return Mode{Kind: ModeInfinite, BaseDifficulty: parameter.DifficultyInitial}
}

// Seeds replays a deterministic spawn sequence with classic lives
func Seeds(seed uint64) Mode {
	return Mode{Kind: ModeSeeds, Seed: seed, Seeded: true, BaseDifficulty: parameter.DifficultyInitial, Lives: parameter.PlayerLives}
}

// ParseMode resolves a mode by name; seed only applies to seeds
func ParseMode(name string, seed uint64) (Mode, error) {
	switch name {
	case "classic", "":
		return Classic(), nil
	case "time_trial", "timetrial":
		return TimeTrial(), nil
	case "infinite":
		return Infinite(), nil
	case "seeds":
		return Seeds(seed), nil
	}
	return Mode{}, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

func (m Mode) hasLives() bool { return m.Lives > 0 }
func (m Mode) timed() bool    { return m.Duration > 0 }
