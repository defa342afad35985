package main

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/dodger/engine"
	"github.com/lixenwraith/dodger/parameter"
	"github.com/lixenwraith/dodger/sim"
)

// moveHold is how long one key press keeps the player moving; terminals report
// repeats, not releases, so a held key refreshes the deadline
const moveHold = 120 * time.Millisecond

// quickShot is the charge of a tap-fire shot
const quickShot = parameter.ChargeMax / 10

// action is what a key asks of the host beyond player intent
type action int

const (
	actionNone action = iota
	actionCommand
	actionMute
	actionMetrics
	actionQuit
)

// keyInput turns tcell key events into sim.Input. Keys arrive on the main
// goroutine and Poll runs on the frame goroutine
type keyInput struct {
	mu  sync.Mutex
	now func() time.Time

	dir       float64
	moveUntil time.Time

	charging    bool
	chargeStart time.Time
	released    time.Duration
}

func newKeyInput(now func() time.Time) *keyInput {
	if now == nil {
		now = time.Now
	}
	return &keyInput{now: now}
}

// Poll returns the current intent and consumes any released shot
func (k *keyInput) Poll() sim.Input {
	k.mu.Lock()
	defer k.mu.Unlock()

	var in sim.Input
	if k.now().Before(k.moveUntil) {
		in.MoveY = k.dir
	}
	in.Charge = k.released
	k.released = 0
	return in
}

// Charging reports whether a shot is being charged
func (k *keyInput) Charging() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.charging
}

func (k *keyInput) move(dir float64) {
	k.mu.Lock()
	k.dir = dir
	k.moveUntil = k.now().Add(moveHold)
	k.mu.Unlock()
}

// toggleCharge starts charging or releases the held shot
func (k *keyInput) toggleCharge() {
	k.mu.Lock()
	defer k.mu.Unlock()
	if !k.charging {
		k.charging = true
		k.chargeStart = k.now()
		return
	}
	k.charging = false
	k.released = max(k.now().Sub(k.chargeStart), time.Millisecond)
}

func (k *keyInput) fire() {
	k.mu.Lock()
	k.released = quickShot
	k.mu.Unlock()
}

// reset drops movement and any pending shot, used across runs
func (k *keyInput) reset() {
	k.mu.Lock()
	k.dir, k.moveUntil = 0, time.Time{}
	k.charging, k.released = false, 0
	k.mu.Unlock()
}

// handleKey applies a key to the input state and returns the host action.
// Space starts an idle or finished run; while running it charges and releases
func (k *keyInput) handleKey(key tcell.Key, r rune, state sim.State) (action, engine.Command) {
	switch key {
	case tcell.KeyUp:
		k.move(-1)
		return actionNone, 0
	case tcell.KeyDown:
		k.move(1)
		return actionNone, 0
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit, 0
	case tcell.KeyRune:
	default:
		return actionNone, 0
	}

	switch r {
	case 'w', 'k':
		k.move(-1)
	case 's', 'j':
		k.move(1)
	case ' ':
		switch state {
		case sim.StateIdle:
			return actionCommand, engine.CmdStart
		case sim.StateGameOver:
			k.reset()
			return actionCommand, engine.CmdRestart
		case sim.StateRunning:
			k.toggleCharge()
		}
	case 'f':
		if state == sim.StateRunning {
			k.fire()
		}
	case 'p':
		return actionCommand, engine.CmdTogglePause
	case 'r':
		k.reset()
		return actionCommand, engine.CmdRestart
	case 'm':
		return actionMute, 0
	case 'd':
		return actionMetrics, 0
	case 'q':
		return actionQuit, 0
	}
	return actionNone, 0
}
