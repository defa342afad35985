package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/dodger/config"
	"github.com/lixenwraith/dodger/engine"
	"github.com/lixenwraith/dodger/parameter"
	"github.com/lixenwraith/dodger/sim"
	"github.com/lixenwraith/dodger/skin"
)

type manualClock struct{ t time.Time }

func (c *manualClock) now() time.Time { return c.t }

func newTestInput() (*keyInput, *manualClock) {
	clk := &manualClock{t: time.Unix(1000, 0)}
	return newKeyInput(clk.now), clk
}

// TestMoveHoldExpires verifies a key press moves the player only for the hold window
func TestMoveHoldExpires(t *testing.T) {
	k, clk := newTestInput()

	k.handleKey(tcell.KeyUp, 0, sim.StateRunning)
	if got := k.Poll().MoveY; got != -1 {
		t.Errorf("Expected MoveY -1, got %v", got)
	}

	clk.t = clk.t.Add(moveHold + time.Millisecond)
	if got := k.Poll().MoveY; got != 0 {
		t.Errorf("Expected MoveY 0 after hold, got %v", got)
	}

	k.handleKey(tcell.KeyRune, 's', sim.StateRunning)
	if got := k.Poll().MoveY; got != 1 {
		t.Errorf("Expected MoveY 1, got %v", got)
	}
}

// TestChargeReleasedOnce verifies a charged shot carries its hold time and is consumed by one poll
func TestChargeReleasedOnce(t *testing.T) {
	k, clk := newTestInput()

	k.handleKey(tcell.KeyRune, ' ', sim.StateRunning)
	if !k.Charging() {
		t.Fatal("Expected charging after first space")
	}
	if got := k.Poll().Charge; got != 0 {
		t.Errorf("Expected no shot while charging, got %v", got)
	}

	clk.t = clk.t.Add(800 * time.Millisecond)
	k.handleKey(tcell.KeyRune, ' ', sim.StateRunning)
	if k.Charging() {
		t.Error("Expected charge released")
	}
	if got := k.Poll().Charge; got != 800*time.Millisecond {
		t.Errorf("Expected 800ms charge, got %v", got)
	}
	if got := k.Poll().Charge; got != 0 {
		t.Errorf("Expected shot consumed, got %v", got)
	}
}

// TestQuickShot verifies tap fire only works while running
func TestQuickShot(t *testing.T) {
	k, _ := newTestInput()

	k.handleKey(tcell.KeyRune, 'f', sim.StatePaused)
	if got := k.Poll().Charge; got != 0 {
		t.Errorf("Expected no shot while paused, got %v", got)
	}

	k.handleKey(tcell.KeyRune, 'f', sim.StateRunning)
	if got := k.Poll().Charge; got != parameter.ChargeMax/10 {
		t.Errorf("Expected quick shot charge, got %v", got)
	}
}

// TestSpaceByState verifies space starts, restarts or charges depending on the run state
func TestSpaceByState(t *testing.T) {
	tests := []struct {
		state   sim.State
		act     action
		cmd     engine.Command
		charges bool
	}{
		{sim.StateIdle, actionCommand, engine.CmdStart, false},
		{sim.StateGameOver, actionCommand, engine.CmdRestart, false},
		{sim.StateRunning, actionNone, 0, true},
		{sim.StatePaused, actionNone, 0, false},
	}

	for _, tt := range tests {
		k, _ := newTestInput()
		act, cmd := k.handleKey(tcell.KeyRune, ' ', tt.state)
		if act != tt.act {
			t.Errorf("%s: Expected action %d, got %d", tt.state, tt.act, act)
		}
		if act == actionCommand && cmd != tt.cmd {
			t.Errorf("%s: Expected command %d, got %d", tt.state, tt.cmd, cmd)
		}
		if k.Charging() != tt.charges {
			t.Errorf("%s: Expected charging %v, got %v", tt.state, tt.charges, k.Charging())
		}
	}
}

// TestHostKeys verifies the non-movement bindings
func TestHostKeys(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		r    rune
		act  action
		cmd  engine.Command
		name string
	}{
		{tcell.KeyRune, 'p', actionCommand, engine.CmdTogglePause, "pause"},
		{tcell.KeyRune, 'r', actionCommand, engine.CmdRestart, "restart"},
		{tcell.KeyRune, 'm', actionMute, 0, "mute"},
		{tcell.KeyRune, 'd', actionMetrics, 0, "metrics"},
		{tcell.KeyRune, 'q', actionQuit, 0, "quit"},
		{tcell.KeyEscape, 0, actionQuit, 0, "escape"},
		{tcell.KeyTab, 0, actionNone, 0, "unbound"},
	}

	for _, tt := range tests {
		k, _ := newTestInput()
		act, cmd := k.handleKey(tt.key, tt.r, sim.StateRunning)
		if act != tt.act {
			t.Errorf("%s: Expected action %d, got %d", tt.name, tt.act, act)
		}
		if act == actionCommand && cmd != tt.cmd {
			t.Errorf("%s: Expected command %d, got %d", tt.name, tt.cmd, cmd)
		}
	}
}

// TestRestartClearsInput verifies a restart drops a held charge and movement
func TestRestartClearsInput(t *testing.T) {
	k, _ := newTestInput()
	k.handleKey(tcell.KeyDown, 0, sim.StateRunning)
	k.handleKey(tcell.KeyRune, ' ', sim.StateRunning)

	k.handleKey(tcell.KeyRune, 'r', sim.StateRunning)
	if k.Charging() {
		t.Error("Expected charge dropped")
	}
	if in := k.Poll(); in.MoveY != 0 || in.Charge != 0 {
		t.Errorf("Expected empty input, got %+v", in)
	}
}

// TestPickSkin verifies locked skins fall back to the default
func TestPickSkin(t *testing.T) {
	owned := []string{"ember", "frost"}

	if got := pickSkin(skin.DefaultID, nil); got != skin.DefaultID {
		t.Errorf("Expected default skin, got %s", got)
	}
	if got := pickSkin("frost", owned); got != "frost" {
		t.Errorf("Expected frost, got %s", got)
	}
	if got := pickSkin("solar", owned); got != skin.DefaultID {
		t.Errorf("Expected fallback to %s, got %s", skin.DefaultID, got)
	}
}

// TestLoadConfigEnv verifies environment overrides pass through validation
func TestLoadConfigEnv(t *testing.T) {
	env := map[string]string{
		config.EnvMasterVolume: "40",
		config.EnvAudioEnabled: "false",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg, err := loadConfig("", lookup)
	if err != nil {
		t.Fatalf("Expected valid config, got %v", err)
	}
	if cfg.Audio.MasterVolume != 0.4 {
		t.Errorf("Expected master volume 0.4, got %v", cfg.Audio.MasterVolume)
	}
	if cfg.Audio.Enabled {
		t.Error("Expected audio disabled")
	}

	env[config.EnvMasterVolume] = "140"
	if _, err := loadConfig("", lookup); err == nil {
		t.Error("Expected error for out-of-range volume")
	}
}
