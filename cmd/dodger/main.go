package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/dodger/audio"
	"github.com/lixenwraith/dodger/config"
	"github.com/lixenwraith/dodger/core"
	"github.com/lixenwraith/dodger/difficulty"
	"github.com/lixenwraith/dodger/engine"
	"github.com/lixenwraith/dodger/event"
	"github.com/lixenwraith/dodger/progression"
	"github.com/lixenwraith/dodger/render"
	"github.com/lixenwraith/dodger/sim"
	"github.com/lixenwraith/dodger/skin"
	"github.com/lixenwraith/dodger/status"
	"github.com/lixenwraith/dodger/system"
)

const (
	toastDuration = 3 * time.Second
	popupLimit    = 16
	gameOverSting = 600 * time.Millisecond
)

var (
	modeFlag   = flag.String("mode", "", "Game mode: classic, time_trial, infinite, seeds (overrides config)")
	seedFlag   = flag.Uint64("seed", 1, "Spawn seed for seeds mode")
	skinFlag   = flag.String("skin", "", "Skin id (overrides config)")
	configFlag = flag.String("config", "dodger.yaml", "Config file path")
	debugFlag  = flag.Bool("debug", false, "Write logs to logs/dodger.log and show metrics")
)

// host glues the run to the terminal, the speaker and the profile store
type host struct {
	screen   tcell.Screen
	cfg      config.Config
	mode     sim.Mode
	skin     skin.Skin
	registry *status.Registry
	router   *event.Router

	audio    *audio.Engine
	tracker  *progression.Tracker
	audioSys *system.AudioSystem
	musicSys *system.MusicSystem
	shake    *system.ShakeSystem
	popups   *system.PopupSystem

	input    *keyInput
	frames   *engine.FrameLoop
	renderer *render.TerminalRenderer

	muted       atomic.Bool
	showMetrics atomic.Bool

	// Frame goroutine only
	toast      string
	toastUntil time.Time
	lastFrame  time.Time
}

func main() {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := loadConfig(*configFlag, os.LookupEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dodger: %v\n", err)
		os.Exit(1)
	}

	h, err := newHost(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dodger: %v\n", err)
		os.Exit(1)
	}
	defer h.cleanup()

	h.run()
}

// loadConfig reads the file, applies environment and flag overrides, then validates
func loadConfig(path string, lookup func(string) (string, bool)) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return cfg, err
	}
	if *modeFlag != "" {
		cfg.Game.Mode = *modeFlag
	}
	if *skinFlag != "" {
		cfg.Game.Skin = *skinFlag
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// pickSkin keeps the requested skin when it is the default or has been unlocked
func pickSkin(requested string, owned []string) string {
	if requested == skin.DefaultID || slices.Contains(owned, requested) {
		return requested
	}
	log.Printf("dodger: skin %q locked, using %q", requested, skin.DefaultID)
	return skin.DefaultID
}

func newHost(cfg config.Config) (*host, error) {
	mode, err := sim.ParseMode(cfg.Game.Mode, *seedFlag)
	if err != nil {
		return nil, err
	}
	if cfg.Game.Difficulty > 0 {
		mode.BaseDifficulty = cfg.Game.Difficulty
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("screen init: %w", err)
	}
	core.SetCrashHook(screen.Fini)

	h := &host{
		screen:   screen,
		cfg:      cfg,
		mode:     mode,
		registry: status.NewRegistry(),
		input:    newKeyInput(nil),
		renderer: render.NewTerminalRenderer(screen),
	}
	h.showMetrics.Store(*debugFlag)
	h.router = event.NewRouter(h.registry.Ints.Get("event.handler_failures"))

	haptics := audio.HapticFunc(func(level audio.HapticLevel) {
		if level >= audio.HapticMedium {
			screen.Beep()
		}
	})
	h.audio = audio.NewEngine(cfg.AudioConfig(), nil, haptics, nil, h.registry)

	store := progression.NewJSONFileStore(cfg.DataDir)
	h.tracker = progression.NewTracker(store, progression.UnlockFunc(h.onUnlock), h.registry)
	h.skin = skin.Resolve(pickSkin(cfg.Game.Skin, h.tracker.Cosmetics()))

	h.audioSys = system.NewAudioSystem(h.audio)
	h.musicSys = system.NewMusicSystem(h.audio)
	h.shake = system.NewShakeSystem()
	h.popups = system.NewPopupSystem(popupLimit)
	system.Register(h.router, h.tracker, h.audioSys, h.musicSys, h.shake, h.popups)

	h.frames = engine.NewFrameLoop(h.newRun(), nil, engine.FrameConfig{
		Interval: cfg.Game.FrameInterval,
		Input:    h.input,
		OnFrame:  h.draw,
		NewRun: func() (*sim.Loop, error) {
			return h.newRun(), nil
		},
		Registry: h.registry,
	})
	return h, nil
}

func (h *host) newRun() *sim.Loop {
	return sim.NewLoop(sim.Options{
		Mode:       h.mode,
		Skin:       h.skin,
		Difficulty: difficulty.DefaultConfig(),
		Router:     h.router,
		Registry:   h.registry,
	})
}

// onUnlock runs on the frame goroutine during event dispatch
func (h *host) onUnlock(a progression.Achievement) {
	h.toast = "unlocked: " + a.Name
	if a.Reward != "" {
		h.toast += " (skin " + skin.Resolve(a.Reward).Name + ")"
	}
	h.toastUntil = time.Now().Add(toastDuration)
	log.Printf("dodger: achievement %s unlocked", a.ID)
}

// draw is the frame callback: advance presentation effects and render
func (h *host) draw(l *sim.Loop) {
	now := time.Now()
	if !h.lastFrame.IsZero() && l.State() == sim.StateRunning {
		dt := now.Sub(h.lastFrame)
		h.shake.Update(dt)
		h.popups.Update(dt)
	}
	h.lastFrame = now

	ov := render.Overlay{Popups: h.popups.Popups()}
	ov.ShakeX, ov.ShakeY = h.shake.Offset()
	if now.Before(h.toastUntil) {
		ov.Toast = h.toast
	} else if h.input.Charging() {
		ov.Toast = "charging..."
	}
	if h.showMetrics.Load() {
		ov.Metrics = h.registry.Snapshot()
	}
	h.renderer.RenderFrame(l.Snapshot(), ov)
}

func (h *host) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		act, cmd := h.input.handleKey(ev.Key(), ev.Rune(), h.runState())
		switch act {
		case actionQuit:
			return false
		case actionCommand:
			h.frames.Send(cmd)
		case actionMute:
			on := h.muted.Load()
			h.muted.Store(!on)
			h.audioSys.SetEnabled(on)
			h.musicSys.SetEnabled(on)
		case actionMetrics:
			h.showMetrics.Store(!h.showMetrics.Load())
		}

	case *tcell.EventResize:
		h.screen.Sync()
	}

	return true
}

// runState reads the run state published by the frame goroutine
func (h *host) runState() sim.State {
	switch h.registry.Strings.Get("sim.state").Load() {
	case sim.StateRunning.String():
		return sim.StateRunning
	case sim.StatePaused.String():
		return sim.StatePaused
	case sim.StateGameOver.String():
		return sim.StateGameOver
	}
	return sim.StateIdle
}

func (h *host) run() {
	h.frames.Start()

	eventChan := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	for ev := range eventChan {
		if !h.handleInput(ev) {
			return
		}
	}
}

func (h *host) cleanup() {
	h.frames.Stop()

	l := h.frames.Loop()
	if s := l.State(); s == sim.StateRunning || s == sim.StatePaused {
		if err := l.End(); err == nil {
			h.audio.Wait(gameOverSting)
		}
	}
	if err := h.tracker.Save(); err != nil {
		log.Printf("dodger: save profile: %v", err)
	}

	h.audio.Close()
	h.screen.Fini()
	core.SetCrashHook(nil)
}
