package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func env(vals map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vals[k]
		return v, ok
	}
}

// TestDefaultValid verifies the built-in config passes validation
func TestDefaultValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Expected default config valid, got %v", err)
	}
}

// TestLoadMissingFile verifies a missing file yields defaults
func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg != Default() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

// TestLoadOverlaysDefaults verifies partial YAML keeps unspecified defaults
func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dodger.yaml")
	doc := "audio:\n  music_volume: 0.25\ngame:\n  mode: timetrial\n  frame_interval: 20ms\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Audio.MusicVolume != 0.25 {
		t.Errorf("Expected music volume 0.25, got %v", cfg.Audio.MusicVolume)
	}
	if cfg.Game.Mode != "timetrial" {
		t.Errorf("Expected mode timetrial, got %q", cfg.Game.Mode)
	}
	if cfg.Game.FrameInterval != 20*time.Millisecond {
		t.Errorf("Expected 20ms frames, got %v", cfg.Game.FrameInterval)
	}
	if cfg.Audio.MasterVolume != Default().Audio.MasterVolume {
		t.Errorf("Expected default master volume kept, got %v", cfg.Audio.MasterVolume)
	}
}

// TestLoadMalformed verifies parse errors wrap ErrInvalidConfig
func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("audio: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

// TestSaveRoundTrip verifies a saved config loads back unchanged
func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dodger.yaml")
	cfg := Default()
	cfg.Game.Skin = "ember"
	cfg.Game.Difficulty = 1.5

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Expected save, got %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Expected load, got %v", err)
	}
	if got != cfg {
		t.Errorf("Expected %+v, got %+v", cfg, got)
	}
}

// TestApplyEnv verifies every override
func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(env(map[string]string{
		EnvAudioEnabled: "false",
		EnvHaptics:      "0",
		EnvMasterVolume: "40",
		EnvDataDir:      "/tmp/dodger",
	}))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Audio.Enabled || cfg.Audio.Haptics {
		t.Error("Expected audio and haptics disabled")
	}
	if cfg.Audio.MasterVolume != 0.4 {
		t.Errorf("Expected master volume 0.4, got %v", cfg.Audio.MasterVolume)
	}
	if cfg.DataDir != "/tmp/dodger" {
		t.Errorf("Expected data dir override, got %q", cfg.DataDir)
	}
}

// TestApplyEnvRejects verifies malformed overrides
func TestApplyEnvRejects(t *testing.T) {
	tests := map[string]string{
		EnvAudioEnabled: "maybe",
		EnvHaptics:      "loud",
		EnvMasterVolume: "101",
	}
	for k, v := range tests {
		cfg := Default()
		if err := cfg.ApplyEnv(env(map[string]string{k: v})); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s=%s: expected ErrInvalidConfig, got %v", k, v, err)
		}
	}
}

// TestValidateRejects verifies range checks
func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"master volume", func(c *Config) { c.Audio.MasterVolume = 1.5 }},
		{"effect volume", func(c *Config) { c.Audio.EffectVolume = -0.1 }},
		{"sample rate", func(c *Config) { c.Audio.SampleRate = 100 }},
		{"difficulty", func(c *Config) { c.Game.Difficulty = 5 }},
		{"frame interval", func(c *Config) { c.Game.FrameInterval = time.Second }},
		{"skin", func(c *Config) { c.Game.Skin = "plaid" }},
		{"data dir", func(c *Config) { c.DataDir = "" }},
	}
	for _, tt := range tests {
		cfg := Default()
		tt.mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", tt.name, err)
		}
	}
}

// TestAudioConfig verifies the section maps onto the engine config
func TestAudioConfig(t *testing.T) {
	cfg := Default()
	cfg.Audio.EffectVolume = 0.3
	ac := cfg.AudioConfig()
	if ac.EffectVolume != 0.3 || ac.SampleRate != cfg.Audio.SampleRate || !ac.Enabled {
		t.Errorf("Expected mapped audio config, got %+v", ac)
	}
}
