package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/dodger/audio"
	"github.com/lixenwraith/dodger/parameter"
	"github.com/lixenwraith/dodger/skin"
)

// ErrInvalidConfig is wrapped by every validation and override failure
var ErrInvalidConfig = errors.New("invalid config")

// Environment overrides
const (
	EnvAudioEnabled = "DODGER_AUDIO_ENABLED"
	EnvMasterVolume = "DODGER_MASTER_VOLUME" // 0-100
	EnvHaptics      = "DODGER_HAPTICS"
	EnvDataDir      = "DODGER_DATA_DIR"
)

// Audio is the audio section
type Audio struct {
	Enabled      bool    `yaml:"enabled"`
	Haptics      bool    `yaml:"haptics"`
	MasterVolume float64 `yaml:"master_volume"`
	MusicVolume  float64 `yaml:"music_volume"`
	EffectVolume float64 `yaml:"effect_volume"`
	SampleRate   int     `yaml:"sample_rate"`
}

// Game is the gameplay section
type Game struct {
	Mode          string        `yaml:"mode"`
	Skin          string        `yaml:"skin"`
	Difficulty    float64       `yaml:"difficulty"` // Starting level, 0 uses the mode default
	FrameInterval time.Duration `yaml:"frame_interval"`
}

// Config is the host configuration
type Config struct {
	Audio   Audio  `yaml:"audio"`
	Game    Game   `yaml:"game"`
	DataDir string `yaml:"data_dir"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Audio: Audio{
			Enabled:      true,
			Haptics:      true,
			MasterVolume: parameter.DefaultMasterVolume,
			MusicVolume:  parameter.DefaultMusicVolume,
			EffectVolume: parameter.DefaultEffectVolume,
			SampleRate:   parameter.AudioSampleRate,
		},
		Game: Game{
			Mode:          "classic",
			Skin:          skin.DefaultID,
			FrameInterval: parameter.FrameUpdateInterval,
		},
		DataDir: "data",
	}
}

// Load reads path over the defaults; a missing file yields the defaults
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ApplyEnv applies overrides from lookup, typically os.LookupEnv
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAudioEnabled); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvAudioEnabled, v)
		}
		c.Audio.Enabled = b
	}
	if v, ok := lookup(EnvHaptics); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvHaptics, v)
		}
		c.Audio.Haptics = b
	}
	if v, ok := lookup(EnvMasterVolume); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 0 || n > 100 {
			return fmt.Errorf("%w: %s=%q, want 0-100", ErrInvalidConfig, EnvMasterVolume, v)
		}
		c.Audio.MasterVolume = float64(n) / 100
	}
	if v, ok := lookup(EnvDataDir); ok && v != "" {
		c.DataDir = v
	}
	return nil
}

// Validate rejects out-of-range values
func (c Config) Validate() error {
	vols := []struct {
		name string
		v    float64
	}{
		{"audio.master_volume", c.Audio.MasterVolume},
		{"audio.music_volume", c.Audio.MusicVolume},
		{"audio.effect_volume", c.Audio.EffectVolume},
	}
	for _, vol := range vols {
		if math.IsNaN(vol.v) || vol.v < 0 || vol.v > 1 {
			return fmt.Errorf("%w: %s %v outside [0,1]", ErrInvalidConfig, vol.name, vol.v)
		}
	}
	if c.Audio.SampleRate < 8000 || c.Audio.SampleRate > 192000 {
		return fmt.Errorf("%w: audio.sample_rate %d", ErrInvalidConfig, c.Audio.SampleRate)
	}
	if c.Game.Difficulty != 0 &&
		(c.Game.Difficulty < parameter.DifficultyFloor || c.Game.Difficulty > parameter.DifficultyCeiling) {
		return fmt.Errorf("%w: game.difficulty %v outside [%v,%v]", ErrInvalidConfig,
			c.Game.Difficulty, parameter.DifficultyFloor, parameter.DifficultyCeiling)
	}
	if c.Game.FrameInterval < time.Millisecond || c.Game.FrameInterval > parameter.MaxFrameDelta {
		return fmt.Errorf("%w: game.frame_interval %v", ErrInvalidConfig, c.Game.FrameInterval)
	}
	if !skin.Known(c.Game.Skin) {
		return fmt.Errorf("%w: unknown skin %q", ErrInvalidConfig, c.Game.Skin)
	}
	if c.DataDir == "" {
		return fmt.Errorf("%w: data_dir empty", ErrInvalidConfig)
	}
	return nil
}

// AudioConfig converts the audio section for the engine
func (c Config) AudioConfig() audio.AudioConfig {
	return audio.AudioConfig{
		Enabled:      c.Audio.Enabled,
		Haptics:      c.Audio.Haptics,
		MasterVolume: c.Audio.MasterVolume,
		MusicVolume:  c.Audio.MusicVolume,
		EffectVolume: c.Audio.EffectVolume,
		SampleRate:   c.Audio.SampleRate,
	}
}
