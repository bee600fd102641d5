package backdrop

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

//go:embed assets/default.yaml
var defaultConfigYAML []byte

// EnvPrefix prefixes every environment override, e.g. BACKDROP_INTERVAL=8s.
const EnvPrefix = "BACKDROP_"

// Config describes one page: window, assets, timings and flags.
type Config struct {
	Title  string `yaml:"title" env:"TITLE"`
	Width  int    `yaml:"width" env:"WIDTH"`
	Height int    `yaml:"height" env:"HEIGHT"`

	// Hero is the central image. Empty leaves the hero out.
	Hero string `yaml:"hero" env:"HERO"`
	// Images feeds the carousel. Empty disables it.
	Images []string `yaml:"images" env:"IMAGES" envSeparator:","`
	Quotes []string `yaml:"quotes" env:"QUOTES" envSeparator:"|"`

	Interval     time.Duration `yaml:"interval" env:"INTERVAL"`
	FadeDuration time.Duration `yaml:"fade_duration" env:"FADE_DURATION"`

	ReducedMotion   bool   `yaml:"reduced_motion" env:"REDUCED_MOTION"`
	BackgroundCount int    `yaml:"background_count" env:"BACKGROUND_COUNT"`
	ShowFPS         bool   `yaml:"show_fps" env:"SHOW_FPS"`
	LogLevel        string `yaml:"log_level" env:"LOG_LEVEL"`
	// Seed fixes the random source. Zero picks a random seed.
	Seed uint64 `yaml:"seed" env:"SEED"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultConfigYAML, &cfg); err != nil {
		panic(fmt.Sprintf("backdrop: embedded default config: %v", err))
	}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig layers the file at path (if any) over the defaults, then
// applies BACKDROP_* environment overrides. Fields absent from the file keep
// their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("backdrop: read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("backdrop: parse config %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("backdrop: parse env: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults replaces degenerate values instead of rejecting them.
func (c *Config) applyDefaults() {
	if c.Title == "" {
		c.Title = "backdrop"
	}
	if c.Width <= 0 {
		c.Width = 1280
	}
	if c.Height <= 0 {
		c.Height = 720
	}
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.FadeDuration <= 0 {
		c.FadeDuration = DefaultFadeDuration
	}
	if c.BackgroundCount < 0 {
		c.BackgroundCount = 0
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
