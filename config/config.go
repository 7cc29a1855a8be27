// Package config loads glitch engine settings from YAML or TOML files and the environment
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/ascii-glitch/glitch"
)

// ErrUnsupportedFormat is returned for config files that are neither YAML nor TOML
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Duration is a time.Duration written as a Go duration string ("120ms")
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// File mirrors glitch.Config; unset fields keep their defaults
type File struct {
	ActiveColor  *string   `yaml:"active_color" toml:"active_color"`
	RippleRadius *float64  `yaml:"ripple_radius" toml:"ripple_radius"`
	RippleWindow *Duration `yaml:"ripple_window" toml:"ripple_window"`

	MaxGlitchIterations *int      `yaml:"max_glitch_iterations" toml:"max_glitch_iterations"`
	GlitchSpeed         *Duration `yaml:"glitch_speed" toml:"glitch_speed"`
	GlitchChars         *string   `yaml:"glitch_chars" toml:"glitch_chars"`

	EnableRandomGlitch        *bool     `yaml:"enable_random_glitch" toml:"enable_random_glitch"`
	RandomGlitchInterval      *Duration `yaml:"random_glitch_interval" toml:"random_glitch_interval"`
	RandomGlitchChance        *float64  `yaml:"random_glitch_chance" toml:"random_glitch_chance"`
	RandomGlitchRippleDivisor *float64  `yaml:"random_glitch_ripple_divisor" toml:"random_glitch_ripple_divisor"`
	RandomGlitchFollowDelay   *Duration `yaml:"random_glitch_follow_delay" toml:"random_glitch_follow_delay"`
}

// Apply overlays the set fields of f onto cfg
func (f *File) Apply(cfg *glitch.Config) {
	if f.ActiveColor != nil {
		cfg.ActiveColor = *f.ActiveColor
	}
	if f.RippleRadius != nil {
		cfg.RippleRadius = *f.RippleRadius
	}
	if f.RippleWindow != nil {
		cfg.RippleWindow = time.Duration(*f.RippleWindow)
	}
	if f.MaxGlitchIterations != nil {
		cfg.MaxGlitchIterations = *f.MaxGlitchIterations
	}
	if f.GlitchSpeed != nil {
		cfg.GlitchSpeed = time.Duration(*f.GlitchSpeed)
	}
	if f.GlitchChars != nil {
		cfg.GlitchChars = *f.GlitchChars
	}
	if f.EnableRandomGlitch != nil {
		cfg.EnableRandomGlitch = *f.EnableRandomGlitch
	}
	if f.RandomGlitchInterval != nil {
		cfg.RandomGlitchInterval = time.Duration(*f.RandomGlitchInterval)
	}
	if f.RandomGlitchChance != nil {
		cfg.RandomGlitchChance = *f.RandomGlitchChance
	}
	if f.RandomGlitchRippleDivisor != nil {
		cfg.RandomGlitchRippleDivisor = *f.RandomGlitchRippleDivisor
	}
	if f.RandomGlitchFollowDelay != nil {
		cfg.RandomGlitchFollowDelay = time.Duration(*f.RandomGlitchFollowDelay)
	}
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "ascii-glitch", "config.yaml")
}

// Load builds a validated config from defaults, the file at path and the environment
// An empty path means DefaultPath, which may be absent; an explicit path must exist
func Load(path string) (glitch.Config, error) {
	cfg := glitch.DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		f, err := Decode(path, data)
		if err != nil {
			return cfg, err
		}
		f.Apply(&cfg)
	case os.IsNotExist(err) && !explicit:
		// Defaults only
	default:
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses data according to the extension of path
func Decode(path string, data []byte) (*File, error) {
	var f File

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	return &f, nil
}
