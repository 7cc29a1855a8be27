package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/lixenwraith/ascii-glitch/glitch"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "ASCII_GLITCH_"

// LookupFunc matches os.LookupEnv
type LookupFunc func(key string) (string, bool)

// ApplyEnv overlays ASCII_GLITCH_* variables onto cfg
// Unlike file values, malformed variables are reported rather than ignored
func ApplyEnv(cfg *glitch.Config, lookup LookupFunc) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}

	var firstErr error
	fail := func(name string, err error) {
		if firstErr == nil {
			firstErr = fmt.Errorf("env %s%s: %w", EnvPrefix, name, err)
		}
	}

	float := func(name string, dst *float64) {
		if v, ok := lookup(EnvPrefix + name); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				fail(name, err)
				return
			}
			*dst = f
		}
	}
	integer := func(name string, dst *int) {
		if v, ok := lookup(EnvPrefix + name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				fail(name, err)
				return
			}
			*dst = n
		}
	}
	duration := func(name string, dst *time.Duration) {
		if v, ok := lookup(EnvPrefix + name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				fail(name, err)
				return
			}
			*dst = d
		}
	}
	boolean := func(name string, dst *bool) {
		if v, ok := lookup(EnvPrefix + name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				fail(name, err)
				return
			}
			*dst = b
		}
	}

	str("ACTIVE_COLOR", &cfg.ActiveColor)
	float("RIPPLE_RADIUS", &cfg.RippleRadius)
	duration("RIPPLE_WINDOW", &cfg.RippleWindow)
	integer("MAX_GLITCH_ITERATIONS", &cfg.MaxGlitchIterations)
	duration("GLITCH_SPEED", &cfg.GlitchSpeed)
	str("GLITCH_CHARS", &cfg.GlitchChars)
	boolean("ENABLE_RANDOM_GLITCH", &cfg.EnableRandomGlitch)
	duration("RANDOM_GLITCH_INTERVAL", &cfg.RandomGlitchInterval)
	float("RANDOM_GLITCH_CHANCE", &cfg.RandomGlitchChance)
	float("RANDOM_GLITCH_RIPPLE_DIVISOR", &cfg.RandomGlitchRippleDivisor)
	duration("RANDOM_GLITCH_FOLLOW_DELAY", &cfg.RandomGlitchFollowDelay)

	return firstErr
}
