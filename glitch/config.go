package glitch

import (
	"errors"
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultGlitchChars is the substitution alphabet used when none is configured
const DefaultGlitchChars = "!@#$%^&*()_+:,.?/~`|"

// ErrInvalidConfig wraps every configuration validation failure
var ErrInvalidConfig = errors.New("invalid glitch config")

// Config controls glitch timing, reach and appearance
// Geometric values are in surface units, see surface.CellWidth
type Config struct {
	ActiveColor string // Hex highlight color for substituted glyphs

	RippleRadius float64       // Hover ripple reach
	RippleWindow time.Duration // Time a hover ripple is spread over

	MaxGlitchIterations int           // Substitution ticks per cycle
	GlitchSpeed         time.Duration // Interval between ticks
	GlitchChars         string        // Substitution alphabet

	EnableRandomGlitch        bool
	RandomGlitchInterval      time.Duration // Ambient driver period
	RandomGlitchChance        float64       // Per-tick firing probability in [0,1]
	RandomGlitchRippleDivisor float64       // Ambient radius = RippleRadius / divisor
	RandomGlitchFollowDelay   time.Duration // Per-rank delay of ambient ripples
}

// DefaultConfig returns the stock configuration
func DefaultConfig() Config {
	return Config{
		ActiveColor:               "#fff",
		RippleRadius:              25,
		RippleWindow:              500 * time.Millisecond,
		MaxGlitchIterations:       4,
		GlitchSpeed:               120 * time.Millisecond,
		GlitchChars:               DefaultGlitchChars,
		EnableRandomGlitch:        true,
		RandomGlitchInterval:      120 * time.Millisecond,
		RandomGlitchChance:        0.1,
		RandomGlitchRippleDivisor: 1.2,
		RandomGlitchFollowDelay:   80 * time.Millisecond,
	}
}

// Validate reports the first invalid field
func (c Config) Validate() error {
	if c.GlitchChars == "" || !utf8.ValidString(c.GlitchChars) {
		return fmt.Errorf("%w: glitch chars must be a non-empty UTF-8 string", ErrInvalidConfig)
	}
	if c.MaxGlitchIterations <= 0 {
		return fmt.Errorf("%w: max glitch iterations must be positive, got %d", ErrInvalidConfig, c.MaxGlitchIterations)
	}
	if c.GlitchSpeed <= 0 {
		return fmt.Errorf("%w: glitch speed must be positive, got %v", ErrInvalidConfig, c.GlitchSpeed)
	}
	if !(c.RippleRadius >= 0) || math.IsInf(c.RippleRadius, 0) {
		return fmt.Errorf("%w: ripple radius must be finite and non-negative, got %v", ErrInvalidConfig, c.RippleRadius)
	}
	if c.RippleWindow < 0 {
		return fmt.Errorf("%w: ripple window must not be negative, got %v", ErrInvalidConfig, c.RippleWindow)
	}
	if c.EnableRandomGlitch && c.RandomGlitchInterval <= 0 {
		return fmt.Errorf("%w: random glitch interval must be positive, got %v", ErrInvalidConfig, c.RandomGlitchInterval)
	}
	if !(c.RandomGlitchChance >= 0 && c.RandomGlitchChance <= 1) {
		return fmt.Errorf("%w: random glitch chance must be within [0,1], got %v", ErrInvalidConfig, c.RandomGlitchChance)
	}
	if !(c.RandomGlitchRippleDivisor > 0) {
		return fmt.Errorf("%w: random glitch ripple divisor must be positive, got %v", ErrInvalidConfig, c.RandomGlitchRippleDivisor)
	}
	if c.RandomGlitchFollowDelay < 0 {
		return fmt.Errorf("%w: random glitch follow delay must not be negative, got %v", ErrInvalidConfig, c.RandomGlitchFollowDelay)
	}
	if _, err := ParseColor(c.ActiveColor); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// ParseColor parses #rgb or #rrggbb
func ParseColor(s string) (colorful.Color, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("active color %q: %w", s, err)
	}
	return col, nil
}
