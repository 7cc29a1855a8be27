package glitch

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/ascii-glitch/cell"
	"github.com/lixenwraith/ascii-glitch/clock"
	"github.com/lixenwraith/ascii-glitch/proximity"
	"github.com/lixenwraith/ascii-glitch/status"
)

var (
	ErrNoSurface      = errors.New("glitch: no render surface")
	ErrNoScheduler    = errors.New("glitch: no scheduler")
	ErrNoText         = errors.New("glitch: no text")
	ErrLayoutMismatch = errors.New("glitch: surface returned wrong element count")
)

// Engine owns the cell set and all scheduled glitch work
type Engine struct {
	cfg    Config
	color  colorful.Color
	glyphs []rune

	surface  Surface
	sched    clock.Scheduler
	rng      *rand.Rand
	log      *slog.Logger
	metrics  *status.Registry
	hook     func(Ripple)
	cells    []*cell.Cell
	elements []Element
	index    *proximity.Index

	life lifecycle

	// Cached metric pointers
	statCycles       *atomic.Int64
	statRejected     *atomic.Int64
	statRipples      *atomic.Int64
	statScheduled    *atomic.Int64
	statAmbientTicks *atomic.Int64
	statAmbientFired *atomic.Int64
	statDisposed     *atomic.Bool
}

// Option customizes an Engine
type Option func(*Engine)

// WithRand injects the random source used for glyph and ambient selection
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		if r != nil {
			e.rng = r
		}
	}
}

// WithLogger sets the engine logger; the default discards everything
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithMetrics publishes engine counters into r
func WithMetrics(r *status.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.metrics = r
		}
	}
}

// WithRippleHook calls fn after every ripple has been scheduled
func WithRippleHook(fn func(Ripple)) Option {
	return func(e *Engine) {
		e.hook = fn
	}
}

// Init starts an engine and returns its dispose function
// Any failure is logged and yields a no-op dispose; the effect is cosmetic and never fatal to the host
func Init(s Surface, sched clock.Scheduler, text string, cfg Config, opts ...Option) (dispose func()) {
	e := newEngine(opts)
	if err := e.attach(s, sched, text, cfg); err != nil {
		e.log.Warn("glitch engine not started", "error", err)
		return func() {}
	}
	return e.Dispose
}

// New starts an engine over text rendered by s
func New(s Surface, sched clock.Scheduler, text string, cfg Config, opts ...Option) (*Engine, error) {
	e := newEngine(opts)
	if err := e.attach(s, sched, text, cfg); err != nil {
		return nil, err
	}
	return e, nil
}

func newEngine(opts []Option) *Engine {
	e := &Engine{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.metrics == nil {
		e.metrics = status.NewRegistry()
	}

	e.statCycles = e.metrics.Ints.Get(status.GlitchCycles)
	e.statRejected = e.metrics.Ints.Get(status.GlitchRejected)
	e.statRipples = e.metrics.Ints.Get(status.RippleTriggered)
	e.statScheduled = e.metrics.Ints.Get(status.RippleScheduled)
	e.statAmbientTicks = e.metrics.Ints.Get(status.AmbientTicks)
	e.statAmbientFired = e.metrics.Ints.Get(status.AmbientFired)
	e.statDisposed = e.metrics.Bools.Get(status.EngineDisposed)
	return e
}

// attach validates inputs, lays out the cells, subscribes hovers and starts the ambient driver
func (e *Engine) attach(s Surface, sched clock.Scheduler, text string, cfg Config) error {
	if s == nil {
		return ErrNoSurface
	}
	if sched == nil {
		return ErrNoScheduler
	}
	if text == "" {
		return ErrNoText
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	e.cfg = cfg
	e.color, _ = ParseColor(cfg.ActiveColor)
	e.glyphs = []rune(cfg.GlitchChars)
	e.surface = s
	e.sched = sched

	e.cells = cell.FromText(text)
	elements, err := s.Layout(cell.Lines(e.cells, cell.LineCount(text)))
	if err != nil {
		return fmt.Errorf("surface layout: %w", err)
	}
	if len(elements) != len(e.cells) {
		return fmt.Errorf("%w: want %d, got %d", ErrLayoutMismatch, len(e.cells), len(elements))
	}
	e.elements = elements

	// One-time geometry snapshot
	for i, c := range e.cells {
		c.Measure(elements[i].Measure())
	}
	e.index = proximity.NewIndex(e.cells)

	e.life.init()
	for i, c := range e.cells {
		e.life.subscribe(elements[i].OnPointerEnter(func() { e.onPointerEnter(c) }))
	}

	if cfg.EnableRandomGlitch {
		e.life.ambient = sched.Every(cfg.RandomGlitchInterval, e.ambientTick)
	}

	e.log.Info("glitch engine started",
		"cells", len(e.cells),
		"radius", cfg.RippleRadius,
		"ambient", cfg.EnableRandomGlitch,
	)
	return nil
}

// Cells returns the engine's cells in line then column order
func (e *Engine) Cells() []*cell.Cell {
	return e.cells
}

// CellAt returns the cell at a logical position, or nil
func (e *Engine) CellAt(line, column int) *cell.Cell {
	for _, c := range e.cells {
		if c.Line == line && c.Column == column {
			return c
		}
	}
	return nil
}

// Config returns the active configuration
func (e *Engine) Config() Config {
	return e.cfg
}

// Metrics returns the registry the engine publishes into
func (e *Engine) Metrics() *status.Registry {
	return e.metrics
}

// Glitching returns the number of cells currently mid-cycle
func (e *Engine) Glitching() int {
	return len(e.life.cycles)
}

// Disposed reports whether Dispose has run
func (e *Engine) Disposed() bool {
	return e.life.disposed
}
