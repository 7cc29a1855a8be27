package glitch

import (
	"time"

	"github.com/lixenwraith/ascii-glitch/cell"
)

// Origin identifies what caused a ripple
type Origin uint8

const (
	OriginManual Origin = iota
	OriginHover
	OriginAmbient
)

func (o Origin) String() string {
	switch o {
	case OriginHover:
		return "hover"
	case OriginAmbient:
		return "ambient"
	default:
		return "manual"
	}
}

// Ripple describes a scheduled ripple, passed to the ripple hook
type Ripple struct {
	Origin    Origin
	Source    *cell.Cell
	Radius    float64
	Neighbors int
	Step      time.Duration // Delay between consecutive ranks
}

// RippleDelays returns the start delay of each of n neighbours for a ripple spread over window
func RippleDelays(n int, window time.Duration) []time.Duration {
	step := windowStep(n, window)
	delays := make([]time.Duration, n)
	for i := range delays {
		delays[i] = time.Duration(i) * step
	}
	return delays
}

func windowStep(n int, window time.Duration) time.Duration {
	return window / time.Duration(max(n, 1))
}

// TriggerRipple glitches source now and its neighbours within radius staggered across window
// Returns the number of neighbours scheduled
func (e *Engine) TriggerRipple(source *cell.Cell, radius float64, window time.Duration) int {
	return e.ripple(OriginManual, source, radius, func(n int) time.Duration {
		return windowStep(n, window)
	})
}

// ripple glitches source synchronously and schedules neighbour i at i*step(n)
// All delays are relative to this call, never chained
func (e *Engine) ripple(origin Origin, source *cell.Cell, radius float64, step func(n int) time.Duration) int {
	if !e.owns(source) || e.life.disposed {
		return 0
	}

	e.Glitch(source)

	neighbors := e.index.Nearby(source, radius)
	s := step(len(neighbors))
	for i, c := range neighbors {
		e.glitchAfter(time.Duration(i)*s, c)
	}

	e.statRipples.Add(1)
	e.statScheduled.Add(int64(len(neighbors)))

	if e.hook != nil {
		e.hook(Ripple{
			Origin:    origin,
			Source:    source,
			Radius:    radius,
			Neighbors: len(neighbors),
			Step:      s,
		})
	}
	return len(neighbors)
}

// glitchAfter schedules a tracked one-shot glitch of c
func (e *Engine) glitchAfter(d time.Duration, c *cell.Cell) {
	id := e.life.nextID()
	h := e.sched.AfterFunc(d, func() {
		e.life.forget(id)
		e.Glitch(c)
	})
	e.life.pending[id] = h
}

func (e *Engine) onPointerEnter(c *cell.Cell) {
	e.ripple(OriginHover, c, e.cfg.RippleRadius, func(n int) time.Duration {
		return windowStep(n, e.cfg.RippleWindow)
	})
}
