package glitch

import "time"

// ambientTick fires a reduced ripple on a random cell with probability RandomGlitchChance
func (e *Engine) ambientTick() {
	e.statAmbientTicks.Add(1)

	if len(e.cells) == 0 || e.life.disposed {
		return
	}
	if e.rng.Float64() >= e.cfg.RandomGlitchChance {
		return
	}

	source := e.cells[e.rng.Intn(len(e.cells))]
	e.statAmbientFired.Add(1)

	follow := e.cfg.RandomGlitchFollowDelay
	e.ripple(OriginAmbient, source, e.cfg.RippleRadius/e.cfg.RandomGlitchRippleDivisor, func(int) time.Duration {
		return follow
	})
}
