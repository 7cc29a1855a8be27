package status

// Engine metric names, grouped by component prefix
const (
	GlitchCycles   = "glitch.cycles"   // Cycles started
	GlitchRejected = "glitch.rejected" // Requests ignored because the cell was mid-cycle

	RippleTriggered = "ripple.triggered"
	RippleScheduled = "ripple.scheduled" // Neighbour glitches queued

	AmbientTicks = "ambient.ticks"
	AmbientFired = "ambient.fired"

	EngineDisposed = "engine.disposed"
)
