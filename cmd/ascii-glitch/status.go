package main

import (
	"fmt"

	"github.com/lixenwraith/ascii-glitch/status"
)

// statusLine summarizes engine counters for the footer
func statusLine(reg *status.Registry) string {
	m := reg.Snapshot()
	return fmt.Sprintf("cycles %d  rejected %d  ripples %d (+%d)  ambient %d/%d  [q] quit",
		m[status.GlitchCycles], m[status.GlitchRejected],
		m[status.RippleTriggered], m[status.RippleScheduled],
		m[status.AmbientFired], m[status.AmbientTicks])
}
