// Package glitch drives the ripple glitch effect over a grid of character cells.
//
// Components:
//   - Glitch state machine: one bounded cycle of random substitutions per cell
//   - Ripple scheduler: glitches a source cell and staggers its neighbours by distance rank
//   - Ambient driver: periodically ripples a random cell with a reduced radius
//   - Lifecycle: tracks subscriptions and tasks; Dispose cancels all of them
//
// The engine owns no goroutines. Every callback runs through the injected
// clock.Scheduler, and surfaces are expected to deliver pointer events on the
// same goroutine that executes scheduler tasks. Engine methods, including
// Dispose, must be called from that goroutine.
package glitch
