// Package clock provides scheduled tasks with cancellation handles
//
// Two schedulers are available:
//   - Loop: real timers whose callbacks are executed by a single consumer goroutine
//   - Manual: a virtual clock that runs due tasks synchronously on Advance
//
// Callers never observe callbacks running concurrently with each other,
// which lets state owned by those callbacks go unlocked.
package clock

import "time"

// Handle cancels a scheduled task
// Stop reports whether the call prevented further runs; stopping twice is safe
type Handle interface {
	Stop() bool
}

// Scheduler creates one-shot and periodic tasks
// Intervals passed to Every must be positive
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Handle
	Every(d time.Duration, fn func()) Handle
}

// nopHandle is returned for tasks refused by a stopped scheduler
type nopHandle struct{}

func (nopHandle) Stop() bool { return false }
