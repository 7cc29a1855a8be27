package glitch

import (
	"sort"

	"github.com/lixenwraith/ascii-glitch/clock"
)

// lifecycle tracks everything Dispose has to undo
type lifecycle struct {
	subscriptions []func()
	ambient       clock.Handle

	pending map[uint64]clock.Handle // Ripple one-shots not yet fired
	seq     uint64

	cycles map[int]*cycle // Live glitch cycles by cell index

	disposed bool
}

func (l *lifecycle) init() {
	l.pending = make(map[uint64]clock.Handle)
	l.cycles = make(map[int]*cycle)
}

func (l *lifecycle) subscribe(unsubscribe func()) {
	if unsubscribe != nil {
		l.subscriptions = append(l.subscriptions, unsubscribe)
	}
}

func (l *lifecycle) nextID() uint64 {
	l.seq++
	return l.seq
}

func (l *lifecycle) forget(id uint64) {
	delete(l.pending, id)
}

// Dispose stops the ambient driver, removes hover subscriptions, cancels pending
// ripple glitches and snaps every glitching cell back to Idle
// Safe to call repeatedly and on a zero Engine
func (e *Engine) Dispose() {
	l := &e.life
	if l.disposed {
		return
	}
	l.disposed = true

	if l.ambient != nil {
		l.ambient.Stop()
		l.ambient = nil
	}

	for _, unsubscribe := range l.subscriptions {
		unsubscribe()
	}
	l.subscriptions = nil

	for id, h := range l.pending {
		h.Stop()
		delete(l.pending, id)
	}

	// Settle in cell order so element updates are deterministic
	indices := make([]int, 0, len(l.cycles))
	for idx := range l.cycles {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	for _, idx := range indices {
		cy := l.cycles[idx]
		cy.handle.Stop()
		settle(cy)
		delete(l.cycles, idx)
	}

	if e.statDisposed != nil {
		e.statDisposed.Store(true)
	}
	if e.log != nil {
		e.log.Info("glitch engine disposed", "cancelled_cycles", len(indices))
	}
}
