package surface

// Listeners is a pointer-enter subscription list for one element
// Not safe for concurrent use; surfaces emit on the engine goroutine
type Listeners struct {
	seq  int
	subs []listener
}

type listener struct {
	id int
	fn func()
}

// Add subscribes fn and returns its unsubscribe function
func (l *Listeners) Add(fn func()) func() {
	l.seq++
	id := l.seq
	l.subs = append(l.subs, listener{id: id, fn: fn})

	return func() {
		for i, s := range l.subs {
			if s.id == id {
				l.subs = append(l.subs[:i], l.subs[i+1:]...)
				return
			}
		}
	}
}

// Emit calls every subscriber in subscription order, returns the number called
func (l *Listeners) Emit() int {
	if len(l.subs) == 0 {
		return 0
	}
	snapshot := make([]listener, len(l.subs))
	copy(snapshot, l.subs)
	for _, s := range snapshot {
		s.fn()
	}
	return len(snapshot)
}

// Len returns the subscriber count
func (l *Listeners) Len() int {
	return len(l.subs)
}
