package clock

import (
	"container/heap"
	"sync"
	"time"
)

// Manual is a virtual-time scheduler for deterministic tests
// Tasks run synchronously inside Advance, ordered by due time then creation order
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	seq   uint64
	queue manualQueue
}

// NewManual creates a manual clock starting at start
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current virtual time
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc schedules fn at now+d
func (m *Manual) AfterFunc(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	t := &manualTask{fn: fn}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.push(t, m.now.Add(d))
	return t
}

// Every schedules fn at now+d, now+2d, ... until stopped
func (m *Manual) Every(d time.Duration, fn func()) Handle {
	if d <= 0 {
		panic("clock: non-positive interval for Every")
	}
	t := &manualTask{fn: fn, period: d}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.push(t, m.now.Add(d))
	return t
}

// Advance moves virtual time forward by d, running every task that falls due
// Tasks scheduled by running tasks are honoured if they fall inside the window
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		if m.queue.Len() == 0 || m.queue[0].due.After(target) {
			m.now = target
			m.mu.Unlock()
			return
		}

		entry := heap.Pop(&m.queue).(*manualEntry)
		m.now = entry.due
		t := entry.task
		if t.stopped {
			m.mu.Unlock()
			continue
		}
		if t.period > 0 {
			m.push(t, entry.due.Add(t.period))
		} else {
			t.stopped = true
		}
		m.mu.Unlock()

		t.fn()
	}
}

// Pending returns the number of live scheduled tasks
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, e := range m.queue {
		if !e.task.stopped {
			n++
		}
	}
	return n
}

// push must be called with mu held
func (m *Manual) push(t *manualTask, due time.Time) {
	t.owner = m
	heap.Push(&m.queue, &manualEntry{due: due, seq: m.seq, task: t})
	m.seq++
}

type manualTask struct {
	fn      func()
	period  time.Duration
	stopped bool
	owner   *Manual
}

func (t *manualTask) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()

	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

type manualEntry struct {
	due  time.Time
	seq  uint64
	task *manualTask
}

// manualQueue is a min-heap on (due, seq)
type manualQueue []*manualEntry

func (q manualQueue) Len() int { return len(q) }

func (q manualQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}

func (q manualQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *manualQueue) Push(x any) { *q = append(*q, x.(*manualEntry)) }

func (q *manualQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}
