package clock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrLoopRunning is returned when Run is called on a loop that is already running
var ErrLoopRunning = errors.New("clock: loop already running")

// DefaultQueueSize is the task queue capacity used by NewLoop when size <= 0
const DefaultQueueSize = 256

// Loop executes posted callbacks on the goroutine that calls Run
// Timer goroutines only enqueue, so all task bodies are serialized
type Loop struct {
	queue chan func()

	stopChan chan struct{}
	stopOnce sync.Once
	running  atomic.Bool

	// Invoked with the recovered value when a task panics; nil re-panics
	crashHandler func(r any)

	executed atomic.Uint64
}

// NewLoop creates a loop with the given queue capacity
func NewLoop(size int) *Loop {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Loop{
		queue:    make(chan func(), size),
		stopChan: make(chan struct{}),
	}
}

// SetCrashHandler installs the panic handler for task bodies, must be called before Run
func (l *Loop) SetCrashHandler(fn func(r any)) {
	l.crashHandler = fn
}

// Post enqueues fn for execution on the loop goroutine
// Blocks while the queue is full; returns false once the loop is stopped
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.stopChan:
		return false
	default:
	}

	select {
	case l.queue <- fn:
		return true
	case <-l.stopChan:
		return false
	}
}

// AfterFunc runs fn on the loop once d has elapsed
func (l *Loop) AfterFunc(d time.Duration, fn func()) Handle {
	if l.stopped() {
		return nopHandle{}
	}

	t := &loopTask{fn: fn}
	t.mu.Lock()
	t.timer = time.AfterFunc(d, func() { l.Post(t.run) })
	t.mu.Unlock()
	return t
}

// Every runs fn on the loop every d until the handle is stopped
// Ticks are not queued behind a busy loop; late ticks are dropped by the ticker
func (l *Loop) Every(d time.Duration, fn func()) Handle {
	if l.stopped() {
		return nopHandle{}
	}

	t := &loopTask{fn: fn, done: make(chan struct{})}
	ticker := time.NewTicker(d)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				select {
				case l.queue <- t.run:
				case <-t.done:
					return
				case <-l.stopChan:
					return
				}
			case <-t.done:
				return
			case <-l.stopChan:
				return
			}
		}
	}()

	return t
}

// Run executes tasks until ctx is cancelled or Stop is called
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer l.running.Store(false)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stopChan:
			return nil
		case fn := <-l.queue:
			l.Exec(fn)
		}
	}
}

// Stop terminates Run and refuses further tasks
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
	})
}

// Done is closed once Stop has been called
func (l *Loop) Done() <-chan struct{} {
	return l.stopChan
}

// Executed returns the number of task bodies run so far
func (l *Loop) Executed() uint64 {
	return l.executed.Load()
}

func (l *Loop) stopped() bool {
	select {
	case <-l.stopChan:
		return true
	default:
		return false
	}
}

// C exposes the task queue to hosts that drive their own event loop
// Each received task must be passed to Exec; do not combine with Run
func (l *Loop) C() <-chan func() {
	return l.queue
}

// Go runs fn on a new goroutine with the loop's crash handling
// Use this instead of the 'go' keyword for producers feeding the loop
func (l *Loop) Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				if l.crashHandler == nil {
					panic(r)
				}
				l.crashHandler(r)
			}
		}()
		fn()
	}()
}

// Exec runs a task body with crash handling
func (l *Loop) Exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if l.crashHandler == nil {
				panic(r)
			}
			l.crashHandler(r)
		}
	}()
	l.executed.Add(1)
	fn()
}

// loopTask is the handle for Loop tasks
// The stopped flag is checked on the loop goroutine, so a callback already
// sitting in the queue is still suppressed after Stop
type loopTask struct {
	fn      func()
	stopped atomic.Bool

	mu    sync.Mutex
	timer *time.Timer   // One-shot tasks
	done  chan struct{} // Periodic tasks
}

func (t *loopTask) run() {
	if t.stopped.Load() {
		return
	}
	if t.done == nil {
		// One-shot: mark consumed so a later Stop reports false
		t.stopped.Store(true)
	}
	t.fn()
}

func (t *loopTask) Stop() bool {
	if !t.stopped.CompareAndSwap(false, true) {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
	if t.done != nil {
		close(t.done)
	}
	return true
}
