// Package eventloop serializes every state transition of the panel onto one
// goroutine. I/O goroutines, process waiters and timers never touch component
// state directly; they Post closures that the loop runs one at a time.
package eventloop

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Poster schedules fn to run on the loop goroutine.
type Poster interface {
	Post(fn func())
}

// Timer is a periodic, cancellable timer whose callback runs on the loop.
// Start re-arms it with a new period; Stop is idempotent.
type Timer interface {
	Start(d time.Duration)
	Stop()
	Active() bool
}

// Clock creates timers bound to a loop.
type Clock interface {
	NewTimer(name string, fire func()) Timer
}

// ErrStopped is returned by Call once the loop has exited.
var ErrStopped = errors.New("event loop stopped")

// Loop is an unbounded FIFO of closures drained by Run.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	done    chan struct{}
	stopped bool
}

func New() *Loop {
	return &Loop{wake: make(chan struct{}, 1), done: make(chan struct{})}
}

// Post never blocks, so it is safe from the loop goroutine itself.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run drains the queue until ctx is canceled.
func (l *Loop) Run(ctx context.Context) error {
	defer func() {
		l.mu.Lock()
		l.stopped = true
		l.queue = nil
		l.mu.Unlock()
		close(l.done)
	}()
	for {
		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()
		for _, fn := range batch {
			fn()
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
		if len(batch) > 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Done is closed after Run returns.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Call runs fn on the loop and waits for it to finish, or for ctx to expire.
// It must not be invoked from the loop goroutine.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	l.Post(func() {
		fn()
		close(finished)
	})
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NewTimer returns a stopped timer whose fire callback runs on l.
func (l *Loop) NewTimer(name string, fire func()) Timer {
	return &loopTimer{loop: l, name: name, fire: fire}
}

// loopTimer state is only touched on the loop goroutine. Each Start bumps the
// generation so a tick already queued by an older arming is discarded.
type loopTimer struct {
	loop   *Loop
	name   string
	fire   func()
	period time.Duration
	gen    uint64
	active bool
	t      *time.Timer
}

func (lt *loopTimer) Start(d time.Duration) {
	lt.Stop()
	lt.gen++
	lt.active = true
	lt.period = d
	lt.schedule(lt.gen)
}

func (lt *loopTimer) schedule(gen uint64) {
	lt.t = time.AfterFunc(lt.period, func() {
		lt.loop.Post(func() { lt.tick(gen) })
	})
}

func (lt *loopTimer) tick(gen uint64) {
	if !lt.active || gen != lt.gen {
		return
	}
	lt.schedule(gen)
	lt.fire()
}

func (lt *loopTimer) Stop() {
	if lt.t != nil {
		lt.t.Stop()
		lt.t = nil
	}
	lt.active = false
	lt.gen++
}

func (lt *loopTimer) Active() bool { return lt.active }
