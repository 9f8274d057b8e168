package eventloop

import (
	"sync"
	"time"
)

// Immediate runs posted closures inline. Tests use it together with
// ManualClock to drive components deterministically.
type Immediate struct{}

func (Immediate) Post(fn func()) { fn() }

// ManualClock hands out timers that only fire when a test calls Fire.
type ManualClock struct {
	mu     sync.Mutex
	timers map[string]*ManualTimer
}

func NewManualClock() *ManualClock { return &ManualClock{timers: make(map[string]*ManualTimer)} }

func (c *ManualClock) NewTimer(name string, fire func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &ManualTimer{name: name, fire: fire}
	c.timers[name] = t
	return t
}

// Timer returns the timer registered under name, or nil.
func (c *ManualClock) Timer(name string) *ManualTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timers[name]
}

// ManualTimer records every period it was armed with.
type ManualTimer struct {
	name    string
	fire    func()
	active  bool
	period  time.Duration
	periods []time.Duration
	stops   int
}

func (t *ManualTimer) Start(d time.Duration) {
	t.active = true
	t.period = d
	t.periods = append(t.periods, d)
}

func (t *ManualTimer) Stop() {
	t.active = false
	t.stops++
}

func (t *ManualTimer) Active() bool { return t.active }

// Period is the period of the most recent Start.
func (t *ManualTimer) Period() time.Duration { return t.period }

// Periods lists every period passed to Start, oldest first.
func (t *ManualTimer) Periods() []time.Duration {
	return append([]time.Duration(nil), t.periods...)
}

// Fire runs the callback if the timer is armed and reports whether it did.
func (t *ManualTimer) Fire() bool {
	if !t.active {
		return false
	}
	t.fire()
	return true
}
