package sim

import (
	"sync"
	"time"
)

// Pender is the interrupt line a Timer raises on expiry
type Pender interface {
	Pend()
}

// Timer is a one-shot compare timer in the style of the nRF TIMER with its
// COMPARE0_CLEAR and COMPARE0_STOP shortcuts: Start counts ticks once, then
// sets the compare event and, if its interrupt is enabled, pends irq.
type Timer struct {
	irq  Pender
	tick time.Duration

	mu        sync.Mutex
	interrupt bool
	event     bool
	running   *time.Timer
	gen       uint64 // invalidates expiries of superseded starts
	starts    int
}

// NewTimer returns a stopped timer whose ticks last tick each. A tick of
// time.Microsecond runs at the hardware rate.
func NewTimer(irq Pender, tick time.Duration) *Timer {
	return &Timer{irq: irq, tick: tick}
}

// EnableInterrupt lets the compare event raise the interrupt line
func (t *Timer) EnableInterrupt() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.interrupt = true
}

// DisableInterrupt stops the compare event from raising the interrupt line
// and cancels a count in progress.
func (t *Timer) DisableInterrupt() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.interrupt = false
	t.stopLocked()
}

// ResetEvent clears the compare event
func (t *Timer) ResetEvent() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.event = false
}

// Start counts ticks from zero, replacing any count in progress
func (t *Timer) Start(ticks uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.starts++
	gen := t.gen
	t.running = time.AfterFunc(time.Duration(ticks)*t.tick, func() {
		t.expire(gen)
	})
}

// EventPending reports whether the compare event is set
func (t *Timer) EventPending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.event
}

// Starts returns how many times the timer was started
func (t *Timer) Starts() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.starts
}

// Close cancels a count in progress
func (t *Timer) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *Timer) stopLocked() {
	t.gen++
	if t.running != nil {
		t.running.Stop()
		t.running = nil
	}
}

func (t *Timer) expire(gen uint64) {
	t.mu.Lock()
	if gen != t.gen {
		t.mu.Unlock()
		return
	}
	t.running = nil
	t.event = true
	fire := t.interrupt
	t.mu.Unlock()

	if fire {
		t.irq.Pend()
	}
}
