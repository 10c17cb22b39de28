// Package sim runs the siren controller on the host. A single dispatcher
// goroutine plays the interrupt context, a time.AfterFunc plays the periodic
// timer and the oscillator just records what it was told.
package sim

import "sync"

// IRQ is a simulated interrupt line. Pend latches a request; while the line
// is enabled the dispatcher goroutine runs the handler once per latched
// request. The handler never runs concurrently with itself.
type IRQ struct {
	handler func()

	mu      sync.Mutex
	enabled bool
	latched bool // pended while disabled, fires on Enable

	pending chan struct{}
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewIRQ starts a dispatcher for handler. The line starts disabled.
func NewIRQ(handler func()) *IRQ {
	i := &IRQ{
		handler: handler,
		pending: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	i.wg.Add(1)
	go i.dispatch()
	return i
}

// Pend raises the line. Requests arriving while one is already pending
// merge into it, as on an interrupt controller.
func (i *IRQ) Pend() {
	select {
	case i.pending <- struct{}{}:
	default:
	}
}

// Enable unmasks the line, delivering a request latched while masked
func (i *IRQ) Enable() {
	i.mu.Lock()
	i.enabled = true
	latched := i.latched
	i.latched = false
	i.mu.Unlock()

	if latched {
		i.Pend()
	}
}

// Disable masks the line. A request arriving while masked is kept.
func (i *IRQ) Disable() {
	i.mu.Lock()
	i.enabled = false
	i.mu.Unlock()
}

// Enabled reports whether the line is unmasked
func (i *IRQ) Enabled() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.enabled
}

// Close stops the dispatcher and waits for a running handler to return
func (i *IRQ) Close() {
	close(i.done)
	i.wg.Wait()
}

func (i *IRQ) dispatch() {
	defer i.wg.Done()
	for {
		select {
		case <-i.done:
			return
		case <-i.pending:
		}

		i.mu.Lock()
		run := i.enabled
		if !run {
			i.latched = true
		}
		i.mu.Unlock()

		if run {
			i.handler()
		}
	}
}
