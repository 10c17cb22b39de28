package core

import (
	"sync/atomic"
	"time"

	"siren/protocol"
)

// ControllerState tracks where the siren is in its one-way lifecycle
type ControllerState uint32

const (
	StateIdle ControllerState = iota
	StateStarting
	StateArmed
	StateStopped // terminal, a reset is needed to sweep again
)

// Controller sequences the siren: setup in the main context, one sweep step
// per timer interrupt, and shutdown. The oscillator and timer handles are
// only reached through Shared, so the main context and the interrupt handler
// never touch them at the same time.
type Controller struct {
	sweep *Sweep
	osc   Shared[Oscillator]
	timer Shared[PeriodicTimer]
	irq   IRQLine

	state atomic.Uint32
	steps atomic.Uint32
}

// NewController returns an idle controller that will drive sweep.
func NewController(sweep *Sweep) *Controller {
	return &Controller{sweep: sweep}
}

// Start programs the oscillator to BaseFreq at 50% duty, installs both
// handles, arms the timer and finally unmasks irq. The interrupt can
// therefore never observe a missing handle. Start may be called only once.
func (c *Controller) Start(osc Oscillator, tmr PeriodicTimer, irq IRQLine) {
	if !c.state.CompareAndSwap(uint32(StateIdle), uint32(StateStarting)) {
		panic("core: controller started twice")
	}

	freq := c.sweep.Frequency()
	osc.SetPeriod(uint32(freq))
	osc.SetDuty(HalfDuty)
	osc.Enable()

	c.osc.Init(osc)
	c.timer.Init(tmr)
	c.irq = irq

	c.timer.WithLock(func(t PeriodicTimer) {
		c.state.Store(uint32(StateArmed))
		t.EnableInterrupt()
		t.ResetEvent()
		t.Start(ClockCyclesPerNote)
		RecordTiming(EvtStart, 0, freq, c.sweep.Direction())
	})

	irq.Enable()
}

// HandleInterrupt is the timer interrupt handler. It advances the sweep,
// reprograms the oscillator and re-arms the timer for the next period.
// The platform guarantees it never runs concurrently with itself.
func (c *Controller) HandleInterrupt() {
	var report protocol.StepReport

	stepped := With(&c.osc, func(osc Oscillator) bool {
		if c.State() != StateArmed {
			return false
		}
		before := c.sweep.Direction()
		freq, dir := c.sweep.Step()
		step := c.steps.Add(1)

		osc.SetPeriod(uint32(freq))
		osc.SetDuty(HalfDuty)

		RecordTiming(EvtStep, step, freq, dir)
		if dir != before {
			RecordTiming(EvtFlip, step, freq, dir)
		}
		report = protocol.StepReport{Step: step, Freq: freq, Dir: dir}
		return true
	})
	if !stepped {
		return
	}

	c.timer.WithLock(func(t PeriodicTimer) {
		t.ResetEvent()
		if c.State() == StateArmed {
			t.Start(ClockCyclesPerNote)
		}
	})

	ReportStep(report)
}

// Stop disables the timer interrupt and clears its pending event before
// silencing the oscillator, so no late interrupt steps a disabled output.
// Once Stop returns no further sweep steps occur.
func (c *Controller) Stop() {
	if !c.state.CompareAndSwap(uint32(StateArmed), uint32(StateStopped)) {
		panic("core: controller stopped while not armed")
	}

	c.timer.WithLock(func(t PeriodicTimer) {
		t.ResetEvent()
		t.DisableInterrupt()
	})
	c.irq.Disable()

	c.osc.WithLock(func(osc Oscillator) {
		osc.Disable()
		RecordTiming(EvtStop, c.steps.Load(), c.sweep.Frequency(), c.sweep.Direction())
	})
}

// Run starts the sweep, counts down CountdownSeconds with sleep between
// numbers, and stops it again.
func (c *Controller) Run(osc Oscillator, tmr PeriodicTimer, irq IRQLine, sleep func(time.Duration)) {
	c.Start(osc, tmr, irq)
	Countdown(CountdownSeconds, sleep)
	c.Stop()
}

// State returns the lifecycle state
func (c *Controller) State() ControllerState {
	return ControllerState(c.state.Load())
}

// Steps returns the number of sweep steps taken
func (c *Controller) Steps() uint32 {
	return c.steps.Load()
}

// Sweep returns the state machine the controller drives
func (c *Controller) Sweep() *Sweep {
	return c.sweep
}

func (s ControllerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateArmed:
		return "armed"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
