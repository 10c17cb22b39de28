package sim

import (
	"time"

	"siren/core"
)

// Machine wires a controller to simulated hardware
type Machine struct {
	Controller *core.Controller
	IRQ        *IRQ
	Timer      *Timer
	Osc        *Oscillator

	tick time.Duration
}

// NewMachine builds a machine whose timer ticks last tick each. Sleep is
// scaled by the same factor, so the countdown keeps its ratio to the sweep.
func NewMachine(tick time.Duration) *Machine {
	c := core.NewController(core.NewSweep())
	irq := NewIRQ(c.HandleInterrupt)
	return &Machine{
		Controller: c,
		IRQ:        irq,
		Timer:      NewTimer(irq, tick),
		Osc:        NewOscillator(),
		tick:       tick,
	}
}

// Start starts the sweep without the countdown
func (m *Machine) Start() {
	m.Controller.Start(m.Osc, m.Timer, m.IRQ)
}

// Stop stops the sweep
func (m *Machine) Stop() {
	m.Controller.Stop()
}

// Run is the firmware's main: sweep for the length of the countdown
func (m *Machine) Run() {
	m.Controller.Run(m.Osc, m.Timer, m.IRQ, m.Sleep)
}

// Sleep waits d of simulated time
func (m *Machine) Sleep(d time.Duration) {
	time.Sleep(m.Scale(d))
}

// Scale converts simulated time to wall time
func (m *Machine) Scale(d time.Duration) time.Duration {
	ticks := core.TimerFromUS(uint32(d / time.Microsecond))
	return time.Duration(ticks) * m.tick
}

// Close releases the timer and the dispatcher goroutine
func (m *Machine) Close() {
	m.Timer.Close()
	m.IRQ.Close()
}
