package core

// Duty cycle is expressed in per-mille of the oscillator period.
const (
	MaxDuty  = 1000
	HalfDuty = MaxDuty / 2
)

// Oscillator is the abstract frequency-programmable output that core code
// uses. Platform-specific implementations drive the actual peripheral.
// Every method is called with interrupts masked (see Shared).
type Oscillator interface {
	// SetPeriod programs the output frequency in Hz
	SetPeriod(hz uint32)

	// SetDuty sets the high time in per-mille of the period (0..MaxDuty).
	// Changing the period may leave the compare value stale, so callers
	// reassert the duty after every SetPeriod.
	SetDuty(perMille uint16)

	// Enable starts driving the output
	Enable()

	// Disable silences the output; the peripheral stays claimed
	Disable()
}

// PeriodicTimer is a countdown timer that raises an interrupt on expiry.
// Every method is called with interrupts masked (see Shared).
type PeriodicTimer interface {
	// EnableInterrupt lets an expiry raise the timer interrupt
	EnableInterrupt()

	// DisableInterrupt stops expiries from raising the interrupt
	DisableInterrupt()

	// ResetEvent clears the pending expiry event
	ResetEvent()

	// Start arms the timer to expire once after ticks TimerFreq ticks
	Start(ticks uint32)
}

// IRQLine is the timer's line at the interrupt controller. Only the main
// context touches it.
type IRQLine interface {
	// Enable unmasks the line
	Enable()

	// Disable masks the line
	Disable()
}
