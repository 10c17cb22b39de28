package sim

import "sync"

// Oscillator records everything the controller programs into it
type Oscillator struct {
	mu      sync.Mutex
	hz      uint32
	duty    uint16
	enabled bool
	periods []uint32
}

// NewOscillator returns a disabled oscillator with no history
func NewOscillator() *Oscillator {
	return &Oscillator{}
}

func (o *Oscillator) SetPeriod(hz uint32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.hz = hz
	o.periods = append(o.periods, hz)
}

func (o *Oscillator) SetDuty(perMille uint16) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.duty = perMille
}

func (o *Oscillator) Enable() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.enabled = true
}

func (o *Oscillator) Disable() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.enabled = false
}

// Frequency returns the last programmed frequency in Hz
func (o *Oscillator) Frequency() uint32 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.hz
}

// Duty returns the last programmed duty cycle in per-mille
func (o *Oscillator) Duty() uint16 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.duty
}

// Enabled reports whether the output is on
func (o *Oscillator) Enabled() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.enabled
}

// Periods returns every frequency programmed so far, in order
func (o *Oscillator) Periods() []uint32 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]uint32(nil), o.periods...)
}
