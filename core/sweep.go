package core

import "sync/atomic"

// Siren sweep parameters (Hz). The sweep climbs from BaseFreq to MaxFreq and
// back in steps of FreqRise, one step per timer period.
const (
	BaseFreq = 440
	MaxFreq  = 660
	FreqRise = 10

	// NumberSteps is the number of steps in one half of the sweep.
	NumberSteps = (MaxFreq - BaseFreq) / FreqRise

	// DurationPerNoteMs spreads one full up-and-down cycle over a second.
	DurationPerNoteMs = 1000 / (NumberSteps * 2)

	// ClockCyclesPerNote is the timer period in TimerFreq ticks.
	ClockCyclesPerNote = DurationPerNoteMs * TimerFreq / 1000
)

// Boundary detection compares against exact grid points, so FreqRise has to
// divide the span. This fails to compile otherwise.
var _ = [1]struct{}{}[(MaxFreq-BaseFreq)%FreqRise]

// Sweep is the siren's frequency/direction state. Both values are single
// atomics with no lock around them: the timer interrupt is the only writer
// and the only reader that acts on them.
type Sweep struct {
	freq atomic.Int32 // Hz
	dir  atomic.Int32 // +1 rising, -1 falling
}

// NewSweep returns a sweep at (BaseFreq, +1).
func NewSweep() *Sweep {
	s := &Sweep{}
	s.freq.Store(BaseFreq)
	s.dir.Store(1)
	return s
}

// Step advances the sweep by one FreqRise and returns the new frequency and
// the direction the next step will take.
//
// The direction flips when the value before the step sits one step short of
// a bound, so the step that lands on MaxFreq (or BaseFreq) is the last one in
// that direction and the sweep never overshoots.
func (s *Sweep) Step() (freq, dir int32) {
	dir = s.dir.Load()
	delta := FreqRise * dir
	prev := s.freq.Add(delta) - delta

	if prev == MaxFreq-FreqRise && dir > 0 {
		dir = -dir
		s.dir.Store(dir)
	} else if prev == BaseFreq+FreqRise && dir < 0 {
		dir = -dir
		s.dir.Store(dir)
	}
	return prev + delta, dir
}

// Frequency returns the last programmed frequency in Hz.
func (s *Sweep) Frequency() int32 {
	return s.freq.Load()
}

// Direction returns +1 while rising and -1 while falling.
func (s *Sweep) Direction() int32 {
	return s.dir.Load()
}
