package monitor

import (
	"fmt"

	"siren/core"
	"siren/protocol"
)

// ViolationKind identifies which sweep property a report broke
type ViolationKind uint8

const (
	FreqOutOfRange ViolationKind = iota + 1 // outside [BaseFreq, MaxFreq]
	FreqOffGrid                             // not BaseFreq + k*FreqRise
	BadStepSize                             // consecutive reports not FreqRise apart
	WrongWay                                // moved against the announced direction
	BadDirection                            // direction not +1 or -1
)

func (k ViolationKind) String() string {
	switch k {
	case FreqOutOfRange:
		return "freq out of range"
	case FreqOffGrid:
		return "freq off grid"
	case BadStepSize:
		return "bad step size"
	case WrongWay:
		return "wrong way"
	case BadDirection:
		return "bad direction"
	default:
		return "unknown"
	}
}

// Violation is one broken property, tied to the report that showed it
type Violation struct {
	Kind ViolationKind
	Step uint32
	Freq int32
	Dir  int32
}

func (v Violation) String() string {
	return fmt.Sprintf("step %d: %s (freq=%d dir=%d)", v.Step, v.Kind, v.Freq, v.Dir)
}

// Summary totals what a Checker has seen
type Summary struct {
	Reports    int
	Missed     uint32 // steps skipped between received reports
	Restarts   int    // step counter went backwards (board reset)
	Flips      int
	Violations int
	MinFreq    int32
	MaxFreq    int32
}

func (s Summary) String() string {
	if s.Reports == 0 {
		return "no reports"
	}
	return fmt.Sprintf("%d reports, %d missed, %d restarts, %d flips, freq %d..%d Hz, %d violations",
		s.Reports, s.Missed, s.Restarts, s.Flips, s.MinFreq, s.MaxFreq, s.Violations)
}

// Checker verifies step reports against the sweep's invariants from outside
// the device. Steps lost in transit are detected from the step counter, and
// the pairwise checks are skipped across the gap.
type Checker struct {
	last    protocol.StepReport
	hasLast bool
	summary Summary
}

// NewChecker returns a checker with no history
func NewChecker() *Checker {
	return &Checker{}
}

// Check records r and returns the properties it violates, if any
func (c *Checker) Check(r protocol.StepReport) []Violation {
	var out []Violation
	flag := func(kind ViolationKind) {
		out = append(out, Violation{Kind: kind, Step: r.Step, Freq: r.Freq, Dir: r.Dir})
	}

	if r.Freq < core.BaseFreq || r.Freq > core.MaxFreq {
		flag(FreqOutOfRange)
	} else if (r.Freq-core.BaseFreq)%core.FreqRise != 0 {
		flag(FreqOffGrid)
	}
	if r.Dir != 1 && r.Dir != -1 {
		flag(BadDirection)
	}

	consecutive := false
	if c.hasLast {
		switch {
		case r.Step == c.last.Step+1:
			consecutive = true
		case r.Step > c.last.Step+1:
			c.summary.Missed += r.Step - c.last.Step - 1
		default:
			c.summary.Restarts++
		}
	}

	if consecutive {
		delta := r.Freq - c.last.Freq
		if delta != core.FreqRise && delta != -core.FreqRise {
			flag(BadStepSize)
		} else if delta != core.FreqRise*c.last.Dir {
			flag(WrongWay)
		}
		if r.Dir != c.last.Dir {
			c.summary.Flips++
		}
	}

	if c.summary.Reports == 0 || r.Freq < c.summary.MinFreq {
		c.summary.MinFreq = r.Freq
	}
	if c.summary.Reports == 0 || r.Freq > c.summary.MaxFreq {
		c.summary.MaxFreq = r.Freq
	}
	c.summary.Reports++
	c.summary.Violations += len(out)

	c.last = r
	c.hasLast = true
	return out
}

// Summary returns the totals so far
func (c *Checker) Summary() Summary {
	return c.summary
}
