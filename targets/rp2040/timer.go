//go:build rp2040

package main

import (
	"device/rp"
)

// The TinyGo runtime sleeps on alarm 0, so the sweep gets alarm 1
const sweepAlarm = 1

// alarmTimer implements core.PeriodicTimer on TIMER alarm 1. The RP2040
// timer always counts microseconds, which is exactly core.TimerFreq.
// Consecutive periods are chained off the previous deadline, not the time
// the interrupt ran, so handler latency does not stretch the sweep.
type alarmTimer struct {
	deadline uint32
	running  bool
}

func (t *alarmTimer) EnableInterrupt() {
	rp.TIMER.INTE.SetBits(1 << sweepAlarm)
}

func (t *alarmTimer) DisableInterrupt() {
	rp.TIMER.INTE.ClearBits(1 << sweepAlarm)
	rp.TIMER.ARMED.Set(1 << sweepAlarm) // write 1 to disarm
	t.running = false
}

func (t *alarmTimer) ResetEvent() {
	rp.TIMER.INTR.Set(1 << sweepAlarm) // write 1 to clear
}

func (t *alarmTimer) Start(ticks uint32) {
	now := rp.TIMER.TIMERAWL.Get()
	next := t.deadline + ticks
	if !t.running || int32(next-now) <= 0 {
		// First period, or we fell a whole period behind
		next = now + ticks
	}
	t.deadline = next
	t.running = true
	rp.TIMER.ALARM1.Set(next) // writing the alarm arms it
}
