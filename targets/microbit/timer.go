//go:build microbit_v2

package main

import (
	"device/nrf"
)

// timer0 implements core.PeriodicTimer on the nRF52833 TIMER0. The compare
// shortcuts clear and stop the counter on a match, so every Start measures
// one full period from zero and the hardware never runs ahead of the
// interrupt handler.
type timer0 struct{}

func newTimer0() timer0 {
	t := nrf.TIMER0
	t.TASKS_STOP.Set(1)
	t.MODE.Set(nrf.TIMER_MODE_MODE_Timer)
	t.BITMODE.Set(nrf.TIMER_BITMODE_BITMODE_32Bit)
	t.PRESCALER.Set(4) // 16 MHz / 2^4 = 1 MHz
	t.SHORTS.Set(nrf.TIMER_SHORTS_COMPARE0_CLEAR_Msk | nrf.TIMER_SHORTS_COMPARE0_STOP_Msk)
	t.TASKS_CLEAR.Set(1)
	return timer0{}
}

func (timer0) EnableInterrupt() {
	nrf.TIMER0.INTENSET.Set(nrf.TIMER_INTENSET_COMPARE0_Msk)
}

func (timer0) DisableInterrupt() {
	nrf.TIMER0.INTENCLR.Set(nrf.TIMER_INTENCLR_COMPARE0_Msk)
	nrf.TIMER0.TASKS_STOP.Set(1)
}

func (timer0) ResetEvent() {
	nrf.TIMER0.EVENTS_COMPARE[0].Set(0)
}

func (timer0) Start(ticks uint32) {
	nrf.TIMER0.CC[0].Set(ticks)
	nrf.TIMER0.TASKS_CLEAR.Set(1)
	nrf.TIMER0.TASKS_START.Set(1)
}
