//go:build microbit_v2

package main

import (
	"device/arm"
	"device/nrf"
	"machine"
	"runtime/interrupt"
	"time"

	"siren/core"
)

// speakerPin is the micro:bit v2 on-board speaker
const speakerPin = machine.P0_00

var controller = core.NewController(core.NewSweep())

func main() {
	core.MustTakeBoard()

	// Text and step report frames share the UART console
	core.SetDebugWriter(func(msg string) { println(msg) })
	core.SetDebugEnabled(true)
	core.SetFrameWriter(machine.Serial)
	core.StartReporter()

	osc, err := newSpeaker(machine.PWM0, speakerPin)
	if err != nil {
		panic("microbit: " + err.Error())
	}

	handler := interrupt.New(nrf.IRQ_TIMER0, func(interrupt.Interrupt) {
		controller.HandleInterrupt()
	})
	handler.SetPriority(0xc0)

	controller.Run(osc, newTimer0(), nvicLine(nrf.IRQ_TIMER0), time.Sleep)

	// Let the reporter finish before the dump, then park
	for core.PendingReports() > 0 {
		time.Sleep(time.Millisecond)
	}
	core.DumpTimingRing()

	for {
		arm.Asm("wfi")
	}
}

// nvicLine masks and unmasks one interrupt at the NVIC
type nvicLine uint32

func (l nvicLine) Enable() {
	arm.EnableIRQ(uint32(l))
}

func (l nvicLine) Disable() {
	arm.DisableIRQ(uint32(l))
}
