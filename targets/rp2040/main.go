//go:build rp2040

package main

import (
	"device/arm"
	"device/rp"
	"machine"
	"runtime/interrupt"
	"time"

	"siren/core"
	"siren/targets/pio"
)

// speakerPin drives a piezo or amplifier input
const speakerPin = machine.GPIO15

var controller = core.NewController(core.NewSweep())

func main() {
	core.MustTakeBoard()

	// Text and step report frames share the USB CDC console
	core.SetDebugWriter(func(msg string) { println(msg) })
	core.SetDebugEnabled(true)
	core.SetFrameWriter(machine.Serial)
	core.StartReporter()

	osc := pio.NewSquareWave(0, 0)
	if err := osc.Init(speakerPin); err != nil {
		panic("rp2040: " + err.Error())
	}

	handler := interrupt.New(rp.IRQ_TIMER_IRQ_1, func(interrupt.Interrupt) {
		controller.HandleInterrupt()
	})
	handler.SetPriority(0xc0)

	controller.Run(osc, &alarmTimer{}, nvicLine(rp.IRQ_TIMER_IRQ_1), time.Sleep)

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
