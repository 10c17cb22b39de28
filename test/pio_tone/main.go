//go:build rp2040

package main

// PIO Tone Test - Plays every siren frequency, slowly
// Check with an oscilloscope or tuner that each note lands on pitch

import (
	"machine"
	"time"

	"siren/core"
	"siren/targets/pio"
)

const (
	tonePin  = machine.GPIO15
	holdTime = 500 * time.Millisecond
)

func main() {
	time.Sleep(3 * time.Second)

	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})

	// Flash LED to indicate start
	for i := 0; i < 3; i++ {
		led.High()
		time.Sleep(100 * time.Millisecond)
		led.Low()
		time.Sleep(100 * time.Millisecond)
	}

	println("=== PIO Tone Test ===")
	println("Output: GP15")

	osc := pio.NewSquareWave(0, 0)
	if err := osc.Init(tonePin); err != nil {
		println("Init error:", err.Error())
		for {
			led.High()
			time.Sleep(100 * time.Millisecond)
			led.Low()
			time.Sleep(100 * time.Millisecond)
		}
	}
	println("Init OK!")

	osc.SetDuty(core.HalfDuty)
	osc.Enable()

	cycle := 0
	for {
		cycle++
		println("\n=== Cycle", cycle, "===")

		for hz := uint32(core.BaseFreq); hz <= core.MaxFreq; hz += core.FreqRise {
			osc.SetPeriod(hz)
			if osc.Frequency() != hz {
				println("Unreachable:", hz, "Hz")
				continue
			}
			println("Playing", hz, "Hz")
			led.Set(!led.Get())
			time.Sleep(holdTime)
		}

		// Silence between cycles shows Disable leaves the pin low
		osc.Disable()
		time.Sleep(2 * time.Second)
		osc.Enable()
	}
}
