//go:build rp2040

package pio

// PIO square wave backend using tinygo-org/pio package
// Generates the siren tone without CPU involvement; the CPU only rewrites
// the clock divider when the frequency changes.

import (
	"errors"
	"machine"

	"siren/core"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

// ErrStateMachineBusy is returned when the requested state machine is claimed
var ErrStateMachineBusy = errors.New("pio: state machine already claimed")

// cyclesPerPeriod is the length of one output period in state machine cycles
const cyclesPerPeriod = 64

// buildSquareProgram creates the square wave PIO program using AssemblerV0.
// Two instructions of 32 cycles each: high half, low half.
func buildSquareProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		// .wrap_target
		asm.Set(rp2pio.SetDestPins, 1).Delay(31).Encode(), // 0: set pins, 1 [31]
		asm.Set(rp2pio.SetDestPins, 0).Delay(31).Encode(), // 1: set pins, 0 [31]
		// .wrap
	}
}

const squareWaveOrigin = -1 // No jumps, load anywhere

// SquareWave implements core.Oscillator on one PIO state machine. The
// program is symmetric, so the output is silent at zero duty and a 50%
// square wave at any other duty.
type SquareWave struct {
	pio     *rp2pio.PIO
	sm      rp2pio.StateMachine
	pin     machine.Pin
	offset  uint8
	hz      uint32
	duty    uint16
	enabled bool
}

// NewSquareWave creates a new PIO square wave oscillator
// pioNum: 0 for PIO0, 1 for PIO1
// smNum: 0-3 for state machine number
func NewSquareWave(pioNum, smNum uint8) *SquareWave {
	var pioHW *rp2pio.PIO
	if pioNum == 0 {
		pioHW = rp2pio.PIO0
	} else {
		pioHW = rp2pio.PIO1
	}

	return &SquareWave{
		pio: pioHW,
		sm:  pioHW.StateMachine(smNum),
	}
}

// Init loads the program and routes the state machine to pin, output low
func (w *SquareWave) Init(pin machine.Pin) error {
	w.pin = pin

	// Claim the state machine first
	if !w.sm.TryClaim() {
		return ErrStateMachineBusy
	}

	program := buildSquareProgram()
	offset, err := w.pio.AddProgram(program, squareWaveOrigin)
	if err != nil {
		w.sm.Unclaim()
		return err
	}
	w.offset = offset

	w.pin.Configure(machine.PinConfig{Mode: w.pio.PinMode()})

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetSetPins(w.pin, 1)
	cfg.SetWrap(offset+uint8(len(program))-1, offset)

	// Initialize state machine FIRST
	w.sm.Init(offset, cfg)

	// THEN set pin direction (must be after Init!)
	w.sm.SetPindirsConsecutive(w.pin, 1, true)
	w.sm.SetPinsConsecutive(w.pin, 1, false)

	return nil
}

// SetPeriod retunes the output to hz by changing the state machine clock.
// Frequencies the divider cannot reach leave the previous tone in place.
func (w *SquareWave) SetPeriod(hz uint32) {
	if hz == 0 {
		return
	}
	cycleNs := uint32(1000000000 / (uint64(hz) * cyclesPerPeriod))
	whole, frac, err := rp2pio.ClkDivFromPeriod(cycleNs, machine.CPUFrequency())
	if err != nil {
		return
	}
	w.sm.SetClkDiv(whole, frac)
	w.hz = hz
}

// SetDuty sets the duty cycle in per-mille
func (w *SquareWave) SetDuty(perMille uint16) {
	if perMille > core.MaxDuty {
		perMille = core.MaxDuty
	}
	w.duty = perMille
	w.apply()
}

// Enable starts the output
func (w *SquareWave) Enable() {
	w.enabled = true
	w.apply()
}

// Disable stops the output and leaves the pin low
func (w *SquareWave) Disable() {
	w.enabled = false
	w.apply()
}

// Frequency returns the last programmed frequency in Hz
func (w *SquareWave) Frequency() uint32 {
	return w.hz
}

func (w *SquareWave) apply() {
	if w.enabled && w.duty > 0 {
		w.sm.SetEnabled(true)
		return
	}
	w.sm.SetEnabled(false)
	w.sm.Restart()
	// Force the pin low in case the program stopped in its high half
	w.sm.Exec(rp2pio.AssemblerV0{}.Set(rp2pio.SetDestPins, 0).Encode())
}
