//go:build tinygo

package core

import "runtime/interrupt"

// State is the interrupt mask saved by disableInterrupts
type State = interrupt.State

// disableInterrupts disables interrupts and returns the previous state
func disableInterrupts() State {
	return interrupt.Disable()
}

// restoreInterrupts restores the interrupt state
func restoreInterrupts(state State) {
	interrupt.Restore(state)
}
