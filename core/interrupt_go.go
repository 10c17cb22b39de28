//go:build !tinygo

package core

import "sync"

// State is a placeholder for interrupt state on regular Go
type State uintptr

// irqMask stands in for the CPU interrupt mask on regular Go, where the
// interrupt context is a goroutine (see host/sim). Unlike interrupt.Disable
// it does not nest.
var irqMask sync.Mutex

// disableInterrupts excludes the simulated interrupt context
func disableInterrupts() State {
	irqMask.Lock()
	return 0
}

// restoreInterrupts lets the simulated interrupt context run again
func restoreInterrupts(state State) {
	irqMask.Unlock()
}
