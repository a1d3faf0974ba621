//go:build tinygo

package core

import "runtime/interrupt"

// disableInterrupts disables interrupts and returns the previous state
func disableInterrupts() interrupt.State {
	return interrupt.Disable()
}

// restoreInterrupts restores the interrupt state
func restoreInterrupts(state interrupt.State) {
	interrupt.Restore(state)
}

// Critical runs f with interrupts disabled. Used around bit-banged output
// whose timing must not be stretched by an edge handler.
func Critical(f func()) {
	state := interrupt.Disable()
	f()
	interrupt.Restore(state)
}
