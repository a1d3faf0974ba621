//go:build !tinygo

package core

import "sync"

// State is a placeholder for interrupt state on regular Go
type State uintptr

// Edge handlers run on their own goroutines on hosted Go, so the critical
// section is a mutex instead of an interrupt mask. Sections must not nest.
var criticalMu sync.Mutex

// disableInterrupts enters the critical section
func disableInterrupts() State {
	criticalMu.Lock()
	return 0
}

// restoreInterrupts leaves the critical section
func restoreInterrupts(state State) {
	criticalMu.Unlock()
}

// Critical runs f inside the critical section
func Critical(f func()) {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	f()
}
