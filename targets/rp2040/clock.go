//go:build rp2040

package main

import (
	"runtime/volatile"
	"unsafe"

	"digitmatrix/core"
)

// RP2040 Timer peripheral, free running at core.TimerFreq from boot
const (
	timerBase     = 0x40054000
	timerTIMERAWH = timerBase + 0x08 // Raw timer high word
	timerTIMERAWL = timerBase + 0x0C // Raw timer low word
)

var (
	timerRAWH = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWH)))
	timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))
)

// hardwareUptime reads the 64-bit tick counter. The raw registers
// are not latched, so high is read on both sides of low to catch a carry.
// Safe from interrupt context.
func hardwareUptime() uint64 {
	for {
		high1 := timerRAWH.Get()
		low := timerRAWL.Get()
		high2 := timerRAWH.Get()

		if high1 == high2 {
			return (uint64(high1) << 32) | uint64(low)
		}
	}
}

// hardwareClock is the time source for debouncing and report stamps
var hardwareClock = core.TickClock(hardwareUptime)
