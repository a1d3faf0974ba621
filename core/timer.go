package core

import (
	"sync/atomic"
	"time"
)

// TimerFreq is the tick rate of the RP2040 system timer
const TimerFreq = 1000000 // 1MHz

// TimerFromUS converts microseconds to timer ticks
func TimerFromUS(us uint64) uint64 {
	return us * TimerFreq / 1000000
}

// TimerToUS converts timer ticks to microseconds
func TimerToUS(ticks uint64) uint64 {
	return ticks * 1000000 / TimerFreq
}

// Clock is a monotonic microsecond time source
type Clock interface {
	Micros() uint64
}

// ClockFunc adapts a function to the Clock interface
type ClockFunc func() uint64

func (f ClockFunc) Micros() uint64 {
	return f()
}

// TickClock adapts a raw tick counter running at TimerFreq
func TickClock(ticks func() uint64) Clock {
	return ClockFunc(func() uint64 {
		return TimerToUS(ticks())
	})
}

// SystemClock counts microseconds since it was created
type SystemClock struct {
	start time.Time
}

// NewSystemClock returns a clock that starts at zero now
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Micros() uint64 {
	return uint64(time.Since(c.start) / time.Microsecond)
}

// ManualClock only moves when told to. Safe for use from several goroutines.
type ManualClock struct {
	now uint64
}

// Set moves the clock to us
func (c *ManualClock) Set(us uint64) {
	atomic.StoreUint64(&c.now, us)
}

// Advance moves the clock forward by d
func (c *ManualClock) Advance(d time.Duration) {
	atomic.AddUint64(&c.now, uint64(d/time.Microsecond))
}

func (c *ManualClock) Micros() uint64 {
	return atomic.LoadUint64(&c.now)
}

// Sleeper performs the fixed-duration waits of the main loop
type Sleeper interface {
	Sleep(d time.Duration)
}

// SleepFunc adapts a function to the Sleeper interface
type SleepFunc func(d time.Duration)

func (f SleepFunc) Sleep(d time.Duration) {
	f(d)
}

// RealSleeper sleeps using the Go (or TinyGo) scheduler
var RealSleeper Sleeper = SleepFunc(time.Sleep)
