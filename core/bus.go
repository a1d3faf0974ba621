package core

import (
	"errors"
	"time"
)

// ResetQuiet is the minimum idle time after a frame. WS2812 latches the
// shifted data once the line has been low this long.
const ResetQuiet = 100 * time.Microsecond

var ErrShortFrame = errors.New("pixel frame shorter than matrix")

// PixelBus sends a whole buffer to the LEDs
type PixelBus interface {
	// Write transmits all pixels and returns once the LEDs have latched them
	Write(buf *PixelBuffer) error
}

// Transmitter is the platform primitive that clocks bytes out on the data
// line (PIO, bit-bang, SPI). It must not return before the last byte has
// been handed to the hardware.
type Transmitter interface {
	Transmit(grb []byte) error
}

// LatchedBus drives a Transmitter and enforces the reset quiet period
// after every frame.
type LatchedBus struct {
	tx      Transmitter
	sleeper Sleeper
	quiet   time.Duration
	frame   []byte
	frames  uint32
}

// NewLatchedBus wraps tx. quiet below ResetQuiet is raised to ResetQuiet.
func NewLatchedBus(tx Transmitter, sleeper Sleeper, quiet time.Duration) *LatchedBus {
	if quiet < ResetQuiet {
		quiet = ResetQuiet
	}
	if sleeper == nil {
		sleeper = RealSleeper
	}
	return &LatchedBus{
		tx:      tx,
		sleeper: sleeper,
		quiet:   quiet,
		frame:   make([]byte, 0, FrameSize),
	}
}

// Write sends buf as one transmission, then holds the line idle
func (l *LatchedBus) Write(buf *PixelBuffer) error {
	l.frame = buf.Bytes(l.frame[:0])
	err := l.tx.Transmit(l.frame)
	l.sleeper.Sleep(l.quiet)
	if err != nil {
		return err
	}
	l.frames++
	return nil
}

// Frames returns the number of frames sent successfully
func (l *LatchedBus) Frames() uint32 {
	return l.frames
}

// Quiet returns the enforced post-frame idle time
func (l *LatchedBus) Quiet() time.Duration {
	return l.quiet
}
