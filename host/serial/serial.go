package serial

import (
	"errors"
	"io"
	"time"
)

// ErrTimeout is returned by Read when no data arrived within ReadTimeout.
// It is not fatal; a closed or unplugged device reads as io.EOF instead.
var ErrTimeout = errors.New("serial: read timeout")

// Port is an open serial connection. Native ports come from Open; tests
// substitute pipes.
type Port interface {
	io.ReadWriteCloser
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate; USB CDC ignores it but the OS still wants one
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the settings for the matrix's USB CDC port
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100, // keeps Run responsive to cancellation
	}
}

// classifyRead tells a read timeout from end of stream. tarm reports both
// as (0, io.EOF), but a timeout only comes back once the timeout has run;
// a hung-up tty returns at once.
func classifyRead(n int, err error, elapsed, timeout time.Duration) error {
	if n == 0 && errors.Is(err, io.EOF) && timeout > 0 && elapsed >= timeout/2 {
		return ErrTimeout
	}
	return err
}
