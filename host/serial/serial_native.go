//go:build !wasm

package serial

import (
	"fmt"
	"time"

	"github.com/tarm/serial"
)

// NativePort is a tarm/serial port with timeouts reported as ErrTimeout
type NativePort struct {
	port    *serial.Port
	device  string
	timeout time.Duration
}

// Open opens a native serial port
func Open(cfg *Config) (Port, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	timeout := time.Duration(cfg.ReadTimeout) * time.Millisecond
	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", cfg.Device, err)
	}

	return &NativePort{port: port, device: cfg.Device, timeout: timeout}, nil
}

func (p *NativePort) Read(b []byte) (int, error) {
	start := time.Now()
	n, err := p.port.Read(b)
	return n, classifyRead(n, err, time.Since(start), p.timeout)
}

func (p *NativePort) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

func (p *NativePort) Close() error {
	if p.port != nil {
		return p.port.Close()
	}
	return nil
}

// Device returns the path the port was opened with
func (p *NativePort) Device() string {
	return p.device
}
