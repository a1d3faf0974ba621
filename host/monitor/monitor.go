// Package monitor follows the status report stream of a matrix board
package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"digitmatrix/host/serial"
	"digitmatrix/protocol"

	"github.com/rs/zerolog"
)

// Handler is called from Run for every decoded report
type Handler func(r protocol.Report)

// Monitor connects to a board and decodes its reports
type Monitor struct {
	port    serial.Port
	decoder *protocol.Decoder
	handler Handler
	log     zerolog.Logger

	mu        sync.Mutex
	lastDigit int
	reports   uint32
	bad       uint32
	halt      uint32
	closed    bool

	frameErrors uint32
}

// New wraps an already open port. handler may be nil.
func New(port serial.Port, handler Handler, log zerolog.Logger) *Monitor {
	return &Monitor{
		port:      port,
		decoder:   protocol.NewDecoder(),
		handler:   handler,
		log:       log,
		lastDigit: -1,
	}
}

// Connect opens the serial port described by cfg
func Connect(cfg *serial.Config, handler Handler, log zerolog.Logger) (*Monitor, error) {
	port, err := serial.Open(cfg)
	if err != nil {
		return nil, err
	}
	return New(port, handler, log.With().Str("device", cfg.Device).Logger()), nil
}

// Run reads until ctx is cancelled, the monitor is closed, or the port
// fails. Read timeouts (serial.ErrTimeout) are not errors; a stream that
// ends returns an error wrapping io.EOF.
func (m *Monitor) Run(ctx context.Context) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = m.Close()
		case <-stop:
		}
	}()

	buf := make([]byte, 256)
	for {
		n, err := m.port.Read(buf)
		if n > 0 {
			m.decoder.Feed(buf[:n], m.handleFrame)
			m.mu.Lock()
			m.frameErrors = m.decoder.Errors()
			m.mu.Unlock()
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err == nil || errors.Is(err, serial.ErrTimeout) {
			continue
		}
		if m.isClosed() {
			return nil
		}
		return fmt.Errorf("read: %w", err)
	}
}

func (m *Monitor) handleFrame(seq uint8, payload []byte) {
	r, err := protocol.DecodeReport(payload)
	if err != nil {
		m.mu.Lock()
		m.bad++
		m.mu.Unlock()
		m.log.Warn().Err(err).Uint8("seq", seq).Hex("payload", payload).Msg("undecodable report")
		return
	}

	m.mu.Lock()
	m.reports++
	switch r.Kind {
	case protocol.ReportBoot, protocol.ReportDigit:
		m.lastDigit = int(r.Digit())
	case protocol.ReportHalt:
		m.halt = r.Value
	}
	m.mu.Unlock()

	if m.handler != nil {
		m.handler(r)
	}
}

// Close closes the port; a blocked Run returns nil
func (m *Monitor) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()
	return m.port.Close()
}

func (m *Monitor) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// LastDigit returns the digit last reported by the board, or -1 before the
// first boot or digit report
func (m *Monitor) LastDigit() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastDigit
}

// HaltCode returns the code of the last halt report, 0 if none
func (m *Monitor) HaltCode() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.halt
}

// Stats returns the number of decoded reports, undecodable payloads, and
// frames the decoder rejected
func (m *Monitor) Stats() (reports, bad, frameErrors uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reports, m.bad, m.frameErrors
}
