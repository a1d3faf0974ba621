//go:build linux && !tinygo

package main

import (
	"errors"
	"sync"
	"time"

	"digitmatrix/core"

	"github.com/warthog618/go-gpiocdev"
)

var errPinNotInput = errors.New("line is not configured as an input")

// cdevGPIO implements core.GPIODriver with character device line requests
type cdevGPIO struct {
	chip string

	mu     sync.Mutex
	lines  map[core.GPIOPin]*gpiocdev.Line
	inputs map[core.GPIOPin]bool
}

func newCdevGPIO(chip string) *cdevGPIO {
	return &cdevGPIO{
		chip:   chip,
		lines:  make(map[core.GPIOPin]*gpiocdev.Line),
		inputs: make(map[core.GPIOPin]bool),
	}
}

func (g *cdevGPIO) ConfigureOutput(pin core.GPIOPin) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.lines[pin]; ok {
		return nil
	}
	line, err := gpiocdev.RequestLine(g.chip, int(pin), gpiocdev.AsOutput(0))
	if err != nil {
		return err
	}
	g.lines[pin] = line
	return nil
}

func (g *cdevGPIO) ConfigureInputPullUp(pin core.GPIOPin) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.lines[pin]; ok {
		return nil
	}
	line, err := gpiocdev.RequestLine(g.chip, int(pin), gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		return err
	}
	g.lines[pin] = line
	g.inputs[pin] = true
	return nil
}

func (g *cdevGPIO) SetPin(pin core.GPIOPin, value bool) error {
	g.mu.Lock()
	line, ok := g.lines[pin]
	g.mu.Unlock()
	if !ok {
		if err := g.ConfigureOutput(pin); err != nil {
			return err
		}
		g.mu.Lock()
		line = g.lines[pin]
		g.mu.Unlock()
	}
	v := 0
	if value {
		v = 1
	}
	return line.SetValue(v)
}

func (g *cdevGPIO) GetPin(pin core.GPIOPin) (bool, error) {
	g.mu.Lock()
	line, ok := g.lines[pin]
	g.mu.Unlock()
	if !ok {
		return false, nil
	}
	v, err := line.Value()
	return v != 0, err
}

// OnFallingEdge satisfies core.GPIODriver; the edge time is dropped
func (g *cdevGPIO) OnFallingEdge(pin core.GPIOPin, handler func()) error {
	return g.OnFallingEdgeAt(pin, func(uint64) { handler() })
}

// OnFallingEdgeAt re-requests an input line with falling edge detection.
// handler gets the kernel timestamp of the edge in microseconds, which
// is immune to scheduling delay in the event goroutine.
func (g *cdevGPIO) OnFallingEdgeAt(pin core.GPIOPin, handler func(us uint64)) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.inputs[pin] {
		return errPinNotInput
	}
	if old, ok := g.lines[pin]; ok {
		_ = old.Close()
		delete(g.lines, pin)
	}

	line, err := gpiocdev.RequestLine(g.chip, int(pin),
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithEventHandler(func(evt gpiocdev.LineEvent) {
			handler(uint64(evt.Timestamp / time.Microsecond))
		}),
	)
	if err != nil {
		return err
	}
	g.lines[pin] = line
	return nil
}

// Close releases every requested line
func (g *cdevGPIO) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	var errs []error
	for pin, line := range g.lines {
		if err := line.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(g.lines, pin)
	}
	return errors.Join(errs...)
}
