package core

import (
	"context"
	"errors"
	"time"

	"digitmatrix/protocol"
)

// BlinkDwell is how long the status LED stays in each state
const BlinkDwell = 100 * time.Millisecond

var ErrMissingDependency = errors.New("controller config is missing a dependency")

// NextDigit is the Increment transition
func NextDigit(d int) int {
	return (d + 1) % NumGlyphs
}

// PrevDigit is the Decrement transition
func PrevDigit(d int) int {
	if d == 0 {
		return NumGlyphs - 1
	}
	return d - 1
}

// ControllerConfig wires a Controller to its platform
type ControllerConfig struct {
	GPIO      GPIODriver
	StatusLED GPIOPin
	Input     *Debouncer
	Renderer  *Renderer

	// Optional
	Sleeper  Sleeper       // defaults to RealSleeper
	Dwell    time.Duration // defaults to BlinkDwell
	Reporter Reporter
}

// Controller is the cooperative main loop. It owns the digit; the edge
// handlers only ever touch the Debouncer.
type Controller struct {
	gpio     GPIODriver
	led      GPIOPin
	input    *Debouncer
	renderer *Renderer
	sleeper  Sleeper
	dwell    time.Duration
	reporter Reporter

	digit int
	steps uint32
}

// NewController validates cfg and returns a controller showing digit 0.
// Nothing is drawn until Start.
func NewController(cfg ControllerConfig) (*Controller, error) {
	if cfg.GPIO == nil || cfg.Input == nil || cfg.Renderer == nil {
		return nil, ErrMissingDependency
	}
	c := &Controller{
		gpio:     cfg.GPIO,
		led:      cfg.StatusLED,
		input:    cfg.Input,
		renderer: cfg.Renderer,
		sleeper:  cfg.Sleeper,
		dwell:    cfg.Dwell,
		reporter: cfg.Reporter,
	}
	if c.sleeper == nil {
		c.sleeper = RealSleeper
	}
	if c.dwell <= 0 {
		c.dwell = BlinkDwell
	}
	if c.reporter == nil {
		c.reporter = nopReporter{}
	}
	return c, nil
}

// Start resets the digit to 0 and draws it (cold boot state)
func (c *Controller) Start() {
	c.digit = 0
	if err := c.renderer.Render(c.digit); err != nil {
		c.renderFailed(err)
		return
	}
	RecordEvent(EvtBoot, 0, int32(c.digit))
	c.reporter.Report(protocol.Report{Kind: protocol.ReportBoot, Value: uint32(c.digit)})
}

// Step runs one loop iteration: a full blink cycle, then button A, then
// button B. Both buttons are honored in the same pass.
func (c *Controller) Step() {
	c.setLED(true)
	c.sleeper.Sleep(c.dwell)
	c.setLED(false)
	c.sleeper.Sleep(c.dwell)

	if c.input.Take(ButtonA) {
		c.apply(ButtonA, NextDigit(c.digit))
	}
	if c.input.Take(ButtonB) {
		c.apply(ButtonB, PrevDigit(c.digit))
	}
	c.steps++
}

// Run starts the display and loops until ctx is done
func (c *Controller) Run(ctx context.Context) error {
	c.Start()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		c.Step()
	}
}

// Digit returns the digit currently shown
func (c *Controller) Digit() int {
	return c.digit
}

// Steps returns the number of completed loop iterations
func (c *Controller) Steps() uint32 {
	return c.steps
}

func (c *Controller) apply(b Button, next int) {
	RecordEvent(EvtPress, uint8(b), int32(c.digit))
	c.digit = next
	if err := c.renderer.Render(c.digit); err != nil {
		c.renderFailed(err)
		return
	}
	RecordEvent(EvtDigit, uint8(b), int32(c.digit))
	c.reporter.Report(protocol.Report{
		Kind:  protocol.ReportDigit,
		Value: protocol.DigitValue(uint8(c.digit), uint8(b)),
	})
}

func (c *Controller) setLED(on bool) {
	if err := c.gpio.SetPin(c.led, on); err != nil {
		RecordEvent(EvtLEDError, 0, int32(c.led))
		DebugPrintln("status led: " + err.Error())
	}
}

func (c *Controller) renderFailed(err error) {
	RecordEvent(EvtBusError, 0, int32(c.digit))
	DebugPrintln("render " + itoa(c.digit) + ": " + err.Error())
	c.reporter.Report(protocol.Report{Kind: protocol.ReportRenderError, Value: uint32(c.digit)})
}
