//go:build rp2040

package main

import (
	"context"
	"errors"
	"machine"
	"time"

	"digitmatrix/core"
	"digitmatrix/protocol"
	"digitmatrix/targets/pio"
)

// Board wiring
const (
	matrixPin  = machine.GPIO7
	buttonAPin = core.GPIOPin(5)
	buttonBPin = core.GPIOPin(6)
	statusLED  = core.GPIOPin(13)
)

// frameTail is how long the last byte keeps shifting after the PIO FIFO
// drains; it is added to the reset quiet time
const frameTail = 20 * time.Microsecond

func main() {
	// Disable watchdog on boot to clear any previous state
	if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0}); err != nil {
		return
	}

	// Without USB the display still works; reports just go nowhere
	_ = InitUSB()

	reporter := core.NewFrameReporter(usbWriter{}, hardwareClock)
	core.SetDebugWriter(reporter.Log)

	mode := GetMode()
	tx, err := newTransmitter(mode)
	if err != nil {
		code := uint32(protocol.HaltBusInit)
		if errors.Is(err, pio.ErrNoStateMachine) {
			code = protocol.HaltNoStateMachine
		}
		halt(reporter, code, "bus "+mode.Bus.String()+": "+err.Error())
	}

	bus := core.NewLatchedBus(tx, core.RealSleeper, core.ResetQuiet+frameTail)
	renderer := core.NewRenderer(bus)
	if err := renderer.Blank(); err != nil {
		core.DebugPrintln("initial clear: " + err.Error())
	}

	gpio := NewRPGPIODriver()
	if err := gpio.ConfigureOutput(statusLED); err != nil {
		core.RecordEvent(core.EvtLEDError, 0, int32(statusLED))
		core.DebugPrintln("status led: " + err.Error())
	}

	input := core.NewDebouncer(0)
	buttons := []struct {
		button core.Button
		pin    core.GPIOPin
	}{
		{core.ButtonA, buttonAPin},
		{core.ButtonB, buttonBPin},
	}
	for _, b := range buttons {
		if err := gpio.ConfigureInputPullUp(b.pin); err != nil {
			halt(reporter, protocol.HaltPinInterrupt, "button "+b.button.String()+": "+err.Error())
		}
		if err := gpio.OnFallingEdge(b.pin, input.EdgeHandler(b.button, hardwareClock)); err != nil {
			halt(reporter, protocol.HaltPinInterrupt, "button "+b.button.String()+": "+err.Error())
		}
	}

	ctrl, err := core.NewController(core.ControllerConfig{
		GPIO:      gpio,
		StatusLED: statusLED,
		Input:     input,
		Renderer:  renderer,
		Reporter:  reporter,
	})
	if err != nil {
		halt(reporter, protocol.HaltBusInit, err.Error())
	}

	// Never returns: the background context is never cancelled
	_ = ctrl.Run(context.Background())
}

func newTransmitter(mode ModeConfig) (core.Transmitter, error) {
	switch mode.Bus {
	case BusBitBang:
		return newBitBangTransmitter(matrixPin), nil
	default:
		return pio.NewWS2812(matrixPin)
	}
}

// halt reports a fatal init error and parks the core. Nothing is drawn
// and the status LED stays off, which is how a halted board looks.
func halt(reporter *core.FrameReporter, code uint32, msg string) {
	core.DebugPrintln(msg)
	for {
		reporter.Report(protocol.Report{Kind: protocol.ReportHalt, Value: code})
		core.DumpEventRing()
		time.Sleep(5 * time.Second)
	}
}
