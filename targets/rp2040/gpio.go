//go:build rp2040

package main

import (
	"errors"
	"machine"

	"digitmatrix/core"
)

var errPinNotInput = errors.New("pin is not configured as an input")

// RPGPIODriver implements core.GPIODriver on the RP2040's GPIO0-GPIO29
type RPGPIODriver struct {
	// Track configured pins to prevent conflicts
	configuredPins map[core.GPIOPin]machine.Pin
	inputs         map[core.GPIOPin]bool
}

// NewRPGPIODriver creates a new RP2040 GPIO driver
func NewRPGPIODriver() *RPGPIODriver {
	return &RPGPIODriver{
		configuredPins: make(map[core.GPIOPin]machine.Pin),
		inputs:         make(map[core.GPIOPin]bool),
	}
}

// ConfigureOutput configures a pin as a digital output, driven low
func (d *RPGPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	if _, exists := d.configuredPins[pin]; exists {
		return nil
	}

	machinePin := machine.Pin(pin)
	machinePin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	machinePin.Low()

	d.configuredPins[pin] = machinePin
	return nil
}

func (d *RPGPIODriver) ConfigureInputPullUp(pin core.GPIOPin) error {
	if _, exists := d.configuredPins[pin]; exists {
		return nil
	}

	machinePin := machine.Pin(pin)
	machinePin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	d.configuredPins[pin] = machinePin
	d.inputs[pin] = true
	return nil
}

// SetPin sets the pin to high (true) or low (false)
func (d *RPGPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	machinePin, exists := d.configuredPins[pin]
	if !exists {
		// Pin isn't configured - configure it first
		if err := d.ConfigureOutput(pin); err != nil {
			return err
		}
		machinePin = d.configuredPins[pin]
	}

	machinePin.Set(value)
	return nil
}

// GetPin reads the current pin state
func (d *RPGPIODriver) GetPin(pin core.GPIOPin) (bool, error) {
	machinePin, exists := d.configuredPins[pin]
	if !exists {
		return false, nil
	}
	return machinePin.Get(), nil
}

// OnFallingEdge runs handler from the GPIO interrupt on every high to low
// transition. The pin must already be an input.
func (d *RPGPIODriver) OnFallingEdge(pin core.GPIOPin, handler func()) error {
	if !d.inputs[pin] {
		return errPinNotInput
	}
	return d.configuredPins[pin].SetInterrupt(machine.PinFalling, func(machine.Pin) {
		handler()
	})
}
