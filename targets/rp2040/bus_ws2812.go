//go:build rp2040

package main

import (
	"machine"

	"digitmatrix/core"

	"tinygo.org/x/drivers/ws2812"
)

// bitBangTransmitter sends frames with the CPU timed ws2812 driver
type bitBangTransmitter struct {
	dev ws2812.Device
}

func newBitBangTransmitter(pin machine.Pin) *bitBangTransmitter {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pin.Low()
	return &bitBangTransmitter{dev: ws2812.New(pin)}
}

// Transmit writes grb unchanged; the driver expects wire order already.
// An edge interrupt in the middle of a frame would stretch a bit past
// the reset threshold and latch half a frame, so the whole write runs
// with interrupts off.
func (t *bitBangTransmitter) Transmit(grb []byte) error {
	var err error
	core.Critical(func() {
		_, err = t.dev.Write(grb)
	})
	return err
}
