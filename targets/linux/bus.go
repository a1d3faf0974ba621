//go:build linux && !tinygo

package main

import (
	"digitmatrix/core"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/nrzled"
)

// nrzTransmitter sends frames through periph's SPI NRZ encoder. nrzled
// takes RGB and does its own GRB reordering, so frames are converted back.
type nrzTransmitter struct {
	dev *nrzled.Dev
	rgb [core.FrameSize]byte
}

func newNRZTransmitter(port spi.Port, speedHz int) (*nrzTransmitter, error) {
	dev, err := nrzled.NewSPI(port, &nrzled.Opts{
		NumPixels: core.NumPixels,
		Channels:  core.BytesPerPixel,
		Freq:      physic.Frequency(speedHz) * physic.Hertz,
	})
	if err != nil {
		return nil, err
	}
	return &nrzTransmitter{dev: dev}, nil
}

func (t *nrzTransmitter) Transmit(grb []byte) error {
	if len(grb) != core.FrameSize {
		return core.ErrShortFrame
	}
	grbToRGB(t.rgb[:], grb)
	_, err := t.dev.Write(t.rgb[:])
	return err
}

// Halt turns every pixel off
func (t *nrzTransmitter) Halt() error {
	return t.dev.Halt()
}

// grbToRGB swaps the first two bytes of each pixel
func grbToRGB(dst, grb []byte) {
	for i := 0; i+2 < len(grb); i += core.BytesPerPixel {
		dst[i], dst[i+1], dst[i+2] = grb[i+1], grb[i], grb[i+2]
	}
}
