//go:build rp2040

package pio

// WS2812 transmitter on a PIO state machine. The encoder program comes from
// piolib; the timing is hardware generated, so interrupts stay enabled
// during a frame.

import (
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
	"github.com/tinygo-org/pio/rp2-pio/piolib"
)

// WS2812 drives a strand of GRB pixels from one state machine
type WS2812 struct {
	sm    rp2pio.StateMachine
	dev   *piolib.WS2812B
	words []uint32
}

// NewWS2812 claims a state machine on PIO0, falling back to PIO1, and
// loads the encoder. ErrNoStateMachine means both blocks are full.
func NewWS2812(pin machine.Pin) (*WS2812, error) {
	sm, err := claimFirst(
		rp2pio.PIO0.ClaimStateMachine,
		rp2pio.PIO1.ClaimStateMachine,
	)
	if err != nil {
		return nil, err
	}

	dev, err := piolib.NewWS2812B(sm, pin)
	if err != nil {
		sm.Unclaim()
		return nil, err
	}
	return &WS2812{sm: sm, dev: dev}, nil
}

// Transmit queues grb and returns once the FIFO has drained. The last
// pixel is still shifting out (about 30us); the caller's reset quiet
// period covers it.
func (w *WS2812) Transmit(grb []byte) error {
	w.words = packGRB(w.words[:0], grb)
	if err := w.dev.WriteRaw(w.words); err != nil {
		return err
	}
	for !w.sm.IsTxFIFOEmpty() {
	}
	return nil
}
