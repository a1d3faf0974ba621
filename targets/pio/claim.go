package pio

import "errors"

// ErrNoStateMachine is returned when every PIO block is fully claimed
var ErrNoStateMachine = errors.New("pio: no free state machine")

// claimFirst tries each claim in order and returns the first success.
// The RP2040 has two PIO blocks; callers pass one claim per block.
func claimFirst[T any](claims ...func() (T, error)) (T, error) {
	for _, claim := range claims {
		if sm, err := claim(); err == nil {
			return sm, nil
		}
	}
	var zero T
	return zero, ErrNoStateMachine
}

// packGRB appends one FIFO word per pixel: G, R, B in the top three bytes,
// the layout the encoder shifts out MSB first. A trailing partial pixel is
// dropped.
func packGRB(dst []uint32, grb []byte) []uint32 {
	for i := 0; i+3 <= len(grb); i += 3 {
		dst = append(dst, uint32(grb[i])<<24|uint32(grb[i+1])<<16|uint32(grb[i+2])<<8)
	}
	return dst
}
