//go:build rp2040

package main

// BusBackend selects how pixel frames reach the matrix
type BusBackend uint8

const (
	// BusPIO shifts frames out of a PIO state machine. Interrupts stay
	// enabled while a frame is sent.
	BusPIO BusBackend = iota

	// BusBitBang uses the CPU timed ws2812 driver with interrupts disabled
	// for the length of a frame (about 2.4ms). Button edges that arrive
	// meanwhile are delivered once the frame is out.
	BusBitBang
)

// ModeConfig holds the compile time board options
type ModeConfig struct {
	Bus BusBackend
}

// GetMode returns the current mode configuration
func GetMode() ModeConfig {
	// To fall back to the bit-banged driver (e.g. while debugging the PIO
	// program), change Bus to BusBitBang
	return ModeConfig{
		Bus: BusPIO,
	}
}

func (b BusBackend) String() string {
	switch b {
	case BusPIO:
		return "pio"
	case BusBitBang:
		return "bitbang"
	default:
		return "unknown"
	}
}
