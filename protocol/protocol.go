// Package protocol implements the framed status report stream sent from the
// matrix firmware to a host over USB serial
package protocol

// Version represents the report protocol version
const Version = "0.1.0"

// Protocol constants
const (
	MessageMax = 512 // Scratch output buffer size

	// Message sequence masks
	MessageSeqMask  = 0x0F
	MessageSeqShift = 4
)
