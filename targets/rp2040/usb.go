//go:build rp2040

package main

import (
	"machine"
)

// InitUSB configures machine.Serial, which is USB CDC-ACM on the Pico.
// The descriptors come from the TinyGo runtime.
func InitUSB() error {
	return machine.Serial.Configure(machine.UARTConfig{})
}

// usbWriter adapts machine.Serial to io.Writer for the frame reporter
type usbWriter struct{}

func (usbWriter) Write(data []byte) (int, error) {
	return machine.Serial.Write(data)
}
