// Package config loads the YAML board description used by the hosted
// targets: the Raspberry Pi port, the monitor and the simulator.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type Buttons struct {
	A int `yaml:"a"` // GPIO line of the increment button
	B int `yaml:"b"` // GPIO line of the decrement button
}

type SPI struct {
	Dev     string `yaml:"dev"`      // e.g. /dev/spidev0.0
	SpeedHz int    `yaml:"speed_hz"` // NRZ bit rate, 800000 for WS2812
}

type Serial struct {
	Device string `yaml:"device"` // e.g. /dev/ttyACM0
	Baud   int    `yaml:"baud"`
}

type Config struct {
	Chip      string  `yaml:"chip"` // gpiochip name, e.g. gpiochip0
	Buttons   Buttons `yaml:"buttons"`
	StatusLED int     `yaml:"status_led"`
	BlinkMs   int     `yaml:"blink_ms"`

	SPI    SPI    `yaml:"spi"`
	Serial Serial `yaml:"serial"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the wiring of the reference board
func Default() *Config {
	return &Config{
		Chip:      "gpiochip0",
		Buttons:   Buttons{A: 5, B: 6},
		StatusLED: 13,
		BlinkMs:   100,
		SPI:       SPI{Dev: "/dev/spidev0.0", SpeedHz: 800000},
		Serial:    Serial{Device: "/dev/ttyACM0", Baud: 115200},
		LogLevel:  "info",
	}
}

// Load reads path over the defaults, so a file only needs the keys it
// changes. The result is validated.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyDefaults(c)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// applyDefaults fills values an explicit empty key left blank
func applyDefaults(c *Config) {
	d := Default()
	if c.Chip == "" {
		c.Chip = d.Chip
	}
	if c.BlinkMs == 0 {
		c.BlinkMs = d.BlinkMs
	}
	if c.SPI.Dev == "" {
		c.SPI.Dev = d.SPI.Dev
	}
	if c.SPI.SpeedHz == 0 {
		c.SPI.SpeedHz = d.SPI.SpeedHz
	}
	if c.Serial.Device == "" {
		c.Serial.Device = d.Serial.Device
	}
	if c.Serial.Baud == 0 {
		c.Serial.Baud = d.Serial.Baud
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
}

// Validate checks that the pins are usable and distinct and that the
// timings make sense
func (c *Config) Validate() error {
	pins := map[string]int{
		"buttons.a":  c.Buttons.A,
		"buttons.b":  c.Buttons.B,
		"status_led": c.StatusLED,
	}
	seen := make(map[int]string, len(pins))
	for _, name := range []string{"buttons.a", "buttons.b", "status_led"} {
		pin := pins[name]
		if pin < 0 {
			return fmt.Errorf("%w: %s is negative (%d)", ErrInvalidConfig, name, pin)
		}
		if other, dup := seen[pin]; dup {
			return fmt.Errorf("%w: %s and %s share line %d", ErrInvalidConfig, other, name, pin)
		}
		seen[pin] = name
	}
	if c.BlinkMs <= 0 {
		return fmt.Errorf("%w: blink_ms must be positive", ErrInvalidConfig)
	}
	if c.SPI.SpeedHz <= 0 {
		return fmt.Errorf("%w: spi.speed_hz must be positive", ErrInvalidConfig)
	}
	if c.Serial.Baud <= 0 {
		return fmt.Errorf("%w: serial.baud must be positive", ErrInvalidConfig)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Blink is the status LED dwell per state
func (c *Config) Blink() time.Duration {
	return time.Duration(c.BlinkMs) * time.Millisecond
}

// Level returns the zerolog level, info if the name is not recognized
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
