package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "matrix.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 100*time.Millisecond, c.Blink())
	assert.Equal(t, zerolog.InfoLevel, c.Level())
}

func TestLoadOverridesOnlyGivenKeys(t *testing.T) {
	path := writeFile(t, `
buttons:
  a: 0
status_led: 27
spi:
  dev: /dev/spidev1.0
log_level: debug
`)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Buttons.A, "line 0 is a real pin")
	assert.Equal(t, 6, c.Buttons.B)
	assert.Equal(t, 27, c.StatusLED)
	assert.Equal(t, "/dev/spidev1.0", c.SPI.Dev)
	assert.Equal(t, 800000, c.SPI.SpeedHz)
	assert.Equal(t, "gpiochip0", c.Chip)
	assert.Equal(t, zerolog.DebugLevel, c.Level())
}

func TestLoadAppliesDefaultsToBlankValues(t *testing.T) {
	path := writeFile(t, `
chip: ""
blink_ms: 0
serial:
  device: ""
  baud: 0
`)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, *Default(), *c)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	c := Default()
	c.Chip = "gpiochip4"
	c.BlinkMs = 250
	c.Serial.Device = "/dev/ttyACM1"

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, Save(path, c))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, loaded)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "buttons: [1, 2"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "status_led: 5"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"negative pin", func(c *Config) { c.Buttons.B = -1 }},
		{"shared button line", func(c *Config) { c.Buttons.B = c.Buttons.A }},
		{"led on a button", func(c *Config) { c.StatusLED = c.Buttons.B }},
		{"zero blink", func(c *Config) { c.BlinkMs = -5 }},
		{"zero speed", func(c *Config) { c.SPI.SpeedHz = 0 }},
		{"zero baud", func(c *Config) { c.Serial.Baud = -1 }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.mutate(c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
		})
	}
}
