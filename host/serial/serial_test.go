package serial

import (
	"errors"
	"io"
	"testing"
	"time"
)

func TestClassifyRead(t *testing.T) {
	const timeout = 100 * time.Millisecond
	other := errors.New("input/output error")

	tests := []struct {
		name    string
		n       int
		err     error
		elapsed time.Duration
		timeout time.Duration
		want    error
	}{
		{"timeout ran out", 0, io.EOF, timeout, timeout, ErrTimeout},
		{"hung up at once", 0, io.EOF, time.Millisecond, timeout, io.EOF},
		{"blocking port", 0, io.EOF, time.Second, 0, io.EOF},
		{"data", 4, nil, time.Millisecond, timeout, nil},
		{"data then eof", 4, io.EOF, timeout, timeout, io.EOF},
		{"other error", 0, other, timeout, timeout, other},
	}
	for _, tt := range tests {
		got := classifyRead(tt.n, tt.err, tt.elapsed, tt.timeout)
		if got != tt.want {
			t.Errorf("%s: classifyRead = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/dev/ttyACM0")
	if cfg.Baud != 115200 || cfg.ReadTimeout != 100 {
		t.Errorf("DefaultConfig = %+v", cfg)
	}
}
