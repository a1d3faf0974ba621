package core

import (
	"time"

	"digitmatrix/protocol"
)

// recordingBus keeps a copy of every frame written to it
type recordingBus struct {
	frames [][]byte
	err    error
}

func (b *recordingBus) Write(buf *PixelBuffer) error {
	b.frames = append(b.frames, buf.Bytes(nil))
	return b.err
}

func (b *recordingBus) last() []byte {
	if len(b.frames) == 0 {
		return nil
	}
	return b.frames[len(b.frames)-1]
}

// fakeGPIO records output levels per pin
type fakeGPIO struct {
	levels   map[GPIOPin][]bool
	handlers map[GPIOPin]func()
	err      error
}

func newFakeGPIO() *fakeGPIO {
	return &fakeGPIO{
		levels:   make(map[GPIOPin][]bool),
		handlers: make(map[GPIOPin]func()),
	}
}

func (g *fakeGPIO) ConfigureOutput(pin GPIOPin) error      { return nil }
func (g *fakeGPIO) ConfigureInputPullUp(pin GPIOPin) error { return nil }

func (g *fakeGPIO) SetPin(pin GPIOPin, value bool) error {
	if g.err != nil {
		return g.err
	}
	g.levels[pin] = append(g.levels[pin], value)
	return nil
}

func (g *fakeGPIO) GetPin(pin GPIOPin) (bool, error) {
	l := g.levels[pin]
	if len(l) == 0 {
		return false, nil
	}
	return l[len(l)-1], nil
}

func (g *fakeGPIO) OnFallingEdge(pin GPIOPin, handler func()) error {
	g.handlers[pin] = handler
	return nil
}

// fakeSleeper advances a manual clock instead of sleeping and can run a
// hook while "asleep", which is when edge handlers get to run.
type fakeSleeper struct {
	clock   *ManualClock
	calls   []time.Duration
	onSleep func(call int)
}

func (s *fakeSleeper) Sleep(d time.Duration) {
	s.calls = append(s.calls, d)
	if s.clock != nil {
		s.clock.Advance(d)
	}
	if s.onSleep != nil {
		s.onSleep(len(s.calls))
	}
}

// recordingReporter keeps every report
type recordingReporter struct {
	reports []protocol.Report
}

func (r *recordingReporter) Report(rep protocol.Report) {
	r.reports = append(r.reports, rep)
}

// glyphBytes is the expected wire encoding of digit d
func glyphBytes(d int) []byte {
	g, _ := GlyphFor(d)
	out := make([]byte, 0, FrameSize)
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			c := g[row][col]
			out = append(out, c.G, c.R, c.B)
		}
	}
	return out
}
