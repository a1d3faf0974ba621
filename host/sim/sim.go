// Package sim runs the real controller against simulated hardware so the
// matrix can be tried out on a desktop
package sim

import (
	"context"
	"errors"
	"sync"
	"time"

	"digitmatrix/core"
	"digitmatrix/protocol"
)

// Simulated wiring, same numbering as the reference board
const (
	PinButtonA = core.GPIOPin(5)
	PinButtonB = core.GPIOPin(6)
	PinLED     = core.GPIOPin(13)
)

var errNoEdgeHandler = errors.New("sim: no edge handler on pin")

// gpio is an in-memory core.GPIODriver. Falling edges are injected with
// fire; handlers run on the caller's goroutine like an interrupt would.
type gpio struct {
	mu       sync.Mutex
	levels   map[core.GPIOPin]bool
	handlers map[core.GPIOPin]func()
}

func newGPIO() *gpio {
	return &gpio{
		levels:   make(map[core.GPIOPin]bool),
		handlers: make(map[core.GPIOPin]func()),
	}
}

func (g *gpio) ConfigureOutput(pin core.GPIOPin) error {
	return g.SetPin(pin, false)
}

func (g *gpio) ConfigureInputPullUp(pin core.GPIOPin) error {
	return g.SetPin(pin, true)
}

func (g *gpio) SetPin(pin core.GPIOPin, value bool) error {
	g.mu.Lock()
	g.levels[pin] = value
	g.mu.Unlock()
	return nil
}

func (g *gpio) GetPin(pin core.GPIOPin) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.levels[pin], nil
}

func (g *gpio) OnFallingEdge(pin core.GPIOPin, handler func()) error {
	g.mu.Lock()
	g.handlers[pin] = handler
	g.mu.Unlock()
	return nil
}

func (g *gpio) fire(pin core.GPIOPin) error {
	g.mu.Lock()
	h := g.handlers[pin]
	g.mu.Unlock()
	if h == nil {
		return errNoEdgeHandler
	}
	h()
	return nil
}

// frameSink is the simulated data line: it keeps the last frame sent
type frameSink struct {
	mu     sync.Mutex
	last   [core.FrameSize]byte
	frames uint32
}

func (s *frameSink) Transmit(grb []byte) error {
	if len(grb) != core.FrameSize {
		return core.ErrShortFrame
	}
	s.mu.Lock()
	copy(s.last[:], grb)
	s.frames++
	s.mu.Unlock()
	return nil
}

// Config tunes the simulation
type Config struct {
	Dwell    time.Duration // status LED dwell, default core.BlinkDwell
	WindowUS uint64        // debounce window, default core.DebounceWindow
	Bounce   int           // edges generated per press, default 1
}

// Snapshot is what the matrix looks like at one moment
type Snapshot struct {
	Pixels [core.Rows][core.Cols]core.Color
	LED    bool
	Digit  int // -1 until the first report
	Frames uint32
}

// Board is a simulated matrix with its controller
type Board struct {
	cfg   Config
	gpio  *gpio
	sink  *frameSink
	input *core.Debouncer
	ctrl  *core.Controller

	mu    sync.Mutex
	digit int
}

// NewBoard wires a controller to simulated hardware
func NewBoard(cfg Config) (*Board, error) {
	if cfg.Bounce <= 0 {
		cfg.Bounce = 1
	}
	b := &Board{
		cfg:   cfg,
		gpio:  newGPIO(),
		sink:  &frameSink{},
		input: core.NewDebouncer(cfg.WindowUS),
		digit: -1,
	}

	clock := core.NewSystemClock()
	_ = b.gpio.ConfigureOutput(PinLED)
	for button, pin := range map[core.Button]core.GPIOPin{core.ButtonA: PinButtonA, core.ButtonB: PinButtonB} {
		_ = b.gpio.ConfigureInputPullUp(pin)
		_ = b.gpio.OnFallingEdge(pin, b.input.EdgeHandler(button, clock))
	}

	ctrl, err := core.NewController(core.ControllerConfig{
		GPIO:      b.gpio,
		StatusLED: PinLED,
		Input:     b.input,
		Renderer:  core.NewRenderer(core.NewLatchedBus(b.sink, nil, 0)),
		Dwell:     cfg.Dwell,
		Reporter:  b,
	})
	if err != nil {
		return nil, err
	}
	b.ctrl = ctrl
	return b, nil
}

// Run drives the controller until ctx is done
func (b *Board) Run(ctx context.Context) error {
	return b.ctrl.Run(ctx)
}

// Press simulates pressing a button, including contact bounce
func (b *Board) Press(button core.Button) error {
	pin := PinButtonA
	if button == core.ButtonB {
		pin = PinButtonB
	}
	for i := 0; i < b.cfg.Bounce; i++ {
		if err := b.gpio.fire(pin); err != nil {
			return err
		}
	}
	return nil
}

// Report implements core.Reporter
func (b *Board) Report(r protocol.Report) {
	switch r.Kind {
	case protocol.ReportBoot, protocol.ReportDigit:
		b.mu.Lock()
		b.digit = int(r.Digit())
		b.mu.Unlock()
	}
}

// Snapshot returns the last frame decoded back to colors
func (b *Board) Snapshot() Snapshot {
	var s Snapshot
	b.sink.mu.Lock()
	frame := b.sink.last
	s.Frames = b.sink.frames
	b.sink.mu.Unlock()

	for row := 0; row < core.Rows; row++ {
		for col := 0; col < core.Cols; col++ {
			i := core.PixelIndex(row, col) * core.BytesPerPixel
			s.Pixels[row][col] = core.Color{R: frame[i+1], G: frame[i], B: frame[i+2]}
		}
	}
	s.LED, _ = b.gpio.GetPin(PinLED)

	b.mu.Lock()
	s.Digit = b.digit
	b.mu.Unlock()
	return s
}

// Stats returns the debounce counters of a button
func (b *Board) Stats(button core.Button) core.DebounceStats {
	return b.input.Stats(button)
}
