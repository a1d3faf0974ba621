//go:build !tinygo

// Command matrix-sim shows the digit matrix in a desktop window. A or the
// right arrow is the increment button, B or the left arrow decrement.
package main

import (
	"context"
	"flag"
	"image/color"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"digitmatrix/config"
	"digitmatrix/core"
	"digitmatrix/host/sim"
)

const (
	cell    = 48
	gap     = 6
	ledArea = 40
	width   = core.Cols*cell + 2*gap
	height  = core.Rows*cell + 2*gap + ledArea
)

var (
	configPath = flag.String("config", "", "optional matrix.yaml (blink_ms, log_level)")
	bounce     = flag.Int("bounce", 4, "edges generated per key press")
)

type game struct {
	board *sim.Board
	last  int
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyA) || inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.press(core.ButtonA)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) || inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.press(core.ButtonB)
	}
	if d := g.board.Snapshot().Digit; d != g.last {
		log.Info().Int("digit", d).Msg("showing")
		g.last = d
	}
	return nil
}

func (g *game) press(b core.Button) {
	if err := g.board.Press(b); err != nil {
		log.Warn().Err(err).Stringer("button", b).Msg("press")
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	s := g.board.Snapshot()
	screen.Fill(color.RGBA{0x10, 0x10, 0x10, 0xFF})

	for row := 0; row < core.Rows; row++ {
		for col := 0; col < core.Cols; col++ {
			c := s.Pixels[row][col]
			fill := color.RGBA{c.R, c.G, c.B, 0xFF}
			if c == (core.Color{}) {
				fill = color.RGBA{0x28, 0x28, 0x28, 0xFF}
			}
			x := float32(gap + col*cell + 4)
			y := float32(gap + row*cell + 4)
			vector.DrawFilledRect(screen, x, y, cell-8, cell-8, fill, false)
		}
	}

	led := color.RGBA{0x30, 0x08, 0x08, 0xFF}
	if s.LED {
		led = color.RGBA{0xFF, 0x20, 0x20, 0xFF}
	}
	vector.DrawFilledCircle(screen, width/2, float32(height-ledArea/2), 8, led, true)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return width, height
}

func main() {
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	cfg := config.Default()
	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("config load failed")
		}
		cfg = c
	}
	zerolog.SetGlobalLevel(cfg.Level())
	core.SetDebugWriter(func(msg string) { log.Debug().Msg(msg) })

	board, err := sim.NewBoard(sim.Config{Dwell: cfg.Blink(), Bounce: *bounce})
	if err != nil {
		log.Fatal().Err(err).Msg("board")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := board.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("controller stopped")
		}
	}()

	ebiten.SetWindowTitle("digit matrix")
	ebiten.SetWindowSize(width*2, height*2)
	if err := ebiten.RunGame(&game{board: board, last: -1}); err != nil {
		log.Fatal().Err(err).Msg("window")
	}
	for _, b := range []core.Button{core.ButtonA, core.ButtonB} {
		st := board.Stats(b)
		log.Info().Stringer("button", b).Uint32("accepted", st.Accepted).Uint32("rejected", st.Rejected).Msg("debounce")
	}
}
