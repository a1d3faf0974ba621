//go:build linux && !tinygo

// Command digitmatrix runs the digit matrix on a Raspberry Pi: the strip
// hangs off SPI MOSI and the buttons and status LED off the gpiochip.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"digitmatrix/config"
	"digitmatrix/core"
)

var (
	configPath = flag.String("config", "", "optional matrix.yaml")
	writeCfg   = flag.String("write-config", "", "write the effective config to this path and exit")
)

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

	if *writeCfg != "" {
		if err := config.Save(*writeCfg, cfg); err != nil {
			log.Fatal().Err(err).Msg("write config")
		}
		return
	}

	if err := run(cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("matrix stopped")
	}
}

func run(cfg *config.Config) error {
	core.SetDebugWriter(func(msg string) { log.Debug().Msg(msg) })
	core.SetDebugEnabled(cfg.Level() <= zerolog.DebugLevel)

	if _, err := host.Init(); err != nil {
		return err
	}
	port, err := spireg.Open(cfg.SPI.Dev)
	if err != nil {
		return err
	}
	defer port.Close()

	tx, err := newNRZTransmitter(port, cfg.SPI.SpeedHz)
	if err != nil {
		return err
	}
	defer tx.Halt()

	renderer := core.NewRenderer(core.NewLatchedBus(tx, nil, 0))
	if err := renderer.Blank(); err != nil {
		log.Warn().Err(err).Msg("initial clear")
	}

	gpio := newCdevGPIO(cfg.Chip)
	defer gpio.Close()

	if err := gpio.ConfigureOutput(core.GPIOPin(cfg.StatusLED)); err != nil {
		return err
	}

	input := core.NewDebouncer(0)
	buttons := map[core.Button]int{
		core.ButtonA: cfg.Buttons.A,
		core.ButtonB: cfg.Buttons.B,
	}
	for b, line := range buttons {
		b := b
		pin := core.GPIOPin(line)
		if err := gpio.ConfigureInputPullUp(pin); err != nil {
			return err
		}
		if err := gpio.OnFallingEdgeAt(pin, func(us uint64) { input.OnEdge(b, us) }); err != nil {
			return err
		}
		log.Debug().Stringer("button", b).Int("line", line).Msg("button ready")
	}

	ctrl, err := core.NewController(core.ControllerConfig{
		GPIO:      gpio,
		StatusLED: core.GPIOPin(cfg.StatusLED),
		Input:     input,
		Renderer:  renderer,
		Dwell:     cfg.Blink(),
		Reporter:  logReporter{log: log.Logger},
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("spi", cfg.SPI.Dev).Str("chip", cfg.Chip).Msg("running")
	err = ctrl.Run(ctx)

	if clearErr := renderer.Blank(); clearErr != nil {
		log.Warn().Err(clearErr).Msg("clear on exit")
	}
	_ = gpio.SetPin(core.GPIOPin(cfg.StatusLED), false)
	for _, b := range []core.Button{core.ButtonA, core.ButtonB} {
		st := input.Stats(b)
		log.Info().Stringer("button", b).Uint32("accepted", st.Accepted).Uint32("rejected", st.Rejected).Msg("debounce")
	}
	return err
}
