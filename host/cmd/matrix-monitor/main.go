package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"digitmatrix/config"
	"digitmatrix/core"
	"digitmatrix/host/monitor"
	"digitmatrix/host/serial"
	"digitmatrix/protocol"
)

var (
	configPath = flag.String("config", "", "optional matrix.yaml")
	device     = flag.String("device", "", "serial device (overrides config)")
	baud       = flag.Int("baud", 0, "baud rate (overrides config)")
	verbose    = flag.Bool("verbose", false, "log at debug level")
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
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	serialCfg := serial.DefaultConfig(cfg.Serial.Device)
	serialCfg.Baud = cfg.Serial.Baud
	if *device != "" {
		serialCfg.Device = *device
	}
	if *baud > 0 {
		serialCfg.Baud = *baud
	}

	m, err := monitor.Connect(serialCfg, logReport, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("connect failed")
	}
	log.Info().Str("device", serialCfg.Device).Int("baud", serialCfg.Baud).Msg("monitoring")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = m.Run(ctx)
	reports, bad, frameErrors := m.Stats()
	log.Info().
		Uint32("reports", reports).
		Uint32("undecodable", bad).
		Uint32("frame_errors", frameErrors).
		Int("last_digit", m.LastDigit()).
		Msg("stopped")
	if errors.Is(err, io.EOF) {
		log.Fatal().Msg("board disconnected")
	}
	if err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("monitor failed")
	}
}

func logReport(r protocol.Report) {
	switch r.Kind {
	case protocol.ReportBoot:
		log.Info().Uint32("clock", r.Clock).Uint8("digit", r.Digit()).Msg("boot")
	case protocol.ReportDigit:
		log.Info().Uint32("clock", r.Clock).Uint8("digit", r.Digit()).Stringer("button", core.Button(r.Button())).Msg("digit")
	case protocol.ReportRenderError:
		log.Warn().Uint32("clock", r.Clock).Uint32("digit", r.Value).Msg("render failed")
	case protocol.ReportLog:
		log.Debug().Uint32("clock", r.Clock).Msg(r.Text)
	case protocol.ReportHalt:
		log.Error().Uint32("code", r.Value).Str("reason", haltReason(r.Value)).Msg("board halted")
	}
}

func haltReason(code uint32) string {
	switch code {
	case protocol.HaltNoStateMachine:
		return "no free PIO state machine"
	case protocol.HaltPinInterrupt:
		return "button interrupt setup failed"
	case protocol.HaltBusInit:
		return "pixel bus init failed"
	default:
		return "unknown"
	}
}
