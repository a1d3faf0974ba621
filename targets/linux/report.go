//go:build linux && !tinygo

package main

import (
	"digitmatrix/core"
	"digitmatrix/protocol"

	"github.com/rs/zerolog"
)

// logReporter turns controller reports into log lines
type logReporter struct {
	log zerolog.Logger
}

func (r logReporter) Report(rep protocol.Report) {
	switch rep.Kind {
	case protocol.ReportBoot:
		r.log.Info().Uint8("digit", rep.Digit()).Msg("showing")
	case protocol.ReportDigit:
		r.log.Info().Uint8("digit", rep.Digit()).Stringer("button", core.Button(rep.Button())).Msg("digit changed")
	case protocol.ReportRenderError:
		r.log.Warn().Uint32("digit", rep.Value).Msg("render failed")
	default:
		r.log.Debug().Stringer("kind", rep.Kind).Uint32("value", rep.Value).Msg(rep.Text)
	}
}
