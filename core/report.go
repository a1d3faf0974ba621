package core

import (
	"io"

	"digitmatrix/protocol"
)

// Reporter receives status reports from the main loop
type Reporter interface {
	Report(r protocol.Report)
}

// maxWriteFailures is the number of consecutive failed writes after which
// reports are dropped without touching the writer, until one succeeds again
const maxWriteFailures = 10

// FrameReporter frames reports onto a byte stream (USB CDC on the Pico)
type FrameReporter struct {
	w      io.Writer
	clock  Clock
	output *protocol.ScratchOutput
	framer *protocol.Framer

	consecutiveWriteFailures uint32
	dropped                  uint32
	skip                     uint32
}

// NewFrameReporter creates a reporter writing to w. Reports without a clock
// value are stamped from clock.
func NewFrameReporter(w io.Writer, clock Clock) *FrameReporter {
	out := protocol.NewScratchOutput()
	return &FrameReporter{
		w:      w,
		clock:  clock,
		output: out,
		framer: protocol.NewFramer(out),
	}
}

// Report encodes r and writes it out. Failures are counted, never returned:
// a missing host must not stall the display.
func (f *FrameReporter) Report(r protocol.Report) {
	if f.consecutiveWriteFailures >= maxWriteFailures {
		// Host looks gone; probe again every maxWriteFailures reports
		f.skip++
		if f.skip < maxWriteFailures {
			f.dropped++
			return
		}
		f.skip = 0
	}

	if r.Clock == 0 && f.clock != nil {
		r.Clock = uint32(f.clock.Micros())
	}

	f.output.Reset()
	if err := protocol.EncodeReport(f.framer, r); err != nil {
		f.dropped++
		return
	}

	result := f.output.Result()
	written := 0
	for written < len(result) {
		n, err := f.w.Write(result[written:])
		if err != nil || n == 0 {
			f.consecutiveWriteFailures++
			f.dropped++
			return
		}
		written += n
	}
	f.consecutiveWriteFailures = 0
}

// Log sends a debug line as a ReportLog frame. Suitable as a DebugWriter.
func (f *FrameReporter) Log(msg string) {
	f.Report(protocol.Report{Kind: protocol.ReportLog, Text: msg})
}

// Dropped returns the number of reports that could not be delivered
func (f *FrameReporter) Dropped() uint32 {
	return f.dropped
}

// nopReporter discards reports
type nopReporter struct{}

func (nopReporter) Report(protocol.Report) {}
