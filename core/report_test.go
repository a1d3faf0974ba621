package core

import (
	"bytes"
	"errors"
	"testing"

	"digitmatrix/protocol"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeAll(t *testing.T, data []byte) []protocol.Report {
	t.Helper()
	var out []protocol.Report
	protocol.NewDecoder().Feed(data, func(seq uint8, payload []byte) {
		r, err := protocol.DecodeReport(payload)
		require.NoError(t, err)
		out = append(out, r)
	})
	return out
}

func TestFrameReporterWritesFrames(t *testing.T) {
	var buf bytes.Buffer
	clock := &ManualClock{}
	clock.Set(1234)
	rep := NewFrameReporter(&buf, clock)

	rep.Report(protocol.Report{Kind: protocol.ReportBoot})
	rep.Report(protocol.Report{Kind: protocol.ReportDigit, Value: protocol.DigitValue(7, uint8(ButtonB)), Clock: 99})
	rep.Log("hello")

	reports := decodeAll(t, buf.Bytes())
	require.Len(t, reports, 3)
	assert.Equal(t, uint32(1234), reports[0].Clock, "stamped from the clock")
	assert.Equal(t, uint32(99), reports[1].Clock)
	assert.Equal(t, uint8(7), reports[1].Digit())
	assert.Equal(t, uint8(ButtonB), reports[1].Button())
	assert.Equal(t, "hello", reports[2].Text)
}

type failingWriter struct {
	calls int
	fail  bool
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.calls++
	if w.fail {
		return 0, errors.New("usb disconnected")
	}
	return len(p), nil
}

func TestFrameReporterBacksOffWhenHostGone(t *testing.T) {
	w := &failingWriter{fail: true}
	rep := NewFrameReporter(w, nil)

	for i := 0; i < maxWriteFailures; i++ {
		rep.Report(protocol.Report{Kind: protocol.ReportBoot})
	}
	assert.Equal(t, maxWriteFailures, w.calls)

	// next reports are dropped without a write until the probe
	for i := 0; i < maxWriteFailures-1; i++ {
		rep.Report(protocol.Report{Kind: protocol.ReportBoot})
	}
	assert.Equal(t, maxWriteFailures, w.calls)

	w.fail = false
	rep.Report(protocol.Report{Kind: protocol.ReportBoot})
	assert.Equal(t, maxWriteFailures+1, w.calls, "probe write")

	rep.Report(protocol.Report{Kind: protocol.ReportBoot})
	assert.Equal(t, maxWriteFailures+2, w.calls, "recovered")
	assert.Equal(t, uint32(2*maxWriteFailures-1), rep.Dropped())
}

func TestDumpEventRing(t *testing.T) {
	ClearEventRing()
	var lines []string
	SetDebugWriter(func(s string) { lines = append(lines, s) })
	defer SetDebugWriter(nil)

	RecordEvent(EvtPress, uint8(ButtonA), 3)
	DumpEventRing()

	require.Len(t, lines, 3)
	assert.Equal(t, "[EVENTS] PRESS seq=1 button=A value=3", lines[1])
}

func TestEventRingWraps(t *testing.T) {
	ClearEventRing()
	for i := 0; i < EventRingSize+5; i++ {
		RecordEvent(EvtDigit, 0, int32(i))
	}
	events := Events()
	require.Len(t, events, EventRingSize)
	assert.Equal(t, int32(5), events[0].Value)
	assert.Equal(t, int32(EventRingSize+4), events[EventRingSize-1].Value)
}
