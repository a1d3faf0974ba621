package core

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTx struct {
	sent    [][]byte
	sleeper *fakeSleeper
	// sleepsBefore records how many sleeps had happened when Transmit ran
	sleepsBefore []int
	err          error
}

func (tx *recordingTx) Transmit(grb []byte) error {
	tx.sent = append(tx.sent, append([]byte(nil), grb...))
	tx.sleepsBefore = append(tx.sleepsBefore, len(tx.sleeper.calls))
	return tx.err
}

func TestLatchedBusSendsWholeFrameThenWaits(t *testing.T) {
	sleeper := &fakeSleeper{}
	tx := &recordingTx{sleeper: sleeper}
	bus := NewLatchedBus(tx, sleeper, 0)

	var buf PixelBuffer
	buf.Set(0, RGB(9, 8, 7))
	require.NoError(t, bus.Write(&buf))
	require.NoError(t, bus.Write(&buf))

	require.Len(t, tx.sent, 2)
	assert.Len(t, tx.sent[0], FrameSize)
	assert.Equal(t, []byte{8, 9, 7}, tx.sent[0][:3])

	// each transmission is followed by exactly one quiet period
	assert.Equal(t, []int{0, 1}, tx.sleepsBefore)
	assert.Equal(t, []time.Duration{ResetQuiet, ResetQuiet}, sleeper.calls)
	assert.Equal(t, uint32(2), bus.Frames())
}

func TestLatchedBusQuietFloor(t *testing.T) {
	sleeper := &fakeSleeper{}
	tx := &recordingTx{sleeper: sleeper}

	assert.Equal(t, ResetQuiet, NewLatchedBus(tx, sleeper, 10*time.Microsecond).Quiet())
	assert.Equal(t, 300*time.Microsecond, NewLatchedBus(tx, sleeper, 300*time.Microsecond).Quiet())
}

func TestLatchedBusQuietAfterError(t *testing.T) {
	boom := errors.New("fifo stuck")
	sleeper := &fakeSleeper{}
	tx := &recordingTx{sleeper: sleeper, err: boom}
	bus := NewLatchedBus(tx, sleeper, 0)

	var buf PixelBuffer
	assert.ErrorIs(t, bus.Write(&buf), boom)
	assert.Len(t, sleeper.calls, 1)
	assert.Zero(t, bus.Frames())
}
