package pio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBusy = errors.New("all state machines claimed")

func claimOK(n int) func() (int, error) {
	return func() (int, error) { return n, nil }
}

func claimBusy() (int, error) { return 0, errBusy }

func TestClaimFirstPrefersFirstBlock(t *testing.T) {
	sm, err := claimFirst(claimOK(0), claimOK(1))
	require.NoError(t, err)
	assert.Equal(t, 0, sm)
}

func TestClaimFirstFallsBack(t *testing.T) {
	sm, err := claimFirst(claimBusy, claimOK(1))
	require.NoError(t, err)
	assert.Equal(t, 1, sm)
}

func TestClaimFirstExhausted(t *testing.T) {
	_, err := claimFirst(claimBusy, claimBusy)
	assert.ErrorIs(t, err, ErrNoStateMachine)

	_, err = claimFirst[int]()
	assert.ErrorIs(t, err, ErrNoStateMachine)
}

func TestPackGRB(t *testing.T) {
	words := packGRB(nil, []byte{0x11, 0x22, 0x33, 0xAA, 0xBB, 0xCC})
	assert.Equal(t, []uint32{0x11223300, 0xAABBCC00}, words)

	// reuses the backing array
	again := packGRB(words[:0], []byte{1, 2, 3})
	assert.Equal(t, []uint32{0x01020300}, again)
	assert.Equal(t, &words[0], &again[0])

	assert.Empty(t, packGRB(nil, []byte{1, 2}), "partial pixel dropped")
}

func TestPackGRBFullFrame(t *testing.T) {
	frame := make([]byte, 75)
	for i := range frame {
		frame[i] = byte(i)
	}
	words := packGRB(nil, frame)
	require.Len(t, words, 25)
	assert.Equal(t, uint32(72)<<24|uint32(73)<<16|uint32(74)<<8, words[24])
}
