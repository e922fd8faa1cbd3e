package rt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockArena_RentReturnsZeroedBuffer(t *testing.T) {
	a := NewBlockArena(64)
	a.BeginBlock()
	buf := a.Rent(8)
	require.Len(t, buf, 8)
	for _, s := range buf {
		require.Zero(t, s)
	}
}

func TestBlockArena_ResetReclaimsCapacity(t *testing.T) {
	a := NewBlockArena(16)
	a.BeginBlock()
	a.Rent(16)
	require.Equal(t, 0, a.Remaining())

	a.BeginBlock()
	require.Equal(t, 16, a.Remaining())
}

func TestBlockArena_SuccessiveRentsDoNotOverlap(t *testing.T) {
	a := NewBlockArena(16)
	a.BeginBlock()
	first := a.Rent(4)
	second := a.Rent(4)
	first[0] = 1
	second[0] = 2
	require.Equal(t, float32(1), first[0])
	require.Equal(t, float32(2), second[0])
}
