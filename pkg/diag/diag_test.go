package diag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockTracker_ObservePeakAndRMS(t *testing.T) {
	tr := NewBlockTracker()
	tr.Observe([]float32{1, -1, 0, 0})
	snap := tr.Snapshot()
	require.Equal(t, uint64(1), snap.BlocksProcessed)
	require.Equal(t, float32(1), snap.Peak)
	require.InDelta(t, 0.7071, snap.RMS, 1e-3)
}

func TestBlockTracker_PeakIsMonotonicAcrossBlocks(t *testing.T) {
	tr := NewBlockTracker()
	tr.Observe([]float32{0.2})
	tr.Observe([]float32{0.9})
	tr.Observe([]float32{0.1})
	require.Equal(t, float32(0.9), tr.Snapshot().Peak)
}

func TestBlockTracker_ResetPeak(t *testing.T) {
	tr := NewBlockTracker()
	tr.Observe([]float32{0.5})
	tr.ResetPeak()
	require.Zero(t, tr.Snapshot().Peak)
}
