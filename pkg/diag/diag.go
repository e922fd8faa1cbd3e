// Package diag tracks lock-free, allocation-free block-rate diagnostics
// the realtime audio thread can cheaply update and the control thread can
// sample — peak/RMS metering and a processed-block count, never a
// dependency of the core's correctness.
package diag

import (
	"math"
	"sync/atomic"
)

// BlockTracker accumulates peak/RMS and block-count statistics. All
// update methods are written for a single writer (the audio thread);
// Snapshot is safe to call concurrently from the control thread.
type BlockTracker struct {
	blocksProcessed uint64
	peakBits        uint64 // atomic storage for float32 bits, widened to uint64
	sumSquares      uint64 // atomic storage for float64 bits: sum of squares of the most recent block only
	sampleCount     uint64 // length of the most recent block
}

// NewBlockTracker creates an empty tracker.
func NewBlockTracker() *BlockTracker {
	return &BlockTracker{}
}

// Observe folds one rendered mono block into the running statistics.
// Called once per block from the audio thread, after the root has been
// pulled and before the block is handed to the host.
func (t *BlockTracker) Observe(block []float32) {
	atomic.AddUint64(&t.blocksProcessed, 1)

	var peak float32
	var sumSq float64
	for _, s := range block {
		abs := s
		if abs < 0 {
			abs = -abs
		}
		if abs > peak {
			peak = abs
		}
		sumSq += float64(s) * float64(s)
	}

	for {
		old := atomic.LoadUint64(&t.peakBits)
		if float32frombits(old) >= peak {
			break
		}
		if atomic.CompareAndSwapUint64(&t.peakBits, old, float32bits(peak)) {
			break
		}
	}

	atomic.StoreUint64(&t.sumSquares, math.Float64bits(sumSq))
	atomic.StoreUint64(&t.sampleCount, uint64(len(block)))
}

// Snapshot is a point-in-time read of the tracker's counters.
type Snapshot struct {
	BlocksProcessed uint64
	Peak            float32
	RMS             float32
}

// Snapshot returns the current statistics. Safe from the control thread.
func (t *BlockTracker) Snapshot() Snapshot {
	n := atomic.LoadUint64(&t.sampleCount)
	sumSq := math.Float64frombits(atomic.LoadUint64(&t.sumSquares))
	rms := float32(0)
	if n > 0 {
		rms = float32(math.Sqrt(sumSq / float64(n)))
	}
	return Snapshot{
		BlocksProcessed: atomic.LoadUint64(&t.blocksProcessed),
		Peak:            float32frombits(atomic.LoadUint64(&t.peakBits)),
		RMS:             rms,
	}
}

// ResetPeak clears the recorded peak, e.g. after the control thread has
// logged it. Safe to call from either thread; it is a diagnostic, not a
// correctness-affecting value.
func (t *BlockTracker) ResetPeak() {
	atomic.StoreUint64(&t.peakBits, 0)
}

func float32bits(f float32) uint64   { return uint64(math.Float32bits(f)) }
func float32frombits(b uint64) float32 { return math.Float32frombits(uint32(b)) }
