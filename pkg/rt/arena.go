package rt

import "github.com/kestrel-audio/dawcore/internal/threadcheck"

// DefaultArenaSamples is the default backing capacity of a BlockArena,
// expressed in float32 samples (512 KiB / 4 bytes).
const DefaultArenaSamples = 512 * 1024 / 4

// BlockArena is a per-callback bump allocator for scratch Sample buffers.
// It is reset once per audio block (BeginBlock) and rents buffers to DSP
// nodes during that block's pull traversal; nothing is ever freed
// individually, and nothing it hands out is valid past the next reset.
//
// BlockArena makes zero system calls and performs zero heap allocations
// once constructed; every Rent call carves a slice out of the
// pre-allocated backing array.
type BlockArena struct {
	backing []float32
	offset  int
}

// NewBlockArena allocates a BlockArena with room for capacity samples.
// Call this once, off the audio thread, before the stream starts.
func NewBlockArena(capacitySamples int) *BlockArena {
	if capacitySamples <= 0 {
		capacitySamples = DefaultArenaSamples
	}
	return &BlockArena{backing: make([]float32, capacitySamples)}
}

// BeginBlock resets the bump pointer. Capacity is retained; no
// reallocation happens here. Called once at the start of every audio
// callback, before anything rents from the arena.
func (a *BlockArena) BeginBlock() {
	a.offset = 0
}

// Rent returns a zeroed scratch buffer of exactly n samples, valid until
// the next BeginBlock. Running out of backing capacity is a hard bug in
// a correctly sized system: under the debug build tag it panics via
// internal/threadcheck; in a release build it degrades to a short,
// silence-producing buffer rather than indexing out of bounds.
func (a *BlockArena) Rent(n int) []float32 {
	if a.offset+n > len(a.backing) {
		threadcheck.Unreachable("BlockArena: capacity exceeded")
		if a.offset >= len(a.backing) {
			return nil
		}
		n = len(a.backing) - a.offset
	}
	buf := a.backing[a.offset : a.offset+n : a.offset+n]
	for i := range buf {
		buf[i] = 0
	}
	a.offset += n
	return buf
}

// Remaining reports how many samples are left in the current block.
// Diagnostic only.
func (a *BlockArena) Remaining() int {
	return len(a.backing) - a.offset
}
