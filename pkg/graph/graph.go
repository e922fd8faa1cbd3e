// Package graph defines the uniform node contract that every DSP block
// in the core implements, and the Context a block-rate pull traversal
// carries through the graph: sample rate, tempo, and the per-callback
// scratch arena nodes rent temporary buffers from.
package graph

import "github.com/kestrel-audio/dawcore/pkg/rt"

// Frame is a count of audio samples since time 0.
type Frame uint64

// Sample is one audio sample, nominally in [-1, 1].
type Sample = float32

// NoteNumber is a MIDI-style note number, 0..127 (69 = A440).
type NoteNumber uint8

// Context is threaded through every process call in one block's pull
// traversal. It is owned by the audio thread for the duration of the
// callback; nothing it points to may be retained past BeginBlock.
type Context struct {
	SampleRate float64
	BPM        float64
	Arena      *rt.BlockArena
}

// BeatsToFrames converts a beat offset to an absolute frame count at
// the context's current sample rate and tempo.
func (c *Context) BeatsToFrames(beats float64) Frame {
	return Frame(roundHalfAway(beats * 60 * c.SampleRate / c.BPM))
}

func roundHalfAway(v float64) float64 {
	if v < 0 {
		return -roundHalfAway(-v)
	}
	f := float64(int64(v))
	if v-f >= 0.5 {
		f++
	}
	return f
}

// Node is the uniform contract every DSP block satisfies: given a
// Context, write exactly len(out) samples into out. Dispatch happens
// once per block per node — no per-sample virtual call is required.
type Node interface {
	Process(ctx *Context, out []Sample)
}

// Source is a Node with no upstream — an oscillator, a silence
// generator — so graph wiring code can distinguish leaves from nodes
// that pull further upstream nodes of their own.
type Source interface {
	Node
}

// PullInto rents a temporary buffer from ctx.Arena sized like out,
// recursively processes upstream into it, and returns the buffer. It
// is the one-input-source half of the pull-into-temp pattern described
// for nodes with a single upstream; mixers instead call this once per
// input and accumulate.
func PullInto(ctx *Context, upstream Node, out []Sample) []Sample {
	tmp := ctx.Arena.Rent(len(out))
	upstream.Process(ctx, tmp)
	return tmp
}

// Clear zeroes a buffer. Used by nodes with no active upstream (e.g. a
// muted mixer input) to produce silence without a conditional in the
// per-sample loop.
func Clear(out []Sample) {
	for i := range out {
		out[i] = 0
	}
}
