package dsp

import "github.com/kestrel-audio/dawcore/pkg/graph"

// MixerInput pairs an upstream node with its per-input gain.
type MixerInput struct {
	Node graph.Node
	Gain float32
}

// Mixer sums N upstream pulls, each scaled by its own gain. Headroom
// is the caller's responsibility; the mixer does not normalize.
type Mixer struct {
	Inputs []MixerInput
}

// NewMixer constructs a mixer over the given inputs, each at unity
// gain unless set otherwise.
func NewMixer(inputs ...graph.Node) *Mixer {
	m := &Mixer{Inputs: make([]MixerInput, len(inputs))}
	for i, n := range inputs {
		m.Inputs[i] = MixerInput{Node: n, Gain: 1}
	}
	return m
}

// NewMixerWithCapacity constructs an empty mixer whose Inputs slice is
// preallocated to capacity cap, so Rebuild can reslice into it without
// ever reallocating.
func NewMixerWithCapacity(cap int) *Mixer {
	return &Mixer{Inputs: make([]MixerInput, 0, cap)}
}

// Rebuild overwrites the mixer's input set in place, each at unity
// gain, reusing the existing backing array rather than allocating a
// new one — callers whose input set changes within a fixed upper
// bound (e.g. a timeline's live track count) can call this from the
// realtime audio thread's op-drain step without it allocating.
func (m *Mixer) Rebuild(inputs ...graph.Node) {
	m.Inputs = m.Inputs[:0]
	for _, n := range inputs {
		m.Inputs = append(m.Inputs, MixerInput{Node: n, Gain: 1})
	}
}

func (m *Mixer) Process(ctx *graph.Context, out []graph.Sample) {
	graph.Clear(out)
	for _, in := range m.Inputs {
		tmp := graph.PullInto(ctx, in.Node, out)
		for i := range out {
			out[i] += tmp[i] * in.Gain
		}
	}
}
