package dsp

import "github.com/kestrel-audio/dawcore/pkg/graph"

// Gain scales its upstream's output by a scalar.
type Gain struct {
	Value    float32
	upstream graph.Node
}

// NewGain constructs a unity-gain node over upstream.
func NewGain(upstream graph.Node) *Gain {
	return &Gain{Value: 1, upstream: upstream}
}

// SetUpstream rewires this gain's input.
func (g *Gain) SetUpstream(upstream graph.Node) {
	g.upstream = upstream
}

func (g *Gain) Process(ctx *graph.Context, out []graph.Sample) {
	in := graph.PullInto(ctx, g.upstream, out)
	g.ProcessWith(in, out)
}

// ProcessWith scales an already-pulled input block into out without
// touching g.upstream at all. Used by callers that own their own
// upstream wiring (an effect chain's per-mirror link node), so the
// same Gain state can be driven by two independently-wired callers.
func (g *Gain) ProcessWith(in, out []graph.Sample) {
	for i := range out {
		out[i] = in[i] * g.Value
	}
}
