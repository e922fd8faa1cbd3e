package dsp

import "github.com/kestrel-audio/dawcore/pkg/graph"

// Gate passes upstream through when open, or silences the block
// without pulling upstream at all when closed.
type Gate struct {
	Open     bool
	upstream graph.Node
}

// NewGate constructs an open gate over upstream.
func NewGate(upstream graph.Node) *Gate {
	return &Gate{Open: true, upstream: upstream}
}

// SetUpstream rewires this gate's input.
func (g *Gate) SetUpstream(upstream graph.Node) {
	g.upstream = upstream
}

func (g *Gate) Process(ctx *graph.Context, out []graph.Sample) {
	if !g.Open {
		graph.Clear(out)
		return
	}
	g.upstream.Process(ctx, out)
}

// RenderFrom gates upstream directly, given explicitly rather than
// through g.upstream: a closed gate skips pulling upstream entirely,
// exactly as Process does, but lets a caller that owns its own
// upstream wiring (an effect chain's per-mirror link node) drive the
// same shared Gate state without this struct ever storing that wiring.
func (g *Gate) RenderFrom(ctx *graph.Context, upstream graph.Node, out []graph.Sample) {
	if !g.Open {
		graph.Clear(out)
		return
	}
	upstream.Process(ctx, out)
}
