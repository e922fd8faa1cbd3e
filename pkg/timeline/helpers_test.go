package timeline

import (
	"github.com/kestrel-audio/dawcore/pkg/graph"
	"github.com/kestrel-audio/dawcore/pkg/rt"
)

func newCtx() *graph.Context {
	ctx := &graph.Context{SampleRate: 48000, BPM: 120, Arena: rt.NewBlockArena(rt.DefaultArenaSamples)}
	ctx.Arena.BeginBlock()
	return ctx
}
