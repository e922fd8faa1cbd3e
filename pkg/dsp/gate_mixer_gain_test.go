package dsp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrel-audio/dawcore/pkg/graph"
)

func TestGate_ClosedSkipsUpstreamPull(t *testing.T) {
	called := false
	src := nodeFunc(func(ctx *graph.Context, out []graph.Sample) { called = true })
	g := NewGate(src)
	g.Open = false
	ctx := newCtx()
	out := make([]graph.Sample, 4)
	g.Process(ctx, out)
	require.False(t, called)
	for _, s := range out {
		require.Zero(t, s)
	}
}

func TestGate_OpenPassesThrough(t *testing.T) {
	g := NewGate(unitySource{})
	ctx := newCtx()
	out := make([]graph.Sample, 4)
	g.Process(ctx, out)
	for _, s := range out {
		require.Equal(t, graph.Sample(1), s)
	}
}

func TestGain_Scales(t *testing.T) {
	g := NewGain(unitySource{})
	g.Value = 0.5
	ctx := newCtx()
	out := make([]graph.Sample, 4)
	g.Process(ctx, out)
	for _, s := range out {
		require.Equal(t, graph.Sample(0.5), s)
	}
}

func TestMixer_SumsInputsAtGain(t *testing.T) {
	m := NewMixer(unitySource{}, unitySource{})
	ctx := newCtx()
	out := make([]graph.Sample, 4)
	m.Process(ctx, out)
	for _, s := range out {
		require.Equal(t, graph.Sample(2), s)
	}
}
