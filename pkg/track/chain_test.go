package track

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrel-audio/dawcore/pkg/graph"
)

type silentSource struct{}

func (silentSource) Process(ctx *graph.Context, out []graph.Sample) { graph.Clear(out) }

func TestChain_EmptyChainIsPassThrough(t *testing.T) {
	c := NewChain(silentSource{})
	require.Equal(t, c.Input, c.Output())
}

func TestChain_InsertMaintainsLinkingInvariant(t *testing.T) {
	c := NewChain(silentSource{})
	p1 := NewPlugin(TagGain, 48000)
	p2 := NewPlugin(TagGate, 48000)
	require.True(t, c.Append(p1))
	require.True(t, c.Append(p2))
	require.Equal(t, p2, c.Plugins[len(c.Plugins)-1].plugin)
	require.Equal(t, c.Output(), c.Plugins[len(c.Plugins)-1])
}

func TestChain_MaxLengthRejectsOverflow(t *testing.T) {
	c := NewChain(silentSource{})
	for i := 0; i < MaxChainLength; i++ {
		require.True(t, c.Append(NewPlugin(TagGain, 48000)))
	}
	require.False(t, c.Append(NewPlugin(TagGain, 48000)))
}

func TestChain_RemoveByIDRelinksRemainder(t *testing.T) {
	c := NewChain(silentSource{})
	p1 := NewPlugin(TagGain, 48000)
	p2 := NewPlugin(TagGate, 48000)
	p3 := NewPlugin(TagDistortion, 48000)
	c.Append(p1)
	c.Append(p2)
	c.Append(p3)

	removed := c.RemoveByID(p2.ID)
	require.Equal(t, p2, removed)
	require.Equal(t, p3, c.Plugins[len(c.Plugins)-1].plugin)
	require.Len(t, c.Plugins, 2)
}
