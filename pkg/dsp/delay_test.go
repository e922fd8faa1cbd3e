package dsp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrel-audio/dawcore/pkg/graph"
)

func TestDelay_FeedsBackAfterDelayTime(t *testing.T) {
	d := NewDelay(48000, 1.0, unitySource{})
	d.DelayTime = 10.0 / 48000.0
	d.Feedback = 0
	d.Mix = 1
	ctx := newCtx()
	out := make([]graph.Sample, 32)
	d.Process(ctx, out)

	for i := 0; i < 10; i++ {
		require.Zero(t, out[i], "output before delay time has elapsed must still be silent (buffer starts zeroed)")
	}
	require.Equal(t, graph.Sample(1), out[10])
}

func TestDelay_DryWhenMixZero(t *testing.T) {
	d := NewDelay(48000, 0.5, unitySource{})
	d.Mix = 0
	ctx := newCtx()
	out := make([]graph.Sample, 8)
	d.Process(ctx, out)
	for _, s := range out {
		require.Equal(t, graph.Sample(1), s)
	}
}
