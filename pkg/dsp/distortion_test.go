package dsp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDistortion_HardClampsToUnitRange(t *testing.T) {
	d := NewDistortion(DistortionHard, unitySource{})
	d.Drive = 4
	ctx := newCtx()
	buf := make([]float32, 8)
	d.Process(ctx, buf)
	for _, s := range buf {
		require.LessOrEqual(t, s, float32(1.0001))
	}
}

func TestDistortion_DryWetMix(t *testing.T) {
	d := NewDistortion(DistortionTanh, unitySource{})
	d.Mix = 0
	ctx := newCtx()
	buf := make([]float32, 4)
	d.Process(ctx, buf)
	for _, s := range buf {
		require.InDelta(t, 1.0, s, 1e-6, "mix=0 must pass dry signal through unshaped")
	}
}
