package dsp

import (
	"math"

	"github.com/kestrel-audio/dawcore/pkg/graph"
)

// DistortionMode selects the waveshaping curve Distortion applies.
type DistortionMode int

const (
	DistortionHard DistortionMode = iota
	DistortionSoft
	DistortionTanh
)

// Distortion waveshapes its upstream's output, then blends dry and wet
// signal according to Mix.
type Distortion struct {
	Mode  DistortionMode
	Drive float64 // >= 1 boosts into the curve; gain-compensated after shaping
	Mix   float32 // 0 = dry, 1 = fully wet

	upstream graph.Node
}

// NewDistortion constructs a distortion node at unity drive, fully wet.
func NewDistortion(mode DistortionMode, upstream graph.Node) *Distortion {
	return &Distortion{Mode: mode, Drive: 1, Mix: 1, upstream: upstream}
}

func (d *Distortion) shape(x float64) float64 {
	driven := d.Drive * x
	var y float64
	switch d.Mode {
	case DistortionHard:
		y = clampF(driven, -1, 1)
	case DistortionSoft:
		y = driven - (driven*driven*driven)/3
	case DistortionTanh:
		y = math.Tanh(driven)
	}
	if d.Drive > 1 {
		y /= d.Drive
	}
	return y
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (d *Distortion) Process(ctx *graph.Context, out []graph.Sample) {
	in := graph.PullInto(ctx, d.upstream, out)
	d.ProcessWith(in, out)
}

// ProcessWith shapes an already-pulled input block into out without
// touching d.upstream. Used by callers that own their own upstream
// wiring (an effect chain's per-mirror link node).
func (d *Distortion) ProcessWith(in, out []graph.Sample) {
	for i := range out {
		x := float64(in[i])
		wet := d.shape(x)
		out[i] = graph.Sample(x + (wet-x)*float64(d.Mix))
	}
}
