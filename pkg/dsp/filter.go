package dsp

import (
	"math"

	"github.com/kestrel-audio/dawcore/pkg/graph"
)

// ThermalVoltage is the D'Angelo-Valimaki Moog-ladder thermal voltage
// constant used in the per-sample stage update.
const ThermalVoltage = 0.312

// MoogFilter is a four-stage cascaded low-pass ladder filter, grounded
// on the D'Angelo-Valimaki formulation. Its state (V, dV, tV) must
// persist across effect-chain topology swaps, so it is always
// constructed once and referenced by pointer from both chain mirrors.
type MoogFilter struct {
	Cutoff     float64 // Hz
	Resonance  float64 // 0..~4, self-oscillates near the top of the range
	Drive      float64

	SampleRate float64

	v  [4]float64
	dv [4]float64
	tv [4]float64

	upstream graph.Node
}

// NewMoogFilter constructs a filter with the given upstream source.
// Drive defaults to 1 (unity) and resonance to 0.
func NewMoogFilter(sampleRate float64, upstream graph.Node) *MoogFilter {
	return &MoogFilter{
		Cutoff:     20000,
		Resonance:  0,
		Drive:      1,
		SampleRate: sampleRate,
		upstream:   upstream,
	}
}

// Process pulls one block from upstream into a rented scratch buffer,
// then runs each sample through the four cascaded ladder stages.
// Cutoff, resonance and drive are read once per block, matching the
// spec's "parameters updated at block boundaries only" rule — updating
// mid-block would make g and x inconsistent across the four stages.
func (f *MoogFilter) Process(ctx *graph.Context, out []graph.Sample) {
	in := graph.PullInto(ctx, f.upstream, out)
	f.ProcessWith(in, out)
}

// ProcessWith runs the cascaded ladder stages against an already-pulled
// input block without touching f.upstream. Used by callers that own
// their own upstream wiring (an effect chain's per-mirror link node)
// while still driving the one shared set of stage state.
func (f *MoogFilter) ProcessWith(in, out []graph.Sample) {
	x := math.Pi * f.Cutoff / f.SampleRate
	g := 4 * math.Pi * ThermalVoltage * f.Cutoff * (1 - x) / (1 + x)

	for i := range out {
		input := float64(in[i]) * f.Drive
		feedback := f.Resonance * f.v[3]
		stageIn := input - feedback

		for s := 0; s < 4; s++ {
			var prevOut float64
			if s == 0 {
				prevOut = stageIn
			} else {
				prevOut = f.v[s-1]
			}
			f.tv[s] = math.Tanh(f.v[s] / (2 * ThermalVoltage))
			inputTanh := math.Tanh(prevOut / (2 * ThermalVoltage))
			f.dv[s] = g * (inputTanh - f.tv[s])
			f.v[s] += f.dv[s] / f.SampleRate
		}

		out[i] = graph.Sample(f.v[3])
	}
}

// SetUpstream rewires this filter's input.
func (f *MoogFilter) SetUpstream(upstream graph.Node) {
	f.upstream = upstream
}

// Reset clears all filter state. Voice stealing does not call it; a
// stolen voice keeps the filter state of its prior note.
func (f *MoogFilter) Reset() {
	f.v = [4]float64{}
	f.dv = [4]float64{}
	f.tv = [4]float64{}
}
