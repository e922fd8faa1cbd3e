package engine

import "github.com/kestrel-audio/dawcore/pkg/voice"

// ParamRecord is the plain-old-data parameter bag published per track
// through a rt.Snapshot: the control thread writes a whole record:
// whole-record publication is what makes a ParamSnapshot tear-free —
// no individual field is ever partially updated on the reader's side.
type ParamRecord struct {
	FilterCutoff    float32
	FilterResonance float32
	Attack          float32
	Decay           float32
	Sustain         float32
	Release         float32
}

// DefaultParamRecord is a reasonable starting parameter bag for a
// freshly constructed track.
func DefaultParamRecord() ParamRecord {
	return ParamRecord{
		FilterCutoff:    8000,
		FilterResonance: 0.2,
		Attack:          0.01,
		Decay:           0.1,
		Sustain:         0.7,
		Release:         0.3,
	}
}

// ApplyParams pushes a snapshot's values into every voice of synth.
// Called once per block, on the audio thread, after the block's
// snapshot has been loaded.
func ApplyParams(synth *voice.Synth, p ParamRecord) {
	for _, v := range synth.Voices {
		v.Filter.Cutoff = float64(p.FilterCutoff)
		v.Filter.Resonance = float64(p.FilterResonance)
		v.Env.Attack = float64(p.Attack)
		v.Env.Decay = float64(p.Decay)
		v.Env.Sustain = float64(p.Sustain)
		v.Env.Release = float64(p.Release)
	}
}
