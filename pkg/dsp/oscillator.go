package dsp

import (
	"math"

	"github.com/kestrel-audio/dawcore/pkg/graph"
)

// OscKind selects the waveform shape an Oscillator produces.
type OscKind int

const (
	OscSine OscKind = iota
	OscSaw
	OscPWM
	OscSub
)

// Oscillator is a phase-accumulating source node. Phase lives in
// [0,1) and wraps by subtraction, never by modulo, so it stays exact
// across long runs.
type Oscillator struct {
	Kind OscKind
	Freq float64 // Hz

	// Duty is consulted by OscPWM and OscSub: +1 while phase < Duty.
	Duty float64

	// OffsetSemitones shifts OscSub's effective phase increment by
	// 2^(offset/12) relative to Freq, for a sub-oscillator tuned
	// below (or above) the primary.
	OffsetSemitones float64

	SampleRate float64
	phase      float64
}

// NewOscillator builds an oscillator of the given kind at sampleRate.
// Duty defaults to 0.5 for PWM/Sub kinds.
func NewOscillator(kind OscKind, sampleRate float64) *Oscillator {
	return &Oscillator{
		Kind:       kind,
		Duty:       0.5,
		SampleRate: sampleRate,
	}
}

// ResetPhase sets phase to 0. Called on note-on for phase coherence
// across voices retriggering the same oscillator slot.
func (o *Oscillator) ResetPhase() {
	o.phase = 0
}

func (o *Oscillator) increment() float64 {
	inc := o.Freq / o.SampleRate
	if o.Kind == OscSub {
		inc *= math.Pow(2, o.OffsetSemitones/12)
	}
	return inc
}

// Process fills out with one block of the configured waveform,
// advancing phase by freq/sample_rate each sample and wrapping by
// subtraction once phase reaches 1.
func (o *Oscillator) Process(ctx *graph.Context, out []graph.Sample) {
	inc := o.increment()
	for i := range out {
		out[i] = graph.Sample(o.sampleAt(o.phase))
		o.phase += inc
		for o.phase >= 1 {
			o.phase -= 1
		}
	}
}

func (o *Oscillator) sampleAt(phase float64) float64 {
	switch o.Kind {
	case OscSine:
		return math.Sin(2 * math.Pi * phase)
	case OscSaw:
		return 2*phase - 1
	case OscPWM, OscSub:
		if phase < o.Duty {
			return 1
		}
		return -1
	default:
		return 0
	}
}

// NoteToFrequency converts a MIDI note number to Hz (69 = A440).
func NoteToFrequency(note graph.NoteNumber) float64 {
	return 440.0 * math.Pow(2.0, (float64(note)-69.0)/12.0)
}
