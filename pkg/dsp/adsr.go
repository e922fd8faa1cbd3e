package dsp

import "github.com/kestrel-audio/dawcore/pkg/graph"

// Stage is the current phase of an ADSR envelope.
type Stage int

const (
	StageIdle Stage = iota
	StageAttack
	StageDecay
	StageSustain
	StageRelease
)

// ADSR is a linear-rate envelope generator. Unlike a one-pole or
// exponential envelope, every stage moves at a constant per-sample
// rate derived from its time parameter, so the stage boundary is
// crossed at a predictable sample count.
type ADSR struct {
	Attack  float64 // seconds
	Decay   float64 // seconds
	Sustain float64 // level, 0..1
	Release float64 // seconds

	SampleRate float64

	stage Stage
	value float64

	upstream graph.Node
}

// NewADSR constructs an idle envelope gating upstream.
func NewADSR(sampleRate float64, upstream graph.Node) *ADSR {
	return &ADSR{
		Attack:     0.01,
		Decay:      0.1,
		Sustain:    0.7,
		Release:    0.3,
		SampleRate: sampleRate,
		stage:      StageIdle,
		upstream:   upstream,
	}
}

// Stage reports the envelope's current stage.
func (e *ADSR) Stage() Stage { return e.stage }

// Value reports the envelope's current level, in [0,1].
func (e *ADSR) Value() float64 { return e.value }

// NoteOn retriggers the envelope into Attack from any stage.
func (e *ADSR) NoteOn() {
	e.stage = StageAttack
}

// NoteOff moves the envelope into Release from any non-Idle stage; a
// note-off received while already Idle is a no-op.
func (e *ADSR) NoteOff() {
	if e.stage != StageIdle {
		e.stage = StageRelease
	}
}

// IsActive reports whether the envelope is producing non-zero output
// or still decaying toward zero.
func (e *ADSR) IsActive() bool {
	return e.stage != StageIdle
}

// Process advances the envelope one block and multiplies it into
// upstream's output. While Idle, the block is filled with silence and
// upstream is never pulled — an idle voice's oscillators and filter do
// no work.
func (e *ADSR) Process(ctx *graph.Context, out []graph.Sample) {
	if e.stage == StageIdle {
		graph.Clear(out)
		return
	}

	in := graph.PullInto(ctx, e.upstream, out)

	attackRate := safeRate(1, e.Attack, e.SampleRate)
	decayRate := safeRate(1-e.Sustain, e.Decay, e.SampleRate)
	releaseRate := safeRate(e.Sustain, e.Release, e.SampleRate)

	for i := range out {
		// Write the level reached by the end of the previous sample
		// before advancing it, so sample 0 of a fresh Attack is 0, not
		// one rate-step into it.
		out[i] = graph.Sample(float64(in[i]) * e.value)

		switch e.stage {
		case StageAttack:
			e.value += attackRate
			// The tolerance absorbs float accumulation error, so the
			// stage ends after attack·sr steps rather than one later.
			if e.value >= 1-1e-9 {
				e.value = 1
				e.stage = StageDecay
			}
		case StageDecay:
			e.value -= decayRate
			if e.value <= e.Sustain {
				e.value = e.Sustain
				e.stage = StageSustain
			}
		case StageSustain:
			e.value = e.Sustain
		case StageRelease:
			e.value -= releaseRate
			if e.value <= 0 {
				e.value = 0
				e.stage = StageIdle
			}
		}
	}
}

// safeRate computes the per-sample delta for a span-over-seconds rate,
// treating a non-positive duration as instantaneous (the full span in
// one sample) rather than dividing by zero.
func safeRate(span, seconds, sampleRate float64) float64 {
	if seconds <= 0 {
		return span
	}
	return span / (seconds * sampleRate)
}
