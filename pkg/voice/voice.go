// Package voice implements the polyphonic subtractive-synth voice
// graph: a fixed {pwm,saw,sub} -> mixer -> lpf -> adsr sub-graph per
// voice, and the Synth that allocates notes across K such voices.
package voice

import (
	"github.com/kestrel-audio/dawcore/pkg/dsp"
	"github.com/kestrel-audio/dawcore/pkg/graph"
)

// NoteState is a voice's current note-assignment state.
type NoteState int

const (
	NoteOff NoteState = iota
	NoteOn
)

// Voice is a fixed sub-graph: three oscillators summed through a
// mixer, shaped by a Moog-ladder filter, gated by a linear ADSR.
type Voice struct {
	Pwm *dsp.Oscillator
	Saw *dsp.Oscillator
	Sub *dsp.Oscillator

	mixer  *dsp.Mixer
	Filter *dsp.MoogFilter
	Env    *dsp.ADSR

	note  graph.NoteNumber
	state NoteState
}

// NewVoice constructs one voice's sub-graph at sampleRate.
func NewVoice(sampleRate float64) *Voice {
	v := &Voice{
		Pwm: dsp.NewOscillator(dsp.OscPWM, sampleRate),
		Saw: dsp.NewOscillator(dsp.OscSaw, sampleRate),
		Sub: dsp.NewOscillator(dsp.OscSub, sampleRate),
	}
	v.mixer = dsp.NewMixer(v.Pwm, v.Saw, v.Sub)
	for i := range v.mixer.Inputs {
		v.mixer.Inputs[i].Gain = 1.0 / 3.0
	}
	v.Filter = dsp.NewMoogFilter(sampleRate, v.mixer)
	v.Env = dsp.NewADSR(sampleRate, v.Filter)
	return v
}

// Process renders this voice's block. An idle voice's ADSR short-
// circuits to silence without pulling the oscillators or filter.
func (v *Voice) Process(ctx *graph.Context, out []graph.Sample) {
	v.Env.Process(ctx, out)
}

// IsActive reports whether the voice is producing sound or still
// decaying through release.
func (v *Voice) IsActive() bool {
	return v.Env.IsActive()
}

// NoteState reports whether the voice currently considers itself
// assigned to a held note.
func (v *Voice) NoteState() NoteState {
	return v.state
}

// Note reports the note number this voice is (or was last) assigned.
func (v *Voice) Note() graph.NoteNumber {
	return v.note
}

// NoteOn assigns note n to this voice: tunes the oscillators, resets
// their phases for coherence, and retriggers the envelope into Attack.
func (v *Voice) NoteOn(n graph.NoteNumber) {
	freq := dsp.NoteToFrequency(n)
	v.Pwm.Freq = freq
	v.Saw.Freq = freq
	v.Sub.Freq = freq
	v.Pwm.ResetPhase()
	v.Saw.ResetPhase()
	v.Sub.ResetPhase()
	v.note = n
	v.state = NoteOn
	v.Env.NoteOn()
}

// NoteOff releases note n only if this voice is still holding exactly
// that note; otherwise it is a no-op (the voice has already been
// reassigned or stolen).
func (v *Voice) NoteOff(n graph.NoteNumber) {
	if v.state == NoteOn && v.note == n {
		v.state = NoteOff
		v.Env.NoteOff()
	}
}

// ForceOff releases whatever note this voice holds, unconditionally.
// Used by all_notes_off and by voice stealing.
func (v *Voice) ForceOff() {
	v.state = NoteOff
	v.Env.NoteOff()
}
