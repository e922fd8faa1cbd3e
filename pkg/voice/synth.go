package voice

import "github.com/kestrel-audio/dawcore/pkg/graph"

// Synth owns a fixed pool of K voices and allocates incoming notes
// across them: free-voice-first, then round-robin stealing once every
// voice is busy. Free-first preserves long releases; round-robin
// stealing guarantees forward progress under sustained input without
// extra bookkeeping.
type Synth struct {
	Voices  []*Voice
	nextIdx int
}

// NewSynth constructs a synth with k voices at sampleRate.
func NewSynth(k int, sampleRate float64) *Synth {
	s := &Synth{Voices: make([]*Voice, k)}
	for i := range s.Voices {
		s.Voices[i] = NewVoice(sampleRate)
	}
	return s
}

// NoteOn assigns note n to the first voice whose state is Off; if none
// is free, the voice at the round-robin pointer is stolen. Duplicate
// note-on with the same n is permitted — the newly assigned voice owns
// n for subsequent note-off addressing; whichever voice held n before
// is not hunted down and released, since it may already have moved on.
func (s *Synth) NoteOn(n graph.NoteNumber) {
	for _, v := range s.Voices {
		if v.NoteState() == NoteOff {
			v.NoteOn(n)
			return
		}
	}
	s.steal(n)
}

func (s *Synth) steal(n graph.NoteNumber) {
	k := len(s.Voices)
	if k == 0 {
		return
	}
	v := s.Voices[s.nextIdx]
	v.ForceOff()
	v.NoteOn(n)
	s.nextIdx = (s.nextIdx + 1) % k
}

// NoteOff sends note-off to every voice currently holding n — normally
// exactly one, but never more than one is incorrect: a voice only
// reacts if it still holds n exactly.
func (s *Synth) NoteOff(n graph.NoteNumber) {
	for _, v := range s.Voices {
		v.NoteOff(n)
	}
}

// AllNotesOff releases every voice currently On.
func (s *Synth) AllNotesOff() {
	for _, v := range s.Voices {
		if v.NoteState() == NoteOn {
			v.ForceOff()
		}
	}
}

// Process sums every voice's output at equal gain into out.
func (s *Synth) Process(ctx *graph.Context, out []graph.Sample) {
	graph.Clear(out)
	for _, v := range s.Voices {
		tmp := graph.PullInto(ctx, v, out)
		for i := range out {
			out[i] += tmp[i]
		}
	}
}
