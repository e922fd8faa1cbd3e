package voice

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSynth_NoteOnPrefersFreeVoice(t *testing.T) {
	s := NewSynth(4, 48000)
	s.NoteOn(60)
	active := 0
	for _, v := range s.Voices {
		if v.NoteState() == NoteOn {
			active++
		}
	}
	require.Equal(t, 1, active)
}

func TestSynth_StealsRoundRobinWhenAllBusy(t *testing.T) {
	s := NewSynth(2, 48000)
	s.NoteOn(60)
	s.NoteOn(61)
	// Both voices now busy; a third note-on must steal one rather than
	// silently fail to sound.
	s.NoteOn(62)

	held := map[uint8]bool{}
	for _, v := range s.Voices {
		if v.NoteState() == NoteOn {
			held[uint8(v.Note())] = true
		}
	}
	require.Contains(t, held, uint8(62))
}

func TestSynth_NoteOffReleasesHoldingVoice(t *testing.T) {
	s := NewSynth(2, 48000)
	s.NoteOn(60)
	s.NoteOff(60)
	for _, v := range s.Voices {
		if v.Note() == 60 {
			require.Equal(t, NoteOff, v.NoteState())
		}
	}
}

func TestSynth_AllNotesOffReleasesEveryVoice(t *testing.T) {
	s := NewSynth(3, 48000)
	s.NoteOn(60)
	s.NoteOn(61)
	s.AllNotesOff()
	for _, v := range s.Voices {
		require.Equal(t, NoteOff, v.NoteState())
	}
}
