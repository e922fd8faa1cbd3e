package track

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestTrack_InsertPluginKeepsMirrorsAgreeing(t *testing.T) {
	tr := NewTrack(4, 48000)
	p := NewPlugin(TagGain, 48000)
	require.True(t, tr.InsertPlugin(p, -1))
	require.NotEqual(t, uuid.Nil, p.ID)
	require.True(t, tr.MirrorsAgree())
}

func TestTrack_RemovePluginKeepsMirrorsAgreeing(t *testing.T) {
	tr := NewTrack(4, 48000)
	p := NewPlugin(TagGain, 48000)
	tr.InsertPlugin(p, -1)
	tr.InsertPlugin(NewPlugin(TagGate, 48000), -1)
	require.True(t, tr.RemovePlugin(p.ID))
	require.True(t, tr.MirrorsAgree())
}

func TestTrack_ActiveChainSwapsOnMutation(t *testing.T) {
	tr := NewTrack(2, 48000)
	before := tr.ActiveChain()
	tr.InsertPlugin(NewPlugin(TagGain, 48000), -1)
	after := tr.ActiveChain()
	require.NotSame(t, before, after, "a plugin mutation must publish a new active chain")
}

func TestTrack_ClearQuiescesAndResetsChains(t *testing.T) {
	tr := NewTrack(2, 48000)
	tr.Synth.NoteOn(60)
	tr.InsertPlugin(NewPlugin(TagGain, 48000), -1)
	tr.Clear()
	require.Len(t, tr.ActiveChain().Plugins, 0)
	for _, v := range tr.Synth.Voices {
		require.False(t, v.IsActive())
	}
}
