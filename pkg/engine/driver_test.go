package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrel-audio/dawcore/pkg/graph"
	"github.com/kestrel-audio/dawcore/pkg/ops"
)

func testCtx(d *Driver) *graph.Context {
	return &graph.Context{SampleRate: 48000, BPM: 120, Arena: d.Arena}
}

func TestDriver_ProcessBlockWritesSilenceAfterShutdown(t *testing.T) {
	d := NewDriver(48000, 2)
	d.Timeline.AddTrack()
	d.Shutdown()
	out := make([]graph.Sample, 16)
	d.ProcessBlock(testCtx(d), out)
	for _, s := range out {
		require.Zero(t, s)
	}
}

func TestDriver_NoteRingRoutesToActiveTrack(t *testing.T) {
	d := NewDriver(48000, 2)
	d.Timeline.AddTrack()
	d.SetActiveTrack(0)

	require.True(t, d.NoteRing.TryPush(NoteEvent{Kind: NoteEventOn, Note: 60}))
	out := make([]graph.Sample, 16)
	d.ProcessBlock(testCtx(d), out)

	track := d.Timeline.Track(0)
	active := false
	for _, v := range track.Synth.Voices {
		if v.IsActive() {
			active = true
		}
	}
	require.True(t, active)
}

func TestDriver_TogglePlayStartsTransport(t *testing.T) {
	d := NewDriver(48000, 2)
	d.Timeline.AddTrack()
	require.False(t, d.IsPlaying())
	d.OpRing.TryPush(ops.TogglePlay())
	out := make([]graph.Sample, 16)
	d.ProcessBlock(testCtx(d), out)
	require.True(t, d.IsPlaying())
}

func TestDriver_SeekMovesPlayhead(t *testing.T) {
	d := NewDriver(48000, 2)
	d.Timeline.AddTrack()
	d.OpRing.TryPush(ops.Seek(1000))
	out := make([]graph.Sample, 16)
	d.ProcessBlock(testCtx(d), out)
	require.Equal(t, graph.Frame(1000), d.Playhead())
}

func TestDriver_PlayheadAdvancesWhilePlaying(t *testing.T) {
	d := NewDriver(48000, 2)
	d.Timeline.AddTrack()
	d.OpRing.TryPush(ops.TogglePlay())
	out := make([]graph.Sample, 64)
	d.ProcessBlock(testCtx(d), out) // first block applies TogglePlay, then advances
	require.Equal(t, graph.Frame(64), d.Playhead())
}

func TestDriver_ParamSnapshotAppliesToVoices(t *testing.T) {
	d := NewDriver(48000, 2)
	d.Timeline.AddTrack()
	d.ParamSnapshot(0).Publish(ParamRecord{FilterCutoff: 500, FilterResonance: 0.1, Attack: 0.02, Decay: 0.2, Sustain: 0.5, Release: 0.3})
	out := make([]graph.Sample, 16)
	d.ProcessBlock(testCtx(d), out)
	for _, v := range d.Timeline.Track(0).Synth.Voices {
		require.Equal(t, float64(500), v.Filter.Cutoff)
	}
}
