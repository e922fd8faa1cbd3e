// Package timeline implements the project-wide master mixer over a
// fixed-capacity set of tracks.
package timeline

import (
	"github.com/kestrel-audio/dawcore/pkg/dsp"
	"github.com/kestrel-audio/dawcore/pkg/graph"
	"github.com/kestrel-audio/dawcore/pkg/track"
)

// MaxTracks is the fixed capacity of a Timeline.
const MaxTracks = 8

// Timeline owns MAX_TRACKS pre-constructed Track slots and mixes the
// live ones into a master output. Tracks beyond TrackCount are
// pre-allocated, empty, and silent — add_track never allocates on the
// audio thread, it only activates the next trailing slot.
type Timeline struct {
	SampleRate float64
	Voices     int

	tracks     [MaxTracks]*track.Track
	trackCount int
	master     *dsp.Mixer

	// scratch holds the live tracks as graph.Nodes for rebuildMaster,
	// reused across calls so the rebuild never allocates.
	scratch [MaxTracks]graph.Node
}

// NewTimeline pre-constructs MAX_TRACKS empty tracks at sampleRate,
// each with the given voice count, and a master mixer over none of
// them yet.
func NewTimeline(sampleRate float64, voices int) *Timeline {
	tl := &Timeline{SampleRate: sampleRate, Voices: voices}
	for i := range tl.tracks {
		tl.tracks[i] = track.NewTrack(voices, sampleRate)
	}
	tl.master = dsp.NewMixerWithCapacity(MaxTracks)
	return tl
}

// TrackCount reports how many of the pre-allocated slots are live.
func (tl *Timeline) TrackCount() int {
	return tl.trackCount
}

// Track returns the live track at index i, or nil if out of range.
func (tl *Timeline) Track(i int) *track.Track {
	if i < 0 || i >= tl.trackCount {
		return nil
	}
	return tl.tracks[i]
}

// AddTrack activates the next pre-constructed empty slot and returns
// its index, or -1 if the timeline is already at MAX_TRACKS.
func (tl *Timeline) AddTrack() int {
	if tl.trackCount >= MaxTracks {
		return -1
	}
	idx := tl.trackCount
	tl.trackCount++
	tl.rebuildMaster()
	return idx
}

// RemoveTrack clears track i and rotates the remaining live tracks
// leftward by swaps so active tracks stay contiguous, preserving the
// pre-allocated trailing empty slots for reuse by a later AddTrack.
func (tl *Timeline) RemoveTrack(i int) bool {
	if i < 0 || i >= tl.trackCount {
		return false
	}
	tl.tracks[i].Clear()
	removed := tl.tracks[i]
	for j := i; j < tl.trackCount-1; j++ {
		tl.tracks[j] = tl.tracks[j+1]
	}
	tl.tracks[tl.trackCount-1] = removed
	tl.trackCount--
	tl.rebuildMaster()
	return true
}

// rebuildMaster resyncs the master mixer's input set with the current
// live tracks. It reuses the timeline's own fixed-size scratch array
// and the mixer's preallocated Inputs backing array, so AddTrack and
// RemoveTrack never allocate when called from the realtime audio
// thread's op-drain step.
func (tl *Timeline) rebuildMaster() {
	nodes := tl.scratch[:tl.trackCount]
	for i := 0; i < tl.trackCount; i++ {
		nodes[i] = tl.tracks[i]
	}
	tl.master.Rebuild(nodes...)
}

// Process pulls every live track and sums them into out via the
// master mixer.
func (tl *Timeline) Process(ctx *graph.Context, out []graph.Sample) {
	tl.master.Process(ctx, out)
}
