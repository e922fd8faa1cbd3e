// Package engine implements the realtime driver (C10) and the harness
// that spawns it (C12): the per-host-callback algorithm that drains
// the cross-thread rings, applies control ops, snapshots parameters,
// pulls the timeline root, and advances the playhead and note
// scheduling for every track.
package engine

import (
	"sync/atomic"

	"github.com/kestrel-audio/dawcore/pkg/graph"
	"github.com/kestrel-audio/dawcore/pkg/ops"
	"github.com/kestrel-audio/dawcore/pkg/rt"
	"github.com/kestrel-audio/dawcore/pkg/sched"
	"github.com/kestrel-audio/dawcore/pkg/timeline"
)

// NoteRingCapacity and OpRingCapacity size the two SPSC rings between
// the control thread and the audio thread.
const (
	NoteRingCapacity = 256
	OpRingCapacity   = 64
)

// Driver owns everything the realtime callback touches: the timeline,
// the arena, the two rings, per-track parameter snapshots, and the
// transport state (playhead, playing, recording).
type Driver struct {
	Timeline *timeline.Timeline
	Arena    *rt.BlockArena

	NoteRing *rt.Ring[NoteEvent]
	OpRing   *rt.Ring[ops.Op]

	paramSnapshots []*rt.Snapshot[ParamRecord]

	shutdown uint32
	playing  uint32
	playhead graph.Frame

	activeTrack int

	recording      []bool
	recordingStart []map[graph.NoteNumber]graph.Frame
}

// NewDriver constructs a driver over a fresh timeline with the given
// track/voice/sample-rate configuration.
func NewDriver(sampleRate float64, voicesPerTrack int) *Driver {
	d := &Driver{
		Timeline: timeline.NewTimeline(sampleRate, voicesPerTrack),
		Arena:    rt.NewBlockArena(rt.DefaultArenaSamples),
		NoteRing: rt.NewRing[NoteEvent](NoteRingCapacity),
		OpRing:   rt.NewRing[ops.Op](OpRingCapacity),
	}
	d.paramSnapshots = make([]*rt.Snapshot[ParamRecord], timeline.MaxTracks)
	d.recording = make([]bool, timeline.MaxTracks)
	d.recordingStart = make([]map[graph.NoteNumber]graph.Frame, timeline.MaxTracks)
	for i := range d.paramSnapshots {
		d.paramSnapshots[i] = rt.NewSnapshot(DefaultParamRecord())
		d.recordingStart[i] = make(map[graph.NoteNumber]graph.Frame)
	}
	return d
}

// Shutdown signals the audio thread to stop at the start of its next
// block. Safe to call from the control thread at any time.
func (d *Driver) Shutdown() {
	atomic.StoreUint32(&d.shutdown, 1)
}

// ShouldStop reports whether the shutdown flag has been raised.
func (d *Driver) ShouldStop() bool {
	return atomic.LoadUint32(&d.shutdown) != 0
}

// ParamSnapshot returns the parameter snapshot publisher for track i,
// for the control thread to publish new values into.
func (d *Driver) ParamSnapshot(i int) *rt.Snapshot[ParamRecord] {
	return d.paramSnapshots[i]
}

// SetActiveTrack selects which track interactive note events (from
// NoteRing) are routed to. It writes the field directly, without
// synchronization, and no op changes it, so it is called before the
// stream starts.
func (d *Driver) SetActiveTrack(i int) {
	d.activeTrack = i
}

// Playhead reports the current playhead position, in frames.
func (d *Driver) Playhead() graph.Frame {
	return d.playhead
}

// IsPlaying reports whether the transport is running.
func (d *Driver) IsPlaying() bool {
	return atomic.LoadUint32(&d.playing) != 0
}

// ProcessBlock runs one host callback: the eight-step algorithm in
// full, writing exactly len(out) mono samples into out. It is meant to
// be called synchronously, once per block, from the audio thread.
func (d *Driver) ProcessBlock(ctx *graph.Context, out []graph.Sample) {
	if d.ShouldStop() {
		graph.Clear(out)
		return
	}

	d.Arena.BeginBlock()

	d.drainNoteRing()
	d.drainOpRing()

	for i := 0; i < d.Timeline.TrackCount(); i++ {
		t := d.Timeline.Track(i)
		ApplyParams(t.Synth, d.paramSnapshots[i].Load())
	}

	d.Timeline.Process(ctx, out)

	if d.IsPlaying() {
		blockLen := graph.Frame(len(out))
		start, end := d.playhead, d.playhead+blockLen
		for i := 0; i < d.Timeline.TrackCount(); i++ {
			t := d.Timeline.Track(i)
			events := t.Scheduler.EventsForBlock(start, end, nil)
			for _, e := range events {
				switch e.Kind {
				case sched.EventOn:
					t.Synth.NoteOn(e.Note)
				case sched.EventOff:
					t.Synth.NoteOff(e.Note)
				}
			}
		}
		d.playhead += blockLen
	}
}

func noteRecordOf(start, end graph.Frame, note graph.NoteNumber) sched.NoteRecord {
	return sched.NoteRecord{Start: start, End: end, Note: note}
}

func (d *Driver) drainNoteRing() {
	for {
		ev, ok := d.NoteRing.TryPop()
		if !ok {
			return
		}
		if d.activeTrack < 0 || d.activeTrack >= d.Timeline.TrackCount() {
			continue
		}
		t := d.Timeline.Track(d.activeTrack)
		switch ev.Kind {
		case NoteEventOn:
			t.Synth.NoteOn(ev.Note)
			if d.recording[d.activeTrack] {
				d.recordingStart[d.activeTrack][ev.Note] = d.playhead
			}
		case NoteEventOff:
			t.Synth.NoteOff(ev.Note)
			if d.recording[d.activeTrack] {
				if start, ok := d.recordingStart[d.activeTrack][ev.Note]; ok {
					t.Scheduler.Add(noteRecordOf(start, d.playhead, ev.Note))
					delete(d.recordingStart[d.activeTrack], ev.Note)
				}
			}
		}
	}
}

func (d *Driver) drainOpRing() {
	for {
		op, ok := d.OpRing.TryPop()
		if !ok {
			return
		}
		d.applyOp(op)
	}
}

func (d *Driver) quiesceAllNotes() {
	for i := 0; i < d.Timeline.TrackCount(); i++ {
		d.Timeline.Track(i).Synth.AllNotesOff()
	}
}

func (d *Driver) applyOp(op ops.Op) {
	switch op.Kind {
	case ops.KindTogglePlay:
		d.quiesceAllNotes()
		if d.IsPlaying() {
			atomic.StoreUint32(&d.playing, 0)
		} else {
			atomic.StoreUint32(&d.playing, 1)
		}
	case ops.KindReset:
		d.quiesceAllNotes()
		d.playhead = 0
	case ops.KindSeek:
		d.quiesceAllNotes()
		d.playhead = op.SeekFrame
	case ops.KindToggleRecord:
		if op.TrackIndex >= 0 && op.TrackIndex < len(d.recording) {
			d.recording[op.TrackIndex] = !d.recording[op.TrackIndex]
		}
	case ops.KindAddTrack:
		d.Timeline.AddTrack()
	case ops.KindRemoveTrack:
		d.Timeline.RemoveTrack(op.TrackIndex)
	case ops.KindPluginInsert:
		if t := d.Timeline.Track(op.TrackIndex); t != nil && op.Plugin != nil {
			t.InsertPlugin(op.Plugin, op.ChainIdx)
		}
	case ops.KindPluginRemove:
		if t := d.Timeline.Track(op.TrackIndex); t != nil {
			t.RemovePlugin(op.PluginID)
		}
	case ops.KindParam:
		// Param ops are accepted and ignored: voice parameters reach
		// the synths only through the per-track ParamRecord snapshots.
	}
}
