package engine

import (
	"github.com/google/uuid"

	"github.com/kestrel-audio/dawcore/internal/rtlog"
	"github.com/kestrel-audio/dawcore/internal/threadcheck"
	"github.com/kestrel-audio/dawcore/pkg/diag"
	"github.com/kestrel-audio/dawcore/pkg/graph"
	"github.com/kestrel-audio/dawcore/pkg/host"
	"github.com/kestrel-audio/dawcore/pkg/ops"
	"github.com/kestrel-audio/dawcore/pkg/track"
)

// Harness wires a Driver to a concrete host.Backend: it constructs the
// Timeline, opens the backend's stream with a callback that runs the
// driver's per-block algorithm, and exposes the control-thread surface
// (note/op rings, parameter snapshots) a UI loop drives.
type Harness struct {
	Driver  *Driver
	Backend host.Backend
	Tracker *diag.BlockTracker

	log *rtlog.Logger
	ctx *graph.Context
}

// NewHarness constructs a harness with a fresh driver over backend,
// not yet started.
func NewHarness(sampleRate float64, voicesPerTrack int, backend host.Backend) *Harness {
	return &Harness{
		Driver:  NewDriver(sampleRate, voicesPerTrack),
		Backend: backend,
		Tracker: diag.NewBlockTracker(),
		log:     rtlog.New("engine"),
	}
}

// Start opens and starts the backend's stream. The registered callback
// marks the calling goroutine as the audio thread (debug builds only),
// builds the per-block Context, runs the driver, and folds the
// rendered block into the diagnostics tracker.
func (h *Harness) Start(sampleRate float64, bpm float64) error {
	h.ctx = &graph.Context{SampleRate: sampleRate, BPM: bpm, Arena: h.Driver.Arena}

	marked := false
	err := h.Backend.Open(sampleRate, func(out []float32, frameCount int) {
		if !marked {
			threadcheck.MarkAudioThread()
			marked = true
		}
		h.Driver.ProcessBlock(h.ctx, out[:frameCount])
		h.Tracker.Observe(out[:frameCount])
	})
	if err != nil {
		h.log.Error("failed to open audio backend", "err", err)
		return err
	}
	if err := h.Backend.Start(); err != nil {
		h.log.Error("failed to start audio backend", "err", err)
		return err
	}
	h.log.Info("audio stream started", "sample_rate", sampleRate, "bpm", bpm)
	return nil
}

// Stop signals the driver to stop producing audio, then halts and
// closes the backend. Safe to call from the control thread only.
func (h *Harness) Stop() error {
	threadcheck.AssertNotAudioThread("Harness.Stop")
	h.Driver.Shutdown()
	if err := h.Backend.Stop(); err != nil {
		return err
	}
	if err := h.Backend.Close(); err != nil {
		return err
	}
	h.log.Info("audio stream stopped")
	return nil
}

// PushNote enqueues an interactive note event for the audio thread to
// drain on its next block. Returns false if the ring is full; the
// caller may spin-retry, which is acceptable for interactive note
// input per the concurrency model.
func (h *Harness) PushNote(ev NoteEvent) bool {
	return h.Driver.NoteRing.TryPush(ev)
}

// PushOp enqueues a control op. Returns false if the ring is full; for
// ops the caller should choose spin-retry or drop depending on intent.
func (h *Harness) PushOp(op ops.Op) bool {
	return h.Driver.OpRing.TryPush(op)
}

// PublishParams publishes a new parameter record for track i, visible
// to the audio thread on its next block.
func (h *Harness) PublishParams(trackIndex int, p ParamRecord) {
	h.Driver.ParamSnapshot(trackIndex).Publish(p)
}

// InsertPlugin builds a new effect instance on the control thread —
// the only place a Plugin is ever constructed — and enqueues an op
// carrying the finished value, so the audio thread's op-drain step
// only has to wire it into the chain, never allocate it. Returns the
// new plugin's id and whether the op ring accepted the push.
func (h *Harness) InsertPlugin(trackIndex int, tag track.PluginTag, chainIdx int) (uuid.UUID, bool) {
	p := track.NewPlugin(tag, h.Driver.Timeline.SampleRate)
	ok := h.PushOp(ops.PluginInsert(trackIndex, p, chainIdx))
	return p.ID, ok
}
