package track

import (
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/kestrel-audio/dawcore/pkg/graph"
	"github.com/kestrel-audio/dawcore/pkg/sched"
	"github.com/kestrel-audio/dawcore/pkg/voice"
)

// Track owns a synth, a note scheduler, and two structurally-identical
// effect chains behind an atomically swapped active index. The audio
// thread only ever reads chains[active] with an acquire load; all
// mutation goes through the publish protocol in InsertPlugin and
// RemovePlugin, which the driver applies from its op-drain step.
type Track struct {
	Synth     *voice.Synth
	Scheduler *sched.NoteScheduler

	sampleRate float64
	chains     [2]*Chain
	active     uint32 // atomic; read with acquire on the audio thread
}

// NewTrack constructs an empty track: a K-voice synth, an empty note
// scheduler, and two empty chains both reading from the synth.
func NewTrack(voices int, sampleRate float64) *Track {
	t := &Track{
		Synth:      voice.NewSynth(voices, sampleRate),
		Scheduler:  sched.NewNoteScheduler(),
		sampleRate: sampleRate,
	}
	t.chains[0] = NewChain(t.Synth)
	t.chains[1] = NewChain(t.Synth)
	return t
}

// ActiveChain returns the chain the audio thread should process this
// block. Safe to call from the audio thread; it performs the single
// acquire load the design calls for.
func (t *Track) ActiveChain() *Chain {
	return t.chains[atomic.LoadUint32(&t.active)]
}

// Process renders this track's block: the synth feeding the active
// effect chain.
func (t *Track) Process(ctx *graph.Context, out []graph.Sample) {
	t.ActiveChain().Process(ctx, out)
}

// InsertPlugin installs a caller-constructed plugin at position idx in
// the chain (append if idx < 0), following the control-thread publish
// protocol: insert it into the inactive chain first, publish the
// swap, then replay the same structural change into the
// newly-inactive chain. Both mirrors wrap p in their own chainLink, so
// they stay tag-for-tag and state-pointer-for-pointer identical while
// each keeps its own upstream wiring.
//
// p must already exist — built by NewPlugin on the control thread —
// so this method itself never allocates, which is what lets it run
// safely from the realtime audio thread's op-drain step.
func (t *Track) InsertPlugin(p *Plugin, idx int) bool {
	a := atomic.LoadUint32(&t.active)
	inactiveIdx := a ^ 1

	if idx < 0 {
		idx = len(t.chains[inactiveIdx].Plugins)
	}
	if !t.chains[inactiveIdx].Insert(idx, p) {
		return false
	}

	atomic.StoreUint32(&t.active, inactiveIdx)

	t.chains[a].Insert(idx, p)

	return true
}

// RemovePlugin uninstalls the plugin with the given id from both chain
// mirrors, following the two-step quiescent-removal protocol: remove
// from the chain the audio thread is NOT currently reading, swap
// active to it, then remove the same plugin from the now-inactive
// chain. Only once both mirrors have dropped it is the plugin's state
// unreachable from the audio thread and safe to let go.
func (t *Track) RemovePlugin(id uuid.UUID) bool {
	a := atomic.LoadUint32(&t.active)
	inactiveIdx := a ^ 1

	if t.chains[inactiveIdx].RemoveByID(id) == nil {
		return false
	}

	atomic.StoreUint32(&t.active, inactiveIdx)

	t.chains[a].RemoveByID(id)

	return true
}

// MirrorsAgree reports whether both chains carry the same plugin tag
// sequence and share state pointers slot-for-slot — the invariant the
// swap protocol is built to preserve.
func (t *Track) MirrorsAgree() bool {
	ta, tb := t.chains[0].Tags(), t.chains[1].Tags()
	if len(ta) != len(tb) {
		return false
	}
	for i := range ta {
		if ta[i] != tb[i] {
			return false
		}
		if t.chains[0].Plugins[i].plugin.State != t.chains[1].Plugins[i].plugin.State {
			return false
		}
	}
	return true
}

// Clear quiesces notes and drops both chains back to empty, directly
// reading from the synth. It reuses each chain's existing slot pool
// via Reset rather than allocating two fresh Chains, so it never
// allocates on the realtime audio thread — RemoveTrack calls this from
// the op-drain step of the per-block algorithm.
func (t *Track) Clear() {
	t.Synth.AllNotesOff()
	t.chains[0].Reset(t.Synth)
	t.chains[1].Reset(t.Synth)
	atomic.StoreUint32(&t.active, 0)
}
