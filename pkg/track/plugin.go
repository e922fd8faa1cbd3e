// Package track implements the per-track effect chain: a tagged-variant
// plugin set, an ordered chain with a fixed input-linking invariant, and
// a Track that double-buffers two chain mirrors behind an atomically
// swapped index so adding or removing an effect never blocks or tears
// audio on the realtime thread.
package track

import (
	"github.com/google/uuid"

	"github.com/kestrel-audio/dawcore/pkg/dsp"
	"github.com/kestrel-audio/dawcore/pkg/graph"
)

// PluginTag identifies which DSP effect a Plugin wraps.
type PluginTag int

const (
	TagGain PluginTag = iota
	TagDistortion
	TagGate
	TagDelay
	TagFilter
)

// Plugin is a tagged variant over the effect set: one concrete DSP
// state block plus the identity the control thread uses to address it
// across insert/remove ops. A Plugin never holds its own upstream
// wiring — two chain mirrors that represent "the same installed
// effect" share this exact Plugin (same ID, same State, same concrete
// *dsp.X) but each wraps it in its own chainLink with its own upstream
// pointer, so relinking one mirror during a chain mutation can never
// mutate state the other mirror's in-flight audio block is reading.
type Plugin struct {
	ID    uuid.UUID
	Tag   PluginTag
	State graph.Node // the concrete *dsp.X, for direct parameter access (Cutoff, Drive, ...)

	gain       *dsp.Gain
	distortion *dsp.Distortion
	gate       *dsp.Gate
	delay      *dsp.Delay
	filter     *dsp.MoogFilter
}

// NewPlugin constructs a fresh effect instance of the given tag at
// sampleRate, with a stable identity for later addressing. It must be
// called on the control thread: it heap-allocates the concrete DSP
// state and (for TagGain et al.) generates a UUID. The result carries
// no upstream wiring yet — that is supplied per chain mirror when the
// plugin is inserted into a Chain.
func NewPlugin(tag PluginTag, sampleRate float64) *Plugin {
	p := &Plugin{ID: uuid.New(), Tag: tag}
	switch tag {
	case TagGain:
		p.gain = dsp.NewGain(nil)
		p.State = p.gain
	case TagDistortion:
		p.distortion = dsp.NewDistortion(dsp.DistortionTanh, nil)
		p.State = p.distortion
	case TagGate:
		p.gate = dsp.NewGate(nil)
		p.State = p.gate
	case TagDelay:
		p.delay = dsp.NewDelay(sampleRate, 2.0, nil)
		p.State = p.delay
	case TagFilter:
		p.filter = dsp.NewMoogFilter(sampleRate, nil)
		p.State = p.filter
	}
	return p
}

// renderFrom pulls upstream (or, for a closed gate, skips the pull
// entirely) and runs this plugin's DSP into out. upstream is supplied
// by the caller's own chainLink on every call; Plugin itself never
// stores it, which is what lets two mirrors share this Plugin safely.
func (p *Plugin) renderFrom(ctx *graph.Context, upstream graph.Node, out []graph.Sample) {
	switch p.Tag {
	case TagGain:
		in := graph.PullInto(ctx, upstream, out)
		p.gain.ProcessWith(in, out)
	case TagDistortion:
		in := graph.PullInto(ctx, upstream, out)
		p.distortion.ProcessWith(in, out)
	case TagGate:
		p.gate.RenderFrom(ctx, upstream, out)
	case TagDelay:
		in := graph.PullInto(ctx, upstream, out)
		p.delay.ProcessWith(in, out)
	case TagFilter:
		in := graph.PullInto(ctx, upstream, out)
		p.filter.ProcessWith(in, out)
	}
}

// chainLink is one chain mirror's wiring around a shared Plugin: its
// own upstream pointer. Two chainLinks in the two mirrors may point at
// the same Plugin while differing in upstream, which is exactly what
// lets relink() on one mirror run without the audio thread observing a
// half-relinked state on the other.
type chainLink struct {
	plugin   *Plugin
	upstream graph.Node
	slot     int // index into the owning Chain's preallocated slot pool
}

func (l *chainLink) SetUpstream(upstream graph.Node) {
	l.upstream = upstream
}

func (l *chainLink) Process(ctx *graph.Context, out []graph.Sample) {
	l.plugin.renderFrom(ctx, l.upstream, out)
}
