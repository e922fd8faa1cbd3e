package dsp

import "github.com/kestrel-audio/dawcore/pkg/graph"

// Delay is a feedback delay line over a circular buffer sized in
// samples. Its backing buffer is allocated on install and must stay
// alive as long as the node is installed in either chain mirror; it is
// freed only once the node has been removed from both.
type Delay struct {
	DelayTime float64 // seconds; consulted at block boundaries only
	Feedback  float32
	Mix       float32 // 0 = dry, 1 = fully wet

	SampleRate float64

	buffer   []float32
	writePos int

	upstream graph.Node
}

// NewDelay allocates a buffer large enough for maxDelaySeconds at
// sampleRate and constructs a delay node over upstream.
func NewDelay(sampleRate, maxDelaySeconds float64, upstream graph.Node) *Delay {
	n := int(sampleRate*maxDelaySeconds) + 1
	if n < 1 {
		n = 1
	}
	return &Delay{
		DelayTime:  maxDelaySeconds / 2,
		Feedback:   0.3,
		Mix:        0.3,
		SampleRate: sampleRate,
		buffer:     make([]float32, n),
		upstream:   upstream,
	}
}

// SetUpstream rewires the delay's input. Used when a chain swap
// relinks this node between the two mirrored topologies.
func (d *Delay) SetUpstream(upstream graph.Node) {
	d.upstream = upstream
}

func (d *Delay) Process(ctx *graph.Context, out []graph.Sample) {
	in := graph.PullInto(ctx, d.upstream, out)
	d.ProcessWith(in, out)
}

// ProcessWith runs the delay line against an already-pulled input
// block without touching d.upstream. Used by callers that own their
// own upstream wiring (an effect chain's per-mirror link node) while
// still driving the one shared buffer and write position.
func (d *Delay) ProcessWith(in, out []graph.Sample) {
	delaySamples := int(d.DelayTime * d.SampleRate)
	n := len(d.buffer)
	if delaySamples >= n {
		delaySamples = n - 1
	}
	if delaySamples < 0 {
		delaySamples = 0
	}

	for i := range out {
		dry := in[i]
		readPos := (d.writePos - delaySamples + n) % n
		delayed := d.buffer[readPos]

		d.buffer[d.writePos] = dry + d.Feedback*delayed

		out[i] = dry*(1-d.Mix) + delayed*d.Mix

		d.writePos = (d.writePos + 1) % n
	}
}
