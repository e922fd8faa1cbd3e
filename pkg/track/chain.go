package track

import (
	"github.com/google/uuid"

	"github.com/kestrel-audio/dawcore/pkg/graph"
)

// MaxChainLength is the most plugins a single chain may hold.
const MaxChainLength = 8

// Chain is an ordered, linked sequence of plugins with a fixed input
// source (always the owning track's synth output). After any mutation
// the linking invariant holds: plugins[0]'s input is Input, and
// plugins[i]'s input is plugins[i-1].
//
// Its chainLink wrappers come from a preallocated, fixed-size slot
// pool rather than a fresh allocation per Insert, so Insert/RemoveByID
// never allocate. They are reached from the realtime audio thread's
// op-drain step via Track.InsertPlugin/RemovePlugin.
type Chain struct {
	Input   graph.Node
	Plugins []*chainLink

	slots [MaxChainLength]chainLink
	inUse [MaxChainLength]bool
}

// NewChain constructs an empty chain reading from input.
func NewChain(input graph.Node) *Chain {
	return &Chain{Input: input, Plugins: make([]*chainLink, 0, MaxChainLength)}
}

// Reset drops all plugins and rewires the chain straight to input,
// reusing its existing slot pool and Plugins backing array instead of
// allocating a fresh Chain.
func (c *Chain) Reset(input graph.Node) {
	c.Input = input
	c.Plugins = c.Plugins[:0]
	for i := range c.inUse {
		c.inUse[i] = false
	}
}

// allocSlot claims the lowest-numbered free slot in the pool, or nil if
// the chain is already at MaxChainLength.
func (c *Chain) allocSlot() *chainLink {
	for i := range c.inUse {
		if !c.inUse[i] {
			c.inUse[i] = true
			c.slots[i].slot = i
			return &c.slots[i]
		}
	}
	return nil
}

func (c *Chain) freeSlot(l *chainLink) {
	c.inUse[l.slot] = false
}

// Output is the chain's output node: its last plugin, or its input if
// the chain is empty.
func (c *Chain) Output() graph.Node {
	if len(c.Plugins) == 0 {
		return c.Input
	}
	return c.Plugins[len(c.Plugins)-1]
}

// relink restores the linking invariant across the whole sequence.
// Called after any insert/remove since a change anywhere shifts every
// downstream plugin's upstream pointer.
func (c *Chain) relink() {
	var up graph.Node = c.Input
	for _, l := range c.Plugins {
		l.SetUpstream(up)
		up = l
	}
}

// Insert wraps p in a fresh chainLink from this chain's own slot pool,
// places it at position idx (appending if idx >= len), and relinks the
// sequence. Returns false if the chain is already at MaxChainLength.
// Calling Insert with the same shared *Plugin on two different chains
// produces two independent chainLinks around it — the two mirrors
// never share upstream wiring, only the plugin's DSP state.
func (c *Chain) Insert(idx int, p *Plugin) bool {
	if len(c.Plugins) >= MaxChainLength {
		return false
	}
	link := c.allocSlot()
	if link == nil {
		return false
	}
	link.plugin = p
	link.upstream = nil

	n := len(c.Plugins)
	if idx < 0 || idx > n {
		idx = n
	}
	c.Plugins = append(c.Plugins, nil)
	copy(c.Plugins[idx+1:], c.Plugins[idx:])
	c.Plugins[idx] = link
	c.relink()
	return true
}

// Append adds p to the end of the chain.
func (c *Chain) Append(p *Plugin) bool {
	return c.Insert(len(c.Plugins), p)
}

// RemoveByID removes the plugin with the given id, if present, frees
// its chainLink's slot back to the pool, and relinks the sequence.
// Returns the removed plugin (still shared with the other mirror, if
// any), or nil if not found.
func (c *Chain) RemoveByID(id uuid.UUID) *Plugin {
	for i, l := range c.Plugins {
		if l.plugin.ID == id {
			p := l.plugin
			c.Plugins = append(c.Plugins[:i], c.Plugins[i+1:]...)
			c.freeSlot(l)
			c.relink()
			return p
		}
	}
	return nil
}

// Tags returns the chain's plugin tag sequence — used to check the
// cross-mirror agreement invariant between a track's two chains.
func (c *Chain) Tags() []PluginTag {
	tags := make([]PluginTag, len(c.Plugins))
	for i, l := range c.Plugins {
		tags[i] = l.plugin.Tag
	}
	return tags
}

// Process pulls the chain's output node for out. An empty chain is a
// straight pass-through of Input.
func (c *Chain) Process(ctx *graph.Context, out []graph.Sample) {
	c.Output().Process(ctx, out)
}
