// Package ops defines the closed set of control messages the UI/control
// thread sends to the realtime driver through the op ring: playback
// transport, record toggling, track topology, plugin topology, and
// (optionally) direct parameter mutation.
package ops

import (
	"github.com/google/uuid"

	"github.com/kestrel-audio/dawcore/pkg/graph"
	"github.com/kestrel-audio/dawcore/pkg/track"
)

// Kind tags which variant an Op carries.
type Kind int

const (
	KindTogglePlay Kind = iota
	KindReset
	KindSeek
	KindToggleRecord
	KindAddTrack
	KindRemoveTrack
	KindPluginInsert
	KindPluginRemove
	KindParam
)

// Op is a closed tagged-variant control message. Only the fields
// relevant to Kind are meaningful; zero values elsewhere are ignored.
type Op struct {
	Kind Kind

	SeekFrame graph.Frame

	TrackIndex int

	// Plugin is a control-thread-built instance, constructed and handed
	// to PluginInsert already fully formed: the op carries only this
	// pointer and a target index, so applying it on the audio thread
	// never allocates.
	Plugin   *track.Plugin
	PluginID uuid.UUID
	ChainIdx int

	ParamID    uint32
	ParamValue float32
}

func TogglePlay() Op                       { return Op{Kind: KindTogglePlay} }
func Reset() Op                            { return Op{Kind: KindReset} }
func Seek(frame graph.Frame) Op            { return Op{Kind: KindSeek, SeekFrame: frame} }
func ToggleRecord(trackIdx int) Op         { return Op{Kind: KindToggleRecord, TrackIndex: trackIdx} }
func AddTrack() Op                         { return Op{Kind: KindAddTrack} }
func RemoveTrack(trackIdx int) Op          { return Op{Kind: KindRemoveTrack, TrackIndex: trackIdx} }

// PluginInsert carries a plugin already constructed by track.NewPlugin
// on the control thread; applying this op only wires it into a chain,
// it never builds DSP state itself.
func PluginInsert(trackIdx int, plugin *track.Plugin, chainIdx int) Op {
	return Op{Kind: KindPluginInsert, TrackIndex: trackIdx, Plugin: plugin, ChainIdx: chainIdx}
}

func PluginRemove(trackIdx int, id uuid.UUID) Op {
	return Op{Kind: KindPluginRemove, TrackIndex: trackIdx, PluginID: id}
}

func Param(trackIdx int, paramID uint32, value float32) Op {
	return Op{Kind: KindParam, TrackIndex: trackIdx, ParamID: paramID, ParamValue: value}
}
