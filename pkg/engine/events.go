package engine

import "github.com/kestrel-audio/dawcore/pkg/graph"

// NoteEventKind distinguishes an interactive key-down from a key-up.
type NoteEventKind int

const (
	NoteEventOn NoteEventKind = iota
	NoteEventOff
)

// NoteEvent is what the control thread pushes onto the note ring for
// interactive (non-sequenced) input — a single key press or release
// routed to whichever track is currently active.
type NoteEvent struct {
	Kind NoteEventKind
	Note graph.NoteNumber
}
