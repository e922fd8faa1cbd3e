// Package sched implements the frame-indexed note scheduler: a sorted
// sequence of note records against a playhead, converted to On/Off
// events for one block at a time. Frame-indexed records make seeking
// the playhead a constant-time operation, since nothing needs to be
// re-accumulated from the start of the timeline.
package sched

import "github.com/kestrel-audio/dawcore/pkg/graph"

// NoteRecord is one scheduled note: start <= end, both frame-indexed.
type NoteRecord struct {
	Start graph.Frame
	End   graph.Frame
	Note  graph.NoteNumber
}

// EventKind distinguishes an On from an Off.
type EventKind int

const (
	EventOn EventKind = iota
	EventOff
)

// Event is one On/Off message emitted for a block.
type Event struct {
	Kind EventKind
	Note graph.NoteNumber
}

// NoteScheduler holds a sequence of note records sorted by Start and
// emits the On/Off events that fall within a given block window.
type NoteScheduler struct {
	Records []NoteRecord
}

// NewNoteScheduler constructs an empty scheduler.
func NewNoteScheduler() *NoteScheduler {
	return &NoteScheduler{}
}

// Add inserts a record, keeping Records sorted by Start.
func (s *NoteScheduler) Add(r NoteRecord) {
	i := 0
	for i < len(s.Records) && s.Records[i].Start <= r.Start {
		i++
	}
	s.Records = append(s.Records, NoteRecord{})
	copy(s.Records[i+1:], s.Records[i:])
	s.Records[i] = r
}

// Clear drops every scheduled record.
func (s *NoteScheduler) Clear() {
	s.Records = s.Records[:0]
}

// EventsForBlock appends the On/Off events for the half-open window
// [startFrame, endFrame) to out and returns the extended slice. Both
// boundaries are half-open on the upper end: a record whose Start or
// End equals endFrame is NOT included in this block. On events are
// scanned before Off events, in input record order within each scan;
// a record whose Start and End both fall in the same window emits
// both an On and an Off — records are never coalesced.
func (s *NoteScheduler) EventsForBlock(startFrame, endFrame graph.Frame, out []Event) []Event {
	for _, r := range s.Records {
		if r.Start >= startFrame && r.Start < endFrame {
			out = append(out, Event{Kind: EventOn, Note: r.Note})
		}
	}
	for _, r := range s.Records {
		if r.End >= startFrame && r.End < endFrame {
			out = append(out, Event{Kind: EventOff, Note: r.Note})
		}
	}
	return out
}
