package sched

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/kestrel-audio/dawcore/pkg/graph"
)

func TestEventsForBlock_HalfOpenBothEnds(t *testing.T) {
	s := NewNoteScheduler()
	s.Add(NoteRecord{Start: 100, End: 200, Note: 60})

	// Start falls exactly on the block's lower edge: included.
	evs := s.EventsForBlock(100, 150, nil)
	require.Equal(t, []Event{{Kind: EventOn, Note: 60}}, evs)

	// End falls exactly on the block's upper edge: NOT included in this block.
	evs = s.EventsForBlock(150, 200, nil)
	require.Empty(t, evs)

	// End falls exactly on the next block's lower edge: included there.
	evs = s.EventsForBlock(200, 250, nil)
	require.Equal(t, []Event{{Kind: EventOff, Note: 60}}, evs)
}

func TestEventsForBlock_BothBoundariesInSameBlockEmitBoth(t *testing.T) {
	s := NewNoteScheduler()
	s.Add(NoteRecord{Start: 10, End: 20, Note: 64})
	evs := s.EventsForBlock(0, 64, nil)
	require.Equal(t, []Event{
		{Kind: EventOn, Note: 64},
		{Kind: EventOff, Note: 64},
	}, evs)
}

func TestEventsForBlock_NoCoalescing(t *testing.T) {
	s := NewNoteScheduler()
	s.Add(NoteRecord{Start: 0, End: 5, Note: 1})
	s.Add(NoteRecord{Start: 5, End: 10, Note: 1})
	evs := s.EventsForBlock(0, 10, nil)
	onCount := 0
	for _, e := range evs {
		if e.Kind == EventOn {
			onCount++
		}
	}
	require.Equal(t, 2, onCount, "two adjacent records for the same note must not be merged into one On")
}

func TestEventsForBlock_ScenarioSchedulerAtBlockBoundaries(t *testing.T) {
	s := NewNoteScheduler()
	s.Add(NoteRecord{Start: 1000, End: 2000, Note: 60})

	const blockLen = graph.Frame(256)
	var onBlocks, offBlocks []graph.Frame
	for start := graph.Frame(0); start < 4096; start += blockLen {
		evs := s.EventsForBlock(start, start+blockLen, nil)
		for _, e := range evs {
			switch e.Kind {
			case EventOn:
				onBlocks = append(onBlocks, start)
			case EventOff:
				offBlocks = append(offBlocks, start)
			}
		}
	}

	require.Equal(t, []graph.Frame{768}, onBlocks, "frame 1000 falls in the block starting at 768")
	require.Equal(t, []graph.Frame{1792}, offBlocks, "frame 2000 falls in the block starting at 1792")
}

func TestNoteScheduler_PropertyEveryRecordEventuallyEmitsOnAndOff(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := NewNoteScheduler()
		n := rapid.IntRange(1, 20).Draw(t, "records")
		var frame graph.Frame
		type want struct{ start, end graph.Frame }
		wants := make([]want, 0, n)
		for i := 0; i < n; i++ {
			start := frame + graph.Frame(rapid.IntRange(0, 50).Draw(t, "gap"))
			end := start + graph.Frame(rapid.IntRange(1, 50).Draw(t, "dur"))
			s.Add(NoteRecord{Start: start, End: end, Note: graph.NoteNumber(i % 128)})
			wants = append(wants, want{start, end})
			frame = end
		}

		blockLen := graph.Frame(rapid.IntRange(1, 32).Draw(t, "blockLen"))
		var onSeen, offSeen int
		var cur graph.Frame
		for cur < frame+blockLen {
			evs := s.EventsForBlock(cur, cur+blockLen, nil)
			for _, e := range evs {
				switch e.Kind {
				case EventOn:
					onSeen++
				case EventOff:
					offSeen++
				}
			}
			cur += blockLen
		}
		if onSeen != n || offSeen != n {
			t.Fatalf("expected %d On and %d Off across all blocks, got %d/%d", n, n, onSeen, offSeen)
		}
	})
}
