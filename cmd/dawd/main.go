// Command dawd is a demonstration harness binary: it wires the core
// engine to a real PortAudio output stream, loads an optional YAML
// session file, accepts CLI overrides, and drives a small scripted
// note sequence so the stack can be exercised end-to-end.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/kestrel-audio/dawcore/internal/rtlog"
	"github.com/kestrel-audio/dawcore/pkg/engine"
	"github.com/kestrel-audio/dawcore/pkg/graph"
	"github.com/kestrel-audio/dawcore/pkg/ops"
	"github.com/kestrel-audio/dawcore/pkg/track"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "YAML session config file (optional).")
	sampleRate := pflag.Float64P("sample-rate", "r", 0, "Override sample rate, Hz.")
	bpm := pflag.Float64P("bpm", "b", 0, "Override tempo, BPM.")
	voices := pflag.IntP("voices", "v", 0, "Override voices per track.")
	help := pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "dawd - a small realtime DAW core demonstration harness.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: dawd [options]\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	log := rtlog.New("dawd")

	cfg, err := engineConfig(*configPath)
	if err != nil {
		log.Error("failed to load session config", "path", *configPath, "err", err)
		os.Exit(1)
	}
	if *sampleRate > 0 {
		cfg.SampleRate = *sampleRate
	}
	if *bpm > 0 {
		cfg.BPM = *bpm
	}
	if *voices > 0 {
		cfg.Voices = *voices
	}

	backend := newPortaudioBackend()
	h := engine.NewHarness(cfg.SampleRate, cfg.Voices, backend)

	for i := 0; i < cfg.Tracks; i++ {
		h.Driver.Timeline.AddTrack()
	}
	h.Driver.SetActiveTrack(0)

	if err := h.Start(cfg.SampleRate, cfg.BPM); err != nil {
		log.Error("failed to start harness", "err", err)
		os.Exit(1)
	}
	defer h.Stop()

	runDemoSequence(h)
}

func engineConfig(path string) (SessionConfig, error) {
	return LoadSessionConfig(path)
}

// runDemoSequence plays a short arpeggio through the active track's
// synth and through a couple of control ops, to exercise the note
// ring, op ring, and parameter snapshot paths against a live stream.
func runDemoSequence(h *engine.Harness) {
	h.InsertPlugin(0, track.TagFilter, -1)
	h.PushOp(ops.TogglePlay())

	notes := []graph.NoteNumber{60, 64, 67, 72}
	for _, n := range notes {
		for !h.PushNote(engine.NoteEvent{Kind: engine.NoteEventOn, Note: n}) {
		}
		time.Sleep(200 * time.Millisecond)
		for !h.PushNote(engine.NoteEvent{Kind: engine.NoteEventOff, Note: n}) {
		}
		time.Sleep(50 * time.Millisecond)
	}

	h.PublishParams(0, engine.ParamRecord{
		FilterCutoff:    2000,
		FilterResonance: 0.4,
		Attack:          0.01,
		Decay:           0.2,
		Sustain:         0.6,
		Release:         0.4,
	})

	time.Sleep(500 * time.Millisecond)
}
