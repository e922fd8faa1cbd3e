package main

import (
	"github.com/gordonklaus/portaudio"

	"github.com/kestrel-audio/dawcore/pkg/host"
)

// portaudioBackend is the one concrete host.Backend binding in this
// module: a thin adapter from PortAudio's callback-per-buffer model to
// the core's host.Callback contract. Nothing outside cmd/dawd imports
// portaudio; the core module only ever sees host.Backend.
type portaudioBackend struct {
	stream *portaudio.Stream
}

func newPortaudioBackend() *portaudioBackend {
	return &portaudioBackend{}
}

func (b *portaudioBackend) Open(sampleRate float64, cb host.Callback) error {
	if err := portaudio.Initialize(); err != nil {
		return host.ErrBackendFailure
	}

	callback := func(out []float32) {
		cb(out, len(out))
	}

	s, err := portaudio.OpenDefaultStream(0, 1, sampleRate, 0, callback)
	if err != nil {
		portaudio.Terminate()
		return host.ErrBackendFailure
	}
	b.stream = s
	return nil
}

func (b *portaudioBackend) Start() error {
	if err := b.stream.Start(); err != nil {
		return host.ErrBackendFailure
	}
	return nil
}

func (b *portaudioBackend) Stop() error {
	if err := b.stream.Stop(); err != nil {
		return host.ErrBackendFailure
	}
	return nil
}

func (b *portaudioBackend) Close() error {
	err := b.stream.Close()
	portaudio.Terminate()
	if err != nil {
		return host.ErrBackendFailure
	}
	return nil
}
