package audio

import (
	"github.com/gordonklaus/portaudio"

	"github.com/cbegin/resonance/internal/backend"
)

// PortAudioDriver is the second playback binding: it drives the same
// Backend through a PortAudio callback stream instead of ebiten's
// audio context, for hosts that embed resonance without an ebiten game
// loop (spec.md SPEC_FULL.md Domain Stack).
type PortAudioDriver struct {
	stream *portaudio.Stream
	b      *backend.Backend
}

// NewPortAudioDriver opens a stereo output stream at sampleRate with the
// given per-callback frame count. Call portaudio.Initialize before this
// and portaudio.Terminate when the process is done with all streams.
func NewPortAudioDriver(b *backend.Backend, sampleRate float64, framesPerBuffer int) (*PortAudioDriver, error) {
	d := &PortAudioDriver{b: b}
	stream, err := portaudio.OpenDefaultStream(0, 2, sampleRate, framesPerBuffer, d.callback)
	if err != nil {
		return nil, err
	}
	d.stream = stream
	return d, nil
}

// callback is invoked by PortAudio on its own realtime thread; out holds
// one float32 buffer per channel (out[0] left, out[1] right), filled with
// one Backend.Process call per frame.
func (d *PortAudioDriver) callback(out [][]float32) {
	left, right := out[0], out[1]
	for i := range left {
		f := d.b.Process()
		left[i] = f.Left
		right[i] = f.Right
	}
}

func (d *PortAudioDriver) Start() error { return d.stream.Start() }
func (d *PortAudioDriver) Stop() error  { return d.stream.Stop() }
func (d *PortAudioDriver) Close() error { return d.stream.Close() }
