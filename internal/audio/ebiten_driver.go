package audio

import "github.com/cbegin/resonance/internal/backend"

// BackendSource adapts a *backend.Backend to the SampleSource interface
// StreamReader expects: interleaved float32 stereo samples, one call to
// Backend.Process per output sample.
type BackendSource struct {
	b *backend.Backend
}

// NewBackendSource wraps b for streaming through an EbitenDriver.
func NewBackendSource(b *backend.Backend) *BackendSource {
	return &BackendSource{b: b}
}

// Process fills dst (interleaved left/right float32 pairs) by pulling one
// sample at a time out of the Backend's five-step cycle.
func (s *BackendSource) Process(dst []float32) {
	n := len(dst) / 2
	for i := 0; i < n; i++ {
		f := s.b.Process()
		dst[2*i] = f.Left
		dst[2*i+1] = f.Right
	}
}

// EbitenDriver drives a Backend through ebiten's audio context, the
// teacher's own playback mechanism (StreamReader/Player in stream.go),
// unmodified apart from the SampleSource it is fed.
type EbitenDriver struct {
	player *Player
}

// NewEbitenDriver constructs the ebiten-backed driver for b at sampleRate.
func NewEbitenDriver(b *backend.Backend, sampleRate int) (*EbitenDriver, error) {
	p, err := NewPlayer(sampleRate, NewBackendSource(b))
	if err != nil {
		return nil, err
	}
	return &EbitenDriver{player: p}, nil
}

func (d *EbitenDriver) Start() { d.player.Play() }
func (d *EbitenDriver) Stop() error {
	return d.player.Stop()
}
