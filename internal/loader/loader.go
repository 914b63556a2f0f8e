// Package loader decodes audio files into the in-memory frame buffers
// internal/sound.Sound wraps. Decoding is deliberately kept out of the
// realtime core (spec.md §1): a Loader runs entirely on the controller
// side, before a sound's frames ever cross the command ring.
package loader

import (
	"github.com/cbegin/resonance/internal/frame"
)

// Loader decodes an encoded byte stream into stereo frames at their
// native sample rate. Implementations must not retain data past Decode
// returning.
type Loader interface {
	Decode(data []byte) (sampleRate uint32, frames []frame.Frame, err error)
}

// Mono upmixes a slice of single-channel samples into stereo frames,
// duplicating the one channel into both ears. Shared by decoders whose
// source format carries mono audio.
func Mono(samples []float32) []frame.Frame {
	out := make([]frame.Frame, len(samples))
	for i, s := range samples {
		out[i] = frame.Frame{Left: s, Right: s}
	}
	return out
}

// Stereo interleaves left/right sample pairs into stereo frames. left
// and right must be equal length.
func Stereo(left, right []float32) []frame.Frame {
	n := len(left)
	if len(right) < n {
		n = len(right)
	}
	out := make([]frame.Frame, n)
	for i := 0; i < n; i++ {
		out[i] = frame.Frame{Left: left[i], Right: right[i]}
	}
	return out
}
