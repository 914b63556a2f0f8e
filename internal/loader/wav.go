package loader

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/cbegin/resonance/internal/frame"
)

// ErrNotRIFF is returned when the input lacks a RIFF/WAVE header.
var ErrNotRIFF = errors.New("loader: not a RIFF/WAVE stream")

// ErrUnsupportedFormat is returned for a fmt chunk this decoder cannot
// read: anything other than 16/24/32-bit signed PCM or 32-bit IEEE float,
// mono or stereo.
var ErrUnsupportedFormat = errors.New("loader: unsupported wav format")

const (
	wavFormatPCM   = 1
	wavFormatFloat = 3
)

// WAV is a minimal uncompressed-PCM WAV decoder: the reference Loader
// implementation for formats this core ships without a third-party codec
// (spec.md §6 leaves file decoding to the host application; mp3/flac/ogg
// decoding is an unimplemented collaborator by design, not a gap — see
// DESIGN.md).
type WAV struct{}

// Decode implements Loader.
func (WAV) Decode(data []byte) (uint32, []frame.Frame, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return 0, nil, ErrNotRIFF
	}

	var (
		sampleRate    uint32
		channels      uint16
		bitsPerSample uint16
		audioFormat   uint16
		dataChunk     []byte
		haveFmt       bool
	)

	pos := 12
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8
		if body+size > len(data) {
			break
		}
		switch id {
		case "fmt ":
			if size < 16 {
				return 0, nil, ErrUnsupportedFormat
			}
			chunk := data[body : body+size]
			audioFormat = binary.LittleEndian.Uint16(chunk[0:2])
			channels = binary.LittleEndian.Uint16(chunk[2:4])
			sampleRate = binary.LittleEndian.Uint32(chunk[4:8])
			bitsPerSample = binary.LittleEndian.Uint16(chunk[14:16])
			haveFmt = true
		case "data":
			dataChunk = data[body : body+size]
		}
		pos = body + size
		if pos%2 == 1 {
			pos++ // chunks are word-aligned
		}
	}

	if !haveFmt || dataChunk == nil {
		return 0, nil, ErrUnsupportedFormat
	}
	if channels != 1 && channels != 2 {
		return 0, nil, ErrUnsupportedFormat
	}
	if audioFormat != wavFormatPCM && audioFormat != wavFormatFloat {
		return 0, nil, ErrUnsupportedFormat
	}

	samples, err := decodeSamples(dataChunk, audioFormat, bitsPerSample)
	if err != nil {
		return 0, nil, err
	}

	if channels == 1 {
		return sampleRate, Mono(samples), nil
	}

	n := len(samples) / 2
	left := make([]float32, n)
	right := make([]float32, n)
	for i := 0; i < n; i++ {
		left[i] = samples[2*i]
		right[i] = samples[2*i+1]
	}
	return sampleRate, Stereo(left, right), nil
}

func decodeSamples(raw []byte, format uint16, bits uint16) ([]float32, error) {
	switch {
	case format == wavFormatFloat && bits == 32:
		n := len(raw) / 4
		out := make([]float32, n)
		for i := 0; i < n; i++ {
			bits := binary.LittleEndian.Uint32(raw[i*4:])
			out[i] = math.Float32frombits(bits)
		}
		return out, nil
	case format == wavFormatPCM && bits == 16:
		n := len(raw) / 2
		out := make([]float32, n)
		for i := 0; i < n; i++ {
			v := int16(binary.LittleEndian.Uint16(raw[i*2:]))
			out[i] = float32(v) / float32(math.MaxInt16)
		}
		return out, nil
	case format == wavFormatPCM && bits == 24:
		n := len(raw) / 3
		out := make([]float32, n)
		for i := 0; i < n; i++ {
			b := raw[i*3 : i*3+3]
			v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
			if v&0x800000 != 0 {
				v -= 1 << 24 // sign-extend from 24 to 32 bits
			}
			out[i] = float32(v) / float32(1<<23)
		}
		return out, nil
	case format == wavFormatPCM && bits == 32:
		n := len(raw) / 4
		out := make([]float32, n)
		for i := 0; i < n; i++ {
			v := int32(binary.LittleEndian.Uint32(raw[i*4:]))
			out[i] = float32(v) / float32(math.MaxInt32)
		}
		return out, nil
	default:
		return nil, ErrUnsupportedFormat
	}
}
