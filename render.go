package resonance

import (
	"encoding/binary"
	"math"
)

// RenderSamples pulls seconds worth of audio directly out of b's audio
// thread, bypassing any live driver. Useful for offline rendering,
// golden-file tests, and headless tooling (cmd/playsound --render-to).
func RenderSamples(b *Backend, sampleRate int, seconds float64) []float32 {
	frames := int(float64(sampleRate) * seconds)
	out := make([]float32, frames*2)
	for i := 0; i < frames; i++ {
		f := b.Process()
		out[2*i] = f.Left
		out[2*i+1] = f.Right
	}
	return out
}

// EncodeWAVFloat32LE wraps interleaved 32-bit float samples in a minimal
// RIFF/WAVE header, the mirror image of internal/loader.WAV's decoder.
func EncodeWAVFloat32LE(samples []float32, sampleRate int, channels int) []byte {
	dataSize := len(samples) * 4
	byteRate := sampleRate * channels * 4
	blockAlign := channels * 4
	chunkSize := 36 + dataSize
	out := make([]byte, 44+dataSize)
	copy(out[0:], []byte("RIFF"))
	binary.LittleEndian.PutUint32(out[4:], uint32(chunkSize))
	copy(out[8:], []byte("WAVE"))
	copy(out[12:], []byte("fmt "))
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], 3) // IEEE float
	binary.LittleEndian.PutUint16(out[22:], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:], 32)
	copy(out[36:], []byte("data"))
	binary.LittleEndian.PutUint32(out[40:], uint32(dataSize))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[44+i*4:], math.Float32bits(s))
	}
	return out
}
