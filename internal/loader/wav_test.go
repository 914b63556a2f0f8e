package loader

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildWAV(t *testing.T, channels, bits uint16, sampleRate uint32, format uint16, pcm []byte) []byte {
	t.Helper()
	blockAlign := channels * (bits / 8)
	byteRate := sampleRate * uint32(blockAlign)

	fmtChunk := make([]byte, 16)
	binary.LittleEndian.PutUint16(fmtChunk[0:2], format)
	binary.LittleEndian.PutUint16(fmtChunk[2:4], channels)
	binary.LittleEndian.PutUint32(fmtChunk[4:8], sampleRate)
	binary.LittleEndian.PutUint32(fmtChunk[8:12], byteRate)
	binary.LittleEndian.PutUint16(fmtChunk[12:14], blockAlign)
	binary.LittleEndian.PutUint16(fmtChunk[14:16], bits)

	var buf []byte
	buf = append(buf, []byte("RIFF")...)
	buf = append(buf, make([]byte, 4)...) // size, unchecked by the decoder
	buf = append(buf, []byte("WAVE")...)
	buf = append(buf, []byte("fmt ")...)
	buf = append(buf, leUint32(uint32(len(fmtChunk)))...)
	buf = append(buf, fmtChunk...)
	buf = append(buf, []byte("data")...)
	buf = append(buf, leUint32(uint32(len(pcm)))...)
	buf = append(buf, pcm...)
	return buf
}

func leUint32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func le16(v int16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, uint16(v))
	return b
}

func TestDecodeMono16BitPCM(t *testing.T) {
	pcm := append(le16(0), le16(16384)...)
	pcm = append(pcm, le16(-16384)...)
	data := buildWAV(t, 1, 16, 44100, wavFormatPCM, pcm)

	sr, frames, err := WAV{}.Decode(data)
	assert.NoError(t, err)
	assert.Equal(t, uint32(44100), sr)
	assert.Len(t, frames, 3)
	assert.InDelta(t, 0, frames[0].Left, 1e-6)
	assert.InDelta(t, 0.5, frames[1].Left, 1e-3)
	assert.InDelta(t, -0.5, frames[2].Left, 1e-3)
	assert.Equal(t, frames[0].Left, frames[0].Right, "mono must duplicate into both channels")
}

func TestDecodeStereo16BitPCMInterleaves(t *testing.T) {
	var pcm []byte
	pcm = append(pcm, le16(1000)...) // L0
	pcm = append(pcm, le16(-1000)...) // R0
	pcm = append(pcm, le16(2000)...) // L1
	pcm = append(pcm, le16(-2000)...) // R1
	data := buildWAV(t, 2, 16, 22050, wavFormatPCM, pcm)

	sr, frames, err := WAV{}.Decode(data)
	assert.NoError(t, err)
	assert.Equal(t, uint32(22050), sr)
	assert.Len(t, frames, 2)
	assert.Greater(t, frames[0].Left, float32(0))
	assert.Less(t, frames[0].Right, float32(0))
	assert.Greater(t, frames[1].Left, frames[0].Left)
}

func TestDecodeRejectsNonRIFF(t *testing.T) {
	_, _, err := WAV{}.Decode([]byte("not a wav file at all"))
	assert.ErrorIs(t, err, ErrNotRIFF)
}

func TestDecodeRejectsUnsupportedChannelCount(t *testing.T) {
	data := buildWAV(t, 3, 16, 44100, wavFormatPCM, le16(0))
	_, _, err := WAV{}.Decode(data)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
