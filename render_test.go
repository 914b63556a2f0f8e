package resonance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cbegin/resonance/internal/frame"
	"github.com/cbegin/resonance/internal/sound"
)

func TestRenderSamplesProducesAudibleOutputAndValidWAV(t *testing.T) {
	m := NewManager(1000, DefaultSettings())
	b := m.Backend()

	frames := make([]frame.Frame, 20)
	for i := range frames {
		frames[i] = frame.Frame{Left: 1, Right: -1}
	}
	s := sound.New(1000, frames, sound.Settings{})
	soundID, err := m.LoadSound(s)
	assert.NoError(t, err)

	_, err = m.PlaySound(soundID, DefaultInstanceSettings())
	assert.NoError(t, err)

	samples := RenderSamples(b, 1000, 0.02)
	assert.Len(t, samples, 40)

	var nonZero bool
	for _, v := range samples {
		if v != 0 {
			nonZero = true
			break
		}
	}
	assert.True(t, nonZero, "rendered output must be audible while the instance plays")

	wav := EncodeWAVFloat32LE(samples, 1000, 2)
	assert.Equal(t, "RIFF", string(wav[0:4]))
	assert.Equal(t, "WAVE", string(wav[8:12]))
}
