package sound

import (
	"testing"

	"github.com/cbegin/resonance/internal/frame"
	"github.com/stretchr/testify/assert"
)

func makeRamp(n int) []frame.Frame {
	fs := make([]frame.Frame, n)
	for i := range fs {
		fs[i] = frame.Frame{Left: float32(i), Right: float32(-i)}
	}
	return fs
}

func TestFrameAtPositionMatchesSampleBoundary(t *testing.T) {
	s := New(4, makeRamp(8), Settings{})
	got := s.FrameAtPosition(1.0 / 4.0) // sample index 1 exactly
	assert.Equal(t, makeRamp(8)[1], got)
}

func TestFrameAtPositionNegativeIsZero(t *testing.T) {
	s := New(4, makeRamp(8), Settings{})
	assert.Equal(t, frame.Zero, s.FrameAtPosition(-0.01))
}

func TestFrameAtPositionPastEndTrailsToZero(t *testing.T) {
	s := New(4, makeRamp(4), Settings{})
	got := s.FrameAtPosition(s.Duration() + 10)
	assert.Equal(t, frame.Zero, got)
}

func TestDurationMatchesFrameCountOverSampleRate(t *testing.T) {
	s := New(44100, makeRamp(44100), Settings{})
	assert.InDelta(t, 1.0, s.Duration(), 1e-9)
}

func TestCooldownArmsAndDecays(t *testing.T) {
	cd := 0.5
	s := New(1, nil, Settings{Cooldown: &cd})
	assert.False(t, s.CoolingDown())
	s.StartCooldown()
	assert.True(t, s.CoolingDown())
	s.UpdateCooldown(0.3)
	assert.True(t, s.CoolingDown())
	s.UpdateCooldown(0.3)
	assert.False(t, s.CoolingDown())
}

func TestNoCooldownConfiguredNeverCoolsDown(t *testing.T) {
	s := New(1, nil, Settings{})
	s.StartCooldown()
	assert.False(t, s.CoolingDown())
}
