package instance

import (
	"testing"

	"github.com/cbegin/resonance/internal/command"
	"github.com/cbegin/resonance/internal/tween"
	"github.com/stretchr/testify/assert"
)

func newPlaying() *Instance {
	return New(command.SoundID{}, command.DefaultInstanceSettings())
}

func TestNewInstanceStartsPlayingAtFullFade(t *testing.T) {
	i := newPlaying()
	assert.Equal(t, Playing, i.State)
	assert.Equal(t, float32(1), i.EffectiveVolume())
}

// TestFadePauseResume reproduces scenario 2 of spec.md §8.
func TestFadePauseResume(t *testing.T) {
	i := newPlaying()
	i.Pause(&tween.Tween{Duration: 0.1, Curve: tween.Linear1})
	assert.Equal(t, Pausing, i.State)

	step := 0.01
	for elapsed := 0.0; elapsed < 0.05; elapsed += step {
		i.Update(step, 10, nil)
	}
	assert.InDelta(t, 0.5, i.EffectiveVolume(), 0.05)

	for elapsed := 0.0; elapsed < 0.06; elapsed += step {
		i.Update(step, 10, nil)
	}
	assert.Equal(t, float32(0), i.EffectiveVolume())
	assert.Equal(t, Paused, i.State)

	i.Resume(&tween.Tween{Duration: 0.1, Curve: tween.Linear1})
	assert.Equal(t, Resuming, i.State)
	for elapsed := 0.0; elapsed < 0.11; elapsed += step {
		i.Update(step, 10, nil)
	}
	assert.Equal(t, float32(1), i.EffectiveVolume())
	assert.Equal(t, Playing, i.State)
}

func TestStopFromAnyStateTransitionsThroughStopping(t *testing.T) {
	i := newPlaying()
	i.Stop(&tween.Tween{Duration: 0.05, Curve: tween.Linear1})
	assert.Equal(t, Stopping, i.State)
	for elapsed := 0.0; elapsed < 0.06; elapsed += 0.01 {
		i.Update(0.01, 10, nil)
	}
	assert.True(t, i.Finished())
}

func TestStopIdempotenceShorterFadeWins(t *testing.T) {
	i := newPlaying()
	i.Stop(&tween.Tween{Duration: 1.0, Curve: tween.Linear1})
	i.Update(0.1, 10, nil)
	remaining := i.Fade.RemainingDuration()
	assert.InDelta(t, 0.9, remaining, 1e-9)

	i.Stop(&tween.Tween{Duration: 0.2, Curve: tween.Linear1})
	assert.InDelta(t, 0.2, i.Fade.RemainingDuration(), 1e-9, "a shorter Stop fade must shorten the in-flight fade")
}

func TestStopIdempotenceLongerFadeIgnored(t *testing.T) {
	i := newPlaying()
	i.Stop(&tween.Tween{Duration: 0.2, Curve: tween.Linear1})
	i.Update(0.05, 10, nil)
	before := i.Fade.RemainingDuration()

	i.Stop(&tween.Tween{Duration: 5.0, Curve: tween.Linear1})
	assert.InDelta(t, before, i.Fade.RemainingDuration(), 1e-9, "a longer Stop fade must not extend the in-flight fade")
}

func TestPositionAdvancesByPitch(t *testing.T) {
	i := newPlaying()
	i.Pitch.Set(2)
	i.Update(1, 100, nil)
	assert.InDelta(t, 2, i.Position, 1e-9)
}

func TestPositionPastDurationWithoutLoopStops(t *testing.T) {
	i := newPlaying()
	i.Position = 0.95
	i.Update(0.1, 1.0, nil)
	assert.True(t, i.Finished(), "an instantaneous (zero-duration) stop fade settles to Stopped within the same tick")
	assert.Equal(t, float32(0), i.EffectiveVolume())
}

func TestLoopWrapsCleanly(t *testing.T) {
	i := newPlaying()
	loopStart := 0.2
	i.Position = 0.95
	i.Update(0.1, 1.0, &loopStart)
	assert.InDelta(t, 0.25, i.Position, 1e-9)
	assert.Equal(t, Playing, i.State)
}

func TestInstantaneousPauseJumpsFade(t *testing.T) {
	i := newPlaying()
	i.Pause(nil)
	assert.Equal(t, float32(0), i.EffectiveVolume())
	i.Update(0, 10, nil)
	assert.Equal(t, Paused, i.State)
}
