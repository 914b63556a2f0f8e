package param

import (
	"testing"

	"github.com/cbegin/resonance/internal/tween"
	"github.com/stretchr/testify/assert"
)

func TestTweenableF32ImmediateSet(t *testing.T) {
	p := NewTweenableF32(1)
	p.Set(0.5)
	assert.Equal(t, float32(0.5), p.Current())
	assert.False(t, p.Tweening())
}

func TestTweenableF32GlideReachesTarget(t *testing.T) {
	p := NewTweenableF32(0)
	p.TweenTo(1, tween.Tween{Duration: 1, Curve: tween.Linear1})
	p.Update(0.5)
	assert.InDelta(t, 0.5, p.Current(), 1e-6)
	assert.True(t, p.Tweening())
	p.Update(0.5)
	assert.Equal(t, float32(1), p.Current())
	assert.False(t, p.Tweening(), "tween must retire once it reaches its target")
}

func TestTweenableF32OvershootClampsAtTarget(t *testing.T) {
	p := NewTweenableF32(0)
	p.TweenTo(1, tween.Tween{Duration: 0.1, Curve: tween.Linear1})
	p.Update(10)
	assert.Equal(t, float32(1), p.Current())
}

func TestParameterSetCancelsActiveTween(t *testing.T) {
	p := NewParameter(0)
	p.TweenTo(10, tween.Tween{Duration: 1, Curve: tween.Linear1}, 0)
	p.Update(0.2)
	p.Set(42)
	assert.Equal(t, 42.0, p.Value())
	p.Update(1)
	assert.Equal(t, 42.0, p.Value(), "Set must cancel any in-flight tween")
}
