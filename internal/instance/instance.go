// Package instance implements the playing-occurrence state machine
// (spec.md §4.7): pause/resume/stop transitions driven by a fade tween,
// position advance scaled by pitch, and loop-point wrapping.
package instance

import (
	"github.com/cbegin/resonance/internal/command"
	"github.com/cbegin/resonance/internal/param"
	"github.com/cbegin/resonance/internal/tween"
)

// State is one of the six instance lifecycle states (spec.md §3).
type State int

const (
	Playing State = iota
	Pausing
	Paused
	Resuming
	Stopping
	Stopped
)

// Instance is a playing occurrence of a sound.
type Instance struct {
	SoundID  command.SoundID
	State    State
	Position float64 // seconds

	Volume param.TweenableF32
	Pitch  param.TweenableF32
	Fade   param.TweenableF32

	Settings command.InstanceSettings
}

// New constructs an Instance at the start of playback, already Playing
// at the settings' volume/pitch and a fade of 1 (fully audible).
func New(soundID command.SoundID, settings command.InstanceSettings) *Instance {
	return &Instance{
		SoundID:  soundID,
		State:    Playing,
		Position: 0,
		Volume:   param.NewTweenableF32(settings.Volume),
		Pitch:    param.NewTweenableF32(settings.Pitch),
		Fade:     param.NewTweenableF32(1),
		Settings: settings,
	}
}

// EffectiveVolume is volume.current * fade.current, the value the mixer
// multiplies the resampled frame by.
func (i *Instance) EffectiveVolume() float32 {
	return i.Volume.Current() * i.Fade.Current()
}

// Finished reports whether the instance has reached Stopped and is
// scheduled for arena removal.
func (i *Instance) Finished() bool {
	return i.State == Stopped
}

// SetVolume begins (or jumps, if tw is nil) a glide of the volume tween.
func (i *Instance) SetVolume(target float32, tw *tween.Tween) {
	if tw == nil {
		i.Volume.Set(target)
		return
	}
	i.Volume.TweenTo(target, *tw)
}

// SetPitch begins (or jumps) a glide of the pitch tween. Pitch 1.0 is
// normal speed, 2.0 is an octave up (spec.md §4.7).
func (i *Instance) SetPitch(target float32, tw *tween.Tween) {
	if tw == nil {
		i.Pitch.Set(target)
		return
	}
	i.Pitch.TweenTo(target, *tw)
}

// Pause requests a transition to Pausing (then Paused once fade
// reaches zero). A nil fade makes the pause instantaneous. Calling Pause
// again while already Pausing or Paused applies the same rule as Stop on
// a Stopping instance (see retargetFade): a shorter fade shortens the
// one in flight, a longer one is ignored.
func (i *Instance) Pause(fade *tween.Tween) {
	if i.State == Paused || i.State == Pausing {
		i.retargetFade(0, fade)
		return
	}
	i.State = Pausing
	i.startFadeTo(0, fade)
}

// Resume requests a transition to Resuming (then Playing once fade
// reaches one). A nil fade makes the resume instantaneous.
func (i *Instance) Resume(fade *tween.Tween) {
	if i.State != Paused && i.State != Pausing {
		return
	}
	i.State = Resuming
	i.startFadeTo(1, fade)
}

// Stop requests a transition to Stopping (then Stopped once fade
// reaches zero) from any state. A nil fade makes the stop instantaneous.
//
// Idempotence (spec.md §8): Stop on an already-Stopping instance leaves
// its fade tween unchanged if the new fade duration is greater;
// otherwise it shortens the fade to the new, shorter duration.
func (i *Instance) Stop(fade *tween.Tween) {
	if i.State == Stopped {
		return
	}
	if i.State == Stopping {
		i.retargetFade(0, fade)
		return
	}
	i.State = Stopping
	i.startFadeTo(0, fade)
}

func (i *Instance) startFadeTo(target float32, fade *tween.Tween) {
	if fade == nil {
		i.Fade.Set(target)
		return
	}
	i.Fade.TweenTo(target, *fade)
}

// retargetFade implements the Stop/Pause-on-already-transitioning
// idempotence rule (spec.md §8): a new fade that is shorter than the
// time remaining on the in-flight fade shortens it; a new fade that is
// longer or equal leaves the in-flight glide unchanged. A nil fade is
// always instantaneous and always wins.
func (i *Instance) retargetFade(target float32, fade *tween.Tween) {
	if fade == nil {
		i.Fade.Set(target)
		return
	}
	if i.Fade.Tweening() && fade.Duration >= i.Fade.RemainingDuration() {
		return
	}
	i.Fade.TweenTo(target, *fade)
}

// Update advances dt seconds of playback: tweens, position (scaled by
// pitch while actively sounding), loop wrap, and the Pausing/Paused/
// Resuming/Stopping/Stopped transitions driven by the fade reaching its
// target.
func (i *Instance) Update(dt float64, soundDuration float64, loopStart *float64) {
	i.Volume.Update(dt)
	i.Pitch.Update(dt)
	i.Fade.Update(dt)

	switch i.State {
	case Playing, Resuming, Pausing, Stopping:
		i.Position += dt * float64(i.Pitch.Current())
	}

	if loopStart != nil && soundDuration > *loopStart && i.Position > soundDuration {
		span := soundDuration - *loopStart
		if span > 0 {
			over := i.Position - soundDuration
			i.Position = *loopStart + mod(over, span)
		}
	} else if i.Position > soundDuration && loopStart == nil {
		if i.State != Stopping && i.State != Stopped {
			i.State = Stopping
			i.Fade.Set(0)
		}
	}

	switch i.State {
	case Pausing:
		if !i.Fade.Tweening() && i.Fade.Current() == 0 {
			i.State = Paused
		}
	case Resuming:
		if !i.Fade.Tweening() && i.Fade.Current() == 1 {
			i.State = Playing
		}
	case Stopping:
		if !i.Fade.Tweening() && i.Fade.Current() == 0 {
			i.State = Stopped
		}
	}
}

func mod(a, b float64) float64 {
	m := a - float64(int64(a/b))*b
	if m < 0 {
		m += b
	}
	return m
}
