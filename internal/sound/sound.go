// Package sound implements the immutable in-memory stereo sample buffer
// (spec.md §4.6) that instances resample by fractional playback
// position with a four-point cubic Hermite kernel.
package sound

import "github.com/cbegin/resonance/internal/frame"

// TrackID names one of the backend's fixed MaxTracks mix buses. An
// instance selects a bus via its Settings.Track; a sound's
// Settings.DefaultTrack is carried with the sound but the mixer does not
// consult it. Each bus
// may carry its own installed effects.Chain (see SetTrackEffects), so
// routing is more than a label, but there is no inter-bus graph — every
// bus sums independently into the final mix (SPEC_FULL.md §Supplemented
// Features #1).
type TrackID int

// DefaultTrack is bus 0, the bus an instance with a zero or out-of-range
// Settings.Track is mixed into.
const DefaultTrack TrackID = 0

// Settings are the immutable, load-time semantics of a sound.
type Settings struct {
	DefaultTrack     TrackID
	SemanticDuration *float64 // optional, informational duration override
	DefaultLoopStart *float64 // optional loop point, in seconds
	Cooldown         *float64 // optional minimum seconds between plays
}

// Sound is an immutable buffer of stereo frames plus its sample rate and
// load-time settings. The only mutable field is the cooldown timer: the
// backend arms it in runPlaySound and decays it once per tick in
// advanceCooldowns, refusing to start a new instance while it is still
// running (spec.md §4.6).
type Sound struct {
	SampleRate uint32
	Frames     []frame.Frame
	Settings   Settings

	cooldownTimer float64
}

// New constructs a Sound from decoded frames. frames is taken by
// reference; the caller (the loader, per spec.md §6) must not mutate it
// after handoff.
func New(sampleRate uint32, frames []frame.Frame, settings Settings) *Sound {
	return &Sound{SampleRate: sampleRate, Frames: frames, Settings: settings}
}

// Duration returns the sound's length in seconds.
func (s *Sound) Duration() float64 {
	if s.SampleRate == 0 {
		return 0
	}
	return float64(len(s.Frames)) / float64(s.SampleRate)
}

// frameAt returns the raw frame at index i, or frame.Zero if i is out of
// bounds (used to fill missing cubic-interpolation neighbors).
func (s *Sound) frameAt(i int) frame.Frame {
	if i < 0 || i >= len(s.Frames) {
		return frame.Zero
	}
	return s.Frames[i]
}

// FrameAtPosition resamples the sound at playback position t (seconds)
// via four-point cubic Hermite interpolation. t < 0 returns frame.Zero.
func (s *Sound) FrameAtPosition(t float64) frame.Frame {
	if t < 0 {
		return frame.Zero
	}
	sp := float64(s.SampleRate) * t
	i := int(sp)
	x := float32(sp - float64(i))
	return frame.CubicHermite(
		s.frameAt(i-1),
		s.frameAt(i),
		s.frameAt(i+1),
		s.frameAt(i+2),
		x,
	)
}

// StartCooldown arms the cooldown timer from Settings.Cooldown, if any.
func (s *Sound) StartCooldown() {
	if s.Settings.Cooldown != nil {
		s.cooldownTimer = *s.Settings.Cooldown
	}
}

// UpdateCooldown decrements the cooldown timer towards zero by dt
// seconds. Never goes negative.
func (s *Sound) UpdateCooldown(dt float64) {
	if s.cooldownTimer <= 0 {
		return
	}
	s.cooldownTimer -= dt
	if s.cooldownTimer < 0 {
		s.cooldownTimer = 0
	}
}

// CoolingDown reports whether the sound is still within its cooldown
// window. runPlaySound checks this before starting a new instance
// (spec.md §4.6); StartCooldown/UpdateCooldown run only on the audio
// side, so no cross-thread read of this timer is ever needed.
func (s *Sound) CoolingDown() bool {
	return s.cooldownTimer > 0
}
