// Package resonance is the controller-side surface of a realtime audio
// playback and sequencing engine. It wraps the lock-free command/event
// protocol of internal/backend behind typed, synchronous methods: ID
// allocation, command submission, and event draining (spec.md §4.11).
//
// A Manager is safe to call from any single non-realtime thread; the
// *Backend it wraps must be driven by exactly one realtime callback at
// a time (see internal/audio for the two driver bindings).
package resonance

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/cbegin/resonance/internal/arena"
	"github.com/cbegin/resonance/internal/backend"
	"github.com/cbegin/resonance/internal/command"
	"github.com/cbegin/resonance/internal/effects"
	"github.com/cbegin/resonance/internal/sound"
	"github.com/cbegin/resonance/internal/tween"
)

// Settings sizes every arena and ring, matching backend.Settings
// one-to-one; see internal/config for loading this from YAML.
type Settings = backend.Settings

// Backend is the realtime object returned by Manager.Backend; exported
// here so callers building a custom driver or offline render don't need
// to import the internal package directly.
type Backend = backend.Backend

// DefaultSettings mirrors spec.md §6's recommended capacities.
func DefaultSettings() Settings { return backend.DefaultSettings() }

// SoundID, InstanceID, ParameterID, SequenceID, MetronomeID are the
// controller-facing handle types; they are the same (index,generation)
// shape the audio side uses internally.
type (
	SoundID     = command.SoundID
	InstanceID  = command.InstanceID
	ParameterID = command.ParameterID
	SequenceID  = command.SequenceID
	MetronomeID = command.MetronomeID
)

// Tween and Curve re-export the easing vocabulary callers need to
// build InstanceSettings/Fade/Parameter glides without reaching into
// an internal package.
type (
	Tween     = tween.Tween
	Curve     = tween.Curve
	CurveKind = tween.CurveKind
)

const (
	Linear    = tween.Linear
	EaseIn    = tween.EaseIn
	EaseOut   = tween.EaseOut
	EaseInOut = tween.EaseInOut
)

// InstanceSettings snapshots per-instance playback configuration.
type InstanceSettings = command.InstanceSettings

// DefaultInstanceSettings mirrors the core's builder defaults.
func DefaultInstanceSettings() InstanceSettings { return command.DefaultInstanceSettings() }

// CustomEvent is the opaque payload EmitCustomEvent/Event round-trip.
type CustomEvent = command.CustomEvent

// Manager is the controller-side object. It allocates ids from its own
// mirrored arenas (reserving a slot before ever enqueuing a command, so
// a full command ring can be rolled back cleanly, per spec.md §7),
// submits commands, and drains events into caller-supplied callbacks.
type Manager struct {
	backend *backend.Backend

	soundIDs     *arena.Arena[struct{}]
	instanceIDs  *arena.Arena[struct{}]
	parameterIDs *arena.Arena[struct{}]
	sequenceIDs  *arena.Arena[struct{}]
	metronomeIDs *arena.Arena[struct{}]

	log *log.Logger
}

// NewManager constructs a Manager and the Backend it drives. Pull the
// Backend out with Backend() to hand to an audio driver.
func NewManager(sampleRate uint32, settings Settings) *Manager {
	return &Manager{
		backend:      backend.New(sampleRate, settings),
		soundIDs:     arena.New[struct{}](settings.NumSounds),
		instanceIDs:  arena.New[struct{}](settings.NumInstances),
		parameterIDs: arena.New[struct{}](settings.NumParameters),
		sequenceIDs:  arena.New[struct{}](settings.NumSequences),
		metronomeIDs: arena.New[struct{}](settings.NumMetronomes),
		log:          log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false, Prefix: "resonance"}),
	}
}

// Backend returns the realtime object an audio driver should call
// Process/ProcessBlock on.
func (m *Manager) Backend() *backend.Backend { return m.backend }

// SetLogger replaces the manager's diagnostic logger (controller side
// only; the audio side never logs).
func (m *Manager) SetLogger(l *log.Logger) { m.log = l }

// LoadSound reserves a SoundID and enqueues its decoded frames for the
// audio side to take ownership of. The caller must not mutate frames
// after this call returns successfully.
func (m *Manager) LoadSound(s *sound.Sound) (SoundID, error) {
	reserved, ok := m.soundIDs.Allocate(struct{}{})
	if !ok {
		return SoundID{}, ErrSoundLimitReached
	}
	id := SoundID(reserved)
	payload := &command.SoundPayload{
		SampleRate:       s.SampleRate,
		Frames:           s.Frames,
		DefaultTrack:     int(s.Settings.DefaultTrack),
		SemanticDuration: s.Settings.SemanticDuration,
		DefaultLoopStart: s.Settings.DefaultLoopStart,
		Cooldown:         s.Settings.Cooldown,
	}
	err := m.submit(command.Command{Kind: command.LoadSound, SoundID: id, SoundData: payload})
	if err != nil {
		m.soundIDs.Remove(reserved)
		return SoundID{}, err
	}
	return id, nil
}

// UnloadSound frees a sound and stops all of its instances.
func (m *Manager) UnloadSound(id SoundID) error {
	err := m.submit(command.Command{Kind: command.UnloadSound, SoundID: id})
	if err != nil {
		return err
	}
	m.soundIDs.Remove(arena.ID(id))
	return nil
}

// PlaySound reserves an InstanceID and starts playback of soundID with
// settings. Returns ErrCommandQueueFull (with the reservation rolled
// back) if the command ring has no room.
func (m *Manager) PlaySound(soundID SoundID, settings InstanceSettings) (InstanceID, error) {
	reserved, ok := m.instanceIDs.Allocate(struct{}{})
	if !ok {
		return InstanceID{}, ErrInstanceLimitReached
	}
	id := InstanceID(reserved)
	err := m.submit(command.Command{Kind: command.PlaySound, SoundID: soundID, InstanceID: id, Settings: settings})
	if err != nil {
		m.instanceIDs.Remove(reserved)
		return InstanceID{}, err
	}
	return id, nil
}

// SetInstanceVolume glides (or jumps, if fade is nil) an instance's
// volume to target.
func (m *Manager) SetInstanceVolume(id InstanceID, target float32, fade *Tween) error {
	if !m.InstanceLive(id) {
		return ErrInstanceStopped
	}
	return m.submit(command.Command{Kind: command.SetInstanceVolume, InstanceID: id, Value: target, Fade: wrapFade(fade)})
}

// SetInstancePitch glides (or jumps) an instance's pitch to target.
// 1.0 is normal speed, 2.0 is an octave up.
func (m *Manager) SetInstancePitch(id InstanceID, target float32, fade *Tween) error {
	if !m.InstanceLive(id) {
		return ErrInstanceStopped
	}
	return m.submit(command.Command{Kind: command.SetInstancePitch, InstanceID: id, Value: target, Fade: wrapFade(fade)})
}

// PauseInstance, ResumeInstance and StopInstance drive the instance
// state machine of spec.md §4.7. A nil fade is instantaneous. Each
// returns ErrInstanceStopped if the Manager's own mirrored arena
// already shows id reclaimed (spec.md §7/§8 scenario 6) — a benign,
// expected outcome for a fire-and-forget instance the caller never
// polled, not a sign of a bug.
func (m *Manager) PauseInstance(id InstanceID, fade *Tween) error {
	if !m.InstanceLive(id) {
		return ErrInstanceStopped
	}
	return m.submit(command.Command{Kind: command.PauseInstance, InstanceID: id, Fade: wrapFade(fade)})
}

func (m *Manager) ResumeInstance(id InstanceID, fade *Tween) error {
	if !m.InstanceLive(id) {
		return ErrInstanceStopped
	}
	return m.submit(command.Command{Kind: command.ResumeInstance, InstanceID: id, Fade: wrapFade(fade)})
}

func (m *Manager) StopInstance(id InstanceID, fade *Tween) error {
	if !m.InstanceLive(id) {
		return ErrInstanceStopped
	}
	return m.submit(command.Command{Kind: command.StopInstance, InstanceID: id, Fade: wrapFade(fade)})
}

// PauseInstancesOfSound, ResumeInstancesOfSound and StopInstancesOfSound
// apply the same transition to every live instance of soundID.
func (m *Manager) PauseInstancesOfSound(soundID SoundID, fade *Tween) error {
	return m.submit(command.Command{Kind: command.PauseInstancesOfSound, SoundID: soundID, Fade: wrapFade(fade)})
}

func (m *Manager) ResumeInstancesOfSound(soundID SoundID, fade *Tween) error {
	return m.submit(command.Command{Kind: command.ResumeInstancesOfSound, SoundID: soundID, Fade: wrapFade(fade)})
}

func (m *Manager) StopInstancesOfSound(soundID SoundID, fade *Tween) error {
	return m.submit(command.Command{Kind: command.StopInstancesOfSound, SoundID: soundID, Fade: wrapFade(fade)})
}

// CreateMetronome reserves a MetronomeID at the given tempo, not yet
// ticking.
func (m *Manager) CreateMetronome(bpm float64) (MetronomeID, error) {
	reserved, ok := m.metronomeIDs.Allocate(struct{}{})
	if !ok {
		return MetronomeID{}, ErrMetronomeLimitReached
	}
	id := MetronomeID(reserved)
	err := m.submit(command.Command{Kind: command.CreateMetronome, MetronomeID: id, TempoBPM: bpm})
	if err != nil {
		m.metronomeIDs.Remove(reserved)
		return MetronomeID{}, err
	}
	return id, nil
}

// RemoveMetronome releases a metronome's id.
func (m *Manager) RemoveMetronome(id MetronomeID) error {
	err := m.submit(command.Command{Kind: command.RemoveMetronome, MetronomeID: id})
	if err != nil {
		return err
	}
	m.metronomeIDs.Remove(arena.ID(id))
	return nil
}

func (m *Manager) SetMetronomeTempo(id MetronomeID, bpm float64) error {
	return m.submit(command.Command{Kind: command.SetMetronomeTempo, MetronomeID: id, TempoBPM: bpm})
}

// RegisterMetronomeInterval watches for crossings of iv beats.
func (m *Manager) RegisterMetronomeInterval(id MetronomeID, iv float64) error {
	return m.submit(command.Command{Kind: command.RegisterMetronomeInterval, MetronomeID: id, Interval: iv})
}

func (m *Manager) StartMetronome(id MetronomeID) error {
	return m.submit(command.Command{Kind: command.StartMetronome, MetronomeID: id})
}

func (m *Manager) PauseMetronome(id MetronomeID) error {
	return m.submit(command.Command{Kind: command.PauseMetronome, MetronomeID: id})
}

func (m *Manager) StopMetronome(id MetronomeID) error {
	return m.submit(command.Command{Kind: command.StopMetronome, MetronomeID: id})
}

// StartSequence reserves a SequenceID and ships steps bound to
// metronomeID.
func (m *Manager) StartSequence(metronomeID MetronomeID, steps []command.Step) (SequenceID, error) {
	reserved, ok := m.sequenceIDs.Allocate(struct{}{})
	if !ok {
		return SequenceID{}, ErrSequenceLimitReached
	}
	id := SequenceID(reserved)
	err := m.submit(command.Command{Kind: command.StartSequence, SequenceID: id, MetronomeID: metronomeID, Steps: steps})
	if err != nil {
		m.sequenceIDs.Remove(reserved)
		return SequenceID{}, err
	}
	return id, nil
}

// CreateParameter reserves a ParameterID at the given initial value.
func (m *Manager) CreateParameter(value float64) (ParameterID, error) {
	reserved, ok := m.parameterIDs.Allocate(struct{}{})
	if !ok {
		return ParameterID{}, ErrParameterLimitReached
	}
	id := ParameterID(reserved)
	err := m.submit(command.Command{Kind: command.CreateParameter, ParameterID: id, ParamValue: value})
	if err != nil {
		m.parameterIDs.Remove(reserved)
		return ParameterID{}, err
	}
	return id, nil
}

func (m *Manager) RemoveParameter(id ParameterID) error {
	err := m.submit(command.Command{Kind: command.RemoveParameter, ParameterID: id})
	if err != nil {
		return err
	}
	m.parameterIDs.Remove(arena.ID(id))
	return nil
}

func (m *Manager) SetParameterValue(id ParameterID, value float64) error {
	return m.submit(command.Command{Kind: command.SetParameterValue, ParameterID: id, ParamValue: value})
}

func (m *Manager) TweenParameter(id ParameterID, target float64, tw Tween, sentTime float64) error {
	t := tw
	return m.submit(command.Command{Kind: command.TweenParameter, ParameterID: id, ParamValue: target, ParamTween: &t, SentTime: sentTime})
}

// EmitCustomEvent enqueues a user payload the audio side will echo back
// unchanged on the event ring.
func (m *Manager) EmitCustomEvent(ev CustomEvent) error {
	return m.submit(command.Command{Kind: command.EmitCustomEvent, Custom: ev})
}

// EffectChain re-exports the per-track DSP chain type so callers can
// build one without reaching into an internal package.
type EffectChain = effects.Chain

// SetTrackEffects installs chain as track's effect chain; instances
// played with InstanceSettings.Track == track will have their summed
// bus run through it every tick. A nil chain clears the track back to a
// bare passthrough. Track indices outside [0, backend.MaxTracks) are
// clamped to track 0 by the audio side.
func (m *Manager) SetTrackEffects(track int, chain *EffectChain) error {
	return m.submit(command.Command{Kind: command.SetTrackEffects, Track: track, TrackEffects: chain})
}

// DrainEvents pops every event currently waiting on the event ring and
// calls onEvent for each, in order. Safe to call on any cadence; events
// produced during audio cycle n become visible only after that cycle
// completes (spec.md §5).
func (m *Manager) DrainEvents(onEvent func(command.Event)) {
	for {
		ev, ok := m.backend.EventRing().Pop()
		if !ok {
			return
		}
		onEvent(ev)
	}
}

// DrainRecycled applies every pending recycle notification to this
// Manager's own mirrored arenas, so future Allocate calls never race
// the audio side's own reclamation of naturally-finished instances and
// sequences (spec.md §5). Call this on the same cadence as DrainEvents.
func (m *Manager) DrainRecycled() {
	for {
		r, ok := m.backend.RecycleRing().Pop()
		if !ok {
			return
		}
		switch r.Kind {
		case backend.ResourceInstance:
			m.instanceIDs.Remove(r.ID)
		case backend.ResourceSequence:
			m.sequenceIDs.Remove(r.ID)
		case backend.ResourceParameter:
			m.parameterIDs.Remove(r.ID)
		case backend.ResourceMetronome:
			m.metronomeIDs.Remove(r.ID)
		case backend.ResourceSound:
			m.soundIDs.Remove(r.ID)
		}
	}
}

// InstanceLive reports whether id still names a live (not yet
// reclaimed) instance from this Manager's point of view. The view may
// lag the audio side's reality until DrainRecycled has caught up
// (spec.md §8 scenario 6).
func (m *Manager) InstanceLive(id InstanceID) bool {
	_, ok := m.instanceIDs.Get(arena.ID(id))
	return ok
}

func (m *Manager) submit(cmd command.Command) error {
	if err := m.backend.CommandRing().Push(cmd); err != nil {
		m.log.Debug("command queue full", "kind", cmd.Kind)
		return ErrCommandQueueFull
	}
	return nil
}

func wrapFade(t *Tween) *command.Fade {
	if t == nil {
		return nil
	}
	return &command.Fade{Tween: *t}
}
