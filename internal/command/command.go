package command

import (
	"github.com/cbegin/resonance/internal/effects"
	"github.com/cbegin/resonance/internal/frame"
	"github.com/cbegin/resonance/internal/tween"
)

// Kind tags which arm of the Command union is populated. The set is
// closed and commands are POD-copyable: none of them carry a heap
// reference owned by the audio side at steady state. Sounds are an
// exception at load time only, where LoadSound transfers ownership of a
// decoded buffer across the ring once.
type Kind int

const (
	LoadSound Kind = iota
	UnloadSound

	PlaySound
	SetInstanceVolume
	SetInstancePitch
	PauseInstance
	ResumeInstance
	StopInstance
	PauseInstancesOfSound
	ResumeInstancesOfSound
	StopInstancesOfSound

	CreateMetronome
	RemoveMetronome
	SetMetronomeTempo
	RegisterMetronomeInterval
	StartMetronome
	PauseMetronome
	StopMetronome

	StartSequence

	CreateParameter
	RemoveParameter
	SetParameterValue
	TweenParameter

	EmitCustomEvent

	SetTrackEffects
)

// CustomEvent is an opaque user payload round-tripped through the
// command/event rings without interpretation by the core.
type CustomEvent struct {
	Tag     uint32
	Payload [2]float64
}

// InstanceSettings snapshots the per-instance playback configuration
// captured at PlaySound time (spec.md §3 Instance.settings).
type InstanceSettings struct {
	Volume    float32
	Pitch     float32
	Track     int
	LoopStart *float64
	Persist   bool // exempt from a bulk StopInstancesOfSound sweep; a StopInstance naming this exact id, or UnloadSound of its sound, still stops it
}

// DefaultInstanceSettings mirrors the Rust source's builder defaults:
// unity volume and pitch, default bus, no loop override.
func DefaultInstanceSettings() InstanceSettings {
	return InstanceSettings{Volume: 1, Pitch: 1, Track: 0}
}

// Fade describes an optional fade-time tween accompanying a pause/
// resume/stop transition. A nil *Fade means the transition is
// instantaneous (the fade value jumps, per spec.md §4.7).
type Fade struct {
	Tween tween.Tween
}

// Command is the tagged union carried on the command ring (controller
// -> audio). Only the fields relevant to Kind are meaningful; the rest
// are zero. IDs for every resource kind are chosen by the controller
// before the command is enqueued (it reserves the slot in its own
// mirrored arena first, per spec.md §7); the audio side never
// self-assigns an id, it only inserts at the id it is given, which is
// what keeps the two sides' arenas from racing each other.
type Command struct {
	Kind Kind

	SoundID     SoundID
	InstanceID  InstanceID
	ParameterID ParameterID
	SequenceID  SequenceID
	MetronomeID MetronomeID

	// LoadSound
	SoundData *SoundPayload

	// PlaySound / instance volume-pitch-fade mutation
	Settings InstanceSettings
	Fade     *Fade
	Value    float32
	SentTime float64

	// Metronome
	TempoBPM float64
	Interval float64

	// Sequence
	Steps []Step

	// Parameter
	ParamValue float64
	ParamTween *tween.Tween

	Custom CustomEvent

	// SetTrackEffects: Track names the bus (sound.TrackID) and
	// TrackEffects transfers ownership of the chain the same way
	// SoundData does for LoadSound, exactly once across the ring. A nil
	// TrackEffects clears the track back to a bare passthrough.
	Track        int
	TrackEffects *effects.Chain
}

// SoundPayload is the owning handle a LoadSound command transfers
// across the ring exactly once; the audio side takes ownership of the
// underlying frame buffer and the controller must not mutate it again
// after enqueuing (spec.md §3 "Lifecycle").
type SoundPayload struct {
	SampleRate       uint32
	Frames           []frame.Frame
	DefaultTrack     int
	SemanticDuration *float64
	DefaultLoopStart *float64
	Cooldown         *float64
}
