// Package command defines the wire protocol shared by the controller
// and audio-thread sides: the opaque resource IDs, the tagged-union
// Command and Event types carried on the two SPSC rings, and instance
// playback settings (spec.md §3).
package command

import "github.com/cbegin/resonance/internal/arena"

// SoundID, InstanceID, ParameterID, SequenceID and MetronomeID are
// distinct opaque handle types so a caller cannot accidentally pass an
// InstanceID where a SoundID is expected, even though they share the
// same underlying (index, generation) representation.
type (
	SoundID     arena.ID
	InstanceID  arena.ID
	ParameterID arena.ID
	SequenceID  arena.ID
	MetronomeID arena.ID
)
