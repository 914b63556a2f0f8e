package resonance

import "errors"

// Operational errors returned synchronously from Manager methods
// (spec.md §6 "Exit/error codes", §7 "Error Handling Design"). The
// audio side never returns errors of its own; these are all raised on
// the controller side.
var (
	// ErrCommandQueueFull is recoverable: the caller may retry the same
	// call once the audio side has drained the command ring.
	ErrCommandQueueFull = errors.New("resonance: command queue full")

	// ErrMutexPoisoned is reserved for the controller side's own
	// serializing primitive failing; the audio side never reports this.
	ErrMutexPoisoned = errors.New("resonance: controller mutex poisoned")

	ErrSoundLimitReached     = errors.New("resonance: sound arena at capacity")
	ErrInstanceLimitReached  = errors.New("resonance: instance arena at capacity")
	ErrParameterLimitReached = errors.New("resonance: parameter arena at capacity")
	ErrSubTrackLimitReached  = errors.New("resonance: sub-track limit reached")
	ErrSequenceLimitReached  = errors.New("resonance: sequence arena at capacity")
	ErrMetronomeLimitReached = errors.New("resonance: metronome arena at capacity")

	// ErrInstanceStopped signals that an instance-targeted command
	// arrived for an instance already reclaimed; callers should treat
	// it as benign (spec.md §7).
	ErrInstanceStopped = errors.New("resonance: instance already stopped and reclaimed")

	// ErrEventQueueFull is a benign condition a caller may observe if it
	// polls event-queue depth; dropped events are never retried by the
	// audio side (spec.md §5).
	ErrEventQueueFull = errors.New("resonance: event queue full, events were dropped")
)
