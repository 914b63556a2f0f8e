// Package backend implements the top-level audio-thread orchestrator:
// per-sample command dispatch, metronome/sequence advance, mix
// summation, and resource reclamation (spec.md §4.10). Nothing in this
// package blocks or takes a lock. The per-tick scratch buffers are sized
// in New and reused, but the commands that create a resource (LoadSound,
// PlaySound, CreateMetronome, CreateParameter, StartSequence) allocate
// that resource's object on the audio side.
package backend

import (
	"github.com/cbegin/resonance/internal/arena"
	"github.com/cbegin/resonance/internal/command"
	"github.com/cbegin/resonance/internal/effects"
	"github.com/cbegin/resonance/internal/frame"
	"github.com/cbegin/resonance/internal/instance"
	"github.com/cbegin/resonance/internal/metronome"
	"github.com/cbegin/resonance/internal/param"
	"github.com/cbegin/resonance/internal/ring"
	"github.com/cbegin/resonance/internal/sequence"
	"github.com/cbegin/resonance/internal/sound"
)

// MaxTracks bounds the fixed-size array of per-track buses and effect
// chains; an instance's Settings.Track (or a SetTrackEffects track)
// outside [0, MaxTracks) is mapped to track 0. A sound's DefaultTrack is
// not used for routing (spec.md §4.6 TrackID hook).
const MaxTracks = 8

// Settings sizes every arena and ring up front. Neither grows after New,
// so these are the hard ceilings spec.md
// §8's "arena slot count never exceeds capacity" invariant is checked
// against.
type Settings struct {
	NumSounds     int
	NumInstances  int
	NumSequences  int
	NumParameters int
	NumMetronomes int
	NumCommands   int
	NumEvents     int
}

// DefaultSettings mirrors spec.md §6's recommended capacities.
func DefaultSettings() Settings {
	return Settings{
		NumSounds:     100,
		NumInstances:  100,
		NumSequences:  25,
		NumParameters: 100,
		NumMetronomes: 25,
		NumCommands:   100,
		NumEvents:     100,
	}
}

// ResourceKind tags which arena a Recycled notification refers to.
type ResourceKind int

const (
	ResourceInstance ResourceKind = iota
	ResourceSequence
	ResourceParameter
	ResourceMetronome
	ResourceSound
)

// Recycled is pushed onto the recycle ring whenever the audio side
// frees a slot on its own initiative (an instance finishing playback,
// a sequence finishing its program) so the controller's mirrored arena
// can release the same id and keep the two sides' id allocators from
// diverging (spec.md §5 "Shared resources").
type Recycled struct {
	Kind ResourceKind
	ID   arena.ID
}

// Backend is the audio-thread object. It is driven exclusively by
// Process/ProcessBlock, called from a single realtime callback thread.
type Backend struct {
	sampleRate uint32
	dt         float64

	sounds     *arena.Arena[*sound.Sound]
	instances  *arena.Arena[*instance.Instance]
	parameters *arena.Arena[*param.Parameter]
	sequences  *arena.Arena[*sequence.Sequence]
	metronomes *arena.Arena[*metronome.Metronome]

	trackChains [MaxTracks]*effects.Chain

	commands *ring.Ring[command.Command]
	events   *ring.Ring[command.Event]
	recycled *ring.Ring[Recycled]

	// scratch buffers, reused every tick; never reallocated.
	intervalScratch   []float64
	seqCmdScratch     []command.Command
	instancesToRemove []arena.ID
	sequencesToRemove []arena.ID
}

// New constructs a Backend for the given sample rate and resource
// capacities. sampleRate is fixed for the life of the Backend; changing
// it requires tearing down and constructing a new one (spec.md §6).
func New(sampleRate uint32, settings Settings) *Backend {
	b := &Backend{
		sampleRate: sampleRate,
		dt:         1.0 / float64(sampleRate),
		sounds:     arena.New[*sound.Sound](settings.NumSounds),
		instances:  arena.New[*instance.Instance](settings.NumInstances),
		parameters: arena.New[*param.Parameter](settings.NumParameters),
		sequences:  arena.New[*sequence.Sequence](settings.NumSequences),
		metronomes: arena.New[*metronome.Metronome](settings.NumMetronomes),
		commands:   ring.New[command.Command](settings.NumCommands),
		events:     ring.New[command.Event](settings.NumEvents),
		recycled:   ring.New[Recycled](settings.NumInstances + settings.NumSequences + settings.NumParameters + settings.NumMetronomes),
	}
	b.seqCmdScratch = make([]command.Command, 0, 64)
	b.intervalScratch = make([]float64, 0, 16)
	b.instancesToRemove = make([]arena.ID, 0, settings.NumInstances)
	b.sequencesToRemove = make([]arena.ID, 0, settings.NumSequences)
	return b
}

// CommandRing returns the controller-writable endpoint of the command
// ring. Only the controller may call Push on it; only the Backend may
// call Pop.
func (b *Backend) CommandRing() *ring.Ring[command.Command] { return b.commands }

// EventRing returns the controller-readable endpoint of the event ring.
// Only the controller may call Pop on it; only the Backend may call
// Push.
func (b *Backend) EventRing() *ring.Ring[command.Event] { return b.events }

// RecycleRing returns the endpoint the controller drains to learn which
// ids the audio side freed on its own initiative.
func (b *Backend) RecycleRing() *ring.Ring[Recycled] { return b.recycled }

// SampleRate returns the fixed sample rate this Backend was built for.
func (b *Backend) SampleRate() uint32 { return b.sampleRate }

// Process runs exactly one cycle of spec.md §4.10 and returns the
// mixed stereo output for one sample.
func (b *Backend) Process() frame.Frame {
	b.drainCommands()
	b.advanceMetronomes()
	b.advanceSequences()
	b.advanceParameters()
	b.advanceCooldowns()
	out := b.mix()
	b.reclaim()
	return out
}

// ProcessBlock fills dst with n consecutive Process() results. This is
// the block variant spec.md §4.10 allows "preserving equivalence" with
// calling Process n times: every sample still goes through the full
// five-step cycle, just under one call.
func (b *Backend) ProcessBlock(dst []frame.Frame) {
	for i := range dst {
		dst[i] = b.Process()
	}
}

// step 1: drain command ring, dispatching each into its subsystem.
func (b *Backend) drainCommands() {
	fill := b.commands.Len()
	for i := 0; i < fill; i++ {
		cmd, ok := b.commands.Pop()
		if !ok {
			return
		}
		b.runCommand(cmd)
	}
}

// step 2: advance every metronome, pushing an event per crossed
// interval. Dropped silently if the event ring is full.
func (b *Backend) advanceMetronomes() {
	b.metronomes.Each(func(id arena.ID, m **metronome.Metronome) {
		b.intervalScratch = b.intervalScratch[:0]
		(*m).Update(b.dt, &b.intervalScratch)
		for _, iv := range b.intervalScratch {
			_ = b.events.Push(command.Event{
				Kind:        command.MetronomeIntervalPassed,
				MetronomeID: command.MetronomeID(id),
				Interval:    iv,
			})
		}
	})
}

// step 3: advance every running sequence, draining its emitted command
// queue through runCommand in order, then clearing scratch.
func (b *Backend) advanceSequences() {
	b.sequencesToRemove = b.sequencesToRemove[:0]
	b.sequences.Each(func(id arena.ID, s **sequence.Sequence) {
		seq := *s
		var m *metronome.Metronome
		if mv, ok := b.metronomes.Get(arena.ID(seq.MetronomeID)); ok {
			m = mv
		}
		b.seqCmdScratch = b.seqCmdScratch[:0]
		seq.Update(b.dt, m, &b.seqCmdScratch)
		if seq.Runaway {
			_ = b.events.Push(command.Event{Kind: command.SequenceRunawayTruncated, SequenceID: command.SequenceID(id)})
			seq.Runaway = false
		}
		for _, cmd := range b.seqCmdScratch {
			if instID, ok := b.runCommand(cmd); ok && cmd.Kind == command.PlaySound {
				seq.RecordInstance(instID)
			}
		}
		if seq.State == sequence.Finished {
			b.sequencesToRemove = append(b.sequencesToRemove, id)
		}
	})
}

// step 3b: advance every standalone parameter's tween. Parameters carry
// no playback position of their own; a SetParameterValue/TweenParameter
// command is the only way their value changes, and this is the one
// place that glide advances.
func (b *Backend) advanceParameters() {
	b.parameters.Each(func(_ arena.ID, p **param.Parameter) {
		(*p).Update(b.dt)
	})
}

// step 3c: decay every loaded sound's cooldown timer towards zero.
// runPlaySound (commands.go) is the other half of this: it arms the
// timer via StartCooldown and refuses to start a new instance while
// CoolingDown reports true (spec.md §4.6).
func (b *Backend) advanceCooldowns() {
	b.sounds.Each(func(_ arena.ID, s **sound.Sound) {
		(*s).UpdateCooldown(b.dt)
	})
}

// step 4: sum every playing instance's resampled frame into its track
// bus scaled by its effective volume, advance its playback state, then
// run each track bus through its effect chain (if any) before summing
// all tracks into the final mix.
func (b *Backend) mix() frame.Frame {
	var tracks [MaxTracks]frame.Frame
	b.instancesToRemove = b.instancesToRemove[:0]
	b.instances.Each(func(id arena.ID, inst **instance.Instance) {
		i := *inst
		snd, ok := b.sounds.Get(arena.ID(i.SoundID))
		var duration float64
		if ok {
			t := trackIndex(i.Settings.Track)
			tracks[t] = tracks[t].Add(snd.FrameAtPosition(i.Position).Scale(i.EffectiveVolume()))
			duration = snd.Duration()
		}
		i.Update(b.dt, duration, i.Settings.LoopStart)
		if i.Finished() {
			b.instancesToRemove = append(b.instancesToRemove, id)
		}
	})

	out := frame.Zero
	for t := range tracks {
		if chain := b.trackChains[t]; chain != nil {
			tracks[t].Left, tracks[t].Right = chain.Process(tracks[t].Left, tracks[t].Right)
		}
		out = out.Add(tracks[t])
	}
	return out
}

func trackIndex(track int) int {
	if track < 0 || track >= MaxTracks {
		return 0
	}
	return track
}

// step 5: remove queued instances/sequences from their arenas and
// notify the controller via the recycle ring.
func (b *Backend) reclaim() {
	for _, id := range b.instancesToRemove {
		if _, ok := b.instances.Remove(id); ok {
			_ = b.recycled.Push(Recycled{Kind: ResourceInstance, ID: id})
		}
	}
	for _, id := range b.sequencesToRemove {
		if _, ok := b.sequences.Remove(id); ok {
			_ = b.recycled.Push(Recycled{Kind: ResourceSequence, ID: id})
		}
	}
}
