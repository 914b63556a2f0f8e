// Package sequence implements the step interpreter that advances in
// step with a bound metronome and pushes commands back into the
// backend's own per-tick queue (spec.md §4.9).
package sequence

import (
	"github.com/cbegin/resonance/internal/command"
	"github.com/cbegin/resonance/internal/metronome"
)

// State is the lifecycle of a Sequence (spec.md §3).
type State int

const (
	Idle State = iota
	Running
	Finished
)

// MaxStepsPerTick bounds how many non-waiting steps a sequence may
// execute in a single Update call. Implementations SHOULD cap this per
// spec.md §4.9 to bound worst-case audio-thread latency; exceeding it
// truncates the tick and reports a runaway via an event rather than
// spinning forever.
const MaxStepsPerTick = 1024

// Sequence interprets a fixed program of Steps.
type Sequence struct {
	MetronomeID command.MetronomeID
	Steps       []command.Step
	Cursor      int
	State       State
	WaitTimer   float64
	LoopPoint   *int

	waitTimerArmed bool

	// instanceHistory records, in order, the InstanceID the backend
	// assigned to each PlaySound step this sequence has executed, so a
	// later Pause/Resume/Stop(UseLast) step can resolve which instance
	// it targets. Appended to by the backend via RecordInstance after
	// it processes a sequence-emitted PlaySound.
	instanceHistory []command.InstanceID

	Runaway bool // set when a tick hit MaxStepsPerTick; cleared on read
}

// New constructs a Sequence bound to metronomeID, Idle.
func New(metronomeID command.MetronomeID, steps []command.Step) *Sequence {
	return &Sequence{MetronomeID: metronomeID, Steps: steps, State: Idle}
}

// Start begins interpretation at step 0 and immediately executes steps
// until the first suspension (a Wait/WaitForInterval that has not yet
// elapsed, or the program's end).
func (s *Sequence) Start(m *metronome.Metronome, out *[]command.Command) {
	s.Cursor = 0
	s.State = Running
	s.WaitTimer = 0
	s.waitTimerArmed = false
	s.run(m, out)
}

// RecordInstance appends an instance id to this sequence's history of
// instances it has started, so subsequent UseLast targets resolve.
func (s *Sequence) RecordInstance(id command.InstanceID) {
	s.instanceHistory = append(s.instanceHistory, id)
}

// ResolveTarget resolves an InstanceHandle to a concrete InstanceID
// using this sequence's own PlaySound history; LastSlot -1 names the
// most recently started one. ok is false if the handle is unresolvable
// (no such slot yet).
func (s *Sequence) ResolveTarget(h command.InstanceHandle) (command.InstanceID, bool) {
	if !h.UseLast {
		return h.ID, true
	}
	if h.LastSlot == -1 {
		if len(s.instanceHistory) == 0 {
			return command.InstanceID{}, false
		}
		return s.instanceHistory[len(s.instanceHistory)-1], true
	}
	if h.LastSlot < 0 || h.LastSlot >= len(s.instanceHistory) {
		return command.InstanceID{}, false
	}
	return s.instanceHistory[h.LastSlot], true
}

// Update advances dt seconds and a possible metronome interval crossing
// (m may be nil if the bound metronome id is stale, in which case
// WaitForInterval steps never advance). Emitted commands are appended
// to out in the order the sequence produced them.
func (s *Sequence) Update(dt float64, m *metronome.Metronome, out *[]command.Command) {
	if s.State != Running {
		return
	}
	if s.stepAt(s.Cursor).Kind == command.StepWait && s.waitTimerArmed {
		s.WaitTimer -= dt
	}
	s.run(m, out)
}

func (s *Sequence) stepAt(i int) command.Step {
	if i < 0 || i >= len(s.Steps) {
		return command.Step{Kind: command.StepEnd}
	}
	return s.Steps[i]
}

// run executes steps starting at the current cursor until the sequence
// must suspend (a Wait/WaitForInterval that has not elapsed), finishes,
// or the per-tick step budget is exhausted.
func (s *Sequence) run(m *metronome.Metronome, out *[]command.Command) {
	for executed := 0; executed < MaxStepsPerTick; executed++ {
		if s.Cursor >= len(s.Steps) {
			s.State = Finished
			return
		}
		step := s.Steps[s.Cursor]
		switch step.Kind {
		case command.StepWait:
			if !s.waitTimerArmed {
				s.WaitTimer = step.WaitSeconds
				s.waitTimerArmed = true
			}
			if s.WaitTimer > 0 {
				return // suspend; same step resumes next tick
			}
			s.waitTimerArmed = false
			s.Cursor++

		case command.StepWaitForInterval:
			if m == nil {
				return // stale metronome id: suspend indefinitely
			}
			if !metronome.Crossed(m.PreviousTime(), m.Time(), step.IntervalBeats) {
				return
			}
			s.Cursor++

		case command.StepPlaySound:
			*out = append(*out, command.Command{
				Kind:     command.PlaySound,
				SoundID:  step.SoundID,
				Settings: step.Settings,
			})
			s.Cursor++

		case command.StepEmit:
			*out = append(*out, command.Command{Kind: command.EmitCustomEvent, Custom: step.Custom})
			s.Cursor++

		case command.StepSetMetronome:
			*out = append(*out, command.Command{
				Kind:        step.MetronomeCmd,
				MetronomeID: step.MetronomeID,
				TempoBPM:    step.TempoBPM,
			})
			s.Cursor++

		case command.StepPauseInstance, command.StepResumeInstance, command.StepStopInstance:
			if id, ok := s.ResolveTarget(step.Target); ok {
				*out = append(*out, command.Command{
					Kind:       instanceCommandKind(step.Kind),
					InstanceID: id,
					Fade:       step.Fade,
				})
			}
			s.Cursor++

		case command.StepGoTo:
			s.Cursor = step.GoToIndex

		case command.StepEnd:
			s.State = Finished
			return

		default:
			s.Cursor++
		}
	}
	s.Runaway = true
}

func instanceCommandKind(stepKind command.StepKind) command.Kind {
	switch stepKind {
	case command.StepPauseInstance:
		return command.PauseInstance
	case command.StepResumeInstance:
		return command.ResumeInstance
	default:
		return command.StopInstance
	}
}
