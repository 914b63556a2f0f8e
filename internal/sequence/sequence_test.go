package sequence

import (
	"testing"

	"github.com/cbegin/resonance/internal/command"
	"github.com/cbegin/resonance/internal/metronome"
	"github.com/stretchr/testify/assert"
)

func TestWaitSuspendsUntilElapsed(t *testing.T) {
	steps := []command.Step{
		{Kind: command.StepWait, WaitSeconds: 0.2},
		{Kind: command.StepEnd},
	}
	s := New(command.MetronomeID{}, steps)
	var out []command.Command
	s.Start(nil, &out)
	assert.Equal(t, Running, s.State)

	s.Update(0.1, nil, &out)
	assert.Equal(t, Running, s.State, "must still be waiting after 0.1s of a 0.2s wait")

	s.Update(0.1, nil, &out)
	assert.Equal(t, Finished, s.State)
}

// TestSequenceTimingScenario reproduces scenario 4 of spec.md §8: a
// sequence PlaySound(A); WaitForInterval(1.0); PlaySound(B); End bound
// to a 120bpm metronome (2 beats/s), so the B instance should start
// mid-tick around t=0.5s.
func TestSequenceTimingScenario(t *testing.T) {
	m := metronome.New(120)
	m.RegisterInterval(1.0)
	m.Start()

	steps := []command.Step{
		{Kind: command.StepPlaySound, SoundID: command.SoundID{Index: 1, Generation: 1}},
		{Kind: command.StepWaitForInterval, IntervalBeats: 1.0},
		{Kind: command.StepPlaySound, SoundID: command.SoundID{Index: 2, Generation: 1}},
		{Kind: command.StepEnd},
	}
	s := New(command.MetronomeID{}, steps)

	var out []command.Command
	s.Start(m, &out)
	assert.Len(t, out, 1, "A must be started in tick 0")
	assert.Equal(t, uint32(1), out[0].SoundID.Index)

	const sampleRate = 44100
	dt := 1.0 / sampleRate
	var mcross []float64
	playedB := false
	for n := 0; n < sampleRate && s.State == Running; n++ {
		mcross = mcross[:0]
		m.Update(dt, &mcross)
		before := len(out)
		s.Update(dt, m, &out)
		if len(out) > before {
			playedB = true
			assert.InDelta(t, 0.5, float64(n)*dt, 0.01)
			break
		}
	}
	assert.True(t, playedB, "B must be started in the tick musical time crosses 1 beat")
}

func TestGoToLoopsWithinPerTickBudget(t *testing.T) {
	steps := []command.Step{
		{Kind: command.StepEmit, Custom: command.CustomEvent{Tag: 1}},
		{Kind: command.StepGoTo, GoToIndex: 0},
	}
	s := New(command.MetronomeID{}, steps)
	var out []command.Command
	s.Start(nil, &out)
	assert.True(t, s.Runaway, "an unbounded GoTo loop must trip the per-tick runaway cap")
	assert.LessOrEqual(t, len(out), MaxStepsPerTick)
}

func TestResolveTargetUseLast(t *testing.T) {
	s := New(command.MetronomeID{}, nil)
	id := command.InstanceID{Index: 5, Generation: 2}
	s.RecordInstance(id)
	got, ok := s.ResolveTarget(command.InstanceHandle{UseLast: true, LastSlot: 0})
	assert.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = s.ResolveTarget(command.InstanceHandle{UseLast: true, LastSlot: 1})
	assert.False(t, ok, "an unresolved slot must report failure, not a zero id")
}
