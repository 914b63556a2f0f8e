package backend

import (
	"github.com/cbegin/resonance/internal/arena"
	"github.com/cbegin/resonance/internal/command"
	"github.com/cbegin/resonance/internal/instance"
	"github.com/cbegin/resonance/internal/metronome"
	"github.com/cbegin/resonance/internal/param"
	"github.com/cbegin/resonance/internal/sequence"
	"github.com/cbegin/resonance/internal/sound"
	"github.com/cbegin/resonance/internal/tween"
)

// runCommand dispatches one Command into its subsystem. Unknown or
// stale ids are silently ignored (spec.md §4.10, §7): the audio side
// never returns an error of its own. The (InstanceID, bool) result lets
// a sequence draining its own emitted commands learn which instance a
// PlaySound step actually created, for later Pause/Resume/Stop(UseLast)
// targeting.
func (b *Backend) runCommand(cmd command.Command) (command.InstanceID, bool) {
	switch cmd.Kind {
	case command.LoadSound:
		b.runLoadSound(cmd)

	case command.UnloadSound:
		b.runUnloadSound(cmd)

	case command.PlaySound:
		return b.runPlaySound(cmd)

	case command.SetInstanceVolume:
		if i := b.instances.GetPtr(arena.ID(cmd.InstanceID)); i != nil {
			(*i).SetVolume(cmd.Value, fadeTween(cmd.Fade))
		}

	case command.SetInstancePitch:
		if i := b.instances.GetPtr(arena.ID(cmd.InstanceID)); i != nil {
			(*i).SetPitch(cmd.Value, fadeTween(cmd.Fade))
		}

	case command.PauseInstance:
		if i := b.instances.GetPtr(arena.ID(cmd.InstanceID)); i != nil {
			(*i).Pause(fadeTween(cmd.Fade))
		}

	case command.ResumeInstance:
		if i := b.instances.GetPtr(arena.ID(cmd.InstanceID)); i != nil {
			(*i).Resume(fadeTween(cmd.Fade))
		}

	case command.StopInstance:
		if i := b.instances.GetPtr(arena.ID(cmd.InstanceID)); i != nil {
			(*i).Stop(fadeTween(cmd.Fade))
		}

	case command.PauseInstancesOfSound:
		b.forEachInstanceOfSound(cmd.SoundID, func(i *instance.Instance) { i.Pause(fadeTween(cmd.Fade)) })

	case command.ResumeInstancesOfSound:
		b.forEachInstanceOfSound(cmd.SoundID, func(i *instance.Instance) { i.Resume(fadeTween(cmd.Fade)) })

	case command.StopInstancesOfSound:
		b.forEachInstanceOfSound(cmd.SoundID, func(i *instance.Instance) {
			if i.Settings.Persist {
				return
			}
			i.Stop(fadeTween(cmd.Fade))
		})

	case command.CreateMetronome:
		b.metronomes.Insert(arena.ID(cmd.MetronomeID), metronome.New(metronome.Tempo(cmd.TempoBPM)))

	case command.RemoveMetronome:
		b.metronomes.Remove(arena.ID(cmd.MetronomeID))

	case command.SetMetronomeTempo:
		if m := b.metronomes.GetPtr(arena.ID(cmd.MetronomeID)); m != nil {
			(*m).SetTempo(metronome.Tempo(cmd.TempoBPM))
		}

	case command.RegisterMetronomeInterval:
		if m := b.metronomes.GetPtr(arena.ID(cmd.MetronomeID)); m != nil {
			(*m).RegisterInterval(cmd.Interval)
		}

	case command.StartMetronome:
		if m := b.metronomes.GetPtr(arena.ID(cmd.MetronomeID)); m != nil {
			(*m).Start()
		}

	case command.PauseMetronome:
		if m := b.metronomes.GetPtr(arena.ID(cmd.MetronomeID)); m != nil {
			(*m).Pause()
		}

	case command.StopMetronome:
		if m := b.metronomes.GetPtr(arena.ID(cmd.MetronomeID)); m != nil {
			(*m).Stop()
		}

	case command.StartSequence:
		b.runStartSequence(cmd)

	case command.CreateParameter:
		p := param.NewParameter(cmd.ParamValue)
		b.parameters.Insert(arena.ID(cmd.ParameterID), &p)

	case command.RemoveParameter:
		b.parameters.Remove(arena.ID(cmd.ParameterID))

	case command.SetParameterValue:
		if p := b.parameters.GetPtr(arena.ID(cmd.ParameterID)); p != nil {
			(*p).Set(cmd.ParamValue)
		}

	case command.TweenParameter:
		if p := b.parameters.GetPtr(arena.ID(cmd.ParameterID)); p != nil && cmd.ParamTween != nil {
			(*p).TweenTo(cmd.ParamValue, *cmd.ParamTween, cmd.SentTime)
		}

	case command.EmitCustomEvent:
		_ = b.events.Push(command.Event{Kind: command.EventCustom, Custom: cmd.Custom})

	case command.SetTrackEffects:
		b.trackChains[trackIndex(cmd.Track)] = cmd.TrackEffects
	}
	return command.InstanceID{}, false
}

// fadeTween unwraps a wire-level Fade into the tween.Tween the instance
// state machine expects; nil means an instantaneous jump.
func fadeTween(f *command.Fade) *tween.Tween {
	if f == nil {
		return nil
	}
	t := f.Tween
	return &t
}

func (b *Backend) runLoadSound(cmd command.Command) {
	if cmd.SoundData == nil {
		return
	}
	s := sound.New(cmd.SoundData.SampleRate, cmd.SoundData.Frames, sound.Settings{
		DefaultTrack:     sound.TrackID(cmd.SoundData.DefaultTrack),
		SemanticDuration: cmd.SoundData.SemanticDuration,
		DefaultLoopStart: cmd.SoundData.DefaultLoopStart,
		Cooldown:         cmd.SoundData.Cooldown,
	})
	b.sounds.Insert(arena.ID(cmd.SoundID), s)
}

func (b *Backend) runUnloadSound(cmd command.Command) {
	if _, ok := b.sounds.Remove(arena.ID(cmd.SoundID)); !ok {
		return
	}
	// all instances of that sound are stopped immediately (spec.md §3).
	b.instances.Each(func(id arena.ID, inst **instance.Instance) {
		if (*inst).SoundID == cmd.SoundID {
			(*inst).State = instance.Stopped
		}
	})
}

func (b *Backend) runPlaySound(cmd command.Command) (command.InstanceID, bool) {
	snd, ok := b.sounds.Get(arena.ID(cmd.SoundID))
	if !ok {
		return command.InstanceID{}, false // unloaded/unknown sound: silent no-op (spec.md §9 open question a)
	}
	if snd.CoolingDown() {
		return command.InstanceID{}, false // within cooldown window: silent no-op (spec.md §4.6)
	}
	inst := instance.New(cmd.SoundID, cmd.Settings)
	if !b.instances.Insert(arena.ID(cmd.InstanceID), inst) {
		return command.InstanceID{}, false
	}
	snd.StartCooldown()
	return cmd.InstanceID, true
}

func (b *Backend) runStartSequence(cmd command.Command) {
	seq := sequence.New(cmd.MetronomeID, cmd.Steps)
	if !b.sequences.Insert(arena.ID(cmd.SequenceID), seq) {
		return
	}
	m, _ := b.metronomes.Get(arena.ID(cmd.MetronomeID))
	var scratch []command.Command
	seq.Start(m, &scratch)
	for _, c := range scratch {
		if instID, ok := b.runCommand(c); ok && c.Kind == command.PlaySound {
			seq.RecordInstance(instID)
		}
	}
	if seq.State == sequence.Finished {
		b.sequences.Remove(arena.ID(cmd.SequenceID))
		_ = b.recycled.Push(Recycled{Kind: ResourceSequence, ID: arena.ID(cmd.SequenceID)})
	}
}

func (b *Backend) forEachInstanceOfSound(soundID command.SoundID, fn func(*instance.Instance)) {
	b.instances.Each(func(_ arena.ID, inst **instance.Instance) {
		if (*inst).SoundID == soundID {
			fn(*inst)
		}
	})
}
