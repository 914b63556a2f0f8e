// Command seqdemo drives a metronome and a short step sequence against
// a synthesized click, printing the events the sequence and metronome
// emit as playback advances.
package main

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/cbegin/resonance"
	"github.com/cbegin/resonance/internal/audio"
	"github.com/cbegin/resonance/internal/command"
	"github.com/cbegin/resonance/internal/config"
	"github.com/cbegin/resonance/internal/frame"
	"github.com/cbegin/resonance/internal/sound"
)

func main() {
	var (
		configPath = pflag.StringP("config", "c", "", "path to a YAML config file")
		bpm        = pflag.Float64P("bpm", "b", 120.0, "metronome tempo in beats per minute")
		steps      = pflag.IntP("steps", "n", 8, "number of click steps to schedule")
	)
	pflag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false, Prefix: "seqdemo"})

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Fatal("load config", "err", err)
		}
		cfg = loaded
	}

	mgr := resonance.NewManager(cfg.SampleRate, cfg.BackendSettings())

	click := sound.New(cfg.SampleRate, clickFrames(cfg.SampleRate), sound.Settings{})
	soundID, err := mgr.LoadSound(click)
	if err != nil {
		logger.Fatal("load click sound", "err", err)
	}

	metronomeID, err := mgr.CreateMetronome(*bpm)
	if err != nil {
		logger.Fatal("create metronome", "err", err)
	}
	if err := mgr.RegisterMetronomeInterval(metronomeID, 1); err != nil {
		logger.Fatal("register metronome interval", "err", err)
	}
	if err := mgr.StartMetronome(metronomeID); err != nil {
		logger.Fatal("start metronome", "err", err)
	}

	program := make([]command.Step, 0, *steps+1)
	for i := 0; i < *steps; i++ {
		program = append(program, command.Step{
			Kind:     command.StepPlaySound,
			SoundID:  soundID,
			Settings: resonance.DefaultInstanceSettings(),
		})
		program = append(program, command.Step{
			Kind:          command.StepWaitForInterval,
			IntervalBeats: 1,
		})
	}
	program = append(program, command.Step{Kind: command.StepEnd})

	if _, err := mgr.StartSequence(metronomeID, program); err != nil {
		logger.Fatal("start sequence", "err", err)
	}

	driver, err := audio.NewEbitenDriver(mgr.Backend(), int(cfg.SampleRate))
	if err != nil {
		logger.Fatal("start audio driver", "err", err)
	}
	driver.Start()
	defer driver.Stop()

	beatsToWatch := float64(*steps) + 1
	secondsPerBeat := 60.0 / *bpm
	deadline := time.Now().Add(time.Duration(beatsToWatch*secondsPerBeat*1000) * time.Millisecond)

	for time.Now().Before(deadline) {
		mgr.DrainEvents(func(ev command.Event) {
			switch ev.Kind {
			case command.MetronomeIntervalPassed:
				logger.Info("interval", "metronome", ev.MetronomeID, "beats", ev.Interval)
			case command.SequenceRunawayTruncated:
				logger.Warn("sequence truncated", "sequence", ev.SequenceID)
			}
		})
		mgr.DrainRecycled()
		time.Sleep(20 * time.Millisecond)
	}
	logger.Info("sequence demo finished")
}

// clickFrames synthesizes a short decaying blip used as the sequence's
// audible marker, since no sample file ships with this binary.
func clickFrames(sampleRate uint32) []frame.Frame {
	const durationSeconds = 0.05
	n := int(float64(sampleRate) * durationSeconds)
	frames := make([]frame.Frame, n)
	for i := range frames {
		decay := float32(1.0 - float64(i)/float64(n))
		v := decay * decay
		frames[i] = frame.Frame{Left: v, Right: v}
	}
	return frames
}
