// Command playsound loads a WAV file and plays it once through the
// ebiten driver, printing lifecycle events as they arrive.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/cbegin/resonance"
	"github.com/cbegin/resonance/internal/audio"
	"github.com/cbegin/resonance/internal/command"
	"github.com/cbegin/resonance/internal/config"
	"github.com/cbegin/resonance/internal/loader"
	"github.com/cbegin/resonance/internal/sound"
)

func main() {
	var (
		configPath = pflag.StringP("config", "c", "", "path to a YAML config file")
		wavPath    = pflag.StringP("file", "f", "", "path to a WAV file to play")
		volume     = pflag.Float32P("volume", "v", 1.0, "instance volume, 0..1")
		pitch      = pflag.Float32P("pitch", "p", 1.0, "instance pitch, 1.0 = normal speed")
		renderTo   = pflag.String("render-to", "", "render to this WAV path instead of opening a live driver")
		renderSecs = pflag.Float64("render-seconds", 2.0, "seconds to render when --render-to is set")
	)
	pflag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false, Prefix: "playsound"})

	if *wavPath == "" {
		logger.Fatal("missing required flag", "flag", "--file")
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Fatal("load config", "err", err)
		}
		cfg = loaded
	}

	data, err := os.ReadFile(*wavPath)
	if err != nil {
		logger.Fatal("read wav file", "err", err)
	}
	sampleRate, frames, err := (loader.WAV{}).Decode(data)
	if err != nil {
		logger.Fatal("decode wav file", "err", err)
	}

	mgr := resonance.NewManager(sampleRate, cfg.BackendSettings())
	snd := sound.New(sampleRate, frames, sound.Settings{})
	soundID, err := mgr.LoadSound(snd)
	if err != nil {
		logger.Fatal("load sound", "err", err)
	}

	if *renderTo != "" {
		if _, err := mgr.PlaySound(soundID, resonance.InstanceSettings{Volume: *volume, Pitch: *pitch}); err != nil {
			logger.Fatal("play sound", "err", err)
		}
		samples := resonance.RenderSamples(mgr.Backend(), int(sampleRate), *renderSecs)
		wav := resonance.EncodeWAVFloat32LE(samples, int(sampleRate), 2)
		if err := os.WriteFile(*renderTo, wav, 0o644); err != nil {
			logger.Fatal("write rendered wav", "err", err)
		}
		fmt.Printf("rendered %s (%.2fs)\n", *renderTo, *renderSecs)
		return
	}

	driver, err := audio.NewEbitenDriver(mgr.Backend(), int(sampleRate))
	if err != nil {
		logger.Fatal("start audio driver", "err", err)
	}
	driver.Start()

	instID, err := mgr.PlaySound(soundID, resonance.InstanceSettings{Volume: *volume, Pitch: *pitch})
	if err != nil {
		logger.Fatal("play sound", "err", err)
	}

	for mgr.InstanceLive(instID) {
		mgr.DrainEvents(func(ev command.Event) {
			logger.Debug("event", "kind", ev.Kind)
		})
		mgr.DrainRecycled()
		time.Sleep(20 * time.Millisecond)
	}
	logger.Info("playback finished")
	_ = driver.Stop()
}
