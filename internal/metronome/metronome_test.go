package metronome

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMetronomeTicksAtOneTwentyBPM reproduces scenario 3 of spec.md §8:
// tempo=120bpm (2 beats/s), intervals {1.0, 4.0}, 10 seconds of audio at
// 44100 Hz, expect 20 IntervalPassed(1.0) and 5 IntervalPassed(4.0).
func TestMetronomeTicksAtOneTwentyBPM(t *testing.T) {
	m := New(120)
	m.RegisterInterval(1.0)
	m.RegisterInterval(4.0)
	m.Start()

	const sampleRate = 44100
	dt := 1.0 / sampleRate
	var ones, fours int
	for n := 0; n < sampleRate*10; n++ {
		var crossed []float64
		m.Update(dt, &crossed)
		for _, iv := range crossed {
			if iv == 1.0 {
				ones++
			} else if iv == 4.0 {
				fours++
			}
		}
	}
	assert.Equal(t, 20, ones)
	assert.Equal(t, 5, fours)
}

func TestPauseFreezesTimeStopResetsIt(t *testing.T) {
	m := New(60) // 1 beat/s
	m.Start()
	var out []float64
	m.Update(0.5, &out)
	assert.InDelta(t, 0.5, m.Time(), 1e-9)

	m.Pause()
	m.Update(0.5, &out)
	assert.InDelta(t, 0.5, m.Time(), 1e-9, "paused metronome must not advance time")

	m.Stop()
	assert.Equal(t, 0.0, m.Time())
}

func TestSetTempoDoesNotRetimePastBeats(t *testing.T) {
	m := New(60)
	m.Start()
	var out []float64
	m.Update(1, &out)
	m.SetTempo(120)
	assert.Equal(t, 1.0, m.Time(), "changing tempo must not rewrite already-elapsed time")
}

func TestIntervalsEmitInAscendingOrderWithinATick(t *testing.T) {
	m := New(6000) // 100 beats/sec, so a 0.1s tick advances 10 beats
	m.RegisterInterval(4)
	m.RegisterInterval(1)
	m.RegisterInterval(2)
	m.Start()
	var out []float64
	m.Update(0.1, &out)
	assert.Equal(t, []float64{1, 2, 4}, out)
}

func TestCrossedHelperMatchesFloorRule(t *testing.T) {
	assert.True(t, Crossed(0.9, 1.1, 1.0))
	assert.False(t, Crossed(0.1, 0.9, 1.0))
	assert.True(t, Crossed(3.9, 4.1, 4.0))
}
