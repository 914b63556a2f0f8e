// Package metronome counts musical time from a configurable tempo and
// notifies registered listeners when elapsed time crosses an interval
// boundary (spec.md §4.8).
package metronome

import (
	"math"
	"sort"
)

// Tempo is a beats-per-minute value; it must be positive.
type Tempo float64

// BeatsPerSecond converts tempo to the rate time advances at.
func (t Tempo) BeatsPerSecond() float64 { return float64(t) / 60 }

// Metronome tracks elapsed musical time in beats and fires a
// notification for each registered interval crossed on a given tick.
type Metronome struct {
	Tempo     Tempo
	intervals []float64 // sorted, deduplicated, ascending

	ticking      bool
	time         float64
	previousTime float64
}

// New constructs a Metronome at the given tempo, not yet ticking.
func New(tempo Tempo) *Metronome {
	return &Metronome{Tempo: tempo}
}

// RegisterInterval adds iv (beats) to the set the metronome watches for
// crossings. Intervals must be > 0; duplicates are ignored.
func (m *Metronome) RegisterInterval(iv float64) {
	if iv <= 0 {
		return
	}
	for _, existing := range m.intervals {
		if existing == iv {
			return
		}
	}
	m.intervals = append(m.intervals, iv)
	sort.Float64s(m.intervals)
}

// Start begins ticking from the current time (does not reset it).
func (m *Metronome) Start() { m.ticking = true }

// Pause stops ticking but preserves the current time.
func (m *Metronome) Pause() { m.ticking = false }

// Stop stops ticking and resets time to zero.
func (m *Metronome) Stop() {
	m.ticking = false
	m.time = 0
	m.previousTime = 0
}

// SetTempo replaces the tempo immediately; it does not retime beats
// that have already elapsed.
func (m *Metronome) SetTempo(tempo Tempo) { m.Tempo = tempo }

// Ticking reports whether the metronome is currently advancing.
func (m *Metronome) Ticking() bool { return m.ticking }

// Time returns the current elapsed musical time in beats.
func (m *Metronome) Time() float64 { return m.time }

// PreviousTime returns elapsed musical time as of the start of the most
// recent Update call, so callers (the sequence interpreter's
// WaitForInterval step) can apply the same crossing test the metronome
// itself used to decide which intervals to emit this tick.
func (m *Metronome) PreviousTime() float64 { return m.previousTime }

// Update advances dt seconds of wall-clock time and appends, in
// ascending order, every registered interval whose multiple was crossed
// during this tick. When not ticking, time does not advance and nothing
// is appended.
func (m *Metronome) Update(dt float64, out *[]float64) {
	if !m.ticking {
		m.previousTime = m.time
		return
	}
	m.previousTime = m.time
	m.time += dt * m.Tempo.BeatsPerSecond()
	for _, iv := range m.intervals {
		if Crossed(m.previousTime, m.time, iv) {
			*out = append(*out, iv)
		}
	}
}

// Crossed reports whether musical time advancing from previous to
// current crosses a whole multiple of iv (spec.md §4.8's
// floor(time/iv) > floor(previousTime/iv) condition, shared verbatim
// with the sequence interpreter's WaitForInterval step).
func Crossed(previous, current, iv float64) bool {
	if iv <= 0 {
		return false
	}
	return floorDiv(current, iv) > floorDiv(previous, iv)
}

// crossingEpsilon is how close (in multiples of an interval) musical
// time must be to a whole multiple to count as having reached it. Time
// is accumulated from many tiny per-sample steps, and the rounding error
// of that sum would otherwise leave it just short of a boundary it has
// reached in exact arithmetic.
const crossingEpsilon = 1e-6

func floorDiv(v, iv float64) int64 {
	q := v / iv
	if r := math.Round(q); math.Abs(q-r) < crossingEpsilon {
		return int64(r)
	}
	f := int64(q)
	if q < 0 && float64(f) != q {
		f--
	}
	return f
}
