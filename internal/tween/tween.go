// Package tween implements the time-based interpolator used to glide
// parameters and instance volume/pitch/fade from a start value to a
// target value (spec.md §4.5).
package tween

import "math"

// Curve identifies the easing function applied to a tween's progress.
// The set is closed and small, so a tagged switch keeps the hot path
// branch-predictor friendly instead of paying for virtual dispatch.
type Curve struct {
	Kind CurveKind
	Pow  float64 // exponent for EaseIn/EaseOut/EaseInOut; must be >= 1
}

type CurveKind int

const (
	Linear CurveKind = iota
	EaseIn
	EaseOut
	EaseInOut
)

// Linear1 is the zero-value-friendly linear curve.
var Linear1 = Curve{Kind: Linear}

// Tween describes a glide from a start value to a target value over a
// positive duration in seconds along curve.
type Tween struct {
	Duration float64
	Curve    Curve
}

// Eval returns the progress-adjusted output value for elapsed seconds
// into the tween. elapsed is clamped to [0, Duration] before easing.
func Eval(t Tween, start, target float64, elapsed float64) float64 {
	p := Progress(t, elapsed)
	return start + (target-start)*p
}

// Progress returns the eased unit progress in [0,1] for elapsed seconds
// into a tween of the given shape.
func Progress(t Tween, elapsed float64) float64 {
	if t.Duration <= 0 {
		return 1
	}
	p := elapsed / t.Duration
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return ease(t.Curve, p)
}

func ease(c Curve, p float64) float64 {
	pow := c.Pow
	if pow < 1 {
		pow = 1
	}
	switch c.Kind {
	case EaseIn:
		return math.Pow(p, pow)
	case EaseOut:
		return 1 - math.Pow(1-p, pow)
	case EaseInOut:
		if p < 0.5 {
			return math.Pow(2*p, pow) / 2
		}
		return 1 - math.Pow(2*(1-p), pow)/2
	default: // Linear
		return p
	}
}

// Done reports whether elapsed has reached or passed the tween's
// duration; once true, further Eval calls are no-ops and must return
// target exactly.
func Done(t Tween, elapsed float64) bool {
	return elapsed >= t.Duration
}
