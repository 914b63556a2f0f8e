// Package param implements the tweenable scalar values read by the
// mixer every frame: instance volume/pitch/fade and standalone user
// parameters (spec.md §3 TweenableF32, §4.4 Parameters).
package param

import "github.com/cbegin/resonance/internal/tween"

// TweenableF32 is a single-precision value that can glide from its
// current value to a target along a tween. With no active tween,
// Current == Target and Elapsed is irrelevant, per spec.md §3.
type TweenableF32 struct {
	current float32
	start   float32
	target  float32
	active  *tween.Tween
	elapsed float64
}

// NewTweenableF32 constructs a value with no active tween.
func NewTweenableF32(value float32) TweenableF32 {
	return TweenableF32{current: value, start: value, target: value}
}

// Set jumps the value immediately, cancelling any active tween.
func (p *TweenableF32) Set(value float32) {
	p.current = value
	p.start = value
	p.target = value
	p.active = nil
	p.elapsed = 0
}

// TweenTo begins a glide from the current value to target over tw.
func (p *TweenableF32) TweenTo(target float32, tw tween.Tween) {
	p.start = p.current
	p.target = target
	cp := tw
	p.active = &cp
	p.elapsed = 0
}

// Update advances elapsed time by dt and recomputes Current. A no-op if
// there is no active tween or it has already completed.
func (p *TweenableF32) Update(dt float64) {
	if p.active == nil {
		return
	}
	p.elapsed += dt
	v := tween.Eval(*p.active, float64(p.start), float64(p.target), p.elapsed)
	p.current = float32(v)
	if tween.Done(*p.active, p.elapsed) {
		p.current = p.target
		p.active = nil
		p.elapsed = 0
	}
}

// Current returns the present value.
func (p *TweenableF32) Current() float32 { return p.current }

// Target returns the value the tween (if any) is gliding towards.
func (p *TweenableF32) Target() float32 { return p.target }

// Tweening reports whether a glide is in progress.
func (p *TweenableF32) Tweening() bool { return p.active != nil }

// RemainingDuration returns the seconds left in the active tween, or 0
// if none is active.
func (p *TweenableF32) RemainingDuration() float64 {
	if p.active == nil {
		return 0
	}
	remaining := p.active.Duration - p.elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Parameter is a user-addressable scalar the mixer or sequence steps
// read each frame; wraps a float64 TweenableF32 identically to the f32
// variant but at the wider precision used for standalone parameters in
// spec.md §4.4.
type Parameter struct {
	current float64
	start   float64
	target  float64
	active  *tween.Tween
	elapsed float64
}

// NewParameter constructs a parameter with no active tween.
func NewParameter(value float64) Parameter {
	return Parameter{current: value, start: value, target: value}
}

// Set is an immediate assignment.
func (p *Parameter) Set(value float64) {
	p.current = value
	p.start = value
	p.target = value
	p.active = nil
	p.elapsed = 0
}

// TweenTo captures the current value as the start point and begins a
// glide to target over tw. commandSentTime is accepted for API parity
// with the wire protocol (a command carries the controller's send
// timestamp) but elapsed time is always measured from the first Update
// after this call, per spec.md §4.4.
func (p *Parameter) TweenTo(target float64, tw tween.Tween, commandSentTime float64) {
	_ = commandSentTime
	p.start = p.current
	p.target = target
	cp := tw
	p.active = &cp
	p.elapsed = 0
}

// Update advances the parameter's tween by dt seconds.
func (p *Parameter) Update(dt float64) {
	if p.active == nil {
		return
	}
	p.elapsed += dt
	p.current = tween.Eval(*p.active, p.start, p.target, p.elapsed)
	if tween.Done(*p.active, p.elapsed) {
		p.current = p.target
		p.active = nil
		p.elapsed = 0
	}
}

// Value returns the current value consumers read each frame.
func (p *Parameter) Value() float64 { return p.current }
