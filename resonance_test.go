package resonance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestInstanceMethodsRejectStaleID reproduces the controller-side half
// of spec.md §8 scenario 6: once the Manager's own mirrored arena no
// longer shows an id live, every instance-targeted method must refuse
// it up front instead of submitting a command that the audio side would
// only silently drop.
func TestInstanceMethodsRejectStaleID(t *testing.T) {
	m := NewManager(1000, DefaultSettings())
	stale := InstanceID{Index: 0, Generation: 1} // never allocated by this Manager

	assert.ErrorIs(t, m.SetInstanceVolume(stale, 0.5, nil), ErrInstanceStopped)
	assert.ErrorIs(t, m.SetInstancePitch(stale, 1.5, nil), ErrInstanceStopped)
	assert.ErrorIs(t, m.PauseInstance(stale, nil), ErrInstanceStopped)
	assert.ErrorIs(t, m.ResumeInstance(stale, nil), ErrInstanceStopped)
	assert.ErrorIs(t, m.StopInstance(stale, nil), ErrInstanceStopped)
}
