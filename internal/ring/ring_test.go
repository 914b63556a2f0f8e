package ring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestPushPopFIFOOrder(t *testing.T) {
	r := New[int](4)
	for i := 0; i < 4; i++ {
		assert.NoError(t, r.Push(i))
	}
	for i := 0; i < 4; i++ {
		v, ok := r.Pop()
		assert.True(t, ok)
		assert.Equal(t, i, v)
	}
	_, ok := r.Pop()
	assert.False(t, ok, "pop on empty ring must report absent, not panic")
}

func TestPushFailsWhenFull(t *testing.T) {
	r := New[int](4)
	cap := r.Cap()
	for i := 0; i < cap; i++ {
		assert.NoError(t, r.Push(i))
	}
	err := r.Push(999)
	assert.Error(t, err)
	_, isFull := err.(ErrFull)
	assert.True(t, isFull)
}

func TestDrainThenResubmitSucceeds(t *testing.T) {
	r := New[int](4)
	cap := r.Cap()
	for i := 0; i < cap; i++ {
		assert.NoError(t, r.Push(i))
	}
	assert.Error(t, r.Push(100))
	for i := 0; i < cap; i++ {
		_, ok := r.Pop()
		assert.True(t, ok)
	}
	assert.NoError(t, r.Push(100), "after a full drain, push must succeed again")
}

// TestFIFOOrderUnderMixedPushPop is the property-based counterpart of
// spec.md §5's ordering guarantee: values popped from the ring preserve
// submission order.
func TestFIFOOrderUnderMixedPushPop(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := New[int](8)
		var submitted, observed []int
		next := 0
		ops := rapid.SliceOfN(rapid.IntRange(0, 1), 0, 200).Draw(rt, "ops")
		for _, op := range ops {
			if op == 0 {
				if err := r.Push(next); err == nil {
					submitted = append(submitted, next)
					next++
				}
			} else if v, ok := r.Pop(); ok {
				observed = append(observed, v)
			}
		}
		for r.Len() > 0 {
			v, ok := r.Pop()
			if ok {
				observed = append(observed, v)
			}
		}
		if len(observed) != len(submitted) {
			rt.Fatalf("observed %d values, submitted %d", len(observed), len(submitted))
		}
		for i := range observed {
			if observed[i] != submitted[i] {
				rt.Fatalf("order mismatch at %d: got %d want %d", i, observed[i], submitted[i])
			}
		}
	})
}
