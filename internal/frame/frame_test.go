package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCubicHermiteAtSampleBoundary(t *testing.T) {
	y0 := Frame{1, -1}
	y1 := Frame{2, -2}
	y2 := Frame{3, -3}
	y3 := Frame{4, -4}

	got := CubicHermite(y0, y1, y2, y3, 0)
	assert.Equal(t, y1, got, "x=0 must reproduce y1 exactly")
}

func TestCubicHermiteOutOfRangeNeighborsAreZero(t *testing.T) {
	y1 := Frame{1, 1}
	y2 := Frame{0.5, 0.5}
	got := CubicHermite(Zero, y1, y2, Zero, 0.5)
	assert.NotEqual(t, Zero, got)
}

func TestFrameArithmetic(t *testing.T) {
	a := Frame{1, 2}
	b := Frame{3, 4}
	assert.Equal(t, Frame{4, 6}, a.Add(b))
	assert.Equal(t, Frame{-2, -2}, a.Sub(b))
	assert.Equal(t, Frame{2, 4}, a.Scale(2))
	assert.Equal(t, Frame{3, 8}, a.Mul(b))
}
