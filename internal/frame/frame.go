// Package frame defines the stereo sample primitive and the fractional-
// position resampling kernel shared by the sound and instance layers.
package frame

// Frame is one stereo sample.
type Frame struct {
	Left, Right float32
}

// Zero is the identity element for Add.
var Zero = Frame{}

func (f Frame) Add(o Frame) Frame {
	return Frame{f.Left + o.Left, f.Right + o.Right}
}

func (f Frame) Sub(o Frame) Frame {
	return Frame{f.Left - o.Left, f.Right - o.Right}
}

func (f Frame) Scale(s float32) Frame {
	return Frame{f.Left * s, f.Right * s}
}

func (f Frame) Mul(o Frame) Frame {
	return Frame{f.Left * o.Left, f.Right * o.Right}
}

// CubicHermite interpolates four consecutive frames at fractional position
// x in [0,1). Neighbors outside the buffer must be passed as frame.Zero by
// the caller; the coefficients and evaluation order are reproduced verbatim
// from the reference implementation so results are bit-reproducible across
// ports.
func CubicHermite(y0, y1, y2, y3 Frame, x float32) Frame {
	return Frame{
		Left:  cubic1(y0.Left, y1.Left, y2.Left, y3.Left, x),
		Right: cubic1(y0.Right, y1.Right, y2.Right, y3.Right, x),
	}
}

func cubic1(y0, y1, y2, y3, x float32) float32 {
	c0 := y1
	c1 := (y2 - y0) * 0.5
	c2 := y0 - y1*2.5 + y2*2.0 - y3*0.5
	c3 := (y3-y0)*0.5 + (y1-y2)*1.5
	return ((c3*x+c2)*x+c1)*x + c0
}
