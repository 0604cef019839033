package geom

import "github.com/matzehuels/logictree/pkg/errors"

// Bezier samples the Bezier curve defined by the control points at n
// parameter values evenly spaced over [0, 1]. The first and last control
// points are the curve endpoints; the curve degree is len(ctrl)-1.
//
// At least two control points are required. n is clamped to a minimum of
// two so the endpoints always survive.
func Bezier(ctrl []Point, n int) ([]Point, error) {
	if len(ctrl) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidPath,
			"bezier curve needs at least two control points, got %d", len(ctrl))
	}
	if n < 2 {
		n = 2
	}

	out := make([]Point, n)
	scratch := make([]Point, len(ctrl))
	for i := range out {
		t := float64(i) / float64(n-1)
		out[i] = deCasteljau(ctrl, scratch, t)
	}
	return out, nil
}

// deCasteljau evaluates the curve at t by repeated linear interpolation of
// the control polygon.
func deCasteljau(ctrl, scratch []Point, t float64) Point {
	copy(scratch, ctrl)
	for k := len(scratch) - 1; k > 0; k-- {
		for i := 0; i < k; i++ {
			scratch[i] = Point{
				X: scratch[i].X + (scratch[i+1].X-scratch[i].X)*t,
				Y: scratch[i].Y + (scratch[i+1].Y-scratch[i].Y)*t,
			}
		}
	}
	return scratch[0]
}
