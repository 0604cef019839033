// Package arrow builds filled arrow polygons from multi-segment paths.
//
// An arrow is defined by an ordered path of joint points (the first point
// is the butt, the last the tip) and a shaft width. The package computes
// the closed outline polygon of the arrow body, with miter joins at path
// joints and an optional triangular arrowhead at the tip. The outline
// vertices are exposed so callers can fill and stroke them with any
// rendering backend.
package arrow

import (
	"math"

	"github.com/matzehuels/logictree/pkg/errors"
	"github.com/matzehuels/logictree/pkg/geom"
)

// Arrowhead proportions, relative to the shaft width. The head base flares
// headFlareRatio*width beyond each side of the shaft, and the tip sits
// tan(headAngle)*(flare + width/2) ahead of the head base.
const (
	headFlareRatio = 0.55
	headAngleDeg   = 50.0
)

// Option configures arrow construction.
type Option func(*Arrow)

// WithHead adds a triangular arrowhead at the last path point.
func WithHead() Option {
	return func(a *Arrow) { a.Head = true }
}

// Arrow is an arrow polygon with explicit vertex control.
type Arrow struct {
	Path  []geom.Point // joint points from butt to tip
	Width float64      // shaft width in data units
	Head  bool         // whether a head is drawn at the tip

	// Vertices is the closed outline polygon: one side of the shaft from
	// butt to tip, the head (if any), then the other side back to the
	// butt. The first vertex is not repeated at the end.
	Vertices []geom.Point
}

// New constructs an arrow along path with the given shaft width.
//
// The path must contain at least two points, consecutive points must not
// coincide, and the path must not fold back on itself (no 180 degree
// turns, which have no finite miter).
func New(path []geom.Point, width float64, opts ...Option) (*Arrow, error) {
	if len(path) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidPath, "arrow path needs at least two points, got %d", len(path))
	}
	if width <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidPath, "arrow width must be positive, got %g", width)
	}
	for i := 1; i < len(path); i++ {
		if path[i] == path[i-1] {
			return nil, errors.New(errors.ErrCodeInvalidPath,
				"arrow path has coincident points at index %d: (%g, %g)", i, path[i].X, path[i].Y)
		}
	}

	a := &Arrow{Path: path, Width: width}
	for _, opt := range opts {
		opt(a)
	}

	verts, err := a.outline()
	if err != nil {
		return nil, err
	}
	a.Vertices = verts
	return a, nil
}

// SegmentLengths returns the Euclidean length of each path segment.
func (a *Arrow) SegmentLengths() []float64 {
	lengths := make([]float64, len(a.Path)-1)
	for i := range lengths {
		lengths[i] = a.Path[i+1].Dist(a.Path[i])
	}
	return lengths
}

// SegmentAngles returns the angle each segment makes with the positive
// x-axis, in radians within [0, 2*pi).
func (a *Arrow) SegmentAngles() []float64 {
	angles := make([]float64, len(a.Path)-1)
	for i := range angles {
		d := a.Path[i+1].Sub(a.Path[i])
		theta := math.Atan2(d.Y, d.X)
		if theta < 0 {
			theta += 2 * math.Pi
		}
		angles[i] = theta
	}
	return angles
}

// Bounds returns the axis-aligned bounding box of the outline.
func (a *Arrow) Bounds() geom.Rect {
	r := geom.Rect{
		Left: a.Vertices[0].X, Right: a.Vertices[0].X,
		Bottom: a.Vertices[0].Y, Top: a.Vertices[0].Y,
	}
	for _, v := range a.Vertices[1:] {
		r.Left = math.Min(r.Left, v.X)
		r.Right = math.Max(r.Right, v.X)
		r.Bottom = math.Min(r.Bottom, v.Y)
		r.Top = math.Max(r.Top, v.Y)
	}
	return r
}

// outline computes the closed polygon surrounding the path.
//
// One side of the shaft is traced from butt to tip by offsetting each
// segment by half the width along its left normal and intersecting
// neighboring offsets at the joints (miter join). The head, when present,
// shortens the final segment and inserts the flare-tip-flare triangle.
// The other side is traced back the same way.
func (a *Arrow) outline() ([]geom.Point, error) {
	dirs := make([]geom.Point, len(a.Path)-1)
	for i := range dirs {
		d := a.Path[i+1].Sub(a.Path[i])
		n := math.Hypot(d.X, d.Y)
		dirs[i] = geom.Point{X: d.X / n, Y: d.Y / n}
	}
	for i := 1; i < len(dirs); i++ {
		if dot(dirs[i-1], dirs[i]) < -1+1e-12 {
			return nil, errors.New(errors.ErrCodeInvalidPath,
				"arrow path folds back on itself at point %d", i)
		}
	}

	half := a.Width / 2
	tip := a.Path[len(a.Path)-1]
	last := dirs[len(dirs)-1]

	// With a head the shaft stops short of the tip to leave room for the
	// triangle.
	base := tip
	if a.Head {
		flare := headFlareRatio * a.Width
		setback := math.Tan(headAngleDeg*math.Pi/180) * (flare + half)
		base = geom.Point{X: tip.X - last.X*setback, Y: tip.Y - last.Y*setback}
	}

	var verts []geom.Point

	// Left side, butt to tip.
	verts = append(verts, offset(a.Path[0], leftNormal(dirs[0]), half))
	for i := 1; i < len(a.Path)-1; i++ {
		verts = append(verts, miter(a.Path[i], dirs[i-1], dirs[i], half))
	}
	verts = append(verts, offset(base, leftNormal(last), half))

	if a.Head {
		flare := headFlareRatio * a.Width
		n := leftNormal(last)
		verts = append(verts,
			offset(base, n, half+flare),
			tip,
			offset(base, n, -(half+flare)),
		)
	}

	// Right side, tip back to butt.
	verts = append(verts, offset(base, leftNormal(last), -half))
	for i := len(a.Path) - 2; i >= 1; i-- {
		verts = append(verts, miter(a.Path[i], dirs[i], dirs[i-1], -half))
	}
	verts = append(verts, offset(a.Path[0], leftNormal(dirs[0]), -half))

	return verts, nil
}

func dot(a, b geom.Point) float64 { return a.X*b.X + a.Y*b.Y }

// leftNormal returns the unit normal to the left of direction d.
func leftNormal(d geom.Point) geom.Point { return geom.Point{X: -d.Y, Y: d.X} }

func offset(p, n geom.Point, dist float64) geom.Point {
	return geom.Point{X: p.X + n.X*dist, Y: p.Y + n.Y*dist}
}

// miter returns the join vertex where the offsets of two consecutive
// segments meet, at signed distance dist along the left normal (negative
// for the right side).
func miter(joint, dIn, dOut geom.Point, dist float64) geom.Point {
	nIn, nOut := leftNormal(dIn), leftNormal(dOut)
	bisect := geom.Point{X: nIn.X + nOut.X, Y: nIn.Y + nOut.Y}
	mag := math.Hypot(bisect.X, bisect.Y)
	if mag < 1e-12 {
		// Collinear segments: plain offset.
		return offset(joint, nIn, dist)
	}
	bisect = geom.Point{X: bisect.X / mag, Y: bisect.Y / mag}
	scale := dist / dot(bisect, nIn)
	return offset(joint, bisect, scale)
}
