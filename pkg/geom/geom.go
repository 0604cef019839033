// Package geom provides the elementary 2D geometry used to place boxes and
// route connector arrows: points, axis-aligned rectangles, rotation about a
// point, and named anchor resolution.
//
// All coordinates are in user units (data coordinates of the chart, not
// pixels). Angles are in degrees, counter-clockwise, matching the rotation
// parameter accepted by box placement.
package geom

import "math"

// Point is a 2D point in data coordinates.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// RotateAround returns p rotated by angleDeg degrees counter-clockwise
// about the center c.
func (p Point) RotateAround(c Point, angleDeg float64) Point {
	if angleDeg == 0 {
		return p
	}
	rad := angleDeg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	dx, dy := p.X-c.X, p.Y-c.Y
	return Point{
		X: c.X + dx*cos - dy*sin,
		Y: c.Y + dx*sin + dy*cos,
	}
}

// Rect is an axis-aligned rectangle. It describes a box's extent in the
// box's local (pre-rotation) frame.
type Rect struct {
	Left, Right float64
	Bottom, Top float64
}

// RectAround returns the rectangle of the given width and height centered
// on c. Zero or negative sizes are allowed and produce degenerate rects.
func RectAround(c Point, width, height float64) Rect {
	return Rect{
		Left:   c.X - width/2,
		Right:  c.X + width/2,
		Bottom: c.Y - height/2,
		Top:    c.Y + height/2,
	}
}

// Width returns the horizontal span of the rect.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical span of the rect.
func (r Rect) Height() float64 { return r.Top - r.Bottom }

// Center returns the center point of the rect.
func (r Rect) Center() Point {
	return Point{(r.Left + r.Right) / 2, (r.Bottom + r.Top) / 2}
}

// Contains reports whether p lies inside or on the boundary of r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Bottom && p.Y <= r.Top
}

// Union returns the minimal rect containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Left:   math.Min(r.Left, o.Left),
		Right:  math.Max(r.Right, o.Right),
		Bottom: math.Min(r.Bottom, o.Bottom),
		Top:    math.Max(r.Top, o.Top),
	}
}

// Corners returns the four corners of r rotated by angleDeg about its
// center, in bottom-left, bottom-right, top-right, top-left order.
func (r Rect) Corners(angleDeg float64) [4]Point {
	c := r.Center()
	return [4]Point{
		Point{r.Left, r.Bottom}.RotateAround(c, angleDeg),
		Point{r.Right, r.Bottom}.RotateAround(c, angleDeg),
		Point{r.Right, r.Top}.RotateAround(c, angleDeg),
		Point{r.Left, r.Top}.RotateAround(c, angleDeg),
	}
}
