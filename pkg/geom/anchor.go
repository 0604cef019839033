package geom

import (
	"math"

	"github.com/matzehuels/logictree/pkg/errors"
)

// Anchor names a reference point on a box: its center, an edge midpoint,
// or a corner. Anchors are identified in the box's local (pre-rotation)
// frame; resolving an anchor applies the box rotation afterwards.
type Anchor string

// The nine recognized anchors. Anything else is rejected by ParseAnchor
// and Resolve with ErrCodeInvalidAnchor.
const (
	AnchorCenter      Anchor = "center"
	AnchorTop         Anchor = "top"
	AnchorBottom      Anchor = "bottom"
	AnchorLeft        Anchor = "left"
	AnchorRight       Anchor = "right"
	AnchorTopLeft     Anchor = "topLeft"
	AnchorTopRight    Anchor = "topRight"
	AnchorBottomLeft  Anchor = "bottomLeft"
	AnchorBottomRight Anchor = "bottomRight"
)

// Anchors lists all recognized anchors in a stable order.
var Anchors = []Anchor{
	AnchorCenter,
	AnchorTop, AnchorBottom, AnchorLeft, AnchorRight,
	AnchorTopLeft, AnchorTopRight, AnchorBottomLeft, AnchorBottomRight,
}

// ParseAnchor validates s against the recognized anchor set.
func ParseAnchor(s string) (Anchor, error) {
	a := Anchor(s)
	if !a.Valid() {
		return "", errors.New(errors.ErrCodeInvalidAnchor, "invalid anchor name: %q", s)
	}
	return a, nil
}

// Valid reports whether a is one of the nine recognized anchors.
func (a Anchor) Valid() bool {
	switch a {
	case AnchorCenter, AnchorTop, AnchorBottom, AnchorLeft, AnchorRight,
		AnchorTopLeft, AnchorTopRight, AnchorBottomLeft, AnchorBottomRight:
		return true
	}
	return false
}

// local returns the anchor point in r's local frame, nudged outward by
// offset along the anchor's outward direction. The center anchor ignores
// the offset.
func (a Anchor) local(r Rect, offset float64) (Point, error) {
	c := r.Center()
	switch a {
	case AnchorCenter:
		return c, nil
	case AnchorTop:
		return Point{c.X, r.Top + offset}, nil
	case AnchorBottom:
		return Point{c.X, r.Bottom - offset}, nil
	case AnchorLeft:
		return Point{r.Left - offset, c.Y}, nil
	case AnchorRight:
		return Point{r.Right + offset, c.Y}, nil
	case AnchorTopLeft:
		return Point{r.Left - offset, r.Top + offset}, nil
	case AnchorTopRight:
		return Point{r.Right + offset, r.Top + offset}, nil
	case AnchorBottomLeft:
		return Point{r.Left - offset, r.Bottom - offset}, nil
	case AnchorBottomRight:
		return Point{r.Right + offset, r.Bottom - offset}, nil
	}
	return Point{}, errors.New(errors.ErrCodeInvalidAnchor, "invalid anchor name: %q", string(a))
}

// Resolve returns the coordinate of anchor a on the rectangle r after
// applying a rotation of angleDeg degrees about the rect center.
//
// Degenerate (zero-size) rects are allowed: every anchor coincides with
// the center.
func Resolve(r Rect, a Anchor, angleDeg float64) (Point, error) {
	return ResolveOffset(r, a, angleDeg, 0)
}

// ResolveOffset is Resolve with an outward nudge applied in the local
// frame before rotation. It is used to keep arrow tips and butts clear of
// box borders.
func ResolveOffset(r Rect, a Anchor, angleDeg, offset float64) (Point, error) {
	p, err := a.local(r, offset)
	if err != nil {
		return Point{}, err
	}
	return p.RotateAround(r.Center(), angleDeg), nil
}

// AutoAnchor picks the natural attachment side for a connection heading in
// the direction of thetaDeg (degrees, measured from source center to
// destination center). With source true the exit side is returned, with
// source false the entry side of the destination.
func AutoAnchor(thetaDeg float64, source bool) Anchor {
	switch {
	case thetaDeg >= -45 && thetaDeg <= 45:
		if source {
			return AnchorRight
		}
		return AnchorLeft
	case thetaDeg > 45 && thetaDeg <= 135:
		if source {
			return AnchorTop
		}
		return AnchorBottom
	case thetaDeg > 135 || thetaDeg < -135:
		if source {
			return AnchorLeft
		}
		return AnchorRight
	default:
		if source {
			return AnchorBottom
		}
		return AnchorTop
	}
}

// Heading returns the direction from a to b in degrees, in (-180, 180].
func Heading(a, b Point) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X) * 180 / math.Pi
}
