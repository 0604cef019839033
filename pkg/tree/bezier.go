package tree

import (
	"math"

	"github.com/matzehuels/logictree/pkg/errors"
	"github.com/matzehuels/logictree/pkg/geom"
)

// CurveStyle selects how the control points of a curved connection are
// derived from its endpoints.
type CurveStyle string

const (
	// CurveSmooth bows a quadratic curve sideways off the straight line
	// between the endpoints.
	CurveSmooth CurveStyle = "smooth"
	// CurveElbow rounds a single horizontal-then-vertical corner.
	CurveElbow CurveStyle = "elbow"
	// CurveS bends through two opposing control points, entering and
	// leaving on opposite sides of the straight line.
	CurveS CurveStyle = "s-curve"
)

// Curve shape constants: bow distances as fractions of the endpoint
// separation, and the default polyline resolution.
const (
	smoothBow           = 0.2
	sBow                = 0.3
	defaultCurveSamples = 120
)

// BezierOption configures a connection added with AddBezierConnection or
// AddBezierConnectionTo.
type BezierOption func(*bezierConfig)

type bezierConfig struct {
	conn    connConfig
	style   CurveStyle
	control []geom.Point
	samples int
}

// BezierStyle selects the curve shape. The default is CurveSmooth.
func BezierStyle(s CurveStyle) BezierOption { return func(c *bezierConfig) { c.style = s } }

// BezierControl pins the interior control points explicitly, overriding
// the style-derived ones.
func BezierControl(pts ...geom.Point) BezierOption {
	return func(c *bezierConfig) { c.control = pts }
}

// BezierSamples sets how many points the curve is flattened into. Raise it
// if the arrowhead looks distorted on a tight curve.
func BezierSamples(n int) BezierOption { return func(c *bezierConfig) { c.samples = n } }

// BezierNoHead draws a plain curved shaft without an arrowhead.
func BezierNoHead() BezierOption { return func(c *bezierConfig) { c.conn.noHead = true } }

// BezierWidth sets the shaft width in data units.
func BezierWidth(w float64) BezierOption { return func(c *bezierConfig) { c.conn.width = w } }

// BezierNoFill strokes the arrow outline without filling it.
func BezierNoFill() BezierOption { return func(c *bezierConfig) { c.conn.noFill = true } }

// BezierFace sets the arrow fill color. The shorthands "fc" and "ec"
// resolve to the destination box's face or edge color.
func BezierFace(color string) BezierOption { return func(c *bezierConfig) { c.conn.face = color } }

// BezierEdge sets the arrow outline color. The shorthands "fc" and "ec"
// resolve like BezierFace.
func BezierEdge(color string) BezierOption { return func(c *bezierConfig) { c.conn.edge = color } }

// BezierLineWidth sets the outline stroke width.
func BezierLineWidth(w float64) BezierOption {
	return func(c *bezierConfig) { c.conn.lineWidth = w }
}

// BezierDashed strokes the outline with a dash pattern.
func BezierDashed() BezierOption { return func(c *bezierConfig) { c.conn.dashed = true } }

// BezierAnchors pins the exit and entry anchors instead of picking them
// from the heading between the endpoints.
func BezierAnchors(src, dst geom.Anchor) BezierOption {
	return func(c *bezierConfig) { c.conn.srcAnchor, c.conn.dstAnchor = src, dst }
}

// BezierButtOffset nudges the curve start away from the source box border.
func BezierButtOffset(d float64) BezierOption {
	return func(c *bezierConfig) { c.conn.buttOffset = d }
}

// BezierTipOffset stops the curve end short of the destination.
func BezierTipOffset(d float64) BezierOption {
	return func(c *bezierConfig) { c.conn.tipOffset = d }
}

func newBezierConfig(opts []BezierOption) bezierConfig {
	cfg := bezierConfig{
		conn:    newConnConfig(nil),
		style:   CurveSmooth,
		samples: defaultCurveSamples,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// controlPoints builds the full control polygon for the curve from start
// to end. Explicit control points win over the style.
func controlPoints(start, end geom.Point, cfg bezierConfig) ([]geom.Point, error) {
	if len(cfg.control) > 0 {
		poly := make([]geom.Point, 0, len(cfg.control)+2)
		poly = append(poly, start)
		poly = append(poly, cfg.control...)
		return append(poly, end), nil
	}

	d := end.Sub(start)
	mag := math.Hypot(d.X, d.Y)

	switch cfg.style {
	case CurveSmooth:
		// Push the midpoint off the chord along its left normal.
		ctrl := geom.Point{
			X: (start.X+end.X)/2 - d.Y*smoothBow,
			Y: (start.Y+end.Y)/2 + d.X*smoothBow,
		}
		return []geom.Point{start, ctrl, end}, nil
	case CurveElbow:
		corner := geom.Point{X: end.X, Y: start.Y}
		return []geom.Point{start, corner, end}, nil
	case CurveS:
		bow := sBow * mag
		c1 := geom.Point{X: (2*start.X + end.X) / 3, Y: (2*start.Y+end.Y)/3 - bow}
		c2 := geom.Point{X: (start.X + 2*end.X) / 3, Y: (start.Y+2*end.Y)/3 + bow}
		return []geom.Point{start, c1, c2, end}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStyle,
		"unknown curve style %q; want smooth, elbow or s-curve", string(cfg.style))
}

// AddBezierConnection draws a curved arrow from box a to box b. The curve
// shape comes from BezierStyle or explicit BezierControl points; anchors,
// offsets and colors behave like AddConnection.
func (t *Tree) AddBezierConnection(a, b *Box, opts ...BezierOption) (*Connector, error) {
	cfg := newBezierConfig(opts)

	ca, cb := a.Center(), b.Center()
	if ca == cb {
		return nil, errors.New(errors.ErrCodeInvalidBox,
			"boxes %q and %q have coincident centers; cannot pick a direction", a.Name, b.Name)
	}
	theta := geom.Heading(ca, cb)

	srcAnchor, dstAnchor := cfg.conn.srcAnchor, cfg.conn.dstAnchor
	if srcAnchor == "" {
		srcAnchor = geom.AutoAnchor(theta, true)
	}
	if dstAnchor == "" {
		dstAnchor = geom.AutoAnchor(theta, false)
	}

	start, err := a.AnchorOffset(srcAnchor, cfg.conn.buttOffset)
	if err != nil {
		return nil, err
	}
	end, err := b.AnchorOffset(dstAnchor, cfg.conn.tipOffset)
	if err != nil {
		return nil, err
	}

	path, err := samplePath(start, end, cfg)
	if err != nil {
		return nil, err
	}
	cn, err := t.addConnector(path, b, cfg.conn)
	if err != nil {
		return nil, err
	}
	t.edges = append(t.edges, Edge{From: a.Name, To: b.Name})
	return cn, nil
}

// AddBezierConnectionTo draws a curved arrow from box a to a free point.
// The tip offset backs the end away from the point along the entry side,
// and colors default to white when not given explicitly.
func (t *Tree) AddBezierConnectionTo(a *Box, p geom.Point, opts ...BezierOption) (*Connector, error) {
	cfg := newBezierConfig(opts)

	ca := a.Center()
	if ca == p {
		return nil, errors.New(errors.ErrCodeInvalidBox,
			"target point coincides with the center of box %q", a.Name)
	}
	theta := geom.Heading(ca, p)

	srcAnchor, dstAnchor := cfg.conn.srcAnchor, cfg.conn.dstAnchor
	if srcAnchor == "" {
		srcAnchor = geom.AutoAnchor(theta, true)
	}
	if dstAnchor == "" {
		dstAnchor = geom.AutoAnchor(theta, false)
	}

	start, err := a.AnchorOffset(srcAnchor, cfg.conn.buttOffset)
	if err != nil {
		return nil, err
	}
	end := offsetOutward(p, dstAnchor, cfg.conn.tipOffset)

	path, err := samplePath(start, end, cfg)
	if err != nil {
		return nil, err
	}
	return t.addConnector(path, nil, cfg.conn)
}

// samplePath flattens the styled curve into a polyline ready for the
// arrow outline builder.
func samplePath(start, end geom.Point, cfg bezierConfig) ([]geom.Point, error) {
	ctrl, err := controlPoints(start, end, cfg)
	if err != nil {
		return nil, err
	}
	pts, err := geom.Bezier(ctrl, cfg.samples)
	if err != nil {
		return nil, err
	}
	return simplify(pts), nil
}

// offsetOutward nudges p along the outward direction of the given entry
// side, mirroring the border offsets boxes apply to their anchors.
func offsetOutward(p geom.Point, a geom.Anchor, d float64) geom.Point {
	switch a {
	case geom.AnchorLeft:
		return geom.Point{X: p.X - d, Y: p.Y}
	case geom.AnchorRight:
		return geom.Point{X: p.X + d, Y: p.Y}
	case geom.AnchorTop:
		return geom.Point{X: p.X, Y: p.Y + d}
	case geom.AnchorBottom:
		return geom.Point{X: p.X, Y: p.Y - d}
	}
	return p
}
