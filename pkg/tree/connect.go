package tree

import (
	"math"

	"github.com/matzehuels/logictree/pkg/arrow"
	"github.com/matzehuels/logictree/pkg/errors"
	"github.com/matzehuels/logictree/pkg/geom"
	"github.com/matzehuels/logictree/pkg/render"
)

// Connector styling defaults, in data units (width) and stroke points
// (line width).
const (
	defaultConnWidth     = 0.4
	defaultConnLineWidth = 1.2
)

// Connector is an arrow drawn between boxes or points.
type Connector struct {
	Arrow     *arrow.Arrow
	Face      string
	Edge      string
	LineWidth float64
	Dashed    bool
	Filled    bool
}

// Draw fills and strokes the arrow outline polygon.
func (cn *Connector) Draw(c render.Canvas) error {
	style := render.ShapeStyle{
		Stroke:      cn.Edge,
		StrokeWidth: cn.LineWidth,
		Dashed:      cn.Dashed,
	}
	if cn.Filled {
		style.Fill = cn.Face
	}
	return c.Polygon(cn.Arrow.Vertices, style)
}

// ConnOption configures a connection added with AddConnection,
// AddConnectionTo or AddArrowBetween.
type ConnOption func(*connConfig)

type connConfig struct {
	route      geom.Route
	split      bool
	noHead     bool
	width      float64
	noFill     bool
	face       string
	edge       string
	lineWidth  float64
	dashed     bool
	srcAnchor  geom.Anchor
	dstAnchor  geom.Anchor
	buttOffset float64
	tipOffset  float64
}

// ConnRoute selects the elbow routing between the anchors. The default is
// a straight segment.
func ConnRoute(r geom.Route) ConnOption { return func(c *connConfig) { c.route = r } }

// ConnSplit routes the connector through a horizontal run midway between
// the boxes, giving a four point squared-off path.
func ConnSplit() ConnOption { return func(c *connConfig) { c.split = true } }

// ConnNoHead draws a plain shaft without an arrowhead.
func ConnNoHead() ConnOption { return func(c *connConfig) { c.noHead = true } }

// ConnWidth sets the shaft width in data units.
func ConnWidth(w float64) ConnOption { return func(c *connConfig) { c.width = w } }

// ConnNoFill strokes the arrow outline without filling it.
func ConnNoFill() ConnOption { return func(c *connConfig) { c.noFill = true } }

// ConnFace sets the arrow fill color. The shorthands "fc" and "ec" resolve
// to the destination box's face or edge color.
func ConnFace(color string) ConnOption { return func(c *connConfig) { c.face = color } }

// ConnEdge sets the arrow outline color. The shorthands "fc" and "ec"
// resolve like ConnFace.
func ConnEdge(color string) ConnOption { return func(c *connConfig) { c.edge = color } }

// ConnLineWidth sets the outline stroke width.
func ConnLineWidth(w float64) ConnOption { return func(c *connConfig) { c.lineWidth = w } }

// ConnDashed strokes the outline with a dash pattern.
func ConnDashed() ConnOption { return func(c *connConfig) { c.dashed = true } }

// ConnAnchors pins the exit and entry anchors instead of picking them from
// the heading between the box centers.
func ConnAnchors(src, dst geom.Anchor) ConnOption {
	return func(c *connConfig) { c.srcAnchor, c.dstAnchor = src, dst }
}

// ConnButtOffset nudges the arrow butt away from the source box border.
func ConnButtOffset(d float64) ConnOption { return func(c *connConfig) { c.buttOffset = d } }

// ConnTipOffset stops the arrow tip short of the destination box border.
func ConnTipOffset(d float64) ConnOption { return func(c *connConfig) { c.tipOffset = d } }

func newConnConfig(opts []ConnOption) connConfig {
	cfg := connConfig{
		width:     defaultConnWidth,
		lineWidth: defaultConnLineWidth,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// fillColor resolves a fill spec against the destination box. Empty means
// the box face color, "ec" its edge color.
func fillColor(spec string, b *Box) string {
	switch spec {
	case "", "fc":
		if b != nil {
			return b.FaceColor
		}
		return "white"
	case "ec":
		if b != nil {
			return b.EdgeColor
		}
		return "white"
	}
	return spec
}

// edgeColor resolves an edge spec against the destination box. Empty means
// the box edge color, "fc" its face color.
func edgeColor(spec string, b *Box) string {
	switch spec {
	case "", "ec":
		if b != nil {
			return b.EdgeColor
		}
		return "white"
	case "fc":
		if b != nil {
			return b.FaceColor
		}
		return "white"
	}
	return spec
}

// simplify removes consecutive coincident points and interior points
// collinear with their neighbors. Squared-off paths between aligned boxes
// produce both.
func simplify(pts []geom.Point) []geom.Point {
	out := pts[:1]
	for _, p := range pts[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	for i := 1; i < len(out)-1; {
		a, b, c := out[i-1], out[i], out[i+1]
		cross := (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
		if cross == 0 {
			out = append(out[:i], out[i+1:]...)
		} else {
			i++
		}
	}
	return out
}

func (t *Tree) addConnector(path []geom.Point, dst *Box, cfg connConfig) (*Connector, error) {
	var arrowOpts []arrow.Option
	if !cfg.noHead {
		arrowOpts = append(arrowOpts, arrow.WithHead())
	}
	a, err := arrow.New(path, cfg.width, arrowOpts...)
	if err != nil {
		return nil, err
	}
	cn := &Connector{
		Arrow:     a,
		Face:      fillColor(cfg.face, dst),
		Edge:      edgeColor(cfg.edge, dst),
		LineWidth: cfg.lineWidth,
		Dashed:    cfg.dashed,
		Filled:    !cfg.noFill,
	}
	t.drawables = append(t.drawables, cn)
	return cn, nil
}

// AddConnection draws an arrow from box a to box b. The exit and entry
// sides are picked from the heading between the box centers unless pinned
// with ConnAnchors, and the route between them is a straight segment
// unless ConnRoute or ConnSplit says otherwise.
func (t *Tree) AddConnection(a, b *Box, opts ...ConnOption) (*Connector, error) {
	cfg := newConnConfig(opts)

	ca, cb := a.Center(), b.Center()
	if ca == cb {
		return nil, errors.New(errors.ErrCodeInvalidBox,
			"boxes %q and %q have coincident centers; cannot pick a direction", a.Name, b.Name)
	}
	theta := geom.Heading(ca, cb)

	srcAnchor, dstAnchor := cfg.srcAnchor, cfg.dstAnchor
	if srcAnchor == "" {
		srcAnchor = geom.AutoAnchor(theta, true)
	}
	if dstAnchor == "" {
		dstAnchor = geom.AutoAnchor(theta, false)
	}

	start, err := a.AnchorOffset(srcAnchor, cfg.buttOffset)
	if err != nil {
		return nil, err
	}
	end, err := b.AnchorOffset(dstAnchor, cfg.tipOffset)
	if err != nil {
		return nil, err
	}

	var path []geom.Point
	if cfg.split {
		var midY float64
		if cb.Y > ca.Y {
			midY = (a.Rect().Top + b.Rect().Bottom) / 2
		} else {
			midY = (a.Rect().Bottom + b.Rect().Top) / 2
		}
		path = simplify([]geom.Point{
			start,
			{X: start.X, Y: midY},
			{X: end.X, Y: midY},
			end,
		})
	} else {
		path, err = geom.ConnectorPath(start, end, cfg.route)
		if err != nil {
			return nil, err
		}
	}

	cn, err := t.addConnector(path, b, cfg)
	if err != nil {
		return nil, err
	}
	t.edges = append(t.edges, Edge{From: a.Name, To: b.Name})
	return cn, nil
}

// AddConnectionTo draws an arrow from box a to a free point. Colors
// default to white when not given explicitly.
func (t *Tree) AddConnectionTo(a *Box, p geom.Point, opts ...ConnOption) (*Connector, error) {
	cfg := newConnConfig(opts)

	ca := a.Center()
	if ca == p {
		return nil, errors.New(errors.ErrCodeInvalidBox,
			"target point coincides with the center of box %q", a.Name)
	}
	theta := geom.Heading(ca, p)

	srcAnchor := cfg.srcAnchor
	if srcAnchor == "" {
		srcAnchor = geom.AutoAnchor(theta, true)
	}
	start, err := a.AnchorOffset(srcAnchor, cfg.buttOffset)
	if err != nil {
		return nil, err
	}

	path, err := geom.ConnectorPath(start, p, cfg.route)
	if err != nil {
		return nil, err
	}
	if cfg.tipOffset > 0 {
		path = trimTip(path, cfg.tipOffset)
	}

	return t.addConnector(path, nil, cfg)
}

// trimTip pulls the last path point back along its segment by d, dropping
// the segment entirely if it is shorter than d.
func trimTip(path []geom.Point, d float64) []geom.Point {
	n := len(path)
	last, prev := path[n-1], path[n-2]
	seg := last.Sub(prev)
	length := math.Hypot(seg.X, seg.Y)
	if length <= d {
		if n > 2 {
			return path[:n-1]
		}
		return path
	}
	scale := (length - d) / length
	trimmed := append([]geom.Point{}, path...)
	trimmed[n-1] = geom.Point{X: prev.X + seg.X*scale, Y: prev.Y + seg.Y*scale}
	return trimmed
}

// AddArrowBetween draws an arrow between two free points, honoring butt
// and tip offsets along the heading between them.
func (t *Tree) AddArrowBetween(start, end geom.Point, opts ...ConnOption) (*Connector, error) {
	cfg := newConnConfig(opts)

	if start == end {
		return nil, errors.New(errors.ErrCodeInvalidPath,
			"arrow endpoints coincide at (%g, %g)", start.X, start.Y)
	}

	d := end.Sub(start)
	length := math.Hypot(d.X, d.Y)
	unit := geom.Point{X: d.X / length, Y: d.Y / length}
	start = geom.Point{X: start.X + unit.X*cfg.buttOffset, Y: start.Y + unit.Y*cfg.buttOffset}
	end = geom.Point{X: end.X - unit.X*cfg.tipOffset, Y: end.Y - unit.Y*cfg.tipOffset}

	path, err := geom.ConnectorPath(start, end, cfg.route)
	if err != nil {
		return nil, err
	}
	return t.addConnector(path, nil, cfg)
}

// AddArrow places a prebuilt arrow on the chart with explicit styling.
func (t *Tree) AddArrow(a *arrow.Arrow, opts ...ConnOption) *Connector {
	cfg := newConnConfig(opts)
	cn := &Connector{
		Arrow:     a,
		Face:      fillColor(cfg.face, nil),
		Edge:      edgeColor(cfg.edge, nil),
		LineWidth: cfg.lineWidth,
		Dashed:    cfg.dashed,
		Filled:    !cfg.noFill,
	}
	t.drawables = append(t.drawables, cn)
	return cn
}
