// Package tree assembles logic tree diagrams from labeled boxes and
// connector arrows.
//
// A Tree is an explicit chart context: it owns the coordinate limits, the
// box registry and the draw list, and is threaded through every call.
// Nothing in this package touches process-wide state.
//
// Typical use:
//
//	lt := tree.New(tree.WithTitle("My Logic Tree"))
//	start, _ := lt.AddBox("Start", "Start here", 20, 80)
//	decide, _ := lt.AddBox("Decision", "Decide", 20, 50)
//	lt.AddConnection(start, decide)
//	lt.SavePNG("tree.png")
package tree

import (
	"os"

	"github.com/google/uuid"

	"github.com/matzehuels/logictree/pkg/errors"
	"github.com/matzehuels/logictree/pkg/fonts"
	"github.com/matzehuels/logictree/pkg/geom"
	"github.com/matzehuels/logictree/pkg/render"
	"github.com/matzehuels/logictree/pkg/render/raster"
)

// Figure defaults, mirroring the conventional 0..100 data space on a
// square canvas.
const (
	defaultWidth  = 900.0
	defaultHeight = 900.0
)

// Tree is a chart context holding boxes, connectors and figure styling.
type Tree struct {
	width      float64
	height     float64
	limits     geom.Rect
	background string
	title      string
	font       FontStyle
	titleFont  FontStyle

	boxes     map[string]*Box
	drawables []Drawable
	edges     []Edge
}

// Edge records a logical connection between two named boxes, independent
// of the drawn arrow geometry. Branch labels from forked connections are
// carried along.
type Edge struct {
	From  string
	To    string
	Label string
}

// Option configures a Tree.
type Option func(*Tree)

// WithSize sets the figure size in pixels.
func WithSize(width, height float64) Option {
	return func(t *Tree) { t.width, t.height = width, height }
}

// WithLimits sets the data coordinate limits of the chart.
func WithLimits(xmin, xmax, ymin, ymax float64) Option {
	return func(t *Tree) {
		t.limits = geom.Rect{Left: xmin, Right: xmax, Bottom: ymin, Top: ymax}
	}
}

// WithBackground sets the figure background color.
func WithBackground(color string) Option {
	return func(t *Tree) { t.background = color }
}

// WithTitle sets the figure title. MakeTitle places it.
func WithTitle(title string) Option {
	return func(t *Tree) { t.title = title }
}

// WithFont sets the default font for box labels.
func WithFont(f FontStyle) Option {
	return func(t *Tree) { t.font = f }
}

// WithTitleFont sets the font used for the figure title.
func WithTitleFont(f FontStyle) Option {
	return func(t *Tree) { t.titleFont = f }
}

// New creates an empty chart context. Defaults: 900x900 px figure, data
// limits 0..100 on both axes, black background, white serif text.
func New(opts ...Option) *Tree {
	t := &Tree{
		width:      defaultWidth,
		height:     defaultHeight,
		limits:     geom.Rect{Left: 0, Right: 100, Bottom: 0, Top: 100},
		background: "black",
		font:       FontStyle{Family: fonts.DefaultFamily, Size: 15, Color: "white"},
		titleFont:  FontStyle{Family: fonts.TitleFamily, Size: 34, Color: "white"},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Box returns the named box, if registered.
func (t *Tree) Box(name string) (*Box, bool) {
	b, ok := t.boxes[name]
	return b, ok
}

// Boxes returns the number of registered boxes.
func (t *Tree) Boxes() int { return len(t.boxes) }

// BoxList returns the boxes in insertion order.
func (t *Tree) BoxList() []*Box {
	var out []*Box
	for _, d := range t.drawables {
		if b, ok := d.(*Box); ok {
			out = append(out, b)
		}
	}
	return out
}

// Edges returns the logical box-to-box connections in insertion order.
func (t *Tree) Edges() []Edge {
	return t.edges
}

// BoxOption configures a box added with AddBox.
type BoxOption func(*boxConfig)

type boxConfig struct {
	face      string
	edge      string
	lineWidth float64
	corner    float64
	pad       float64
	angle     float64
	font      *FontStyle
	textColor string
	fontSize  float64
	hAlign    render.HAlign
	vAlign    render.VAlign
	width     float64
	height    float64
	tex       bool
	underline bool
}

// BoxFace sets the box fill color.
func BoxFace(color string) BoxOption { return func(c *boxConfig) { c.face = color } }

// BoxEdge sets the box border color.
func BoxEdge(color string) BoxOption { return func(c *boxConfig) { c.edge = color } }

// BoxLineWidth sets the border stroke width.
func BoxLineWidth(w float64) BoxOption { return func(c *boxConfig) { c.lineWidth = w } }

// BoxCorner sets the corner rounding radius in data units.
func BoxCorner(r float64) BoxOption { return func(c *boxConfig) { c.corner = r } }

// BoxPad sets the label padding as a fraction of the font size.
func BoxPad(p float64) BoxOption { return func(c *boxConfig) { c.pad = p } }

// BoxAngle rotates the box by deg degrees about its center.
func BoxAngle(deg float64) BoxOption { return func(c *boxConfig) { c.angle = deg } }

// BoxFont overrides the tree's default label font.
func BoxFont(f FontStyle) BoxOption { return func(c *boxConfig) { c.font = &f } }

// BoxTextColor overrides only the label color.
func BoxTextColor(color string) BoxOption { return func(c *boxConfig) { c.textColor = color } }

// BoxFontSize overrides only the label point size.
func BoxFontSize(size float64) BoxOption { return func(c *boxConfig) { c.fontSize = size } }

// BoxAlign anchors the given position on the box: h names which vertical
// edge the x coordinate refers to, v which horizontal edge the y
// coordinate refers to.
func BoxAlign(h render.HAlign, v render.VAlign) BoxOption {
	return func(c *boxConfig) { c.hAlign, c.vAlign = h, v }
}

// BoxSize sets an explicit width and height in data units, skipping the
// label-based size estimate. A zero size is allowed and produces a
// degenerate box whose anchors coincide.
func BoxSize(w, h float64) BoxOption {
	return func(c *boxConfig) { c.width, c.height = w, h; c.pad = -1 }
}

// BoxTeX typesets the label with the external TeX toolchain.
func BoxTeX() BoxOption { return func(c *boxConfig) { c.tex = true } }

// BoxUnderline underlines a TeX label.
func BoxUnderline() BoxOption { return func(c *boxConfig) { c.underline = true } }

// AddBox places a labeled box at (x, y) and registers it under name.
// An empty name gets a generated one. The position refers to the box
// center unless BoxAlign says otherwise. The box size is estimated from
// the label unless BoxSize is given.
//
// Duplicate names are rejected.
func (t *Tree) AddBox(name, label string, x, y float64, opts ...BoxOption) (*Box, error) {
	cfg := boxConfig{
		face:      "black",
		edge:      "white",
		lineWidth: 1.6,
		pad:       defaultPad,
		hAlign:    render.HCenter,
		vAlign:    render.VCenter,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if name == "" {
		name = uuid.NewString()
	}
	if t.boxes == nil {
		t.boxes = make(map[string]*Box)
	}
	if _, exists := t.boxes[name]; exists {
		return nil, errors.New(errors.ErrCodeDuplicateBox, "box name %q already exists", name)
	}

	font := t.font
	if cfg.font != nil {
		font = *cfg.font
	}
	if cfg.textColor != "" {
		font.Color = cfg.textColor
	}
	if cfg.fontSize > 0 {
		font.Size = cfg.fontSize
	}

	text := label
	if cfg.tex && cfg.underline {
		text = render.Underline(text)
	}

	w, h := cfg.width, cfg.height
	if cfg.pad >= 0 {
		wPts, hPts := estimateSize(label, font, cfg.pad)
		// Points to data units through the figure scale.
		w = wPts * t.limits.Width() / t.width
		h = hPts * t.limits.Height() / t.height
	}

	b := &Box{
		Name:      name,
		Label:     text,
		FaceColor: cfg.face,
		EdgeColor: cfg.edge,
		LineWidth: cfg.lineWidth,
		Corner:    cfg.corner,
		AngleDeg:  cfg.angle,
		Font:      font,
		TeX:       cfg.tex,
		rect:      layoutRect(x, y, w, h, cfg.hAlign, cfg.vAlign),
		laidOut:   true,
	}

	t.boxes[name] = b
	t.drawables = append(t.drawables, b)
	return b, nil
}

// layoutRect places a w x h rect so that (x, y) lands on the requested
// edges.
func layoutRect(x, y, w, h float64, ha render.HAlign, va render.VAlign) geom.Rect {
	switch ha {
	case render.HLeft:
		x += w / 2
	case render.HRight:
		x -= w / 2
	}
	switch va {
	case render.VBottom:
		y += h / 2
	case render.VTop:
		y -= h / 2
	}
	return geom.RectAround(geom.Point{X: x, Y: y}, w, h)
}

// SetTitle replaces the figure title.
func (t *Tree) SetTitle(title string) { t.title = title }

// Title returns the figure title.
func (t *Tree) Title() string { return t.title }

// MakeTitle places the title at the top of the chart. With considerBoxes
// the horizontal placement spans the box extents instead of the axis
// limits.
func (t *Tree) MakeTitle(pos render.HAlign, considerBoxes bool) error {
	if t.title == "" {
		return errors.New(errors.ErrCodeNoTitle, "tree has no title; set one first")
	}

	left, right := t.limits.Left, t.limits.Right
	if considerBoxes && len(t.boxes) > 0 {
		first := true
		for _, b := range t.boxes {
			r := b.Rect()
			if first || r.Left < left {
				left = r.Left
			}
			if first || r.Right > right {
				right = r.Right
			}
			first = false
		}
	}

	var x float64
	switch pos {
	case render.HLeft:
		x = left
	case render.HCenter:
		x = (left + right) / 2
	case render.HRight:
		x = right
	default:
		return errors.New(errors.ErrCodeInvalidStyle, "title position must be left, center or right, got %q", string(pos))
	}

	t.drawables = append(t.drawables, &label{
		at:     geom.Point{X: x, Y: t.limits.Top},
		text:   t.title,
		font:   t.titleFont,
		hAlign: pos,
		vAlign: render.VTop,
	})
	return nil
}

// Render draws every box, connector and label onto the canvas in
// insertion order.
func (t *Tree) Render(c render.Canvas) error {
	for _, d := range t.drawables {
		if err := d.Draw(c); err != nil {
			return err
		}
	}
	return nil
}

// SVG renders the chart as an SVG document.
func (t *Tree) SVG() ([]byte, error) {
	c := render.NewSVG(t.width, t.height, t.limits, render.WithBackground(t.background))
	if err := t.Render(c); err != nil {
		return nil, err
	}
	return c.Bytes(), nil
}

// PNG rasterizes the chart with the gg backend at the given scale factor
// (1.0 renders at the figure size, 2.0 at double resolution).
func (t *Tree) PNG(scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	c, err := raster.New(int(t.width*scale), int(t.height*scale), t.limits, t.background)
	if err != nil {
		return nil, err
	}
	if err := t.Render(c); err != nil {
		return nil, err
	}
	return c.EncodePNG()
}

// PDF renders the chart as a PDF via SVG conversion. Requires librsvg.
func (t *Tree) PDF() ([]byte, error) {
	svg, err := t.SVG()
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// SaveSVG writes the SVG document to path.
func (t *Tree) SaveSVG(path string) error {
	data, err := t.SVG()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// SavePNG writes a 2x resolution PNG to path.
func (t *Tree) SavePNG(path string) error {
	data, err := t.PNG(2)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// SavePDF writes a PDF to path. Requires librsvg.
func (t *Tree) SavePDF(path string) error {
	data, err := t.PDF()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
