package tree

import (
	"math"

	"github.com/matzehuels/logictree/pkg/errors"
	"github.com/matzehuels/logictree/pkg/geom"
	"github.com/matzehuels/logictree/pkg/render"
)

// BiOption configures a two-way split added with AddConnectionBiSplit.
type BiOption func(*biConfig)

type biConfig struct {
	width      float64
	face       string
	edge       string
	lineWidth  float64
	dashed     bool
	buttOffset float64
	tipOffset  float64
	labelLeft  string
	labelRight string
	labelFont  *FontStyle
}

// BiWidth sets the shaft width of the stem and both branches.
func BiWidth(w float64) BiOption { return func(c *biConfig) { c.width = w } }

// BiFace sets the fill color, with "fc"/"ec" resolving per target box.
func BiFace(color string) BiOption { return func(c *biConfig) { c.face = color } }

// BiEdge sets the outline color, with "fc"/"ec" resolving per target box.
func BiEdge(color string) BiOption { return func(c *biConfig) { c.edge = color } }

// BiLineWidth sets the outline stroke width.
func BiLineWidth(w float64) BiOption { return func(c *biConfig) { c.lineWidth = w } }

// BiDashed strokes the outlines with a dash pattern.
func BiDashed() BiOption { return func(c *biConfig) { c.dashed = true } }

// BiButtOffset nudges the stem butt away from the parent box border.
func BiButtOffset(d float64) BiOption { return func(c *biConfig) { c.buttOffset = d } }

// BiTipOffset stops the branch tips short of the child box borders.
func BiTipOffset(d float64) BiOption { return func(c *biConfig) { c.tipOffset = d } }

// BiLabelLeft annotates the left branch at its horizontal run.
func BiLabelLeft(text string) BiOption { return func(c *biConfig) { c.labelLeft = text } }

// BiLabelRight annotates the right branch at its horizontal run.
func BiLabelRight(text string) BiOption { return func(c *biConfig) { c.labelRight = text } }

// BiLabelFont overrides the tree's default font for the branch labels.
func BiLabelFont(f FontStyle) BiOption { return func(c *biConfig) { c.labelFont = &f } }

// AddConnectionBiSplit draws a forked connection from parent box a to the
// two child boxes b and c: a headless stem leaves the parent, then two
// squared-off branches with arrowheads descend (or rise) into the
// children. Both children must sit clearly below or clearly above the
// parent.
func (t *Tree) AddConnectionBiSplit(a, b, c *Box, opts ...BiOption) error {
	cfg := biConfig{
		width:     defaultConnWidth,
		lineWidth: defaultConnLineWidth,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	ra, rb, rc := a.Rect(), b.Rect(), c.Rect()
	down := rb.Top < ra.Bottom && rc.Top < ra.Bottom
	up := rb.Bottom > ra.Top && rc.Bottom > ra.Top
	if !down && !up {
		return errors.New(errors.ErrCodeInvalidBox,
			"boxes %q and %q must both sit clearly above or clearly below %q", b.Name, c.Name, a.Name)
	}

	var start geom.Point
	var splitY float64
	var err error
	if down {
		start, err = a.AnchorOffset(geom.AnchorBottom, cfg.buttOffset)
		if err != nil {
			return err
		}
		splitY = (start.Y + math.Max(rb.Top, rc.Top)) / 2
	} else {
		start, err = a.AnchorOffset(geom.AnchorTop, cfg.buttOffset)
		if err != nil {
			return err
		}
		splitY = (start.Y + math.Min(rb.Bottom, rc.Bottom)) / 2
	}
	fork := geom.Point{X: start.X, Y: splitY}

	stemCfg := connConfig{
		width:     cfg.width,
		noHead:    true,
		face:      cfg.face,
		edge:      cfg.edge,
		lineWidth: cfg.lineWidth,
		dashed:    cfg.dashed,
	}
	if _, err := t.addConnector([]geom.Point{start, fork}, a, stemCfg); err != nil {
		return err
	}

	left, right := b, c
	if right.Center().X < left.Center().X {
		left, right = right, left
	}

	branchLabels := map[*Box]string{left: cfg.labelLeft, right: cfg.labelRight}
	for _, child := range []*Box{left, right} {
		cx := child.Center().X
		var tipY float64
		if down {
			tipY = child.Rect().Top + cfg.tipOffset
		} else {
			tipY = child.Rect().Bottom - cfg.tipOffset
		}
		path := simplify([]geom.Point{
			fork,
			{X: cx, Y: splitY},
			{X: cx, Y: tipY},
		})
		branchCfg := stemCfg
		branchCfg.noHead = false
		if _, err := t.addConnector(path, child, branchCfg); err != nil {
			return err
		}
		t.edges = append(t.edges, Edge{From: a.Name, To: child.Name, Label: branchLabels[child]})
	}

	font := t.font
	if cfg.labelFont != nil {
		font = *cfg.labelFont
	}
	labelY := splitY + cfg.width*0.95
	vAlign := render.VBottom
	if !down {
		labelY = splitY - cfg.width*0.95
		vAlign = render.VTop
	}
	if cfg.labelLeft != "" {
		t.drawables = append(t.drawables, &label{
			at:     geom.Point{X: (start.X+left.Center().X)/2 + cfg.width/2, Y: labelY},
			text:   cfg.labelLeft,
			font:   font,
			hAlign: render.HCenter,
			vAlign: vAlign,
		})
	}
	if cfg.labelRight != "" {
		t.drawables = append(t.drawables, &label{
			at:     geom.Point{X: (start.X+right.Center().X)/2 - cfg.width/2, Y: labelY},
			text:   cfg.labelRight,
			font:   font,
			hAlign: render.HCenter,
			vAlign: vAlign,
		})
	}
	return nil
}
