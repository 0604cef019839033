package tree

import (
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/logictree/pkg/errors"
	"github.com/matzehuels/logictree/pkg/geom"
	"github.com/matzehuels/logictree/pkg/render"
)

// Text sizing heuristics, in fractions of the font point size. Used to
// estimate label extents without a font renderer so box geometry is
// backend independent.
const (
	charWidthRatio = 0.55
	lineHeight     = 1.2
	defaultPad     = 0.6 // padding as a fraction of the font size
)

// FontStyle bundles the text attributes a box or title carries.
type FontStyle struct {
	Family string
	Size   float64 // point size
	Color  string
}

// Box is a labeled rectangle on the chart. Its geometry is laid out when
// the box is added; anchors are recomputed from the current geometry on
// every call, never cached.
type Box struct {
	Name      string
	Label     string
	FaceColor string
	EdgeColor string
	LineWidth float64
	Corner    float64 // corner rounding radius in data units
	AngleDeg  float64 // rotation about the box center
	Font      FontStyle
	TeX       bool // typeset the label with the external TeX toolchain

	rect    geom.Rect
	laidOut bool
}

// Rect returns the box extent in its local (pre-rotation) frame.
func (b *Box) Rect() geom.Rect { return b.rect }

// Center returns the box center. Rotation does not move it.
func (b *Box) Center() geom.Point { return b.rect.Center() }

// Width returns the box width in data units.
func (b *Box) Width() float64 { return b.rect.Width() }

// Height returns the box height in data units.
func (b *Box) Height() float64 { return b.rect.Height() }

// Anchor resolves the named anchor point on the box, after rotation.
func (b *Box) Anchor(a geom.Anchor) (geom.Point, error) {
	return b.AnchorOffset(a, 0)
}

// AnchorOffset resolves the named anchor nudged outward by offset.
func (b *Box) AnchorOffset(a geom.Anchor, offset float64) (geom.Point, error) {
	if !b.laidOut {
		return geom.Point{}, errors.New(errors.ErrCodeBoxNotLaidOut,
			"box %q has no geometry; add it to a tree first", b.Name)
	}
	return geom.ResolveOffset(b.rect, a, b.AngleDeg, offset)
}

// Draw renders the box rectangle and its label.
func (b *Box) Draw(c render.Canvas) error {
	if err := c.Rect(b.rect, b.AngleDeg, render.ShapeStyle{
		Fill:         b.FaceColor,
		Stroke:       b.EdgeColor,
		StrokeWidth:  b.LineWidth,
		CornerRadius: b.Corner,
	}); err != nil {
		return err
	}
	if b.Label == "" {
		return nil
	}
	return c.Text(b.Center(), b.Label, render.TextStyle{
		Family:   b.Font.Family,
		Size:     b.Font.Size,
		Color:    b.Font.Color,
		HAlign:   render.HCenter,
		VAlign:   render.VCenter,
		AngleDeg: b.AngleDeg,
		TeX:      b.TeX,
	})
}

// estimateSize returns the label extent in points, padding included.
// Multi-line labels take the widest line.
func estimateSize(label string, font FontStyle, pad float64) (w, h float64) {
	lines := strings.Split(label, "\n")
	longest := 0
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > longest {
			longest = n
		}
	}
	padPts := pad * font.Size
	w = float64(longest)*charWidthRatio*font.Size + 2*padPts
	h = float64(len(lines))*lineHeight*font.Size + 2*padPts
	return w, h
}
