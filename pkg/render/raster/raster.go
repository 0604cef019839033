// Package raster implements a PNG canvas on top of fogleman/gg.
//
// Unlike the SVG canvas, which defers font handling to the viewer, the
// raster canvas loads TrueType fonts from the host system (see pkg/fonts)
// and draws text directly.
package raster

import (
	"bytes"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"

	"github.com/matzehuels/logictree/pkg/errors"
	"github.com/matzehuels/logictree/pkg/fonts"
	"github.com/matzehuels/logictree/pkg/geom"
	"github.com/matzehuels/logictree/pkg/render"
)

// Canvas is a render.Canvas rasterizing to an in-memory RGBA image.
type Canvas struct {
	dc     *gg.Context
	width  float64
	height float64
	limits geom.Rect
	font   *truetype.Font
}

// Option configures a raster canvas.
type Option func(*Canvas)

// WithFont overrides the system-discovered default font.
func WithFont(f *truetype.Font) Option {
	return func(c *Canvas) { c.font = f }
}

// New creates a raster canvas with the given pixel size and data
// coordinate limits, optionally filled with a background color.
func New(width, height int, limits geom.Rect, background string, opts ...Option) (*Canvas, error) {
	c := &Canvas{
		dc:     gg.NewContext(width, height),
		width:  float64(width),
		height: float64(height),
		limits: limits,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.font == nil {
		f, err := fonts.Default()
		if err != nil {
			return nil, err
		}
		c.font = f
	}

	if background != "" {
		if err := c.setColor(background); err != nil {
			return nil, err
		}
		c.dc.Clear()
	}
	return c, nil
}

func (c *Canvas) px(x float64) float64 {
	return (x - c.limits.Left) / c.limits.Width() * c.width
}

func (c *Canvas) py(y float64) float64 {
	return c.height - (y-c.limits.Bottom)/c.limits.Height()*c.height
}

// Rect draws r rotated by angleDeg about its center.
func (c *Canvas) Rect(r geom.Rect, angleDeg float64, style render.ShapeStyle) error {
	x, y := c.px(r.Left), c.py(r.Top)
	w := r.Width() / c.limits.Width() * c.width
	h := r.Height() / c.limits.Height() * c.height

	if angleDeg != 0 {
		cx, cy := c.px(r.Center().X), c.py(r.Center().Y)
		c.dc.Push()
		defer c.dc.Pop()
		// Data-space CCW is device-space CW because y is flipped.
		c.dc.RotateAbout(gg.Radians(-angleDeg), cx, cy)
	}

	radius := style.CornerRadius / c.limits.Width() * c.width
	if radius > 0 {
		c.dc.DrawRoundedRectangle(x, y, w, h, radius)
	} else {
		c.dc.DrawRectangle(x, y, w, h)
	}
	return c.paint(style)
}

// Polygon draws a closed filled polygon through pts.
func (c *Canvas) Polygon(pts []geom.Point, style render.ShapeStyle) error {
	for i, p := range pts {
		if i == 0 {
			c.dc.MoveTo(c.px(p.X), c.py(p.Y))
		} else {
			c.dc.LineTo(c.px(p.X), c.py(p.Y))
		}
	}
	c.dc.ClosePath()
	return c.paint(style)
}

// Line draws an open polyline through pts.
func (c *Canvas) Line(pts []geom.Point, style render.ShapeStyle) error {
	for i, p := range pts {
		if i == 0 {
			c.dc.MoveTo(c.px(p.X), c.py(p.Y))
		} else {
			c.dc.LineTo(c.px(p.X), c.py(p.Y))
		}
	}
	if style.Stroke != "" {
		if err := c.setColor(style.Stroke); err != nil {
			return err
		}
		c.dc.SetLineWidth(style.StrokeWidth)
		c.applyDash(style.Dashed)
		c.dc.Stroke()
	} else {
		c.dc.ClearPath()
	}
	return nil
}

// Text draws s anchored at p. TeX typesetting is not available on the
// raster backend.
func (c *Canvas) Text(p geom.Point, s string, style render.TextStyle) error {
	if style.TeX {
		return errors.New(errors.ErrCodeUnsupported, "TeX rendering is only available on the SVG backend")
	}

	if err := c.setColor(style.Color); err != nil {
		return err
	}
	c.dc.SetFontFace(fonts.Face(c.font, style.Size))

	ax := map[render.HAlign]float64{render.HLeft: 0, render.HCenter: 0.5, render.HRight: 1}[style.HAlign]
	ay := map[render.VAlign]float64{render.VTop: 1, render.VCenter: 0.5, render.VBottom: 0}[style.VAlign]
	if style.HAlign == "" {
		ax = 0.5
	}
	if style.VAlign == "" {
		ay = 0.5
	}

	x, y := c.px(p.X), c.py(p.Y)
	if style.AngleDeg != 0 {
		c.dc.Push()
		defer c.dc.Pop()
		c.dc.RotateAbout(gg.Radians(-style.AngleDeg), x, y)
	}
	c.dc.DrawStringAnchored(s, x, y, ax, ay)
	return nil
}

// EncodePNG returns the canvas content as a PNG image.
func (c *Canvas) EncodePNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "encoding PNG")
	}
	return buf.Bytes(), nil
}

func (c *Canvas) paint(style render.ShapeStyle) error {
	if style.Fill != "" {
		if err := c.setColor(style.Fill); err != nil {
			return err
		}
		if style.Stroke != "" {
			c.dc.FillPreserve()
		} else {
			c.dc.Fill()
		}
	}
	if style.Stroke != "" {
		if err := c.setColor(style.Stroke); err != nil {
			return err
		}
		c.dc.SetLineWidth(style.StrokeWidth)
		c.applyDash(style.Dashed)
		c.dc.Stroke()
	}
	if style.Fill == "" && style.Stroke == "" {
		c.dc.ClearPath()
	}
	return nil
}

func (c *Canvas) applyDash(dashed bool) {
	if dashed {
		c.dc.SetDash(6, 4)
	} else {
		c.dc.SetDash()
	}
}

func (c *Canvas) setColor(name string) error {
	col, err := ParseColor(name)
	if err != nil {
		return err
	}
	c.dc.SetColor(col)
	return nil
}
