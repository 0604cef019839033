package render

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/logictree/pkg/geom"
)

// SVGOption configures an SVG canvas.
type SVGOption func(*SVG)

// WithBackground fills the viewport with the given color.
func WithBackground(color string) SVGOption {
	return func(s *SVG) { s.background = color }
}

// SVG is a Canvas writing SVG markup into an in-memory buffer.
//
// Data coordinates given by limits are mapped onto a width x height pixel
// viewport with the y axis flipped (SVG is y-down, data is y-up).
type SVG struct {
	buf        bytes.Buffer
	width      float64
	height     float64
	limits     geom.Rect
	background string
	opened     bool
}

// NewSVG creates an SVG canvas with the given pixel viewport and data
// coordinate limits.
func NewSVG(width, height float64, limits geom.Rect, opts ...SVGOption) *SVG {
	s := &SVG{width: width, height: height, limits: limits}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// px maps a data x coordinate to device space.
func (s *SVG) px(x float64) float64 {
	return (x - s.limits.Left) / s.limits.Width() * s.width
}

// py maps a data y coordinate to device space, flipping the axis.
func (s *SVG) py(y float64) float64 {
	return s.height - (y-s.limits.Bottom)/s.limits.Height()*s.height
}

func (s *SVG) scaleX() float64 { return s.width / s.limits.Width() }

func (s *SVG) open() {
	if s.opened {
		return
	}
	s.opened = true
	fmt.Fprintf(&s.buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.width, s.height, s.width, s.height)
	if s.background != "" {
		fmt.Fprintf(&s.buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			s.width, s.height, escapeXML(s.background))
	}
}

// Rect draws r rotated by angleDeg about its center.
func (s *SVG) Rect(r geom.Rect, angleDeg float64, style ShapeStyle) error {
	s.open()

	x, y := s.px(r.Left), s.py(r.Top)
	w := r.Width() * s.scaleX()
	h := r.Height() * s.height / s.limits.Height()

	fmt.Fprintf(&s.buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"`, x, y, w, h)
	if style.CornerRadius > 0 {
		fmt.Fprintf(&s.buf, ` rx="%.2f"`, style.CornerRadius*s.scaleX())
	}
	if angleDeg != 0 {
		c := r.Center()
		// Data-space CCW is device-space CW because y is flipped.
		fmt.Fprintf(&s.buf, ` transform="rotate(%.2f %.2f %.2f)"`, -angleDeg, s.px(c.X), s.py(c.Y))
	}
	s.writePaint(style)
	s.buf.WriteString("/>\n")
	return nil
}

// Polygon draws a closed filled polygon through pts.
func (s *SVG) Polygon(pts []geom.Point, style ShapeStyle) error {
	s.open()
	s.buf.WriteString(`  <polygon points="`)
	s.writePoints(pts)
	s.buf.WriteString(`"`)
	s.writePaint(style)
	s.buf.WriteString("/>\n")
	return nil
}

// Line draws an open polyline through pts.
func (s *SVG) Line(pts []geom.Point, style ShapeStyle) error {
	s.open()
	s.buf.WriteString(`  <polyline fill="none" points="`)
	s.writePoints(pts)
	s.buf.WriteString(`"`)
	if style.Stroke != "" {
		fmt.Fprintf(&s.buf, ` stroke="%s" stroke-width="%.2f"`, escapeXML(style.Stroke), style.StrokeWidth)
	}
	if style.Dashed {
		s.buf.WriteString(` stroke-dasharray="6 4"`)
	}
	s.buf.WriteString("/>\n")
	return nil
}

// Text draws s anchored at p. With style.TeX set the label is typeset by
// the external TeX toolchain and inlined; any typesetter error propagates
// unchanged.
func (s *SVG) Text(p geom.Point, text string, style TextStyle) error {
	s.open()

	x, y := s.px(p.X), s.py(p.Y)

	if style.TeX {
		markup, err := Typeset(text)
		if err != nil {
			return err
		}
		fmt.Fprintf(&s.buf, `  <g transform="translate(%.2f %.2f)">`+"\n", x, y)
		s.buf.Write(markup)
		s.buf.WriteString("  </g>\n")
		return nil
	}

	anchor := map[HAlign]string{HLeft: "start", HCenter: "middle", HRight: "end"}[style.HAlign]
	if anchor == "" {
		anchor = "middle"
	}
	baseline := map[VAlign]string{VTop: "hanging", VCenter: "central", VBottom: "auto"}[style.VAlign]
	if baseline == "" {
		baseline = "central"
	}

	fmt.Fprintf(&s.buf, `  <text x="%.2f" y="%.2f" text-anchor="%s" dominant-baseline="%s" font-size="%.1f"`,
		x, y, anchor, baseline, style.Size)
	if style.Family != "" {
		fmt.Fprintf(&s.buf, ` font-family="%s"`, escapeXML(style.Family))
	}
	if style.Color != "" {
		fmt.Fprintf(&s.buf, ` fill="%s"`, escapeXML(style.Color))
	}
	if style.AngleDeg != 0 {
		fmt.Fprintf(&s.buf, ` transform="rotate(%.2f %.2f %.2f)"`, -style.AngleDeg, x, y)
	}
	fmt.Fprintf(&s.buf, ">%s</text>\n", escapeXML(text))
	return nil
}

// Bytes returns the complete SVG document.
func (s *SVG) Bytes() []byte {
	s.open()
	out := make([]byte, 0, s.buf.Len()+8)
	out = append(out, s.buf.Bytes()...)
	return append(out, "</svg>\n"...)
}

func (s *SVG) writePoints(pts []geom.Point) {
	for i, p := range pts {
		if i > 0 {
			s.buf.WriteByte(' ')
		}
		fmt.Fprintf(&s.buf, "%.2f,%.2f", s.px(p.X), s.py(p.Y))
	}
}

func (s *SVG) writePaint(style ShapeStyle) {
	if style.Fill != "" {
		fmt.Fprintf(&s.buf, ` fill="%s"`, escapeXML(style.Fill))
	} else {
		s.buf.WriteString(` fill="none"`)
	}
	if style.Stroke != "" {
		fmt.Fprintf(&s.buf, ` stroke="%s" stroke-width="%.2f"`, escapeXML(style.Stroke), style.StrokeWidth)
	}
	if style.Dashed {
		s.buf.WriteString(` stroke-dasharray="6 4"`)
	}
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
