// Package render defines the drawing surface abstraction shared by all
// rendering backends and the SVG implementation of it.
//
// A Canvas draws in data coordinates (y increasing upward); each backend
// owns the mapping onto its device space. Splitting the geometry from the
// drawing driver keeps the diagram model independent of any particular
// plotting engine.
package render

import "github.com/matzehuels/logictree/pkg/geom"

// HAlign is horizontal text alignment.
type HAlign string

// VAlign is vertical text alignment.
type VAlign string

// Text alignment values.
const (
	HLeft   HAlign = "left"
	HCenter HAlign = "center"
	HRight  HAlign = "right"

	VTop    VAlign = "top"
	VCenter VAlign = "center"
	VBottom VAlign = "bottom"
)

// ShapeStyle controls fill and stroke of rects and polygons. Colors are
// CSS color strings; an empty color disables that paint.
type ShapeStyle struct {
	Fill         string  // fill color, "" for no fill
	Stroke       string  // stroke color, "" for no stroke
	StrokeWidth  float64 // stroke width in device units
	CornerRadius float64 // rect corner rounding in data units
	Dashed       bool    // dashed stroke
}

// TextStyle controls text placement and appearance.
type TextStyle struct {
	Family   string  // font family (CSS family for SVG, file name hint for raster)
	Size     float64 // point size in device units
	Color    string
	HAlign   HAlign  // horizontal alignment about the given point
	VAlign   VAlign  // vertical alignment about the given point
	AngleDeg float64 // rotation about the given point, counter-clockwise
	TeX      bool    // typeset via the external TeX toolchain instead of the backend
}

// Canvas is the capability needed to draw a diagram. Backends implement
// rectangles, filled polygons, plain lines and text; everything else is
// composed from those.
type Canvas interface {
	// Rect draws r rotated by angleDeg about its center.
	Rect(r geom.Rect, angleDeg float64, style ShapeStyle) error
	// Polygon draws a closed filled polygon through pts.
	Polygon(pts []geom.Point, style ShapeStyle) error
	// Line draws an open polyline through pts.
	Line(pts []geom.Point, style ShapeStyle) error
	// Text draws s anchored at p according to the style alignment.
	Text(p geom.Point, s string, style TextStyle) error
}
