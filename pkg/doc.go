// Package pkg provides the core libraries for logictree diagram rendering.
//
// # Overview
//
// logictree draws flowcharts and decision diagrams from explicitly placed
// boxes and arrow connections. The pkg directory is organized into:
//
//  1. [geom] - Coordinate primitives, anchor resolution, connector routing
//  2. [arrow] - Arrow outline polygons with miter joins and arrowheads
//  3. [tree] - The chart context: boxes, connections, titles, output
//  4. [render] - Canvas backends (SVG, raster PNG) and format conversion
//  5. [export] - Graphviz structural export
//
// # Architecture
//
// The typical data flow:
//
//	tree.New + AddBox/AddConnection
//	         ↓
//	    [geom] package (anchors + connector paths)
//	         ↓
//	    [arrow] package (outline polygons)
//	         ↓
//	    [render] package (SVG or raster canvas)
//	         ↓
//	    SVG/PNG/PDF output
//
// # Quick Start
//
//	lt := tree.New(tree.WithTitle("Quality Cuts"))
//	a, _ := lt.AddBox("all", "All events", 50, 80)
//	b, _ := lt.AddBox("pass", "Pass cuts", 50, 40)
//	lt.AddConnection(a, b)
//	lt.SaveSVG("cuts.svg")
package pkg
