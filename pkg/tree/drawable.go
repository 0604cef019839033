package tree

import (
	"github.com/matzehuels/logictree/pkg/geom"
	"github.com/matzehuels/logictree/pkg/render"
)

// Drawable is the capability shared by everything placed on a chart.
// Boxes, connectors and free labels are distinct types implementing it;
// there is no shared drawable base state.
type Drawable interface {
	Draw(render.Canvas) error
}

// label is a free-floating piece of text (connection annotations, the
// figure title).
type label struct {
	at     geom.Point
	text   string
	font   FontStyle
	hAlign render.HAlign
	vAlign render.VAlign
}

func (l *label) Draw(c render.Canvas) error {
	return c.Text(l.at, l.text, render.TextStyle{
		Family: l.font.Family,
		Size:   l.font.Size,
		Color:  l.font.Color,
		HAlign: l.hAlign,
		VAlign: l.vAlign,
	})
}
