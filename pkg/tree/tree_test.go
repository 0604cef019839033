package tree

import (
	"bytes"
	"testing"

	"github.com/matzehuels/logictree/pkg/errors"
	"github.com/matzehuels/logictree/pkg/geom"
	"github.com/matzehuels/logictree/pkg/render"
)

func mustBox(t *testing.T, lt *Tree, name string, x, y float64, opts ...BoxOption) *Box {
	t.Helper()
	b, err := lt.AddBox(name, name, x, y, opts...)
	if err != nil {
		t.Fatalf("AddBox(%q): %v", name, err)
	}
	return b
}

func TestAddBoxRegistersAndLaysOut(t *testing.T) {
	lt := New()
	b := mustBox(t, lt, "start", 20, 80, BoxSize(10, 4))

	if got, ok := lt.Box("start"); !ok || got != b {
		t.Fatalf("Box(start) = %v, %v; want the added box", got, ok)
	}
	if c := b.Center(); c.X != 20 || c.Y != 80 {
		t.Errorf("Center() = %v, want (20, 80)", c)
	}
	if b.Width() != 10 || b.Height() != 4 {
		t.Errorf("size = %g x %g, want 10 x 4", b.Width(), b.Height())
	}

	p, err := b.Anchor(geom.AnchorRight)
	if err != nil {
		t.Fatalf("Anchor(right): %v", err)
	}
	if p.X != 25 || p.Y != 80 {
		t.Errorf("right anchor = %v, want (25, 80)", p)
	}
}

func TestAddBoxDuplicateName(t *testing.T) {
	lt := New()
	mustBox(t, lt, "a", 10, 10)

	_, err := lt.AddBox("a", "again", 50, 50)
	if errors.GetCode(err) != errors.ErrCodeDuplicateBox {
		t.Fatalf("duplicate AddBox error = %v, want code %s", err, errors.ErrCodeDuplicateBox)
	}
}

func TestAddBoxGeneratesNames(t *testing.T) {
	lt := New()
	a, err := lt.AddBox("", "first", 10, 10)
	if err != nil {
		t.Fatalf("AddBox: %v", err)
	}
	b, err := lt.AddBox("", "second", 50, 50)
	if err != nil {
		t.Fatalf("AddBox: %v", err)
	}
	if a.Name == "" || b.Name == "" || a.Name == b.Name {
		t.Fatalf("generated names %q and %q should be distinct and non-empty", a.Name, b.Name)
	}
	if lt.Boxes() != 2 {
		t.Fatalf("Boxes() = %d, want 2", lt.Boxes())
	}
}

func TestAddBoxAlignment(t *testing.T) {
	lt := New()
	b := mustBox(t, lt, "aligned", 10, 20,
		BoxSize(8, 4), BoxAlign(render.HLeft, render.VBottom))

	r := b.Rect()
	if r.Left != 10 || r.Bottom != 20 {
		t.Errorf("rect = %+v, want left 10 and bottom 20", r)
	}
	if c := b.Center(); c.X != 14 || c.Y != 22 {
		t.Errorf("Center() = %v, want (14, 22)", c)
	}
}

func TestAddBoxEstimatesSizeFromLabel(t *testing.T) {
	lt := New()
	short := mustBox(t, lt, "s", 20, 20)
	long, err := lt.AddBox("l", "a considerably longer label", 60, 60)
	if err != nil {
		t.Fatalf("AddBox: %v", err)
	}

	if long.Width() <= short.Width() {
		t.Errorf("longer label width %g should exceed shorter label width %g",
			long.Width(), short.Width())
	}
	two := mustBox(t, lt, "two", 40, 40)
	tall, err := lt.AddBox("tall", "two\nlines", 80, 80)
	if err != nil {
		t.Fatalf("AddBox: %v", err)
	}
	if tall.Height() <= two.Height() {
		t.Errorf("two-line label height %g should exceed one-line height %g",
			tall.Height(), two.Height())
	}
}

func TestAddBoxSizesNonASCIILabelsByRunes(t *testing.T) {
	lt := New()
	ascii := mustBox(t, lt, "ascii", 20, 20)
	greek, err := lt.AddBox("greek", "πέντε", 60, 60)
	if err != nil {
		t.Fatalf("AddBox: %v", err)
	}

	// Both labels are five characters, so the boxes match even though the
	// Greek one is twice as many bytes.
	if greek.Width() != ascii.Width() {
		t.Errorf("five-rune labels sized %g and %g wide, want equal",
			greek.Width(), ascii.Width())
	}
}

func TestAnchorOnUnplacedBox(t *testing.T) {
	var b Box
	_, err := b.Anchor(geom.AnchorTop)
	if errors.GetCode(err) != errors.ErrCodeBoxNotLaidOut {
		t.Fatalf("Anchor on zero box error = %v, want code %s", err, errors.ErrCodeBoxNotLaidOut)
	}
}

func TestMakeTitle(t *testing.T) {
	lt := New()
	if err := lt.MakeTitle(render.HCenter, false); errors.GetCode(err) != errors.ErrCodeNoTitle {
		t.Fatalf("MakeTitle without title error = %v, want code %s", err, errors.ErrCodeNoTitle)
	}

	lt.SetTitle("Decision Flow")
	if err := lt.MakeTitle("middle", false); errors.GetCode(err) != errors.ErrCodeInvalidStyle {
		t.Fatalf("MakeTitle with bad position error = %v, want code %s", err, errors.ErrCodeInvalidStyle)
	}

	before := len(lt.drawables)
	if err := lt.MakeTitle(render.HCenter, false); err != nil {
		t.Fatalf("MakeTitle: %v", err)
	}
	if len(lt.drawables) != before+1 {
		t.Fatalf("MakeTitle should add one drawable, got %d -> %d", before, len(lt.drawables))
	}
}

func TestMakeTitleConsidersBoxes(t *testing.T) {
	lt := New(WithTitle("spanning"))
	mustBox(t, lt, "left", 10, 50, BoxSize(4, 4))
	mustBox(t, lt, "right", 70, 50, BoxSize(4, 4))

	if err := lt.MakeTitle(render.HCenter, true); err != nil {
		t.Fatalf("MakeTitle: %v", err)
	}
	title, ok := lt.drawables[len(lt.drawables)-1].(*label)
	if !ok {
		t.Fatalf("last drawable is %T, want *label", lt.drawables[len(lt.drawables)-1])
	}
	// Box extents run from 8 to 72, so the centered title sits at 40.
	if title.at.X != 40 {
		t.Errorf("title x = %g, want 40", title.at.X)
	}
	if title.at.Y != lt.limits.Top {
		t.Errorf("title y = %g, want top limit %g", title.at.Y, lt.limits.Top)
	}
}

func TestAddConnectionAutoAnchors(t *testing.T) {
	lt := New()
	a := mustBox(t, lt, "a", 10, 50, BoxSize(10, 10))
	b := mustBox(t, lt, "b", 40, 50, BoxSize(10, 10))

	cn, err := lt.AddConnection(a, b)
	if err != nil {
		t.Fatalf("AddConnection: %v", err)
	}
	path := cn.Arrow.Path
	if len(path) != 2 {
		t.Fatalf("path has %d points, want 2", len(path))
	}
	if path[0] != (geom.Point{X: 15, Y: 50}) {
		t.Errorf("start = %v, want right anchor (15, 50)", path[0])
	}
	if path[1] != (geom.Point{X: 35, Y: 50}) {
		t.Errorf("end = %v, want left anchor (35, 50)", path[1])
	}
	if !cn.Arrow.Head {
		t.Error("connection arrow should carry a head")
	}
}

func TestAddConnectionCoincidentCenters(t *testing.T) {
	lt := New()
	a := mustBox(t, lt, "a", 50, 50, BoxSize(10, 10))
	b := mustBox(t, lt, "b", 50, 50, BoxSize(4, 4))

	_, err := lt.AddConnection(a, b)
	if errors.GetCode(err) != errors.ErrCodeInvalidBox {
		t.Fatalf("coincident centers error = %v, want code %s", err, errors.ErrCodeInvalidBox)
	}
}

func TestAddConnectionSplit(t *testing.T) {
	lt := New()
	a := mustBox(t, lt, "parent", 30, 80, BoxSize(10, 10))
	b := mustBox(t, lt, "child", 60, 20, BoxSize(10, 10))

	cn, err := lt.AddConnection(a, b, ConnSplit())
	if err != nil {
		t.Fatalf("AddConnection: %v", err)
	}
	path := cn.Arrow.Path
	if len(path) != 4 {
		t.Fatalf("split path has %d points, want 4", len(path))
	}
	// Midway between the parent bottom (75) and the child top (25).
	midY := 50.0
	if path[1].Y != midY || path[2].Y != midY {
		t.Errorf("horizontal run at y %g and %g, want %g", path[1].Y, path[2].Y, midY)
	}
	if path[1].X != path[0].X || path[2].X != path[3].X {
		t.Errorf("split path legs are not vertical: %v", path)
	}
}

func TestAddConnectionSplitAlignedCollapses(t *testing.T) {
	lt := New()
	a := mustBox(t, lt, "top", 50, 80, BoxSize(10, 10))
	b := mustBox(t, lt, "bottom", 50, 20, BoxSize(10, 10))

	cn, err := lt.AddConnection(a, b, ConnSplit())
	if err != nil {
		t.Fatalf("AddConnection: %v", err)
	}
	if len(cn.Arrow.Path) != 2 {
		t.Fatalf("aligned split path has %d points, want 2", len(cn.Arrow.Path))
	}
}

func TestAddConnectionColorShorthand(t *testing.T) {
	lt := New()
	a := mustBox(t, lt, "a", 10, 50, BoxSize(10, 10))
	b := mustBox(t, lt, "b", 60, 50, BoxSize(10, 10),
		BoxFace("navy"), BoxEdge("orange"))

	tests := []struct {
		name     string
		opts     []ConnOption
		face     string
		edge     string
	}{
		{"defaults follow the target box", nil, "navy", "orange"},
		{"fc fill shorthand", []ConnOption{ConnFace("fc")}, "navy", "orange"},
		{"ec fill shorthand", []ConnOption{ConnFace("ec")}, "orange", "orange"},
		{"fc edge shorthand", []ConnOption{ConnEdge("fc")}, "navy", "navy"},
		{"explicit colors", []ConnOption{ConnFace("red"), ConnEdge("#00ff00")}, "red", "#00ff00"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cn, err := lt.AddConnection(a, b, tc.opts...)
			if err != nil {
				t.Fatalf("AddConnection: %v", err)
			}
			if cn.Face != tc.face || cn.Edge != tc.edge {
				t.Errorf("colors = %q/%q, want %q/%q", cn.Face, cn.Edge, tc.face, tc.edge)
			}
		})
	}
}

func TestAddConnectionElbowRoutes(t *testing.T) {
	lt := New()
	a := mustBox(t, lt, "a", 20, 20, BoxSize(10, 10))
	b := mustBox(t, lt, "b", 70, 70, BoxSize(10, 10))

	hv, err := lt.AddConnection(a, b, ConnRoute(geom.RouteHV))
	if err != nil {
		t.Fatalf("AddConnection(h-then-v): %v", err)
	}
	vh, err := lt.AddConnection(a, b, ConnRoute(geom.RouteVH))
	if err != nil {
		t.Fatalf("AddConnection(v-then-h): %v", err)
	}
	if len(hv.Arrow.Path) != 3 || len(vh.Arrow.Path) != 3 {
		t.Fatalf("elbow paths have %d and %d points, want 3 each",
			len(hv.Arrow.Path), len(vh.Arrow.Path))
	}
	if hv.Arrow.Path[1] == vh.Arrow.Path[1] {
		t.Error("the two elbow orders should turn at different corners")
	}
}

func TestAddConnectionBiSplit(t *testing.T) {
	lt := New()
	parent := mustBox(t, lt, "parent", 50, 80, BoxSize(10, 10))
	left := mustBox(t, lt, "yes", 20, 30, BoxSize(10, 10))
	right := mustBox(t, lt, "no", 80, 30, BoxSize(10, 10))

	before := len(lt.drawables)
	err := lt.AddConnectionBiSplit(parent, right, left,
		BiLabelLeft("yes"), BiLabelRight("no"))
	if err != nil {
		t.Fatalf("AddConnectionBiSplit: %v", err)
	}
	// One stem, two branches, two labels.
	if got := len(lt.drawables) - before; got != 5 {
		t.Fatalf("biSplit added %d drawables, want 5", got)
	}

	stem := lt.drawables[before].(*Connector)
	if stem.Arrow.Head {
		t.Error("stem should not carry a head")
	}
	if stem.Arrow.Path[0].X != 50 || stem.Arrow.Path[1].X != 50 {
		t.Errorf("stem should drop straight down from x=50, got %v", stem.Arrow.Path)
	}
	// Fork midway between the parent bottom (75) and the higher child top (35).
	if y := stem.Arrow.Path[1].Y; y != 55 {
		t.Errorf("fork y = %g, want 55", y)
	}

	for i, wantX := range []float64{20, 80} {
		branch := lt.drawables[before+1+i].(*Connector)
		if !branch.Arrow.Head {
			t.Errorf("branch %d should carry a head", i)
		}
		tip := branch.Arrow.Path[len(branch.Arrow.Path)-1]
		if tip.X != wantX || tip.Y != 35 {
			t.Errorf("branch %d tip = %v, want (%g, 35)", i, tip, wantX)
		}
	}
}

func TestAddConnectionBiSplitDirection(t *testing.T) {
	lt := New()
	parent := mustBox(t, lt, "parent", 50, 50, BoxSize(10, 10))
	above := mustBox(t, lt, "above", 20, 80, BoxSize(10, 10))
	below := mustBox(t, lt, "below", 80, 20, BoxSize(10, 10))

	err := lt.AddConnectionBiSplit(parent, above, below)
	if errors.GetCode(err) != errors.ErrCodeInvalidBox {
		t.Fatalf("mixed direction error = %v, want code %s", err, errors.ErrCodeInvalidBox)
	}
}

func TestAddArrowBetweenOffsets(t *testing.T) {
	lt := New()
	cn, err := lt.AddArrowBetween(
		geom.Point{X: 0, Y: 0}, geom.Point{X: 10, Y: 0},
		ConnButtOffset(1), ConnTipOffset(2))
	if err != nil {
		t.Fatalf("AddArrowBetween: %v", err)
	}
	path := cn.Arrow.Path
	if path[0] != (geom.Point{X: 1, Y: 0}) || path[1] != (geom.Point{X: 8, Y: 0}) {
		t.Errorf("path = %v, want [(1,0) (8,0)]", path)
	}

	_, err = lt.AddArrowBetween(geom.Point{X: 5, Y: 5}, geom.Point{X: 5, Y: 5})
	if errors.GetCode(err) != errors.ErrCodeInvalidPath {
		t.Fatalf("coincident endpoints error = %v, want code %s", err, errors.ErrCodeInvalidPath)
	}
}

func TestSVGOutput(t *testing.T) {
	lt := New(WithTitle("Render Test"))
	a := mustBox(t, lt, "a", 20, 70)
	b := mustBox(t, lt, "b", 20, 30)
	if _, err := lt.AddConnection(a, b); err != nil {
		t.Fatalf("AddConnection: %v", err)
	}
	if err := lt.MakeTitle(render.HCenter, false); err != nil {
		t.Fatalf("MakeTitle: %v", err)
	}

	svg, err := lt.SVG()
	if err != nil {
		t.Fatalf("SVG: %v", err)
	}
	for _, want := range []string{"<svg", "</svg>", "Render Test", ">a<"} {
		if !bytes.Contains(svg, []byte(want)) {
			t.Errorf("SVG output missing %q", want)
		}
	}
}
