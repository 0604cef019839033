package arrow

import (
	"math"
	"testing"

	"github.com/matzehuels/logictree/pkg/errors"
	"github.com/matzehuels/logictree/pkg/geom"
)

const eps = 1e-9

func mustNew(t *testing.T, path []geom.Point, width float64, opts ...Option) *Arrow {
	t.Helper()
	a, err := New(path, width, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func TestStraightShaftOutline(t *testing.T) {
	a := mustNew(t, []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, 1)

	if len(a.Vertices) != 4 {
		t.Fatalf("straight headless arrow has %d vertices, want 4", len(a.Vertices))
	}
	want := []geom.Point{
		{X: 0, Y: 0.5}, {X: 10, Y: 0.5}, {X: 10, Y: -0.5}, {X: 0, Y: -0.5},
	}
	for i, w := range want {
		if a.Vertices[i].Dist(w) > eps {
			t.Errorf("vertex %d = %+v, want %+v", i, a.Vertices[i], w)
		}
	}
}

func TestHeadGeometry(t *testing.T) {
	width := 1.0
	a := mustNew(t, []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, width, WithHead())

	if len(a.Vertices) != 7 {
		t.Fatalf("straight headed arrow has %d vertices, want 7", len(a.Vertices))
	}

	flare := headFlareRatio * width
	setback := math.Tan(headAngleDeg*math.Pi/180) * (flare + width/2)
	baseX := 10 - setback

	want := []geom.Point{
		{X: 0, Y: 0.5},
		{X: baseX, Y: 0.5},
		{X: baseX, Y: 0.5 + flare},
		{X: 10, Y: 0},
		{X: baseX, Y: -0.5 - flare},
		{X: baseX, Y: -0.5},
		{X: 0, Y: -0.5},
	}
	for i, w := range want {
		if a.Vertices[i].Dist(w) > eps {
			t.Errorf("vertex %d = %+v, want %+v", i, a.Vertices[i], w)
		}
	}
}

func TestOutlineSymmetricAboutShaft(t *testing.T) {
	// A horizontal arrow's outline must be mirror-symmetric about y=0.
	a := mustNew(t, []geom.Point{{X: 0, Y: 0}, {X: 6, Y: 0}}, 0.8, WithHead())

	for _, v := range a.Vertices {
		mirror := geom.Point{X: v.X, Y: -v.Y}
		found := false
		for _, u := range a.Vertices {
			if u.Dist(mirror) < eps {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("no mirror vertex for %+v", v)
		}
	}
}

func TestElbowMiterJoin(t *testing.T) {
	// Right-angle elbow: up then right. The outer miter corner sits half
	// a width outside the joint on both axes.
	a := mustNew(t, []geom.Point{{X: 0, Y: 0}, {X: 0, Y: 4}, {X: 4, Y: 4}}, 1)

	if len(a.Vertices) != 6 {
		t.Fatalf("two-segment headless arrow has %d vertices, want 6", len(a.Vertices))
	}

	outer := geom.Point{X: -0.5, Y: 4.5}
	inner := geom.Point{X: 0.5, Y: 3.5}
	foundOuter, foundInner := false, false
	for _, v := range a.Vertices {
		if v.Dist(outer) < eps {
			foundOuter = true
		}
		if v.Dist(inner) < eps {
			foundInner = true
		}
	}
	if !foundOuter {
		t.Errorf("outer miter corner %+v missing from %v", outer, a.Vertices)
	}
	if !foundInner {
		t.Errorf("inner miter corner %+v missing from %v", inner, a.Vertices)
	}
}

func TestDiagonalArrowWidth(t *testing.T) {
	// Free-angle shafts keep the requested width: opposite sides of the
	// butt edge are exactly one width apart.
	a := mustNew(t, []geom.Point{{X: 0, Y: 0}, {X: 3, Y: 4}}, 2)

	buttLeft := a.Vertices[0]
	buttRight := a.Vertices[len(a.Vertices)-1]
	if d := buttLeft.Dist(buttRight); math.Abs(d-2) > eps {
		t.Errorf("butt edge width = %g, want 2", d)
	}
}

func TestSegmentLengthsAndAngles(t *testing.T) {
	a := mustNew(t, []geom.Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: -2}}, 0.5)

	lengths := a.SegmentLengths()
	if len(lengths) != 2 || math.Abs(lengths[0]-3) > eps || math.Abs(lengths[1]-2) > eps {
		t.Errorf("SegmentLengths = %v, want [3 2]", lengths)
	}

	angles := a.SegmentAngles()
	if math.Abs(angles[0]-0) > eps {
		t.Errorf("first segment angle = %g, want 0", angles[0])
	}
	if math.Abs(angles[1]-3*math.Pi/2) > eps {
		t.Errorf("second segment angle = %g, want 3*pi/2", angles[1])
	}
}

func TestBounds(t *testing.T) {
	a := mustNew(t, []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, 1)
	b := a.Bounds()
	if b.Left != 0 || b.Right != 10 || math.Abs(b.Bottom+0.5) > eps || math.Abs(b.Top-0.5) > eps {
		t.Errorf("Bounds = %+v", b)
	}
}

func TestInvalidPaths(t *testing.T) {
	tests := []struct {
		name  string
		path  []geom.Point
		width float64
	}{
		{"single point", []geom.Point{{X: 0, Y: 0}}, 1},
		{"empty path", nil, 1},
		{"zero width", []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}, 0},
		{"negative width", []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}, -2},
		{"coincident points", []geom.Point{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}}, 1},
		{"fold back", []geom.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 2, Y: 0}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.path, tt.width)
			if !errors.Is(err, errors.ErrCodeInvalidPath) {
				t.Errorf("code = %q, want INVALID_PATH", errors.GetCode(err))
			}
		})
	}
}
