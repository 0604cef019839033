package geom

import (
	"testing"

	"github.com/matzehuels/logictree/pkg/errors"
)

func TestConnectorPathStraight(t *testing.T) {
	// Box A center (0,0) w=2 h=1; box B center (4,0) w=2 h=1. The straight
	// connector from A's right anchor to B's left anchor is exactly those
	// two resolved points.
	a := RectAround(Point{0, 0}, 2, 1)
	b := RectAround(Point{4, 0}, 2, 1)

	src, err := Resolve(a, AnchorRight, 0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	dst, err := Resolve(b, AnchorLeft, 0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	path, err := ConnectorPath(src, dst, RouteStraight)
	if err != nil {
		t.Fatalf("ConnectorPath: %v", err)
	}
	if len(path) != 2 {
		t.Fatalf("straight path has %d points, want 2", len(path))
	}
	nearPoint(t, path[0], Point{1, 0}, "path start")
	nearPoint(t, path[1], Point{3, 0}, "path end")
}

func TestConnectorPathElbows(t *testing.T) {
	src := Point{0, 0}
	dst := Point{4, 3}

	hv, err := ConnectorPath(src, dst, RouteHV)
	if err != nil {
		t.Fatalf("ConnectorPath(HV): %v", err)
	}
	if len(hv) != 3 {
		t.Fatalf("HV path has %d points, want 3", len(hv))
	}
	nearPoint(t, hv[1], Point{4, 0}, "HV via point")

	vh, err := ConnectorPath(src, dst, RouteVH)
	if err != nil {
		t.Fatalf("ConnectorPath(VH): %v", err)
	}
	if len(vh) != 3 {
		t.Fatalf("VH path has %d points, want 3", len(vh))
	}
	nearPoint(t, vh[1], Point{0, 3}, "VH via point")
}

func TestConnectorPathDegenerateElbowCollapses(t *testing.T) {
	// Already-aligned anchors make the elbow via point coincide with an
	// endpoint; the path collapses to a straight segment.
	path, err := ConnectorPath(Point{0, 0}, Point{5, 0}, RouteHV)
	if err != nil {
		t.Fatalf("ConnectorPath: %v", err)
	}
	if len(path) != 2 {
		t.Errorf("aligned HV path has %d points, want 2", len(path))
	}

	path, err = ConnectorPath(Point{0, 0}, Point{0, 5}, RouteVH)
	if err != nil {
		t.Fatalf("ConnectorPath: %v", err)
	}
	if len(path) != 2 {
		t.Errorf("aligned VH path has %d points, want 2", len(path))
	}
}

func TestConnectorPathErrors(t *testing.T) {
	if _, err := ConnectorPath(Point{1, 1}, Point{1, 1}, RouteStraight); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("coincident endpoints: code = %q, want INVALID_PATH", errors.GetCode(err))
	}
	if _, err := ConnectorPath(Point{0, 0}, Point{1, 1}, Route("zigzag")); !errors.Is(err, errors.ErrCodeInvalidRoute) {
		t.Errorf("unknown route: code = %q, want INVALID_ROUTE", errors.GetCode(err))
	}
}

func TestParseRoute(t *testing.T) {
	for _, s := range []string{"straight", "h-then-v", "v-then-h"} {
		if _, err := ParseRoute(s); err != nil {
			t.Errorf("ParseRoute(%q) error: %v", s, err)
		}
	}
	if _, err := ParseRoute("diagonal"); !errors.Is(err, errors.ErrCodeInvalidRoute) {
		t.Errorf("ParseRoute should reject unknown routes")
	}
}
