package geom

import "github.com/matzehuels/logictree/pkg/errors"

// Route selects how a connector travels between two resolved anchors.
// Routing is a per-connection choice; there is no global default beyond
// RouteStraight.
type Route string

const (
	// RouteStraight connects the anchors with a single segment.
	RouteStraight Route = "straight"
	// RouteHV travels horizontally first, turning at (dst.X, src.Y).
	RouteHV Route = "h-then-v"
	// RouteVH travels vertically first, turning at (src.X, dst.Y).
	RouteVH Route = "v-then-h"
)

// ParseRoute validates s against the recognized route set.
func ParseRoute(s string) (Route, error) {
	switch r := Route(s); r {
	case RouteStraight, RouteHV, RouteVH:
		return r, nil
	}
	return "", errors.New(errors.ErrCodeInvalidRoute, "invalid route: %q", s)
}

// ConnectorPath returns the ordered points a connector follows from src to
// dst. Straight routes yield exactly two points. Elbow routes yield three
// points unless the anchors already share the turning axis, in which case
// the degenerate elbow collapses to a straight segment.
//
// No collision avoidance is performed; callers choose sane anchors.
func ConnectorPath(src, dst Point, route Route) ([]Point, error) {
	if src == dst {
		return nil, errors.New(errors.ErrCodeInvalidPath, "connector endpoints coincide at (%g, %g)", src.X, src.Y)
	}
	switch route {
	case RouteStraight, "":
		return []Point{src, dst}, nil
	case RouteHV:
		via := Point{dst.X, src.Y}
		if via == src || via == dst {
			return []Point{src, dst}, nil
		}
		return []Point{src, via, dst}, nil
	case RouteVH:
		via := Point{src.X, dst.Y}
		if via == src || via == dst {
			return []Point{src, dst}, nil
		}
		return []Point{src, via, dst}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidRoute, "invalid route: %q", string(route))
}
