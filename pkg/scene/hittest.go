package scene

import "math"

// NodeAt returns the index of the topmost node whose circle (plus slop)
// contains (x, y), or -1. Later-bound nodes draw on top, so the scan runs
// back to front.
func (s *Scene) NodeAt(x, y, slop float64) int {
	for i := len(s.circles) - 1; i >= 0; i-- {
		c := s.circles[i]
		if math.Hypot(x-c.X, y-c.Y) <= c.Radius+slop {
			return c.Node
		}
	}
	return -1
}

// LinkAt returns the index of the topmost link whose stroke (plus slop)
// covers (x, y), or -1.
func (s *Scene) LinkAt(x, y, slop float64) int {
	for i := len(s.lines) - 1; i >= 0; i-- {
		l := s.lines[i]
		if pointSegmentDistance(x, y, l.X1, l.Y1, l.X2, l.Y2) <= l.Width/2+slop {
			return l.Link
		}
	}
	return -1
}

func pointSegmentDistance(px, py, x1, y1, x2, y2 float64) float64 {
	dx, dy := x2-x1, y2-y1
	len2 := dx*dx + dy*dy
	if len2 == 0 {
		return math.Hypot(px-x1, py-y1)
	}
	t := ((px-x1)*dx + (py-y1)*dy) / len2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return math.Hypot(px-(x1+t*dx), py-(y1+t*dy))
}
