// Package scene maintains the one-to-one mapping between data entities and
// visual primitives and re-projects simulation positions onto them after
// every tick.
package scene

import (
	"github.com/stevenlee02/textnet/pkg/accessor"
	"github.com/stevenlee02/textnet/pkg/force"
)

// Circle is a node's visual primitive.
type Circle struct {
	Node   int
	X, Y   float64
	Radius float64
	Fill   string
	Title  string
}

// Line is a link's visual primitive.
type Line struct {
	Link   int
	X1, Y1 float64
	X2, Y2 float64
	Stroke string
	Width  float64
}

// Scene binds primitives to entities once, at construction; the binding is
// never re-created during a simulation's lifetime. Only positions change,
// through Project.
type Scene struct {
	circles []Circle
	lines   []Line
}

// Bind creates the primitive set from resolved styles, one circle per node
// and one line per link. Visual attributes are applied here and never again.
func Bind(styles *accessor.Styles) *Scene {
	s := &Scene{
		circles: make([]Circle, len(styles.Nodes)),
		lines:   make([]Line, len(styles.Links)),
	}
	for i, st := range styles.Nodes {
		s.circles[i] = Circle{Node: i, Radius: st.Radius, Fill: st.Fill, Title: st.Title}
	}
	for i, st := range styles.Links {
		s.lines[i] = Line{Link: i, Stroke: st.Stroke, Width: st.Width}
	}
	return s
}

// Project writes current simulation positions into the primitives. It is a
// pure projection: simulation state is only read, and projecting twice with
// no solver step in between is a no-op the second time.
func (s *Scene) Project(nodes []*force.SimNode, links []*force.SimLink) {
	for i, n := range nodes {
		s.circles[i].X = n.X
		s.circles[i].Y = n.Y
	}
	for i, l := range links {
		s.lines[i].X1 = l.Source.X
		s.lines[i].Y1 = l.Source.Y
		s.lines[i].X2 = l.Target.X
		s.lines[i].Y2 = l.Target.Y
	}
}

// Circles returns a snapshot of the node primitives. Callers must not hold
// it across ticks; each frame asks for a fresh one.
func (s *Scene) Circles() []Circle {
	out := make([]Circle, len(s.circles))
	copy(out, s.circles)
	return out
}

// Lines returns a snapshot of the link primitives under the same rule as
// Circles.
func (s *Scene) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// NodeCount returns the number of bound circles.
func (s *Scene) NodeCount() int { return len(s.circles) }

// LinkCount returns the number of bound lines.
func (s *Scene) LinkCount() int { return len(s.lines) }
