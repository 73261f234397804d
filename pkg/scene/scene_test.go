package scene

import (
	"math"
	"testing"

	"github.com/stevenlee02/textnet/pkg/accessor"
	"github.com/stevenlee02/textnet/pkg/force"
	"github.com/stevenlee02/textnet/pkg/graph"
)

func boundScene(t *testing.T) (*Scene, *force.Simulation) {
	t.Helper()
	doc := &graph.Document{
		Nodes: []graph.NodeRecord{{ID: "A", Value: 4}, {ID: "B", Value: 1}},
		Links: []graph.LinkRecord{{Source: "A", Target: "B", Value: 2}},
	}
	res, err := graph.Resolve(doc, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	styles, err := accessor.ResolveStyles(accessor.Config{}, res)
	if err != nil {
		t.Fatalf("ResolveStyles failed: %v", err)
	}
	sim, err := force.NewSimulation(res, force.Params{})
	if err != nil {
		t.Fatalf("NewSimulation failed: %v", err)
	}
	return Bind(styles), sim
}

func TestBindAppliesStylesOnce(t *testing.T) {
	s, _ := boundScene(t)

	if s.NodeCount() != 2 || s.LinkCount() != 1 {
		t.Fatalf("Bound %d circles, %d lines", s.NodeCount(), s.LinkCount())
	}

	c := s.Circles()[0]
	if c.Radius != 8 { // 4 + 2*sqrt(4)
		t.Errorf("Radius = %v, want 8", c.Radius)
	}
	if c.Title != "A" || c.Fill == "" {
		t.Errorf("Style not applied: %+v", c)
	}
}

func TestProjectWritesPositions(t *testing.T) {
	s, sim := boundScene(t)

	a, b := sim.Nodes()[0], sim.Nodes()[1]
	a.X, a.Y = 3, 4
	b.X, b.Y = -5, 6

	s.Project(sim.Nodes(), sim.Links())

	circles := s.Circles()
	if circles[0].X != 3 || circles[0].Y != 4 {
		t.Errorf("Circle 0 at (%v, %v)", circles[0].X, circles[0].Y)
	}
	line := s.Lines()[0]
	if line.X1 != 3 || line.Y1 != 4 || line.X2 != -5 || line.Y2 != 6 {
		t.Errorf("Line endpoints (%v,%v)-(%v,%v)", line.X1, line.Y1, line.X2, line.Y2)
	}
}

// TestProjectionIdempotent: projecting twice with no intervening solver step
// yields identical visual positions, and projection never mutates the
// simulation.
func TestProjectionIdempotent(t *testing.T) {
	s, sim := boundScene(t)

	sim.Step(1)
	s.Project(sim.Nodes(), sim.Links())
	first := s.Circles()
	firstLines := s.Lines()

	s.Project(sim.Nodes(), sim.Links())
	second := s.Circles()
	secondLines := s.Lines()

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Circle %d changed between projections: %+v vs %+v", i, first[i], second[i])
		}
	}
	for i := range firstLines {
		if firstLines[i] != secondLines[i] {
			t.Errorf("Line %d changed between projections", i)
		}
	}
}

func TestSnapshotsAreCopies(t *testing.T) {
	s, sim := boundScene(t)
	s.Project(sim.Nodes(), sim.Links())

	snap := s.Circles()
	snap[0].X = 9999

	if s.Circles()[0].X == 9999 {
		t.Error("Snapshot mutation leaked into the scene")
	}
}

func TestNodeAt(t *testing.T) {
	s, sim := boundScene(t)
	a, b := sim.Nodes()[0], sim.Nodes()[1]
	a.X, a.Y = 0, 0
	b.X, b.Y = 100, 0
	s.Project(sim.Nodes(), sim.Links())

	if got := s.NodeAt(2, 2, 0); got != 0 {
		t.Errorf("NodeAt(2,2) = %d, want 0", got)
	}
	if got := s.NodeAt(100, 1, 0); got != 1 {
		t.Errorf("NodeAt(100,1) = %d, want 1", got)
	}
	if got := s.NodeAt(50, 50, 0); got != -1 {
		t.Errorf("NodeAt(50,50) = %d, want miss", got)
	}
}

func TestLinkAt(t *testing.T) {
	s, sim := boundScene(t)
	a, b := sim.Nodes()[0], sim.Nodes()[1]
	a.X, a.Y = 0, 0
	b.X, b.Y = 100, 0
	s.Project(sim.Nodes(), sim.Links())

	if got := s.LinkAt(50, 0.5, 1); got != 0 {
		t.Errorf("LinkAt on the segment = %d, want 0", got)
	}
	if got := s.LinkAt(50, 30, 1); got != -1 {
		t.Errorf("LinkAt far from segment = %d, want miss", got)
	}
}

func TestBoundsAndFit(t *testing.T) {
	s, sim := boundScene(t)
	a, b := sim.Nodes()[0], sim.Nodes()[1]
	a.X, a.Y = -100, -50
	b.X, b.Y = 100, 50
	s.Project(sim.Nodes(), sim.Links())

	bounds := s.Bounds()
	if bounds.MinX >= bounds.MaxX || bounds.MinY >= bounds.MaxY {
		t.Fatalf("Degenerate bounds %+v", bounds)
	}

	tr := bounds.Fit(800, 600, 50)
	for _, c := range s.Circles() {
		x, y := tr.Apply(c.X, c.Y)
		if x < 0 || x > 800 || y < 0 || y > 600 {
			t.Errorf("Fitted point (%v, %v) outside viewport", x, y)
		}
	}

	// Round trip.
	x, y := tr.Apply(12, -7)
	ix, iy := tr.Invert(x, y)
	if math.Abs(ix-12) > 1e-9 || math.Abs(iy+7) > 1e-9 {
		t.Errorf("Invert(Apply) = (%v, %v)", ix, iy)
	}
}
