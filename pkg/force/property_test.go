package force

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/stevenlee02/textnet/pkg/graph"
)

// TestSimulationProperties checks the layout invariants that must hold for
// any graph and any interaction sequence.
func TestSimulationProperties(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30

	properties := gopter.NewProperties(parameters)

	properties.Property("pinned position survives any number of steps", prop.ForAll(
		func(px, py float64, steps int) bool {
			sim, err := NewSimulation(mustResolve(pairDoc()), Params{})
			if err != nil {
				return false
			}
			n := sim.Nodes()[0]
			n.Pin(px, py)
			for i := 0; i < steps; i++ {
				sim.Step(1)
			}
			return n.X == px && n.Y == py && n.VX == 0 && n.VY == 0
		},
		gen.Float64Range(-1e4, 1e4),
		gen.Float64Range(-1e4, 1e4),
		gen.IntRange(1, 50),
	))

	properties.Property("positions stay finite", prop.ForAll(
		func(alpha float64, steps int) bool {
			sim, err := NewSimulation(mustResolve(chainDoc(12)), Params{})
			if err != nil {
				return false
			}
			for i := 0; i < steps; i++ {
				sim.Step(alpha)
			}
			for _, n := range sim.Nodes() {
				if math.IsNaN(n.X) || math.IsInf(n.X, 0) || math.IsNaN(n.Y) || math.IsInf(n.Y, 0) {
					return false
				}
			}
			return true
		},
		gen.Float64Range(0, 1),
		gen.IntRange(1, 100),
	))

	properties.Property("cooling is monotone for any starting alpha", prop.ForAll(
		func(start float64) bool {
			sim, err := NewSimulation(mustResolve(pairDoc()), Params{})
			if err != nil {
				return false
			}
			sc := NewScheduler(sim)
			sc.alpha = start
			prev := sc.Alpha()
			for i := 0; i < 100 && sc.Step(); i++ {
				if sc.Alpha() >= prev {
					return false
				}
				prev = sc.Alpha()
			}
			return true
		},
		gen.Float64Range(0.01, 1),
	))

	properties.TestingRun(t)
}

func mustResolve(doc *graph.Document) *graph.Resolved {
	res, err := graph.Resolve(doc, nil)
	if err != nil {
		panic(err)
	}
	return res
}

// chainDoc builds a line of n linked nodes.
func chainDoc(n int) *graph.Document {
	doc := &graph.Document{}
	for i := 0; i < n; i++ {
		doc.Nodes = append(doc.Nodes, graph.NodeRecord{ID: string(rune('a' + i)), Value: 1})
		if i > 0 {
			doc.Links = append(doc.Links, graph.LinkRecord{
				Source: string(rune('a' + i - 1)),
				Target: string(rune('a' + i)),
				Value:  1,
			})
		}
	}
	return doc
}
