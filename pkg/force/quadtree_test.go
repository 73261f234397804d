package force

import (
	"math"
	"math/rand"
	"testing"
)

func randomNodes(n int, seed int64) []*SimNode {
	rng := rand.New(rand.NewSource(seed))
	nodes := make([]*SimNode, n)
	for i := range nodes {
		nodes[i] = &SimNode{
			Index: i,
			X:     rng.Float64()*1000 - 500,
			Y:     rng.Float64()*1000 - 500,
		}
	}
	return nodes
}

func exactForce(nodes []*SimNode, target int, strength, alpha, min2 float64) (fx, fy float64) {
	t := nodes[target]
	for i, n := range nodes {
		if i == target {
			continue
		}
		dx := n.X - t.X
		dy := n.Y - t.Y
		d2 := dx*dx + dy*dy
		if d2 < min2 {
			d2 = min2
		}
		w := strength * alpha / d2
		fx += dx * w
		fy += dy * w
	}
	return
}

// TestQuadtreeApproximatesExactForce checks the Barnes-Hut result stays
// close to the exact pairwise sum for a spread-out point set.
func TestQuadtreeApproximatesExactForce(t *testing.T) {
	const (
		strength = -300.0
		alpha    = 0.7
		min2     = 1.0
	)

	nodes := randomNodes(400, 7)
	tree := buildQuadtree(nodes, strength)

	for _, idx := range []int{0, 57, 201, 399} {
		n := nodes[idx]
		n.VX, n.VY = 0, 0
		tree.accumulate(n, alpha, 0.9*0.9, min2)

		ex, ey := exactForce(nodes, idx, strength, alpha, min2)
		mag := math.Hypot(ex, ey)
		errMag := math.Hypot(n.VX-ex, n.VY-ey)
		if mag > 1e-9 && errMag/mag > 0.15 {
			t.Errorf("Node %d: approx (%v, %v) vs exact (%v, %v), relative error %.3f",
				idx, n.VX, n.VY, ex, ey, errMag/mag)
		}
	}
}

// TestQuadtreeThetaZeroIsExact verifies theta=0 degenerates to the exact
// pairwise sum.
func TestQuadtreeThetaZeroIsExact(t *testing.T) {
	const (
		strength = -300.0
		alpha    = 1.0
		min2     = 1.0
	)

	nodes := randomNodes(60, 11)
	tree := buildQuadtree(nodes, strength)

	for idx := range nodes {
		n := nodes[idx]
		n.VX, n.VY = 0, 0
		tree.accumulate(n, alpha, 0, min2)

		ex, ey := exactForce(nodes, idx, strength, alpha, min2)
		if math.Abs(n.VX-ex) > 1e-6 || math.Abs(n.VY-ey) > 1e-6 {
			t.Fatalf("Node %d: theta=0 gave (%v, %v), exact (%v, %v)", idx, n.VX, n.VY, ex, ey)
		}
	}
}

// TestQuadtreeCoincidentNodes ensures a pile of identical positions does not
// recurse forever and still repels an outside node.
func TestQuadtreeCoincidentNodes(t *testing.T) {
	nodes := make([]*SimNode, 40)
	for i := range nodes {
		nodes[i] = &SimNode{Index: i, X: 10, Y: 10}
	}
	outside := &SimNode{Index: 40, X: 200, Y: 10}
	nodes = append(nodes, outside)

	tree := buildQuadtree(nodes, -300)
	tree.accumulate(outside, 1, 0.81, 1)

	if outside.VX <= 0 {
		t.Errorf("Cluster should push the outside node away, VX = %v", outside.VX)
	}
}

func TestManyBodySwitchesToApproximation(t *testing.T) {
	nodes := randomNodes(4, 3)
	sim := &Simulation{nodes: nodes, params: Params{}}
	sim.params.applyDefaults()
	sim.params.BarnesHutThreshold = 3

	// Just exercising the approximate path on a tiny graph; the result
	// must be finite and nonzero.
	sim.applyManyBody(1)
	for _, n := range nodes {
		if math.IsNaN(n.VX) || math.IsInf(n.VX, 0) {
			t.Fatalf("Non-finite velocity %v", n.VX)
		}
	}
}
