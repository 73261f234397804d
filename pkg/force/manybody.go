package force

// applyManyBody adds pairwise repulsion to every node's velocity. Small
// graphs get the exact O(n^2) pass; past BarnesHutThreshold a quadtree
// aggregates distant clusters into point masses, keeping each step near
// O(n log n) with error bounded by Theta.
func (s *Simulation) applyManyBody(alpha float64) {
	if len(s.nodes) < 2 {
		return
	}
	if len(s.nodes) < s.params.BarnesHutThreshold {
		s.manyBodyExact(alpha)
		return
	}
	s.manyBodyApprox(alpha)
}

func (s *Simulation) manyBodyExact(alpha float64) {
	strength := s.params.Repulsion
	min2 := s.params.DistanceMin * s.params.DistanceMin

	for i, a := range s.nodes {
		for _, b := range s.nodes[i+1:] {
			dx := b.X - a.X
			dy := b.Y - a.Y
			d2 := dx*dx + dy*dy
			if d2 < min2 {
				d2 = min2
			}
			w := strength * alpha / d2
			a.VX += dx * w
			a.VY += dy * w
			b.VX -= dx * w
			b.VY -= dy * w
		}
	}
}

func (s *Simulation) manyBodyApprox(alpha float64) {
	tree := buildQuadtree(s.nodes, s.params.Repulsion)
	theta2 := s.params.Theta * s.params.Theta
	min2 := s.params.DistanceMin * s.params.DistanceMin
	for _, n := range s.nodes {
		tree.accumulate(n, alpha, theta2, min2)
	}
}
