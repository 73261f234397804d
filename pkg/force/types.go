// Package force implements the spring/charge layout simulation: pairwise
// repulsion (exact or Barnes-Hut approximated), link springs, centering, and
// semi-implicit integration, driven by a decaying-alpha scheduler.
package force

// SimNode is the runtime state attached 1:1 to a node record: position,
// velocity, and an optional pinned position that overrides integration while
// a drag holds the node.
type SimNode struct {
	Index int
	ID    string
	X, Y  float64
	VX    float64
	VY    float64
	FX    *float64
	FY    *float64
}

// Pinned reports whether the node's position is forced.
func (n *SimNode) Pinned() bool { return n.FX != nil && n.FY != nil }

// Pin forces the node to (x, y) until Unpin.
func (n *SimNode) Pin(x, y float64) {
	n.FX, n.FY = &x, &y
}

// Unpin releases the node back to free movement under simulated forces.
func (n *SimNode) Unpin() {
	n.FX, n.FY = nil, nil
}

// SimLink references the two simulation nodes it connects. Endpoints are
// resolved once at construction; a SimLink with a missing endpoint cannot
// exist past that point.
type SimLink struct {
	Source   *SimNode
	Target   *SimNode
	Distance float64
	Strength float64

	// bias splits the spring's velocity correction between the endpoints
	// so low-degree nodes move more than hubs.
	bias float64
}

// Params tunes the solver. Zero values mean "use the default".
type Params struct {
	// Repulsion is the many-body strength coefficient. Negative repels.
	Repulsion float64
	// DistanceMin floors pairwise distance to avoid singularities.
	DistanceMin float64
	// Theta is the Barnes-Hut accuracy ratio: a cluster is aggregated
	// only when extent/distance < Theta.
	Theta float64
	// BarnesHutThreshold is the node count above which the quadtree
	// approximation replaces exact pairwise evaluation.
	BarnesHutThreshold int

	// LinkDistance is the spring's target separation.
	LinkDistance float64
	// LinkStrength overrides the degree-based default when FlatStrength
	// is set.
	LinkStrength float64
	FlatStrength bool

	// CenterStrength scales the pull of the non-pinned centroid toward
	// the origin.
	CenterStrength float64

	// VelocityDecay is the fraction of velocity dissipated each step.
	VelocityDecay float64

	// RandomPlacement seeds initial positions randomly instead of the
	// deterministic phyllotaxis spiral.
	RandomPlacement bool
	Seed            int64
}

// DefaultParams returns the tuned profile.
func DefaultParams() Params {
	return Params{
		Repulsion:          -300,
		DistanceMin:        1,
		Theta:              0.9,
		BarnesHutThreshold: 500,
		LinkDistance:       120,
		CenterStrength:     1,
		VelocityDecay:      0.6,
	}
}

func (p *Params) applyDefaults() {
	d := DefaultParams()
	if p.Repulsion == 0 {
		p.Repulsion = d.Repulsion
	}
	if p.DistanceMin == 0 {
		p.DistanceMin = d.DistanceMin
	}
	if p.Theta == 0 {
		p.Theta = d.Theta
	}
	if p.BarnesHutThreshold == 0 {
		p.BarnesHutThreshold = d.BarnesHutThreshold
	}
	if p.LinkDistance == 0 {
		p.LinkDistance = d.LinkDistance
	}
	if p.CenterStrength == 0 {
		p.CenterStrength = d.CenterStrength
	}
	if p.VelocityDecay == 0 {
		p.VelocityDecay = d.VelocityDecay
	}
}
