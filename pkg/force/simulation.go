package force

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/stevenlee02/textnet/pkg/graph"
)

// ErrDanglingLink is returned when a link's endpoint index does not resolve
// to a node; a resolved document can never produce it, but simulation
// construction refuses to trust its input.
var ErrDanglingLink = errors.New("link endpoint outside node set")

// initialRadius and initialAngle place nodes on a phyllotaxis spiral so a
// fresh layout is reproducible without a seed.
const (
	initialRadius = 10.0
	initialAngle  = math.Pi * (3 - 2.2360679774997896) // golden angle, sqrt(5)
)

// Simulation is the mutable aggregate of all node and link state. It is
// owned by a single Scheduler; everything else reads positions through
// scheduler-mediated projection.
type Simulation struct {
	nodes  []*SimNode
	links  []*SimLink
	params Params
}

// NewSimulation builds runtime state from a resolved document. Link
// endpoints are bound exactly once here; an out-of-range endpoint rejects
// the whole graph.
func NewSimulation(res *graph.Resolved, params Params) (*Simulation, error) {
	params.applyDefaults()

	s := &Simulation{
		nodes:  make([]*SimNode, len(res.Nodes)),
		links:  make([]*SimLink, 0, len(res.Links)),
		params: params,
	}

	var rng *rand.Rand
	if params.RandomPlacement {
		rng = rand.New(rand.NewSource(params.Seed))
	}

	for i, rec := range res.Nodes {
		n := &SimNode{Index: i, ID: rec.ID}
		if rng != nil {
			angle := rng.Float64() * 2 * math.Pi
			radius := initialRadius * math.Sqrt(0.5+float64(i)) * rng.Float64()
			n.X = radius * math.Cos(angle)
			n.Y = radius * math.Sin(angle)
		} else {
			radius := initialRadius * math.Sqrt(0.5+float64(i))
			angle := float64(i) * initialAngle
			n.X = radius * math.Cos(angle)
			n.Y = radius * math.Sin(angle)
		}
		s.nodes[i] = n
	}

	for _, l := range res.Links {
		if l.SourceIndex < 0 || l.SourceIndex >= len(s.nodes) ||
			l.TargetIndex < 0 || l.TargetIndex >= len(s.nodes) {
			return nil, fmt.Errorf("%w: %q -> %q", ErrDanglingLink, l.Source, l.Target)
		}
		src, tgt := s.nodes[l.SourceIndex], s.nodes[l.TargetIndex]

		degS, degT := res.Degree(l.SourceIndex), res.Degree(l.TargetIndex)
		strength := params.LinkStrength
		if !params.FlatStrength {
			strength = 1 / float64(min(degS, degT))
		}

		s.links = append(s.links, &SimLink{
			Source:   src,
			Target:   tgt,
			Distance: params.LinkDistance,
			Strength: strength,
			bias:     float64(degS) / float64(degS+degT),
		})
	}

	return s, nil
}

// Nodes exposes the node slice to the owning scheduler and its mediated
// callers. The slice itself must not be retained across ticks.
func (s *Simulation) Nodes() []*SimNode { return s.nodes }

// Links exposes the link slice under the same ownership rule as Nodes.
func (s *Simulation) Links() []*SimLink { return s.links }

// Step advances the simulation by one tick at the given temperature: the
// three force passes accumulate into velocities, then positions integrate
// forward with velocity decay. A pinned node ends every step exactly at its
// pin, with zero velocity, regardless of computed forces.
func (s *Simulation) Step(alpha float64) {
	s.applyLinks(alpha)
	s.applyManyBody(alpha)
	s.applyCenter()

	retain := 1 - s.params.VelocityDecay
	for _, n := range s.nodes {
		if n.Pinned() {
			n.X, n.Y = *n.FX, *n.FY
			n.VX, n.VY = 0, 0
			continue
		}
		n.VX *= retain
		n.VY *= retain
		n.X += n.VX
		n.Y += n.VY
	}
}

// applyLinks pulls each link's endpoints toward the target separation,
// modeled as a damped spring. A zero-strength link leaves velocities
// untouched and acts as a pure connector.
func (s *Simulation) applyLinks(alpha float64) {
	for _, l := range s.links {
		if l.Strength == 0 {
			continue
		}
		x := l.Target.X + l.Target.VX - l.Source.X - l.Source.VX
		y := l.Target.Y + l.Target.VY - l.Source.Y - l.Source.VY
		dist := math.Hypot(x, y)
		if dist == 0 {
			x, dist = 1e-6, 1e-6
		}
		k := (dist - l.Distance) / dist * alpha * l.Strength
		x *= k
		y *= k
		l.Target.VX -= x * l.bias
		l.Target.VY -= y * l.bias
		l.Source.VX += x * (1 - l.bias)
		l.Source.VY += y * (1 - l.bias)
	}
}

// applyCenter translates the layout so the centroid of non-pinned nodes
// drifts toward the origin.
func (s *Simulation) applyCenter() {
	var sx, sy float64
	count := 0
	for _, n := range s.nodes {
		if n.Pinned() {
			continue
		}
		sx += n.X
		sy += n.Y
		count++
	}
	if count == 0 {
		return
	}
	dx := sx / float64(count) * s.params.CenterStrength
	dy := sy / float64(count) * s.params.CenterStrength
	for _, n := range s.nodes {
		if n.Pinned() {
			continue
		}
		n.X -= dx
		n.Y -= dy
	}
}
