// Package view assembles a renderable graph: resolved document, styled
// scene, force simulation, and the interaction protocols, behind a single
// owner. All reads and writes of simulation state flow through the View,
// which keeps solver steps, projection, and pointer events serialized the
// way a host render loop delivers them.
package view

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stevenlee02/textnet/pkg/accessor"
	"github.com/stevenlee02/textnet/pkg/force"
	"github.com/stevenlee02/textnet/pkg/graph"
	"github.com/stevenlee02/textnet/pkg/interaction"
	"github.com/stevenlee02/textnet/pkg/logging"
	"github.com/stevenlee02/textnet/pkg/metrics"
	"github.com/stevenlee02/textnet/pkg/profile"
	"github.com/stevenlee02/textnet/pkg/scene"
)

// Options configures view construction. Everything is optional.
type Options struct {
	Accessors accessor.Config
	Profile   *profile.Profile
	Logger    logging.Logger
	Metrics   *metrics.Registry

	// Selection sinks; nil sinks drop selections.
	NodeSink interaction.NodeSink
	LinkSink interaction.LinkSink
}

// View is a constructed interactive graph. It is not safe for concurrent
// use: the host loop must serialize Tick, drag, and click calls, which every
// single-threaded render loop does naturally.
type View struct {
	id  string
	log logging.Logger
	met *metrics.Registry

	res      *graph.Resolved
	sched    *force.Scheduler
	scene    *scene.Scene
	dragger  *interaction.Dragger
	selector *interaction.Selector

	closed bool
}

// New constructs a view from an input document: identifiers resolve (with
// last-wins aliasing), accessors evaluate once into style tables, link
// endpoints bind, primitives bind, and the scheduler starts hot (alpha 1).
// Any failure rejects the whole document; no partial view is returned.
func New(doc *graph.Document, opts Options) (*View, error) {
	start := time.Now()

	log := opts.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}

	prof := profile.Default()
	if opts.Profile != nil {
		prof = *opts.Profile
		if err := prof.Validate(); err != nil {
			return nil, err
		}
	}

	res, err := graph.Resolve(doc, opts.Accessors.IdentifierFunc())
	if err != nil {
		return nil, fmt.Errorf("resolve document: %w", err)
	}

	styles, err := accessor.ResolveStyles(opts.Accessors, res)
	if err != nil {
		return nil, fmt.Errorf("resolve styles: %w", err)
	}

	sim, err := force.NewSimulation(res, prof.Params())
	if err != nil {
		return nil, fmt.Errorf("build simulation: %w", err)
	}

	v := &View{
		id:  uuid.NewString(),
		met: opts.Metrics,
		res: res,
	}
	v.log = log.With(logging.ViewID(v.id))
	v.sched = force.NewScheduler(sim)
	v.scene = scene.Bind(styles)
	v.dragger = interaction.NewDragger((*pinController)(v))
	v.selector = interaction.NewSelector(res, opts.NodeSink, opts.LinkSink)

	// Re-project after every solver step; the scene never reads the
	// simulation on its own.
	v.sched.OnTick(func() {
		v.scene.Project(sim.Nodes(), sim.Links())
	})
	v.scene.Project(sim.Nodes(), sim.Links())

	if v.met != nil {
		v.met.RecordViewBuilt(len(res.Nodes), len(res.Links), time.Since(start))
	}
	v.log.Info("view constructed",
		logging.Nodes(len(res.Nodes)),
		logging.Links(len(res.Links)),
		logging.String("profile", prof.Name),
	)
	return v, nil
}

// Tick advances the simulation by one step and re-projects the scene.
// Returns false once the scheduler has stopped (or the view is closed);
// the host loop can keep calling it regardless.
func (v *View) Tick() bool {
	if v.closed {
		return false
	}
	start := time.Now()
	stepped := v.sched.Step()
	if stepped && v.met != nil {
		v.met.RecordStep(v.sched.Alpha(), time.Since(start))
	}
	return stepped
}

// Close tears the view down: the scheduler can never tick again. A replaced
// view must be closed before its successor starts so two simulations never
// tick against the same scene.
func (v *View) Close() {
	if v.closed {
		return
	}
	v.closed = true
	v.sched.Stop()
	v.log.Info("view closed", logging.Tick(v.sched.Ticks()))
}

// Closed reports whether Close has been called.
func (v *View) Closed() bool { return v.closed }

// Reheat restarts a cooled layout without a drag, decaying back toward a
// stop from the drag temperature.
func (v *View) Reheat() {
	if v.closed {
		return
	}
	v.sched.Restart(force.DragAlphaTarget)
	v.log.Debug("layout re-heated", logging.Alpha(v.sched.Alpha()))
}

// Frame returns the current primitive snapshots for rendering. Snapshots
// are copies; holding them across ticks shows stale positions, nothing
// worse.
func (v *View) Frame() ([]scene.Circle, []scene.Line) {
	return v.scene.Circles(), v.scene.Lines()
}

// Bounds returns the projected extent, for fitting into a viewport.
func (v *View) Bounds() scene.Bounds { return v.scene.Bounds() }

// NodeAt hit-tests node primitives at scene coordinates.
func (v *View) NodeAt(x, y, slop float64) int { return v.scene.NodeAt(x, y, slop) }

// LinkAt hit-tests link primitives at scene coordinates.
func (v *View) LinkAt(x, y, slop float64) int { return v.scene.LinkAt(x, y, slop) }

// Alpha returns the scheduler's current temperature.
func (v *View) Alpha() float64 { return v.sched.Alpha() }

// State returns the scheduler phase.
func (v *View) State() force.State { return v.sched.State() }

// Ticks returns completed steps.
func (v *View) Ticks() int64 { return v.sched.Ticks() }

// NodeCount returns the number of canonical nodes.
func (v *View) NodeCount() int { return len(v.res.Nodes) }

// LinkCount returns the number of bound links.
func (v *View) LinkCount() int { return len(v.res.Links) }

// Node returns the record behind a node index.
func (v *View) Node(i int) (graph.NodeRecord, bool) {
	if i < 0 || i >= len(v.res.Nodes) {
		return graph.NodeRecord{}, false
	}
	return v.res.Nodes[i], true
}
