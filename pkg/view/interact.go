package view

import (
	"github.com/stevenlee02/textnet/pkg/force"
	"github.com/stevenlee02/textnet/pkg/graph"
	"github.com/stevenlee02/textnet/pkg/interaction"
	"github.com/stevenlee02/textnet/pkg/logging"
)

// pinController adapts the view for the drag protocol without exporting
// mutation methods on View itself.
type pinController View

func (p *pinController) Pin(node int, x, y float64) {
	nodes := p.sched.Simulation().Nodes()
	if node >= 0 && node < len(nodes) {
		nodes[node].Pin(x, y)
	}
}

func (p *pinController) Unpin(node int) {
	nodes := p.sched.Simulation().Nodes()
	if node >= 0 && node < len(nodes) {
		nodes[node].Unpin()
	}
}

func (p *pinController) Reheat() { p.sched.Reheat(force.DragAlphaTarget) }
func (p *pinController) Rest()   { p.sched.Rest() }

// DragStart begins dragging the given node, pinning it at its current
// position and re-heating the simulation so the rest of the layout reacts.
func (v *View) DragStart(node int) bool {
	if v.closed {
		return false
	}
	nodes := v.sched.Simulation().Nodes()
	if node < 0 || node >= len(nodes) {
		return false
	}
	n := nodes[node]
	v.dragger.Start(node, n.X, n.Y)
	if v.met != nil {
		v.met.RecordDrag("start")
	}
	v.log.Debug("drag start", logging.NodeID(n.ID), logging.Alpha(v.sched.Alpha()))
	return true
}

// DragMove moves the active drag's pin to scene coordinates (x, y).
func (v *View) DragMove(x, y float64) {
	if v.closed {
		return
	}
	if _, dragging := v.dragger.Active(); !dragging {
		return
	}
	v.dragger.Move(x, y)
	if v.met != nil {
		v.met.RecordDrag("move")
	}
}

// DragEnd releases the active drag; the node resumes free movement and the
// temperature decays back toward zero.
func (v *View) DragEnd() {
	if v.closed {
		return
	}
	node, dragging := v.dragger.Active()
	if !dragging {
		return
	}
	v.dragger.End()
	if v.met != nil {
		v.met.RecordDrag("end")
	}
	if n, ok := v.nodeAtIndex(node); ok {
		v.log.Debug("drag end", logging.NodeID(n.ID))
	}
}

// Dragging reports the active drag, if any.
func (v *View) Dragging() (node int, active bool) { return v.dragger.Active() }

// ClickNode resolves a node primitive to its record and forwards it to the
// node sink.
func (v *View) ClickNode(node int) (interaction.NodeSelection, bool) {
	if v.closed {
		return interaction.NodeSelection{}, false
	}
	sel, ok := v.selector.SelectNode(node)
	if ok && v.met != nil {
		v.met.RecordSelection("node", true)
	}
	return sel, ok
}

// ClickLink resolves a link primitive, looks up the canonical pair in the
// context index, and forwards up to three snippets (or an explicit
// "no context" result) to the link sink.
func (v *View) ClickLink(link int) (interaction.LinkSelection, bool) {
	if v.closed {
		return interaction.LinkSelection{}, false
	}
	sel, ok := v.selector.SelectLink(link)
	if ok {
		if v.met != nil {
			v.met.RecordSelection("link", sel.Found)
		}
		v.log.Debug("link selected",
			logging.PairKey(graph.PairKey(sel.SourceID, sel.TargetID)),
			logging.Bool("found", sel.Found),
		)
	}
	return sel, ok
}

func (v *View) nodeAtIndex(i int) (*force.SimNode, bool) {
	nodes := v.sched.Simulation().Nodes()
	if i < 0 || i >= len(nodes) {
		return nil, false
	}
	return nodes[i], true
}
