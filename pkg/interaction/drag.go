// Package interaction layers two independent pointer protocols on the scene
// primitives: a drag protocol that pins a node and keeps the simulation hot,
// and a selection protocol that resolves primitives back to their data
// records for external detail sinks.
package interaction

// PinController is the scheduler-mediated surface the drag protocol mutates
// through. The dragger never touches simulation state directly.
type PinController interface {
	// Pin forces a node's position until Unpin.
	Pin(node int, x, y float64)
	// Unpin releases the node back to simulated movement.
	Unpin(node int)
	// Reheat raises the resting temperature so the layout reacts live.
	Reheat()
	// Rest lets the temperature decay back to zero.
	Rest()
}

// DragState is the per-drag phase.
type DragState int

const (
	Idle DragState = iota
	Dragging
)

// Dragger runs the drag state machine: Idle -> Dragging -> Idle. At most one
// node is dragged at a time.
type Dragger struct {
	ctrl  PinController
	node  int
	state DragState
}

// NewDragger creates an idle dragger over the given controller.
func NewDragger(ctrl PinController) *Dragger {
	return &Dragger{ctrl: ctrl, node: -1}
}

// Start begins dragging a node, pinning it at its current position (x, y)
// and re-heating the scheduler. Starting while another drag is active ends
// that drag first.
func (d *Dragger) Start(node int, x, y float64) {
	if d.state == Dragging {
		d.End()
	}
	d.node = node
	d.state = Dragging
	d.ctrl.Pin(node, x, y)
	d.ctrl.Reheat()
}

// Move updates the pin to the pointer location. The simulation keeps running
// underneath, so the rest of the layout reacts live. No-op while idle.
func (d *Dragger) Move(x, y float64) {
	if d.state != Dragging {
		return
	}
	d.ctrl.Pin(d.node, x, y)
}

// End clears the pin and lets the temperature decay; the node resumes free
// movement under simulated forces. No-op while idle.
func (d *Dragger) End() {
	if d.state != Dragging {
		return
	}
	d.ctrl.Unpin(d.node)
	d.ctrl.Rest()
	d.node = -1
	d.state = Idle
}

// Active reports the node being dragged, if any.
func (d *Dragger) Active() (node int, dragging bool) {
	return d.node, d.state == Dragging
}
