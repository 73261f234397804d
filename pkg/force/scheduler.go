package force

import "math"

// State is the scheduler's lifecycle phase.
type State int

const (
	// Cold: constructed, no step taken yet.
	Cold State = iota
	// Warming: actively stepping with a positive resting temperature
	// (a drag is holding the simulation hot).
	Warming
	// Cooling: actively stepping, alpha decaying toward zero.
	Cooling
	// Stopped: alpha fell below the minimum with no resting temperature;
	// idle until re-heated.
	Stopped
)

func (s State) String() string {
	switch s {
	case Cold:
		return "cold"
	case Warming:
		return "warming"
	case Cooling:
		return "cooling"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// DragAlphaTarget is the resting temperature while a drag is active.
const DragAlphaTarget = 0.3

// Scheduler drives repeated solver steps with a decaying alpha. It is the
// single owner of the simulation state: ticks, drags, and projection are all
// serialized through it by the host loop, so it carries no locks.
type Scheduler struct {
	sim *Simulation

	alpha       float64
	alphaMin    float64
	alphaDecay  float64
	alphaTarget float64
	stopped     bool
	ticks       int64

	onTick []func()
}

// NewScheduler wraps a simulation with a fresh alpha schedule: alpha 1,
// target 0, decay sized so alpha reaches the minimum in about 300 steps.
func NewScheduler(sim *Simulation) *Scheduler {
	const alphaMin = 0.001
	return &Scheduler{
		sim:        sim,
		alpha:      1,
		alphaMin:   alphaMin,
		alphaDecay: 1 - math.Pow(alphaMin, 1.0/300),
	}
}

// OnTick registers a callback invoked after every completed step, in
// registration order. The scene binder's re-projection hangs off this.
func (sc *Scheduler) OnTick(fn func()) {
	sc.onTick = append(sc.onTick, fn)
}

// Step advances the schedule by one tick: decay alpha toward the target,
// stop if it fell through the floor, otherwise run the solver once and
// notify listeners. Returns whether a step was taken.
func (sc *Scheduler) Step() bool {
	if sc.stopped {
		return false
	}

	sc.alpha += (sc.alphaTarget - sc.alpha) * sc.alphaDecay
	if sc.alpha > 1 {
		sc.alpha = 1
	}
	if sc.alpha < sc.alphaMin {
		if sc.alphaTarget == 0 {
			sc.alpha = 0
			sc.stopped = true
			return false
		}
		sc.alpha = sc.alphaMin
	}

	sc.sim.Step(sc.alpha)
	sc.ticks++
	for _, fn := range sc.onTick {
		fn()
	}
	return true
}

// Reheat sets a positive resting temperature and restarts stepping if the
// scheduler had stopped. Drag-start calls this with DragAlphaTarget.
func (sc *Scheduler) Reheat(target float64) {
	if target <= 0 {
		target = DragAlphaTarget
	}
	if target > 1 {
		target = 1
	}
	sc.alphaTarget = target
	if sc.stopped || sc.alpha < sc.alphaMin {
		sc.stopped = false
		if sc.alpha < sc.alphaMin {
			sc.alpha = sc.alphaMin
		}
	}
}

// Restart sets alpha and resumes stepping, with the resting temperature
// unchanged. Used to kick a cooled layout back to life without a drag.
func (sc *Scheduler) Restart(alpha float64) {
	if alpha < sc.alphaMin {
		alpha = sc.alphaMin
	}
	if alpha > 1 {
		alpha = 1
	}
	sc.alpha = alpha
	sc.stopped = false
}

// Rest clears the resting temperature; alpha resumes decaying toward zero
// and the scheduler will reach Stopped on its own.
func (sc *Scheduler) Rest() {
	sc.alphaTarget = 0
}

// Stop halts the scheduler immediately. Used at teardown so a discarded
// scene can never tick again.
func (sc *Scheduler) Stop() {
	sc.stopped = true
	sc.alphaTarget = 0
}

// Alpha returns the current temperature.
func (sc *Scheduler) Alpha() float64 { return sc.alpha }

// AlphaTarget returns the resting temperature.
func (sc *Scheduler) AlphaTarget() float64 { return sc.alphaTarget }

// Ticks returns the number of completed steps.
func (sc *Scheduler) Ticks() int64 { return sc.ticks }

// Simulation exposes the owned state for scheduler-mediated access.
func (sc *Scheduler) Simulation() *Simulation { return sc.sim }

// State derives the lifecycle phase from alpha, the resting temperature,
// and the tick count; nothing tracks it separately. A positive resting
// temperature means Warming, active decay toward zero is Cooling, and a
// fresh scheduler reads Cold until its first step even though alpha already
// sits at 1.
func (sc *Scheduler) State() State {
	switch {
	case sc.stopped:
		return Stopped
	case sc.alphaTarget > 0:
		return Warming
	case sc.ticks == 0:
		return Cold
	default:
		return Cooling
	}
}
