package player

import (
	"math"

	"github.com/lixenwraith/roadrunner/config"
	"github.com/lixenwraith/roadrunner/track"
	"github.com/lixenwraith/roadrunner/vmath"
)

// Lane aliases the road's lane slots
type Lane = track.Lane

const (
	LaneLeft   = track.LaneLeft
	LaneCenter = track.LaneCenter
	LaneRight  = track.LaneRight
)

// referenceRate is the tick rate the per-tick factors are tuned for
const referenceRate = 60.0

// settleEpsilon snaps lateral onto its target once this close
const settleEpsilon = 1e-6

// Bounds is the allowed lateral range of the body center
type Bounds struct {
	Min, Max float64
}

// BoundsFor returns the clamp range for a road width and body radius
func BoundsFor(trackWidth, radius float64) Bounds {
	hw := trackWidth/2 - radius
	return Bounds{Min: -hw, Max: hw}
}

// Clamp limits v to the bounds
func (b Bounds) Clamp(v float64) float64 {
	return vmath.Clamp(v, b.Min, b.Max)
}

// MovementController turns input into lateral position
// Out-of-range targets are clamped, never rejected
type MovementController interface {
	OnInputStart(x float64)
	OnInputMove(x float64)
	OnInputEnd()
	Switch()
	Shift(dir int)
	// Nudge displaces the body without changing its target
	Nudge(delta float64)
	Update(dt float64, bounds Bounds) float64
	Lateral() float64
	// Lane returns the occupied lane and whether the controller is lane-tagged
	Lane() (Lane, bool)
	Reset()
}

// tickFactor converts a per-tick approach factor to dt
// Equal to factor at the reference rate
func tickFactor(factor, dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	return 1 - math.Pow(1-factor, dt*referenceRate)
}

// ===== LANE SNAP =====

// LaneSnap moves between discrete lanes with an exponential approach
type LaneSnap struct {
	lanes     []Lane
	offset    float64
	smoothing float64
	start     int

	index   int
	lateral float64
	bounds  Bounds
}

// NewLaneSnap creates a lane controller over the lane set
// Two-lane roads start LEFT, three-lane roads start CENTER
func NewLaneSnap(lanes []Lane, offset, smoothing float64, bounds Bounds) *LaneSnap {
	ls := &LaneSnap{
		lanes:     lanes,
		offset:    offset,
		smoothing: smoothing,
		bounds:    bounds,
	}
	for i, l := range lanes {
		if l == LaneCenter {
			ls.start = i
		}
	}
	ls.Reset()
	return ls
}

func (ls *LaneSnap) target() float64 {
	return ls.bounds.Clamp(float64(ls.lanes[ls.index]) * ls.offset)
}

// Switch flips between two lanes or cycles through three
func (ls *LaneSnap) Switch() {
	ls.index = (ls.index + 1) % len(ls.lanes)
}

// Shift steps one lane toward dir, stopping at the edges
func (ls *LaneSnap) Shift(dir int) {
	switch {
	case dir < 0 && ls.index > 0:
		ls.index--
	case dir > 0 && ls.index < len(ls.lanes)-1:
		ls.index++
	}
}

// OnInputStart treats a pointer press as a tap-to-switch
func (ls *LaneSnap) OnInputStart(float64) { ls.Switch() }
func (ls *LaneSnap) OnInputMove(float64)  {}
func (ls *LaneSnap) OnInputEnd()          {}

func (ls *LaneSnap) Nudge(delta float64) {
	ls.lateral = ls.bounds.Clamp(ls.lateral + delta)
}

func (ls *LaneSnap) Update(dt float64, bounds Bounds) float64 {
	ls.bounds = bounds
	target := ls.target()
	ls.lateral = vmath.Approach(ls.lateral, target, tickFactor(ls.smoothing, dt))
	ls.lateral = bounds.Clamp(vmath.Settle(ls.lateral, target, settleEpsilon))
	return ls.lateral
}

func (ls *LaneSnap) Lateral() float64 { return ls.lateral }

func (ls *LaneSnap) Lane() (Lane, bool) { return ls.lanes[ls.index], true }

// Reset returns to the start lane, snapped onto it
func (ls *LaneSnap) Reset() {
	ls.index = ls.start
	ls.lateral = ls.target()
}

// ===== DRAG =====

// Drag follows a pointer with a damped, speed-limited velocity
type Drag struct {
	cfg        config.Drag
	laneOffset float64

	lateral  float64
	target   float64
	velocity float64

	dragging     bool
	originX      float64
	startLateral float64
	bounds       Bounds
}

// NewDrag creates a continuous controller centered on the road
// laneOffset sizes keyboard nudges
func NewDrag(cfg config.Drag, laneOffset float64, bounds Bounds) *Drag {
	return &Drag{cfg: cfg, laneOffset: laneOffset, bounds: bounds}
}

// OnInputStart anchors the drag at pointer x and the current position
func (d *Drag) OnInputStart(x float64) {
	d.dragging = true
	d.originX = x
	d.startLateral = d.lateral
}

// OnInputMove sets the target from the pointer delta since the anchor
func (d *Drag) OnInputMove(x float64) {
	if !d.dragging {
		return
	}
	d.target = d.bounds.Clamp(d.startLateral + (x-d.originX)*d.cfg.Sensitivity)
}

// OnInputEnd releases the drag; the body keeps coasting to the last target
func (d *Drag) OnInputEnd() {
	d.dragging = false
}

// Switch mirrors the target across the centerline
func (d *Drag) Switch() {
	if d.target == 0 {
		d.target = d.bounds.Clamp(-d.laneOffset)
		return
	}
	d.target = d.bounds.Clamp(-d.target)
}

// Shift moves the target one lane offset toward dir
func (d *Drag) Shift(dir int) {
	if dir == 0 {
		return
	}
	step := d.laneOffset
	if dir < 0 {
		step = -step
	}
	d.target = d.bounds.Clamp(d.target + step)
}

func (d *Drag) Nudge(delta float64) {
	d.lateral = d.bounds.Clamp(d.lateral + delta)
}

func (d *Drag) Update(dt float64, bounds Bounds) float64 {
	d.bounds = bounds
	d.target = bounds.Clamp(d.target)

	k := dt * referenceRate
	d.velocity = vmath.ClampAbs((d.target-d.lateral)*d.cfg.Response, d.cfg.MaxVelocity)
	d.velocity *= d.cfg.Friction
	d.lateral = bounds.Clamp(d.lateral + d.velocity*k)
	if math.Abs(d.target-d.lateral) <= settleEpsilon {
		d.lateral = d.target
		d.velocity = 0
	}
	return d.lateral
}

func (d *Drag) Lateral() float64 { return d.lateral }

// Velocity returns the last applied velocity per reference tick
func (d *Drag) Velocity() float64 { return d.velocity }

// Target returns the current lateral target
func (d *Drag) Target() float64 { return d.target }

// Lane returns the nearest lane slot; drag bodies are never lane-tagged
func (d *Drag) Lane() (Lane, bool) {
	switch {
	case d.laneOffset <= 0:
		return LaneCenter, false
	case d.lateral <= -d.laneOffset/2:
		return LaneLeft, false
	case d.lateral >= d.laneOffset/2:
		return LaneRight, false
	}
	return LaneCenter, false
}

func (d *Drag) Reset() {
	d.lateral, d.target, d.velocity = 0, 0, 0
	d.dragging = false
}
