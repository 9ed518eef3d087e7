// Package player owns the runner's lateral position
// Movement strategies plug in behind MovementController
package player

import (
	"github.com/lixenwraith/roadrunner/config"
	"github.com/lixenwraith/roadrunner/track"
	"github.com/lixenwraith/roadrunner/vmath"
)

// Player wraps a controller with the body's size and road bounds
type Player struct {
	ctrl        MovementController
	radius      float64
	centrifugal float64
	bounds      Bounds
	forward     float64
}

// New builds a player with the controller selected by cfg.Player.Control
func New(cfg *config.Config) *Player {
	bounds := BoundsFor(cfg.Track.Width, cfg.Player.Radius)

	var ctrl MovementController
	if cfg.Player.Control == config.ControlDrag {
		ctrl = NewDrag(cfg.Drag, cfg.Obstacles.LaneOffset, bounds)
	} else {
		ctrl = NewLaneSnap(track.LaneSet(cfg.Obstacles.Lanes), cfg.Obstacles.LaneOffset, cfg.Player.Smoothing, bounds)
	}
	return NewWithController(ctrl, cfg.Player.Radius, cfg.Track.Width, cfg.Player.Centrifugal)
}

// NewWithController wraps an explicit controller
func NewWithController(ctrl MovementController, radius, trackWidth, centrifugal float64) *Player {
	return &Player{
		ctrl:        ctrl,
		radius:      radius,
		centrifugal: centrifugal,
		bounds:      BoundsFor(trackWidth, radius),
	}
}

// Update steps the controller and returns the body position
// drift is curvature times speed; the body is pushed outward by Centrifugal × drift
func (p *Player) Update(dt, forward, drift float64) vmath.WorldPoint {
	p.forward = forward
	if p.centrifugal != 0 && drift != 0 {
		p.ctrl.Nudge(-p.centrifugal * drift * dt)
	}
	p.ctrl.Update(dt, p.bounds)
	return p.Position()
}

// Position returns the body center on the ground plane
func (p *Player) Position() vmath.WorldPoint {
	return vmath.WorldPoint{Lateral: p.ctrl.Lateral(), Height: p.radius, Forward: p.forward}
}

// Reset recenters the controller at forward
func (p *Player) Reset(forward float64) {
	p.ctrl.Reset()
	p.forward = forward
}

// --- Input pass-through ---

func (p *Player) Switch()                { p.ctrl.Switch() }
func (p *Player) Shift(dir int)          { p.ctrl.Shift(dir) }
func (p *Player) OnInputStart(x float64) { p.ctrl.OnInputStart(x) }
func (p *Player) OnInputMove(x float64)  { p.ctrl.OnInputMove(x) }
func (p *Player) OnInputEnd()            { p.ctrl.OnInputEnd() }

// --- Accessors ---

func (p *Player) Lateral() float64               { return p.ctrl.Lateral() }
func (p *Player) Lane() (Lane, bool)             { return p.ctrl.Lane() }
func (p *Player) Radius() float64                { return p.radius }
func (p *Player) Bounds() Bounds                 { return p.bounds }
func (p *Player) Controller() MovementController { return p.ctrl }
