package engine

import (
	"github.com/lixenwraith/roadrunner/config"
	"github.com/lixenwraith/roadrunner/input"
	"github.com/lixenwraith/roadrunner/player"
	"github.com/lixenwraith/roadrunner/systems"
	"github.com/lixenwraith/roadrunner/track"
	"github.com/lixenwraith/roadrunner/vmath"
)

// attractSeed fixes the MENU background road so it looks the same every visit
const attractSeed = 0x5eed

// attractPace slows the demo below a real run's opening speed
const attractPace = 0.6

// attract is the MENU background: a demo road steered by the autopilot
// Decorative only; it never touches RunState
type attract struct {
	track   *track.Track
	player  *player.Player
	pilot   *Autopilot
	forward float64
	speed   float64
}

func newAttract(cfg *config.Config) *attract {
	rng := vmath.NewFastRand(attractSeed)
	return &attract{
		track:  track.New(cfg.Track, cfg.Obstacles, cfg.Collision.Mode == config.CollisionContinuous, rng),
		player: player.New(cfg),
		pilot:  NewAutopilot(cfg),
		speed:  systems.SpeedAt(cfg.Speed, 0) * attractPace,
	}
}

func (a *attract) step(dt float64) {
	a.forward += a.speed * dt
	switch a.pilot.Decide(a.track, a.player) {
	case input.ActionLeft:
		a.player.Shift(-1)
	case input.ActionRight:
		a.player.Shift(1)
	}
	a.player.Update(dt, a.forward, 0)
	a.track.Update(a.forward)
}
