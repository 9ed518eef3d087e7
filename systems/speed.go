package systems

import (
	"math"

	"github.com/lixenwraith/roadrunner/config"
)

// SpeedController derives scroll speed from obstacles passed
// Progress, not wall time, drives the curve so pauses never add difficulty
type SpeedController struct {
	cfg       config.Speed
	speed     float64
	milestone int
}

// NewSpeedController creates a controller at the initial speed
func NewSpeedController(cfg config.Speed) *SpeedController {
	s := &SpeedController{cfg: cfg}
	s.Reset()
	return s
}

// SpeedAt evaluates base × (initial + rate × floor(progress / interval)) with the cap applied
func SpeedAt(cfg config.Speed, progress int) float64 {
	if progress < 0 {
		progress = 0
	}
	interval := max(cfg.IncreaseInterval, 1)
	steps := float64(progress / interval)
	speed := cfg.Base * (cfg.InitialMultiplier + cfg.IncreaseRate*steps)
	if cfg.Max > 0 {
		speed = math.Min(speed, cfg.Max)
	}
	return speed
}

// Update recomputes speed for progress
// The result never drops below the previous one within a run
func (s *SpeedController) Update(progress int) (speed float64, changed bool) {
	next := SpeedAt(s.cfg, progress)
	if next <= s.speed {
		return s.speed, false
	}
	s.speed = next
	s.milestone = max(progress, 0) / max(s.cfg.IncreaseInterval, 1)
	return s.speed, true
}

// Reset returns to the initial speed for a new run
func (s *SpeedController) Reset() {
	s.speed = SpeedAt(s.cfg, 0)
	s.milestone = 0
}

// Speed returns the current speed
func (s *SpeedController) Speed() float64 { return s.speed }

// Milestone returns how many increase intervals the current speed reflects
func (s *SpeedController) Milestone() int { return s.milestone }

// Capped reports whether the speed sits at the configured maximum
func (s *SpeedController) Capped() bool {
	return s.cfg.Max > 0 && s.speed >= s.cfg.Max
}
