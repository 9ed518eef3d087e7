package systems

import (
	"math"

	"github.com/lixenwraith/roadrunner/config"
)

// ScoreController awards points per pass with a combo streak bonus
type ScoreController struct {
	cfg config.Score

	score      int
	streak     int
	bestStreak int
	// remainder carries fractional combo points so the long-run rate is exact
	remainder float64
}

// NewScoreController creates a zeroed controller
func NewScoreController(cfg config.Score) *ScoreController {
	return &ScoreController{cfg: cfg}
}

// AddPass credits one passed obstacle and returns the points awarded and the new streak
func (s *ScoreController) AddPass() (points int, streak int) {
	s.streak++
	s.bestStreak = max(s.bestStreak, s.streak)

	if s.Combo() {
		exact := float64(s.cfg.BasePoints)*s.cfg.ComboMultiplier + s.remainder
		whole := math.Floor(exact)
		s.remainder = exact - whole
		points = int(whole)
	} else {
		points = s.cfg.BasePoints
	}

	s.score += points
	return points, s.streak
}

// Break resets the streak without touching the score
func (s *ScoreController) Break() {
	s.streak = 0
	s.remainder = 0
}

// Miss is a streak break caused by an avoidable event
func (s *ScoreController) Miss() { s.Break() }

// Combo reports whether the current streak earns the multiplier
func (s *ScoreController) Combo() bool {
	return s.cfg.ComboThreshold > 0 && s.streak >= s.cfg.ComboThreshold
}

// Reset zeroes everything for a new run
func (s *ScoreController) Reset() {
	*s = ScoreController{cfg: s.cfg}
}

func (s *ScoreController) Score() int      { return s.score }
func (s *ScoreController) Streak() int     { return s.streak }
func (s *ScoreController) BestStreak() int { return s.bestStreak }
