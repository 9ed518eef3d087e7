package engine

import (
	"math"

	"github.com/lixenwraith/roadrunner/config"
	"github.com/lixenwraith/roadrunner/input"
	"github.com/lixenwraith/roadrunner/player"
	"github.com/lixenwraith/roadrunner/track"
)

// dragReach is how many lane offsets either side of the drag target the pilot considers
const dragReach = 2

// Autopilot steers toward the lateral position with the longest clear road ahead
// Used by the headless simulator and the MENU attract road
type Autopilot struct {
	Lookahead float64 // Forward window scanned for obstacles
	Margin    float64 // Extra lateral clearance on top of the hit reach
}

// NewAutopilot sizes the scan window from the spawn lookahead
func NewAutopilot(cfg *config.Config) *Autopilot {
	return &Autopilot{
		Lookahead: cfg.Obstacles.MinLookahead / 2,
		Margin:    cfg.Player.Radius / 2,
	}
}

// candidate is a reachable lateral target and the steps needed to get there
type candidate struct {
	lateral float64
	steps   int // Negative is left
}

// Decide returns one step toward the safest candidate, or ActionNone when the current line is clear
func (a *Autopilot) Decide(trk *track.Track, p *player.Player) input.Action {
	cands := a.candidates(trk, p)
	if len(cands) == 0 {
		return input.ActionNone
	}

	obWidth, obDepth := trk.ObstacleSize()
	reach := obWidth/2 + p.Radius() + a.Margin
	forward := p.Position().Forward

	clearance := func(lateral float64) float64 {
		dist := a.Lookahead
		trk.EachObstacle(forward-obDepth, forward+a.Lookahead, func(ob track.Obstacle) bool {
			if math.Abs(ob.Lateral-lateral) <= reach {
				dist = math.Max(ob.Forward-forward, 0)
				return false
			}
			return true
		})
		return dist
	}

	var current candidate
	for _, c := range cands {
		if c.steps == 0 {
			current = c
		}
	}
	here := clearance(current.lateral)
	if here >= a.Lookahead {
		return input.ActionNone
	}

	best, bestClear := current, here
	for _, c := range cands {
		d := clearance(c.lateral)
		if d > bestClear || (d == bestClear && abs(c.steps) < abs(best.steps)) {
			best, bestClear = c, d
		}
	}

	switch {
	case best.steps < 0:
		return input.ActionLeft
	case best.steps > 0:
		return input.ActionRight
	}
	return input.ActionNone
}

// candidates lists targets one Shift sequence away, including the current one
func (a *Autopilot) candidates(trk *track.Track, p *player.Player) []candidate {
	switch ctrl := p.Controller().(type) {
	case *player.LaneSnap:
		lane, _ := ctrl.Lane()
		lanes := trk.Lanes()
		at := 0
		for i, l := range lanes {
			if l == lane {
				at = i
			}
		}
		out := make([]candidate, 0, len(lanes))
		for i, l := range lanes {
			out = append(out, candidate{lateral: float64(l) * trk.LaneOffset(), steps: i - at})
		}
		return out

	case *player.Drag:
		bounds := p.Bounds()
		target := ctrl.Target()
		out := make([]candidate, 0, 2*dragReach+1)
		for k := -dragReach; k <= dragReach; k++ {
			lat := target + float64(k)*trk.LaneOffset()
			if k != 0 && (lat < bounds.Min || lat > bounds.Max) {
				continue
			}
			out = append(out, candidate{lateral: bounds.Clamp(lat), steps: k})
		}
		return out
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
