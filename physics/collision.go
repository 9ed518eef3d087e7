// Package physics decides whether the runner hit something
// Checks are pure functions of the body and a read-only course view
package physics

import (
	"math"

	"github.com/lixenwraith/roadrunner/config"
	"github.com/lixenwraith/roadrunner/track"
	"github.com/lixenwraith/roadrunner/vmath"
)

// Mode selects the obstacle hit test
type Mode uint8

const (
	// ModeLane matches lane slots inside a forward tolerance band
	ModeLane Mode = iota
	// ModeContinuous overlaps the body's bounding box with the obstacle's
	ModeContinuous
)

// Kind classifies a check result
type Kind uint8

const (
	None Kind = iota
	ObstacleHit
	OutOfBounds
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case ObstacleHit:
		return "obstacle_hit"
	case OutOfBounds:
		return "out_of_bounds"
	}
	return "unknown"
}

// Body is the runner as seen by the detector
type Body struct {
	Lateral float64
	Forward float64
	Radius  float64
	Lane    track.Lane
	Tagged  bool
}

// Course is the read-only road view the detector needs
// *track.Track satisfies it
type Course interface {
	HalfWidthAt(forward float64) float64
	EachObstacle(from, to float64, fn func(ob track.Obstacle) bool)
}

// Result is the outcome of one check
// Obstacle is set only for ObstacleHit
type Result struct {
	Kind     Kind
	Obstacle track.Obstacle
}

// Hit reports any collision
func (r Result) Hit() bool { return r.Kind != None }

// Detector holds hit-test tolerances; it keeps no per-tick state
type Detector struct {
	Mode           Mode
	DepthTolerance float64
	Tolerance      float64
	ObstacleWidth  float64
	ObstacleDepth  float64
}

// NewDetector builds a detector from configuration
func NewDetector(col config.Collision, obs config.Obstacles) Detector {
	mode := ModeLane
	if col.Mode == config.CollisionContinuous {
		mode = ModeContinuous
	}
	return Detector{
		Mode:           mode,
		DepthTolerance: col.DepthTolerance,
		Tolerance:      col.Tolerance,
		ObstacleWidth:  obs.Width,
		ObstacleDepth:  obs.Depth,
	}
}

// Check tests the body against road edges then obstacles
// Obstacles at or behind the camera's near plane are not yet projectable and never collide
func (d Detector) Check(body Body, cameraForward float64, course Course) Result {
	if OffTrack(body, course) {
		return Result{Kind: OutOfBounds}
	}

	band := d.band(body)
	lateralReach := d.ObstacleWidth/2 + body.Radius + d.Tolerance

	var res Result
	course.EachObstacle(body.Forward-band, body.Forward+band, func(ob track.Obstacle) bool {
		if ob.Forward-cameraForward <= vmath.NearClip {
			return true
		}
		if math.Abs(ob.Forward-body.Forward) > band {
			return true
		}

		hit := false
		if d.Mode == ModeLane && ob.Tagged && body.Tagged {
			hit = ob.Lane == body.Lane
		} else {
			hit = math.Abs(ob.Lateral-body.Lateral) <= lateralReach
		}
		if hit {
			res = Result{Kind: ObstacleHit, Obstacle: ob}
			return false
		}
		return true
	})
	return res
}

// band returns the forward half-extent within which obstacles are tested
func (d Detector) band(body Body) float64 {
	if d.Mode == ModeContinuous {
		return d.ObstacleDepth/2 + body.Radius + d.Tolerance
	}
	return d.DepthTolerance
}

// OffTrack reports the body's edge past the road edge at its forward position
func OffTrack(body Body, course Course) bool {
	return math.Abs(body.Lateral) > course.HalfWidthAt(body.Forward)-body.Radius
}
