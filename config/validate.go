package config

import (
	"errors"
	"fmt"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks ranges and cross-field constraints
func (c *Config) Validate() error {
	t := c.Track
	if t.Width <= 0 || t.MinWidth <= 0 || t.MinWidth > t.Width {
		return invalid("track width %.2f / min_width %.2f", t.Width, t.MinWidth)
	}
	if t.SegmentLength <= 0 || t.DrawDistance <= t.SegmentLength {
		return invalid("segment_length %.2f must be positive and below draw_distance %.2f", t.SegmentLength, t.DrawDistance)
	}
	if t.RetireMargin < 0 {
		return invalid("retire_margin must be non-negative")
	}
	if t.CurveChangeChance < 0 || t.CurveChangeChance > 1 {
		return invalid("curve_change_chance %.3f outside [0,1]", t.CurveChangeChance)
	}
	if t.CurveSmoothing <= 0 || t.CurveSmoothing > 1 {
		return invalid("curve_smoothing %.3f outside (0,1]", t.CurveSmoothing)
	}
	if t.NarrowEvery < 0 || t.NarrowStep < 0 {
		return invalid("narrow_every and narrow_step must be non-negative")
	}

	o := c.Obstacles
	if o.Lanes != 2 && o.Lanes != 3 {
		return invalid("lanes must be 2 or 3, got %d", o.Lanes)
	}
	if o.GapMin <= 0 || o.GapMax < o.GapMin {
		return invalid("gap band [%.2f, %.2f]", o.GapMin, o.GapMax)
	}
	if o.MinLookahead <= 0 || o.MaxLookahead < o.MinLookahead {
		return invalid("lookahead band [%.2f, %.2f]", o.MinLookahead, o.MaxLookahead)
	}
	// Spawning at last+gap from below MinLookahead must land inside MaxLookahead
	if o.GapMax > o.MaxLookahead-o.MinLookahead {
		return invalid("gap_max %.2f exceeds lookahead band width %.2f", o.GapMax, o.MaxLookahead-o.MinLookahead)
	}
	if o.Width <= 0 || o.Depth <= 0 {
		return invalid("obstacle width and depth must be positive")
	}
	if o.StartClearance <= 0 {
		return invalid("start_clearance must be positive")
	}

	p := c.Player
	if p.Control != ControlLane && p.Control != ControlDrag {
		return invalid("unknown control %q", p.Control)
	}
	if p.Radius < 0 || p.Radius >= t.MinWidth/2 {
		return invalid("radius %.2f must fit inside min_width %.2f", p.Radius, t.MinWidth)
	}
	if p.Smoothing <= 0 || p.Smoothing > 1 {
		return invalid("smoothing %.3f outside (0,1]", p.Smoothing)
	}
	// The narrowest road must still leave room to dodge a centered obstacle
	if t.MinWidth/2 <= o.Width/2+2*p.Radius+c.Collision.Tolerance {
		return invalid("min_width %.2f leaves no room to dodge", t.MinWidth)
	}
	if o.LaneOffset < 0 || o.LaneOffset > t.Width/2-p.Radius {
		return invalid("lane_offset %.2f places the player off-track", o.LaneOffset)
	}

	d := c.Drag
	if d.Friction < 0 || d.Friction >= 1 {
		return invalid("friction %.3f outside [0,1)", d.Friction)
	}
	if d.Response <= 0 || d.MaxVelocity <= 0 {
		return invalid("drag response and max_velocity must be positive")
	}

	if c.Camera.Depth <= 0 || c.Camera.PlayerDistance <= 0 {
		return invalid("camera depth and player_distance must be positive")
	}

	s := c.Speed
	if s.Base <= 0 || s.InitialMultiplier <= 0 || s.IncreaseRate < 0 || s.IncreaseInterval <= 0 {
		return invalid("speed curve parameters")
	}

	if c.Score.ComboThreshold < 0 || c.Score.ComboMultiplier < 1 || c.Score.BasePoints <= 0 {
		return invalid("score parameters")
	}

	col := c.Collision
	if col.Mode != CollisionLane && col.Mode != CollisionContinuous {
		return invalid("unknown collision mode %q", col.Mode)
	}
	if col.DepthTolerance <= 0 || col.Tolerance < 0 {
		return invalid("collision tolerances")
	}

	if c.Loop.TickRate <= 0 {
		return invalid("tick_rate must be positive")
	}
	// An obstacle must not tunnel through the hit band in a single tick
	if s.Max > 0 {
		if step := s.Max * c.TickSeconds(); 2*col.DepthTolerance < step {
			return invalid("depth_tolerance %.3f too small for max step %.3f", col.DepthTolerance, step)
		}
	}

	return nil
}
