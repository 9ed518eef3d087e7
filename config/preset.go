package config

import "fmt"

// Preset names
const (
	PresetClassic   = "classic"
	PresetThreeLane = "three_lane"
	PresetDrag      = "drag"
	PresetNarrow    = "narrow"
)

// Presets lists preset names in unlock order
var Presets = []string{PresetClassic, PresetThreeLane, PresetDrag, PresetNarrow}

// ApplyPreset mutates c toward the named variant
// Presets layer on the current values and only touch the fields they own
func (c *Config) ApplyPreset(name string) error {
	switch name {
	case PresetClassic:
		c.Obstacles.Lanes = 2
		c.Player.Control = ControlLane
		c.Collision.Mode = CollisionLane
		c.Track.NarrowEvery = 0
	case PresetThreeLane:
		c.Obstacles.Lanes = 3
		c.Player.Control = ControlLane
		c.Collision.Mode = CollisionLane
	case PresetDrag:
		c.Player.Control = ControlDrag
		c.Collision.Mode = CollisionContinuous
	case PresetNarrow:
		c.Player.Control = ControlDrag
		c.Collision.Mode = CollisionContinuous
		c.Track.NarrowEvery = 10
	default:
		return fmt.Errorf("unknown preset %q", name)
	}
	c.Preset = name
	return nil
}

// Threshold returns the best score required to unlock a preset
func (u Unlocks) Threshold(preset string) (int, bool) {
	switch preset {
	case PresetClassic:
		return 0, true
	case PresetThreeLane:
		return u.ThreeLane, true
	case PresetDrag:
		return u.Drag, true
	case PresetNarrow:
		return u.Narrow, true
	}
	return 0, false
}

// Unlocked reports whether best has reached the preset's threshold
func (u Unlocks) Unlocked(preset string, best int) bool {
	need, ok := u.Threshold(preset)
	return ok && best >= need
}

// Earned returns presets whose thresholds best has reached
func (u Unlocks) Earned(best int) []string {
	var out []string
	for _, p := range Presets {
		if u.Unlocked(p, best) {
			out = append(out, p)
		}
	}
	return out
}
