// Package config holds tunable parameters for a run
// Loaded from TOML with environment overrides on top of defaults
package config

// Control schemes for the player
const (
	ControlLane = "lane"
	ControlDrag = "drag"
)

// Collision modes
const (
	CollisionLane       = "lane"
	CollisionContinuous = "continuous"
)

// Config is the full run configuration
type Config struct {
	Preset    string    `toml:"preset"`
	Track     Track     `toml:"track"`
	Obstacles Obstacles `toml:"obstacles"`
	Player    Player    `toml:"player"`
	Drag      Drag      `toml:"drag"`
	Camera    Camera    `toml:"camera"`
	Speed     Speed     `toml:"speed"`
	Score     Score     `toml:"score"`
	Collision Collision `toml:"collision"`
	Loop      Loop      `toml:"loop"`
	Unlocks   Unlocks   `toml:"unlocks"`
}

// Track controls road geometry and curvature drift
type Track struct {
	Width             float64 `toml:"width"`
	MinWidth          float64 `toml:"min_width"`
	SegmentLength     float64 `toml:"segment_length"`
	DrawDistance      float64 `toml:"draw_distance"`
	RetireMargin      float64 `toml:"retire_margin"`
	CurveMax          float64 `toml:"curve_max"`
	CurveChangeChance float64 `toml:"curve_change_chance"`
	CurveSmoothing    float64 `toml:"curve_smoothing"`
	// NarrowEvery passed obstacles the road loses NarrowStep width, 0 disables
	NarrowEvery  int     `toml:"narrow_every"`
	NarrowStep   float64 `toml:"narrow_step"`
	StripeLength float64 `toml:"stripe_length"`
}

// Obstacles controls spawn cadence and obstacle shape
type Obstacles struct {
	MinLookahead   float64 `toml:"min_lookahead"`
	MaxLookahead   float64 `toml:"max_lookahead"`
	GapMin         float64 `toml:"gap_min"`
	GapMax         float64 `toml:"gap_max"`
	Width          float64 `toml:"width"`
	Depth          float64 `toml:"depth"`
	StartClearance float64 `toml:"start_clearance"`
	Lanes          int     `toml:"lanes"`
	LaneOffset     float64 `toml:"lane_offset"`
}

// Player controls the runner body and its movement strategy
type Player struct {
	Control     string  `toml:"control"`
	Radius      float64 `toml:"radius"`
	Smoothing   float64 `toml:"smoothing"`
	Centrifugal float64 `toml:"centrifugal"`
}

// Drag tunes the continuous pointer-driven controller
type Drag struct {
	Sensitivity float64 `toml:"sensitivity"`
	Response    float64 `toml:"response"`
	Friction    float64 `toml:"friction"`
	MaxVelocity float64 `toml:"max_velocity"`
}

// Camera places the pinhole camera relative to the player
// Depth is a focal factor multiplied by the viewport width at draw time
type Camera struct {
	Height         float64 `toml:"height"`
	Depth          float64 `toml:"depth"`
	PlayerDistance float64 `toml:"player_distance"`
}

// Speed drives the milestone speed curve, units per second
type Speed struct {
	Base              float64 `toml:"base"`
	InitialMultiplier float64 `toml:"initial_multiplier"`
	IncreaseRate      float64 `toml:"increase_rate"`
	IncreaseInterval  int     `toml:"increase_interval"`
	// Max <= 0 means uncapped
	Max float64 `toml:"max"`
}

// Score controls points and the combo streak bonus
type Score struct {
	BasePoints      int     `toml:"base_points"`
	ComboThreshold  int     `toml:"combo_threshold"`
	ComboMultiplier float64 `toml:"combo_multiplier"`
}

// Collision selects the hit test and its tolerances
type Collision struct {
	Mode           string  `toml:"mode"`
	DepthTolerance float64 `toml:"depth_tolerance"`
	Tolerance      float64 `toml:"tolerance"`
}

// Loop controls the fixed tick
type Loop struct {
	TickRate int `toml:"tick_rate"`
	// Seed 0 picks a seed from the clock at run start
	Seed uint64 `toml:"seed"`
}

// Unlocks are best-score thresholds gating presets
type Unlocks struct {
	ThreeLane int `toml:"three_lane"`
	Drag      int `toml:"drag"`
	Narrow    int `toml:"narrow"`
}

// Default returns the classic two-lane configuration
func Default() *Config {
	return &Config{
		Preset: PresetClassic,
		Track: Track{
			Width:             2.0,
			MinWidth:          1.6,
			SegmentLength:     2.0,
			DrawDistance:      120,
			RetireMargin:      6,
			CurveMax:          0.003,
			CurveChangeChance: 0.02,
			CurveSmoothing:    0.05,
			NarrowEvery:       0,
			NarrowStep:        0.1,
			StripeLength:      3,
		},
		Obstacles: Obstacles{
			MinLookahead:   60,
			MaxLookahead:   100,
			GapMin:         18,
			GapMax:         32,
			Width:          0.5,
			Depth:          1.0,
			StartClearance: 30,
			Lanes:          2,
			LaneOffset:     0.5,
		},
		Player: Player{
			Control:     ControlLane,
			Radius:      0.25,
			Smoothing:   0.2,
			Centrifugal: 0,
		},
		Drag: Drag{
			Sensitivity: 0.01,
			Response:    0.3,
			Friction:    0.85,
			MaxVelocity: 0.15,
		},
		Camera: Camera{
			Height:         0.4,
			Depth:          0.9,
			PlayerDistance: 3,
		},
		Speed: Speed{
			Base:              5,
			InitialMultiplier: 3,
			IncreaseRate:      0.2,
			IncreaseInterval:  10,
			Max:               40,
		},
		Score: Score{
			BasePoints:      1,
			ComboThreshold:  10,
			ComboMultiplier: 1.5,
		},
		Collision: Collision{
			Mode:           CollisionLane,
			DepthTolerance: 0.6,
			Tolerance:      0,
		},
		Loop: Loop{
			TickRate: 60,
		},
		Unlocks: Unlocks{
			ThreeLane: 20,
			Drag:      40,
			Narrow:    60,
		},
	}
}

// TickSeconds returns the fixed timestep
func (c *Config) TickSeconds() float64 {
	if c.Loop.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(c.Loop.TickRate)
}

// Clone returns a deep copy; Config holds no reference fields
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
