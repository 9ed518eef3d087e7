package engine

// Status is the run's position in the state graph
type Status uint8

const (
	StatusMenu Status = iota
	StatusPlaying
	StatusPaused
	StatusGameOver
)

// State names as they appear in the run graph TOML
var statusNames = [...]string{
	StatusMenu:     "MENU",
	StatusPlaying:  "PLAYING",
	StatusPaused:   "PAUSED",
	StatusGameOver: "GAME_OVER",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "UNKNOWN"
}

// Run graph events
const (
	EventStart   = "start"
	EventPause   = "pause"
	EventResume  = "resume"
	EventCollide = "collide"
	EventRestart = "restart"
	EventMenu    = "menu"
)

// RunState is the per-run scoreboard owned by Game
// Reset when a run starts from MENU or GAME_OVER; kept across pause
type RunState struct {
	Seed       uint64
	Tick       uint64
	Forward    float64
	Progress   int // Obstacles passed and scored
	Score      int
	Speed      float64
	Streak     int
	BestStreak int
	Status     Status
}

// Summary is what GAME_OVER reports about the finished run
type Summary struct {
	Score     int
	Best      int
	NewBest   bool
	Unlocked  []string // Presets unlocked by this run
	Crash     string   // Collision kind that ended the run
	SaveError error    // Non-nil when records failed to persist
}
