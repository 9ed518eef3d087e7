package engine

// Snapshot is a comparable digest of a run at a tick
// Two runs with the same seed, config and inputs produce equal snapshots
type Snapshot struct {
	Tick     uint64  `msgpack:"tick"`
	Forward  float64 `msgpack:"forward"`
	Progress int     `msgpack:"progress"`
	Score    int     `msgpack:"score"`
	Speed    float64 `msgpack:"speed"`
	Status   Status  `msgpack:"status"`
	Lateral  float64 `msgpack:"lateral"`
}

// Snapshot captures the current run
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:     g.run.Tick,
		Forward:  g.run.Forward,
		Progress: g.run.Progress,
		Score:    g.run.Score,
		Speed:    g.run.Speed,
		Status:   g.run.Status,
		Lateral:  g.player.Lateral(),
	}
}
