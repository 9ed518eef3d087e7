// Package track generates the road ahead of the player
// Segments and obstacles are owned here; callers get copies
package track

import (
	"math"
	"sort"

	"github.com/lixenwraith/roadrunner/config"
	"github.com/lixenwraith/roadrunner/vmath"
)

// Lane is a discrete lateral slot, scaled by the lane offset to get world lateral
type Lane int8

const (
	LaneLeft   Lane = -1
	LaneCenter Lane = 0
	LaneRight  Lane = 1
)

func (l Lane) String() string {
	switch l {
	case LaneLeft:
		return "LEFT"
	case LaneCenter:
		return "CENTER"
	case LaneRight:
		return "RIGHT"
	}
	return "UNKNOWN"
}

// LaneSet returns the ordered lanes for a lane count, left to right
func LaneSet(lanes int) []Lane {
	if lanes == 3 {
		return []Lane{LaneLeft, LaneCenter, LaneRight}
	}
	return []Lane{LaneLeft, LaneRight}
}

// Segment is one slice of road
type Segment struct {
	Forward float64
	Curve   float64
	Width   float64
}

// Obstacle is a box on the road
// Tagged obstacles occupy Lane; untagged ones are positioned by Lateral only
type Obstacle struct {
	ID      uint64
	Forward float64
	Lateral float64
	Lane    Lane
	Tagged  bool
	Passed  bool
}

// UpdateResult reports scoring events of a single Update
type UpdateResult struct {
	ScoreDelta int
	Passed     []Obstacle
}

// Track is the procedural road: curvature drift, segments, obstacles
type Track struct {
	cfg        config.Track
	obs        config.Obstacles
	continuous bool
	rng        *vmath.FastRand
	lanes      []Lane

	segments  []Segment
	obstacles []Obstacle

	curve       float64
	targetCurve float64
	width       float64

	nextID      uint64
	lastSpawn   float64
	passedTotal int
}

// New creates a track positioned at forward 0
// continuous selects free lateral placement instead of lane slots
func New(trk config.Track, obs config.Obstacles, continuous bool, rng *vmath.FastRand) *Track {
	t := &Track{
		cfg:        trk,
		obs:        obs,
		continuous: continuous,
		rng:        rng,
		lanes:      LaneSet(obs.Lanes),
	}
	t.Reset(0)
	return t
}

// Reset clears the road and regenerates it around playerForward
func (t *Track) Reset(playerForward float64) {
	t.segments = t.segments[:0]
	t.obstacles = t.obstacles[:0]
	t.curve = 0
	t.targetCurve = 0
	t.width = t.cfg.Width
	t.nextID = 0
	t.passedTotal = 0

	// Segments start on a SegmentLength grid behind the retire line
	start := math.Floor((playerForward-t.cfg.RetireMargin)/t.cfg.SegmentLength) * t.cfg.SegmentLength
	if start < playerForward-t.cfg.RetireMargin {
		start += t.cfg.SegmentLength
	}
	t.segments = append(t.segments, Segment{Forward: start, Width: t.width})
	t.extend(playerForward)

	t.spawnAt(playerForward + t.obs.StartClearance)
	t.fill(playerForward)
}

// Update advances the road to playerForward
// Order: curvature drift, generation, spawn, pass detection, retirement
func (t *Track) Update(playerForward float64) UpdateResult {
	t.drift()
	t.narrow()
	t.extend(playerForward)
	t.fill(playerForward)

	var res UpdateResult
	for i := range t.obstacles {
		ob := &t.obstacles[i]
		if ob.Passed || ob.Forward >= playerForward {
			continue
		}
		ob.Passed = true
		t.passedTotal++
		res.Passed = append(res.Passed, *ob)
	}
	res.ScoreDelta = len(res.Passed)

	t.retire(playerForward)
	return res
}

func (t *Track) drift() {
	if t.rng.Chance(t.cfg.CurveChangeChance) {
		t.targetCurve = t.rng.Range(-t.cfg.CurveMax, t.cfg.CurveMax)
	}
	t.curve = vmath.Approach(t.curve, t.targetCurve, t.cfg.CurveSmoothing)
}

func (t *Track) narrow() {
	if t.cfg.NarrowEvery <= 0 {
		return
	}
	steps := t.passedTotal / t.cfg.NarrowEvery
	t.width = math.Max(t.cfg.MinWidth, t.cfg.Width-float64(steps)*t.cfg.NarrowStep)
}

// extend appends segments until the draw distance is covered
func (t *Track) extend(playerForward float64) {
	limit := playerForward + t.cfg.DrawDistance
	for {
		last := t.segments[len(t.segments)-1]
		if last.Forward >= limit {
			return
		}
		t.segments = append(t.segments, Segment{
			Forward: last.Forward + t.cfg.SegmentLength,
			Curve:   t.curve,
			Width:   t.width,
		})
	}
}

// fill spawns until the furthest obstacle reaches MinLookahead
func (t *Track) fill(playerForward float64) {
	for t.lastSpawn < playerForward+t.obs.MinLookahead {
		gap := t.rng.Range(t.obs.GapMin, t.obs.GapMax)
		t.spawnAt(t.lastSpawn + gap)
	}
}

func (t *Track) spawnAt(forward float64) {
	if t.continuous {
		hw := t.width/2 - t.obs.Width/2
		t.appendObstacle(Obstacle{Forward: forward, Lateral: t.rng.Range(-hw, hw)})
	} else {
		lane := t.lanes[t.rng.Intn(len(t.lanes))]
		t.appendObstacle(Obstacle{Forward: forward, Lateral: float64(lane) * t.obs.LaneOffset, Lane: lane, Tagged: true})
	}
	t.lastSpawn = forward
}

func (t *Track) appendObstacle(ob Obstacle) Obstacle {
	t.nextID++
	ob.ID = t.nextID
	i := sort.Search(len(t.obstacles), func(i int) bool { return t.obstacles[i].Forward > ob.Forward })
	t.obstacles = append(t.obstacles, Obstacle{})
	copy(t.obstacles[i+1:], t.obstacles[i:])
	t.obstacles[i] = ob
	return ob
}

func (t *Track) retire(playerForward float64) {
	cut := playerForward - t.cfg.RetireMargin

	n := 0
	for _, s := range t.segments {
		if s.Forward >= cut {
			t.segments[n] = s
			n++
		}
	}
	t.segments = t.segments[:n]

	n = 0
	for _, ob := range t.obstacles {
		if ob.Forward >= cut {
			t.obstacles[n] = ob
			n++
		}
	}
	t.obstacles = t.obstacles[:n]

	// Keep a seed segment so extend always has a predecessor
	if len(t.segments) == 0 {
		start := math.Ceil(cut/t.cfg.SegmentLength) * t.cfg.SegmentLength
		t.segments = append(t.segments, Segment{Forward: start, Curve: t.curve, Width: t.width})
		t.extend(playerForward)
	}
}

// PlaceLane inserts a lane-tagged obstacle at forward
// Used for scripted layouts; does not move the spawn cursor
func (t *Track) PlaceLane(forward float64, lane Lane) Obstacle {
	return t.appendObstacle(Obstacle{Forward: forward, Lateral: float64(lane) * t.obs.LaneOffset, Lane: lane, Tagged: true})
}

// PlaceAt inserts an untagged obstacle at an explicit lateral position
func (t *Track) PlaceAt(forward, lateral float64) Obstacle {
	return t.appendObstacle(Obstacle{Forward: forward, Lateral: lateral})
}

// Clear removes all live obstacles and parks the spawn cursor at forward
// Spawning resumes from there on the next Update
func (t *Track) Clear(forward float64) {
	t.obstacles = t.obstacles[:0]
	t.lastSpawn = forward
}

// --- Read-only views ---

// Obstacles returns a copy of the live obstacles ordered by Forward
func (t *Track) Obstacles() []Obstacle {
	out := make([]Obstacle, len(t.obstacles))
	copy(out, t.obstacles)
	return out
}

// Segments returns a copy of the live segments ordered by Forward
func (t *Track) Segments() []Segment {
	out := make([]Segment, len(t.segments))
	copy(out, t.segments)
	return out
}

// EachObstacle calls fn with each live obstacle in [from, to] until fn returns false
// Avoids the slice copy of Obstacles on per-tick paths
func (t *Track) EachObstacle(from, to float64, fn func(ob Obstacle) bool) {
	i := sort.Search(len(t.obstacles), func(i int) bool { return t.obstacles[i].Forward >= from })
	for ; i < len(t.obstacles) && t.obstacles[i].Forward <= to; i++ {
		if !fn(t.obstacles[i]) {
			return
		}
	}
}

// SegmentAt returns the segment covering forward
func (t *Track) SegmentAt(forward float64) (Segment, bool) {
	i := sort.Search(len(t.segments), func(i int) bool { return t.segments[i].Forward > forward })
	if i == 0 {
		return Segment{}, false
	}
	s := t.segments[i-1]
	if forward-s.Forward >= t.cfg.SegmentLength {
		return Segment{}, false
	}
	return s, true
}

// HalfWidthAt returns half the road width at forward, current width if uncovered
func (t *Track) HalfWidthAt(forward float64) float64 {
	if s, ok := t.SegmentAt(forward); ok {
		return s.Width / 2
	}
	return t.width / 2
}

// Curve returns the current curvature
func (t *Track) Curve() float64 { return t.curve }

// Width returns the width stamped on newly generated segments
func (t *Track) Width() float64 { return t.width }

// PassedTotal returns obstacles passed since Reset
func (t *Track) PassedTotal() int { return t.passedTotal }

// Lanes returns the configured lane set
func (t *Track) Lanes() []Lane { return t.lanes }

// LaneOffset returns the world lateral distance between lane centers
func (t *Track) LaneOffset() float64 { return t.obs.LaneOffset }

// ObstacleSize returns obstacle width and depth
func (t *Track) ObstacleSize() (width, depth float64) { return t.obs.Width, t.obs.Depth }

// LastSpawn returns the forward position of the most recent spawn
func (t *Track) LastSpawn() float64 { return t.lastSpawn }
