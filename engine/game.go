// Package engine orchestrates a run: the state graph, the fixed tick and the frame
package engine

import (
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/roadrunner/asset"
	"github.com/lixenwraith/roadrunner/config"
	"github.com/lixenwraith/roadrunner/engine/fsm"
	"github.com/lixenwraith/roadrunner/input"
	"github.com/lixenwraith/roadrunner/physics"
	"github.com/lixenwraith/roadrunner/player"
	"github.com/lixenwraith/roadrunner/render"
	"github.com/lixenwraith/roadrunner/status"
	"github.com/lixenwraith/roadrunner/storage"
	"github.com/lixenwraith/roadrunner/systems"
	"github.com/lixenwraith/roadrunner/track"
	"github.com/lixenwraith/roadrunner/vmath"
)

// ErrPresetLocked is returned when the best score has not reached a preset's threshold
var ErrPresetLocked = errors.New("preset locked")

// Sounds is the audio backend as seen by the game
type Sounds interface {
	Play(name string)
	SetHum(on bool)
	ToggleMute() bool
}

type silent struct{}

func (silent) Play(string)      {}
func (silent) SetHum(bool)      {}
func (silent) ToggleMute() bool { return true }

// TickResult reports what one Tick did
type TickResult struct {
	Status    Status // Status after the tick
	Advanced  bool   // Gameplay moved; false outside PLAYING
	Passed    int    // Obstacles scored this tick
	Points    int
	Collision physics.Kind
	SpeedUp   bool
}

// Game owns the run state and every component of a run
// Not safe for concurrent use; hosts serialize access through Loop.Post
type Game struct {
	base *config.Config // As supplied; presets are layered onto clones of it
	cfg  *config.Config

	machine  *fsm.Machine[*Game]
	stateIDs [len(statusNames)]fsm.StateID
	run      RunState

	rng      *vmath.FastRand
	track    *track.Track
	player   *player.Player
	detector physics.Detector
	speed    *systems.SpeedController
	score    *systems.ScoreController
	lastHit  physics.Result

	demo *attract

	clock   *PausableClock
	sounds  Sounds
	store   storage.Store
	records storage.Records
	summary Summary
	reg     *status.Registry
	stats   gameStats

	ballSprite     *render.Sprite
	obstacleSprite *render.Sprite
	seedSource     func() uint64
	fsmPath        string

	// OnIntent observes gameplay intents applied while PLAYING, stamped with the run tick
	OnIntent func(tick uint64, in input.Intent)
}

// Option configures a Game at construction
type Option func(*Game)

// WithStore persists records; without it records live for the process only
func WithStore(s storage.Store) Option { return func(g *Game) { g.store = s } }

// WithSounds attaches an audio backend
func WithSounds(s Sounds) Option { return func(g *Game) { g.sounds = s } }

// WithRegistry shares a stats registry with the host
func WithRegistry(r *status.Registry) Option { return func(g *Game) { g.reg = r } }

// WithTimeSource drives the run clock from ts
func WithTimeSource(ts TimeSource) Option {
	return func(g *Game) { g.clock = NewPausableClock(ts) }
}

// WithSprites sets optional images for the ball and obstacles
func WithSprites(ball, obstacle *render.Sprite) Option {
	return func(g *Game) { g.ballSprite, g.obstacleSprite = ball, obstacle }
}

// WithSeedSource picks seeds when the config seed is 0
func WithSeedSource(fn func() uint64) Option { return func(g *Game) { g.seedSource = fn } }

// WithFSMConfig loads the run graph from a file instead of the built-in one
func WithFSMConfig(path string) Option { return func(g *Game) { g.fsmPath = path } }

func clockSeed() uint64 {
	return uint64(time.Now().UnixNano())
}

// NewGame validates cfg, loads the run graph and enters its initial state
func NewGame(cfg *config.Config, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	g := &Game{
		base:   cfg.Clone(),
		cfg:    cfg.Clone(),
		sounds: silent{},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.reg == nil {
		g.reg = status.NewRegistry()
	}
	if g.clock == nil {
		g.clock = NewPausableClock(nil)
	}
	if g.seedSource == nil {
		g.seedSource = clockSeed
	}
	g.stats = newGameStats(g.reg)
	g.stats.preset.Store(g.cfg.Preset)

	if g.store != nil {
		records, err := storage.LoadRecords(g.store)
		if err != nil {
			// Unreadable records start fresh; the next save overwrites them
			log.Printf("records: %v", err)
		} else {
			g.records = records
		}
	}
	g.stats.best.Store(int64(g.records.Best))

	g.newRun()

	if err := g.loadMachine(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) loadMachine() error {
	m := fsm.NewMachine[*Game]()
	m.RegisterAction("EnterMenu", (*Game).actionEnterMenu)
	m.RegisterAction("NewRun", (*Game).actionNewRun)
	m.RegisterAction("EndRun", (*Game).actionEndRun)
	m.RegisterAction("ClockRun", (*Game).actionClockRun)
	m.RegisterAction("ClockHold", (*Game).actionClockHold)
	m.RegisterAction("Hum", (*Game).actionHum)
	m.RegisterAction("Cue", (*Game).actionCue)

	if err := fsm.LoadConfigAuto(m, g.fsmPath, asset.DefaultRunFSMConfig); err != nil {
		return fmt.Errorf("run graph: %w", err)
	}
	for s, name := range statusNames {
		id, ok := m.GetStateID(name)
		if !ok {
			return fmt.Errorf("run graph: missing state %s", name)
		}
		g.stateIDs[s] = id
	}

	m.OnTransition = g.onTransition
	g.machine = m
	g.run.Status = g.statusOf(m.InitialStateID)
	if err := m.Init(g); err != nil {
		return fmt.Errorf("run graph: %w", err)
	}
	g.stats.state.Store(g.run.Status.String())
	return nil
}

func (g *Game) statusOf(id fsm.StateID) Status {
	for s, sid := range g.stateIDs {
		if sid == id {
			return Status(s)
		}
	}
	return StatusMenu
}

func (g *Game) onTransition(from, to fsm.StateID, event string) {
	g.run.Status = g.statusOf(to)
	g.stats.state.Store(g.run.Status.String())
	log.Printf("run: %s -> %s on %s", g.machine.StateName(from), g.machine.StateName(to), event)
}

// ===== FSM ACTIONS =====

func (g *Game) actionEnterMenu(map[string]any) {
	g.demo = newAttract(g.cfg)
	g.sounds.SetHum(false)
}

func (g *Game) actionNewRun(map[string]any) { g.newRun() }

func (g *Game) actionEndRun(map[string]any) { g.endRun() }

func (g *Game) actionClockRun(map[string]any) { g.clock.Resume() }

func (g *Game) actionClockHold(map[string]any) { g.clock.Pause() }

func (g *Game) actionHum(args map[string]any) {
	on, _ := args["on"].(bool)
	g.sounds.SetHum(on)
}

func (g *Game) actionCue(args map[string]any) {
	if name, ok := args["sound"].(string); ok && name != "" {
		g.sounds.Play(name)
	}
}

// newRun rebuilds every run component from the current config and a fresh seed
func (g *Game) newRun() {
	seed := g.cfg.Loop.Seed
	if seed == 0 {
		seed = g.seedSource()
	}

	g.rng = vmath.NewFastRand(seed)
	g.track = track.New(g.cfg.Track, g.cfg.Obstacles, g.cfg.Collision.Mode == config.CollisionContinuous, g.rng)
	g.player = player.New(g.cfg)
	g.detector = physics.NewDetector(g.cfg.Collision, g.cfg.Obstacles)
	g.speed = systems.NewSpeedController(g.cfg.Speed)
	g.score = systems.NewScoreController(g.cfg.Score)
	g.lastHit = physics.Result{}
	g.summary = Summary{}
	g.clock.Reset()

	g.run = RunState{Seed: seed, Status: g.run.Status}
	g.syncRun()
}

// endRun folds the score into records and persists them
// A failed save is logged and reported in the summary; play continues
func (g *Game) endRun() {
	g.syncRun()
	improved, fresh := g.records.Submit(g.run.Score, g.base.Unlocks)
	g.summary = Summary{
		Score:    g.run.Score,
		Best:     g.records.Best,
		NewBest:  improved,
		Unlocked: fresh,
		Crash:    g.lastHit.Kind.String(),
	}

	if g.store != nil && (improved || len(fresh) > 0) {
		if err := storage.SaveRecords(g.store, g.records); err != nil {
			log.Printf("records: save failed: %v", err)
			g.summary.SaveError = err
		}
	}

	g.stats.runs.Add(1)
	g.stats.best.Store(int64(g.records.Best))
}

// ===== TICK =====

// Tick advances one fixed step
// Only PLAYING mutates the run; MENU scrolls the attract road; PAUSED and GAME_OVER are frozen
func (g *Game) Tick() TickResult {
	dt := g.cfg.TickSeconds()
	g.machine.Update(g, time.Duration(dt*float64(time.Second)))

	res := TickResult{Status: g.run.Status}
	switch g.run.Status {
	case StatusPlaying:
	case StatusMenu:
		if g.demo != nil {
			g.demo.step(dt)
		}
		return res
	default:
		return res
	}

	g.run.Tick++
	g.stats.ticks.Add(1)
	res.Advanced = true

	speed := g.speed.Speed()
	g.run.Forward += speed * dt
	pos := g.player.Update(dt, g.run.Forward, g.track.Curve()*speed)
	upd := g.track.Update(g.run.Forward)

	lane, tagged := g.player.Lane()
	body := physics.Body{
		Lateral: pos.Lateral,
		Forward: pos.Forward,
		Radius:  g.player.Radius(),
		Lane:    lane,
		Tagged:  tagged,
	}
	if hit := g.detector.Check(body, g.cameraForward(g.run.Forward), g.track); hit.Hit() {
		// Passes from the colliding tick are not awarded
		g.lastHit = hit
		g.score.Break()
		g.syncRun()
		res.Collision = hit.Kind
		g.Dispatch(EventCollide)
		res.Status = g.run.Status
		return res
	}

	for range upd.Passed {
		points, _ := g.score.AddPass()
		res.Points += points
		g.run.Progress++
	}
	res.Passed = len(upd.Passed)
	if res.Passed > 0 {
		if g.score.Combo() {
			g.sounds.Play(asset.SoundCombo)
		} else {
			g.sounds.Play(asset.SoundPass)
		}
	}

	if _, changed := g.speed.Update(g.run.Progress); changed {
		res.SpeedUp = true
		g.sounds.Play(asset.SoundMilestone)
	}

	g.syncRun()
	res.Status = g.run.Status
	return res
}

// syncRun copies controller results into RunState and the stats registry
func (g *Game) syncRun() {
	g.run.Score = g.score.Score()
	g.run.Streak = g.score.Streak()
	g.run.BestStreak = g.score.BestStreak()
	g.run.Speed = g.speed.Speed()

	g.stats.score.Store(int64(g.run.Score))
	g.stats.progress.Store(int64(g.run.Progress))
	g.stats.streak.Store(int64(g.run.Streak))
	g.stats.bestStreak.Store(int64(g.run.BestStreak))
	g.stats.speed.Set(g.run.Speed)
	g.stats.topSpeed.Max(g.run.Speed)
}

func (g *Game) cameraForward(forward float64) float64 {
	return forward - g.cfg.Camera.PlayerDistance
}

// camera places the pinhole behind forward for a surface width
func (g *Game) camera(forward, width float64) vmath.Camera {
	return vmath.Camera{
		Forward: g.cameraForward(forward),
		Height:  g.cfg.Camera.Height,
		Depth:   g.cfg.Camera.Depth * width,
	}
}

// ===== INPUT =====

// Dispatch fires a run graph event
func (g *Game) Dispatch(event string) fsm.Result {
	return g.machine.Fire(g, event)
}

// Switch flips lanes (lane-snap) or mirrors the drag target
func (g *Game) Switch() fsm.Result { return g.Apply(input.Intent{Action: input.ActionSwitch}) }

// Shift steps one lane left (dir < 0) or right (dir > 0)
func (g *Game) Shift(dir int) fsm.Result {
	switch {
	case dir < 0:
		return g.Apply(input.Intent{Action: input.ActionLeft})
	case dir > 0:
		return g.Apply(input.Intent{Action: input.ActionRight})
	}
	return fsm.NoOp
}

// PointerDown starts a drag or taps; outside PLAYING it confirms
func (g *Game) PointerDown(x float64) fsm.Result {
	return g.Apply(input.Intent{Action: input.ActionPointerDown, X: x})
}

func (g *Game) PointerMove(x float64) fsm.Result {
	return g.Apply(input.Intent{Action: input.ActionPointerMove, X: x})
}

func (g *Game) PointerUp(x float64) fsm.Result {
	return g.Apply(input.Intent{Action: input.ActionPointerUp, X: x})
}

// Apply routes an input intent
// Movement outside PLAYING is Rejected; run control goes through the state graph
func (g *Game) Apply(in input.Intent) fsm.Result {
	switch in.Action {
	case input.ActionSwitch, input.ActionLeft, input.ActionRight,
		input.ActionPointerMove, input.ActionPointerUp:
		if g.run.Status != StatusPlaying {
			return fsm.Rejected
		}
		g.steer(in)
		return fsm.Applied

	case input.ActionPointerDown:
		if g.run.Status == StatusPlaying {
			g.steer(in)
			return fsm.Applied
		}
		return g.confirm()

	case input.ActionConfirm:
		return g.confirm()

	case input.ActionPause:
		if g.run.Status == StatusPaused {
			return g.Dispatch(EventResume)
		}
		return g.Dispatch(EventPause)

	case input.ActionRestart:
		return g.Dispatch(EventRestart)

	case input.ActionMenu:
		return g.Dispatch(EventMenu)

	case input.ActionMute:
		g.stats.muted.Store(g.sounds.ToggleMute())
		return fsm.Applied

	case input.ActionPreset:
		if g.run.Status != StatusMenu {
			return fsm.Rejected
		}
		if _, err := g.CyclePreset(); err != nil {
			log.Printf("preset: %v", err)
			return fsm.Rejected
		}
		return fsm.Applied
	}
	return fsm.Rejected
}

func (g *Game) steer(in input.Intent) {
	if g.OnIntent != nil {
		g.OnIntent(g.run.Tick, in)
	}
	switch in.Action {
	case input.ActionSwitch:
		g.player.Switch()
	case input.ActionLeft:
		g.player.Shift(-1)
	case input.ActionRight:
		g.player.Shift(1)
	case input.ActionPointerDown:
		g.player.OnInputStart(in.X)
	case input.ActionPointerMove:
		g.player.OnInputMove(in.X)
	case input.ActionPointerUp:
		g.player.OnInputEnd()
	}
}

// confirm is the context action: start from MENU, resume from PAUSED, restart from GAME_OVER
func (g *Game) confirm() fsm.Result {
	switch g.run.Status {
	case StatusMenu:
		return g.Dispatch(EventStart)
	case StatusPaused:
		return g.Dispatch(EventResume)
	case StatusGameOver:
		return g.Dispatch(EventRestart)
	}
	return fsm.NoOp
}

// ===== PRESETS =====

// SetPreset switches the run variant; only allowed in MENU and only once unlocked
func (g *Game) SetPreset(name string) error {
	if g.run.Status != StatusMenu {
		return fmt.Errorf("preset %s: not in menu", name)
	}
	if !g.base.Unlocks.Unlocked(name, g.records.Best) {
		return fmt.Errorf("preset %s: %w", name, ErrPresetLocked)
	}

	cfg := g.base.Clone()
	if err := cfg.ApplyPreset(config.PresetClassic); err != nil {
		return err
	}
	if err := cfg.ApplyPreset(name); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("preset %s: %w", name, err)
	}

	g.cfg = cfg
	g.newRun()
	g.demo = newAttract(cfg)
	g.stats.preset.Store(name)
	return nil
}

// CyclePreset moves to the next unlocked preset, wrapping to classic
func (g *Game) CyclePreset() (string, error) {
	current := 0
	for i, p := range config.Presets {
		if p == g.cfg.Preset {
			current = i
		}
	}
	for step := 1; step <= len(config.Presets); step++ {
		next := config.Presets[(current+step)%len(config.Presets)]
		if g.base.Unlocks.Unlocked(next, g.records.Best) {
			return next, g.SetPreset(next)
		}
	}
	return g.cfg.Preset, nil
}

// ===== DRAW =====

// Draw renders the current frame; it never mutates game state
func (g *Game) Draw(c render.Canvas) {
	w, _ := c.Size()

	trk, pl, forward := g.track, g.player, g.run.Forward
	if g.run.Status == StatusMenu && g.demo != nil {
		trk, pl, forward = g.demo.track, g.demo.player, g.demo.forward
	}

	cam := g.camera(forward, float64(w))
	trk.Draw(c, cam, g.obstacleSprite)
	pl.Draw(c, cam, trk.OffsetAt(cam, forward), g.ballSprite)

	switch g.run.Status {
	case StatusPlaying:
		render.DrawHUD(c, g.hud())
	case StatusPaused:
		render.DrawHUD(c, g.hud())
		render.DrawOverlay(c, "PAUSED", "resume: p   menu: m")
	case StatusGameOver:
		render.DrawHUD(c, g.hud())
		render.DrawOverlay(c, "GAME OVER", g.summaryLines()...)
	case StatusMenu:
		render.DrawOverlay(c, "ROADRUNNER",
			fmt.Sprintf("best %d   preset %s", g.records.Best, g.cfg.Preset),
			"start: enter   preset: n   quit: q")
	}
}

func (g *Game) hud() render.HUD {
	return render.HUD{
		Score:   g.run.Score,
		Best:    max(g.records.Best, g.run.Score),
		Streak:  g.run.Streak,
		Combo:   g.score.Combo(),
		Speed:   g.run.Speed,
		Elapsed: g.clock.Elapsed(),
		Preset:  g.cfg.Preset,
	}
}

func (g *Game) summaryLines() []string {
	s := g.summary
	lines := []string{fmt.Sprintf("score %d   best %d", s.Score, s.Best)}
	if s.NewBest {
		lines = append(lines, "new best!")
	}
	for _, p := range s.Unlocked {
		lines = append(lines, "unlocked "+p)
	}
	if s.SaveError != nil {
		lines = append(lines, "records not saved")
	}
	return append(lines, "restart: r   menu: m")
}

// ===== ACCESSORS =====

// Run returns a copy of the run state
func (g *Game) Run() RunState { return g.run }

// Status returns the current run status
func (g *Game) Status() Status { return g.run.Status }

// Config returns a copy of the active config (base plus preset)
func (g *Game) Config() *config.Config { return g.cfg.Clone() }

func (g *Game) Track() *track.Track             { return g.track }
func (g *Game) Player() *player.Player          { return g.player }
func (g *Game) Records() storage.Records        { return g.records }
func (g *Game) Summary() Summary                { return g.summary }
func (g *Game) Registry() *status.Registry      { return g.reg }
func (g *Game) Clock() *PausableClock           { return g.clock }
func (g *Game) LastHit() physics.Result         { return g.lastHit }
func (g *Game) Machine() *fsm.Machine[*Game]    { return g.machine }
func (g *Game) Detector() physics.Detector      { return g.detector }
func (g *Game) Speed() *systems.SpeedController { return g.speed }

// gameStats caches registry pointers written every tick
type gameStats struct {
	ticks, runs, best                   *atomic.Int64
	score, progress, streak, bestStreak *atomic.Int64
	speed, topSpeed                     *status.AtomicFloat
	state, preset                       *status.AtomicString
	muted                               *atomic.Bool
}

func newGameStats(r *status.Registry) gameStats {
	return gameStats{
		ticks:      r.Ints.Get(status.KeyTicks),
		runs:       r.Ints.Get(status.KeyRuns),
		best:       r.Ints.Get(status.KeyBest),
		score:      r.Ints.Get(status.KeyScore),
		progress:   r.Ints.Get(status.KeyProgress),
		streak:     r.Ints.Get(status.KeyStreak),
		bestStreak: r.Ints.Get(status.KeyBestStreak),
		speed:      r.Floats.Get(status.KeySpeed),
		topSpeed:   r.Floats.Get(status.KeyTopSpeed),
		state:      r.Strings.Get(status.KeyState),
		preset:     r.Strings.Get(status.KeyPreset),
		muted:      r.Bools.Get(status.KeyMuted),
	}
}
