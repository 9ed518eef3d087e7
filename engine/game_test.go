package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/lixenwraith/roadrunner/asset"
	"github.com/lixenwraith/roadrunner/config"
	"github.com/lixenwraith/roadrunner/engine/fsm"
	"github.com/lixenwraith/roadrunner/input"
	"github.com/lixenwraith/roadrunner/physics"
	"github.com/lixenwraith/roadrunner/render"
	"github.com/lixenwraith/roadrunner/status"
	"github.com/lixenwraith/roadrunner/storage"
	"github.com/lixenwraith/roadrunner/track"
)

const testSeed = 42

type recordingSounds struct {
	played []string
	hum    bool
	muted  bool
}

func (s *recordingSounds) Play(name string) { s.played = append(s.played, name) }
func (s *recordingSounds) SetHum(on bool)   { s.hum = on }
func (s *recordingSounds) ToggleMute() bool {
	s.muted = !s.muted
	return s.muted
}

func (s *recordingSounds) count(name string) int {
	n := 0
	for _, p := range s.played {
		if p == name {
			n++
		}
	}
	return n
}

func newTestGame(t *testing.T, mutate func(*config.Config), opts ...Option) *Game {
	t.Helper()
	cfg := config.Default()
	cfg.Loop.Seed = testSeed
	if mutate != nil {
		mutate(cfg)
	}
	g, err := NewGame(cfg, opts...)
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	return g
}

// startClear starts a run and removes every obstacle so tests can script the road
func startClear(t *testing.T, g *Game) {
	t.Helper()
	if res := g.Dispatch(EventStart); res != fsm.Applied {
		t.Fatalf("start: expected applied, got %s", res)
	}
	g.Track().Clear(g.Run().Forward + 1000)
}

func otherLane(l track.Lane) track.Lane {
	if l == track.LaneLeft {
		return track.LaneRight
	}
	return track.LaneLeft
}

func TestInitialStateIsMenu(t *testing.T) {
	g := newTestGame(t, nil)
	if g.Status() != StatusMenu {
		t.Fatalf("Expected MENU, got %s", g.Status())
	}
	if name := g.Machine().CurrentName(); name != "MENU" {
		t.Errorf("Expected machine in MENU, got %s", name)
	}
	if g.Registry().Strings.Get(status.KeyState).Load() != "MENU" {
		t.Error("Expected registry state MENU")
	}
}

func TestStateClosure(t *testing.T) {
	enter := map[Status][]string{
		StatusMenu:     nil,
		StatusPlaying:  {EventStart},
		StatusPaused:   {EventStart, EventPause},
		StatusGameOver: {EventStart, EventCollide},
	}

	type outcome struct {
		res  fsm.Result
		want Status
	}
	table := map[Status]map[string]outcome{
		StatusMenu: {
			EventStart:   {fsm.Applied, StatusPlaying},
			EventPause:   {fsm.Rejected, StatusMenu},
			EventResume:  {fsm.Rejected, StatusMenu},
			EventCollide: {fsm.Rejected, StatusMenu},
			EventRestart: {fsm.Rejected, StatusMenu},
			EventMenu:    {fsm.NoOp, StatusMenu},
			"jump":       {fsm.Rejected, StatusMenu},
		},
		StatusPlaying: {
			EventStart:   {fsm.NoOp, StatusPlaying},
			EventPause:   {fsm.Applied, StatusPaused},
			EventResume:  {fsm.NoOp, StatusPlaying},
			EventCollide: {fsm.Applied, StatusGameOver},
			EventRestart: {fsm.NoOp, StatusPlaying},
			EventMenu:    {fsm.Applied, StatusMenu},
			"jump":       {fsm.Rejected, StatusPlaying},
		},
		StatusPaused: {
			EventStart:   {fsm.Rejected, StatusPaused},
			EventPause:   {fsm.NoOp, StatusPaused},
			EventResume:  {fsm.Applied, StatusPlaying},
			EventCollide: {fsm.Applied, StatusGameOver},
			EventRestart: {fsm.Rejected, StatusPaused},
			EventMenu:    {fsm.Applied, StatusMenu},
			"jump":       {fsm.Rejected, StatusPaused},
		},
		StatusGameOver: {
			EventStart:   {fsm.Rejected, StatusGameOver},
			EventPause:   {fsm.Rejected, StatusGameOver},
			EventResume:  {fsm.Rejected, StatusGameOver},
			EventCollide: {fsm.NoOp, StatusGameOver},
			EventRestart: {fsm.Applied, StatusPlaying},
			EventMenu:    {fsm.Applied, StatusMenu},
			"jump":       {fsm.Rejected, StatusGameOver},
		},
	}

	for from, events := range table {
		for event, want := range events {
			t.Run(from.String()+"/"+event, func(t *testing.T) {
				g := newTestGame(t, nil)
				for _, e := range enter[from] {
					g.Dispatch(e)
				}
				if g.Status() != from {
					t.Fatalf("Setup reached %s, expected %s", g.Status(), from)
				}

				got := g.Dispatch(event)
				if got != want.res {
					t.Errorf("Expected %s, got %s", want.res, got)
				}
				if g.Status() != want.want {
					t.Errorf("Expected status %s, got %s", want.want, g.Status())
				}
			})
		}
	}
}

func TestImmediateCollisionEndsRun(t *testing.T) {
	sounds := &recordingSounds{}
	g := newTestGame(t, nil, WithSounds(sounds))
	startClear(t, g)

	run := g.Run()
	step := run.Speed * g.Config().TickSeconds()
	lane, _ := g.Player().Lane()
	g.Track().PlaceLane(run.Forward+step, lane)

	res := g.Tick()
	if res.Collision != physics.ObstacleHit {
		t.Fatalf("Expected obstacle hit, got %s", res.Collision)
	}
	if res.Status != StatusGameOver || g.Status() != StatusGameOver {
		t.Errorf("Expected GAME_OVER, got %s", g.Status())
	}
	if res.Points != 0 || g.Run().Score != 0 {
		t.Error("Expected no points on the colliding tick")
	}
	if g.LastHit().Kind != physics.ObstacleHit {
		t.Error("Expected last hit recorded")
	}
	if sounds.count(asset.SoundCrash) != 1 {
		t.Errorf("Expected one crash cue, got %v", sounds.played)
	}
	if g.Summary().Crash != "obstacle_hit" {
		t.Errorf("Expected crash kind in summary, got %q", g.Summary().Crash)
	}
}

func TestPassScoresExactlyOnce(t *testing.T) {
	sounds := &recordingSounds{}
	g := newTestGame(t, nil, WithSounds(sounds))
	startClear(t, g)

	lane, _ := g.Player().Lane()
	g.Track().PlaceLane(g.Run().Forward+2, otherLane(lane))

	points, passed := 0, 0
	for range 240 {
		res := g.Tick()
		if res.Collision != physics.None {
			t.Fatalf("Unexpected collision %s", res.Collision)
		}
		points += res.Points
		passed += res.Passed
	}

	if passed != 1 || points != 1 {
		t.Errorf("Expected one pass worth one point, got %d passes %d points", passed, points)
	}
	run := g.Run()
	if run.Progress != 1 || run.Score != 1 || run.Streak != 1 {
		t.Errorf("Unexpected run after pass: %+v", run)
	}
	if sounds.count(asset.SoundPass) != 1 {
		t.Errorf("Expected one pass cue, got %v", sounds.played)
	}
	if len(g.Track().Obstacles()) != 0 {
		t.Error("Expected passed obstacle retired")
	}
}

func TestLaneRoundTrip(t *testing.T) {
	g := newTestGame(t, nil)

	if g.Switch() != fsm.Rejected {
		t.Error("Expected switch rejected in MENU")
	}

	startClear(t, g)
	start, _ := g.Player().Lane()

	if g.Switch() != fsm.Applied {
		t.Fatal("Expected switch applied while PLAYING")
	}
	if l, _ := g.Player().Lane(); l == start {
		t.Error("Expected lane changed after one switch")
	}
	g.Switch()
	if l, _ := g.Player().Lane(); l != start {
		t.Errorf("Expected %s after two switches, got %s", start, l)
	}
}

func TestPauseFreezesRun(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	g := newTestGame(t, nil, WithTimeSource(mock))
	startClear(t, g)

	for range 10 {
		g.Tick()
		mock.Advance(100 * time.Millisecond)
	}
	before := g.Snapshot()

	if g.Apply(input.Intent{Action: input.ActionPause}) != fsm.Applied {
		t.Fatal("Expected pause applied")
	}
	for range 50 {
		if res := g.Tick(); res.Advanced {
			t.Fatal("Tick advanced while paused")
		}
		mock.Advance(time.Second)
	}
	if g.Shift(1) != fsm.Rejected {
		t.Error("Expected movement rejected while paused")
	}

	after := g.Snapshot()
	after.Status = before.Status
	if after != before {
		t.Errorf("Run changed while paused:\nbefore %+v\nafter  %+v", before, after)
	}
	if got := g.Clock().Elapsed(); got != time.Second {
		t.Errorf("Expected clock frozen at 1s, got %v", got)
	}

	if g.Apply(input.Intent{Action: input.ActionPause}) != fsm.Applied {
		t.Fatal("Expected second pause to resume")
	}
	if g.Status() != StatusPlaying || g.Run().Tick != before.Tick {
		t.Errorf("Expected resume to continue the same run, got %+v", g.Run())
	}
	mock.Advance(500 * time.Millisecond)
	if got := g.Clock().Elapsed(); got != 1500*time.Millisecond {
		t.Errorf("Expected paused span excluded, got %v", got)
	}
}

func TestRestartIsDeterministic(t *testing.T) {
	g := newTestGame(t, nil)
	g.Dispatch(EventStart)
	for range 30 {
		g.Tick()
	}
	first := g.Snapshot()

	g.Dispatch(EventCollide)
	if g.Dispatch(EventRestart) != fsm.Applied {
		t.Fatal("Expected restart applied")
	}
	run := g.Run()
	if run.Tick != 0 || run.Forward != 0 || run.Score != 0 {
		t.Fatalf("Expected fresh run after restart, got %+v", run)
	}

	for range 30 {
		g.Tick()
	}
	if second := g.Snapshot(); second != first {
		t.Errorf("Same seed diverged:\n%+v\n%+v", first, second)
	}
}

func TestSeedSourceUsedWhenUnset(t *testing.T) {
	seeds := []uint64{7, 8, 9}
	next := func() uint64 {
		s := seeds[0]
		seeds = seeds[1:]
		return s
	}
	g := newTestGame(t, func(c *config.Config) { c.Loop.Seed = 0 }, WithSeedSource(next))
	if g.Run().Seed != 7 {
		t.Errorf("Expected construction seed 7, got %d", g.Run().Seed)
	}
	g.Dispatch(EventStart)
	if g.Run().Seed != 8 {
		t.Errorf("Expected fresh seed on start, got %d", g.Run().Seed)
	}
}

func TestSeedDrawnOncePerRun(t *testing.T) {
	draws := 0
	next := func() uint64 {
		draws++
		return uint64(100 + draws)
	}
	g := newTestGame(t, func(c *config.Config) { c.Loop.Seed = 0 }, WithSeedSource(next))

	crash := func() {
		t.Helper()
		startClear(t, g)
		run := g.Run()
		lane, _ := g.Player().Lane()
		g.Track().PlaceLane(run.Forward+run.Speed*g.Config().TickSeconds(), lane)
		g.Tick()
		if g.Status() != StatusGameOver {
			t.Fatalf("Expected GAME_OVER, got %s", g.Status())
		}
	}

	crash()
	before, seed := draws, g.Run().Seed

	// Leaving GAME_OVER for the menu keeps the finished run
	g.Dispatch(EventMenu)
	if draws != before || g.Run().Seed != seed {
		t.Errorf("Expected no rebuild on menu, draws %d -> %d", before, draws)
	}
	g.Dispatch(EventStart)
	if draws != before+1 {
		t.Errorf("Expected one seed draw for GAME_OVER -> MENU -> PLAYING, got %d", draws-before)
	}

	g.Dispatch(EventMenu)
	crash()
	before = draws
	g.Dispatch(EventRestart)
	if draws != before+1 {
		t.Errorf("Expected one seed draw on restart, got %d", draws-before)
	}

	// Resume keeps the run
	g.Dispatch(EventPause)
	before, seed = draws, g.Run().Seed
	g.Dispatch(EventResume)
	if draws != before || g.Run().Seed != seed {
		t.Error("Resume rebuilt the run")
	}
}

func TestMenuTicksOnlyAttract(t *testing.T) {
	g := newTestGame(t, nil)
	before := g.Run()
	for range 60 {
		if res := g.Tick(); res.Advanced {
			t.Fatal("MENU tick advanced the run")
		}
	}
	if g.Run() != before {
		t.Error("MENU tick changed run state")
	}
	if g.demo == nil || g.demo.forward <= 0 {
		t.Error("Expected attract road to scroll")
	}
}

func TestRecordsSavedOnGameOver(t *testing.T) {
	store := storage.NewMemoryStore()
	g := newTestGame(t, nil, WithStore(store))
	startClear(t, g)

	lane, _ := g.Player().Lane()
	g.Track().PlaceLane(g.Run().Forward+1, otherLane(lane))
	for g.Run().Progress == 0 {
		g.Tick()
	}
	g.Dispatch(EventCollide)

	s := g.Summary()
	if s.Score != 1 || s.Best != 1 || !s.NewBest {
		t.Errorf("Unexpected summary %+v", s)
	}
	if v, err := store.Get(storage.KeyBestScore); err != nil || v != "1" {
		t.Errorf("Expected best persisted, got %q %v", v, err)
	}

	rec := render.NewRecorder(80, 24)
	g.Draw(rec)
	if !rec.HasText("new best!") {
		t.Error("Expected new best line in game over overlay")
	}
}

func TestRecordsSaveFailureKeepsPlaying(t *testing.T) {
	store := storage.NewMemoryStore()
	store.FailWith = errors.New("disk full")
	g := newTestGame(t, nil, WithStore(store))
	startClear(t, g)

	lane, _ := g.Player().Lane()
	g.Track().PlaceLane(g.Run().Forward+1, otherLane(lane))
	for g.Run().Progress == 0 {
		g.Tick()
	}
	g.Dispatch(EventCollide)

	if !errors.Is(g.Summary().SaveError, store.FailWith) {
		t.Errorf("Expected save error in summary, got %v", g.Summary().SaveError)
	}
	if g.Records().Best != 1 {
		t.Error("Expected in-memory best updated despite failed save")
	}
	if g.Dispatch(EventRestart) != fsm.Applied {
		t.Fatal("Expected restart after failed save")
	}
	if res := g.Tick(); !res.Advanced {
		t.Error("Expected play to continue")
	}
}

func TestPresetUnlockGate(t *testing.T) {
	g := newTestGame(t, nil)
	if err := g.SetPreset(config.PresetDrag); !errors.Is(err, ErrPresetLocked) {
		t.Fatalf("Expected locked error, got %v", err)
	}

	store := storage.NewMemoryStore()
	store.Set(storage.KeyBestScore, "45")
	g = newTestGame(t, nil, WithStore(store))

	if err := g.SetPreset(config.PresetDrag); err != nil {
		t.Fatalf("Expected drag unlocked at 45, got %v", err)
	}
	cfg := g.Config()
	if cfg.Preset != config.PresetDrag || cfg.Player.Control != config.ControlDrag {
		t.Errorf("Expected drag preset applied, got %s/%s", cfg.Preset, cfg.Player.Control)
	}
	if err := g.SetPreset(config.PresetNarrow); !errors.Is(err, ErrPresetLocked) {
		t.Errorf("Expected narrow locked at 45, got %v", err)
	}

	// Cycling wraps past the locked preset back to classic
	next, err := g.CyclePreset()
	if err != nil || next != config.PresetClassic {
		t.Errorf("Expected cycle to classic, got %s %v", next, err)
	}
	if g.Config().Player.Control != config.ControlLane {
		t.Error("Expected classic to restore lane control")
	}

	g.Dispatch(EventStart)
	if err := g.SetPreset(config.PresetThreeLane); err == nil {
		t.Error("Expected preset change refused outside MENU")
	}
	if g.Apply(input.Intent{Action: input.ActionPreset}) != fsm.Rejected {
		t.Error("Expected preset intent rejected outside MENU")
	}
}

func TestConfirmFollowsStatus(t *testing.T) {
	g := newTestGame(t, nil)
	confirm := input.Intent{Action: input.ActionConfirm}

	if g.Apply(confirm) != fsm.Applied || g.Status() != StatusPlaying {
		t.Fatal("Expected confirm to start from MENU")
	}
	if g.Apply(confirm) != fsm.NoOp {
		t.Error("Expected confirm no-op while PLAYING")
	}
	g.Dispatch(EventPause)
	if g.Apply(confirm) != fsm.Applied || g.Status() != StatusPlaying {
		t.Error("Expected confirm to resume from PAUSED")
	}
	g.Dispatch(EventCollide)
	if g.PointerDown(10) != fsm.Applied || g.Status() != StatusPlaying {
		t.Error("Expected tap to restart from GAME_OVER")
	}
}

func TestMuteAndHum(t *testing.T) {
	sounds := &recordingSounds{}
	g := newTestGame(t, nil, WithSounds(sounds))

	g.Dispatch(EventStart)
	if !sounds.hum {
		t.Error("Expected hum on while PLAYING")
	}
	g.Dispatch(EventPause)
	if sounds.hum {
		t.Error("Expected hum off while PAUSED")
	}
	if sounds.count(asset.SoundPause) != 1 {
		t.Errorf("Expected pause cue, got %v", sounds.played)
	}

	g.Apply(input.Intent{Action: input.ActionMute})
	if !sounds.muted || !g.Registry().Bools.Get(status.KeyMuted).Load() {
		t.Error("Expected mute reflected in registry")
	}
}

func TestOnIntentStampsTick(t *testing.T) {
	g := newTestGame(t, nil)
	type stamped struct {
		tick uint64
		in   input.Intent
	}
	var seen []stamped
	g.OnIntent = func(tick uint64, in input.Intent) { seen = append(seen, stamped{tick, in}) }

	g.Switch()
	startClear(t, g)
	g.Tick()
	g.Tick()
	g.Shift(-1)
	g.Apply(input.Intent{Action: input.ActionPause})

	if len(seen) != 1 {
		t.Fatalf("Expected one gameplay intent, got %d", len(seen))
	}
	if seen[0].tick != 2 || seen[0].in.Action != input.ActionLeft {
		t.Errorf("Unexpected intent %+v", seen[0])
	}
}

func TestDrawDoesNotMutate(t *testing.T) {
	g := newTestGame(t, nil)
	rec := render.NewRecorder(80, 24)

	g.Draw(rec)
	if !rec.HasText("ROADRUNNER") {
		t.Error("Expected menu title")
	}

	startClear(t, g)
	for range 20 {
		g.Tick()
	}
	before := g.Snapshot()
	obstacles := len(g.Track().Obstacles())

	rec.Reset()
	g.Draw(rec)
	g.Draw(rec)

	if g.Snapshot() != before || len(g.Track().Obstacles()) != obstacles {
		t.Error("Draw changed game state")
	}
	if rec.Count("circle")+rec.Count("image") == 0 {
		t.Error("Expected the ball drawn")
	}

	g.Dispatch(EventPause)
	rec.Reset()
	g.Draw(rec)
	if !rec.HasText("PAUSED") {
		t.Error("Expected paused overlay")
	}
}

func TestRegistryTracksRun(t *testing.T) {
	g := newTestGame(t, nil)
	startClear(t, g)
	for range 5 {
		g.Tick()
	}
	snap := g.Registry().Snapshot()
	if snap[status.KeyTicks] != "5" {
		t.Errorf("Expected 5 ticks, got %q", snap[status.KeyTicks])
	}
	if snap[status.KeyState] != "PLAYING" {
		t.Errorf("Expected PLAYING, got %q", snap[status.KeyState])
	}
	if snap[status.KeyPreset] != config.PresetClassic {
		t.Errorf("Expected classic preset, got %q", snap[status.KeyPreset])
	}
}
