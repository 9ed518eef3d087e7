// Package replay records a run as its seed plus the steering intents of each tick,
// and plays it back to check that the engine reproduces the same result
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lixenwraith/roadrunner/config"
	"github.com/lixenwraith/roadrunner/engine"
	"github.com/lixenwraith/roadrunner/input"
	"github.com/lixenwraith/roadrunner/track"
)

// Version of the recording layout
const Version = 1

var (
	// ErrDesync means playback finished in a different state than was recorded
	ErrDesync = errors.New("replay desync")
	// ErrVersion means the recording was written by an incompatible build
	ErrVersion = errors.New("unsupported recording version")
	// ErrNoRun means there was no run in progress or finished to capture
	ErrNoRun = errors.New("no run to record")
)

// Frame is one steering intent applied before tick Tick
type Frame struct {
	Tick   uint64       `msgpack:"t"`
	Action input.Action `msgpack:"a"`
	X      float64      `msgpack:"x,omitempty"`
}

// Recording is a complete deterministic run
// Config holds the effective config, preset already applied
type Recording struct {
	Version int             `msgpack:"version"`
	Seed    uint64          `msgpack:"seed"`
	Preset  string          `msgpack:"preset"`
	Config  *config.Config  `msgpack:"config"`
	Frames  []Frame         `msgpack:"frames"`
	Final   engine.Snapshot `msgpack:"final"`
}

// Recorder collects the intents of the current run of a game
type Recorder struct {
	game   *engine.Game
	track  *track.Track // Identifies the run; rebuilt by the engine on every new run
	frames []Frame
}

// Attach hooks a recorder into g, replacing any previous intent observer
func Attach(g *engine.Game) *Recorder {
	r := &Recorder{game: g}
	g.OnIntent = r.observe
	return r
}

func (r *Recorder) observe(tick uint64, in input.Intent) {
	if trk := r.game.Track(); trk != r.track {
		r.track = trk
		r.frames = r.frames[:0]
	}
	r.frames = append(r.frames, Frame{Tick: tick, Action: in.Action, X: in.X})
}

// Len returns the number of frames recorded for the current run
func (r *Recorder) Len() int {
	if r.game.Track() != r.track {
		return 0
	}
	return len(r.frames)
}

// Detach stops recording
func (r *Recorder) Detach() {
	r.game.OnIntent = nil
}

// Finish captures the current run; call it at GAME_OVER or before quitting a live run
func (r *Recorder) Finish() (*Recording, error) {
	g := r.game
	if g.Status() == engine.StatusMenu {
		return nil, ErrNoRun
	}

	var frames []Frame
	if g.Track() == r.track {
		frames = make([]Frame, len(r.frames))
		copy(frames, r.frames)
	}
	cfg := g.Config()
	run := g.Run()
	return &Recording{
		Version: Version,
		Seed:    run.Seed,
		Preset:  cfg.Preset,
		Config:  cfg,
		Frames:  frames,
		Final:   g.Snapshot(),
	}, nil
}

// ===== CODEC =====

// Save writes rec as msgpack; config fields keep their TOML names
func Save(w io.Writer, rec *Recording) error {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("toml")
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("encode recording: %w", err)
	}
	return nil
}

// Load reads a recording written by Save
func Load(rd io.Reader) (*Recording, error) {
	dec := msgpack.NewDecoder(rd)
	dec.SetCustomStructTag("toml")
	var rec Recording
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode recording: %w", err)
	}
	if rec.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, rec.Version)
	}
	if rec.Config == nil {
		return nil, fmt.Errorf("decode recording: missing config")
	}
	return &rec, nil
}

// SaveFile writes rec to path, replacing it
func SaveFile(path string, rec *Recording) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Save(f, rec); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadFile reads a recording from path
func LoadFile(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// ===== PLAYBACK =====

// Play re-runs rec on a fresh game and returns it at the recorded final tick
// opts are passed to engine.NewGame; playback never touches a records store unless one is given
func Play(rec *Recording, opts ...engine.Option) (*engine.Game, error) {
	cfg := rec.Config.Clone()
	cfg.Loop.Seed = rec.Seed

	g, err := engine.NewGame(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	g.Dispatch(engine.EventStart)

	next := 0
	for g.Status() == engine.StatusPlaying && g.Run().Tick < rec.Final.Tick {
		tick := g.Run().Tick
		// Frames stamped before the current tick were recorded out of order; skip them
		for next < len(rec.Frames) && rec.Frames[next].Tick < tick {
			next++
		}
		for next < len(rec.Frames) && rec.Frames[next].Tick == tick {
			f := rec.Frames[next]
			g.Apply(input.Intent{Action: f.Action, X: f.X})
			next++
		}
		g.Tick()
	}

	if rec.Final.Status == engine.StatusPaused && g.Status() == engine.StatusPlaying {
		g.Dispatch(engine.EventPause)
	}
	return g, nil
}

// Verify plays rec back and reports ErrDesync when the result differs from the recording
func Verify(rec *Recording, opts ...engine.Option) error {
	g, err := Play(rec, opts...)
	if err != nil {
		return err
	}
	if got := g.Snapshot(); got != rec.Final {
		return fmt.Errorf("%w: tick %d: got %+v, want %+v", ErrDesync, rec.Final.Tick, got, rec.Final)
	}
	return nil
}
