package main

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/lixenwraith/roadrunner/config"
	"github.com/lixenwraith/roadrunner/engine"
	"github.com/lixenwraith/roadrunner/input"
	"github.com/lixenwraith/roadrunner/replay"
	"github.com/lixenwraith/roadrunner/status"
)

// simOptions controls the headless autopilot simulator
type simOptions struct {
	runs       int
	maxTicks   int    // Per run; a run still alive at the cap is abandoned
	recordPath string // Last run is saved here when set
	preset     string
}

// runHeadless plays opts.runs autopilot runs as fast as the CPU allows and prints per-run lines
// followed by the registry summary
// Run time is simulated so the HUD clock and stats match a real-time session
func runHeadless(cfg *config.Config, opts simOptions, w io.Writer, gameOpts ...engine.Option) error {
	reg := status.NewRegistry()
	clock := engine.NewMockTimeProvider(time.Unix(0, 0))
	gameOpts = append(gameOpts, engine.WithRegistry(reg), engine.WithTimeSource(clock))

	g, err := engine.NewGame(cfg, gameOpts...)
	if err != nil {
		return err
	}
	if err := selectPreset(g, opts.preset); err != nil {
		return err
	}

	var rec *replay.Recorder
	if opts.recordPath != "" {
		rec = replay.Attach(g)
	}
	pilot := engine.NewAutopilot(g.Config())
	step := time.Duration(g.Config().TickSeconds() * float64(time.Second))

	for run := 1; run <= opts.runs; run++ {
		if g.Status() == engine.StatusGameOver {
			g.Dispatch(engine.EventRestart)
		} else {
			g.Dispatch(engine.EventStart)
		}

		for ticks := 0; g.Status() == engine.StatusPlaying && ticks < opts.maxTicks; ticks++ {
			if a := pilot.Decide(g.Track(), g.Player()); a != input.ActionNone {
				g.Apply(input.Intent{Action: a})
			}
			clock.Advance(step)
			g.Tick()
		}

		r := g.Run()
		outcome := "survived"
		if g.Status() == engine.StatusGameOver {
			outcome = g.Summary().Crash
		}
		fmt.Fprintf(w, "run %3d  seed %-20d  score %6d  passed %5d  ticks %7d  %s\n",
			run, r.Seed, r.Score, r.Progress, r.Tick, outcome)

		if rec != nil {
			if err := recordRun(rec, opts.recordPath); err != nil {
				return err
			}
		}

		if g.Status() == engine.StatusPlaying {
			g.Dispatch(engine.EventMenu)
		}
	}

	fmt.Fprintln(w)
	return reg.WriteSummary(w)
}

// recordRun saves the recorder's current run to path
// A recorder with no run to finish is logged and skipped; only write failures are returned
func recordRun(rec *replay.Recorder, path string) error {
	recording, err := rec.Finish()
	if err != nil {
		log.Printf("record: %v", err)
		return nil
	}
	if err := replay.SaveFile(path, recording); err != nil {
		return fmt.Errorf("save recording: %w", err)
	}
	return nil
}
