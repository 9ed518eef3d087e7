package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"golang.org/x/term"

	"github.com/lixenwraith/roadrunner/asset"
	"github.com/lixenwraith/roadrunner/config"
	"github.com/lixenwraith/roadrunner/engine"
	"github.com/lixenwraith/roadrunner/replay"
	"github.com/lixenwraith/roadrunner/storage"
)

var (
	configPath  = flag.String("config", "roadrunner.toml", "Config file; missing file uses defaults")
	keymapPath  = flag.String("keymap", "", "Keymap TOML merged over the built-in bindings")
	fsmPath     = flag.String("fsm", "", "Run graph TOML replacing the built-in one")
	recordsPath = flag.String("records", "roadrunner_records.toml", "Best score and unlocks file")
	ballPath    = flag.String("ball", "", "PNG sprite for the ball; default is procedural")
	presetFlag  = flag.String("preset", "", "Start preset: classic, three_lane, drag, narrow")
	seedFlag    = flag.Uint64("seed", 0, "Run seed; 0 picks one per run")
	debugFlag   = flag.Bool("debug", false, "Write logs to logs/roadrunner.log")
	noSound     = flag.Bool("nosound", false, "Disable audio")
	headless    = flag.Bool("headless", false, "Run the autopilot simulator instead of the terminal UI")
	runsFlag    = flag.Int("runs", 10, "Headless: number of runs")
	maxTicks    = flag.Int("max-ticks", 60*60*5, "Headless: tick cap per run")
	recordPath  = flag.String("record", "", "Save the latest run as a replay file")
	replayPath  = flag.String("replay", "", "Verify a replay file and exit")
	initConfig  = flag.String("init-config", "", "Write a commented config template to this path and exit")
)

func main() {
	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "roadrunner: %v\n", err)
		if logFile != nil {
			logFile.Close()
		}
		os.Exit(1)
	}
}

func run() error {
	if *initConfig != "" {
		if err := os.WriteFile(*initConfig, []byte(asset.ConfigTemplate), 0644); err != nil {
			return fmt.Errorf("write config template: %w", err)
		}
		fmt.Printf("wrote %s\n", *initConfig)
		return nil
	}

	if *replayPath != "" {
		return verifyReplay(*replayPath)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var opts []engine.Option
	if *fsmPath != "" {
		opts = append(opts, engine.WithFSMConfig(*fsmPath))
	}
	if store, err := storage.OpenFileStore(*recordsPath); err != nil {
		// Unreadable records file: play without persistence rather than refuse to start
		log.Printf("records: %v", err)
	} else {
		opts = append(opts, engine.WithStore(store))
	}

	if *headless || !term.IsTerminal(int(os.Stdout.Fd())) {
		return runHeadless(cfg, simOptions{
			runs:       *runsFlag,
			maxTicks:   *maxTicks,
			recordPath: *recordPath,
			preset:     *presetFlag,
		}, os.Stdout, opts...)
	}
	return runTerminal(cfg, opts)
}

// selectPreset switches g to the requested preset, subject to the unlock gate
func selectPreset(g *engine.Game, name string) error {
	if name == "" {
		return nil
	}
	if err := g.SetPreset(name); err != nil {
		return fmt.Errorf("-preset: %w", err)
	}
	return nil
}

// loadConfig layers defaults, the config file, ROADRUNNER_* variables and the seed flag
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	if *seedFlag != 0 {
		cfg.Loop.Seed = *seedFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func verifyReplay(path string) error {
	rec, err := replay.LoadFile(path)
	if err != nil {
		return err
	}
	if err := replay.Verify(rec); err != nil {
		return fmt.Errorf("replay %s: %w", path, err)
	}
	fmt.Printf("replay ok: seed %d, preset %s, %d inputs, tick %d, score %d, %s\n",
		rec.Seed, rec.Preset, len(rec.Frames), rec.Final.Tick, rec.Final.Score, rec.Final.Status)
	return nil
}

// emergencyReset restores the terminal after a panic and prints the stack where it is visible
func emergencyReset(fini func(), fd int, saved *term.State, r any) {
	if fini != nil {
		fini()
	}
	if saved != nil {
		term.Restore(fd, saved)
	}
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mROADRUNNER CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	log.Printf("crash: %v\n%s", r, debug.Stack())
	os.Exit(1)
}
