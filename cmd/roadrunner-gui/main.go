package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/lixenwraith/roadrunner/audio"
	"github.com/lixenwraith/roadrunner/config"
	"github.com/lixenwraith/roadrunner/engine"
	"github.com/lixenwraith/roadrunner/input"
	"github.com/lixenwraith/roadrunner/render"
	"github.com/lixenwraith/roadrunner/render/gui"
	"github.com/lixenwraith/roadrunner/storage"
)

const (
	windowWidth    = 960
	windowHeight   = 600
	ballSpriteSize = 128
)

var (
	configPath  = flag.String("config", "roadrunner.toml", "Config file; missing file uses defaults")
	recordsPath = flag.String("records", "roadrunner_records.toml", "Best score and unlocks file")
	ballPath    = flag.String("ball", "", "PNG sprite for the ball; default is procedural")
	presetFlag  = flag.String("preset", "", "Start preset, if unlocked")
	debugFlag   = flag.Bool("debug", false, "Log to stderr")
	noSound     = flag.Bool("nosound", false, "Disable audio")
)

// host adapts engine.Game to ebiten.Game
// ebiten calls Update at the configured tick rate, so the game ticks there directly
type host struct {
	game    *engine.Game
	canvas  *gui.Canvas
	pointer pointer
	actions []input.Action
}

func (h *host) Update() error {
	h.actions = pressedActions(h.actions)
	for _, a := range h.actions {
		if a == input.ActionQuit {
			return ebiten.Termination
		}
		h.game.Apply(input.Intent{Action: a})
	}
	if in, ok := h.pointer.poll(); ok {
		h.game.Apply(in)
	}

	h.game.Tick()
	return nil
}

func (h *host) Draw(screen *ebiten.Image) {
	h.canvas.Begin(screen)
	h.game.Draw(h.canvas)
}

func (h *host) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// setupLogging sends the std logger to stderr when debug is set; a window leaves the console free
func setupLogging(debug bool) {
	if !debug {
		log.SetOutput(io.Discard)
		return
	}
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}

func main() {
	flag.Parse()
	setupLogging(*debugFlag)

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "roadrunner-gui: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()

	opts := []engine.Option{
		engine.WithSprites(render.LoadBallSprite(*ballPath, ballSpriteSize), nil),
	}
	if store, err := storage.OpenFileStore(*recordsPath); err != nil {
		log.Printf("records: %v", err)
	} else {
		opts = append(opts, engine.WithStore(store))
	}

	audioCfg := audio.LoadAudioConfig()
	if *noSound {
		audioCfg.Enabled = false
	}
	sounds := audio.NewSoundManager(audioCfg)
	if err := sounds.Initialize(); err != nil {
		log.Printf("audio: %v (continuing without audio)", err)
	}
	defer sounds.Cleanup()
	opts = append(opts, engine.WithSounds(sounds))

	game, err := engine.NewGame(cfg, opts...)
	if err != nil {
		return err
	}
	if *presetFlag != "" {
		if err := game.SetPreset(*presetFlag); err != nil {
			return fmt.Errorf("-preset: %w", err)
		}
	}

	ebiten.SetTPS(cfg.Loop.TickRate)
	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("roadrunner")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err = ebiten.RunGame(&host{game: game, canvas: gui.NewCanvas()})
	if err == ebiten.Termination {
		return nil
	}
	return err
}
