package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/lixenwraith/roadrunner/audio"
	"github.com/lixenwraith/roadrunner/config"
	"github.com/lixenwraith/roadrunner/engine"
	"github.com/lixenwraith/roadrunner/input"
	"github.com/lixenwraith/roadrunner/render"
	"github.com/lixenwraith/roadrunner/render/tui"
	"github.com/lixenwraith/roadrunner/replay"
)

// cellPixels scales terminal columns to the pixel units drag sensitivity is tuned for
const cellPixels = 8

// ballSpriteSize is small; the terminal ball is a few half-block pixels wide
const ballSpriteSize = 16

// runTerminal plays in the terminal until quit
// Input is read on this goroutine and posted to the loop; the loop ticks and draws
func runTerminal(cfg *config.Config, opts []engine.Option) error {
	fd := int(os.Stdin.Fd())
	saved, _ := term.GetState(fd)

	keys := input.DefaultKeyTable()
	if *keymapPath != "" {
		kt, err := input.LoadKeyConfigFile(*keymapPath)
		if err != nil {
			return err
		}
		keys = kt
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}

	// Panic recovery: terminal must be restored even if the game crashes
	crash := func(r any) { emergencyReset(screen.Fini, fd, saved, r) }
	defer func() {
		if r := recover(); r != nil {
			crash(r)
		}
	}()
	defer screen.Fini()

	screen.EnableMouse(tcell.MouseDragEvents)
	screen.HideCursor()

	audioCfg := audio.LoadAudioConfig()
	if *noSound {
		audioCfg.Enabled = false
	}
	sounds := audio.NewSoundManager(audioCfg)
	if err := sounds.Initialize(); err != nil {
		// Non-fatal, game runs silent
		log.Printf("audio: %v (continuing without audio)", err)
	}
	defer sounds.Cleanup()

	opts = append(opts,
		engine.WithSounds(sounds),
		engine.WithSprites(render.LoadBallSprite(*ballPath, ballSpriteSize), nil),
	)
	game, err := engine.NewGame(cfg, opts...)
	if err != nil {
		return err
	}
	if err := selectPreset(game, *presetFlag); err != nil {
		return err
	}

	var rec *replay.Recorder
	if *recordPath != "" {
		rec = replay.Attach(game)
	}

	canvas := tui.NewCanvas(screen.Size())
	last := game.Status()
	frame := func() {
		// Loop goroutine: the only place game is read outside Post
		if status := game.Status(); status != last {
			if status == engine.StatusGameOver && rec != nil {
				saveRecording(rec, *recordPath)
			}
			last = status
		}

		cols, rows := screen.Size()
		if cc, cr := canvas.Cells(); cols != cc || rows != cr {
			canvas.Resize(cols, rows)
		}
		game.Draw(canvas)
		canvas.Flush(screen)
		screen.Show()
	}

	loop := engine.NewLoop(game, 0, frame)
	loop.SetCrashHandler(crash)
	loop.Start()

	pointer := &pointerState{}
	for {
		ev := screen.PollEvent()
		if ev == nil {
			// Screen finalized
			break
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			action := keys.Translate(ev)
			if action == input.ActionQuit {
				loop.Stop()
				finishRecording(game, rec)
				return nil
			}
			if action != input.ActionNone {
				loop.Post(func(g *engine.Game) { g.Apply(input.Intent{Action: action}) })
			}

		case *tcell.EventMouse:
			if in, ok := pointer.translate(ev); ok {
				loop.Post(func(g *engine.Game) { g.Apply(in) })
			}

		case *tcell.EventResize:
			screen.Sync()
		}
	}

	loop.Stop()
	finishRecording(game, rec)
	return nil
}

// pointerState turns tcell button masks into press, drag and release intents
type pointerState struct {
	down bool
}

func (p *pointerState) translate(ev *tcell.EventMouse) (input.Intent, bool) {
	x, _ := ev.Position()
	px := float64(x) * cellPixels
	pressed := ev.Buttons()&tcell.Button1 != 0

	switch {
	case pressed && !p.down:
		p.down = true
		return input.Intent{Action: input.ActionPointerDown, X: px}, true
	case pressed && p.down:
		return input.Intent{Action: input.ActionPointerMove, X: px}, true
	case !pressed && p.down:
		p.down = false
		return input.Intent{Action: input.ActionPointerUp, X: px}, true
	}
	return input.Intent{}, false
}

// finishRecording saves a run that is still live when the host quits; the loop must be stopped
func finishRecording(game *engine.Game, rec *replay.Recorder) {
	if rec == nil {
		return
	}
	if s := game.Status(); s == engine.StatusPlaying || s == engine.StatusPaused {
		saveRecording(rec, *recordPath)
	}
}

func saveRecording(rec *replay.Recorder, path string) {
	recording, err := rec.Finish()
	if err != nil {
		log.Printf("record: %v", err)
		return
	}
	if err := replay.SaveFile(path, recording); err != nil {
		log.Printf("record: %v", err)
		return
	}
	log.Printf("record: saved %d inputs to %s", len(recording.Frames), path)
}
