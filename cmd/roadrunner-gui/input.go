package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/lixenwraith/roadrunner/input"
)

// keyBindings mirrors the terminal's default keymap, in the order keys are checked each tick
var keyBindings = []struct {
	key    ebiten.Key
	action input.Action
}{
	{ebiten.KeySpace, input.ActionSwitch},
	{ebiten.KeyArrowUp, input.ActionSwitch},
	{ebiten.KeyArrowLeft, input.ActionLeft},
	{ebiten.KeyH, input.ActionLeft},
	{ebiten.KeyA, input.ActionLeft},
	{ebiten.KeyArrowRight, input.ActionRight},
	{ebiten.KeyL, input.ActionRight},
	{ebiten.KeyD, input.ActionRight},
	{ebiten.KeyEnter, input.ActionConfirm},
	{ebiten.KeyP, input.ActionPause},
	{ebiten.KeyR, input.ActionRestart},
	{ebiten.KeyM, input.ActionMenu},
	{ebiten.KeyEscape, input.ActionMenu},
	{ebiten.KeyS, input.ActionMute},
	{ebiten.KeyN, input.ActionPreset},
	{ebiten.KeyQ, input.ActionQuit},
}

// pressedActions appends the actions of keys pressed this tick to buf[:0]
func pressedActions(buf []input.Action) []input.Action {
	buf = buf[:0]
	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.key) {
			buf = append(buf, b.action)
		}
	}
	return buf
}

// pointer folds mouse and touch into one drag gesture
// Only the first touch steers; a mouse press while touching is ignored
type pointer struct {
	down     bool
	lastX    float64
	touch    ebiten.TouchID
	touching bool
	ids      []ebiten.TouchID
}

// step feeds the current pressed state and x; it reports at most one intent
// Moves are only reported when x changed
func (p *pointer) step(pressed bool, x float64) (input.Intent, bool) {
	switch {
	case pressed && !p.down:
		p.down, p.lastX = true, x
		return input.Intent{Action: input.ActionPointerDown, X: x}, true
	case pressed && x != p.lastX:
		p.lastX = x
		return input.Intent{Action: input.ActionPointerMove, X: x}, true
	case !pressed && p.down:
		p.down = false
		return input.Intent{Action: input.ActionPointerUp, X: p.lastX}, true
	}
	return input.Intent{}, false
}

// poll reads ebiten's mouse and touch state for this tick
func (p *pointer) poll() (input.Intent, bool) {
	if !p.down {
		p.ids = inpututil.AppendJustPressedTouchIDs(p.ids[:0])
		if len(p.ids) > 0 {
			p.touching, p.touch = true, p.ids[0]
		}
	}
	if p.touching {
		if inpututil.IsTouchJustReleased(p.touch) {
			p.touching = false
			return p.step(false, p.lastX)
		}
		x, _ := ebiten.TouchPosition(p.touch)
		return p.step(true, float64(x))
	}

	x, _ := ebiten.CursorPosition()
	return p.step(ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), float64(x))
}
