package input

// Action is a semantic player or host command, independent of the device that produced it
type Action uint8

const (
	ActionNone Action = iota

	// Movement
	ActionSwitch // Flip/cycle lane
	ActionLeft   // One lane (or one lane offset) left
	ActionRight  // One lane (or one lane offset) right

	// Pointer, carries X in Intent
	ActionPointerDown
	ActionPointerMove
	ActionPointerUp

	// Run control
	ActionConfirm // Context dependent: start, resume, restart
	ActionPause   // Toggle pause
	ActionRestart
	ActionMenu

	// Host
	ActionQuit
	ActionMute
	ActionPreset // Cycle to the next unlocked preset (menu only)
)

// actionRegistry maps canonical action names used in keymap TOML
// "none" is the unbind sentinel
var actionRegistry = map[string]Action{
	"none":         ActionNone,
	"switch":       ActionSwitch,
	"left":         ActionLeft,
	"right":        ActionRight,
	"pointer_down": ActionPointerDown,
	"pointer_move": ActionPointerMove,
	"pointer_up":   ActionPointerUp,
	"confirm":      ActionConfirm,
	"pause":        ActionPause,
	"restart":      ActionRestart,
	"menu":         ActionMenu,
	"quit":         ActionQuit,
	"mute":         ActionMute,
	"preset":       ActionPreset,
}

var actionNames = func() map[Action]string {
	m := make(map[Action]string, len(actionRegistry))
	for name, a := range actionRegistry {
		m[a] = name
	}
	return m
}()

// ActionByName resolves a keymap action name
func ActionByName(name string) (Action, bool) {
	a, ok := actionRegistry[name]
	return a, ok
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// IsPointer reports whether the action carries a pointer X coordinate
func (a Action) IsPointer() bool {
	return a == ActionPointerDown || a == ActionPointerMove || a == ActionPointerUp
}

// Intent is one input occurrence delivered to the game
type Intent struct {
	Action Action
	X      float64 // Pointer X in screen units, pointer actions only
}
