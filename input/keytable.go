package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/roadrunner/asset"
)

// KeyTable maps terminal keys to actions
type KeyTable struct {
	// Printable keys
	Runes map[rune]Action
	// Special keys (arrows, Enter, Esc, Ctrl+*)
	Keys map[tcell.Key]Action
}

var defaultKeyTable = mustLoadKeyConfig(asset.DefaultKeymap)

func mustLoadKeyConfig(data string) *KeyTable {
	kt, err := LoadKeyConfig([]byte(data))
	if err != nil {
		panic("input: built-in keymap: " + err.Error())
	}
	return kt
}

// DefaultKeyTable returns a copy of the built-in bindings
func DefaultKeyTable() *KeyTable {
	return defaultKeyTable.Clone()
}

// Translate maps a key event to an action; unbound keys yield ActionNone
func (kt *KeyTable) Translate(ev *tcell.EventKey) Action {
	if ev == nil {
		return ActionNone
	}
	if ev.Key() == tcell.KeyRune {
		return kt.Runes[ev.Rune()]
	}
	key := ev.Key()
	if key == tcell.KeyBackspace2 {
		key = tcell.KeyBackspace
	}
	return kt.Keys[key]
}

// Clone returns a deep copy of the KeyTable with independent maps
func (kt *KeyTable) Clone() *KeyTable {
	return &KeyTable{
		Runes: cloneMap(kt.Runes),
		Keys:  cloneMap(kt.Keys),
	}
}

func cloneMap[K comparable](m map[K]Action) map[K]Action {
	c := make(map[K]Action, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
