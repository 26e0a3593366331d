package input

import "github.com/gdamore/tcell/v2"

// KeyTable maps keys to intents
type KeyTable struct {
	SpecialKeys map[tcell.Key]IntentType
	Runes       map[rune]IntentType
}

// DefaultKeyTable returns the built-in bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]IntentType{
			tcell.KeyEscape: IntentQuit,
			tcell.KeyCtrlC:  IntentQuit,
		},
		Runes: map[rune]IntentType{
			'q': IntentQuit,
			' ': IntentSpawnCenter,
			's': IntentSpawnCenter,
			'c': IntentClear,
			'p': IntentTogglePause,
			'd': IntentDump,
		},
	}
}

// Lookup returns the intent bound to a key event
func (kt *KeyTable) Lookup(ev *tcell.EventKey) IntentType {
	if ev.Key() == tcell.KeyRune {
		return kt.Runes[ev.Rune()]
	}
	return kt.SpecialKeys[ev.Key()]
}
