// Package input turns terminal events into pool intents.
package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/particle-pool/render"
)

// Machine parses tcell events into intents
// Tracks mouse button state so a held button spawns once
type Machine struct {
	keyTable *KeyTable
	buttons  tcell.ButtonMask
}

// NewMachine creates a machine with the default key table
func NewMachine() *Machine {
	return &Machine{keyTable: DefaultKeyTable()}
}

// Process parses ev against the current viewport
// Returns an intent of type IntentNone for unbound or ignored events
func (m *Machine) Process(ev tcell.Event, vp render.Viewport) Intent {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return Intent{Type: m.keyTable.Lookup(ev)}

	case *tcell.EventMouse:
		return m.processMouse(ev, vp)

	case *tcell.EventResize:
		cols, rows := ev.Size()
		return Intent{Type: IntentResize, Cols: cols, Rows: rows}
	}
	return Intent{}
}

func (m *Machine) processMouse(ev *tcell.EventMouse, vp render.Viewport) Intent {
	prev := m.buttons
	m.buttons = ev.Buttons()

	// Fire on the press edge only
	if m.buttons&tcell.Button1 == 0 || prev&tcell.Button1 != 0 {
		return Intent{}
	}

	col, row := ev.Position()
	x, y, ok := vp.CellToWorld(col, row)
	if !ok {
		return Intent{}
	}
	return Intent{Type: IntentSpawnAt, X: x, Y: y}
}
