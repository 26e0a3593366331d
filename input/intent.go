package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	IntentQuit        // q, Esc, Ctrl+C
	IntentResize      // Terminal resize event
	IntentSpawnAt     // Left click inside the field
	IntentSpawnCenter // Space, s
	IntentClear       // c
	IntentTogglePause // p
	IntentDump        // d
)

// Intent is a parsed input action
// X, Y are world coordinates for IntentSpawnAt; Cols, Rows the new size for IntentResize
type Intent struct {
	Type       IntentType
	X, Y       float64
	Cols, Rows int
}
