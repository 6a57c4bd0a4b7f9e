package core

import "strings"

// IntentKind is a player or clock request understood by the session.
type IntentKind uint8

const (
	IntentSelectCell IntentKind = iota
	IntentActivatePowerTile
	IntentUseBooster
	IntentAdvanceLevel
	IntentResetGame
	IntentTickTimer
	IntentTogglePause
	IntentHint
)

var intentNames = map[IntentKind]string{
	IntentSelectCell:        "select",
	IntentActivatePowerTile: "activate",
	IntentUseBooster:        "booster",
	IntentAdvanceLevel:      "next",
	IntentResetGame:         "reset",
	IntentTickTimer:         "tick",
	IntentTogglePause:       "pause",
	IntentHint:              "hint",
}

// String returns the short name used in replay scripts.
func (k IntentKind) String() string {
	if name, ok := intentNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseIntentKind converts a short name back to an IntentKind.
func ParseIntentKind(name string) (IntentKind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range intentNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// HasTarget reports whether the intent addresses a cell.
func (k IntentKind) HasTarget() bool {
	return k == IntentSelectCell || k == IntentActivatePowerTile
}

// Intent is one request applied to a session.
type Intent struct {
	Kind IntentKind
	At   Coord // Used by SelectCell and ActivatePowerTile
}

// String returns a readable form, e.g. "select(2,3)".
func (in Intent) String() string {
	if in.Kind.HasTarget() {
		return in.Kind.String() + in.At.String()
	}
	return in.Kind.String()
}

// SelectCell selects a cell; a second adjacent selection swaps the two.
func SelectCell(row, col int) Intent {
	return Intent{Kind: IntentSelectCell, At: At(row, col)}
}

// ActivatePowerTile sets off the bomb or rocket at (row, col).
func ActivatePowerTile(row, col int) Intent {
	return Intent{Kind: IntentActivatePowerTile, At: At(row, col)}
}

// UseBooster clears every star on the board once the booster is charged.
func UseBooster() Intent { return Intent{Kind: IntentUseBooster} }

// AdvanceLevel moves on from a completed level.
func AdvanceLevel() Intent { return Intent{Kind: IntentAdvanceLevel} }

// ResetGame restarts the campaign at level 0.
func ResetGame() Intent { return Intent{Kind: IntentResetGame} }

// TickTimer takes one second off the level timer.
func TickTimer() Intent { return Intent{Kind: IntentTickTimer} }

// TogglePause stops or resumes play.
func TogglePause() Intent { return Intent{Kind: IntentTogglePause} }

// RequestHint asks for a swap that would produce a match.
func RequestHint() Intent { return Intent{Kind: IntentHint} }
