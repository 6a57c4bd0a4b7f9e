package core

// State is the session's position in the level state machine.
type State string

const (
	StatePlaying           State = "playing"
	StateLevelComplete     State = "level_complete"
	StateAllLevelsComplete State = "all_levels_complete"
)

// Outcome tells whether a completed level reached its target.
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeWon  Outcome = "won"
	OutcomeLost Outcome = "lost"
)

// LevelResult records a finished level.
type LevelResult struct {
	Level   int // 0-indexed
	Score   int
	Moves   int
	Outcome Outcome
}

// Snapshot is an immutable copy of everything a renderer needs.
type Snapshot struct {
	Board [][]Cell

	Score         int
	Moves         int
	TimeRemaining int
	TargetScore   int
	MaxMoves      int
	StarCount     int
	StarThreshold int

	BoosterEnabled bool
	Paused         bool

	State      State
	Outcome    Outcome
	LevelIndex int
	LevelCount int

	Selected *Coord // Pending first selection, if any
	Hint     *Hint  // Last requested hint, cleared by the next move

	// LastScore is the score gained by the most recent intent.
	LastScore int
	// LastSpawns lists power tiles placed by the most recent intent.
	LastSpawns []Spawn

	Results []LevelResult
}

// Cell returns the snapshot's cell at c, or Empty when c is off the board.
func (s Snapshot) Cell(c Coord) Cell {
	if c.Row < 0 || c.Row >= len(s.Board) || c.Col < 0 || c.Col >= len(s.Board[c.Row]) {
		return Empty()
	}
	return s.Board[c.Row][c.Col]
}

// Rows returns the board height.
func (s Snapshot) Rows() int { return len(s.Board) }

// Cols returns the board width.
func (s Snapshot) Cols() int {
	if len(s.Board) == 0 {
		return 0
	}
	return len(s.Board[0])
}

// IsLastLevel reports whether the current level is the final one.
func (s Snapshot) IsLastLevel() bool {
	return s.LevelIndex >= s.LevelCount-1
}
