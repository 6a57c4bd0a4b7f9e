package core

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Config holds the board parameters of a session.
type Config struct {
	Rows          int
	Cols          int
	Alphabet      Alphabet
	StarThreshold int  // Stars to clear before the booster charges
	MaxCascades   int  // Scan passes per resolution before giving up
	SettleOnLoad  bool // Resolve runs left by the initial fill, without scoring
	Logger        *log.Logger
}

// DefaultConfig returns an 8x8 board with all eight symbols.
func DefaultConfig() Config {
	return Config{
		Rows:          8,
		Cols:          8,
		Alphabet:      DefaultAlphabet,
		StarThreshold: 6,
		MaxCascades:   DefaultMaxCascades,
		SettleOnLoad:  true,
	}
}

// Session is the mutable game state of a campaign: the current level's
// board and counters plus the history of finished levels. It is not safe for
// concurrent use; Dispatcher serializes access when intents come from more
// than one goroutine.
type Session struct {
	cfg    Config
	levels []Level
	rng    Source
	logger *log.Logger

	grid          *Grid
	levelIndex    int
	score         int
	moves         int
	timeRemaining int
	starCount     int
	booster       bool
	paused        bool
	state         State
	outcome       Outcome

	selected *Coord
	hint     *Hint

	lastScore  int
	lastSpawns []Spawn
	results    []LevelResult
}

// NewSession creates a session at level 0.
func NewSession(levels []Level, rng Source, cfg Config) (*Session, error) {
	if err := ValidateLevels(levels); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("tilematch: nil random source")
	}
	if cfg.Rows < MinRunLength || cfg.Cols < MinRunLength {
		return nil, fmt.Errorf("tilematch: board %dx%d is smaller than %dx%d",
			cfg.Rows, cfg.Cols, MinRunLength, MinRunLength)
	}
	if !cfg.Alphabet.Valid() {
		return nil, fmt.Errorf("tilematch: alphabet size %d out of range [%d, %d]",
			cfg.Alphabet, MinAlphabet, DefaultAlphabet)
	}
	if cfg.StarThreshold <= 0 {
		cfg.StarThreshold = DefaultConfig().StarThreshold
	}
	if cfg.MaxCascades <= 0 {
		cfg.MaxCascades = DefaultMaxCascades
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		cfg:    cfg,
		levels: append([]Level(nil), levels...),
		rng:    rng,
		logger: logger,
	}
	s.loadLevel(0)
	return s, nil
}

// loadLevel installs a fresh board and the limits of level idx.
func (s *Session) loadLevel(idx int) {
	lvl := s.levels[idx]

	s.levelIndex = idx
	s.grid = NewGrid(s.cfg.Rows, s.cfg.Cols)
	s.grid.Fill(s.rng, s.cfg.Alphabet)
	if s.cfg.SettleOnLoad {
		res := Resolve(s.grid, s.rng, s.cfg.Alphabet, s.cfg.MaxCascades)
		if res.Overflow {
			s.logger.Warn("initial board did not settle", "level", idx+1, "passes", res.Passes)
		}
	}

	s.score = 0
	s.moves = 0
	s.timeRemaining = lvl.TimeLimit
	s.starCount = 0
	s.booster = false
	s.paused = false
	s.state = StatePlaying
	s.outcome = OutcomeNone
	s.selected = nil
	s.hint = nil
	s.lastScore = 0
	s.lastSpawns = nil

	s.logger.Debug("level loaded",
		"level", idx+1,
		"target", lvl.TargetScore,
		"max_moves", lvl.MaxMoves,
		"time_limit", lvl.TimeLimit,
	)
}

// SetGrid replaces the current board, e.g. with a hand-built position.
// The grid is copied and must match the configured dimensions.
func (s *Session) SetGrid(g *Grid) error {
	if g.Rows() != s.cfg.Rows || g.Cols() != s.cfg.Cols {
		return fmt.Errorf("tilematch: grid is %dx%d, session expects %dx%d",
			g.Rows(), g.Cols(), s.cfg.Rows, s.cfg.Cols)
	}
	s.grid = g.Clone()
	s.selected = nil
	s.hint = nil
	return nil
}

// Level returns the configuration of the current level.
func (s *Session) Level() Level {
	return s.levels[s.levelIndex]
}

// ApplyIntent processes one intent to completion and returns the new state.
// The error, if any, describes why the intent was rejected or cut short; the
// snapshot is valid either way.
func (s *Session) ApplyIntent(in Intent) (Snapshot, error) {
	prevScore, prevSpawns := s.lastScore, s.lastSpawns
	s.lastScore = 0
	s.lastSpawns = nil

	err := s.apply(in)
	if err != nil && !errors.Is(err, ErrCascadeOverflow) {
		// Rejected intents leave the last resolution summary as it was.
		s.lastScore, s.lastSpawns = prevScore, prevSpawns
		s.logger.Debug("intent rejected", "intent", in, "error", err)
	}
	return s.Snapshot(), err
}

func (s *Session) apply(in Intent) error {
	switch in.Kind {
	case IntentResetGame:
		s.results = nil
		s.loadLevel(0)
		s.logger.Info("game reset")
		return nil
	case IntentAdvanceLevel:
		return s.advance()
	}

	if s.state != StatePlaying {
		return fmt.Errorf("%v while %s: %w", in, s.state, ErrNoOp)
	}

	if in.Kind == IntentTogglePause {
		s.paused = !s.paused
		return nil
	}
	if s.paused {
		return fmt.Errorf("%v while paused: %w", in, ErrNoOp)
	}

	switch in.Kind {
	case IntentSelectCell:
		return s.selectCell(in.At)
	case IntentActivatePowerTile:
		return s.activate(in.At)
	case IntentUseBooster:
		return s.useBooster()
	case IntentTickTimer:
		if s.timeRemaining > 0 {
			s.timeRemaining--
		}
		s.evaluate()
		return nil
	case IntentHint:
		h, ok := FindHint(s.grid)
		if !ok {
			s.hint = nil
			return fmt.Errorf("no move available: %w", ErrNoOp)
		}
		s.hint = &h
		return nil
	default:
		return fmt.Errorf("unknown intent %d: %w", in.Kind, ErrNoOp)
	}
}

// selectCell implements the two-click swap.
func (s *Session) selectCell(at Coord) error {
	if !s.grid.InBounds(at) {
		return fmt.Errorf("select %v: %w", at, ErrInvalidCoordinate)
	}

	if s.selected == nil {
		s.selected = &at
		return nil
	}

	first := *s.selected
	switch {
	case first == at:
		s.selected = nil
		return nil
	case !IsAdjacent(first, at):
		s.selected = &at
		return fmt.Errorf("select %v after %v: %w", at, first, ErrIllegalSelection)
	}

	if err := s.grid.Swap(first, at); err != nil {
		s.selected = nil
		return err
	}
	s.selected = nil
	s.hint = nil
	s.moves++

	err := s.resolve()
	s.evaluate()
	return err
}

// activate sets off the power tile at c and resolves the aftermath.
func (s *Session) activate(at Coord) error {
	act, err := Activate(s.grid, at, s.rng, s.cfg.Alphabet)
	if err != nil {
		return err
	}
	s.selected = nil
	s.hint = nil
	s.countStars(act.Cleared)

	s.logger.Debug("power tile activated", "at", at, "tile", act.Tile, "cleared", len(act.Cleared))

	err = s.resolve()
	s.evaluate()
	return err
}

// useBooster empties every star cell and lets the board fall and refill.
func (s *Session) useBooster() error {
	if !s.booster {
		return fmt.Errorf("booster not charged (%d/%d stars): %w",
			s.starCount, s.cfg.StarThreshold, ErrNoOp)
	}

	cleared := 0
	s.grid.ForEach(func(c Coord, cell Cell) {
		if cell.Is(StarSymbol) {
			s.grid.Set(c, Empty())
			cleared++
		}
	})
	s.starCount = 0
	s.booster = false
	s.selected = nil
	s.hint = nil

	s.logger.Debug("booster used", "cleared", cleared)

	err := s.resolve()
	s.evaluate()
	return err
}

// resolve runs the cascade resolver and books its score and stars.
func (s *Session) resolve() error {
	res := Resolve(s.grid, s.rng, s.cfg.Alphabet, s.cfg.MaxCascades)
	s.score += res.ScoreDelta
	s.lastScore += res.ScoreDelta
	s.lastSpawns = append(s.lastSpawns, res.Spawns...)
	s.countStars(res.Cleared)

	if res.Overflow {
		s.logger.Warn("cascade overflow, accepting board",
			"passes", res.Passes,
			"level", s.levelIndex+1,
		)
		return ErrCascadeOverflow
	}
	return nil
}

func (s *Session) countStars(cells []Cell) {
	for _, cell := range cells {
		if !cell.Is(StarSymbol) {
			continue
		}
		s.starCount++
		if s.starCount >= s.cfg.StarThreshold && !s.booster {
			s.booster = true
			s.logger.Debug("booster charged", "stars", s.starCount)
		}
	}
}

// evaluate moves a playing session to LevelComplete once any limit is hit.
// Calling it again after the transition changes nothing.
func (s *Session) evaluate() {
	if s.state != StatePlaying {
		return
	}
	lvl := s.Level()
	if s.score < lvl.TargetScore && s.moves < lvl.MaxMoves && s.timeRemaining > 0 {
		return
	}

	s.state = StateLevelComplete
	s.outcome = OutcomeLost
	if s.score >= lvl.TargetScore {
		s.outcome = OutcomeWon
	}
	s.selected = nil
	s.hint = nil
	s.results = append(s.results, LevelResult{
		Level:   s.levelIndex,
		Score:   s.score,
		Moves:   s.moves,
		Outcome: s.outcome,
	})

	s.logger.Info("level complete",
		"level", s.levelIndex+1,
		"score", s.score,
		"moves", s.moves,
		"time_left", s.timeRemaining,
		"outcome", s.outcome,
	)
}

// advance leaves a completed level.
func (s *Session) advance() error {
	if s.state != StateLevelComplete {
		return fmt.Errorf("advance while %s: %w", s.state, ErrNoOp)
	}
	if s.levelIndex >= len(s.levels)-1 {
		s.state = StateAllLevelsComplete
		s.logger.Info("all levels complete", "levels", len(s.levels))
		return nil
	}
	s.loadLevel(s.levelIndex + 1)
	return nil
}

// Snapshot returns a deep copy of the current state.
func (s *Session) Snapshot() Snapshot {
	lvl := s.Level()
	snap := Snapshot{
		Board:          s.grid.Cells(),
		Score:          s.score,
		Moves:          s.moves,
		TimeRemaining:  s.timeRemaining,
		TargetScore:    lvl.TargetScore,
		MaxMoves:       lvl.MaxMoves,
		StarCount:      s.starCount,
		StarThreshold:  s.cfg.StarThreshold,
		BoosterEnabled: s.booster,
		Paused:         s.paused,
		State:          s.state,
		Outcome:        s.outcome,
		LevelIndex:     s.levelIndex,
		LevelCount:     len(s.levels),
		LastScore:      s.lastScore,
		LastSpawns:     append([]Spawn(nil), s.lastSpawns...),
		Results:        append([]LevelResult(nil), s.results...),
	}
	if s.selected != nil {
		sel := *s.selected
		snap.Selected = &sel
	}
	if s.hint != nil {
		h := *s.hint
		snap.Hint = &h
	}
	return snap
}
