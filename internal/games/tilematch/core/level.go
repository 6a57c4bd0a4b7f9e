package core

import "fmt"

// Level holds the limits of one campaign level. A level ends when the score
// reaches TargetScore, moves reach MaxMoves, or the timer runs out.
type Level struct {
	TargetScore int
	MaxMoves    int
	TimeLimit   int // Seconds
}

// Validate checks that every limit is positive.
func (l Level) Validate() error {
	if l.TargetScore <= 0 {
		return fmt.Errorf("target score must be positive, got %d", l.TargetScore)
	}
	if l.MaxMoves <= 0 {
		return fmt.Errorf("max moves must be positive, got %d", l.MaxMoves)
	}
	if l.TimeLimit <= 0 {
		return fmt.Errorf("time limit must be positive, got %d", l.TimeLimit)
	}
	return nil
}

// DefaultLevels returns the built-in three-level campaign.
func DefaultLevels() []Level {
	return []Level{
		{TargetScore: 50, MaxMoves: 20, TimeLimit: 60},
		{TargetScore: 70, MaxMoves: 40, TimeLimit: 100},
		{TargetScore: 100, MaxMoves: 50, TimeLimit: 150},
	}
}

// ValidateLevels checks a whole campaign.
func ValidateLevels(levels []Level) error {
	if len(levels) == 0 {
		return fmt.Errorf("tilematch: no levels configured")
	}
	for i, l := range levels {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("tilematch: level %d: %w", i+1, err)
		}
	}
	return nil
}
