// Package config provides YAML-based game configuration loading and
// difficulty presets for tilematch.
package config

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilematch/internal/games/tilematch/core"
)

// TilematchConfig contains all configuration for the game.
type TilematchConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Booster    BoosterConfig    `yaml:"booster"`
	Cascade    CascadeConfig    `yaml:"cascade"`
	Timer      TimerConfig      `yaml:"timer"`
	Levels     LevelsConfig     `yaml:"levels"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the board dimensions and symbol set.
type BoardConfig struct {
	Rows         int  `yaml:"rows"`
	Cols         int  `yaml:"cols"`
	Alphabet     int  `yaml:"alphabet"`       // Number of symbols in play, 3-8
	SettleOnLoad bool `yaml:"settle_on_load"` // Clear runs left by the initial fill
}

// BoosterConfig defines the star booster.
type BoosterConfig struct {
	StarThreshold int `yaml:"star_threshold"`
}

// CascadeConfig bounds chain reactions.
type CascadeConfig struct {
	MaxPasses int `yaml:"max_passes"`
}

// TimerConfig defines the real-time level timer.
type TimerConfig struct {
	TickMillis int `yaml:"tick_millis"` // Milliseconds per timer second; 0 disables the timer
}

// LevelsConfig selects where campaigns come from.
type LevelsConfig struct {
	Dir      string `yaml:"dir"`      // Directory of campaign files, may be empty
	Campaign string `yaml:"campaign"` // Campaign ID to play
}

// DifficultyConfig scales every level's time and move limits.
type DifficultyConfig struct {
	Preset    DifficultyPreset `yaml:"preset"`
	TimeScale float64          `yaml:"time_scale"`
	MoveScale float64          `yaml:"move_scale"`
}

// TickInterval returns the timer period.
func (c TilematchConfig) TickInterval() time.Duration {
	return time.Duration(c.Timer.TickMillis) * time.Millisecond
}

// SessionConfig converts the board settings into an engine configuration.
func (c TilematchConfig) SessionConfig(logger *log.Logger) core.Config {
	return core.Config{
		Rows:          c.Board.Rows,
		Cols:          c.Board.Cols,
		Alphabet:      core.Alphabet(c.Board.Alphabet),
		StarThreshold: c.Booster.StarThreshold,
		MaxCascades:   c.Cascade.MaxPasses,
		SettleOnLoad:  c.Board.SettleOnLoad,
		Logger:        logger,
	}
}

// Validate checks values the engine would reject or misbehave on.
func (c TilematchConfig) Validate() error {
	if c.Board.Rows < core.MinRunLength || c.Board.Cols < core.MinRunLength {
		return fmt.Errorf("board %dx%d is smaller than %dx%d",
			c.Board.Rows, c.Board.Cols, core.MinRunLength, core.MinRunLength)
	}
	if !core.Alphabet(c.Board.Alphabet).Valid() {
		return fmt.Errorf("alphabet %d out of range [%d, %d]",
			c.Board.Alphabet, core.MinAlphabet, core.DefaultAlphabet)
	}
	if c.Booster.StarThreshold <= 0 {
		return fmt.Errorf("star threshold must be positive, got %d", c.Booster.StarThreshold)
	}
	if c.Cascade.MaxPasses <= 0 {
		return fmt.Errorf("cascade max passes must be positive, got %d", c.Cascade.MaxPasses)
	}
	if c.Timer.TickMillis < 0 {
		return fmt.Errorf("timer tick must not be negative, got %d", c.Timer.TickMillis)
	}
	if _, ok := ParsePreset(string(c.Difficulty.Preset)); !ok {
		return fmt.Errorf("unknown difficulty preset %q", c.Difficulty.Preset)
	}
	return nil
}
