package config

import (
	_ "embed"
)

//go:embed defaults/tilematch.yaml
var defaultTilematchYAML []byte

// DefaultTilematchConfig returns the default configuration.
func DefaultTilematchConfig() TilematchConfig {
	return TilematchConfig{
		Board: BoardConfig{
			Rows:         8,
			Cols:         8,
			Alphabet:     8,
			SettleOnLoad: true,
		},
		Booster: BoosterConfig{
			StarThreshold: 6,
		},
		Cascade: CascadeConfig{
			MaxPasses: 50,
		},
		Timer: TimerConfig{
			TickMillis: 1000,
		},
		Levels: LevelsConfig{
			Campaign: "classic",
		},
		Difficulty: DifficultyConfig{
			Preset:    DifficultyNormal,
			TimeScale: 1.0,
			MoveScale: 1.0,
		},
	}
}
