package config

import "strings"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // Campaign limits exactly as written
)

// Presets lists every preset in display order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParsePreset converts a name to a preset. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DifficultyNormal, true
	}
	for _, p := range Presets() {
		if string(p) == name {
			return p, true
		}
	}
	return "", false
}

// ScalesForPreset returns the time and move multipliers for a preset.
func ScalesForPreset(preset DifficultyPreset) (timeScale, moveScale float64) {
	switch preset {
	case DifficultyEasy:
		return 1.5, 1.5
	case DifficultyHard:
		return 0.75, 0.75
	default:
		return 1.0, 1.0
	}
}

// IsFixedPreset returns true if the preset disables scaling.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *TilematchConfig, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset
	cfg.Difficulty.TimeScale, cfg.Difficulty.MoveScale = ScalesForPreset(preset)

	// Harder boards also use the full symbol set, easier ones drop one.
	switch preset {
	case DifficultyEasy:
		if cfg.Board.Alphabet > 5 {
			cfg.Board.Alphabet--
		}
	case DifficultyHard:
		cfg.Board.Alphabet = 8
	}
}

// Scales returns the effective multipliers, ignoring the file's values for
// the fixed preset and treating non-positive values as 1.
func (d DifficultyConfig) Scales() (timeScale, moveScale float64) {
	if IsFixedPreset(d.Preset) {
		return 1.0, 1.0
	}
	timeScale, moveScale = d.TimeScale, d.MoveScale
	if timeScale <= 0 {
		timeScale = 1.0
	}
	if moveScale <= 0 {
		moveScale = 1.0
	}
	return timeScale, moveScale
}
