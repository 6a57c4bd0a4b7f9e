// Package formats provides pluggable campaign file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tilematch/internal/games/tilematch/core"
)

// YAMLCampaign represents the YAML structure for a campaign file.
type YAMLCampaign struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Levels   []YAMLLevel       `yaml:"levels"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLLevel represents a single level in YAML format.
type YAMLLevel struct {
	Name        string `yaml:"name,omitempty"`
	TargetScore int    `yaml:"target_score"`
	MaxMoves    int    `yaml:"max_moves"`
	TimeLimit   int    `yaml:"time_limit"` // Seconds
}

// Campaign represents a parsed campaign ready for use.
type Campaign struct {
	ID         string
	Name       string
	Levels     []core.Level
	LevelNames []string
	Metadata   map[string]string
}

// ParseYAML parses a YAML campaign file. Levels are validated; a campaign
// with no levels or a non-positive limit is rejected.
func ParseYAML(data []byte) (Campaign, error) {
	var yc YAMLCampaign
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Campaign{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yc.ID == "" {
		return Campaign{}, fmt.Errorf("campaign has no id")
	}

	c := Campaign{
		ID:         yc.ID,
		Name:       yc.Name,
		Levels:     make([]core.Level, 0, len(yc.Levels)),
		LevelNames: make([]string, 0, len(yc.Levels)),
		Metadata:   yc.Metadata,
	}
	if c.Name == "" {
		c.Name = c.ID
	}

	for i, yl := range yc.Levels {
		c.Levels = append(c.Levels, core.Level{
			TargetScore: yl.TargetScore,
			MaxMoves:    yl.MaxMoves,
			TimeLimit:   yl.TimeLimit,
		})
		name := yl.Name
		if name == "" {
			name = fmt.Sprintf("Level %d", i+1)
		}
		c.LevelNames = append(c.LevelNames, name)
	}

	if err := core.ValidateLevels(c.Levels); err != nil {
		return Campaign{}, err
	}
	return c, nil
}

// MarshalYAML converts a campaign back to its file form.
func MarshalYAML(c Campaign) ([]byte, error) {
	yc := YAMLCampaign{
		ID:       c.ID,
		Name:     c.Name,
		Metadata: c.Metadata,
	}
	for i, l := range c.Levels {
		yl := YAMLLevel{
			TargetScore: l.TargetScore,
			MaxMoves:    l.MaxMoves,
			TimeLimit:   l.TimeLimit,
		}
		if i < len(c.LevelNames) {
			yl.Name = c.LevelNames[i]
		}
		yc.Levels = append(yc.Levels, yl)
	}
	return yaml.Marshal(yc)
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
