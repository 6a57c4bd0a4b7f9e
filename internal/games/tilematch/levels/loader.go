// Package levels provides campaign loading for tilematch.
// This package depends on core but core does not depend on levels.
package levels

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tilematch/internal/games/tilematch/core"
	"github.com/vovakirdan/tilematch/internal/games/tilematch/levels/formats"
)

//go:embed default.yaml
var defaultCampaign []byte

// DefaultID is the ID of the built-in campaign.
const DefaultID = "classic"

// Campaign is an ordered list of levels played in one session.
type Campaign struct {
	ID         string
	Name       string
	Levels     []core.Level
	LevelNames []string
	Metadata   map[string]string
	FilePath   string // Empty for the built-in campaign
}

// LevelName returns the display name of level i (0-indexed).
func (c Campaign) LevelName(i int) string {
	if i >= 0 && i < len(c.LevelNames) {
		return c.LevelNames[i]
	}
	return fmt.Sprintf("Level %d", i+1)
}

// Scaled returns a copy with every time and move limit scaled by the given
// factors. Limits never drop below 1.
func (c Campaign) Scaled(timeScale, moveScale float64) Campaign {
	out := c
	out.Levels = make([]core.Level, len(c.Levels))
	for i, l := range c.Levels {
		out.Levels[i] = core.Level{
			TargetScore: l.TargetScore,
			MaxMoves:    scale(l.MaxMoves, moveScale),
			TimeLimit:   scale(l.TimeLimit, timeScale),
		}
	}
	return out
}

func scale(v int, f float64) int {
	if f <= 0 {
		return v
	}
	n := int(float64(v)*f + 0.5)
	if n < 1 {
		return 1
	}
	return n
}

// Default returns the built-in three-level campaign.
func Default() Campaign {
	parsed, err := formats.ParseYAML(defaultCampaign)
	if err != nil {
		// The embedded file is part of the build; fall back to code defaults.
		levels := core.DefaultLevels()
		return Campaign{ID: DefaultID, Name: "Classic", Levels: levels}
	}
	return fromParsed(parsed, "")
}

func fromParsed(p formats.Campaign, path string) Campaign {
	return Campaign{
		ID:         p.ID,
		Name:       p.Name,
		Levels:     p.Levels,
		LevelNames: p.LevelNames,
		Metadata:   p.Metadata,
		FilePath:   path,
	}
}

// Export renders a campaign as YAML.
func Export(c Campaign) ([]byte, error) {
	return formats.MarshalYAML(formats.Campaign{
		ID:         c.ID,
		Name:       c.Name,
		Levels:     c.Levels,
		LevelNames: c.LevelNames,
		Metadata:   c.Metadata,
	})
}

// Loader handles loading campaigns from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new campaign loader. An empty root loads only the
// built-in campaign.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll returns the built-in campaign followed by every valid campaign
// file under Root, sorted by ID. A file reusing the built-in ID replaces it.
// Invalid files are skipped.
func (l *Loader) LoadAll() ([]Campaign, error) {
	byID := map[string]Campaign{DefaultID: Default()}

	if l.Root != "" {
		if _, err := os.Stat(l.Root); err == nil {
			err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() {
					return nil
				}
				if !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
					return nil
				}

				c, err := l.LoadFile(path)
				if err != nil {
					return nil
				}
				byID[c.ID] = c
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
			}
		}
	}

	campaigns := make([]Campaign, 0, len(byID))
	for _, c := range byID {
		campaigns = append(campaigns, c)
	}
	sort.Slice(campaigns, func(i, j int) bool {
		return campaigns[i].ID < campaigns[j].ID
	})
	return campaigns, nil
}

// LoadFile loads a single campaign file.
func (l *Loader) LoadFile(path string) (Campaign, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Campaign{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Campaign{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	return fromParsed(parsed, path), nil
}

// LoadByID loads a specific campaign by ID.
func (l *Loader) LoadByID(id string) (Campaign, error) {
	campaigns, err := l.LoadAll()
	if err != nil {
		return Campaign{}, err
	}
	for _, c := range campaigns {
		if c.ID == id {
			return c, nil
		}
	}
	return Campaign{}, fmt.Errorf("campaign not found: %s", id)
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Campaign, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Campaign{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
