package formats

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

// YAMLLevel represents the YAML structure for a level file.
//
//	id: fortress
//	name: Fortress
//	rows:
//	  - [1, 1, 1]
//	  - [2, 0, 2]
type YAMLLevel struct {
	ID   string  `yaml:"id,omitempty"`
	Name string  `yaml:"name"`
	Rows [][]int `yaml:"rows"`
}

// ParseYAML parses a YAML level file. fallbackID is used when the file does
// not set its own id.
func ParseYAML(fallbackID string, data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		le := &breakout.LoadError{Level: fallbackID, Reason: err.Error()}
		var te *yaml.TypeError
		if errors.As(err, &te) {
			le.Reason = fmt.Sprintf("bad tile value: %v", te.Errors)
		}
		return Level{}, le
	}

	id := yl.ID
	if id == "" {
		id = fallbackID
	}
	if err := breakout.ValidateGrid(id, yl.Rows); err != nil {
		return Level{}, err
	}

	return Level{ID: id, Name: yl.Name, Grid: yl.Rows}, nil
}

// EncodeYAML renders a level in the YAML format.
func EncodeYAML(l Level) ([]byte, error) {
	return yaml.Marshal(YAMLLevel{ID: l.ID, Name: l.Name, Rows: l.Grid})
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".lvl", ".yaml", ".yml"}
}
