// Package levels provides level loading for breakout.
// This package depends on breakout but breakout does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout/levels/formats"
)

//go:embed defaults/*.lvl
var defaultFS embed.FS

// ErrNotFound is returned when a level ID does not exist.
var ErrNotFound = errors.New("levels: level not found")

// Level is a loaded level definition plus where it came from.
type Level struct {
	breakout.LevelData
	FilePath string // Empty for built-in levels
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll loads every level file directly inside Root, sorted by file name.
// Any malformed file fails the whole load.
func (l *Loader) LoadAll() ([]Level, error) {
	entries, err := os.ReadDir(l.Root)
	if err != nil {
		return nil, fmt.Errorf("levels: reading directory %s: %w", l.Root, err)
	}

	var levels []Level
	for _, e := range entries {
		if e.IsDir() || !IsLevelFile(e.Name()) {
			continue
		}
		lvl, err := l.LoadFile(filepath.Join(l.Root, e.Name()))
		if err != nil {
			return nil, err
		}
		levels = append(levels, lvl)
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("levels: no level files in %s", l.Root)
	}

	// ReadDir already sorts by name; keep it explicit for determinism.
	slices.SortFunc(levels, func(a, b Level) int {
		return strings.Compare(filepath.Base(a.FilePath), filepath.Base(b.FilePath))
	})
	return levels, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading file %s: %w", p, err)
	}
	parsed, err := Parse(filepath.Base(p), data)
	if err != nil {
		return Level{}, err
	}
	return Level{LevelData: parsed.ToData(), FilePath: p}, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Parse routes a file's content to the parser for its extension. The file
// stem becomes the level ID unless the format carries its own.
func Parse(name string, data []byte) (formats.Level, error) {
	ext := strings.ToLower(path.Ext(name))
	id := strings.TrimSuffix(name, path.Ext(name))
	switch ext {
	case ".lvl":
		return formats.ParseText(id, data)
	case ".yaml", ".yml":
		return formats.ParseYAML(id, data)
	default:
		return formats.Level{}, fmt.Errorf("levels: unsupported extension %q", ext)
	}
}

// IsLevelFile reports whether name has a supported level extension.
func IsLevelFile(name string) bool {
	return slices.Contains(formats.FormatExtensions(), strings.ToLower(filepath.Ext(name)))
}

// Defaults returns the built-in levels in play order.
func Defaults() []Level {
	entries, err := fs.ReadDir(defaultFS, "defaults")
	if err != nil {
		panic(fmt.Sprintf("levels: embedded defaults: %v", err))
	}
	levels := make([]Level, 0, len(entries))
	for _, e := range entries {
		data, err := defaultFS.ReadFile(path.Join("defaults", e.Name()))
		if err != nil {
			panic(fmt.Sprintf("levels: embedded %s: %v", e.Name(), err))
		}
		parsed, err := Parse(e.Name(), data)
		if err != nil {
			panic(fmt.Sprintf("levels: embedded %s: %v", e.Name(), err))
		}
		levels = append(levels, Level{LevelData: parsed.ToData()})
	}
	return levels
}

// Load returns the levels in dir, or the built-in levels when dir is empty.
func Load(dir string) ([]Level, error) {
	if dir == "" {
		return Defaults(), nil
	}
	return NewLoader(dir).LoadAll()
}

// Data strips file information, giving the slice the game consumes.
func Data(levels []Level) []breakout.LevelData {
	out := make([]breakout.LevelData, len(levels))
	for i, l := range levels {
		out[i] = l.LevelData
	}
	return out
}
