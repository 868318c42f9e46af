// Package breakout implements a brick breaker simulation: a paddle, a ball,
// a grid of bricks and falling power-ups, stepped one frame at a time.
package breakout

import (
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Tile codes in a level grid.
const (
	TileEmpty = 0 // No brick
	TileSolid = 1 // Indestructible brick
	// Codes 2 and above are destructible bricks tinted by brickPalette.
)

// Tints for level bricks.
var (
	solidColor = core.RGB(0.8, 0.8, 0.7)

	// brickPalette is indexed by tile code minus 2. Larger codes reuse the
	// last entry.
	brickPalette = []core.Color{
		core.RGB(0.2, 0.6, 1.0),
		core.RGB(0.0, 0.7, 0.0),
		core.RGB(0.8, 0.8, 0.4),
		core.RGB(1.0, 0.5, 0.0),
	}
)

// brickColor returns the tint for a destructible tile code.
func brickColor(code int) core.Color {
	idx := min(code-2, len(brickPalette)-1)
	return brickPalette[max(idx, 0)]
}

// LevelData is a named tile grid as read from a level file.
type LevelData struct {
	ID   string // Stable identifier, usually the file stem
	Name string
	Grid [][]int
}

// LoadError reports a malformed level grid.
// Line and Col are 1-based; zero means the position is not known.
type LoadError struct {
	Level  string
	Line   int
	Col    int
	Reason string
}

func (e *LoadError) Error() string {
	name := e.Level
	if name == "" {
		name = "<grid>"
	}
	switch {
	case e.Line > 0 && e.Col > 0:
		return fmt.Sprintf("level %s:%d:%d: %s", name, e.Line, e.Col, e.Reason)
	case e.Line > 0:
		return fmt.Sprintf("level %s:%d: %s", name, e.Line, e.Reason)
	default:
		return fmt.Sprintf("level %s: %s", name, e.Reason)
	}
}

// ValidateGrid checks that grid is non-empty, rectangular and holds only
// non-negative codes.
func ValidateGrid(name string, grid [][]int) error {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return &LoadError{Level: name, Reason: "empty grid"}
	}
	cols := len(grid[0])
	for y, row := range grid {
		if len(row) != cols {
			return &LoadError{
				Level:  name,
				Line:   y + 1,
				Reason: fmt.Sprintf("row has %d tiles, expected %d", len(row), cols),
			}
		}
		for x, code := range row {
			if code < 0 {
				return &LoadError{
					Level:  name,
					Line:   y + 1,
					Col:    x + 1,
					Reason: fmt.Sprintf("negative tile code %d", code),
				}
			}
		}
	}
	return nil
}

// Brick is one tile of a level.
type Brick struct {
	core.Rect
	Solid     bool
	Destroyed bool
	Color     core.Color
}

// Level is the brick set built from a tile grid.
// Bricks are stored in row-major grid order.
type Level struct {
	Name   string
	Bricks []Brick
}

// Load builds the brick set from grid, fitted into a fieldW x fieldH area.
// Any previous bricks are discarded. On error the level is left unchanged.
func (l *Level) Load(grid [][]int, fieldW, fieldH float64) error {
	if err := ValidateGrid(l.Name, grid); err != nil {
		return err
	}

	rows, cols := len(grid), len(grid[0])
	unitW := fieldW / float64(cols)
	unitH := fieldH / float64(rows)

	bricks := make([]Brick, 0, rows*cols)
	for y, row := range grid {
		for x, code := range row {
			if code == TileEmpty {
				continue
			}
			b := Brick{Rect: core.NewRect(float64(x)*unitW, float64(y)*unitH, unitW, unitH)}
			if code == TileSolid {
				b.Solid = true
				b.Color = solidColor
			} else {
				b.Color = brickColor(code)
			}
			bricks = append(bricks, b)
		}
	}
	l.Bricks = bricks
	return nil
}

// IsCompleted reports whether every destructible brick is destroyed.
// A level of only solid bricks is always complete.
func (l *Level) IsCompleted() bool {
	return l.Remaining() == 0
}

// Remaining returns the number of destructible bricks still standing.
func (l *Level) Remaining() int {
	n := 0
	for i := range l.Bricks {
		if !l.Bricks[i].Solid && !l.Bricks[i].Destroyed {
			n++
		}
	}
	return n
}
