// Package formats provides pluggable level file format parsers.
package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

// Level represents a parsed level ready for use.
type Level struct {
	ID   string
	Name string
	Grid [][]int
}

// ToData converts the parsed level to the form the game consumes.
func (l Level) ToData() breakout.LevelData {
	return breakout.LevelData{ID: l.ID, Name: l.Name, Grid: l.Grid}
}

// namePrefix marks the optional display-name comment in text levels.
const namePrefix = "name:"

// ParseText parses the plain grid format: whitespace-separated tile codes,
// one row per line. Blank lines are skipped and lines starting with '#' are
// comments; a "# name: ..." comment sets the display name.
//
// id names the level in errors and becomes its ID.
func ParseText(id string, data []byte) (Level, error) {
	level := Level{ID: id}

	sc := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if comment, ok := strings.CutPrefix(trimmed, "#"); ok {
			if name, ok := strings.CutPrefix(strings.TrimSpace(comment), namePrefix); ok {
				level.Name = strings.TrimSpace(name)
			}
			continue
		}

		row, err := parseRow(id, lineNo, line)
		if err != nil {
			return Level{}, err
		}
		if len(level.Grid) > 0 && len(row) != len(level.Grid[0]) {
			return Level{}, &breakout.LoadError{
				Level:  id,
				Line:   lineNo,
				Reason: fmt.Sprintf("row has %d tiles, expected %d", len(row), len(level.Grid[0])),
			}
		}
		level.Grid = append(level.Grid, row)
	}
	if err := sc.Err(); err != nil {
		return Level{}, fmt.Errorf("reading level %s: %w", id, err)
	}

	if err := breakout.ValidateGrid(id, level.Grid); err != nil {
		return Level{}, err
	}
	return level, nil
}

// parseRow splits a line into tile codes, reporting the 1-based column of
// the first bad token.
func parseRow(id string, lineNo int, line string) ([]int, error) {
	var row []int
	col := 0
	for col < len(line) {
		// Skip separators
		for col < len(line) && (line[col] == ' ' || line[col] == '\t' || line[col] == '\r') {
			col++
		}
		if col >= len(line) {
			break
		}
		start := col
		for col < len(line) && line[col] != ' ' && line[col] != '\t' && line[col] != '\r' {
			col++
		}
		token := line[start:col]

		code, err := strconv.Atoi(token)
		if err != nil {
			return nil, &breakout.LoadError{
				Level:  id,
				Line:   lineNo,
				Col:    start + 1,
				Reason: fmt.Sprintf("invalid tile %q", token),
			}
		}
		if code < 0 {
			return nil, &breakout.LoadError{
				Level:  id,
				Line:   lineNo,
				Col:    start + 1,
				Reason: fmt.Sprintf("negative tile code %d", code),
			}
		}
		row = append(row, code)
	}
	return row, nil
}

// EncodeText renders a level in the plain grid format.
func EncodeText(l Level) []byte {
	var b bytes.Buffer
	if l.Name != "" {
		fmt.Fprintf(&b, "# %s %s\n", namePrefix, l.Name)
	}
	for _, row := range l.Grid {
		for i, code := range row {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.Itoa(code))
		}
		b.WriteByte('\n')
	}
	return b.Bytes()
}
