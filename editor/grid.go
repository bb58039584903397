//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
package editor

import (
	"errors"
	"fmt"
	"strings"

	mg "github.com/telsin/mapgrid/types"
)

var (
	// ErrDimensionMismatch is returned by Load when rows differ in length.
	// The load is all-or-nothing: a previously loaded grid stays intact.
	ErrDimensionMismatch = errors.New("rows have unequal lengths")

	// ErrOutOfBounds is returned by Get for a coordinate outside the grid.
	ErrOutOfBounds = errors.New("coordinate outside grid")
)

// A Grid holds the map being edited: a rectangle of single-character cells.
// Dimensions are fixed once loaded.

type Grid struct {
	rows [][]rune
	cols int
}

func NewGrid() *Grid {
	return &Grid{}
}

// Load replaces the grid contents with the given lines. Every line must have
// the length of the first; otherwise the grid is left unchanged and
// ErrDimensionMismatch is returned.
func (g *Grid) Load(lines []string) error {
	rows := make([][]rune, 0, len(lines))
	cols := 0
	for i, line := range lines {
		text := []rune(line)
		if i == 0 {
			cols = len(text)
		} else if len(text) != cols {
			return fmt.Errorf("%w: row %d has %d columns, expected %d",
				ErrDimensionMismatch, i, len(text), cols)
		}
		rows = append(rows, text)
	}
	g.rows = rows
	g.cols = cols
	return nil
}

// LoadBytes splits file contents into lines and loads them. A single trailing
// newline belongs to the file, not the map, and an empty file is a zero-row
// map, not one empty row.
func (g *Grid) LoadBytes(b []byte) error {
	if len(b) == 0 {
		return g.Load(nil)
	}
	s := strings.TrimSuffix(string(b), "\n")
	return g.Load(strings.Split(s, "\n"))
}

func (g *Grid) RowCount() int {
	return len(g.rows)
}

func (g *Grid) ColCount() int {
	return g.cols
}

func (g *Grid) Contains(p mg.Point) bool {
	return p.Row >= 0 && p.Row < len(g.rows) && p.Col >= 0 && p.Col < g.cols
}

func (g *Grid) Get(p mg.Point) (rune, error) {
	if !g.Contains(p) {
		return 0, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, p.Row, p.Col)
	}
	return g.rows[p.Row][p.Col], nil
}

// Cell is Get for callers that have already clipped; it returns 0 outside
// the grid.
func (g *Grid) Cell(p mg.Point) rune {
	if !g.Contains(p) {
		return 0
	}
	return g.rows[p.Row][p.Col]
}

// Set overwrites a cell unconditionally. The selection layer clips every
// coordinate before it gets here, so an out-of-range point is caller misuse
// and fails loudly.
func (g *Grid) Set(p mg.Point, c rune) {
	if !g.Contains(p) {
		panic(fmt.Sprintf("grid.Set outside bounds: (%d,%d) in %dx%d",
			p.Row, p.Col, len(g.rows), g.cols))
	}
	g.rows[p.Row][p.Col] = c
}

// Clip moves a point to the nearest cell inside the grid. Drag gestures
// routinely overshoot the edge, so this is never an error.
func (g *Grid) Clip(p mg.Point) mg.Point {
	p.Row = clipToRange(p.Row, 0, len(g.rows)-1)
	p.Col = clipToRange(p.Col, 0, g.cols-1)
	return p
}

// Serialize reconstructs the text lines in row order.
func (g *Grid) Serialize() []string {
	lines := make([]string, len(g.rows))
	for i, row := range g.rows {
		lines[i] = string(row)
	}
	return lines
}

// Bytes renders the grid back to file form, one line per row.
func (g *Grid) Bytes() []byte {
	var b strings.Builder
	for _, row := range g.rows {
		b.WriteString(string(row))
		b.WriteRune('\n')
	}
	return []byte(b.String())
}

func clipToRange(i, min, max int) int {
	if i < min {
		i = min
	}
	if i > max {
		i = max
	}
	return i
}
