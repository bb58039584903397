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
	mg "github.com/telsin/mapgrid/types"
)

// A Selection is the set of cells a paint will touch. Cells are unique by
// construction; insertion order carries no meaning.

type Selection struct {
	cells map[mg.Point]bool
}

func NewSelection() *Selection {
	return &Selection{cells: make(map[mg.Point]bool)}
}

func (s *Selection) Count() int {
	return len(s.cells)
}

func (s *Selection) Contains(p mg.Point) bool {
	return s.cells[p]
}

func (s *Selection) Clear() {
	s.cells = make(map[mg.Point]bool)
}

// Points returns the selected cells in unspecified order.
func (s *Selection) Points() []mg.Point {
	points := make([]mg.Point, 0, len(s.cells))
	for p := range s.cells {
		points = append(points, p)
	}
	return points
}

// BeginDrag starts a gesture at p. Unless the additive policy is on, the
// prior selection is replaced. The starting cell joins the selection under
// the same qualification rule as every later drag point.
func (s *Selection) BeginDrag(g *Grid, p mg.Point, settings mg.Settings) {
	if !settings.Additive {
		s.Clear()
	}
	s.ExtendDrag(g, p, settings)
}

// ExtendDrag adds the square brush neighborhood of p, out to BrushRadius
// cells in each direction, clipped to the grid. Under SelectSpacesOnly a cell
// qualifies only while it holds a space.
func (s *Selection) ExtendDrag(g *Grid, p mg.Point, settings mg.Settings) {
	if g.RowCount() == 0 || g.ColCount() == 0 {
		return
	}
	r := settings.BrushRadius
	if r < 0 {
		r = 0
	}
	p = g.Clip(p)
	top := clipToRange(p.Row-r, 0, g.RowCount()-1)
	bottom := clipToRange(p.Row+r, 0, g.RowCount()-1)
	left := clipToRange(p.Col-r, 0, g.ColCount()-1)
	right := clipToRange(p.Col+r, 0, g.ColCount()-1)
	for row := top; row <= bottom; row++ {
		for col := left; col <= right; col++ {
			s.add(g, mg.Point{Row: row, Col: col}, settings.Mode)
		}
	}
}

// EndDrag finalizes the gesture. The selection persists until the next
// BeginDrag or an explicit clear.
func (s *Selection) EndDrag() {
}

// SelectRectangle selects every qualifying cell in the bounding rectangle of
// the two corners, both inclusive. Corners outside the grid are clipped.
func (s *Selection) SelectRectangle(g *Grid, a, b mg.Point, settings mg.Settings) {
	if g.RowCount() == 0 || g.ColCount() == 0 {
		return
	}
	if !settings.Additive {
		s.Clear()
	}
	a = g.Clip(a)
	b = g.Clip(b)
	if a.Row > b.Row {
		a.Row, b.Row = b.Row, a.Row
	}
	if a.Col > b.Col {
		a.Col, b.Col = b.Col, a.Col
	}
	for row := a.Row; row <= b.Row; row++ {
		for col := a.Col; col <= b.Col; col++ {
			s.add(g, mg.Point{Row: row, Col: col}, settings.Mode)
		}
	}
}

// Filter drops cells that no longer qualify under the given mode. Toggling
// space-only selection trims the live selection immediately.
func (s *Selection) Filter(g *Grid, settings mg.Settings) {
	if settings.Mode != mg.SelectSpacesOnly {
		return
	}
	for p := range s.cells {
		if g.Cell(p) != ' ' {
			delete(s.cells, p)
		}
	}
}

// Remove drops the brush neighborhood of p from the selection.
func (s *Selection) Remove(g *Grid, p mg.Point, settings mg.Settings) {
	if g.RowCount() == 0 || g.ColCount() == 0 {
		return
	}
	r := settings.BrushRadius
	if r < 0 {
		r = 0
	}
	p = g.Clip(p)
	for row := p.Row - r; row <= p.Row+r; row++ {
		for col := p.Col - r; col <= p.Col+r; col++ {
			delete(s.cells, mg.Point{Row: row, Col: col})
		}
	}
}

func (s *Selection) add(g *Grid, p mg.Point, mode mg.SelectMode) {
	if mode == mg.SelectSpacesOnly && g.Cell(p) != ' ' {
		return
	}
	s.cells[p] = true
}
