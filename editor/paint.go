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

// Paint writes c into every selected cell and returns the prior character of
// each cell that actually changed. Painting an empty selection is a no-op,
// and painting the same character twice changes nothing the second time, so
// len(Paint(...)) is also the changed-cell count. The selection itself is
// not touched.
func Paint(g *Grid, s *Selection, c rune) []mg.CellEdit {
	var edits []mg.CellEdit
	for p := range s.cells {
		old := g.Cell(p)
		if old == c {
			continue
		}
		edits = append(edits, mg.CellEdit{At: p, Char: old})
		g.Set(p, c)
	}
	return edits
}

// Restore writes recorded characters back and returns the inverse edits, so
// an undo can itself be undone by repeating.
func Restore(g *Grid, edits []mg.CellEdit) []mg.CellEdit {
	inverse := make([]mg.CellEdit, 0, len(edits))
	for _, edit := range edits {
		if !g.Contains(edit.At) {
			continue
		}
		inverse = append(inverse, mg.CellEdit{At: edit.At, Char: g.Cell(edit.At)})
		g.Set(edit.At, edit.Char)
	}
	return inverse
}
