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

package operations

import (
	mg "github.com/telsin/mapgrid/types"
)

// Paint fills the current selection with a character. An empty selection is
// a legal no-op. Count reports how many cells actually changed, for the
// message bar.
type Paint struct {
	operation
	Character rune
	Count     int
}

func (op *Paint) Perform(e mg.Editor) mg.Operation {
	op.init(e)
	edits := e.FillSelection(op.Character)
	op.Count = len(edits)
	if len(edits) == 0 {
		return nil
	}
	inverse := &RestoreCells{Edits: edits}
	inverse.copyForUndo(&op.operation)
	return inverse
}

// RestoreCells writes recorded characters back into their cells. It is the
// inverse of a Paint, and its own inverse is another RestoreCells.
type RestoreCells struct {
	operation
	Edits []mg.CellEdit
}

func (op *RestoreCells) Perform(e mg.Editor) mg.Operation {
	op.init(e)
	edits := e.RestoreCells(op.Edits)
	if len(edits) == 0 {
		return nil
	}
	inverse := &RestoreCells{Edits: edits}
	inverse.copyForUndo(&op.operation)
	return inverse
}
