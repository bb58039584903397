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
	"os"

	mg "github.com/telsin/mapgrid/types"
)

// maxUndo caps the undo stack; the oldest edits fall off first.
const maxUndo = 100

// The Editor manages the editing of one grid map.
type Editor struct {
	Cursor     mg.Point       // cursor position
	Offset     mg.Size        // display offset
	Grid       *Grid          // the map being edited
	Selection  *Selection     // cells the next paint will touch
	Palette    *Palette       // biome symbol table
	size       mg.Size        // size of editing area
	settings   mg.Settings    // brush, mode, additive policy
	fileName   string         // where the map came from and goes back to
	modified   bool           // unsaved changes exist
	previous   mg.Operation   // last operation performed, available to repeat
	undo       []mg.Operation // stack of operations to undo
	autoReload bool           // reload when the file changes on disk
}

func NewEditor() *Editor {
	return &Editor{
		Grid:      NewGrid(),
		Selection: NewSelection(),
		Palette:   DefaultPalette(),
		settings:  DefaultSettings(),
	}
}

func (e *Editor) ReadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := e.Grid.LoadBytes(b); err != nil {
		// the previous grid stays active
		return err
	}
	e.fileName = path
	e.Cursor = mg.Point{}
	e.Offset = mg.Size{}
	e.Selection.Clear()
	e.undo = nil
	e.previous = nil
	e.modified = false
	return nil
}

func (e *Editor) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(e.Grid.Bytes()); err != nil {
		return err
	}
	if e.fileName == "" {
		e.fileName = path
	}
	if path == e.fileName {
		e.modified = false
	}
	return nil
}

// Reload re-reads the current file, discarding in-editor state.
func (e *Editor) Reload() error {
	return e.ReadFile(e.fileName)
}

func (e *Editor) FileName() string {
	return e.fileName
}

func (e *Editor) Modified() bool {
	return e.modified
}

func (e *Editor) SetAutoReload(on bool) {
	e.autoReload = on
}

func (e *Editor) AutoReload() bool {
	return e.autoReload
}

// grid access

func (e *Editor) RowCount() int {
	return e.Grid.RowCount()
}

func (e *Editor) ColCount() int {
	return e.Grid.ColCount()
}

func (e *Editor) Cell(p mg.Point) rune {
	return e.Grid.Cell(p)
}

func (e *Editor) CellColor(p mg.Point) mg.Color {
	return e.Palette.Color(e.Grid.Cell(p))
}

// settings

func (e *Editor) GetSettings() mg.Settings {
	return e.settings
}

func (e *Editor) SetSettings(settings mg.Settings) {
	e.settings = settings
}

// selection

func (e *Editor) BeginDrag(p mg.Point, settings mg.Settings) {
	e.Selection.BeginDrag(e.Grid, p, settings)
}

func (e *Editor) ExtendDrag(p mg.Point, settings mg.Settings) {
	e.Selection.ExtendDrag(e.Grid, p, settings)
}

func (e *Editor) EndDrag() {
	e.Selection.EndDrag()
}

func (e *Editor) SelectRectangle(a, b mg.Point, settings mg.Settings) {
	e.Selection.SelectRectangle(e.Grid, a, b, settings)
}

func (e *Editor) ClearSelection() {
	e.Selection.Clear()
}

func (e *Editor) RemoveFromSelection(p mg.Point, settings mg.Settings) {
	e.Selection.Remove(e.Grid, p, settings)
}

func (e *Editor) FilterSelection(settings mg.Settings) {
	e.Selection.Filter(e.Grid, settings)
}

func (e *Editor) Selected(p mg.Point) bool {
	return e.Selection.Contains(p)
}

func (e *Editor) SelectionCount() int {
	return e.Selection.Count()
}

// painting

func (e *Editor) FillSelection(c rune) []mg.CellEdit {
	edits := Paint(e.Grid, e.Selection, c)
	if len(edits) > 0 {
		e.modified = true
	}
	return edits
}

func (e *Editor) RestoreCells(edits []mg.CellEdit) []mg.CellEdit {
	inverse := Restore(e.Grid, edits)
	if len(inverse) > 0 {
		e.modified = true
	}
	return inverse
}

func (e *Editor) PresetCharacter(index int) (rune, bool) {
	return e.Palette.Preset(index)
}

// operations

func (e *Editor) Perform(op mg.Operation) {
	// perform the operation
	inverse := op.Perform(e)
	// save the operation for repeats
	e.previous = op
	// save the inverse of the operation for undo
	if inverse != nil {
		e.undo = append(e.undo, inverse)
		if len(e.undo) > maxUndo {
			e.undo = e.undo[1:]
		}
	}
}

func (e *Editor) Repeat() {
	if e.previous != nil {
		inverse := e.previous.Perform(e)
		if inverse != nil {
			e.undo = append(e.undo, inverse)
		}
	}
}

func (e *Editor) PerformUndo() {
	if len(e.undo) > 0 {
		last := len(e.undo) - 1
		undo := e.undo[last]
		e.undo = e.undo[0:last]
		undo.Perform(e)
	}
}

// cursor and viewport

func (e *Editor) GetCursor() mg.Point {
	return e.Cursor
}

func (e *Editor) SetCursor(cursor mg.Point) {
	e.Cursor = cursor
}

func (e *Editor) SetSize(s mg.Size) {
	e.size = s
}

func (e *Editor) GetSize() mg.Size {
	return e.size
}

func (e *Editor) GetOffset() mg.Size {
	return e.Offset
}

func (e *Editor) Scroll() {
	if e.Cursor.Row < e.Offset.Rows {
		e.Offset.Rows = e.Cursor.Row
	}
	if e.Cursor.Row-e.Offset.Rows >= e.size.Rows {
		e.Offset.Rows = e.Cursor.Row - e.size.Rows + 1
	}
	if e.Cursor.Col < e.Offset.Cols {
		e.Offset.Cols = e.Cursor.Col
	}
	if e.Cursor.Col-e.Offset.Cols >= e.size.Cols {
		e.Offset.Cols = e.Cursor.Col - e.size.Cols + 1
	}
}

func (e *Editor) MoveCursor(direction int, multiplier int) {
	if multiplier < 1 {
		multiplier = 1
	}
	for i := 0; i < multiplier; i++ {
		switch direction {
		case mg.MoveLeft:
			if e.Cursor.Col > 0 {
				e.Cursor.Col--
			}
		case mg.MoveRight:
			if e.Cursor.Col < e.Grid.ColCount()-1 {
				e.Cursor.Col++
			}
		case mg.MoveUp:
			if e.Cursor.Row > 0 {
				e.Cursor.Row--
			}
		case mg.MoveDown:
			if e.Cursor.Row < e.Grid.RowCount()-1 {
				e.Cursor.Row++
			}
		}
	}
	e.KeepCursorInGrid()
}

func (e *Editor) KeepCursorInGrid() {
	if e.Grid.RowCount() == 0 || e.Grid.ColCount() == 0 {
		e.Cursor = mg.Point{}
		return
	}
	e.Cursor = e.Grid.Clip(e.Cursor)
}

func (e *Editor) PageUp() {
	// move to the top of the screen
	e.Cursor.Row = e.Offset.Rows
	// move up by a page
	e.MoveCursor(mg.MoveUp, e.size.Rows)
}

func (e *Editor) PageDown() {
	// move to the bottom of the screen
	e.Cursor.Row = e.Offset.Rows + e.size.Rows - 1
	// move down by a page
	e.MoveCursor(mg.MoveDown, e.size.Rows)
}

func (e *Editor) MoveToRowStart() {
	e.Cursor.Col = 0
}

func (e *Editor) MoveToRowEnd() {
	e.Cursor.Col = e.Grid.ColCount() - 1
	if e.Cursor.Col < 0 {
		e.Cursor.Col = 0
	}
}
