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
package commander

import (
	"errors"
	"fmt"
	"os"

	"github.com/steelseries/golisp"

	"github.com/telsin/mapgrid/operations"
	mg "github.com/telsin/mapgrid/types"
)

// The lisp surface drives the same dispatch path as interactive editing, so
// scripts shape maps with the commands a user would type. One editor per
// process, as in the rest of the program.

var (
	lispCommander *Commander
	lispEditor    mg.Editor
	lispBound     bool
)

func bindLisp(c *Commander, e mg.Editor) {
	lispCommander = c
	lispEditor = e
	if lispBound {
		return
	}
	lispBound = true

	golisp.MakePrimitiveFunction("map-load", "1", mapLoadImpl)
	golisp.MakePrimitiveFunction("map-save", "0", mapSaveImpl)
	golisp.MakePrimitiveFunction("map-save-as", "1", mapSaveAsImpl)
	golisp.MakePrimitiveFunction("map-rows", "0", mapRowsImpl)
	golisp.MakePrimitiveFunction("map-cols", "0", mapColsImpl)
	golisp.MakePrimitiveFunction("char-at", "2", charAtImpl)
	golisp.MakePrimitiveFunction("select-rect", "4", selectRectImpl)
	golisp.MakePrimitiveFunction("select-clear", "0", selectClearImpl)
	golisp.MakePrimitiveFunction("select-mode", "1", selectModeImpl)
	golisp.MakePrimitiveFunction("selection-count", "0", selectionCountImpl)
	golisp.MakePrimitiveFunction("brush", "1", brushImpl)
	golisp.MakePrimitiveFunction("paint", "1", paintImpl)
	golisp.MakePrimitiveFunction("erase", "0", eraseImpl)
	golisp.MakePrimitiveFunction("undo", "0", undoImpl)
}

func lispInt(d *golisp.Data) (int, error) {
	if golisp.IntegerP(d) {
		return int(golisp.IntegerValue(d)), nil
	}
	if golisp.FloatP(d) {
		return int(golisp.FloatValue(d)), nil
	}
	return 0, errors.New("expected a number")
}

func lispString(d *golisp.Data) (string, error) {
	if !golisp.StringP(d) {
		return "", errors.New("expected a string")
	}
	return golisp.StringValue(d), nil
}

func mapLoadImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	path, err := lispString(golisp.Car(args))
	if err != nil {
		return nil, err
	}
	if err := lispEditor.ReadFile(path); err != nil {
		return nil, err
	}
	return golisp.StringWithValue(path), nil
}

func mapSaveImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	path := lispEditor.FileName()
	if path == "" {
		return nil, errors.New("no file name")
	}
	if err := lispEditor.WriteFile(path); err != nil {
		return nil, err
	}
	return golisp.StringWithValue(path), nil
}

func mapSaveAsImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	path, err := lispString(golisp.Car(args))
	if err != nil {
		return nil, err
	}
	if err := lispEditor.WriteFile(path); err != nil {
		return nil, err
	}
	return golisp.StringWithValue(path), nil
}

func mapRowsImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	return golisp.IntegerWithValue(int64(lispEditor.RowCount())), nil
}

func mapColsImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	return golisp.IntegerWithValue(int64(lispEditor.ColCount())), nil
}

func charAtImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	row, err := lispInt(golisp.Car(args))
	if err != nil {
		return nil, err
	}
	col, err := lispInt(golisp.Cadr(args))
	if err != nil {
		return nil, err
	}
	if row < 0 || row >= lispEditor.RowCount() || col < 0 || col >= lispEditor.ColCount() {
		return nil, fmt.Errorf("char-at (%d,%d) is outside the %dx%d map",
			row, col, lispEditor.RowCount(), lispEditor.ColCount())
	}
	c := lispEditor.Cell(mg.Point{Row: row, Col: col})
	return golisp.StringWithValue(string(c)), nil
}

func selectRectImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	coords := make([]int, 4)
	arg := args
	for i := range coords {
		n, err := lispInt(golisp.Car(arg))
		if err != nil {
			return nil, err
		}
		coords[i] = n
		arg = golisp.Cdr(arg)
	}
	lispCommander.Dispatch(mg.Action{
		Command: mg.CommandRectangle,
		At:      mg.Point{Row: coords[0], Col: coords[1]},
		To:      mg.Point{Row: coords[2], Col: coords[3]},
	})
	return golisp.IntegerWithValue(int64(lispEditor.SelectionCount())), nil
}

func selectClearImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	lispEditor.ClearSelection()
	return golisp.IntegerWithValue(0), nil
}

func selectModeImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	mode, err := lispString(golisp.Car(args))
	if err != nil {
		return nil, err
	}
	settings := lispEditor.GetSettings()
	switch mode {
	case "normal":
		settings.Mode = mg.SelectNormal
	case "space":
		settings.Mode = mg.SelectSpacesOnly
	default:
		return nil, fmt.Errorf("select-mode %q: use \"normal\" or \"space\"", mode)
	}
	lispEditor.SetSettings(settings)
	lispEditor.FilterSelection(settings)
	return golisp.StringWithValue(mode), nil
}

func selectionCountImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	return golisp.IntegerWithValue(int64(lispEditor.SelectionCount())), nil
}

func brushImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	radius, err := lispInt(golisp.Car(args))
	if err != nil {
		return nil, err
	}
	if radius < 0 {
		return nil, errors.New("brush radius must be >= 0")
	}
	settings := lispEditor.GetSettings()
	settings.BrushRadius = radius
	lispEditor.SetSettings(settings)
	return golisp.IntegerWithValue(int64(radius)), nil
}

func paintImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	s, err := lispString(golisp.Car(args))
	if err != nil {
		return nil, err
	}
	chars := []rune(s)
	if len(chars) != 1 {
		return nil, fmt.Errorf("paint %q: need exactly one character", s)
	}
	op := &operations.Paint{Character: chars[0]}
	lispEditor.Perform(op)
	return golisp.IntegerWithValue(int64(op.Count)), nil
}

func eraseImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	op := &operations.Paint{Character: ' '}
	lispEditor.Perform(op)
	return golisp.IntegerWithValue(int64(op.Count)), nil
}

func undoImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	lispEditor.PerformUndo()
	return golisp.IntegerWithValue(0), nil
}

// ParseEval evaluates one lisp expression and renders the result (or the
// error) for the message bar.
func (c *Commander) ParseEval(expression string) string {
	value, err := golisp.ParseAndEval(expression)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return golisp.String(value)
}

// ParseEvalFile runs a script of lisp expressions, for --eval batch editing.
func (c *Commander) ParseEvalFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	_, err := golisp.ProcessFile(path)
	return err
}
