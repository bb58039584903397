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
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/telsin/mapgrid/editor"
	mg "github.com/telsin/mapgrid/types"
)

func setup(t *testing.T, lines []string) (*editor.Editor, *Commander) {
	t.Helper()
	e := editor.NewEditor()
	if err := e.Grid.Load(lines); err != nil {
		t.Fatalf("loading grid: %+v", err)
	}
	e.SetSize(mg.Size{Rows: 20, Cols: 20})
	c := NewCommander(e)
	return e, c
}

func keyEvent(k mg.Key) *mg.Event {
	return &mg.Event{Type: mg.EventKey, Key: k}
}

func charEvent(ch rune) *mg.Event {
	return &mg.Event{Type: mg.EventKey, Ch: ch}
}

func mouseEvent(k mg.Key, row, col int) *mg.Event {
	return &mg.Event{Type: mg.EventMouse, Key: k, Mouse: mg.Point{Row: row, Col: col}}
}

func typeKeys(t *testing.T, c *Commander, events ...*mg.Event) {
	t.Helper()
	for _, event := range events {
		if err := c.ProcessEvent(event); err != nil {
			t.Fatalf("ProcessEvent(%+v): %+v", event, err)
		}
	}
}

func command(t *testing.T, c *Commander, line string) {
	t.Helper()
	typeKeys(t, c, charEvent(':'))
	for _, ch := range line {
		if ch == ' ' {
			typeKeys(t, c, keyEvent(mg.KeySpace))
		} else {
			typeKeys(t, c, charEvent(ch))
		}
	}
	typeKeys(t, c, keyEvent(mg.KeyEnter))
}

func TestMouseDragPaints(t *testing.T) {
	e, c := setup(t, []string{"...", "...", "..."})
	typeKeys(t, c,
		mouseEvent(mg.KeyMouseLeft, 0, 0),
		mouseEvent(mg.KeyMouseLeft, 0, 1),
		mouseEvent(mg.KeyMouseLeft, 1, 1),
		mouseEvent(mg.KeyMouseRelease, 1, 1),
		charEvent('f'),
		charEvent('#'),
	)
	expected := []string{"##.", ".#.", "..."}
	if got := e.Grid.Serialize(); !reflect.DeepEqual(got, expected) {
		t.Errorf("after drag paint: %q", got)
	}
}

func TestMouseIgnoresStatusBars(t *testing.T) {
	e, c := setup(t, []string{"...", "...", "..."})
	e.SetSize(mg.Size{Rows: 2, Cols: 20})
	typeKeys(t, c, mouseEvent(mg.KeyMouseLeft, 2, 0))
	if e.SelectionCount() != 0 {
		t.Errorf("click on the info bar selected cells")
	}
}

func TestKeyboardDragPaints(t *testing.T) {
	e, c := setup(t, []string{"...", "...", "..."})
	typeKeys(t, c,
		charEvent('v'),
		charEvent('l'),
		charEvent('j'),
		charEvent('v'),
		charEvent('f'),
		charEvent('s'),
	)
	expected := []string{"ss.", ".s.", "..."}
	if got := e.Grid.Serialize(); !reflect.DeepEqual(got, expected) {
		t.Errorf("after keyboard drag: %q", got)
	}
}

func TestRectangleSelectKeys(t *testing.T) {
	e, c := setup(t, []string{"....", "....", "...."})
	typeKeys(t, c,
		charEvent('V'),
		charEvent('l'),
		charEvent('l'),
		charEvent('j'),
		charEvent('V'),
	)
	if e.SelectionCount() != 6 {
		t.Errorf("expected a 2x3 rectangle, got %d cells", e.SelectionCount())
	}
}

func TestPresetKeyPaints(t *testing.T) {
	e, c := setup(t, []string{"..", ".."})
	typeKeys(t, c, charEvent('v'), charEvent('v'), charEvent('1'))
	// preset 1 is the wall symbol
	if got := e.Grid.Serialize(); !reflect.DeepEqual(got, []string{"#.", ".."}) {
		t.Errorf("after preset paint: %q", got)
	}
}

func TestEraseKey(t *testing.T) {
	e, c := setup(t, []string{"##"})
	typeKeys(t, c, charEvent('v'), charEvent('l'), charEvent('v'), charEvent('e'))
	if got := e.Grid.Serialize(); !reflect.DeepEqual(got, []string{"  "}) {
		t.Errorf("erase left %q", got)
	}
}

func TestSpaceOnlyToggleFiltersSelection(t *testing.T) {
	e, c := setup(t, []string{"# ", "  "})
	command(t, c, "rect 0 0 1 1")
	if e.SelectionCount() != 4 {
		t.Fatalf("setup: expected 4 cells, got %d", e.SelectionCount())
	}
	typeKeys(t, c, keyEvent(mg.KeyTab))
	if e.GetSettings().Mode != mg.SelectSpacesOnly {
		t.Errorf("tab did not switch to space-only")
	}
	if e.SelectionCount() != 3 {
		t.Errorf("toggle should drop the '#' cell, got %d", e.SelectionCount())
	}
	typeKeys(t, c, keyEvent(mg.KeyTab))
	if e.GetSettings().Mode != mg.SelectNormal {
		t.Errorf("second tab did not switch back")
	}
}

func TestDeselectKey(t *testing.T) {
	e, c := setup(t, []string{"...", "...", "..."})
	command(t, c, "rect 0 0 2 2")
	if e.SelectionCount() != 9 {
		t.Fatalf("setup: expected 9 cells, got %d", e.SelectionCount())
	}
	// cursor sits at (0,0) after the rect command; x drops the brush
	// neighborhood under it
	typeKeys(t, c, charEvent('x'))
	if e.SelectionCount() != 8 || e.Selected(mg.Point{Row: 0, Col: 0}) {
		t.Errorf("deselect under the cursor left %d cells", e.SelectionCount())
	}
	command(t, c, "brush 1")
	typeKeys(t, c, charEvent('j'), charEvent('l'), charEvent('x'))
	if e.SelectionCount() != 0 {
		t.Errorf("radius-1 deselect at (1,1) should clear the rest, got %d",
			e.SelectionCount())
	}
}

func TestEscClearsSelection(t *testing.T) {
	e, c := setup(t, []string{"..", ".."})
	command(t, c, "rect 0 0 1 1")
	typeKeys(t, c, keyEvent(mg.KeyEsc))
	if e.SelectionCount() != 0 {
		t.Errorf("esc left %d cells selected", e.SelectionCount())
	}
}

func TestUndoKey(t *testing.T) {
	e, c := setup(t, []string{"..", ".."})
	command(t, c, "rect 0 0 1 1")
	typeKeys(t, c, charEvent('f'), charEvent('#'))
	typeKeys(t, c, charEvent('u'))
	if got := e.Grid.Serialize(); !reflect.DeepEqual(got, []string{"..", ".."}) {
		t.Errorf("undo left %q", got)
	}
}

func TestRepeatKey(t *testing.T) {
	e, c := setup(t, []string{"...."})
	command(t, c, "rect 0 0 0 1")
	typeKeys(t, c, charEvent('f'), charEvent('#'))
	command(t, c, "rect 0 2 0 3")
	typeKeys(t, c, charEvent('.'))
	if got := e.Grid.Serialize(); !reflect.DeepEqual(got, []string{"####"}) {
		t.Errorf("repeat left %q", got)
	}
}

func TestBrushKeysAndCommand(t *testing.T) {
	e, c := setup(t, []string{".....", ".....", "....."})
	typeKeys(t, c, charEvent('+'))
	if e.GetSettings().BrushRadius != 1 {
		t.Errorf("brush radius after '+': %d", e.GetSettings().BrushRadius)
	}
	typeKeys(t, c, charEvent('-'), charEvent('-'))
	if e.GetSettings().BrushRadius != 0 {
		t.Errorf("brush radius should floor at 0, got %d", e.GetSettings().BrushRadius)
	}
	command(t, c, "brush 2")
	if e.GetSettings().BrushRadius != 2 {
		t.Errorf("brush command: %d", e.GetSettings().BrushRadius)
	}
	typeKeys(t, c,
		mouseEvent(mg.KeyMouseLeft, 1, 1),
		mouseEvent(mg.KeyMouseRelease, 1, 1),
	)
	// radius 2 around (1,1), clipped to the 3x5 grid
	if e.SelectionCount() != 12 {
		t.Errorf("expected 12 clipped brush cells, got %d", e.SelectionCount())
	}
}

func TestQuitGuardsUnsavedChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.txt")
	if err := os.WriteFile(path, []byte("..\n..\n"), 0644); err != nil {
		t.Fatalf("%+v", err)
	}
	e := editor.NewEditor()
	if err := e.ReadFile(path); err != nil {
		t.Fatalf("%+v", err)
	}
	e.SetSize(mg.Size{Rows: 20, Cols: 20})
	c := NewCommander(e)

	command(t, c, "rect 0 0 0 0")
	typeKeys(t, c, charEvent('f'), charEvent('#'))
	command(t, c, "q")
	if !c.IsRunning() {
		t.Fatalf("q quit despite unsaved changes")
	}
	if !strings.Contains(c.GetMessage(), "unsaved") {
		t.Errorf("expected an unsaved-changes message, got %q", c.GetMessage())
	}
	command(t, c, "wq")
	if c.IsRunning() {
		t.Errorf("wq did not quit")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if string(b) != "#.\n..\n" {
		t.Errorf("wq wrote %q", string(b))
	}
}

func TestModeCommand(t *testing.T) {
	e, c := setup(t, []string{"# ", "  "})
	command(t, c, "mode space")
	if e.GetSettings().Mode != mg.SelectSpacesOnly {
		t.Errorf("mode command did not apply")
	}
	command(t, c, "mode sideways")
	if e.GetSettings().Mode != mg.SelectSpacesOnly {
		t.Errorf("bad mode changed settings")
	}
	if c.GetMessage() != "mode is normal or space" {
		t.Errorf("unexpected message %q", c.GetMessage())
	}
}

func TestAdditiveCommand(t *testing.T) {
	e, c := setup(t, []string{"...", "...", "..."})
	command(t, c, "additive off")
	typeKeys(t, c,
		mouseEvent(mg.KeyMouseLeft, 0, 0),
		mouseEvent(mg.KeyMouseRelease, 0, 0),
		mouseEvent(mg.KeyMouseLeft, 2, 2),
		mouseEvent(mg.KeyMouseRelease, 2, 2),
	)
	if e.SelectionCount() != 1 || !e.Selected(mg.Point{Row: 2, Col: 2}) {
		t.Errorf("non-additive click should replace the selection, got %d cells", e.SelectionCount())
	}
}

func TestGotoRowCommand(t *testing.T) {
	e, c := setup(t, []string{"..", "..", ".."})
	command(t, c, "3")
	if e.GetCursor() != (mg.Point{Row: 2, Col: 0}) {
		t.Errorf("goto row: %v", e.GetCursor())
	}
	command(t, c, "99")
	if e.GetCursor() != (mg.Point{Row: 2, Col: 0}) {
		t.Errorf("goto past the end should clip: %v", e.GetCursor())
	}
}
