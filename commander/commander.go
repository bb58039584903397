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
	"fmt"
	"strconv"
	"strings"

	"github.com/telsin/mapgrid/editor"
	"github.com/telsin/mapgrid/operations"
	mg "github.com/telsin/mapgrid/types"
)

// The Commander converts user input into commands for the Editor. Raw key
// and mouse events become grid-space actions that a single Dispatch applies.
type Commander struct {
	editor     mg.Editor
	mode       int       // commander mode
	debug      bool      // debug mode displays information about events
	editKeys   string    // edit key sequences in progress
	command    string    // command as it is being typed on the command line
	lispText   string    // lisp expression as it is being typed
	message    string    // status message
	dragging   bool      // a drag gesture is in progress
	rectCorner *mg.Point // first corner of a pending rectangle select
}

func NewCommander(e mg.Editor) *Commander {
	c := &Commander{editor: e, mode: mg.ModeEdit}
	bindLisp(c, e)
	return c
}

func (c *Commander) GetMode() int {
	return c.mode
}

func (c *Commander) SetMode(m int) {
	c.mode = m
}

func (c *Commander) IsRunning() bool {
	return c.mode != mg.ModeQuit
}

func (c *Commander) ProcessEvent(event *mg.Event) error {
	if c.debug {
		c.message = fmt.Sprintf("event=%+v", event)
	}
	switch event.Type {
	case mg.EventKey:
		return c.ProcessKey(event)
	case mg.EventMouse:
		return c.ProcessMouse(event)
	case mg.EventResize:
		return c.ProcessResize(event)
	case mg.EventInterrupt:
		return c.ProcessInterrupt(event)
	default:
		return nil
	}
}

func (c *Commander) ProcessResize(event *mg.Event) error {
	return nil
}

// ProcessInterrupt handles a wakeup from the file watcher. The reload runs
// here, on the event loop; unsaved edits win over the external write.
func (c *Commander) ProcessInterrupt(event *mg.Event) error {
	e := c.editor
	if !e.AutoReload() {
		return nil
	}
	if e.Modified() {
		c.message = "file changed on disk; not reloading over unsaved changes"
		return nil
	}
	if err := e.Reload(); err != nil {
		c.message = err.Error()
		return nil
	}
	c.dragging = false
	c.rectCorner = nil
	c.message = fmt.Sprintf("reloaded %s", e.FileName())
	return nil
}

// ProcessMouse drives drag gestures: a press begins one, motion extends it,
// release finalizes it. Coordinates arrive in screen space and may overshoot
// the grid; the selection clips them.
func (c *Commander) ProcessMouse(event *mg.Event) error {
	if c.mode != mg.ModeEdit {
		return nil
	}
	e := c.editor

	switch event.Key {
	case mg.KeyMouseLeft:
		if event.Mouse.Row >= e.GetSize().Rows {
			return nil // on the status bars
		}
		offset := e.GetOffset()
		p := mg.Point{
			Row: event.Mouse.Row + offset.Rows,
			Col: event.Mouse.Col + offset.Cols,
		}
		if c.dragging {
			c.Dispatch(mg.Action{Command: mg.CommandExtendDrag, At: p})
		} else {
			c.Dispatch(mg.Action{Command: mg.CommandBeginDrag, At: p})
		}
		if e.RowCount() > 0 {
			e.SetCursor(mg.Point{
				Row: clip(p.Row, 0, e.RowCount()-1),
				Col: clip(p.Col, 0, e.ColCount()-1),
			})
		}
	case mg.KeyMouseRelease:
		if c.dragging {
			c.Dispatch(mg.Action{Command: mg.CommandEndDrag})
		}
	case mg.KeyMouseWheelUp:
		e.MoveCursor(mg.MoveUp, 3)
	case mg.KeyMouseWheelDown:
		e.MoveCursor(mg.MoveDown, 3)
	}
	return nil
}

// Dispatch applies one grid-space action using the current editing settings.
func (c *Commander) Dispatch(action mg.Action) {
	e := c.editor
	settings := e.GetSettings()

	switch action.Command {
	case mg.CommandBeginDrag:
		e.BeginDrag(action.At, settings)
		c.dragging = true
	case mg.CommandExtendDrag:
		e.ExtendDrag(action.At, settings)
	case mg.CommandEndDrag:
		e.EndDrag()
		c.dragging = false
	case mg.CommandRectangle:
		e.SelectRectangle(action.At, action.To, settings)
		c.message = fmt.Sprintf("%d cells selected", e.SelectionCount())
	case mg.CommandRemove:
		e.RemoveFromSelection(action.At, settings)
		c.message = fmt.Sprintf("%d cells selected", e.SelectionCount())
	case mg.CommandTypeChar:
		if !editor.ValidPaintCharacter(action.Ch) {
			c.message = fmt.Sprintf("%q is not paintable", action.Ch)
			return
		}
		op := &operations.Paint{Character: action.Ch}
		e.Perform(op)
		c.message = paintMessage(op.Count, action.Ch)
	case mg.CommandPresetChar:
		symbol, ok := e.PresetCharacter(action.Index)
		if !ok {
			c.message = fmt.Sprintf("no preset %d", action.Index)
			return
		}
		op := &operations.Paint{Character: symbol}
		e.Perform(op)
		c.message = paintMessage(op.Count, symbol)
	}
}

func paintMessage(count int, ch rune) string {
	name := string(ch)
	if ch == ' ' {
		name = "space"
	}
	return fmt.Sprintf("painted %d cells with %s", count, name)
}

func (c *Commander) ProcessKeyEditMode(event *mg.Event) error {
	e := c.editor

	key := event.Key
	ch := event.Ch

	// multikey commands have highest precedence
	if len(c.editKeys) > 0 {
		switch c.editKeys {
		case "f":
			if key == mg.KeySpace {
				c.Dispatch(mg.Action{Command: mg.CommandTypeChar, Ch: ' '})
			} else if ch != 0 {
				c.Dispatch(mg.Action{Command: mg.CommandTypeChar, Ch: ch})
			}
		}
		c.editKeys = ""
		return nil
	}
	if key != 0 {
		switch key {
		case mg.KeyEsc:
			c.cancelPending()
			e.ClearSelection()
			c.message = ""
		case mg.KeyTab:
			c.toggleSelectMode()
		case mg.KeyCtrlB, mg.KeyPgup:
			e.PageUp()
		case mg.KeyCtrlF, mg.KeyPgdn:
			e.PageDown()
		case mg.KeyHome:
			e.MoveToRowStart()
		case mg.KeyEnd:
			e.MoveToRowEnd()
		case mg.KeyArrowUp:
			c.moveCursor(mg.MoveUp)
		case mg.KeyArrowDown:
			c.moveCursor(mg.MoveDown)
		case mg.KeyArrowLeft:
			c.moveCursor(mg.MoveLeft)
		case mg.KeyArrowRight:
			c.moveCursor(mg.MoveRight)
		case mg.KeyEnter:
			c.completeRectangle()
		}
	}
	if ch != 0 {
		switch ch {
		//
		// preset biome symbols paint the selection directly
		//
		case '1', '2', '3', '4', '5', '6', '7', '8', '9':
			c.Dispatch(mg.Action{Command: mg.CommandPresetChar, Index: int(ch - '0')})
		//
		// commands go to the message bar
		//
		case ':':
			c.mode = mg.ModeCommand
			c.command = ""
		//
		// lisp expressions go to the message bar
		//
		case '(':
			c.mode = mg.ModeLisp
			c.lispText = "("
		//
		// cursor movement extends a keyboard drag when one is open
		//
		case 'h':
			c.moveCursor(mg.MoveLeft)
		case 'j':
			c.moveCursor(mg.MoveDown)
		case 'k':
			c.moveCursor(mg.MoveUp)
		case 'l':
			c.moveCursor(mg.MoveRight)
		//
		// selection gestures
		//
		case 'v':
			c.toggleKeyboardDrag()
		case 'V':
			c.markRectangleCorner()
		case 'x':
			c.Dispatch(mg.Action{Command: mg.CommandRemove, At: e.GetCursor()})
		//
		// painting
		//
		case 'f':
			c.editKeys = "f"
		case 'e':
			c.Dispatch(mg.Action{Command: mg.CommandTypeChar, Ch: ' '})
		//
		// brush size
		//
		case '+', '=':
			c.adjustBrush(1)
		case '-':
			c.adjustBrush(-1)
		//
		// undo and repeat
		//
		case 'u':
			e.PerformUndo()
		case '.':
			e.Repeat()
		}
	}
	return nil
}

// moveCursor moves and, when a keyboard drag is open, extends the selection
// along the way.
func (c *Commander) moveCursor(direction int) {
	e := c.editor
	e.MoveCursor(direction, 1)
	if c.dragging {
		c.Dispatch(mg.Action{Command: mg.CommandExtendDrag, At: e.GetCursor()})
	}
}

func (c *Commander) toggleKeyboardDrag() {
	if c.dragging {
		c.Dispatch(mg.Action{Command: mg.CommandEndDrag})
		c.message = fmt.Sprintf("%d cells selected", c.editor.SelectionCount())
	} else {
		c.Dispatch(mg.Action{Command: mg.CommandBeginDrag, At: c.editor.GetCursor()})
		c.message = "drag selection started (v again to finish)"
	}
}

func (c *Commander) markRectangleCorner() {
	if c.rectCorner == nil {
		corner := c.editor.GetCursor()
		c.rectCorner = &corner
		c.message = fmt.Sprintf("rectangle corner at (%d,%d); V or enter at the far corner",
			corner.Row, corner.Col)
		return
	}
	c.completeRectangle()
}

func (c *Commander) completeRectangle() {
	if c.rectCorner == nil {
		return
	}
	a := *c.rectCorner
	c.rectCorner = nil
	c.Dispatch(mg.Action{Command: mg.CommandRectangle, At: a, To: c.editor.GetCursor()})
}

func (c *Commander) cancelPending() {
	if c.dragging {
		c.Dispatch(mg.Action{Command: mg.CommandEndDrag})
	}
	c.editKeys = ""
	c.rectCorner = nil
}

func (c *Commander) toggleSelectMode() {
	e := c.editor
	settings := e.GetSettings()
	if settings.Mode == mg.SelectSpacesOnly {
		settings.Mode = mg.SelectNormal
	} else {
		settings.Mode = mg.SelectSpacesOnly
	}
	e.SetSettings(settings)
	// space-only trims the live selection immediately
	e.FilterSelection(settings)
	c.message = fmt.Sprintf("selection mode: %s", settings.Mode)
}

func (c *Commander) adjustBrush(delta int) {
	e := c.editor
	settings := e.GetSettings()
	settings.BrushRadius += delta
	if settings.BrushRadius < 0 {
		settings.BrushRadius = 0
	}
	e.SetSettings(settings)
	side := settings.BrushRadius*2 + 1
	c.message = fmt.Sprintf("brush radius %d (%dx%d)", settings.BrushRadius, side, side)
}

func (c *Commander) ProcessKeyCommandMode(event *mg.Event) error {
	key := event.Key
	ch := event.Ch
	if key != 0 {
		switch key {
		case mg.KeyEsc:
			c.mode = mg.ModeEdit
		case mg.KeyEnter:
			c.PerformCommand()
		case mg.KeyBackspace2:
			if len(c.command) > 0 {
				c.command = c.command[0 : len(c.command)-1]
			}
		case mg.KeySpace:
			c.command += " "
		}
	}
	if ch != 0 {
		c.command = c.command + string(ch)
	}
	return nil
}

func (c *Commander) ProcessKeyLispMode(event *mg.Event) error {
	key := event.Key
	ch := event.Ch
	if key != 0 {
		switch key {
		case mg.KeyEsc:
			c.mode = mg.ModeEdit
		case mg.KeyEnter:
			c.message = c.ParseEval(c.lispText)
			c.mode = mg.ModeEdit
		case mg.KeyBackspace2:
			if len(c.lispText) > 0 {
				c.lispText = c.lispText[0 : len(c.lispText)-1]
			}
		case mg.KeySpace:
			c.lispText += " "
		}
	}
	if ch != 0 {
		c.lispText = c.lispText + string(ch)
	}
	return nil
}

func (c *Commander) ProcessKey(event *mg.Event) error {
	var err error
	switch c.mode {
	case mg.ModeEdit:
		err = c.ProcessKeyEditMode(event)
	case mg.ModeCommand:
		err = c.ProcessKeyCommandMode(event)
	case mg.ModeLisp:
		err = c.ProcessKeyLispMode(event)
	}
	return err
}

func (c *Commander) PerformCommand() {
	e := c.editor

	parts := strings.Fields(c.command)
	c.command = ""
	c.mode = mg.ModeEdit
	if len(parts) == 0 {
		return
	}

	if i, err := strconv.ParseInt(parts[0], 10, 64); err == nil {
		if e.RowCount() == 0 {
			return
		}
		newRow := clip(int(i-1), 0, e.RowCount()-1)
		e.SetCursor(mg.Point{Row: newRow, Col: 0})
		return
	}

	switch parts[0] {
	case "q":
		if e.Modified() {
			c.message = "unsaved changes (use q! to discard, wq to save)"
			return
		}
		c.mode = mg.ModeQuit
	case "q!":
		c.mode = mg.ModeQuit
	case "w", "wq":
		filename := e.FileName()
		if len(parts) == 2 {
			filename = parts[1]
		}
		if filename == "" {
			c.message = "no file name"
			return
		}
		if err := e.WriteFile(filename); err != nil {
			c.message = err.Error()
			return
		}
		c.message = fmt.Sprintf("wrote %s", filename)
		if parts[0] == "wq" {
			c.mode = mg.ModeQuit
		}
	case "r":
		filename := e.FileName()
		if len(parts) == 2 {
			filename = parts[1]
		}
		if filename == "" {
			c.message = "no file name"
			return
		}
		if err := e.ReadFile(filename); err != nil {
			c.message = err.Error()
			return
		}
		c.dragging = false
		c.rectCorner = nil
		c.message = fmt.Sprintf("loaded %s (%dx%d)", filename, e.RowCount(), e.ColCount())
	case "brush":
		if len(parts) != 2 {
			c.message = fmt.Sprintf("brush radius %d", e.GetSettings().BrushRadius)
			return
		}
		radius, err := strconv.Atoi(parts[1])
		if err != nil || radius < 0 {
			c.message = "brush needs a radius >= 0"
			return
		}
		settings := e.GetSettings()
		settings.BrushRadius = radius
		e.SetSettings(settings)
		side := radius*2 + 1
		c.message = fmt.Sprintf("brush radius %d (%dx%d)", radius, side, side)
	case "mode":
		if len(parts) != 2 {
			c.message = fmt.Sprintf("selection mode: %s", e.GetSettings().Mode)
			return
		}
		settings := e.GetSettings()
		switch parts[1] {
		case "normal":
			settings.Mode = mg.SelectNormal
		case "space":
			settings.Mode = mg.SelectSpacesOnly
		default:
			c.message = "mode is normal or space"
			return
		}
		e.SetSettings(settings)
		e.FilterSelection(settings)
		c.message = fmt.Sprintf("selection mode: %s", settings.Mode)
	case "additive":
		if len(parts) != 2 || (parts[1] != "on" && parts[1] != "off") {
			c.message = "additive is on or off"
			return
		}
		settings := e.GetSettings()
		settings.Additive = parts[1] == "on"
		e.SetSettings(settings)
		c.message = fmt.Sprintf("additive selection %s", parts[1])
	case "clear":
		e.ClearSelection()
		c.message = "selection cleared"
	case "rect":
		if len(parts) != 5 {
			c.message = "rect needs four coordinates: rect r1 c1 r2 c2"
			return
		}
		coords := make([]int, 4)
		for i, part := range parts[1:] {
			n, err := strconv.Atoi(part)
			if err != nil {
				c.message = fmt.Sprintf("bad coordinate %q", part)
				return
			}
			coords[i] = n
		}
		c.Dispatch(mg.Action{
			Command: mg.CommandRectangle,
			At:      mg.Point{Row: coords[0], Col: coords[1]},
			To:      mg.Point{Row: coords[2], Col: coords[3]},
		})
	case "watch":
		if len(parts) != 2 || (parts[1] != "on" && parts[1] != "off") {
			c.message = "watch is on or off"
			return
		}
		e.SetAutoReload(parts[1] == "on")
		c.message = fmt.Sprintf("auto-reload %s", parts[1])
	case "$":
		e.SetCursor(mg.Point{Row: clip(e.RowCount()-1, 0, e.RowCount()), Col: 0})
	case "debug":
		if len(parts) == 2 {
			if parts[1] == "on" {
				c.debug = true
			} else if parts[1] == "off" {
				c.debug = false
				c.message = ""
			}
		}
	default:
		c.message = fmt.Sprintf("unknown command %q", parts[0])
	}
}

func (c *Commander) GetCommand() string {
	return c.command
}

func (c *Commander) GetLispText() string {
	return c.lispText
}

func (c *Commander) GetMessage() string {
	return c.message
}

func clip(i, min, max int) int {
	if i < min {
		i = min
	}
	if i > max {
		i = max
	}
	return i
}
