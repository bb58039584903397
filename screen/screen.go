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
package screen

import (
	"fmt"
	"log"

	"github.com/nsf/termbox-go"

	mg "github.com/telsin/mapgrid/types"
)

// The Screen draws the state of an Editor and is the source of raw events.
type Screen struct {
	size mg.Size // screen size
}

func NewScreen() *Screen {
	// Open the terminal.
	err := termbox.Init()
	if err != nil {
		log.Output(1, err.Error())
		return nil
	}
	termbox.SetOutputMode(termbox.Output256)
	termbox.SetInputMode(termbox.InputEsc | termbox.InputMouse)
	return &Screen{}
}

func (s *Screen) Close() {
	termbox.Close()
}

// Interrupt wakes a blocked GetNextEvent; the watcher goroutine uses it.
func (s *Screen) Interrupt() {
	termbox.Interrupt()
}

func (s *Screen) Render(e mg.Editor, c mg.Commander) {
	termbox.Clear(termbox.ColorWhite, termbox.ColorBlack)
	var screenSize mg.Size
	screenSize.Cols, screenSize.Rows = termbox.Size()
	s.size = screenSize

	editSize := screenSize
	editSize.Rows -= 2
	e.SetSize(editSize)

	e.Scroll()
	s.RenderGrid(e)
	s.RenderInfoBar(e, c)
	s.RenderMessageBar(e, c)
	termbox.SetCursor(e.GetCursor().Col-e.GetOffset().Cols, e.GetCursor().Row-e.GetOffset().Rows)
	termbox.Flush()
}

// RenderGrid draws the visible window of the map. Cells take their color
// from the palette; selected cells get a highlight background, a different
// one under space-only selection so the mode is visible at a glance.
func (s *Screen) RenderGrid(e mg.Editor) {
	offset := e.GetOffset()
	highlight := termbox.ColorCyan
	if e.GetSettings().Mode == mg.SelectSpacesOnly {
		highlight = termbox.ColorYellow
	}
	for i := 0; i < s.size.Rows-2; i++ {
		row := i + offset.Rows
		if row >= e.RowCount() {
			termbox.SetCell(0, i, '~', termbox.ColorBlue, termbox.ColorBlack)
			continue
		}
		for j := 0; j < s.size.Cols; j++ {
			col := j + offset.Cols
			if col >= e.ColCount() {
				break
			}
			p := mg.Point{Row: row, Col: col}
			ch := e.Cell(p)
			fg := termbox.Attribute(e.CellColor(p))
			bg := termbox.ColorBlack
			if e.Selected(p) {
				fg = termbox.ColorBlack
				bg = highlight
			}
			termbox.SetCell(j, i, ch, fg, bg)
		}
	}
}

func (s *Screen) RenderInfoBar(e mg.Editor, c mg.Commander) {
	settings := e.GetSettings()
	modified := ""
	if e.Modified() {
		modified = " [+]"
	}
	cursor := e.GetCursor()
	finalText := fmt.Sprintf(" %d,%d  brush %d  %s  sel %d ",
		cursor.Row, cursor.Col, settings.BrushRadius, settings.Mode, e.SelectionCount())
	text := " mapgrid - " + e.FileName() + modified + " "
	for len(text) < s.size.Cols-len(finalText)-1 {
		text = text + " "
	}
	text += finalText
	for x, ch := range text {
		if x >= s.size.Cols {
			break
		}
		termbox.SetCell(x, s.size.Rows-2, ch, termbox.ColorBlack, termbox.ColorWhite)
	}
}

func (s *Screen) RenderMessageBar(e mg.Editor, c mg.Commander) {
	var line string
	switch c.GetMode() {
	case mg.ModeCommand:
		line += ":" + c.GetCommand()
	case mg.ModeLisp:
		line += c.GetLispText()
	default:
		line += c.GetMessage()
	}
	if len(line) > s.size.Cols {
		line = line[0:s.size.Cols]
	}
	for x, ch := range line {
		termbox.SetCell(x, s.size.Rows-1, ch, termbox.ColorWhite, termbox.ColorBlack)
	}
}

func (s *Screen) GetNextEvent() *mg.Event {
	event := termbox.PollEvent()
	switch event.Type {
	case termbox.EventResize:
		termbox.Flush()
		return &mg.Event{Type: mg.EventResize}
	case termbox.EventInterrupt:
		return &mg.Event{Type: mg.EventInterrupt}
	case termbox.EventMouse:
		return &mg.Event{
			Type:  mg.EventMouse,
			Key:   mouseKey(event.Key),
			Mouse: mg.Point{Row: event.MouseY, Col: event.MouseX},
		}
	default:
		return &mg.Event{
			Type: mg.EventKey,
			Key:  key(event.Key),
			Ch:   event.Ch,
		}
	}
}

func mouseKey(k termbox.Key) mg.Key {
	switch k {
	case termbox.MouseLeft:
		return mg.KeyMouseLeft
	case termbox.MouseRelease:
		return mg.KeyMouseRelease
	case termbox.MouseWheelUp:
		return mg.KeyMouseWheelUp
	case termbox.MouseWheelDown:
		return mg.KeyMouseWheelDown
	default:
		return mg.KeyUnsupported
	}
}

func key(k termbox.Key) mg.Key {
	switch k {
	case termbox.KeyArrowDown:
		return mg.KeyArrowDown
	case termbox.KeyArrowLeft:
		return mg.KeyArrowLeft
	case termbox.KeyArrowRight:
		return mg.KeyArrowRight
	case termbox.KeyArrowUp:
		return mg.KeyArrowUp
	case termbox.KeyBackspace2:
		return mg.KeyBackspace2
	case termbox.KeyCtrlB:
		return mg.KeyCtrlB
	case termbox.KeyCtrlF:
		return mg.KeyCtrlF
	case termbox.KeyEnd:
		return mg.KeyEnd
	case termbox.KeyEnter:
		return mg.KeyEnter
	case termbox.KeyEsc:
		return mg.KeyEsc
	case termbox.KeyHome:
		return mg.KeyHome
	case termbox.KeyPgdn:
		return mg.KeyPgdn
	case termbox.KeyPgup:
		return mg.KeyPgup
	case termbox.KeySpace:
		return mg.KeySpace
	case termbox.KeyTab:
		return mg.KeyTab
	default:
		return mg.KeyUnsupported
	}
}
