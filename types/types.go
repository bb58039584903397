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
package types

// Commander modes
const (
	ModeEdit    = 0
	ModeCommand = 1
	ModeLisp    = 2
	ModeQuit    = 9999
)

// Move directions
const (
	MoveUp    = 0
	MoveDown  = 1
	MoveRight = 2
	MoveLeft  = 3
)

// Selection modes
type SelectMode int

const (
	SelectNormal     SelectMode = 0
	SelectSpacesOnly SelectMode = 1
)

func (m SelectMode) String() string {
	if m == SelectSpacesOnly {
		return "space"
	}
	return "normal"
}

// Settings are the process-wide editing controls: the toolbar surface of the
// editor. They are passed explicitly into every dispatch so that selection and
// paint stay functions of their inputs.
type Settings struct {
	BrushRadius int        // cells added around a drag point in each direction
	Mode        SelectMode // qualification rule for drag and rectangle selects
	Additive    bool       // when set, a new drag extends the prior selection
}

type Point struct {
	Row int
	Col int
}

type Size struct {
	Rows int
	Cols int
}

// A CellEdit records one cell write: the coordinate and the character that
// belongs there. The edits captured by a paint are the paint's undo.
type CellEdit struct {
	At   Point
	Char rune
}

type Color uint16

const (
	ColorDefault Color = 0
	ColorBlack   Color = 1
	ColorRed     Color = 2
	ColorGreen   Color = 3
	ColorYellow  Color = 4
	ColorBlue    Color = 5
	ColorMagenta Color = 6
	ColorCyan    Color = 7
	ColorWhite   Color = 8
)

type Editor interface {
	GetCursor() Point
	SetCursor(cursor Point)
	SetSize(size Size)
	GetSize() Size
	GetOffset() Size
	Scroll()
	MoveCursor(direction int, multiplier int)
	PageUp()
	PageDown()
	MoveToRowStart()
	MoveToRowEnd()

	RowCount() int
	ColCount() int
	Cell(p Point) rune
	CellColor(p Point) Color
	FileName() string
	Modified() bool

	GetSettings() Settings
	SetSettings(settings Settings)

	BeginDrag(p Point, settings Settings)
	ExtendDrag(p Point, settings Settings)
	EndDrag()
	SelectRectangle(a Point, b Point, settings Settings)
	ClearSelection()
	RemoveFromSelection(p Point, settings Settings)
	FilterSelection(settings Settings)
	Selected(p Point) bool
	SelectionCount() int

	FillSelection(c rune) []CellEdit
	RestoreCells(edits []CellEdit) []CellEdit
	PresetCharacter(index int) (rune, bool)

	Perform(op Operation)
	PerformUndo()
	Repeat()

	ReadFile(path string) error
	WriteFile(path string) error
	Reload() error
	SetAutoReload(on bool)
	AutoReload() bool
}

type Operation interface {
	Perform(e Editor) Operation // performs the operation and returns its inverse
}

type Commander interface {
	SetMode(int)
	GetMode() int
	GetCommand() string
	GetLispText() string
	GetMessage() string
}

// Commands are the grid-space actions the commander derives from raw events.
const (
	CommandBeginDrag = iota
	CommandExtendDrag
	CommandEndDrag
	CommandTypeChar
	CommandPresetChar
	CommandRectangle
	CommandRemove
)

// An Action is one grid-space command ready for dispatch. At and To carry
// cell coordinates where the command needs them, Ch a paint character, Index
// a palette slot.
type Action struct {
	Command int
	At      Point
	To      Point
	Ch      rune
	Index   int
}

// Event types
const (
	EventKey       = 0
	EventResize    = 1
	EventMouse     = 2
	EventInterrupt = 3
)

type Event struct {
	Type  int
	Key   Key
	Ch    rune
	Mouse Point // screen coordinates of a mouse event
}

type Key uint16

const (
	KeyUnsupported Key = iota
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyBackspace2
	KeyEnd
	KeyEnter
	KeyEsc
	KeyHome
	KeyPgdn
	KeyPgup
	KeySpace
	KeyTab
	KeyCtrlB
	KeyCtrlF
	KeyMouseLeft
	KeyMouseRelease
	KeyMouseWheelUp
	KeyMouseWheelDown
)
