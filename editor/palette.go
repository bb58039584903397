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
	"fmt"
	"unicode"

	"github.com/mattn/go-runewidth"

	mg "github.com/telsin/mapgrid/types"
)

// A Palette names the preset biome symbols and the colors they draw with.
// Presets holds the symbols bound to the numeric keys, in key order.

type Palette struct {
	entries map[rune]PaletteEntry
	Presets []rune
}

type PaletteEntry struct {
	Symbol rune
	Name   string
	Color  mg.Color
}

// Named terminal colors accepted in palette configuration. The values beyond
// the basic eight are 256-color attributes.
var colorNames = map[string]mg.Color{
	"default":     mg.ColorDefault,
	"black":       mg.ColorBlack,
	"red":         mg.ColorRed,
	"green":       mg.ColorGreen,
	"yellow":      mg.ColorYellow,
	"blue":        mg.ColorBlue,
	"magenta":     mg.ColorMagenta,
	"cyan":        mg.ColorCyan,
	"white":       mg.ColorWhite,
	"gray":        246,
	"dark-red":    89,
	"dark-green":  23,
	"light-blue":  154,
	"brown":       131,
	"dark-brown":  95,
	"sand":        230,
	"goldenrod":   179,
	"dark-golden": 137,
}

// DefaultPalette is the builtin terrain table.
func DefaultPalette() *Palette {
	p := &Palette{entries: make(map[rune]PaletteEntry)}
	defaults := []struct {
		symbol rune
		name   string
		color  string
	}{
		{'#', "wall", "gray"},
		{'.', "floor", "white"},
		{'@', "player", "yellow"},
		{'*', "item", "red"},
		{'^', "item", "magenta"},
		{'w', "shallow water", "light-blue"},
		{'W', "deep water", "blue"},
		{'h', "hill", "brown"},
		{'H', "mountain", "dark-brown"},
		{'s', "sand", "sand"},
		{'f', "sparse trees", "green"},
		{'F', "dense trees", "dark-green"},
		{'x', "special feature", "dark-red"},
		{',', "light sand", "goldenrod"},
		{'z', "small dunes", "goldenrod"},
		{'d', "tall dunes", "dark-golden"},
		{'D', "sand plateau", "dark-golden"},
	}
	for _, d := range defaults {
		p.entries[d.symbol] = PaletteEntry{
			Symbol: d.symbol,
			Name:   d.name,
			Color:  colorNames[d.color],
		}
	}
	p.Presets = []rune{'#', '.', 'w', 'W', 'h', 'H', 's', 'f', 'F'}
	return p
}

// Add registers a symbol. Symbols must occupy exactly one terminal cell.
func (p *Palette) Add(symbol rune, name string, colorName string) error {
	if !ValidPaintCharacter(symbol) {
		return fmt.Errorf("palette symbol %q is not a single-cell printable character", symbol)
	}
	color, ok := colorNames[colorName]
	if !ok {
		return fmt.Errorf("unknown palette color %q", colorName)
	}
	p.entries[symbol] = PaletteEntry{Symbol: symbol, Name: name, Color: color}
	return nil
}

func (p *Palette) Lookup(symbol rune) (PaletteEntry, bool) {
	e, ok := p.entries[symbol]
	return e, ok
}

// Color returns the display color for a character, white for characters the
// palette does not name.
func (p *Palette) Color(symbol rune) mg.Color {
	if e, ok := p.entries[symbol]; ok {
		return e.Color
	}
	return mg.ColorWhite
}

// Preset returns the symbol for a one-based preset key.
func (p *Palette) Preset(index int) (rune, bool) {
	if index < 1 || index > len(p.Presets) {
		return 0, false
	}
	return p.Presets[index-1], true
}

// ValidPaintCharacter reports whether a character may be stored in a cell:
// a single-width printable symbol, or the space used for erasing.
func ValidPaintCharacter(c rune) bool {
	if c == ' ' {
		return true
	}
	return unicode.IsPrint(c) && runewidth.RuneWidth(c) == 1
}
