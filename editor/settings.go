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
	"os"

	"gopkg.in/yaml.v3"

	mg "github.com/telsin/mapgrid/types"
)

// Config is the optional YAML configuration file: editing defaults plus
// palette overrides.
//
//	brush: 1
//	mode: space
//	additive: true
//	presets: "#.wWhHsfF"
//	palette:
//	  - symbol: "~"
//	    name: marsh
//	    color: dark-green
type Config struct {
	Brush    int           `yaml:"brush"`
	Mode     string        `yaml:"mode"`
	Additive *bool         `yaml:"additive"`
	Presets  string        `yaml:"presets"`
	Palette  []ConfigEntry `yaml:"palette"`
}

type ConfigEntry struct {
	Symbol string `yaml:"symbol"`
	Name   string `yaml:"name"`
	Color  string `yaml:"color"`
}

// DefaultSettings match the original tool: single-cell brush, normal
// qualification, drags extend the current selection.
func DefaultSettings() mg.Settings {
	return mg.Settings{BrushRadius: 0, Mode: mg.SelectNormal, Additive: true}
}

// LoadConfig reads a config file and produces the settings and palette it
// describes. An empty path yields the defaults.
func LoadConfig(path string) (mg.Settings, *Palette, error) {
	settings := DefaultSettings()
	palette := DefaultPalette()
	if path == "" {
		return settings, palette, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return settings, palette, err
	}
	var config Config
	if err := yaml.Unmarshal(b, &config); err != nil {
		return settings, palette, fmt.Errorf("parsing %s: %w", path, err)
	}

	if config.Brush < 0 {
		return settings, palette, fmt.Errorf("%s: brush must be >= 0", path)
	}
	settings.BrushRadius = config.Brush
	switch config.Mode {
	case "", "normal":
		settings.Mode = mg.SelectNormal
	case "space":
		settings.Mode = mg.SelectSpacesOnly
	default:
		return settings, palette, fmt.Errorf("%s: unknown mode %q", path, config.Mode)
	}
	if config.Additive != nil {
		settings.Additive = *config.Additive
	}

	for _, entry := range config.Palette {
		symbol := []rune(entry.Symbol)
		if len(symbol) != 1 {
			return settings, palette, fmt.Errorf("%s: palette symbol %q must be one character",
				path, entry.Symbol)
		}
		if err := palette.Add(symbol[0], entry.Name, entry.Color); err != nil {
			return settings, palette, fmt.Errorf("%s: %w", path, err)
		}
	}
	if config.Presets != "" {
		presets := []rune(config.Presets)
		for _, symbol := range presets {
			if !ValidPaintCharacter(symbol) {
				return settings, palette, fmt.Errorf("%s: preset %q is not paintable", path, symbol)
			}
		}
		palette.Presets = presets
	}
	return settings, palette, nil
}
