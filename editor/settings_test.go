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
	"path/filepath"
	"strings"
	"testing"

	mg "github.com/telsin/mapgrid/types"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mapgrid.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("writing config: %+v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	settings, palette, err := LoadConfig("")
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if settings != DefaultSettings() {
		t.Errorf("empty path should yield defaults: %+v", settings)
	}
	if _, ok := palette.Lookup('#'); !ok {
		t.Errorf("default palette missing the wall symbol")
	}
	if symbol, ok := palette.Preset(1); !ok || symbol != '#' {
		t.Errorf("preset 1 should be '#', got %q", symbol)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"brush: 2",
		"mode: space",
		"additive: false",
		"presets: \"wWs\"",
		"palette:",
		"  - symbol: \"~\"",
		"    name: marsh",
		"    color: dark-green",
	}, "\n"))
	settings, palette, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if settings.BrushRadius != 2 || settings.Mode != mg.SelectSpacesOnly || settings.Additive {
		t.Errorf("config not applied: %+v", settings)
	}
	entry, ok := palette.Lookup('~')
	if !ok || entry.Name != "marsh" {
		t.Errorf("palette override missing: %+v", entry)
	}
	if symbol, ok := palette.Preset(2); !ok || symbol != 'W' {
		t.Errorf("preset override missing, got %q", symbol)
	}
	if _, ok := palette.Preset(4); ok {
		t.Errorf("preset 4 should not exist with three presets")
	}
}

func TestLoadConfigRejectsWideSymbols(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"palette:",
		"  - symbol: \"丘\"",
		"    name: wide hill",
		"    color: green",
	}, "\n"))
	if _, _, err := LoadConfig(path); err == nil {
		t.Errorf("double-width palette symbol accepted")
	}
}

func TestLoadConfigRejectsBadMode(t *testing.T) {
	path := writeConfig(t, "mode: diagonal\n")
	if _, _, err := LoadConfig(path); err == nil {
		t.Errorf("unknown mode accepted")
	}
}

func TestValidPaintCharacter(t *testing.T) {
	valid := []rune{' ', '#', '.', 'F', '~', '@'}
	for _, c := range valid {
		if !ValidPaintCharacter(c) {
			t.Errorf("%q should be paintable", c)
		}
	}
	invalid := []rune{'\n', '\t', 0, '丘'}
	for _, c := range invalid {
		if ValidPaintCharacter(c) {
			t.Errorf("%q should not be paintable", c)
		}
	}
}
