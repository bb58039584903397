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
	"testing"

	mg "github.com/telsin/mapgrid/types"
)

const islandMap = "wwwwww\nw ss w\nw sF w\nw    w\nwwwwww\n"

func writeMap(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "map.txt")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("writing fixture: %+v", err)
	}
	return path
}

func TestReadWriteInvariance(t *testing.T) {
	path := writeMap(t, islandMap)
	e := NewEditor()
	if err := e.ReadFile(path); err != nil {
		t.Fatalf("ReadFile failed: %+v", err)
	}
	out := filepath.Join(t.TempDir(), "out.txt")
	if err := e.WriteFile(out); err != nil {
		t.Fatalf("WriteFile failed: %+v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if string(b) != islandMap {
		t.Errorf("read/write changed the map:\n%q\n%q", string(b), islandMap)
	}
}

func TestReadFileDimensionMismatchKeepsGrid(t *testing.T) {
	good := writeMap(t, "ab\ncd\n")
	bad := writeMap(t, "abc\nde\n")
	e := NewEditor()
	if err := e.ReadFile(good); err != nil {
		t.Fatalf("%+v", err)
	}
	if err := e.ReadFile(bad); err == nil {
		t.Fatalf("expected a dimension mismatch")
	}
	if e.RowCount() != 2 || e.ColCount() != 2 || e.FileName() != good {
		t.Errorf("failed load disturbed the active grid")
	}
}

func TestModifiedFlag(t *testing.T) {
	path := writeMap(t, islandMap)
	e := NewEditor()
	if err := e.ReadFile(path); err != nil {
		t.Fatalf("%+v", err)
	}
	if e.Modified() {
		t.Errorf("fresh load marked modified")
	}
	e.BeginDrag(mg.Point{Row: 1, Col: 1}, DefaultSettings())
	e.EndDrag()
	if edits := e.FillSelection('#'); len(edits) != 1 {
		t.Fatalf("expected one changed cell, got %d", len(edits))
	}
	if !e.Modified() {
		t.Errorf("paint did not mark modified")
	}
	if err := e.WriteFile(path); err != nil {
		t.Fatalf("%+v", err)
	}
	if e.Modified() {
		t.Errorf("save did not clear modified")
	}
}

func TestCursorMovementStaysInGrid(t *testing.T) {
	path := writeMap(t, "abc\ndef\n")
	e := NewEditor()
	if err := e.ReadFile(path); err != nil {
		t.Fatalf("%+v", err)
	}
	e.MoveCursor(mg.MoveUp, 5)
	e.MoveCursor(mg.MoveLeft, 5)
	if e.GetCursor() != (mg.Point{}) {
		t.Errorf("cursor escaped top-left: %v", e.GetCursor())
	}
	e.MoveCursor(mg.MoveDown, 10)
	e.MoveCursor(mg.MoveRight, 10)
	if e.GetCursor() != (mg.Point{Row: 1, Col: 2}) {
		t.Errorf("cursor escaped bottom-right: %v", e.GetCursor())
	}
	e.MoveToRowStart()
	if e.GetCursor().Col != 0 {
		t.Errorf("MoveToRowStart: %v", e.GetCursor())
	}
	e.MoveToRowEnd()
	if e.GetCursor().Col != 2 {
		t.Errorf("MoveToRowEnd: %v", e.GetCursor())
	}
}

func TestScrollFollowsCursor(t *testing.T) {
	path := writeMap(t, "abcdef\nghijkl\nmnopqr\nstuvwx\n")
	e := NewEditor()
	if err := e.ReadFile(path); err != nil {
		t.Fatalf("%+v", err)
	}
	e.SetSize(mg.Size{Rows: 2, Cols: 3})
	e.SetCursor(mg.Point{Row: 3, Col: 5})
	e.Scroll()
	offset := e.GetOffset()
	if offset.Rows != 2 || offset.Cols != 3 {
		t.Errorf("unexpected offset after scroll: %+v", offset)
	}
	e.SetCursor(mg.Point{})
	e.Scroll()
	if e.GetOffset() != (mg.Size{}) {
		t.Errorf("offset did not follow cursor home: %+v", e.GetOffset())
	}
}
