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

// mapgrid edits ASCII grid maps: rectangular text files where every cell is
// one terrain character. Select regions with the mouse or keyboard, repaint
// them with typed characters or preset biome symbols, and save back to the
// same plain-text format.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/telsin/mapgrid/commander"
	"github.com/telsin/mapgrid/editor"
	"github.com/telsin/mapgrid/screen"
)

func main() {
	var script string
	var configPath string
	var watch bool
	var logPath string
	flag.StringVar(&script, "eval", "", "run a lisp script against the map and exit")
	flag.StringVar(&configPath, "config", "", "YAML file with palette and editing defaults")
	flag.BoolVar(&watch, "watch", false, "reload the map when another program writes it")
	flag.StringVar(&logPath, "debug", "", "append diagnostics to this file")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: mapgrid [flags] mapfile")
		flag.PrintDefaults()
		os.Exit(2)
	}
	filename := flag.Arg(0)

	// The editor manages the grid, the selection, and undo.
	e := editor.NewEditor()

	settings, palette, err := editor.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("%+v", err)
	}
	e.SetSettings(settings)
	e.Palette = palette
	e.SetAutoReload(watch)

	// The commander converts user inputs into commands for the editor.
	c := commander.NewCommander(e)

	fileinfo, err := os.Stat(filename)
	if err != nil {
		// create a file that doesn't exist
		file, err := os.Create(filename)
		if err != nil {
			log.Fatalf("%+v", err)
		}
		file.Close()
	} else if fileinfo.IsDir() {
		log.Fatalf("%s is a directory", filename)
	}
	if err := e.ReadFile(filename); err != nil {
		log.Fatalf("%+v", err)
	}

	if script != "" {
		// Run a mapgrid script and exit.
		if err := c.ParseEvalFile(script); err != nil {
			log.Fatalf("%+v", err)
		}
		return
	}

	// Create a screen to manage display.
	s := screen.NewScreen()
	if s == nil {
		return
	}
	defer s.Close()

	// Route diagnostics away from the terminal termbox owns.
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0666)
		if err != nil {
			log.Output(1, err.Error())
			return
		}
		log.SetOutput(f)
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	// Watch for external writes so :watch / --watch can offer reloads. The
	// goroutine only wakes the event loop; the reload itself runs there.
	if watcher, err := editor.NewWatcher(filename); err == nil {
		defer watcher.Close()
		go func() {
			for range watcher.Events {
				s.Interrupt()
			}
		}()
	} else {
		log.Output(1, err.Error())
	}

	// Run the main event loop.
	for c.IsRunning() {
		s.Render(e, c)
		if err := c.ProcessEvent(s.GetNextEvent()); err != nil {
			log.Output(1, err.Error())
		}
	}
}
