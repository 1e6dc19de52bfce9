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
	"log"
	"strconv"
	"strings"

	"github.com/timburks/gottpad/pkg/editor"
	"github.com/timburks/gottpad/pkg/hotkey"
	"github.com/timburks/gottpad/pkg/textfile"
	gott "github.com/timburks/gottpad/pkg/types"
)

// Version is reported by the about command.
var Version = "0.1.0"

func (c *Commander) performCommand() {
	text := strings.TrimSpace(c.commandText)
	c.commandText = ""
	c.mode = gott.ModeEdit
	if err := c.runCommand(text); err != nil {
		c.message = err.Error()
	}
}

// runCommand performs a line typed on the command line.
func (c *Commander) runCommand(text string) error {
	e := c.editor

	name, argument, _ := strings.Cut(text, " ")
	argument = strings.TrimSpace(argument)
	if name == "" {
		return nil
	}
	if line, err := strconv.Atoi(name); err == nil {
		e.MoveCursorToLine(line)
		return nil
	}
	switch name {
	case "open", "e":
		if argument == "" {
			return errors.New("usage: open <path>")
		}
		return c.open(argument)
	case "w", "save":
		if argument != "" {
			return c.saveAs(argument)
		}
		return c.save()
	case "save-as":
		if argument == "" {
			return errors.New("usage: save-as <path>")
		}
		return c.saveAs(argument)
	case "wq":
		if err := c.save(); err != nil {
			return err
		}
		if c.mode == gott.ModeEdit {
			return c.quit(false)
		}
	case "q", "quit":
		return c.quit(false)
	case "q!", "quit!":
		return c.quit(true)
	case "new":
		e.NewTab()
	case "close":
		return c.closeTab(false)
	case "close!":
		return c.closeTab(true)
	case "next":
		e.NextTab()
	case "prev":
		e.PreviousTab()
	case "tab":
		number, err := strconv.Atoi(argument)
		if err != nil {
			return errors.New("usage: tab <number>")
		}
		return e.SelectTab(number)
	case "tabs":
		c.message = c.tabList()
	case "le":
		return c.setLineEnding(argument)
	case "reload":
		return c.reload(false)
	case "reload!":
		return c.reload(true)
	case "hotkey":
		if argument == "" {
			c.message = fmt.Sprintf("global hotkey: %s", c.hotkeys.Current())
			return nil
		}
		return c.setHotkey(argument)
	case "zoom":
		return c.zoom(argument)
	case "find":
		c.find(argument)
	case "about":
		c.message = fmt.Sprintf("gottpad %s, a small text editor (%s)", Version, c.getModeName())
	default:
		return fmt.Errorf("unknown command: %s", name)
	}
	return nil
}

func (c *Commander) open(path string) error {
	if err := c.editor.OpenFile(path); err != nil {
		return err
	}
	c.message = fmt.Sprintf("opened %s", c.editor.ActiveDocument().GetName())
	return nil
}

// save writes the active document. An untitled document opens the command
// line to ask for a name.
func (c *Commander) save() error {
	err := c.editor.Save()
	if errors.Is(err, editor.ErrUntitled) && !c.batch {
		c.beginCommand("save-as ")
		return nil
	}
	if err != nil {
		return err
	}
	c.message = fmt.Sprintf("saved %s", c.editor.ActiveDocument().GetName())
	return nil
}

func (c *Commander) saveAs(path string) error {
	if err := c.editor.SaveAs(path); err != nil {
		return err
	}
	c.message = fmt.Sprintf("saved %s", c.editor.ActiveDocument().GetName())
	return nil
}

func (c *Commander) closeTab(force bool) error {
	err := c.editor.CloseTab(force)
	if errors.Is(err, editor.ErrModified) {
		return fmt.Errorf("%w; save it or use :close! to discard", err)
	}
	return err
}

func (c *Commander) reload(force bool) error {
	err := c.editor.Reload(force)
	if errors.Is(err, editor.ErrModified) {
		return fmt.Errorf("%w; use :reload! to discard them", err)
	}
	if err != nil {
		return err
	}
	c.message = fmt.Sprintf("reloaded %s", c.editor.ActiveDocument().GetName())
	return nil
}

func (c *Commander) quit(force bool) error {
	if !force {
		if modified := c.editor.ModifiedTabs(); len(modified) > 0 {
			return fmt.Errorf("unsaved changes in %s; use :q! to quit anyway", strings.Join(modified, ", "))
		}
	}
	c.editor.CloseInsert()
	c.mode = gott.ModeQuit
	return nil
}

func (c *Commander) setLineEnding(name string) error {
	le, err := textfile.ParseLineEnding(name)
	if err != nil {
		return err
	}
	c.editor.ChangeLineEnding(le)
	c.message = fmt.Sprintf("line ending: %s", le)
	return nil
}

// setHotkey changes the global hotkey and saves it. A hotkey that could
// not be registered is still saved.
func (c *Commander) setHotkey(spec string) error {
	h, err := c.hotkeys.Set(spec)
	if errors.Is(err, hotkey.ErrInvalid) {
		return err
	}
	if err != nil {
		log.Printf("unable to register hotkey %s: %v", h, err)
	}
	if c.settings != nil {
		if err := c.settings.SetGlobalHotkey(h.String()); err != nil {
			return err
		}
	}
	c.message = fmt.Sprintf("global hotkey: %s", h)
	return nil
}

func (c *Commander) zoom(direction string) error {
	e := c.editor
	switch direction {
	case "in", "+":
		e.ZoomIn()
	case "out", "-":
		e.ZoomOut()
	case "reset", "0":
		e.SetZoom(0)
	default:
		return errors.New("usage: zoom in|out|reset")
	}
	if c.settings != nil {
		if err := c.settings.SetZoomLevel(e.Zoom()); err != nil {
			log.Printf("unable to save zoom level: %v", err)
		}
	}
	c.message = fmt.Sprintf("zoom: %+d", e.Zoom())
	return nil
}

func (c *Commander) tabList() string {
	var s strings.Builder
	for i, title := range c.editor.Tabs() {
		if i > 0 {
			s.WriteString("  ")
		}
		marker := ""
		if i+1 == c.editor.ActiveTab() {
			marker = ">"
		}
		fmt.Fprintf(&s, "%s%d:%s", marker, i+1, title)
	}
	return s.String()
}
