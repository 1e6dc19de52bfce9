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
	"log"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/timburks/gottpad/pkg/editor"
	"github.com/timburks/gottpad/pkg/hotkey"
	"github.com/timburks/gottpad/pkg/settings"
	gott "github.com/timburks/gottpad/pkg/types"
)

// The Commander converts user input into commands to the editor.
type Commander struct {
	editor      *editor.Editor
	settings    *settings.Store // nil when preferences are not saved
	hotkeys     *hotkey.Manager
	batch       bool   // true if commander is running a lisp script
	mode        int    // editor mode
	commandText string // command as it is being typed on the command line
	searchText  string // text for searches as it is being typed
	lastSearch  string // most recent search, repeated by an empty search
	lispText    string // lisp command as it is being typed
	message     string // status message
}

// NewCommander creates a commander for an editor and applies the saved
// preferences to it. s and h may be nil.
func NewCommander(e *editor.Editor, s *settings.Store, h *hotkey.Manager) *Commander {
	if h == nil {
		h = hotkey.NewManager(nil)
	}
	c := &Commander{editor: e, settings: s, hotkeys: h, mode: gott.ModeEdit}
	if s != nil {
		e.SetZoom(s.ZoomLevel())
		e.SetPreserveEncoding(s.PreserveEncoding())
	}
	return c
}

// NewBatchCommander creates a commander for running scripts without a terminal.
func NewBatchCommander(e *editor.Editor) *Commander {
	c := NewCommander(e, nil, nil)
	c.batch = true
	return c
}

func (c *Commander) GetMode() int {
	return c.mode
}

func (c *Commander) SetMode(m int) {
	c.mode = m
}

func (c *Commander) getModeName() string {
	switch c.mode {
	case gott.ModeEdit:
		return "edit"
	case gott.ModeCommand:
		return "command"
	case gott.ModeSearch:
		return "search"
	case gott.ModeLisp:
		return "lisp"
	case gott.ModeQuit:
		return "quit"
	default:
		return "unknown"
	}
}

func (c *Commander) GetMessage() string {
	return c.message
}

func (c *Commander) SetMessage(message string) {
	c.message = message
}

func (c *Commander) IsRunning() bool {
	return c.mode != gott.ModeQuit
}

// RegisterHotkey registers the saved global hotkey. Failure is logged and
// otherwise ignored.
func (c *Commander) RegisterHotkey() {
	spec := hotkey.DefaultHotkey
	if c.settings != nil {
		spec = c.settings.GlobalHotkey()
	}
	if _, err := c.hotkeys.Set(spec); err != nil {
		log.Printf("unable to register hotkey %s: %v", spec, err)
	}
}

// Close releases the hotkey and saves the window size.
func (c *Commander) Close(size gott.Size) {
	if err := c.hotkeys.Close(); err != nil {
		log.Printf("unable to unregister hotkey: %v", err)
	}
	c.saveWindowSize(size)
}

func (c *Commander) ProcessEvent(event *gott.Event) error {
	switch event.Type {
	case gott.EventKey:
		return c.processKey(event)
	case gott.EventResize:
		c.saveWindowSize(event.Size)
		return nil
	case gott.EventInterrupt:
		c.checkDiskChanges()
		return nil
	default:
		return nil
	}
}

// CheckWindowSize compares the terminal size at startup with the size saved
// by the last session and logs any difference.
func (c *Commander) CheckWindowSize(size gott.Size) {
	if c.settings == nil {
		return
	}
	cols, rows := c.settings.WindowSize()
	if cols > 0 && rows > 0 && (cols != size.Cols || rows != size.Rows) {
		log.Printf("terminal is %dx%d, last session was %dx%d", size.Cols, size.Rows, cols, rows)
	}
	c.saveWindowSize(size)
}

func (c *Commander) saveWindowSize(size gott.Size) {
	if c.settings == nil || size.Cols <= 0 || size.Rows <= 0 {
		return
	}
	if err := c.settings.SetWindowSize(size.Cols, size.Rows); err != nil {
		log.Printf("unable to save window size: %v", err)
	}
}

func (c *Commander) checkDiskChanges() {
	names := c.editor.CheckDiskChanges()
	if len(names) > 0 {
		c.message = fmt.Sprintf("%s changed on disk; use :reload to read it again", strings.Join(names, ", "))
	}
}

func (c *Commander) processKey(event *gott.Event) error {
	var err error
	switch c.mode {
	case gott.ModeEdit:
		err = c.processKeyEditMode(event)
	case gott.ModeCommand:
		err = c.processKeyCommandMode(event)
	case gott.ModeSearch:
		err = c.processKeySearchMode(event)
	case gott.ModeLisp:
		err = c.processKeyLispMode(event)
	}
	return err
}

func (c *Commander) processKeyEditMode(event *gott.Event) error {
	e := c.editor

	key := event.Key
	ch := event.Ch

	if event.Mod == gott.ModAlt {
		switch ch {
		case '=', '+':
			c.parseEval("(zoom-in)")
		case '-':
			c.parseEval("(zoom-out)")
		case '.':
			c.parseEval("(next-tab)")
		case ',':
			c.parseEval("(previous-tab)")
		}
		return nil
	}
	if key != gott.KeyUnsupported {
		switch key {
		case gott.KeyEsc:
			c.message = ""
		case gott.KeyCtrlN, gott.KeyCtrlT:
			c.parseEval("(new-tab)")
		case gott.KeyCtrlO:
			c.beginCommand("open ")
		case gott.KeyCtrlS:
			c.parseEval("(save)")
		case gott.KeyCtrlW:
			c.parseEval("(close-tab)")
		case gott.KeyCtrlX:
			c.parseEval("(cut-line)")
		case gott.KeyCtrlV:
			c.parseEval("(paste)")
		case gott.KeyCtrlZ:
			c.parseEval("(undo)")
		case gott.KeyCtrlY:
			c.parseEval("(redo)")
		case gott.KeyCtrlF:
			c.parseEval("(search-mode)")
		case gott.KeyCtrlP:
			c.parseEval("(command-mode)")
		case gott.KeyCtrlL:
			c.parseEval("(lisp-mode)")
		case gott.KeyCtrlQ:
			c.parseEval("(quit)")
		case gott.KeyPgup:
			c.parseEval("(page-up)")
		case gott.KeyPgdn:
			c.parseEval("(page-down)")
		case gott.KeyHome:
			c.parseEval("(beginning-of-line)")
		case gott.KeyEnd:
			c.parseEval("(end-of-line)")
		case gott.KeyArrowUp:
			c.parseEval("(up)")
		case gott.KeyArrowDown:
			c.parseEval("(down)")
		case gott.KeyArrowLeft:
			c.parseEval("(left)")
		case gott.KeyArrowRight:
			c.parseEval("(right)")
		//
		// typing is collected into a single operation
		//
		case gott.KeyEnter:
			e.InsertNewline()
		case gott.KeyTab:
			e.InsertTab()
		case gott.KeySpace:
			e.TypeCharacter(' ')
		case gott.KeyBackspace:
			e.Backspace()
		case gott.KeyDelete:
			e.DeleteForward()
		}
		return nil
	}
	if ch != 0 {
		e.TypeCharacter(ch)
	}
	return nil
}

// beginCommand opens the command line with some text already typed.
func (c *Commander) beginCommand(text string) {
	c.editor.CloseInsert()
	c.mode = gott.ModeCommand
	c.commandText = text
}

// editLine applies a key to a line being typed in the message bar.
func editLine(line string, event *gott.Event) string {
	switch event.Key {
	case gott.KeyBackspace:
		if len(line) > 0 {
			_, size := utf8.DecodeLastRuneInString(line)
			line = line[0 : len(line)-size]
		}
	case gott.KeySpace:
		line += " "
	case gott.KeyUnsupported:
		if event.Ch != 0 && event.Mod == gott.ModNone {
			line += string(event.Ch)
		}
	}
	return line
}

func (c *Commander) processKeyCommandMode(event *gott.Event) error {
	switch event.Key {
	case gott.KeyEsc:
		c.commandText = ""
		c.mode = gott.ModeEdit
	case gott.KeyEnter:
		c.performCommand()
	default:
		c.commandText = editLine(c.commandText, event)
	}
	return nil
}

func (c *Commander) processKeySearchMode(event *gott.Event) error {
	switch event.Key {
	case gott.KeyEsc:
		c.mode = gott.ModeEdit
	case gott.KeyEnter:
		c.mode = gott.ModeEdit
		text := c.searchText
		if text == "" {
			text = c.lastSearch
		}
		c.find(text)
	default:
		c.searchText = editLine(c.searchText, event)
	}
	return nil
}

func (c *Commander) processKeyLispMode(event *gott.Event) error {
	switch event.Key {
	case gott.KeyEsc:
		c.mode = gott.ModeEdit
	case gott.KeyEnter:
		c.message = ""
		result := c.parseEval(c.lispText)
		// keep any message set by the evaluated command
		if c.message == "" {
			c.message = result
		}
		// if evaluation didn't change the mode, set it back to edit
		if c.mode == gott.ModeLisp {
			c.mode = gott.ModeEdit
		}
	default:
		c.lispText = editLine(c.lispText, event)
	}
	return nil
}

// find searches forward from the cursor.
func (c *Commander) find(text string) {
	if text == "" {
		return
	}
	c.lastSearch = text
	if c.editor.PerformSearchForward(text) {
		c.message = ""
	} else {
		c.message = fmt.Sprintf("not found: %s", text)
	}
}

func (c *Commander) GetMessageBarText(length int) string {
	var line string
	switch c.mode {
	case gott.ModeCommand:
		line = ":" + c.commandText
	case gott.ModeSearch:
		line = "find: " + c.searchText
	case gott.ModeLisp:
		line = "lisp> " + c.lispText
	default:
		line = c.message
	}
	return runewidth.Truncate(line, length, "")
}

// EditingMessageBar is true when the cursor belongs at the end of the message bar.
func (c *Commander) EditingMessageBar() bool {
	return c.mode == gott.ModeCommand || c.mode == gott.ModeSearch || c.mode == gott.ModeLisp
}
