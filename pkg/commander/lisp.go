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
	"log"

	"github.com/steelseries/golisp"

	"github.com/timburks/gottpad/pkg/textfile"
	gott "github.com/timburks/gottpad/pkg/types"
)

// the commander that is evaluating lisp
var current *Commander

func init() {
	// tabs and files
	golisp.MakePrimitiveFunction("new-tab", "0", action(func(c *Commander) error { c.editor.NewTab(); return nil }))
	golisp.MakePrimitiveFunction("open", "1", withString("open", (*Commander).open))
	golisp.MakePrimitiveFunction("save", "0", action((*Commander).save))
	golisp.MakePrimitiveFunction("save-as", "1", withString("save-as", (*Commander).saveAs))
	golisp.MakePrimitiveFunction("close-tab", "0", action(func(c *Commander) error { return c.closeTab(false) }))
	golisp.MakePrimitiveFunction("next-tab", "0", action(func(c *Commander) error { c.editor.NextTab(); return nil }))
	golisp.MakePrimitiveFunction("previous-tab", "0", action(func(c *Commander) error { c.editor.PreviousTab(); return nil }))
	golisp.MakePrimitiveFunction("quit", "0", action(func(c *Commander) error { return c.quit(false) }))

	// editing
	golisp.MakePrimitiveFunction("undo", "0", action(func(c *Commander) error { c.editor.PerformUndo(); return nil }))
	golisp.MakePrimitiveFunction("redo", "0", action(func(c *Commander) error { c.editor.PerformRedo(); return nil }))
	golisp.MakePrimitiveFunction("cut-line", "0", action(func(c *Commander) error { c.editor.CutLine(); return nil }))
	golisp.MakePrimitiveFunction("paste", "0", action(func(c *Commander) error { c.editor.Paste(); return nil }))
	golisp.MakePrimitiveFunction("insert", "1", withString("insert", func(c *Commander, text string) error {
		c.editor.TypeText(textfile.NormalizeForEdit(text))
		c.editor.CloseInsert()
		return nil
	}))
	golisp.MakePrimitiveFunction("set-line-ending", "1", withString("set-line-ending", (*Commander).setLineEnding))
	golisp.MakePrimitiveFunction("set-hotkey", "1", withString("set-hotkey", (*Commander).setHotkey))
	golisp.MakePrimitiveFunction("zoom-in", "0", action(func(c *Commander) error { return c.zoom("in") }))
	golisp.MakePrimitiveFunction("zoom-out", "0", action(func(c *Commander) error { return c.zoom("out") }))
	golisp.MakePrimitiveFunction("command", "1", withString("command", (*Commander).runCommand))
	golisp.MakePrimitiveFunction("find", "1", withString("find", func(c *Commander, text string) error {
		c.find(text)
		return nil
	}))

	// cursor movement
	golisp.MakePrimitiveFunction("up", "0", action(func(c *Commander) error { c.editor.MoveCursor(gott.MoveUp, 1); return nil }))
	golisp.MakePrimitiveFunction("down", "0", action(func(c *Commander) error { c.editor.MoveCursor(gott.MoveDown, 1); return nil }))
	golisp.MakePrimitiveFunction("left", "0", action(func(c *Commander) error { c.editor.MoveCursor(gott.MoveLeft, 1); return nil }))
	golisp.MakePrimitiveFunction("right", "0", action(func(c *Commander) error { c.editor.MoveCursor(gott.MoveRight, 1); return nil }))
	golisp.MakePrimitiveFunction("beginning-of-line", "0", action(func(c *Commander) error { c.editor.MoveToBeginningOfLine(); return nil }))
	golisp.MakePrimitiveFunction("end-of-line", "0", action(func(c *Commander) error { c.editor.MoveToEndOfLine(); return nil }))
	golisp.MakePrimitiveFunction("page-up", "0", action(func(c *Commander) error { c.editor.PageUp(); return nil }))
	golisp.MakePrimitiveFunction("page-down", "0", action(func(c *Commander) error { c.editor.PageDown(); return nil }))

	// modes
	golisp.MakePrimitiveFunction("command-mode", "0", action(func(c *Commander) error { c.beginCommand(""); return nil }))
	golisp.MakePrimitiveFunction("search-mode", "0", action(func(c *Commander) error {
		c.editor.CloseInsert()
		c.mode = gott.ModeSearch
		c.searchText = ""
		return nil
	}))
	golisp.MakePrimitiveFunction("lisp-mode", "0", action(func(c *Commander) error {
		c.editor.CloseInsert()
		c.mode = gott.ModeLisp
		c.lispText = ""
		return nil
	}))

	// information
	golisp.MakePrimitiveFunction("file-name", "0", query(func(c *Commander) string { return c.editor.ActiveDocument().GetPath() }))
	golisp.MakePrimitiveFunction("encoding", "0", query(func(c *Commander) string { return c.editor.ActiveDocument().GetEncoding().String() }))
	golisp.MakePrimitiveFunction("line-ending", "0", query(func(c *Commander) string { return c.editor.ActiveDocument().GetLineEnding().String() }))
	golisp.MakePrimitiveFunction("text", "0", query(func(c *Commander) string { return c.editor.ActiveDocument().Text() }))
	golisp.MakePrimitiveFunction("mode", "0", query((*Commander).getModeName))
}

type primitive func(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error)

var errNoCommander = errors.New("no editor is available")

// action makes a primitive that returns nil.
func action(f func(c *Commander) error) primitive {
	return func(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
		if current == nil {
			return nil, errNoCommander
		}
		return nil, f(current)
	}
}

// withString makes a primitive that takes one string argument.
func withString(name string, f func(c *Commander, s string) error) primitive {
	return func(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
		if current == nil {
			return nil, errNoCommander
		}
		val := golisp.Car(args)
		if !golisp.StringP(val) {
			return nil, errors.New(name + " requires a string argument")
		}
		return nil, f(current, golisp.StringValue(val))
	}
}

// query makes a primitive that returns a string.
func query(f func(c *Commander) string) primitive {
	return func(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
		if current == nil {
			return nil, errNoCommander
		}
		return golisp.StringWithValue(f(current)), nil
	}
}

// Eval evaluates a lisp expression with this commander's editor and returns
// the printed result.
func (c *Commander) Eval(command string) (string, error) {
	previous := current
	current = c
	defer func() { current = previous }()
	value, err := golisp.ParseAndEval(command)
	if err != nil {
		return "", err
	}
	if golisp.StringP(value) {
		return golisp.StringValue(value), nil
	}
	return golisp.String(value), nil
}

// parseEval evaluates a key binding or a line typed at the lisp prompt.
// Errors become the status message.
func (c *Commander) parseEval(command string) string {
	result, err := c.Eval(command)
	if err != nil {
		log.Printf("ERR %s: %+v", command, err)
		c.message = err.Error()
		return c.message
	}
	return result
}
