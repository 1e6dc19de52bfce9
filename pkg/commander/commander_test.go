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
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timburks/gottpad/pkg/editor"
	"github.com/timburks/gottpad/pkg/settings"
	"github.com/timburks/gottpad/pkg/textfile"
	gott "github.com/timburks/gottpad/pkg/types"
)

func setup(t *testing.T) (*Commander, *editor.Editor, *settings.Store) {
	e := editor.NewEditor()
	e.UsePasteboard(editor.NewPasteboard(false))
	s, err := settings.NewStore(t.TempDir())
	require.NoError(t, err)
	return NewCommander(e, s, nil), e, s
}

func press(t *testing.T, c *Commander, key gott.Key) {
	require.NoError(t, c.ProcessEvent(&gott.Event{Type: gott.EventKey, Key: key}))
}

func alt(t *testing.T, c *Commander, ch rune) {
	require.NoError(t, c.ProcessEvent(&gott.Event{Type: gott.EventKey, Ch: ch, Mod: gott.ModAlt}))
}

func typeString(t *testing.T, c *Commander, s string) {
	for _, ch := range s {
		if ch == ' ' {
			press(t, c, gott.KeySpace)
			continue
		}
		require.NoError(t, c.ProcessEvent(&gott.Event{Type: gott.EventKey, Ch: ch}))
	}
}

func command(t *testing.T, c *Commander, text string) {
	press(t, c, gott.KeyCtrlP)
	require.Equal(t, gott.ModeCommand, c.GetMode())
	typeString(t, c, text)
	press(t, c, gott.KeyEnter)
}

func TestTypingAndUndo(t *testing.T) {
	c, e, _ := setup(t)
	typeString(t, c, "hello world")
	press(t, c, gott.KeyEnter)
	typeString(t, c, "x")
	assert.Equal(t, "hello world\nx", e.ActiveDocument().Text())
	press(t, c, gott.KeyBackspace)
	press(t, c, gott.KeyBackspace)
	assert.Equal(t, "hello world", e.ActiveDocument().Text())
	press(t, c, gott.KeyCtrlZ)
	assert.Equal(t, "", e.ActiveDocument().Text())
	press(t, c, gott.KeyCtrlY)
	assert.Equal(t, "hello world", e.ActiveDocument().Text())
}

func TestCursorKeys(t *testing.T) {
	c, e, _ := setup(t)
	typeString(t, c, "ab")
	press(t, c, gott.KeyEnter)
	typeString(t, c, "cd")
	press(t, c, gott.KeyArrowUp)
	assert.Equal(t, gott.Point{Row: 0, Col: 2}, e.GetCursor())
	press(t, c, gott.KeyHome)
	assert.Equal(t, gott.Point{Row: 0, Col: 0}, e.GetCursor())
	press(t, c, gott.KeyArrowLeft)
	assert.Equal(t, gott.Point{Row: 0, Col: 0}, e.GetCursor())
	press(t, c, gott.KeyEnd)
	press(t, c, gott.KeyArrowRight)
	assert.Equal(t, gott.Point{Row: 1, Col: 0}, e.GetCursor())
	press(t, c, gott.KeyDelete)
	assert.Equal(t, "ab\nd", e.ActiveDocument().Text())
	command(t, c, "1")
	assert.Equal(t, gott.Point{Row: 0, Col: 0}, e.GetCursor())
}

func TestSaveUntitledAsksForName(t *testing.T) {
	c, e, _ := setup(t)
	typeString(t, c, "text")
	press(t, c, gott.KeyCtrlS)
	assert.Equal(t, gott.ModeCommand, c.GetMode())
	assert.Equal(t, ":save-as ", c.GetMessageBarText(80))

	path := filepath.Join(t.TempDir(), "new.txt")
	typeString(t, c, path)
	press(t, c, gott.KeyEnter)
	assert.Equal(t, gott.ModeEdit, c.GetMode())
	assert.Equal(t, "saved new.txt", c.GetMessage())
	assert.False(t, e.ActiveDocument().IsModified())
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "text", string(b))

	typeString(t, c, "!")
	press(t, c, gott.KeyCtrlS)
	assert.Equal(t, gott.ModeEdit, c.GetMode())
	b, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "text!", string(b))
}

func TestOpenPrompt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\n"), 0644))
	c, e, _ := setup(t)
	press(t, c, gott.KeyCtrlO)
	assert.Equal(t, ":open ", c.GetMessageBarText(80))
	typeString(t, c, path)
	press(t, c, gott.KeyEnter)
	assert.Equal(t, "opened notes.txt", c.GetMessage())
	assert.Equal(t, "one\ntwo\n", e.ActiveDocument().Text())
	assert.Equal(t, 1, e.TabCount())

	command(t, c, "open "+filepath.Join(t.TempDir(), "missing.txt"))
	assert.Contains(t, c.GetMessage(), "missing.txt")
	assert.Equal(t, 1, e.TabCount())
}

func TestTabs(t *testing.T) {
	c, e, _ := setup(t)
	press(t, c, gott.KeyCtrlN)
	press(t, c, gott.KeyCtrlT)
	assert.Equal(t, 3, e.TabCount())
	alt(t, c, '.')
	assert.Equal(t, 1, e.ActiveTab())
	alt(t, c, ',')
	assert.Equal(t, 3, e.ActiveTab())
	command(t, c, "tab 2")
	assert.Equal(t, 2, e.ActiveTab())
	command(t, c, "tabs")
	assert.Equal(t, "1:Untitled  >2:Untitled  3:Untitled", c.GetMessage())
	command(t, c, "tab 9")
	assert.Contains(t, c.GetMessage(), "no tab")

	typeString(t, c, "draft")
	press(t, c, gott.KeyCtrlW)
	assert.Contains(t, c.GetMessage(), "close!")
	assert.Equal(t, 3, e.TabCount())
	command(t, c, "close!")
	assert.Equal(t, 2, e.TabCount())
	command(t, c, "next")
	command(t, c, "prev")
	command(t, c, "new")
	assert.Equal(t, 3, e.TabCount())
}

func TestQuit(t *testing.T) {
	c, _, _ := setup(t)
	typeString(t, c, "unsaved")
	press(t, c, gott.KeyCtrlQ)
	assert.True(t, c.IsRunning())
	assert.Contains(t, c.GetMessage(), "unsaved changes in Untitled")
	command(t, c, "q!")
	assert.False(t, c.IsRunning())
}

func TestQuitUnmodified(t *testing.T) {
	c, _, _ := setup(t)
	press(t, c, gott.KeyCtrlQ)
	assert.False(t, c.IsRunning())
}

func TestLineEndingCommand(t *testing.T) {
	c, e, _ := setup(t)
	command(t, c, "le lf")
	assert.Equal(t, textfile.LF, e.ActiveDocument().GetLineEnding())
	assert.Equal(t, "line ending: Unix (LF)", c.GetMessage())
	press(t, c, gott.KeyCtrlZ)
	assert.Equal(t, textfile.CRLF, e.ActiveDocument().GetLineEnding())
	command(t, c, "le beos")
	assert.Contains(t, c.GetMessage(), "beos")
}

func TestZoomIsSaved(t *testing.T) {
	c, e, s := setup(t)
	command(t, c, "zoom in")
	assert.Equal(t, 3, e.Zoom())
	assert.Equal(t, 3, s.ZoomLevel())
	alt(t, c, '=')
	assert.Equal(t, 6, s.ZoomLevel())
	alt(t, c, '-')
	alt(t, c, '-')
	alt(t, c, '-')
	assert.Equal(t, -3, e.Zoom())
	command(t, c, "zoom reset")
	assert.Equal(t, 0, s.ZoomLevel())

	// a new commander starts at the saved zoom level
	require.NoError(t, s.SetZoomLevel(9))
	other := editor.NewEditor()
	NewCommander(other, s, nil)
	assert.Equal(t, 9, other.Zoom())
}

func TestFind(t *testing.T) {
	c, e, _ := setup(t)
	typeString(t, c, "one two one")
	press(t, c, gott.KeyHome)
	press(t, c, gott.KeyCtrlF)
	assert.Equal(t, gott.ModeSearch, c.GetMode())
	typeString(t, c, "one")
	assert.Equal(t, "find: one", c.GetMessageBarText(80))
	press(t, c, gott.KeyEnter)
	assert.Equal(t, gott.Point{Row: 0, Col: 8}, e.GetCursor())

	// an empty search repeats the last one
	press(t, c, gott.KeyCtrlF)
	press(t, c, gott.KeyEnter)
	assert.Equal(t, gott.Point{Row: 0, Col: 0}, e.GetCursor())

	command(t, c, "find three")
	assert.Equal(t, "not found: three", c.GetMessage())
}

func TestCutAndPasteKeys(t *testing.T) {
	c, e, _ := setup(t)
	typeString(t, c, "first")
	press(t, c, gott.KeyEnter)
	typeString(t, c, "second")
	press(t, c, gott.KeyCtrlX)
	assert.Equal(t, "first", e.ActiveDocument().Text())
	press(t, c, gott.KeyCtrlV)
	assert.Equal(t, "second\nfirst", e.ActiveDocument().Text())
}

func TestHotkeyCommand(t *testing.T) {
	c, _, s := setup(t)
	command(t, c, "hotkey ctrl+shift+n")
	assert.Equal(t, "global hotkey: Ctrl+Shift+N", c.GetMessage())
	assert.Equal(t, "Ctrl+Shift+N", s.GlobalHotkey())

	command(t, c, "hotkey Ctrl+")
	assert.Contains(t, c.GetMessage(), "invalid hotkey")
	assert.Equal(t, "Ctrl+Shift+N", s.GlobalHotkey())

	command(t, c, "hotkey")
	assert.Equal(t, "global hotkey: Ctrl+Shift+N", c.GetMessage())
}

func TestRegisterHotkeyFailureIsNotFatal(t *testing.T) {
	c, _, _ := setup(t)
	c.RegisterHotkey()
	assert.True(t, c.IsRunning())
	command(t, c, "hotkey")
	assert.Equal(t, "global hotkey: Ctrl+Alt+T", c.GetMessage())
}

func TestUnknownCommand(t *testing.T) {
	c, _, _ := setup(t)
	command(t, c, "frobnicate now")
	assert.Equal(t, "unknown command: frobnicate", c.GetMessage())
	press(t, c, gott.KeyCtrlP)
	typeString(t, c, "abc")
	press(t, c, gott.KeyBackspace)
	assert.Equal(t, ":ab", c.GetMessageBarText(80))
	assert.Equal(t, ":a", c.GetMessageBarText(2))
	press(t, c, gott.KeyEsc)
	assert.Equal(t, gott.ModeEdit, c.GetMode())
}

func TestResizeSavesWindowSize(t *testing.T) {
	c, _, s := setup(t)
	require.NoError(t, c.ProcessEvent(&gott.Event{Type: gott.EventResize, Size: gott.Size{Rows: 40, Cols: 120}}))
	cols, rows := s.WindowSize()
	assert.Equal(t, 120, cols)
	assert.Equal(t, 40, rows)
}

func TestCheckWindowSize(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	c, _, s := setup(t)
	c.CheckWindowSize(gott.Size{Rows: 24, Cols: 80})
	assert.Empty(t, buf.String())
	cols, rows := s.WindowSize()
	assert.Equal(t, 80, cols)
	assert.Equal(t, 24, rows)

	c.CheckWindowSize(gott.Size{Rows: 40, Cols: 120})
	assert.Contains(t, buf.String(), "terminal is 120x40, last session was 80x24")
	cols, rows = s.WindowSize()
	assert.Equal(t, 120, cols)
	assert.Equal(t, 40, rows)
}

func TestLispPrompt(t *testing.T) {
	c, _, _ := setup(t)
	press(t, c, gott.KeyCtrlL)
	assert.Equal(t, gott.ModeLisp, c.GetMode())
	typeString(t, c, "(line-ending)")
	press(t, c, gott.KeyEnter)
	assert.Equal(t, gott.ModeEdit, c.GetMode())
	assert.Equal(t, "Windows (CRLF)", c.GetMessage())
}

func TestLispPromptKeepsCommandMessage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	c, e, _ := setup(t)
	require.NoError(t, e.OpenFile(path))
	typeString(t, c, "y")

	press(t, c, gott.KeyCtrlL)
	typeString(t, c, "(save)")
	press(t, c, gott.KeyEnter)
	assert.Equal(t, gott.ModeEdit, c.GetMode())
	assert.Equal(t, "saved x.txt", c.GetMessage())

	press(t, c, gott.KeyCtrlL)
	typeString(t, c, "(undo)")
	press(t, c, gott.KeyEnter)
	assert.Equal(t, "()", c.GetMessage())
}

func TestEval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\r\nb\r\n"), 0644))
	e := editor.NewEditor()
	e.UsePasteboard(editor.NewPasteboard(false))
	c := NewBatchCommander(e)

	_, err := c.Eval(`(open "` + path + `")`)
	require.NoError(t, err)
	result, err := c.Eval("(file-name)")
	require.NoError(t, err)
	assert.Equal(t, path, result)
	result, err = c.Eval("(encoding)")
	require.NoError(t, err)
	assert.Equal(t, "UTF-8", result)

	_, err = c.Eval(`(set-line-ending "lf")`)
	require.NoError(t, err)
	_, err = c.Eval(`(insert "x")`)
	require.NoError(t, err)
	_, err = c.Eval("(save)")
	require.NoError(t, err)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "xa\nb\n", string(b))

	result, err = c.Eval("(text)")
	require.NoError(t, err)
	assert.Equal(t, "xa\nb\n", result)

	_, err = c.Eval(`(command "tabs")`)
	require.NoError(t, err)
	assert.Equal(t, ">1:script.txt", c.GetMessage())
}

func TestEvalErrors(t *testing.T) {
	e := editor.NewEditor()
	c := NewBatchCommander(e)
	_, err := c.Eval("(save)")
	assert.Error(t, err)
	_, err = c.Eval("(open 3)")
	assert.Error(t, err)
	_, err = c.Eval(`(set-line-ending "sideways")`)
	assert.Error(t, err)
}
