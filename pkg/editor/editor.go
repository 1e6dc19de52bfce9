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
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/timburks/gottpad/pkg/operations"
	"github.com/timburks/gottpad/pkg/textfile"
	gott "github.com/timburks/gottpad/pkg/types"
)

var (
	// ErrUntitled is returned when a document without a path must be saved or reloaded.
	ErrUntitled = errors.New("document has no file name")
	// ErrModified is returned when an action would discard unsaved changes.
	ErrModified = errors.New("document has unsaved changes")
	// ErrOpenInAnotherTab is returned when a document would be saved over a
	// file that another tab is editing.
	ErrOpenInAnotherTab = errors.New("file is open in another tab")
)

// Zoom limits
const (
	MinZoom  = -10
	MaxZoom  = 100
	ZoomStep = 3
)

// The Editor manages a row of tabs, each a view of one document.
// There is typically only one editor in a gottpad instance.
type Editor struct {
	origin           gott.Point // origin of editing area
	size             gott.Size  // size of editing area
	views            []*View    // one view per tab, never empty
	active           int        // index of the active view
	pasteboard       *Pasteboard
	watcher          *Watcher
	zoom             int
	preserveEncoding bool // save documents in the encoding they were read with
}

func NewEditor() *Editor {
	e := &Editor{
		pasteboard: NewPasteboard(true),
	}
	e.views = []*View{NewView(NewDocument())}
	return e
}

// UsePasteboard replaces the editor's pasteboard.
func (e *Editor) UsePasteboard(p *Pasteboard) {
	e.pasteboard = p
}

func (e *Editor) SetPreserveEncoding(preserve bool) {
	e.preserveEncoding = preserve
}

func (e *Editor) ActiveView() *View {
	return e.views[e.active]
}

func (e *Editor) ActiveDocument() *Document {
	return e.views[e.active].document
}

func (e *Editor) TabCount() int {
	return len(e.views)
}

// ActiveTab returns the 1-based number of the active tab.
func (e *Editor) ActiveTab() int {
	return e.active + 1
}

// Tabs returns the titles of all tabs in order.
func (e *Editor) Tabs() []string {
	titles := make([]string, len(e.views))
	for i, v := range e.views {
		titles[i] = v.document.Title()
	}
	return titles
}

// addDocument shows a document in a new tab. The initial empty tab is
// replaced rather than kept alongside it.
func (e *Editor) addDocument(d *Document) {
	e.CloseInsert()
	v := NewView(d)
	v.Layout(gott.Rect{Origin: e.textOrigin(), Size: e.textSize()})
	if len(e.views) == 1 && e.views[0].document.isPristine() {
		e.views[0] = v
		e.active = 0
	} else {
		e.views = append(e.views, v)
		e.active = len(e.views) - 1
	}
	e.watch(d)
}

func (e *Editor) NewTab() {
	e.CloseInsert()
	v := NewView(NewDocument())
	v.Layout(gott.Rect{Origin: e.textOrigin(), Size: e.textSize()})
	e.views = append(e.views, v)
	e.active = len(e.views) - 1
}

func (e *Editor) findTab(path string) int {
	for i, v := range e.views {
		if v.document.path != "" && v.document.path == path {
			return i
		}
	}
	return -1
}

// OpenFile reads a file into a new tab, or selects the tab that already
// shows it.
func (e *Editor) OpenFile(path string) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if i := e.findTab(path); i >= 0 {
		e.CloseInsert()
		e.active = i
		return nil
	}
	contents, err := textfile.ReadFile(path)
	if err != nil {
		return err
	}
	d := NewDocument()
	d.SetPath(path)
	d.LoadContents(contents)
	d.syncWithDisk()
	e.addDocument(d)
	return nil
}

// OpenOrCreate opens a file, or an empty document bound to the path when
// the file does not exist yet.
func (e *Editor) OpenOrCreate(path string) error {
	_, err := os.Stat(path)
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		return e.OpenFile(path)
	}
	path, err = filepath.Abs(path)
	if err != nil {
		return err
	}
	if i := e.findTab(path); i >= 0 {
		e.active = i
		return nil
	}
	d := NewDocument()
	d.SetPath(path)
	e.addDocument(d)
	return nil
}

func (e *Editor) Save() error {
	e.CloseInsert()
	d := e.ActiveDocument()
	if d.path == "" {
		return ErrUntitled
	}
	return e.saveDocument(d, d.path)
}

func (e *Editor) SaveAs(path string) error {
	e.CloseInsert()
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if i := e.findTab(path); i >= 0 && i != e.active {
		return fmt.Errorf("save as %s: %w", filepath.Base(path), ErrOpenInAnotherTab)
	}
	d := e.ActiveDocument()
	if err := e.saveDocument(d, path); err != nil {
		return err
	}
	if path != d.path {
		e.unwatch(d)
		d.SetPath(path)
		d.syncWithDisk()
		e.watch(d)
	}
	return nil
}

// saveDocument writes a document as UTF-8, or in the encoding it was read with when
// preserveEncoding is set. A failed write leaves the document unchanged.
func (e *Editor) saveDocument(d *Document, path string) error {
	encoding := textfile.UTF8
	if e.preserveEncoding {
		encoding = d.encoding
	}
	if err := textfile.WriteFile(path, d.Text(), d.lineEnding, encoding); err != nil {
		return err
	}
	log.Printf("saved %s (%s, %s)", path, encoding, d.lineEnding)
	d.encoding = encoding
	d.modified = false
	d.syncWithDisk()
	return nil
}

// CloseTab closes the active tab. The last tab is replaced by an empty one.
func (e *Editor) CloseTab(force bool) error {
	e.CloseInsert()
	d := e.ActiveDocument()
	if d.modified && !force {
		return fmt.Errorf("close %s: %w", d.name, ErrModified)
	}
	e.unwatch(d)
	if len(e.views) == 1 {
		v := NewView(NewDocument())
		v.Layout(gott.Rect{Origin: e.textOrigin(), Size: e.textSize()})
		e.views[0] = v
		return nil
	}
	e.views = append(e.views[0:e.active], e.views[e.active+1:]...)
	if e.active >= len(e.views) {
		e.active = len(e.views) - 1
	}
	return nil
}

// ModifiedTabs returns the names of documents with unsaved changes.
func (e *Editor) ModifiedTabs() []string {
	names := []string{}
	for _, v := range e.views {
		if v.document.modified {
			names = append(names, v.document.name)
		}
	}
	return names
}

func (e *Editor) NextTab() {
	e.CloseInsert()
	e.active = (e.active + 1) % len(e.views)
}

func (e *Editor) PreviousTab() {
	e.CloseInsert()
	e.active = (e.active + len(e.views) - 1) % len(e.views)
}

// SelectTab selects a tab by its 1-based number.
func (e *Editor) SelectTab(number int) error {
	if number < 1 || number > len(e.views) {
		return fmt.Errorf("no tab exists for number %d", number)
	}
	e.CloseInsert()
	e.active = number - 1
	return nil
}

// Reload reads the active document again from its file.
func (e *Editor) Reload(force bool) error {
	e.CloseInsert()
	v := e.ActiveView()
	d := v.document
	if d.path == "" {
		return ErrUntitled
	}
	if d.modified && !force {
		return fmt.Errorf("reload %s: %w", d.name, ErrModified)
	}
	contents, err := textfile.ReadFile(d.path)
	if err != nil {
		return err
	}
	d.LoadContents(contents)
	d.syncWithDisk()
	v.undo = nil
	v.redo = nil
	v.KeepCursorInRow()
	return nil
}

func (e *Editor) Zoom() int {
	return e.zoom
}

func (e *Editor) SetZoom(zoom int) {
	e.zoom = max(MinZoom, min(MaxZoom, zoom))
}

func (e *Editor) ZoomIn() {
	e.SetZoom(e.zoom + ZoomStep)
}

func (e *Editor) ZoomOut() {
	e.SetZoom(e.zoom - ZoomStep)
}

// Operations

func (e *Editor) Perform(op gott.Operation) {
	e.CloseInsert()
	v := e.ActiveView()
	inverse := op.Perform(e)
	if inverse != nil {
		v.undo = append(v.undo, inverse)
		v.redo = nil
		v.document.modified = true
	}
}

func (e *Editor) PerformUndo() {
	e.CloseInsert()
	v := e.ActiveView()
	if len(v.undo) == 0 {
		return
	}
	last := len(v.undo) - 1
	undo := v.undo[last]
	v.undo = v.undo[0:last]
	if redo := undo.Perform(e); redo != nil {
		v.redo = append(v.redo, redo)
	}
	v.document.modified = true
}

func (e *Editor) PerformRedo() {
	e.CloseInsert()
	v := e.ActiveView()
	if len(v.redo) == 0 {
		return
	}
	last := len(v.redo) - 1
	redo := v.redo[last]
	v.redo = v.redo[0:last]
	if undo := redo.Perform(e); undo != nil {
		v.undo = append(v.undo, undo)
	}
	v.document.modified = true
}

// CloseInsert ends the typing operation in progress. Anything other than
// typing closes it, so that typing is undone in runs.
func (e *Editor) CloseInsert() {
	v := e.ActiveView()
	if v.insert == nil {
		return
	}
	if v.insert.Length() == 0 && len(v.undo) > 0 {
		v.undo = v.undo[0 : len(v.undo)-1]
	}
	v.insert = nil
}

// TypeCharacter inserts a character at the cursor as part of the typing
// operation, starting one if needed.
func (e *Editor) TypeCharacter(c rune) {
	v := e.ActiveView()
	if v.insert == nil {
		op := &operations.Insert{}
		inverse := op.Perform(e)
		v.undo = append(v.undo, inverse)
		v.redo = nil
	}
	v.insert.AddCharacter(c)
	v.InsertChar(c)
	v.document.modified = true
}

func (e *Editor) TypeText(text string) {
	for _, c := range text {
		e.TypeCharacter(c)
	}
}

// InsertNewline breaks the line at the cursor and indents the new line
// like the current one.
func (e *Editor) InsertNewline() {
	v := e.ActiveView()
	indent := []rune(v.document.rows[v.cursor.Row].Indentation())
	if len(indent) > v.cursor.Col {
		indent = indent[0:v.cursor.Col]
	}
	e.TypeCharacter('\n')
	e.TypeText(string(indent))
}

// InsertTab types spaces up to the next tab stop.
func (e *Editor) InsertTab() {
	col := e.ActiveView().cursor.Col
	e.TypeText(strings.Repeat(" ", tabWidth-col%tabWidth))
}

func (e *Editor) Backspace() {
	v := e.ActiveView()
	if v.insert != nil && v.insert.Length() > 0 {
		v.insert.DeleteCharacter()
		v.MoveCursorBackward()
		v.DeleteCharacters(1)
		return
	}
	e.Perform(&operations.Backspace{})
}

func (e *Editor) DeleteForward() {
	e.Perform(&operations.Delete{Count: 1})
}

func (e *Editor) CutLine() {
	e.Perform(&operations.DeleteRow{Cut: true})
}

func (e *Editor) Paste() {
	e.Perform(&operations.Paste{})
}

// ChangeLineEnding sets the line ending of the active document as an undoable operation.
func (e *Editor) ChangeLineEnding(le textfile.LineEnding) {
	e.Perform(&operations.SetLineEnding{LineEnding: le})
}

// Cursor movement

func (e *Editor) MoveCursor(direction int, multiplier int) {
	e.CloseInsert()
	e.ActiveView().MoveCursor(direction, multiplier)
}

func (e *Editor) MoveToBeginningOfLine() {
	e.CloseInsert()
	e.ActiveView().MoveToBeginningOfLine()
}

func (e *Editor) MoveToEndOfLine() {
	e.CloseInsert()
	e.ActiveView().MoveToEndOfLine()
}

func (e *Editor) MoveCursorToLine(line int) {
	e.CloseInsert()
	e.ActiveView().MoveCursorToLine(line)
}

func (e *Editor) PageUp() {
	e.CloseInsert()
	e.ActiveView().PageUp()
}

func (e *Editor) PageDown() {
	e.CloseInsert()
	e.ActiveView().PageDown()
}

func (e *Editor) PerformSearchForward(text string) bool {
	e.CloseInsert()
	return e.ActiveView().PerformSearchForward(text)
}

// These services are used by operations and apply to the active view.

func (e *Editor) GetCursor() gott.Point {
	return e.ActiveView().GetCursor()
}

func (e *Editor) SetCursor(cursor gott.Point) {
	e.ActiveView().SetCursor(cursor)
}

func (e *Editor) MoveCursorBackward() bool {
	return e.ActiveView().MoveCursorBackward()
}

func (e *Editor) InsertText(text string) gott.Point {
	return e.ActiveView().InsertText(text)
}

func (e *Editor) DeleteCharacters(count int) string {
	return e.ActiveView().DeleteCharacters(count)
}

func (e *Editor) DeleteRow(row int) (string, bool) {
	return e.ActiveView().DeleteRow(row)
}

func (e *Editor) InsertRow(row int, text string) {
	e.ActiveView().InsertRow(row, text)
}

func (e *Editor) GetLineEnding() textfile.LineEnding {
	return e.ActiveDocument().lineEnding
}

func (e *Editor) SetLineEnding(le textfile.LineEnding) {
	e.ActiveDocument().lineEnding = le
}

func (e *Editor) SetPasteBoard(text string, mode int) {
	e.pasteboard.Set(text, mode)
}

func (e *Editor) GetPasteBoard() (string, int) {
	return e.pasteboard.Get()
}

func (e *Editor) SetInsertOperation(insert gott.InsertOperation) {
	e.ActiveView().insert = insert
}

// Disk watching

// EnableWatching starts watching the files of open documents. notify is
// called from the watcher's goroutine when a change is waiting to be checked.
func (e *Editor) EnableWatching(notify func()) error {
	w, err := NewWatcher(notify)
	if err != nil {
		return err
	}
	e.watcher = w
	for _, v := range e.views {
		e.watch(v.document)
	}
	return nil
}

func (e *Editor) watch(d *Document) {
	if e.watcher == nil || d.path == "" {
		return
	}
	if err := e.watcher.Add(d.path); err != nil {
		log.Printf("unable to watch %s: %v", d.path, err)
	}
}

func (e *Editor) unwatch(d *Document) {
	if e.watcher == nil || d.path == "" {
		return
	}
	e.watcher.Remove(d.path)
}

// CheckDiskChanges applies pending watcher events and returns the names of
// documents whose files have newly changed on disk.
func (e *Editor) CheckDiskChanges() []string {
	if e.watcher == nil || !e.watcher.drain() {
		return nil
	}
	changed := []string{}
	for _, v := range e.views {
		d := v.document
		if !d.changedOnDisk && d.checkDisk() {
			log.Printf("%s changed on disk", d.path)
			changed = append(changed, d.name)
		}
	}
	return changed
}

func (e *Editor) Close() error {
	if e.watcher != nil {
		return e.watcher.Close()
	}
	return nil
}

// Display

// The tab bar is on the first row of the editing area and the status bar on the last.
func (e *Editor) textOrigin() gott.Point {
	return gott.Point{Row: e.origin.Row + 1, Col: e.origin.Col}
}

func (e *Editor) textSize() gott.Size {
	return gott.Size{Rows: max(0, e.size.Rows-2), Cols: e.size.Cols}
}

func (e *Editor) Layout(r gott.Rect) {
	e.origin = r.Origin
	e.size = r.Size
	for _, v := range e.views {
		v.Layout(gott.Rect{Origin: e.textOrigin(), Size: e.textSize()})
	}
}

func (e *Editor) Render(d gott.Display) {
	// tab bar
	col := e.origin.Col
	for i, v := range e.views {
		fg, bg := gott.ColorWhite, gott.ColorGray
		if i == e.active {
			fg, bg = gott.ColorBlack, gott.ColorWhite
		}
		label := fmt.Sprintf(" %d:%s ", i+1, v.document.Title())
		col = drawString(d, col, e.origin.Row, label, fg, bg, e.origin.Col+e.size.Cols)
	}

	v := e.ActiveView()
	v.Render(d)

	// status bar
	row := e.origin.Row + e.size.Rows - 1
	end := drawString(d, e.origin.Col, row, e.StatusText(), gott.ColorBlack, gott.ColorWhite, e.origin.Col+e.size.Cols)
	for x := end; x < e.origin.Col+e.size.Cols; x++ {
		d.SetCell(x, row, ' ', gott.ColorBlack, gott.ColorWhite)
	}

	v.SetCursorForDisplay(d)
}

// StatusText describes the active document and cursor.
func (e *Editor) StatusText() string {
	d := e.ActiveDocument()
	cursor := e.GetCursor()
	language := d.language
	if language == "" {
		language = "Plain Text"
	}
	s := fmt.Sprintf(" %s  Ln %d, Col %d  %s  Zoom %+d  %s  %s",
		d.Title(), cursor.Row+1, cursor.Col+1, language, e.zoom, d.encoding, d.lineEnding)
	if d.changedOnDisk {
		s += "  [changed on disk]"
	}
	return s
}

// drawString draws s starting at col and returns the column after it.
func drawString(d gott.Display, col, row int, s string, fg, bg gott.Color, limit int) int {
	for _, c := range s {
		w := runewidth.RuneWidth(c)
		if w < 1 {
			w = 1
		}
		if col+w > limit {
			break
		}
		d.SetCell(col, row, c, fg, bg)
		col += w
	}
	return col
}
