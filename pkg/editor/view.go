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
	"strconv"

	gott "github.com/timburks/gottpad/pkg/types"
)

// This is the number of the last view created. Use it to uniquely number views.
var lastViewNumber = -1

// A View shows one document in a tab. It owns the cursor and the undo
// history of its document; many editing operations are implemented here to
// allow cursor management.
type View struct {
	number   int
	document *Document
	origin   gott.Point
	size     gott.Size
	cursor   gott.Point // cursor position, Col may equal the row length
	offset   gott.Size  // display offset, Cols counted in terminal cells
	undo     []gott.Operation
	redo     []gott.Operation
	insert   gott.InsertOperation // the typing operation in progress
}

func NewView(d *Document) *View {
	lastViewNumber++
	return &View{number: lastViewNumber, document: d}
}

func (v *View) GetNumber() int {
	return v.number
}

func (v *View) GetDocument() *Document {
	return v.document
}

func (v *View) Layout(r gott.Rect) {
	v.origin = r.Origin
	v.size = r.Size
}

func (v *View) GetCursor() gott.Point {
	return v.cursor
}

func (v *View) SetCursor(cursor gott.Point) {
	v.cursor = cursor
	v.KeepCursorInRow()
}

func (v *View) KeepCursorInRow() {
	b := v.document
	if v.cursor.Row >= b.GetRowCount() {
		v.cursor.Row = b.GetRowCount() - 1
	}
	if v.cursor.Row < 0 {
		v.cursor.Row = 0
	}
	if v.cursor.Col > b.GetRowLength(v.cursor.Row) {
		v.cursor.Col = b.GetRowLength(v.cursor.Row)
	}
	if v.cursor.Col < 0 {
		v.cursor.Col = 0
	}
}

func (v *View) MoveCursor(direction int, multiplier int) {
	b := v.document
	for i := 0; i < multiplier; i++ {
		switch direction {
		case gott.MoveLeft:
			v.MoveCursorBackward()
		case gott.MoveRight:
			v.MoveCursorForward()
		case gott.MoveUp:
			if v.cursor.Row > 0 {
				v.cursor.Row--
			}
		case gott.MoveDown:
			if v.cursor.Row < b.GetRowCount()-1 {
				v.cursor.Row++
			}
		}
	}
	v.KeepCursorInRow()
}

// MoveCursorForward moves one character right, continuing onto the next row.
func (v *View) MoveCursorForward() bool {
	b := v.document
	if v.cursor.Col < b.GetRowLength(v.cursor.Row) {
		v.cursor.Col++
		return true
	}
	if v.cursor.Row < b.GetRowCount()-1 {
		v.cursor.Row++
		v.cursor.Col = 0
		return true
	}
	return false
}

// MoveCursorBackward moves one character left, continuing onto the end of the
// previous row. It returns false at the start of the document.
func (v *View) MoveCursorBackward() bool {
	if v.cursor.Col > 0 {
		v.cursor.Col--
		return true
	}
	if v.cursor.Row > 0 {
		v.cursor.Row--
		v.cursor.Col = v.document.GetRowLength(v.cursor.Row)
		return true
	}
	return false
}

func (v *View) MoveToBeginningOfLine() {
	v.cursor.Col = 0
}

func (v *View) MoveToEndOfLine() {
	v.cursor.Col = v.document.GetRowLength(v.cursor.Row)
}

func (v *View) MoveCursorToLine(line int) {
	v.SetCursor(gott.Point{Row: line - 1, Col: 0})
}

func (v *View) textRows() int {
	if v.size.Rows < 1 {
		return 1
	}
	return v.size.Rows
}

func (v *View) PageUp() {
	// move to the top of the screen
	v.cursor.Row = v.offset.Rows
	v.MoveCursor(gott.MoveUp, v.textRows())
}

func (v *View) PageDown() {
	// move to the bottom of the screen
	v.cursor.Row = min(v.offset.Rows+v.textRows()-1, v.document.GetRowCount()-1)
	v.MoveCursor(gott.MoveDown, v.textRows())
}

// PerformSearchForward moves the cursor to the next occurrence of text,
// wrapping around at the end of the document.
func (v *View) PerformSearchForward(text string) bool {
	b := v.document
	if text == "" {
		return false
	}
	row := v.cursor.Row
	col := v.cursor.Col
	for i := 0; i <= b.GetRowCount(); i++ {
		position := b.FirstPositionInRowAfterCol(row, col, text)
		if position != -1 {
			// found it
			v.cursor.Row = row
			v.cursor.Col = position
			return true
		}
		col = -1
		row = row + 1
		if row == b.GetRowCount() {
			row = 0
		}
	}
	return false
}

func (v *View) InsertChar(c rune) {
	b := v.document
	if c == '\n' {
		v.splitRow()
		v.cursor.Row++
		v.cursor.Col = 0
		return
	}
	b.InsertCharacter(v.cursor.Row, v.cursor.Col, c)
	v.cursor.Col++
}

// splitRow splits the cursor row at the cursor.
func (v *View) splitRow() {
	b := v.document
	newRow := b.rows[v.cursor.Row].Split(v.cursor.Col)
	b.insertRow(v.cursor.Row+1, newRow)
}

func (v *View) InsertText(text string) gott.Point {
	for _, c := range text {
		v.InsertChar(c)
	}
	return v.cursor
}

func (v *View) DeleteCharacters(count int) string {
	deletedText := v.document.DeleteCharacters(v.cursor.Row, v.cursor.Col, count)
	v.KeepCursorInRow()
	return deletedText
}

// DeleteRow removes a row and returns its text. The last remaining row of a
// document is cleared instead of removed.
func (v *View) DeleteRow(row int) (string, bool) {
	b := v.document
	if row < 0 || row >= b.GetRowCount() {
		return "", false
	}
	text := b.rows[row].String()
	removed := false
	if b.GetRowCount() == 1 {
		b.rows[0].SetText(nil)
		b.highlighted = false
	} else {
		b.deleteRow(row)
		removed = true
	}
	v.cursor = gott.Point{Row: row, Col: 0}
	v.KeepCursorInRow()
	return text, removed
}

func (v *View) InsertRow(row int, text string) {
	v.document.insertRow(row, NewRow(text))
}

// Recompute the display offset to keep the cursor onscreen.
func (v *View) adjustDisplayOffsetForScrolling() {
	if v.cursor.Row < v.offset.Rows {
		// scroll up
		v.offset.Rows = v.cursor.Row
	}
	if v.cursor.Row-v.offset.Rows >= v.textRows() {
		// scroll down
		v.offset.Rows = v.cursor.Row - v.textRows() + 1
	}
	x := v.document.rows[v.cursor.Row].DisplayWidth(v.cursor.Col)
	textCols := v.size.Cols - v.gutterWidth()
	if x < v.offset.Cols {
		// scroll left
		v.offset.Cols = x
	}
	if textCols > 0 && x-v.offset.Cols >= textCols {
		// scroll right
		v.offset.Cols = x - textCols + 1
	}
}

// The line number gutter is two columns wider than the largest line number.
func (v *View) gutterWidth() int {
	return len(strconv.Itoa(v.document.GetRowCount())) + 2
}

// draw text in the view's area with the display offset applied
func (v *View) Render(display gott.Display) {
	b := v.document
	if !b.highlighted {
		if h := NewHighlighter(b.language); h != nil {
			h.Highlight(b)
		} else {
			for _, row := range b.rows {
				row.resetColors()
			}
		}
		b.highlighted = true
	}

	v.adjustDisplayOffsetForScrolling()
	gutter := v.gutterWidth()
	for i := 0; i < v.size.Rows; i++ {
		screenRow := v.origin.Row + i
		index := i + v.offset.Rows
		if index >= b.GetRowCount() {
			display.SetCell(v.origin.Col, screenRow, '~', gott.ColorGray, gott.ColorDefault)
			continue
		}
		number := strconv.Itoa(index + 1)
		for j, c := range number {
			col := v.origin.Col + gutter - 1 - len(number) + j
			display.SetCell(col, screenRow, c, gott.ColorGray, gott.ColorDefault)
		}
		row := b.rows[index]
		x := 0
		for j, c := range row.Text {
			w := cellWidth(c, x)
			col := x - v.offset.Cols
			x += w
			if col < 0 {
				continue
			}
			if col+w > v.size.Cols-gutter {
				break
			}
			if c == '\t' {
				continue
			}
			color := gott.ColorWhite
			if j < len(row.Colors) {
				color = row.Colors[j]
			}
			display.SetCell(v.origin.Col+gutter+col, screenRow, c, color, gott.ColorDefault)
		}
	}
}

func (v *View) SetCursorForDisplay(d gott.Display) {
	x := v.document.rows[v.cursor.Row].DisplayWidth(v.cursor.Col)
	d.SetCursor(gott.Point{
		Col: x - v.offset.Cols + v.origin.Col + v.gutterWidth(),
		Row: v.cursor.Row - v.offset.Rows + v.origin.Row,
	})
}
