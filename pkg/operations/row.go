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

package operations

import (
	gott "github.com/timburks/gottpad/pkg/types"
)

// DeleteRow removes the row at the cursor. A Cut also puts the row on the
// pasteboard as a whole line.
type DeleteRow struct {
	operation
	Cut bool
}

func (op *DeleteRow) Perform(e gott.Editor) gott.Operation {
	op.init(e)
	row := op.Cursor.Row
	text, removed := e.DeleteRow(row)
	if op.Cut {
		e.SetPasteBoard(text+"\n", gott.PasteNewLine)
	}
	if !removed {
		// the last remaining row was only cleared
		if text == "" {
			return nil
		}
		inverse := &Insert{Text: text}
		inverse.copyForUndo(&op.operation)
		inverse.Cursor = gott.Point{Row: row, Col: 0}
		return inverse
	}
	inverse := &InsertRow{Row: row, Text: text}
	inverse.copyForUndo(&op.operation)
	return inverse
}

// InsertRow adds a row of text above the given row.
type InsertRow struct {
	operation
	Row  int
	Text string
}

func (op *InsertRow) Perform(e gott.Editor) gott.Operation {
	op.init(e)
	e.InsertRow(op.Row, op.Text)
	e.SetCursor(gott.Point{Row: op.Row, Col: 0})
	inverse := &DeleteRow{}
	inverse.copyForUndo(&op.operation)
	inverse.Cursor = gott.Point{Row: op.Row, Col: 0}
	return inverse
}
