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

// Delete removes characters forward from the cursor. A line break counts as
// one character, so deleting at the end of a row joins the next row to it.
type Delete struct {
	operation
	Count int
}

func (op *Delete) Perform(e gott.Editor) gott.Operation {
	op.init(e)
	if op.Count <= 0 {
		return nil
	}
	deletedText := e.DeleteCharacters(op.Count)
	if deletedText == "" {
		return nil
	}
	inverse := &Insert{Text: deletedText}
	inverse.copyForUndo(&op.operation)
	return inverse
}

// Backspace removes the character before the cursor.
type Backspace struct {
	operation
}

func (op *Backspace) Perform(e gott.Editor) gott.Operation {
	op.init(e)
	if !e.MoveCursorBackward() {
		return nil
	}
	previous := &Delete{Count: 1}
	return previous.Perform(e)
}
