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

// Paste inserts the contents of the pasteboard. Whole lines are pasted above
// the cursor row, as they were cut.
type Paste struct {
	operation
}

func (op *Paste) Perform(e gott.Editor) gott.Operation {
	text, mode := e.GetPasteBoard()
	if text == "" {
		return nil
	}
	if mode == gott.PasteNewLine {
		cursor := e.GetCursor()
		cursor.Col = 0
		e.SetCursor(cursor)
	}
	insert := &Insert{Text: text}
	return insert.Perform(e)
}
