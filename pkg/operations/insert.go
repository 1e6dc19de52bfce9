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
	"unicode/utf8"

	gott "github.com/timburks/gottpad/pkg/types"
)

// Insert adds text at the cursor. An Insert performed with no text becomes
// the editor's typing operation and collects characters as they are typed.
type Insert struct {
	operation
	Text    string
	inverse *Delete
}

func (op *Insert) Perform(e gott.Editor) gott.Operation {
	op.init(e)
	inverse := &Delete{}
	inverse.copyForUndo(&op.operation)
	op.inverse = inverse
	if op.Text == "" {
		e.SetInsertOperation(op)
		return inverse
	}
	e.InsertText(op.Text)
	inverse.Count = utf8.RuneCountInString(op.Text)
	return inverse
}

func (op *Insert) Length() int {
	return utf8.RuneCountInString(op.Text)
}

func (op *Insert) AddCharacter(c rune) {
	op.Text += string(c)
	if op.inverse != nil {
		op.inverse.Count++
	}
}

func (op *Insert) DeleteCharacter() {
	if op.Text == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(op.Text)
	op.Text = op.Text[0 : len(op.Text)-size]
	if op.inverse != nil {
		op.inverse.Count--
	}
}
