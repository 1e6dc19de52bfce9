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
	"github.com/timburks/gottpad/pkg/textfile"
	gott "github.com/timburks/gottpad/pkg/types"
)

// SetLineEnding changes the line ending a document will be saved with.
type SetLineEnding struct {
	operation
	LineEnding textfile.LineEnding
}

func (op *SetLineEnding) Perform(e gott.Editor) gott.Operation {
	op.init(e)
	previous := e.GetLineEnding()
	if previous == op.LineEnding {
		return nil
	}
	e.SetLineEnding(op.LineEnding)
	inverse := &SetLineEnding{LineEnding: previous}
	inverse.copyForUndo(&op.operation)
	return inverse
}
