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
	"log"

	"github.com/atotto/clipboard"

	"github.com/timburks/gottpad/pkg/textfile"
	gott "github.com/timburks/gottpad/pkg/types"
)

// The Pasteboard holds cut text. It is copied to the system clipboard when
// one is available, and text copied from other programs can be pasted.
type Pasteboard struct {
	text   string
	mode   int // how to paste the text
	system bool
}

func NewPasteboard(useSystemClipboard bool) *Pasteboard {
	return &Pasteboard{system: useSystemClipboard && !clipboard.Unsupported}
}

func (p *Pasteboard) Set(text string, mode int) {
	p.text = text
	p.mode = mode
	if p.system {
		if err := clipboard.WriteAll(text); err != nil {
			log.Printf("unable to write clipboard: %v", err)
		}
	}
}

// Get returns the text to paste and how to paste it. Clipboard text that
// did not come from this pasteboard is pasted at the cursor.
func (p *Pasteboard) Get() (string, int) {
	if p.system {
		text, err := clipboard.ReadAll()
		if err != nil {
			log.Printf("unable to read clipboard: %v", err)
		} else if text != "" {
			text = textfile.NormalizeForEdit(text)
			if text != p.text {
				return text, gott.PasteAtCursor
			}
		}
	}
	return p.text, p.mode
}
