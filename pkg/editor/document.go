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
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/timburks/gottpad/pkg/textfile"
)

const untitledName = "Untitled"

var lastDocumentNumber = -1

// A Document is the text of one file being edited, along with the encoding
// and line ending it will be written with.
type Document struct {
	number        int
	name          string
	path          string // empty until the document is saved
	rows          []*Row // never empty
	encoding      textfile.Encoding
	lineEnding    textfile.LineEnding
	modified      bool
	language      string
	highlighted   bool
	diskModTime   time.Time
	diskSize      int64
	changedOnDisk bool
}

func NewDocument() *Document {
	lastDocumentNumber++
	d := &Document{
		number:     lastDocumentNumber,
		name:       untitledName,
		encoding:   textfile.UTF8,
		lineEnding: textfile.DefaultLineEnding,
	}
	d.rows = []*Row{NewRow("")}
	return d
}

func (d *Document) GetNumber() int {
	return d.number
}

func (d *Document) GetName() string {
	return d.name
}

// Title is the name shown on the document's tab.
func (d *Document) Title() string {
	if d.modified {
		return d.name + "*"
	}
	return d.name
}

func (d *Document) GetPath() string {
	return d.path
}

func (d *Document) SetPath(path string) {
	d.path = path
	d.name = filepath.Base(path)
	d.language = LanguageForFile(path)
	d.highlighted = false
}

func (d *Document) GetEncoding() textfile.Encoding {
	return d.encoding
}

func (d *Document) GetLineEnding() textfile.LineEnding {
	return d.lineEnding
}

func (d *Document) GetLanguage() string {
	return d.language
}

func (d *Document) IsModified() bool {
	return d.modified
}

func (d *Document) ChangedOnDisk() bool {
	return d.changedOnDisk
}

// isPristine is true for an untitled document that has never been edited.
func (d *Document) isPristine() bool {
	return d.path == "" && !d.modified && len(d.rows) == 1 && d.rows[0].Length() == 0
}

// LoadText replaces the contents of the document with text whose line
// breaks are "\n".
func (d *Document) LoadText(text string) {
	lines := strings.Split(text, "\n")
	d.rows = make([]*Row, 0, len(lines))
	for _, line := range lines {
		d.rows = append(d.rows, NewRow(line))
	}
	d.highlighted = false
}

func (d *Document) LoadContents(c textfile.Contents) {
	d.LoadText(c.Text)
	d.encoding = c.Encoding
	d.lineEnding = c.LineEnding
	d.modified = false
}

func (d *Document) Text() string {
	var s strings.Builder
	for i, row := range d.rows {
		if i > 0 {
			s.WriteString("\n")
		}
		s.WriteString(string(row.Text))
	}
	return s.String()
}

// Bytes returns the document as it would be written with the UTF-8 encoding.
func (d *Document) Bytes() []byte {
	return textfile.DenormalizeForSave(d.Text(), d.lineEnding)
}

func (d *Document) GetRowCount() int {
	return len(d.rows)
}

func (d *Document) GetRowLength(i int) int {
	if i >= 0 && i < len(d.rows) {
		return d.rows[i].Length()
	}
	return 0
}

func (d *Document) TextAfter(row, col int) string {
	if row >= 0 && row < len(d.rows) {
		return d.rows[row].TextAfter(col)
	}
	return ""
}

func (d *Document) InsertCharacter(row, col int, c rune) {
	d.highlighted = false
	if row < len(d.rows) {
		d.rows[row].InsertChar(col, c)
	}
}

func (d *Document) insertRow(i int, r *Row) {
	if i > len(d.rows) {
		i = len(d.rows)
	}
	if i < 0 {
		i = 0
	}
	d.highlighted = false
	d.rows = append(d.rows, nil)
	copy(d.rows[i+1:], d.rows[i:])
	d.rows[i] = r
}

func (d *Document) deleteRow(row int) {
	d.highlighted = false
	if row < len(d.rows) {
		d.rows = append(d.rows[0:row], d.rows[row+1:]...)
	}
}

// DeleteCharacters removes count characters starting at row and col.
// Reaching the end of a row joins the following row to it; each join
// contributes "\n" to the returned text.
func (d *Document) DeleteCharacters(row int, col int, count int) string {
	d.highlighted = false
	if row < 0 || row >= len(d.rows) {
		return ""
	}
	var deletedText strings.Builder
	for i := 0; i < count; i++ {
		if col < d.rows[row].Length() {
			c := d.rows[row].DeleteChar(col)
			deletedText.WriteRune(c)
		} else if row < len(d.rows)-1 {
			// join next row to current row
			d.rows[row].Join(d.rows[row+1])
			d.deleteRow(row + 1)
			deletedText.WriteString("\n")
		} else {
			break
		}
	}
	return deletedText.String()
}

// FirstPositionInRowAfterCol finds text in a row after col, returning -1
// when it is not there.
func (d *Document) FirstPositionInRowAfterCol(row int, col int, text string) int {
	if row < 0 || row >= len(d.rows) || text == "" {
		return -1
	}
	start := col + 1
	if start < 0 {
		start = 0
	}
	after := d.rows[row].TextAfter(start)
	i := strings.Index(after, text)
	if i < 0 {
		return -1
	}
	return start + utf8.RuneCountInString(after[0:i])
}

// syncWithDisk records the state of the file the document was read from or written to.
func (d *Document) syncWithDisk() {
	d.changedOnDisk = false
	if d.path == "" {
		return
	}
	if info, err := os.Stat(d.path); err == nil {
		d.diskModTime = info.ModTime()
		d.diskSize = info.Size()
	}
}

// checkDisk reports whether the file differs from when it was last synced.
func (d *Document) checkDisk() bool {
	if d.path == "" {
		return false
	}
	info, err := os.Stat(d.path)
	if err != nil {
		return false
	}
	if info.ModTime().Equal(d.diskModTime) && info.Size() == d.diskSize {
		return false
	}
	d.changedOnDisk = true
	return true
}
