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
	"github.com/mattn/go-runewidth"

	gott "github.com/timburks/gottpad/pkg/types"
)

// tabs are displayed as spaces up to the next multiple of tabWidth
const tabWidth = 4

// A row of text in the editor
type Row struct {
	Text   []rune
	Colors []gott.Color
}

func NewRow(text string) *Row {
	r := &Row{}
	r.SetText([]rune(text))
	return r
}

func (r *Row) SetText(text []rune) {
	r.Text = text
	r.resetColors()
}

func (r *Row) resetColors() {
	r.Colors = make([]gott.Color, len(r.Text))
	for j := range r.Colors {
		r.Colors[j] = gott.ColorWhite
	}
}

func (r *Row) GetText() []rune {
	return r.Text
}

func (r *Row) GetColors() []gott.Color {
	return r.Colors
}

func (r *Row) String() string {
	return string(r.Text)
}

func (r *Row) Length() int {
	return len(r.Text)
}

func (r *Row) InsertChar(col int, c rune) {
	if col > len(r.Text) {
		col = len(r.Text)
	}
	if col < 0 {
		col = 0
	}
	line := make([]rune, 0, len(r.Text)+1)
	line = append(line, r.Text[0:col]...)
	line = append(line, c)
	line = append(line, r.Text[col:]...)
	r.SetText(line)
}

// delete character at col and return the deleted character
func (r *Row) DeleteChar(col int) rune {
	if col < 0 || col >= len(r.Text) {
		return 0
	}
	c := r.Text[col]
	line := make([]rune, 0, len(r.Text)-1)
	line = append(line, r.Text[0:col]...)
	line = append(line, r.Text[col+1:]...)
	r.SetText(line)
	return c
}

// splits row at col, return a new row containing the remaining text.
func (r *Row) Split(col int) *Row {
	if col >= len(r.Text) {
		return NewRow("")
	}
	after := string(r.Text[col:])
	r.SetText(append([]rune{}, r.Text[0:col]...))
	return NewRow(after)
}

// joins rows by appending the passed-in row to the current row
func (r *Row) Join(other *Row) {
	line := make([]rune, 0, len(r.Text)+len(other.Text))
	line = append(line, r.Text...)
	line = append(line, other.Text...)
	r.SetText(line)
}

// returns the text after a specified column
func (r *Row) TextAfter(col int) string {
	if col < 0 {
		col = 0
	}
	if col < len(r.Text) {
		return string(r.Text[col:])
	}
	return ""
}

// Leading spaces and tabs.
func (r *Row) Indentation() string {
	i := 0
	for i < len(r.Text) && (r.Text[i] == ' ' || r.Text[i] == '\t') {
		i++
	}
	return string(r.Text[0:i])
}

// DisplayWidth is the number of terminal cells taken by the first n characters.
func (r *Row) DisplayWidth(n int) int {
	if n > len(r.Text) {
		n = len(r.Text)
	}
	width := 0
	for _, c := range r.Text[0:n] {
		width += cellWidth(c, width)
	}
	return width
}

// cellWidth returns the cells taken by c when drawn starting at column x.
func cellWidth(c rune, x int) int {
	if c == '\t' {
		return tabWidth - x%tabWidth
	}
	w := runewidth.RuneWidth(c)
	if w < 1 {
		return 1
	}
	return w
}
