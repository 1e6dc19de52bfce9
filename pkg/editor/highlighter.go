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

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	gott "github.com/timburks/gottpad/pkg/types"
)

// A Highlighter colors the rows of a document using a chroma lexer.
type Highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style
}

// NewHighlighter returns a highlighter for a language name, or nil when
// the language is unknown.
func NewHighlighter(language string) *Highlighter {
	if language == "" {
		return nil
	}
	lexer := lexers.Get(language)
	if lexer == nil {
		return nil
	}
	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	return &Highlighter{lexer: chroma.Coalesce(lexer), style: style}
}

func (h *Highlighter) Highlight(d *Document) {
	for _, row := range d.rows {
		row.resetColors()
	}
	iterator, err := h.lexer.Tokenise(nil, d.Text())
	if err != nil {
		log.Printf("unable to highlight %s: %v", d.name, err)
		return
	}
	row, col := 0, 0
	for _, token := range iterator.Tokens() {
		color := h.color(token.Type)
		for _, c := range token.Value {
			if c == '\n' {
				row++
				col = 0
				continue
			}
			if row < len(d.rows) && col < len(d.rows[row].Colors) {
				d.rows[row].Colors[col] = color
			}
			col++
		}
	}
}

func (h *Highlighter) color(tokenType chroma.TokenType) gott.Color {
	entry := h.style.Get(tokenType)
	if !entry.Colour.IsSet() {
		return gott.ColorWhite
	}
	return rgbToPalette(entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue())
}

// rgbToPalette picks the nearest entry of the 6x6x6 color cube or the gray
// ramp of the 256-color palette.
func rgbToPalette(r, g, b uint8) gott.Color {
	cube := func(v uint8) int {
		if v < 48 {
			return 0
		}
		if v < 115 {
			return 1
		}
		return (int(v) - 35) / 40
	}
	levels := [6]int{0, 95, 135, 175, 215, 255}
	cr, cg, cb := cube(r), cube(g), cube(b)
	cubeIndex := 16 + 36*cr + 6*cg + cb
	cubeDistance := distance(r, g, b, levels[cr], levels[cg], levels[cb])

	average := (int(r) + int(g) + int(b)) / 3
	grayStep := 23
	if average < 238 {
		grayStep = max(0, (average-3)/10)
	}
	grayLevel := 8 + 10*grayStep
	grayDistance := distance(r, g, b, grayLevel, grayLevel, grayLevel)

	if grayDistance < cubeDistance {
		return gott.PaletteColor(uint8(232 + grayStep))
	}
	return gott.PaletteColor(uint8(cubeIndex))
}

func distance(r, g, b uint8, r2, g2, b2 int) int {
	dr := int(r) - r2
	dg := int(g) - g2
	db := int(b) - b2
	return dr*dr + dg*dg + db*db
}
