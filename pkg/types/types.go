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

package types

import (
	"github.com/timburks/gottpad/pkg/textfile"
)

// Editor modes
const (
	ModeEdit    = 0
	ModeCommand = 1
	ModeSearch  = 2
	ModeLisp    = 3
	ModeQuit    = 9999
)

// Move directions
const (
	MoveUp    = 0
	MoveDown  = 1
	MoveRight = 2
	MoveLeft  = 3
)

// Paste modes
const (
	PasteAtCursor = 0
	PasteNewLine  = 1
)

// Event types
const (
	EventKey       = 0
	EventResize    = 1
	EventInterrupt = 2
	EventOther     = 3
)

type Point struct {
	Row int
	Col int
}

type Size struct {
	Rows int
	Cols int
}

type Rect struct {
	Origin Point
	Size   Size
}

// Color is a 256-color terminal palette entry, offset by one so that zero
// means the terminal default.
type Color uint16

const (
	ColorDefault Color = 0
	ColorBlack   Color = 0x01
	ColorRed     Color = 0x02
	ColorGreen   Color = 0x03
	ColorYellow  Color = 0x04
	ColorBlue    Color = 0x05
	ColorWhite   Color = 0x08
	ColorGray    Color = 0xf5
)

// PaletteColor returns the Color for an index into the 256-color palette.
func PaletteColor(index uint8) Color {
	return Color(index) + 1
}

type Key int

const (
	KeyUnsupported Key = iota
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyBackspace
	KeyDelete
	KeyEnter
	KeyEsc
	KeyTab
	KeySpace
	KeyHome
	KeyEnd
	KeyPgup
	KeyPgdn
	KeyCtrlF
	KeyCtrlL
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlS
	KeyCtrlT
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ
)

type Modifier int

const (
	ModNone Modifier = 0
	ModAlt  Modifier = 1
)

type Event struct {
	Type int
	Key  Key
	Ch   rune
	Mod  Modifier
	Size Size // set for resize events
}

// A Display is a grid of character cells.
type Display interface {
	SetCell(col int, row int, c rune, fg Color, bg Color)
	SetCursor(p Point)
}

// A Renderer draws itself into a rectangle of a display.
type Renderer interface {
	Layout(r Rect)
	Render(d Display)
}

// Editor is the set of services that operations use to edit the active document.
type Editor interface {
	GetCursor() Point
	SetCursor(cursor Point)
	MoveCursorBackward() bool

	InsertText(text string) Point
	DeleteCharacters(count int) string
	DeleteRow(row int) (text string, removed bool)
	InsertRow(row int, text string)

	GetLineEnding() textfile.LineEnding
	SetLineEnding(le textfile.LineEnding)

	SetPasteBoard(text string, mode int)
	GetPasteBoard() (text string, mode int)
	SetInsertOperation(insert InsertOperation)
}

type Operation interface {
	Perform(e Editor) Operation // performs the operation and returns its inverse
}

type InsertOperation interface {
	Operation
	AddCharacter(c rune)
	DeleteCharacter()
	Length() int
}

type Commander interface {
	GetMode() int
	GetMessageBarText(length int) string
}
