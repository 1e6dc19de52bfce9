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

// Package screen draws gottpad in a terminal with termbox.
package screen

import (
	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"

	gott "github.com/timburks/gottpad/pkg/types"
)

// The Screen draws the state of an Editor.
type Screen struct {
	size gott.Size // screen size
}

// NewScreen opens the terminal.
func NewScreen() (*Screen, error) {
	if err := termbox.Init(); err != nil {
		return nil, err
	}
	termbox.SetInputMode(termbox.InputEsc | termbox.InputAlt)
	termbox.SetOutputMode(termbox.Output256)
	return &Screen{}, nil
}

func (s *Screen) Close() {
	termbox.Close()
}

func (s *Screen) GetSize() gott.Size {
	var size gott.Size
	size.Cols, size.Rows = termbox.Size()
	return size
}

// Render draws the editor above a one-row message bar.
func (s *Screen) Render(e gott.Renderer, c gott.Commander) {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	s.size = s.GetSize()

	e.Layout(gott.Rect{
		Origin: gott.Point{Row: 0, Col: 0},
		Size:   gott.Size{Rows: s.size.Rows - 1, Cols: s.size.Cols},
	})
	e.Render(s)
	s.RenderMessageBar(c)
	termbox.Flush()
}

func (s *Screen) RenderMessageBar(c gott.Commander) {
	row := s.size.Rows - 1
	line := c.GetMessageBarText(s.size.Cols)
	x := 0
	for _, ch := range line {
		termbox.SetCell(x, row, ch, termbox.ColorWhite, termbox.ColorDefault)
		x += max(1, runewidth.RuneWidth(ch))
	}
	switch c.GetMode() {
	case gott.ModeCommand, gott.ModeSearch, gott.ModeLisp:
		// the cursor follows the text being typed
		termbox.SetCursor(min(x, s.size.Cols-1), row)
	}
}

func (s *Screen) SetCell(col int, row int, c rune, fg gott.Color, bg gott.Color) {
	termbox.SetCell(col, row, c, termbox.Attribute(fg), termbox.Attribute(bg))
}

func (s *Screen) SetCursor(p gott.Point) {
	termbox.SetCursor(p.Col, p.Row)
}

// Interrupt wakes GetNextEvent from another goroutine.
func Interrupt() {
	termbox.Interrupt()
}

func (s *Screen) GetNextEvent() *gott.Event {
	event := termbox.PollEvent()
	if event.Type == termbox.EventResize {
		termbox.Flush()
	}
	return convertEvent(event)
}

func convertEvent(event termbox.Event) *gott.Event {
	switch event.Type {
	case termbox.EventKey:
		e := &gott.Event{Type: gott.EventKey, Ch: event.Ch}
		if event.Ch == 0 {
			e.Key = key(event.Key)
		}
		if event.Mod&termbox.ModAlt != 0 {
			e.Mod = gott.ModAlt
		}
		return e
	case termbox.EventResize:
		return &gott.Event{
			Type: gott.EventResize,
			Size: gott.Size{Rows: event.Height, Cols: event.Width},
		}
	case termbox.EventInterrupt:
		return &gott.Event{Type: gott.EventInterrupt}
	default:
		return &gott.Event{Type: gott.EventOther}
	}
}

func key(k termbox.Key) gott.Key {
	switch k {
	case termbox.KeyArrowDown:
		return gott.KeyArrowDown
	case termbox.KeyArrowLeft:
		return gott.KeyArrowLeft
	case termbox.KeyArrowRight:
		return gott.KeyArrowRight
	case termbox.KeyArrowUp:
		return gott.KeyArrowUp
	case termbox.KeyBackspace, termbox.KeyBackspace2:
		return gott.KeyBackspace
	case termbox.KeyDelete:
		return gott.KeyDelete
	case termbox.KeyCtrlF:
		return gott.KeyCtrlF
	case termbox.KeyCtrlL:
		return gott.KeyCtrlL
	case termbox.KeyCtrlN:
		return gott.KeyCtrlN
	case termbox.KeyCtrlO:
		return gott.KeyCtrlO
	case termbox.KeyCtrlP:
		return gott.KeyCtrlP
	case termbox.KeyCtrlQ:
		return gott.KeyCtrlQ
	case termbox.KeyCtrlS:
		return gott.KeyCtrlS
	case termbox.KeyCtrlT:
		return gott.KeyCtrlT
	case termbox.KeyCtrlV:
		return gott.KeyCtrlV
	case termbox.KeyCtrlW:
		return gott.KeyCtrlW
	case termbox.KeyCtrlX:
		return gott.KeyCtrlX
	case termbox.KeyCtrlY:
		return gott.KeyCtrlY
	case termbox.KeyCtrlZ:
		return gott.KeyCtrlZ
	case termbox.KeyEnd:
		return gott.KeyEnd
	case termbox.KeyEnter:
		return gott.KeyEnter
	case termbox.KeyEsc:
		return gott.KeyEsc
	case termbox.KeyHome:
		return gott.KeyHome
	case termbox.KeyPgdn:
		return gott.KeyPgdn
	case termbox.KeyPgup:
		return gott.KeyPgup
	case termbox.KeySpace:
		return gott.KeySpace
	case termbox.KeyTab:
		return gott.KeyTab
	default:
		return gott.KeyUnsupported
	}
}
