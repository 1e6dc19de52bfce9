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

package screen

import (
	"testing"

	"github.com/nsf/termbox-go"
	"github.com/stretchr/testify/assert"

	gott "github.com/timburks/gottpad/pkg/types"
)

func TestConvertKeys(t *testing.T) {
	tests := []struct {
		name     string
		event    termbox.Event
		expected gott.Event
	}{
		{"character", termbox.Event{Type: termbox.EventKey, Ch: 'a'}, gott.Event{Type: gott.EventKey, Ch: 'a'}},
		{"wide character", termbox.Event{Type: termbox.EventKey, Ch: '中'}, gott.Event{Type: gott.EventKey, Ch: '中'}},
		{"save", termbox.Event{Type: termbox.EventKey, Key: termbox.KeyCtrlS}, gott.Event{Type: gott.EventKey, Key: gott.KeyCtrlS}},
		{"backspace", termbox.Event{Type: termbox.EventKey, Key: termbox.KeyBackspace2}, gott.Event{Type: gott.EventKey, Key: gott.KeyBackspace}},
		{"ctrl-h", termbox.Event{Type: termbox.EventKey, Key: termbox.KeyBackspace}, gott.Event{Type: gott.EventKey, Key: gott.KeyBackspace}},
		{"enter", termbox.Event{Type: termbox.EventKey, Key: termbox.KeyEnter}, gott.Event{Type: gott.EventKey, Key: gott.KeyEnter}},
		{"unbound", termbox.Event{Type: termbox.EventKey, Key: termbox.KeyCtrlB}, gott.Event{Type: gott.EventKey, Key: gott.KeyUnsupported}},
		{"alt", termbox.Event{Type: termbox.EventKey, Ch: '.', Mod: termbox.ModAlt}, gott.Event{Type: gott.EventKey, Ch: '.', Mod: gott.ModAlt}},
		{"resize", termbox.Event{Type: termbox.EventResize, Width: 100, Height: 30}, gott.Event{Type: gott.EventResize, Size: gott.Size{Rows: 30, Cols: 100}}},
		{"interrupt", termbox.Event{Type: termbox.EventInterrupt}, gott.Event{Type: gott.EventInterrupt}},
		{"mouse", termbox.Event{Type: termbox.EventMouse}, gott.Event{Type: gott.EventOther}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, *convertEvent(tt.event))
		})
	}
}
