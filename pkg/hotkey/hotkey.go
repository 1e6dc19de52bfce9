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

// Package hotkey reads and writes the key combinations that bring the editor
// to the front, such as "Ctrl+Alt+T". Registering a combination with the
// operating system is left to a Registrar.
package hotkey

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalid is returned for strings that do not describe a hotkey.
	ErrInvalid = errors.New("invalid hotkey")
	// ErrUnsupported is returned when hotkeys cannot be registered on this system.
	ErrUnsupported = errors.New("global hotkeys are not supported")
)

// DefaultHotkey is used until the user chooses another.
const DefaultHotkey = "Ctrl+Alt+T"

// Modifier flags, with the values used by the Windows hotkey API.
const (
	ModAlt     = 0x1
	ModControl = 0x2
	ModShift   = 0x4
	ModWin     = 0x8
)

// Virtual key codes
const (
	VKBack   = 0x08
	VKTab    = 0x09
	VKReturn = 0x0D
	VKEscape = 0x1B
	VKSpace  = 0x20
	VKF1     = 0x70
)

// A Hotkey is a set of modifiers and one key.
type Hotkey struct {
	Modifiers uint32
	Key       uint32 // virtual key code
}

var modifierNames = map[string]uint32{
	"ctrl":    ModControl,
	"control": ModControl,
	"alt":     ModAlt,
	"shift":   ModShift,
	"win":     ModWin,
	"meta":    ModWin,
	"super":   ModWin,
}

var keyNames = map[string]uint32{
	"space":     VKSpace,
	"return":    VKReturn,
	"enter":     VKReturn,
	"escape":    VKEscape,
	"esc":       VKEscape,
	"tab":       VKTab,
	"backspace": VKBack,
}

// Parse reads a hotkey written as modifiers and a key joined by "+".
func Parse(s string) (Hotkey, error) {
	var h Hotkey
	if strings.TrimSpace(s) == "" {
		return h, fmt.Errorf("%w: empty", ErrInvalid)
	}
	found := false
	for _, part := range strings.Split(s, "+") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			return h, fmt.Errorf("%w: %q", ErrInvalid, s)
		}
		if modifier, ok := modifierNames[name]; ok {
			h.Modifiers |= modifier
			continue
		}
		key, ok := keyCode(name)
		if !ok {
			return h, fmt.Errorf("%w: unknown key %q", ErrInvalid, part)
		}
		if found {
			return h, fmt.Errorf("%w: more than one key in %q", ErrInvalid, s)
		}
		h.Key = key
		found = true
	}
	if !found {
		return h, fmt.Errorf("%w: no key in %q", ErrInvalid, s)
	}
	return h, nil
}

func keyCode(name string) (uint32, bool) {
	if key, ok := keyNames[name]; ok {
		return key, true
	}
	if len(name) == 1 {
		c := name[0]
		switch {
		case c >= 'a' && c <= 'z':
			return uint32(c-'a') + 'A', true
		case c >= '0' && c <= '9':
			return uint32(c), true
		}
		return 0, false
	}
	if name[0] == 'f' {
		var n int
		if _, err := fmt.Sscanf(name[1:], "%d", &n); err == nil && fmt.Sprint(n) == name[1:] && n >= 1 && n <= 24 {
			return VKF1 + uint32(n-1), true
		}
	}
	return 0, false
}

// String writes the hotkey in the form read by Parse, with modifiers in a
// fixed order.
func (h Hotkey) String() string {
	parts := []string{}
	if h.Modifiers&ModControl != 0 {
		parts = append(parts, "Ctrl")
	}
	if h.Modifiers&ModAlt != 0 {
		parts = append(parts, "Alt")
	}
	if h.Modifiers&ModShift != 0 {
		parts = append(parts, "Shift")
	}
	if h.Modifiers&ModWin != 0 {
		parts = append(parts, "Win")
	}
	parts = append(parts, keyName(h.Key))
	return strings.Join(parts, "+")
}

func keyName(key uint32) string {
	switch {
	case key == VKSpace:
		return "Space"
	case key == VKReturn:
		return "Return"
	case key == VKEscape:
		return "Escape"
	case key == VKTab:
		return "Tab"
	case key == VKBack:
		return "Backspace"
	case key >= 'A' && key <= 'Z', key >= '0' && key <= '9':
		return string(rune(key))
	case key >= VKF1 && key < VKF1+24:
		return fmt.Sprintf("F%d", key-VKF1+1)
	}
	return fmt.Sprintf("0x%02X", key)
}

// A Registrar connects hotkeys to the operating system.
type Registrar interface {
	Register(h Hotkey) error
	Unregister() error
}

// UnsupportedRegistrar is used where no system registration is available.
type UnsupportedRegistrar struct{}

func (UnsupportedRegistrar) Register(h Hotkey) error {
	return fmt.Errorf("register %s: %w", h, ErrUnsupported)
}

func (UnsupportedRegistrar) Unregister() error {
	return nil
}

// Manager keeps track of the active hotkey and replaces its registration
// when it changes.
type Manager struct {
	registrar Registrar
	current   Hotkey
	active    bool
}

func NewManager(r Registrar) *Manager {
	if r == nil {
		r = UnsupportedRegistrar{}
	}
	return &Manager{registrar: r}
}

// Set parses s and registers it in place of the current hotkey. The
// hotkey is kept as the current one even if registration fails.
func (m *Manager) Set(s string) (Hotkey, error) {
	h, err := Parse(s)
	if err != nil {
		return h, err
	}
	if m.active {
		if err := m.registrar.Unregister(); err != nil {
			return h, err
		}
		m.active = false
	}
	m.current = h
	if err := m.registrar.Register(h); err != nil {
		return h, err
	}
	m.active = true
	return h, nil
}

func (m *Manager) Current() Hotkey {
	return m.current
}

func (m *Manager) Close() error {
	if !m.active {
		return nil
	}
	m.active = false
	return m.registrar.Unregister()
}
