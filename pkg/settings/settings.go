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

// Package settings stores the preferences of gottpad in a TOML file in the
// user's configuration directory. Keys use dot notation; "editor.zoom_level"
// is stored as zoom_level in the [editor] table.
package settings

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/timburks/gottpad/pkg/hotkey"
)

const fileName = "settings.toml"

// Keys
const (
	KeyZoomLevel        = "editor.zoom_level"
	KeyGlobalHotkey     = "hotkey.global"
	KeyWindowCols       = "window.cols"
	KeyWindowRows       = "window.rows"
	KeyPreserveEncoding = "save.preserve_encoding"
)

// DefaultGlobalHotkey is used when no hotkey has been saved.
const DefaultGlobalHotkey = hotkey.DefaultHotkey

// Store is a file-based key-value store.
type Store struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
}

// DefaultDir returns the directory that holds the settings file.
func DefaultDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "gottpad"), nil
}

// NewStore opens the settings in dir, creating the directory if needed.
// If dir is empty, the default directory is used.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	s := &Store{
		filePath: filepath.Join(dir, fileName),
		data:     make(map[string]any),
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Path() string {
	return s.filePath
}

func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

func (s *Store) GetString(key string, defaultValue string) string {
	if val, ok := s.Get(key); ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return defaultValue
}

func (s *Store) GetInt(key string, defaultValue int) int {
	val, ok := s.Get(key)
	if !ok {
		return defaultValue
	}
	// TOML integers are read as int64
	switch v := val.(type) {
	case int64:
		return int(v)
	case int:
		return v
	default:
		return defaultValue
	}
}

func (s *Store) GetBool(key string, defaultValue bool) bool {
	if val, ok := s.Get(key); ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return defaultValue
}

// Set stores a value and writes the file.
func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return s.save()
}

func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// caller must hold the lock
func (s *Store) save() error {
	data, err := toml.Marshal(expandKeys(s.data))
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads the file. A missing file leaves the store empty.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.data = make(map[string]any)
			return nil
		}
		return err
	}
	var loaded map[string]any
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return err
	}
	s.data = flattenMap(loaded, "")
	return nil
}

// flattenMap converts nested tables to dot-notation keys.
func flattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)
	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			for k, v := range flattenMap(nested, fullKey) {
				result[k] = v
			}
		} else {
			result[fullKey] = value
		}
	}
	return result
}

// expandKeys converts dot-notation keys to nested tables. A key that is
// also used as a table keeps its dotted name.
func expandKeys(m map[string]any) map[string]any {
	result := make(map[string]any)
	for key, value := range m {
		parts := strings.Split(key, ".")
		table := result
		ok := true
		for _, part := range parts[0 : len(parts)-1] {
			next, exists := table[part]
			if !exists {
				nested := make(map[string]any)
				table[part] = nested
				table = nested
				continue
			}
			if nested, isTable := next.(map[string]any); isTable {
				table = nested
			} else {
				ok = false
				break
			}
		}
		if ok {
			if _, exists := table[parts[len(parts)-1]]; !exists {
				table[parts[len(parts)-1]] = value
				continue
			}
		}
		result[key] = value
	}
	return result
}

// Typed accessors for the settings gottpad uses.

func (s *Store) ZoomLevel() int {
	return s.GetInt(KeyZoomLevel, 0)
}

func (s *Store) SetZoomLevel(zoom int) error {
	return s.Set(KeyZoomLevel, zoom)
}

func (s *Store) GlobalHotkey() string {
	return s.GetString(KeyGlobalHotkey, DefaultGlobalHotkey)
}

func (s *Store) SetGlobalHotkey(hotkey string) error {
	return s.Set(KeyGlobalHotkey, hotkey)
}

func (s *Store) PreserveEncoding() bool {
	return s.GetBool(KeyPreserveEncoding, false)
}

// WindowSize returns the terminal size saved at the last resize or exit, or
// zeros if there is none.
func (s *Store) WindowSize() (cols, rows int) {
	return s.GetInt(KeyWindowCols, 0), s.GetInt(KeyWindowRows, 0)
}

func (s *Store) SetWindowSize(cols, rows int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[KeyWindowCols] = cols
	s.data[KeyWindowRows] = rows
	return s.save()
}
