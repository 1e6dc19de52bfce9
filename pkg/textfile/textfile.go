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

package textfile

import (
	"fmt"
	"os"
)

// Contents is the result of loading a file.
type Contents struct {
	Text       string // line breaks are always "\n"
	Encoding   Encoding
	LineEnding LineEnding
}

// Load detects the line ending and encoding of b and returns normalized text.
func Load(b []byte) (Contents, error) {
	le := DetectLineEnding(b)
	text, enc, err := Decode(b)
	if err != nil {
		return Contents{}, err
	}
	return Contents{
		Text:       NormalizeForEdit(text),
		Encoding:   enc,
		LineEnding: le,
	}, nil
}

// Encode converts text to file contents with the given line ending and encoding.
func Encode(text string, le LineEnding, enc Encoding) ([]byte, error) {
	return encode(applyLineEnding(text, le), enc)
}

// ReadFile loads the named file.
func ReadFile(path string) (Contents, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Contents{}, err
	}
	c, err := Load(b)
	if err != nil {
		return Contents{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// WriteFile encodes text and writes it to the named file.
// Nothing is written if the text cannot be encoded.
func WriteFile(path string, text string, le LineEnding, enc Encoding) error {
	b, err := Encode(text, le, enc)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return os.WriteFile(path, b, 0644)
}
