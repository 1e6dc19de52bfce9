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
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
)

// An Encoding names a character set that files can be read from and written in.
type Encoding int

const (
	UTF8 Encoding = iota
	GBK
)

// ErrUnsupportedEncoding is returned when bytes are neither UTF-8 nor GBK.
var ErrUnsupportedEncoding = errors.New("unsupported encoding")

func (enc Encoding) String() string {
	switch enc {
	case UTF8:
		return "UTF-8"
	case GBK:
		return "GBK"
	default:
		return fmt.Sprintf("Encoding(%d)", int(enc))
	}
}

// ParseEncoding reads an encoding name.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "utf-8", "utf8":
		return UTF8, nil
	case "gbk", "cp936":
		return GBK, nil
	}
	return UTF8, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, s)
}

// Decode converts file contents to text. UTF-8 is tried first and GBK once
// as a fallback. The GBK decoder substitutes U+FFFD for bytes it cannot map,
// so any replacement character in its output is treated as failure.
func Decode(b []byte) (string, Encoding, error) {
	if utf8.Valid(b) {
		return string(b), UTF8, nil
	}
	text, err := simplifiedchinese.GBK.NewDecoder().String(string(b))
	if err != nil {
		return "", UTF8, fmt.Errorf("%w: %v", ErrUnsupportedEncoding, err)
	}
	if strings.ContainsRune(text, utf8.RuneError) {
		return "", UTF8, ErrUnsupportedEncoding
	}
	return text, GBK, nil
}

func encode(text string, enc Encoding) ([]byte, error) {
	switch enc {
	case UTF8:
		return []byte(text), nil
	case GBK:
		out, err := simplifiedchinese.GBK.NewEncoder().String(text)
		if err != nil {
			return nil, fmt.Errorf("text cannot be written as %s: %w", enc, err)
		}
		return []byte(out), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEncoding, enc)
	}
}
