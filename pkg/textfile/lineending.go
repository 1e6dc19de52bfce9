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
	"bytes"
	"fmt"
	"strings"
)

// A LineEnding is the byte sequence used on disk to separate lines.
type LineEnding int

const (
	CRLF LineEnding = iota
	LF
	CR
)

// DefaultLineEnding is used for new documents and for files that contain no line breaks.
const DefaultLineEnding = CRLF

func (le LineEnding) String() string {
	switch le {
	case CRLF:
		return "Windows (CRLF)"
	case LF:
		return "Unix (LF)"
	case CR:
		return "Mac (CR)"
	default:
		return fmt.Sprintf("LineEnding(%d)", int(le))
	}
}

// Sequence returns the characters written for a line break.
func (le LineEnding) Sequence() string {
	switch le {
	case LF:
		return "\n"
	case CR:
		return "\r"
	default:
		return "\r\n"
	}
}

// ParseLineEnding reads a line ending name as typed on the command line.
func ParseLineEnding(s string) (LineEnding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "crlf", "windows", "dos":
		return CRLF, nil
	case "lf", "unix":
		return LF, nil
	case "cr", "mac":
		return CR, nil
	}
	return DefaultLineEnding, fmt.Errorf("unknown line ending %q", s)
}

// DetectLineEnding reports the line-ending convention of raw file contents.
// "\r\n" is checked before "\n" because every CRLF also contains an LF.
func DetectLineEnding(b []byte) LineEnding {
	switch {
	case bytes.Contains(b, []byte("\r\n")):
		return CRLF
	case bytes.IndexByte(b, '\n') >= 0:
		return LF
	case bytes.IndexByte(b, '\r') >= 0:
		return CR
	default:
		return DefaultLineEnding
	}
}

// NormalizeForEdit replaces every line-ending variant with "\n".
func NormalizeForEdit(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// DenormalizeForSave converts "\n" markers to the given line ending and
// returns the result as UTF-8 bytes.
func DenormalizeForSave(text string, le LineEnding) []byte {
	return []byte(applyLineEnding(text, le))
}

func applyLineEnding(text string, le LineEnding) string {
	text = NormalizeForEdit(text)
	if le == LF {
		return text
	}
	return strings.ReplaceAll(text, "\n", le.Sequence())
}
