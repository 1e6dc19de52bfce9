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
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// languages that are chosen by file extension before asking chroma
var languagesByExtension = map[string]string{
	".py":   "Python",
	".pyw":  "Python",
	".c":    "C++",
	".cpp":  "C++",
	".h":    "C++",
	".hpp":  "C++",
	".html": "HTML",
	".htm":  "HTML",
	".js":   "JavaScript",
	".css":  "CSS",
	".xml":  "XML",
	".sql":  "SQL",
}

// LanguageForFile returns the name of the language used to highlight a
// file, or "" for plain text.
func LanguageForFile(path string) string {
	if path == "" {
		return ""
	}
	extension := strings.ToLower(filepath.Ext(path))
	if language, ok := languagesByExtension[extension]; ok {
		return language
	}
	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		return ""
	}
	name := lexer.Config().Name
	if strings.EqualFold(name, "plaintext") {
		return ""
	}
	return name
}
