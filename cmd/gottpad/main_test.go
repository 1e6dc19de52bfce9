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

package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timburks/gottpad/pkg/editor"
	"github.com/timburks/gottpad/pkg/textfile"
)

func TestDescribeFile(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "tool.py")
	require.NoError(t, os.WriteFile(script, []byte("print(1)\nprint(2)\n"), 0644))
	chinese := filepath.Join(dir, "zh.txt")
	require.NoError(t, os.WriteFile(chinese, []byte{0xd6, 0xd0, 0xce, 0xc4, '\r', '\n'}, 0644))

	var out bytes.Buffer
	require.NoError(t, describeFile(&out, script))
	require.NoError(t, describeFile(&out, chinese))
	assert.Equal(t,
		script+"\tUTF-8\tUnix (LF)\tPython\n"+
			chinese+"\tGBK\tWindows (CRLF)\tPlain Text\n",
		out.String())

	err := describeFile(&out, filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestOpenFiles(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(existing, []byte("a"), 0644))
	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte{0xff, 0xfe, 0xfd}, 0644))

	e := editor.NewEditor()
	failures := openFiles(e, []string{existing, filepath.Join(dir, "b.txt"), dir, bad})
	require.Len(t, failures, 2)
	assert.ErrorIs(t, failures[1], textfile.ErrUnsupportedEncoding)
	assert.Equal(t, []string{"a.txt", "b.txt"}, e.Tabs())
}

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	dir := t.TempDir()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{
		"--log", filepath.Join(dir, "log.txt"),
		"--config-dir", filepath.Join(dir, "config"),
	}, args...))
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		scripts = nil
		log.SetOutput(os.Stderr)
	}()
	err := rootCmd.Execute()
	return out.String(), err
}

func TestEvalFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("x\r\n"), 0644))

	out, err := execute(t,
		"--eval", `(set-line-ending "lf")`,
		"--eval", "(save)",
		"--eval", "(line-ending)",
		path)
	require.NoError(t, err)
	assert.Contains(t, out, "Unix (LF)\n")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x\n", string(b))
}

func TestFileArguments(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	require.NoError(t, os.WriteFile(first, []byte("one\n"), 0644))
	second := filepath.Join(dir, "second.py")
	require.NoError(t, os.WriteFile(second, []byte("two\r\n"), 0644))

	out, err := execute(t, "--eval", "(file-name)", "--eval", "(text)", first, second)
	require.NoError(t, err)
	assert.Equal(t, second+"\ntwo\n\n", out)
}

func TestMissingFileArgumentIsCreated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")

	out, err := execute(t, "--eval", `(insert "hello")`, "--eval", "(save)", "--eval", "(file-name)", path)
	require.NoError(t, err)
	assert.Contains(t, out, path+"\n")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
}

func TestUndecodableFileStopsScripts(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte{0xff, 0xfe, 0xfd}, 0644))
	target := filepath.Join(dir, "out.txt")

	out, err := execute(t,
		"--eval", `(insert "hello")`,
		"--eval", `(save-as "`+target+`")`,
		bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, textfile.ErrUnsupportedEncoding)
	assert.Empty(t, out)
	_, err = os.Stat(target)
	assert.True(t, os.IsNotExist(err))
}
