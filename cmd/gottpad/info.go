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
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/timburks/gottpad/pkg/editor"
	"github.com/timburks/gottpad/pkg/textfile"
)

var infoCmd = &cobra.Command{
	Use:   "info <files...>",
	Short: "Describe the encoding, line ending and language of files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := false
		for _, path := range args {
			if err := describeFile(cmd.OutOrStdout(), path); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
				failed = true
			}
		}
		if failed {
			return fmt.Errorf("some files could not be read")
		}
		return nil
	},
}

func describeFile(w io.Writer, path string) error {
	contents, err := textfile.ReadFile(path)
	if err != nil {
		return err
	}
	language := editor.LanguageForFile(path)
	if language == "" {
		language = "Plain Text"
	}
	_, err = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", path, contents.Encoding, contents.LineEnding, language)
	return err
}
