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
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/timburks/gottpad/pkg/commander"
	"github.com/timburks/gottpad/pkg/editor"
	"github.com/timburks/gottpad/pkg/hotkey"
	"github.com/timburks/gottpad/pkg/screen"
	"github.com/timburks/gottpad/pkg/settings"
)

var (
	scripts   []string
	configDir string
	logPath   string
)

var rootCmd = &cobra.Command{
	Use:   "gottpad [files...]",
	Args:  cobra.ArbitraryArgs,
	Short: "A small tabbed text editor for the terminal",
	Long: `gottpad edits text files in tabs. Files are read as UTF-8, or as GBK when
they are not valid UTF-8, and their Windows, Unix or Mac line endings are kept.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := openLog(logPath)
		if err != nil {
			return err
		}
		defer f.Close()

		store, err := settings.NewStore(configDir)
		if err != nil {
			log.Printf("unable to read settings: %v", err)
			store = nil
		}

		// The editor manages all text manipulation.
		e := editor.NewEditor()
		defer e.Close()
		failures := openFiles(e, args)

		if len(scripts) > 0 {
			if len(failures) > 0 {
				return errors.Join(failures...)
			}
			// Run gottpad scripts and exit.
			if store != nil {
				e.SetPreserveEncoding(store.PreserveEncoding())
			}
			c := commander.NewBatchCommander(e)
			for _, script := range scripts {
				result, err := c.Eval(script)
				if err != nil {
					return fmt.Errorf("%s: %w", script, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), result)
			}
			return nil
		}

		// Create a screen to manage display.
		s, err := screen.NewScreen()
		if err != nil {
			return fmt.Errorf("unable to open the terminal: %w", err)
		}
		defer s.Close()

		// The commander converts user inputs into commands for the editor.
		c := commander.NewCommander(e, store, hotkey.NewManager(nil))
		c.RegisterHotkey()
		c.CheckWindowSize(s.GetSize())
		if len(failures) > 0 {
			c.SetMessage(errors.Join(failures...).Error())
		}
		if err := e.EnableWatching(screen.Interrupt); err != nil {
			log.Printf("unable to watch files: %v", err)
		}

		// Run the main event loop.
		for c.IsRunning() {
			s.Render(e, c)
			if err := c.ProcessEvent(s.GetNextEvent()); err != nil {
				log.Output(1, err.Error())
			}
		}
		c.Close(s.GetSize())
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gottpad",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gottpad version %s\n", commander.Version)
	},
}

func init() {
	rootCmd.Flags().StringArrayVar(&scripts, "eval", nil, "evaluate a lisp expression against the named files and exit (repeatable)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "directory that holds settings.toml")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "log file (default ~/.gottpadlog)")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(infoCmd)
}

// openLog sends log output to a file so that it stays out of the terminal.
func openLog(path string) (*os.File, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".gottpadlog")
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0666)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	return f, nil
}

// openFiles opens each named file in a tab. Names of files that do not
// exist yet get empty tabs.
func openFiles(e *editor.Editor, filenames []string) []error {
	var failures []error
	for _, filename := range filenames {
		if info, err := os.Stat(filename); err == nil && info.IsDir() {
			log.Printf("skipping directory %s", filename)
			failures = append(failures, fmt.Errorf("%s is a directory", filename))
			continue
		}
		if err := e.OpenOrCreate(filename); err != nil {
			log.Printf("unable to open %s: %v", filename, err)
			failures = append(failures, err)
		}
	}
	return failures
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
