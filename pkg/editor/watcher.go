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
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// A Watcher reports changes to the files of open documents. Directories are
// watched rather than files so that editors that save by renaming a new
// file into place are noticed too.
type Watcher struct {
	watcher *fsnotify.Watcher
	notify  func()
	changes chan string

	mu    sync.Mutex
	files map[string]bool // watched files
	dirs  map[string]int  // number of watched files in each directory
}

// NewWatcher starts a watcher. notify is called, from the watcher's
// goroutine, after each change is queued.
func NewWatcher(notify func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		watcher: fw,
		notify:  notify,
		changes: make(chan string, 64),
		files:   make(map[string]bool),
		dirs:    make(map[string]int),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Add(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	path = filepath.Clean(path)
	if w.files[path] {
		return nil
	}
	dir := filepath.Dir(path)
	if w.dirs[dir] == 0 {
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[path] = true
	return nil
}

func (w *Watcher) Remove(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	path = filepath.Clean(path)
	if !w.files[path] {
		return
	}
	delete(w.files, path)
	dir := filepath.Dir(path)
	w.dirs[dir]--
	if w.dirs[dir] == 0 {
		delete(w.dirs, dir)
		if err := w.watcher.Remove(dir); err != nil {
			log.Printf("unable to stop watching %s: %v", dir, err)
		}
	}
}

func (w *Watcher) isWatched(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[filepath.Clean(path)]
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			if !w.isWatched(event.Name) {
				continue
			}
			select {
			case w.changes <- event.Name:
			default:
				// a check is already pending
			}
			if w.notify != nil {
				w.notify()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watcher error: %v", err)
		}
	}
}

// drain empties the queue of changes and reports whether there were any.
func (w *Watcher) drain() bool {
	found := false
	for {
		select {
		case <-w.changes:
			found = true
		default:
			return found
		}
	}
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}
