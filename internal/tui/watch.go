package tui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

type fileChangedMsg struct{}

type watchErrMsg struct{ err error }

// watcher reports changes to one file. It watches the parent directory since
// editors and other tools may replace the file rather than write to it.
type watcher struct {
	fs   *fsnotify.Watcher
	path string
}

func newWatcher(path string) (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}
	return &watcher{fs: fw, path: abs}, nil
}

// wait blocks for the next relevant event. A nil watcher never fires.
func (w *watcher) wait() tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.fs.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(ev.Name) != w.path {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove) {
					return fileChangedMsg{}
				}
			case err, ok := <-w.fs.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

func (w *watcher) Close() error {
	if w == nil {
		return nil
	}
	return w.fs.Close()
}
