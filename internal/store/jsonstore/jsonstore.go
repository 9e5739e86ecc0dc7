// Package jsonstore keeps the todo collection in a single JSON file.
//
// Every operation is its own load, mutate, save cycle against the file: nothing
// is cached between calls. Saving rewrites the whole file in place. There is no
// locking and no atomic rename; two processes writing at once race and the last
// writer wins. That is fine for a local single-user CLI.
package jsonstore

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todomgr/internal/errs"
	"github.com/idilsaglam/todomgr/internal/location"
	"github.com/idilsaglam/todomgr/internal/model"
)

// Resolver is the part of location.Resolver the store needs.
type Resolver interface {
	Resolve(override string) (string, error)
}

// Store performs todo operations against the active data file.
type Store struct {
	res    Resolver
	path   string
	logger *log.Logger
}

// New establishes defaultPath as the active data file.
func New(res Resolver, defaultPath string, logger *log.Logger) (*Store, error) {
	return Open(res, defaultPath, logger)
}

// Open makes path the active data file and records it in the pointer. path
// must not be empty.
func Open(res Resolver, path string, logger *log.Logger) (*Store, error) {
	s := newStore(res, logger)
	if err := s.ChangeLocation(path); err != nil {
		return nil, err
	}
	return s, nil
}

// Current reuses whatever the pointer names, falling back to New(fallback)
// when nothing has been recorded yet.
func Current(res Resolver, fallback string, logger *log.Logger) (*Store, error) {
	s := newStore(res, logger)
	p, err := res.Resolve("")
	if err != nil {
		return nil, err
	}
	if p == "" {
		s.logger.Debug("no data file recorded, using default", "path", fallback)
		if err := s.ChangeLocation(fallback); err != nil {
			return nil, err
		}
		return s, nil
	}
	s.path = p
	return s, nil
}

func newStore(res Resolver, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{res: res, logger: logger}
}

var _ Resolver = (*location.Resolver)(nil)

// Path returns the active data file.
func (s *Store) Path() string { return s.path }

var errEmptyPath = errors.New("data file path is empty")

// ChangeLocation points the store, and the pointer file, at a new data file.
// Todos stored at the old location stay where they are. An empty path is an
// error rather than a request to reuse the pointer; use Current for that.
func (s *Store) ChangeLocation(path string) error {
	if path == "" {
		return errEmptyPath
	}
	p, err := s.res.Resolve(path)
	if err != nil {
		return err
	}
	s.logger.Debug("data file selected", "path", p)
	s.path = p
	return nil
}

func (s *Store) Add(name string) error {
	return s.update("add", func(c *model.Collection) { c.Add(name) })
}

// Remove deletes the first todo called name. A missing name is not an error.
func (s *Store) Remove(name string) error {
	return s.update("remove", func(c *model.Collection) {
		if !c.Remove(name) {
			s.logger.Debug("remove: no such todo", "name", name)
		}
	})
}

func (s *Store) MarkDone(name string) error {
	return s.update("done", func(c *model.Collection) {
		if !c.MarkDone(name) {
			s.logger.Debug("done: no such todo", "name", name)
		}
	})
}

func (s *Store) MarkImportant(name string) error {
	return s.update("important", func(c *model.Collection) {
		if !c.MarkImportant(name) {
			s.logger.Debug("important: no such todo", "name", name)
		}
	})
}

// Todos returns the stored todos in order; an unreadable collection is empty.
func (s *Store) Todos() ([]model.Todo, error) {
	f, err := s.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, _, err := s.load(f)
	if err != nil {
		return nil, err
	}
	return c.Todos, nil
}

// List writes one line per todo. When the data file does not hold a
// collection it says so instead of failing.
func (s *Store) List(w io.Writer) error {
	f, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()

	c, ok, err := s.load(f)
	if err != nil {
		return err
	}
	if !ok {
		_, err := fmt.Fprintln(w, "no todos found")
		return err
	}
	for _, t := range c.Todos {
		if _, err := fmt.Fprintf(w, "name: %q is_done: %t is_important: %t\n", t.Name, t.Done, t.Important); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) update(op string, mutate func(*model.Collection)) error {
	f, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()

	c, _, err := s.load(f)
	if err != nil {
		return err
	}
	mutate(&c)
	if err := s.save(f, c); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return errs.Wrap("close", s.path, err)
	}
	s.logger.Debug("saved", "op", op, "todos", len(c.Todos), "path", s.path)
	return nil
}

func (s *Store) open() (*os.File, error) {
	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, errs.Wrap("open", s.path, err)
	}
	return f, nil
}

// load reads the whole file. ok is false when the content is not a collection,
// in which case an empty one is returned.
func (s *Store) load(f *os.File) (c model.Collection, ok bool, err error) {
	b, err := io.ReadAll(f)
	if err != nil {
		return model.Collection{}, false, errs.Wrap("read", s.path, err)
	}
	c, derr := model.Decode(b)
	if derr != nil {
		s.logger.Debug("data file holds no collection, starting empty", "path", s.path, "err", derr)
		return model.Collection{}, false, nil
	}
	return c, true, nil
}

func (s *Store) save(f *os.File, c model.Collection) error {
	b, err := model.Encode(c)
	if err != nil {
		return fmt.Errorf("encode todos: %w", err)
	}
	if err := f.Truncate(0); err != nil {
		return errs.Wrap("truncate", s.path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return errs.Wrap("seek", s.path, err)
	}
	if _, err := f.Write(b); err != nil {
		return errs.Wrap("write", s.path, err)
	}
	return nil
}
