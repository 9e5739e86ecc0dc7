// Package location finds the active data file through a pointer file kept in
// the user's home directory, so a relocated data file survives across runs.
package location

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todomgr/internal/errs"
)

// PointerFileName is created directly under the home directory.
const PointerFileName = ".todo_manager_pointer"

// Resolver reads and writes the pointer file.
type Resolver struct {
	pointer string
	logger  *log.Logger
}

// NewResolver places the pointer file in the current user's home directory.
func NewResolver(logger *log.Logger) (*Resolver, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, errs.Wrap("home", "", err)
	}
	return NewResolverAt(filepath.Join(home, PointerFileName), logger), nil
}

// NewResolverAt uses an explicit pointer file path.
func NewResolverAt(pointer string, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Resolver{pointer: pointer, logger: logger}
}

// PointerPath returns where the pointer file lives.
func (r *Resolver) PointerPath() string { return r.pointer }

// Resolve returns the active data file path. A non-empty override replaces the
// pointer content and is returned as is. Without an override the pointer is
// read back; an empty pointer yields "" and the caller picks a default.
func (r *Resolver) Resolve(override string) (string, error) {
	f, err := os.OpenFile(r.pointer, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return "", errs.Wrap("open pointer", r.pointer, err)
	}
	defer f.Close()

	if override != "" {
		if err := f.Truncate(0); err != nil {
			return "", errs.Wrap("truncate pointer", r.pointer, err)
		}
		if _, err := f.WriteString(override); err != nil {
			return "", errs.Wrap("write pointer", r.pointer, err)
		}
		if err := f.Close(); err != nil {
			return "", errs.Wrap("close pointer", r.pointer, err)
		}
		r.logger.Debug("pointer updated", "pointer", r.pointer, "data", override)
		return override, nil
	}

	b, err := io.ReadAll(f)
	if err != nil {
		return "", errs.Wrap("read pointer", r.pointer, err)
	}
	p := strings.TrimSpace(string(b))
	r.logger.Debug("pointer read", "pointer", r.pointer, "data", p)
	return p, nil
}
