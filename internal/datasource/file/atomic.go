package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Atomic is a Sink that writes to a temporary file next to its destination
// and renames it into place on Commit.
type Atomic struct {
	f    *os.File
	dest string
	done bool
}

// CreateAtomic opens a temporary file in the directory of dest.
func CreateAtomic(dest string) (*Atomic, error) {
	dir, base := filepath.Split(dest)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("create temp for %s: %w", dest, err)
	}
	return &Atomic{f: f, dest: dest}, nil
}

func (a *Atomic) Write(p []byte) (int, error) { return a.f.Write(p) }

// Commit closes the temporary file and renames it to the destination,
// replacing any existing file. On failure the temporary file is removed.
func (a *Atomic) Commit() error {
	if a.done {
		return errors.New("atomic: already finished")
	}
	a.done = true

	tmp := a.f.Name()
	if err := a.f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, a.dest); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", a.dest, err)
	}
	return nil
}

// Abort closes and removes the temporary file. It is a no-op after Commit,
// so it can be deferred unconditionally.
func (a *Atomic) Abort() error {
	if a.done {
		return nil
	}
	a.done = true

	tmp := a.f.Name()
	cerr := a.f.Close()
	if err := os.Remove(tmp); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", tmp, err)
	}
	return cerr
}
