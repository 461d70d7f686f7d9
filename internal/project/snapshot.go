package project

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/artisanexperiences/create-app/internal/fs"
)

// preserved lists existing files the generation steps may rewrite in place.
var preserved = []string{".gitignore", "README.md"}

// snapshot records the state of the target directory before generation so a
// failed run can be undone.
type snapshot struct {
	root     string
	created  bool
	entries  map[string]bool
	contents map[string][]byte

	// topCreated is the outermost missing ancestor of root (or root itself)
	// that MkdirAll will create.
	topCreated string
}

func takeSnapshot(filesystem fs.FS, root string) (*snapshot, error) {
	s := &snapshot{
		root:     root,
		entries:  make(map[string]bool),
		contents: make(map[string][]byte),
	}

	if !fs.Exists(filesystem, root) {
		s.created = true
		s.topCreated = root
		for dir := filepath.Dir(root); dir != s.topCreated && !fs.Exists(filesystem, dir); dir = filepath.Dir(dir) {
			s.topCreated = dir
		}
		return s, nil
	}

	entries, err := filesystem.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}
	for _, entry := range entries {
		s.entries[entry.Name()] = true
	}

	for _, name := range preserved {
		if !s.entries[name] {
			continue
		}
		data, err := filesystem.ReadFile(filepath.Join(root, name))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		s.contents[name] = data
	}

	return s, nil
}

// restore removes every entry created since the snapshot, puts rewritten files
// back, and removes the root and any parents this run created once they are empty.
func (s *snapshot) restore(filesystem fs.FS) error {
	entries, err := filesystem.ReadDir(s.root)
	if err != nil {
		return fmt.Errorf("reading %s: %w", s.root, err)
	}

	var errs []error
	for _, entry := range entries {
		if s.entries[entry.Name()] {
			continue
		}
		if err := filesystem.RemoveAll(filepath.Join(s.root, entry.Name())); err != nil {
			errs = append(errs, fmt.Errorf("removing %s: %w", entry.Name(), err))
		}
	}

	for name, data := range s.contents {
		if err := filesystem.WriteFile(filepath.Join(s.root, name), data, 0644); err != nil {
			errs = append(errs, fmt.Errorf("restoring %s: %w", name, err))
		}
	}

	if s.created {
		for dir := s.root; fs.IsEmptyDir(filesystem, dir); dir = filepath.Dir(dir) {
			if err := filesystem.Remove(dir); err != nil {
				errs = append(errs, fmt.Errorf("removing %s: %w", dir, err))
				break
			}
			if dir == s.topCreated {
				break
			}
		}
	}

	return errors.Join(errs...)
}
