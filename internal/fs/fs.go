// Package fs provides a file system abstraction for testing.
// Steps and conflict detection go through FS so they can be unit tested
// against an in-memory tree without touching the real file system.
package fs

import (
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FS defines the interface for file system operations.
type FS interface {
	// ReadFile reads the entire file at path and returns its contents.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to the file at path with the given permissions.
	WriteFile(path string, data []byte, perm os.FileMode) error

	// MkdirAll creates all directories in the path.
	MkdirAll(path string, perm os.FileMode) error

	// Stat returns file info for the given path.
	Stat(path string) (os.FileInfo, error)

	// ReadDir returns the entries of the directory at path, sorted by name.
	ReadDir(path string) ([]os.FileInfo, error)

	// Remove removes the file or empty directory at path.
	Remove(path string) error

	// RemoveAll removes path and any children it contains.
	RemoveAll(path string) error

	// Rename renames oldpath to newpath.
	Rename(oldpath, newpath string) error
}

// AferoFS implements FS on top of an afero.Fs.
type AferoFS struct {
	fs afero.Fs
}

// New wraps an afero file system.
func New(backing afero.Fs) *AferoFS {
	return &AferoFS{fs: backing}
}

// NewOS returns an FS backed by the operating system.
func NewOS() *AferoFS {
	return New(afero.NewOsFs())
}

// NewMem returns an empty in-memory FS.
func NewMem() *AferoFS {
	return New(afero.NewMemMapFs())
}

func (a *AferoFS) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(a.fs, path)
}

func (a *AferoFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	return afero.WriteFile(a.fs, path, data, perm)
}

func (a *AferoFS) MkdirAll(path string, perm os.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

func (a *AferoFS) Stat(path string) (os.FileInfo, error) {
	return a.fs.Stat(path)
}

func (a *AferoFS) ReadDir(path string) ([]os.FileInfo, error) {
	return afero.ReadDir(a.fs, path)
}

func (a *AferoFS) Remove(path string) error {
	return a.fs.Remove(path)
}

func (a *AferoFS) RemoveAll(path string) error {
	return a.fs.RemoveAll(path)
}

func (a *AferoFS) Rename(oldpath, newpath string) error {
	return a.fs.Rename(oldpath, newpath)
}

// Exists reports whether path exists.
func Exists(filesystem FS, path string) bool {
	_, err := filesystem.Stat(path)
	return err == nil
}

// IsEmptyDir reports whether path is a directory with no entries.
func IsEmptyDir(filesystem FS, path string) bool {
	entries, err := filesystem.ReadDir(path)
	return err == nil && len(entries) == 0
}

// CopyTree writes every regular file of src under dst, creating directories as needed.
// transform may rename or rewrite each file; returning an empty name skips it.
func CopyTree(filesystem FS, src iofs.FS, dst string, transform func(name string, data []byte) (string, []byte, error)) ([]string, error) {
	var written []string
	err := iofs.WalkDir(src, ".", func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		data, err := iofs.ReadFile(src, path)
		if err != nil {
			return err
		}

		name := filepath.FromSlash(path)
		if transform != nil {
			name, data, err = transform(name, data)
			if err != nil {
				return err
			}
			if name == "" {
				return nil
			}
		}

		target := filepath.Join(dst, name)
		if err := filesystem.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		if err := filesystem.WriteFile(target, data, 0644); err != nil {
			return err
		}
		written = append(written, name)
		return nil
	})
	return written, err
}

// Default is the default OS-backed instance for convenience.
var Default FS = NewOS()
