package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/artisanexperiences/create-app/internal/fs"
)

// errorLogPrefixes match log files left behind by a previous failed install.
var errorLogPrefixes = []string{
	"npm-debug.log",
	"yarn-error.log",
	"yarn-debug.log",
}

func isErrorLog(name string) bool {
	for _, prefix := range errorLogPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func isSafe(name string, safe map[string]bool) bool {
	return safe[name] || strings.HasSuffix(name, ".iml") || isErrorLog(name)
}

// FindConflicts lists the entries of dir that are not on the safe list.
// Directories are suffixed with "/". A missing dir has no conflicts.
func FindConflicts(filesystem fs.FS, dir string, safeFiles []string) ([]string, error) {
	if !fs.Exists(filesystem, dir) {
		return nil, nil
	}

	entries, err := filesystem.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	safe := make(map[string]bool, len(safeFiles))
	for _, name := range safeFiles {
		safe[name] = true
	}

	var conflicts []string
	for _, entry := range entries {
		if isSafe(entry.Name(), safe) {
			continue
		}
		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		conflicts = append(conflicts, name)
	}
	return conflicts, nil
}

// RemoveErrorLogs deletes package manager error logs from dir.
func RemoveErrorLogs(filesystem fs.FS, dir string) error {
	entries, err := filesystem.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}
	for _, entry := range entries {
		if !isErrorLog(entry.Name()) {
			continue
		}
		if err := filesystem.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("removing %s: %w", entry.Name(), err)
		}
	}
	return nil
}
