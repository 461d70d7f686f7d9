// Package pkgmanager models the JavaScript package managers the scaffolder
// can install dependencies with.
package pkgmanager

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Manager identifies a package manager.
type Manager string

const (
	Yarn Manager = "yarn"
	Npm  Manager = "npm"
)

// Parse converts a user-supplied name into a Manager.
func Parse(name string) (Manager, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "yarn":
		return Yarn, nil
	case "npm":
		return Npm, nil
	}
	return "", fmt.Errorf("unknown package manager %q (available: yarn, npm)", name)
}

func (m Manager) String() string {
	return string(m)
}

// LockFile returns the lock file the manager writes on install.
func (m Manager) LockFile() string {
	if m == Npm {
		return "package-lock.json"
	}
	return "yarn.lock"
}

// Binary returns the executable name.
func (m Manager) Binary() string {
	return string(m)
}

// InstallArgs returns the arguments for a full dependency install.
func (m Manager) InstallArgs(verbose bool) []string {
	var args []string
	if m == Npm {
		args = []string{"install", "--no-audit", "--no-fund"}
		if verbose {
			args = append(args, "--verbose")
		} else {
			args = append(args, "--loglevel", "error")
		}
		return args
	}

	args = []string{"install"}
	if verbose {
		args = append(args, "--verbose")
	}
	return args
}

// RunCommand returns how a package.json script is invoked, e.g. "yarn start" or "npm start".
func (m Manager) RunCommand(script string) string {
	if m == Npm {
		switch script {
		case "start", "test":
			return "npm " + script
		}
		return "npm run " + script
	}
	return "yarn " + script
}

// Available reports whether the manager's binary is on PATH.
func (m Manager) Available() bool {
	_, err := exec.LookPath(m.Binary())
	return err == nil
}

// Installer installs the dependencies declared in dir/package.json.
type Installer interface {
	Install(ctx context.Context, dir string, m Manager) error
}

// InstallerFunc adapts a function to the Installer interface.
type InstallerFunc func(ctx context.Context, dir string, m Manager) error

func (f InstallerFunc) Install(ctx context.Context, dir string, m Manager) error {
	return f(ctx, dir, m)
}
