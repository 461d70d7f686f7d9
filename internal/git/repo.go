package git

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Available reports whether the git binary is on PATH.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// IsInsideWorkTree reports whether dir already belongs to a git work tree.
func IsInsideWorkTree(dir string) bool {
	cmd := exec.Command("git", "-C", dir, "rev-parse", "--is-inside-work-tree")
	output, err := cmd.Output()
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(output)) == "true"
}

// IsInsideMercurialRepo reports whether dir belongs to a Mercurial repository.
func IsInsideMercurialRepo(dir string) bool {
	if _, err := exec.LookPath("hg"); err != nil {
		return false
	}
	cmd := exec.Command("hg", "--cwd", dir, "root")
	return cmd.Run() == nil
}

// Init creates a new repository in dir.
func Init(dir string) error {
	cmd := exec.Command("git", "init")
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git init failed: %w\n%s", err, string(output))
	}
	return nil
}

// CommitAll stages everything in dir and records a commit.
func CommitAll(dir, message string) error {
	cmd := exec.Command("git", "add", "-A")
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git add failed: %w\n%s", err, string(output))
	}

	cmd = exec.Command("git", "commit", "--no-verify", "-m", message)
	cmd.Dir = dir
	output, err = cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git commit failed: %w\n%s", err, string(output))
	}
	return nil
}

// RemoveRepo deletes the .git directory in dir.
func RemoveRepo(dir string) error {
	return os.RemoveAll(filepath.Join(dir, ".git"))
}

// Version returns the installed git version, e.g. "2.43.0".
func Version() string {
	output, err := exec.Command("git", "--version").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(string(output)), "git version"))
}
