package pkgmanager

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// ExecInstaller runs the real package manager binary.
type ExecInstaller struct {
	// Verbose streams child output to Stdout/Stderr instead of capturing it.
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *log.Logger
}

func (e *ExecInstaller) Install(ctx context.Context, dir string, m Manager) error {
	args := m.InstallArgs(e.Verbose)
	if e.Logger != nil {
		e.Logger.Debug("running package manager", "dir", dir, "cmd", m.Binary()+" "+strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, m.Binary(), args...)
	cmd.Dir = dir

	if e.Verbose {
		cmd.Stdout = e.Stdout
		cmd.Stderr = e.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("%s %s failed: %w", m.Binary(), strings.Join(args, " "), err)
		}
		return nil
	}

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s failed: %w\n%s", m.Binary(), strings.Join(args, " "), err, strings.TrimSpace(output.String()))
	}
	return nil
}

// Version returns the trimmed `<binary> --version` output, or "" when the binary is missing.
func Version(ctx context.Context, binary string) string {
	if _, err := exec.LookPath(binary); err != nil {
		return ""
	}
	out, err := exec.CommandContext(ctx, binary, "--version").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(string(out)), "v"))
}
