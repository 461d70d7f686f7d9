package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artisanexperiences/create-app/internal/config"
	"github.com/artisanexperiences/create-app/internal/project"
)

// setupEnv puts fake yarn and npm binaries first on PATH, isolates the global
// config, and changes into an empty working directory.
func setupEnv(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake package managers are shell scripts")
	}

	bin := t.TempDir()
	writeScript(t, bin, "yarn", "#!/bin/sh\necho '# yarn lockfile v1' > yarn.lock\n")
	writeScript(t, bin, "npm", "#!/bin/sh\necho '{}' > package-lock.json\n")
	t.Setenv("PATH", bin)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cwd := t.TempDir()
	t.Chdir(cwd)
	return cwd
}

func writeScript(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0755))
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := execute(context.Background(), cmd)
	return stdout.String(), stderr.String(), err
}

func entries(t *testing.T, dir string) []string {
	t.Helper()
	list, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(list))
	for _, e := range list {
		names = append(names, e.Name())
	}
	return names
}

func TestCreateWithoutProjectDirectory(t *testing.T) {
	cwd := setupEnv(t)

	_, stderr, err := run(t)

	require.Error(t, err)
	assert.ErrorIs(t, err, project.ErrMissingProjectDirectory)
	assert.Contains(t, stderr, "Please specify the project directory")
	assert.NotContains(t, stderr, "Error:")
	assert.Equal(t, 1, ExitCode(err))
	assert.Empty(t, entries(t, cwd))
}

func TestCreateFreshProject(t *testing.T) {
	cwd := setupEnv(t)

	stdout, _, err := run(t, "my-app")
	require.NoError(t, err)

	names := entries(t, filepath.Join(cwd, "my-app"))
	for _, want := range []string{".gitignore", "package.json", "src", "yarn.lock"} {
		assert.Contains(t, names, want)
	}
	assert.Contains(t, stdout, "Success! Created my-app")
	assert.Equal(t, 0, ExitCode(err))
}

func TestCreateInConflictingDirectory(t *testing.T) {
	cwd := setupEnv(t)
	dir := filepath.Join(cwd, "my-app")
	require.NoError(t, os.MkdirAll(dir, 0755))
	foreign := []byte(`{"name":"not-mine","version":"9.9.9"}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), foreign, 0644))

	stdout, _, err := run(t, "my-app")

	require.Error(t, err)
	assert.ErrorIs(t, err, project.ErrDirectoryConflict)
	assert.Contains(t, stdout, "contains files that could conflict")
	assert.NotEqual(t, 0, ExitCode(err))

	content, err := os.ReadFile(filepath.Join(dir, "package.json"))
	require.NoError(t, err)
	assert.Equal(t, foreign, content)
}

func TestCreateInCurrentDirectory(t *testing.T) {
	cwd := setupEnv(t)
	dir := filepath.Join(cwd, "existing")
	require.NoError(t, os.MkdirAll(dir, 0755))
	t.Chdir(dir)

	_, _, err := run(t, ".")
	require.NoError(t, err)

	names := entries(t, dir)
	for _, want := range []string{".gitignore", "package.json", "src", "yarn.lock"} {
		assert.Contains(t, names, want)
	}
}

func TestCreateWithNpm(t *testing.T) {
	cwd := setupEnv(t)

	_, _, err := run(t, "my-app", "--use-npm")
	require.NoError(t, err)

	names := entries(t, filepath.Join(cwd, "my-app"))
	assert.Contains(t, names, "package-lock.json")
	assert.NotContains(t, names, "yarn.lock")
	for _, want := range []string{".gitignore", "package.json", "src"} {
		assert.Contains(t, names, want)
	}
}

func TestCreateWithTypeScriptTemplate(t *testing.T) {
	cwd := setupEnv(t)

	_, _, err := run(t, "my-app", "--template", "typescript")
	require.NoError(t, err)

	names := entries(t, filepath.Join(cwd, "my-app"))
	for _, want := range []string{".gitignore", "package.json", "src", "yarn.lock", "tsconfig.json"} {
		assert.Contains(t, names, want)
	}
}

func TestCreateInstallFailure(t *testing.T) {
	cwd := setupEnv(t)
	writeScript(t, os.Getenv("PATH"), "yarn", "#!/bin/sh\necho 'network down' >&2\nexit 1\n")

	_, stderr, err := run(t, "my-app")

	require.Error(t, err)
	assert.ErrorIs(t, err, project.ErrInstallFailed)
	assert.Contains(t, stderr, "Aborting installation.")
	assert.Contains(t, stderr, "network down")
	assert.NoDirExists(t, filepath.Join(cwd, "my-app"))
}

func TestCreateInterruptedDuringInstall(t *testing.T) {
	cwd := setupEnv(t)
	writeScript(t, os.Getenv("PATH"), "yarn", "#!/bin/sh\nexec /bin/sleep 10\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	timer := time.AfterFunc(300*time.Millisecond, cancel)
	defer timer.Stop()

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"my-app"})

	err := execute(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, config.ExitInterrupted, ExitCode(err))
	assert.DirExists(t, filepath.Join(cwd, "my-app"))
}

func TestInfoFlag(t *testing.T) {
	setupEnv(t)

	stdout, _, err := run(t, "--info", "--no-color")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Environment Info:")
	assert.Contains(t, stdout, "Yarn")
	assert.Contains(t, stdout, runtime.GOOS)
}

func TestVersionFlag(t *testing.T) {
	cmd := newRootCmd()
	cmd.Version = "1.2.3"
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, execute(context.Background(), cmd))
	assert.Equal(t, "1.2.3\n", stdout.String())
}

func TestUnknownFlag(t *testing.T) {
	setupEnv(t)

	_, stderr, err := run(t, "my-app", "--use-pnpm")

	require.Error(t, err)
	assert.Contains(t, stderr, "Error: unknown flag: --use-pnpm")
	assert.Contains(t, stderr, "create-app --help")
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, config.ExitSuccess},
		{"reported", &project.ReportedError{Err: project.ErrDirectoryConflict}, config.ExitGeneralError},
		{"plain", errors.New("boom"), config.ExitGeneralError},
		{"interrupted", fmt.Errorf("install: %w", context.Canceled), config.ExitInterrupted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestSaveConfigFlag(t *testing.T) {
	setupEnv(t)

	stdout, _, err := run(t, "--save-config", "--use-npm", "--template", "typescript", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration saved to")

	dir, err := config.GetGlobalConfigDir()
	require.NoError(t, err)
	cfg, err := config.LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "npm", cfg.PackageManager)
	assert.Equal(t, "typescript", cfg.Template)
	assert.True(t, cfg.Git.Init)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	_, _, err = run(t, "my-app")
	require.NoError(t, err)
	names := entries(t, filepath.Join(cwd, "my-app"))
	assert.Contains(t, names, "package-lock.json")
	assert.Contains(t, names, "tsconfig.json")
}
