package pkgmanager

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected Manager
		wantErr  bool
	}{
		{input: "yarn", expected: Yarn},
		{input: "NPM", expected: Npm},
		{input: " npm ", expected: Npm},
		{input: "pnpm", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, m)
		})
	}
}

func TestLockFile(t *testing.T) {
	assert.Equal(t, "yarn.lock", Yarn.LockFile())
	assert.Equal(t, "package-lock.json", Npm.LockFile())
}

func TestInstallArgs(t *testing.T) {
	t.Run("npm quiet", func(t *testing.T) {
		assert.Equal(t, []string{"install", "--no-audit", "--no-fund", "--loglevel", "error"}, Npm.InstallArgs(false))
	})

	t.Run("npm verbose", func(t *testing.T) {
		assert.Equal(t, []string{"install", "--no-audit", "--no-fund", "--verbose"}, Npm.InstallArgs(true))
	})

	t.Run("yarn", func(t *testing.T) {
		assert.Equal(t, []string{"install"}, Yarn.InstallArgs(false))
		assert.Equal(t, []string{"install", "--verbose"}, Yarn.InstallArgs(true))
	})
}

func TestRunCommand(t *testing.T) {
	assert.Equal(t, "yarn start", Yarn.RunCommand("start"))
	assert.Equal(t, "yarn build", Yarn.RunCommand("build"))
	assert.Equal(t, "npm start", Npm.RunCommand("start"))
	assert.Equal(t, "npm test", Npm.RunCommand("test"))
	assert.Equal(t, "npm run build", Npm.RunCommand("build"))
}

func TestInstallerFunc(t *testing.T) {
	var gotDir string
	var gotManager Manager
	installer := InstallerFunc(func(ctx context.Context, dir string, m Manager) error {
		gotDir = dir
		gotManager = m
		return nil
	})

	require.NoError(t, installer.Install(context.Background(), "/app", Npm))
	assert.Equal(t, "/app", gotDir)
	assert.Equal(t, Npm, gotManager)
}

func TestExecInstaller(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script as a fake package manager")
	}

	binDir := t.TempDir()
	script := "#!/bin/sh\necho \"$@\" > args.txt\necho lockfile > yarn.lock\n"
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "yarn"), []byte(script), 0755))
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	t.Run("runs install in the target directory", func(t *testing.T) {
		dir := t.TempDir()
		installer := &ExecInstaller{}

		require.NoError(t, installer.Install(context.Background(), dir, Yarn))

		assert.FileExists(t, filepath.Join(dir, "yarn.lock"))
		args, err := os.ReadFile(filepath.Join(dir, "args.txt"))
		require.NoError(t, err)
		assert.Equal(t, "install\n", string(args))
	})

	t.Run("reports captured output on failure", func(t *testing.T) {
		failing := "#!/bin/sh\necho 'network unreachable'\nexit 1\n"
		require.NoError(t, os.WriteFile(filepath.Join(binDir, "yarn"), []byte(failing), 0755))

		err := (&ExecInstaller{}).Install(context.Background(), t.TempDir(), Yarn)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "network unreachable")
	})
}
