package template

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry()
	require.NoError(t, err)
	return r
}

func TestNewRegistry(t *testing.T) {
	r := newRegistry(t)

	assert.Equal(t, []string{"cra-template", "cra-template-typescript"}, r.Available())

	js, ok := r.Get("cra-template")
	require.True(t, ok)
	assert.Equal(t, JavaScript, js.Language)
	assert.Contains(t, js.Manifest.Package.Dependencies, "web-vitals")
	assert.Contains(t, js.Manifest.Package.Extra, "eslintConfig")

	ts, ok := r.Get("cra-template-typescript")
	require.True(t, ok)
	assert.Equal(t, TypeScript, ts.Language)
	assert.Contains(t, ts.Manifest.Package.Dependencies, "typescript")

	_, err := fs.Stat(ts.Files, "tsconfig.json")
	assert.NoError(t, err)
	_, err = fs.Stat(js.Files, "tsconfig.json")
	assert.Error(t, err)
}

func TestRegistry_Resolve(t *testing.T) {
	r := newRegistry(t)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty selects default", input: "", expected: "cra-template"},
		{name: "short typescript name", input: "typescript", expected: "cra-template-typescript"},
		{name: "full typescript name", input: "cra-template-typescript", expected: "cra-template-typescript"},
		{name: "full default name", input: "cra-template", expected: "cra-template"},
		{name: "surrounding whitespace", input: "  typescript ", expected: "cra-template-typescript"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := r.Resolve(tt.input, t.TempDir())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tmpl.Name)
		})
	}

	t.Run("unknown template lists available ones", func(t *testing.T) {
		_, err := r.Resolve("svelte", t.TempDir())

		var unknown *UnknownTemplateError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, "svelte", unknown.Name)
		assert.Contains(t, err.Error(), "cra-template-typescript")
	})
}

func TestRegistry_ResolveLocal(t *testing.T) {
	r := newRegistry(t)
	base := t.TempDir()
	dir := filepath.Join(base, "my-template")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "template", "src"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "template.json"), []byte(`{"package":{"dependencies":{"lodash":"^4.17.21"},"scripts":{"lint":"eslint src"}}}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "template", "src", "index.js"), []byte("console.log('hi')"), 0644))

	t.Run("relative path", func(t *testing.T) {
		tmpl, err := r.Resolve("file:my-template", base)
		require.NoError(t, err)
		assert.Equal(t, "my-template", tmpl.Name)
		assert.Equal(t, "^4.17.21", tmpl.Manifest.Package.Dependencies["lodash"])
		assert.Equal(t, "eslint src", tmpl.Manifest.Package.Scripts["lint"])
	})

	t.Run("absolute path", func(t *testing.T) {
		tmpl, err := r.Resolve("file:"+dir, "/elsewhere")
		require.NoError(t, err)
		assert.Equal(t, JavaScript, tmpl.Language)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := r.Resolve("file:nope", base)
		assert.Error(t, err)
	})

	t.Run("missing template tree", func(t *testing.T) {
		bare := filepath.Join(base, "bare")
		require.NoError(t, os.MkdirAll(bare, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(bare, "template.json"), []byte(`{}`), 0644))

		_, err := r.Resolve("file:bare", base)
		assert.Error(t, err)
	})
}

func TestCanonicalName(t *testing.T) {
	assert.Equal(t, "cra-template-typescript", CanonicalName("typescript"))
	assert.Equal(t, "cra-template", CanonicalName("cra-template"))
	assert.Equal(t, "cra-template-redux", CanonicalName("cra-template-redux"))
	assert.Equal(t, "@acme/cra-template-dash", CanonicalName("@acme/dash"))
	assert.Equal(t, "@acme/cra-template-dash", CanonicalName("@acme/cra-template-dash"))
}

func TestOutputName(t *testing.T) {
	name, render := OutputName("gitignore")
	assert.Equal(t, ".gitignore", name)
	assert.False(t, render)

	name, render = OutputName(filepath.Join("public", "index.html.tmpl"))
	assert.Equal(t, filepath.Join("public", "index.html"), name)
	assert.True(t, render)

	name, render = OutputName(filepath.Join("src", "App.js"))
	assert.Equal(t, filepath.Join("src", "App.js"), name)
	assert.False(t, render)
}

func TestRender(t *testing.T) {
	out, err := Render("README.md", []byte("# {{ .AppName }} via {{ .StartCommand }}"), Data{AppName: "my-app", StartCommand: "yarn start"})
	require.NoError(t, err)
	assert.Equal(t, "# my-app via yarn start", string(out))

	_, err = Render("bad", []byte("{{ .Missing }}"), Data{})
	assert.Error(t, err)

	_, err = Render("broken", []byte("{{ .AppName "), Data{})
	assert.Error(t, err)
}

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest([]byte(`{"package":{"dependencies":{"a":"1"},"browserslist":{"production":[">0.2%"]}}}`))
	require.NoError(t, err)
	assert.Equal(t, "1", m.Package.Dependencies["a"])
	assert.Contains(t, m.Package.Extra, "browserslist")

	_, err = ParseManifest([]byte(`not json`))
	assert.Error(t, err)
}
