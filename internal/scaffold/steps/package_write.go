package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/artisanexperiences/create-app/internal/fs"
	"github.com/artisanexperiences/create-app/internal/scaffold/types"
)

// BaseDependencies are installed into every project regardless of template.
var BaseDependencies = []string{"react", "react-dom", "react-scripts"}

var baseVersions = map[string]string{
	"react":     "^18.2.0",
	"react-dom": "^18.2.0",
}

var defaultScripts = []struct{ name, command string }{
	{"start", "react-scripts start"},
	{"build", "react-scripts build"},
	{"test", "react-scripts test"},
	{"eject", "react-scripts eject"},
}

var defaultBrowserslist = map[string]interface{}{
	"production":  []string{">0.2%", "not dead", "not op_mini all"},
	"development": []string{"last 1 chrome version", "last 1 firefox version", "last 1 safari version"},
}

// PackageWriteStep writes package.json from the template manifest.
type PackageWriteStep struct {
	fs fs.FS
}

func NewPackageWriteStep(filesystem fs.FS) *PackageWriteStep {
	if filesystem == nil {
		filesystem = fs.Default
	}
	return &PackageWriteStep{fs: filesystem}
}

func (s *PackageWriteStep) Name() string {
	return PackageWrite
}

func (s *PackageWriteStep) Condition(sc *types.ScaffoldContext, opts types.StepOptions) bool {
	return true
}

func (s *PackageWriteStep) Run(ctx context.Context, sc *types.ScaffoldContext, opts types.StepOptions) error {
	content, err := BuildPackageJSON(sc)
	if err != nil {
		return err
	}

	path := filepath.Join(sc.ProjectPath, "package.json")
	if err := s.fs.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	if opts.Logger != nil {
		opts.Logger.Debug("wrote package.json", "path", path)
	}
	return nil
}

// BuildPackageJSON renders package.json with keys in the order npm itself writes them:
// name, version, private, dependencies, scripts, then template extras sorted by key.
func BuildPackageJSON(sc *types.ScaffoldContext) ([]byte, error) {
	dependencies := make(map[string]string)
	scripts := make(map[string]string)
	extras := make(map[string]interface{})

	if sc.Template != nil {
		pkg := sc.Template.Manifest.Package
		for k, v := range pkg.Dependencies {
			dependencies[k] = v
		}
		for k, v := range pkg.Scripts {
			scripts[k] = v
		}
		for k, v := range pkg.Extra {
			extras[k] = v
		}
	}

	for _, dep := range BaseDependencies {
		if _, ok := dependencies[dep]; !ok {
			dependencies[dep] = baseVersions[dep]
		}
	}
	scriptsVersion := sc.ScriptsVersion
	if scriptsVersion == "" {
		scriptsVersion = DefaultScripts
	}
	dependencies["react-scripts"] = scriptsVersion

	if _, ok := extras["browserslist"]; !ok {
		extras["browserslist"] = defaultBrowserslist
	}

	// Protected keys are owned by the scaffolder.
	for _, k := range []string{"name", "version", "private", "dependencies", "scripts"} {
		delete(extras, k)
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	fields := []struct {
		key   string
		value interface{}
	}{
		{"name", sc.AppName},
		{"version", "0.1.0"},
		{"private", true},
		{"dependencies", dependencies},
		{"scripts", orderedScripts(scripts)},
	}
	extraKeys := make([]string, 0, len(extras))
	for k := range extras {
		extraKeys = append(extraKeys, k)
	}
	sort.Strings(extraKeys)
	for _, k := range extraKeys {
		fields = append(fields, struct {
			key   string
			value interface{}
		}{k, extras[k]})
	}

	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, f.key, f.value); err != nil {
			return nil, fmt.Errorf("encoding %s: %w", f.key, err)
		}
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("formatting package.json: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// orderedScripts keeps start/build/test/eject first, followed by template scripts by name.
type orderedScripts map[string]string

func (o orderedScripts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	seen := make(map[string]bool)
	first := true
	write := func(name, command string) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		return writeMember(&buf, name, command)
	}

	for _, s := range defaultScripts {
		command := s.command
		if override, ok := o[s.name]; ok {
			command = override
		}
		if err := write(s.name, command); err != nil {
			return nil, err
		}
		seen[s.name] = true
	}

	rest := make([]string, 0, len(o))
	for name := range o {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		if err := write(name, o[name]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, key string, value interface{}) error {
	k, err := marshalNoEscape(key)
	if err != nil {
		return err
	}
	v, err := marshalNoEscape(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

// marshalNoEscape encodes value without escaping <, > and &, which appear in browserslist queries.
func marshalNoEscape(value interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
