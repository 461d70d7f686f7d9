// Package template holds the starter templates a project can be created from.
//
// A template is a directory containing template.json, whose "package" section is
// merged into the generated package.json, and a template/ tree that is copied
// into the new project.
package template

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/go-viper/mapstructure/v2"
)

//go:embed all:templates
var builtinFS embed.FS

const (
	DefaultName = "cra-template"
	namePrefix  = "cra-template"
	filePrefix  = "file:"

	ManifestFile = "template.json"
	treeDir      = "template"
	renderSuffix = ".tmpl"
)

// Language of the starter sources.
const (
	JavaScript = "javascript"
	TypeScript = "typescript"
)

// Manifest is the decoded template.json.
type Manifest struct {
	Package PackageSection `mapstructure:"package"`
}

// PackageSection is merged into the generated package.json.
type PackageSection struct {
	Dependencies map[string]string      `mapstructure:"dependencies"`
	Scripts      map[string]string      `mapstructure:"scripts"`
	Extra        map[string]interface{} `mapstructure:",remain"`
}

// Template is a resolved starter template.
type Template struct {
	Name        string
	Description string
	Language    string
	Manifest    Manifest
	Files       fs.FS
}

// Data is passed to *.tmpl files while copying.
type Data struct {
	AppName        string
	PackageManager string
	StartCommand   string
	BuildCommand   string
	TestCommand    string
	EjectCommand   string
}

// Render executes content as a text/template with missing keys treated as errors.
func Render(name string, content []byte, data Data) ([]byte, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("invalid template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// OutputName maps a template file name to the name written into the project.
// "gitignore" becomes ".gitignore" and the .tmpl suffix is dropped.
func OutputName(name string) (string, bool) {
	render := strings.HasSuffix(name, renderSuffix)
	name = strings.TrimSuffix(name, renderSuffix)
	if filepath.Base(name) == "gitignore" {
		name = filepath.Join(filepath.Dir(name), ".gitignore")
	}
	return name, render
}

// Load reads a template from a directory laid out as template.json + template/.
func Load(name, description string, root fs.FS) (*Template, error) {
	raw, err := fs.ReadFile(root, ManifestFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s for %s: %w", ManifestFile, name, err)
	}

	manifest, err := ParseManifest(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing %s for %s: %w", ManifestFile, name, err)
	}

	files, err := fs.Sub(root, treeDir)
	if err != nil {
		return nil, fmt.Errorf("opening template files for %s: %w", name, err)
	}
	if _, err := fs.Stat(files, "."); err != nil {
		return nil, fmt.Errorf("template %s has no %s/ directory", name, treeDir)
	}

	language := JavaScript
	if _, err := fs.Stat(files, "tsconfig.json"); err == nil {
		language = TypeScript
	}

	return &Template{
		Name:        name,
		Description: description,
		Language:    language,
		Manifest:    manifest,
		Files:       files,
	}, nil
}

// ParseManifest decodes template.json content.
func ParseManifest(raw []byte) (Manifest, error) {
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return Manifest{}, err
	}

	var manifest Manifest
	if err := mapstructure.Decode(data, &manifest); err != nil {
		return Manifest{}, err
	}
	return manifest, nil
}

type builtin struct {
	name        string
	description string
}

// builtinTemplates lists the embedded templates in display order.
var builtinTemplates = []builtin{
	{DefaultName, "React with JavaScript"},
	{"cra-template-typescript", "React with TypeScript"},
}

// Registry resolves template names to templates.
type Registry struct {
	templates map[string]*Template
	order     []string
}

// NewRegistry returns a registry holding the embedded templates.
func NewRegistry() (*Registry, error) {
	r := &Registry{templates: make(map[string]*Template)}
	for _, b := range builtinTemplates {
		root, err := fs.Sub(builtinFS, filepath.ToSlash(filepath.Join("templates", b.name)))
		if err != nil {
			return nil, err
		}
		tmpl, err := Load(b.name, b.description, root)
		if err != nil {
			return nil, err
		}
		r.Register(tmpl)
	}
	return r, nil
}

// Register adds a template; later registrations replace earlier ones with the same name.
func (r *Registry) Register(tmpl *Template) {
	if _, exists := r.templates[tmpl.Name]; !exists {
		r.order = append(r.order, tmpl.Name)
	}
	r.templates[tmpl.Name] = tmpl
}

// Get returns a registered template by its full name.
func (r *Registry) Get(name string) (*Template, bool) {
	tmpl, ok := r.templates[name]
	return tmpl, ok
}

// Available returns registered template names in registration order.
func (r *Registry) Available() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Templates returns registered templates in registration order.
func (r *Registry) Templates() []*Template {
	out := make([]*Template, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.templates[name])
	}
	return out
}

// Resolve turns a --template value into a template. An empty name selects the
// default; "typescript" is shorthand for "cra-template-typescript"; "file:<path>"
// loads a local directory relative to baseDir.
func (r *Registry) Resolve(name, baseDir string) (*Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}

	if strings.HasPrefix(name, filePrefix) {
		return loadLocal(strings.TrimPrefix(name, filePrefix), baseDir)
	}

	full := CanonicalName(name)
	if tmpl, ok := r.templates[full]; ok {
		return tmpl, nil
	}

	available := r.Available()
	sort.Strings(available)
	return nil, &UnknownTemplateError{Name: name, Available: available}
}

// CanonicalName expands short names: "typescript" -> "cra-template-typescript".
func CanonicalName(name string) string {
	if name == namePrefix || strings.HasPrefix(name, namePrefix+"-") {
		return name
	}
	// Scoped packages keep their scope: @scope/foo -> @scope/cra-template-foo.
	if strings.HasPrefix(name, "@") && strings.Contains(name, "/") {
		scope, rest, _ := strings.Cut(name, "/")
		if rest == namePrefix || strings.HasPrefix(rest, namePrefix+"-") {
			return name
		}
		return scope + "/" + namePrefix + "-" + rest
	}
	return namePrefix + "-" + name
}

func loadLocal(path, baseDir string) (*Template, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("local template %s: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("local template %s is not a directory", path)
	}
	return Load(filepath.Base(path), "Local template", os.DirFS(path))
}

// UnknownTemplateError is returned when a template name cannot be resolved.
type UnknownTemplateError struct {
	Name      string
	Available []string
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("template %q not found (available: %s)", e.Name, strings.Join(e.Available, ", "))
}
