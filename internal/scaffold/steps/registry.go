package steps

import (
	"fmt"
	"sort"

	"github.com/artisanexperiences/create-app/internal/fs"
	"github.com/artisanexperiences/create-app/internal/pkgmanager"
	"github.com/artisanexperiences/create-app/internal/scaffold/types"
)

const (
	PackageWrite   = "package.write"
	TemplateCopy   = "template.copy"
	DepsInstall    = "deps.install"
	GitInit        = "git.init"
	DefaultScripts = "5.0.1"
)

// DefaultPipeline is the order steps run in when creating a project.
var DefaultPipeline = []string{PackageWrite, TemplateCopy, DepsInstall, GitInit}

// Dependencies are the collaborators injected into every step.
type Dependencies struct {
	FS        fs.FS
	Installer pkgmanager.Installer
	Git       GitClient
}

type StepFactory func(deps Dependencies) types.ScaffoldStep

// Registry maps step names to factories.
type Registry struct {
	deps      Dependencies
	factories map[string]StepFactory
}

// NewRegistry returns a registry with every built-in step registered.
// Nil dependencies fall back to the real file system, the exec installer and the git binary.
func NewRegistry(deps Dependencies) *Registry {
	if deps.FS == nil {
		deps.FS = fs.Default
	}
	if deps.Installer == nil {
		deps.Installer = &pkgmanager.ExecInstaller{}
	}
	if deps.Git == nil {
		deps.Git = ExecGit{}
	}

	r := &Registry{deps: deps, factories: make(map[string]StepFactory)}
	r.Register(PackageWrite, func(d Dependencies) types.ScaffoldStep {
		return NewPackageWriteStep(d.FS)
	})
	r.Register(TemplateCopy, func(d Dependencies) types.ScaffoldStep {
		return NewTemplateCopyStep(d.FS)
	})
	r.Register(DepsInstall, func(d Dependencies) types.ScaffoldStep {
		return NewDepsInstallStep(d.Installer)
	})
	r.Register(GitInit, func(d Dependencies) types.ScaffoldStep {
		return NewGitInitStep(d.Git)
	})
	return r
}

func (r *Registry) Register(name string, factory StepFactory) {
	if _, exists := r.factories[name]; exists {
		panic(fmt.Sprintf("step %q already registered", name))
	}
	r.factories[name] = factory
}

func (r *Registry) Create(name string) (types.ScaffoldStep, error) {
	if factory, ok := r.factories[name]; ok {
		return factory(r.deps), nil
	}
	return nil, fmt.Errorf("unknown step %q (available: %v)", name, r.ListRegistered())
}

func (r *Registry) ListRegistered() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
