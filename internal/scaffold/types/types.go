package types

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/artisanexperiences/create-app/internal/pkgmanager"
	"github.com/artisanexperiences/create-app/internal/template"
)

// ScaffoldContext carries everything the steps need to know about the project being created.
type ScaffoldContext struct {
	ProjectPath    string
	AppName        string
	Template       *template.Template
	Manager        pkgmanager.Manager
	ScriptsVersion string
	CommitMessage  string
	Vars           map[string]string
	mu             sync.RWMutex
}

type StepOptions struct {
	Verbose     bool
	SkipInstall bool
	SkipGit     bool
	Out         io.Writer
	Logger      *log.Logger
}

type ScaffoldStep interface {
	Name() string
	Run(ctx context.Context, sc *ScaffoldContext, opts StepOptions) error
	Condition(sc *ScaffoldContext, opts StepOptions) bool
}

func (sc *ScaffoldContext) SetVar(key, value string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.Vars == nil {
		sc.Vars = make(map[string]string)
	}
	sc.Vars[key] = value
}

func (sc *ScaffoldContext) GetVar(key string) string {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.Vars[key]
}

// TemplateData returns the values exposed to *.tmpl files.
func (sc *ScaffoldContext) TemplateData() template.Data {
	return template.Data{
		AppName:        sc.AppName,
		PackageManager: sc.Manager.String(),
		StartCommand:   sc.Manager.RunCommand("start"),
		BuildCommand:   sc.Manager.RunCommand("build"),
		TestCommand:    sc.Manager.RunCommand("test"),
		EjectCommand:   sc.Manager.RunCommand("eject"),
	}
}
