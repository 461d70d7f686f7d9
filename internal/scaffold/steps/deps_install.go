package steps

import (
	"context"
	"fmt"

	"github.com/artisanexperiences/create-app/internal/pkgmanager"
	"github.com/artisanexperiences/create-app/internal/scaffold/types"
)

// DepsInstallStep installs the dependencies declared in package.json.
type DepsInstallStep struct {
	installer pkgmanager.Installer
}

func NewDepsInstallStep(installer pkgmanager.Installer) *DepsInstallStep {
	return &DepsInstallStep{installer: installer}
}

func (s *DepsInstallStep) Name() string {
	return DepsInstall
}

func (s *DepsInstallStep) Condition(sc *types.ScaffoldContext, opts types.StepOptions) bool {
	return !opts.SkipInstall
}

func (s *DepsInstallStep) Run(ctx context.Context, sc *types.ScaffoldContext, opts types.StepOptions) error {
	if opts.Logger != nil {
		opts.Logger.Debug("installing dependencies", "manager", sc.Manager, "dir", sc.ProjectPath)
	}
	if err := s.installer.Install(ctx, sc.ProjectPath, sc.Manager); err != nil {
		return &InstallError{Manager: sc.Manager, Err: err}
	}
	return nil
}

// InstallError reports a failed package manager run.
type InstallError struct {
	Manager pkgmanager.Manager
	Err     error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("%s has failed: %v", e.Manager, e.Err)
}

func (e *InstallError) Unwrap() error {
	return e.Err
}
