package project

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/artisanexperiences/create-app/internal/config"
	"github.com/artisanexperiences/create-app/internal/fs"
	"github.com/artisanexperiences/create-app/internal/logging"
	"github.com/artisanexperiences/create-app/internal/pkgmanager"
	"github.com/artisanexperiences/create-app/internal/scaffold"
	"github.com/artisanexperiences/create-app/internal/scaffold/steps"
	"github.com/artisanexperiences/create-app/internal/scaffold/types"
	"github.com/artisanexperiences/create-app/internal/template"
	"github.com/artisanexperiences/create-app/internal/ui"
	"github.com/artisanexperiences/create-app/internal/validation"
)

// Prompter asks the user for choices when running interactively.
type Prompter interface {
	SelectTemplate(templates []*template.Template, current string) (string, error)
	SelectPackageManager(current pkgmanager.Manager) (pkgmanager.Manager, error)
}

// Result describes a successfully created project.
type Result struct {
	Path           string
	AppName        string
	Manager        pkgmanager.Manager
	Template       string
	GitInitialized bool
}

// Initializer creates projects. The zero value is usable and runs against the
// real file system, package managers and git.
type Initializer struct {
	Stdout    io.Writer
	Stderr    io.Writer
	NoColor   bool
	FS        fs.FS
	Installer pkgmanager.Installer
	Git       steps.GitClient
	Config    *config.Config
	Templates *template.Registry
	Prompter  Prompter
	Logger    *log.Logger
	// Cwd is the directory relative targets are resolved against. Defaults to os.Getwd.
	Cwd string
	// ManagerAvailable reports whether a package manager can be run. Defaults to PATH lookup.
	ManagerAvailable func(pkgmanager.Manager) bool
}

func (in *Initializer) setDefaults() error {
	if in.Stdout == nil {
		in.Stdout = os.Stdout
	}
	if in.Stderr == nil {
		in.Stderr = os.Stderr
	}
	if in.FS == nil {
		in.FS = fs.Default
	}
	if in.Installer == nil {
		in.Installer = &pkgmanager.ExecInstaller{Stdout: in.Stdout, Stderr: in.Stderr, Logger: in.Logger}
	}
	if in.Git == nil {
		in.Git = steps.ExecGit{}
	}
	if in.Config == nil {
		in.Config = &config.Config{Git: config.GitConfig{Init: true, CommitMessage: config.DefaultCommit}}
	}
	if in.Logger == nil {
		in.Logger = logging.Discard()
	}
	if in.ManagerAvailable == nil {
		in.ManagerAvailable = pkgmanager.Manager.Available
	}
	if in.Templates == nil {
		registry, err := template.NewRegistry()
		if err != nil {
			return fmt.Errorf("loading templates: %w", err)
		}
		in.Templates = registry
	}
	if in.Cwd == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		in.Cwd = cwd
	}
	return nil
}

// Run validates args and creates the project they describe.
// Errors already explained to the user are wrapped in ReportedError.
func (in *Initializer) Run(ctx context.Context, args InvocationArgs) (*Result, error) {
	if err := in.setDefaults(); err != nil {
		return nil, err
	}
	out := ui.NewPrinter(in.Stdout, in.NoColor)
	errOut := ui.NewPrinter(in.Stderr, in.NoColor)

	if strings.TrimSpace(args.ProjectDirectory) == "" {
		printMissingDirectory(errOut)
		return nil, reported(ErrMissingProjectDirectory)
	}

	root := in.resolve(args.ProjectDirectory)
	appName := filepath.Base(root)
	in.Logger.Debug("resolved target", "path", root, "name", appName)

	if err := checkAppName(errOut, appName); err != nil {
		return nil, err
	}

	tmpl, err := in.selectTemplate(errOut, args)
	if err != nil {
		return nil, err
	}

	manager, err := in.selectManager(out, args)
	if err != nil {
		return nil, err
	}

	if args.Interactive && in.Prompter != nil {
		tmpl, manager, err = in.prompt(errOut, tmpl, manager)
		if err != nil {
			return nil, err
		}
	}

	snap, err := takeSnapshot(in.FS, root)
	if err != nil {
		return nil, err
	}
	if err := in.FS.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", root, err)
	}

	conflicts, err := FindConflicts(in.FS, root, in.Config.AllSafeFiles())
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		printConflicts(out, appName, conflicts)
		return nil, reported(fmt.Errorf("%w: %s", ErrDirectoryConflict, root))
	}
	if err := RemoveErrorLogs(in.FS, root); err != nil {
		return nil, err
	}

	out.Println()
	out.Printf("Creating a new React app in %s.\n", out.Green(root))
	out.Println()

	sc := &types.ScaffoldContext{
		ProjectPath:    root,
		AppName:        appName,
		Template:       tmpl,
		Manager:        manager,
		ScriptsVersion: firstNonEmpty(args.ScriptsVersion, in.Config.ScriptsVersion),
		CommitMessage:  in.Config.Git.CommitMessage,
	}
	opts := types.StepOptions{
		Verbose:     args.Verbose,
		SkipInstall: args.SkipInstall,
		SkipGit:     args.SkipGit || !in.Config.Git.Init,
		Out:         in.Stdout,
		Logger:      in.Logger,
	}

	registry := steps.NewRegistry(steps.Dependencies{
		FS:        in.FS,
		Installer: in.announcingInstaller(out, tmpl),
		Git:       in.Git,
	})

	if _, err := scaffold.NewScaffoldManager(registry).RunScaffold(ctx, sc, opts); err != nil {
		return nil, in.abort(ctx, errOut, snap, err)
	}

	result := &Result{
		Path:           root,
		AppName:        appName,
		Manager:        manager,
		Template:       tmpl.Name,
		GitInitialized: sc.GetVar("GitInitialized") == "true",
	}
	printSuccess(out, result, in.cdPath(args.ProjectDirectory, root), args.SkipInstall)
	return result, nil
}

func (in *Initializer) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(in.Cwd, dir)
}

// cdPath is what the user types to enter the project, or "" when it was created in place.
func (in *Initializer) cdPath(arg, root string) string {
	if root == filepath.Clean(in.Cwd) {
		return ""
	}
	if !filepath.IsAbs(arg) {
		return filepath.Clean(arg)
	}
	return root
}

func checkAppName(errOut *ui.Printer, appName string) error {
	if err := validation.ValidatePackageName(appName); err != nil {
		errOut.Printf("Cannot create a project named %s because of npm naming restrictions:\n\n", errOut.Red(fmt.Sprintf("%q", appName)))
		for _, violation := range validation.Violations(err) {
			errOut.Printf("  %s  %s\n", errOut.Red("*"), violation)
		}
		errOut.Println()
		errOut.Println("Please choose a different project name.")
		return reported(fmt.Errorf("%w: %s: %w", ErrInvalidProjectName, appName, err))
	}

	if err := validation.CheckDependencyConflict(appName, steps.BaseDependencies); err != nil {
		var conflict *validation.DependencyConflictError
		errors.As(err, &conflict)
		errOut.Printf("Cannot create a project named %s because a dependency with the same name exists.\n", errOut.Red(fmt.Sprintf("%q", appName)))
		errOut.Println("Due to the way npm works, the following names are not allowed:")
		errOut.Println()
		for _, dep := range conflict.Dependencies {
			errOut.Println("  " + errOut.Code(dep))
		}
		errOut.Println()
		errOut.Println("Please choose a different project name.")
		return reported(fmt.Errorf("%w: %w", ErrInvalidProjectName, err))
	}

	return nil
}

func (in *Initializer) selectTemplate(errOut *ui.Printer, args InvocationArgs) (*template.Template, error) {
	name := firstNonEmpty(args.Template, in.Config.Template)
	tmpl, err := in.Templates.Resolve(name, in.Cwd)
	if err != nil {
		var unknown *template.UnknownTemplateError
		if errors.As(err, &unknown) {
			errOut.PrintErrorWithHint(
				fmt.Sprintf("Could not find template %q.", unknown.Name),
				"Available templates: "+strings.Join(unknown.Available, ", "))
		} else {
			errOut.PrintError(fmt.Sprintf("Could not use template %q: %v", name, err))
		}
		return nil, reported(fmt.Errorf("%w: %w", ErrUnknownTemplate, err))
	}
	in.Logger.Debug("using template", "name", tmpl.Name, "language", tmpl.Language)
	return tmpl, nil
}

func (in *Initializer) selectManager(out *ui.Printer, args InvocationArgs) (pkgmanager.Manager, error) {
	manager := pkgmanager.Yarn
	switch {
	case args.UseNpm:
		return pkgmanager.Npm, nil
	case in.Config.PackageManager != "":
		m, err := pkgmanager.Parse(in.Config.PackageManager)
		if err != nil {
			return "", fmt.Errorf("reading package_manager from config: %w", err)
		}
		manager = m
	}

	if manager == pkgmanager.Yarn && !args.SkipInstall && !in.ManagerAvailable(pkgmanager.Yarn) {
		out.PrintWarning("yarn was not found on your PATH. Using npm instead.")
		manager = pkgmanager.Npm
	}
	return manager, nil
}

func (in *Initializer) prompt(errOut *ui.Printer, tmpl *template.Template, manager pkgmanager.Manager) (*template.Template, pkgmanager.Manager, error) {
	name, err := in.Prompter.SelectTemplate(in.Templates.Templates(), tmpl.Name)
	if err != nil {
		return nil, "", err
	}
	if name != tmpl.Name {
		tmpl, err = in.Templates.Resolve(name, in.Cwd)
		if err != nil {
			errOut.PrintError(err.Error())
			return nil, "", reported(fmt.Errorf("%w: %w", ErrUnknownTemplate, err))
		}
	}

	manager, err = in.Prompter.SelectPackageManager(manager)
	if err != nil {
		return nil, "", err
	}
	return tmpl, manager, nil
}

// announcingInstaller prints what is about to be installed before delegating.
func (in *Initializer) announcingInstaller(out *ui.Printer, tmpl *template.Template) pkgmanager.Installer {
	return pkgmanager.InstallerFunc(func(ctx context.Context, dir string, m pkgmanager.Manager) error {
		out.Println("Installing packages. This might take a couple of minutes.")
		out.Printf("Installing %s, %s, and %s with %s...\n",
			out.Code("react"), out.Code("react-dom"), out.Code("react-scripts"), out.Code(tmpl.Name))
		out.Println()
		return in.Installer.Install(ctx, dir, m)
	})
}

// abort undoes a failed generation. Cancelled runs are left as they are.
func (in *Initializer) abort(ctx context.Context, errOut *ui.Printer, snap *snapshot, err error) error {
	errOut.Println()
	errOut.Println("Aborting installation.")

	var installErr *steps.InstallError
	if errors.As(err, &installErr) {
		errOut.Printf("  %s has failed.\n", errOut.Code(installErr.Manager.String()))
		if ctx.Err() == nil {
			errOut.Println()
			errOut.Println(installErr.Err.Error())
		}
		err = fmt.Errorf("%w: %w", ErrInstallFailed, err)
	} else {
		errOut.PrintError(err.Error())
	}

	// A killed child reports its signal, not the cancellation.
	if ctxErr := ctx.Err(); ctxErr != nil {
		if !errors.Is(err, ctxErr) {
			err = fmt.Errorf("%w: %w", ctxErr, err)
		}
		return reported(err)
	}

	errOut.Println()
	errOut.Printf("Deleting generated files in %s\n", errOut.Code(snap.root))
	if restoreErr := snap.restore(in.FS); restoreErr != nil {
		in.Logger.Warn("cleanup incomplete", "err", restoreErr)
	}
	errOut.Println("Done.")
	return reported(err)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
