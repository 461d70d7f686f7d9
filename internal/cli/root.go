package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/artisanexperiences/create-app/internal/config"
	"github.com/artisanexperiences/create-app/internal/logging"
	"github.com/artisanexperiences/create-app/internal/pkgmanager"
	"github.com/artisanexperiences/create-app/internal/project"
	"github.com/artisanexperiences/create-app/internal/ui"
)

// These variables are set at build time via -ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.AppName + " <project-directory>",
		Short: "Create a new React application",
		Long: `create-app sets up a React application in a new or empty directory.

It writes package.json, copies a starter template, installs dependencies
with yarn (or npm with --use-npm) and initializes a git repository.`,
		Example: `  create-app my-app
  create-app my-app --template typescript
  create-app . --use-npm`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCreate,
	}
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.Flags().Bool("use-npm", false, "Install dependencies with npm instead of yarn")
	cmd.Flags().String("template", "", "Starter template (e.g. typescript, cra-template-typescript, file:../my-template)")
	cmd.Flags().String("scripts-version", "", "Use a non-standard version of react-scripts")
	cmd.Flags().Bool("skip-git", false, "Do not initialize a git repository")
	cmd.Flags().Bool("skip-install", false, "Write project files without installing dependencies")
	cmd.Flags().Bool("interactive", false, "Prompt for template and package manager")
	cmd.Flags().Bool("info", false, "Print environment debug info")
	cmd.Flags().Bool("save-config", false, "Save --use-npm, --template, --scripts-version and --skip-git as defaults, then exit")
	cmd.Flags().Bool("verbose", false, "Print additional logs")
	cmd.Flags().Bool("no-color", false, "Disable colored output")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	noColor := mustGetBool(cmd, "no-color")
	verbose := mustGetBool(cmd, "verbose")

	if mustGetBool(cmd, "info") {
		return printInfo(cmd.Context(), cmd.OutOrStdout(), noColor)
	}

	logger := logging.New(cmd.ErrOrStderr(), verbose)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if mustGetBool(cmd, "save-config") {
		return saveConfig(cmd, cfg, cmd.OutOrStdout(), noColor)
	}

	invocation := project.InvocationArgs{
		UseNpm:         mustGetBool(cmd, "use-npm"),
		Template:       mustGetString(cmd, "template"),
		ScriptsVersion: mustGetString(cmd, "scripts-version"),
		SkipGit:        mustGetBool(cmd, "skip-git"),
		SkipInstall:    mustGetBool(cmd, "skip-install"),
		Verbose:        verbose,
		Interactive:    mustGetBool(cmd, "interactive"),
	}
	if len(args) > 0 {
		invocation.ProjectDirectory = args[0]
	}

	interactive := ui.IsInteractive()

	var installer pkgmanager.Installer = &pkgmanager.ExecInstaller{
		Verbose: verbose,
		Stdout:  cmd.OutOrStdout(),
		Stderr:  cmd.ErrOrStderr(),
		Logger:  logger,
	}
	if interactive && !verbose {
		installer = withSpinner(installer)
	}

	initializer := &project.Initializer{
		Stdout:    cmd.OutOrStdout(),
		Stderr:    cmd.ErrOrStderr(),
		NoColor:   noColor,
		Installer: installer,
		Config:    cfg,
		Logger:    logger,
	}
	if invocation.Interactive && interactive {
		initializer.Prompter = prompter{}
	}

	_, err = initializer.Run(cmd.Context(), invocation)
	return err
}

func withSpinner(inner pkgmanager.Installer) pkgmanager.Installer {
	return pkgmanager.InstallerFunc(func(ctx context.Context, dir string, m pkgmanager.Manager) error {
		return ui.RunWithSpinner(ctx, fmt.Sprintf("Running %s install...", m), func() error {
			return inner.Install(ctx, dir, m)
		})
	})
}

// Execute runs the root command with a context cancelled on SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.Version = Version
	return execute(ctx, rootCmd)
}

func execute(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	if err == nil || ui.IsAbort(err) {
		return nil
	}
	if !project.IsReported(err) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Run %s --help to see all options.\n", config.AppName)
	}
	return err
}

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return config.ExitSuccess
	}
	if errors.Is(err, context.Canceled) {
		return config.ExitInterrupted
	}
	return config.ExitGeneralError
}

func mustGetString(cmd *cobra.Command, name string) string {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: flag %q not defined: %v", name, err))
	}
	return value
}

func mustGetBool(cmd *cobra.Command, name string) bool {
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: flag %q not defined: %v", name, err))
	}
	return value
}
