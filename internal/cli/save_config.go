package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/artisanexperiences/create-app/internal/config"
	"github.com/artisanexperiences/create-app/internal/pkgmanager"
	"github.com/artisanexperiences/create-app/internal/ui"
)

// saveConfig stores the flags given on this invocation as defaults for later runs.
func saveConfig(cmd *cobra.Command, cfg *config.Config, w io.Writer, noColor bool) error {
	flags := cmd.Flags()
	if flags.Changed("use-npm") {
		cfg.PackageManager = pkgmanager.Yarn.String()
		if mustGetBool(cmd, "use-npm") {
			cfg.PackageManager = pkgmanager.Npm.String()
		}
	}
	if flags.Changed("template") {
		cfg.Template = mustGetString(cmd, "template")
	}
	if flags.Changed("scripts-version") {
		cfg.ScriptsVersion = mustGetString(cmd, "scripts-version")
	}
	if flags.Changed("skip-git") {
		cfg.Git.Init = !mustGetBool(cmd, "skip-git")
	}

	dir, err := config.GetGlobalConfigDir()
	if err != nil {
		return err
	}
	if err := config.SaveGlobal(dir, cfg); err != nil {
		return fmt.Errorf("saving global config: %w", err)
	}

	p := ui.NewPrinter(w, noColor)
	p.PrintSuccess("Configuration saved to " + filepath.Join(dir, config.ConfigName+".yaml"))
	return nil
}
