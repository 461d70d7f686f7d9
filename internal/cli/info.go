package cli

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/artisanexperiences/create-app/internal/git"
	"github.com/artisanexperiences/create-app/internal/pkgmanager"
	"github.com/artisanexperiences/create-app/internal/ui"
)

const notFound = "Not Found"

func printInfo(ctx context.Context, w io.Writer, noColor bool) error {
	p := ui.NewPrinter(w, noColor)

	rows := [][]string{
		{"OS", runtime.GOOS + "/" + runtime.GOARCH},
		{"create-app", fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)},
		{"Node", orNotFound(pkgmanager.Version(ctx, "node"))},
		{"npm", orNotFound(pkgmanager.Version(ctx, "npm"))},
		{"Yarn", orNotFound(pkgmanager.Version(ctx, "yarn"))},
		{"git", orNotFound(git.Version())},
	}

	p.Println()
	p.Println(p.Header("Environment Info:"))
	p.Println(p.Table([]string{"NAME", "VERSION"}, rows))
	return nil
}

func orNotFound(version string) string {
	if version == "" {
		return notFound
	}
	return version
}
