package project

import (
	"github.com/artisanexperiences/create-app/internal/config"
	"github.com/artisanexperiences/create-app/internal/ui"
)

func printMissingDirectory(p *ui.Printer) {
	p.Println("Please specify the project directory:")
	p.Printf("  %s %s\n", p.Code(config.AppName), p.Green("<project-directory>"))
	p.Println()
	p.Println("For example:")
	p.Printf("  %s %s\n", p.Code(config.AppName), p.Green("my-react-app"))
	p.Println()
	p.Printf("Run %s to see all options.\n", p.Code(config.AppName+" --help"))
}

func printConflicts(p *ui.Printer, appName string, conflicts []string) {
	p.Printf("The directory %s contains files that could conflict:\n", p.Green(appName))
	p.Println()
	for _, name := range conflicts {
		p.Println("  " + name)
	}
	p.Println()
	p.Println("Either try using a new directory name, or remove the files listed above.")
}

func printSuccess(p *ui.Printer, r *Result, cdPath string, skipInstall bool) {
	run := r.Manager.RunCommand

	p.Println()
	p.Printf("%s Created %s at %s\n", p.Green("Success!"), r.AppName, r.Path)
	p.Println("Inside that directory, you can run several commands:")
	p.Println()
	p.Println("  " + p.Code(run("start")))
	p.Println("    Starts the development server.")
	p.Println()
	p.Println("  " + p.Code(run("build")))
	p.Println("    Bundles the app into static files for production.")
	p.Println()
	p.Println("  " + p.Code(run("test")))
	p.Println("    Starts the test runner.")
	p.Println()
	p.Println("  " + p.Code(run("eject")))
	p.Println("    Removes this tool and copies build dependencies, configuration files")
	p.Println("    and scripts into the app directory. If you do this, you can't go back!")
	p.Println()
	p.Println("We suggest that you begin by typing:")
	p.Println()
	if cdPath != "" {
		p.Println("  " + p.Code("cd") + " " + cdPath)
	}
	if skipInstall {
		p.Println("  " + p.Code(r.Manager.Binary()+" install"))
	}
	p.Println("  " + p.Code(run("start")))
	p.Println()
	p.Println("Happy hacking!")
}
