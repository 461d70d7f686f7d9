// Package project creates a new React application in a target directory.
package project

// InvocationArgs is the parsed command line of a single run.
type InvocationArgs struct {
	// ProjectDirectory is the target relative to the working directory, "." for
	// the working directory itself, or empty when none was given.
	ProjectDirectory string
	UseNpm           bool
	Template         string
	ScriptsVersion   string
	SkipGit          bool
	SkipInstall      bool
	Verbose          bool
	Interactive      bool
}
