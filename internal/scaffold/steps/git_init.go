package steps

import (
	"context"
	"fmt"

	"github.com/artisanexperiences/create-app/internal/config"
	"github.com/artisanexperiences/create-app/internal/git"
	"github.com/artisanexperiences/create-app/internal/scaffold/types"
)

// GitClient is the subset of git operations the git.init step needs.
type GitClient interface {
	Available() bool
	IsInsideRepo(dir string) bool
	Init(dir string) error
	CommitAll(dir, message string) error
	RemoveRepo(dir string) error
}

// ExecGit runs the git binary.
type ExecGit struct{}

func (ExecGit) Available() bool { return git.Available() }

func (ExecGit) IsInsideRepo(dir string) bool {
	return git.IsInsideWorkTree(dir) || git.IsInsideMercurialRepo(dir)
}

func (ExecGit) Init(dir string) error { return git.Init(dir) }

func (ExecGit) CommitAll(dir, message string) error { return git.CommitAll(dir, message) }

func (ExecGit) RemoveRepo(dir string) error { return git.RemoveRepo(dir) }

// GitInitStep initializes a repository and records the generated files as the first commit.
// Failures are reported but never abort project creation.
type GitInitStep struct {
	git GitClient
}

func NewGitInitStep(client GitClient) *GitInitStep {
	if client == nil {
		client = ExecGit{}
	}
	return &GitInitStep{git: client}
}

func (s *GitInitStep) Name() string {
	return GitInit
}

func (s *GitInitStep) Condition(sc *types.ScaffoldContext, opts types.StepOptions) bool {
	if opts.SkipGit || !s.git.Available() {
		return false
	}
	return !s.git.IsInsideRepo(sc.ProjectPath)
}

func (s *GitInitStep) Run(ctx context.Context, sc *types.ScaffoldContext, opts types.StepOptions) error {
	if err := s.git.Init(sc.ProjectPath); err != nil {
		if opts.Logger != nil {
			opts.Logger.Warn("git repository not initialized", "err", err)
		}
		return nil
	}

	message := sc.CommitMessage
	if message == "" {
		message = config.DefaultCommit
	}

	if err := s.git.CommitAll(sc.ProjectPath, message); err != nil {
		if opts.Logger != nil {
			opts.Logger.Warn("git commit not created, removing .git directory", "err", err)
		}
		if rmErr := s.git.RemoveRepo(sc.ProjectPath); rmErr != nil && opts.Logger != nil {
			opts.Logger.Warn("removing .git directory failed", "err", rmErr)
		}
		return nil
	}

	sc.SetVar("GitInitialized", "true")
	if opts.Out != nil {
		fmt.Fprintln(opts.Out, "Initialized a git repository.")
	}
	return nil
}
