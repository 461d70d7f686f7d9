package steps

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/artisanexperiences/create-app/internal/fs"
	"github.com/artisanexperiences/create-app/internal/scaffold/types"
	"github.com/artisanexperiences/create-app/internal/template"
)

// TemplateCopyStep copies the template tree into the project directory.
type TemplateCopyStep struct {
	fs fs.FS
}

func NewTemplateCopyStep(filesystem fs.FS) *TemplateCopyStep {
	if filesystem == nil {
		filesystem = fs.Default
	}
	return &TemplateCopyStep{fs: filesystem}
}

func (s *TemplateCopyStep) Name() string {
	return TemplateCopy
}

func (s *TemplateCopyStep) Condition(sc *types.ScaffoldContext, opts types.StepOptions) bool {
	return sc.Template != nil
}

func (s *TemplateCopyStep) Run(ctx context.Context, sc *types.ScaffoldContext, opts types.StepOptions) error {
	readme := filepath.Join(sc.ProjectPath, "README.md")
	if fs.Exists(s.fs, readme) {
		if err := s.fs.Rename(readme, filepath.Join(sc.ProjectPath, "README.old.md")); err != nil {
			return fmt.Errorf("moving existing README.md: %w", err)
		}
		if opts.Logger != nil {
			opts.Logger.Info("renamed existing README.md to README.old.md")
		}
	}

	gitignore := filepath.Join(sc.ProjectPath, ".gitignore")
	var appendGitignore []byte
	existingGitignore := fs.Exists(s.fs, gitignore)

	data := sc.TemplateData()
	written, err := fs.CopyTree(s.fs, sc.Template.Files, sc.ProjectPath, func(name string, content []byte) (string, []byte, error) {
		out, render := template.OutputName(name)
		if render {
			rendered, err := template.Render(name, content, data)
			if err != nil {
				return "", nil, err
			}
			content = rendered
		}
		if out == ".gitignore" && existingGitignore {
			appendGitignore = content
			return "", nil, nil
		}
		return out, content, nil
	})
	if err != nil {
		return fmt.Errorf("copying template %s: %w", sc.Template.Name, err)
	}

	if appendGitignore != nil {
		current, err := s.fs.ReadFile(gitignore)
		if err != nil {
			return fmt.Errorf("reading .gitignore: %w", err)
		}
		if len(current) > 0 && current[len(current)-1] != '\n' {
			current = append(current, '\n')
		}
		current = append(current, '\n')
		current = append(current, appendGitignore...)
		if err := s.fs.WriteFile(gitignore, current, 0644); err != nil {
			return fmt.Errorf("appending to .gitignore: %w", err)
		}
	}

	if opts.Logger != nil {
		opts.Logger.Debug("copied template", "template", sc.Template.Name, "files", len(written))
	}
	return nil
}
