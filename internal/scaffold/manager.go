package scaffold

import (
	"context"
	"fmt"

	"github.com/artisanexperiences/create-app/internal/scaffold/steps"
	"github.com/artisanexperiences/create-app/internal/scaffold/types"
)

// StepRegistry defines the interface for step creation.
type StepRegistry interface {
	Create(name string) (types.ScaffoldStep, error)
	ListRegistered() []string
}

type ScaffoldManager struct {
	registry StepRegistry
	pipeline []string
}

// NewScaffoldManager creates a manager running steps.DefaultPipeline.
// If registry is nil, a registry with the real file system, installer and git is used.
func NewScaffoldManager(registry StepRegistry) *ScaffoldManager {
	if registry == nil {
		registry = steps.NewRegistry(steps.Dependencies{})
	}
	pipeline := make([]string, len(steps.DefaultPipeline))
	copy(pipeline, steps.DefaultPipeline)
	return &ScaffoldManager{
		registry: registry,
		pipeline: pipeline,
	}
}

// WithPipeline replaces the ordered list of step names to run.
func (m *ScaffoldManager) WithPipeline(names ...string) *ScaffoldManager {
	m.pipeline = names
	return m
}

// Pipeline returns the ordered step names.
func (m *ScaffoldManager) Pipeline() []string {
	return m.pipeline
}

// GetSteps instantiates the pipeline.
func (m *ScaffoldManager) GetSteps() ([]types.ScaffoldStep, error) {
	stepsList := make([]types.ScaffoldStep, 0, len(m.pipeline))
	for _, name := range m.pipeline {
		step, err := m.registry.Create(name)
		if err != nil {
			return nil, fmt.Errorf("creating step %q: %w", name, err)
		}
		stepsList = append(stepsList, step)
	}
	return stepsList, nil
}

// RunScaffold executes the pipeline against sc and returns per-step results.
func (m *ScaffoldManager) RunScaffold(ctx context.Context, sc *types.ScaffoldContext, opts types.StepOptions) ([]ExecutionResult, error) {
	stepsList, err := m.GetSteps()
	if err != nil {
		return nil, fmt.Errorf("getting scaffold steps: %w", err)
	}

	executor := NewStepExecutor(stepsList, sc, opts)
	err = executor.Execute(ctx)
	return executor.Results(), err
}
