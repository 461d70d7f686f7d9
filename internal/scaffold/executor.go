package scaffold

import (
	"context"
	"fmt"

	"github.com/artisanexperiences/create-app/internal/scaffold/types"
)

type ExecutionResult struct {
	Step    types.ScaffoldStep
	Error   error
	Skipped bool
}

// StepExecutor runs steps one after another, stopping at the first failure.
type StepExecutor struct {
	steps   []types.ScaffoldStep
	sc      *types.ScaffoldContext
	opts    types.StepOptions
	results []ExecutionResult
}

func NewStepExecutor(steps []types.ScaffoldStep, sc *types.ScaffoldContext, opts types.StepOptions) *StepExecutor {
	return &StepExecutor{
		steps: steps,
		sc:    sc,
		opts:  opts,
	}
}

func (e *StepExecutor) Execute(ctx context.Context) error {
	e.results = make([]ExecutionResult, 0, len(e.steps))

	for _, step := range e.steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.executeStep(ctx, step); err != nil {
			return err
		}
	}

	return nil
}

func (e *StepExecutor) executeStep(ctx context.Context, step types.ScaffoldStep) error {
	if !step.Condition(e.sc, e.opts) {
		if e.opts.Logger != nil {
			e.opts.Logger.Debug("skipping step (condition not met)", "step", step.Name())
		}
		e.results = append(e.results, ExecutionResult{Step: step, Skipped: true})
		return nil
	}

	if e.opts.Logger != nil {
		e.opts.Logger.Debug("executing step", "step", step.Name())
	}

	if err := step.Run(ctx, e.sc, e.opts); err != nil {
		e.results = append(e.results, ExecutionResult{Step: step, Error: err})
		return fmt.Errorf("step %s failed: %w", step.Name(), err)
	}

	e.results = append(e.results, ExecutionResult{Step: step})
	return nil
}

func (e *StepExecutor) Results() []ExecutionResult {
	return e.results
}
