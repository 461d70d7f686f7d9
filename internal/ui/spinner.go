package ui

import (
	"context"

	"github.com/charmbracelet/huh/spinner"
)

// RunWithSpinner shows a spinner titled title until action returns.
func RunWithSpinner(ctx context.Context, title string, action func() error) error {
	var actionErr error
	err := spinner.New().
		Title(title).
		Context(ctx).
		Action(func() {
			actionErr = action()
		}).
		Run()
	if err != nil {
		return err
	}
	return actionErr
}
