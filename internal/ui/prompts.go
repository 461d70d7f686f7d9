package ui

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// Choice is one option of a select prompt.
type Choice struct {
	Label string
	Value string
}

// Select asks the user to pick one of choices. The first choice is preselected
// unless current matches another value.
func Select(title, description string, choices []Choice, current string) (string, error) {
	options := make([]huh.Option[string], len(choices))
	for i, c := range choices {
		options[i] = huh.NewOption(c.Label, c.Value)
	}

	selected := current
	if selected == "" && len(choices) > 0 {
		selected = choices[0].Value
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Description(description).
				Options(options...).
				Value(&selected),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return "", err
	}

	return selected, nil
}

// IsAbort reports whether err came from the user cancelling a prompt.
func IsAbort(err error) bool {
	return errors.Is(err, huh.ErrUserAborted)
}
