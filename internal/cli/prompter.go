package cli

import (
	"github.com/artisanexperiences/create-app/internal/pkgmanager"
	"github.com/artisanexperiences/create-app/internal/template"
	"github.com/artisanexperiences/create-app/internal/ui"
)

// prompter asks through huh forms.
type prompter struct{}

func (prompter) SelectTemplate(templates []*template.Template, current string) (string, error) {
	choices := make([]ui.Choice, len(templates))
	for i, t := range templates {
		choices[i] = ui.Choice{Label: t.Name + " (" + t.Description + ")", Value: t.Name}
	}
	return ui.Select("Template", "Starter files for the new project", choices, current)
}

func (prompter) SelectPackageManager(current pkgmanager.Manager) (pkgmanager.Manager, error) {
	choices := []ui.Choice{
		{Label: "yarn", Value: pkgmanager.Yarn.String()},
		{Label: "npm", Value: pkgmanager.Npm.String()},
	}
	selected, err := ui.Select("Package manager", "Used to install dependencies", choices, current.String())
	if err != nil {
		return "", err
	}
	return pkgmanager.Parse(selected)
}
