// Package validation checks that a project name can be published as an npm package.
// Rules are composable; the Validator collects every failure using errors.Join.
package validation

import (
	"errors"
	"fmt"
)

// Rule defines a single validation rule that can be applied to a package name.
type Rule interface {
	// Validate returns an error describing the violation, or nil.
	Validate(name string) error
}

// RuleFunc adapts a function to the Rule interface.
type RuleFunc func(name string) error

func (f RuleFunc) Validate(name string) error {
	return f(name)
}

// Validator aggregates multiple rules and validates them together.
type Validator struct {
	Rules []Rule
}

// NewValidator creates an empty Validator.
func NewValidator() *Validator {
	return &Validator{Rules: make([]Rule, 0)}
}

// AddRule adds a validation rule to the validator.
func (v *Validator) AddRule(rule Rule) *Validator {
	v.Rules = append(v.Rules, rule)
	return v
}

// Validate runs all rules and joins every failure.
func (v *Validator) Validate(name string) error {
	var errs []error
	for _, rule := range v.Rules {
		if err := rule.Validate(name); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Violations flattens a joined error into its individual messages.
func Violations(err error) []string {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, Violations(e)...)
		}
		return out
	}
	return []string{err.Error()}
}

// NewPackageNameValidator returns the rules a brand new npm package name must satisfy.
func NewPackageNameValidator() *Validator {
	v := NewValidator()
	v.AddRule(NotEmpty{}).
		AddRule(NoLeadingChar{Char: '.', Description: "a period"}).
		AddRule(NoLeadingChar{Char: '_', Description: "an underscore"}).
		AddRule(NoSurroundingSpaces{}).
		AddRule(NotBlacklisted{Names: blacklistedNames}).
		AddRule(NotCoreModule{}).
		AddRule(MaxLength{Max: MaxNameLength}).
		AddRule(Lowercase{}).
		AddRule(NoSpecialCharacters{}).
		AddRule(URLFriendly{})
	return v
}

// ValidatePackageName checks name against NewPackageNameValidator.
func ValidatePackageName(name string) error {
	return NewPackageNameValidator().Validate(name)
}

// DependencyConflictError is returned when the project would be named after one
// of the dependencies the scaffolder installs.
type DependencyConflictError struct {
	Name         string
	Dependencies []string
}

func (e *DependencyConflictError) Error() string {
	return fmt.Sprintf("a dependency with the same name %q exists", e.Name)
}

// CheckDependencyConflict fails when name equals one of dependencies.
func CheckDependencyConflict(name string, dependencies []string) error {
	for _, dep := range dependencies {
		if dep == name {
			return &DependencyConflictError{Name: name, Dependencies: dependencies}
		}
	}
	return nil
}
