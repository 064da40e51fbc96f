// Package wizard collects the project feature configuration interactively.
//
// All prompting goes through [PromptDriver] so the question flow can be
// tested with a scripted fake; the production driver wraps survey/v2.
//
// Key types:
//   - [PromptDriver] abstracts the terminal prompts
//   - [Run] walks the question flow and returns a validated configuration
package wizard

import (
	"github.com/AlecAivazis/survey/v2"
)

// PromptDriver abstracts the interactive prompts used by the wizard.
type PromptDriver interface {
	// Input asks for a free-form string with a default.
	Input(message, defaultValue string) (string, error)

	// Select asks the user to pick one option and returns its index.
	Select(message string, options []string, defaultIndex int) (int, error)

	// Confirm asks a yes/no question.
	Confirm(message string, defaultValue bool) (bool, error)
}

// surveyDriver is the production [PromptDriver] backed by survey/v2.
type surveyDriver struct{}

// NewSurveyDriver creates the terminal-backed prompt driver.
func NewSurveyDriver() PromptDriver {
	return &surveyDriver{}
}

func (d *surveyDriver) Input(message, defaultValue string) (string, error) {
	var out string
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", err
	}
	return out, nil
}

func (d *surveyDriver) Select(message string, options []string, defaultIndex int) (int, error) {
	var out string
	prompt := &survey.Select{
		Message: message,
		Options: options,
	}
	if defaultIndex >= 0 && defaultIndex < len(options) {
		prompt.Default = options[defaultIndex]
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return 0, err
	}
	for i, opt := range options {
		if opt == out {
			return i, nil
		}
	}
	return 0, nil
}

func (d *surveyDriver) Confirm(message string, defaultValue bool) (bool, error) {
	out := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return false, err
	}
	return out, nil
}
