package cli

import (
	"errors"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"yogaday/local-app/internal/session"
	"yogaday/local-app/internal/ui"
)

// SurveyConfirmer asks yes/no questions on the terminal
type SurveyConfirmer struct{}

// NewConfirmer returns a terminal confirmer, or nil when stdin is not a
// terminal. Without a confirmer destructive commands need --yes.
func NewConfirmer() session.Confirmer {
	if !ui.IsTerminal(os.Stdin) {
		return nil
	}
	return SurveyConfirmer{}
}

// Confirm asks the question, defaulting to no. An interrupt counts as no.
func (SurveyConfirmer) Confirm(prompt string) (bool, error) {
	ok := false
	err := survey.AskOne(&survey.Confirm{Message: prompt, Default: false}, &ok)
	if errors.Is(err, terminal.InterruptErr) {
		return false, nil
	}
	return ok, err
}
