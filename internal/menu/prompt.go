package menu

import (
	"errors"
	"io"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted is returned by a Prompter when the user interrupts a prompt.
var ErrAborted = errors.New("aborted")

// Prompter asks the user one question at a time.
type Prompter interface {
	// Select returns the index of the chosen option.
	Select(message string, options []string) (int, error)
	// Input returns the typed answer, or def when the answer is blank.
	Input(message, def string) (string, error)
	Confirm(message string, def bool) (bool, error)
}

// SurveyPrompter prompts on a terminal.
type SurveyPrompter struct {
	opts []survey.AskOpt
}

// NewSurveyPrompter returns a Prompter reading from in and drawing on out.
func NewSurveyPrompter(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer) *SurveyPrompter {
	return &SurveyPrompter{opts: []survey.AskOpt{survey.WithStdio(in, out, errOut)}}
}

func (p *SurveyPrompter) Select(message string, options []string) (int, error) {
	var idx int
	q := &survey.Select{Message: message, Options: options, PageSize: 20}
	if err := survey.AskOne(q, &idx, p.opts...); err != nil {
		return 0, translate(err)
	}
	return idx, nil
}

func (p *SurveyPrompter) Input(message, def string) (string, error) {
	var answer string
	if err := survey.AskOne(&survey.Input{Message: message, Default: def}, &answer, p.opts...); err != nil {
		return "", translate(err)
	}
	if answer == "" {
		answer = def
	}
	return answer, nil
}

func (p *SurveyPrompter) Confirm(message string, def bool) (bool, error) {
	var ok bool
	if err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &ok, p.opts...); err != nil {
		return false, translate(err)
	}
	return ok, nil
}

func translate(err error) error {
	if errors.Is(err, terminal.InterruptErr) || errors.Is(err, io.EOF) {
		return ErrAborted
	}
	return err
}
