package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/handiism/autoartists/internal/autoartists"
	"github.com/handiism/autoartists/internal/model"
)

var modeOptions = []string{"yes", "no", "select"}

// surveyConfirmer asks on the terminal.
type surveyConfirmer struct{}

func (surveyConfirmer) ConfirmAll(ctx context.Context, n int) (autoartists.Mode, error) {
	if err := ctx.Err(); err != nil {
		return autoartists.ModeNo, err
	}

	var selectedIndex int
	prompt := &survey.Select{
		Message: fmt.Sprintf("Changing %d items. Confirm?", n),
		Options: modeOptions,
		Default: "no",
	}
	if err := survey.AskOne(prompt, &selectedIndex); err != nil {
		return autoartists.ModeNo, promptError(err)
	}
	return autoartists.ParseMode(modeOptions[selectedIndex]), nil
}

func (surveyConfirmer) ConfirmItem(ctx context.Context, change *model.Change) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	fmt.Println("---")
	fmt.Printf("%s: %s\n", change.Item, formatList(change.Artists))

	ok := false
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Changing from %s => new: %s. Confirm?", formatList(change.Before()), formatList(change.Artists)),
	}
	if err := survey.AskOne(prompt, &ok); err != nil {
		return false, promptError(err)
	}
	return ok, nil
}

// promptError turns Ctrl-C inside a prompt into a context cancellation.
func promptError(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return context.Canceled
	}
	return err
}

// yesConfirmer accepts everything, for --yes.
type yesConfirmer struct{}

func (yesConfirmer) ConfirmAll(ctx context.Context, n int) (autoartists.Mode, error) {
	return autoartists.ModeYes, nil
}

func (yesConfirmer) ConfirmItem(ctx context.Context, change *model.Change) (bool, error) {
	return true, nil
}
