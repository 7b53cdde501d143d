// Package mini implements a lightweight, minimalist interface for interactive video downloading.
package mini

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/DowranRowshenow/youtube-downloader/icon"
	"github.com/DowranRowshenow/youtube-downloader/style"
	"github.com/DowranRowshenow/youtube-downloader/util"
)

// bind is a non-item menu action appended after the listed entries.
type bind struct {
	label string
}

func (b *bind) eq(other *bind) bool {
	return b == other
}

func (b *bind) String() string {
	return b.label
}

var (
	quit      = &bind{"quit"}
	back      = &bind{"back"}
	audioOnly = &bind{"audio only"}
	again     = &bind{"download another"}
)

// menu presents the items followed by the binds and returns whichever was
// picked: a non-nil bind, or the item with a nil bind.
func menu[T fmt.Stringer](items []T, binds ...*bind) (*bind, T, error) {
	var zero T

	options := make([]string, 0, len(items)+len(binds))
	for _, item := range items {
		options = append(options, item.String())
	}
	for _, b := range binds {
		options = append(options, style.Faint(b.label))
	}

	var idx int
	prompt := &survey.Select{
		Message:  "Pick an option",
		Options:  options,
		PageSize: 15,
	}
	if err := survey.AskOne(prompt, &idx); err != nil {
		return nil, zero, err
	}

	if idx < len(items) {
		return nil, items[idx], nil
	}
	return binds[idx-len(items)], zero, nil
}

type input struct {
	value string
}

// getInput prompts for one line of text, re-asking until the validator accepts it.
func getInput(validator func(string) bool) (*input, error) {
	prompt := &survey.Input{Message: ">"}

	var value string
	err := survey.AskOne(prompt, &value, survey.WithValidator(func(ans interface{}) error {
		s, _ := ans.(string)
		if !validator(strings.TrimSpace(s)) {
			return errors.New("invalid input")
		}
		return nil
	}))
	if err != nil {
		return nil, err
	}

	return &input{value: strings.TrimSpace(value)}, nil
}

func title(s string) {
	fmt.Println(style.Title(s))
}

func progress(msg string) (eraser func()) {
	return util.PrintErasable(fmt.Sprintf("%s %s", icon.Get(icon.Progress), msg))
}

func fail(msg string) {
	fmt.Printf("%s %s\n", icon.Get(icon.Fail), msg)
}
