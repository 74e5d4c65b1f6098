package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"swiftfmt/internal/driver"
	"swiftfmt/internal/source"
	"swiftfmt/internal/ui"
)

type formatOutcome struct {
	fileSet *source.FileSet
	results []driver.FormatResult
	err     error
}

// runFormatWithUI formats paths while the progress view shows files.
func runFormatWithUI(ctx context.Context, title string, files, paths []string, opts driver.FormatOptions) (*source.FileSet, []driver.FormatResult, error) {
	events := make(chan ui.Event, 256)
	outcomeCh := make(chan formatOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.OnResult = func(res driver.FormatResult) {
			events <- ui.Event{File: res.Path, Status: eventStatus(res)}
		}
		events <- ui.Event{Label: "formatting"}
		fileSet, results, err := driver.FormatPaths(ctx, paths, optsCopy)
		outcomeCh <- formatOutcome{fileSet: fileSet, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}

func eventStatus(res driver.FormatResult) ui.Status {
	switch {
	case res.Err != nil:
		return ui.StatusError
	case res.Cached:
		return ui.StatusCached
	case res.Changed:
		return ui.StatusChanged
	default:
		return ui.StatusUnchanged
	}
}
