package main

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"provable/internal/config"
	"provable/internal/driver"
	"provable/internal/ui"
)

// errInterrupted: the user quit the progress UI before the scan finished.
var errInterrupted = fmt.Errorf("scan interrupted: %w", context.Canceled)

type checkOutcome struct {
	result *driver.Result
	err    error
}

type scanFunc func(ctx context.Context, sink driver.ProgressSink) (*driver.Result, error)

// showFunc renders events until the channel closes or the user quits.
type showFunc func(events <-chan driver.Event) (interrupted bool, err error)

func runCheckWithUI(ctx context.Context, out io.Writer, title string, cfg config.Config, files []string, opts driver.Options) (*driver.Result, error) {
	scan := func(ctx context.Context, sink driver.ProgressSink) (*driver.Result, error) {
		optsCopy := opts
		optsCopy.Progress = sink
		return driver.Check(ctx, cfg, files, optsCopy)
	}
	show := func(events <-chan driver.Event) (bool, error) {
		model := ui.NewProgressModel(title, files, events)
		program := tea.NewProgram(model, tea.WithOutput(out))
		final, err := program.Run()
		return ui.Interrupted(final), err
	}
	return superviseScan(ctx, scan, show)
}

// superviseScan runs scan in the background while show renders its events.
// Leaving the UI early cancels the scan.
func superviseScan(ctx context.Context, scan scanFunc, show showFunc) (*driver.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)
	go func() {
		res, err := scan(ctx, driver.ChannelSink{Ch: events})
		outcomeCh <- checkOutcome{result: res, err: err}
		close(events)
	}()

	interrupted, uiErr := show(events)
	if interrupted || uiErr != nil {
		cancel()
	}
	// модель могла выйти раньше: не блокируем отправителя
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	switch {
	case uiErr != nil:
		return nil, uiErr
	case interrupted:
		return nil, errInterrupted
	}
	return outcome.result, outcome.err
}
