package main

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"vkdebug/internal/replay"
	"vkdebug/internal/ui"
)

type replayOutcome struct {
	result replay.Result
	err    error
}

func runReplayWithUI(ctx context.Context, path string, req replay.Request) (replay.Result, error) {
	events := make(chan replay.Event, 256)
	outcomeCh := make(chan replayOutcome, 1)

	go func() {
		reqCopy := req
		reqCopy.Progress = replay.ChannelSink{Ch: events}
		res, err := replay.Run(ctx, reqCopy)
		close(events)
		outcomeCh <- replayOutcome{result: res, err: err}
	}()

	model := ui.NewReplayModel("replay "+filepath.Base(path), len(req.Records), events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// the view may quit early (ctrl+c); keep the replay from blocking on it
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}

func shouldUseTUI(mode string) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stdout)
	}
}
