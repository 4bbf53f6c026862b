package tui

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// start launches the batch in the background. Progress and completion
// arrive as messages read one at a time from m.events.
func (m *Model) start() tea.Cmd {
	cats := m.selectedCategories()
	if len(cats) == 0 {
		m.status = "Select at least one category"
		return nil
	}
	if m.process == nil {
		m.status = "Nothing to run"
		return nil
	}
	m.phase = phaseRun
	m.chosen = cats
	m.status = ""
	m.percent, m.index, m.total, m.current = 0, 0, 0, ""

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	events := make(chan tea.Msg, 16)
	m.events = events
	process := m.process

	go func() {
		defer close(events)
		send := func(msg tea.Msg) {
			select {
			case events <- msg:
			case <-ctx.Done():
			}
		}
		res := process(ctx, cats, func(i, n int, name string) {
			send(progressMsg{index: i, total: n, name: name})
		})
		// delivered even after cancel so partial results are not lost
		events <- doneMsg{results: res}
	}()
	return tea.Batch(m.spinner.Tick, waitFor(events))
}

func waitFor(ch <-chan tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func copySummary(text string) tea.Cmd {
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			return statusMsg(fmt.Sprintf("Clipboard error: %v", err))
		}
		return statusMsg("Copied summary to clipboard")
	}
}
