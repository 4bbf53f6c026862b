package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/printsweep/printsweep/internal/types"
)

// Run shows the picker, runs process for the chosen categories and keeps
// the results on screen until the user quits. Quitting mid-run cancels the
// batch and waits for it, so the files already written are still reported.
// It returns the last run's results, nil if the user quit before running.
func Run(target string, defaults []types.Category, dryRun bool, process ProcessFunc) ([]types.Category, types.BatchResult, error) {
	prefs := LoadPrefs()
	if len(defaults) == 0 {
		defaults = prefs.CategoryList()
	}
	m := NewModel(target, defaults, dryRun, process)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return nil, nil, fmt.Errorf("error running TUI: %w", err)
	}
	fm, ok := final.(Model)
	if !ok || fm.Results() == nil {
		return nil, nil, nil
	}
	names := make([]string, 0, len(fm.Chosen()))
	for _, c := range fm.Chosen() {
		names = append(names, string(c))
	}
	_ = SavePrefs(Prefs{Categories: names})
	return fm.Chosen(), fm.Results(), nil
}
