package tui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/printsweep/printsweep/internal/detectors"
	"github.com/printsweep/printsweep/internal/engine"
	"github.com/printsweep/printsweep/internal/report"
	"github.com/printsweep/printsweep/internal/types"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	methodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))

	headlineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	paneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
)

// ProcessFunc runs the batch for the chosen categories, reporting progress.
type ProcessFunc func(ctx context.Context, cats []types.Category, progress engine.ProgressFunc) types.BatchResult

type phase int

const (
	phasePick phase = iota
	phaseRun
	phaseDone
)

type choice struct {
	sig      detectors.Signature
	selected bool
}

type (
	progressMsg struct {
		index, total int
		name         string
	}
	doneMsg struct {
		results types.BatchResult
	}
	statusMsg string
)

// Model is the interactive picker, progress and results screen.
type Model struct {
	phase   phase
	choices []choice
	cursor  int
	target  string
	dryRun  bool
	process ProcessFunc

	spinner  spinner.Model
	progress progress.Model
	viewport viewport.Model
	percent  float64
	index    int
	total    int
	current  string
	events   chan tea.Msg
	cancel   context.CancelFunc

	chosen      []types.Category
	results     types.BatchResult
	showPreview bool
	status      string

	width      int
	height     int
	ready      bool
	cancelling bool
	quitting   bool
}

// NewModel builds the picker with defaults pre-selected.
func NewModel(target string, defaults []types.Category, dryRun bool, process ProcessFunc) Model {
	picked := map[types.Category]bool{}
	for _, c := range defaults {
		picked[c] = true
	}
	var choices []choice
	for _, sig := range detectors.Signatures() {
		choices = append(choices, choice{sig: sig, selected: picked[sig.Category]})
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		phase:    phasePick,
		choices:  choices,
		target:   target,
		dryRun:   dryRun,
		process:  process,
		spinner:  sp,
		progress: progress.New(progress.WithDefaultGradient()),
		viewport: viewport.New(80, 20),
	}
}

func (m Model) Init() tea.Cmd { return nil }

// Chosen returns the categories the run used, in display order.
func (m Model) Chosen() []types.Category { return m.chosen }

// Results returns the batch outcome once the run has finished.
func (m Model) Results() types.BatchResult { return m.results }

func (m Model) selectedCategories() []types.Category {
	var out []types.Category
	for _, c := range m.choices {
		if c.selected {
			out = append(out, c.sig.Category)
		}
	}
	return out
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.progress.Width = max(10, msg.Width-8)
		m.viewport.Width = max(20, msg.Width-2)
		m.viewport.Height = max(5, msg.Height-6)
		m.refreshViewport()
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case spinner.TickMsg:
		if m.phase != phaseRun {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progressMsg:
		m.index, m.total, m.current = msg.index, msg.total, msg.name
		if msg.total > 0 {
			m.percent = float64(msg.index-1) / float64(msg.total)
		}
		return m, waitFor(m.events)

	case doneMsg:
		m.phase = phaseDone
		m.results = msg.results
		m.percent = 1
		m.cancel = nil
		m.status = ""
		if m.cancelling {
			m.quitting = true
			return m, tea.Quit
		}
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		switch m.phase {
		case phasePick:
			return m.updatePick(msg)
		case phaseRun:
			if s := msg.String(); s == "ctrl+c" || s == "q" || s == "esc" {
				// a second press stops waiting for the batch to wind down
				if m.cancelling {
					m.quitting = true
					return m, tea.Quit
				}
				if m.cancel != nil {
					m.cancel()
				}
				m.cancelling = true
				m.status = "Cancelling after the current file..."
			}
			return m, nil
		case phaseDone:
			return m.updateDone(msg)
		}
	}
	return m, nil
}

func (m Model) updatePick(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	case " ", "x":
		m.choices[m.cursor].selected = !m.choices[m.cursor].selected
		m.status = ""
	case "a":
		all := true
		for _, c := range m.choices {
			all = all && c.selected
		}
		for i := range m.choices {
			m.choices[i].selected = !all
		}
	case "enter":
		cmd := m.start()
		return m, cmd
	}
	return m, nil
}

func (m Model) updateDone(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "c":
		return m, copySummary(m.summaryText())
	case "p":
		m.showPreview = !m.showPreview
		m.refreshViewport()
		return m, nil
	case "r":
		m.phase = phasePick
		m.results = nil
		m.percent = 0
		m.status = ""
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) summaryText() string {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, report.Headline(m.results))
	fmt.Fprintln(&buf)
	report.PrintText(&buf, m.results, report.PrintOptions{NoColor: true, DryRun: m.dryRun})
	return buf.String()
}

func (m *Model) refreshViewport() {
	if m.phase != phaseDone {
		return
	}
	var buf bytes.Buffer
	report.PrintText(&buf, m.results, report.PrintOptions{DryRun: m.dryRun})
	if m.showPreview {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "=== Removed lines ===")
		report.PrintPreview(&buf, m.results, report.PrintOptions{})
	}
	m.viewport.SetContent(buf.String())
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("printsweep") + " " + methodStyle.Render(m.target))
	b.WriteString("\n\n")

	switch m.phase {
	case phasePick:
		b.WriteString("Select categories to remove:\n\n")
		for i, c := range m.choices {
			cursor := "  "
			if i == m.cursor {
				cursor = cursorStyle.Render("> ")
			}
			box := "[ ]"
			if c.selected {
				box = "[x]"
			}
			fmt.Fprintf(&b, "%s%s %-6s %s\n", cursor, box, c.sig.Category,
				methodStyle.Render(detectors.DefaultNamespace+"."+strings.Join(c.sig.Methods, ", ")))
		}
		b.WriteString("\n" + help("space", "toggle", "a", "all", "enter", "run", "q", "quit"))

	case phaseRun:
		fmt.Fprintf(&b, "%s Processing %s (%d/%d)\n\n", m.spinner.View(), m.current, m.index, m.total)
		b.WriteString(m.progress.ViewAs(m.percent))
		b.WriteString("\n\n" + help("q", "cancel"))

	case phaseDone:
		b.WriteString(headlineStyle.Render(report.Headline(m.results)) + "\n")
		b.WriteString(paneStyle.Render(m.viewport.View()))
		b.WriteString("\n" + help("↑/↓", "scroll", "p", "preview", "c", "copy", "r", "again", "q", "quit"))
	}

	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(" "+m.status+" "))
	}
	return b.String()
}

func help(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, keyStyle.Render(pairs[i])+" "+pairs[i+1])
	}
	return strings.Join(parts, "  ")
}
