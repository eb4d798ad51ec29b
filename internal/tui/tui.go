// Package tui provides a Bubble Tea terminal user interface for autoartists.
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/autoartists/internal/autoartists"
	"github.com/handiism/autoartists/internal/config"
	"github.com/handiism/autoartists/internal/library"
	"github.com/handiism/autoartists/internal/model"
	"go.uber.org/zap"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500")).
			Bold(true)
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StatePlanning
	StateSelect
	StateWriting
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   autoartists.ProgressLevel
}

// eventLog collects progress events from manager goroutines until the next
// tick drains them.
type eventLog struct {
	mu      sync.Mutex
	entries []LogEntry
}

func (l *eventLog) add(event autoartists.ProgressEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Message: event.Message, Level: event.Level})
}

func (l *eventLog) drain() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	entries := l.entries
	l.entries = nil
	return entries
}

// selection answers the manager's confirmation questions from the toggles
// made in the change list.
type selection struct {
	chosen map[*model.Change]bool
}

func (s selection) ConfirmAll(ctx context.Context, n int) (autoartists.Mode, error) {
	return autoartists.ModeSelect, nil
}

func (s selection) ConfirmItem(ctx context.Context, change *model.Change) (bool, error) {
	return s.chosen[change], nil
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	store     autoartists.Store
	logger    *zap.Logger
	events    *eventLog
	logs      []LogEntry
	err       error

	ctx    context.Context
	cancel context.CancelFunc

	manager *autoartists.Manager
	plan    *autoartists.Plan

	// Change list
	selected []bool
	cursor   int

	written int32
	total   int32

	// Options
	overwrite bool
	verbose   bool

	width  int
	height int
}

// NewModel creates a new TUI model working on store.
func NewModel(settings *config.Settings, store autoartists.Store, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	ti := textinput.New()
	ti.Placeholder = "artist:beyoncé feat (empty for the whole library)"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		store:     store,
		logger:    logger,
		events:    &eventLog{},
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
		overwrite: settings.Overwrite,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// PlanDoneMsg is sent when planning completes.
	PlanDoneMsg struct {
		Plan    *autoartists.Plan
		Manager *autoartists.Manager
		Err     error
	}

	// ApplyDoneMsg is sent when the selected changes are written.
	ApplyDoneMsg struct {
		Written int
		Err     error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		if m.state == StateSelect {
			return m.updateSelect(msg)
		}

		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StatePlanning || m.state == StateWriting {
				m.cancel()
				m.state = StateError
				m.err = autoartists.ErrCanceled
			}

		case "enter":
			if m.state == StateInput {
				m.state = StatePlanning
				return m, tea.Batch(m.startPlan(), m.spinner.Tick)
			}

		case "ctrl+o":
			if m.state == StateInput {
				m.overwrite = !m.overwrite
			}

		case "ctrl+v":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				m = m.reset()
				return m, nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case PlanDoneMsg:
		m.appendLogs(m.events.drain())
		switch {
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		case len(msg.Plan.Changes) == 0:
			m.plan = msg.Plan
			m.state = StateComplete
		default:
			m.plan = msg.Plan
			m.manager = msg.Manager
			m.selected = make([]bool, len(msg.Plan.Changes))
			for i := range m.selected {
				m.selected[i] = true
			}
			m.cursor = 0
			m.state = StateSelect
		}

	case ApplyDoneMsg:
		m.appendLogs(m.events.drain())
		if m.manager != nil {
			m.written, m.total = m.manager.GetProgress()
		}
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		if m.manager != nil && m.state == StateWriting {
			m.appendLogs(m.events.drain())
			m.written, m.total = m.manager.GetProgress()

			var percent float64
			if m.total > 0 {
				percent = float64(m.written) / float64(m.total)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// updateSelect handles keys in the change list.
func (m Model) updateSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.cancel()
		return m, tea.Quit
	case "esc":
		m.state = StateInput
		m.plan = nil
		m.manager = nil
		m.textInput.Focus()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.selected)-1 {
			m.cursor++
		}
	case " ", "x":
		m.selected[m.cursor] = !m.selected[m.cursor]
	case "a":
		for i := range m.selected {
			m.selected[i] = true
		}
	case "n":
		for i := range m.selected {
			m.selected[i] = false
		}
	case "enter":
		m.state = StateWriting
		return m, tea.Batch(m.startApply(), m.tickProgress())
	}
	return m, nil
}

func (m Model) reset() Model {
	m.state = StateInput
	m.logs = nil
	m.err = nil
	m.plan = nil
	m.manager = nil
	m.selected = nil
	m.cursor = 0
	m.written = 0
	m.total = 0
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.textInput.SetValue("")
	m.textInput.Focus()
	return m
}

func (m *Model) appendLogs(entries []LogEntry) {
	for _, entry := range entries {
		// Filter verbose messages if not in verbose mode
		if entry.Level == autoartists.LevelVerbose && !m.verbose {
			continue
		}
		m.logs = append(m.logs, entry)
	}
	// Keep only last 10 logs
	if len(m.logs) > 10 {
		m.logs = m.logs[len(m.logs)-10:]
	}
}

// Selection returns the changes currently toggled on.
func (m Model) Selection() []*model.Change {
	if m.plan == nil {
		return nil
	}
	var chosen []*model.Change
	for i, change := range m.plan.Changes {
		if m.selected[i] {
			chosen = append(chosen, change)
		}
	}
	return chosen
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("♫ autoartists"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Fill in the artists field of your library"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StatePlanning:
		b.WriteString(m.viewPlanning())
	case StateSelect:
		b.WriteString(m.viewSelect())
	case StateWriting:
		b.WriteString(m.viewWriting())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Query:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Overwrite existing artists (ctrl+o)\n", checkbox(m.overwrite)))
	b.WriteString(fmt.Sprintf("  %s Verbose output (ctrl+v)\n", checkbox(m.verbose)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Library: %s", m.settings.LibraryPath)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewPlanning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Scanning library..."))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

// visibleRows is how many changes fit on screen.
func (m Model) visibleRows() int {
	if m.height == 0 {
		return 10
	}
	return max(m.height-14, 3)
}

func (m Model) viewSelect() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render(m.plan.Summary(m.overwrite)))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("%d of %d changes selected", len(m.Selection()), len(m.plan.Changes))))
	b.WriteString("\n\n")

	rows := m.visibleRows()
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	end := min(start+rows, len(m.plan.Changes))

	for i := start; i < end; i++ {
		change := m.plan.Changes[i]
		line := fmt.Sprintf("%s %s", checkbox(m.selected[i]), change.Item)
		detail := fmt.Sprintf("      %s => %s", formatList(change.Before()), formatList(change.Artists))
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("› " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(detail))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewWriting() string {
	var b strings.Builder

	var percent float64
	if m.total > 0 {
		percent = float64(m.written) / float64(m.total)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Items: %d/%d", m.written, m.total)))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	if m.plan != nil && len(m.plan.Changes) == 0 {
		b.WriteString(boxStyle.Render(fmt.Sprintf("%s\n\n%s",
			m.plan.Summary(m.overwrite), m.plan.EmptyMessage())))
	} else {
		b.WriteString(boxStyle.Render(fmt.Sprintf(
			"✓ Done!\n\nChanged %d of %d items",
			m.written,
			m.total,
		)))
	}
	b.WriteString("\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case autoartists.LevelError:
			style = errorStyle
			prefix = "✗"
		case autoartists.LevelWarning:
			style = warningStyle
			prefix = "!"
		case autoartists.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case autoartists.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: scan • ctrl+o: overwrite • ctrl+v: verbose • esc: quit"
	case StateSelect:
		return "↑/↓: move • space: toggle • a: all • n: none • enter: write • esc: back"
	case StatePlanning, StateWriting:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new query • q: quit"
	}
	return ""
}

// formatList renders an artists list as [a, b].
func formatList(list []string) string {
	return "[" + strings.Join(list, ", ") + "]"
}

// startPlan builds a manager and computes the changes for the query.
func (m *Model) startPlan() tea.Cmd {
	query := library.ParseQuery([]string{m.textInput.Value()})
	overwrite := m.overwrite
	ctx := m.ctx
	events := m.events

	return func() tea.Msg {
		manager := autoartists.NewManager(m.settings, m.store, m.logger, events.add)
		manager.SetOverwrite(overwrite)

		plan, err := manager.Plan(ctx, query)
		return PlanDoneMsg{Plan: plan, Manager: manager, Err: err}
	}
}

// startApply writes the selected changes in background.
func (m *Model) startApply() tea.Cmd {
	manager := m.manager
	changes := m.plan.Changes
	ctx := m.ctx
	chosen := make(map[*model.Change]bool)
	for _, change := range m.Selection() {
		chosen[change] = true
	}

	return func() tea.Msg {
		if manager == nil {
			return ApplyDoneMsg{Err: fmt.Errorf("no manager")}
		}
		written, err := manager.Apply(ctx, changes, selection{chosen: chosen})
		return ApplyDoneMsg{Written: written, Err: err}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings, store autoartists.Store, logger *zap.Logger) error {
	p := tea.NewProgram(NewModel(settings, store, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
