// Package tui provides a Bubble Tea terminal user interface for harmonize.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"harmonize/internal/config"
	"harmonize/internal/syncer"
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
)

// State represents the current UI state.
type State int

const (
	StateScanning State = iota
	StateSyncing
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   syncer.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state    State
	spinner  spinner.Model
	progress progress.Model
	settings *config.Settings
	logs     []LogEntry
	err      error

	ctx    context.Context
	cancel context.CancelFunc

	manager *syncer.Manager
	events  chan syncer.ProgressEvent

	// Sync progress
	scanned   int
	completed int
	failed    int

	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(settings *config.Settings, verbose bool) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:    StateScanning,
		spinner:  sp,
		progress: prog,
		settings: settings,
		logs:     make([]LogEntry, 0),
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan syncer.ProgressEvent, 64),
		verbose:  verbose,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startScan(), m.listenEvents())
}

// Message types
type (
	// ProgressMsg carries a progress event from the manager.
	ProgressMsg struct {
		Event syncer.ProgressEvent
	}

	// ScanDoneMsg is sent when the source scan completes.
	ScanDoneMsg struct {
		Count   int
		Manager *syncer.Manager
		Err     error
	}

	// SyncDoneMsg is sent when all queued tasks have run.
	SyncDoneMsg struct {
		Err error
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
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateScanning || m.state == StateSyncing {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "v":
			m.verbose = !m.verbose

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		cmds = append(cmds, m.listenEvents())
		if msg.Event.Level == syncer.LevelVerbose && !m.verbose {
			return m, tea.Batch(cmds...)
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		// Keep only last 10 logs
		if len(m.logs) > 10 {
			m.logs = m.logs[len(m.logs)-10:]
		}

	case ScanDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.scanned = msg.Count
			m.manager = msg.Manager
			m.state = StateSyncing
			cmds = append(cmds, m.startSync(), m.tickProgress())
		}

	case SyncDoneMsg:
		if m.manager != nil {
			m.scanned, m.completed, m.failed = m.manager.Progress()
		}
		if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		if m.manager != nil && m.state == StateSyncing {
			m.scanned, m.completed, m.failed = m.manager.Progress()

			var percent float64
			if m.scanned > 0 {
				percent = float64(m.completed) / float64(m.scanned)
			}
			progressCmd := m.progress.SetPercent(percent)
			cmds = append(cmds, progressCmd, m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// listenEvents waits for the next progress event from the manager.
func (m Model) listenEvents() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-m.events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: event}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("harmonize"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s → %s", m.settings.SourceDir, m.settings.TargetDir)))
	b.WriteString("\n\n")

	switch m.state {
	case StateScanning:
		b.WriteString(m.viewScanning())
	case StateSyncing:
		b.WriteString(m.viewSyncing())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewScanning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Scanning source tree..."))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewSyncing() string {
	var b strings.Builder

	var percent float64
	if m.scanned > 0 {
		percent = float64(m.completed) / float64(m.scanned)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	status := fmt.Sprintf("Files: %d/%d", m.completed, m.scanned)
	if m.failed > 0 {
		status += errorStyle.Render(fmt.Sprintf(" | Failed: %d", m.failed))
	}
	b.WriteString(infoStyle.Render(status))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	summary := fmt.Sprintf(
		"✨ Sync Complete!\n\n"+
			"Files: %d\n"+
			"Codec: %s",
		m.completed,
		m.settings.Codec,
	)
	if m.failed > 0 {
		summary += fmt.Sprintf("\nFailed: %d", m.failed)
	}
	return boxStyle.Render(summary)
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case syncer.LevelError:
			style = errorStyle
			prefix = "✗"
		case syncer.LevelWarning:
			style = warningStyle
			prefix = "!"
		case syncer.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case syncer.LevelInfo:
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
	case StateScanning, StateSyncing:
		return "esc: cancel • v: verbose"
	case StateComplete, StateError:
		return "q: quit"
	}
	return ""
}

// startScan creates the manager and enumerates the source tree.
func (m *Model) startScan() tea.Cmd {
	return func() tea.Msg {
		manager, err := syncer.NewManager(m.settings, func(event syncer.ProgressEvent) {
			select {
			case m.events <- event:
			default:
				// The UI fell behind; dropping log lines is fine.
			}
		})
		if err != nil {
			return ScanDoneMsg{Err: err}
		}

		count, err := manager.Scan(m.ctx)
		if err != nil {
			return ScanDoneMsg{Err: err}
		}

		return ScanDoneMsg{Count: count, Manager: manager}
	}
}

// startSync runs the queued tasks in the background.
func (m *Model) startSync() tea.Cmd {
	return func() tea.Msg {
		if m.manager == nil {
			return SyncDoneMsg{Err: fmt.Errorf("no manager")}
		}
		return SyncDoneMsg{Err: m.manager.Run(m.ctx)}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings, verbose bool) error {
	p := tea.NewProgram(NewModel(settings, verbose), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
