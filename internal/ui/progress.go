// Package ui renders a live view of a replay.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"vkdebug/internal/messenger"
	"vkdebug/internal/replay"
)

// recentLimit is how many delivered messages stay on screen.
const recentLimit = 12

type replayModel struct {
	title   string
	total   int
	events  <-chan replay.Event
	spinner spinner.Model
	prog    progress.Model
	recent  []line
	counts  map[replay.Status]int
	width   int
	done    bool
}

type line struct {
	severity messenger.Severity
	text     string
}

type eventMsg replay.Event
type doneMsg struct{}

// NewReplayModel returns a Bubble Tea model that renders replay progress. It quits
// once events is closed.
func NewReplayModel(title string, total int, events <-chan replay.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	return &replayModel{
		title:   title,
		total:   total,
		events:  events,
		spinner: sp,
		prog:    prog,
		counts:  make(map[replay.Status]int, 3),
		width:   80,
	}
}

func (m *replayModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *replayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(replay.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *replayModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (%d delivered, %d filtered", m.title,
		m.counts[replay.StatusDelivered], m.counts[replay.StatusFiltered])
	if n := m.counts[replay.StatusFailed]; n > 0 {
		header += fmt.Sprintf(", %d failed", n)
	}
	header += ")"
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	const sevWidth = 12
	textWidth := max(m.width-sevWidth-4, 20)
	for _, l := range m.recent {
		sev := styleSeverity(l.severity).Render(fmt.Sprintf("%-12s", severityLabel(l.severity)))
		b.WriteString("  ")
		b.WriteString(sev)
		b.WriteString(" ")
		b.WriteString(truncate(l.text, textWidth))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *replayModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *replayModel) applyEvent(ev replay.Event) tea.Cmd {
	m.counts[ev.Status]++
	switch {
	case ev.Status == replay.StatusDelivered && ev.Record != nil:
		m.push(line{severity: ev.Record.Severity, text: firstLine(ev.Record.Description)})
	case ev.Status == replay.StatusFailed && ev.Err != nil:
		m.push(line{text: "failed: " + ev.Err.Error()})
	}
	if m.total <= 0 {
		return nil
	}
	seen := m.counts[replay.StatusDelivered] + m.counts[replay.StatusFiltered] + m.counts[replay.StatusFailed]
	return m.prog.SetPercent(min(float64(seen)/float64(m.total), 1))
}

func (m *replayModel) push(l line) {
	m.recent = append(m.recent, l)
	if len(m.recent) > recentLimit {
		m.recent = m.recent[len(m.recent)-recentLimit:]
	}
}

func severityLabel(s messenger.Severity) string {
	switch {
	case s == messenger.SeverityNone:
		return "-"
	case s.Error():
		return "error"
	case s.Warning():
		return "warning"
	case s.Information():
		return "information"
	default:
		return "verbose"
	}
}

func styleSeverity(s messenger.Severity) lipgloss.Style {
	switch {
	case s == messenger.SeverityNone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	case s.Error():
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case s.Warning():
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	case s.Information():
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
