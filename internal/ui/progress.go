// Package ui renders the interactive progress view of a format run.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Status is the state of one file in the view.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusChanged
	StatusUnchanged
	StatusCached
	StatusError
)

var statusInfo = [...]struct {
	name  string
	color lipgloss.Color
}{
	StatusQueued:    {"queued", "7"},
	StatusWorking:   {"formatting", "6"},
	StatusChanged:   {"changed", "3"},
	StatusUnchanged: {"unchanged", "2"},
	StatusCached:    {"cached", "2"},
	StatusError:     {"error", "1"},
}

func (s Status) String() string {
	if int(s) >= len(statusInfo) {
		return ""
	}
	return statusInfo[s].name
}

func (s Status) style() lipgloss.Style {
	c := lipgloss.Color("7")
	if int(s) < len(statusInfo) {
		c = statusInfo[s].color
	}
	return lipgloss.NewStyle().Foreground(c)
}

// finished reports whether the file needs no further work.
func (s Status) finished() bool { return s >= StatusChanged }

// Event moves one file to a new status. An empty File sets the header label.
type Event struct {
	File   string
	Status Status
	Label  string
}

type progressModel struct {
	title      string
	events     <-chan Event
	spinner    spinner.Model
	prog       progress.Model
	items      []fileItem
	index      map[string]int
	stageLabel string
	width      int
	rows       int // сколько файлов помещается в список
	done       bool
}

const defaultRows = 20

type fileItem struct {
	path   string
	status Status
}

type eventMsg Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders format progress.
// The view quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan Event) tea.Model {
	return newProgressModel(title, files, events)
}

func newProgressModel(title string, files []string, events <-chan Event) *progressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76 // Default width

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file, status: StatusQueued})
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
		rows:    defaultRows,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
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
		if msg.Height > 0 {
			m.rows = max(msg.Height-6, 3)
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	header := m.title
	if m.stageLabel != "" {
		header = fmt.Sprintf("%s (%s)", header, m.stageLabel)
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(header))
	b.WriteString("\n\n")

	const statusWidth = 12
	nameWidth := max(m.width-statusWidth-4, 20)
	shown, hidden := m.visible()
	for _, item := range shown {
		fmt.Fprintf(&b, "  %s %s\n",
			item.status.style().Render(fmt.Sprintf("%*s", statusWidth, item.status)),
			truncate(item.path, nameWidth))
	}
	if hidden > 0 {
		fmt.Fprintf(&b, "  %*s %d more\n", statusWidth, "...", hidden)
	}

	b.WriteString("\n")
	b.WriteString(m.tally())
	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

// visible picks the rows to list. When the files do not fit, files that
// were left unchanged are folded first, then queued ones.
func (m *progressModel) visible() ([]fileItem, int) {
	if len(m.items) <= m.rows {
		return m.items, 0
	}
	shown := make([]fileItem, 0, m.rows)
	for _, keep := range []func(Status) bool{
		func(s Status) bool { return s == StatusWorking || s == StatusChanged || s == StatusError },
		func(s Status) bool { return s == StatusQueued },
	} {
		for _, item := range m.items {
			if len(shown) == m.rows {
				break
			}
			if keep(item.status) {
				shown = append(shown, item)
			}
		}
	}
	return shown, len(m.items) - len(shown)
}

// tally renders per-status counts of finished files, e.g. "2 changed, 5 unchanged".
func (m *progressModel) tally() string {
	var counts [len(statusInfo)]int
	for _, item := range m.items {
		counts[item.status]++
	}
	var parts []string
	for s := StatusChanged; int(s) < len(counts); s++ {
		if counts[s] > 0 {
			parts = append(parts, s.style().Render(fmt.Sprintf("%d %s", counts[s], s)))
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%d files queued", len(m.items))
	}
	return strings.Join(parts, ", ")
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev Event) tea.Cmd {
	if ev.File == "" {
		if ev.Label != "" {
			m.stageLabel = ev.Label
		}
		return nil
	}
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	m.items[idx].status = ev.Status
	return m.prog.SetPercent(m.fraction())
}

// fraction is the share of finished files; files in work count half.
func (m *progressModel) fraction() float64 {
	if len(m.items) == 0 {
		return 0
	}
	total := 0.0
	for _, item := range m.items {
		switch {
		case item.status.finished():
			total += 1.0
		case item.status == StatusWorking:
			total += 0.5
		}
	}
	return total / float64(len(m.items))
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
	return runewidth.Truncate(value, width, "...")
}
