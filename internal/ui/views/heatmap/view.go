package heatmap

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	trackerdto "timelevel/internal/modules/tracker/dto"
	"timelevel/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type HeatmapPort interface {
	Heatmap(ctx context.Context, days int) (trackerdto.HeatmapOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Out trackerdto.HeatmapOutput
	Err error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    HeatmapPort
	days    int
	out     trackerdto.HeatmapOutput
	err     error
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port HeatmapPort, days int) Model {
	if days <= 0 {
		days = 365
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Green)
	return Model{port: port, days: days, spinner: sp}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload fetches the grid again, including the unsaved part of the session.
func (m *Model) Reload() tea.Cmd {
	if m.port == nil {
		return nil
	}
	m.loading = true
	port, days := m.port, m.days
	return func() tea.Msg {
		out, err := port.Heatmap(context.Background(), days)
		return LoadedMsg{Out: out, Err: err}
	}
}

// SetDays changes the window and reloads.
func (m *Model) SetDays(days int) tea.Cmd {
	m.days = days
	return m.Reload()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.out = msg.Out
		}
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "r" {
			reload := m.Reload()
			return m, tea.Batch(reload, m.spinner.Tick)
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	header := theme.Title.Render(m.out.Title)
	if m.loading {
		header += " " + m.spinner.View()
	}
	b.WriteString(header + "\n\n")
	if m.err != nil {
		b.WriteString(theme.Hot.Render("heatmap: "+m.err.Error()) + "\n")
	}
	b.WriteString(m.grid())
	b.WriteString("\n" + m.legend())
	return theme.Pane.Render(b.String())
}

// grid lays cells out GitHub style: one column per week, one row per weekday.
// Columns that do not fit the pane are dropped from the oldest end.
func (m Model) grid() string {
	cells := m.out.Cells
	if len(cells) == 0 {
		return theme.Muted.Render("no data")
	}
	offset := cells[0].Weekday
	weeks := (offset + len(cells) + 6) / 7
	if m.width > 0 {
		fit := (m.width - 12) / 2
		if fit > 0 && weeks > fit {
			skip := weeks - fit
			weeks = fit
			drop := skip*7 - offset
			if drop > 0 && drop < len(cells) {
				cells = cells[drop:]
				offset = 0
			}
		}
	}
	var rows [7][]string
	for row := 0; row < 7; row++ {
		rows[row] = make([]string, weeks)
		for col := range rows[row] {
			rows[row][col] = "  "
		}
	}
	for i, c := range cells {
		slot := offset + i
		col := slot / 7
		if col >= weeks {
			break
		}
		rows[slot%7][col] = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("■") + " "
	}
	var b strings.Builder
	for row := 0; row < 7; row++ {
		label := ""
		if row%2 == 1 {
			label = m.out.Weekdays[row]
		}
		b.WriteString(theme.Muted.Render(fmt.Sprintf("%-4s", label)))
		b.WriteString(strings.Join(rows[row], ""))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) legend() string {
	var total int64
	for _, c := range m.out.Cells {
		total += c.Minutes
	}
	maxMinutes := (m.out.MaxMs + 30_000) / 60_000
	return theme.Muted.Render(fmt.Sprintf("%d %s · max %d %s · %d days", total, m.out.MinUnit, maxMinutes, m.out.MinUnit, len(m.out.Cells)))
}
