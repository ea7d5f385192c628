package tracker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	trackerdto "timelevel/internal/modules/tracker/dto"
	"timelevel/internal/ui/theme"
)

// StatusMsg carries a fresh reading from the display tick.
type StatusMsg struct {
	Status trackerdto.StatusOutput
	Err    error
}

// Model renders the tracker panel. It holds no timers; the root model drives
// it with StatusMsg.
type Model struct {
	status   trackerdto.StatusOutput
	bar      progress.Model
	barColor string
	ready    bool
	err      error
	width    int
	height   int
}

func New() Model {
	return Model{bar: newBar("#457b9d")}
}

func newBar(from string) progress.Model {
	return progress.New(progress.WithGradient(from, theme.BarEnd), progress.WithoutPercentage())
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(10, min(m.width-12, 60))
	case StatusMsg:
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		m.status = msg.Status
		m.ready = true
		if msg.Status.BarColor != "" && msg.Status.BarColor != m.barColor {
			width := m.bar.Width
			m.bar = newBar(msg.Status.BarColor)
			m.bar.Width = width
			m.barColor = msg.Status.BarColor
		}
	}
	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		if m.err != nil {
			return theme.Pane.Render(theme.Hot.Render("tracker: " + m.err.Error()))
		}
		return theme.Pane.Render(theme.Muted.Render("loading…"))
	}
	s := m.status
	labels := s.Labels

	var b strings.Builder
	b.WriteString(theme.Title.Render(labels.Title) + "\n\n")
	b.WriteString(theme.Big.Render(s.TotalText) + "\n")
	b.WriteString(theme.Muted.Render(labels.Session+" "+s.SessionText) + "\n\n")

	b.WriteString(fmt.Sprintf("%s  %s %d", labels.LevelProgress, s.Badge, s.Level) + "\n")
	b.WriteString(m.bar.ViewAs(s.Progress) + fmt.Sprintf(" %3.0f%%", s.Progress*100) + "\n\n")
	b.WriteString(theme.Muted.Render(labels.LevelTime+": ") + s.ThisLevelText + "\n")
	b.WriteString(theme.Muted.Render(labels.LevelNeed+": ") + s.NextLevelText)
	if labels.Footer != "" {
		b.WriteString("\n\n" + theme.Muted.Render(labels.Footer))
	}
	if m.err != nil {
		b.WriteString("\n" + theme.Hot.Render(m.err.Error()))
	}

	pane := theme.PaneActive
	if m.width > 4 {
		pane = pane.Width(m.width - 4)
	}
	return pane.Render(b.String())
}

// Status returns the most recent reading.
func (m Model) Status() trackerdto.StatusOutput { return m.status }
