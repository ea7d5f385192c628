package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	settingsdto "timelevel/internal/modules/settings/dto"
	trackerdto "timelevel/internal/modules/tracker/dto"
	"timelevel/internal/ui/components"
	"timelevel/internal/ui/theme"
	heatmapview "timelevel/internal/ui/views/heatmap"
	trackerview "timelevel/internal/ui/views/tracker"
)

const displayInterval = time.Second

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.

type trackerPort interface {
	Start(ctx context.Context) (trackerdto.StatusOutput, error)
	Tick(ctx context.Context) (trackerdto.StatusOutput, error)
	Checkpoint(ctx context.Context) error
	SaveInterval(ctx context.Context) time.Duration
	Heatmap(ctx context.Context, days int) (trackerdto.HeatmapOutput, error)
}

type settingsPort interface {
	Set(ctx context.Context, key, value string) (settingsdto.SettingsOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabTracker tabID = iota
	tabHeatmap
	tabCount
)

var tabLabels = [tabCount]string{"Tracker", "Heatmap"}

// ─── async messages ───────────────────────────────────────────────────────────

type startedMsg struct {
	status   trackerdto.StatusOutput
	interval time.Duration
	err      error
}

type displayTickMsg struct{}

type tickedMsg struct {
	status   trackerdto.StatusOutput
	interval time.Duration
	err      error
}

// persistTickMsg carries the generation of the timer that produced it, so a
// re-armed timer silently retires the previous one.
type persistTickMsg struct{ gen int }

type checkpointDoneMsg struct {
	err    error
	manual bool
}

type celebrationMsg struct {
	celebration trackerdto.Celebration
	ok          bool
}

type settingChangedMsg struct {
	key string
	out settingsdto.SettingsOutput
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab        key.Binding
	Help       key.Binding
	Palette    key.Binding
	Quit       key.Binding
	Checkpoint key.Binding
	Reload     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:    key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "save and quit")),
		Checkpoint: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "save now")),
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload heatmap")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Checkpoint, k.Reload},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns both periodic timers: the
// display tick evaluates the tracker every second and the persistence tick
// checkpoints on the configured interval. The final checkpoint runs in the
// host after the program exits.
type Model struct {
	tracker      trackerPort
	settings     settingsPort
	celebrations <-chan trackerdto.Celebration

	trackerView trackerview.Model
	heatView    heatmapview.Model
	confetti    components.Confetti

	activeTab  tabID
	keys       keyMap
	help       help.Model
	showHelp   bool
	palette    components.Palette
	interval   time.Duration
	persistGen int
	started    bool
	status     string
	width      int
	height     int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(tracker trackerPort, settings settingsPort, celebrations <-chan trackerdto.Celebration) Model {
	return Model{
		tracker:      tracker,
		settings:     settings,
		celebrations: celebrations,
		trackerView:  trackerview.New(),
		heatView:     heatmapview.New(heatmapPortBridge{p: tracker}, 365),
		confetti:     components.NewConfetti(),
		activeTab:    tabTracker,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "starting",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.startCmd(), m.waitCelebrationCmd())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Timer and background messages must be handled even while the palette
	// is open, otherwise the clock would stall.
	switch msg := msg.(type) {
	case startedMsg:
		if msg.err != nil {
			m.status = "start failed: " + msg.err.Error()
			return m, nil
		}
		m.started = true
		m.status = "tracking"
		m.trackerView, _ = m.trackerView.Update(trackerview.StatusMsg{Status: msg.status})
		m.interval = msg.interval
		persist := m.armPersist()
		heat := m.heatView.Reload()
		return m, tea.Batch(m.displayTickCmd(), persist, heat)

	case displayTickMsg:
		return m, m.tickCmd()

	case tickedMsg:
		m.trackerView, _ = m.trackerView.Update(trackerview.StatusMsg{Status: msg.status, Err: msg.err})
		cmds = append(cmds, m.displayTickCmd())
		if msg.err == nil && msg.interval != m.interval {
			m.interval = msg.interval
			cmds = append(cmds, m.armPersist())
		}
		return m, tea.Batch(cmds...)

	case persistTickMsg:
		if msg.gen != m.persistGen {
			return m, nil
		}
		return m, tea.Batch(m.checkpointCmd(false), m.persistTickCmd())

	case checkpointDoneMsg:
		switch {
		case msg.err != nil:
			m.status = "save failed: " + msg.err.Error()
		case msg.manual:
			m.status = "saved at " + time.Now().Format("15:04:05")
		}
		return m, nil

	case celebrationMsg:
		if !msg.ok {
			return m, nil
		}
		m.status = fmt.Sprintf("level %d %s", msg.celebration.Level, msg.celebration.Badge)
		burst := m.confetti.Burst(msg.celebration)
		return m, tea.Batch(burst, m.waitCelebrationCmd())

	case components.ConfettiFrameMsg:
		var cmd tea.Cmd
		m.confetti, cmd = m.confetti.Update(msg)
		return m, cmd

	case settingChangedMsg:
		if msg.err != nil {
			m.status = "set " + msg.key + ": " + msg.err.Error()
			return m, nil
		}
		m.status = "saved " + msg.key
		heat := m.heatView.Reload()
		return m, tea.Batch(m.tickCmd(), heat)

	case heatmapview.LoadedMsg:
		var cmd tea.Cmd
		m.heatView, cmd = m.heatView.Update(msg)
		return m, cmd
	}

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.confetti.SetWidth(m.width)
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "tracking"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "q":
			m.status = "saving…"
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			if m.activeTab == tabHeatmap && m.started {
				cmds = append(cmds, m.heatView.Reload())
			}
			return m, tea.Batch(cmds...)
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		case "c":
			return m.manualCheckpoint()
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabTracker:
		m.trackerView, tabCmd = m.trackerView.Update(msg)
	case tabHeatmap:
		m.heatView, tabCmd = m.heatView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
		if m.confetti.Visible() {
			content = lipgloss.JoinVertical(lipgloss.Left, m.confetti.View(), content)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabTracker:
		return m.trackerView.View()
	case tabHeatmap:
		return m.heatView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "timelevel  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.started {
		s := m.trackerView.Status()
		left = theme.Hot.Render(fmt.Sprintf("● %s %d", s.Badge, s.Level)) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "checkpoint":
		return m.manualCheckpoint()

	case "heatmap":
		days := 365
		if len(parts) >= 2 {
			n, err := strconv.Atoi(parts[1])
			if err != nil || n < 1 {
				m.status = "usage: heatmap <days>"
				return m, nil
			}
			days = n
		}
		m.activeTab = tabHeatmap
		reload := m.heatView.SetDays(days)
		return m, reload

	case "set":
		if len(parts) < 3 {
			m.status = "usage: set <key> <value>"
			return m, nil
		}
		value := strings.TrimSpace(strings.TrimPrefix(input, parts[0]+" "+parts[1]))
		return m, m.setSettingCmd(parts[1], value)

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.trackerView, _ = m.trackerView.Update(sz)
	m.heatView, _ = m.heatView.Update(sz)
}

// armPersist starts a persistence timer for the current interval and retires
// any previous one.
func (m *Model) armPersist() tea.Cmd {
	m.persistGen++
	return m.persistTickCmd()
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) startCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		status, err := m.tracker.Start(ctx)
		return startedMsg{status: status, interval: m.tracker.SaveInterval(ctx), err: err}
	}
}

func (m Model) displayTickCmd() tea.Cmd {
	return tea.Tick(displayInterval, func(time.Time) tea.Msg { return displayTickMsg{} })
}

func (m Model) tickCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		status, err := m.tracker.Tick(ctx)
		return tickedMsg{status: status, interval: m.tracker.SaveInterval(ctx), err: err}
	}
}

func (m Model) persistTickCmd() tea.Cmd {
	gen, interval := m.persistGen, m.interval
	if interval < time.Second {
		interval = time.Second
	}
	return tea.Tick(interval, func(time.Time) tea.Msg { return persistTickMsg{gen: gen} })
}

// manualCheckpoint saves on request once the tracker has loaded its totals.
func (m Model) manualCheckpoint() (tea.Model, tea.Cmd) {
	if !m.started {
		m.status = "not tracking yet, nothing to save"
		return m, nil
	}
	return m, m.checkpointCmd(true)
}

func (m Model) checkpointCmd(manual bool) tea.Cmd {
	return func() tea.Msg {
		return checkpointDoneMsg{err: m.tracker.Checkpoint(context.Background()), manual: manual}
	}
}

func (m Model) waitCelebrationCmd() tea.Cmd {
	if m.celebrations == nil {
		return nil
	}
	ch := m.celebrations
	return func() tea.Msg {
		c, ok := <-ch
		return celebrationMsg{celebration: c, ok: ok}
	}
}

func (m Model) setSettingCmd(key, value string) tea.Cmd {
	return func() tea.Msg {
		if m.settings == nil {
			return settingChangedMsg{key: key, err: fmt.Errorf("settings adapter not configured")}
		}
		out, err := m.settings.Set(context.Background(), key, value)
		return settingChangedMsg{key: key, out: out, err: err}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────

type heatmapPortBridge struct{ p trackerPort }

func (b heatmapPortBridge) Heatmap(ctx context.Context, days int) (trackerdto.HeatmapOutput, error) {
	return b.p.Heatmap(ctx, days)
}
