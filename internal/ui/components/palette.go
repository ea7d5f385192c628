package components

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"timelevel/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

const (
	paletteMaxRows    = 6
	paletteMaxHistory = 8
)

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle     = lipgloss.NewStyle().Foreground(theme.Subtext0)
	selectedStyle = lipgloss.NewStyle().Foreground(theme.Peach).Bold(true)
)

type paletteCommand struct {
	usage   string
	summary string
}

// completion is the literal part of usage, up to the first placeholder.
func (c paletteCommand) completion() string {
	head, _, _ := strings.Cut(c.usage, "<")
	return head
}

// Keep in step with executePalette in app/model.go.
var paletteCommands = []paletteCommand{
	{"checkpoint", "save the running session now"},
	{"heatmap <days>", "show the last <days> days"},
	{"set levelUpHours <hours>", "hours needed per level"},
	{"set saveIntervalSeconds <seconds>", "autosave period"},
	{"set showSeconds <true|false>", "seconds in durations"},
	{"set language <zh|en>", "display language"},
	{"set prefixText <text>", "label before the total"},
	{"set progressBarColor <#hex>", "bar start color"},
	{"set enableAudio <true|false>", "bell and audio plugins"},
	{"set enableConfetti <true|false>", "confetti and visual plugins"},
	{"set showFooter <true|false>", "panel footer"},
	{"set calendarOffset <+hh:mm>", "day boundary for the heatmap"},
}

// Palette is a command line overlay with prefix completion and a short
// history of submitted commands.
type Palette struct {
	input    textinput.Model
	visible  bool
	width    int
	selected int
	history  []string
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "checkpoint, heatmap, set …"
	ti.CharLimit = 256
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the palette with an empty input and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.selected = 0
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

// suggestions lists recent commands first, then known commands, filtered by
// the typed prefix.
func (p Palette) suggestions() []string {
	prefix := strings.ToLower(strings.TrimLeft(p.input.Value(), " "))
	var out []string
	add := func(s string) {
		if len(out) >= paletteMaxRows || slices.Contains(out, s) {
			return
		}
		if prefix == "" || strings.HasPrefix(strings.ToLower(s), prefix) {
			out = append(out, s)
		}
	}
	for i := len(p.history) - 1; i >= 0; i-- {
		add(p.history[i])
	}
	for _, c := range paletteCommands {
		add(c.usage)
	}
	return out
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.remember(val)
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "up":
			p.selected = max(0, p.selected-1)
			return p, nil
		case "down":
			p.selected = min(max(0, len(p.suggestions())-1), p.selected+1)
			return p, nil
		case "tab":
			p.complete()
			return p, nil
		}
	}
	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.selected = 0
	}
	return p, cmd
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

// complete replaces the input with the literal head of the selected
// suggestion so the user only types the argument.
func (p *Palette) complete() {
	items := p.suggestions()
	if len(items) == 0 {
		return
	}
	choice := items[min(p.selected, len(items)-1)]
	for _, c := range paletteCommands {
		if c.usage == choice {
			choice = c.completion()
			break
		}
	}
	p.input.SetValue(choice)
	p.input.CursorEnd()
	p.selected = 0
}

func (p *Palette) remember(cmd string) {
	if cmd == "" {
		return
	}
	p.history = slices.DeleteFunc(p.history, func(s string) bool { return s == cmd })
	p.history = append(p.history, cmd)
	if len(p.history) > paletteMaxHistory {
		p.history = p.history[len(p.history)-paletteMaxHistory:]
	}
}

func summaryFor(usage string) string {
	for _, c := range paletteCommands {
		if c.usage == usage {
			return c.summary
		}
	}
	return "recent"
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if items := p.suggestions(); len(items) > 0 {
		sb.WriteString("\n")
		for i, item := range items {
			line := "  " + item + "  " + hintStyle.Render(summaryFor(item))
			if i == p.selected {
				line = selectedStyle.Render("› "+item) + "  " + hintStyle.Render(summaryFor(item))
			}
			sb.WriteString(line + "\n")
		}
	}
	sb.WriteString(hintStyle.Render("tab complete · ↑↓ select · esc close"))

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}
