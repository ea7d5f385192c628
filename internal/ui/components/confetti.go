package components

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	trackerdto "timelevel/internal/modules/tracker/dto"
	"timelevel/internal/ui/theme"
)

const (
	confettiFrames   = 12
	confettiInterval = 150 * time.Millisecond
)

var confettiColors = []lipgloss.Color{theme.Peach, theme.Yellow, theme.Green, theme.Sapphire, theme.Pink, theme.Lavender}

var confettiGlyphs = []rune{'*', '+', '•', '✦', '·'}

// ConfettiFrameMsg advances the burst animation.
type ConfettiFrameMsg struct{ id int }

// Confetti is a short particle-burst overlay shown on level-up.
type Confetti struct {
	id          int
	frame       int
	celebration trackerdto.Celebration
	width       int
	rng         *rand.Rand
}

func NewConfetti() Confetti {
	return Confetti{frame: confettiFrames, rng: rand.New(rand.NewPCG(1, 2))}
}

// Visible reports whether a burst is in progress.
func (c Confetti) Visible() bool { return c.frame < confettiFrames }

func (c *Confetti) SetWidth(w int) { c.width = w }

// Burst starts a new animation, replacing any running one.
func (c *Confetti) Burst(celebration trackerdto.Celebration) tea.Cmd {
	c.id++
	c.frame = 0
	c.celebration = celebration
	return c.next()
}

func (c Confetti) next() tea.Cmd {
	id := c.id
	return tea.Tick(confettiInterval, func(time.Time) tea.Msg { return ConfettiFrameMsg{id: id} })
}

func (c Confetti) Update(msg tea.Msg) (Confetti, tea.Cmd) {
	frame, ok := msg.(ConfettiFrameMsg)
	if !ok || frame.id != c.id || !c.Visible() {
		return c, nil
	}
	c.frame++
	if !c.Visible() {
		return c, nil
	}
	return c, c.next()
}

func (c Confetti) View() string {
	if !c.Visible() {
		return ""
	}
	w := c.width
	if w < 20 {
		w = 48
	}
	var sb strings.Builder
	density := confettiFrames - c.frame
	for row := 0; row < 3; row++ {
		line := make([]string, w)
		for i := range line {
			line[i] = " "
		}
		for n := 0; n < density*2; n++ {
			pos := c.rng.IntN(w)
			glyph := string(confettiGlyphs[c.rng.IntN(len(confettiGlyphs))])
			color := confettiColors[c.rng.IntN(len(confettiColors))]
			line[pos] = lipgloss.NewStyle().Foreground(color).Render(glyph)
		}
		sb.WriteString(strings.Join(line, "") + "\n")
	}
	banner := theme.Celebrate.Render(fmt.Sprintf("%s  Lv %d  %s", c.celebration.Badge, c.celebration.Level, c.celebration.Badge))
	sb.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Center, banner))
	return sb.String()
}
