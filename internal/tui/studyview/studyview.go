// ABOUTME: Study section of the TUI wrapping the stopwatch
// ABOUTME: Schedules one-second ticks stamped with the timer generation

package studyview

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/newsxstudy/newsxstudy/cli/internal/study"
	"github.com/newsxstudy/newsxstudy/cli/internal/tui/icons"
	"github.com/newsxstudy/newsxstudy/cli/internal/tui/styles"
	"github.com/newsxstudy/newsxstudy/cli/internal/tui/widgets"
)

// TickMsg advances the timer when Gen matches the running generation
type TickMsg struct {
	Gen  int
	Time time.Time
}

// Interval between ticks
const Interval = time.Second

// View is the study section model
type View struct {
	timer      study.Timer
	standalone bool
	width      int
}

// New creates a stopped timer view. A standalone view quits on q/esc.
func New(standalone bool) *View {
	return &View{standalone: standalone}
}

// SetWidth sets the render width
func (v *View) SetWidth(width int) {
	v.width = width
}

// Timer exposes the underlying stopwatch
func (v *View) Timer() *study.Timer {
	return &v.timer
}

// tick schedules the next tick for gen
func tick(gen int) tea.Cmd {
	return tea.Tick(Interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}

// Start begins counting; it returns nil when already running
func (v *View) Start() tea.Cmd {
	gen, started := v.timer.Start()
	if !started {
		return nil
	}
	return tick(gen)
}

// Stop halts counting and keeps the elapsed time
func (v *View) Stop() {
	v.timer.Stop()
}

// Init implements tea.Model
func (v *View) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (v *View) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if v.timer.Tick(msg.Gen) {
			return v, tick(msg.Gen)
		}
		return v, nil

	case tea.WindowSizeMsg:
		v.width = msg.Width
		return v, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeySpace {
			if v.timer.Running() {
				v.Stop()
				return v, nil
			}
			return v, v.Start()
		}
		switch msg.String() {
		case "s":
			return v, v.Start()
		case "p", "x":
			v.Stop()
		case "q", "esc", "ctrl+c":
			if v.standalone {
				return v, tea.Quit
			}
		}
	}
	return v, nil
}

// View implements tea.Model
func (v *View) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Timer.String() + " Study timer"))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		styles.TimerDisplay.Render(v.timer.Display()),
		"  ",
		widgets.RunningBadge(v.timer.Running()),
	))
	sb.WriteString("\n")

	hint := "s start · p stop · space toggle"
	if v.standalone {
		hint += " · q quit"
	}
	sb.WriteString(styles.Help.Render(hint))

	return sb.String()
}
