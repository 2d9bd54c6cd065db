package viz

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/algoviz/internal/catalog"
	"github.com/san-kum/algoviz/internal/grid"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/step"
	"github.com/san-kum/algoviz/internal/traversal"
)

const (
	frameRate = time.Second / 30
	minSpeed  = time.Millisecond
	maxSpeed  = 2 * time.Second
	maxBars   = 48
	barHeight = 12
	chartSpan = 60
)

// Session describes what a Player plays. Source is called for the first
// run and again on every restart, so it must build a fresh input each time.
type Session struct {
	Family     catalog.Family
	Entry      catalog.Entry
	Source     func() (*step.Producer, error)
	Start, End grid.Point
	Tree       *traversal.Node
	// Theme names the starting theme; unknown names fall back to the first.
	Theme string
}

type TickMsg time.Time

// Player is the bubbletea model around one playback controller. All
// playback state lives in the controller; the model only draws it.
type Player struct {
	ctx      context.Context
	ctrl     *playback.Controller
	session  Session
	theme    Theme
	width    int
	showHelp bool
	err      error
}

// NewPlayer starts the first run right away.
func NewPlayer(ctx context.Context, ctrl *playback.Controller, s Session) (Player, error) {
	m := Player{ctx: ctx, ctrl: ctrl, session: s, theme: GetTheme(s.Theme), width: 120}
	if err := m.restart(); err != nil {
		return m, err
	}
	return m, nil
}

func (m Player) Init() tea.Cmd { return tick() }

func tick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.ctrl.Stop()
			return m, tea.Quit
		case " ":
			m.togglePause()
		case "[":
			m.hold()
			m.ctrl.StepBackward()
		case "]":
			m.hold()
			m.ctrl.StepForward()
		case "+", "=":
			m.ctrl.SetSpeed(max(m.ctrl.State().Speed/2, minSpeed))
		case "-", "_":
			m.ctrl.SetSpeed(min(m.ctrl.State().Speed*2, maxSpeed))
		case "r":
			m.err = m.restart()
		case "t":
			m.theme = m.theme.next()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case TickMsg:
		return m, tick()
	}
	return m, nil
}

// togglePause restarts a finished run instead of doing nothing.
func (m *Player) togglePause() {
	st := m.ctrl.State()
	if st.Mode == playback.Idle && st.HistoryIndex == st.HistoryLen-1 {
		m.err = m.restart()
		return
	}
	m.ctrl.TogglePause()
}

// hold pauses a running run so hand stepping is not raced by the loop.
func (m *Player) hold() {
	if m.ctrl.State().Mode == playback.Running {
		m.ctrl.TogglePause()
	}
}

func (m *Player) restart() error {
	p, err := m.session.Source()
	if err != nil {
		return err
	}
	return m.ctrl.Start(m.ctx, p)
}

func (m Player) View() string {
	st := m.ctrl.State()
	t := m.theme
	cur := st.Current

	var main strings.Builder
	title := fmt.Sprintf("%s / %s", m.session.Family, m.session.Entry.Title)
	main.WriteString(t.fg(t.Title).Bold(true).Render(strings.ToUpper(title)) + "\n\n")
	switch {
	case cur.Grid != nil:
		main.WriteString(renderGrid(cur.Grid, cur, m.session.Start, m.session.End, t))
	case m.session.Family == catalog.Traversal:
		main.WriteString(renderTree(m.session.Tree, m.visited(), cur.Node, t))
	default:
		main.WriteString(renderArray(cur.Array, cur, t, m.bars(), barHeight))
	}
	main.WriteString("\n\n" + renderCode(m.session.Entry.Trace, cur.Line, t))

	side := m.sidebar(st)
	view := lipgloss.JoinHorizontal(lipgloss.Top, panelStyle.Render(main.String()), sideStyle.Render(side))
	if m.showHelp {
		return helpText + "\n" + view
	}
	return view
}

// bars is how many array columns fit beside the sidebar.
func (m Player) bars() int {
	return min(maxBars, max((m.width-60)/2, 8))
}

func (m Player) sidebar(st playback.Snapshot) string {
	var s strings.Builder
	switch st.Mode {
	case playback.Running:
		s.WriteString(statusRunning.Render("RUNNING"))
	case playback.Paused:
		s.WriteString(statusPaused.Render("PAUSED"))
	default:
		s.WriteString(statusIdle.Render("DONE"))
	}
	s.WriteString("\n\n")

	pos := 0.0
	if st.HistoryLen > 1 {
		pos = float64(st.HistoryIndex) / float64(st.HistoryLen-1)
	}
	s.WriteString(labelStyle.Render("step") + valueStyle.Render(fmt.Sprintf("%d / %d", st.HistoryIndex+1, st.HistoryLen)) + "\n")
	s.WriteString(ProgressBar(pos, 30) + "\n")
	s.WriteString(labelStyle.Render("speed") + valueStyle.Render(st.Speed.String()) + "\n")

	c := m.session.Entry.Complexity
	s.WriteString(labelStyle.Render("complexity") + valueStyle.Render(fmt.Sprintf("%s avg, %s worst", c.Average, c.Worst)) + "\n")
	s.WriteString(labelStyle.Render("space") + valueStyle.Render(c.Space) + "\n\n")

	ms := m.ctrl.Metrics()
	for _, name := range slices.Sorted(maps.Keys(ms)) {
		if v := ms[name]; v != 0 && name != "steps" {
			s.WriteString(labelStyle.Render(name) + valueStyle.Render(fmt.Sprintf("%.0f", v)) + "\n")
		}
	}
	if vars := renderVariables(st.Current.Variables); vars != "" {
		s.WriteString("\n" + Separator(40) + "\n" + vars)
	}
	if series := m.comparisons(); len(series) > 1 && series[len(series)-1] > 0 {
		chart := asciigraph.Plot(series, asciigraph.Height(5), asciigraph.Width(34), asciigraph.Caption("comparisons"))
		s.WriteString("\n" + graphStyle.Render(chart) + "\n")
	}
	if m.err != nil {
		s.WriteString("\n" + errStyle.Render(m.err.Error()) + "\n")
	}
	s.WriteString("\n" + keyHint.Render("SP:Pause [ ]:Step +/-:Speed\nR:Restart T:Theme ?:Help Q:Quit"))
	return s.String()
}

// upToCursor returns the history through the cursor. A step may land
// between the two reads, so the cursor is clamped.
func (m Player) upToCursor() []playback.Entry {
	hist := m.ctrl.History()
	idx := min(m.ctrl.State().HistoryIndex, len(hist)-1)
	return hist[:idx+1]
}

// comparisons is the running comparison count up to the cursor, trimmed to
// the last chartSpan steps.
func (m Player) comparisons() []float64 {
	hist := m.upToCursor()
	out := make([]float64, 0, len(hist))
	n := 0.0
	for _, e := range hist {
		if e.Step.Kind() == step.KindCompare {
			n++
		}
		out = append(out, n)
	}
	if len(out) > chartSpan {
		out = out[len(out)-chartSpan:]
	}
	return out
}

func (m Player) visited() []int {
	var out []int
	for _, e := range m.upToCursor() {
		if e.Step.Node != nil {
			out = append(out, *e.Step.Node)
		}
	}
	return out
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  [        - Step backward            ║
║  ]        - Step forward             ║
║  + / -    - Faster / slower          ║
║  R        - Restart                  ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// Play runs a player full screen until the user quits.
func Play(ctx context.Context, ctrl *playback.Controller, s Session) error {
	m, err := NewPlayer(ctx, ctrl, s)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
