package viz

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/algoviz/internal/catalog"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/playback"
)

const (
	stateMenu = iota
	statePreset
	statePlay
)

var (
	menuTitle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuActive = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuDesc   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuIdle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuKey    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

// App lets the user pick an algorithm and a preset, then plays it.
type App struct {
	ctx     context.Context
	reg     *catalog.Registry
	newCtrl func() *playback.Controller

	state   int
	entries []catalog.Entry
	cursor  int
	presets []string
	pcursor int
	player  Player
	ctrl    *playback.Controller
	err     error
}

// NewApp lists every registered algorithm. newCtrl builds the controller
// for each session.
func NewApp(ctx context.Context, reg *catalog.Registry, newCtrl func() *playback.Controller) App {
	var entries []catalog.Entry
	for _, f := range catalog.Families() {
		entries = append(entries, reg.List(f)...)
	}
	return App{ctx: ctx, reg: reg, newCtrl: newCtrl, entries: entries}
}

func (m App) Init() tea.Cmd { return nil }

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == statePlay {
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
			m.ctrl.Stop()
			m.state = statePreset
			return m, nil
		}
		next, cmd := m.player.Update(msg)
		m.player = next.(Player)
		return m, cmd
	}
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch m.state {
	case stateMenu:
		return m.menuKey(k)
	case statePreset:
		return m.presetKey(k)
	}
	return m, nil
}

func (m App) menuKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter", " ":
		e := m.entries[m.cursor]
		m.presets = append([]string{"default"}, config.ListPresets(string(e.Family))...)
		m.state, m.pcursor, m.err = statePreset, 0, nil
	}
	return m, nil
}

func (m App) presetKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.pcursor > 0 {
			m.pcursor--
		}
	case "down", "j":
		if m.pcursor < len(m.presets)-1 {
			m.pcursor++
		}
	case "enter", " ", "s":
		return m.start()
	}
	return m, nil
}

func (m App) start() (App, tea.Cmd) {
	e := m.entries[m.cursor]
	cfg := config.DefaultConfig()
	if p := config.GetPreset(string(e.Family), m.presets[m.pcursor]); p != nil {
		cfg = p
	}
	cfg.Family, cfg.Algorithm = string(e.Family), string(e.Name)

	s, err := NewSession(m.reg, cfg)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.ctrl = m.newCtrl()
	if m.player, err = NewPlayer(m.ctx, m.ctrl, s); err != nil {
		m.err = err
		return m, nil
	}
	m.state = statePlay
	return m, m.player.Init()
}

func (m App) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case statePreset:
		return m.viewPresets()
	}
	return m.player.View()
}

func (m App) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("ALGOVIZ") + "\n    " + menuSub.Render("step by step algorithm playback") + "\n    " + menuSub.Render("─────────────────────────") + "\n")
	var family catalog.Family
	for i, e := range m.entries {
		if e.Family != family {
			family = e.Family
			b.WriteString("\n    " + menuSub.Render(strings.ToUpper(string(family))) + "\n")
		}
		desc := e.Complexity.Average
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"), menuActive.Render(fmt.Sprintf("%-22s", e.Title)), menuDesc.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuIdle.Render(fmt.Sprintf("  %-22s", e.Title)), menuIdle.Render(desc)))
		}
	}
	b.WriteString("\n    " + menuKey.Render("j/k") + menuIdle.Render(" navigate  ") + menuKey.Render("enter") + menuIdle.Render(" select  ") + menuKey.Render("q") + menuIdle.Render(" quit") + "\n")
	return b.String()
}

func (m App) viewPresets() string {
	e := m.entries[m.cursor]
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render(strings.ToUpper(e.Title)) + "\n    " + menuSub.Render(string(e.Family)+" preset") + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		if i == m.pcursor {
			b.WriteString(fmt.Sprintf("    %s %s\n", menuCursor.Render("▸"), menuActive.Render(name)))
		} else {
			b.WriteString(fmt.Sprintf("    %s\n", menuIdle.Render("  "+name)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + errStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + menuKey.Render("j/k") + menuIdle.Render(" select  ") + menuKey.Render("enter") + menuIdle.Render(" play  ") + menuKey.Render("esc") + menuIdle.Render(" back") + "\n")
	return b.String()
}

// RunInteractive opens the menu full screen.
func RunInteractive(ctx context.Context, reg *catalog.Registry, newCtrl func() *playback.Controller) error {
	_, err := tea.NewProgram(NewApp(ctx, reg, newCtrl), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
