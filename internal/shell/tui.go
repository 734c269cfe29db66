package shell

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"projectile-sim/internal/report"
	"projectile-sim/internal/scenario"
)

type action int

const (
	actionRun action = iota
	actionSweep
	actionDrag
	actionPlanets
	actionQuit
)

type screen int

const (
	screenMenu screen = iota
	screenForm
	screenReport
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type menuItem struct {
	title string
	act   action
}

var menuItems = []menuItem{
	{"Run new simulation", actionRun},
	{"Compare angles (optimize for range)", actionSweep},
	{"Compare with/without air resistance", actionDrag},
	{"Test different planets", actionPlanets},
	{"Exit", actionQuit},
}

type fieldKind int

const (
	fieldNumber fieldKind = iota
	fieldYesNo
)

type field struct {
	label string
	kind  fieldKind
	input textinput.Model
}

type tuiModel struct {
	ctx    context.Context
	runner *scenario.Runner
	opts   report.TextOptions

	screen screen
	cursor int
	act    action
	fields []field
	focus  int
	status string

	vp      viewport.Model
	report  string
	summary string
	wrap   bool
	width  int
	height int
}

// RunTUI starts the full-screen interface and blocks until it exits.
func RunTUI(ctx context.Context, runner *scenario.Runner, opts report.TextOptions) error {
	p := tea.NewProgram(newTUIModel(ctx, runner, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func newTUIModel(ctx context.Context, runner *scenario.Runner, opts report.TextOptions) tuiModel {
	return tuiModel{
		ctx:    ctx,
		runner: runner,
		opts:   opts,
		vp:     viewport.New(0, 0),
	}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = msg.Height - 3
		if m.vp.Height < 0 {
			m.vp.Height = 0
		}
		m.refreshViewport()
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.screen {
		case screenMenu:
			return m.updateMenu(msg)
		case screenForm:
			return m.updateForm(msg)
		case screenReport:
			return m.updateReport(msg)
		}
	}
	return m, nil
}

func (m tuiModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}
	case "enter":
		return m.choose(menuItems[m.cursor].act)
	case "q", "esc":
		return m, tea.Quit
	case "1", "2", "3", "4", "5":
		m.cursor = int(key[0] - '1')
		return m.choose(menuItems[m.cursor].act)
	}
	return m, nil
}

func (m tuiModel) choose(act action) (tea.Model, tea.Cmd) {
	if act == actionQuit {
		return m, tea.Quit
	}
	base := m.runner.Base
	speed := newField("Velocity (m/s)", fieldNumber, strconv.FormatFloat(base.InitialSpeed, 'g', -1, 64))
	angle := newField("Angle (degrees)", fieldNumber, strconv.FormatFloat(base.LaunchAngleDeg, 'g', -1, 64))
	switch act {
	case actionRun:
		m.fields = []field{speed, angle, newField("Air resistance (y/n)", fieldYesNo, "n"), newField("Show data (y/n)", fieldYesNo, "n")}
	case actionSweep:
		m.fields = []field{speed}
	default:
		m.fields = []field{speed, angle}
	}
	m.act = act
	m.focus = 0
	m.status = ""
	m.screen = screenForm
	return m, m.fields[0].input.Focus()
}

func newField(label string, kind fieldKind, value string) field {
	ti := textinput.New()
	ti.CharLimit = 16
	ti.Width = 16
	ti.SetValue(value)
	ti.CursorEnd()
	return field{label: label, kind: kind, input: ti}
}

func (m tuiModel) setFocus(i int) (tuiModel, tea.Cmd) {
	m.fields[m.focus].input.Blur()
	m.focus = (i + len(m.fields)) % len(m.fields)
	return m, m.fields[m.focus].input.Focus()
}

func (m tuiModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenMenu
		m.status = ""
		return m, nil
	case "tab", "down":
		return m.setFocus(m.focus + 1)
	case "shift+tab", "up":
		return m.setFocus(m.focus - 1)
	case "enter":
		if m.focus < len(m.fields)-1 {
			return m.setFocus(m.focus + 1)
		}
		return m.submit(), nil
	}
	var cmd tea.Cmd
	m.fields[m.focus].input, cmd = m.fields[m.focus].input.Update(msg)
	return m, cmd
}

func (m tuiModel) number(i int) (float64, error) {
	f := m.fields[i]
	v, err := strconv.ParseFloat(strings.TrimSpace(f.input.Value()), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: not a number", f.label)
	}
	return v, nil
}

func (m tuiModel) yesNo(i int) (bool, error) {
	f := m.fields[i]
	switch strings.ToLower(strings.TrimSpace(f.input.Value())) {
	case "y", "yes", "1", "true":
		return true, nil
	case "n", "no", "0", "false", "":
		return false, nil
	}
	return false, fmt.Errorf("%s: answer y or n", f.label)
}

func (m tuiModel) submit() tuiModel {
	var buf bytes.Buffer
	m.summary = ""
	err := m.execute(&buf)
	if err != nil {
		m.status = err.Error()
		return m
	}
	m.status = ""
	m.report = buf.String()
	m.screen = screenReport
	m.refreshViewport()
	m.vp.GotoTop()
	return m
}

func (m *tuiModel) execute(buf *bytes.Buffer) error {
	speed, err := m.number(0)
	if err != nil {
		return err
	}
	if m.act == actionSweep {
		return runSweep(m.ctx, m.runner, buf, m.opts, speed)
	}
	angle, err := m.number(1)
	if err != nil {
		return err
	}
	switch m.act {
	case actionRun:
		drag, err := m.yesNo(2)
		if err != nil {
			return err
		}
		showData, err := m.yesNo(3)
		if err != nil {
			return err
		}
		res, err := runSingle(m.ctx, m.runner, buf, m.opts, speed, angle, drag, showData)
		if err == nil {
			m.summary = report.Summary(res.Metrics)
		}
		return err
	case actionDrag:
		return runDrag(m.ctx, m.runner, buf, m.opts, speed, angle)
	default:
		return runPlanets(m.ctx, m.runner, buf, m.opts, speed, angle)
	}
}

func (m tuiModel) updateReport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace", "enter":
		m.screen = screenMenu
		return m, nil
	case "q":
		return m, tea.Quit
	case "w":
		m.wrap = !m.wrap
		m.refreshViewport()
		return m, nil
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *tuiModel) refreshViewport() {
	content := m.report
	if m.wrap && m.vp.Width > 0 {
		content = wordwrap.String(content, m.vp.Width)
	}
	m.vp.SetContent(content)
}

func (m tuiModel) View() string {
	var b strings.Builder
	switch m.screen {
	case screenMenu:
		b.WriteString(titleStyle.Render("PROJECTILE MOTION SIMULATOR"))
		b.WriteString("\n\n")
		for i, it := range menuItems {
			line := fmt.Sprintf("%d. %s", i+1, it.title)
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ move • enter select • 1-5 shortcut • q quit"))
	case screenForm:
		b.WriteString(titleStyle.Render(menuItems[m.act].title))
		b.WriteString("\n\n")
		for i, f := range m.fields {
			label := fmt.Sprintf("%-22s", f.label)
			if i == m.focus {
				label = selectedStyle.Render(label)
			}
			b.WriteString(label + " " + f.input.View() + "\n")
		}
		if m.status != "" {
			b.WriteString("\n" + errorStyle.Render("❌ "+m.status) + "\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next • enter confirm • esc back"))
	case screenReport:
		b.WriteString(m.vp.View())
		b.WriteString("\n")
		if m.summary != "" {
			b.WriteString(selectedStyle.Render(m.summary) + "  ")
		}
		b.WriteString(helpStyle.Render("↑/↓ scroll • w wrap • esc back • q quit"))
	}
	return b.String()
}
