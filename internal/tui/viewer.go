package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/curvelab/lissalab/internal/config"
	"github.com/curvelab/lissalab/internal/curve"
	"github.com/curvelab/lissalab/internal/export"
	"github.com/curvelab/lissalab/internal/viz"
)

// paramSpec binds a sidebar row to one field of curve.Params. Nudge
// steps follow the slider increments of the original control panel.
type paramSpec struct {
	name  string
	step  float64
	isInt bool
	get   func(*curve.Params) float64
	set   func(*curve.Params, float64)
}

var paramSpecs = []paramSpec{
	{"freq_x", 0.1, false,
		func(p *curve.Params) float64 { return p.FreqX },
		func(p *curve.Params, v float64) { p.FreqX = v }},
	{"freq_y", 0.1, false,
		func(p *curve.Params) float64 { return p.FreqY },
		func(p *curve.Params, v float64) { p.FreqY = v }},
	{"amp_x", 0.1, false,
		func(p *curve.Params) float64 { return p.AmpX },
		func(p *curve.Params, v float64) { p.AmpX = v }},
	{"amp_y", 0.1, false,
		func(p *curve.Params) float64 { return p.AmpY },
		func(p *curve.Params, v float64) { p.AmpY = v }},
	{"phase_x", curve.TwoPi / 24, false,
		func(p *curve.Params) float64 { return p.PhaseX },
		func(p *curve.Params, v float64) { p.PhaseX = v }},
	{"phase_y", curve.TwoPi / 24, false,
		func(p *curve.Params) float64 { return p.PhaseY },
		func(p *curve.Params, v float64) { p.PhaseY = v }},
	{"resolution", 100, true,
		func(p *curve.Params) float64 { return float64(p.Resolution) },
		func(p *curve.Params, v float64) { p.Resolution = int(v) }},
	{"cycles", 0.5, false,
		func(p *curve.Params) float64 { return p.Cycles },
		func(p *curve.Params, v float64) { p.Cycles = v }},
}

type Model struct {
	params  curve.Params
	initial curve.Params
	anim    config.AnimationConfig

	cursor  int
	editing bool
	editBuf string

	animating bool
	animSeq   int

	recording bool
	rec       *export.Recorder

	pts    []curve.Point
	status string

	width  int
	height int
}

// NewViewer builds the interactive viewer model from a resolved
// config. The animation section backfills from the defaults when
// unset, since the frame rate divides tick intervals and GIF delays.
func NewViewer(cfg config.Config) *Model {
	p := cfg.Params()
	m := &Model{
		params:  p,
		initial: p,
		anim:    cfg.Animation,
		width:   80,
		height:  24,
	}
	if m.anim.FrameRate < 1 {
		m.anim.FrameRate = config.DefaultFrameRate
	}
	if m.anim.PhaseStep <= 0 {
		m.anim.PhaseStep = config.DefaultPhaseStep
	}
	m.pts = curve.Sample(m.params)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

type tickMsg struct {
	seq int
}

func (m Model) tick() tea.Cmd {
	interval := time.Second / time.Duration(m.anim.FrameRate)
	seq := m.animSeq
	return tea.Tick(interval, func(time.Time) tea.Msg { return tickMsg{seq: seq} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		// Ticks from a stopped or superseded animation die here,
		// so a restart never stacks a second tick chain.
		if !m.animating || msg.seq != m.animSeq {
			return m, nil
		}
		m.params.PhaseY = curve.WrapPhase(m.params.PhaseY + m.anim.PhaseStep)
		m.pts = curve.Sample(m.params)
		if m.recording && m.rec != nil {
			m.rec.Capture(m.plotCanvas())
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.editing {
		return m.editKey(msg), nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(paramSpecs)-1 {
			m.cursor++
		}
	case "left", "h":
		m.nudge(-1)
	case "right", "l":
		m.nudge(+1)
	case "enter":
		spec := paramSpecs[m.cursor]
		m.editing = true
		if spec.isInt {
			m.editBuf = fmt.Sprintf("%.0f", spec.get(&m.params))
		} else {
			m.editBuf = fmt.Sprintf("%.3f", spec.get(&m.params))
		}
	case " ":
		if m.animating {
			m.stopAnim()
			return m, nil
		}
		return m.startAnim()
	case "a":
		return m.startAnim()
	case "o":
		m.stopAnim()
	case "r":
		m.stopAnim()
		m.params = m.initial
		m.pts = curve.Sample(m.params)
		m.status = "reset"
	case "s":
		name := fmt.Sprintf("lissajous_%d.svg", time.Now().Unix())
		if err := export.SaveCurveSVG(name, m.pts, 800, 800, string(viz.CurrentTheme.Primary)); err != nil {
			m.status = "svg export failed: " + err.Error()
		} else {
			m.status = "saved " + name
		}
	case "g":
		if m.recording {
			m.recording = false
			name := fmt.Sprintf("lissajous_%d.gif", time.Now().Unix())
			if err := m.rec.Save(name); err != nil {
				m.status = "gif save failed: " + err.Error()
			} else {
				m.status = "saved " + name
			}
			m.rec = nil
		} else {
			m.recording = true
			m.rec = export.NewRecorder(100 / m.anim.FrameRate)
			m.status = "recording"
		}
	case "t":
		viz.NextTheme()
		m.status = "theme: " + viz.CurrentTheme.Name
	}
	return m, nil
}

func (m Model) editKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "enter":
		m.applyEdit()
		m.editing = false
		m.editBuf = ""
	case "escape", "esc":
		m.editing = false
		m.editBuf = ""
	case "backspace":
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	default:
		if len(msg.String()) == 1 {
			c := msg.String()[0]
			if (c >= '0' && c <= '9') || c == '.' || c == '-' {
				m.editBuf += string(c)
			}
		}
	}
	return m
}

// applyEdit parses the edit buffer into the selected parameter. A
// value that fails to parse or validate leaves the figure untouched.
func (m *Model) applyEdit() {
	spec := paramSpecs[m.cursor]
	val, err := strconv.ParseFloat(m.editBuf, 64)
	if err != nil {
		m.status = "invalid number: " + m.editBuf
		return
	}
	next := m.params
	spec.set(&next, val)
	if err := next.Validate(); err != nil {
		m.status = spec.name + " rejected: " + err.Error()
		return
	}
	m.params = next
	m.pts = curve.Sample(m.params)
	m.status = fmt.Sprintf("%s = %g", spec.name, val)
}

// nudge steps the selected parameter; out-of-range steps are dropped.
func (m *Model) nudge(dir int) {
	spec := paramSpecs[m.cursor]
	next := m.params
	spec.set(&next, spec.get(&next)+float64(dir)*spec.step)
	if err := next.Validate(); err != nil {
		m.status = spec.name + " rejected: " + err.Error()
		return
	}
	m.params = next
	m.pts = curve.Sample(m.params)
	m.status = ""
}

// startAnim begins phase animation. Starting while already animating
// changes nothing.
func (m Model) startAnim() (Model, tea.Cmd) {
	if m.animating {
		return m, nil
	}
	m.animating = true
	m.animSeq++
	m.status = "animating"
	return m, m.tick()
}

func (m *Model) stopAnim() {
	if !m.animating {
		return
	}
	m.animating = false
	m.animSeq++
	m.status = "stopped"
}

func (m Model) plotCanvas() *viz.Canvas {
	cw := m.width - 30
	ch := m.height - 4
	if cw < 40 {
		cw = 40
	}
	if ch < 12 {
		ch = 12
	}
	return viz.Plot(m.params, m.pts, cw, ch)
}

func (m Model) View() string {
	theme := viz.CurrentTheme
	primary := lipgloss.NewStyle().Foreground(theme.Primary)
	accent := lipgloss.NewStyle().Foreground(theme.Accent)
	text := lipgloss.NewStyle().Foreground(theme.Text)
	muted := lipgloss.NewStyle().Foreground(theme.Muted)
	warning := lipgloss.NewStyle().Foreground(theme.Warning)

	canvas := m.plotCanvas()

	var side strings.Builder
	side.WriteString(accent.Render("lissalab") + "\n")
	side.WriteString(muted.Render(strings.Repeat("─", 24)) + "\n")
	for i, spec := range paramSpecs {
		var val string
		if m.editing && i == m.cursor {
			val = fmt.Sprintf("%10s", m.editBuf+"▋")
		} else if spec.isInt {
			val = fmt.Sprintf("%10.0f", spec.get(&m.params))
		} else {
			val = fmt.Sprintf("%10.3f", spec.get(&m.params))
		}
		if i == m.cursor {
			side.WriteString(accent.Render("▸ ") + text.Render(fmt.Sprintf("%-11s", spec.name)) + primary.Render(val) + "\n")
		} else {
			side.WriteString("  " + muted.Render(fmt.Sprintf("%-11s", spec.name)) + muted.Render(val) + "\n")
		}
	}

	side.WriteString("\n")
	if m.animating {
		side.WriteString(primary.Render("● animating") + "\n")
	} else {
		side.WriteString(muted.Render("○ frozen") + "\n")
	}
	if m.recording {
		side.WriteString(warning.Render(fmt.Sprintf("● rec %d frames", m.rec.FrameCount())) + "\n")
	}
	if cycles, ok := curve.CyclesToClose(m.params.FreqX, m.params.FreqY); ok {
		side.WriteString(muted.Render(fmt.Sprintf("closes in %.1f cycles", cycles)) + "\n")
	} else {
		side.WriteString(muted.Render("non-closing") + "\n")
	}
	if m.status != "" {
		side.WriteString("\n" + warning.Render(m.status) + "\n")
	}

	plot := primary.Render(strings.TrimRight(canvas.String(), "\n"))
	body := lipgloss.JoinHorizontal(lipgloss.Top, plot, "  ", side.String())

	help := muted.Render("↑↓ select  ←→ adjust  enter edit  space animate  r reset  s svg  g gif  t theme  q quit")
	return "\n" + body + "\n" + help + "\n"
}

// RunViewer starts the interactive terminal viewer.
func RunViewer(cfg config.Config) error {
	p := tea.NewProgram(NewViewer(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
