// Package viz renders animation phases in the terminal. The live view is one
// render-sink implementation; the engine itself knows nothing about it.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/glowsim/internal/config"
	"github.com/san-kum/glowsim/internal/engine"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model drives one phase cooperatively from bubbletea's event loop and draws
// each snapshot onto a braille canvas.
type Model struct {
	cfg    *config.PhaseConfig
	phase  *engine.Phase
	snap   engine.Snapshot
	canvas *Canvas

	running    bool
	done       bool
	showHelp   bool
	bounces    int
	heightHist []float64
}

func NewModel(cfg *config.PhaseConfig) (Model, error) {
	phase, err := engine.NewPhase(cfg)
	if err != nil {
		return Model{}, err
	}
	return Model{
		cfg:        cfg,
		phase:      phase,
		canvas:     NewCanvas(width, height),
		running:    true,
		heightHist: make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) interval() time.Duration {
	return time.Duration(m.cfg.IntervalMs) * time.Millisecond
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(m.interval(), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.phase.Cancel()
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && !m.done {
			m.step()
		}
		return m, tea.Tick(m.interval(), func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// step advances the phase one tick and folds the snapshot into the view
// state.
func (m *Model) step() {
	snap, ok := m.phase.Advance()
	if !ok {
		m.done = true
		return
	}
	m.snap = snap
	m.bounces += len(snap.Bounces)

	h := 0.0
	if len(snap.Bodies) > 0 {
		h = m.cfg.Arena.YGround - (snap.Bodies[0].Y + snap.Bodies[0].Radius)
	}
	m.heightHist = append(m.heightHist, h)
	if len(m.heightHist) > historyCapacity {
		m.heightHist = m.heightHist[1:]
	}
}

// reset abandons the current phase and starts a fresh one from the same
// config; the seed is unchanged so the rerun is identical.
func (m *Model) reset() {
	m.phase.Cancel()
	phase, err := engine.NewPhase(m.cfg)
	if err != nil {
		return
	}
	m.phase = phase
	m.snap = engine.Snapshot{}
	m.done = false
	m.running = true
	m.bounces = 0
	m.heightHist = m.heightHist[:0]
}

// project maps world coordinates to canvas sub-pixels.
func (m *Model) project(x, y float64) (int, int) {
	top := 0.0
	if m.cfg.Arena.YCeiling != nil {
		top = *m.cfg.Arena.YCeiling
	}
	spanX := m.cfg.Arena.XMax - m.cfg.Arena.XMin
	spanY := m.cfg.Arena.YGround - top

	px := (x - m.cfg.Arena.XMin) / spanX * float64(m.canvas.PixelWidth()-1)
	py := (y - top) / spanY * float64(m.canvas.PixelHeight()-1)
	return int(px), int(py)
}

// scale converts a world-space radius to sub-pixels.
func (m *Model) scale(r float64) int {
	spanX := m.cfg.Arena.XMax - m.cfg.Arena.XMin
	px := r / spanX * float64(m.canvas.PixelWidth())
	if px < 1 {
		return 1
	}
	return int(px)
}

func (m *Model) draw() {
	m.canvas.Clear()

	// Arena: ground always, ceiling and walls when the box is closed.
	pw, ph := m.canvas.PixelWidth(), m.canvas.PixelHeight()
	m.canvas.DrawLine(0, ph-1, pw-1, ph-1)
	if m.cfg.Arena.YCeiling != nil {
		m.canvas.DrawLine(0, 0, pw-1, 0)
		m.canvas.DrawLine(0, 0, 0, ph-1)
		m.canvas.DrawLine(pw-1, 0, pw-1, ph-1)
	}

	for _, t := range m.snap.Trail {
		x, y := m.project(t.X, t.Y)
		m.canvas.Set(x, y)
	}
	for _, p := range m.snap.Particles {
		x, y := m.project(p.X, p.Y)
		m.canvas.FillCircle(x, y, 1)
	}
	for _, b := range m.snap.Bodies {
		x, y := m.project(b.X, b.Y)
		m.canvas.DrawCircle(x, y, m.scale(b.Radius))
		m.canvas.FillCircle(x, y, 1)
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.cfg.Name)) + "\n")

	status := "RUNNING"
	if m.done {
		status = "COMPLETE"
	} else if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.heightHist) > 1 {
		chart := asciigraph.Plot(m.heightHist,
			asciigraph.Height(4),
			asciigraph.Width(28),
			asciigraph.Caption("Height"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d / %d", m.phase.Frame(), m.cfg.Frames)) + "\n")
	s.WriteString(labelStyle.Render("Bodies") + valueStyle.Render(fmt.Sprintf("%d", len(m.snap.Bodies))) + "\n")
	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d", len(m.snap.Particles))) + "\n")
	s.WriteString(labelStyle.Render("Bounces") + valueStyle.Render(fmt.Sprintf("%d", m.bounces)) + "\n")
	s.WriteString(labelStyle.Render("Trail") + valueStyle.Render(fmt.Sprintf("%d", len(m.snap.Trail))) + "\n")

	s.WriteString(helpStyle.Render("\n──────────────────\nSP:Pause R:Replay Q:Quit ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		help := `
  Space  - Pause/Resume
  R      - Restart the phase (same seed)
  Q      - Quit
  ?      - Toggle this help
`
		return help + "\n" + mainView
	}
	return mainView
}

// Run starts the live view for one phase config.
func Run(cfg *config.PhaseConfig) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}
