// Package viz renders a live terminal view of a running control loop.
package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/steersim/internal/sim"
)

const (
	graphWidth      = 80
	graphHeight     = 12
	historyCapacity = 600
)

var (
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	statsStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// Tunable is implemented by controllers and plants that support live
// parameter adjustment.
type Tunable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64)
}

type TickMsg time.Time

// Model steps the loop at the frame rate and plots desired vs measured
// lateral acceleration.
type Model struct {
	loop       *sim.Loop
	controller sim.Controller
	vehicle    sim.Vehicle
	dt         float64
	t          float64
	running    bool
	title      string

	desiredHist  []float64
	measuredHist []float64
	steerHist    []float64
	last         sim.Tick

	params    map[string]float64
	paramKeys []string
	selected  int
}

func NewModel(loop *sim.Loop, controller sim.Controller, vehicle sim.Vehicle, dt float64, title string) Model {
	params := make(map[string]float64)
	if t, ok := controller.(Tunable); ok {
		for k, v := range t.GetParams() {
			params[k] = v
		}
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return Model{
		loop:         loop,
		controller:   controller,
		vehicle:      vehicle,
		dt:           dt,
		running:      true,
		title:        title,
		desiredHist:  make([]float64, 0, historyCapacity),
		measuredHist: make([]float64, 0, historyCapacity),
		steerHist:    make([]float64, 0, historyCapacity),
		params:       params,
		paramKeys:    keys,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	tk := m.loop.Tick(m.t)
	m.t += m.dt
	m.last = tk

	m.desiredHist = appendCapped(m.desiredHist, tk.Desired)
	m.measuredHist = appendCapped(m.measuredHist, tk.Measured)
	m.steerHist = appendCapped(m.steerHist, tk.Steer)
}

func appendCapped(hist []float64, v float64) []float64 {
	hist = append(hist, v)
	if len(hist) > historyCapacity {
		hist = hist[1:]
	}
	return hist
}

func (m *Model) reset() {
	m.t = 0
	m.controller.Reset()
	m.vehicle.Reset()
	m.last = sim.Tick{}
	m.desiredHist = m.desiredHist[:0]
	m.measuredHist = m.measuredHist[:0]
	m.steerHist = m.steerHist[:0]
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	val := m.params[key]
	if val == 0 {
		val = 1e-6
	}
	newVal := val * factor
	m.params[key] = newVal
	if t, ok := m.controller.(Tunable); ok {
		t.SetParam(key, newVal)
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n")

	if len(m.desiredHist) > 1 {
		graph := asciigraph.PlotMany(
			[][]float64{m.desiredHist, m.measuredHist},
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("desired vs measured lataccel"),
			asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Green),
		)
		s.WriteString(graphStyle.Render(graph) + "\n")

		steer := asciigraph.Plot(m.steerHist,
			asciigraph.Height(graphHeight/2),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("steer command"),
		)
		s.WriteString(graphStyle.Render(steer) + "\n")
	}

	var stats strings.Builder
	stats.WriteString(row("t", fmt.Sprintf("%.2fs", m.last.T)))
	stats.WriteString(row("desired", fmt.Sprintf("%+.4f", m.last.Desired)))
	stats.WriteString(row("measured", fmt.Sprintf("%+.4f", m.last.Measured)))
	stats.WriteString(row("error", fmt.Sprintf("%+.4f", m.last.Desired-m.last.Measured)))
	stats.WriteString(row("steer", fmt.Sprintf("%+.5f", m.last.Steer)))
	stats.WriteString(row("speed", fmt.Sprintf("%.1f", m.last.Speed)))
	for i, key := range m.paramKeys {
		line := row(key, fmt.Sprintf("%.4f", m.params[key]))
		if i == m.selected {
			line = activeParamStyle.Render(strings.TrimRight(line, "\n")) + "\n"
		}
		stats.WriteString(line)
	}
	s.WriteString(statsStyle.Render(stats.String()) + "\n")

	s.WriteString(helpStyle.Render("space pause · r reset · tab select gain · ↑/↓ adjust · q quit"))
	return s.String()
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}
