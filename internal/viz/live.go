package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/matheuswhite/aule/internal/control"
	"github.com/matheuswhite/aule/internal/loop"
	"github.com/matheuswhite/aule/internal/signal"
)

const (
	graphWidth      = 70
	graphHeight     = 12
	historyCapacity = 600
)

var (
	headerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	statsStyle      = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(34)
	graphStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 2)
	labelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeGainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model is the live view: it owns the loop and its clock, advances them on
// every frame, and plots a sliding window of the trajectories. When the
// controller is a PID its gains can be retuned from the keyboard mid-run.
type Model struct {
	runner *loop.Runner[signal.Continuous]
	clock  *signal.Clock[signal.Continuous]
	pid    *control.PID[signal.Continuous]

	scenario      string
	stepsPerFrame int
	running       bool
	done          bool

	last      loop.Step
	setpoints []float64
	outputs   []float64

	gainKeys     []string
	initialGains map[string]float64
	selected     int
}

// NewModel wires a built loop into the live view. The view advances the
// clock itself, so the runner and clock must not be driven elsewhere.
func NewModel(scenario string, runner *loop.Runner[signal.Continuous], clock *signal.Clock[signal.Continuous]) Model {
	m := Model{
		runner:    runner,
		clock:     clock,
		scenario:  scenario,
		running:   true,
		setpoints: make([]float64, 0, historyCapacity),
		outputs:   make([]float64, 0, historyCapacity),
	}

	// Frames arrive at 60Hz; batch enough steps per frame to track the
	// wall clock when dt is small.
	frame := time.Second / 60
	m.stepsPerFrame = int(frame / clock.Step())
	if m.stepsPerFrame < 1 {
		m.stepsPerFrame = 1
	}

	if pid, ok := runner.Controller().(*control.PID[signal.Continuous]); ok {
		m.pid = pid
		kp, ki, kd := pid.Gains()
		m.gainKeys = []string{"kp", "ki", "kd"}
		m.initialGains = map[string]float64{"kp": kp, "ki": ki, "kd": kd}
	}
	return m
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
			m.cycleGain()
		case "up", "k":
			m.adjustGain(1.05)
		case "down", "j":
			m.adjustGain(0.95)
		}
	case TickMsg:
		if m.running && !m.done {
			m.step()
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// step advances the loop by one frame's worth of ticks.
func (m *Model) step() {
	for i := 0; i < m.stepsPerFrame; i++ {
		tick, ok := m.clock.Next()
		if !ok {
			m.done = true
			return
		}
		m.last = m.runner.Step(tick)

		m.setpoints = append(m.setpoints, m.last.Setpoint)
		m.outputs = append(m.outputs, m.last.Output)
		if len(m.outputs) > historyCapacity {
			m.setpoints = m.setpoints[1:]
			m.outputs = m.outputs[1:]
		}
	}
}

func (m *Model) reset() {
	m.runner.Reset()
	m.clock.Reset()
	m.setpoints = m.setpoints[:0]
	m.outputs = m.outputs[:0]
	m.last = loop.Step{}
	m.done = false
}

func (m *Model) cycleGain() {
	if m.pid == nil {
		return
	}
	m.selected = (m.selected + 1) % len(m.gainKeys)
}

func (m *Model) adjustGain(factor float64) {
	if m.pid == nil {
		return
	}
	kp, ki, kd := m.pid.Gains()
	switch m.gainKeys[m.selected] {
	case "kp":
		kp *= factor
	case "ki":
		ki *= factor
	case "kd":
		kd *= factor
	}
	m.pid.SetGains(kp, ki, kd)
}

func (m Model) View() string {
	status := "RUNNING"
	if m.done {
		status = "DONE"
	} else if !m.running {
		status = "PAUSED"
	}

	var graph string
	if len(m.outputs) > 1 {
		graph = asciigraph.PlotMany(
			[][]float64{m.setpoints, m.outputs},
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("setpoint / output"),
			asciigraph.SeriesColors(asciigraph.Gray, asciigraph.Green),
		)
	} else {
		graph = "waiting for samples..."
	}
	graphView := graphStyle.Render(graph)

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.scenario)) + "\n")
	s.WriteString(status + "\n\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.last.Time)) + "\n")
	s.WriteString(labelStyle.Render("Setpoint") + valueStyle.Render(fmt.Sprintf("%.4f", m.last.Setpoint)) + "\n")
	s.WriteString(labelStyle.Render("Control") + valueStyle.Render(fmt.Sprintf("%.4f", m.last.Control)) + "\n")
	s.WriteString(labelStyle.Render("Output") + valueStyle.Render(fmt.Sprintf("%.4f", m.last.Output)) + "\n")

	if m.pid != nil {
		s.WriteString("\nGAINS\n")
		kp, ki, kd := m.pid.Gains()
		gains := map[string]float64{"kp": kp, "ki": ki, "kd": kd}
		for i, key := range m.gainKeys {
			line := fmt.Sprintf("%-4s %s %.3f", key, gainBar(gains[key], m.initialGains[key]), gains[key])
			if i == m.selected {
				s.WriteString(activeGainStyle.Render("> "+line) + "\n")
			} else {
				s.WriteString("  " + labelStyle.Render(line) + "\n")
			}
		}
	}

	s.WriteString(helpStyle.Render("\n──────────────────\nSP:Pause R:Reset Q:Quit\nTab:Gain ↑↓:Tune"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, graphView, statsView)
}

func gainBar(val, initial float64) string {
	const width = 10
	ratio := 0.5
	if initial != 0 {
		ratio = val / (2.0 * initial)
	}
	if ratio > 1 {
		ratio = 1
	} else if ratio < 0 {
		ratio = 0
	}
	filled := int(ratio * float64(width))
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}

// Run starts the live view and blocks until the user quits.
func Run(scenario string, runner *loop.Runner[signal.Continuous], clock *signal.Clock[signal.Continuous]) error {
	p := tea.NewProgram(NewModel(scenario, runner, clock))
	_, err := p.Run()
	return err
}
