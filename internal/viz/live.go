package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/motionlab/internal/loop"
)

const graphWindow = 150

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// TickMsg advances playback by one control cycle.
type TickMsg time.Time

// Live replays a recorded run at its real control-cycle cadence.
type Live struct {
	result     *loop.Result
	sampleTime float64
	idx        int
	joint      int
	playing    bool
}

func NewLive(result *loop.Result, sampleTime float64) Live {
	return Live{
		result:     result,
		sampleTime: sampleTime,
		playing:    true,
	}
}

func (m Live) tick() tea.Cmd {
	return tea.Tick(time.Duration(m.sampleTime*float64(time.Second)), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Live) Init() tea.Cmd {
	return m.tick()
}

func (m Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
		case "r":
			m.idx = 0
		case "j":
			m.joint = m.nextJoint()
		}
	case TickMsg:
		if m.playing && m.idx < len(m.result.Points)-1 {
			m.idx++
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Live) nextJoint() int {
	if len(m.result.Points) == 0 {
		return 0
	}
	n := len(m.result.Points[0].Joint.Robot.Position)
	if n == 0 {
		return 0
	}
	return (m.joint + 1) % n
}

func (m Live) View() string {
	if len(m.result.Points) == 0 {
		return "no samples\n"
	}

	lo := m.idx - graphWindow
	if lo < 0 {
		lo = 0
	}
	window := make([]float64, 0, m.idx-lo+1)
	for _, p := range m.result.Points[lo : m.idx+1] {
		if m.joint < len(p.Joint.Robot.Position) {
			window = append(window, p.Joint.Robot.Position[m.joint])
		}
	}

	graph := "no data for joint"
	if len(window) > 1 {
		graph = asciigraph.Plot(window, asciigraph.Height(12), asciigraph.Width(60))
	}

	p := m.result.Points[m.idx]
	var stats strings.Builder
	stats.WriteString(row("t", fmt.Sprintf("%.3f s", m.result.Times[m.idx])))
	stats.WriteString(row("cycle", fmt.Sprintf("%d / %d", m.idx+1, len(m.result.Points))))
	for i, pos := range p.Joint.Robot.Position {
		stats.WriteString(row(fmt.Sprintf("j%d", i), fmt.Sprintf("%+8.4f rad  %+8.4f rad/s", pos, p.Joint.Robot.Velocity[i])))
	}
	stats.WriteString(row("xyz", fmt.Sprintf("%+.3f %+.3f %+.3f", p.Cartesian.Position.X, p.Cartesian.Position.Y, p.Cartesian.Position.Z)))

	state := "paused"
	if m.playing {
		state = "playing"
	}
	header := headerStyle.Render(fmt.Sprintf("motionlab live — joint %d — %s", m.joint, state))
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		graphStyle.Render(graph),
		statsStyle.Render(stats.String()),
	)
	help := helpStyle.Render("space pause · j next joint · r restart · q quit")

	return header + "\n" + body + "\n" + help + "\n"
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}
