// Package tui renders a live, read-only view of a running simulation: the
// graph is re-solved at the configured frame rate and the component table
// redrawn. Editing stays outside; the only action offered is repairing
// burnt components.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/circsim/internal/circuit"
	"github.com/san-kum/circsim/internal/metrics"
	"github.com/san-kum/circsim/internal/solver"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	burntStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

type tickMsg time.Time

type Model struct {
	graph     *circuit.Graph
	name      string
	frameRate int
	frame     int
	paused    bool
}

func NewModel(g *circuit.Graph, name string, frameRate int) *Model {
	if frameRate <= 0 {
		frameRate = 30
	}
	return &Model{graph: g, name: name, frameRate: frameRate}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			for _, c := range m.graph.Components() {
				if c.State.Burnt {
					m.graph.Repair(c.ID)
				}
			}
		}
	case tickMsg:
		if !m.paused {
			solver.Solve(m.graph)
			m.frame++
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder

	status := "running"
	if m.paused {
		status = "paused"
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("circsim - %s", m.name)))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  frame %d (%s, %d fps)\n\n", m.frame, status, m.frameRate)))

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-12s %-9s %12s %12s %12s  %s\n",
		"id", "type", "current A", "drop V", "power W", "state")))
	for _, c := range m.graph.Components() {
		line := fmt.Sprintf("%-12s %-9s %12.6f %12.6f %12.6f  ",
			c.ID, c.Kind, c.State.Current, c.State.VoltageDrop, c.State.Power)
		if c.State.Burnt {
			b.WriteString(line + burntStyle.Render("BURNT") + "\n")
		} else {
			b.WriteString(line + okStyle.Render("ok") + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("residual %.2e", metrics.Residual(m.graph))))
	b.WriteString(dimStyle.Render("   [space] pause  [r] repair burnt  [q] quit\n"))
	return b.String()
}

// Run starts the live view and blocks until the user quits.
func Run(g *circuit.Graph, name string, frameRate int) error {
	_, err := tea.NewProgram(NewModel(g, name, frameRate)).Run()
	return err
}
