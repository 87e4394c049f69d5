// Package tui renders a live progress bar for long simulations.
// The simulator's progress hook feeds TrialMsg values into the
// program via Send; the model is display-only.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

const maxBarWidth = 60

// TrialMsg reports simulation progress.
type TrialMsg struct {
	Done  int
	Total int
}

// Model is the progress display.
type Model struct {
	bar   progress.Model
	done  int
	total int
}

// New creates a progress model for a run of total trials.
func New(total int) Model {
	return Model{
		bar:   progress.New(progress.WithDefaultGradient()),
		total: total,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		width := msg.Width - 4
		if width > maxBarWidth {
			width = maxBarWidth
		}
		m.bar.Width = width

	case TrialMsg:
		m.done = msg.Done
		if m.done >= m.total {
			return m, tea.Quit
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	pct := 0.0
	if m.total > 0 {
		pct = float64(m.done) / float64(m.total)
	}
	return fmt.Sprintf("%s\n%s\n%s\n",
		titleStyle.Render("simulating"),
		m.bar.ViewAs(pct),
		countStyle.Render(fmt.Sprintf("%d / %d trials", m.done, m.total)))
}
