package bubble

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lixenwraith/ascii-glitch/clock"
)

var footerStyle = lipgloss.NewStyle().Faint(true).MarginTop(1)

// taskMsg carries one loop task into Update
type taskMsg struct {
	fn func()
}

// Model runs loop tasks inside Update so the engine shares bubbletea's goroutine
type Model struct {
	loop    *clock.Loop
	surface *Surface
	status  func() string
	width   int
}

// NewModel creates a model draining loop; status, if set, feeds the footer
func NewModel(loop *clock.Loop, s *Surface, status func() string) Model {
	return Model{loop: loop, surface: s, status: status}
}

// waitForTask blocks on the loop queue in a command goroutine
// Returns nil once the loop is stopped, which ends the wait chain
func waitForTask(loop *clock.Loop) tea.Cmd {
	return func() tea.Msg {
		select {
		case fn := <-loop.C():
			return taskMsg{fn: fn}
		case <-loop.Done():
			return nil
		}
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return waitForTask(m.loop)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskMsg:
		if msg.fn != nil {
			m.loop.Exec(msg.fn)
		}
		return m, waitForTask(m.loop)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion || msg.Action == tea.MouseActionPress {
			m.surface.PointerAt(msg.X, msg.Y)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	view := m.surface.Render()
	if m.status == nil {
		return view
	}
	footer := footerStyle
	if m.width > 0 {
		footer = footer.MaxWidth(m.width)
	}
	return lipgloss.JoinVertical(lipgloss.Left, view, footer.Render(m.status()))
}
