package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/bnema/yamcl/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type gatherDoneMsg struct {
	err error
}

// notificationsMsg carries a registry snapshot into the progress program.
type notificationsMsg []domain.Notification

// gatherProgressModel follows one notification key and shows its latest
// running message next to a spinner.
type gatherProgressModel struct {
	spinner spinner.Model
	key     string
	message string
	task    tea.Cmd
	err     error
	done    bool
}

func newGatherProgressModel(key, message string, task tea.Cmd) gatherProgressModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return gatherProgressModel{
		spinner: s,
		key:     key,
		message: message,
		task:    task,
	}
}

func (m gatherProgressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.task)
}

func (m gatherProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case notificationsMsg:
		for _, n := range msg {
			if n.Key == m.key && n.Status == domain.NotificationRunning {
				m.message = n.Message
			}
		}
		return m, nil
	case gatherDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m gatherProgressModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.message)
}

// notificationRedirect routes registry snapshots to sink until the returned
// func is called.
type notificationRedirect func(sink func([]domain.Notification)) (restore func())

// runGatherProgress runs task behind a spinner that tracks the running
// notification under key. Snapshots arrive through redirect for as long as
// the program runs.
func runGatherProgress(
	ctx context.Context,
	output io.Writer,
	redirect notificationRedirect,
	key, initial string,
	task func(context.Context) error,
) error {
	taskCmd := func() tea.Msg {
		return gatherDoneMsg{err: task(ctx)}
	}

	p := tea.NewProgram(
		newGatherProgressModel(key, initial, taskCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	restore := redirect(func(list []domain.Notification) {
		p.Send(notificationsMsg(list))
	})
	finalModel, err := p.Run()
	restore()
	if err != nil {
		return err
	}

	result, ok := finalModel.(gatherProgressModel)
	if !ok {
		return fmt.Errorf("unexpected final progress model type %T", finalModel)
	}

	return result.err
}
