package prompt

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/valisebuild/valise/internal/ui/styles"
)

// ConfirmResult holds the result of a confirmation prompt.
type ConfirmResult struct {
	Confirmed bool
	Cancelled bool
}

type confirmModel struct {
	prompt    string
	def       bool
	confirmed bool
	done      bool
	cancelled bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "y", "Y":
			m.confirmed = true
			m.done = true
			return m, tea.Quit
		case "n", "N":
			m.confirmed = false
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "q", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		case "enter":
			m.confirmed = m.def
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	hint := "[y/N]"
	if m.def {
		hint = "[Y/n]"
	}
	return fmt.Sprintf("%s %s ", m.prompt, styles.MutedStyle.Render(hint))
}

// Confirm asks a yes/no question; enter accepts def. Callers guarding
// an overwrite pass false so a stray enter cannot approve it.
func Confirm(prompt string, def bool) (ConfirmResult, error) {
	model := confirmModel{prompt: prompt, def: def}
	p := tea.NewProgram(model)
	finalModel, err := p.Run()
	if err != nil {
		return ConfirmResult{}, err
	}
	m := finalModel.(confirmModel)
	return ConfirmResult{
		Confirmed: m.confirmed,
		Cancelled: m.cancelled,
	}, nil
}
