package prompt

import (
	"fmt"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/valisebuild/valise/internal/ui/styles"
)

// TextInputResult holds the result of a text input prompt.
type TextInputResult struct {
	Value     string
	Cancelled bool
}

type textInputModel struct {
	textInput textinput.Model
	prompt    string
	def       string
	done      bool
	cancelled bool
}

func (m textInputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m textInputModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}
	label := m.prompt
	if m.def != "" {
		label = fmt.Sprintf("%s %s", m.prompt, styles.MutedStyle.Render("["+m.def+"]"))
	}
	return tea.NewView(fmt.Sprintf("%s\n%s", label, m.textInput.View()))
}

// TextInput shows a text input prompt and returns the user's input.
// An empty submission falls back to def.
func TextInput(prompt, placeholder, def string) (TextInputResult, error) {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 156
	ti.SetWidth(50)

	model := textInputModel{
		textInput: ti,
		prompt:    prompt,
		def:       def,
	}
	p := tea.NewProgram(model)
	finalModel, err := p.Run()
	if err != nil {
		return TextInputResult{}, err
	}
	m := finalModel.(textInputModel)

	value := m.textInput.Value()
	if value == "" {
		value = m.def
	}
	return TextInputResult{
		Value:     value,
		Cancelled: m.cancelled,
	}, nil
}
