package prompt

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func keyPress(s string) tea.Msg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestConfirmModel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		def           bool
		key           string
		wantConfirmed bool
		wantCancelled bool
	}{
		{"yes", false, "y", true, false},
		{"no", true, "n", false, false},
		{"enter takes default no", false, "enter", false, false},
		{"enter takes default yes", true, "enter", true, false},
		{"esc cancels", false, "esc", false, true},
		{"q cancels", true, "q", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			model := confirmModel{prompt: "Overwrite valise.toml?", def: tt.def}
			updated, cmd := model.Update(keyPress(tt.key))
			m := updated.(confirmModel)

			if !m.done {
				t.Fatal("model not done after keypress")
			}
			if cmd == nil {
				t.Error("expected tea.Quit command")
			}
			if m.confirmed != tt.wantConfirmed {
				t.Errorf("confirmed = %v, want %v", m.confirmed, tt.wantConfirmed)
			}
			if m.cancelled != tt.wantCancelled {
				t.Errorf("cancelled = %v, want %v", m.cancelled, tt.wantCancelled)
			}
		})
	}
}

func TestConfirmModel_View(t *testing.T) {
	t.Parallel()

	m := confirmModel{prompt: "Overwrite valise.toml?", def: false}
	if got := ansi.Strip(m.View()); !strings.Contains(got, "[y/N]") {
		t.Errorf("View() = %q, want the default-no hint", got)
	}

	m.def = true
	if got := ansi.Strip(m.View()); !strings.Contains(got, "[Y/n]") {
		t.Errorf("View() = %q, want the default-yes hint", got)
	}

	m.done = true
	if got := m.View(); got != "" {
		t.Errorf("View() after done = %q, want empty", got)
	}
}
