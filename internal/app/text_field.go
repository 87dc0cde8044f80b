package app

import (
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
)

// TextField is a single-line input used for the note title, the search
// box, the tag box, and the import path prompt.
type TextField struct {
	input textinput.Model
}

func NewTextField(width int, placeholder string) *TextField {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = 512
	input.SetWidth(width)
	return &TextField{input: input}
}

func (f *TextField) Resize(width int) {
	f.input.SetWidth(width)
}

func (f *TextField) Focus() {
	f.input.Focus()
}

func (f *TextField) Blur() {
	f.input.Blur()
}

func (f *TextField) Focused() bool {
	return f.input.Focused()
}

func (f *TextField) SetValue(value string) {
	f.input.SetValue(value)
	f.input.CursorEnd()
}

func (f *TextField) Value() string {
	return f.input.Value()
}

func (f *TextField) Clear() {
	f.input.SetValue("")
}

func (f *TextField) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

func (f *TextField) View() string {
	return f.input.View()
}
