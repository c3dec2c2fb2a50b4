package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Field indices shared by the add form and the editor
const (
	fieldName = iota
	fieldEmail
	fieldPhone
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Name:  ",
	"Email: ",
	"Phone: ",
}

// fieldSet is a focusable group of name, email and phone inputs
type fieldSet struct {
	inputs []textinput.Model
	focus  int
}

func newFieldSet() fieldSet {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
		inputs[i].CharLimit = 200
		inputs[i].Prompt = ""
	}
	inputs[fieldName].Placeholder = "Name"
	inputs[fieldEmail].Placeholder = "Email"
	inputs[fieldPhone].Placeholder = "Phone Number"

	return fieldSet{inputs: inputs}
}

// set fills the inputs
func (f *fieldSet) set(name, email, phone string) {
	f.inputs[fieldName].SetValue(name)
	f.inputs[fieldEmail].SetValue(email)
	f.inputs[fieldPhone].SetValue(phone)
}

func (f fieldSet) values() (name, email, phone string) {
	return f.inputs[fieldName].Value(), f.inputs[fieldEmail].Value(), f.inputs[fieldPhone].Value()
}

func (f *fieldSet) reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
}

// focusOn moves focus to field i, wrapping at either end
func (f *fieldSet) focusOn(i int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (i + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
	return textinput.Blink
}

func (f *fieldSet) blur() {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

func (f *fieldSet) next() tea.Cmd { return f.focusOn(f.focus + 1) }

func (f *fieldSet) prev() tea.Cmd { return f.focusOn(f.focus - 1) }

func (f fieldSet) onLast() bool { return f.focus == fieldCount-1 }

// update forwards msg to the focused input
func (f *fieldSet) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f fieldSet) view() string {
	var out string
	for i, input := range f.inputs {
		out += labelStyle.Render(fieldLabels[i]) + input.View() + "\n\n"
	}
	return out
}
