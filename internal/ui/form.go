package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// formField is a text input, or a selector when options is set.
type formField struct {
	label   string
	input   textinput.Model
	options []string
	choice  int
}

func newTextField(label, placeholder string, limit int) formField {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Prompt = ""
	in.TextStyle = TextStyle
	in.PlaceholderStyle = HelpDescStyle
	return formField{label: label, input: in}
}

func newPasswordField(label string) formField {
	f := newTextField(label, "••••••••", 128)
	f.input.EchoMode = textinput.EchoPassword
	f.input.EchoCharacter = '•'
	return f
}

func newSelectField(label string, options []string) formField {
	return formField{label: label, options: options, choice: -1}
}

func (f formField) value() string {
	if f.options != nil {
		if f.choice < 0 || f.choice >= len(f.options) {
			return ""
		}
		return f.options[f.choice]
	}
	return strings.TrimSpace(f.input.Value())
}

// form is an ordered set of fields with one focused at a time.
type form struct {
	fields  []formField
	focused int
	keys    FormKeyMap
}

func newForm(keys FormKeyMap, fields ...formField) form {
	f := form{fields: fields, keys: keys}
	f.focus(0)
	return f
}

func (f *form) focus(i int) {
	if len(f.fields) == 0 {
		return
	}
	if f.fields[f.focused].options == nil {
		f.fields[f.focused].input.Blur()
	}
	f.focused = (i%len(f.fields) + len(f.fields)) % len(f.fields)
	if f.fields[f.focused].options == nil {
		f.fields[f.focused].input.Focus()
	}
}

func (f *form) next() { f.focus(f.focused + 1) }
func (f *form) prev() { f.focus(f.focused - 1) }

func (f *form) value(i int) string {
	return f.fields[i].value()
}

func (f *form) reset() {
	for i := range f.fields {
		f.fields[i].input.SetValue("")
		f.fields[i].choice = -1
	}
	f.focus(0)
}

// update handles field navigation and input. It reports whether the key
// asked for submission.
func (f *form) update(msg tea.Msg) (submit bool, cmd tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, f.keys.Submit):
			return true, nil
		case keyMsg.String() == "enter":
			if f.focused == len(f.fields)-1 {
				return true, nil
			}
			f.next()
			return false, nil
		case key.Matches(keyMsg, f.keys.NextField):
			f.next()
			return false, nil
		case key.Matches(keyMsg, f.keys.PrevField):
			f.prev()
			return false, nil
		}

		field := &f.fields[f.focused]
		if field.options != nil {
			switch {
			case key.Matches(keyMsg, f.keys.OptionNext):
				field.choice = (field.choice + 1) % len(field.options)
			case key.Matches(keyMsg, f.keys.OptionPrev):
				if field.choice <= 0 {
					field.choice = len(field.options) - 1
				} else {
					field.choice--
				}
			}
			return false, nil
		}
	}

	field := &f.fields[f.focused]
	if field.options != nil {
		return false, nil
	}
	field.input, cmd = field.input.Update(msg)
	return false, cmd
}

func (f *form) view(width int) string {
	inputWidth := max(20, width-8)
	var parts []string
	for i, field := range f.fields {
		focused := i == f.focused
		var body string
		if field.options != nil {
			body = renderSelector(field, focused)
		} else {
			field.input.Width = inputWidth
			body = field.input.View()
		}
		parts = append(parts, renderFormField(field.label, body, focused, inputWidth))
	}
	return strings.Join(parts, "\n")
}

func renderSelector(f formField, focused bool) string {
	current := f.value()
	if current == "" {
		current = "Select a category"
	}
	if focused {
		return HelpKeyStyle.Render("‹ ") + TextStyle.Render(current) + HelpKeyStyle.Render(" ›")
	}
	return TextStyle.Render(current)
}

func renderFormField(label, body string, focused bool, width int) string {
	style := BorderStyle
	if focused {
		style = ActiveBorderStyle
	}

	field := lipgloss.JoinVertical(
		lipgloss.Left,
		LabelStyle.Render(label),
		body,
	)

	return style.Width(width).Render(field)
}
