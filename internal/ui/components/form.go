package components

import (
	"strings"

	"gphotos-admin/internal/ui/styles"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// FormField defines a form field configuration.
type FormField struct {
	Key         string
	Label       string
	Placeholder string
	Default     string
	Required    bool
	Validator   func(string) error
}

// FormSubmittedMsg is emitted when a valid form is submitted
type FormSubmittedMsg struct {
	FormID string
	Values map[string]string
}

// FormCancelledMsg is emitted when the form is dismissed
type FormCancelledMsg struct {
	FormID string
}

// FormModel is an interactive form component.
type FormModel struct {
	id          string
	title       string
	description string
	fields      []FormField
	inputs      []textinput.Model
	focused     int
	errors      []string
	width       int
}

// FormOption configures a FormModel.
type FormOption func(*FormModel)

// NewForm creates a new form with the given fields.
func NewForm(id string, fields []FormField, opts ...FormOption) FormModel {
	inputs := make([]textinput.Model, len(fields))
	for i, field := range fields {
		ti := textinput.New()
		ti.Placeholder = field.Placeholder
		ti.SetValue(field.Default)
		ti.CharLimit = 256
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		inputs[i] = ti
	}

	m := FormModel{
		id:     id,
		fields: fields,
		inputs: inputs,
		errors: make([]string, len(fields)),
		width:  50,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithFormTitle sets the form title.
func WithFormTitle(title string) FormOption {
	return func(m *FormModel) {
		m.title = title
	}
}

// WithFormDescription sets the form description.
func WithFormDescription(desc string) FormOption {
	return func(m *FormModel) {
		m.description = desc
	}
}

// WithFormWidth sets the form width.
func WithFormWidth(w int) FormOption {
	return func(m *FormModel) {
		m.width = w
		for i := range m.inputs {
			m.inputs[i].Width = w - 4
		}
	}
}

// ID returns the identifier passed to NewForm
func (m FormModel) ID() string {
	return m.id
}

// Init implements tea.Model.
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles navigation, submission and input editing
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			id := m.id
			return m, func() tea.Msg { return FormCancelledMsg{FormID: id} }
		case "tab", "down":
			m.focusNext()
			return m, nil
		case "shift+tab", "up":
			m.focusPrev()
			return m, nil
		case "ctrl+s":
			return m.submit()
		case "enter":
			if m.focused == len(m.fields)-1 {
				return m.submit()
			}
			m.focusNext()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m FormModel) submit() (FormModel, tea.Cmd) {
	if !m.validate() {
		return m, nil
	}
	id, values := m.id, m.Values()
	return m, func() tea.Msg { return FormSubmittedMsg{FormID: id, Values: values} }
}

// focusNext moves focus to the next field.
func (m *FormModel) focusNext() {
	m.inputs[m.focused].Blur()
	m.focused = (m.focused + 1) % len(m.fields)
	m.inputs[m.focused].Focus()
}

// focusPrev moves focus to the previous field.
func (m *FormModel) focusPrev() {
	m.inputs[m.focused].Blur()
	m.focused--
	if m.focused < 0 {
		m.focused = len(m.fields) - 1
	}
	m.inputs[m.focused].Focus()
}

// validate validates all fields.
func (m *FormModel) validate() bool {
	valid := true
	for i, field := range m.fields {
		value := m.inputs[i].Value()
		m.errors[i] = ""

		if field.Required && strings.TrimSpace(value) == "" {
			m.errors[i] = "This field is required"
			valid = false
			continue
		}
		if field.Validator != nil && value != "" {
			if err := field.Validator(value); err != nil {
				m.errors[i] = err.Error()
				valid = false
			}
		}
	}
	return valid
}

// SetError attaches an error to a field, e.g. one reported by the server
func (m *FormModel) SetError(key, msg string) {
	for i, f := range m.fields {
		if f.Key == key {
			m.errors[i] = msg
		}
	}
}

// View implements tea.Model.
func (m FormModel) View() string {
	var b strings.Builder

	if m.title != "" {
		b.WriteString(styles.Theme.Title.Render(m.title))
		b.WriteString("\n")
	}
	if m.description != "" {
		b.WriteString(styles.Theme.Muted.Render(m.description))
		b.WriteString("\n")
	}
	if m.title != "" || m.description != "" {
		b.WriteString("\n")
	}

	for i, field := range m.fields {
		label := field.Label
		if field.Required {
			label += " *"
		}
		if i == m.focused {
			b.WriteString(styles.Theme.Selected.Render(label))
		} else {
			b.WriteString(styles.Theme.FormLabel.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
		if m.errors[i] != "" {
			b.WriteString(styles.Theme.FormError.Render("✗ " + m.errors[i]))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Values returns the form values as a map.
func (m FormModel) Values() map[string]string {
	values := make(map[string]string)
	for i, field := range m.fields {
		values[field.Key] = m.inputs[i].Value()
	}
	return values
}

// Value returns the value for a specific field.
func (m FormModel) Value(key string) string {
	for i, field := range m.fields {
		if field.Key == key {
			return m.inputs[i].Value()
		}
	}
	return ""
}

// SetValue replaces the value of a field
func (m *FormModel) SetValue(key, value string) {
	for i, field := range m.fields {
		if field.Key == key {
			m.inputs[i].SetValue(value)
		}
	}
}

// FocusedKey returns the key of the focused field
func (m FormModel) FocusedKey() string {
	if len(m.fields) == 0 {
		return ""
	}
	return m.fields[m.focused].Key
}

// Focus moves focus to the field with key
func (m *FormModel) Focus(key string) {
	for i, field := range m.fields {
		if field.Key == key {
			m.inputs[m.focused].Blur()
			m.focused = i
			m.inputs[i].Focus()
		}
	}
}
