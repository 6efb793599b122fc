package loginform

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/bloglist/ui/common"
)

const (
	fieldUsername = iota
	fieldPassword
	fieldCount
)

var (
	labelStyle = lipgloss.NewStyle().
			Width(10).
			Foreground(lipgloss.Color(common.COLOR_DIM))

	focusedLabelStyle = lipgloss.NewStyle().
				Width(10).
				Foreground(lipgloss.Color(common.COLOR_ACCENT)).
				Bold(true)
)

type Model struct {
	inputs  []textinput.Model
	focused int
}

func InitialModel() Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Width = common.TextInputWidth
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.Width = common.TextInputWidth
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return Model{inputs: []textinput.Model{username, password}}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Username returns the current content of the username field
func (m Model) Username() string {
	return strings.TrimSpace(m.inputs[fieldUsername].Value())
}

// Focused returns the index of the focused field
func (m Model) Focused() int {
	return m.focused
}

// Reset clears both fields and focuses the username
func (m Model) Reset() Model {
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	return m.focus(fieldUsername)
}

func (m Model) focus(field int) Model {
	m.focused = field
	for i := range m.inputs {
		if i == field {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case common.LoginFailedMsg:
		m.inputs[fieldPassword].Reset()
		return m.focus(fieldPassword), nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			return m.focus((m.focused + 1) % fieldCount), textinput.Blink
		case "shift+tab", "up":
			return m.focus((m.focused + fieldCount - 1) % fieldCount), textinput.Blink
		case "enter":
			if m.focused == fieldUsername {
				return m.focus(fieldPassword), textinput.Blink
			}
			login := common.LoginMsg{
				Username: m.Username(),
				Password: m.inputs[fieldPassword].Value(),
			}
			return m, func() tea.Msg { return login }
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(common.CaptionStyle.Render("log in to application"))
	s.WriteString("\n\n")

	labels := []string{"username", "password"}
	for i, input := range m.inputs {
		style := labelStyle
		if i == m.focused {
			style = focusedLabelStyle
		}
		s.WriteString(style.Render(labels[i]) + input.View() + "\n")
	}

	s.WriteString("\n")
	s.WriteString(common.HelpStyle.Render("tab: next field • enter: login • ctrl+c: quit"))
	return s.String()
}
