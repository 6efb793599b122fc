package blogform

import (
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/bloglist/domain"
	"github.com/deemkeen/bloglist/ui/common"
)

const (
	fieldTitle = iota
	fieldAuthor
	fieldURL
	fieldCount
)

var (
	labelStyle = lipgloss.NewStyle().
			Width(8).
			Foreground(lipgloss.Color(common.COLOR_DIM))

	focusedLabelStyle = lipgloss.NewStyle().
				Width(8).
				Foreground(lipgloss.Color(common.COLOR_ACCENT)).
				Bold(true)

	formStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(common.COLOR_ACCENT)).
			Padding(0, 1)
)

// Visibility is the collapsed/expanded state of the form. It is shared by
// pointer because the create command collapses the form from a goroutine.
type Visibility struct {
	visible atomic.Bool
}

func (v *Visibility) ToggleVisibility() {
	for {
		old := v.visible.Load()
		if v.visible.CompareAndSwap(old, !old) {
			return
		}
	}
}

func (v *Visibility) Visible() bool {
	return v.visible.Load()
}

type Model struct {
	visibility *Visibility
	inputs     []textinput.Model
	focused    int
}

func InitialModel() Model {
	placeholders := []string{"title", "author", "https://..."}
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = placeholders[i]
		inputs[i].Width = common.TextInputWidth
		inputs[i].CharLimit = 256
	}
	return Model{visibility: &Visibility{}, inputs: inputs}
}

// Toggler is handed to the create intent so it can collapse the form
func (m Model) Toggler() *Visibility {
	return m.visibility
}

func (m Model) Visible() bool {
	return m.visibility.Visible()
}

// Open expands the form and focuses the title field
func (m Model) Open() (Model, tea.Cmd) {
	if !m.visibility.Visible() {
		m.visibility.ToggleVisibility()
	}
	return m.focus(fieldTitle), textinput.Blink
}

// Draft returns the current field contents
func (m Model) Draft() domain.Draft {
	return domain.Draft{
		Title:  strings.TrimSpace(m.inputs[fieldTitle].Value()),
		Author: strings.TrimSpace(m.inputs[fieldAuthor].Value()),
		URL:    strings.TrimSpace(m.inputs[fieldURL].Value()),
	}
}

func (m Model) reset() Model {
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	return m.focus(fieldTitle)
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
	case common.PostCreatedMsg:
		return m.reset(), nil

	case tea.KeyMsg:
		if !m.visibility.Visible() {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			m.visibility.ToggleVisibility()
			return m, nil
		case "tab", "down":
			return m.focus((m.focused + 1) % fieldCount), textinput.Blink
		case "shift+tab", "up":
			return m.focus((m.focused + fieldCount - 1) % fieldCount), textinput.Blink
		case "enter":
			if m.focused < fieldURL {
				return m.focus(m.focused + 1), textinput.Blink
			}
			draft := m.Draft()
			return m, func() tea.Msg { return common.CreatePostMsg{Draft: draft} }
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.visibility.Visible() {
		return common.HelpStyle.Render("n: create new blog")
	}

	var s strings.Builder
	s.WriteString(common.CaptionStyle.Render("create new"))
	s.WriteString("\n\n")

	labels := []string{"title", "author", "url"}
	for i, input := range m.inputs {
		style := labelStyle
		if i == m.focused {
			style = focusedLabelStyle
		}
		s.WriteString(style.Render(labels[i]) + input.View() + "\n")
	}
	s.WriteString("\n")
	s.WriteString(common.HelpStyle.Render("enter: next/create • esc: cancel"))

	return formStyle.Render(s.String())
}
