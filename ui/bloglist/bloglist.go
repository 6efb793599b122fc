package bloglist

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/bloglist/app"
	"github.com/deemkeen/bloglist/domain"
	"github.com/deemkeen/bloglist/ui/common"
	"github.com/deemkeen/bloglist/util"
)

var (
	titleStyle = lipgloss.NewStyle().
			Align(lipgloss.Left).
			Bold(true)

	authorStyle = lipgloss.NewStyle().
			Align(lipgloss.Left).
			Foreground(lipgloss.Color(common.COLOR_USERNAME))

	detailStyle = lipgloss.NewStyle().
			Align(lipgloss.Left).
			Foreground(lipgloss.Color(common.COLOR_DIM)).
			PaddingLeft(2)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_DIM)).
			Italic(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_CRITICAL)).
			Bold(true)
)

type Model struct {
	Posts          []domain.Post
	Selected       int
	Offset         int
	Width          int
	Height         int
	session        domain.Session
	loggedIn       bool
	showingDetails bool
	confirming     bool
}

func InitialModel(width, height int) Model {
	return Model{
		Posts:  []domain.Post{},
		Width:  width,
		Height: height,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// SetPosts replaces the shown posts, keeping the selection on the same post
// when it is still there.
func (m Model) SetPosts(posts []domain.Post, s domain.Session, loggedIn bool) Model {
	selectedId := ""
	if m.Selected < len(m.Posts) {
		selectedId = m.Posts[m.Selected].Id
	}

	m.Posts = posts
	m.session = s
	m.loggedIn = loggedIn
	m.Selected = 0
	for i, p := range posts {
		if p.Id == selectedId {
			m.Selected = i
			break
		}
	}
	if m.Selected >= len(m.Posts) {
		m.Selected = max(0, len(m.Posts)-1)
	}
	if m.confirming && (len(m.Posts) == 0 || m.Posts[m.Selected].Id != selectedId) {
		m.confirming = false
	}
	m.Offset = m.offsetFor(m.Selected)
	return m
}

// Confirming reports whether the delete prompt is shown
func (m Model) Confirming() bool {
	return m.confirming
}

func (m Model) owned(p domain.Post) bool {
	return m.loggedIn && domain.IsOwner(p, m.session)
}

func (m Model) offsetFor(selected int) int {
	if selected < m.Offset {
		return selected
	}
	if selected >= m.Offset+common.DefaultItemsPerPage {
		return selected - common.DefaultItemsPerPage + 1
	}
	return m.Offset
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.confirming {
		switch keyMsg.String() {
		case "y", "Y":
			m.confirming = false
			post := m.Posts[m.Selected]
			return m, func() tea.Msg { return common.DeletePostMsg{Post: post} }
		case "n", "N", "esc":
			m.confirming = false
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
			m.Offset = m.offsetFor(m.Selected)
		}
		m.showingDetails = false
	case "down", "j":
		if len(m.Posts) > 0 && m.Selected < len(m.Posts)-1 {
			m.Selected++
			m.Offset = m.offsetFor(m.Selected)
		}
		m.showingDetails = false
	case "enter":
		if len(m.Posts) > 0 {
			m.showingDetails = !m.showingDetails
		}
	case "l":
		if len(m.Posts) > 0 {
			// snapshot of the post as shown
			post := m.Posts[m.Selected]
			return m, func() tea.Msg { return common.LikePostMsg{Post: post} }
		}
	case "d":
		if len(m.Posts) > 0 && m.owned(m.Posts[m.Selected]) {
			m.confirming = true
		}
	case "r":
		return m, func() tea.Msg { return common.RefreshMsg{} }
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(common.CaptionStyle.Render(fmt.Sprintf("blogs (%d)", len(m.Posts))))
	s.WriteString("\n\n")

	if len(m.Posts) == 0 {
		s.WriteString(emptyStyle.Render("No blogs yet."))
		return s.String()
	}

	width := max(20, common.DefaultWindowWidth(m.Width)-4)
	end := min(len(m.Posts), m.Offset+common.DefaultItemsPerPage)

	for i := m.Offset; i < end; i++ {
		post := m.Posts[i]
		line := util.TruncateWidth(post.Title, width/2) + " " + authorStyle.Render(post.Author)

		if i == m.Selected {
			selected := lipgloss.NewStyle().
				Background(lipgloss.Color(common.COLOR_ACCENT)).
				Foreground(lipgloss.Color(common.COLOR_WHITE)).
				Width(width)
			s.WriteString(selected.Render("> " + util.TruncateWidth(post.Title, width/2) + " " + post.Author))
		} else {
			s.WriteString("  " + titleStyle.Render(line))
		}
		s.WriteString("\n")

		if i == m.Selected && m.showingDetails {
			s.WriteString(detailStyle.Render(m.details(post)))
			s.WriteString("\n")
		}
	}

	if m.confirming {
		s.WriteString("\n")
		s.WriteString(promptStyle.Render(app.DeletePrompt(m.Posts[m.Selected]) + " (y/n)"))
	}

	return s.String()
}

func (m Model) details(post domain.Post) string {
	var d strings.Builder
	d.WriteString(post.URL + "\n")
	fmt.Fprintf(&d, "likes %d  (l: like)\n", post.Likes)
	d.WriteString("added by " + post.User.DisplayName())
	if m.owned(post) {
		d.WriteString("\n(d: remove)")
	}
	return d.String()
}
