package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/bloglist/app"
	"github.com/deemkeen/bloglist/domain"
	"github.com/deemkeen/bloglist/ui/blogform"
	"github.com/deemkeen/bloglist/ui/bloglist"
	"github.com/deemkeen/bloglist/ui/common"
	"github.com/deemkeen/bloglist/ui/loginform"
	"github.com/deemkeen/bloglist/util"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_ACCENT)).
			Bold(true)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_USERNAME))

	modelStyle = lipgloss.NewStyle().
			Align(lipgloss.Top, lipgloss.Top).
			MarginLeft(1)
)

// App is the set of intents the interactive client dispatches
type App interface {
	Boot(ctx context.Context) (domain.Session, bool)
	Refresh(ctx context.Context) error
	Login(ctx context.Context, username, password string) (domain.Session, error)
	Logout() error
	CreatePost(ctx context.Context, draft domain.Draft, form app.Toggler) (domain.Post, error)
	LikePost(ctx context.Context, post domain.Post) (domain.Post, error)
	DeletePost(ctx context.Context, post domain.Post, confirm app.Confirmer) (bool, error)
	View() []domain.Post
	Session() (domain.Session, bool)
}

// Messages exposes the notification currently shown
type Messages interface {
	Current() (string, bool)
}

type MainModel struct {
	ctx      context.Context
	app      App
	messages Messages

	width    int
	height   int
	state    common.SessionState
	session  domain.Session
	loggedIn bool
	booted   bool

	loginModel loginform.Model
	listModel  bloglist.Model
	formModel  blogform.Model
}

func NewModel(ctx context.Context, a App, messages Messages, width, height int) MainModel {
	width = common.DefaultWindowWidth(width)
	height = common.DefaultWindowHeight(height)

	return MainModel{
		ctx:        ctx,
		app:        a,
		messages:   messages,
		width:      width,
		height:     height,
		state:      common.LoginView,
		loginModel: loginform.InitialModel(),
		listModel:  bloglist.InitialModel(width, height),
		formModel:  blogform.InitialModel(),
	}
}

func (m MainModel) Init() tea.Cmd {
	return tea.Batch(bootCmd(m.ctx, m.app), m.loginModel.Init())
}

func bootCmd(ctx context.Context, a App) tea.Cmd {
	return func() tea.Msg {
		s, ok := a.Boot(ctx)
		return common.BootedMsg{Session: s, LoggedIn: ok}
	}
}

func loginCmd(ctx context.Context, a App, username, password string) tea.Cmd {
	return func() tea.Msg {
		s, err := a.Login(ctx, username, password)
		if err != nil {
			return common.LoginFailedMsg{}
		}
		return common.LoggedInMsg{Session: s}
	}
}

func createPostCmd(ctx context.Context, a App, draft domain.Draft, form app.Toggler) tea.Cmd {
	return func() tea.Msg {
		post, err := a.CreatePost(ctx, draft, form)
		if err != nil {
			return common.PostsChangedMsg{}
		}
		return common.PostCreatedMsg{Post: post}
	}
}

func likePostCmd(ctx context.Context, a App, post domain.Post) tea.Cmd {
	return func() tea.Msg {
		a.LikePost(ctx, post)
		return common.PostsChangedMsg{}
	}
}

// deletePostCmd runs after the list already asked the user, so the
// confirmation is answered with yes.
func deletePostCmd(ctx context.Context, a App, post domain.Post) tea.Cmd {
	return func() tea.Msg {
		a.DeletePost(ctx, post, app.ConfirmFunc(func(string) bool { return true }))
		return common.PostsChangedMsg{}
	}
}

func refreshCmd(ctx context.Context, a App) tea.Cmd {
	return func() tea.Msg {
		a.Refresh(ctx)
		return common.PostsChangedMsg{}
	}
}

// State returns the screen currently shown
func (m MainModel) State() common.SessionState {
	return m.state
}

func (m MainModel) syncPosts() MainModel {
	m.listModel = m.listModel.SetPosts(m.app.View(), m.session, m.loggedIn)
	return m
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.listModel.Width = msg.Width
		m.listModel.Height = msg.Height
		return m, nil

	case common.NotificationMsg:
		// redraw only, the text is read from the slot
		return m, nil

	case common.BootedMsg:
		m.booted = true
		m.session, m.loggedIn = msg.Session, msg.LoggedIn
		if m.loggedIn {
			m.state = common.ListView
		}
		return m.syncPosts(), nil

	case common.LoginMsg:
		return m, loginCmd(m.ctx, m.app, msg.Username, msg.Password)

	case common.LoggedInMsg:
		m.session, m.loggedIn = msg.Session, true
		m.state = common.ListView
		m.loginModel = m.loginModel.Reset()
		return m.syncPosts(), nil

	case common.LoginFailedMsg:
		m.loginModel, cmd = m.loginModel.Update(msg)
		return m, cmd

	case common.CreatePostMsg:
		return m, createPostCmd(m.ctx, m.app, msg.Draft, m.formModel.Toggler())

	case common.PostCreatedMsg:
		m.formModel, cmd = m.formModel.Update(msg)
		return m.syncPosts(), cmd

	case common.LikePostMsg:
		return m, likePostCmd(m.ctx, m.app, msg.Post)

	case common.DeletePostMsg:
		return m, deletePostCmd(m.ctx, m.app, msg.Post)

	case common.RefreshMsg:
		return m, refreshCmd(m.ctx, m.app)

	case common.PostsChangedMsg:
		return m.syncPosts(), nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+l":
			if m.state == common.ListView {
				m.app.Logout()
				m.session, m.loggedIn = domain.Session{}, false
				if m.formModel.Visible() {
					m.formModel.Toggler().ToggleVisibility()
				}
				m.state = common.LoginView
				return m.syncPosts(), m.loginModel.Init()
			}
		}
	}

	switch m.state {
	case common.LoginView:
		m.loginModel, cmd = m.loginModel.Update(msg)
	case common.ListView:
		m, cmd = m.updateList(msg)
	}
	return m, cmd
}

// updateList routes input between the form, when it is open, and the list
func (m MainModel) updateList(msg tea.Msg) (MainModel, tea.Cmd) {
	var cmd tea.Cmd

	if m.formModel.Visible() {
		m.formModel, cmd = m.formModel.Update(msg)
		return m, cmd
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "n" && !m.listModel.Confirming() {
		m.formModel, cmd = m.formModel.Open()
		return m, cmd
	}

	m.listModel, cmd = m.listModel.Update(msg)
	return m, cmd
}

func (m MainModel) View() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render(util.GetNameAndVersion()))
	if m.loggedIn {
		s.WriteString("  " + userStyle.Render(m.session.DisplayName()+" logged in"))
	}
	s.WriteString("\n")

	if msg, ok := m.messages.Current(); ok {
		s.WriteString(common.NotificationStyle.Render(msg))
	}
	s.WriteString("\n\n")

	if !m.booted {
		s.WriteString(common.HelpStyle.Render("loading..."))
		return s.String()
	}

	switch m.state {
	case common.LoginView:
		s.WriteString(modelStyle.Render(m.loginModel.View()))
	case common.ListView:
		s.WriteString(modelStyle.Render(m.formModel.View()))
		s.WriteString("\n\n")
		s.WriteString(modelStyle.Render(m.listModel.View()))
		s.WriteString("\n\n")
		s.WriteString(common.HelpStyle.Render("j/k: move • enter: details • l: like • d: remove • n: new • r: refresh • ctrl+l: logout • ctrl+c: quit"))
	}

	return s.String()
}
