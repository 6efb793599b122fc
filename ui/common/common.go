package common

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/bloglist/domain"
)

const (
	COLOR_ACCENT    = "62"
	COLOR_SECONDARY = "205"
	COLOR_USERNAME  = "39"
	COLOR_DIM       = "241"
	COLOR_HELP      = "245"
	COLOR_WHITE     = "255"
	COLOR_ERROR     = "196"
	COLOR_SUCCESS   = "42"
	COLOR_CRITICAL  = "160"
)

const (
	DefaultWidth        = 100
	DefaultHeight       = 30
	DefaultItemsPerPage = 8
	TextInputWidth      = 40
)

// SessionState is the screen the main model shows
type SessionState uint

const (
	LoginView SessionState = iota
	ListView
)

var (
	CaptionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_SECONDARY)).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_HELP))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_ERROR)).
			Bold(true)

	NotificationStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(COLOR_WHITE)).
				Background(lipgloss.Color(COLOR_ACCENT)).
				Padding(0, 1)
)

func DefaultWindowWidth(width int) int {
	if width <= 0 {
		return DefaultWidth
	}
	return width
}

func DefaultWindowHeight(height int) int {
	if height <= 0 {
		return DefaultHeight
	}
	return height
}

// Intents, sent by screens and handled by the main model

type LoginMsg struct {
	Username string
	Password string
}

type CreatePostMsg struct {
	Draft domain.Draft
}

type LikePostMsg struct {
	Post domain.Post
}

// DeletePostMsg is sent after the user answered the delete prompt with yes
type DeletePostMsg struct {
	Post domain.Post
}

type RefreshMsg struct{}

// Results, produced by commands and handled on the update loop

type BootedMsg struct {
	Session  domain.Session
	LoggedIn bool
}

type LoggedInMsg struct {
	Session domain.Session
}

type LoginFailedMsg struct{}

// PostsChangedMsg asks the list to re-read the collection view
type PostsChangedMsg struct{}

// PostCreatedMsg is sent after the service accepted a new post
type PostCreatedMsg struct {
	Post domain.Post
}

// NotificationMsg is sent whenever the notification slot changes
type NotificationMsg struct {
	Message string
}
