// Package app turns user intents into collection and session operations and
// decides what the user is told about them.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/deemkeen/bloglist/domain"
	"github.com/deemkeen/bloglist/posts"
	"github.com/deemkeen/bloglist/session"
)

// Fixed user facing messages. Error details are logged, never shown.
const (
	MsgLoginFailed  = "Wrong username or password"
	MsgCreateFailed = "Failed to create blog"
	MsgLikeFailed   = "Failed to like blog"
	MsgDeleted      = "Blog deleted"
	MsgDeleteFailed = "Failed to delete blog"
	MsgLoadFailed   = "Failed to load blogs"
	MsgLoggedOut    = "Logged out"
)

// ErrNotOwner is returned when deleting a post the user did not create
var ErrNotOwner = fmt.Errorf("%w: only the owner can delete a post", posts.ErrDelete)

// Notifier shows a transient message
type Notifier interface {
	Notify(message string)
}

// Toggler is the collapsible blog form
type Toggler interface {
	ToggleVisibility()
}

// Confirmer asks the user a yes/no question
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// App wires the session, the collection and the notification slot together
type App struct {
	sessions *session.Manager
	posts    *posts.Manager
	notifier Notifier
}

func New(sessions *session.Manager, posts *posts.Manager, notifier Notifier) *App {
	return &App{sessions: sessions, posts: posts, notifier: notifier}
}

// WelcomeMessage is shown after a successful login
func WelcomeMessage(s domain.Session) string {
	return fmt.Sprintf("Welcome, %s!", s.DisplayName())
}

// CreatedMessage is shown after a post was created
func CreatedMessage(p domain.Post) string {
	return fmt.Sprintf("Blog %q by %s added", p.Title, p.Author)
}

// DeletePrompt is the confirmation question before deleting p
func DeletePrompt(p domain.Post) string {
	return fmt.Sprintf("Remove blog %q by %s?", p.Title, p.Author)
}

// Boot restores a stored session and loads the posts. It is called once
// when the program starts.
func (a *App) Boot(ctx context.Context) (domain.Session, bool) {
	s, ok := a.sessions.Restore(ctx)
	if ok {
		log.Printf("App: restored session of %s", s.Username)
	}

	if err := a.Refresh(ctx); err != nil {
		a.notifier.Notify(MsgLoadFailed)
	}
	return s, ok
}

// Refresh replaces the posts with the service's current list
func (a *App) Refresh(ctx context.Context) error {
	if _, err := a.posts.LoadAll(ctx); err != nil {
		log.Printf("App: failed to load posts: %v", err)
		return err
	}
	return nil
}

func (a *App) Login(ctx context.Context, username, password string) (domain.Session, error) {
	s, err := a.sessions.Login(ctx, username, password)
	if err != nil {
		log.Printf("App: login of %s failed: %v", username, err)
		a.notifier.Notify(MsgLoginFailed)
		return domain.Session{}, err
	}
	a.notifier.Notify(WelcomeMessage(s))
	return s, nil
}

// CreatePost creates a post and collapses form on success. form may be nil.
func (a *App) CreatePost(ctx context.Context, draft domain.Draft, form Toggler) (domain.Post, error) {
	post, err := a.posts.Create(ctx, draft)
	if err != nil {
		log.Printf("App: create post failed: %v", err)
		a.notifier.Notify(MsgCreateFailed)
		return domain.Post{}, err
	}
	a.notifier.Notify(CreatedMessage(post))
	if form != nil {
		form.ToggleVisibility()
	}
	return post, nil
}

// LikePost adds a like to the given snapshot of a post. Success is silent.
func (a *App) LikePost(ctx context.Context, post domain.Post) (domain.Post, error) {
	saved, err := a.posts.Like(ctx, post)
	if err != nil {
		log.Printf("App: like of %q failed: %v", post.Id, err)
		a.notifier.Notify(MsgLikeFailed)
		return domain.Post{}, err
	}
	return saved, nil
}

// DeletePost removes post after the user confirmed it. It reports whether
// the post was deleted; a declined confirmation is not an error.
func (a *App) DeletePost(ctx context.Context, post domain.Post, confirm Confirmer) (bool, error) {
	if !a.CanDelete(post) {
		log.Printf("App: refusing to delete %q, not owned by the current user", post.Id)
		a.notifier.Notify(MsgDeleteFailed)
		return false, ErrNotOwner
	}
	if confirm == nil || !confirm.Confirm(DeletePrompt(post)) {
		return false, nil
	}

	if err := a.posts.Remove(ctx, post.Id); err != nil {
		log.Printf("App: delete of %q failed: %v", post.Id, err)
		a.notifier.Notify(MsgDeleteFailed)
		return false, err
	}
	a.notifier.Notify(MsgDeleted)
	return true, nil
}

func (a *App) Logout() error {
	err := a.sessions.Logout()
	if err != nil {
		log.Printf("App: logout: %v", err)
	}
	a.notifier.Notify(MsgLoggedOut)
	return err
}

// CanDelete reports whether the logged in user owns post
func (a *App) CanDelete(post domain.Post) bool {
	s, ok := a.sessions.Current()
	if !ok {
		return false
	}
	return domain.IsOwner(post, s)
}

// View returns the posts, most liked first
func (a *App) View() []domain.Post {
	return a.posts.View()
}

// Post looks up the current state of post id
func (a *App) Post(id string) (domain.Post, bool) {
	return a.posts.Get(id)
}

func (a *App) Session() (domain.Session, bool) {
	return a.sessions.Current()
}

// IsAuthError reports whether err came from a rejected login
func IsAuthError(err error) bool {
	return errors.Is(err, session.ErrAuth)
}
