package posts

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/deemkeen/bloglist/domain"
)

var (
	ErrCreate = errors.New("create post failed")
	ErrUpdate = errors.New("update post failed")
	ErrDelete = errors.New("delete post failed")

	// ErrMissingIdentifier is a local precondition failure of Like; it never
	// reaches the network and also matches ErrUpdate.
	ErrMissingIdentifier = fmt.Errorf("%w: missing post identifier", ErrUpdate)
)

// API is the part of the API client the collection needs
type API interface {
	ListPosts(ctx context.Context) ([]domain.Post, error)
	CreatePost(ctx context.Context, draft domain.Draft) (domain.Post, error)
	UpdatePost(ctx context.Context, id string, fields domain.UpdateFields) (domain.Post, error)
	DeletePost(ctx context.Context, id string) error
}

// Manager owns the in-memory posts, keyed by identifier. The mapping only
// changes after the service acknowledged a mutation.
type Manager struct {
	api API

	mu    sync.RWMutex
	posts map[string]domain.Post
}

func NewManager(api API) *Manager {
	return &Manager{api: api, posts: map[string]domain.Post{}}
}

// LoadAll fetches every post and replaces the mapping with the result
func (m *Manager) LoadAll(ctx context.Context) ([]domain.Post, error) {
	list, err := m.api.ListPosts(ctx)
	if err != nil {
		return nil, err
	}

	fresh := make(map[string]domain.Post, len(list))
	for _, p := range list {
		if p.Id == "" {
			log.Printf("Posts: skipping listed post without id: %q", p.Title)
			continue
		}
		fresh[p.Id] = p
	}

	m.mu.Lock()
	m.posts = fresh
	m.mu.Unlock()

	return list, nil
}

// Create sends draft to the service and stores the created post
func (m *Manager) Create(ctx context.Context, draft domain.Draft) (domain.Post, error) {
	if err := draft.Validate(); err != nil {
		return domain.Post{}, errors.Join(ErrCreate, err)
	}

	post, err := m.api.CreatePost(ctx, draft)
	if err != nil {
		return domain.Post{}, errors.Join(ErrCreate, err)
	}
	if post.Id == "" {
		return domain.Post{}, fmt.Errorf("%w: service returned a post without id", ErrCreate)
	}
	if post.Likes < 0 {
		post.Likes = 0
	}

	m.mu.Lock()
	m.posts[post.Id] = post
	m.mu.Unlock()

	return post, nil
}

// Like persists post with one more like and stores what the service returns.
//
// The new count is computed from the snapshot passed in, not from the
// service. Liking the same post again before the first round-trip completes
// sends the same count twice, so one like is lost.
func (m *Manager) Like(ctx context.Context, post domain.Post) (domain.Post, error) {
	if post.Id == "" {
		return domain.Post{}, ErrMissingIdentifier
	}

	liked := post
	liked.Likes = post.Likes + 1

	saved, err := m.api.UpdatePost(ctx, post.Id, liked.Sanitize())
	if err != nil {
		return domain.Post{}, errors.Join(ErrUpdate, err)
	}
	// server value wins, but the identifier is ours
	saved.Id = post.Id

	m.mu.Lock()
	m.posts[saved.Id] = saved
	m.mu.Unlock()

	return saved, nil
}

// Remove deletes post id. Callers must have asked the user first.
func (m *Manager) Remove(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: missing post identifier", ErrDelete)
	}

	if err := m.api.DeletePost(ctx, id); err != nil {
		return errors.Join(ErrDelete, err)
	}

	m.mu.Lock()
	delete(m.posts, id)
	m.mu.Unlock()

	return nil
}

// View returns the posts ordered by likes, most liked first. It is
// recomputed on every call.
func (m *Manager) View() []domain.Post {
	m.mu.RLock()
	view := make([]domain.Post, 0, len(m.posts))
	for _, p := range m.posts {
		view = append(view, p)
	}
	m.mu.RUnlock()

	// map order is random; fix a base order so equal likes stay put between calls
	sort.Slice(view, func(i, j int) bool { return view[i].Id < view[j].Id })
	sort.SliceStable(view, func(i, j int) bool { return view[i].Likes > view[j].Likes })
	return view
}

// Get returns the post stored under id
func (m *Manager) Get(id string) (domain.Post, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.posts[id]
	return p, ok
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.posts)
}
