package web

import (
	"errors"
	"sort"
	"sync"

	"github.com/deemkeen/bloglist/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists      = errors.New("username must be unique")
	ErrBadCredentials  = errors.New("invalid username or password")
	ErrInvalidToken    = errors.New("token missing or invalid")
	ErrBlogNotFound    = errors.New("blog not found")
	ErrNotBlogOwner    = errors.New("only the creator can delete a blog")
	ErrMissingField    = errors.New("title and url are required")
	ErrPasswordTooWeak = errors.New("password must be at least 3 characters long")
)

type user struct {
	id           string
	username     string
	name         string
	passwordHash []byte
}

func (u user) summary() domain.OwnerSummary {
	return domain.OwnerSummary{Id: u.id, Username: u.username, Name: u.name}
}

type blog struct {
	id     string
	title  string
	author string
	url    string
	likes  int
	userId string
}

// Store keeps users, tokens and blogs in memory
type Store struct {
	mu     sync.RWMutex
	users  map[string]user   // by id
	tokens map[string]string // token -> user id
	blogs  map[string]blog
	order  []string // blog ids in creation order
}

func NewStore() *Store {
	return &Store{
		users:  map[string]user{},
		tokens: map[string]string{},
		blogs:  map[string]blog{},
	}
}

// AddUser registers a user and returns its id
func (s *Store) AddUser(username, name, password string) (string, error) {
	if len(password) < 3 {
		return "", ErrPasswordTooWeak
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.username == username {
			return "", ErrUserExists
		}
	}
	id := uuid.New().String()
	s.users[id] = user{id: id, username: username, name: name, passwordHash: hash}
	return id, nil
}

// Login checks the password and issues a new token
func (s *Store) Login(username, password string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)) != nil {
			return domain.Session{}, ErrBadCredentials
		}
		token := uuid.New().String()
		s.tokens[token] = u.id
		return domain.Session{Token: token, Username: u.username, Name: u.name, Id: u.id}, nil
	}
	return domain.Session{}, ErrBadCredentials
}

// UserForToken resolves a bearer token
func (s *Store) UserForToken(token string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.tokens[token]
	if !ok {
		return "", ErrInvalidToken
	}
	return id, nil
}

// List returns all blogs with their owner embedded
func (s *Store) List() []domain.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Post, 0, len(s.order))
	for _, id := range s.order {
		b := s.blogs[id]
		p := b.post()
		if u, ok := s.users[b.userId]; ok {
			p.User = domain.EmbeddedOwner(u.summary())
		}
		out = append(out, p)
	}
	return out
}

// Create stores a new blog owned by userId
func (s *Store) Create(userId string, d domain.Draft) (domain.Post, error) {
	if d.Title == "" || d.URL == "" {
		return domain.Post{}, ErrMissingField
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b := blog{
		id:     uuid.New().String(),
		title:  d.Title,
		author: d.Author,
		url:    d.URL,
		userId: userId,
	}
	s.blogs[b.id] = b
	s.order = append(s.order, b.id)
	return b.post(), nil
}

// Update overwrites the fields of blog id. The owner cannot be changed.
func (s *Store) Update(id string, f domain.UpdateFields) (domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.blogs[id]
	if !ok {
		return domain.Post{}, ErrBlogNotFound
	}
	b.title = f.Title
	b.author = f.Author
	b.url = f.URL
	if f.Likes >= 0 {
		b.likes = f.Likes
	}
	s.blogs[id] = b
	return b.post(), nil
}

// Delete removes blog id if userId owns it
func (s *Store) Delete(userId, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.blogs[id]
	if !ok {
		return ErrBlogNotFound
	}
	if b.userId != userId {
		return ErrNotBlogOwner
	}
	delete(s.blogs, id)
	s.order = removeId(s.order, id)
	return nil
}

// Len returns the number of stored blogs
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blogs)
}

// Usernames lists registered users, sorted
func (s *Store) Usernames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.users))
	for _, u := range s.users {
		names = append(names, u.username)
	}
	sort.Strings(names)
	return names
}

func (b blog) post() domain.Post {
	return domain.Post{
		Id:     b.id,
		Title:  b.title,
		Author: b.author,
		URL:    b.url,
		Likes:  b.likes,
		User:   domain.OwnerId(b.userId),
	}
}

func removeId(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
