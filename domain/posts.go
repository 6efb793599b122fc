package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Post is a blog entry as served by the blog list API.
type Post struct {
	Id     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
	User   Owner  `json:"user"`
}

func (post *Post) ToString() string {
	return fmt.Sprintf("\n\tId: %s \n\tTitle: %s \n\tAuthor: %s \n\tLikes: %d)", post.Id, post.Title, post.Author, post.Likes)
}

// Sanitize reduces a post to the fields the update endpoint accepts.
// An embedded owner is replaced by its identifier.
func (post Post) Sanitize() UpdateFields {
	return UpdateFields{
		Title:  post.Title,
		Author: post.Author,
		URL:    post.URL,
		Likes:  post.Likes,
		User:   post.User.ID(),
	}
}

// UpdateFields is the body of PUT /api/blogs/{id}
type UpdateFields struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
	User   string `json:"user,omitempty"`
}

// Draft holds the user supplied fields of a post that has not been created yet
type Draft struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
}

var (
	ErrDraftTitle = errors.New("title is required")
	ErrDraftURL   = errors.New("url is required")
)

func (d Draft) Validate() error {
	if d.Title == "" {
		return ErrDraftTitle
	}
	if d.URL == "" {
		return ErrDraftURL
	}
	return nil
}

// OwnerSummary is the owner object the API embeds into listed posts
type OwnerSummary struct {
	Id       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Owner is either an embedded OwnerSummary or a bare owner identifier.
// The API returns the embedded form when listing and the bare form after
// an update, so both have to resolve to the same identifier.
type Owner struct {
	summary *OwnerSummary
	id      string
}

// EmbeddedOwner wraps an owner object
func EmbeddedOwner(s OwnerSummary) Owner {
	return Owner{summary: &s}
}

// OwnerId wraps a raw owner identifier
func OwnerId(id string) Owner {
	return Owner{id: id}
}

// ID resolves the canonical owner identifier for both forms
func (o Owner) ID() string {
	if o.summary != nil {
		return o.summary.Id
	}
	return o.id
}

func (o Owner) IsEmbedded() bool {
	return o.summary != nil
}

func (o Owner) IsZero() bool {
	return o.summary == nil && o.id == ""
}

// Summary returns the embedded owner object, if there is one
func (o Owner) Summary() (OwnerSummary, bool) {
	if o.summary == nil {
		return OwnerSummary{}, false
	}
	return *o.summary, true
}

// DisplayName prefers the name, then the username
func (o Owner) DisplayName() string {
	if o.summary != nil {
		if o.summary.Name != "" {
			return o.summary.Name
		}
		if o.summary.Username != "" {
			return o.summary.Username
		}
	}
	return "unknown"
}

func (o Owner) MarshalJSON() ([]byte, error) {
	switch {
	case o.summary != nil:
		return json.Marshal(o.summary)
	case o.id != "":
		return json.Marshal(o.id)
	default:
		return []byte("null"), nil
	}
}

func (o *Owner) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*o = Owner{}
		return nil
	}

	switch data[0] {
	case '"':
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*o = OwnerId(id)
	case '{':
		var s OwnerSummary
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*o = EmbeddedOwner(s)
	default:
		return fmt.Errorf("owner must be an object or a string, got %s", string(data))
	}
	return nil
}

// IsOwner reports whether the session user created the post
func IsOwner(post Post, s Session) bool {
	if post.User.IsZero() {
		return false
	}
	if s.Id != "" && post.User.ID() == s.Id {
		return true
	}
	if summary, ok := post.User.Summary(); ok {
		return s.Username != "" && summary.Username == s.Username
	}
	return false
}
