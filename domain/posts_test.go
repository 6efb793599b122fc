package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestOwnerUnmarshal(t *testing.T) {
	t.Run("Embedded owner object", func(t *testing.T) {
		var post Post
		data := `{"id":"abc123","title":"The React Journey","author":"Dan Abramov","url":"https://reactjs.org/blog","likes":42,"user":{"username":"dandan","name":"Dan Abramov","id":"12345"}}`
		if err := json.Unmarshal([]byte(data), &post); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !post.User.IsEmbedded() {
			t.Error("Expected embedded owner")
		}
		if post.User.ID() != "12345" {
			t.Errorf("Expected owner id 12345, got %s", post.User.ID())
		}
		if post.User.DisplayName() != "Dan Abramov" {
			t.Errorf("Expected display name 'Dan Abramov', got '%s'", post.User.DisplayName())
		}
	})

	t.Run("Raw owner identifier", func(t *testing.T) {
		var post Post
		if err := json.Unmarshal([]byte(`{"id":"abc","likes":1,"user":"12345"}`), &post); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if post.User.IsEmbedded() {
			t.Error("Expected raw owner id")
		}
		if post.User.ID() != "12345" {
			t.Errorf("Expected owner id 12345, got %s", post.User.ID())
		}
		if post.User.DisplayName() != "unknown" {
			t.Errorf("Expected 'unknown', got '%s'", post.User.DisplayName())
		}
	})

	t.Run("Missing and null owner", func(t *testing.T) {
		for _, data := range []string{`{"id":"a"}`, `{"id":"a","user":null}`} {
			var post Post
			if err := json.Unmarshal([]byte(data), &post); err != nil {
				t.Fatalf("Expected no error for %s, got %v", data, err)
			}
			if !post.User.IsZero() {
				t.Errorf("Expected zero owner for %s", data)
			}
		}
	})

	t.Run("Invalid owner", func(t *testing.T) {
		var post Post
		if err := json.Unmarshal([]byte(`{"id":"a","user":42}`), &post); err == nil {
			t.Error("Expected error for numeric owner")
		}
	})
}

func TestOwnerMarshal(t *testing.T) {
	tests := []struct {
		name  string
		owner Owner
		want  string
	}{
		{"embedded", EmbeddedOwner(OwnerSummary{Id: "1", Username: "u", Name: "n"}), `{"id":"1","username":"u","name":"n"}`},
		{"raw id", OwnerId("1"), `"1"`},
		{"zero", Owner{}, `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.owner)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	post := Post{
		Id:     "abc123",
		Title:  "The React Journey",
		Author: "Dan Abramov",
		URL:    "https://reactjs.org/blog",
		Likes:  43,
		User:   EmbeddedOwner(OwnerSummary{Id: "12345", Username: "dandan", Name: "Dan Abramov"}),
	}

	fields := post.Sanitize()
	if fields.User != "12345" {
		t.Errorf("Expected owner reduced to id, got %q", fields.User)
	}
	if fields.Likes != 43 {
		t.Errorf("Expected likes 43, got %d", fields.Likes)
	}

	data, err := json.Marshal(fields)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, ok := raw["id"]; ok {
		t.Error("Sanitized fields must not carry the post id")
	}
	if len(raw) != 5 {
		t.Errorf("Expected exactly 5 fields, got %d: %v", len(raw), raw)
	}
	if _, ok := raw["user"].(string); !ok {
		t.Errorf("Expected user to be a string, got %T", raw["user"])
	}
}

func TestDraftValidate(t *testing.T) {
	if err := (Draft{Title: "t", URL: "http://test.com"}).Validate(); err != nil {
		t.Errorf("Expected valid draft, got %v", err)
	}
	if err := (Draft{URL: "http://test.com"}).Validate(); err != ErrDraftTitle {
		t.Errorf("Expected ErrDraftTitle, got %v", err)
	}
	if err := (Draft{Title: "t"}).Validate(); err != ErrDraftURL {
		t.Errorf("Expected ErrDraftURL, got %v", err)
	}
}

func TestIsOwner(t *testing.T) {
	session := Session{Id: "12345", Username: "dandan", Name: "Dan Abramov"}

	tests := []struct {
		name string
		post Post
		want bool
	}{
		{"embedded owner by id", Post{User: EmbeddedOwner(OwnerSummary{Id: "12345"})}, true},
		{"embedded owner by username", Post{User: EmbeddedOwner(OwnerSummary{Id: "other", Username: "dandan"})}, true},
		{"raw owner id", Post{User: OwnerId("12345")}, true},
		{"someone else", Post{User: EmbeddedOwner(OwnerSummary{Id: "999", Username: "mallory"})}, false},
		{"raw id of someone else", Post{User: OwnerId("999")}, false},
		{"no owner", Post{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOwner(tt.post, session); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSessionDisplayName(t *testing.T) {
	if got := (Session{Username: "dandan", Name: "Dan"}).DisplayName(); got != "Dan" {
		t.Errorf("Expected 'Dan', got '%s'", got)
	}
	if got := (Session{Username: "dandan"}).DisplayName(); got != "dandan" {
		t.Errorf("Expected 'dandan', got '%s'", got)
	}
}

func TestNotificationActive(t *testing.T) {
	now := time.Now()
	n := Notification{Message: "Blog deleted", ExpiresAt: now.Add(time.Second)}

	if !n.Active(now) {
		t.Error("Expected notification to be active before expiry")
	}
	if n.Active(now.Add(2 * time.Second)) {
		t.Error("Expected notification to be inactive after expiry")
	}
	if (Notification{ExpiresAt: now.Add(time.Second)}).Active(now) {
		t.Error("Expected empty notification to be inactive")
	}
}
