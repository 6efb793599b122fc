package bloglist

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/deemkeen/bloglist/domain"
	"github.com/deemkeen/bloglist/ui/common"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testPosts() []domain.Post {
	return []domain.Post{
		{Id: "b", Title: "Go Proverbs", Author: "Rob Pike", URL: "https://go-proverbs.github.io", Likes: 5,
			User: domain.EmbeddedOwner(domain.OwnerSummary{Id: "u1", Username: "dandan", Name: "Dan Abramov"})},
		{Id: "a", Title: "Effective Go", Author: "The Go Authors", URL: "https://go.dev/doc/effective_go", Likes: 4,
			User: domain.OwnerId("u2")},
	}
}

var owner = domain.Session{Token: "t", Username: "dandan", Name: "Dan Abramov", Id: "u1"}

func TestNavigation(t *testing.T) {
	m := InitialModel(100, 30).SetPosts(testPosts(), owner, true)

	m, _ = m.Update(key("j"))
	if m.Selected != 1 {
		t.Errorf("Expected selection 1, got %d", m.Selected)
	}
	m, _ = m.Update(key("j"))
	if m.Selected != 1 {
		t.Error("Should not go past the last post")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.Selected != 0 {
		t.Errorf("Expected selection 0, got %d", m.Selected)
	}
	m, _ = m.Update(key("k"))
	if m.Selected != 0 {
		t.Error("Should not go before the first post")
	}
}

func TestSetPosts_KeepsSelection(t *testing.T) {
	m := InitialModel(100, 30).SetPosts(testPosts(), owner, true)
	m, _ = m.Update(key("j"))

	reordered := []domain.Post{testPosts()[1], testPosts()[0]}
	m = m.SetPosts(reordered, owner, true)
	if m.Posts[m.Selected].Id != "a" {
		t.Errorf("Expected selection to follow post a, got %s", m.Posts[m.Selected].Id)
	}

	m = m.SetPosts(reordered[1:], owner, true)
	if m.Selected != 0 {
		t.Errorf("Expected selection clamped to 0, got %d", m.Selected)
	}
}

func TestDetails(t *testing.T) {
	m := InitialModel(100, 30).SetPosts(testPosts(), owner, true)

	if strings.Contains(m.View(), "https://go-proverbs.github.io") {
		t.Error("Details should be hidden initially")
	}
	m, _ = m.Update(key("enter"))
	view := m.View()
	for _, want := range []string{"https://go-proverbs.github.io", "likes 5", "added by Dan Abramov", "d: remove"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected details to contain %q", want)
		}
	}

	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("enter"))
	view = m.View()
	if !strings.Contains(view, "added by unknown") {
		t.Error("Expected unknown owner for a raw owner id")
	}
	if strings.Contains(view, "d: remove") {
		t.Error("Remove should only be offered for own posts")
	}
}

func TestLike_SendsSnapshot(t *testing.T) {
	m := InitialModel(100, 30).SetPosts(testPosts(), owner, true)
	m, _ = m.Update(key("j"))

	_, cmd := m.Update(key("l"))
	if cmd == nil {
		t.Fatal("Expected a command")
	}
	msg, ok := cmd().(common.LikePostMsg)
	if !ok {
		t.Fatalf("Expected LikePostMsg, got %T", cmd())
	}
	if msg.Post.Id != "a" || msg.Post.Likes != 4 {
		t.Errorf("Unexpected snapshot %+v", msg.Post)
	}
}

func TestDelete(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		m := InitialModel(100, 30).SetPosts(testPosts(), owner, true)
		m, _ = m.Update(key("d"))
		if !m.Confirming() {
			t.Fatal("Expected confirmation prompt")
		}
		if !strings.Contains(m.View(), `Remove blog "Go Proverbs" by Rob Pike? (y/n)`) {
			t.Error("Expected prompt in view")
		}
		m, cmd := m.Update(key("y"))
		if m.Confirming() {
			t.Error("Prompt should close")
		}
		if cmd == nil {
			t.Fatal("Expected a command")
		}
		if msg, ok := cmd().(common.DeletePostMsg); !ok || msg.Post.Id != "b" {
			t.Errorf("Expected DeletePostMsg for b, got %+v", cmd())
		}
	})

	t.Run("declined", func(t *testing.T) {
		m := InitialModel(100, 30).SetPosts(testPosts(), owner, true)
		m, _ = m.Update(key("d"))
		m, cmd := m.Update(key("n"))
		if m.Confirming() || cmd != nil {
			t.Error("Expected prompt to close without a command")
		}
	})

	t.Run("not owned", func(t *testing.T) {
		m := InitialModel(100, 30).SetPosts(testPosts(), owner, true)
		m, _ = m.Update(key("j"))
		m, _ = m.Update(key("d"))
		if m.Confirming() {
			t.Error("Should not offer to delete someone else's post")
		}
	})

	t.Run("logged out", func(t *testing.T) {
		m := InitialModel(100, 30).SetPosts(testPosts(), domain.Session{}, false)
		m, _ = m.Update(key("d"))
		if m.Confirming() {
			t.Error("Should not offer to delete when logged out")
		}
	})
}

func TestRefresh(t *testing.T) {
	m := InitialModel(100, 30)
	_, cmd := m.Update(key("r"))
	if cmd == nil {
		t.Fatal("Expected a command")
	}
	if _, ok := cmd().(common.RefreshMsg); !ok {
		t.Errorf("Expected RefreshMsg, got %T", cmd())
	}
}

func TestEmptyView(t *testing.T) {
	m := InitialModel(100, 30)
	if !strings.Contains(m.View(), "No blogs yet.") {
		t.Error("Expected empty message")
	}
	if _, cmd := m.Update(key("l")); cmd != nil {
		t.Error("Like on an empty list should do nothing")
	}
}
