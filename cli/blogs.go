package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/deemkeen/bloglist/app"
	"github.com/deemkeen/bloglist/domain"
	"github.com/deemkeen/bloglist/util"
	"github.com/gorilla/feeds"
)

const (
	defaultListLimit = 20
	titleWidth       = 48
)

// handleList prints the collection view, most liked first
func (h *Handler) handleList(args []string) error {
	limit := defaultListLimit

	for i := 0; i < len(args); i++ {
		if args[i] == "-n" && i+1 < len(args) {
			n, err := strconv.Atoi(args[i+1])
			if err != nil {
				err = fmt.Errorf("invalid value for -n: %s", args[i+1])
				h.output.Error(err)
				return err
			}
			if n < 1 {
				err = fmt.Errorf("-n must be at least 1")
				h.output.Error(err)
				return err
			}
			limit = n
			i++
		}
	}

	view := h.app.View()
	if len(view) > limit {
		view = view[:limit]
	}
	s, loggedIn := h.app.Session()

	if h.output.IsJSON() {
		items := make([]BlogItem, 0, len(view))
		for _, p := range view {
			items = append(items, toBlogItem(p, s, loggedIn))
		}
		h.output.JSON(ListResponse{Blogs: items, Count: len(items)})
		return nil
	}

	if len(view) == 0 {
		h.output.Println("No blogs yet.")
		return nil
	}
	for _, p := range view {
		mark := " "
		if loggedIn && domain.IsOwner(p, s) {
			mark = "*"
		}
		h.output.Print("%s %4d  %s by %s\n", mark, p.Likes, util.TruncateWidth(p.Title, titleWidth), p.Author)
		h.output.Print("        %s  [%s]\n", p.URL, p.Id)
	}
	return nil
}

func (h *Handler) handleCreate(ctx context.Context, args []string) error {
	if len(args) != 3 {
		err := fmt.Errorf("usage: create <title> <author> <url>")
		h.output.Error(err)
		return err
	}

	draft := domain.Draft{Title: args[0], Author: args[1], URL: args[2]}
	post, err := h.app.CreatePost(ctx, draft, nil)
	if err != nil {
		return h.fail(err)
	}

	s, loggedIn := h.app.Session()
	if h.output.IsJSON() {
		h.output.JSON(BlogResponse{Message: h.message(), Blog: toBlogItem(post, s, loggedIn)})
	} else {
		h.output.Print("%s\n", h.message())
		h.output.Print("id: %s\n", post.Id)
	}
	return nil
}

func (h *Handler) handleLike(ctx context.Context, args []string) error {
	post, err := h.lookup("like", args)
	if err != nil {
		return err
	}

	saved, err := h.app.LikePost(ctx, post)
	if err != nil {
		return h.fail(err)
	}

	s, loggedIn := h.app.Session()
	if h.output.IsJSON() {
		h.output.JSON(BlogResponse{Blog: toBlogItem(saved, s, loggedIn)})
	} else {
		h.output.Print("%s now has %d likes\n", saved.Title, saved.Likes)
	}
	return nil
}

func (h *Handler) handleDelete(ctx context.Context, args []string) error {
	assumeYes := false
	var rest []string
	for _, a := range args {
		if a == "-y" || a == "--yes" {
			assumeYes = true
			continue
		}
		rest = append(rest, a)
	}

	post, err := h.lookup("delete", rest)
	if err != nil {
		return err
	}

	confirm := app.ConfirmFunc(func(prompt string) bool {
		if assumeYes {
			return true
		}
		h.output.Raw(prompt + " [y/N] ")
		answer, err := h.readLine()
		if err != nil {
			return false
		}
		answer = strings.ToLower(answer)
		return answer == "y" || answer == "yes"
	})

	deleted, err := h.app.DeletePost(ctx, post, confirm)
	if err != nil {
		return h.fail(err)
	}

	if h.output.IsJSON() {
		h.output.JSON(DeleteResponse{ID: post.Id, Deleted: deleted, Message: h.message()})
	} else if deleted {
		h.output.Print("%s\n", h.message())
	} else {
		h.output.Println("Nothing deleted.")
	}
	return nil
}

// lookup resolves the single id argument of cmd against the collection
func (h *Handler) lookup(cmd string, args []string) (domain.Post, error) {
	if len(args) != 1 {
		err := fmt.Errorf("usage: %s <id>", cmd)
		h.output.Error(err)
		return domain.Post{}, err
	}
	post, ok := h.app.Post(args[0])
	if !ok {
		err := fmt.Errorf("no blog with id %s", args[0])
		h.output.Error(err)
		return domain.Post{}, err
	}
	return post, nil
}

// handleFeed renders the view as RSS, or Atom with --atom
func (h *Handler) handleFeed(args []string) error {
	atom := false
	for _, a := range args {
		if a == "--atom" {
			atom = true
		}
	}

	feed := buildFeed(h.app.View(), h.serverURL(), time.Now())
	var (
		out string
		err error
	)
	if atom {
		out, err = feed.ToAtom()
	} else {
		out, err = feed.ToRss()
	}
	if err != nil {
		h.output.Error(err)
		return err
	}

	// feeds are XML; --json does not apply
	h.output.Raw(out + "\n")
	return nil
}

func (h *Handler) serverURL() string {
	if h.conf == nil {
		return ""
	}
	return h.conf.Conf.ServerURL
}

func buildFeed(view []domain.Post, link string, now time.Time) *feeds.Feed {
	feed := &feeds.Feed{
		Title:       "Blogs",
		Link:        &feeds.Link{Href: link},
		Description: "Blogs, most liked first",
		Created:     now,
	}
	for _, p := range view {
		href := link
		if util.IsURL(p.URL) {
			href = p.URL
		}
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          p.Id,
			Title:       p.Title,
			Link:        &feeds.Link{Href: href},
			Author:      &feeds.Author{Name: p.Author},
			Description: fmt.Sprintf("%d likes, added by %s", p.Likes, p.User.DisplayName()),
			Created:     now,
		})
	}
	return feed
}
