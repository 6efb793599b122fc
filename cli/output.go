package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/deemkeen/bloglist/domain"
)

// Output writes command results either as text or as JSON
type Output struct {
	writer   io.Writer
	jsonMode bool
}

func NewOutput(w io.Writer, jsonMode bool) *Output {
	return &Output{
		writer:   w,
		jsonMode: jsonMode,
	}
}

func (o *Output) IsJSON() bool {
	return o.jsonMode
}

// Error outputs an error message in either mode
func (o *Output) Error(err error) {
	if o.jsonMode {
		o.writeJSON(ErrorResponse{Error: err.Error()})
	} else {
		fmt.Fprintf(o.writer, "Error: %v\n", err)
	}
}

// Print writes formatted text (text mode only)
func (o *Output) Print(format string, args ...any) {
	if !o.jsonMode {
		fmt.Fprintf(o.writer, format, args...)
	}
}

// Println writes a line (text mode only)
func (o *Output) Println(text string) {
	if !o.jsonMode {
		fmt.Fprintln(o.writer, text)
	}
}

// JSON writes v as indented JSON (JSON mode only)
func (o *Output) JSON(v any) {
	if o.jsonMode {
		o.writeJSON(v)
	}
}

// Raw writes text in either mode
func (o *Output) Raw(text string) {
	fmt.Fprint(o.writer, text)
}

func (o *Output) writeJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(o.writer, `{"error":"failed to marshal JSON: %s"}`+"\n", err.Error())
		return
	}
	fmt.Fprintln(o.writer, string(data))
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// BlogItem is one blog in command output
type BlogItem struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
	Owner  string `json:"owner"`
	Mine   bool   `json:"mine"`
}

type ListResponse struct {
	Blogs []BlogItem `json:"blogs"`
	Count int        `json:"count"`
}

// BlogResponse is the result of create and like
type BlogResponse struct {
	Message string   `json:"message,omitempty"`
	Blog    BlogItem `json:"blog"`
}

type DeleteResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
	Message string `json:"message,omitempty"`
}

type SessionResponse struct {
	Username string `json:"username,omitempty"`
	Name     string `json:"name,omitempty"`
	LoggedIn bool   `json:"logged_in"`
	Message  string `json:"message,omitempty"`
}

// HelpCommand represents a command in help output
type HelpCommand struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Usage       string   `json:"usage"`
	Flags       []string `json:"flags,omitempty"`
}

// HelpResponse represents the help output
type HelpResponse struct {
	Version     string        `json:"version"`
	Commands    []HelpCommand `json:"commands"`
	GlobalFlags []string      `json:"global_flags"`
}

func toBlogItem(p domain.Post, s domain.Session, loggedIn bool) BlogItem {
	return BlogItem{
		ID:     p.Id,
		Title:  p.Title,
		Author: p.Author,
		URL:    p.URL,
		Likes:  p.Likes,
		Owner:  p.User.DisplayName(),
		Mine:   loggedIn && domain.IsOwner(p, s),
	}
}
