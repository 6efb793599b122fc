package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/deemkeen/bloglist/app"
	"github.com/deemkeen/bloglist/domain"
	"github.com/deemkeen/bloglist/util"
)

// Session is where commands read input from and write output to
type Session interface {
	io.Reader
	io.Writer
}

// App is the set of intents the CLI dispatches
type App interface {
	Login(ctx context.Context, username, password string) (domain.Session, error)
	Logout() error
	CreatePost(ctx context.Context, draft domain.Draft, form app.Toggler) (domain.Post, error)
	LikePost(ctx context.Context, post domain.Post) (domain.Post, error)
	DeletePost(ctx context.Context, post domain.Post, confirm app.Confirmer) (bool, error)
	View() []domain.Post
	Post(id string) (domain.Post, bool)
	Session() (domain.Session, bool)
}

// Messages exposes the notification currently shown to the user
type Messages interface {
	Current() (string, bool)
}

// Handler processes CLI commands
type Handler struct {
	session  Session
	input    *bufio.Reader
	app      App
	messages Messages
	output   *Output
	jsonMode bool
	conf     *util.AppConfig
}

// NewHandler creates a new CLI handler
func NewHandler(s Session, a App, messages Messages, conf *util.AppConfig) *Handler {
	return &Handler{
		session:  s,
		app:      a,
		messages: messages,
		conf:     conf,
	}
}

// Execute parses and executes a CLI command
func (h *Handler) Execute(ctx context.Context, args []string) error {
	args, h.jsonMode = parseGlobalFlags(args)
	h.output = NewOutput(h.session, h.jsonMode)

	if len(args) == 0 {
		return h.showHelp()
	}

	cmd := strings.ToLower(args[0])
	cmdArgs := args[1:]

	switch cmd {
	case "list", "ls":
		return h.handleList(cmdArgs)
	case "create", "add":
		return h.handleCreate(ctx, cmdArgs)
	case "like":
		return h.handleLike(ctx, cmdArgs)
	case "delete", "rm":
		return h.handleDelete(ctx, cmdArgs)
	case "login":
		return h.handleLogin(ctx, cmdArgs)
	case "logout":
		return h.handleLogout()
	case "whoami":
		return h.handleWhoami()
	case "feed":
		return h.handleFeed(cmdArgs)
	case "--help", "-h", "help":
		return h.showHelp()
	default:
		err := fmt.Errorf("unknown command: %s", cmd)
		h.output.Error(err)
		return err
	}
}

// IsCommand reports whether name is a CLI command rather than a TUI start
func IsCommand(name string) bool {
	switch strings.ToLower(name) {
	case "list", "ls", "create", "add", "like", "delete", "rm",
		"login", "logout", "whoami", "feed", "help", "--help", "-h":
		return true
	}
	return false
}

// parseGlobalFlags extracts global flags like --json from args
func parseGlobalFlags(args []string) ([]string, bool) {
	jsonMode := false
	var filtered []string

	for _, arg := range args {
		switch arg {
		case "--json", "-j":
			jsonMode = true
		default:
			filtered = append(filtered, arg)
		}
	}

	return filtered, jsonMode
}

// message returns the notification produced by the last intent
func (h *Handler) message() string {
	if h.messages == nil {
		return ""
	}
	msg, _ := h.messages.Current()
	return msg
}

// fail reports a failed intent with the user facing notification, never
// with the underlying error.
func (h *Handler) fail(err error) error {
	msg := h.message()
	if msg == "" {
		msg = err.Error()
	}
	h.output.Error(errors.New(msg))
	return err
}

// readLine reads one trimmed line from the session
func (h *Handler) readLine() (string, error) {
	if h.input == nil {
		h.input = bufio.NewReader(h.session)
	}
	line, err := h.input.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// showHelp displays help information
func (h *Handler) showHelp() error {
	if h.output.IsJSON() {
		h.output.JSON(HelpResponse{
			Version: util.GetVersion(),
			Commands: []HelpCommand{
				{Name: "list", Description: "Show blogs, most liked first", Usage: "list [-n <count>]", Flags: []string{"-n <count>: limit number of blogs (default 20)"}},
				{Name: "create", Description: "Add a blog", Usage: "create <title> <author> <url>"},
				{Name: "like", Description: "Like a blog", Usage: "like <id>"},
				{Name: "delete", Description: "Remove one of your blogs", Usage: "delete <id> [-y]", Flags: []string{"-y: do not ask for confirmation"}},
				{Name: "login", Description: "Log in and remember the session", Usage: "login <username> [<password> | -]", Flags: []string{"-: read password from stdin"}},
				{Name: "logout", Description: "Forget the stored session", Usage: "logout"},
				{Name: "whoami", Description: "Show the logged in user", Usage: "whoami"},
				{Name: "feed", Description: "Print the blog list as a feed", Usage: "feed [--atom]", Flags: []string{"--atom: Atom instead of RSS"}},
				{Name: "help", Description: "Show this help message", Usage: "help"},
			},
			GlobalFlags: []string{
				"--json, -j: output in JSON format",
			},
		})
		return nil
	}

	h.output.Println(util.GetNameAndVersion() + " - terminal client for the blog list service")
	h.output.Println("")
	h.output.Println("Usage: bloglist <command> [options]")
	h.output.Println("       bloglist                 start the interactive client")
	h.output.Println("")
	h.output.Println("Commands:")
	h.output.Println("  list                   Show blogs, most liked first")
	h.output.Println("  list -n <N>            Limit to N blogs")
	h.output.Println("  create <t> <a> <url>   Add a blog")
	h.output.Println("  like <id>              Like a blog")
	h.output.Println("  delete <id> [-y]       Remove one of your blogs")
	h.output.Println("  login <user> [<pw>|-]  Log in and remember the session")
	h.output.Println("  logout                 Forget the stored session")
	h.output.Println("  whoami                 Show the logged in user")
	h.output.Println("  feed [--atom]          Print the blog list as RSS or Atom")
	h.output.Println("  help                   Show this help message")
	h.output.Println("")
	h.output.Println("Global flags:")
	h.output.Println("  --json, -j             Output in JSON format")
	h.output.Println("")
	h.output.Println("Examples:")
	h.output.Println("  echo sekret | bloglist login dandan -")
	h.output.Println("  bloglist create \"Go Proverbs\" \"Rob Pike\" https://go-proverbs.github.io")
	h.output.Println("  bloglist list -n 5 -j")
	return nil
}
