package middleware

import (
	"context"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/bloglist/cli"
	"github.com/deemkeen/bloglist/ui"
	"github.com/deemkeen/bloglist/ui/common"
	"github.com/deemkeen/bloglist/util"
	"github.com/muesli/termenv"
)

// Notifier is the notification slot the TUI redraws from
type Notifier interface {
	Current() (string, bool)
	OnChange(fn func(message string))
}

// MainTui runs the interactive client until the user quits
func MainTui(ctx context.Context, a ui.App, notifier Notifier, opts ...tea.ProgramOption) error {
	lipgloss.SetColorProfile(termenv.EnvColorProfile())

	m := ui.NewModel(ctx, a, notifier, 0, 0)
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m, opts...)

	// Notify may run on the update loop itself (logout), so the redraw is
	// sent from its own goroutine.
	notifier.OnChange(func(message string) {
		go p.Send(common.NotificationMsg{Message: message})
	})
	defer notifier.OnChange(nil)

	if _, err := p.Run(); err != nil {
		log.Printf("TUI: %v", err)
		return err
	}
	return nil
}

type stdio struct {
	io.Reader
	io.Writer
}

// HandleCLI runs one non-interactive command. Errors were already printed by
// the handler.
func HandleCLI(ctx context.Context, in io.Reader, out io.Writer, args []string, a cli.App, messages cli.Messages, conf *util.AppConfig) error {
	handler := cli.NewHandler(stdio{Reader: in, Writer: out}, a, messages, conf)
	if err := handler.Execute(ctx, args); err != nil {
		log.Printf("CLI: %s failed: %v", args[0], err)
		return err
	}
	return nil
}
