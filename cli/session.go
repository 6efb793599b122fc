package cli

import (
	"context"
	"fmt"
)

func (h *Handler) handleLogin(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		err := fmt.Errorf("usage: login <username> [<password> | -]")
		h.output.Error(err)
		return err
	}

	username := args[0]
	password := "-"
	if len(args) == 2 {
		password = args[1]
	}
	if password == "-" {
		line, err := h.readLine()
		if err != nil {
			h.output.Error(fmt.Errorf("read password: %w", err))
			return err
		}
		password = line
	}

	s, err := h.app.Login(ctx, username, password)
	if err != nil {
		return h.fail(err)
	}

	if h.output.IsJSON() {
		h.output.JSON(SessionResponse{Username: s.Username, Name: s.Name, LoggedIn: true, Message: h.message()})
	} else {
		h.output.Print("%s\n", h.message())
	}
	return nil
}

func (h *Handler) handleLogout() error {
	if err := h.app.Logout(); err != nil {
		return h.fail(err)
	}

	if h.output.IsJSON() {
		h.output.JSON(SessionResponse{LoggedIn: false, Message: h.message()})
	} else {
		h.output.Print("%s\n", h.message())
	}
	return nil
}

func (h *Handler) handleWhoami() error {
	s, ok := h.app.Session()

	if h.output.IsJSON() {
		h.output.JSON(SessionResponse{Username: s.Username, Name: s.Name, LoggedIn: ok})
		return nil
	}
	if !ok {
		h.output.Println("Not logged in.")
		return nil
	}
	h.output.Print("%s (%s)\n", s.DisplayName(), s.Username)
	return nil
}
