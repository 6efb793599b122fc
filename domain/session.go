package domain

import "fmt"

// Session is the authenticated user returned by POST /api/login
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Id       string `json:"id,omitempty"`
}

func (s *Session) ToString() string {
	return fmt.Sprintf("\n\tId: %s \n\tUsername: %s \n\tName: %s)", s.Id, s.Username, s.Name)
}

// DisplayName returns the name, falling back to the username
func (s Session) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Username
}

// Credentials is the body of POST /api/login
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
