// http/auth.go
package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/noteful/noteful-server/auth"
	"github.com/noteful/noteful-server/domain"
)

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if _, err := parseBody(c, &body); err != nil {
		return err
	}

	user, err := s.store.UserByUsername(c.Context(), body.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.Error{Status: fiber.StatusUnauthorized, Message: "Incorrect username."}
		}
		return err
	}
	if !auth.CheckPassword(user.PasswordHash, body.Password) {
		return &domain.Error{Status: fiber.StatusUnauthorized, Message: "Incorrect password."}
	}

	token, err := s.auth.Issue(user.ID, user.Username)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"authToken": token})
}

// handleRefresh re-issues a token for the already-verified subject.
func (s *Server) handleRefresh(c *fiber.Ctx) error {
	token, err := s.auth.Issue(auth.UserID(c), auth.Username(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"authToken": token})
}
