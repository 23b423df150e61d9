// http/users.go
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noteful/noteful-server/auth"
	"github.com/noteful/noteful-server/domain"
)

// handleRegister creates a user. Missing fields are 422; format violations
// and duplicate usernames are 400.
func (s *Server) handleRegister(c *fiber.Ctx) error {
	var body struct {
		FullName string `json:"fullName"`
	}
	raw, err := parseBody(c, &body)
	if err != nil {
		return err
	}
	if err := requireFields(raw, fiber.StatusUnprocessableEntity, "fullName", "username", "password"); err != nil {
		return err
	}
	username, password, err := validateCredentials(raw)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	user := &domain.User{
		ID:           domain.NewID(),
		FullName:     body.FullName,
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.store.CreateUser(c.Context(), user); err != nil {
		return err
	}

	c.Location(locationFor(c, user.ID))
	return c.Status(fiber.StatusCreated).JSON(user)
}
