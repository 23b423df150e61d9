// http/validate.go
package http

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/noteful/noteful-server/domain"
)

// parseBody unmarshals the request body into dst and also returns the raw
// field set, so handlers can tell an absent field from a zero value.
func parseBody(c *fiber.Ctx, dst any) (map[string]json.RawMessage, error) {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return nil, domain.Invalid("Request body must be a JSON object.")
	}
	if dst != nil {
		if err := json.Unmarshal(c.Body(), dst); err != nil {
			return nil, domain.Invalid("Request body has malformed fields.")
		}
	}
	return raw, nil
}

func requireFields(raw map[string]json.RawMessage, status int, fields ...string) error {
	for _, field := range fields {
		if _, ok := raw[field]; !ok {
			return &domain.Error{Status: status, Message: "Missing `" + field + "` in request body."}
		}
	}
	return nil
}

// pathID validates the :id path parameter's shape.
func pathID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if !domain.ValidID(id) {
		return "", domain.Invalid("Invalid `id` parameter.")
	}
	return id, nil
}

// matchBodyID enforces the update contract: the body must carry an `id`
// equal to the path id.
func matchBodyID(pathID, bodyID string) error {
	if bodyID == "" || bodyID != pathID {
		return domain.Invalid("Request body `id` and parameter `id` must be equivalent.")
	}
	return nil
}

// validateCredentials applies the registration format rules shared by
// username and password.
func validateCredentials(raw map[string]json.RawMessage) (username, password string, err error) {
	if json.Unmarshal(raw["username"], &username) != nil || json.Unmarshal(raw["password"], &password) != nil {
		return "", "", domain.Invalid("`username` and `password` must be of type string.")
	}
	if len(username) < 1 {
		return "", "", domain.Invalid("Username must be at least one character long.")
	}
	if len(password) < 8 || len(password) > 72 {
		return "", "", domain.Invalid("Password must be between 8 and 72 characters long.")
	}
	if username != strings.TrimSpace(username) || password != strings.TrimSpace(password) {
		return "", "", domain.Invalid("Username and password cannot begin or end with a space.")
	}
	return username, password, nil
}

// validateNoteRefs checks shape, uniqueness and owner-scoped existence of a
// note's folder and tag references. Runs on every write.
func (s *Server) validateNoteRefs(c *fiber.Ctx, userID, folderID string, tags []string) error {
	if folderID != "" {
		if !domain.ValidID(folderID) {
			return domain.Invalid("Invalid `folderId` parameter.")
		}
		if _, err := s.store.FolderByID(c.Context(), userID, folderID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.NotFound("`folderId` does not exist.")
			}
			return err
		}
	}

	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	for i, tag := range tags {
		if !domain.ValidID(tag) {
			return domain.Invalid("Invalid tag `id` parameter at index %d.", i)
		}
		if seen[tag] {
			return domain.Invalid("`tags` must not contain duplicate ids.")
		}
		seen[tag] = true
	}
	count, err := s.store.CountTags(c.Context(), userID, tags)
	if err != nil {
		return err
	}
	if count != len(tags) {
		return domain.NotFound("An id in `tags` does not exist.")
	}
	return nil
}
