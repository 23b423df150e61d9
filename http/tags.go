// http/tags.go
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noteful/noteful-server/auth"
	"github.com/noteful/noteful-server/domain"
)

func (s *Server) handleListTags(c *fiber.Ctx) error {
	tags, err := s.store.Tags(c.Context(), auth.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(tags)
}

func (s *Server) handleGetTag(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	tag, err := s.store.TagByID(c.Context(), auth.UserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(tag)
}

func (s *Server) handleCreateTag(c *fiber.Ctx) error {
	var body struct {
		Name string `json:"name"`
	}
	raw, err := parseBody(c, &body)
	if err != nil {
		return err
	}
	if err := requireFields(raw, fiber.StatusBadRequest, "name"); err != nil {
		return err
	}

	userID := auth.UserID(c)
	tag := &domain.Tag{ID: domain.NewID(), UserID: userID, Name: body.Name}
	if err := s.store.CreateTag(c.Context(), tag); err != nil {
		return err
	}

	s.hub.Publish(userID, "tag_created", tag)
	c.Location(locationFor(c, tag.ID))
	return c.Status(fiber.StatusCreated).JSON(tag)
}

func (s *Server) handleUpdateTag(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var body struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	raw, err := parseBody(c, &body)
	if err != nil {
		return err
	}
	if err := requireFields(raw, fiber.StatusBadRequest, "id", "name"); err != nil {
		return err
	}
	if err := matchBodyID(id, body.ID); err != nil {
		return err
	}

	userID := auth.UserID(c)
	tag, err := s.store.TagByID(c.Context(), userID, id)
	if err != nil {
		return err
	}
	tag.Name = body.Name
	if err := s.store.UpdateTag(c.Context(), tag); err != nil {
		return err
	}

	s.hub.Publish(userID, "tag_updated", tag)
	return c.JSON(tag)
}

func (s *Server) handleDeleteTag(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	userID := auth.UserID(c)

	if err := s.store.DeleteTag(c.Context(), userID, id); err != nil {
		return err
	}
	// Cascade repair: pull the tag out of every owned note's tag set.
	if err := s.store.RemoveTagFromNotes(c.Context(), userID, id); err != nil {
		return err
	}

	s.hub.Publish(userID, "tag_deleted", fiber.Map{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
