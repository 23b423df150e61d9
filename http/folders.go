// http/folders.go
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noteful/noteful-server/auth"
	"github.com/noteful/noteful-server/domain"
)

func (s *Server) handleListFolders(c *fiber.Ctx) error {
	folders, err := s.store.Folders(c.Context(), auth.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(folders)
}

func (s *Server) handleGetFolder(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	folder, err := s.store.FolderByID(c.Context(), auth.UserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(folder)
}

func (s *Server) handleCreateFolder(c *fiber.Ctx) error {
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
	folder := &domain.Folder{ID: domain.NewID(), UserID: userID, Name: body.Name}
	if err := s.store.CreateFolder(c.Context(), folder); err != nil {
		return err
	}

	s.hub.Publish(userID, "folder_created", folder)
	c.Location(locationFor(c, folder.ID))
	return c.Status(fiber.StatusCreated).JSON(folder)
}

func (s *Server) handleUpdateFolder(c *fiber.Ctx) error {
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
	folder, err := s.store.FolderByID(c.Context(), userID, id)
	if err != nil {
		return err
	}
	folder.Name = body.Name
	if err := s.store.UpdateFolder(c.Context(), folder); err != nil {
		return err
	}

	s.hub.Publish(userID, "folder_updated", folder)
	return c.JSON(folder)
}

func (s *Server) handleDeleteFolder(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	userID := auth.UserID(c)

	if err := s.store.DeleteFolder(c.Context(), userID, id); err != nil {
		return err
	}
	// Cascade repair: the folder is gone even if this step fails.
	if err := s.store.ClearFolderFromNotes(c.Context(), userID, id); err != nil {
		return err
	}

	s.hub.Publish(userID, "folder_deleted", fiber.Map{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
