// http/notes.go
package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/noteful/noteful-server/auth"
	"github.com/noteful/noteful-server/domain"
)

func (s *Server) handleListNotes(c *fiber.Ctx) error {
	q := domain.NoteQuery{
		FolderID:   c.Query("folderId"),
		TagID:      c.Query("tagId"),
		SearchTerm: c.Query("searchTerm"),
	}
	if q.FolderID != "" && !domain.ValidID(q.FolderID) {
		return domain.Invalid("Invalid `folderId` parameter.")
	}
	if q.TagID != "" && !domain.ValidID(q.TagID) {
		return domain.Invalid("Invalid `tagId` parameter.")
	}

	notes, err := s.store.Notes(c.Context(), auth.UserID(c), q)
	if err != nil {
		return err
	}
	return c.JSON(notes)
}

func (s *Server) handleGetNote(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	note, err := s.store.NoteByID(c.Context(), auth.UserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(note)
}

func (s *Server) handleCreateNote(c *fiber.Ctx) error {
	var body struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		FolderID string `json:"folderId"`
	}
	raw, err := parseBody(c, &body)
	if err != nil {
		return err
	}
	if err := requireFields(raw, fiber.StatusBadRequest, "title"); err != nil {
		return err
	}
	if body.Title == "" {
		return domain.Invalid("`title` must not be empty.")
	}
	tags, err := parseTags(raw)
	if err != nil {
		return err
	}

	userID := auth.UserID(c)
	if err := s.validateNoteRefs(c, userID, body.FolderID, tags); err != nil {
		return err
	}

	note := &domain.Note{
		ID:       domain.NewID(),
		UserID:   userID,
		Title:    body.Title,
		Content:  body.Content,
		FolderID: body.FolderID,
		Tags:     tags,
	}
	if err := s.store.CreateNote(c.Context(), note); err != nil {
		return err
	}

	s.hub.Publish(userID, "note_created", note)
	c.Location(locationFor(c, note.ID))
	return c.Status(fiber.StatusCreated).JSON(note)
}

// handleUpdateNote applies a partial update: only fields present in the
// body change, and folder/tag references are re-validated on every write.
func (s *Server) handleUpdateNote(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var body struct {
		ID string `json:"id"`
	}
	raw, err := parseBody(c, &body)
	if err != nil {
		return err
	}
	if err := requireFields(raw, fiber.StatusBadRequest, "id"); err != nil {
		return err
	}
	if err := matchBodyID(id, body.ID); err != nil {
		return err
	}

	userID := auth.UserID(c)
	note, err := s.store.NoteByID(c.Context(), userID, id)
	if err != nil {
		return err
	}

	if rawTitle, ok := raw["title"]; ok {
		var title string
		if err := json.Unmarshal(rawTitle, &title); err != nil {
			return domain.Invalid("`title` must be of type string.")
		}
		if title == "" {
			return domain.Invalid("`title` must not be empty.")
		}
		note.Title = title
	}
	if rawContent, ok := raw["content"]; ok {
		var content string
		if err := json.Unmarshal(rawContent, &content); err != nil {
			return domain.Invalid("`content` must be of type string.")
		}
		note.Content = content
	}
	if rawFolder, ok := raw["folderId"]; ok {
		var folderID *string
		if err := json.Unmarshal(rawFolder, &folderID); err != nil {
			return domain.Invalid("`folderId` must be of type string.")
		}
		// null or "" clears the folder reference
		if folderID == nil {
			note.FolderID = ""
		} else {
			note.FolderID = *folderID
		}
	}
	if _, ok := raw["tags"]; ok {
		tags, err := parseTags(raw)
		if err != nil {
			return err
		}
		note.Tags = tags
	}

	if err := s.validateNoteRefs(c, userID, note.FolderID, note.Tags); err != nil {
		return err
	}
	if err := s.store.UpdateNote(c.Context(), note); err != nil {
		return err
	}

	s.hub.Publish(userID, "note_updated", note)
	return c.JSON(note)
}

func (s *Server) handleDeleteNote(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	userID := auth.UserID(c)

	if err := s.store.DeleteNote(c.Context(), userID, id); err != nil {
		return err
	}

	s.hub.Publish(userID, "note_deleted", fiber.Map{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

func parseTags(raw map[string]json.RawMessage) ([]string, error) {
	rawTags, ok := raw["tags"]
	if !ok {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal(rawTags, &tags); err != nil {
		return nil, domain.Invalid("`tags` must be an array.")
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}
