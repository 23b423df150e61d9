// http/tags_test.go
package http

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagLifecycle(t *testing.T) {
	app := newTestApp(t)
	token := signup(t, app, "alice")

	resp := request(t, app, "POST", "/api/tags", token, fiber.Map{"name": "urgent"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	id := decodeBody(t, resp)["id"].(string)
	assert.Equal(t, "/api/tags/"+id, resp.Header.Get("Location"))

	resp = request(t, app, "POST", "/api/tags", token, fiber.Map{"name": "urgent"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Tag `urgent` already exists (name must be unique).", decodeBody(t, resp)["message"])

	createTag(t, app, token, "later")
	resp = request(t, app, "GET", "/api/tags", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	tags := decodeList(t, resp)
	require.Len(t, tags, 2)
	assert.Equal(t, "later", tags[0]["name"])
	assert.Equal(t, "urgent", tags[1]["name"])

	resp = request(t, app, "PUT", "/api/tags/"+id, token, fiber.Map{"id": id, "name": "someday"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "someday", decodeBody(t, resp)["name"])

	resp = request(t, app, "DELETE", "/api/tags/"+id, token, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	resp = request(t, app, "GET", "/api/tags/"+id, token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestTagCrossUserNames(t *testing.T) {
	app := newTestApp(t)
	alice := signup(t, app, "alice")
	bob := signup(t, app, "bob")

	createTag(t, app, alice, "urgent")
	resp := request(t, app, "POST", "/api/tags", bob, fiber.Map{"name": "urgent"})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestTagDeleteCascade(t *testing.T) {
	app := newTestApp(t)
	token := signup(t, app, "alice")

	urgent := createTag(t, app, token, "urgent")
	later := createTag(t, app, token, "later")

	tagged := createNote(t, app, token, fiber.Map{"title": "Both", "tags": []string{urgent, later}})
	onlyUrgent := createNote(t, app, token, fiber.Map{"title": "One", "tags": []string{urgent}})

	resp := request(t, app, "DELETE", "/api/tags/"+urgent, token, nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	// Only the deleted tag is pulled; others stay intact.
	resp = request(t, app, "GET", "/api/notes/"+tagged["id"].(string), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, []any{later}, body["tags"])
	assert.Equal(t, "Both", body["title"])

	resp = request(t, app, "GET", "/api/notes/"+onlyUrgent["id"].(string), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{}, decodeBody(t, resp)["tags"])
}
