// http/server_test.go
package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noteful/noteful-server/auth"
	"github.com/noteful/noteful-server/store/memory"
	"github.com/noteful/noteful-server/ws"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	st := memory.New()
	issuer := auth.NewIssuer("test-secret", time.Hour)
	srv := NewServer(st, issuer, ws.NewHub(zerolog.Nop()), zerolog.Nop())
	return srv.App()
}

// request runs a JSON request against the app and returns the response.
func request(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeBody reads the response body as JSON into a generic map.
func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func decodeList(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// signup registers a user and returns a login token.
func signup(t *testing.T, app *fiber.App, username string) string {
	t.Helper()

	resp := request(t, app, "POST", "/api/users", "", fiber.Map{
		"fullName": "Test User",
		"username": username,
		"password": "password123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = request(t, app, "POST", "/api/login", "", fiber.Map{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	token, ok := decodeBody(t, resp)["authToken"].(string)
	require.True(t, ok, "login response must contain authToken")
	return token
}

// createFolder is a shorthand used by folder and note tests.
func createFolder(t *testing.T, app *fiber.App, token, name string) string {
	t.Helper()
	resp := request(t, app, "POST", "/api/folders", token, fiber.Map{"name": name})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decodeBody(t, resp)["id"].(string)
}

func createTag(t *testing.T, app *fiber.App, token, name string) string {
	t.Helper()
	resp := request(t, app, "POST", "/api/tags", token, fiber.Map{"name": name})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decodeBody(t, resp)["id"].(string)
}

func createNote(t *testing.T, app *fiber.App, token string, fields fiber.Map) map[string]any {
	t.Helper()
	resp := request(t, app, "POST", "/api/notes", token, fields)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decodeBody(t, resp)
}
