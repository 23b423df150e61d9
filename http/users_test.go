// http/users_test.go
package http

import (
	"regexp"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var idPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

func TestRegister(t *testing.T) {
	app := newTestApp(t)

	resp := request(t, app, "POST", "/api/users", "", fiber.Map{
		"fullName": "Alice Example",
		"username": "alice",
		"password": "Secret123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Regexp(t, idPattern, body["id"])
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "Alice Example", body["fullName"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "passwordHash")
	assert.Equal(t, "/api/users/"+body["id"].(string), resp.Header.Get("Location"))
}

func TestRegisterMissingFields(t *testing.T) {
	app := newTestApp(t)

	for _, missing := range []string{"fullName", "username", "password"} {
		body := fiber.Map{
			"fullName": "Alice Example",
			"username": "alice",
			"password": "Secret123",
		}
		delete(body, missing)

		resp := request(t, app, "POST", "/api/users", "", body)
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode, "missing %s", missing)
		assert.Equal(t, "Missing `"+missing+"` in request body.", decodeBody(t, resp)["message"])
	}
}

func TestRegisterFormatRules(t *testing.T) {
	app := newTestApp(t)

	cases := []struct {
		name string
		body fiber.Map
		msg  string
	}{
		{
			name: "non-string username",
			body: fiber.Map{"fullName": "A", "username": 42, "password": "Secret123"},
			msg:  "`username` and `password` must be of type string.",
		},
		{
			name: "non-string password",
			body: fiber.Map{"fullName": "A", "username": "alice", "password": 12345678},
			msg:  "`username` and `password` must be of type string.",
		},
		{
			name: "empty username",
			body: fiber.Map{"fullName": "A", "username": "", "password": "Secret123"},
			msg:  "Username must be at least one character long.",
		},
		{
			name: "short password",
			body: fiber.Map{"fullName": "A", "username": "alice", "password": "short"},
			msg:  "Password must be between 8 and 72 characters long.",
		},
		{
			name: "leading space username",
			body: fiber.Map{"fullName": "A", "username": " alice", "password": "Secret123"},
			msg:  "Username and password cannot begin or end with a space.",
		},
		{
			name: "trailing space password",
			body: fiber.Map{"fullName": "A", "username": "alice", "password": "Secret123 "},
			msg:  "Username and password cannot begin or end with a space.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := request(t, app, "POST", "/api/users", "", tc.body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tc.msg, decodeBody(t, resp)["message"])
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	app := newTestApp(t)

	body := fiber.Map{"fullName": "A", "username": "alice", "password": "Secret123"}
	resp := request(t, app, "POST", "/api/users", "", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = request(t, app, "POST", "/api/users", "", body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "The username `alice` already exists.", decodeBody(t, resp)["message"])
}
