// http/server.go
package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noteful/noteful-server/auth"
	"github.com/noteful/noteful-server/domain"
	"github.com/noteful/noteful-server/store"
	"github.com/noteful/noteful-server/ws"
)

type Server struct {
	store store.Store
	auth  *auth.Issuer
	hub   *ws.Hub
	log   zerolog.Logger
}

func NewServer(st store.Store, issuer *auth.Issuer, hub *ws.Hub, log zerolog.Logger) *Server {
	return &Server{store: st, auth: issuer, hub: hub, log: log}
}

// App builds the fiber application with all routes mounted.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          s.errorHandler,
		DisableStartupMessage: true,
	})

	app.Use(s.requestLogger())

	api := app.Group("/api")
	requireAuth := auth.Middleware(s.auth)

	api.Post("/users", s.handleRegister)
	api.Post("/login", s.handleLogin)
	api.Post("/refresh", requireAuth, s.handleRefresh)

	folders := api.Group("/folders", requireAuth)
	folders.Get("/", s.handleListFolders)
	folders.Get("/:id", s.handleGetFolder)
	folders.Post("/", s.handleCreateFolder)
	folders.Put("/:id", s.handleUpdateFolder)
	folders.Delete("/:id", s.handleDeleteFolder)

	tags := api.Group("/tags", requireAuth)
	tags.Get("/", s.handleListTags)
	tags.Get("/:id", s.handleGetTag)
	tags.Post("/", s.handleCreateTag)
	tags.Put("/:id", s.handleUpdateTag)
	tags.Delete("/:id", s.handleDeleteTag)

	notes := api.Group("/notes", requireAuth)
	notes.Get("/", s.handleListNotes)
	notes.Get("/:id", s.handleGetNote)
	notes.Post("/", s.handleCreateNote)
	notes.Put("/:id", s.handleUpdateNote)
	notes.Delete("/:id", s.handleDeleteNote)

	api.Get("/events", requireAuth, s.handleEvents)

	app.Use(func(c *fiber.Ctx) error {
		return domain.ErrNotFound
	})

	return app
}

// locationFor builds the Location header value for a created entity from
// the request path.
func locationFor(c *fiber.Ctx, id string) string {
	return strings.TrimSuffix(c.Path(), "/") + "/" + id
}

// errorHandler renders domain errors with their status and everything else
// as a generic 500, logging the detail server-side only.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var derr *domain.Error
	if errors.As(err, &derr) {
		return c.Status(derr.Status).JSON(fiber.Map{"message": derr.Message})
	}

	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		return c.Status(ferr.Code).JSON(fiber.Map{"message": ferr.Message})
	}

	s.log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("unhandled error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal Server Error"})
}

func (s *Server) requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		// Resolve errors here so the logged status is the one sent.
		if err := c.Next(); err != nil {
			if err := s.errorHandler(c, err); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		s.log.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("request")
		return nil
	}
}
