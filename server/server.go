// Package server exposes a diagram store over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"sadt/codegen"
	"sadt/store"
)

// Server serves the diagrams of one store.
type Server struct {
	app   *fiber.App
	store store.Store
	gen   *codegen.Generator
	log   *slog.Logger
}

// New builds the server and its routes.
func New(s store.Store, log *slog.Logger) (*Server, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	gen, err := codegen.New()
	if err != nil {
		return nil, err
	}
	srv := &Server{
		app:   fiber.New(fiber.Config{AppName: "sadt"}),
		store: s,
		gen:   gen,
		log:   log,
	}
	srv.app.Use(srv.logRequests)
	srv.routes()
	return srv, nil
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	s.log.Info("listening", "addr", addr)
	return s.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
}

// Shutdown stops accepting requests and waits for active ones until ctx is
// done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) routes() {
	s.app.Get("/diagrams", s.listDiagrams)
	s.app.Get("/diagrams/:name", s.getDiagram)
	s.app.Put("/diagrams/:name", s.putDiagram)
	s.app.Delete("/diagrams/:name", s.deleteDiagram)
	s.app.Get("/diagrams/:name/export/:format", s.exportDiagram)
	s.app.Get("/diagrams/:name/code", s.code)
	s.app.Get("/diagrams/:name/doc", s.doc)
	s.app.Get("/diagrams/:name/doc.html", s.docHTML)
	s.app.Get("/diagrams/:name/nodes/:id/signature", s.signature)
}

func (s *Server) logRequests(c fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.log.Info("request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start))
	return err
}

// fail writes {"error": msg} with the given status.
func fail(c fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// storeStatus maps store errors to HTTP statuses.
func storeStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, store.ErrInvalidName):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
