// Package server assembles the HTTP application from configuration.
package server

import (
	"context"
	"errors"
	"time"

	httpadapter "resume-builder/internal/adapter/http"
	"resume-builder/internal/adapter/view"
	"resume-builder/internal/config"
	"resume-builder/internal/registry"
	"resume-builder/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Deps are the collaborators that depend on the environment.
type Deps struct {
	Rasterizer usecase.Rasterizer
	Store      usecase.KeyValueStore
	Log        *zap.Logger
}

// Services bundles the core components shared by the HTTP API and the CLI.
type Services struct {
	Templates *registry.Registry
	View      *view.HTML
	Exporter  *usecase.Exporter
	Saved     *usecase.SavedManager
}

// NewServices wires the core from cfg and deps.
func NewServices(ctx context.Context, cfg *config.Config, deps Deps) (*Services, error) {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	v, err := view.New(cfg.Render.SurfaceWidth)
	if err != nil {
		return nil, err
	}
	exporter := usecase.NewExporter(v, deps.Rasterizer, log.Named("export"), usecase.ExportOptions{
		Scale:    cfg.Render.Scale,
		Mode:     usecase.PaginationMode(cfg.Render.Pagination),
		Attempts: cfg.Render.Attempts,
		Backoff:  cfg.Render.Backoff,
	})
	saved := usecase.NewSavedManager(ctx, deps.Store, cfg.Storage.Key, log.Named("saved"))
	return &Services{
		Templates: registry.Default(),
		View:      v,
		Exporter:  exporter,
		Saved:     saved,
	}, nil
}

// NewApp builds the fiber app with every route registered.
func NewApp(s *Services, log *zap.Logger) *fiber.App {
	if log == nil {
		log = zap.NewNop()
	}
	app := fiber.New(fiber.Config{
		AppName:               "resume-builder",
		DisableStartupMessage: true,
		BodyLimit:             16 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			if code >= fiber.StatusInternalServerError {
				log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})
	httpadapter.NewHandler(s.Templates, s.View, s.Exporter, s.Saved, log.Named("http")).Register(app)
	return app
}

// Run serves app on addr until ctx is cancelled, then shuts down.
func Run(ctx context.Context, app *fiber.App, addr string, log *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", addr))
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		return app.ShutdownWithTimeout(shutdownTimeout)
	}
}
