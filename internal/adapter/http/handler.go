package http

import (
	"errors"
	"strconv"
	"strings"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/internal/registry"
	"resume-builder/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	templates *registry.Registry
	surface   usecase.Surface
	exporter  *usecase.Exporter
	saved     *usecase.SavedManager
	log       *zap.Logger
}

func NewHandler(t *registry.Registry, s usecase.Surface, e *usecase.Exporter, m *usecase.SavedManager, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{templates: t, surface: s, exporter: e, saved: m, log: log}
}

// Register mounts every route on app.
func (h *Handler) Register(app fiber.Router) {
	app.Get("/healthz", h.Health)
	app.Get("/templates", h.ListTemplates)
	app.Post("/render", h.Render)
	app.Post("/export", h.Export)

	r := app.Group("/resumes")
	r.Get("/", h.ListSaved)
	r.Post("/", h.AddSaved)
	r.Delete("/", h.ClearSaved)
	r.Get("/:id", h.GetSaved)
	r.Patch("/:id", h.UpdateSaved)
	r.Delete("/:id", h.RemoveSaved)
	r.Get("/:id/preview", h.PreviewSaved)
	r.Get("/:id/pdf", h.ExportSaved)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "exporting": h.exporter.Busy()})
}

func (h *Handler) ListTemplates(c *fiber.Ctx) error {
	return c.JSON(h.templates.All())
}

func body(c *fiber.Ctx) []byte {
	if b := c.Body(); len(b) > 0 {
		return b
	}
	return []byte("{}")
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

// Render returns the document as JSON, or as the HTML preview page with
// ?format=html.
func (h *Handler) Render(c *fiber.Ctx) error {
	req, err := model.DecodeRequest(body(c))
	if err != nil {
		return badRequest(c, err)
	}
	doc := usecase.Render(req.Data, h.templates.Resolve(req.TemplateID))
	return h.writeDocument(c, doc, c.Query("format", "json"))
}

func (h *Handler) writeDocument(c *fiber.Ctx, doc *domain.Document, format string) error {
	switch format {
	case "html":
		page, err := h.surface.Render(doc)
		if err != nil {
			h.log.Error("render preview", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "render failed"})
		}
		c.Type("html", "utf-8")
		return c.SendString(page)
	case "json":
		return c.JSON(doc)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format must be json or html"})
	}
}

// Export streams the PDF as an attachment.
func (h *Handler) Export(c *fiber.Ctx) error {
	req, err := model.DecodeRequest(body(c))
	if err != nil {
		return badRequest(c, err)
	}
	doc := usecase.Render(req.Data, h.templates.Resolve(req.TemplateID))
	name := usecase.ResolveFileName(req.FileName, req.Data.PersonalInfo.FullName)
	return h.sendPDF(c, doc, name)
}

func (h *Handler) sendPDF(c *fiber.Ctx, doc *domain.Document, fileName string) error {
	art, err := h.exporter.Export(c.UserContext(), doc, fileName)
	if err != nil {
		return h.exportFailed(c, err)
	}
	c.Attachment(art.FileName)
	c.Set("X-Page-Count", strconv.Itoa(art.Pages))
	return c.Send(art.PDF)
}

func (h *Handler) exportFailed(c *fiber.Ctx, err error) error {
	kind := usecase.ExportKind(err)
	status := fiber.StatusInternalServerError
	switch kind {
	case usecase.KindExportInProgress:
		status = fiber.StatusConflict
	case usecase.KindNoRenderableNode:
		status = fiber.StatusUnprocessableEntity
	}
	h.log.Warn("export failed", zap.String("kind", string(kind)), zap.Error(err))
	return c.Status(status).JSON(fiber.Map{"error": err.Error(), "code": kind})
}

func (h *Handler) ListSaved(c *fiber.Ctx) error {
	return c.JSON(h.saved.List())
}

// respondSaved writes v with status. A persistence failure does not undo
// the change, so it is reported as a warning next to the result.
func respondSaved(c *fiber.Ctx, status int, v any, err error, warnings ...string) error {
	if errors.Is(err, usecase.ErrPersist) {
		warnings = append(warnings, err.Error())
	}
	if len(warnings) > 0 {
		return c.Status(status).JSON(fiber.Map{"result": v, "warning": strings.Join(warnings, "; ")})
	}
	return c.Status(status).JSON(fiber.Map{"result": v})
}

func (h *Handler) AddSaved(c *fiber.Ctx) error {
	req, err := model.DecodeRequest(body(c))
	if err != nil {
		return badRequest(c, err)
	}
	var warnings []string
	if req.Data.IsEmpty() {
		warnings = append(warnings, domain.EmptyResumeWarning)
	}
	s, err := h.saved.Add(c.UserContext(), req.Name, req.TemplateID, req.Data)
	if err != nil && !errors.Is(err, usecase.ErrPersist) {
		return err
	}
	return respondSaved(c, fiber.StatusCreated, s, err, warnings...)
}

func (h *Handler) GetSaved(c *fiber.Ctx) error {
	s, err := h.saved.Get(c.Params("id"))
	if err != nil {
		return notFound(c, err)
	}
	return c.JSON(s)
}

func (h *Handler) UpdateSaved(c *fiber.Ctx) error {
	req, err := model.DecodeUpdate(body(c))
	if err != nil {
		return badRequest(c, err)
	}
	s, err := h.saved.Update(c.UserContext(), c.Params("id"), req.Update())
	switch {
	case errors.Is(err, usecase.ErrResumeNotFound):
		return notFound(c, err)
	case errors.Is(err, usecase.ErrInvalidName):
		return badRequest(c, err)
	case err != nil && !errors.Is(err, usecase.ErrPersist):
		return err
	}
	return respondSaved(c, fiber.StatusOK, s, err)
}

func (h *Handler) RemoveSaved(c *fiber.Ctx) error {
	id := c.Params("id")
	err := h.saved.Remove(c.UserContext(), id)
	switch {
	case errors.Is(err, usecase.ErrResumeNotFound):
		return notFound(c, err)
	case err != nil && !errors.Is(err, usecase.ErrPersist):
		return err
	}
	return respondSaved(c, fiber.StatusOK, fiber.Map{"id": id}, err)
}

func (h *Handler) ClearSaved(c *fiber.Ctx) error {
	err := h.saved.Clear(c.UserContext())
	if err != nil && !errors.Is(err, usecase.ErrPersist) {
		return err
	}
	return respondSaved(c, fiber.StatusOK, fiber.Map{"cleared": true}, err)
}

// savedDocument renders a saved resume with its template, falling back to
// the first template when the id no longer exists.
func (h *Handler) savedDocument(c *fiber.Ctx) (domain.SavedResume, *domain.Document, error) {
	s, err := h.saved.Get(c.Params("id"))
	if err != nil {
		return s, nil, err
	}
	return s, usecase.Render(s.Data, h.templates.Resolve(s.TemplateID)), nil
}

func (h *Handler) PreviewSaved(c *fiber.Ctx) error {
	_, doc, err := h.savedDocument(c)
	if err != nil {
		return notFound(c, err)
	}
	return h.writeDocument(c, doc, c.Query("format", "html"))
}

func (h *Handler) ExportSaved(c *fiber.Ctx) error {
	s, doc, err := h.savedDocument(c)
	if err != nil {
		return notFound(c, err)
	}
	return h.sendPDF(c, doc, usecase.SavedFileName(s))
}

func notFound(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
}
