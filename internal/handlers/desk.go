package handlers

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"verdict/internal/config"
	"verdict/internal/decision"
)

// DeskHandler serves the decision screen and its HTMX partials.
type DeskHandler struct {
	engine *decision.Engine
	cfg    *config.Config
}

// NewDeskHandler creates a new desk handler.
func NewDeskHandler(engine *decision.Engine, cfg *config.Config) *DeskHandler {
	return &DeskHandler{engine: engine, cfg: cfg}
}

// Index renders the full page around a fresh desk.
func (h *DeskHandler) Index(c fiber.Ctx) error {
	desk, err := requireDesk(c)
	if err != nil {
		return err
	}
	return c.Render("index", MergeBranding(fiber.Map{
		"Title": h.cfg.SiteTitle,
		"Desk":  NewDeskView(desk.Snapshot()),
	}, h.cfg))
}

// Query stores the text being composed.
func (h *DeskHandler) Query(c fiber.Ctx) error {
	desk, err := requireDesk(c)
	if err != nil {
		return err
	}
	desk.SetQuery(c.FormValue("query"))
	return c.SendStatus(fiber.StatusNoContent)
}

// Submit starts a decision for the submitted query and renders the
// resulting desk. Blank queries and submissions while a request is in
// flight leave the desk as it was.
func (h *DeskHandler) Submit(c fiber.Ctx) error {
	desk, err := requireDesk(c)
	if err != nil {
		return err
	}
	query := c.FormValue("query")
	// The fiber context is recycled once the handler returns.
	if !h.engine.Dispatch(context.Background(), desk, query) {
		desk.SetQuery(query)
	}
	return h.renderDesk(c, desk)
}

// Show renders the current desk. The processing view polls it.
func (h *DeskHandler) Show(c fiber.Ctx) error {
	desk, err := requireDesk(c)
	if err != nil {
		return err
	}
	return h.renderDesk(c, desk)
}

// Reset clears the desk and renders the idle view.
func (h *DeskHandler) Reset(c fiber.Ctx) error {
	desk, err := requireDesk(c)
	if err != nil {
		return err
	}
	desk.Reset()
	return h.renderDesk(c, desk)
}

func (h *DeskHandler) renderDesk(c fiber.Ctx, desk *decision.Desk) error {
	return c.Render("partials/desk", fiber.Map{
		"Desk": NewDeskView(desk.Snapshot()),
	}, "")
}
