package api

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"verdict/internal/decision"
	"verdict/internal/middleware"
	"verdict/internal/models"
)

// NewDeskResponse converts a snapshot to its JSON form.
func NewDeskResponse(s decision.Snapshot) models.DeskResponse {
	r := models.DeskResponse{
		Query:  s.Query,
		Status: s.State.Status().String(),
	}
	r.Decision, _ = s.State.Decision()
	r.Error, _ = s.State.Failure()
	return r
}

// DeskHandler exposes the session's desk as JSON.
type DeskHandler struct {
	engine *decision.Engine
}

// NewDeskHandler creates a new API desk handler.
func NewDeskHandler(engine *decision.Engine) *DeskHandler {
	return &DeskHandler{engine: engine}
}

// Show handles GET /api/v1/desk.
func (h *DeskHandler) Show(c fiber.Ctx) error {
	desk := middleware.DeskFrom(c)
	if desk == nil {
		return jsonError(c, fiber.StatusInternalServerError, "desk unavailable")
	}
	return jsonSuccess(c, NewDeskResponse(desk.Snapshot()))
}

// Decide handles POST /api/v1/decide. With wait set it blocks until the
// decision resolves; otherwise it returns the processing desk. A blank
// query or a submission while one is in flight returns 409 with the
// current desk.
func (h *DeskHandler) Decide(c fiber.Ctx) error {
	desk := middleware.DeskFrom(c)
	if desk == nil {
		return jsonError(c, fiber.StatusInternalServerError, "desk unavailable")
	}

	var req models.DecideRequest
	if err := c.Bind().Body(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	var started bool
	if req.Wait {
		_, started = h.engine.Decide(context.Background(), desk, req.Query)
	} else {
		started = h.engine.Dispatch(context.Background(), desk, req.Query)
	}
	if !started {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status": "error",
			"error":  "submission ignored",
			"data":   NewDeskResponse(desk.Snapshot()),
		})
	}
	return jsonSuccess(c, NewDeskResponse(desk.Snapshot()))
}

// Reset handles POST /api/v1/reset.
func (h *DeskHandler) Reset(c fiber.Ctx) error {
	desk := middleware.DeskFrom(c)
	if desk == nil {
		return jsonError(c, fiber.StatusInternalServerError, "desk unavailable")
	}
	if !desk.Reset() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status": "error",
			"error":  "decision in progress",
			"data":   NewDeskResponse(desk.Snapshot()),
		})
	}
	return jsonSuccess(c, NewDeskResponse(desk.Snapshot()))
}
