package handlers

import (
	"github.com/gofiber/fiber/v3"

	"verdict/internal/decision"
	"verdict/internal/middleware"
	"verdict/internal/validation"
)

// DeskView is the template model for one desk. Only the field matching
// Status is populated. CanSubmit drives the initial state of the submit
// button; static/app.js keeps it in sync while typing.
type DeskView struct {
	Query     string
	Status    string
	Decision  string
	Error     string
	CanSubmit bool
}

// NewDeskView renders a snapshot into its template model.
func NewDeskView(s decision.Snapshot) DeskView {
	v := DeskView{
		Query:  s.Query,
		Status: s.State.Status().String(),
	}
	if text, ok := s.State.Decision(); ok {
		v.Decision = text
	}
	if msg, ok := s.State.Failure(); ok {
		v.Error = msg
	}
	v.CanSubmit = s.State.Status() == decision.StatusIdle && !validation.IsBlankQuery(s.Query)
	return v
}

// requireDesk returns the desk attached by middleware.DeskMiddleware.
func requireDesk(c fiber.Ctx) (*decision.Desk, error) {
	desk := middleware.DeskFrom(c)
	if desk == nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "desk unavailable")
	}
	return desk, nil
}
