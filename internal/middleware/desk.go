package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
	"github.com/google/uuid"

	"verdict/internal/decision"
)

const (
	// DeskSessionKey is the session key holding the desk ID.
	DeskSessionKey = "desk_id"
	deskLocalsKey  = "desk"
)

// DeskMiddleware binds each browser session to a desk in the registry.
type DeskMiddleware struct {
	desks *decision.Registry
}

// NewDeskMiddleware creates a new desk middleware instance.
func NewDeskMiddleware(desks *decision.Registry) *DeskMiddleware {
	return &DeskMiddleware{desks: desks}
}

// Attach loads the session's desk, opening one if the session has none or
// its desk has been swept.
func (m *DeskMiddleware) Attach(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session unavailable")
	}

	if desk, ok := m.lookup(sess); ok {
		c.Locals(deskLocalsKey, desk)
		return c.Next()
	}

	desk := m.desks.Open()
	sess.Set(DeskSessionKey, desk.ID().String())
	c.Locals(deskLocalsKey, desk)
	return c.Next()
}

// Fresh discards the session's desk and opens a new Idle one. Used on full
// page loads, which start a new screen.
func (m *DeskMiddleware) Fresh(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session unavailable")
	}

	if old, ok := m.lookup(sess); ok {
		m.desks.Drop(old.ID())
	}

	desk := m.desks.Open()
	sess.Set(DeskSessionKey, desk.ID().String())
	c.Locals(deskLocalsKey, desk)
	return c.Next()
}

func (m *DeskMiddleware) lookup(sess *session.Middleware) (*decision.Desk, bool) {
	raw, ok := sess.Get(DeskSessionKey).(string)
	if !ok {
		return nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, false
	}
	return m.desks.Get(id)
}

// DeskFrom returns the desk attached to the request, or nil.
func DeskFrom(c fiber.Ctx) *decision.Desk {
	desk, _ := c.Locals(deskLocalsKey).(*decision.Desk)
	return desk
}
