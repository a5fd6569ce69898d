package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Actor is the authorization context threaded explicitly into lifecycle,
// import and maintenance calls. It replaces any ambient notion of "current
// user": services never read session state themselves.
type Actor struct {
	UserID   uuid.UUID
	Fullname string
	Role     string
}

// ActorFromSession builds the Actor from the session user in Locals.
func ActorFromSession(c *fiber.Ctx) (Actor, error) {
	m, ok := c.Locals("user").(map[string]interface{})
	if !ok || m == nil {
		return Actor{}, ErrNotAuthenticated
	}
	idStr, _ := m["user_id"].(string)
	id, err := uuid.Parse(idStr)
	if err != nil {
		return Actor{}, ErrNotAuthenticated
	}
	fullname, _ := m["fullname"].(string)
	role, _ := m["role"].(string)
	return Actor{UserID: id, Fullname: fullname, Role: role}, nil
}
