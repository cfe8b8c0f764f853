package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "voc_backend/internals/helpers"
)

const localsPrincipal = "principal"

// Principal is the caller identity resolved once per request by the auth
// middleware. Handlers read it instead of re-parsing the token.
type Principal struct {
	UserID int64
	Role   string
}

// FromContext returns the Principal stored by RequireAuth.
func FromContext(c *fiber.Ctx) (Principal, error) {
	p, ok := c.Locals(localsPrincipal).(Principal)
	if !ok || p.UserID == 0 {
		return Principal{}, helper.ErrInvalidToken
	}
	return p, nil
}
