package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "voc_backend/internals/helpers"
)

func limitReached(c *fiber.Ctx) error {
	return helper.JsonError(c, helper.ErrTooManyRequests)
}

// GlobalRateLimiter caps requests per client IP across all endpoints.
func GlobalRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        200,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: limitReached,
	})
}

// WriteRateLimiter is a tighter limit for mutating endpoints that reach
// the file service and remote lookups.
func WriteRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        30,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: limitReached,
	})
}
