// Package rayid assigns a unique request ID to every incoming request.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the request's ray ID.
const HeaderName = "X-Ray-Id"

// LocalsKey is the fiber locals key the ray ID is stored under.
const LocalsKey = "ray_id"

// New returns a middleware that stores a fresh UUID in the request locals
// and echoes it in the response headers. An incoming X-Ray-Id is honored so
// traces survive proxy hops.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(LocalsKey, rid)
		c.Set(HeaderName, rid)
		return c.Next()
	}
}
