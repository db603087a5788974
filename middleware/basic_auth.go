package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/roysitumorang/kilau/helper"
)

// BasicAuth guards operational endpoints; with no username configured every request is refused.
func BasicAuth(username, password string) func(c *fiber.Ctx) error {
	users := map[string]string{}
	if username != "" {
		users[username] = password
	}
	return basicauth.New(basicauth.Config{
		Users: users,
		Unauthorized: func(c *fiber.Ctx) error {
			return helper.NewResponse(fiber.StatusUnauthorized).SetMessage("Unauthorized").WriteResponse(c)
		},
	})
}
