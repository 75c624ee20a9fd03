package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rezotera/iprep_portal/handlers"
	"github.com/rezotera/iprep_portal/middleware"
	"github.com/rezotera/iprep_portal/services"
)

func UserRoutes(app *fiber.App, h *handlers.UserHandler, secret string, sessions *services.SessionService) {
	api := app.Group("/api/v1")

	users := api.Group("/users", middleware.Protected(secret), middleware.LoadSession(sessions))
	users.Get("", h.List)
	users.Post("", h.Create)
	users.Put("/:userId", h.Update)
	users.Delete("/:userId", h.Delete)
}
