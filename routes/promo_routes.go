package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rezotera/iprep_portal/handlers"
	"github.com/rezotera/iprep_portal/middleware"
	"github.com/rezotera/iprep_portal/services"
)

func PromoRoutes(app *fiber.App, h *handlers.PromoHandler, secret string, sessions *services.SessionService) {
	api := app.Group("/api/v1")

	promos := api.Group("/promo-codes", middleware.Protected(secret), middleware.LoadSession(sessions), middleware.AdminRequired())
	promos.Get("", h.List)
	promos.Post("", h.Create)
	promos.Delete("/:code", h.Delete)
}
