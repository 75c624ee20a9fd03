package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rezotera/iprep_portal/handlers"
	"github.com/rezotera/iprep_portal/middleware"
	"github.com/rezotera/iprep_portal/services"
)

func AuthRoutes(app *fiber.App, h *handlers.AuthHandler, secret string, sessions *services.SessionService) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/login", h.Login)

	me := auth.Group("", middleware.Protected(secret), middleware.LoadSession(sessions))
	me.Get("/me", h.Me)
	me.Post("/logout", h.Logout)
}
