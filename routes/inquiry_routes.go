package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rezotera/iprep_portal/handlers"
	"github.com/rezotera/iprep_portal/middleware"
	"github.com/rezotera/iprep_portal/services"
)

func InquiryRoutes(app *fiber.App, h *handlers.InquiryHandler, secret string, sessions *services.SessionService) {
	api := app.Group("/api/v1")

	protected := []fiber.Handler{middleware.Protected(secret), middleware.LoadSession(sessions)}
	api.Get("/inquiries", append(protected, h.List)...)
	api.Get("/contact-submissions", append(protected, h.List)...)
}
