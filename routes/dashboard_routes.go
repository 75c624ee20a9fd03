package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/rezotera/iprep_portal/handlers"
	"github.com/rezotera/iprep_portal/middleware"
	"github.com/rezotera/iprep_portal/services"
	ws "github.com/rezotera/iprep_portal/websocket"
)

func DashboardRoutes(app *fiber.App, h *handlers.DashboardHandler, hub *ws.Hub, secret string, sessions *services.SessionService) {
	api := app.Group("/api/v1")

	dash := api.Group("/dashboard", middleware.Protected(secret), middleware.LoadSession(sessions))
	dash.Get("/activity", h.RecentActivity)

	api.Get("/navigation", middleware.Protected(secret), middleware.LoadSession(sessions), h.Navigation)

	api.Use("/ws/activity", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws/activity", middleware.Protected(secret), middleware.LoadSession(sessions), websocket.New(hub.ServeWs))
}
