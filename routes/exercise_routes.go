package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rezotera/iprep_portal/handlers"
	"github.com/rezotera/iprep_portal/middleware"
	"github.com/rezotera/iprep_portal/services"
)

func ExerciseRoutes(app *fiber.App, h *handlers.ExerciseHandler, secret string, sessions *services.SessionService) {
	api := app.Group("/api/v1")

	exercises := api.Group("/exercises", middleware.Protected(secret), middleware.LoadSession(sessions), middleware.EditorRequired())
	exercises.Get("", h.List)
	exercises.Get("/:exerciseId", h.Detail)
	exercises.Post("", h.Save)
	exercises.Delete("/tasks/:taskId", h.RemoveTask)
	exercises.Delete("/:exerciseId", h.Delete)
}
