package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rezotera/iprep_portal/middleware"
	"github.com/rezotera/iprep_portal/services"
)

var validate = validator.New()

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthHandler struct {
	Sessions *services.SessionService
	Activity *services.ActivityLogger
}

func NewAuthHandler(sessions *services.SessionService, activity *services.ActivityLogger) *AuthHandler {
	return &AuthHandler{Sessions: sessions, Activity: activity}
}

// Login proxies the credentials upstream and answers with the portal JWT plus
// the normalized user. Upstream rejections come back verbatim so the staff
// member sees the platform's own message.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	sess, signed, err := h.Sessions.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	h.Activity.Log("logged in", sess.FullName)

	return c.JSON(fiber.Map{
		"token": signed,
		"user": fiber.Map{
			"id":        sess.UserID,
			"full_name": sess.FullName,
			"email":     sess.Email,
			"role":      sess.Role,
		},
	})
}

// Me re-validates the session against the platform's who-am-I endpoint.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	sess := middleware.Session(c)

	user, err := h.Sessions.Current(c.Context(), sess)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
	}
	return c.JSON(user)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess := middleware.Session(c)

	h.Activity.Log("logged out", sess.FullName)
	h.Sessions.Teardown(sess)

	return c.JSON(fiber.Map{"message": "Logged out successfully."})
}
