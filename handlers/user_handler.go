package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rezotera/iprep_portal/middleware"
	"github.com/rezotera/iprep_portal/models"
	"github.com/rezotera/iprep_portal/services"
	"github.com/rezotera/iprep_portal/upstream"
	"github.com/rezotera/iprep_portal/utils"
)

type UserRequest struct {
	FirstName      string  `json:"first_name" validate:"required"`
	LastName       string  `json:"last_name" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	Role           string  `json:"role" validate:"required"`
	Password       string  `json:"password,omitempty" validate:"omitempty,min=6"`
	ReferralCode   string  `json:"referral_code,omitempty"`
	DiscountAmount float64 `json:"discount_amount,omitempty" validate:"omitempty,gte=0,lte=100"`
	IsActive       *bool   `json:"is_active,omitempty"`
}

type UserHandler struct {
	API      *upstream.Client
	Activity *services.ActivityLogger
}

func NewUserHandler(api *upstream.Client, activity *services.ActivityLogger) *UserHandler {
	return &UserHandler{API: api, Activity: activity}
}

// List returns all portal users, optionally filtered by a free-text term
// across name and email.
func (h *UserHandler) List(c *fiber.Ctx) error {
	sess := middleware.Session(c)

	wire, err := h.API.ListUsers(c.Context(), sess.UpstreamToken)
	if err != nil {
		return upstreamError(c, err, "Failed to load users")
	}

	search := strings.ToLower(strings.TrimSpace(c.Query("search")))
	users := make([]models.PortalUser, 0, len(wire))
	for _, w := range wire {
		u := services.PortalUser(w)
		if search != "" &&
			!strings.Contains(strings.ToLower(u.FirstName), search) &&
			!strings.Contains(strings.ToLower(u.LastName), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) {
			continue
		}
		users = append(users, u)
	}

	return c.JSON(fiber.Map{"users": users})
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	sess := middleware.Session(c)

	var req UserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Password is required for new users"})
	}

	if err := h.API.CreateUser(c.Context(), sess.UpstreamToken, buildUserPayload(req)); err != nil {
		if upstream.IsConflict(err) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "An account with this email already exists."})
		}
		return upstreamError(c, err, "Failed to create user")
	}

	h.Activity.Log("created user '"+req.FirstName+" "+req.LastName+"'", sess.FullName)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User created successfully!"})
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	sess := middleware.Session(c)
	userID := c.Params("userId")

	var req UserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	target, err := h.findUser(c, userID)
	if err != nil {
		return upstreamError(c, err, "Failed to load users")
	}
	if target == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	if !utils.CanEditUser(sess.Role, sess.UserID, target.Role, target.ID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not have permission to edit this user."})
	}

	if err := h.API.UpdateUser(c.Context(), sess.UpstreamToken, userID, buildUserPayload(req)); err != nil {
		if upstream.IsConflict(err) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "An account with this email already exists."})
		}
		return upstreamError(c, err, "Failed to update user")
	}

	h.Activity.Log("updated user '"+req.FirstName+" "+req.LastName+"'", sess.FullName)
	return c.JSON(fiber.Map{"message": "User updated successfully!"})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	sess := middleware.Session(c)
	userID := c.Params("userId")

	if userID == sess.UserID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "You cannot delete your own account."})
	}

	target, err := h.findUser(c, userID)
	if err != nil {
		return upstreamError(c, err, "Failed to load users")
	}
	if target == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	if !utils.CanDeleteUser(sess.Role, sess.UserID, target.Role, target.ID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not have permission to delete this user."})
	}

	if err := h.API.DeleteUser(c.Context(), sess.UpstreamToken, userID); err != nil {
		return upstreamError(c, err, "Failed to delete user")
	}

	h.Activity.Log("deleted user '"+target.FullName()+"'", sess.FullName)
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

func (h *UserHandler) findUser(c *fiber.Ctx, userID string) (*models.PortalUser, error) {
	sess := middleware.Session(c)
	wire, err := h.API.ListUsers(c.Context(), sess.UpstreamToken)
	if err != nil {
		return nil, err
	}
	for _, w := range wire {
		if string(w.ID) == userID {
			u := services.PortalUser(w)
			return &u, nil
		}
	}
	return nil, nil
}

func buildUserPayload(req UserRequest) upstream.UserPayload {
	return upstream.UserPayload{
		FirstName:              req.FirstName,
		LastName:               req.LastName,
		Email:                  req.Email,
		Role:                   strings.ToLower(req.Role),
		Password:               req.Password,
		ReferredByReferralCode: req.ReferralCode,
		DiscountAmount:         req.DiscountAmount,
		IsActive:               req.IsActive,
	}
}
