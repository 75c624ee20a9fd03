package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rezotera/iprep_portal/middleware"
	"github.com/rezotera/iprep_portal/models"
	"github.com/rezotera/iprep_portal/services"
	"gorm.io/gorm"
)

type PromoRequest struct {
	Code         string  `json:"code" validate:"required"`
	Type         string  `json:"type" validate:"required,oneof=flat percentage"`
	Value        float64 `json:"value" validate:"required,gt=0"`
	UsageLimit   *int    `json:"usage_limit" validate:"omitempty,gt=0"`
	PerUserLimit string  `json:"per_user_limit" validate:"omitempty,oneof=single multiple"`
}

type PromoHandler struct {
	DB       *gorm.DB
	Activity *services.ActivityLogger
}

func NewPromoHandler(db *gorm.DB, activity *services.ActivityLogger) *PromoHandler {
	return &PromoHandler{DB: db, Activity: activity}
}

func (h *PromoHandler) List(c *fiber.Ctx) error {
	var promos []models.PromoCode
	if err := h.DB.Order("created_at desc").Find(&promos).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load promo codes"})
	}
	return c.JSON(fiber.Map{"promo_codes": promos})
}

func (h *PromoHandler) Create(c *fiber.Ctx) error {
	sess := middleware.Session(c)

	var req PromoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	req.Code = strings.TrimSpace(req.Code)
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// Uniqueness is case-insensitive: SAVE20 and save20 are the same code.
	var count int64
	if err := h.DB.Model(&models.PromoCode{}).Where("LOWER(code) = ?", strings.ToLower(req.Code)).Count(&count).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check promo code"})
	}
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Promo code already exists!"})
	}

	promo := models.PromoCode{
		Code:         req.Code,
		Type:         req.Type,
		Value:        req.Value,
		UsageLimit:   req.UsageLimit,
		PerUserLimit: req.PerUserLimit,
	}
	if promo.PerUserLimit == "" {
		promo.PerUserLimit = models.PerUserSingle
	}
	if err := h.DB.Create(&promo).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create promo code"})
	}

	h.Activity.Log(fmt.Sprintf("created promo code '%s'", promo.Code), sess.FullName)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Promo code created",
		"promo_code": promo,
	})
}

func (h *PromoHandler) Delete(c *fiber.Ctx) error {
	sess := middleware.Session(c)

	code := strings.TrimSpace(c.Params("code"))
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Promo code is required"})
	}

	res := h.DB.Where("LOWER(code) = ?", strings.ToLower(code)).Delete(&models.PromoCode{})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete promo code"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Promo code not found"})
	}

	h.Activity.Log(fmt.Sprintf("deleted promo code '%s'", code), sess.FullName)
	return c.JSON(fiber.Map{"message": "Promo code deleted"})
}
