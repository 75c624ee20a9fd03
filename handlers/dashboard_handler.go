package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rezotera/iprep_portal/middleware"
	"github.com/rezotera/iprep_portal/services"
	"github.com/rezotera/iprep_portal/utils"
)

type NavItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

type NavGroup struct {
	Label string    `json:"label"`
	Items []NavItem `json:"items"`
}

type DashboardHandler struct {
	Activity *services.ActivityLogger
}

func NewDashboardHandler(activity *services.ActivityLogger) *DashboardHandler {
	return &DashboardHandler{Activity: activity}
}

// RecentActivity returns the last few portal actions, newest first.
func (h *DashboardHandler) RecentActivity(c *fiber.Ctx) error {
	entries, err := h.Activity.Recent()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load activity"})
	}
	return c.JSON(fiber.Map{"activity": entries})
}

// Navigation builds the sidebar menu for the signed-in role. Admin-only
// sections are omitted entirely rather than returned disabled.
func (h *DashboardHandler) Navigation(c *fiber.Ctx) error {
	sess := middleware.Session(c)
	level := utils.RoleLevel(sess.Role)

	items := []NavItem{
		{Label: "Dashboard", Path: "/dashboard"},
		{Label: "Users Management", Path: "/users"},
		{Label: "Contact Form Submissions", Path: "/contact-submissions"},
		{Label: "Inquiries", Path: "/inquiries"},
	}
	if level >= 3 {
		items = append(items,
			NavItem{Label: "Subscriptions", Path: "/subscriptions"},
			NavItem{Label: "Promo Codes", Path: "/promo-codes"},
			NavItem{Label: "Promo Modules", Path: "/promo-modules"},
		)
	}

	groups := []NavGroup{}
	if utils.CanManageExercises(sess.Role) {
		groups = append(groups, NavGroup{
			Label: "Exercise Modules",
			Items: []NavItem{
				{Label: "Reading", Path: "/exercises?module=reading"},
				{Label: "Writing", Path: "/exercises?module=writing"},
				{Label: "Listening", Path: "/exercises?module=listening"},
				{Label: "Speaking", Path: "/exercises?module=speaking"},
			},
		})
	}

	return c.JSON(fiber.Map{"items": items, "groups": groups})
}
