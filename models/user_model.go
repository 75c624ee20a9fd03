package models

import "strings"

// Portal roles, ordered by privilege. Role strings coming back from the
// platform API are free-form; NormalizeRole coerces them to this set.
const (
	RoleSuperAdmin = "SuperAdmin"
	RoleAdmin      = "Admin"
	RoleEditor     = "Editor"
	RoleUser       = "User"
)

// PortalUser mirrors a staff/end-user record from the platform API.
type PortalUser struct {
	ID             string  `json:"id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	Role           string  `json:"role"`
	IsActive       bool    `json:"is_active"`
	ReferralCode   string  `json:"referral_code,omitempty"`
	DiscountAmount float64 `json:"discount_amount,omitempty"`
	CreatedAt      string  `json:"created_at,omitempty"`
}

func (u PortalUser) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func NormalizeRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "superadmin":
		return RoleSuperAdmin
	case "admin":
		return RoleAdmin
	case "editor":
		return RoleEditor
	default:
		return RoleUser
	}
}
