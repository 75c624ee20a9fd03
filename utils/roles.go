package utils

import "github.com/rezotera/iprep_portal/models"

// RoleLevel orders the portal roles by privilege. Unknown roles rank below
// everything, so a record with a garbage role can never outrank staff.
func RoleLevel(role string) int {
	switch role {
	case models.RoleSuperAdmin:
		return 4
	case models.RoleAdmin:
		return 3
	case models.RoleEditor:
		return 2
	case models.RoleUser:
		return 1
	default:
		return 0
	}
}

// CanEditUser: self-edit is always allowed, otherwise the actor must outrank
// the target or be SuperAdmin.
func CanEditUser(actorRole, actorID, targetRole, targetID string) bool {
	if actorID != "" && actorID == targetID {
		return true
	}
	if actorRole == models.RoleSuperAdmin {
		return true
	}
	return RoleLevel(targetRole) < RoleLevel(actorRole)
}

// CanDeleteUser: never self, otherwise outrank-or-SuperAdmin.
func CanDeleteUser(actorRole, actorID, targetRole, targetID string) bool {
	if actorID != "" && actorID == targetID {
		return false
	}
	if actorRole == models.RoleSuperAdmin {
		return true
	}
	return RoleLevel(targetRole) < RoleLevel(actorRole)
}

// CanManageExercises gates the editor workflow to staff roles.
func CanManageExercises(role string) bool {
	return RoleLevel(role) >= 2
}
