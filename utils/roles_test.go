package utils

import (
	"testing"

	"github.com/rezotera/iprep_portal/models"
)

func TestRoleLevelOrdering(t *testing.T) {
	ordered := []string{"", "nonsense", models.RoleUser, models.RoleEditor, models.RoleAdmin, models.RoleSuperAdmin}
	for i := 1; i < len(ordered); i++ {
		lo, hi := RoleLevel(ordered[i-1]), RoleLevel(ordered[i])
		if lo > hi {
			t.Fatalf("RoleLevel(%q)=%d ranks above RoleLevel(%q)=%d", ordered[i-1], lo, ordered[i], hi)
		}
	}
	if RoleLevel("garbage") != 0 {
		t.Fatalf("unknown role should rank at 0, got %d", RoleLevel("garbage"))
	}
}

func TestCanEditUser(t *testing.T) {
	cases := []struct {
		name                 string
		actorRole, actorID   string
		targetRole, targetID string
		want                 bool
	}{
		{"self edit always allowed", models.RoleUser, "7", models.RoleUser, "7", true},
		{"superadmin edits anyone", models.RoleSuperAdmin, "1", models.RoleSuperAdmin, "2", true},
		{"admin edits editor", models.RoleAdmin, "1", models.RoleEditor, "2", true},
		{"admin cannot edit peer admin", models.RoleAdmin, "1", models.RoleAdmin, "2", false},
		{"admin cannot edit superadmin", models.RoleAdmin, "1", models.RoleSuperAdmin, "2", false},
		{"editor cannot edit admin", models.RoleEditor, "1", models.RoleAdmin, "2", false},
		{"admin outranks unknown role", models.RoleAdmin, "1", "garbage", "2", true},
	}
	for _, tc := range cases {
		if got := CanEditUser(tc.actorRole, tc.actorID, tc.targetRole, tc.targetID); got != tc.want {
			t.Fatalf("%s: CanEditUser = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCanDeleteUser(t *testing.T) {
	if CanDeleteUser(models.RoleSuperAdmin, "1", models.RoleSuperAdmin, "1") {
		t.Fatal("self delete must never be allowed, even for SuperAdmin")
	}
	if !CanDeleteUser(models.RoleSuperAdmin, "1", models.RoleAdmin, "2") {
		t.Fatal("SuperAdmin should delete an Admin")
	}
	if CanDeleteUser(models.RoleAdmin, "1", models.RoleAdmin, "2") {
		t.Fatal("Admin must not delete a peer Admin")
	}
	if !CanDeleteUser(models.RoleAdmin, "1", models.RoleUser, "2") {
		t.Fatal("Admin should delete a User")
	}
}

func TestCanManageExercises(t *testing.T) {
	for role, want := range map[string]bool{
		models.RoleSuperAdmin: true,
		models.RoleAdmin:      true,
		models.RoleEditor:     true,
		models.RoleUser:       false,
		"":                    false,
	} {
		if got := CanManageExercises(role); got != want {
			t.Fatalf("CanManageExercises(%q) = %v, want %v", role, got, want)
		}
	}
}
