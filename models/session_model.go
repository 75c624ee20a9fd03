package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is a portal login session. It caches the bearer token issued by the
// platform API so the portal can call upstream on the staff member's behalf.
// A session whose UpstreamToken has been blanked is dead and must re-login.
type Session struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID        string    `gorm:"size:64;not null;index" json:"user_id"`
	FullName      string    `gorm:"size:255" json:"full_name"`
	Email         string    `gorm:"size:255" json:"email"`
	Role          string    `gorm:"size:20;not null" json:"role"`
	UpstreamToken string    `gorm:"type:text" json:"-"`
	ExpiresAt     time.Time `json:"expires_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Session) Alive() bool {
	return s.UpstreamToken != "" && time.Now().Before(s.ExpiresAt)
}
