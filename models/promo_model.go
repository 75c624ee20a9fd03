package models

import "time"

const (
	PromoTypeFlat       = "flat"
	PromoTypePercentage = "percentage"

	PerUserSingle   = "single"
	PerUserMultiple = "multiple"
)

// PromoCode lives only in the portal's local store; the platform API knows
// nothing about it. Codes are unique case-insensitively.
type PromoCode struct {
	ID           uint    `gorm:"primary_key" json:"id"`
	Code         string  `gorm:"size:50;not null;unique" json:"code"`
	Type         string  `gorm:"size:20;not null;default:'flat'" json:"type"`
	Value        float64 `gorm:"type:numeric(10,2);not null" json:"value"`
	UsageLimit   *int    `json:"usage_limit,omitempty"`
	PerUserLimit string  `gorm:"size:20;not null;default:'single'" json:"per_user_limit"`

	CreatedAt time.Time `json:"created_at"`
}
