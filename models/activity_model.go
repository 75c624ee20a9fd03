package models

import "time"

// ActivityEntry is one line of the rotating portal audit trail. The store
// keeps only the newest MaxActivityEntries rows.
type ActivityEntry struct {
	ID      uint   `gorm:"primary_key" json:"id"`
	Message string `gorm:"type:text;not null" json:"message"`
	Actor   string `gorm:"size:255" json:"actor"`

	CreatedAt time.Time `json:"created_at"`
}

const MaxActivityEntries = 5
