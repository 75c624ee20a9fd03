package services

import (
	"fmt"
	"log"
	"time"

	"github.com/rezotera/iprep_portal/models"
	"github.com/rezotera/iprep_portal/websocket"
	"gorm.io/gorm"
)

// ActivityLogger keeps the small rotating audit trail of portal actions and
// pushes each entry to any connected dashboard. The trail is capped at
// models.MaxActivityEntries; older rows are dropped on write.
type ActivityLogger struct {
	db  *gorm.DB
	hub *websocket.Hub
}

func NewActivityLogger(db *gorm.DB, hub *websocket.Hub) *ActivityLogger {
	return &ActivityLogger{db: db, hub: hub}
}

// Log records "<actor> <action>" with a timestamp. Failures are logged and
// swallowed: the audit trail must never fail the action it describes.
func (a *ActivityLogger) Log(action, actor string) {
	entry := models.ActivityEntry{
		Message: fmt.Sprintf("%s %s at %s", actor, action, time.Now().Format(time.Kitchen)),
		Actor:   actor,
	}
	if err := a.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to record activity %q: %v", action, err)
		return
	}
	a.trim()
	if a.hub != nil {
		a.hub.Publish(&entry)
	}
}

func (a *ActivityLogger) trim() {
	var keep []uint
	a.db.Model(&models.ActivityEntry{}).
		Order("id DESC").
		Limit(models.MaxActivityEntries).
		Pluck("id", &keep)
	if len(keep) < models.MaxActivityEntries {
		return
	}
	if err := a.db.Where("id NOT IN ?", keep).Delete(&models.ActivityEntry{}).Error; err != nil {
		log.Printf("Failed to trim activity log: %v", err)
	}
}

// Recent returns the trail newest-first.
func (a *ActivityLogger) Recent() ([]models.ActivityEntry, error) {
	var entries []models.ActivityEntry
	err := a.db.Order("id DESC").Limit(models.MaxActivityEntries).Find(&entries).Error
	return entries, err
}
