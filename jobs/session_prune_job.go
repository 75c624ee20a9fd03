package jobs

import (
	"log"
	"time"

	"github.com/rezotera/iprep_portal/models"
	"gorm.io/gorm"
)

// PruneSessions removes portal sessions that can never authenticate again:
// past their expiry, or with a blanked platform token after a 401.
func PruneSessions(db *gorm.DB) func() {
	return func() {
		log.Println("Running job: PruneSessions...")

		res := db.
			Where("expires_at < ? OR upstream_token = ?", time.Now(), "").
			Delete(&models.Session{})
		if res.Error != nil {
			log.Printf("Error pruning sessions: %v", res.Error)
			return
		}

		if res.RowsAffected > 0 {
			log.Printf("Pruned %d dead session(s).", res.RowsAffected)
		}
	}
}
